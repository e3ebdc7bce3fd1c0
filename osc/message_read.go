package osc

import (
	"bytes"
	"encoding/binary"
	"math"
)

// UnmarshalBinary implements encoding.BinaryUnmarshaler. It resets m and
// parses the address pattern and type-tag string from b; the argument
// payload is kept as-is and only interpreted as Get* calls walk it,
// exactly as OscMessageInitialiseFromCharArray does not pre-validate
// argument contents.
func (m *Message) UnmarshalBinary(b []byte) error {
	if len(b) < MinMessageSize {
		return newErr("UnmarshalBinary", KindMessageSizeTooSmall)
	}
	if len(b) > MaxMessageSize {
		return newErr("UnmarshalBinary", KindMessageSizeTooLarge)
	}
	if b[0] != '/' {
		return newErr("UnmarshalBinary", KindNoSlashAtStartOfMessage)
	}

	addr, n, err := readPaddedString(b)
	if err != nil {
		return wrapErr("UnmarshalBinary", KindSourceEndsBeforeEndOfAddress, err)
	}
	if len(addr) > MaxAddressLen {
		return newErr("UnmarshalBinary", KindAddressPatternTooLong)
	}

	rest := b[n:]
	if len(rest) == 0 || rest[0] != ',' {
		return newErr("UnmarshalBinary", KindSourceEndsBeforeStartOfTypeTag)
	}
	tags, n2, err := readPaddedString(rest)
	if err != nil {
		return wrapErr("UnmarshalBinary", KindSourceEndsBeforeEndOfTypeTag, err)
	}
	if len(tags) > MaxTypeTagLen {
		return newErr("UnmarshalBinary", KindTypeTagStringTooLong)
	}
	if len(tags)-1 > MaxArgs {
		return newErr("UnmarshalBinary", KindTooManyArguments)
	}

	m.Address = addr
	m.typeTags = []byte(tags)
	m.args = append([]byte(nil), rest[n2:]...)
	m.tagCursor = 1
	m.argCursor = 0
	return nil
}

// ParseMessage parses b into a new Message.
func ParseMessage(b []byte) (*Message, error) {
	m := &Message{}
	if err := m.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return m, nil
}

// IsArgAvailable reports whether another argument remains to be read.
// Mirrors OscMessageIsArgumentAvailable's index <= length-1 boundary.
func (m *Message) IsArgAvailable() bool {
	if m.typeTags == nil {
		return false
	}
	return m.tagCursor <= len(m.typeTags)-1
}

// ArgType returns the type tag of the next unread argument without
// consuming it.
func (m *Message) ArgType() (TypeTag, error) {
	if !m.IsArgAvailable() {
		return 0, newErr("ArgType", KindNoArgumentsAvailable)
	}
	return TypeTag(m.typeTags[m.tagCursor]), nil
}

// SkipArg advances past the next argument without decoding its value.
//
// This faithfully reproduces OscMessageSkipArgument's quirk: it advances
// only the type-tag cursor, not the argument payload cursor. Skipping any
// argument with a non-empty payload (anything but T/F/N/I/[/]) leaves the
// payload cursor pointing at stale data, so callers that mix SkipArg with
// Get* on payload-bearing types will misread everything that follows.
func (m *Message) SkipArg() error {
	if !m.IsArgAvailable() {
		return newErr("SkipArg", KindNoArgumentsAvailable)
	}
	m.tagCursor++
	return nil
}

func (m *Message) expectTag(op string, want TypeTag) error {
	t, err := m.ArgType()
	if err != nil {
		return err
	}
	if t != want {
		return newErr(op, KindUnexpectedArgumentType)
	}
	return nil
}

func (m *Message) expectMarker(op string, want TypeTag) error {
	if err := m.expectTag(op, want); err != nil {
		return err
	}
	m.tagCursor++
	return nil
}

func (m *Message) fixed4(op string) ([]byte, error) {
	if m.argCursor+4 > len(m.args) {
		return nil, newErr(op, KindMessageTooShortForArgumentType)
	}
	b := m.args[m.argCursor : m.argCursor+4]
	m.tagCursor++
	m.argCursor += 4
	return b, nil
}

func (m *Message) fixed8(op string) ([]byte, error) {
	if m.argCursor+8 > len(m.args) {
		return nil, newErr(op, KindMessageTooShortForArgumentType)
	}
	b := m.args[m.argCursor : m.argCursor+8]
	m.tagCursor++
	m.argCursor += 8
	return b, nil
}

// GetInt32 reads the next argument as a signed 32-bit integer.
func (m *Message) GetInt32() (int32, error) {
	if err := m.expectTag("GetInt32", TagInt32); err != nil {
		return 0, err
	}
	b, err := m.fixed4("GetInt32")
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

// GetFloat32 reads the next argument as a 32-bit float.
func (m *Message) GetFloat32() (float32, error) {
	if err := m.expectTag("GetFloat32", TagFloat32); err != nil {
		return 0, err
	}
	b, err := m.fixed4("GetFloat32")
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

// GetString reads the next argument as a string.
func (m *Message) GetString() (string, error) {
	if err := m.expectTag("GetString", TagString); err != nil {
		return "", err
	}
	s, n, err := readPaddedString(m.args[m.argCursor:])
	if err != nil {
		return "", wrapErr("GetString", KindMessageTooShortForArgumentType, err)
	}
	m.tagCursor++
	m.argCursor += n
	return s, nil
}

// GetAltString reads the next argument as an 'S'-tagged string.
func (m *Message) GetAltString() (AltString, error) {
	if err := m.expectTag("GetAltString", TagAltString); err != nil {
		return "", err
	}
	s, n, err := readPaddedString(m.args[m.argCursor:])
	if err != nil {
		return "", wrapErr("GetAltString", KindMessageTooShortForArgumentType, err)
	}
	m.tagCursor++
	m.argCursor += n
	return AltString(s), nil
}

// GetBlob reads the next argument as a binary blob. The returned slice is
// a copy and safe to retain.
func (m *Message) GetBlob() ([]byte, error) {
	if err := m.expectTag("GetBlob", TagBlob); err != nil {
		return nil, err
	}
	data, n, err := readBlob(m.args[m.argCursor:])
	if err != nil {
		return nil, wrapErr("GetBlob", KindMessageTooShortForArgumentType, err)
	}
	m.tagCursor++
	m.argCursor += n
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// GetInt64 reads the next argument as a signed 64-bit integer.
func (m *Message) GetInt64() (int64, error) {
	if err := m.expectTag("GetInt64", TagInt64); err != nil {
		return 0, err
	}
	b, err := m.fixed8("GetInt64")
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

// GetTimeTag reads the next argument as a Timetag.
func (m *Message) GetTimeTag() (Timetag, error) {
	if err := m.expectTag("GetTimeTag", TagTimetag); err != nil {
		return 0, err
	}
	b, err := m.fixed8("GetTimeTag")
	if err != nil {
		return 0, err
	}
	return Timetag(binary.BigEndian.Uint64(b)), nil
}

// GetDouble reads the next argument as a 64-bit float.
func (m *Message) GetDouble() (float64, error) {
	if err := m.expectTag("GetDouble", TagDouble); err != nil {
		return 0, err
	}
	b, err := m.fixed8("GetDouble")
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// GetChar reads the next argument as a single character.
func (m *Message) GetChar() (Char, error) {
	if err := m.expectTag("GetChar", TagChar); err != nil {
		return 0, err
	}
	b, err := m.fixed4("GetChar")
	if err != nil {
		return 0, err
	}
	return Char(b[3]), nil
}

// GetRGBA reads the next argument as a 32-bit color.
func (m *Message) GetRGBA() (RGBA, error) {
	if err := m.expectTag("GetRGBA", TagRGBA); err != nil {
		return RGBA{}, err
	}
	b, err := m.fixed4("GetRGBA")
	if err != nil {
		return RGBA{}, err
	}
	return RGBA{R: b[0], G: b[1], B: b[2], A: b[3]}, nil
}

// GetMIDI reads the next argument as a 4-byte MIDI message.
func (m *Message) GetMIDI() (MIDI, error) {
	if err := m.expectTag("GetMIDI", TagMIDI); err != nil {
		return MIDI{}, err
	}
	b, err := m.fixed4("GetMIDI")
	if err != nil {
		return MIDI{}, err
	}
	return MIDI{Port: b[0], Status: b[1], Data1: b[2], Data2: b[3]}, nil
}

// GetBool reads the next argument, which must be tagged 'T' or 'F'.
func (m *Message) GetBool() (bool, error) {
	t, err := m.ArgType()
	if err != nil {
		return false, err
	}
	switch t {
	case TagTrue:
		m.tagCursor++
		return true, nil
	case TagFalse:
		m.tagCursor++
		return false, nil
	default:
		return false, newErr("GetBool", KindUnexpectedArgumentType)
	}
}

// GetNil consumes the next argument, which must be tagged 'N'.
func (m *Message) GetNil() error { return m.expectMarker("GetNil", TagNil) }

// GetInfinitum consumes the next argument, which must be tagged 'I'.
func (m *Message) GetInfinitum() error { return m.expectMarker("GetInfinitum", TagInfinitum) }

// GetBeginArray consumes the next argument, which must be tagged '['.
func (m *Message) GetBeginArray() error { return m.expectMarker("GetBeginArray", TagBeginArray) }

// GetEndArray consumes the next argument, which must be tagged ']'.
func (m *Message) GetEndArray() error { return m.expectMarker("GetEndArray", TagEndArray) }

// numericArg is the value of a numeric-ish argument (i32/f32/f64/i64/
// timetag/char/bool/nil/infinitum), read without committing to any one
// destination width. The GetAs<T> numeric coercions below all read
// through this so the "any numeric source to any numeric dest" table in
// spec.md §4.2 only has to be written out once.
type numericArg struct {
	i64         int64
	f64         float64
	isFloat     bool
	isBool      bool
	boolVal     bool
	isNil       bool
	isInfinitum bool
}

func (m *Message) readNumericArg(op string) (numericArg, error) {
	t, err := m.ArgType()
	if err != nil {
		return numericArg{}, err
	}
	switch t {
	case TagInt32:
		v, err := m.GetInt32()
		return numericArg{i64: int64(v)}, err
	case TagInt64:
		v, err := m.GetInt64()
		return numericArg{i64: v}, err
	case TagFloat32:
		v, err := m.GetFloat32()
		return numericArg{f64: float64(v), isFloat: true}, err
	case TagDouble:
		v, err := m.GetDouble()
		return numericArg{f64: v, isFloat: true}, err
	case TagTimetag:
		v, err := m.GetTimeTag()
		return numericArg{i64: int64(uint64(v))}, err
	case TagChar:
		v, err := m.GetChar()
		return numericArg{i64: int64(v)}, err
	case TagTrue, TagFalse:
		v, err := m.GetBool()
		return numericArg{isBool: true, boolVal: v}, err
	case TagNil:
		err := m.GetNil()
		return numericArg{isNil: true}, err
	case TagInfinitum:
		err := m.GetInfinitum()
		return numericArg{isInfinitum: true}, err
	default:
		return numericArg{}, newErr(op, KindUnexpectedArgumentType)
	}
}

// GetAsInt32 reads the next argument as a signed 32-bit integer, coercing
// from any of OSC's other numeric tags. An 'I' (infinitum) argument
// coerces to -1, the int32 bit pattern of u32::MAX.
func (m *Message) GetAsInt32() (int32, error) {
	v, err := m.readNumericArg("GetAsInt32")
	if err != nil {
		return 0, err
	}
	switch {
	case v.isInfinitum:
		return -1, nil
	case v.isNil:
		return 0, nil
	case v.isBool:
		if v.boolVal {
			return 1, nil
		}
		return 0, nil
	case v.isFloat:
		return int32(v.f64), nil
	default:
		return int32(v.i64), nil
	}
}

// GetAsFloat32 reads the next argument as a 32-bit float, coercing from
// any of OSC's other numeric tags. An 'I' (infinitum) argument coerces to
// +Inf.
func (m *Message) GetAsFloat32() (float32, error) {
	v, err := m.readNumericArg("GetAsFloat32")
	if err != nil {
		return 0, err
	}
	switch {
	case v.isInfinitum:
		return float32(math.Inf(1)), nil
	case v.isNil:
		return 0, nil
	case v.isBool:
		if v.boolVal {
			return 1, nil
		}
		return 0, nil
	case v.isFloat:
		return float32(v.f64), nil
	default:
		return float32(v.i64), nil
	}
}

// GetAsInt64 reads the next argument as a signed 64-bit integer, coercing
// from any of OSC's other numeric tags. An 'I' (infinitum) argument
// coerces to -1, the int64 bit pattern of the all-ones 64-bit word.
func (m *Message) GetAsInt64() (int64, error) {
	v, err := m.readNumericArg("GetAsInt64")
	if err != nil {
		return 0, err
	}
	switch {
	case v.isInfinitum:
		return -1, nil
	case v.isNil:
		return 0, nil
	case v.isBool:
		if v.boolVal {
			return 1, nil
		}
		return 0, nil
	case v.isFloat:
		return int64(v.f64), nil
	default:
		return v.i64, nil
	}
}

// GetAsDouble reads the next argument as a 64-bit float, coercing from
// any of OSC's other numeric tags. An 'I' (infinitum) argument coerces to
// +Inf.
func (m *Message) GetAsDouble() (float64, error) {
	v, err := m.readNumericArg("GetAsDouble")
	if err != nil {
		return 0, err
	}
	switch {
	case v.isInfinitum:
		return math.Inf(1), nil
	case v.isNil:
		return 0, nil
	case v.isBool:
		if v.boolVal {
			return 1, nil
		}
		return 0, nil
	case v.isFloat:
		return v.f64, nil
	default:
		return float64(v.i64), nil
	}
}

// GetAsTimeTag reads the next argument as a Timetag, coercing from any of
// OSC's other numeric tags. An 'I' (infinitum) argument coerces to the
// all-ones 64-bit word.
func (m *Message) GetAsTimeTag() (Timetag, error) {
	v, err := m.readNumericArg("GetAsTimeTag")
	if err != nil {
		return 0, err
	}
	switch {
	case v.isInfinitum:
		return Timetag(^uint64(0)), nil
	case v.isNil:
		return 0, nil
	case v.isBool:
		if v.boolVal {
			return 1, nil
		}
		return 0, nil
	case v.isFloat:
		return Timetag(int64(v.f64)), nil
	default:
		return Timetag(uint64(v.i64)), nil
	}
}

// GetAsChar reads the next argument as a single character, coercing from
// any of OSC's other numeric tags by truncating to the low byte. An 'I'
// (infinitum) argument coerces to 0xFF.
func (m *Message) GetAsChar() (Char, error) {
	v, err := m.readNumericArg("GetAsChar")
	if err != nil {
		return 0, err
	}
	switch {
	case v.isInfinitum:
		return Char(0xFF), nil
	case v.isNil:
		return 0, nil
	case v.isBool:
		if v.boolVal {
			return 1, nil
		}
		return 0, nil
	case v.isFloat:
		return Char(byte(int64(v.f64))), nil
	default:
		return Char(byte(v.i64)), nil
	}
}

// GetAsBool reads the next argument as a boolean, coercing from any of
// OSC's other numeric tags (nonzero is true) or from 'N'/'I' directly. An
// 'I' (infinitum) argument coerces to true, 'N' (nil) to false.
func (m *Message) GetAsBool() (bool, error) {
	v, err := m.readNumericArg("GetAsBool")
	if err != nil {
		return false, err
	}
	switch {
	case v.isInfinitum:
		return true, nil
	case v.isNil:
		return false, nil
	case v.isBool:
		return v.boolVal, nil
	case v.isFloat:
		return v.f64 != 0, nil
	default:
		return v.i64 != 0, nil
	}
}

// GetAsString reads the next argument as a string, accepting 's', 'S',
// 'c' (the one-character string it names) or 'b' (its bytes up to the
// first null, or the whole blob if it has none).
func (m *Message) GetAsString() (string, error) {
	t, err := m.ArgType()
	if err != nil {
		return "", err
	}
	switch t {
	case TagString:
		return m.GetString()
	case TagAltString:
		v, err := m.GetAltString()
		return string(v), err
	case TagChar:
		v, err := m.GetChar()
		return string(byte(v)), err
	case TagBlob:
		data, err := m.GetBlob()
		if err != nil {
			return "", err
		}
		if i := bytes.IndexByte(data, 0); i >= 0 {
			return string(data[:i]), nil
		}
		return string(data), nil
	default:
		return "", newErr("GetAsString", KindUnexpectedArgumentType)
	}
}

// GetAsBlob reads the next argument as a binary blob, accepting 'b'
// itself, 's'/'S' (the string's bytes, no terminator) or 'c' (a single
// byte).
func (m *Message) GetAsBlob() ([]byte, error) {
	t, err := m.ArgType()
	if err != nil {
		return nil, err
	}
	switch t {
	case TagBlob:
		return m.GetBlob()
	case TagString:
		v, err := m.GetString()
		return []byte(v), err
	case TagAltString:
		v, err := m.GetAltString()
		return []byte(v), err
	case TagChar:
		v, err := m.GetChar()
		if err != nil {
			return nil, err
		}
		return []byte{byte(v)}, nil
	default:
		return nil, newErr("GetAsBlob", KindUnexpectedArgumentType)
	}
}

// GetAsRGBA reads the next argument as an RGBA color, accepting a direct
// 'r' argument or a 4-byte 'b' blob reinterpreted field-for-field — the
// bridge the original implementation gets for free by storing both types
// in the same C union.
func (m *Message) GetAsRGBA() (RGBA, error) {
	t, err := m.ArgType()
	if err != nil {
		return RGBA{}, err
	}
	switch t {
	case TagRGBA:
		return m.GetRGBA()
	case TagBlob:
		data, err := m.GetBlob()
		if err != nil {
			return RGBA{}, err
		}
		if len(data) != 4 {
			return RGBA{}, newErr("GetAsRGBA", KindUnexpectedArgumentType)
		}
		return RGBA{R: data[0], G: data[1], B: data[2], A: data[3]}, nil
	default:
		return RGBA{}, newErr("GetAsRGBA", KindUnexpectedArgumentType)
	}
}

// GetAsMIDI reads the next argument as a MIDI message, accepting a direct
// 'm' argument or a 4-byte 'b' blob reinterpreted field-for-field.
func (m *Message) GetAsMIDI() (MIDI, error) {
	t, err := m.ArgType()
	if err != nil {
		return MIDI{}, err
	}
	switch t {
	case TagMIDI:
		return m.GetMIDI()
	case TagBlob:
		data, err := m.GetBlob()
		if err != nil {
			return MIDI{}, err
		}
		if len(data) != 4 {
			return MIDI{}, newErr("GetAsMIDI", KindUnexpectedArgumentType)
		}
		return MIDI{Port: data[0], Status: data[1], Data1: data[2], Data2: data[3]}, nil
	default:
		return MIDI{}, newErr("GetAsMIDI", KindUnexpectedArgumentType)
	}
}
