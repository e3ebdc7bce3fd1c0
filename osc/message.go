package osc

import (
	"encoding/binary"
	"math"
)

// Message is a single OSC message: an address pattern followed by a
// type-tagged argument list. A Message is used either for construction
// (NewMessage followed by a run of Add* calls, then MarshalBinary) or for
// parsing (ParseMessage followed by a run of Get*/Skip calls driven by
// ArgType and IsArgAvailable) — the two cursors below are only consulted
// on the parsing side.
type Message struct {
	Address string

	// typeTags holds the type-tag string including its leading comma, e.g.
	// ",ifs". It is nil for a message with no arguments yet added.
	typeTags []byte

	// args holds the raw, already-padded argument payload bytes in wire
	// order.
	args []byte

	// tagCursor and argCursor are the parse cursors into typeTags and args
	// respectively. They start at 1 and 0: tagCursor skips the leading
	// comma. Mirrors OscMessage's oscTypeTagStringIndex/argumentsIndex.
	tagCursor int
	argCursor int
}

// NewMessage builds an empty Message with the given address pattern,
// which must begin with '/' and fit within MaxAddressLen.
func NewMessage(address string) (*Message, error) {
	m := &Message{}
	if err := m.SetAddress(address); err != nil {
		return nil, err
	}
	return m, nil
}

// SetAddress replaces the message's address pattern.
func (m *Message) SetAddress(address string) error {
	if len(address) == 0 || address[0] != '/' {
		return newErr("SetAddress", KindNoSlashAtStartOfMessage)
	}
	if len(address) > MaxAddressLen {
		return newErr("SetAddress", KindAddressPatternTooLong)
	}
	m.Address = address
	return nil
}

// AppendAddress appends s to the message's existing address pattern.
func (m *Message) AppendAddress(s string) error {
	if len(m.Address)+len(s) > MaxAddressLen {
		return newErr("AppendAddress", KindAddressPatternTooLong)
	}
	m.Address += s
	return nil
}

func (m *Message) ensureTypeTags() {
	if m.typeTags == nil {
		m.typeTags = []byte{','}
	}
}

// canAddArg reports whether one more argument of argSize payload bytes
// can be appended without exceeding MaxArgs or MaxArgsSize.
func (m *Message) canAddArg(argSize int) error {
	tagLen := 1
	if m.typeTags != nil {
		tagLen = len(m.typeTags)
	}
	if tagLen+1 > MaxTypeTagLen {
		return newErr("Add", KindTooManyArguments)
	}
	if len(m.args)+argSize > MaxArgsSize {
		return newErr("Add", KindArgumentsSizeTooLarge)
	}
	return nil
}

func (m *Message) addFixed4(tag TypeTag, word uint32) error {
	if err := m.canAddArg(4); err != nil {
		return err
	}
	m.ensureTypeTags()
	m.typeTags = append(m.typeTags, byte(tag))
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], word)
	m.args = append(m.args, b[:]...)
	return nil
}

func (m *Message) addFixed8(tag TypeTag, word uint64) error {
	if err := m.canAddArg(8); err != nil {
		return err
	}
	m.ensureTypeTags()
	m.typeTags = append(m.typeTags, byte(tag))
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], word)
	m.args = append(m.args, b[:]...)
	return nil
}

func (m *Message) addNoPayload(tag TypeTag) error {
	if err := m.canAddArg(0); err != nil {
		return err
	}
	m.ensureTypeTags()
	m.typeTags = append(m.typeTags, byte(tag))
	return nil
}

// AddInt32 appends a signed 32-bit integer argument.
func (m *Message) AddInt32(v int32) error {
	return m.addFixed4(TagInt32, uint32(v))
}

// AddFloat32 appends a 32-bit float argument.
func (m *Message) AddFloat32(v float32) error {
	return m.addFixed4(TagFloat32, math.Float32bits(v))
}

// AddString appends a string argument.
func (m *Message) AddString(v string) error {
	size := align4(len(v) + 1)
	if err := m.canAddArg(size); err != nil {
		return err
	}
	m.ensureTypeTags()
	m.typeTags = append(m.typeTags, byte(TagString))
	m.args = writePaddedString(m.args, v)
	return nil
}

// AddAltString appends a string argument tagged 'S' instead of 's'.
func (m *Message) AddAltString(v AltString) error {
	size := align4(len(v) + 1)
	if err := m.canAddArg(size); err != nil {
		return err
	}
	m.ensureTypeTags()
	m.typeTags = append(m.typeTags, byte(TagAltString))
	m.args = writePaddedString(m.args, string(v))
	return nil
}

// AddBlob appends a binary blob argument.
func (m *Message) AddBlob(v []byte) error {
	size := 4 + align4(len(v))
	if err := m.canAddArg(size); err != nil {
		return err
	}
	m.ensureTypeTags()
	m.typeTags = append(m.typeTags, byte(TagBlob))
	m.args = writeBlob(m.args, v)
	return nil
}

// AddInt64 appends a signed 64-bit integer argument.
func (m *Message) AddInt64(v int64) error {
	return m.addFixed8(TagInt64, uint64(v))
}

// AddTimeTag appends a Timetag argument.
func (m *Message) AddTimeTag(v Timetag) error {
	return m.addFixed8(TagTimetag, uint64(v))
}

// AddDouble appends a 64-bit float argument.
func (m *Message) AddDouble(v float64) error {
	return m.addFixed8(TagDouble, math.Float64bits(v))
}

// AddChar appends a single-character argument. The character occupies the
// low byte of its 4-byte wire slot.
func (m *Message) AddChar(v Char) error {
	return m.addFixed4(TagChar, uint32(v))
}

// AddRGBA appends a 32-bit RGBA color argument.
func (m *Message) AddRGBA(v RGBA) error {
	word := uint32(v.R)<<24 | uint32(v.G)<<16 | uint32(v.B)<<8 | uint32(v.A)
	return m.addFixed4(TagRGBA, word)
}

// AddMIDI appends a 4-byte MIDI message argument.
func (m *Message) AddMIDI(v MIDI) error {
	word := uint32(v.Port)<<24 | uint32(v.Status)<<16 | uint32(v.Data1)<<8 | uint32(v.Data2)
	return m.addFixed4(TagMIDI, word)
}

// AddBool appends a 'T' or 'F' argument (no payload either way).
func (m *Message) AddBool(v bool) error {
	if v {
		return m.addNoPayload(TagTrue)
	}
	return m.addNoPayload(TagFalse)
}

// AddNil appends an 'N' (nil) argument.
func (m *Message) AddNil() error {
	return m.addNoPayload(TagNil)
}

// AddInfinitum appends an 'I' (impulse/infinitum) argument.
func (m *Message) AddInfinitum() error {
	return m.addNoPayload(TagInfinitum)
}

// AddBeginArray appends the '[' array-open marker.
func (m *Message) AddBeginArray() error {
	return m.addNoPayload(TagBeginArray)
}

// AddEndArray appends the ']' array-close marker.
func (m *Message) AddEndArray() error {
	return m.addNoPayload(TagEndArray)
}

// Size returns the number of bytes MarshalBinary would produce.
func (m *Message) Size() int {
	size := align4(len(m.Address) + 1)
	tagLen := 1
	if m.typeTags != nil {
		tagLen = len(m.typeTags)
	}
	size += align4(tagLen + 1)
	size += len(m.args)
	return size
}

// AppendBinary appends the serialized message to dst.
func (m *Message) AppendBinary(dst []byte) ([]byte, error) {
	if len(m.Address) == 0 {
		return nil, newErr("AppendBinary", KindNoSlashAtStartOfMessage)
	}
	dst = writePaddedString(dst, m.Address)
	tags := m.typeTags
	if tags == nil {
		tags = []byte{','}
	}
	dst = writePaddedString(dst, string(tags))
	dst = append(dst, m.args...)
	return dst, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (m *Message) MarshalBinary() ([]byte, error) {
	return m.AppendBinary(nil)
}
