package osc

import (
	"encoding/binary"
	"time"
)

// secondsFrom1900To1970 converts between NTP epoch (1900) and Unix epoch
// (1970).
const secondsFrom1900To1970 = 2208988800

// Immediate is the sentinel Timetag value meaning "now" / "irrelevant".
const Immediate Timetag = 0

// Timetag is an OSC time-tag: a 64-bit fixed-point NTP-style timestamp.
// The high 32 bits are seconds since midnight on 1 January 1900; the low
// 32 bits are a binary fraction of a second. The zero value means
// "immediately".
type Timetag uint64

// NewTimetag builds a Timetag from separate seconds/fraction halves.
func NewTimetag(seconds, fraction uint32) Timetag {
	return Timetag(uint64(seconds)<<32 | uint64(fraction))
}

// NewTimetagFromTime converts a time.Time to a Timetag.
func NewTimetagFromTime(t time.Time) Timetag {
	seconds := uint32(t.Unix() + secondsFrom1900To1970)
	fraction := uint32((t.Nanosecond() * (1 << 32)) / 1e9)
	return NewTimetag(seconds, fraction)
}

// Seconds returns the upper 32 bits: seconds since midnight, 1 Jan 1900.
func (t Timetag) Seconds() uint32 {
	return uint32(t >> 32)
}

// Fraction returns the lower 32 bits: fractional part of a second.
func (t Timetag) Fraction() uint32 {
	return uint32(t)
}

// IsImmediate reports whether t is the "now/irrelevant" sentinel.
func (t Timetag) IsImmediate() bool {
	return t == Immediate
}

// Time converts t to a time.Time. The result is meaningless if t is
// Immediate.
func (t Timetag) Time() time.Time {
	seconds := int64(t.Seconds()) - secondsFrom1900To1970
	nanos := int64(t.Fraction()) * 1e9 / (1 << 32)
	return time.Unix(seconds, nanos)
}

// AppendBinary appends the 8-byte big-endian wire form of t to dst.
func (t Timetag) AppendBinary(dst []byte) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(t))
	return append(dst, b[:]...)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (t Timetag) MarshalBinary() ([]byte, error) {
	return t.AppendBinary(nil), nil
}

// timetagFromBytes reads a big-endian Timetag from the first 8 bytes of b.
func timetagFromBytes(b []byte) Timetag {
	return Timetag(binary.BigEndian.Uint64(b))
}
