package osc

import "encoding/binary"

// writePaddedString appends s, a null terminator, and zero to three pad
// bytes (so the total appended length is a multiple of four) to dst.
func writePaddedString(dst []byte, s string) []byte {
	dst = append(dst, s...)
	dst = append(dst, 0)
	pad := padLen(len(s) + 1)
	for i := 0; i < pad; i++ {
		dst = append(dst, 0)
	}
	return dst
}

// readPaddedString reads a null-terminated, four-byte-padded string from
// the start of b. It returns the string, the number of bytes consumed
// (including terminator and padding), and an error if b ends before a
// null terminator is found.
func readPaddedString(b []byte) (string, int, error) {
	i := 0
	for {
		if i >= len(b) {
			return "", 0, newErr("readPaddedString", KindUnexpectedEndOfSource)
		}
		if b[i] == 0 {
			break
		}
		i++
	}
	s := string(b[:i])
	consumed := align4(i + 1)
	if consumed > len(b) {
		return "", 0, newErr("readPaddedString", KindUnexpectedEndOfSource)
	}
	return s, consumed, nil
}

// writeBlob appends a 4-byte big-endian length followed by data and zero
// to three pad bytes to dst.
func writeBlob(dst []byte, data []byte) []byte {
	var size [4]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(data)))
	dst = append(dst, size[:]...)
	dst = append(dst, data...)
	pad := padLen(len(data))
	for i := 0; i < pad; i++ {
		dst = append(dst, 0)
	}
	return dst
}

// readBlob reads a length-prefixed, four-byte-padded blob from the start
// of b, returning the blob contents and the number of bytes consumed.
func readBlob(b []byte) ([]byte, int, error) {
	if len(b) < 4 {
		return nil, 0, newErr("readBlob", KindUnexpectedEndOfSource)
	}
	size := int(binary.BigEndian.Uint32(b))
	if size < 0 {
		return nil, 0, newErr("readBlob", KindNegativeBundleElementSize)
	}
	consumed := 4 + align4(size)
	if consumed > len(b) {
		return nil, 0, newErr("readBlob", KindUnexpectedEndOfSource)
	}
	data := b[4 : 4+size]
	return data, consumed, nil
}
