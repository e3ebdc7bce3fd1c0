package osc

import "encoding/binary"

// Bundle is an OSC bundle: a time-tag plus zero or more size-prefixed
// elements, each itself either a Message or a nested Bundle. Like
// Message, a Bundle is used either for construction (NewBundle followed
// by a run of AddContents calls) or for parsing (UnmarshalBinary followed
// by a run of NextElement calls driven by IsElementAvailable).
type Bundle struct {
	Timetag Timetag

	// elements holds the concatenated, already size-prefixed element
	// bytes in wire order.
	elements []byte

	// elemCursor is the parse cursor into elements.
	elemCursor int
}

// NewBundle builds an empty Bundle with the given time-tag.
func NewBundle(tt Timetag) *Bundle {
	return &Bundle{Timetag: tt}
}

// Empty discards all of the bundle's elements, keeping its time-tag.
// Mirrors OscBundleEmpty.
func (bd *Bundle) Empty() {
	bd.elements = nil
	bd.elemCursor = 0
}

// IsEmpty reports whether the bundle has no elements.
func (bd *Bundle) IsEmpty() bool {
	return len(bd.elements) == 0
}

// Size returns the number of bytes MarshalBinary would produce.
func (bd *Bundle) Size() int {
	return MinBundleSize + len(bd.elements)
}

// RemainingCapacity returns how many more bytes of element content (size
// prefix included) can still be added without exceeding MaxBundleSize.
// Mirrors OscBundleGetRemainingCapacity, which clamps at zero rather than
// going negative.
func (bd *Bundle) RemainingCapacity() int {
	remaining := MaxBundleElementsSize - len(bd.elements)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// AddContents appends a fully-encoded Message or Bundle (contents) as a
// new size-prefixed element. contents must begin with '/' (a message) or
// '#' (a nested bundle), mirroring the dispatch add_contents performs on
// the first byte.
func (bd *Bundle) AddContents(contents []byte) error {
	if len(contents) == 0 {
		return newErr("AddContents", KindContentsEmpty)
	}
	if len(contents)%4 != 0 {
		return newErr("AddContents", KindSizeNotMultipleOfFour)
	}
	if contents[0] != '/' && contents[0] != '#' {
		return newErr("AddContents", KindInvalidContents)
	}
	needed := 4 + len(contents)
	if needed > bd.RemainingCapacity() {
		return newErr("AddContents", KindBundleSizeTooLarge)
	}
	var size [4]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(contents)))
	bd.elements = append(bd.elements, size[:]...)
	bd.elements = append(bd.elements, contents...)
	return nil
}

// AppendBinary appends the serialized bundle to dst.
func (bd *Bundle) AppendBinary(dst []byte) ([]byte, error) {
	dst = append(dst, bundleHeader...)
	dst = bd.Timetag.AppendBinary(dst)
	dst = append(dst, bd.elements...)
	return dst, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (bd *Bundle) MarshalBinary() ([]byte, error) {
	return bd.AppendBinary(nil)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. It resets bd and
// parses the "#bundle\0" header and time-tag from b; the element bytes
// are kept as-is and walked lazily via NextElement, exactly as
// OscBundleInitialiseFromCharArray does not pre-validate element
// contents.
func (bd *Bundle) UnmarshalBinary(b []byte) error {
	if len(b) < MinBundleSize {
		return newErr("UnmarshalBinary", KindBundleSizeTooSmall)
	}
	if len(b) > MaxBundleSize {
		return newErr("UnmarshalBinary", KindBundleSizeTooLarge)
	}
	if string(b[:bundleHeaderSize]) != bundleHeader {
		return newErr("UnmarshalBinary", KindNoHashAtStartOfBundle)
	}
	bd.Timetag = timetagFromBytes(b[bundleHeaderSize : bundleHeaderSize+timetagSize])
	bd.elements = append([]byte(nil), b[MinBundleSize:]...)
	bd.elemCursor = 0
	return nil
}

// ParseBundle parses b into a new Bundle.
func ParseBundle(b []byte) (*Bundle, error) {
	bd := &Bundle{}
	if err := bd.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return bd, nil
}

// IsElementAvailable reports whether another element remains to be read.
func (bd *Bundle) IsElementAvailable() bool {
	return bd.elemCursor < len(bd.elements)
}

// NextElement returns the contents of the next element (a Message or
// nested Bundle's encoded bytes) and advances past it. The returned slice
// aliases the Bundle's internal buffer and must not be retained past the
// next call that mutates the Bundle.
func (bd *Bundle) NextElement() ([]byte, error) {
	if !bd.IsElementAvailable() {
		return nil, newErr("NextElement", KindBundleElementNotAvailable)
	}
	remaining := bd.elements[bd.elemCursor:]
	if len(remaining) < 4 {
		return nil, newErr("NextElement", KindInvalidElementSize)
	}
	size := int32(binary.BigEndian.Uint32(remaining))
	if size < 0 {
		return nil, newErr("NextElement", KindNegativeBundleElementSize)
	}
	if size%4 != 0 {
		return nil, newErr("NextElement", KindSizeNotMultipleOfFour)
	}
	if 4+int(size) > len(remaining) {
		return nil, newErr("NextElement", KindInvalidElementSize)
	}
	contents := remaining[4 : 4+size]
	bd.elemCursor += 4 + int(size)
	return contents, nil
}
