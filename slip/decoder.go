package slip

// Decoder is a stateful SLIP byte-stream framer: feed it one byte at a
// time from a transport and it reports a complete packet each time it
// sees an End byte. It mirrors OscSlipDecoderProcessByte's buffer+index
// state machine rather than buffering a whole read and splitting it,
// since a byte-oriented transport may deliver any number of bytes at a
// time.
type Decoder struct {
	maxSize int
	buf     []byte
	escaped bool
}

// NewDecoder returns a Decoder that rejects packets longer than maxSize
// bytes (decoded form) rather than growing without bound.
func NewDecoder(maxSize int) *Decoder {
	return &Decoder{maxSize: maxSize}
}

// Clear discards any partially-received packet, returning the Decoder to
// its initial state.
func (d *Decoder) Clear() {
	d.buf = nil
	d.escaped = false
}

// Feed processes one received byte. When it completes a packet it
// returns the decoded bytes with complete set to true; the returned
// slice is only valid until the next call to Feed or Clear. A non-nil
// error means the in-progress packet was malformed and has been
// discarded; the Decoder is ready to start a new packet on the next
// call.
func (d *Decoder) Feed(b byte) (packet []byte, complete bool, err error) {
	if d.escaped {
		d.escaped = false
		switch b {
		case EscEnd:
			b = End
		case EscEsc:
			b = Esc
		default:
			d.Clear()
			return nil, false, &Error{Kind: KindUnexpectedByteAfterEsc}
		}
		if len(d.buf) >= d.maxSize {
			d.Clear()
			return nil, false, &Error{Kind: KindDecodedPacketTooLong}
		}
		d.buf = append(d.buf, b)
		return nil, false, nil
	}

	switch b {
	case Esc:
		d.escaped = true
		return nil, false, nil
	case End:
		if len(d.buf) == 0 {
			return nil, false, nil
		}
		packet = d.buf
		d.buf = nil
		return packet, true, nil
	default:
		if len(d.buf) >= d.maxSize {
			d.Clear()
			return nil, false, &Error{Kind: KindPacketTooLong}
		}
		d.buf = append(d.buf, b)
		return nil, false, nil
	}
}
