package osc

// Handler receives one decoded Message during packet dispatch, along
// with the time-tag of its innermost enclosing bundle (or Immediate if
// the message was not inside a bundle).
type Handler func(timetag Timetag, msg *Message) error

// Packet wraps the raw contents of a single transport datagram, which is
// either an OSC message ('/'-prefixed) or an OSC bundle ('#'-prefixed).
type Packet struct {
	contents []byte
}

// NewPacketFromContents wraps already-encoded message or bundle bytes as
// a Packet without copying or otherwise interpreting them.
func NewPacketFromContents(contents []byte) (*Packet, error) {
	if len(contents) == 0 {
		return nil, newErr("NewPacketFromContents", KindContentsEmpty)
	}
	switch contents[0] {
	case '/', '#':
	default:
		return nil, newErr("NewPacketFromContents", KindInvalidContents)
	}
	return &Packet{contents: contents}, nil
}

// NewPacketFromBytes parses a received datagram into a Packet, validating
// its outer size against MaxTransportSize.
func NewPacketFromBytes(b []byte) (*Packet, error) {
	if len(b) > MaxTransportSize {
		return nil, newErr("NewPacketFromBytes", KindPacketSizeTooLarge)
	}
	return NewPacketFromContents(b)
}

// IsBundle reports whether the packet's contents are a bundle.
func (p *Packet) IsBundle() bool {
	return len(p.contents) > 0 && p.contents[0] == '#'
}

// IsMessage reports whether the packet's contents are a message.
func (p *Packet) IsMessage() bool {
	return len(p.contents) > 0 && p.contents[0] == '/'
}

// ProcessMessages walks the packet in pre-order, invoking h once for
// every contained message. Nested bundles are recursed into
// depth-first; a message's reported time-tag is that of its innermost
// enclosing bundle (Immediate if none). Dispatch stops at the first
// parse error or the first error h returns.
func (p *Packet) ProcessMessages(h Handler) error {
	return processContents(p.contents, Immediate, h)
}

func processContents(contents []byte, timetag Timetag, h Handler) error {
	if len(contents) == 0 {
		return newErr("ProcessMessages", KindContentsEmpty)
	}
	switch contents[0] {
	case '/':
		msg, err := ParseMessage(contents)
		if err != nil {
			return wrapErr("ProcessMessages", KindInvalidContents, err)
		}
		return h(timetag, msg)
	case '#':
		bd, err := ParseBundle(contents)
		if err != nil {
			return wrapErr("ProcessMessages", KindInvalidContents, err)
		}
		for bd.IsElementAvailable() {
			elem, err := bd.NextElement()
			if err != nil {
				return err
			}
			if err := processContents(elem, bd.Timetag, h); err != nil {
				return err
			}
		}
		return nil
	default:
		return newErr("ProcessMessages", KindInvalidContents)
	}
}
