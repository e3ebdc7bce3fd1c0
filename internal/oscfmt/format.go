// Package oscfmt renders decoded OSC packets as human-readable text for
// the oscdump command.
package oscfmt

import (
	"fmt"
	"strings"

	"github.com/xioTechnologies/OSC99/osc"
)

// Packet renders every message in contents (a single message or a
// possibly-nested bundle) as one line per message, in dispatch order.
func Packet(contents []byte) (string, error) {
	p, err := osc.NewPacketFromContents(contents)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	err = p.ProcessMessages(func(tt osc.Timetag, m *osc.Message) error {
		sb.WriteString(Message(tt, m))
		sb.WriteByte('\n')
		return nil
	})
	return sb.String(), err
}

// Message renders one message as "<timetag> <address> <args...>". tt is
// the message's innermost enclosing bundle time-tag (osc.Immediate if it
// arrived outside of a bundle).
func Message(tt osc.Timetag, m *osc.Message) string {
	var sb strings.Builder
	if tt.IsImmediate() {
		sb.WriteString("-")
	} else {
		fmt.Fprintf(&sb, "%d.%d", tt.Seconds(), tt.Fraction())
	}
	sb.WriteByte(' ')
	sb.WriteString(m.Address)

	for m.IsArgAvailable() {
		tag, err := m.ArgType()
		if err != nil {
			fmt.Fprintf(&sb, " <error: %v>", err)
			break
		}
		sb.WriteByte(' ')
		if err := writeArg(&sb, tag, m); err != nil {
			fmt.Fprintf(&sb, "<error: %v>", err)
			break
		}
	}
	return sb.String()
}

func writeArg(sb *strings.Builder, tag osc.TypeTag, m *osc.Message) error {
	switch tag {
	case osc.TagInt32:
		v, err := m.GetInt32()
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "%d", v)
	case osc.TagFloat32:
		v, err := m.GetFloat32()
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "%g", v)
	case osc.TagString:
		v, err := m.GetString()
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "%q", v)
	case osc.TagAltString:
		v, err := m.GetAltString()
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "%q", string(v))
	case osc.TagBlob:
		v, err := m.GetBlob()
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "blob[%d]", len(v))
	case osc.TagInt64:
		v, err := m.GetInt64()
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "%dL", v)
	case osc.TagTimetag:
		v, err := m.GetTimeTag()
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "%d.%d", v.Seconds(), v.Fraction())
	case osc.TagDouble:
		v, err := m.GetDouble()
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "%gd", v)
	case osc.TagChar:
		v, err := m.GetChar()
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "'%c'", byte(v))
	case osc.TagRGBA:
		v, err := m.GetRGBA()
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "rgba(%d,%d,%d,%d)", v.R, v.G, v.B, v.A)
	case osc.TagMIDI:
		v, err := m.GetMIDI()
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "midi(%d,%d,%d,%d)", v.Port, v.Status, v.Data1, v.Data2)
	case osc.TagTrue, osc.TagFalse:
		v, err := m.GetBool()
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "%t", v)
	case osc.TagNil:
		if err := m.GetNil(); err != nil {
			return err
		}
		sb.WriteString("nil")
	case osc.TagInfinitum:
		if err := m.GetInfinitum(); err != nil {
			return err
		}
		sb.WriteString("inf")
	case osc.TagBeginArray:
		if err := m.GetBeginArray(); err != nil {
			return err
		}
		sb.WriteByte('[')
	case osc.TagEndArray:
		if err := m.GetEndArray(); err != nil {
			return err
		}
		sb.WriteByte(']')
	default:
		return fmt.Errorf("oscfmt: unsupported type tag %q", tag)
	}
	return nil
}
