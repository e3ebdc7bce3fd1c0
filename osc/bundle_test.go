package osc

import (
	"bytes"
	"testing"
)

func TestBundleRoundTrip(t *testing.T) {
	msg1, _ := NewMessage("/a")
	msg1.AddInt32(1)
	enc1, _ := msg1.MarshalBinary()

	msg2, _ := NewMessage("/b")
	msg2.AddString("two")
	enc2, _ := msg2.MarshalBinary()

	tt := NewTimetag(1000, 0)
	bd := NewBundle(tt)
	if bd.IsEmpty() == false {
		t.Fatal("new bundle should be empty")
	}
	if err := bd.AddContents(enc1); err != nil {
		t.Fatalf("AddContents(enc1): %v", err)
	}
	if err := bd.AddContents(enc2); err != nil {
		t.Fatalf("AddContents(enc2): %v", err)
	}
	if bd.IsEmpty() {
		t.Fatal("bundle with elements should not be empty")
	}

	encoded, err := bd.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(encoded) != bd.Size() {
		t.Fatalf("MarshalBinary produced %d bytes, Size() said %d", len(encoded), bd.Size())
	}

	decoded, err := ParseBundle(encoded)
	if err != nil {
		t.Fatalf("ParseBundle: %v", err)
	}
	if decoded.Timetag != tt {
		t.Errorf("Timetag = %d, want %d", decoded.Timetag, tt)
	}

	var got []string
	for decoded.IsElementAvailable() {
		elem, err := decoded.NextElement()
		if err != nil {
			t.Fatalf("NextElement: %v", err)
		}
		msg, err := ParseMessage(elem)
		if err != nil {
			t.Fatalf("ParseMessage(elem): %v", err)
		}
		got = append(got, msg.Address)
	}
	if len(got) != 2 || got[0] != "/a" || got[1] != "/b" {
		t.Errorf("decoded elements = %v, want [/a /b]", got)
	}
}

func TestBundleRejectsBadHeader(t *testing.T) {
	bad := make([]byte, MinBundleSize)
	copy(bad, "notabundl")
	if _, err := ParseBundle(bad); err == nil {
		t.Error("expected error for bundle without #bundle header")
	}
}

func TestBundleRemainingCapacity(t *testing.T) {
	bd := NewBundle(Immediate)
	if bd.RemainingCapacity() != MaxBundleElementsSize {
		t.Errorf("RemainingCapacity() = %d, want %d", bd.RemainingCapacity(), MaxBundleElementsSize)
	}
	msg, _ := NewMessage("/a")
	enc, _ := msg.MarshalBinary()
	bd.AddContents(enc)
	if bd.RemainingCapacity() != MaxBundleElementsSize-4-len(enc) {
		t.Errorf("RemainingCapacity() after AddContents = %d, want %d", bd.RemainingCapacity(), MaxBundleElementsSize-4-len(enc))
	}
}

func FuzzBundleRoundTrip(f *testing.F) {
	msg, _ := NewMessage("/seed")
	msg.AddInt32(1)
	enc, _ := msg.MarshalBinary()
	seed := NewBundle(NewTimetag(1, 0))
	seed.AddContents(enc)
	b, _ := seed.MarshalBinary()
	f.Add(b)

	f.Fuzz(func(t *testing.T, b []byte) {
		bd, err := ParseBundle(b)
		if err != nil {
			return
		}
		out, err := bd.MarshalBinary()
		if err != nil {
			t.Fatalf("MarshalBinary of parsed bundle: %v", err)
		}
		if !bytes.Equal(out, b) {
			t.Fatalf("round trip changed bundle: %x != %x", out, b)
		}
		for bd.IsElementAvailable() {
			if _, err := bd.NextElement(); err != nil {
				return
			}
		}
	})
}
