package osc

import "testing"

func TestPacketProcessMessagesSingleMessage(t *testing.T) {
	msg, _ := NewMessage("/solo")
	msg.AddInt32(9)
	enc, _ := msg.MarshalBinary()

	p, err := NewPacketFromBytes(enc)
	if err != nil {
		t.Fatalf("NewPacketFromBytes: %v", err)
	}
	if !p.IsMessage() || p.IsBundle() {
		t.Fatal("expected packet to be a message")
	}

	var got []string
	err = p.ProcessMessages(func(tt Timetag, m *Message) error {
		got = append(got, m.Address)
		if !tt.IsImmediate() {
			t.Errorf("top-level message should report Immediate timetag, got %d", tt)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("ProcessMessages: %v", err)
	}
	if len(got) != 1 || got[0] != "/solo" {
		t.Errorf("dispatched addresses = %v, want [/solo]", got)
	}
}

// TestPacketProcessMessagesNestedBundles verifies the dispatcher's
// pre-order recursion: a message inside a nested bundle is reported with
// its innermost enclosing bundle's time-tag, not the outer bundle's.
func TestPacketProcessMessagesNestedBundles(t *testing.T) {
	inner, _ := NewMessage("/inner")
	innerEnc, _ := inner.MarshalBinary()

	innerBundleTT := NewTimetag(2000, 0)
	innerBundle := NewBundle(innerBundleTT)
	innerBundle.AddContents(innerEnc)
	innerBundleEnc, _ := innerBundle.MarshalBinary()

	outer, _ := NewMessage("/outer")
	outerEnc, _ := outer.MarshalBinary()

	outerBundleTT := NewTimetag(1000, 0)
	outerBundle := NewBundle(outerBundleTT)
	outerBundle.AddContents(outerEnc)
	outerBundle.AddContents(innerBundleEnc)
	outerEncBundle, _ := outerBundle.MarshalBinary()

	p, err := NewPacketFromBytes(outerEncBundle)
	if err != nil {
		t.Fatalf("NewPacketFromBytes: %v", err)
	}

	type hit struct {
		address string
		tt      Timetag
	}
	var hits []hit
	err = p.ProcessMessages(func(tt Timetag, m *Message) error {
		hits = append(hits, hit{m.Address, tt})
		return nil
	})
	if err != nil {
		t.Fatalf("ProcessMessages: %v", err)
	}

	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2: %+v", len(hits), hits)
	}
	if hits[0].address != "/outer" || hits[0].tt != outerBundleTT {
		t.Errorf("hits[0] = %+v, want {/outer %d}", hits[0], outerBundleTT)
	}
	if hits[1].address != "/inner" || hits[1].tt != innerBundleTT {
		t.Errorf("hits[1] = %+v, want {/inner %d}", hits[1], innerBundleTT)
	}
}

func TestPacketProcessMessagesStopsOnHandlerError(t *testing.T) {
	msg1, _ := NewMessage("/a")
	enc1, _ := msg1.MarshalBinary()
	msg2, _ := NewMessage("/b")
	enc2, _ := msg2.MarshalBinary()

	bd := NewBundle(Immediate)
	bd.AddContents(enc1)
	bd.AddContents(enc2)
	enc, _ := bd.MarshalBinary()

	p, _ := NewPacketFromBytes(enc)

	wantErr := newErr("test", KindCallbackUndefined)
	count := 0
	err := p.ProcessMessages(func(tt Timetag, m *Message) error {
		count++
		return wantErr
	})
	if err != wantErr {
		t.Errorf("ProcessMessages returned %v, want %v", err, wantErr)
	}
	if count != 1 {
		t.Errorf("handler invoked %d times, want 1 (dispatch should stop on first error)", count)
	}
}

func TestNewPacketFromBytesRejectsOversize(t *testing.T) {
	oversized := make([]byte, MaxTransportSize+1)
	oversized[0] = '/'
	if _, err := NewPacketFromBytes(oversized); err == nil {
		t.Error("expected error for packet exceeding MaxTransportSize")
	}
}
