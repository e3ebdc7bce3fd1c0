package slip

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	type testCase struct {
		name   string
		packet []byte
	}

	cases := []testCase{
		{"plain bytes", []byte{1, 2, 3, 4}},
		{"contains End", []byte{1, End, 3}},
		{"contains Esc", []byte{1, Esc, 3}},
		{"contains Esc then End byte", []byte{Esc, End}},
		{"empty", []byte{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := Encode(nil, tc.packet)
			if encoded[len(encoded)-1] != End {
				t.Fatalf("encoded form must end with End, got %x", encoded)
			}

			d := NewDecoder(1472)
			var decoded []byte
			var got bool
			for _, b := range encoded {
				packet, complete, err := d.Feed(b)
				if err != nil {
					t.Fatalf("Feed: %v", err)
				}
				if complete {
					decoded = packet
					got = true
				}
			}
			if len(tc.packet) == 0 {
				if got {
					t.Fatal("expected no packet for empty input (leading End is a no-op)")
				}
				return
			}
			if !got {
				t.Fatal("decoder never reported a complete packet")
			}
			if !bytes.Equal(decoded, tc.packet) {
				t.Errorf("decoded = %v, want %v", decoded, tc.packet)
			}
		})
	}
}

func TestDecoderUnexpectedByteAfterEsc(t *testing.T) {
	d := NewDecoder(1472)
	d.Feed(1)
	if _, _, err := d.Feed(Esc); err != nil {
		t.Fatalf("Feed(Esc): %v", err)
	}
	_, _, err := d.Feed('x')
	if err == nil {
		t.Fatal("expected error for unescaped byte after Esc")
	}
}

func TestDecoderRejectsOverlongPacket(t *testing.T) {
	d := NewDecoder(4)
	for i := 0; i < 4; i++ {
		if _, _, err := d.Feed(byte(i)); err != nil {
			t.Fatalf("Feed(%d): %v", i, err)
		}
	}
	if _, _, err := d.Feed(5); err == nil {
		t.Fatal("expected error once packet exceeds maxSize")
	}
}

func TestDecoderMultiplePacketsInOneStream(t *testing.T) {
	d := NewDecoder(1472)
	stream := Encode(nil, []byte{1, 2})
	stream = Encode(stream, []byte{3, 4, 5})

	var packets [][]byte
	for _, b := range stream {
		if packet, complete, err := d.Feed(b); err != nil {
			t.Fatalf("Feed: %v", err)
		} else if complete {
			packets = append(packets, append([]byte(nil), packet...))
		}
	}

	if len(packets) != 2 {
		t.Fatalf("got %d packets, want 2", len(packets))
	}
	if !bytes.Equal(packets[0], []byte{1, 2}) {
		t.Errorf("packets[0] = %v, want [1 2]", packets[0])
	}
	if !bytes.Equal(packets[1], []byte{3, 4, 5}) {
		t.Errorf("packets[1] = %v, want [3 4 5]", packets[1])
	}
}
