package cursor

import (
	"encoding/base64"
	"testing"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	c := New("obj-42", 0.7315024999, 9)

	decoded := Decode(c.Encode())

	if decoded.Shape() != Current {
		t.Fatalf("Shape() = %v, want Current", decoded.Shape())
	}
	if decoded.ObjectID() != "obj-42" {
		t.Errorf("ObjectID() = %q", decoded.ObjectID())
	}
	if decoded.Score() != 0.731502 {
		t.Errorf("Score() = %v, want 0.731502", decoded.Score())
	}
	pos, ok := decoded.Position()
	if !ok || pos != 9 {
		t.Errorf("Position() = %d, %v, want 9, true", pos, ok)
	}
}

func TestEncodeDecode_LegacyShape(t *testing.T) {
	c := NewLegacy("obj-7", 1.25)

	decoded := Decode(c.Encode())

	if decoded.Shape() != Legacy {
		t.Fatalf("Shape() = %v, want Legacy", decoded.Shape())
	}
	if decoded.ObjectID() != "obj-7" {
		t.Errorf("ObjectID() = %q", decoded.ObjectID())
	}
	if decoded.Score() != 1.25 {
		t.Errorf("Score() = %v", decoded.Score())
	}
	if _, ok := decoded.Position(); ok {
		t.Error("Position() reported ok for a legacy cursor")
	}
}

func TestDecode_LegacyWireFormat(t *testing.T) {
	// Raw legacy payload as an old client would have stored it.
	raw := base64.RawURLEncoding.EncodeToString([]byte(`{"score":-0.041573,"object_id":"obj-3"}`))

	decoded := Decode(raw)

	if decoded.Shape() != Legacy {
		t.Fatalf("Shape() = %v, want Legacy", decoded.Shape())
	}
	if decoded.Score() != -0.041573 {
		t.Errorf("Score() = %v", decoded.Score())
	}
}

func TestDecode_PaddedBase64(t *testing.T) {
	raw := base64.URLEncoding.EncodeToString([]byte(`{"score":0.5,"object_id":"obj-1","position":3}`))

	decoded := Decode(raw)

	if decoded.Shape() != Current {
		t.Fatalf("Shape() = %v, want Current", decoded.Shape())
	}
	pos, _ := decoded.Position()
	if pos != 3 {
		t.Errorf("Position() = %d", pos)
	}
}

func TestDecode_MalformedNeverFails(t *testing.T) {
	inputs := []string{
		"",
		"not base64 at all!!!",
		base64.RawURLEncoding.EncodeToString([]byte(`{"truncated`)),
		base64.RawURLEncoding.EncodeToString([]byte(`[]`)),
		base64.RawURLEncoding.EncodeToString([]byte(`{"score":1.0}`)), // missing object_id
		"AAAA",
	}

	for _, in := range inputs {
		if got := Decode(in); !got.IsNone() {
			t.Errorf("Decode(%q) = %+v, want None", in, got)
		}
	}
}

func TestDecode_NegativePositionTreatedAsLegacy(t *testing.T) {
	raw := base64.RawURLEncoding.EncodeToString([]byte(`{"score":0.5,"object_id":"obj-1","position":-2}`))

	decoded := Decode(raw)

	if decoded.Shape() != Legacy {
		t.Errorf("Shape() = %v, want Legacy", decoded.Shape())
	}
}

func TestEncode_NoneIsEmpty(t *testing.T) {
	var c Cursor
	if got := c.Encode(); got != "" {
		t.Errorf("Encode() = %q, want empty", got)
	}
}

func TestRound(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0.1234561, 0.123456},
		{0.1234569, 0.123457},
		{-0.7315028, -0.731503},
		{2, 2},
	}
	for _, c := range cases {
		if got := Round(c.in); got != c.want {
			t.Errorf("Round(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
