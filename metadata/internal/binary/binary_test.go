package binary

import (
	"testing"
)

func TestRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteU32LE(0xdeadbeef)
	w.Byte(7)
	w.WriteU32(300)
	w.WriteName("com/example/Outer.Inner")
	w.WriteBytes([]byte{1, 2, 3})

	r := NewReader(w.Bytes())
	if v, err := r.ReadU32LE(); err != nil || v != 0xdeadbeef {
		t.Fatalf("ReadU32LE: got (%#x, %v)", v, err)
	}
	if b, err := r.ReadByte(); err != nil || b != 7 {
		t.Fatalf("ReadByte: got (%d, %v)", b, err)
	}
	if v, err := r.ReadU32(); err != nil || v != 300 {
		t.Fatalf("ReadU32: got (%d, %v)", v, err)
	}
	if s, err := r.ReadName(); err != nil || s != "com/example/Outer.Inner" {
		t.Fatalf("ReadName: got (%q, %v)", s, err)
	}
	rest, err := r.ReadRemaining()
	if err != nil || len(rest) != 3 {
		t.Fatalf("ReadRemaining: got (%v, %v)", rest, err)
	}
	if r.Position() != w.Len() {
		t.Errorf("position %d after consuming %d bytes", r.Position(), w.Len())
	}
}

func TestReadBytesRejectsOversizedLength(t *testing.T) {
	// A few input bytes must never satisfy a multi-gigabyte length
	// prefix, and must fail before the buffer is allocated.
	r := NewReader([]byte{1, 2, 3})
	if _, err := r.ReadBytes(1 << 30); err == nil {
		t.Fatal("expected error for length beyond input")
	}
	r = NewReader([]byte{1, 2, 3})
	if _, err := r.ReadBytes(-1); err == nil {
		t.Fatal("expected error for negative length")
	}
}

func TestReadNameTruncatedLength(t *testing.T) {
	w := NewWriter()
	w.WriteU32(1 << 30)
	w.WriteBytes([]byte("short"))

	r := NewReader(w.Bytes())
	if _, err := r.ReadName(); err == nil {
		t.Fatal("expected error for name length beyond input")
	}
}

func TestReadNameInvalidUTF8(t *testing.T) {
	w := NewWriter()
	w.WriteU32(2)
	w.WriteBytes([]byte{0xff, 0xfe})

	r := NewReader(w.Bytes())
	if _, err := r.ReadName(); err == nil {
		t.Fatal("expected error for invalid UTF-8")
	}
}

func TestReadU32Overflow(t *testing.T) {
	r := NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
	if _, err := r.ReadU32(); err == nil {
		t.Fatal("expected overflow error")
	}
}
