package service

import (
	"bytes"
	"testing"
)

func TestContainerRoundTrip(t *testing.T) {
	snapshot := []byte(`{"version":1,"students":[{"name":"דנה"}]}`)

	box, err := Encode(snapshot, "s3cret")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(box, "s3cret")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(got, snapshot) {
		t.Fatalf("round trip mismatch: got %q want %q", got, snapshot)
	}
}

func TestContainerLayout(t *testing.T) {
	snapshot := []byte(`{"version":1}`)
	box, err := Encode(snapshot, "pw")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// header is salt(32) + iv(16) + tag(16); ciphertext follows
	if len(box) <= headerLen {
		t.Fatalf("container too short: %d bytes", len(box))
	}

	// gzip always produces output, so ciphertext must be non-empty
	if len(box[headerLen:]) == 0 {
		t.Fatal("empty ciphertext")
	}

	// two encodes of the same payload differ (fresh salt and IV)
	box2, err := Encode(snapshot, "pw")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if bytes.Equal(box[:saltLen], box2[:saltLen]) {
		t.Fatal("salt reused across encodes")
	}
	if bytes.Equal(box[saltLen:saltLen+ivLen], box2[saltLen:saltLen+ivLen]) {
		t.Fatal("IV reused across encodes")
	}
}

func TestContainerWrongPassword(t *testing.T) {
	box, err := Encode([]byte(`{"version":1}`), "right")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := Decode(box, "wrong"); err != ErrDecrypt {
		t.Fatalf("want ErrDecrypt, got %v", err)
	}
}

func TestContainerTamperedTag(t *testing.T) {
	box, err := Encode([]byte(`{"version":1}`), "pw")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	box[saltLen+ivLen] ^= 0xFF // flip a tag bit
	if _, err := Decode(box, "pw"); err != ErrDecrypt {
		t.Fatalf("want ErrDecrypt, got %v", err)
	}
}

func TestContainerTooShort(t *testing.T) {
	if _, err := Decode(make([]byte, headerLen-1), "pw"); err != ErrMalformed {
		t.Fatalf("want ErrMalformed, got %v", err)
	}
}
