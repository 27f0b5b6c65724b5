package shareable

import (
	"bytes"
	"testing"
)

func testKey() []byte {
	return bytes.Repeat([]byte{0x2a}, 32)
}

func TestEncrypter_RoundTrip(t *testing.T) {
	enc, err := NewEncrypter(testKey())
	if err != nil {
		t.Fatalf("NewEncrypter failed: %v", err)
	}

	sealed, err := enc.EncryptID("acct_12345")
	if err != nil {
		t.Fatalf("EncryptID failed: %v", err)
	}
	if sealed == "acct_12345" {
		t.Fatalf("shareable id must not expose the raw identifier")
	}

	opened, err := enc.DecryptID(sealed)
	if err != nil {
		t.Fatalf("DecryptID failed: %v", err)
	}
	if opened != "acct_12345" {
		t.Fatalf("round trip mismatch: %q", opened)
	}
}

func TestEncrypter_BadKeyLength(t *testing.T) {
	if _, err := NewEncrypter([]byte("short")); err == nil {
		t.Fatalf("expected error for short key")
	}
}

func TestEncrypter_TamperedCiphertext(t *testing.T) {
	enc, err := NewEncrypter(testKey())
	if err != nil {
		t.Fatalf("NewEncrypter failed: %v", err)
	}

	if _, err := enc.DecryptID("not-base64!!"); err == nil {
		t.Fatalf("expected error for invalid encoding")
	}

	sealed, err := enc.EncryptID("acct_1")
	if err != nil {
		t.Fatalf("EncryptID failed: %v", err)
	}
	tampered := "A" + sealed[1:]
	if tampered == sealed {
		tampered = "B" + sealed[1:]
	}
	if _, err := enc.DecryptID(tampered); err == nil {
		t.Fatalf("expected error for tampered ciphertext")
	}
}

func TestEncrypter_DistinctCiphertexts(t *testing.T) {
	enc, err := NewEncrypter(testKey())
	if err != nil {
		t.Fatalf("NewEncrypter failed: %v", err)
	}

	a, err := enc.EncryptID("acct_1")
	if err != nil {
		t.Fatalf("EncryptID failed: %v", err)
	}
	b, err := enc.EncryptID("acct_1")
	if err != nil {
		t.Fatalf("EncryptID failed: %v", err)
	}
	if a == b {
		t.Fatalf("expected random nonces to yield distinct ciphertexts")
	}
}
