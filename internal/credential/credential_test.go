package credential

import "testing"

func TestPlaintext(t *testing.T) {
	h := New(false)
	stored, err := h.Hash("admin123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if stored != "admin123" {
		t.Errorf("plaintext hasher changed the password: %q", stored)
	}
	if !h.Verify(stored, "admin123") {
		t.Error("expected exact password to verify")
	}
	if h.Verify(stored, "Admin123") {
		t.Error("comparison must be case-sensitive")
	}
}

func TestArgon2id(t *testing.T) {
	h := New(true)
	stored, err := h.Hash("pass123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if !IsHashed(stored) {
		t.Fatalf("expected PHC string, got %q", stored)
	}
	if !h.Verify(stored, "pass123") {
		t.Error("expected password to verify")
	}
	if h.Verify(stored, "pass124") {
		t.Error("wrong password verified")
	}

	again, _ := h.Hash("pass123")
	if again == stored {
		t.Error("expected a fresh salt per hash")
	}
}

func TestArgon2idAcceptsLegacyPlaintext(t *testing.T) {
	h := NewArgon2id()
	if !h.Verify("admin123", "admin123") {
		t.Error("expected plaintext record to verify")
	}
	if h.Verify("$argon2id$garbage", "admin123") {
		t.Error("malformed hash must not verify")
	}
}
