package jwt

import (
	"testing"
	"time"

	"visitor-pass-console/internal/model"
)

func TestSessionRoundTrip(t *testing.T) {
	s := NewSigner("test-secret")
	op := model.Operator{ID: "1", Username: "admin", Password: "admin123", Role: model.RoleAdmin}

	token, err := s.Sign(NewSessionClaim(op, time.Hour))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	claim, err := s.DecodeSession(token)
	if err != nil {
		t.Fatalf("DecodeSession failed: %v", err)
	}
	if claim.Operator.Username != "admin" || claim.Operator.Role != model.RoleAdmin {
		t.Errorf("unexpected operator in claim: %+v", claim.Operator)
	}
	if claim.Operator.Password != "" {
		t.Error("session token must not carry the password")
	}
	if claim.ID == "" || claim.ExpiresAt == nil {
		t.Errorf("expected id and expiry, got %+v", claim.RegisteredClaims)
	}
}

func TestSessionWithoutExpiry(t *testing.T) {
	s := NewSigner("test-secret")
	token, err := s.Sign(NewSessionClaim(model.Operator{ID: "1"}, 0))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	claim, err := s.DecodeSession(token)
	if err != nil {
		t.Fatalf("DecodeSession failed: %v", err)
	}
	if claim.ExpiresAt != nil {
		t.Errorf("expected no expiry, got %v", claim.ExpiresAt)
	}
}

func TestDecodeRejectsForeignSignature(t *testing.T) {
	token, err := NewSigner("one").Sign(NewPassClaim(model.Visitor{ID: "1"}, time.Hour))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if _, err := NewSigner("two").DecodePass(token); err == nil {
		t.Error("expected signature mismatch to fail")
	}
}

func TestDecodeRejectsExpired(t *testing.T) {
	s := NewSigner("test-secret")
	claim := NewPassClaim(model.Visitor{ID: "1"}, time.Hour)
	claim.ExpiresAt.Time = time.Now().Add(-time.Minute)

	token, err := s.Sign(claim)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if _, err := s.DecodePass(token); err == nil {
		t.Error("expected expired pass to fail")
	}
}
