package session

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	now := time.Now()
	tok, err := IssueToken("secret", 42, time.Hour, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	id, err := VerifyToken("secret", tok, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected user 42, got %d", id)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	now := time.Now()
	tok, err := IssueToken("secret", 7, time.Minute, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := VerifyToken("secret", tok, now.Add(2*time.Minute)); err == nil {
		t.Fatalf("expected expired token to fail")
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	now := time.Now()
	tok, err := IssueToken("secret", 7, time.Hour, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := VerifyToken("other", tok, now); err == nil {
		t.Fatalf("expected signature mismatch to fail")
	}
}
