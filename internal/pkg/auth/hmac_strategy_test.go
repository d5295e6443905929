package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestNewHMACStrategyTTL(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if strategy.ttl != 24*time.Hour {
		t.Fatalf("unexpected default ttl: %s", strategy.ttl)
	}

	strategy = NewHMACStrategy("secret", Options{TTL: 2 * time.Hour})
	if strategy.ttl != 2*time.Hour {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
}

func TestHMACStrategyIssueAndParse(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken(42)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	userID, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if userID != 42 {
		t.Fatalf("unexpected user id: %d", userID)
	}
}

// forge builds a token signed with the strategy's own key but with an
// arbitrary payload, so each malformed-payload case still passes the
// signature check.
func forge(s *HMACStrategy, payload string) string {
	sig := s.sign(payload)
	return base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%s", payload, sig)))
}

func TestHMACStrategyParseRejections(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})

	cases := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%"},
		{"wrong part count", base64.StdEncoding.EncodeToString([]byte("only:two"))},
		{"bad user id", forge(strategy, fmt.Sprintf("abc:%d", time.Now().Add(time.Minute).Unix()))},
		{"bad expiry", forge(strategy, "10:not-a-number")},
		{"expired", forge(strategy, fmt.Sprintf("10:%d", time.Now().Add(-time.Minute).Unix()))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := strategy.ParseToken(tc.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestHMACStrategyParseTamperedSignature(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken(7)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("decode token: %v", err)
	}
	parts := strings.Split(string(raw), ":")
	parts[2] = "tampered"
	tampered := base64.StdEncoding.EncodeToString([]byte(strings.Join(parts, ":")))
	if _, err := strategy.ParseToken(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategyRejectsForeignKey(t *testing.T) {
	issuer := NewHMACStrategy("secret-a", Options{TTL: time.Minute})
	verifier := NewHMACStrategy("secret-b", Options{TTL: time.Minute})

	token, err := issuer.IssueToken(42)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := verifier.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategyName(t *testing.T) {
	if name := NewHMACStrategy("secret", Options{}).Name(); name != "hmac" {
		t.Fatalf("unexpected name: %s", name)
	}
}
