package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidToken is returned for tokens that fail any verification step.
var ErrInvalidToken = errors.New("invalid auth token")

const defaultTokenTTL = 24 * time.Hour

// HMACStrategy signs session tokens with HMAC-SHA256. A token carries only
// the user id and an expiry timestamp; nothing is stored server side.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
}

// NewHMACStrategy builds a strategy around the shared signing secret.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &HMACStrategy{secret: []byte(secret), ttl: ttl}
}

// IssueToken signs "userID:expiry" and base64-encodes payload plus signature.
func (s *HMACStrategy) IssueToken(userID int64) (string, error) {
	expiry := time.Now().Add(s.ttl).Unix()
	payload := strconv.FormatInt(userID, 10) + ":" + strconv.FormatInt(expiry, 10)
	return base64.StdEncoding.EncodeToString([]byte(payload + ":" + s.sign(payload))), nil
}

// ParseToken verifies the signature before trusting any field, then rejects
// expired tokens.
func (s *HMACStrategy) ParseToken(token string) (int64, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0, ErrInvalidToken
	}

	idPart, rest, ok := strings.Cut(string(raw), ":")
	if !ok {
		return 0, ErrInvalidToken
	}
	expiryPart, sig, ok := strings.Cut(rest, ":")
	if !ok || strings.Contains(sig, ":") {
		return 0, ErrInvalidToken
	}

	payload := idPart + ":" + expiryPart
	if !hmac.Equal([]byte(s.sign(payload)), []byte(sig)) {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	expiry, err := strconv.ParseInt(expiryPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	if time.Now().After(time.Unix(expiry, 0)) {
		return 0, ErrInvalidToken
	}

	return userID, nil
}

// Name identifies the strategy in logs and configuration.
func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
