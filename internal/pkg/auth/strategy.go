package auth

import "time"

// Options configures token strategies.
type Options struct {
	TTL time.Duration
}

// Strategy defines token issuing and verification behaviour.
type Strategy interface {
	IssueToken(userID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}
