package auth

import "time"

// Strategy issues and verifies bearer tokens.
type Strategy interface {
	IssueToken(userID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// Options tune token issuing. Zero values fall back to defaults.
type Options struct {
	TTL    time.Duration
	Issuer string
}

const (
	defaultTTL    = 24 * time.Hour
	defaultIssuer = "storefront"
)
