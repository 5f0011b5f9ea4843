package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

var encoding = base64.RawURLEncoding

// HMACStrategy signs "issuer:userID:expires" payloads with HMAC-SHA256.
// Tokens have the form base64url(payload) "." base64url(signature).
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	issuer := opts.Issuer
	if issuer == "" {
		issuer = defaultIssuer
	}
	return &HMACStrategy{secret: []byte(secret), ttl: ttl, issuer: issuer, now: time.Now}
}

// IssueToken generates signed auth token for the user.
func (s *HMACStrategy) IssueToken(userID int64) (string, error) {
	if userID <= 0 {
		return "", fmt.Errorf("issue token: invalid user id %d", userID)
	}
	expires := s.now().Add(s.ttl).Unix()
	payload := fmt.Sprintf("%s:%d:%d", s.issuer, userID, expires)
	return encoding.EncodeToString([]byte(payload)) + "." + encoding.EncodeToString(s.sign(payload)), nil
}

// ParseToken validates token and returns encoded user ID.
func (s *HMACStrategy) ParseToken(token string) (int64, error) {
	encodedPayload, encodedSig, ok := strings.Cut(token, ".")
	if !ok {
		return 0, ErrInvalidToken
	}

	rawPayload, err := encoding.DecodeString(encodedPayload)
	if err != nil {
		return 0, ErrInvalidToken
	}
	sig, err := encoding.DecodeString(encodedSig)
	if err != nil {
		return 0, ErrInvalidToken
	}

	payload := string(rawPayload)
	if !hmac.Equal(s.sign(payload), sig) {
		return 0, ErrInvalidToken
	}

	parts := strings.Split(payload, ":")
	if len(parts) != 3 || parts[0] != s.issuer {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidToken
	}

	expires, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	if time.Unix(expires, 0).Before(s.now()) {
		return 0, ErrInvalidToken
	}

	return userID, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(payload string) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return mac.Sum(nil)
}
