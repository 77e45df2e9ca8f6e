// Package authdebug mints and inspects the HS256 access tokens the deployed
// app issues, so operators can debug authentication failures without the app
// running. The signing secret is always supplied by the caller.
package authdebug

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrTokenInvalid = errors.New("invalid token")

// Claims is the app's access-token payload.
type Claims struct {
	Sub string `json:"sub"` // user id
	Iat int64  `json:"iat"` // issued at
	Exp int64  `json:"exp"` // expires at
}

// Mint signs claims for the given subject and lifetime.
func Mint(secret []byte, sub string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("empty signing secret")
	}
	now := time.Now()
	return Claims{Sub: sub, Iat: now.Unix(), Exp: now.Add(ttl).Unix()}.SignedString(secret)
}

// SignedString encodes the claims as a compact HS256 JWT.
func (c Claims) SignedString(secret []byte) (string, error) {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payloadJSON, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	payload := base64.RawURLEncoding.EncodeToString(payloadJSON)
	sigInput := header + "." + payload
	sig := hmacSHA256(secret, []byte(sigInput))
	return sigInput + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}

// ParseAndValidate verifies the signature and time bounds and returns the
// claims.
func ParseAndValidate(token string, secret []byte) (*Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrTokenInvalid
	}
	headerB64, payloadB64, sigB64 := parts[0], parts[1], parts[2]

	signingInput := headerB64 + "." + payloadB64
	expectedSig := hmacSHA256(secret, []byte(signingInput))
	sig, err := base64.RawURLEncoding.DecodeString(sigB64)
	if err != nil {
		return nil, fmt.Errorf("decode signature: %w", err)
	}
	if !hmac.Equal(sig, expectedSig) {
		return nil, ErrTokenInvalid
	}

	payloadJSON, err := base64.RawURLEncoding.DecodeString(payloadB64)
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	var claims Claims
	if err := json.Unmarshal(payloadJSON, &claims); err != nil {
		return nil, fmt.Errorf("unmarshal claims: %w", err)
	}

	now := time.Now().Unix()
	if claims.Iat > now {
		return nil, errors.New("token used before issued")
	}
	if claims.Exp < now {
		return nil, errors.New("token expired")
	}
	return &claims, nil
}

func hmacSHA256(secret, message []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(message)
	return mac.Sum(nil)
}
