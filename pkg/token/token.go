// Package token issues short-lived access tokens for the real-time voice
// transport. Tokens are HS256 JWTs in the LiveKit access-token layout: the
// API key is the issuer, the participant identity the subject, and a
// "video" claim carries the room grant.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// DefaultRoom is used when a request names no room.
	DefaultRoom = "voice-agent-room"

	// DefaultTTL is how long an issued token stays valid.
	DefaultTTL = 6 * time.Hour
)

// ErrMissingCredentials is returned when the issuer has no key, secret or URL.
var ErrMissingCredentials = errors.New("missing LiveKit credentials: LIVEKIT_API_KEY, LIVEKIT_API_SECRET and LIVEKIT_URL are required")

// VideoGrant is the room permission set carried in the token.
type VideoGrant struct {
	RoomJoin       bool   `json:"roomJoin,omitempty"`
	Room           string `json:"room,omitempty"`
	CanPublish     *bool  `json:"canPublish,omitempty"`
	CanSubscribe   *bool  `json:"canSubscribe,omitempty"`
	CanPublishData *bool  `json:"canPublishData,omitempty"`
}

// Claims are the JWT claims of an access token.
type Claims struct {
	jwt.RegisteredClaims
	Name  string      `json:"name,omitempty"`
	Video *VideoGrant `json:"video,omitempty"`
}

// Grant is what a client needs to join a room.
type Grant struct {
	Token    string    `json:"token"`
	URL      string    `json:"url"`
	Room     string    `json:"room"`
	Identity string    `json:"identity"`
	Expires  time.Time `json:"expires_at"`
}

// Config holds the issuer credentials.
type Config struct {
	APIKey    string
	APISecret string
	URL       string
	TTL       time.Duration
}

// Issuer signs access tokens.
type Issuer struct {
	cfg Config
	now func() time.Time
}

// NewIssuer validates cfg and returns an Issuer.
func NewIssuer(cfg Config) (*Issuer, error) {
	if cfg.APIKey == "" || cfg.APISecret == "" || cfg.URL == "" {
		return nil, ErrMissingCredentials
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &Issuer{cfg: cfg, now: time.Now}, nil
}

// URL returns the transport URL handed to clients.
func (i *Issuer) URL() string {
	return i.cfg.URL
}

// NewIdentity returns a random participant identity like "user-1a2b3c4d".
func NewIdentity() string {
	return "user-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Issue creates a token allowing identity to join, publish and subscribe in
// room. Empty arguments fall back to DefaultRoom and a random identity.
func (i *Issuer) Issue(room, identity string) (Grant, error) {
	if room == "" {
		room = DefaultRoom
	}
	if identity == "" {
		identity = NewIdentity()
	}

	now := i.now()
	exp := now.Add(i.cfg.TTL)
	yes := true

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.cfg.APIKey,
			Subject:   identity,
			ID:        identity,
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Name: identity,
		Video: &VideoGrant{
			RoomJoin:       true,
			Room:           room,
			CanPublish:     &yes,
			CanSubscribe:   &yes,
			CanPublishData: &yes,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(i.cfg.APISecret))
	if err != nil {
		return Grant{}, fmt.Errorf("signing token: %w", err)
	}

	return Grant{
		Token:    signed,
		URL:      i.cfg.URL,
		Room:     room,
		Identity: identity,
		Expires:  exp,
	}, nil
}

// Verify parses a token signed by this issuer and checks its signature,
// issuer and validity window.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	keyFunc := func(*jwt.Token) (interface{}, error) {
		return []byte(i.cfg.APISecret), nil
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.cfg.APIKey),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return claims, nil
}
