package auth

import (
	"crypto/subtle"
	"time"

	"github.com/rs/zerolog"
)

// Gate is the operator login check: a single configured credential pair.
// The console has exactly one operator account; there is no user table
// behind this.
type Gate struct {
	log      zerolog.Logger
	email    string
	password string
	tokens   *TokenService
	tokenTTL time.Duration
}

// NewGate creates the auth gate.
func NewGate(email, password string, tokens *TokenService, tokenTTL time.Duration, baseLogger *zerolog.Logger) *Gate {
	return &Gate{
		log:      baseLogger.With().Str("component", "auth_gate").Logger(),
		email:    email,
		password: password,
		tokens:   tokens,
		tokenTTL: tokenTTL,
	}
}

// Login checks the credential pair and, on success, issues a session
// token. Comparison is constant-time.
func (g *Gate) Login(email, password string) (string, bool) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(g.email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) == 1
	if !emailOK || !passOK {
		g.log.Warn().Str("email", email).Msg("Login rejected")
		return "", false
	}

	token, err := g.tokens.CreateToken(email, g.tokenTTL)
	if err != nil {
		g.log.Error().Err(err).Msg("Failed to create session token")
		return "", false
	}
	g.log.Info().Str("email", email).Msg("Operator logged in")
	return token, true
}

// Verify validates a session token and returns the operator email.
func (g *Gate) Verify(token string) (string, error) {
	claims, err := g.tokens.VerifyToken(token)
	if err != nil {
		return "", err
	}
	return claims.Email, nil
}
