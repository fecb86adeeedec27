package auth

import (
	"errors"
	"fmt"
	"time"

	"climatec_os/internal/domain/entities"
	"climatec_os/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/juju/clock"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	tokenIssuer   = "climatec_os"
	emailClaimKey = "email"
)

var ErrInvalidToken = errors.New("invalid token")

// JWTIssuer signs HS256 session tokens. The token ID (jti) is the key the
// session store tracks, so a token is only honoured while its session is active.
type JWTIssuer struct {
	key   []byte
	ttl   time.Duration
	clock clock.Clock
}

var _ interfaces.ITokenIssuer = (*JWTIssuer)(nil)

func NewJWTIssuer(secret string, ttl time.Duration, clk clock.Clock) *JWTIssuer {
	if clk == nil {
		clk = clock.WallClock
	}
	return &JWTIssuer{key: []byte(secret), ttl: ttl, clock: clk}
}

func (i *JWTIssuer) Issue(user entities.User) (string, entities.Session, error) {
	now := i.clock.Now().UTC().Truncate(time.Second)
	session := entities.Session{
		TokenID:   uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		IssuedAt:  now,
		ExpiresAt: now.Add(i.ttl),
	}

	tok, err := jwt.NewBuilder().
		JwtID(session.TokenID).
		Issuer(tokenIssuer).
		Subject(session.UserID).
		IssuedAt(session.IssuedAt).
		Expiration(session.ExpiresAt).
		Claim(emailClaimKey, session.Email).
		Build()
	if err != nil {
		return "", entities.Session{}, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, i.key))
	if err != nil {
		return "", entities.Session{}, fmt.Errorf("sign token: %w", err)
	}
	return string(signed), session, nil
}

// Parse verifies signature, issuer and expiry against the issuer clock.
func (i *JWTIssuer) Parse(token string) (entities.Session, error) {
	tok, err := jwt.Parse([]byte(token),
		jwt.WithKey(jwa.HS256, i.key),
		jwt.WithClock(i.clock),
		jwt.WithIssuer(tokenIssuer),
	)
	if err != nil {
		return entities.Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if tok.JwtID() == "" || tok.Subject() == "" {
		return entities.Session{}, ErrInvalidToken
	}

	email, _ := tok.PrivateClaims()[emailClaimKey].(string)
	return entities.Session{
		TokenID:   tok.JwtID(),
		UserID:    tok.Subject(),
		Email:     email,
		IssuedAt:  tok.IssuedAt().UTC(),
		ExpiresAt: tok.Expiration().UTC(),
	}, nil
}
