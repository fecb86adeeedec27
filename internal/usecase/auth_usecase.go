package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"climatec_os/internal/domain/entities"
	"climatec_os/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/juju/clock"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrUnauthenticated    = errors.New("authentication required")
)

const minPasswordLength = 6

type SignUpInput struct {
	Email    string
	Name     string
	Password string
}

// AuthResult is returned on sign-in: the bearer token and who it belongs to.
type AuthResult struct {
	Token   string
	User    entities.User
	Session entities.Session
}

type IAuthUseCase interface {
	SignUp(ctx context.Context, in SignUpInput) (entities.User, error)
	SignIn(ctx context.Context, email, password string) (AuthResult, error)
	SignOut(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (entities.User, entities.Session, error)
}

type AuthUseCase struct {
	users    interfaces.IUserRepository
	hasher   interfaces.IPasswordHasher
	tokens   interfaces.ITokenIssuer
	sessions interfaces.ISessionStore
	clock    clock.Clock
}

var _ IAuthUseCase = (*AuthUseCase)(nil)

func NewAuthUseCase(users interfaces.IUserRepository, hasher interfaces.IPasswordHasher, tokens interfaces.ITokenIssuer, sessions interfaces.ISessionStore, clk clock.Clock) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: tokens, sessions: sessions, clock: orWallClock(clk)}
}

// SignUp registers a user. E-mails are compared lowercased.
func (u *AuthUseCase) SignUp(ctx context.Context, in SignUpInput) (entities.User, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)

	v := Violations{}
	v.required("email", email)
	if email != "" && !strings.Contains(email, "@") {
		v["email"] = "invalid"
	}
	if len(in.Password) < minPasswordLength {
		v["password"] = "too_short"
	}
	if err := v.Err(); err != nil {
		return entities.User{}, err
	}

	existing, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return entities.User{}, err
	}
	if existing.ID != "" {
		return entities.User{}, ErrEmailAlreadyInUse
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		log.Printf("[auth][usecase] hash failed email=%s err=%v", email, err)
		return entities.User{}, err
	}
	if name == "" {
		name = email
	}

	created, err := u.users.Create(ctx, entities.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    u.clock.Now().UTC(),
	})
	if err != nil {
		return entities.User{}, err
	}
	log.Printf("[auth][usecase] signed up user_id=%s", created.ID)
	return created, nil
}

// SignIn checks the password and opens a session. Unknown e-mail and wrong
// password return the same error.
func (u *AuthUseCase) SignIn(ctx context.Context, email, password string) (AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, err
	}
	if user.ID == "" {
		return AuthResult{}, ErrInvalidCredentials
	}
	if err := u.hasher.Compare(user.PasswordHash, password); err != nil {
		log.Printf("[auth][usecase] sign-in rejected user_id=%s", user.ID)
		return AuthResult{}, ErrInvalidCredentials
	}

	token, session, err := u.tokens.Issue(user)
	if err != nil {
		log.Printf("[auth][usecase] token issue failed user_id=%s err=%v", user.ID, err)
		return AuthResult{}, err
	}
	u.sessions.SignIn(session)
	return AuthResult{Token: token, User: user, Session: session}, nil
}

// SignOut ends the session of token. Signing out twice is not an error.
func (u *AuthUseCase) SignOut(ctx context.Context, token string) error {
	session, err := u.tokens.Parse(strings.TrimSpace(token))
	if err != nil {
		return ErrUnauthenticated
	}
	u.sessions.SignOut(session.TokenID)
	return nil
}

// Authenticate accepts a token only while its session is active in the store.
func (u *AuthUseCase) Authenticate(ctx context.Context, token string) (entities.User, entities.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.User{}, entities.Session{}, ErrUnauthenticated
	}
	claims, err := u.tokens.Parse(token)
	if err != nil {
		return entities.User{}, entities.Session{}, ErrUnauthenticated
	}
	session, ok := u.sessions.Current(claims.TokenID)
	if !ok {
		return entities.User{}, entities.Session{}, ErrUnauthenticated
	}

	user, err := u.users.GetByID(ctx, session.UserID)
	if err != nil {
		return entities.User{}, entities.Session{}, err
	}
	if user.ID == "" {
		u.sessions.SignOut(session.TokenID)
		return entities.User{}, entities.Session{}, ErrUnauthenticated
	}
	return user, session, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
