package interfaces

import "climatec_os/internal/domain/entities"

type IPasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// ITokenIssuer signs and verifies bearer tokens. Parse does not know whether
// the session was signed out; ISessionStore does.
type ITokenIssuer interface {
	Issue(user entities.User) (token string, session entities.Session, err error)
	Parse(token string) (entities.Session, error)
}

type ISessionStore interface {
	SignIn(s entities.Session)
	SignOut(tokenID string) bool
	Current(tokenID string) (entities.Session, bool)
}
