package handlers

import (
	"errors"
	"strings"

	"climatec_os/internal/domain/entities"
	"climatec_os/internal/usecase"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserKey    = "auth.user"
	ctxSessionKey = "auth.session"
	ctxTokenKey   = "auth.token"
)

// RequireAuth rejects requests without an active bearer session and stores the
// signed-in user on the gin context.
func RequireAuth(auth usecase.IAuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			respondError(c, errUnauthorized)
			c.Abort()
			return
		}

		user, session, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, usecase.ErrUnauthenticated) {
				respondError(c, errUnauthorized)
			} else {
				respondError(c, internalError(err))
			}
			c.Abort()
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxSessionKey, session)
		c.Set(ctxTokenKey, token)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// CurrentUser returns the user set by RequireAuth.
func CurrentUser(c *gin.Context) (entities.User, entities.Session, bool) {
	u, okUser := c.Get(ctxUserKey)
	s, okSession := c.Get(ctxSessionKey)
	if !okUser || !okSession {
		return entities.User{}, entities.Session{}, false
	}
	user, _ := u.(entities.User)
	session, _ := s.(entities.Session)
	return user, session, true
}
