package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"climatec_os/internal/adapter/http/handlers/mocks"
	"climatec_os/internal/domain/entities"
	"climatec_os/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestAuthHandler_SignUp(t *testing.T) {
	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAuthUseCase(ctrl)
		r := newTestRouter()
		r.POST("/v1/auth/sign-up", NewAuthHandler(uc).SignUp)

		w := performRequest(r, http.MethodPost, "/v1/auth/sign-up", `{"email":"not-an-email","name":"Ana","password":"123456"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("validation details", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAuthUseCase(ctrl)
		r := newTestRouter()
		r.POST("/v1/auth/sign-up", NewAuthHandler(uc).SignUp)

		uc.EXPECT().SignUp(gomock.Any(), usecase.SignUpInput{Email: "ana@example.com", Name: "Ana", Password: "123"}).
			Return(entities.User{}, &usecase.ValidationError{Violations: usecase.Violations{"password": "too_short"}})

		w := performRequest(r, http.MethodPost, "/v1/auth/sign-up", `{"email":"ana@example.com","name":"Ana","password":"123"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		details, _ := decodeBody(t, w)["details"].(map[string]any)
		if details["password"] != "too_short" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("email in use", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAuthUseCase(ctrl)
		r := newTestRouter()
		r.POST("/v1/auth/sign-up", NewAuthHandler(uc).SignUp)

		uc.EXPECT().SignUp(gomock.Any(), gomock.Any()).Return(entities.User{}, usecase.ErrEmailAlreadyInUse)

		w := performRequest(r, http.MethodPost, "/v1/auth/sign-up", `{"email":"ana@example.com","name":"Ana","password":"123456"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAuthUseCase(ctrl)
		r := newTestRouter()
		r.POST("/v1/auth/sign-up", NewAuthHandler(uc).SignUp)

		uc.EXPECT().SignUp(gomock.Any(), gomock.Any()).Return(entities.User{ID: "u-1", Email: "ana@example.com", PasswordHash: "hash"}, nil)

		w := performRequest(r, http.MethodPost, "/v1/auth/sign-up", `{"email":"ana@example.com","name":"Ana","password":"123456"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["id"] != "u-1" || body["password_hash"] != nil {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestAuthHandler_SignIn(t *testing.T) {
	t.Run("wrong credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAuthUseCase(ctrl)
		r := newTestRouter()
		r.POST("/v1/auth/sign-in", NewAuthHandler(uc).SignIn)

		uc.EXPECT().SignIn(gomock.Any(), "ana@example.com", "nope").Return(usecase.AuthResult{}, usecase.ErrInvalidCredentials)

		w := performRequest(r, http.MethodPost, "/v1/auth/sign-in", `{"email":"ana@example.com","password":"nope"}`)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if decodeBody(t, w)["code"] != "INVALID_CREDENTIALS" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAuthUseCase(ctrl)
		r := newTestRouter()
		r.POST("/v1/auth/sign-in", NewAuthHandler(uc).SignIn)

		uc.EXPECT().SignIn(gomock.Any(), "ana@example.com", "123456").Return(usecase.AuthResult{
			Token:   "tok",
			User:    entities.User{ID: "u-1"},
			Session: entities.Session{ExpiresAt: time.Now().Add(time.Hour)},
		}, nil)

		w := performRequest(r, http.MethodPost, "/v1/auth/sign-in", `{"email":"ana@example.com","password":"123456"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if decodeBody(t, w)["token"] != "tok" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestRequireAuth(t *testing.T) {
	setup := func(t *testing.T) (*gin.Engine, *mocks.MockIAuthUseCase) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAuthUseCase(ctrl)
		h := NewAuthHandler(uc)
		r := newTestRouter()
		authed := r.Group("/v1", RequireAuth(uc))
		authed.GET("/auth/me", h.Me)
		authed.POST("/auth/sign-out", h.SignOut)
		return r, uc
	}

	t.Run("missing header", func(t *testing.T) {
		r, _ := setup(t)
		w := performRequest(r, http.MethodGet, "/v1/auth/me", "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("wrong scheme", func(t *testing.T) {
		r, _ := setup(t)
		req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
		req.Header.Set("Authorization", "Basic abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("expired session", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().Authenticate(gomock.Any(), "tok").Return(entities.User{}, entities.Session{}, usecase.ErrUnauthenticated)

		req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().Authenticate(gomock.Any(), "tok").Return(entities.User{}, entities.Session{}, errors.New("dynamodb down"))

		req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})

	t.Run("me", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().Authenticate(gomock.Any(), "tok").Return(entities.User{ID: "u-1", Name: "Ana"}, entities.Session{TokenID: "jti"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
		req.Header.Set("Authorization", "bearer  tok ")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		user, _ := decodeBody(t, w)["user"].(map[string]any)
		if user["id"] != "u-1" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("sign out uses the request token", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().Authenticate(gomock.Any(), "tok").Return(entities.User{ID: "u-1"}, entities.Session{TokenID: "jti"}, nil)
		uc.EXPECT().SignOut(gomock.Any(), "tok").Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/sign-out", nil)
		req.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})
}
