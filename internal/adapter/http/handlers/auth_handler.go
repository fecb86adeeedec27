package handlers

import (
	"errors"
	"net/http"

	request "climatec_os/internal/adapter/http/dto/request"
	response "climatec_os/internal/adapter/http/dto/response"
	"climatec_os/internal/usecase"
	"climatec_os/pkg"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	usecase usecase.IAuthUseCase
}

func NewAuthHandler(uc usecase.IAuthUseCase) *AuthHandler {
	return &AuthHandler{usecase: uc}
}

// SignUp godoc
// @Summary      Create an operator account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      request.SignUpRequest  true  "account"
// @Success      201   {object}  response.UserResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Router       /auth/sign-up [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var payload request.SignUpRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}

	user, err := h.usecase.SignUp(c.Request.Context(), payload.ToInput())
	if err != nil {
		respondError(c, mapAuthError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromUser(user))
}

// SignIn godoc
// @Summary      Sign in and receive a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      request.SignInRequest  true  "credentials"
// @Success      200   {object}  response.SignInResponse
// @Failure      401   {object}  pkg.HTTPError
// @Router       /auth/sign-in [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var payload request.SignInRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}

	res, err := h.usecase.SignIn(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondError(c, mapAuthError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromAuthResult(res))
}

// SignOut ends the session of the bearer token used on this request.
func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.usecase.SignOut(c.Request.Context(), c.GetString(ctxTokenKey)); err != nil {
		respondError(c, mapAuthError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, session, ok := CurrentUser(c)
	if !ok {
		respondError(c, errUnauthorized)
		return
	}
	c.JSON(http.StatusOK, response.FromSession(user, session))
}

func mapAuthError(err error) *pkg.AppError {
	if appErr, ok := validationError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return pkg.NewDomainErrorSimple("INVALID_CREDENTIALS", "Invalid email or password", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrUnauthenticated):
		return errUnauthorized
	case errors.Is(err, usecase.ErrEmailAlreadyInUse):
		return pkg.NewDomainErrorSimple("EMAIL_ALREADY_IN_USE", "Email already in use", http.StatusConflict)
	default:
		return internalError(err)
	}
}
