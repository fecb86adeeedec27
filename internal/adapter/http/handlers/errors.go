package handlers

import (
	"errors"
	"log"
	"net/http"

	"climatec_os/internal/usecase"
	"climatec_os/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errValidation     = pkg.NewDomainErrorSimple("VALIDATION_FAILED", "Invalid request", http.StatusBadRequest)
	errUnauthorized   = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Authentication required", http.StatusUnauthorized)
)

func respondError(c *gin.Context, appErr *pkg.AppError) {
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Printf("[http][handler] %s %s failed code=%s err=%v", c.Request.Method, c.FullPath(), appErr.Code, appErr.Err)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// validationError turns a use case ValidationError into a 400 listing every
// rejected field.
func validationError(err error) (*pkg.AppError, bool) {
	var ve *usecase.ValidationError
	if !errors.As(err, &ve) {
		return nil, false
	}
	return errValidation.WithDetails(ve.Violations), true
}

func internalError(err error) *pkg.AppError {
	return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
}
