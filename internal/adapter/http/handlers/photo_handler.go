package handlers

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	response "climatec_os/internal/adapter/http/dto/response"
	"climatec_os/internal/usecase"
	"climatec_os/pkg"

	"github.com/gin-gonic/gin"
)

const photosFormField = "photos"

var errUploadTooLarge = pkg.NewDomainErrorSimple("PAYLOAD_TOO_LARGE", "Upload exceeds the request size limit", http.StatusRequestEntityTooLarge)

// PhotoHandler uploads and removes service-order photos. Parts declared
// larger than maxFileBytes are never read; the whole body is capped at
// maxRequestBytes. A zero limit disables that check.
type PhotoHandler struct {
	usecase         usecase.IPhotoUseCase
	maxFileBytes    int64
	maxRequestBytes int64
}

func NewPhotoHandler(uc usecase.IPhotoUseCase, maxFileBytes, maxRequestBytes int64) *PhotoHandler {
	return &PhotoHandler{usecase: uc, maxFileBytes: maxFileBytes, maxRequestBytes: maxRequestBytes}
}

// Upload godoc
// @Summary      Attach photos to a service order
// @Description  Files are uploaded concurrently. Successful files are kept even when others fail.
// @Tags         service-orders
// @Accept       multipart/form-data
// @Produce      json
// @Param        id      path      string  true  "service order id"
// @Param        photos  formData  file    true  "one or more images"
// @Success      200     {object}  response.PhotoUploadResponse
// @Failure      413     {object}  pkg.HTTPError
// @Failure      422     {object}  response.PhotoUploadResponse
// @Security     Bearer
// @Router       /service-orders/{id}/photos [post]
func (h *PhotoHandler) Upload(c *gin.Context) {
	if h.maxRequestBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxRequestBytes)
	}
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Printf("[photo][handler] request too large order_id=%s limit=%d", c.Param("id"), tooLarge.Limit)
			respondError(c, errUploadTooLarge)
			return
		}
		respondError(c, errInvalidRequest)
		return
	}

	files, err := readPhotoFiles(form.File[photosFormField], h.maxFileBytes)
	if err != nil {
		log.Printf("[photo][handler] read multipart failed order_id=%s err=%v", c.Param("id"), err)
		respondError(c, errInvalidRequest)
		return
	}

	res, err := h.usecase.Upload(c.Request.Context(), c.Param("id"), files)
	if err != nil {
		respondError(c, mapPhotoError(err))
		return
	}

	status := http.StatusOK
	if len(res.Uploaded) == 0 {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, response.FromPhotoUploadResult(res))
}

func (h *PhotoHandler) Delete(c *gin.Context) {
	path := strings.TrimSpace(c.Query("path"))
	if path == "" {
		respondError(c, errInvalidRequest)
		return
	}

	o, err := h.usecase.Delete(c.Request.Context(), c.Param("id"), path)
	if err != nil {
		respondError(c, mapPhotoError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromServiceOrder(o))
}

// readPhotoFiles loads each part into memory, except parts over maxBytes
// which are passed on unread so the use case reports them as too large.
func readPhotoFiles(headers []*multipart.FileHeader, maxBytes int64) ([]usecase.PhotoUpload, error) {
	files := make([]usecase.PhotoUpload, 0, len(headers))
	for _, fh := range headers {
		f := usecase.PhotoUpload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
		}
		if maxBytes <= 0 || fh.Size <= maxBytes {
			body, err := readFileHeader(fh)
			if err != nil {
				return nil, err
			}
			f.Body = body
		}
		files = append(files, f)
	}
	return files, nil
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func mapPhotoError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidServiceOrderID), errors.Is(err, usecase.ErrNoPhotos):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrServiceOrderNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_ORDER_NOT_FOUND", "Service order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPhotoNotFound):
		return pkg.NewDomainErrorSimple("PHOTO_NOT_FOUND", "Photo not found", http.StatusNotFound)
	default:
		return internalError(err)
	}
}
