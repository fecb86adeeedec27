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

// MaterialHandler exposes the material catalog.
type MaterialHandler struct {
	usecase usecase.IMaterialUseCase
}

func NewMaterialHandler(uc usecase.IMaterialUseCase) *MaterialHandler {
	return &MaterialHandler{usecase: uc}
}

func (h *MaterialHandler) List(c *gin.Context) {
	materials, err := h.usecase.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, mapMaterialError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromMaterials(materials))
}

// Create godoc
// @Summary      Add a material to the catalog
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        body  body      request.MaterialRequest  true  "material"
// @Success      201   {object}  response.MaterialResponse
// @Failure      400   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /materials [post]
func (h *MaterialHandler) Create(c *gin.Context) {
	var payload request.MaterialRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}

	m, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		respondError(c, mapMaterialError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromMaterial(m))
}

func (h *MaterialHandler) GetByID(c *gin.Context) {
	m, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapMaterialError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromMaterial(m))
}

func mapMaterialError(err error) *pkg.AppError {
	if appErr, ok := validationError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidMaterialID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrMaterialNotFound):
		return pkg.NewDomainErrorSimple("MATERIAL_NOT_FOUND", "Material not found", http.StatusNotFound)
	default:
		return internalError(err)
	}
}
