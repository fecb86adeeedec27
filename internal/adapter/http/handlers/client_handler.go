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

// ClientHandler handles HTTP requests for clients.
type ClientHandler struct {
	usecase usecase.IClientUseCase
}

func NewClientHandler(uc usecase.IClientUseCase) *ClientHandler {
	return &ClientHandler{usecase: uc}
}

// List godoc
// @Summary      List clients, optionally filtered by name, e-mail or phone
// @Tags         clients
// @Produce      json
// @Param        q    query     string  false  "search term"
// @Success      200  {array}   response.ClientResponse
// @Security     Bearer
// @Router       /clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.usecase.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, mapClientError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromClients(clients))
}

// Create godoc
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body      request.ClientRequest  true  "client"
// @Success      201   {object}  response.ClientResponse
// @Failure      400   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var payload request.ClientRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}

	client, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		respondError(c, mapClientError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromClient(client))
}

func (h *ClientHandler) GetByID(c *gin.Context) {
	client, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapClientError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromClient(client))
}

func (h *ClientHandler) Update(c *gin.Context) {
	var payload request.ClientRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}

	client, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		respondError(c, mapClientError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromClient(client))
}

func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, mapClientError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func mapClientError(err error) *pkg.AppError {
	if appErr, ok := validationError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidClientID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	default:
		return internalError(err)
	}
}
