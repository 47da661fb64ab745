package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oxanatr/shareit-backend/internal/identity"
	"github.com/oxanatr/shareit-backend/internal/item"
	"github.com/oxanatr/shareit-backend/internal/pkg/request"
	"github.com/oxanatr/shareit-backend/internal/pkg/response"
)

type Handler struct {
	service item.Service
}

func NewHandler(service item.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateItemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ownerID := identity.UserID(c)

	i, err := h.service.Create(c.Request.Context(), ownerID, item.CreateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewItemResponse(i))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := request.IDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	i, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemResponse(i))
}

func (h *Handler) ListByOwner(c *gin.Context) {
	ownerID := identity.UserID(c)

	items, err := h.service.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponses(items))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := request.IDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var body UpdateItemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ownerID := identity.UserID(c)

	i, err := h.service.Update(c.Request.Context(), id, ownerID, item.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemResponse(i))
}

func (h *Handler) Search(c *gin.Context) {
	items, err := h.service.Search(c.Request.Context(), c.Query("text"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponses(items))
}

func toResponses(items []*item.Item) []ItemResponse {
	resp := make([]ItemResponse, 0, len(items))
	for _, i := range items {
		resp = append(resp, NewItemResponse(i))
	}
	return resp
}
