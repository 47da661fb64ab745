package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oxanatr/shareit-backend/internal/booking"
	"github.com/oxanatr/shareit-backend/internal/identity"
	"github.com/oxanatr/shareit-backend/internal/pkg/request"
	"github.com/oxanatr/shareit-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body BookItemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	bookerID := identity.UserID(c)

	b, err := h.service.Create(c.Request.Context(), bookerID, booking.CreateRequest{
		ItemID: body.ItemID,
		Start:  body.Start,
		End:    body.End,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Approve(c *gin.Context) {
	id, err := request.IDParam(c, "bookingId")
	if err != nil {
		response.Error(c, err)
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approved query parameter must be true or false"})
		return
	}

	b, err := h.service.Approve(c.Request.Context(), id, identity.UserID(c), approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := request.IDParam(c, "bookingId")
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id, identity.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) ListByBooker(c *gin.Context) {
	h.list(c, h.service.ListByBooker)
}

func (h *Handler) ListByOwner(c *gin.Context) {
	h.list(c, h.service.ListByOwner)
}

type listCall func(ctx context.Context, requesterID int64, stateToken string, page request.Page) ([]*booking.Booking, error)

func (h *Handler) list(c *gin.Context, query listCall) {
	page, err := parsePage(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	state := c.DefaultQuery("state", string(booking.StateAll))

	bookings, err := query(c.Request.Context(), identity.UserID(c), state, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, NewBookingResponse(b))
	}
	c.JSON(http.StatusOK, items)
}

// parsePage reads the optional from/size query parameters. Pagination kicks
// in only when both are present, matching the original endpoint contract.
func parsePage(c *gin.Context) (request.Page, error) {
	fromStr := c.Query("from")
	sizeStr := c.Query("size")
	if fromStr == "" || sizeStr == "" {
		return request.Unpaged(), nil
	}

	from, err := strconv.Atoi(fromStr)
	if err != nil {
		return request.Page{}, request.ErrInvalidPageParams
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		return request.Page{}, request.ErrInvalidPageParams
	}
	return request.NewPage(from, size)
}
