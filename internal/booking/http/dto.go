package http

import (
	"time"

	"github.com/oxanatr/shareit-backend/internal/booking"
	itemHttp "github.com/oxanatr/shareit-backend/internal/item/http"
	userHttp "github.com/oxanatr/shareit-backend/internal/user/http"
)

// BookItemBody is the payload for requesting a booking.
type BookItemBody struct {
	ItemID int64     `json:"itemId" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// BookingResponse is the shape of booking data returned in API responses.
type BookingResponse struct {
	ID     int64            `json:"id"`
	Start  time.Time        `json:"start"`
	End    time.Time        `json:"end"`
	Status string           `json:"status"`
	Item   itemHttp.ItemTag `json:"item"`
	Booker userHttp.UserTag `json:"booker"`
}

// NewBookingResponse converts domain booking.Booking to BookingResponse.
func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  b.StartTime,
		End:    b.EndTime,
		Status: string(b.Status),
		Item:   itemHttp.ItemTag{ID: b.ItemID, Name: b.ItemName},
		Booker: userHttp.UserTag{ID: b.BookerID, Name: b.BookerName},
	}
}
