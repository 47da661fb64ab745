package booking

import (
	"time"

	"github.com/oxanatr/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound = apperror.NotFound("booking not found")

	// Authorization failures deliberately read as not-found so a booking's
	// existence is never leaked to unrelated users.
	ErrNotOwnerOrBooker = apperror.NotFound("booking is not visible to the user")
	ErrNotItemOwner     = apperror.NotFound("user is not the owner of the item")
	ErrOwnBooking       = apperror.NotFound("owner cannot book own item")

	ErrItemUnavailable = apperror.BadRequest("item is not available")
	ErrStartEqualsEnd  = apperror.BadRequest("booking start cannot be equal to the end")
	ErrStartAfterEnd   = apperror.BadRequest("booking start cannot be after the end")
	ErrStartInPast     = apperror.BadRequest("booking start cannot be in the past")
	ErrEndInPast       = apperror.BadRequest("booking end cannot be in the past")
	ErrAlreadyApproved = apperror.BadRequest("booking is already approved")
	ErrAlreadyRejected = apperror.BadRequest("booking is already rejected")
)

// Status is the approval state of a booking. Every booking is created
// WAITING; only the item owner moves it to APPROVED or REJECTED.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Booking is a time-bounded request to rent an item. Item and booker names
// are denormalized from the joined rows for response mapping.
type Booking struct {
	ID          int64
	StartTime   time.Time
	EndTime     time.Time
	Status      Status
	ItemID      int64
	ItemName    string
	ItemOwnerID int64
	BookerID    int64
	BookerName  string
}
