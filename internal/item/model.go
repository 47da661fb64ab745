package item

import (
	"github.com/oxanatr/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.NotFound("item not found")
	ErrNotOwner            = apperror.NotFound("item does not belong to the user")
	ErrNameRequired        = apperror.BadRequest("item name is required")
	ErrDescriptionRequired = apperror.BadRequest("item description is required")
	ErrAvailableRequired   = apperror.BadRequest("item availability is required")
)

// Item is a listed thing that other users can book.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
}
