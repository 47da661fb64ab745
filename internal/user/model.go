package user

import (
	"github.com/oxanatr/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.NotFound("user not found")
	ErrEmailAlreadyUsed = apperror.Conflict("email already used")
	ErrEmailRequired    = apperror.BadRequest("email is required")
	ErrNameRequired     = apperror.BadRequest("name is required")
)

// User is a participant: an item owner, a booker, or both.
type User struct {
	ID    int64
	Name  string
	Email string
}
