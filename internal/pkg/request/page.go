package request

import (
	"github.com/oxanatr/shareit-backend/internal/pkg/apperror"
)

// ErrInvalidPageParams is returned when from/size are present but malformed.
var ErrInvalidPageParams = apperror.BadRequest("incorrect page parameters")

// Page describes optional offset pagination. The zero value means "unpaged":
// the full result set is returned in one piece. When paged, the page number
// is from/size, matching the upstream from/size query contract.
type Page struct {
	from  int
	size  int
	paged bool
}

// Unpaged returns the no-pagination sentinel.
func Unpaged() Page {
	return Page{}
}

// NewPage validates from/size and builds a paged Page.
// from < 0 or size <= 0 fails with ErrInvalidPageParams.
func NewPage(from, size int) (Page, error) {
	if from < 0 || size <= 0 {
		return Page{}, ErrInvalidPageParams
	}
	return Page{from: from, size: size, paged: true}, nil
}

// Paged reports whether pagination parameters were supplied.
func (p Page) Paged() bool {
	return p.paged
}

// Number is the zero-based page number (from / size).
func (p Page) Number() int {
	if !p.paged {
		return 0
	}
	return p.from / p.size
}

// Limit is the page size.
func (p Page) Limit() int {
	return p.size
}

// Offset is the row offset of the page start (Number * size, not the raw
// from value).
func (p Page) Offset() int {
	return p.Number() * p.size
}
