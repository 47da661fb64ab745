package booking

import (
	"context"
	"sort"
	"time"

	"github.com/oxanatr/shareit-backend/internal/clock"
	"github.com/oxanatr/shareit-backend/internal/item"
	"github.com/oxanatr/shareit-backend/internal/pkg/request"
	"github.com/oxanatr/shareit-backend/internal/user"
)

// CreateRequest carries a candidate booking.
type CreateRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

// Service is the booking engine: creation validation, the approval state
// machine, view authorization and the state-filtered history listings.
// It is stateless; all mutable state lives in the Repository.
type Service interface {
	Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error)
	Approve(ctx context.Context, bookingID, requesterID int64, approved bool) (*Booking, error)
	GetByID(ctx context.Context, bookingID, requesterID int64) (*Booking, error)
	ListByBooker(ctx context.Context, requesterID int64, stateToken string, page request.Page) ([]*Booking, error)
	ListByOwner(ctx context.Context, requesterID int64, stateToken string, page request.Page) ([]*Booking, error)
}

type service struct {
	repo        Repository
	userService user.Service
	itemService item.Service
	clock       clock.Clock
}

// NewService creates the booking Service.
func NewService(repo Repository, userService user.Service, itemService item.Service, c clock.Clock) Service {
	return &service{
		repo:        repo,
		userService: userService,
		itemService: itemService,
		clock:       c,
	}
}

func (s *service) Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error) {
	u, err := s.userService.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	i, err := s.itemService.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	// Owner-self-booking fails as not-found, not validation. Checked before
	// availability, so an owner probing an unavailable own item still gets 404.
	if u.ID == i.OwnerID {
		return nil, ErrOwnBooking
	}
	if !i.Available {
		return nil, ErrItemUnavailable
	}

	now := s.clock.Now()
	if req.Start.Equal(req.End) {
		return nil, ErrStartEqualsEnd
	}
	if req.Start.After(req.End) {
		return nil, ErrStartAfterEnd
	}
	if req.Start.Before(now) {
		return nil, ErrStartInPast
	}
	// Subsumed by the two checks above for well-formed intervals, but kept as
	// an explicit rule of the validation contract.
	if req.End.Before(now) {
		return nil, ErrEndInPast
	}

	b := &Booking{
		StartTime:   req.Start,
		EndTime:     req.End,
		Status:      StatusWaiting,
		ItemID:      i.ID,
		ItemName:    i.Name,
		ItemOwnerID: i.OwnerID,
		BookerID:    u.ID,
		BookerName:  u.Name,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Approve(ctx context.Context, bookingID, requesterID int64, approved bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.ItemOwnerID != requesterID {
		return nil, ErrNotItemOwner
	}

	// Repeating an already-settled outcome is an error, not a no-op.
	if approved && b.Status == StatusApproved {
		return nil, ErrAlreadyApproved
	}
	if !approved && b.Status == StatusRejected {
		return nil, ErrAlreadyRejected
	}

	status := StatusRejected
	if approved {
		status = StatusApproved
	}
	if err := s.repo.UpdateStatus(ctx, b.ID, status); err != nil {
		return nil, err
	}
	b.Status = status
	return b, nil
}

func (s *service) GetByID(ctx context.Context, bookingID, requesterID int64) (*Booking, error) {
	return s.getVisible(ctx, bookingID, requesterID)
}

// getVisible centralizes the authorization-as-not-found rule: a booking the
// user may not see behaves exactly like a missing one. Visible means the
// user is the booker or owns the booked item.
func (s *service) getVisible(ctx context.Context, bookingID, userID int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.ItemOwnerID != userID && b.BookerID != userID {
		return nil, ErrNotOwnerOrBooker
	}
	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, requesterID int64, stateToken string, page request.Page) ([]*Booking, error) {
	return s.list(ctx, requesterID, stateToken, page, s.repo.ListByBooker)
}

func (s *service) ListByOwner(ctx context.Context, requesterID int64, stateToken string, page request.Page) ([]*Booking, error) {
	return s.list(ctx, requesterID, stateToken, page, s.repo.ListByOwner)
}

type listQuery func(ctx context.Context, userID int64, f Filter) ([]*Booking, error)

// list resolves the state token into a store filter and runs it through the
// viewpoint-specific query. The requesting user must exist; a user with no
// matching bookings gets an empty list, not an error.
func (s *service) list(ctx context.Context, userID int64, stateToken string, page request.Page, query listQuery) ([]*Booking, error) {
	if _, err := s.userService.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	state, err := ParseState(stateToken)
	if err != nil {
		return nil, err
	}

	f := FilterFor(state, s.clock.Now())
	f.Page = page

	bookings, err := query(ctx, userID, f)
	if err != nil {
		return nil, err
	}

	// Paged rows arrive ordered by id; the caller-facing contract is always
	// start descending, paged or not.
	if page.Paged() {
		sort.SliceStable(bookings, func(a, b int) bool {
			return bookings[a].StartTime.After(bookings[b].StartTime)
		})
	}
	return bookings, nil
}
