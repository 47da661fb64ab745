package booking_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxanatr/shareit-backend/internal/booking"
	"github.com/oxanatr/shareit-backend/internal/clock"
	"github.com/oxanatr/shareit-backend/internal/item"
	"github.com/oxanatr/shareit-backend/internal/pkg/apperror"
	"github.com/oxanatr/shareit-backend/internal/pkg/request"
	"github.com/oxanatr/shareit-backend/internal/user"
)

// memoryRepo is an in-memory booking.Repository that applies Filter the same
// way the SQL queries do, including the paged id-ascending ordering.
type memoryRepo struct {
	seq      int64
	bookings []*booking.Booking
}

func (r *memoryRepo) Create(_ context.Context, b *booking.Booking) error {
	r.seq++
	b.ID = r.seq
	stored := *b
	r.bookings = append(r.bookings, &stored)
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id int64) (*booking.Booking, error) {
	for _, b := range r.bookings {
		if b.ID == id {
			copied := *b
			return &copied, nil
		}
	}
	return nil, booking.ErrNotFound
}

func (r *memoryRepo) UpdateStatus(_ context.Context, id int64, status booking.Status) error {
	for _, b := range r.bookings {
		if b.ID == id {
			b.Status = status
			return nil
		}
	}
	return booking.ErrNotFound
}

func (r *memoryRepo) ListByBooker(_ context.Context, bookerID int64, f booking.Filter) ([]*booking.Booking, error) {
	return r.list(func(b *booking.Booking) bool { return b.BookerID == bookerID }, f), nil
}

func (r *memoryRepo) ListByOwner(_ context.Context, ownerID int64, f booking.Filter) ([]*booking.Booking, error) {
	return r.list(func(b *booking.Booking) bool { return b.ItemOwnerID == ownerID }, f), nil
}

func (r *memoryRepo) list(scope func(*booking.Booking) bool, f booking.Filter) []*booking.Booking {
	var out []*booking.Booking
	for _, b := range r.bookings {
		if !scope(b) || !matches(f, b) {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}

	if f.Page.Paged() {
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		offset := f.Page.Offset()
		if offset >= len(out) {
			return nil
		}
		end := offset + f.Page.Limit()
		if end > len(out) {
			end = len(out)
		}
		return out[offset:end]
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out
}

func matches(f booking.Filter, b *booking.Booking) bool {
	if f.Status != nil && b.Status != *f.Status {
		return false
	}
	if f.StartNotAfter != nil && b.StartTime.After(*f.StartNotAfter) {
		return false
	}
	if f.StartAfter != nil && !b.StartTime.After(*f.StartAfter) {
		return false
	}
	if f.EndNotAfter != nil && b.EndTime.After(*f.EndNotAfter) {
		return false
	}
	if f.EndAfter != nil && !b.EndTime.After(*f.EndAfter) {
		return false
	}
	return true
}

type stubUsers struct {
	users map[int64]*user.User
}

func (s *stubUsers) Create(context.Context, string, string) (*user.User, error) {
	panic("not used")
}

func (s *stubUsers) GetByID(_ context.Context, id int64) (*user.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func (s *stubUsers) List(context.Context) ([]*user.User, error) { panic("not used") }

func (s *stubUsers) Update(context.Context, int64, user.UpdateRequest) (*user.User, error) {
	panic("not used")
}

func (s *stubUsers) Delete(context.Context, int64) error { panic("not used") }

type stubItems struct {
	items map[int64]*item.Item
}

func (s *stubItems) Create(context.Context, int64, item.CreateRequest) (*item.Item, error) {
	panic("not used")
}

func (s *stubItems) GetByID(_ context.Context, id int64) (*item.Item, error) {
	if i, ok := s.items[id]; ok {
		return i, nil
	}
	return nil, item.ErrNotFound
}

func (s *stubItems) ListByOwner(context.Context, int64) ([]*item.Item, error) { panic("not used") }

func (s *stubItems) Update(context.Context, int64, int64, item.UpdateRequest) (*item.Item, error) {
	panic("not used")
}

func (s *stubItems) Search(context.Context, string) ([]*item.Item, error) { panic("not used") }

type fixture struct {
	repo  *memoryRepo
	clock *clock.Manual
	svc   booking.Service
}

var baseTime = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

const (
	ownerID    = int64(1)
	bookerID   = int64(2)
	strangerID = int64(3)
	itemID     = int64(10)
)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := &stubUsers{users: map[int64]*user.User{
		ownerID:    {ID: ownerID, Name: "owner", Email: "owner@example.com"},
		bookerID:   {ID: bookerID, Name: "booker", Email: "booker@example.com"},
		strangerID: {ID: strangerID, Name: "stranger", Email: "stranger@example.com"},
	}}
	items := &stubItems{items: map[int64]*item.Item{
		itemID: {ID: itemID, Name: "drill", Description: "cordless drill", Available: true, OwnerID: ownerID},
		11:     {ID: 11, Name: "ladder", Description: "5m ladder", Available: false, OwnerID: ownerID},
	}}

	repo := &memoryRepo{}
	manual := clock.NewManual(baseTime)
	return &fixture{
		repo:  repo,
		clock: manual,
		svc:   booking.NewService(repo, users, items, manual),
	}
}

func (f *fixture) book(t *testing.T, startOffset, endOffset time.Duration) *booking.Booking {
	t.Helper()
	b, err := f.svc.Create(context.Background(), bookerID, booking.CreateRequest{
		ItemID: itemID,
		Start:  baseTime.Add(startOffset),
		End:    baseTime.Add(endOffset),
	})
	require.NoError(t, err)
	return b
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.book(t, time.Hour, 2*time.Hour)

	assert.Equal(t, int64(1), b.ID)
	assert.Equal(t, booking.StatusWaiting, b.Status)
	assert.Equal(t, itemID, b.ItemID)
	assert.Equal(t, "drill", b.ItemName)
	assert.Equal(t, ownerID, b.ItemOwnerID)
	assert.Equal(t, bookerID, b.BookerID)

	stored, err := f.repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusWaiting, stored.Status)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		booker  int64
		itemID  int64
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{
			name:   "unknown user",
			booker: 99, itemID: itemID,
			start: baseTime.Add(time.Hour), end: baseTime.Add(2 * time.Hour),
			wantErr: user.ErrNotFound,
		},
		{
			name:   "unknown item",
			booker: bookerID, itemID: 99,
			start: baseTime.Add(time.Hour), end: baseTime.Add(2 * time.Hour),
			wantErr: item.ErrNotFound,
		},
		{
			name:   "owner books own item",
			booker: ownerID, itemID: itemID,
			start: baseTime.Add(time.Hour), end: baseTime.Add(2 * time.Hour),
			wantErr: booking.ErrOwnBooking,
		},
		{
			name:   "item unavailable",
			booker: bookerID, itemID: 11,
			start: baseTime.Add(time.Hour), end: baseTime.Add(2 * time.Hour),
			wantErr: booking.ErrItemUnavailable,
		},
		{
			name:   "start equals end",
			booker: bookerID, itemID: itemID,
			start: baseTime.Add(time.Hour), end: baseTime.Add(time.Hour),
			wantErr: booking.ErrStartEqualsEnd,
		},
		{
			name:   "start after end",
			booker: bookerID, itemID: itemID,
			start: baseTime.Add(2 * time.Hour), end: baseTime.Add(time.Hour),
			wantErr: booking.ErrStartAfterEnd,
		},
		{
			name:   "start in the past",
			booker: bookerID, itemID: itemID,
			start: baseTime.Add(-time.Hour), end: baseTime.Add(2 * time.Hour),
			wantErr: booking.ErrStartInPast,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, tc.booker, booking.CreateRequest{
				ItemID: tc.itemID,
				Start:  tc.start,
				End:    tc.end,
			})
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	assert.Empty(t, f.repo.bookings, "failed validations must not persist anything")
}

func TestCreateOwnerSelfBookingIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), ownerID, booking.CreateRequest{
		ItemID: itemID,
		Start:  baseTime.Add(time.Hour),
		End:    baseTime.Add(2 * time.Hour),
	})

	// Deliberately 404, not 400: the rule hides the item from its owner.
	assert.True(t, apperror.IsNotFound(err))
}

func TestApprove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, time.Hour, 2*time.Hour)

	approved, err := f.svc.Approve(ctx, b.ID, ownerID, true)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusApproved, approved.Status)

	stored, err := f.repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusApproved, stored.Status)

	// Second identical approval is an error, not a no-op.
	_, err = f.svc.Approve(ctx, b.ID, ownerID, true)
	assert.ErrorIs(t, err, booking.ErrAlreadyApproved)

	// Flipping an approved booking to rejected is still allowed.
	rejected, err := f.svc.Approve(ctx, b.ID, ownerID, false)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusRejected, rejected.Status)

	_, err = f.svc.Approve(ctx, b.ID, ownerID, false)
	assert.ErrorIs(t, err, booking.ErrAlreadyRejected)
}

func TestApproveAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, time.Hour, 2*time.Hour)

	for _, userID := range []int64{bookerID, strangerID} {
		_, err := f.svc.Approve(ctx, b.ID, userID, true)
		assert.True(t, apperror.IsNotFound(err), "non-owner approval must read as not-found")
	}

	_, err := f.svc.Approve(ctx, 999, ownerID, true)
	assert.ErrorIs(t, err, booking.ErrNotFound)
}

func TestGetByIDVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, time.Hour, 2*time.Hour)

	for _, userID := range []int64{bookerID, ownerID} {
		got, err := f.svc.GetByID(ctx, b.ID, userID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	}

	_, err := f.svc.GetByID(ctx, b.ID, strangerID)
	assert.True(t, apperror.IsNotFound(err), "stranger must not learn the booking exists")

	_, err = f.svc.GetByID(ctx, 999, bookerID)
	assert.ErrorIs(t, err, booking.ErrNotFound)
}

func TestListByBookerStates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	past := f.book(t, time.Hour, 2*time.Hour)       // will end before "now"
	current := f.book(t, 3*time.Hour, 10*time.Hour) // will span "now"
	future := f.book(t, 8*time.Hour, 9*time.Hour)   // will start after "now"

	_, err := f.svc.Approve(ctx, past.ID, ownerID, true)
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, future.ID, ownerID, false)
	require.NoError(t, err)

	// Move now to T+4h: past has ended, current is running, future not started.
	f.clock.Advance(4 * time.Hour)

	ids := func(bs []*booking.Booking) []int64 {
		out := make([]int64, 0, len(bs))
		for _, b := range bs {
			out = append(out, b.ID)
		}
		return out
	}

	all, err := f.svc.ListByBooker(ctx, bookerID, "ALL", request.Unpaged())
	require.NoError(t, err)
	assert.Equal(t, []int64{future.ID, current.ID, past.ID}, ids(all), "ordered by start descending")

	got, err := f.svc.ListByBooker(ctx, bookerID, "CURRENT", request.Unpaged())
	require.NoError(t, err)
	assert.Equal(t, []int64{current.ID}, ids(got))

	got, err = f.svc.ListByBooker(ctx, bookerID, "PAST", request.Unpaged())
	require.NoError(t, err)
	assert.Equal(t, []int64{past.ID}, ids(got))

	got, err = f.svc.ListByBooker(ctx, bookerID, "FUTURE", request.Unpaged())
	require.NoError(t, err)
	assert.Equal(t, []int64{future.ID}, ids(got))

	got, err = f.svc.ListByBooker(ctx, bookerID, "WAITING", request.Unpaged())
	require.NoError(t, err)
	assert.Equal(t, []int64{current.ID}, ids(got))

	got, err = f.svc.ListByBooker(ctx, bookerID, "REJECTED", request.Unpaged())
	require.NoError(t, err)
	assert.Equal(t, []int64{future.ID}, ids(got))
}

func TestListCurrentBoundaries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.book(t, time.Hour, 2*time.Hour)

	// At start: start <= now < end holds.
	f.clock.Set(baseTime.Add(time.Hour))
	got, err := f.svc.ListByBooker(ctx, bookerID, "CURRENT", request.Unpaged())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)

	// At end: the booking is past, not current.
	f.clock.Set(baseTime.Add(2 * time.Hour))
	got, err = f.svc.ListByBooker(ctx, bookerID, "CURRENT", request.Unpaged())
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = f.svc.ListByBooker(ctx, bookerID, "PAST", request.Unpaged())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)
}

func TestListByOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.book(t, time.Hour, 2*time.Hour)
	second := f.book(t, 3*time.Hour, 4*time.Hour)

	got, err := f.svc.ListByOwner(ctx, ownerID, "ALL", request.Unpaged())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)

	// The booker owns no items, so the owner viewpoint is empty for them.
	got, err = f.svc.ListByOwner(ctx, bookerID, "ALL", request.Unpaged())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListUnknownState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, token := range []string{"UNKNOWN", "all", "Current", ""} {
		_, err := f.svc.ListByBooker(ctx, bookerID, token, request.Unpaged())
		assert.True(t, apperror.IsBadRequest(err), "token %q must be rejected", token)
		assert.EqualError(t, err, "Unknown state: "+token)
	}
}

func TestListUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ListByBooker(context.Background(), 99, "ALL", request.Unpaged())
	assert.ErrorIs(t, err, user.ErrNotFound)

	_, err = f.svc.ListByOwner(context.Background(), 99, "ALL", request.Unpaged())
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestListEmptyHistoryIsNotAnError(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.ListByBooker(context.Background(), strangerID, "ALL", request.Unpaged())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		f.book(t, time.Duration(i+1)*time.Hour, time.Duration(i+1)*time.Hour+30*time.Minute)
	}

	unpaged, err := f.svc.ListByBooker(ctx, bookerID, "ALL", request.Unpaged())
	require.NoError(t, err)
	require.Len(t, unpaged, 5)

	pageOne, err := request.NewPage(0, 2)
	require.NoError(t, err)
	pageTwo, err := request.NewPage(2, 2)
	require.NoError(t, err)

	first, err := f.svc.ListByBooker(ctx, bookerID, "ALL", pageOne)
	require.NoError(t, err)
	second, err := f.svc.ListByBooker(ctx, bookerID, "ALL", pageTwo)
	require.NoError(t, err)

	require.Len(t, first, 2)
	require.Len(t, second, 2)

	// Each page keeps the start-descending contract.
	assert.True(t, first[0].StartTime.After(first[1].StartTime))
	assert.True(t, second[0].StartTime.After(second[1].StartTime))

	// Pages are disjoint: together they cover four distinct bookings.
	seen := map[int64]bool{}
	for _, b := range append(append([]*booking.Booking{}, first...), second...) {
		assert.False(t, seen[b.ID], "pages must not overlap")
		seen[b.ID] = true
	}
	assert.Len(t, seen, 4)
}

func TestBookingLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.book(t, 24*time.Hour, 48*time.Hour)
	require.Equal(t, booking.StatusWaiting, b.Status)

	approved, err := f.svc.Approve(ctx, b.ID, ownerID, true)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusApproved, approved.Status)

	// Booker and owner both see the approved booking; a stranger does not.
	for _, userID := range []int64{bookerID, ownerID} {
		got, err := f.svc.GetByID(ctx, b.ID, userID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusApproved, got.Status)
	}
	_, err = f.svc.GetByID(ctx, b.ID, strangerID)
	assert.True(t, apperror.IsNotFound(err))

	// It shows up as FUTURE for the booker and for the owner viewpoint.
	got, err := f.svc.ListByBooker(ctx, bookerID, "FUTURE", request.Unpaged())
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = f.svc.ListByOwner(ctx, ownerID, "FUTURE", request.Unpaged())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)
}

func TestListBadPageParams(t *testing.T) {
	_, err := request.NewPage(-1, 2)
	assert.ErrorIs(t, err, request.ErrInvalidPageParams)

	_, err = request.NewPage(0, 0)
	assert.ErrorIs(t, err, request.ErrInvalidPageParams)

	_, err = request.NewPage(0, -5)
	assert.ErrorIs(t, err, request.ErrInvalidPageParams)
}
