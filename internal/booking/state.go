package booking

import (
	"time"

	"github.com/oxanatr/shareit-backend/internal/pkg/apperror"
	"github.com/oxanatr/shareit-backend/internal/pkg/request"
)

// State is a caller-supplied token selecting a temporal or status bucket of
// a booking history. Tokens are case-sensitive.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// NewUnknownStateError builds the error for an unrecognized state token.
// The message shape is part of the API contract.
func NewUnknownStateError(token string) *apperror.AppError {
	return apperror.BadRequest("Unknown state: " + token)
}

// ParseState resolves a raw token into a State, or fails with the
// unknown-state error.
func ParseState(token string) (State, error) {
	s := State(token)
	if _, ok := stateFilters[s]; !ok {
		return "", NewUnknownStateError(token)
	}
	return s, nil
}

// Filter is the store-level query shape a State resolves to. Nil predicate
// fields are not applied. Time bounds are compared the way the buckets are
// defined: CURRENT is start <= now < end, PAST is end <= now, FUTURE is
// start > now.
type Filter struct {
	Status        *Status
	StartNotAfter *time.Time // start <= t
	StartAfter    *time.Time // start > t
	EndNotAfter   *time.Time // end <= t
	EndAfter      *time.Time // end > t
	Page          request.Page
}

// stateFilters maps each state token to the filter it stands for at a given
// instant. Keeping the dispatch as one table keeps it exhaustive: ParseState
// accepts exactly the keys listed here.
var stateFilters = map[State]func(now time.Time) Filter{
	StateAll: func(time.Time) Filter {
		return Filter{}
	},
	StateCurrent: func(now time.Time) Filter {
		return Filter{StartNotAfter: &now, EndAfter: &now}
	},
	StatePast: func(now time.Time) Filter {
		return Filter{EndNotAfter: &now}
	},
	StateFuture: func(now time.Time) Filter {
		return Filter{StartAfter: &now}
	},
	StateWaiting:  statusFilter(StatusWaiting),
	StateRejected: statusFilter(StatusRejected),
}

func statusFilter(status Status) func(time.Time) Filter {
	return func(time.Time) Filter {
		return Filter{Status: &status}
	}
}

// FilterFor builds the store filter for a state at the given instant.
func FilterFor(state State, now time.Time) Filter {
	return stateFilters[state](now)
}
