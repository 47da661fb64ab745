package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists bookings and answers the filtered history queries.
// ListByBooker scopes to bookings made by the user; ListByOwner scopes to
// bookings on items the user owns.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	ListByBooker(ctx context.Context, bookerID int64, f Filter) ([]*Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, f Filter) ([]*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	query, args, err := psql.Insert("public.bookings").
		Columns("item_id", "booker_id", "start_time", "end_time", "status").
		Values(b.ItemID, b.BookerID, b.StartTime, b.EndTime, b.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&b.ID)
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var b Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListByBooker(ctx context.Context, bookerID int64, f Filter) ([]*Booking, error) {
	return r.list(ctx, squirrel.Eq{"b.booker_id": bookerID}, f)
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID int64, f Filter) ([]*Booking, error) {
	return r.list(ctx, squirrel.Eq{"i.owner_id": ownerID}, f)
}

func (r *pgxRepository) list(ctx context.Context, scope squirrel.Sqlizer, f Filter) ([]*Booking, error) {
	query := selectBookings().Where(scope)

	if f.Status != nil {
		query = query.Where(squirrel.Eq{"b.status": *f.Status})
	}
	if f.StartNotAfter != nil {
		query = query.Where(squirrel.LtOrEq{"b.start_time": *f.StartNotAfter})
	}
	if f.StartAfter != nil {
		query = query.Where(squirrel.Gt{"b.start_time": *f.StartAfter})
	}
	if f.EndNotAfter != nil {
		query = query.Where(squirrel.LtOrEq{"b.end_time": *f.EndNotAfter})
	}
	if f.EndAfter != nil {
		query = query.Where(squirrel.Gt{"b.end_time": *f.EndAfter})
	}

	// Paged queries run ordered by id with limit/offset; the service layer
	// restores the start-descending contract afterwards. Unpaged queries are
	// ordered by start directly.
	if f.Page.Paged() {
		query = query.OrderBy("b.id ASC").
			Limit(uint64(f.Page.Limit())).
			Offset(uint64(f.Page.Offset()))
	} else {
		query = query.OrderBy("b.start_time DESC")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}

func selectBookings() squirrel.SelectBuilder {
	return psql.Select(
		"b.id", "b.start_time", "b.end_time", "b.status",
		"b.item_id", "i.name", "i.owner_id",
		"b.booker_id", "u.name",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")
}

func scanBooking(row pgx.Row, b *Booking) error {
	return row.Scan(
		&b.ID, &b.StartTime, &b.EndTime, &b.Status,
		&b.ItemID, &b.ItemName, &b.ItemOwnerID,
		&b.BookerID, &b.BookerName,
	)
}
