package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"lexmarket/internal/domain"
)

type BookingRepo struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *BookingRepo {
	return &BookingRepo{
		db: db,
	}
}

func (r *BookingRepo) Create(ctx context.Context, clientID string, dto domain.CreateBookingDTO, price float64) (*domain.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	checkQuery := `
		SELECT COUNT(*)
		FROM bookings
		WHERE lawyer_id = $1
		AND date = $2
		AND time = $3
		AND status != 'CANCELLED'
	`

	var count int
	err = tx.QueryRow(ctx, checkQuery, dto.LawyerID, dto.Date, dto.Time).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("checking slot availability: %w", err)
	}

	if count > 0 {
		return nil, domain.ErrSlotTaken
	}

	query := `
		INSERT INTO bookings (id, client_id, lawyer_id, date, time, type, price, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, client_id, lawyer_id, to_char(date, 'YYYY-MM-DD'), time, type, price, status, created_at
	`

	booking := domain.Booking{}
	err = tx.QueryRow(ctx, query,
		uuid.New().String(),
		clientID,
		dto.LawyerID,
		dto.Date,
		dto.Time,
		dto.Type,
		price,
		domain.BookingStatusPending,
		time.Now(),
	).Scan(
		&booking.ID,
		&booking.ClientID,
		&booking.LawyerID,
		&booking.Date,
		&booking.Time,
		&booking.Type,
		&booking.Price,
		&booking.Status,
		&booking.CreatedAt,
	)

	if err != nil {
		// The partial unique index on (lawyer_id, date, time) catches
		// the race two writers can hit between the count check and the
		// insert; the second writer loses.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrSlotTaken
		}
		return nil, fmt.Errorf("creating booking: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return &booking, nil
}

func (r *BookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `
		SELECT b.id, b.client_id, b.lawyer_id, to_char(b.date, 'YYYY-MM-DD'), b.time, b.type, b.price, b.status, b.created_at,
		       cu.first_name || ' ' || cu.last_name AS client_name,
		       lu.first_name || ' ' || lu.last_name AS lawyer_name
		FROM bookings b
		JOIN users cu ON b.client_id = cu.id
		JOIN lawyers l ON b.lawyer_id = l.id
		JOIN users lu ON l.user_id = lu.id
		WHERE b.id = $1
	`

	var booking domain.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.ClientID,
		&booking.LawyerID,
		&booking.Date,
		&booking.Time,
		&booking.Type,
		&booking.Price,
		&booking.Status,
		&booking.CreatedAt,
		&booking.ClientName,
		&booking.LawyerName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fetching booking %s: %w", id, err)
	}

	return &booking, nil
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1
		WHERE id = $2
	`

	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func bookingFilterConditions(filter domain.BookingFilter) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.ClientID != nil {
		conditions = append(conditions, fmt.Sprintf("b.client_id = $%d", argCount))
		args = append(args, *filter.ClientID)
		argCount++
	}

	if filter.LawyerID != nil {
		conditions = append(conditions, fmt.Sprintf("b.lawyer_id = $%d", argCount))
		args = append(args, *filter.LawyerID)
		argCount++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("b.status = $%d", argCount))
		args = append(args, *filter.Status)
		argCount++
	}

	if filter.FromDate != nil {
		conditions = append(conditions, fmt.Sprintf("b.date >= $%d", argCount))
		args = append(args, *filter.FromDate)
		argCount++
	}

	if filter.ToDate != nil {
		conditions = append(conditions, fmt.Sprintf("b.date <= $%d", argCount))
		args = append(args, *filter.ToDate)
		argCount++
	}

	return conditions, args
}

func (r *BookingRepo) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	baseQuery := `
		SELECT b.id, b.client_id, b.lawyer_id, to_char(b.date, 'YYYY-MM-DD'), b.time, b.type, b.price, b.status, b.created_at,
		       cu.first_name || ' ' || cu.last_name AS client_name,
		       lu.first_name || ' ' || lu.last_name AS lawyer_name
		FROM bookings b
		JOIN users cu ON b.client_id = cu.id
		JOIN lawyers l ON b.lawyer_id = l.id
		JOIN users lu ON l.user_id = lu.id
	`

	conditions, args := bookingFilterConditions(filter)

	query := baseQuery
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY b.date DESC, b.time DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var booking domain.Booking

		if err := rows.Scan(
			&booking.ID,
			&booking.ClientID,
			&booking.LawyerID,
			&booking.Date,
			&booking.Time,
			&booking.Type,
			&booking.Price,
			&booking.Status,
			&booking.CreatedAt,
			&booking.ClientName,
			&booking.LawyerName,
		); err != nil {
			return nil, fmt.Errorf("scanning booking row: %w", err)
		}

		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating booking rows: %w", err)
	}

	return bookings, nil
}

func (r *BookingRepo) CountByFilter(ctx context.Context, filter domain.BookingFilter) (int, error) {
	conditions, args := bookingFilterConditions(filter)

	query := `SELECT COUNT(*) FROM bookings b`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting bookings: %w", err)
	}

	return count, nil
}

func (r *BookingRepo) BookedSlots(ctx context.Context, lawyerID string, date string) ([]string, error) {
	query := `
		SELECT time
		FROM bookings
		WHERE lawyer_id = $1
		AND date = $2
		AND status != 'CANCELLED'
	`

	rows, err := r.db.Query(ctx, query, lawyerID, date)
	if err != nil {
		return nil, fmt.Errorf("fetching booked slots: %w", err)
	}
	defer rows.Close()

	slots := make([]string, 0)
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("scanning slot: %w", err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating slot rows: %w", err)
	}

	return slots, nil
}
