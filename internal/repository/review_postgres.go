package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lexmarket/internal/domain"
)

type ReviewRepo struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) *ReviewRepo {
	return &ReviewRepo{
		db: db,
	}
}

func (r *ReviewRepo) Create(ctx context.Context, clientID string, lawyerID string, dto domain.CreateReviewDTO) (string, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO reviews (id, booking_id, client_id, lawyer_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	id := uuid.New().String()
	err = tx.QueryRow(ctx, query,
		id,
		dto.BookingID,
		clientID,
		lawyerID,
		dto.Rating,
		dto.Comment,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("creating review: %w", err)
	}

	// Keep the denormalized rating and count on the lawyer row in step
	// with the review table inside the same transaction.
	statsQuery := `
		UPDATE lawyers
		SET rating = stats.avg_rating,
		    review_count = stats.total,
		    updated_at = $2
		FROM (
			SELECT COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS total
			FROM reviews
			WHERE lawyer_id = $1
		) AS stats
		WHERE lawyers.id = $1
	`

	_, err = tx.Exec(ctx, statsQuery, lawyerID, time.Now())
	if err != nil {
		return "", fmt.Errorf("recomputing lawyer rating: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("committing transaction: %w", err)
	}

	return id, nil
}

func (r *ReviewRepo) GetByBookingID(ctx context.Context, bookingID string) (*domain.Review, error) {
	query := `
		SELECT id, booking_id, client_id, lawyer_id, rating, comment, created_at
		FROM reviews
		WHERE booking_id = $1
	`

	var review domain.Review
	err := r.db.QueryRow(ctx, query, bookingID).Scan(
		&review.ID,
		&review.BookingID,
		&review.ClientID,
		&review.LawyerID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fetching review for booking %s: %w", bookingID, err)
	}

	return &review, nil
}

func reviewFilterConditions(filter domain.ReviewFilter) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.LawyerID != nil {
		conditions = append(conditions, fmt.Sprintf("r.lawyer_id = $%d", argCount))
		args = append(args, *filter.LawyerID)
		argCount++
	}

	if filter.ClientID != nil {
		conditions = append(conditions, fmt.Sprintf("r.client_id = $%d", argCount))
		args = append(args, *filter.ClientID)
		argCount++
	}

	return conditions, args
}

func (r *ReviewRepo) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error) {
	baseQuery := `
		SELECT r.id, r.booking_id, r.client_id, r.lawyer_id, r.rating, r.comment, r.created_at,
		       u.first_name || ' ' || u.last_name AS client_name
		FROM reviews r
		JOIN users u ON r.client_id = u.id
	`

	conditions, args := reviewFilterConditions(filter)

	query := baseQuery
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY r.created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var review domain.Review

		if err := rows.Scan(
			&review.ID,
			&review.BookingID,
			&review.ClientID,
			&review.LawyerID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
			&review.ClientName,
		); err != nil {
			return nil, fmt.Errorf("scanning review row: %w", err)
		}

		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating review rows: %w", err)
	}

	return reviews, nil
}

func (r *ReviewRepo) CountByFilter(ctx context.Context, filter domain.ReviewFilter) (int, error) {
	conditions, args := reviewFilterConditions(filter)

	query := `SELECT COUNT(*) FROM reviews r`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting reviews: %w", err)
	}

	return count, nil
}
