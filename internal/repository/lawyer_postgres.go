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

type LawyerRepo struct {
	db *pgxpool.Pool
}

func NewLawyerRepository(db *pgxpool.Pool) *LawyerRepo {
	return &LawyerRepo{
		db: db,
	}
}

const lawyerSelectColumns = `
	l.id, l.user_id, u.first_name, u.last_name, u.email, l.avatar_url,
	l.specialties, l.hourly_rate, l.location, l.experience_years, l.bio,
	l.rating, l.review_count, l.is_verified, l.created_at, l.updated_at
`

func (r *LawyerRepo) Create(ctx context.Context, userID string, dto domain.CreateLawyerDTO) (string, error) {
	query := `
		INSERT INTO lawyers (id, user_id, specialties, hourly_rate, location, experience_years, bio, rating, review_count, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 0, false, $8, $8)
		RETURNING id
	`

	id := uuid.New().String()
	now := time.Now()

	err := r.db.QueryRow(ctx, query,
		id,
		userID,
		dto.Specialties,
		dto.HourlyRate,
		dto.Location,
		dto.ExperienceYears,
		dto.Bio,
		now,
	).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("creating lawyer profile: %w", err)
	}

	return id, nil
}

func (r *LawyerRepo) GetByID(ctx context.Context, id string) (*domain.LawyerProfile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM lawyers l
		JOIN users u ON l.user_id = u.id
		WHERE l.id = $1
	`, lawyerSelectColumns)

	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *LawyerRepo) GetByUserID(ctx context.Context, userID string) (*domain.LawyerProfile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM lawyers l
		JOIN users u ON l.user_id = u.id
		WHERE l.user_id = $1
	`, lawyerSelectColumns)

	return r.scanOne(r.db.QueryRow(ctx, query, userID))
}

func (r *LawyerRepo) scanOne(row pgx.Row) (*domain.LawyerProfile, error) {
	var p domain.LawyerProfile
	var avatarURL *string

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.FirstName,
		&p.LastName,
		&p.Email,
		&avatarURL,
		&p.Specialties,
		&p.HourlyRate,
		&p.Location,
		&p.ExperienceYears,
		&p.Bio,
		&p.Rating,
		&p.ReviewCount,
		&p.IsVerified,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fetching lawyer profile: %w", err)
	}

	if avatarURL != nil {
		p.AvatarURL = *avatarURL
	}

	return &p, nil
}

func (r *LawyerRepo) Update(ctx context.Context, id string, dto domain.UpdateLawyerDTO) error {
	var updateFields []string
	var args []interface{}

	argCount := 1

	if dto.Specialties != nil {
		updateFields = append(updateFields, fmt.Sprintf("specialties = $%d", argCount))
		args = append(args, dto.Specialties)
		argCount++
	}

	if dto.HourlyRate != nil {
		updateFields = append(updateFields, fmt.Sprintf("hourly_rate = $%d", argCount))
		args = append(args, *dto.HourlyRate)
		argCount++
	}

	if dto.Location != nil {
		updateFields = append(updateFields, fmt.Sprintf("location = $%d", argCount))
		args = append(args, *dto.Location)
		argCount++
	}

	if dto.ExperienceYears != nil {
		updateFields = append(updateFields, fmt.Sprintf("experience_years = $%d", argCount))
		args = append(args, *dto.ExperienceYears)
		argCount++
	}

	if dto.Bio != nil {
		updateFields = append(updateFields, fmt.Sprintf("bio = $%d", argCount))
		args = append(args, *dto.Bio)
		argCount++
	}

	if len(updateFields) == 0 {
		return nil
	}

	updateFields = append(updateFields, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE lawyers
		SET %s
		WHERE id = $%d
	`, strings.Join(updateFields, ", "), argCount)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating lawyer profile %s: %w", id, err)
	}

	return nil
}

func (r *LawyerRepo) SetVerified(ctx context.Context, id string, verified bool) error {
	query := `
		UPDATE lawyers
		SET is_verified = $1, updated_at = $2
		WHERE id = $3
	`

	tag, err := r.db.Exec(ctx, query, verified, time.Now(), id)
	if err != nil {
		return fmt.Errorf("updating verification for lawyer %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *LawyerRepo) UpdateAvatar(ctx context.Context, id string, avatarURL string) error {
	query := `
		UPDATE lawyers
		SET avatar_url = NULLIF($1, ''), updated_at = $2
		WHERE id = $3
	`

	_, err := r.db.Exec(ctx, query, avatarURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("updating avatar for lawyer %s: %w", id, err)
	}

	return nil
}

// ListVerified returns every verified lawyer profile in stable
// creation order. The directory query filters this snapshot in memory.
func (r *LawyerRepo) ListVerified(ctx context.Context) ([]domain.LawyerProfile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM lawyers l
		JOIN users u ON l.user_id = u.id
		WHERE l.is_verified = true AND u.is_active = true
		ORDER BY l.created_at, l.id
	`, lawyerSelectColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing lawyers: %w", err)
	}
	defer rows.Close()

	profiles := make([]domain.LawyerProfile, 0)
	for rows.Next() {
		var p domain.LawyerProfile
		var avatarURL *string

		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.FirstName,
			&p.LastName,
			&p.Email,
			&avatarURL,
			&p.Specialties,
			&p.HourlyRate,
			&p.Location,
			&p.ExperienceYears,
			&p.Bio,
			&p.Rating,
			&p.ReviewCount,
			&p.IsVerified,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning lawyer row: %w", err)
		}

		if avatarURL != nil {
			p.AvatarURL = *avatarURL
		}

		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lawyer rows: %w", err)
	}

	return profiles, nil
}
