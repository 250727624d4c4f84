package course

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	List(ctx context.Context) ([]Course, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Course, error)
	Create(ctx context.Context, course *Course) (uuid.UUID, error)
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) List(ctx context.Context) ([]Course, error) {
	query := `
		SELECT id, title, description, estimated_time, materials_needed, user_id, created_at, updated_at
		FROM courses
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := make([]Course, 0)
	for rows.Next() {
		var c Course
		err := rows.Scan(
			&c.ID,
			&c.Title,
			&c.Description,
			&c.EstimatedTime,
			&c.MaterialsNeeded,
			&c.UserID,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan course: %w", err)
		}
		courses = append(courses, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating courses: %w", err)
	}

	return courses, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Course, error) {
	query := `
		SELECT id, title, description, estimated_time, materials_needed, user_id, created_at, updated_at
		FROM courses
		WHERE id = $1
	`

	var c Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.EstimatedTime,
		&c.MaterialsNeeded,
		&c.UserID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select course by id %s: %w", id, err)
	}

	return &c, nil
}

func (r *postgresRepository) Create(ctx context.Context, course *Course) (uuid.UUID, error) {
	courseID := course.ID
	if courseID == uuid.Nil {
		genID, err := uuid.NewV4()
		if err != nil {
			return uuid.Nil, fmt.Errorf("repository: failed to generate course ID: %w", err)
		}
		courseID = genID
	}

	now := time.Now().UTC()

	query := `
		INSERT INTO courses (id, title, description, estimated_time, materials_needed, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		courseID,
		course.Title,
		course.Description,
		course.EstimatedTime,
		course.MaterialsNeeded,
		course.UserID,
		now,
		now,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("repository: failed to insert course: %w", err)
	}

	course.ID = courseID
	course.CreatedAt = now
	course.UpdatedAt = now

	return courseID, nil
}

func (r *postgresRepository) Update(ctx context.Context, course *Course) error {
	query := `
		UPDATE courses
		SET title = $1, description = $2, estimated_time = $3, materials_needed = $4, updated_at = $5
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		course.Title,
		course.Description,
		course.EstimatedTime,
		course.MaterialsNeeded,
		time.Now().UTC(),
		course.ID,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to update course %s: %w", course.ID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM courses WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete course %s: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
