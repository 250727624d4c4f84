package course

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

type Service interface {
	ListCourses(ctx context.Context) ([]Course, error)
	GetCourseByID(ctx context.Context, id uuid.UUID) (*Course, error)
	// CreateCourse persists a new course. The caller is responsible for
	// setting UserID to the authenticated user, never to a client-supplied
	// value.
	CreateCourse(ctx context.Context, course *Course) (*Course, error)
	UpdateCourse(ctx context.Context, id, actorID uuid.UUID, changes *Course) error
	DeleteCourse(ctx context.Context, id, actorID uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListCourses(ctx context.Context) ([]Course, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list courses in repository")
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	return courses, nil
}

func (s *service) GetCourseByID(ctx context.Context, id uuid.UUID) (*Course, error) {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Msg("service: failed to get course by id in repository")
		return nil, fmt.Errorf("failed to get course by id '%s': %w", id, err)
	}

	return course, nil
}

func (s *service) CreateCourse(ctx context.Context, course *Course) (*Course, error) {
	if course.UserID == uuid.Nil {
		return nil, errors.New("course owner cannot be empty")
	}

	createdID, err := s.repo.Create(ctx, course)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to create course in repository")
		return nil, fmt.Errorf("failed to save course: %w", err)
	}

	course.ID = createdID

	return course, nil
}

// UpdateCourse loads the course, verifies ownership, and only then writes.
// The load-compare-act order guarantees a non-owner gets ErrNotOwner rather
// than ErrNotFound when the course exists. The read and the write are not
// wrapped in a transaction; concurrent writers race last-writer-wins.
func (s *service) UpdateCourse(ctx context.Context, id, actorID uuid.UUID, changes *Course) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		log.Error().Err(err).Msg("service: failed to load course for update")
		return fmt.Errorf("failed to load course '%s' for update: %w", id, err)
	}

	if existing.UserID != actorID {
		log.Warn().
			Stringer("course_id", id).
			Stringer("owner_id", existing.UserID).
			Stringer("actor_id", actorID).
			Msg("service: update rejected, actor does not own course")
		return ErrNotOwner
	}

	existing.Title = changes.Title
	existing.Description = changes.Description
	existing.EstimatedTime = changes.EstimatedTime
	existing.MaterialsNeeded = changes.MaterialsNeeded

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		log.Error().Err(err).Msg("service: failed to update course in repository")
		return fmt.Errorf("failed to update course '%s': %w", id, err)
	}

	return nil
}

// DeleteCourse follows the same load-compare-act protocol as UpdateCourse.
func (s *service) DeleteCourse(ctx context.Context, id, actorID uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		log.Error().Err(err).Msg("service: failed to load course for delete")
		return fmt.Errorf("failed to load course '%s' for delete: %w", id, err)
	}

	if existing.UserID != actorID {
		log.Warn().
			Stringer("course_id", id).
			Stringer("owner_id", existing.UserID).
			Stringer("actor_id", actorID).
			Msg("service: delete rejected, actor does not own course")
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		log.Error().Err(err).Msg("service: failed to delete course in repository")
		return fmt.Errorf("failed to delete course '%s': %w", id, err)
	}

	return nil
}
