package repository

import (
	"context"

	"trustlens/internal/domain/entity"
)

type ReviewRepository interface {
	// Create assigns the next sequential global id, stores the review,
	// appends it to both indices and bumps the institution aggregates.
	// The whole unit commits atomically or not at all.
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id int64) (*entity.Review, error)
	// ListIDsByInstitution returns review ids in append order. The empty
	// slice is not an error; an unknown institution is.
	ListIDsByInstitution(ctx context.Context, institutionID int64) ([]int64, error)
	ListIDsByReviewer(ctx context.Context, reviewer string) ([]int64, error)
	// ListByInstitution returns full review records for one institution in
	// append order, windowed by limit/offset, plus the total count.
	ListByInstitution(ctx context.Context, institutionID int64, limit, offset int) ([]*entity.Review, int64, error)
	Count(ctx context.Context) (int64, error)
}
