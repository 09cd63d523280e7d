package repository

import (
	"context"

	"trustlens/internal/domain/entity"
)

type InstitutionRepository interface {
	// Create assigns the next sequential id and stores the institution.
	Create(ctx context.Context, institution *entity.Institution) error
	GetByID(ctx context.Context, id int64) (*entity.Institution, error)
	// List returns every institution ever created in ascending id order,
	// inactive ones included. Filtering is a caller concern.
	List(ctx context.Context) ([]*entity.Institution, error)
	// Toggle flips isActive under the store's own serialization and returns
	// the new value. Concurrent toggles each apply; none is lost to a stale
	// read.
	Toggle(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}
