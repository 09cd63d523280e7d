package usecase

import (
	"context"
	"time"

	"trustlens/internal/domain/entity"
	"trustlens/internal/domain/repository"
	"trustlens/pkg/errors"
	"trustlens/pkg/logger"
)

type InstitutionUseCase struct {
	institutionRepo repository.InstitutionRepository
	events          EventPublisher
}

func NewInstitutionUseCase(
	institutionRepo repository.InstitutionRepository,
	events EventPublisher,
) *InstitutionUseCase {
	return &InstitutionUseCase{
		institutionRepo: institutionRepo,
		events:          events,
	}
}

type CreateInstitutionInput struct {
	Name        string
	Category    string
	Description string
	Website     string
}

func (uc *InstitutionUseCase) CreateInstitution(ctx context.Context, owner string, input CreateInstitutionInput) (*entity.Institution, error) {
	// Duplicate names are allowed on purpose; two "Acme Bank" entries are
	// two independent institutions with distinct ids.
	institution := &entity.Institution{
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Website:     input.Website,
		Owner:       owner,
		Timestamp:   time.Now().Unix(),
		IsActive:    true,
	}

	if err := uc.institutionRepo.Create(ctx, institution); err != nil {
		return nil, err
	}

	uc.events.Publish(EventInstitutionAdded, map[string]interface{}{
		"id":    institution.ID,
		"name":  institution.Name,
		"owner": institution.Owner,
	})
	logger.Info("Institution %d created by %s", institution.ID, owner)

	return institution, nil
}

func (uc *InstitutionUseCase) GetInstitutionByID(ctx context.Context, id int64) (*entity.Institution, error) {
	return uc.institutionRepo.GetByID(ctx, id)
}

func (uc *InstitutionUseCase) ListInstitutions(ctx context.Context) ([]*entity.Institution, error) {
	return uc.institutionRepo.List(ctx)
}

// ToggleStatus flips isActive. Calling twice restores the original value;
// each call is a real flip, not a no-op. The flip itself happens inside the
// repository so concurrent toggles all apply; only the ownership check reads
// ahead of it, which is safe because owner never changes after creation.
func (uc *InstitutionUseCase) ToggleStatus(ctx context.Context, caller string, id int64) (*entity.Institution, error) {
	institution, err := uc.institutionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if institution.Owner != caller {
		return nil, errors.Unauthorized("Only the institution owner can toggle its status", nil)
	}

	active, err := uc.institutionRepo.Toggle(ctx, id)
	if err != nil {
		return nil, err
	}
	institution.IsActive = active

	uc.events.Publish(EventInstitutionUpdated, map[string]interface{}{
		"id": institution.ID,
	})
	logger.Info("Institution %d status toggled to %t by %s", id, institution.IsActive, caller)

	return institution, nil
}

func (uc *InstitutionUseCase) AverageRating(ctx context.Context, id int64) (int64, error) {
	institution, err := uc.institutionRepo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return institution.AverageRating(), nil
}

func (uc *InstitutionUseCase) Count(ctx context.Context) (int64, error) {
	return uc.institutionRepo.Count(ctx)
}
