package usecase

import (
	"context"
	"strings"
	"time"

	"trustlens/internal/domain/entity"
	"trustlens/internal/domain/repository"
	"trustlens/pkg/logger"
)

type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	events     EventPublisher
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	events EventPublisher,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		events:     events,
	}
}

type CreateReviewInput struct {
	Rating  int
	Title   string
	Content string
}

func (uc *ReviewUseCase) CreateReview(ctx context.Context, reviewer string, institutionID int64, input CreateReviewInput) (*entity.Review, error) {
	// Multiple reviews by the same account for the same institution are
	// allowed; the ledger defines no per-reviewer limit.
	review := &entity.Review{
		InstitutionID: institutionID,
		Reviewer:      normalizeAddress(reviewer),
		Rating:        input.Rating,
		Title:         input.Title,
		Content:       input.Content,
		Timestamp:     time.Now().Unix(),
		IsVerified:    false,
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	uc.events.Publish(EventReviewAdded, map[string]interface{}{
		"id":             review.ID,
		"institution_id": review.InstitutionID,
		"reviewer":       review.Reviewer,
		"rating":         review.Rating,
	})
	logger.Info("Review %d added for institution %d by %s", review.ID, institutionID, review.Reviewer)

	return review, nil
}

func (uc *ReviewUseCase) GetReviewByID(ctx context.Context, id int64) (*entity.Review, error) {
	return uc.reviewRepo.GetByID(ctx, id)
}

func (uc *ReviewUseCase) ListInstitutionReviewIDs(ctx context.Context, institutionID int64) ([]int64, error) {
	return uc.reviewRepo.ListIDsByInstitution(ctx, institutionID)
}

func (uc *ReviewUseCase) ListReviewerReviewIDs(ctx context.Context, reviewer string) ([]int64, error) {
	return uc.reviewRepo.ListIDsByReviewer(ctx, normalizeAddress(reviewer))
}

func (uc *ReviewUseCase) ListInstitutionReviews(ctx context.Context, institutionID int64, page, limit int) ([]*entity.Review, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	return uc.reviewRepo.ListByInstitution(ctx, institutionID, limit, offset)
}

func (uc *ReviewUseCase) Count(ctx context.Context) (int64, error) {
	return uc.reviewRepo.Count(ctx)
}

// Wallet addresses are case-insensitive hex; the ledger stores and looks
// them up in one canonical form.
func normalizeAddress(address string) string {
	return strings.ToLower(address)
}
