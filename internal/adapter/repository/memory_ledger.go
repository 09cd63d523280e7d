package repository

import (
	"context"
	"sync"

	"trustlens/internal/domain/entity"
	"trustlens/internal/domain/repository"
	"trustlens/pkg/errors"
)

// MemoryLedger keeps the whole ledger in process memory behind one mutex,
// so every mutation applies as a single indivisible unit and no reader
// ever observes a half-applied state. It backs development mode
// (STORAGE_DRIVER=memory) and the test suite; Firestore is the production
// driver.
type MemoryLedger struct {
	mu            sync.RWMutex
	institutions  []*entity.Institution
	reviews       []*entity.Review
	byInstitution map[int64][]int64
	byReviewer    map[string][]int64
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		byInstitution: make(map[int64][]int64),
		byReviewer:    make(map[string][]int64),
	}
}

// Institutions returns the registry view of the ledger.
func (l *MemoryLedger) Institutions() repository.InstitutionRepository {
	return &memoryInstitutionRepository{ledger: l}
}

// Reviews returns the review-ledger view.
func (l *MemoryLedger) Reviews() repository.ReviewRepository {
	return &memoryReviewRepository{ledger: l}
}

type memoryInstitutionRepository struct {
	ledger *MemoryLedger
}

func (r *memoryInstitutionRepository) Create(ctx context.Context, institution *entity.Institution) error {
	l := r.ledger
	l.mu.Lock()
	defer l.mu.Unlock()

	institution.ID = int64(len(l.institutions)) + 1

	stored := *institution
	l.institutions = append(l.institutions, &stored)
	return nil
}

func (r *memoryInstitutionRepository) GetByID(ctx context.Context, id int64) (*entity.Institution, error) {
	l := r.ledger
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.institutionLocked(id)
}

func (r *memoryInstitutionRepository) List(ctx context.Context) ([]*entity.Institution, error) {
	l := r.ledger
	l.mu.RLock()
	defer l.mu.RUnlock()

	// Slice order is id order; ids are assigned by append.
	institutions := make([]*entity.Institution, 0, len(l.institutions))
	for _, stored := range l.institutions {
		institution := *stored
		institutions = append(institutions, &institution)
	}
	return institutions, nil
}

func (r *memoryInstitutionRepository) Toggle(ctx context.Context, id int64) (bool, error) {
	l := r.ledger
	l.mu.Lock()
	defer l.mu.Unlock()

	institution, err := l.institutionStoredLocked(id)
	if err != nil {
		return false, err
	}
	institution.IsActive = !institution.IsActive
	return institution.IsActive, nil
}

func (r *memoryInstitutionRepository) Count(ctx context.Context) (int64, error) {
	l := r.ledger
	l.mu.RLock()
	defer l.mu.RUnlock()

	return int64(len(l.institutions)), nil
}

type memoryReviewRepository struct {
	ledger *MemoryLedger
}

func (r *memoryReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	l := r.ledger
	l.mu.Lock()
	defer l.mu.Unlock()

	// All checks happen before any state is touched, so a rejected review
	// leaves the id counter, indices and aggregates untouched.
	institution, err := l.institutionStoredLocked(review.InstitutionID)
	if err != nil {
		return err
	}
	if !entity.ValidRating(review.Rating) {
		return errors.InvalidRating(review.Rating)
	}

	review.ID = int64(len(l.reviews)) + 1

	stored := *review
	l.reviews = append(l.reviews, &stored)
	l.byInstitution[institution.ID] = append(l.byInstitution[institution.ID], stored.ID)
	l.byReviewer[stored.Reviewer] = append(l.byReviewer[stored.Reviewer], stored.ID)
	institution.TotalReviews++
	institution.TotalRating += int64(stored.Rating)
	return nil
}

func (r *memoryReviewRepository) GetByID(ctx context.Context, id int64) (*entity.Review, error) {
	l := r.ledger
	l.mu.RLock()
	defer l.mu.RUnlock()

	if id < 1 || id > int64(len(l.reviews)) {
		return nil, errors.NotFound("Review", nil)
	}
	review := *l.reviews[id-1]
	return &review, nil
}

func (r *memoryReviewRepository) ListIDsByInstitution(ctx context.Context, institutionID int64) ([]int64, error) {
	l := r.ledger
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, err := l.institutionLocked(institutionID); err != nil {
		return nil, err
	}
	ids := make([]int64, len(l.byInstitution[institutionID]))
	copy(ids, l.byInstitution[institutionID])
	return ids, nil
}

func (r *memoryReviewRepository) ListIDsByReviewer(ctx context.Context, reviewer string) ([]int64, error) {
	l := r.ledger
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := make([]int64, len(l.byReviewer[reviewer]))
	copy(ids, l.byReviewer[reviewer])
	return ids, nil
}

func (r *memoryReviewRepository) ListByInstitution(ctx context.Context, institutionID int64, limit, offset int) ([]*entity.Review, int64, error) {
	l := r.ledger
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, err := l.institutionLocked(institutionID); err != nil {
		return nil, 0, err
	}

	ids := l.byInstitution[institutionID]
	total := int64(len(ids))

	if offset < 0 {
		offset = 0
	}
	if offset >= len(ids) {
		return []*entity.Review{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(ids) {
		end = len(ids)
	}

	reviews := make([]*entity.Review, 0, end-offset)
	for _, id := range ids[offset:end] {
		review := *l.reviews[id-1]
		reviews = append(reviews, &review)
	}
	return reviews, total, nil
}

func (r *memoryReviewRepository) Count(ctx context.Context) (int64, error) {
	l := r.ledger
	l.mu.RLock()
	defer l.mu.RUnlock()

	return int64(len(l.reviews)), nil
}

// institutionLocked returns a copy; callers must hold at least a read lock.
func (l *MemoryLedger) institutionLocked(id int64) (*entity.Institution, error) {
	stored, err := l.institutionStoredLocked(id)
	if err != nil {
		return nil, err
	}
	institution := *stored
	return &institution, nil
}

// institutionStoredLocked returns the stored record itself for in-place
// aggregate updates; callers must hold the write lock for mutation.
func (l *MemoryLedger) institutionStoredLocked(id int64) (*entity.Institution, error) {
	if id < 1 || id > int64(len(l.institutions)) {
		return nil, errors.NotFound("Institution", nil)
	}
	return l.institutions[id-1], nil
}
