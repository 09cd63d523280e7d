package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustlens/internal/domain/entity"
	"trustlens/pkg/errors"
)

func newInstitution(name string) *entity.Institution {
	return &entity.Institution{
		Name:        name,
		Category:    "Banking & Finance",
		Description: "A bank",
		Website:     "https://example.com",
		Owner:       "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Timestamp:   1700000000,
		IsActive:    true,
	}
}

func newReview(institutionID int64, rating int) *entity.Review {
	return &entity.Review{
		InstitutionID: institutionID,
		Reviewer:      "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		Rating:        rating,
		Title:         "Solid",
		Content:       "Good service overall",
		Timestamp:     1700000100,
	}
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		institution := newInstitution("Acme Bank")
		require.NoError(t, ledger.Institutions().Create(ctx, institution))
		assert.Equal(t, i, institution.ID)
	}

	count, err := ledger.Institutions().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestDuplicateNamesAllowed(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	first := newInstitution("Acme Bank")
	second := newInstitution("Acme Bank")
	require.NoError(t, ledger.Institutions().Create(ctx, first))
	require.NoError(t, ledger.Institutions().Create(ctx, second))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	institutions, err := ledger.Institutions().List(ctx)
	require.NoError(t, err)
	require.Len(t, institutions, 2)
	assert.Equal(t, institutions[0].Name, institutions[1].Name)
}

func TestReviewAggregates(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	institution := newInstitution("Acme Bank")
	require.NoError(t, ledger.Institutions().Create(ctx, institution))
	assert.Equal(t, int64(1), institution.ID)

	first := newReview(1, 4)
	require.NoError(t, ledger.Reviews().Create(ctx, first))
	assert.Equal(t, int64(1), first.ID)

	got, err := ledger.Institutions().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TotalReviews)
	assert.Equal(t, int64(4), got.TotalRating)
	assert.Equal(t, int64(4), got.AverageRating())

	second := newReview(1, 5)
	require.NoError(t, ledger.Reviews().Create(ctx, second))
	assert.Equal(t, int64(2), second.ID)

	got, err = ledger.Institutions().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.TotalReviews)
	assert.Equal(t, int64(9), got.TotalRating)
	// 9 / 2 truncates to 4
	assert.Equal(t, int64(4), got.AverageRating())
}

func TestInvalidRatingRejectedBeforeMutation(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	require.NoError(t, ledger.Institutions().Create(ctx, newInstitution("Acme Bank")))

	for _, rating := range []int{0, 6, -1} {
		err := ledger.Reviews().Create(ctx, newReview(1, rating))
		assert.True(t, errors.Is(err, "INVALID_RATING"), "rating %d should be rejected", rating)
	}

	count, err := ledger.Reviews().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	institution, err := ledger.Institutions().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), institution.TotalReviews)
	assert.Equal(t, int64(0), institution.TotalRating)

	// The id counter must not have advanced
	accepted := newReview(1, 3)
	require.NoError(t, ledger.Reviews().Create(ctx, accepted))
	assert.Equal(t, int64(1), accepted.ID)
}

func TestReviewUnknownInstitutionRejected(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	err := ledger.Reviews().Create(ctx, newReview(42, 4))
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	count, err := ledger.Reviews().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestListIDsByInstitutionAppendOrder(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	require.NoError(t, ledger.Institutions().Create(ctx, newInstitution("Acme Bank")))
	require.NoError(t, ledger.Institutions().Create(ctx, newInstitution("Beta Clinic")))

	require.NoError(t, ledger.Reviews().Create(ctx, newReview(1, 4)))
	require.NoError(t, ledger.Reviews().Create(ctx, newReview(2, 2)))
	require.NoError(t, ledger.Reviews().Create(ctx, newReview(1, 5)))

	ids, err := ledger.Reviews().ListIDsByInstitution(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids)

	ids, err = ledger.Reviews().ListIDsByInstitution(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids)
}

func TestListIDsByInstitutionEmptyVsUnknown(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	require.NoError(t, ledger.Institutions().Create(ctx, newInstitution("Acme Bank")))

	// Existing institution with no reviews: empty slice, not an error
	ids, err := ledger.Reviews().ListIDsByInstitution(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)

	// Unknown institution: NotFound
	_, err = ledger.Reviews().ListIDsByInstitution(ctx, 99)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestListIDsByReviewer(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	require.NoError(t, ledger.Institutions().Create(ctx, newInstitution("Acme Bank")))

	review := newReview(1, 5)
	require.NoError(t, ledger.Reviews().Create(ctx, review))

	ids, err := ledger.Reviews().ListIDsByReviewer(ctx, review.Reviewer)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids)

	ids, err = ledger.Reviews().ListIDsByReviewer(ctx, "0xcccccccccccccccccccccccccccccccccccccccc")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestListByInstitutionPagination(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	require.NoError(t, ledger.Institutions().Create(ctx, newInstitution("Acme Bank")))
	for _, rating := range []int{3, 4, 5} {
		require.NoError(t, ledger.Reviews().Create(ctx, newReview(1, rating)))
	}

	reviews, total, err := ledger.Reviews().ListByInstitution(ctx, 1, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, reviews, 2)
	assert.Equal(t, int64(1), reviews[0].ID)
	assert.Equal(t, int64(2), reviews[1].ID)

	reviews, total, err = ledger.Reviews().ListByInstitution(ctx, 1, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, reviews, 1)
	assert.Equal(t, int64(3), reviews[0].ID)

	reviews, _, err = ledger.Reviews().ListByInstitution(ctx, 1, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestToggle(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	require.NoError(t, ledger.Institutions().Create(ctx, newInstitution("Acme Bank")))

	active, err := ledger.Institutions().Toggle(ctx, 1)
	require.NoError(t, err)
	assert.False(t, active)

	institution, err := ledger.Institutions().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, institution.IsActive)

	active, err = ledger.Institutions().Toggle(ctx, 1)
	require.NoError(t, err)
	assert.True(t, active)

	_, err = ledger.Institutions().Toggle(ctx, 99)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestToggleConcurrentFlipsAllApply(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	require.NoError(t, ledger.Institutions().Create(ctx, newInstitution("Acme Bank")))

	// An even number of toggles must land back on the starting value; a
	// lost flip would leave the institution inactive.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_, err := ledger.Institutions().Toggle(ctx, 1)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	institution, err := ledger.Institutions().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, institution.IsActive)
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	require.NoError(t, ledger.Institutions().Create(ctx, newInstitution("Acme Bank")))

	got, err := ledger.Institutions().GetByID(ctx, 1)
	require.NoError(t, err)
	got.Name = "Tampered"
	got.TotalRating = 1000

	fresh, err := ledger.Institutions().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Acme Bank", fresh.Name)
	assert.Equal(t, int64(0), fresh.TotalRating)
}
