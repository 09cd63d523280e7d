package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterrepository "trustlens/internal/adapter/repository"
	"trustlens/pkg/errors"
)

const (
	ownerAddress = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	otherAddress = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

type publishedEvent struct {
	eventType string
	payload   interface{}
}

type recordingPublisher struct {
	events []publishedEvent
}

func (p *recordingPublisher) Publish(eventType string, payload interface{}) {
	p.events = append(p.events, publishedEvent{eventType: eventType, payload: payload})
}

func newInstitutionFixture(t *testing.T) (*InstitutionUseCase, *recordingPublisher) {
	t.Helper()
	publisher := &recordingPublisher{}
	ledger := adapterrepository.NewMemoryLedger()
	return NewInstitutionUseCase(ledger.Institutions(), publisher), publisher
}

func acmeInput() CreateInstitutionInput {
	return CreateInstitutionInput{
		Name:        "Acme Bank",
		Category:    "Banking & Finance",
		Description: "Retail banking",
		Website:     "https://acme.example",
	}
}

func TestCreateInstitution(t *testing.T) {
	uc, publisher := newInstitutionFixture(t)
	ctx := context.Background()

	institution, err := uc.CreateInstitution(ctx, ownerAddress, acmeInput())
	require.NoError(t, err)

	assert.Equal(t, int64(1), institution.ID)
	assert.Equal(t, ownerAddress, institution.Owner)
	assert.True(t, institution.IsActive)
	assert.Equal(t, int64(0), institution.TotalReviews)
	assert.Equal(t, int64(0), institution.TotalRating)
	assert.NotZero(t, institution.Timestamp)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, EventInstitutionAdded, publisher.events[0].eventType)
	payload := publisher.events[0].payload.(map[string]interface{})
	assert.Equal(t, int64(1), payload["id"])
	assert.Equal(t, "Acme Bank", payload["name"])
	assert.Equal(t, ownerAddress, payload["owner"])
}

func TestToggleStatusByOwner(t *testing.T) {
	uc, publisher := newInstitutionFixture(t)
	ctx := context.Background()

	_, err := uc.CreateInstitution(ctx, ownerAddress, acmeInput())
	require.NoError(t, err)

	institution, err := uc.ToggleStatus(ctx, ownerAddress, 1)
	require.NoError(t, err)
	assert.False(t, institution.IsActive)

	// Toggling again restores the original value
	institution, err = uc.ToggleStatus(ctx, ownerAddress, 1)
	require.NoError(t, err)
	assert.True(t, institution.IsActive)

	require.Len(t, publisher.events, 3)
	assert.Equal(t, EventInstitutionUpdated, publisher.events[1].eventType)
	assert.Equal(t, EventInstitutionUpdated, publisher.events[2].eventType)
}

func TestToggleStatusByNonOwner(t *testing.T) {
	uc, publisher := newInstitutionFixture(t)
	ctx := context.Background()

	_, err := uc.CreateInstitution(ctx, ownerAddress, acmeInput())
	require.NoError(t, err)

	_, err = uc.ToggleStatus(ctx, otherAddress, 1)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	institution, err := uc.GetInstitutionByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, institution.IsActive, "status must be unchanged after a rejected toggle")

	assert.Len(t, publisher.events, 1, "no event for a rejected toggle")
}

func TestToggleStatusConcurrentCallsAllApply(t *testing.T) {
	uc, _ := newInstitutionFixture(t)
	ctx := context.Background()

	_, err := uc.CreateInstitution(ctx, ownerAddress, acmeInput())
	require.NoError(t, err)

	// Every accepted toggle is a real flip even under contention, so an
	// even number of them restores the original status.
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.ToggleStatus(ctx, ownerAddress, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	institution, err := uc.GetInstitutionByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, institution.IsActive)
}

func TestToggleStatusUnknownInstitution(t *testing.T) {
	uc, _ := newInstitutionFixture(t)

	_, err := uc.ToggleStatus(context.Background(), ownerAddress, 42)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestAverageRatingWithoutReviews(t *testing.T) {
	uc, _ := newInstitutionFixture(t)
	ctx := context.Background()

	_, err := uc.CreateInstitution(ctx, ownerAddress, acmeInput())
	require.NoError(t, err)

	average, err := uc.AverageRating(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), average)
}
