package usecase

// EventPublisher broadcasts ledger change notifications to connected
// observers so they can update caches incrementally instead of re-fetching
// the full collection after every write.
type EventPublisher interface {
	Publish(eventType string, payload interface{})
}

const (
	EventInstitutionAdded   = "institution.added"
	EventInstitutionUpdated = "institution.updated"
	EventReviewAdded        = "review.added"
)
