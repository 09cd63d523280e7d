package entity

const (
	MinRating = 1
	MaxRating = 5
)

// Review is an immutable rating+text record authored by one account
// against one institution. Ids are global across the ledger, not
// per-institution. IsVerified is set by an external policy and is
// read-only here.
type Review struct {
	ID            int64  `json:"id" firestore:"id"`
	InstitutionID int64  `json:"institution_id" firestore:"institutionId"`
	Reviewer      string `json:"reviewer" firestore:"reviewer"`
	Rating        int    `json:"rating" firestore:"rating"` // 1-5
	Title         string `json:"title" firestore:"title"`
	Content       string `json:"content" firestore:"content"`
	Timestamp     int64  `json:"timestamp" firestore:"timestamp"` // unix seconds
	IsVerified    bool   `json:"is_verified" firestore:"isVerified"`
}

func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
