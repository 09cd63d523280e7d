package entity

// Categories is the fixed set the request layer accepts for new
// institutions. The ledger itself stores category as free text and never
// validates membership; the check belongs to the caller.
var Categories = []string{
	"Banking & Finance",
	"Healthcare",
	"Education",
	"Technology",
	"Government",
	"Non-Profit",
	"Retail",
	"Insurance",
	"Real Estate",
	"Other",
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Institution is a reviewable entity. Ids are sequential starting at 1;
// 0 is reserved and never assigned. TotalReviews and TotalRating are
// rolling aggregates updated atomically with each accepted review.
type Institution struct {
	ID           int64  `json:"id" firestore:"id"`
	Name         string `json:"name" firestore:"name"`
	Category     string `json:"category" firestore:"category"`
	Description  string `json:"description" firestore:"description"`
	Website      string `json:"website" firestore:"website"`
	Owner        string `json:"owner" firestore:"owner"`
	TotalReviews int64  `json:"total_reviews" firestore:"totalReviews"`
	TotalRating  int64  `json:"total_rating" firestore:"totalRating"`
	Timestamp    int64  `json:"timestamp" firestore:"timestamp"` // unix seconds
	IsActive     bool   `json:"is_active" firestore:"isActive"`
}

// AverageRating is TotalRating / TotalReviews using truncating integer
// division, and 0 when no reviews exist. Clients that want finer precision
// derive it from the two aggregate fields themselves.
func (i *Institution) AverageRating() int64 {
	if i.TotalReviews == 0 {
		return 0
	}
	return i.TotalRating / i.TotalReviews
}
