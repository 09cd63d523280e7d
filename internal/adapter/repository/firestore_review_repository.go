package repository

import (
	"context"
	"strconv"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"trustlens/internal/domain/entity"
	"trustlens/internal/domain/repository"
	"trustlens/pkg/errors"
)

const (
	reviewCollection           = "reviews"
	institutionIndexCollection = "institution_reviews"
	reviewerIndexCollection    = "user_reviews"
)

type reviewIndexDoc struct {
	ReviewIDs []int64 `firestore:"reviewIds"`
}

type firestoreReviewRepository struct {
	client *firestore.Client
}

func NewFirestoreReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &firestoreReviewRepository{
		client: client,
	}
}

// Create runs the whole unit in one transaction: existence check, rating
// check, id assignment, review write, both index appends and the aggregate
// bump on the institution. A failed check aborts before any write.
func (r *firestoreReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if !entity.ValidRating(review.Rating) {
		return errors.InvalidRating(review.Rating)
	}

	institutionRef := r.client.Collection(institutionCollection).Doc(strconv.FormatInt(review.InstitutionID, 10))
	counterRef := r.client.Collection(counterCollection).Doc(reviewCollection)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		instSnap, err := tx.Get(institutionRef)
		if err != nil {
			return err
		}

		var institution entity.Institution
		if err := instSnap.DataTo(&institution); err != nil {
			return err
		}

		next, err := nextCounterValue(tx, counterRef)
		if err != nil {
			return err
		}

		review.ID = next

		reviewRef := r.client.Collection(reviewCollection).Doc(strconv.FormatInt(next, 10))
		if err := tx.Set(reviewRef, review); err != nil {
			return err
		}

		institutionIndexRef := r.client.Collection(institutionIndexCollection).Doc(strconv.FormatInt(review.InstitutionID, 10))
		if err := tx.Set(institutionIndexRef, map[string]interface{}{
			"reviewIds": firestore.ArrayUnion(next),
		}, firestore.MergeAll); err != nil {
			return err
		}

		reviewerIndexRef := r.client.Collection(reviewerIndexCollection).Doc(review.Reviewer)
		if err := tx.Set(reviewerIndexRef, map[string]interface{}{
			"reviewIds": firestore.ArrayUnion(next),
		}, firestore.MergeAll); err != nil {
			return err
		}

		if err := tx.Update(institutionRef, []firestore.Update{
			{Path: "totalReviews", Value: institution.TotalReviews + 1},
			{Path: "totalRating", Value: institution.TotalRating + int64(review.Rating)},
		}); err != nil {
			return err
		}

		return tx.Set(counterRef, counterDoc{Value: next})
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Institution", err)
		}
		return errors.Internal("Failed to create review", err)
	}

	return nil
}

func (r *firestoreReviewRepository) GetByID(ctx context.Context, id int64) (*entity.Review, error) {
	doc, err := r.client.Collection(reviewCollection).Doc(strconv.FormatInt(id, 10)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Review", err)
		}
		return nil, errors.Internal("Failed to get review", err)
	}

	var review entity.Review
	if err := doc.DataTo(&review); err != nil {
		return nil, errors.Internal("Failed to parse review data", err)
	}

	return &review, nil
}

func (r *firestoreReviewRepository) ListIDsByInstitution(ctx context.Context, institutionID int64) ([]int64, error) {
	// The institution must exist even when it has no reviews yet.
	if _, err := r.client.Collection(institutionCollection).Doc(strconv.FormatInt(institutionID, 10)).Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Institution", err)
		}
		return nil, errors.Internal("Failed to get institution", err)
	}

	return r.readIndex(ctx, institutionIndexCollection, strconv.FormatInt(institutionID, 10))
}

func (r *firestoreReviewRepository) ListIDsByReviewer(ctx context.Context, reviewer string) ([]int64, error) {
	return r.readIndex(ctx, reviewerIndexCollection, reviewer)
}

func (r *firestoreReviewRepository) ListByInstitution(ctx context.Context, institutionID int64, limit, offset int) ([]*entity.Review, int64, error) {
	instDoc, err := r.client.Collection(institutionCollection).Doc(strconv.FormatInt(institutionID, 10)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, 0, errors.NotFound("Institution", err)
		}
		return nil, 0, errors.Internal("Failed to get institution", err)
	}

	var institution entity.Institution
	if err := instDoc.DataTo(&institution); err != nil {
		return nil, 0, errors.Internal("Failed to parse institution data", err)
	}

	query := r.client.Collection(reviewCollection).
		Where("institutionId", "==", institutionID).
		OrderBy("id", firestore.Asc).
		Offset(offset).
		Limit(limit)

	iter := query.Documents(ctx)
	defer iter.Stop()

	reviews := make([]*entity.Review, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to list reviews", err)
		}

		var review entity.Review
		if err := doc.DataTo(&review); err != nil {
			return nil, 0, errors.Internal("Failed to parse review data", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, institution.TotalReviews, nil
}

func (r *firestoreReviewRepository) Count(ctx context.Context) (int64, error) {
	return readCounterValue(ctx, r.client, reviewCollection)
}

func (r *firestoreReviewRepository) readIndex(ctx context.Context, collection, key string) ([]int64, error) {
	snap, err := r.client.Collection(collection).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return []int64{}, nil
		}
		return nil, errors.Internal("Failed to read review index", err)
	}

	var index reviewIndexDoc
	if err := snap.DataTo(&index); err != nil {
		return nil, errors.Internal("Failed to parse review index", err)
	}
	if index.ReviewIDs == nil {
		return []int64{}, nil
	}
	return index.ReviewIDs, nil
}
