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
	institutionCollection = "institutions"
	counterCollection     = "counters"
)

type counterDoc struct {
	Value int64 `firestore:"value"`
}

type firestoreInstitutionRepository struct {
	client *firestore.Client
}

func NewFirestoreInstitutionRepository(client *firestore.Client) repository.InstitutionRepository {
	return &firestoreInstitutionRepository{
		client: client,
	}
}

// Create assigns the next sequential id from the counter document and
// stores the institution in the same transaction, so concurrent creates
// serialize and never share an id.
func (r *firestoreInstitutionRepository) Create(ctx context.Context, institution *entity.Institution) error {
	counterRef := r.client.Collection(counterCollection).Doc(institutionCollection)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		next, err := nextCounterValue(tx, counterRef)
		if err != nil {
			return err
		}

		institution.ID = next

		docRef := r.client.Collection(institutionCollection).Doc(strconv.FormatInt(next, 10))
		if err := tx.Set(docRef, institution); err != nil {
			return err
		}
		return tx.Set(counterRef, counterDoc{Value: next})
	})
	if err != nil {
		return errors.Internal("Failed to create institution", err)
	}

	return nil
}

func (r *firestoreInstitutionRepository) GetByID(ctx context.Context, id int64) (*entity.Institution, error) {
	doc, err := r.client.Collection(institutionCollection).Doc(strconv.FormatInt(id, 10)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Institution", err)
		}
		return nil, errors.Internal("Failed to get institution", err)
	}

	var institution entity.Institution
	if err := doc.DataTo(&institution); err != nil {
		return nil, errors.Internal("Failed to parse institution data", err)
	}

	return &institution, nil
}

func (r *firestoreInstitutionRepository) List(ctx context.Context) ([]*entity.Institution, error) {
	iter := r.client.Collection(institutionCollection).OrderBy("id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	institutions := make([]*entity.Institution, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list institutions", err)
		}

		var institution entity.Institution
		if err := doc.DataTo(&institution); err != nil {
			return nil, errors.Internal("Failed to parse institution data", err)
		}
		institutions = append(institutions, &institution)
	}

	return institutions, nil
}

// Toggle reads isActive and writes the flipped value in one transaction, so
// a concurrent toggle forces a retry instead of being overwritten.
func (r *firestoreInstitutionRepository) Toggle(ctx context.Context, id int64) (bool, error) {
	docRef := r.client.Collection(institutionCollection).Doc(strconv.FormatInt(id, 10))

	var active bool
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(docRef)
		if err != nil {
			return err
		}

		var institution entity.Institution
		if err := snap.DataTo(&institution); err != nil {
			return err
		}

		active = !institution.IsActive
		return tx.Update(docRef, []firestore.Update{
			{Path: "isActive", Value: active},
		})
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, errors.NotFound("Institution", err)
		}
		return false, errors.Internal("Failed to toggle institution status", err)
	}

	return active, nil
}

func (r *firestoreInstitutionRepository) Count(ctx context.Context) (int64, error) {
	return readCounterValue(ctx, r.client, institutionCollection)
}

func nextCounterValue(tx *firestore.Transaction, counterRef *firestore.DocumentRef) (int64, error) {
	snap, err := tx.Get(counterRef)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return 1, nil
		}
		return 0, err
	}

	var counter counterDoc
	if err := snap.DataTo(&counter); err != nil {
		return 0, err
	}
	return counter.Value + 1, nil
}

func readCounterValue(ctx context.Context, client *firestore.Client, name string) (int64, error) {
	snap, err := client.Collection(counterCollection).Doc(name).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return 0, nil
		}
		return 0, errors.Internal("Failed to read counter", err)
	}

	var counter counterDoc
	if err := snap.DataTo(&counter); err != nil {
		return 0, errors.Internal("Failed to parse counter data", err)
	}
	return counter.Value, nil
}
