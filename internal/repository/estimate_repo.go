package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/elev8ted-roofs/estimator-api/pkg/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	estimatesCollection = "estimates"
	systemCollection    = "system"
	statsDoc            = "estimate_stats"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// EstimateRepository archives computed estimates in Firestore.
type EstimateRepository struct {
	client *firestore.Client
}

func NewEstimateRepository(client *firestore.Client) *EstimateRepository {
	return &EstimateRepository{client: client}
}

func (r *EstimateRepository) Save(ctx context.Context, rec model.EstimateRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("estimate id is required")
	}
	ref := r.client.Collection(estimatesCollection).Doc(rec.ID)
	if _, err := ref.Set(ctx, rec); err != nil {
		return fmt.Errorf("save estimate %s: %w", rec.ID, err)
	}
	return nil
}

func (r *EstimateRepository) Get(ctx context.Context, id string) (model.EstimateRecord, error) {
	snap, err := r.client.Collection(estimatesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return model.EstimateRecord{}, fmt.Errorf("estimate %s: %w", id, ErrNotFound)
		}
		return model.EstimateRecord{}, fmt.Errorf("get estimate %s: %w", id, err)
	}
	var rec model.EstimateRecord
	if err := snap.DataTo(&rec); err != nil {
		return model.EstimateRecord{}, fmt.Errorf("decode estimate %s: %w", id, err)
	}
	if rec.ID == "" {
		rec.ID = snap.Ref.ID
	}
	return rec, nil
}

// ListRecent returns the newest estimates first.
func (r *EstimateRepository) ListRecent(ctx context.Context, limit int) ([]model.EstimateRecord, error) {
	iter := r.client.Collection(estimatesCollection).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var out []model.EstimateRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate estimates: %w", err)
		}
		var rec model.EstimateRecord
		if err := doc.DataTo(&rec); err != nil {
			return nil, fmt.Errorf("decode estimate %s: %w", doc.Ref.ID, err)
		}
		if rec.ID == "" {
			rec.ID = doc.Ref.ID
		}
		out = append(out, rec)
	}
	return out, nil
}

// SaveStats stores the pre-aggregated estimate stats singleton. A zero
// LastUpdated is stamped with the current time.
func (r *EstimateRepository) SaveStats(ctx context.Context, stats model.EstimateStats) error {
	if stats.LastUpdated.IsZero() {
		stats.LastUpdated = time.Now().UTC()
	}
	ref := r.client.Collection(systemCollection).Doc(statsDoc)
	if _, err := ref.Set(ctx, stats); err != nil {
		return fmt.Errorf("save estimate stats: %w", err)
	}
	return nil
}

func (r *EstimateRepository) GetStats(ctx context.Context) (model.EstimateStats, error) {
	snap, err := r.client.Collection(systemCollection).Doc(statsDoc).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return model.EstimateStats{}, fmt.Errorf("estimate stats: %w", ErrNotFound)
		}
		return model.EstimateStats{}, fmt.Errorf("get estimate stats: %w", err)
	}
	var stats model.EstimateStats
	if err := snap.DataTo(&stats); err != nil {
		return model.EstimateStats{}, fmt.Errorf("decode estimate stats: %w", err)
	}
	return stats, nil
}
