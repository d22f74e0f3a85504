package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/elev8ted-roofs/estimator-api/pkg/model"
	"github.com/elev8ted-roofs/estimator-api/pkg/util"
)

const migrationBatchSize = 100

// AddressFix is a pending rewrite of an archived estimate's address fields.
type AddressFix struct {
	ID          string
	Before      string
	After       string
	AddressHash string
}

// AddressFixFor reports whether rec needs its address cleaned or rehashed.
func AddressFixFor(rec model.EstimateRecord) (AddressFix, bool) {
	cleaned := util.CleanAddress(rec.Address)
	hash := util.HashAddress(rec.Address)
	if !util.NeedsCleanup(rec.Address) && hash == rec.AddressHash {
		return AddressFix{}, false
	}
	return AddressFix{ID: rec.ID, Before: rec.Address, After: cleaned, AddressHash: hash}, true
}

// PendingAddressFixes scans every archived estimate for stale address fields.
func (r *EstimateRepository) PendingAddressFixes(ctx context.Context) ([]AddressFix, int, error) {
	docs, err := r.client.Collection(estimatesCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, fmt.Errorf("get estimates: %w", err)
	}

	var fixes []AddressFix
	for _, doc := range docs {
		var rec model.EstimateRecord
		if err := doc.DataTo(&rec); err != nil {
			return nil, 0, fmt.Errorf("decode estimate %s: %w", doc.Ref.ID, err)
		}
		rec.ID = doc.Ref.ID
		if fix, ok := AddressFixFor(rec); ok {
			fixes = append(fixes, fix)
		}
	}
	return fixes, len(docs), nil
}

// ApplyAddressFixes writes fixes in batches and reports progress after each commit.
func (r *EstimateRepository) ApplyAddressFixes(ctx context.Context, fixes []AddressFix, progress func(done int)) (int, error) {
	updated := 0
	for i := 0; i < len(fixes); i += migrationBatchSize {
		end := min(i+migrationBatchSize, len(fixes))

		batch := r.client.Batch()
		for _, fix := range fixes[i:end] {
			batch.Update(r.client.Collection(estimatesCollection).Doc(fix.ID), []firestore.Update{
				{Path: "address", Value: fix.After},
				{Path: "addressHash", Value: fix.AddressHash},
			})
		}
		if _, err := batch.Commit(ctx); err != nil {
			return updated, fmt.Errorf("commit address batch: %w", err)
		}
		updated += end - i
		if progress != nil {
			progress(updated)
		}
	}
	return updated, nil
}
