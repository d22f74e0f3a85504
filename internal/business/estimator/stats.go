package estimator

import (
	"github.com/elev8ted-roofs/estimator-api/pkg/model"
	"github.com/elev8ted-roofs/estimator-api/pkg/util"
)

// AggregateStats reduces archived estimates into dashboard stats.
func AggregateStats(records []model.EstimateRecord) model.EstimateStats {
	var total, damaged int
	var areaSum, totalSum, perSqftSum float64
	addresses := make(map[string]struct{})

	for _, r := range records {
		total++
		if r.Inputs.HasDamage {
			damaged++
		}
		areaSum += r.Estimate.AreaSqFt
		totalSum += r.Estimate.Total
		perSqftSum += r.Estimate.CostPerSqFt
		if r.AddressHash != "" {
			addresses[r.AddressHash] = struct{}{}
		}
	}

	stats := model.EstimateStats{
		TotalEstimates:  total,
		WithDamage:      damaged,
		UniqueAddresses: len(addresses),
	}
	if total > 0 {
		n := float64(total)
		stats.AvgAreaSqFt = util.Round(areaSum/n, 2)
		stats.AvgTotal = util.Round(totalSum/n, 2)
		stats.AvgCostPerSqFt = util.Round(perSqftSum/n, 2)
	}
	return stats
}
