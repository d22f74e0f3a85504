package repository

import (
	"testing"

	"github.com/elev8ted-roofs/estimator-api/pkg/model"
	"github.com/elev8ted-roofs/estimator-api/pkg/util"
	"github.com/stretchr/testify/assert"
)

func TestAddressFixFor(t *testing.T) {
	clean := model.EstimateRecord{ID: "a", Address: "12 Oak St", AddressHash: util.HashAddress("12 Oak St")}
	_, ok := AddressFixFor(clean)
	assert.False(t, ok)

	messy := model.EstimateRecord{ID: "b", Address: "  12 <b>Oak</b>   St, ", AddressHash: "stale"}
	fix, ok := AddressFixFor(messy)
	assert.True(t, ok)
	assert.Equal(t, "b", fix.ID)
	assert.Equal(t, "12 Oak St", fix.After)
	assert.Equal(t, util.HashAddress("12 Oak St"), fix.AddressHash)

	rehash := model.EstimateRecord{ID: "c", Address: "12 Oak St"}
	fix, ok = AddressFixFor(rehash)
	assert.True(t, ok)
	assert.Equal(t, "12 Oak St", fix.After)
	assert.NotEmpty(t, fix.AddressHash)

	blank := model.EstimateRecord{ID: "d"}
	_, ok = AddressFixFor(blank)
	assert.False(t, ok)
}
