package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePageParams(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		size     int
		wantPage int
		wantSize int
	}{
		{"valid values pass through", 3, 50, 3, 50},
		{"zero page falls back to first", 0, 10, 1, 10},
		{"negative page falls back to first", -5, 10, 1, 10},
		{"zero size falls back to default", 1, 0, 1, DefaultPageSize},
		{"negative size falls back to default", 1, -1, 1, DefaultPageSize},
		{"oversized clamps to max", 1, MaxPageSize + 1, 1, MaxPageSize},
		{"far oversized clamps to max", 1, 500, 1, MaxPageSize},
		{"max size is allowed", 1, MaxPageSize, 1, MaxPageSize},
		{"size of one is allowed", 1, 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, size := NormalizePageParams(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(1, 20)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, 20, limit)

	offset, limit = CalculateOffsetLimit(3, 25)
	assert.Equal(t, uint64(50), offset)
	assert.Equal(t, 25, limit)

	// Out-of-range params are normalized before the offset is computed
	offset, limit = CalculateOffsetLimit(0, 500)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, MaxPageSize, limit)
}
