package helpers

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultPage     = 1 // Pages are 1-based
)

// NormalizePageParams clamps raw pagination parameters to valid values.
// page < 1 falls back to the first page; size < 1 falls back to
// DefaultPageSize and size above MaxPageSize is clamped down to it.
func NormalizePageParams(page, size int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

// CalculateOffsetLimit converts a 1-based page number into a SQL offset/limit pair.
func CalculateOffsetLimit(page, size int) (offset uint64, limit int) {
	page, limit = NormalizePageParams(page, size)
	offset = uint64((page - 1) * limit)
	return offset, limit
}
