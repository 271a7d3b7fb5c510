package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 20, Params{Page: 2, Limit: 20}.Offset())
	assert.Equal(t, 45, Params{Page: 4, Limit: 15}.Offset())
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Params{Page: 2, Limit: 20}, 41)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 20, meta.Limit)
	assert.Equal(t, int64(41), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)

	exact := NewMeta(Params{Page: 1, Limit: 20}, 40)
	assert.Equal(t, 2, exact.TotalPages)

	empty := NewMeta(Params{Page: 1, Limit: 20}, 0)
	assert.Equal(t, 0, empty.TotalPages)
}
