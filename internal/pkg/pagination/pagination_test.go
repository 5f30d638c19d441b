package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"studyon-billing/internal/pkg/pagination"
)

func TestPager_Params(t *testing.T) {
	pager := pagination.NewPager(15)

	p := pager.Params(0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 15, p.Limit, "configured default applies")
	assert.Equal(t, 0, p.Offset)

	p = pager.Params(3, 500)
	assert.Equal(t, pagination.MaxLimit, p.Limit)
	assert.Equal(t, 200, p.Offset)

	assert.Equal(t, 20, pagination.NewPager(0).DefaultLimit())
	assert.Equal(t, 20, pagination.NewPager(1000).DefaultLimit())
}

func TestNewPage(t *testing.T) {
	pager := pagination.NewPager(10)

	page := pagination.NewPage([]string{"a", "b"}, pager.Params(2, 10), 25)
	assert.Equal(t, 3, page.Meta.TotalPages)
	assert.True(t, page.Meta.HasNext)
	assert.True(t, page.Meta.HasPrev)

	empty := pagination.NewPage[string](nil, pager.Params(1, 10), 0)
	assert.NotNil(t, empty.Data)
	assert.Equal(t, 0, empty.Meta.TotalPages)
	assert.False(t, empty.Meta.HasNext)
	assert.False(t, empty.Meta.HasPrev)
}
