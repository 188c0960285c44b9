package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morozlab/holiday-visit-booking/internal/model"
)

func testOrder(id string) model.Order {
	return model.Order{
		OrderID:     id,
		OrderedAt:   "10.12.2025 14:03",
		Invitee:     model.Invitee,
		City:        "Moscow",
		VisitDate:   "24.12.2025",
		VisitTime:   "18:00",
		Tier:        model.TierStandard,
		DurationMin: 30,
		Price:       8000,
		Address:     "Tverskaya 7, apt 12",
		ChildCount:  2,
		ChildName:   "Masha",
		Phone:       "+79991234567",
		Comments:    model.CommentsNone,
	}
}

func TestOrderRepoCreatesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.xlsx")
	repo, err := NewOrderRepo(path)
	require.NoError(t, err)
	assert.Equal(t, path, repo.FilePath())

	orders, err := repo.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderRepoAppendAndLoad(t *testing.T) {
	repo, err := NewOrderRepo(filepath.Join(t.TempDir(), "orders.xlsx"))
	require.NoError(t, err)

	first := testOrder("ord-1")
	second := testOrder("ord-2")
	second.City = "Saint Petersburg"
	second.Tier = model.TierExtended
	second.DurationMin = 60
	second.Price = 12500

	require.NoError(t, repo.Append(first))
	require.NoError(t, repo.Append(second))

	orders, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, first, orders[0])
	assert.Equal(t, second, orders[1])
}

func TestOrderRepoReopensExistingWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.xlsx")
	repo, err := NewOrderRepo(path)
	require.NoError(t, err)
	require.NoError(t, repo.Append(testOrder("ord-1")))

	// A second instance over the same file sees the existing rows and
	// appends after them instead of truncating.
	again, err := NewOrderRepo(path)
	require.NoError(t, err)
	require.NoError(t, again.Append(testOrder("ord-2")))

	orders, err := again.LoadAll()
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ord-1", orders[0].OrderID)
	assert.Equal(t, "ord-2", orders[1].OrderID)
}
