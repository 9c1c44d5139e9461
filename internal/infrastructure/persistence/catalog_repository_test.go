package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/catalog"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormCategoryRepository(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	books := f.category(t, "Books")
	f.category(t, "Electronics")

	t.Run("finds by id and name", func(t *testing.T) {
		found, err := f.categories.FindByID(ctx, books.ID)
		require.NoError(t, err)
		assert.Equal(t, "Books", found.Name)
		assert.Equal(t, 1, found.Version)

		found, err = f.categories.FindByName(ctx, " Books ")
		require.NoError(t, err)
		assert.Equal(t, books.ID, found.ID)
	})

	t.Run("missing category is not found", func(t *testing.T) {
		_, err := f.categories.FindByID(ctx, uuid.New())
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("duplicate name is a conflict on name", func(t *testing.T) {
		dup, err := catalog.NewCategory("Books", "")
		require.NoError(t, err)

		err = f.categories.Save(ctx, dup)
		require.Error(t, err)
		assert.True(t, shared.IsConflict(err))
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "name", de.Field)
	})

	t.Run("lists with search and count", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.OrderBy = "name"
		filter.OrderDir = "asc"

		all, err := f.categories.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Books", all[0].Name)

		filter.Search = "electr"
		found, err := f.categories.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, found, 1)

		count, err := f.categories.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("has products and delete", func(t *testing.T) {
		empty := f.category(t, "Empty")
		f.product(t, books.ID, "Go in Action", "30.00", 5)

		has, err := f.categories.HasProducts(ctx, books.ID)
		require.NoError(t, err)
		assert.True(t, has)

		has, err = f.categories.HasProducts(ctx, empty.ID)
		require.NoError(t, err)
		assert.False(t, has)

		require.NoError(t, f.categories.Delete(ctx, empty.ID))
		assert.True(t, shared.IsNotFound(f.categories.Delete(ctx, empty.ID)))
	})
}

func TestGormProductRepository(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	books := f.category(t, "Books")
	toys := f.category(t, "Toys")

	novel := f.product(t, books.ID, "Novel", "12.50", 40)
	atlas := f.product(t, books.ID, "World Atlas", "45.00", 3)
	robot := f.product(t, toys.ID, "Robot", "99.99", 0)

	t.Run("round trips price and stock", func(t *testing.T) {
		found, err := f.products.FindByID(ctx, novel.ID)
		require.NoError(t, err)
		assert.Equal(t, "12.50", found.Price.String())
		assert.Equal(t, 40, found.StockQuantity)
		assert.Equal(t, books.ID, found.CategoryID)
		assert.True(t, found.IsActive)
	})

	t.Run("finds by ids", func(t *testing.T) {
		missing := uuid.New()
		found, err := f.products.FindByIDs(ctx, []uuid.UUID{novel.ID, robot.ID, missing})
		require.NoError(t, err)
		assert.Len(t, found, 2)
		assert.Contains(t, found, robot.ID)
		assert.NotContains(t, found, missing)

		none, err := f.products.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	tests := []struct {
		name    string
		filters map[string]any
		search  string
		want    []uuid.UUID
	}{
		{"by category", map[string]any{"category_id": books.ID}, "", []uuid.UUID{novel.ID, atlas.ID}},
		{"in stock", map[string]any{"in_stock": true}, "", []uuid.UUID{novel.ID, atlas.ID}},
		{"out of stock", map[string]any{"in_stock": false}, "", []uuid.UUID{robot.ID}},
		{"low stock", map[string]any{"low_stock": catalog.DefaultLowStockThreshold}, "", []uuid.UUID{atlas.ID, robot.ID}},
		{"price range", map[string]any{"min_price": 20.0, "max_price": 50.0}, "", []uuid.UUID{atlas.ID}},
		{"search", map[string]any{}, "ATLAS", []uuid.UUID{atlas.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := shared.DefaultFilter()
			filter.Filters = tt.filters
			filter.Search = tt.search

			products, err := f.products.FindAll(ctx, filter)
			require.NoError(t, err)
			ids := make([]uuid.UUID, len(products))
			for i := range products {
				ids[i] = products[i].ID
			}
			assert.ElementsMatch(t, tt.want, ids)

			count, err := f.products.Count(ctx, filter)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), count)
		})
	}

	t.Run("inactive flag persists", func(t *testing.T) {
		robot.Deactivate()
		require.NoError(t, f.products.Save(ctx, robot))

		filter := shared.DefaultFilter()
		filter.Filters["is_active"] = true
		count, err := f.products.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("sorts by price", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.OrderBy = "price"
		filter.OrderDir = "asc"

		products, err := f.products.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.Equal(t, novel.ID, products[0].ID)
		assert.Equal(t, robot.ID, products[2].ID)
	})

	t.Run("referenced by order lines", func(t *testing.T) {
		alice := f.customer(t, "alice")
		f.cart(t, alice.ID, 1, novel)

		referenced, err := f.products.IsReferenced(ctx, novel.ID)
		require.NoError(t, err)
		assert.True(t, referenced)

		referenced, err = f.products.IsReferenced(ctx, atlas.ID)
		require.NoError(t, err)
		assert.False(t, referenced)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, f.products.Delete(ctx, atlas.ID))
		_, err := f.products.FindByID(ctx, atlas.ID)
		assert.True(t, shared.IsNotFound(err))
	})
}
