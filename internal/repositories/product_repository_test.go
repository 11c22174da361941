package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"productapi/internal/database"
	"productapi/internal/models"
	"productapi/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newSQLiteRepository(t *testing.T) *repositories.GORMProductRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })

	return repositories.NewGORMProductRepository(db)
}

func TestProductRepositories(t *testing.T) {
	impls := map[string]func(t *testing.T) repositories.ProductRepository{
		"memory": func(t *testing.T) repositories.ProductRepository {
			return repositories.NewMemoryProductRepository()
		},
		"gorm-sqlite": func(t *testing.T) repositories.ProductRepository {
			return newSQLiteRepository(t)
		},
	}

	for name, newRepo := range impls {
		t.Run(name, func(t *testing.T) {
			runProductRepositoryContract(t, newRepo)
		})
	}
}

// runProductRepositoryContract exercises behaviour every ProductRepository must share.
func runProductRepositoryContract(t *testing.T, newRepo func(t *testing.T) repositories.ProductRepository) {
	ctx := context.Background()

	t.Run("Save assigns an ID", func(t *testing.T) {
		repo := newRepo(t)
		product := &models.Product{Name: "Laptop", Value: 1200}

		require.NoError(t, repo.Save(ctx, product))

		assert.NotEqual(t, uuid.Nil, product.ID)
		found, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Laptop", found.Name)
		assert.Equal(t, 1200.0, found.Value)
	})

	t.Run("Save twice yields distinct IDs", func(t *testing.T) {
		repo := newRepo(t)
		first := &models.Product{Name: "Keyboard", Value: 75}
		second := &models.Product{Name: "Keyboard", Value: 75}

		require.NoError(t, repo.Save(ctx, first))
		require.NoError(t, repo.Save(ctx, second))

		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("Save existing updates in place", func(t *testing.T) {
		repo := newRepo(t)
		product := &models.Product{Name: "Mouse", Value: 25}
		require.NoError(t, repo.Save(ctx, product))
		id := product.ID

		product.Name = "Wireless Mouse"
		product.Value = 30
		require.NoError(t, repo.Save(ctx, product))

		assert.Equal(t, id, product.ID)
		found, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Wireless Mouse", found.Name)
		assert.Equal(t, 30.0, found.Value)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("FindByID unknown", func(t *testing.T) {
		repo := newRepo(t)

		found, err := repo.FindByID(ctx, uuid.New())

		assert.Nil(t, found)
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	})

	t.Run("FindAll empty", func(t *testing.T) {
		repo := newRepo(t)

		all, err := repo.FindAll(ctx)

		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})

	t.Run("FindAll returns every product", func(t *testing.T) {
		repo := newRepo(t)
		for _, name := range []string{"Laptop", "Keyboard", "Mouse"} {
			require.NoError(t, repo.Save(ctx, &models.Product{Name: name, Value: 1}))
		}

		all, err := repo.FindAll(ctx)

		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("Delete removes the instance", func(t *testing.T) {
		repo := newRepo(t)
		keep := &models.Product{Name: "Keep", Value: 1}
		drop := &models.Product{Name: "Drop", Value: 2}
		require.NoError(t, repo.Save(ctx, keep))
		require.NoError(t, repo.Save(ctx, drop))

		require.NoError(t, repo.Delete(ctx, drop))

		_, err := repo.FindByID(ctx, drop.ID)
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)
		_, err = repo.FindByID(ctx, keep.ID)
		assert.NoError(t, err)
	})

	t.Run("Delete unknown", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.Delete(ctx, &models.Product{ID: uuid.New()})

		assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	})
}

func TestMemoryProductRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryProductRepository()
	product := &models.Product{Name: "Monitor", Value: 200}
	require.NoError(t, repo.Save(ctx, product))

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	found.Name = "mutated"

	again, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Monitor", again.Name)
	assert.Equal(t, 1, repo.Len())
}
