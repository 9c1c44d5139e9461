//go:build integration

package persistence

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	mpg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/shopdesk/backend/internal/domain/catalog"
	"github.com/shopdesk/backend/internal/domain/customer"
	"github.com/shopdesk/backend/internal/domain/order"
	"github.com/shopdesk/backend/internal/domain/payment"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newPostgresDB starts a PostgreSQL container and applies the SQL migrations
func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("shopdesk_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: Failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}
	db, err := gorm.Open(gormpostgres.Open(dsn), gormCfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	runMigrations(t, sqlDB)
	return db
}

func runMigrations(t *testing.T, sqlDB *sql.DB) {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok)
	migrationsPath := filepath.Join(filepath.Dir(filename), "..", "..", "..", "migrations", "postgres")

	driver, err := mpg.WithInstance(sqlDB, &mpg.Config{})
	require.NoError(t, err)
	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	require.NoError(t, err)

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to run migrations")
	}
}

func TestPostgres_OrderLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := newPostgresDB(t)
	ctx := context.Background()
	txm := NewGormTxManager(db)
	categories := NewGormCategoryRepository(db)
	products := NewGormProductRepository(db)
	customers := NewGormCustomerRepository(db)
	orders := NewGormOrderRepository(db)
	payments := NewGormPaymentRepository(db)
	dashboard := NewGormDashboardRepository(db)

	books, err := catalog.NewCategory("Books", "")
	require.NoError(t, err)
	require.NoError(t, categories.Save(ctx, books))

	novel, err := catalog.NewProduct("Novel", "", mustMoney(t, "12.50"), 3, books.ID)
	require.NoError(t, err)
	require.NoError(t, products.Save(ctx, novel))

	alice, err := customer.NewCustomer("alice", "alice@example.com", "secret123", customer.Profile{})
	require.NoError(t, err)
	require.NoError(t, customers.Save(ctx, alice))

	cart, err := order.NewCart(alice.ID)
	require.NoError(t, err)
	err = txm.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := customers.FindByIDForUpdate(ctx, alice.ID); err != nil {
			return err
		}
		if _, err := cart.AddItem(snapshot(novel), 2); err != nil {
			return err
		}
		return orders.Save(ctx, cart)
	})
	require.NoError(t, err)
	cartID := cart.ID

	t.Run("stale writes are rejected", func(t *testing.T) {
		first, err := orders.FindByID(ctx, cartID)
		require.NoError(t, err)
		second, err := orders.FindByID(ctx, cartID)
		require.NoError(t, err)

		require.NoError(t, first.Checkout())
		require.NoError(t, orders.Save(ctx, first))

		require.NoError(t, second.ChangeStatus(order.StatusCancelled))
		assert.ErrorIs(t, orders.Save(ctx, second), shared.ErrConcurrencyConflict)
	})

	t.Run("payments and dashboard revenue", func(t *testing.T) {
		o, err := orders.FindByID(ctx, cartID)
		require.NoError(t, err)
		require.NoError(t, o.ChangeStatus(order.StatusDelivered))
		require.NoError(t, orders.Save(ctx, o))

		p, err := payment.Record(payment.RecordInput{
			OrderID:       o.ID,
			Method:        payment.MethodCreditCard,
			TransactionID: "PG-1",
		}, o.TotalAmount)
		require.NoError(t, err)
		require.NoError(t, payments.Save(ctx, p))

		dup, err := payment.Record(payment.RecordInput{
			OrderID:       o.ID,
			Method:        payment.MethodCreditCard,
			TransactionID: "PG-1",
		}, o.TotalAmount)
		require.NoError(t, err)
		assert.True(t, shared.IsConflict(payments.Save(ctx, dup)))

		sum, err := payments.SumAmount(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, "25.00", sum.String())

		stats, err := dashboard.DeliveredStats(ctx, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.OrderCount)
		assert.Equal(t, "25.00", stats.Revenue.String())

		filter := shared.DefaultFilter()
		filter.Search = o.ID.String()[:8]
		found, err := orders.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, found, 1)
	})
}
