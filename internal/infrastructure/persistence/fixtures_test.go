package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/catalog"
	"github.com/shopdesk/backend/internal/domain/customer"
	"github.com/shopdesk/backend/internal/domain/order"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopdesk/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func init() {
	valueobject.PasswordCost = bcrypt.MinCost
}

// newTestDB opens a migrated in-memory SQLite database
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := NewDatabase(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   ":memory:",
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate())
	t.Cleanup(func() { _ = database.Close() })

	return database.DB
}

// newMockDB returns a GORM handle over sqlmock with the postgres dialector
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

type fixtures struct {
	db         *gorm.DB
	categories *GormCategoryRepository
	products   *GormProductRepository
	customers  *GormCustomerRepository
	orders     *GormOrderRepository
	payments   *GormPaymentRepository
	reviews    *GormReviewRepository
}

func newFixtures(t *testing.T) *fixtures {
	db := newTestDB(t)
	return &fixtures{
		db:         db,
		categories: NewGormCategoryRepository(db),
		products:   NewGormProductRepository(db),
		customers:  NewGormCustomerRepository(db),
		orders:     NewGormOrderRepository(db),
		payments:   NewGormPaymentRepository(db),
		reviews:    NewGormReviewRepository(db),
	}
}

func (f *fixtures) category(t *testing.T, name string) *catalog.Category {
	t.Helper()
	c, err := catalog.NewCategory(name, name+" category")
	require.NoError(t, err)
	require.NoError(t, f.categories.Save(context.Background(), c))
	return c
}

func (f *fixtures) product(t *testing.T, categoryID uuid.UUID, name, price string, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "", mustMoney(t, price), stock, categoryID)
	require.NoError(t, err)
	require.NoError(t, f.products.Save(context.Background(), p))
	return p
}

func (f *fixtures) customer(t *testing.T, username string) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(username, username+"@example.com", "secret123", customer.Profile{FirstName: "Test"})
	require.NoError(t, err)
	require.NoError(t, f.customers.Save(context.Background(), c))
	return c
}

// cart saves a pending order holding quantity units of each product
func (f *fixtures) cart(t *testing.T, customerID uuid.UUID, quantity int, products ...*catalog.Product) *order.Order {
	t.Helper()
	o, err := order.NewCart(customerID)
	require.NoError(t, err)
	for _, p := range products {
		_, err := o.AddItem(snapshot(p), quantity)
		require.NoError(t, err)
	}
	require.NoError(t, f.orders.Save(context.Background(), o))
	return o
}

func snapshot(p *catalog.Product) order.ProductSnapshot {
	return order.ProductSnapshot{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		IsActive:      p.IsActive,
	}
}

func mustMoney(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}
