package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/shopdesk/backend/internal/domain/catalog"
	"github.com/shopdesk/backend/internal/domain/customer"
	"github.com/shopdesk/backend/internal/domain/identity"
	"github.com/shopdesk/backend/internal/domain/order"
	"github.com/shopdesk/backend/internal/domain/payment"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopdesk/backend/internal/infrastructure/config"
	"github.com/shopdesk/backend/internal/infrastructure/logger"
	"github.com/shopdesk/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

type options struct {
	reset         bool
	orders        int
	seed          uint64
	adminUser     string
	adminEmail    string
	adminPassword string
}

type seeder struct {
	staff      *persistence.GormStaffUserRepository
	customers  *persistence.GormCustomerRepository
	categories *persistence.GormCategoryRepository
	products   *persistence.GormProductRepository
	orders     *persistence.GormOrderRepository
	payments   *persistence.GormPaymentRepository
	log        *zap.Logger

	counts map[string]int
}

func main() {
	var opts options
	flag.BoolVar(&opts.reset, "reset", false, "Delete existing data (superusers are kept) before seeding")
	flag.IntVar(&opts.orders, "orders", 20, "Number of orders to create")
	flag.Uint64Var(&opts.seed, "seed", 42, "Random seed; the same seed produces the same data")
	flag.StringVar(&opts.adminUser, "admin-user", "admin", "Superuser username")
	flag.StringVar(&opts.adminEmail, "admin-email", "admin@example.com", "Superuser email")
	flag.StringVar(&opts.adminPassword, "admin-password", envOr("SHOPDESK_SEED_ADMIN_PASSWORD", "admin12345"), "Superuser password")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithLogger(logger.NewGormLogger(log, logger.MapGormLogLevel("warn"))))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.Driver == config.DriverSQLite {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate SQLite schema", zap.Error(err))
		}
	}
	if opts.reset {
		if err := persistence.ResetData(db.DB); err != nil {
			log.Fatal("Failed to reset data", zap.Error(err))
		}
		log.Info("Existing data cleared")
	}

	s := &seeder{
		staff:      persistence.NewGormStaffUserRepository(db.DB),
		customers:  persistence.NewGormCustomerRepository(db.DB),
		categories: persistence.NewGormCategoryRepository(db.DB),
		products:   persistence.NewGormProductRepository(db.DB),
		orders:     persistence.NewGormOrderRepository(db.DB),
		payments:   persistence.NewGormPaymentRepository(db.DB),
		log:        log,
		counts:     make(map[string]int),
	}
	if err := s.run(context.Background(), opts); err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}
	s.printSummary(opts)
}

func (s *seeder) run(ctx context.Context, opts options) error {
	if err := s.superuser(ctx, opts); err != nil {
		return fmt.Errorf("superuser: %w", err)
	}
	customerIDs, err := s.seedCustomers(ctx)
	if err != nil {
		return fmt.Errorf("customers: %w", err)
	}
	categoryIDs, err := s.seedCategories(ctx)
	if err != nil {
		return fmt.Errorf("categories: %w", err)
	}
	products, err := s.seedProducts(ctx, categoryIDs)
	if err != nil {
		return fmt.Errorf("products: %w", err)
	}

	rng := rand.New(rand.NewPCG(opts.seed, opts.seed))
	for _, plan := range planOrders(rng, opts.orders, time.Now()) {
		if err := s.seedOrder(ctx, plan, customerIDs, products); err != nil {
			return fmt.Errorf("orders: %w", err)
		}
	}
	return nil
}

func (s *seeder) superuser(ctx context.Context, opts options) error {
	exists, err := s.staff.ExistsByUsername(ctx, opts.adminUser)
	if err != nil {
		return err
	}
	if exists {
		s.log.Info("Superuser already exists", zap.String("username", opts.adminUser))
		return nil
	}
	user, err := identity.NewSuperuser(opts.adminUser, opts.adminEmail, opts.adminPassword)
	if err != nil {
		return err
	}
	if err := s.staff.Save(ctx, user); err != nil {
		return err
	}
	s.counts["Staff users"]++
	return nil
}

func (s *seeder) seedCustomers(ctx context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(sampleCustomers))
	for _, sc := range sampleCustomers {
		existing, err := s.customers.FindByUsername(ctx, sc.Username)
		if err == nil {
			ids = append(ids, existing.ID)
			continue
		}
		if !shared.IsNotFound(err) {
			return nil, err
		}

		c, err := customer.NewCustomer(sc.Username, sc.Email, samplePassword, customer.Profile{
			FirstName:   sc.FirstName,
			LastName:    sc.LastName,
			PhoneNumber: sc.Phone,
			Address:     sc.Address,
		})
		if err != nil {
			return nil, err
		}
		if err := s.customers.Save(ctx, c); err != nil {
			return nil, err
		}
		ids = append(ids, c.ID)
		s.counts["Customers"]++
	}
	return ids, nil
}

func (s *seeder) seedCategories(ctx context.Context) (map[string]uuid.UUID, error) {
	ids := make(map[string]uuid.UUID, len(sampleCategories))
	for _, sc := range sampleCategories {
		existing, err := s.categories.FindByName(ctx, sc.Name)
		if err == nil {
			ids[sc.Name] = existing.ID
			continue
		}
		if !shared.IsNotFound(err) {
			return nil, err
		}

		c, err := catalog.NewCategory(sc.Name, sc.Description)
		if err != nil {
			return nil, err
		}
		if err := s.categories.Save(ctx, c); err != nil {
			return nil, err
		}
		ids[sc.Name] = c.ID
		s.counts["Categories"]++
	}
	return ids, nil
}

func (s *seeder) seedProducts(ctx context.Context, categoryIDs map[string]uuid.UUID) ([]*catalog.Product, error) {
	products := make([]*catalog.Product, 0, len(sampleProducts))
	for _, sp := range sampleProducts {
		price, err := valueobject.NewMoneyFromString(sp.Price)
		if err != nil {
			return nil, err
		}
		p, err := catalog.NewProduct(sp.Name, sp.Description, price, sp.Stock, categoryIDs[sp.Category])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sp.Name, err)
		}
		if err := s.products.Save(ctx, p); err != nil {
			return nil, err
		}
		products = append(products, p)
		s.counts["Products"]++
	}
	return products, nil
}

// seedOrder writes a planned order straight to its final status. Stock is not
// reserved, as with orders imported from another system.
func (s *seeder) seedOrder(ctx context.Context, plan orderPlan, customerIDs []uuid.UUID, products []*catalog.Product) error {
	o, err := order.NewCart(customerIDs[plan.Customer])
	if err != nil {
		return err
	}
	for _, line := range plan.Lines {
		p := products[line.Product]
		if _, err := o.AddItem(order.ProductSnapshot{
			ID:            p.ID,
			Name:          p.Name,
			Price:         p.Price,
			StockQuantity: p.StockQuantity,
			IsActive:      p.IsActive,
		}, line.Quantity); err != nil {
			return err
		}
	}
	if plan.Status != order.StatusPending {
		if err := o.Checkout(); err != nil {
			return err
		}
		if err := o.ChangeStatus(plan.Status); err != nil {
			return err
		}
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return err
	}
	s.counts["Orders"]++
	s.counts["Order items"] += len(o.Items)

	for _, pp := range plan.Payments {
		p, err := payment.Record(payment.RecordInput{
			OrderID:       o.ID,
			Method:        pp.Method,
			Status:        pp.Status,
			TransactionID: pp.TransactionID,
			Notes:         pp.Notes,
		}, o.TotalAmount)
		if err != nil {
			return err
		}
		if err := s.payments.Save(ctx, p); err != nil {
			if shared.IsConflict(err) {
				// a previous run on the same day already recorded this transaction
				continue
			}
			return err
		}
		s.counts["Payments"]++
	}
	return nil
}

func (s *seeder) printSummary(opts options) {
	fmt.Println()
	fmt.Println("SHOPDESK SEED COMPLETED")

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Entity", "Created")
	for _, name := range []string{"Staff users", "Customers", "Categories", "Products", "Orders", "Order items", "Payments"} {
		_ = table.Append([]string{name, strconv.Itoa(s.counts[name])})
	}
	_ = table.Render()

	fmt.Printf("\nStaff login:    %s / %s\n", opts.adminUser, opts.adminPassword)
	fmt.Printf("Customer login: %s / %s\n", sampleCustomers[0].Username, samplePassword)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
