package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	catalogapp "github.com/restopos/backend/internal/application/catalog"
	cashierapp "github.com/restopos/backend/internal/application/cashier"
	floorapp "github.com/restopos/backend/internal/application/floor"
	identityapp "github.com/restopos/backend/internal/application/identity"
	payrollapp "github.com/restopos/backend/internal/application/payroll"
	salesapp "github.com/restopos/backend/internal/application/sales"
	settingsapp "github.com/restopos/backend/internal/application/settings"
	"github.com/restopos/backend/internal/domain/settings"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/restopos/backend/internal/infrastructure/auth"
	"github.com/restopos/backend/internal/infrastructure/config"
	"github.com/restopos/backend/internal/infrastructure/logger"
	"github.com/restopos/backend/internal/infrastructure/persistence"
	"github.com/restopos/backend/internal/infrastructure/storage"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errAlreadyExists = shared.NewDomainError(shared.CodeAlreadyExists, "")

type rootOptions struct {
	LogLevel string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Load initial and demo data into the RestoPOS database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.AddCommand(newAdminCommand(opts), newDemoCommand(opts))
	return cmd
}

type adminOptions struct {
	Username string
	Password string
	FullName string
}

func newAdminCommand(root *rootOptions) *cobra.Command {
	opts := &adminOptions{}
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Create the first administrator",
		Long: `Create an administrator account. Nothing changes when the username is taken.

Example:
  seed admin --username admin --password 's3cret!'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSeeder(root)
			if err != nil {
				return err
			}
			defer s.close()
			return s.admin(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.Username, "username", "admin", "administrator username")
	cmd.Flags().StringVar(&opts.Password, "password", "", "administrator password (required)")
	cmd.Flags().StringVar(&opts.FullName, "full-name", "Administrador", "administrator display name")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

type demoOptions struct {
	Operator  string
	Employees int
	Sales     int
	Seed      uint64
}

func newDemoCommand(root *rootOptions) *cobra.Command {
	opts := &demoOptions{}
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Load a demo floor, menu, staff and optionally paid sales",
		Long: `Load demo zones with tables, a menu with stock for bottled drinks and fake
employees. With --sales a cash drawer is opened for the operator when none is
open and that many paid takeaway or delivery sales are recorded.

Example:
  seed demo --employees 6 --sales 40 --operator admin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSeeder(root)
			if err != nil {
				return err
			}
			defer s.close()
			return s.demo(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.Operator, "operator", "admin", "username recorded on stock movements, the drawer and sales")
	cmd.Flags().IntVar(&opts.Employees, "employees", 5, "number of fake employees")
	cmd.Flags().IntVar(&opts.Sales, "sales", 0, "number of fake paid sales")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed; 0 picks one")
	return cmd
}

type seeder struct {
	log      *zap.Logger
	db       *persistence.Database
	users    *identityapp.UserService
	category *catalogapp.CategoryService
	products *catalogapp.ProductService
	floor    *floorapp.FloorService
	payroll  *payrollapp.PayrollService
	periods  *cashierapp.PeriodService
	sales    *salesapp.SaleService
}

func openSeeder(root *rootOptions) (*seeder, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	log := logger.New(logger.Config{Level: root.LogLevel, Format: "console", Output: "stdout"})

	db, err := persistence.NewDatabase(&cfg.Database, logger.NewGormLogger(log, logger.GormLevel("warn"), 0))
	if err != nil {
		return nil, err
	}

	settingsService := settingsapp.NewService(persistence.NewGormSettingRepository(db.DB), settings.Defaults{
		TaxRate:           decimal.NewFromFloat(cfg.Business.DefaultTaxRate),
		BusinessName:      cfg.Business.Name,
		Currency:          cfg.Business.Currency,
		EstablishmentCode: cfg.Business.EstablishmentCode,
		EmissionPoint:     cfg.Business.EmissionPoint,
	}, log)
	userRepo := persistence.NewGormUserRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	tableRepo := persistence.NewGormTableRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	return &seeder{
		log:      log,
		db:       db,
		users:    identityapp.NewUserService(userRepo, auth.NewMemoryRevocationStore(), cfg.JWT.AccessTokenExpiration, log),
		category: catalogapp.NewCategoryService(categoryRepo),
		products: catalogapp.NewProductService(productRepo, categoryRepo, settingsService, storage.DisabledImageStorage{}, log),
		floor:    floorapp.NewFloorService(persistence.NewGormZoneRepository(db.DB), tableRepo),
		payroll: payrollapp.NewPayrollService(
			persistence.NewGormEmployeeRepository(db.DB),
			persistence.NewGormPayrollEntryRepository(db.DB),
			log,
		),
		periods: cashierapp.NewPeriodService(
			persistence.NewGormPeriodRepository(db.DB),
			persistence.NewGormWithdrawalRepository(db.DB),
			txScope.Cashier(),
			log,
		),
		sales: salesapp.NewSaleService(
			persistence.NewGormSaleRepository(db.DB),
			persistence.NewGormInvoiceRepository(db.DB),
			tableRepo,
			settingsService,
			txScope.Sales(),
			log,
		),
	}, nil
}

func (s *seeder) close() {
	if err := s.db.Close(); err != nil {
		s.log.Error("Error closing database", zap.Error(err))
	}
	_ = s.log.Sync()
}

func (s *seeder) admin(ctx context.Context, opts *adminOptions) error {
	user, err := s.users.Create(ctx, identityapp.CreateUserRequest{
		Username: opts.Username,
		Password: opts.Password,
		FullName: opts.FullName,
		Role:     "admin",
	})
	if errors.Is(err, errAlreadyExists) {
		s.log.Info("Administrator already exists", zap.String("username", opts.Username))
		return nil
	}
	if err != nil {
		return fmt.Errorf("create administrator: %w", err)
	}
	s.log.Info("Administrator created", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *seeder) demo(ctx context.Context, opts *demoOptions) error {
	operator, err := persistence.NewGormUserRepository(s.db.DB).FindByUsername(ctx, opts.Operator)
	if err != nil {
		return fmt.Errorf("operator %q: %w", opts.Operator, err)
	}
	f := gofakeit.New(opts.Seed)

	if err := s.seedFloor(ctx); err != nil {
		return err
	}
	productIDs, err := s.seedMenu(ctx, operator.ID)
	if err != nil {
		return err
	}
	for i := 0; i < opts.Employees; i++ {
		if _, err := s.payroll.CreateEmployee(ctx, fakeEmployee(f)); err != nil {
			s.log.Warn("Skipping employee", zap.Error(err))
		}
	}
	if opts.Sales > 0 {
		if err := s.seedSales(ctx, f, operator.ID, productIDs, opts.Sales); err != nil {
			return err
		}
	}
	s.log.Info("Demo data loaded",
		zap.Int("products", len(productIDs)),
		zap.Int("employees", opts.Employees),
		zap.Int("sales", opts.Sales),
	)
	return nil
}

func (s *seeder) seedFloor(ctx context.Context) error {
	existing, err := s.floor.ListZones(ctx)
	if err != nil {
		return err
	}
	present := make(map[string]bool, len(existing))
	for _, z := range existing {
		present[z.Name] = true
	}

	for i, z := range demoZones {
		if present[z.Name] {
			s.log.Info("Zone already exists", zap.String("zone", z.Name))
			continue
		}
		zone, err := s.floor.CreateZone(ctx, floorapp.CreateZoneRequest{Name: z.Name, SortOrder: i + 1})
		if err != nil {
			return fmt.Errorf("create zone %s: %w", z.Name, err)
		}
		for n := 1; n <= z.Tables; n++ {
			name := fmt.Sprintf("%c%d", []rune(z.Name)[0], n)
			if _, err := s.floor.CreateTable(ctx, floorapp.CreateTableRequest{ZoneID: zone.ID, Name: name, Capacity: 4}); err != nil {
				return fmt.Errorf("create table %s: %w", name, err)
			}
		}
	}
	return nil
}

// seedMenu creates the demo menu and returns the IDs of the products it created
func (s *seeder) seedMenu(ctx context.Context, operatorID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for i, c := range demoMenu {
		category, err := s.category.Create(ctx, catalogapp.CreateCategoryRequest{Name: c.Name, SortOrder: i + 1})
		if errors.Is(err, errAlreadyExists) {
			s.log.Info("Category already exists", zap.String("category", c.Name))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create category %s: %w", c.Name, err)
		}
		for _, p := range c.Products {
			product, err := s.products.Create(ctx, p.request(category.ID))
			if err != nil {
				return nil, fmt.Errorf("create product %s: %w", p.Code, err)
			}
			ids = append(ids, product.ID)
			if !p.TrackStock {
				continue
			}
			if _, err := s.products.AdjustStock(ctx, product.ID, operatorID, catalogapp.AdjustStockRequest{
				Delta:  initialStock,
				Reason: "Initial stock",
			}); err != nil {
				return nil, fmt.Errorf("stock product %s: %w", p.Code, err)
			}
		}
	}
	return ids, nil
}

func (s *seeder) seedSales(ctx context.Context, f *gofakeit.Faker, operatorID uuid.UUID, productIDs []uuid.UUID, n int) error {
	if len(productIDs) == 0 {
		return fmt.Errorf("no new demo products to sell; run against an empty menu")
	}
	if _, err := s.periods.Current(ctx); errors.Is(err, shared.ErrNoOpenPeriod) {
		if _, err := s.periods.Open(ctx, operatorID, cashierapp.OpenPeriodRequest{
			OpeningAmount: decimal.NewFromInt(50),
			Notes:         "Demo drawer",
		}); err != nil {
			return fmt.Errorf("open period: %w", err)
		}
	} else if err != nil {
		return err
	}

	recorded := 0
	for i := 0; i < n; i++ {
		sale, err := s.sales.Create(ctx, operatorID, fakeSale(f, productIDs))
		if err != nil {
			s.log.Warn("Skipping sale", zap.Error(err))
			continue
		}
		recorded++
		s.log.Debug("Sale recorded", zap.String("number", sale.Number))
	}
	s.log.Info("Demo sales recorded", zap.Int("recorded", recorded), zap.Int("requested", n))
	return nil
}
