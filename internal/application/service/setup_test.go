package service

import (
	"fmt"
	"testing"

	"github.com/dsouzac/quotify-api/internal/domain/entity"
	"github.com/dsouzac/quotify-api/internal/domain/repository"
	infrarepo "github.com/dsouzac/quotify-api/internal/infrastructure/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Client{},
		&entity.Company{},
		&entity.Service{},
		&entity.Quote{},
		&entity.QuoteItem{},
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.AuditLog{},
	))
	return db
}

type testEnv struct {
	db        *gorm.DB
	quoteRepo repository.QuoteRepository
	saleRepo  repository.SaleRepository
	quotes    *QuoteService
	sales     *SaleService
	user      entity.User
	client    entity.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	quoteRepo := infrarepo.NewQuoteRepository(db)
	saleRepo := infrarepo.NewSaleRepository(db)
	serviceRepo := infrarepo.NewServiceRepository(db)
	clientRepo := infrarepo.NewClientRepository(db)
	companyRepo := infrarepo.NewCompanyRepository(db)
	auditService := NewAuditService(infrarepo.NewAuditRepository(db))

	env := &testEnv{
		db:        db,
		quoteRepo: quoteRepo,
		saleRepo:  saleRepo,
		quotes:    NewQuoteService(quoteRepo, serviceRepo, clientRepo, companyRepo, auditService, nil),
		sales:     NewSaleService(saleRepo, quoteRepo, auditService),
	}

	env.user = entity.User{Name: "Test User", Email: "user@example.com"}
	require.NoError(t, db.Create(&env.user).Error)

	env.client = entity.Client{Name: "Acme Ltd"}
	require.NoError(t, db.Create(&env.client).Error)

	return env
}

func (e *testEnv) createService(t *testing.T, name, price string) entity.Service {
	t.Helper()
	svc := entity.Service{Name: name, UnitPrice: decimal.RequireFromString(price)}
	require.NoError(t, e.db.Create(&svc).Error)
	return svc
}
