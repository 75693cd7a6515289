package repository

import (
	"context"
	"errors"

	"github.com/dsouzac/quotify-api/internal/domain/entity"
	"github.com/dsouzac/quotify-api/internal/domain/enum"
	domainRepo "github.com/dsouzac/quotify-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *gorm.DB) domainRepo.QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(ctx context.Context, quote *entity.Quote) error {
	// gorm persists the quote and its items inside one transaction
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *quoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var quote entity.Quote
	err := r.db.WithContext(ctx).
		Preload("Client").
		First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

func (r *quoteRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var quote entity.Quote
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Company").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("quote_items.created_at ASC")
		}).
		Preload("Items.Service").
		First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

func (r *quoteRepository) List(ctx context.Context, params *domainRepo.QuoteFilterParams) ([]entity.Quote, int64, error) {
	var quotes []entity.Quote
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Quote{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.ClientID != nil {
		query = query.Where("client_id = ?", *params.ClientID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Client").
		Preload("Items").
		Order("created_at DESC").
		Find(&quotes).Error

	return quotes, total, err
}

func (r *quoteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Quote{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *quoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// the quote owns its items; both go in the same transaction
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quote_id = ?", id).Delete(&entity.QuoteItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Quote{}, "id = ?", id).Error
	})
}

func (r *quoteRepository) GetItem(ctx context.Context, quoteID, serviceID uuid.UUID) (*entity.QuoteItem, error) {
	var item entity.QuoteItem
	err := r.db.WithContext(ctx).
		First(&item, "quote_id = ? AND service_id = ?", quoteID, serviceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *quoteRepository) GetItems(ctx context.Context, quoteID uuid.UUID) ([]entity.QuoteItem, error) {
	var items []entity.QuoteItem
	err := r.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *quoteRepository) UpsertItem(ctx context.Context, quote *entity.Quote, item *entity.QuoteItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "quote_id"}, {Name: "service_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"quantity", "sub_total", "updated_at",
			}),
		}).Create(item).Error
		if err != nil {
			return err
		}
		return tx.Model(&entity.Quote{}).
			Where("id = ?", quote.ID).
			Update("total_amount", quote.TotalAmount).Error
	})
}

func (r *quoteRepository) RemoveItem(ctx context.Context, quote *entity.Quote, item *entity.QuoteItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("quote_id = ? AND service_id = ?", item.QuoteID, item.ServiceID).
			Delete(&entity.QuoteItem{}).Error
		if err != nil {
			return err
		}
		return tx.Model(&entity.Quote{}).
			Where("id = ?", quote.ID).
			Update("total_amount", quote.TotalAmount).Error
	})
}
