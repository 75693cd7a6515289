package service

import (
	"context"
	"testing"

	"github.com/dsouzac/quotify-api/internal/domain/entity"
	"github.com/dsouzac/quotify-api/internal/domain/enum"
	"github.com/dsouzac/quotify-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) approvedQuote(t *testing.T) *entity.Quote {
	t.Helper()
	ctx := context.Background()

	a := e.createService(t, "Service A", "100.00")
	b := e.createService(t, "Service B", "50.00")

	quote, err := e.quotes.Create(ctx, e.user.ID, &CreateQuoteRequest{
		ClientID: e.client.ID,
		Items: []QuoteItemInput{
			{ServiceID: a.ID, Quantity: 2},
			{ServiceID: b.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	approved, err := e.quotes.SetStatus(ctx, e.user.ID, quote.ID, enum.QuoteStatusApproved)
	require.NoError(t, err)
	return approved
}

func TestConvertQuoteCreatesSale(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quote := env.approvedQuote(t)

	sale, err := env.sales.ConvertQuote(ctx, env.user.ID, quote.ID)
	require.NoError(t, err)

	assert.Equal(t, quote.ID, sale.QuoteID)
	assert.Equal(t, quote.ClientID, sale.ClientID)
	assert.Len(t, sale.Code, 12)
	assert.True(t, sale.TotalAmount.Equal(decimal.RequireFromString("350.00")))

	require.Len(t, sale.Items, 2)
	sum := decimal.Zero
	for _, item := range sale.Items {
		assert.True(t, item.SubTotal.Equal(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))))
		sum = sum.Add(item.SubTotal)
	}
	assert.True(t, sale.TotalAmount.Equal(sum))
}

func TestConvertRequiresApprovedStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.createService(t, "Cleaning", "100.00")

	quote, err := env.quotes.Create(ctx, env.user.ID, &CreateQuoteRequest{
		ClientID: env.client.ID,
		Items:    []QuoteItemInput{{ServiceID: svc.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	for _, status := range []enum.QuoteStatus{
		enum.QuoteStatusPending,
		enum.QuoteStatusRejected,
		enum.QuoteStatusCompleted,
	} {
		_, err := env.quotes.SetStatus(ctx, env.user.ID, quote.ID, status)
		require.NoError(t, err)

		_, err = env.sales.ConvertQuote(ctx, env.user.ID, quote.ID)
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, 400))
	}

	var count int64
	require.NoError(t, env.db.Model(&entity.Sale{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestConvertTwiceReturnsExistingSale(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quote := env.approvedQuote(t)

	first, err := env.sales.ConvertQuote(ctx, env.user.ID, quote.ID)
	require.NoError(t, err)

	second, err := env.sales.ConvertQuote(ctx, env.user.ID, quote.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, 409))

	// the conflict hands back the original sale unchanged
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Code, second.Code)
	assert.True(t, first.TotalAmount.Equal(second.TotalAmount))

	var count int64
	require.NoError(t, env.db.Model(&entity.Sale{}).Where("quote_id = ?", quote.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSaleSnapshotIndependentOfQuote(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quote := env.approvedQuote(t)

	sale, err := env.sales.ConvertQuote(ctx, env.user.ID, quote.ID)
	require.NoError(t, err)

	// tamper with the source quote's items behind the lifecycle guard
	items, err := env.quoteRepo.GetItems(ctx, quote.ID)
	require.NoError(t, err)
	require.NotEmpty(t, items)

	item := items[0]
	item.Quantity = 99
	item.Recalculate()
	quote.TotalAmount = decimal.RequireFromString("9999.00")
	require.NoError(t, env.quoteRepo.UpsertItem(ctx, quote, &item))

	reloaded, err := env.sales.Get(ctx, sale.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.TotalAmount.Equal(decimal.RequireFromString("350.00")))
	for _, saleItem := range reloaded.Items {
		assert.NotEqual(t, 99, saleItem.Quantity)
	}
}

func TestUniqueIndexBlocksSecondInsert(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quote := env.approvedQuote(t)

	first, err := env.sales.ConvertQuote(ctx, env.user.ID, quote.ID)
	require.NoError(t, err)

	// bypass the optimistic pre-check and hit the storage constraint directly
	dup := &entity.Sale{
		QuoteID:     quote.ID,
		ClientID:    quote.ClientID,
		UserID:      quote.UserID,
		Code:        "deadbeef0000",
		TotalAmount: first.TotalAmount,
		SaleDate:    first.SaleDate,
	}
	err = env.saleRepo.Create(ctx, dup)
	require.Error(t, err)
}
