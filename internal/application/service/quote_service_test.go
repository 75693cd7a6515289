package service

import (
	"context"
	"testing"

	"github.com/dsouzac/quotify-api/internal/domain/entity"
	"github.com/dsouzac/quotify-api/internal/domain/enum"
	"github.com/dsouzac/quotify-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuoteGroupsDuplicateServices(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	s1 := env.createService(t, "Cleaning", "100.00")
	s2 := env.createService(t, "Painting", "50.00")

	quote, err := env.quotes.Create(ctx, env.user.ID, &CreateQuoteRequest{
		ClientID: env.client.ID,
		Items: []QuoteItemInput{
			{ServiceID: s1.ID, Quantity: 2},
			{ServiceID: s1.ID, Quantity: 3},
			{ServiceID: s2.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.Len(t, quote.Items, 2)
	assert.Equal(t, enum.QuoteStatusPending, quote.Status)

	byService := map[uuid.UUID]entity.QuoteItem{}
	for _, item := range quote.Items {
		byService[item.ServiceID] = item
	}
	assert.Equal(t, 5, byService[s1.ID].Quantity)
	assert.Equal(t, 1, byService[s2.ID].Quantity)
	assert.True(t, byService[s1.ID].SubTotal.Equal(decimal.RequireFromString("500.00")))
	assert.True(t, quote.TotalAmount.Equal(decimal.RequireFromString("550.00")))
}

func TestCreateQuoteExactTotals(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.createService(t, "Service A", "100.00")
	b := env.createService(t, "Service B", "50.00")

	quote, err := env.quotes.Create(ctx, env.user.ID, &CreateQuoteRequest{
		ClientID: env.client.ID,
		Items: []QuoteItemInput{
			{ServiceID: a.ID, Quantity: 2},
			{ServiceID: b.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	assert.True(t, quote.TotalAmount.Equal(decimal.RequireFromString("350.00")),
		"expected 350.00, got %s", quote.TotalAmount)
}

func TestCreateQuoteRejectsEmptyItems(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.quotes.Create(context.Background(), env.user.ID, &CreateQuoteRequest{
		ClientID: env.client.ID,
		Items:    []QuoteItemInput{},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, 422))
}

func TestCreateQuoteRejectsNonPositiveQuantity(t *testing.T) {
	env := newTestEnv(t)
	svc := env.createService(t, "Cleaning", "100.00")

	for _, quantity := range []int{0, -1} {
		_, err := env.quotes.Create(context.Background(), env.user.ID, &CreateQuoteRequest{
			ClientID: env.client.ID,
			Items:    []QuoteItemInput{{ServiceID: svc.ID, Quantity: quantity}},
		})
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, 422))
	}
}

func TestCreateQuoteUnknownService(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.quotes.Create(context.Background(), env.user.ID, &CreateQuoteRequest{
		ClientID: env.client.ID,
		Items:    []QuoteItemInput{{ServiceID: uuid.New(), Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, 404))
}

func TestCreateQuoteUnknownClient(t *testing.T) {
	env := newTestEnv(t)
	svc := env.createService(t, "Cleaning", "100.00")

	_, err := env.quotes.Create(context.Background(), env.user.ID, &CreateQuoteRequest{
		ClientID: uuid.New(),
		Items:    []QuoteItemInput{{ServiceID: svc.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, 404))
}

func TestAddItemMergesExistingLine(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.createService(t, "Cleaning", "100.00")

	quote, err := env.quotes.StartBuilding(ctx, env.user.ID, &StartQuoteRequest{ClientID: env.client.ID})
	require.NoError(t, err)

	_, err = env.quotes.AddItem(ctx, env.user.ID, quote.ID, svc.ID, 2)
	require.NoError(t, err)

	updated, err := env.quotes.AddItem(ctx, env.user.ID, quote.ID, svc.ID, 2)
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.Equal(t, 4, updated.Items[0].Quantity)
	assert.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("400.00")))
}

func TestAddItemKeepsPriceSnapshot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.createService(t, "Cleaning", "100.00")

	quote, err := env.quotes.StartBuilding(ctx, env.user.ID, &StartQuoteRequest{ClientID: env.client.ID})
	require.NoError(t, err)

	_, err = env.quotes.AddItem(ctx, env.user.ID, quote.ID, svc.ID, 1)
	require.NoError(t, err)

	// a later catalog price change must not leak into the existing line
	require.NoError(t, env.db.Model(&entity.Service{}).
		Where("id = ?", svc.ID).
		Update("unit_price", decimal.RequireFromString("999.99")).Error)

	updated, err := env.quotes.AddItem(ctx, env.user.ID, quote.ID, svc.ID, 1)
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.True(t, updated.Items[0].UnitPrice.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("200.00")))
}

func TestItemMutationRequiresBuilding(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.createService(t, "Cleaning", "100.00")

	quote, err := env.quotes.Create(ctx, env.user.ID, &CreateQuoteRequest{
		ClientID: env.client.ID,
		Items:    []QuoteItemInput{{ServiceID: svc.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = env.quotes.AddItem(ctx, env.user.ID, quote.ID, svc.ID, 1)
	assert.True(t, apperror.IsCode(err, 400))

	_, err = env.quotes.RemoveItem(ctx, env.user.ID, quote.ID, svc.ID)
	assert.True(t, apperror.IsCode(err, 400))

	_, err = env.quotes.SetItemQuantity(ctx, env.user.ID, quote.ID, svc.ID, 2)
	assert.True(t, apperror.IsCode(err, 400))
}

func TestTotalTracksItemChanges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	s1 := env.createService(t, "Cleaning", "100.00")
	s2 := env.createService(t, "Painting", "50.00")

	quote, err := env.quotes.StartBuilding(ctx, env.user.ID, &StartQuoteRequest{ClientID: env.client.ID})
	require.NoError(t, err)
	assert.True(t, quote.TotalAmount.IsZero())

	assertConsistent := func(q *entity.Quote) {
		t.Helper()
		sum := decimal.Zero
		for _, item := range q.Items {
			assert.True(t, item.SubTotal.Equal(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))))
			sum = sum.Add(item.SubTotal)
		}
		assert.True(t, q.TotalAmount.Equal(sum), "total %s does not match item sum %s", q.TotalAmount, sum)
	}

	q, err := env.quotes.AddItem(ctx, env.user.ID, quote.ID, s1.ID, 2)
	require.NoError(t, err)
	assertConsistent(q)

	q, err = env.quotes.AddItem(ctx, env.user.ID, quote.ID, s2.ID, 3)
	require.NoError(t, err)
	assertConsistent(q)

	q, err = env.quotes.SetItemQuantity(ctx, env.user.ID, quote.ID, s1.ID, 7)
	require.NoError(t, err)
	assertConsistent(q)

	q, err = env.quotes.RemoveItem(ctx, env.user.ID, quote.ID, s2.ID)
	require.NoError(t, err)
	assertConsistent(q)
	assert.True(t, q.TotalAmount.Equal(decimal.RequireFromString("700.00")))
}

func TestSetItemQuantityRejectsNonPositive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.createService(t, "Cleaning", "100.00")

	quote, err := env.quotes.StartBuilding(ctx, env.user.ID, &StartQuoteRequest{ClientID: env.client.ID})
	require.NoError(t, err)
	_, err = env.quotes.AddItem(ctx, env.user.ID, quote.ID, svc.ID, 2)
	require.NoError(t, err)

	for _, quantity := range []int{0, -1} {
		_, err := env.quotes.SetItemQuantity(ctx, env.user.ID, quote.ID, svc.ID, quantity)
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, 422))
	}

	// item and total must be untouched
	current, err := env.quotes.Get(ctx, quote.ID)
	require.NoError(t, err)
	require.Len(t, current.Items, 1)
	assert.Equal(t, 2, current.Items[0].Quantity)
	assert.True(t, current.TotalAmount.Equal(decimal.RequireFromString("200.00")))
}

func TestRemoveMissingItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	quote, err := env.quotes.StartBuilding(ctx, env.user.ID, &StartQuoteRequest{ClientID: env.client.ID})
	require.NoError(t, err)

	_, err = env.quotes.RemoveItem(ctx, env.user.ID, quote.ID, uuid.New())
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, 404))
}

func TestFinalizeEmptyQuoteFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	quote, err := env.quotes.StartBuilding(ctx, env.user.ID, &StartQuoteRequest{ClientID: env.client.ID})
	require.NoError(t, err)

	_, err = env.quotes.Finalize(ctx, env.user.ID, quote.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, 422))

	current, err := env.quotes.Get(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.QuoteStatusBuilding, current.Status)
}

func TestFinalizeMovesToPending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.createService(t, "Cleaning", "100.00")

	quote, err := env.quotes.StartBuilding(ctx, env.user.ID, &StartQuoteRequest{ClientID: env.client.ID})
	require.NoError(t, err)
	_, err = env.quotes.AddItem(ctx, env.user.ID, quote.ID, svc.ID, 1)
	require.NoError(t, err)

	finalized, err := env.quotes.Finalize(ctx, env.user.ID, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.QuoteStatusPending, finalized.Status)

	// finalize is a one-way door; a second call is an invalid state
	_, err = env.quotes.Finalize(ctx, env.user.ID, quote.ID)
	assert.True(t, apperror.IsCode(err, 400))
}

func TestSetStatusTransitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.createService(t, "Cleaning", "100.00")

	quote, err := env.quotes.Create(ctx, env.user.ID, &CreateQuoteRequest{
		ClientID: env.client.ID,
		Items:    []QuoteItemInput{{ServiceID: svc.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// the four post-building states reassign freely
	for _, target := range []enum.QuoteStatus{
		enum.QuoteStatusApproved,
		enum.QuoteStatusCompleted,
		enum.QuoteStatusPending,
		enum.QuoteStatusRejected,
	} {
		updated, err := env.quotes.SetStatus(ctx, env.user.ID, quote.ID, target)
		require.NoError(t, err)
		assert.Equal(t, target, updated.Status)
	}

	// Building is never an assignable target
	_, err = env.quotes.SetStatus(ctx, env.user.ID, quote.ID, enum.QuoteStatusBuilding)
	assert.True(t, apperror.IsCode(err, 422))

	_, err = env.quotes.SetStatus(ctx, env.user.ID, quote.ID, enum.QuoteStatus(42))
	assert.True(t, apperror.IsCode(err, 422))
}

func TestSetStatusBlockedWhileBuilding(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	quote, err := env.quotes.StartBuilding(ctx, env.user.ID, &StartQuoteRequest{ClientID: env.client.ID})
	require.NoError(t, err)

	// every assignable target is rejected while Building; in particular an
	// empty quote must not reach Pending except through Finalize
	for _, target := range []enum.QuoteStatus{
		enum.QuoteStatusPending,
		enum.QuoteStatusApproved,
		enum.QuoteStatusRejected,
		enum.QuoteStatusCompleted,
	} {
		_, err = env.quotes.SetStatus(ctx, env.user.ID, quote.ID, target)
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, 400))
	}

	current, err := env.quotes.Get(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.QuoteStatusBuilding, current.Status)
}

func TestDeleteQuoteRemovesItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.createService(t, "Cleaning", "100.00")

	quote, err := env.quotes.Create(ctx, env.user.ID, &CreateQuoteRequest{
		ClientID: env.client.ID,
		Items:    []QuoteItemInput{{ServiceID: svc.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	require.NoError(t, env.quotes.Delete(ctx, env.user.ID, quote.ID))

	_, err = env.quotes.Get(ctx, quote.ID)
	assert.True(t, apperror.IsCode(err, 404))

	var count int64
	require.NoError(t, env.db.Model(&entity.QuoteItem{}).Where("quote_id = ?", quote.ID).Count(&count).Error)
	assert.Zero(t, count)
}
