package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sukrithpvs/Insight/internal/engine"
	"github.com/sukrithpvs/Insight/internal/memstore"
	"github.com/sukrithpvs/Insight/types"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestEngine(t *testing.T, opening string) (*engine.Engine, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	return engine.New(store, dec(opening), zerolog.Nop()), store
}

func buy(ticker, quantity, price string) engine.OrderRequest {
	return engine.OrderRequest{Ticker: ticker, Type: types.OrderTypeBuy, Quantity: dec(quantity), Price: dec(price)}
}

func sell(ticker, quantity, price string) engine.OrderRequest {
	return engine.OrderRequest{Ticker: ticker, Type: types.OrderTypeSell, Quantity: dec(quantity), Price: dec(price)}
}

func TestExecuteOrderBuy(t *testing.T) {
	eng, _ := newTestEngine(t, "100000")
	ctx := context.Background()

	order, err := eng.ExecuteOrder(ctx, buy("aapl", "10", "182.50"))
	require.NoError(t, err)

	assert.Equal(t, "AAPL", order.Ticker)
	assert.Equal(t, types.OrderTypeBuy, order.Type)
	assert.Equal(t, types.OrderStatusCompleted, order.Status)
	assert.True(t, order.TotalAmount.Equal(dec("1825")), "totalAmount = %s", order.TotalAmount)
	require.NotNil(t, order.ExecutedAt)

	account, err := eng.Account(ctx)
	require.NoError(t, err)
	assert.True(t, account.CashBalance.Equal(dec("98175")), "cash = %s", account.CashBalance)

	holdings, err := eng.Holdings(ctx)
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.True(t, holdings[0].Quantity.Equal(dec("10")))
	assert.True(t, holdings[0].AvgCost.Equal(dec("182.50")))
}

func TestExecuteOrderBuyAveragesCost(t *testing.T) {
	eng, _ := newTestEngine(t, "100000")
	ctx := context.Background()

	_, err := eng.ExecuteOrder(ctx, buy("AAPL", "10", "150"))
	require.NoError(t, err)
	_, err = eng.ExecuteOrder(ctx, buy("AAPL", "10", "200"))
	require.NoError(t, err)

	holdings, err := eng.Holdings(ctx)
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.True(t, holdings[0].Quantity.Equal(dec("20")), "quantity = %s", holdings[0].Quantity)
	assert.True(t, holdings[0].AvgCost.Equal(dec("175")), "avgCost = %s", holdings[0].AvgCost)
}

func TestExecuteOrderBuyInsufficientFunds(t *testing.T) {
	eng, _ := newTestEngine(t, "100.00")
	ctx := context.Background()

	_, err := eng.ExecuteOrder(ctx, buy("AAPL", "10", "182.50"))
	require.ErrorIs(t, err, engine.ErrInsufficientFunds)

	// Nothing was mutated.
	account, err := eng.Account(ctx)
	require.NoError(t, err)
	assert.True(t, account.CashBalance.Equal(dec("100.00")))

	holdings, err := eng.Holdings(ctx)
	require.NoError(t, err)
	assert.Empty(t, holdings)

	orders, err := eng.ListOrders(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestExecuteOrderSellPreservesCostBasis(t *testing.T) {
	eng, _ := newTestEngine(t, "100000")
	ctx := context.Background()

	_, err := eng.ExecuteOrder(ctx, buy("AAPL", "10", "150"))
	require.NoError(t, err)

	_, err = eng.ExecuteOrder(ctx, sell("AAPL", "4", "185"))
	require.NoError(t, err)

	holdings, err := eng.Holdings(ctx)
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.True(t, holdings[0].Quantity.Equal(dec("6")), "quantity = %s", holdings[0].Quantity)
	assert.True(t, holdings[0].AvgCost.Equal(dec("150")), "avgCost = %s", holdings[0].AvgCost)

	// 100000 - 1500 + 4*185 = 99240
	account, err := eng.Account(ctx)
	require.NoError(t, err)
	assert.True(t, account.CashBalance.Equal(dec("99240")), "cash = %s", account.CashBalance)
}

func TestExecuteOrderFullLiquidationRemovesHolding(t *testing.T) {
	eng, _ := newTestEngine(t, "100000")
	ctx := context.Background()

	_, err := eng.ExecuteOrder(ctx, buy("TSLA", "5", "248.75"))
	require.NoError(t, err)

	_, err = eng.ExecuteOrder(ctx, sell("TSLA", "5", "260"))
	require.NoError(t, err)

	holdings, err := eng.Holdings(ctx)
	require.NoError(t, err)
	assert.Empty(t, holdings)
}

func TestExecuteOrderSellInsufficientPosition(t *testing.T) {
	eng, _ := newTestEngine(t, "100000")
	ctx := context.Background()

	_, err := eng.ExecuteOrder(ctx, buy("AAPL", "3", "150"))
	require.NoError(t, err)

	_, err = eng.ExecuteOrder(ctx, sell("AAPL", "10", "185"))
	require.ErrorIs(t, err, engine.ErrInsufficientPosition)

	// Holding is untouched.
	holdings, err := eng.Holdings(ctx)
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.True(t, holdings[0].Quantity.Equal(dec("3")), "quantity = %s", holdings[0].Quantity)
}

func TestExecuteOrderSellUnknownTicker(t *testing.T) {
	eng, _ := newTestEngine(t, "100000")

	_, err := eng.ExecuteOrder(context.Background(), sell("MSFT", "1", "378.90"))
	require.ErrorIs(t, err, engine.ErrInsufficientPosition)
}

func TestExecuteOrderValidation(t *testing.T) {
	eng, _ := newTestEngine(t, "100000")
	ctx := context.Background()

	tests := []struct {
		name string
		req  engine.OrderRequest
	}{
		{"empty ticker", buy("   ", "1", "10")},
		{"zero quantity", buy("AAPL", "0", "10")},
		{"negative quantity", buy("AAPL", "-1", "10")},
		{"negative price", buy("AAPL", "1", "-0.01")},
		{"bad order type", engine.OrderRequest{Ticker: "AAPL", Type: "HOLD", Quantity: dec("1"), Price: dec("10")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eng.ExecuteOrder(ctx, tt.req)
			require.ErrorIs(t, err, engine.ErrInvalidArgument)
		})
	}
}

func TestHoldingExistsIffNetQuantityPositive(t *testing.T) {
	eng, _ := newTestEngine(t, "1000000")
	ctx := context.Background()

	steps := []struct {
		req        engine.OrderRequest
		wantHeld   bool
		wantShares string
	}{
		{buy("INFY", "10", "18"), true, "10"},
		{sell("INFY", "3", "19"), true, "7"},
		{sell("INFY", "7", "20"), false, ""},
		{buy("INFY", "2", "21"), true, "2"},
		{sell("INFY", "2", "21"), false, ""},
	}

	for i, step := range steps {
		_, err := eng.ExecuteOrder(ctx, step.req)
		require.NoError(t, err, "step %d", i)

		holdings, err := eng.Holdings(ctx)
		require.NoError(t, err)
		if step.wantHeld {
			require.Len(t, holdings, 1, "step %d", i)
			assert.True(t, holdings[0].Quantity.Equal(dec(step.wantShares)), "step %d: quantity = %s", i, holdings[0].Quantity)
		} else {
			assert.Empty(t, holdings, "step %d", i)
		}
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	eng, _ := newTestEngine(t, "100000")
	ctx := context.Background()

	_, err := eng.ExecuteOrder(ctx, buy("AAPL", "1", "180"))
	require.NoError(t, err)
	_, err = eng.ExecuteOrder(ctx, buy("MSFT", "1", "378"))
	require.NoError(t, err)
	_, err = eng.ExecuteOrder(ctx, buy("AAPL", "1", "181"))
	require.NoError(t, err)

	orders, err := eng.ListOrders(ctx, "")
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Greater(t, orders[0].ID, orders[1].ID)
	assert.Greater(t, orders[1].ID, orders[2].ID)

	aapl, err := eng.ListOrders(ctx, "aapl")
	require.NoError(t, err)
	require.Len(t, aapl, 2)
	assert.True(t, aapl[0].Price.Equal(dec("181")))
	assert.True(t, aapl[1].Price.Equal(dec("180")))
}

func TestCancelOrder(t *testing.T) {
	eng, store := newTestEngine(t, "100000")
	ctx := context.Background()

	pending := store.SeedOrder(types.Order{
		Ticker:    "AAPL",
		Type:      types.OrderTypeBuy,
		Status:    types.OrderStatusPending,
		Quantity:  dec("1"),
		Price:     dec("180"),
		CreatedAt: time.Now(),
	})

	require.NoError(t, eng.CancelOrder(ctx, pending.ID))

	orders, err := eng.ListOrders(ctx, "AAPL")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, types.OrderStatusCancelled, orders[0].Status)

	// A second cancel is rejected: the order is no longer pending.
	require.ErrorIs(t, eng.CancelOrder(ctx, pending.ID), engine.ErrOrderNotPending)
}

func TestCancelOrderCompleted(t *testing.T) {
	eng, _ := newTestEngine(t, "100000")
	ctx := context.Background()

	order, err := eng.ExecuteOrder(ctx, buy("AAPL", "1", "180"))
	require.NoError(t, err)

	require.ErrorIs(t, eng.CancelOrder(ctx, order.ID), engine.ErrOrderNotPending)
}

func TestCancelOrderNotFound(t *testing.T) {
	eng, _ := newTestEngine(t, "100000")

	require.ErrorIs(t, eng.CancelOrder(context.Background(), 9999), engine.ErrOrderNotFound)
}

func TestAccountInitializedOnce(t *testing.T) {
	eng, _ := newTestEngine(t, "100000")
	ctx := context.Background()

	first, err := eng.Account(ctx)
	require.NoError(t, err)
	assert.True(t, first.CashBalance.Equal(dec("100000")))

	_, err = eng.ExecuteOrder(ctx, buy("AAPL", "1", "100"))
	require.NoError(t, err)

	// A later read must not re-apply the opening balance.
	again, err := eng.Account(ctx)
	require.NoError(t, err)
	assert.True(t, again.CashBalance.Equal(dec("99900")), "cash = %s", again.CashBalance)
}
