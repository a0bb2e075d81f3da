package engine_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sukrithpvs/Insight/internal/engine"
)

type stubOracle struct {
	prices map[string]string
}

func (o *stubOracle) Price(_ context.Context, ticker string) (decimal.Decimal, error) {
	price, ok := o.prices[ticker]
	if !ok {
		return decimal.Zero, fmt.Errorf("no quote for %s", ticker)
	}
	return dec(price), nil
}

func TestSummaryNoHoldings(t *testing.T) {
	eng, _ := newTestEngine(t, "100000.00")
	calc := engine.NewSummaryCalculator(eng, &stubOracle{}, zerolog.Nop())

	summary, err := calc.Summary(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.CashBalance.Equal(dec("100000.00")))
	assert.True(t, summary.TotalInvested.IsZero())
	assert.True(t, summary.CurrentValue.IsZero())
	assert.True(t, summary.ProfitLoss.IsZero())
	assert.True(t, summary.ReturnPercent.IsZero())
}

func TestSummaryArithmetic(t *testing.T) {
	eng, _ := newTestEngine(t, "100000")
	ctx := context.Background()

	// A: 10 @ 150, B: 5 @ 500.
	_, err := eng.ExecuteOrder(ctx, buy("AAPL", "10", "150"))
	require.NoError(t, err)
	_, err = eng.ExecuteOrder(ctx, buy("NVDA", "5", "500"))
	require.NoError(t, err)

	oracle := &stubOracle{prices: map[string]string{"AAPL": "200", "NVDA": "600"}}
	calc := engine.NewSummaryCalculator(eng, oracle, zerolog.Nop())

	summary, err := calc.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, "4000.00", summary.TotalInvested.StringFixed(2))
	assert.Equal(t, "5000.00", summary.CurrentValue.StringFixed(2))
	assert.Equal(t, "1000.00", summary.ProfitLoss.StringFixed(2))
	assert.Equal(t, "25.00", summary.ReturnPercent.StringFixed(2))
}

func TestSummaryNegativeReturn(t *testing.T) {
	eng, _ := newTestEngine(t, "100000")
	ctx := context.Background()

	_, err := eng.ExecuteOrder(ctx, buy("AAPL", "10", "150"))
	require.NoError(t, err)

	oracle := &stubOracle{prices: map[string]string{"AAPL": "120"}}
	calc := engine.NewSummaryCalculator(eng, oracle, zerolog.Nop())

	summary, err := calc.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, "1500.00", summary.TotalInvested.StringFixed(2))
	assert.Equal(t, "1200.00", summary.CurrentValue.StringFixed(2))
	assert.Equal(t, "-300.00", summary.ProfitLoss.StringFixed(2))
	assert.Equal(t, "-20.00", summary.ReturnPercent.StringFixed(2))
}

func TestSummaryReturnPercentRounding(t *testing.T) {
	eng, _ := newTestEngine(t, "100000")
	ctx := context.Background()

	// invested 300, current 400: return = 33.333...% -> 33.33
	_, err := eng.ExecuteOrder(ctx, buy("AAPL", "3", "100"))
	require.NoError(t, err)

	oracle := &stubOracle{prices: map[string]string{"AAPL": "133.3333333333"}}
	calc := engine.NewSummaryCalculator(eng, oracle, zerolog.Nop())

	first, err := calc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "33.33", first.ReturnPercent.StringFixed(2))

	again, err := calc.Summary(ctx)
	require.NoError(t, err)
	assert.True(t, again.ReturnPercent.Equal(first.ReturnPercent))
}

func TestSummaryConsistentUnderConcurrentOrders(t *testing.T) {
	eng, _ := newTestEngine(t, "100000")
	ctx := context.Background()

	oracle := &stubOracle{prices: map[string]string{"AAPL": "150"}}
	calc := engine.NewSummaryCalculator(eng, oracle, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			if _, err := eng.ExecuteOrder(ctx, buy("AAPL", "10", "150")); err != nil {
				t.Errorf("buy: %v", err)
				return
			}
			if _, err := eng.ExecuteOrder(ctx, sell("AAPL", "10", "150")); err != nil {
				t.Errorf("sell: %v", err)
				return
			}
		}
	}()

	// Every buy moves exactly quantity*price from cash into the position at
	// that cost basis and every sell reverses it, so cash + invested equals
	// the opening balance in every committed state. A summary observing an
	// order half-applied would break the equality.
	for i := 0; i < 200; i++ {
		summary, err := calc.Summary(ctx)
		require.NoError(t, err)

		total := summary.CashBalance.Add(summary.TotalInvested)
		require.True(t, total.Equal(dec("100000")),
			"cash %s + invested %s = %s, want 100000",
			summary.CashBalance, summary.TotalInvested, total)
	}
	<-done
}

func TestHoldingViews(t *testing.T) {
	eng, _ := newTestEngine(t, "100000")
	ctx := context.Background()

	_, err := eng.ExecuteOrder(ctx, buy("AAPL", "10", "150"))
	require.NoError(t, err)
	_, err = eng.ExecuteOrder(ctx, buy("NVDA", "5", "500"))
	require.NoError(t, err)

	oracle := &stubOracle{prices: map[string]string{"AAPL": "200", "NVDA": "450"}}
	calc := engine.NewSummaryCalculator(eng, oracle, zerolog.Nop())

	views, err := calc.HoldingViews(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)

	// Holdings come back sorted by ticker.
	aapl := views[0]
	assert.Equal(t, "AAPL", aapl.Ticker)
	assert.Equal(t, "2000.00", aapl.CurrentValue.StringFixed(2))
	assert.Equal(t, "500.00", aapl.ProfitLoss.StringFixed(2))
	assert.Equal(t, "33.33", aapl.ReturnPercent.StringFixed(2))

	nvda := views[1]
	assert.Equal(t, "NVDA", nvda.Ticker)
	assert.Equal(t, "-250.00", nvda.ProfitLoss.StringFixed(2))
	assert.Equal(t, "-10.00", nvda.ReturnPercent.StringFixed(2))
}

func TestHoldingViewsOracleFailure(t *testing.T) {
	eng, _ := newTestEngine(t, "100000")
	ctx := context.Background()

	_, err := eng.ExecuteOrder(ctx, buy("AAPL", "10", "150"))
	require.NoError(t, err)

	calc := engine.NewSummaryCalculator(eng, &stubOracle{}, zerolog.Nop())

	_, err = calc.HoldingViews(ctx)
	assert.True(t, errors.Is(err, engine.ErrPriceUnavailable), "err = %v", err)
}

func TestSummaryOracleFailurePropagates(t *testing.T) {
	eng, _ := newTestEngine(t, "100000")
	ctx := context.Background()

	_, err := eng.ExecuteOrder(ctx, buy("AAPL", "10", "150"))
	require.NoError(t, err)

	calc := engine.NewSummaryCalculator(eng, &stubOracle{}, zerolog.Nop())

	_, err = calc.Summary(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrPriceUnavailable), "err = %v", err)
}
