package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sukrithpvs/Insight/types"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func holding(ticker, quantity, avgCost string) *types.Holding {
	return &types.Holding{
		Ticker:   ticker,
		Quantity: d(quantity),
		AvgCost:  d(avgCost),
	}
}

func TestApplyBuy(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name         string
		existing     *types.Holding
		quantity     string
		price        string
		wantQuantity string
		wantAvgCost  string
	}{
		{
			name:         "open new position",
			existing:     nil,
			quantity:     "10",
			price:        "182.50",
			wantQuantity: "10",
			wantAvgCost:  "182.50",
		},
		{
			name:         "scale in averages cost",
			existing:     holding("AAPL", "10", "150"),
			quantity:     "10",
			price:        "200",
			wantQuantity: "20",
			wantAvgCost:  "175",
		},
		{
			name:         "uneven scale in rounds half up to 4 places",
			existing:     holding("AAPL", "10", "100"),
			quantity:     "5",
			price:        "110",
			wantQuantity: "15",
			wantAvgCost:  "103.3333",
		},
		{
			name:         "fractional quantities",
			existing:     holding("BRK.B", "0.5", "300"),
			quantity:     "0.25",
			price:        "330",
			wantQuantity: "0.75",
			wantAvgCost:  "310",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyBuy(tt.existing, "AAPL", d(tt.quantity), d(tt.price), now)

			if !got.Quantity.Equal(d(tt.wantQuantity)) {
				t.Errorf("quantity = %s, want %s", got.Quantity, tt.wantQuantity)
			}
			if !got.AvgCost.Equal(d(tt.wantAvgCost)) {
				t.Errorf("avgCost = %s, want %s", got.AvgCost, tt.wantAvgCost)
			}
		})
	}
}

func TestApplyBuyDeterministic(t *testing.T) {
	now := time.Now()
	existing := holding("INFY", "3", "19.99")

	first := applyBuy(existing, "INFY", d("7"), d("21.37"), now)
	for i := 0; i < 50; i++ {
		again := applyBuy(existing, "INFY", d("7"), d("21.37"), now)
		if !again.AvgCost.Equal(first.AvgCost) {
			t.Fatalf("avgCost not deterministic: %s vs %s", again.AvgCost, first.AvgCost)
		}
	}
}

func TestApplySell(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name         string
		existing     *types.Holding
		quantity     string
		wantDeleted  bool
		wantQuantity string
		wantAvgCost  string
		wantErr      error
	}{
		{
			name:         "partial sell keeps cost basis",
			existing:     holding("AAPL", "10", "150"),
			quantity:     "4",
			wantQuantity: "6",
			wantAvgCost:  "150",
		},
		{
			name:        "full liquidation deletes the holding",
			existing:    holding("AAPL", "5", "123.45"),
			quantity:    "5",
			wantDeleted: true,
		},
		{
			name:     "oversell re-asserts the position invariant",
			existing: holding("AAPL", "3", "150"),
			quantity: "10",
			wantErr:  ErrInsufficientPosition,
		},
		{
			name:     "sell with no position",
			existing: nil,
			quantity: "1",
			wantErr:  ErrInsufficientPosition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applySell(tt.existing, d(tt.quantity), now)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantDeleted {
				if got != nil {
					t.Fatalf("holding = %+v, want deleted", got)
				}
				return
			}
			if got == nil {
				t.Fatal("holding deleted, want remaining position")
			}
			if !got.Quantity.Equal(d(tt.wantQuantity)) {
				t.Errorf("quantity = %s, want %s", got.Quantity, tt.wantQuantity)
			}
			if !got.AvgCost.Equal(d(tt.wantAvgCost)) {
				t.Errorf("avgCost = %s, want %s", got.AvgCost, tt.wantAvgCost)
			}
		})
	}
}

func TestDebit(t *testing.T) {
	account := types.Account{CashBalance: d("100.00")}

	got, err := debit(account, d("40.25"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.CashBalance.Equal(d("59.75")) {
		t.Errorf("balance = %s, want 59.75", got.CashBalance)
	}

	if _, err := debit(got, d("60")); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("err = %v, want ErrInsufficientFunds", err)
	}
}

func TestCredit(t *testing.T) {
	account := credit(types.Account{CashBalance: d("10.50")}, d("0.50"))
	if !account.CashBalance.Equal(d("11")) {
		t.Errorf("balance = %s, want 11", account.CashBalance)
	}
}
