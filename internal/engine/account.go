package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sukrithpvs/Insight/types"
)

// debit removes amount from the account, guarding the non-negative balance
// invariant.
func debit(account types.Account, amount decimal.Decimal) (types.Account, error) {
	if amount.GreaterThan(account.CashBalance) {
		return account, fmt.Errorf("%w: required %s, available %s",
			ErrInsufficientFunds, amount.StringFixed(2), account.CashBalance.StringFixed(2))
	}
	account.CashBalance = account.CashBalance.Sub(amount)
	return account, nil
}

// credit adds amount to the account. Amounts are always non-negative on the
// order path (quantity > 0, price >= 0).
func credit(account types.Account, amount decimal.Decimal) types.Account {
	account.CashBalance = account.CashBalance.Add(amount)
	return account
}
