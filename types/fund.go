package types

import "github.com/shopspring/decimal"

// MutualFund describes a fund scheme with its latest NAV and trailing
// returns derived from the NAV series.
type MutualFund struct {
	SchemeCode      string          `json:"schemeCode"`
	SchemeName      string          `json:"schemeName"`
	FundHouse       string          `json:"fundHouse"`
	SchemeType      string          `json:"schemeType"`
	SchemeCategory  string          `json:"schemeCategory"`
	NAV             decimal.Decimal `json:"nav"`
	NAVDate         string          `json:"navDate"`
	OneYearReturn   decimal.Decimal `json:"oneYearReturn"`
	ThreeYearReturn decimal.Decimal `json:"threeYearReturn"`
	FiveYearReturn  decimal.Decimal `json:"fiveYearReturn"`
}
