package funds

import (
	"hash/fnv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sukrithpvs/Insight/types"
)

type popularFund struct {
	code      string
	name      string
	fundHouse string
	category  string
}

// popularFunds is the curated large-cap/flexi-cap set served by the fund
// listing endpoint. Codes are real mfapi.in scheme codes.
var popularFunds = []popularFund{
	{"119551", "Axis Bluechip Fund - Direct Growth", "Axis Mutual Fund", "Large Cap"},
	{"120503", "Mirae Asset Large Cap Fund - Direct Growth", "Mirae Asset Mutual Fund", "Large Cap"},
	{"118989", "SBI Bluechip Fund - Direct Growth", "SBI Mutual Fund", "Large Cap"},
	{"100356", "HDFC Top 100 Fund - Growth", "HDFC Mutual Fund", "Large Cap"},
	{"102715", "ICICI Prudential Bluechip Fund - Growth", "ICICI Prudential Mutual Fund", "Large Cap"},
	{"118834", "Kotak Bluechip Fund - Direct Growth", "Kotak Mahindra Mutual Fund", "Large Cap"},
	{"100468", "UTI Flexi Cap Fund - Growth", "UTI Mutual Fund", "Flexi Cap"},
	{"120505", "Parag Parikh Flexi Cap Fund - Direct Growth", "PPFAS Mutual Fund", "Flexi Cap"},
	{"106235", "Nippon India Large Cap Fund - Growth", "Nippon India Mutual Fund", "Large Cap"},
	{"118269", "Canara Robeco Bluechip Equity Fund - Direct Growth", "Canara Robeco Mutual Fund", "Large Cap"},
}

// mockFund builds a deterministic synthetic fund row. Known codes reuse the
// curated name and house; unknown codes get values seeded by a hash of the
// code so repeated lookups agree.
func mockFund(code string, now time.Time) types.MutualFund {
	name := "Scheme " + code
	fundHouse := "Unknown Fund House"
	category := "Equity"
	for _, p := range popularFunds {
		if p.code == code {
			name = p.name
			fundHouse = p.fundHouse
			category = p.category
			break
		}
	}

	seed := codeSeed(code)
	// NAV in [20, 120), returns in plausible equity bands.
	nav := decimal.NewFromInt(int64(2000 + seed%10000)).Div(decimal.NewFromInt(100))
	oneYear := decimal.NewFromInt(int64(seed%3000) - 500).Div(decimal.NewFromInt(100))
	threeYear := decimal.NewFromInt(int64(seed%4000) + 500).Div(decimal.NewFromInt(100))
	fiveYear := decimal.NewFromInt(int64(seed%6000) + 1500).Div(decimal.NewFromInt(100))

	return types.MutualFund{
		SchemeCode:      code,
		SchemeName:      name,
		FundHouse:       fundHouse,
		SchemeType:      "Open Ended",
		SchemeCategory:  category,
		NAV:             nav,
		NAVDate:         now.Format("02-01-2006"),
		OneYearReturn:   oneYear,
		ThreeYearReturn: threeYear,
		FiveYearReturn:  fiveYear,
	}
}

func codeSeed(code string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(code))
	return h.Sum64()
}
