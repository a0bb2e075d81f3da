package funds

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/sukrithpvs/Insight/types"
)

// Trailing-return lookbacks in trading days.
const (
	oneYearDays   = 252
	threeYearDays = 756
	fiveYearDays  = 1260
)

// SchemeSource is the upstream fund data source. Scheme returns the NAV
// series newest first; an empty series is reported as an error, never as
// an empty Data slice.
type SchemeSource interface {
	Scheme(ctx context.Context, code string) (*schemeResponse, error)
	Search(ctx context.Context, query string) ([]searchResult, error)
}

type Service struct {
	source SchemeSource
	log    zerolog.Logger
}

func NewService(source SchemeSource, log zerolog.Logger) *Service {
	return &Service{
		source: source,
		log:    log.With().Str("component", "funds").Logger(),
	}
}

// Fund returns a single scheme with its latest NAV and trailing returns,
// substituting a synthetic row when the upstream fails.
func (s *Service) Fund(ctx context.Context, code string) (types.MutualFund, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return types.MutualFund{}, fmt.Errorf("scheme code is required")
	}

	if s.source != nil {
		raw, err := s.source.Scheme(ctx, code)
		if err == nil {
			return fundFromScheme(code, raw), nil
		}
		s.log.Warn().Err(err).Str("code", code).Msg("Fund source unavailable, using mock data")
	}

	return mockFund(code, time.Now()), nil
}

// Popular returns the curated fund set, each enriched like Fund.
func (s *Service) Popular(ctx context.Context) ([]types.MutualFund, error) {
	out := make([]types.MutualFund, 0, len(popularFunds))
	for _, p := range popularFunds {
		fund, err := s.Fund(ctx, p.code)
		if err != nil {
			s.log.Warn().Err(err).Str("code", p.code).Msg("Skipping fund in listing")
			continue
		}
		out = append(out, fund)
	}
	return out, nil
}

// Search matches schemes by name. The upstream search is tried first; on
// failure the curated set is filtered by name and fund house instead.
func (s *Service) Search(ctx context.Context, query string) ([]types.MutualFund, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}

	if s.source != nil {
		results, err := s.source.Search(ctx, query)
		if err == nil {
			out := make([]types.MutualFund, 0, len(results))
			for i, r := range results {
				if i >= 20 {
					break
				}
				out = append(out, types.MutualFund{
					SchemeCode: strconv.FormatInt(r.SchemeCode, 10),
					SchemeName: r.SchemeName,
				})
			}
			return out, nil
		}
		s.log.Warn().Err(err).Str("query", query).Msg("Fund search unavailable, filtering curated set")
	}

	lower := strings.ToLower(query)
	var out []types.MutualFund
	for _, p := range popularFunds {
		if strings.Contains(strings.ToLower(p.name), lower) ||
			strings.Contains(strings.ToLower(p.fundHouse), lower) {
			out = append(out, mockFund(p.code, time.Now()))
		}
	}
	return out, nil
}

func fundFromScheme(code string, raw *schemeResponse) types.MutualFund {
	fund := types.MutualFund{
		SchemeCode:     code,
		SchemeName:     raw.Meta.SchemeName,
		FundHouse:      raw.Meta.FundHouse,
		SchemeType:     raw.Meta.SchemeType,
		SchemeCategory: raw.Meta.SchemeCategory,
	}
	if len(raw.Data) == 0 {
		return fund
	}

	latest := raw.Data[0]
	nav, err := decimal.NewFromString(latest.NAV)
	if err != nil {
		nav = decimal.Zero
	}

	fund.NAV = nav
	fund.NAVDate = latest.Date
	fund.OneYearReturn = trailingReturn(raw, nav, oneYearDays)
	fund.ThreeYearReturn = trailingReturn(raw, nav, threeYearDays)
	fund.FiveYearReturn = trailingReturn(raw, nav, fiveYearDays)
	return fund
}

// trailingReturn computes the simple percent change between the latest NAV
// and the NAV `days` rows back. The series is newest first; zero when the
// history is too short.
func trailingReturn(raw *schemeResponse, latest decimal.Decimal, days int) decimal.Decimal {
	if days >= len(raw.Data) || latest.IsZero() {
		return decimal.Zero
	}
	past, err := decimal.NewFromString(raw.Data[days].NAV)
	if err != nil || !past.IsPositive() {
		return decimal.Zero
	}
	return latest.Sub(past).
		Div(past).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}
