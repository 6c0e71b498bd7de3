package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	companyentity "stock_valuation/internal/feature/company/domain/entity"
	companyusecase "stock_valuation/internal/feature/company/usecase"
	"stock_valuation/internal/platform/externalapi/yahoo/dto"
)

// financialsLookback は年次決算を遡る期間です。Yahoo は通常直近4〜5期のみ返します。
const financialsLookback = 10

// incomeStatementItems は取得する損益計算書の項目です（APIの型名と表示名）。並び順がそのまま行の順になります。
var incomeStatementItems = []struct {
	key   string
	label string
}{
	{"TotalRevenue", "Total Revenue"},
	{"CostOfRevenue", "Cost Of Revenue"},
	{"GrossProfit", "Gross Profit"},
	{"OperatingExpense", "Operating Expense"},
	{"OperatingIncome", "Operating Income"},
	{"PretaxIncome", "Pretax Income"},
	{"TaxProvision", "Tax Provision"},
	{"NetIncome", "Net Income"},
	{"EBITDA", "EBITDA"},
	{"BasicEPS", "Basic EPS"},
	{"DilutedEPS", "Diluted EPS"},
}

var _ companyusecase.FinancialsRepository = (*ChartClient)(nil)

// GetFinancials は fundamentals-timeseries から年次損益計算書を取得します。
// 値のない決算期は欠損（nil）のまま残します。
func (c *ChartClient) GetFinancials(ctx context.Context, symbol string) (companyentity.FinancialStatement, error) {
	types := make([]string, len(incomeStatementItems))
	labels := make(map[string]string, len(incomeStatementItems))
	order := make([]string, len(incomeStatementItems))
	for i, it := range incomeStatementItems {
		types[i] = "annual" + it.key
		labels[types[i]] = it.label
		order[i] = it.label
	}

	now := c.clock()
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("type", strings.Join(types, ","))
	q.Set("period1", strconv.FormatInt(now.AddDate(-financialsLookback, 0, 0).Unix(), 10))
	q.Set("period2", strconv.FormatInt(now.Unix(), 10))
	u := fmt.Sprintf("%s/ws/fundamentals-timeseries/v1/finance/timeseries/%s?%s", c.cfg.ChartBaseURL, url.PathEscape(symbol), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return companyentity.FinancialStatement{}, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return companyentity.FinancialStatement{}, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	var body dto.TimeseriesResponse
	decodeErr := json.NewDecoder(res.Body).Decode(&body)
	if body.Timeseries.Error != nil {
		return companyentity.FinancialStatement{}, fmt.Errorf("yahoo timeseries %s: %s: %s", symbol, body.Timeseries.Error.Code, body.Timeseries.Error.Description)
	}
	if res.StatusCode >= 400 {
		return companyentity.FinancialStatement{}, fmt.Errorf("yahoo http %d", res.StatusCode)
	}
	if decodeErr != nil {
		return companyentity.FinancialStatement{}, decodeErr
	}

	var (
		cells    []companyentity.FinancialCell
		currency string
	)
	for _, result := range body.Timeseries.Result {
		var meta dto.TimeseriesMeta
		if err := json.Unmarshal(result["meta"], &meta); err != nil || len(meta.Type) == 0 {
			continue
		}
		typ := meta.Type[0]
		label, ok := labels[typ]
		if !ok {
			continue
		}
		raw, ok := result[typ]
		if !ok {
			continue
		}
		var points []*dto.TimeseriesPoint
		if err := json.Unmarshal(raw, &points); err != nil {
			return companyentity.FinancialStatement{}, fmt.Errorf("decode %s: %w", typ, err)
		}
		for _, p := range points {
			if p == nil {
				continue
			}
			period, err := time.Parse("2006-01-02", p.AsOfDate)
			if err != nil {
				slog.Warn("skipping timeseries point with bad date", "symbol", symbol, "type", typ, "as_of", p.AsOfDate)
				continue
			}
			if currency == "" {
				currency = p.CurrencyCode
			}
			cells = append(cells, companyentity.FinancialCell{Item: label, Period: period, Value: p.ReportedValue.Raw})
		}
	}

	return companyentity.NewFinancialStatement(symbol, currency, order, cells), nil
}
