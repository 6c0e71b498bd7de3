package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	candleentity "stock_valuation/internal/feature/candles/domain/entity"
	companyentity "stock_valuation/internal/feature/company/domain/entity"
	companyusecase "stock_valuation/internal/feature/company/usecase"
	candleusecase "stock_valuation/internal/feature/candles/usecase"
	valuationentity "stock_valuation/internal/feature/valuation/domain/entity"
	valuationusecase "stock_valuation/internal/feature/valuation/usecase"
	"stock_valuation/internal/platform/externalapi/yahoo/dto"
	"stock_valuation/internal/shared/marketdata"
)

// ErrNoResult is returned when the chart API answers without a result for the symbol.
var ErrNoResult = errors.New("yahoo: empty chart result")

// ChartClient はYahoo FinanceのクエリAPI（チャートと財務時系列）からデータを取得します。
type ChartClient struct {
	cfg    Config
	client *http.Client
	now    func() time.Time
}

// ChartClientが各フィーチャーのリポジトリを実装していることをコンパイル時に検証します。
var (
	_ candleusecase.MarketRepository         = (*ChartClient)(nil)
	_ valuationusecase.PriceSeriesRepository = (*ChartClient)(nil)
	_ valuationusecase.QuoteRepository       = (*ChartClient)(nil)
	_ companyusecase.ProfileRepository       = (*ChartClient)(nil)
)

// NewChartClient は指定された設定とHTTPクライアントでChartClientを生成します。
func NewChartClient(cfg Config, client *http.Client) *ChartClient {
	return &ChartClient{cfg: cfg, client: client, now: time.Now}
}

func (c *ChartClient) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

// GetCandles は期間・時間足を指定してローソク足を取得します。値が欠けたバーは除外します。
func (c *ChartClient) GetCandles(ctx context.Context, symbol string, rng marketdata.Range, interval marketdata.Interval) ([]candleentity.Candle, error) {
	res, err := c.fetch(ctx, symbol, rng, interval)
	if err != nil {
		return nil, err
	}
	if len(res.Indicators.Quote) == 0 {
		return nil, nil
	}
	q := res.Indicators.Quote[0]

	candles := make([]candleentity.Candle, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		o, h, l, cl := at(q.Open, i), at(q.High, i), at(q.Low, i), at(q.Close, i)
		if o == nil || h == nil || l == nil || cl == nil {
			continue
		}
		var vol int64
		if v := at(q.Volume, i); v != nil {
			vol = *v
		}
		candles = append(candles, candleentity.Candle{
			Symbol:   symbol,
			Interval: interval,
			Time:     time.Unix(ts, 0).UTC(),
			Open:     *o,
			High:     *h,
			Low:      *l,
			Close:    *cl,
			Volume:   vol,
		})
	}
	return candles, nil
}

// GetPriceSeries は終値の時系列を取得します。null や0以下の終値は除外します。
func (c *ChartClient) GetPriceSeries(ctx context.Context, symbol string, rng marketdata.Range, interval marketdata.Interval) (valuationentity.PriceSeries, error) {
	res, err := c.fetch(ctx, symbol, rng, interval)
	if err != nil {
		return valuationentity.PriceSeries{}, err
	}
	var closes []*float64
	if len(res.Indicators.Quote) > 0 {
		closes = res.Indicators.Quote[0].Close
	}

	points := make([]valuationentity.PricePoint, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		cl := at(closes, i)
		if cl == nil || *cl <= 0 {
			continue
		}
		points = append(points, valuationentity.PricePoint{Time: time.Unix(ts, 0).UTC(), Close: *cl})
	}
	return valuationentity.NewPriceSeries(symbol, points), nil
}

// GetCurrentPrice は meta.regularMarketPrice を返します。
// 値がない場合は直近の終値で代替します。
func (c *ChartClient) GetCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	res, err := c.fetch(ctx, symbol, marketdata.Range1Day, marketdata.Interval15Min)
	if err != nil {
		return 0, err
	}
	if p := res.Meta.RegularMarketPrice; p > 0 {
		return p, nil
	}
	if len(res.Indicators.Quote) > 0 {
		closes := res.Indicators.Quote[0].Close
		for i := len(closes) - 1; i >= 0; i-- {
			if closes[i] != nil && *closes[i] > 0 {
				return *closes[i], nil
			}
		}
	}
	return 0, fmt.Errorf("yahoo: no current price for %s", symbol)
}

// GetProfile はチャートの meta から会社名・通貨・52週高値/安値を返します。
// longName がない銘柄（指数など）は shortName を使います。
func (c *ChartClient) GetProfile(ctx context.Context, symbol string) (companyentity.CompanyProfile, error) {
	res, err := c.fetch(ctx, symbol, marketdata.Range1Day, marketdata.Interval1Day)
	if err != nil {
		return companyentity.CompanyProfile{}, err
	}
	name := res.Meta.LongName
	if name == "" {
		name = res.Meta.ShortName
	}
	return companyentity.CompanyProfile{
		Symbol:           symbol,
		Name:             name,
		Currency:         res.Meta.Currency,
		FiftyTwoWeekHigh: positive(res.Meta.FiftyTwoWeekHigh),
		FiftyTwoWeekLow:  positive(res.Meta.FiftyTwoWeekLow),
	}, nil
}

func (c *ChartClient) fetch(ctx context.Context, symbol string, rng marketdata.Range, interval marketdata.Interval) (dto.ChartResult, error) {
	q := url.Values{}
	q.Set("range", string(rng))
	q.Set("interval", string(interval))
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.cfg.ChartBaseURL, url.PathEscape(symbol), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return dto.ChartResult{}, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return dto.ChartResult{}, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	// Yahooは銘柄不明時も404でJSONのエラーを返すため、先にデコードを試みる
	var body dto.ChartResponse
	decodeErr := json.NewDecoder(res.Body).Decode(&body)
	if body.Chart.Error != nil {
		return dto.ChartResult{}, fmt.Errorf("yahoo chart %s: %s: %s", symbol, body.Chart.Error.Code, body.Chart.Error.Description)
	}
	if res.StatusCode >= 400 {
		return dto.ChartResult{}, fmt.Errorf("yahoo http %d", res.StatusCode)
	}
	if decodeErr != nil {
		return dto.ChartResult{}, decodeErr
	}
	if len(body.Chart.Result) == 0 {
		return dto.ChartResult{}, fmt.Errorf("%s: %w", symbol, ErrNoResult)
	}
	return body.Chart.Result[0], nil
}

func positive(v *float64) *float64 {
	if v == nil || *v <= 0 {
		return nil
	}
	return v
}

func at[T any](xs []*T, i int) *T {
	if i < len(xs) {
		return xs[i]
	}
	return nil
}
