package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	candleentity "stock_valuation/internal/feature/candles/domain/entity"
	candleusecase "stock_valuation/internal/feature/candles/usecase"
	valuationentity "stock_valuation/internal/feature/valuation/domain/entity"
	valuationusecase "stock_valuation/internal/feature/valuation/usecase"
	"stock_valuation/internal/platform/externalapi/twelvedata/dto"
	"stock_valuation/internal/shared/marketdata"
)

// intervals はmarketdataの時間足をTwelve Dataの表記に変換します。
var intervals = map[marketdata.Interval]string{
	marketdata.Interval15Min: "15min",
	marketdata.Interval1Hour: "1h",
	marketdata.Interval1Day:  "1day",
	marketdata.Interval1Week: "1week",
}

// TwelveDataMarket はTwelve Data外部APIから株価データを取得するリポジトリ実装です。
type TwelveDataMarket struct {
	cfg    Config
	client *http.Client
}

// TwelveDataMarketが各フィーチャーのリポジトリを実装していることをコンパイル時に検証します。
var (
	_ candleusecase.MarketRepository         = (*TwelveDataMarket)(nil)
	_ valuationusecase.PriceSeriesRepository = (*TwelveDataMarket)(nil)
	_ valuationusecase.QuoteRepository       = (*TwelveDataMarket)(nil)
)

// NewTwelveDataMarket は指定された設定とHTTPクライアントでTwelveDataMarketの新しいインスタンスを生成します。
func NewTwelveDataMarket(cfg Config, client *http.Client) *TwelveDataMarket {
	return &TwelveDataMarket{cfg: cfg, client: client}
}

// GetCandles は期間をバー数（outputsize）に換算して時系列を取得し、古い順に返します。
func (t *TwelveDataMarket) GetCandles(ctx context.Context, symbol string, rng marketdata.Range, interval marketdata.Interval) ([]candleentity.Candle, error) {
	iv, ok := intervals[interval]
	if !ok {
		return nil, fmt.Errorf("twelvedata: unsupported interval %q", interval)
	}
	candles, err := t.timeSeries(ctx, symbol, iv, marketdata.Bars(rng, interval))
	if err != nil {
		return nil, err
	}
	for i := range candles {
		candles[i].Interval = interval
	}
	// APIは新しい順に返す
	sort.SliceStable(candles, func(i, j int) bool { return candles[i].Time.Before(candles[j].Time) })
	return candles, nil
}

// GetPriceSeries はGetCandlesの終値だけを返します。
func (t *TwelveDataMarket) GetPriceSeries(ctx context.Context, symbol string, rng marketdata.Range, interval marketdata.Interval) (valuationentity.PriceSeries, error) {
	candles, err := t.GetCandles(ctx, symbol, rng, interval)
	if err != nil {
		return valuationentity.PriceSeries{}, err
	}
	points := make([]valuationentity.PricePoint, 0, len(candles))
	for _, c := range candles {
		if c.Close > 0 {
			points = append(points, valuationentity.PricePoint{Time: c.Time, Close: c.Close})
		}
	}
	return valuationentity.NewPriceSeries(symbol, points), nil
}

// GetCurrentPrice は /price エンドポイントから直近の価格を取得します。
func (t *TwelveDataMarket) GetCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("apikey", t.cfg.TwelveDataAPIKey)

	var body dto.PriceResponse
	if err := t.get(ctx, "price", q, &body); err != nil {
		return 0, err
	}
	if body.Status == "error" {
		return 0, fmt.Errorf("twelvedata: %s", body.Message)
	}
	p, err := strconv.ParseFloat(body.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", body.Price, err)
	}
	if p <= 0 {
		return 0, fmt.Errorf("twelvedata: non-positive price %v for %s", p, symbol)
	}
	return p, nil
}

// timeSeries はTwelve Data APIから時系列株価データを取得し、
// entity.Candleのスライスとして返します。
func (t *TwelveDataMarket) timeSeries(ctx context.Context, symbol, interval string, outputsize int) ([]candleentity.Candle, error) {
	q := url.Values{}
	// クエリパラメータを追加
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("outputsize", strconv.Itoa(outputsize))
	q.Set("apikey", t.cfg.TwelveDataAPIKey)

	// JSONレスポンスをDTOにデコード
	var body dto.TimeSeriesResponse
	if err := t.get(ctx, "time_series", q, &body); err != nil {
		return nil, err
	}
	if body.Status == "error" {
		return nil, fmt.Errorf("twelvedata: %s", body.Message)
	}

	candles := make([]candleentity.Candle, 0, len(body.Values))
	for _, v := range body.Values {

		// タイムスタンプをパース
		tm, err := time.Parse("2006-01-02 15:04:05", v.Datetime)
		if err != nil {
			tm, err = time.Parse("2006-01-02", v.Datetime)
			if err != nil {
				return nil, fmt.Errorf("parse time %q: %w", v.Datetime, err)
			}
		}
		// 始値をパース
		o, err := strconv.ParseFloat(v.Open, 64)
		if err != nil {
			return nil, fmt.Errorf("parse open %q: %w", v.Open, err)
		}
		// 高値をパース
		h, err := strconv.ParseFloat(v.High, 64)
		if err != nil {
			return nil, fmt.Errorf("parse high %q: %w", v.High, err)
		}
		// 安値をパース
		l, err := strconv.ParseFloat(v.Low, 64)
		if err != nil {
			return nil, fmt.Errorf("parse low %q: %w", v.Low, err)
		}
		// 終値をパース
		c, err := strconv.ParseFloat(v.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("parse close %q: %w", v.Close, err)
		}
		// 出来高をパース（指数など出来高のない銘柄は空文字）
		var vol64 int64
		if v.Volume != "" {
			vol64, err = strconv.ParseInt(v.Volume, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parse volume %q: %w", v.Volume, err)
			}
		}

		// ドメインエンティティに変換
		candles = append(candles, candleentity.Candle{
			Symbol: symbol,
			Time:   tm,
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: vol64,
		})
	}
	return candles, nil
}

func (t *TwelveDataMarket) get(ctx context.Context, endpoint string, q url.Values, out any) error {
	// URLを生成
	u := fmt.Sprintf("%s/%s?%s", t.cfg.BaseURL, endpoint, q.Encode())

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	// リクエストを実行
	res, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return fmt.Errorf("twelvedata http %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
