// Package handler はcandlesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"stock_valuation/internal/api"
	"stock_valuation/internal/feature/candles/domain"
	"stock_valuation/internal/feature/candles/domain/entity"
	"stock_valuation/internal/feature/candles/transport/http/dto"
	"stock_valuation/internal/shared/marketdata"
	"stock_valuation/internal/shared/ticker"

	"github.com/gin-gonic/gin"
)

// CandlesUsecase はチャートデータ取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type CandlesUsecase interface {
	GetChart(ctx context.Context, symbol string, period marketdata.Range) (entity.Chart, error)
}

// CandlesHandler はローソク足データのHTTPリクエストを処理します。
type CandlesHandler struct {
	uc CandlesUsecase
}

// NewCandlesHandler は指定されたusecaseでCandlesHandlerの新しいインスタンスを生成します。
func NewCandlesHandler(uc CandlesUsecase) *CandlesHandler {
	return &CandlesHandler{uc: uc}
}

// GetCandlesHandler は銘柄コードと期間を受け取り、ローソク足と移動平均をJSONで返します。
//
// エンドポイント例:
// GET /candles/:code?period=6mo
func (h *CandlesHandler) GetCandlesHandler(c *gin.Context) {
	code, err := ticker.Normalize(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	raw := c.DefaultQuery("period", string(marketdata.Range6Months))
	period, ok := marketdata.ParseRange(raw)
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: fmt.Sprintf("%s: %q", domain.ErrInvalidPeriod, raw)})
		return
	}

	chart, err := h.uc.GetChart(c.Request.Context(), code, period)
	switch {
	case errors.Is(err, domain.ErrInvalidPeriod):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, domain.ErrNoData):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		slog.Error("failed to load chart", "symbol", code, "period", period, "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "data unavailable"})
		return
	}

	c.JSON(http.StatusOK, toChartResponse(chart))
}

func toChartResponse(chart entity.Chart) dto.ChartResponse {
	layout := "2006-01-02"
	if chart.Interval.Intraday() {
		layout = time.RFC3339
	}

	// データをフォーマット
	candles := make([]dto.CandleResponse, 0, len(chart.Candles))
	for _, x := range chart.Candles {
		candles = append(candles, dto.CandleResponse{
			Time:   x.Time.UTC().Format(layout),
			Open:   x.Open,
			High:   x.High,
			Low:    x.Low,
			Close:  x.Close,
			Volume: x.Volume,
		})
	}
	overlays := make([]dto.OverlayResponse, 0, len(chart.Overlays))
	for _, o := range chart.Overlays {
		overlays = append(overlays, dto.OverlayResponse{Name: "MA" + strconv.Itoa(o.Window), Values: o.Values})
	}

	return dto.ChartResponse{
		Symbol:   chart.Symbol,
		Period:   string(chart.Period),
		Interval: string(chart.Interval),
		Candles:  candles,
		Overlays: overlays,
	}
}
