// Command valuate prints a PEG-adjusted fair value report for one ticker.
//
//	valuate -ticker AAPL [-industry-per 25]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"stock_valuation/internal/app/di"
	"stock_valuation/internal/feature/valuation/domain"
	"stock_valuation/internal/feature/valuation/domain/entity"
	"stock_valuation/internal/feature/valuation/transport/report"
	"stock_valuation/internal/shared/ticker"
)

type valuator interface {
	Valuate(ctx context.Context, symbol string, industryPER float64) (entity.ValuationResult, error)
}

func main() {
	_ = godotenv.Load()
	// レポートを標準出力に出すため、ログは警告以上のみ
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	market, err := di.NewMarket(di.ProviderFromEnv(), nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	os.Exit(run(context.Background(), os.Args[1:], di.NewValuationUsecase(market), os.Stdout, os.Stderr))
}

// run はフラグを解釈して評価レポートを出力し、終了コードを返します。
func run(ctx context.Context, args []string, uc valuator, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("valuate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	rawTicker := fs.String("ticker", "", "ticker symbol, e.g. AAPL or 7203.T")
	rawPER := fs.String("industry-per", "", "industry-average P/E for comparison (empty or 0 = none)")
	timeout := fs.Duration("timeout", 30*time.Second, "overall timeout")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	symbol, err := ticker.Normalize(*rawTicker)
	if err != nil {
		fmt.Fprintf(stderr, "%v: %q\n", err, *rawTicker)
		return 1
	}
	industryPER, err := domain.ParseIndustryPER(*rawPER)
	if err != nil {
		fmt.Fprintf(stderr, "industry-per must be a non-negative number: %q\n", *rawPER)
		return 1
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	res, err := uc.Valuate(ctx, symbol, industryPER)
	if err != nil {
		slog.Debug("valuation failed", "symbol", symbol, "error", err)
		fmt.Fprintln(stdout, report.Unavailable(err))
		return 1
	}
	fmt.Fprint(stdout, report.Render(res))
	return 0
}
