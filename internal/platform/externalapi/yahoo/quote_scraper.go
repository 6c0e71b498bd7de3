package yahoo

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	companyentity "stock_valuation/internal/feature/company/domain/entity"
	companyusecase "stock_valuation/internal/feature/company/usecase"
	"stock_valuation/internal/feature/valuation/domain/entity"
	"stock_valuation/internal/feature/valuation/usecase"
	"stock_valuation/internal/shared/ratelimiter"

	"github.com/PuerkitoBio/goquery"
)

// 先頭から順に試すセレクタ。ページの改版に備えて旧レイアウトも残す。
var (
	trailingPESelectors = []string{
		`fin-streamer[data-field="trailingPE"]`,
		`[data-test="PE_RATIO-value"]`,
	}
	epsSelectors = []string{
		`fin-streamer[data-field="epsTrailingTwelveMonths"]`,
		`[data-test="EPS_RATIO-value"]`,
	}
	marketCapSelectors = []string{
		`fin-streamer[data-field="marketCap"]`,
		`[data-test="MARKET_CAP-value"]`,
	}
	betaSelectors = []string{
		`[data-test="BETA_5Y-value"]`,
	}
	dividendSelectors = []string{
		`[data-test="DIVIDEND_AND_YIELD-value"]`,
	}
)

// QuoteScraper はYahoo Financeの銘柄ページからEPS・PERと会社情報を読み取ります。
type QuoteScraper struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
}

var (
	_ usecase.FundamentalsRepository   = (*QuoteScraper)(nil)
	_ companyusecase.ProfileRepository = (*QuoteScraper)(nil)
)

// NewQuoteScraper はQuoteScraperを生成します。limiter が nil の場合は待機しません。
func NewQuoteScraper(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *QuoteScraper {
	return &QuoteScraper{cfg: cfg, client: client, limiter: limiter}
}

// GetFundamentals は /quote/{symbol}/ をダウンロードして直近12ヶ月のEPSとPERを返します。
// 値が "N/A" などで読み取れない項目は未取得として扱います。
func (s *QuoteScraper) GetFundamentals(ctx context.Context, symbol string) (entity.FundamentalsSnapshot, error) {
	doc, err := s.document(ctx, quotePath(symbol))
	if err != nil {
		return entity.FundamentalsSnapshot{}, err
	}

	pe := findNumber(doc, trailingPESelectors)
	eps := findNumber(doc, epsSelectors)
	if pe == nil || eps == nil {
		slog.Warn("quote page missing fundamentals", "symbol", symbol, "has_pe", pe != nil, "has_eps", eps != nil)
	}
	return entity.NewFundamentalsSnapshot(symbol, eps, pe), nil
}

// GetProfile は銘柄ページから時価総額・ベータ・配当利回りを、
// プロフィールページからセクターと業種を読み取ります。
// プロフィールページの取得に失敗した場合はセクターと業種を空のまま返します。
func (s *QuoteScraper) GetProfile(ctx context.Context, symbol string) (companyentity.CompanyProfile, error) {
	doc, err := s.document(ctx, quotePath(symbol))
	if err != nil {
		return companyentity.CompanyProfile{}, err
	}

	p := companyentity.CompanyProfile{
		Symbol:        symbol,
		Name:          headingName(doc, symbol),
		MarketCap:     findValue(doc, marketCapSelectors, parseAbbreviated),
		Beta:          findNumber(doc, betaSelectors),
		DividendYield: findValue(doc, dividendSelectors, parseDividendYield),
	}
	if p.Beta == nil {
		if v, ok := parseNumber(labeledText(doc, "Beta")); ok {
			p.Beta = &v
		}
	}
	if p.DividendYield == nil {
		if v, ok := parseDividendYield(labeledText(doc, "Forward Dividend")); ok {
			p.DividendYield = &v
		}
	}

	profile, err := s.document(ctx, quotePath(symbol)+"profile/")
	if err != nil {
		slog.Warn("profile page unavailable", "symbol", symbol, "error", err)
		return p, nil
	}
	p.Sector = labeledText(profile, "Sector")
	p.Industry = labeledText(profile, "Industry")
	return p, nil
}

// document はレート制限に従ってページを取得し、HTMLを解析します。
func (s *QuoteScraper) document(ctx context.Context, path string) (*goquery.Document, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.QuoteBaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)
	req.Header.Set("Accept", "text/html")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("yahoo quote http %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse quote page: %w", err)
	}
	return doc, nil
}

func quotePath(symbol string) string {
	return "/quote/" + url.PathEscape(symbol) + "/"
}

// headingName は "Apple Inc. (AAPL)" のような見出しから会社名を取り出します。
func headingName(doc *goquery.Document, symbol string) string {
	h := strings.TrimSpace(doc.Find("h1").First().Text())
	h = strings.TrimSpace(strings.TrimSuffix(h, "("+symbol+")"))
	return h
}

// labeledText はラベル要素（dt や span）の直後の要素のテキストを返します。
// ラベルは前方一致で比較するため "Sector" は "Sector(s)" や "Sector:" にも一致します。
func labeledText(doc *goquery.Document, label string) string {
	var out string
	doc.Find("dt, span").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !strings.HasPrefix(strings.TrimSpace(sel.Text()), label) {
			return true
		}
		v := strings.TrimSpace(sel.Next().Text())
		if v == "" {
			return true
		}
		out = v
		return false
	})
	return out
}

// findNumber は最初に数値として読み取れたセレクタの値を返します。
func findNumber(doc *goquery.Document, selectors []string) *float64 {
	return findValue(doc, selectors, parseNumber)
}

// findValue はテキスト、次に data-value 属性の順で parse を試します。
func findValue(doc *goquery.Document, selectors []string, parse func(string) (float64, bool)) *float64 {
	for _, sel := range selectors {
		el := doc.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		if v, ok := parse(el.Text()); ok {
			return &v
		}
		if raw, exists := el.Attr("data-value"); exists {
			if v, ok := parse(raw); ok {
				return &v
			}
		}
	}
	return nil
}

// parseNumber は "1,234.56" のような表示値を数値に変換します。"N/A"、"--"、空文字は false。
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	switch strings.ToUpper(s) {
	case "", "N/A", "--", "-":
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

var abbreviations = map[byte]float64{'K': 1e3, 'M': 1e6, 'B': 1e9, 'T': 1e12}

// parseAbbreviated は "3.45T" や "812.6B" を数値に変換します。接尾辞がなければ parseNumber と同じです。
func parseAbbreviated(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	mult, ok := abbreviations[strings.ToUpper(s[len(s)-1:])[0]]
	if !ok {
		return parseNumber(s)
	}
	v, ok := parseNumber(s[:len(s)-1])
	if !ok {
		return 0, false
	}
	return v * mult, true
}

// parseDividendYield は "0.96 (0.42%)" の括弧内、または "0.42%" を比率（0.0042）に変換します。
func parseDividendYield(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "("); i >= 0 {
		s = strings.TrimSuffix(s[i+1:], ")")
	}
	s, hasPct := strings.CutSuffix(strings.TrimSpace(s), "%")
	if !hasPct {
		return 0, false
	}
	v, ok := parseNumber(s)
	if !ok || v < 0 {
		return 0, false
	}
	return v / 100, true
}
