package entity

// Verdict is the qualitative classification of the current price against the fair value.
type Verdict string

const (
	VerdictFair                Verdict = "fair"
	VerdictOvervalued          Verdict = "overvalued"
	VerdictStronglyOvervalued  Verdict = "strongly_overvalued"
	VerdictUndervalued         Verdict = "undervalued"
	VerdictStronglyUndervalued Verdict = "strongly_undervalued"
)

// IndustryLevel classifies a P/E against an industry-average P/E.
type IndustryLevel string

const (
	IndustryVeryOvervalued     IndustryLevel = "very_overvalued"
	IndustrySomewhatOvervalued IndustryLevel = "somewhat_overvalued"
	IndustryInLine             IndustryLevel = "in_line"
	IndustryUndervalued        IndustryLevel = "undervalued"
)

// IndustryComparison is the result of comparing the trailing P/E to a user-supplied industry average.
type IndustryComparison struct {
	IndustryPER float64       // industry-average P/E used as benchmark
	Ratio       float64       // trailing P/E divided by IndustryPER, a multiple
	Level       IndustryLevel // classification of Ratio
}

// ValuationResult is the complete output of one fair-value estimate.
type ValuationResult struct {
	Symbol             string
	EPS                float64
	PER                float64 // trailing P/E as reported
	AdjustedPER        float64 // P/E capped at 50
	GrowthRatePct      float64 // clamped growth rate in percent
	CurrentPrice       float64
	SuitablePrice      float64  // estimated fair value
	PEGRatio           *float64 // nil when growth rate <= 0
	PriceDiffRatioPct  float64  // |current - suitable| / suitable * 100
	Verdict            Verdict
	IndustryComparison *IndustryComparison // nil when no industry P/E was supplied
}
