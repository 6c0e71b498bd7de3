package usecase

import (
	"math"

	"stock_valuation/internal/feature/valuation/domain"
	"stock_valuation/internal/feature/valuation/domain/entity"
)

const (
	// perCap は適用するPERの上限です。
	perCap = 50.0
	// pegOvervaluedThreshold を超えるPEG比率は成長に対して割高と判断します。
	pegOvervaluedThreshold = 2.0
	// overvaluedPERDiscount は割高判定時にPERへ掛ける係数（20%割引）です。
	overvaluedPERDiscount = 0.8
	// growthCredit は適正PERに加算する成長率の割合です。
	growthCredit = 0.5

	// fairBandPct 以内の乖離は適正価格とみなします。
	fairBandPct = 10.0
	// strongBandPct を超える乖離は「大幅に」割高/割安とみなします。
	strongBandPct = 30.0
)

// Estimate computes the PEG-adjusted fair value for one symbol.
//
// industryPER <= 0 means no industry benchmark was supplied.
// It returns domain.ErrDataUnavailable when EPS or P/E is missing or the current
// price is not positive, and domain.ErrDivision when the fair value is exactly zero.
// It either returns a complete result or an error; nothing is partially applied.
func Estimate(f entity.FundamentalsSnapshot, currentPrice, growthRatePct, industryPER float64) (entity.ValuationResult, error) {
	eps, per, ok := f.Values()
	if !ok {
		return entity.ValuationResult{}, domain.ErrDataUnavailable
	}
	if !(currentPrice > 0) || math.IsInf(currentPrice, 0) {
		return entity.ValuationResult{}, domain.ErrDataUnavailable
	}

	adjustedPER := min(per, perCap)

	var (
		suitable float64
		peg      *float64
	)
	if growthRatePct > 0 {
		p := adjustedPER / growthRatePct
		peg = &p
		if p > pegOvervaluedThreshold {
			suitable = eps * (adjustedPER * overvaluedPERDiscount)
		} else {
			suitable = eps * (adjustedPER + growthRatePct*growthCredit)
		}
	} else {
		suitable = eps * adjustedPER
	}

	if suitable == 0 {
		return entity.ValuationResult{}, domain.ErrDivision
	}
	diffPct := math.Abs(currentPrice-suitable) / suitable * 100

	return entity.ValuationResult{
		Symbol:             f.Symbol,
		EPS:                eps,
		PER:                per,
		AdjustedPER:        adjustedPER,
		GrowthRatePct:      growthRatePct,
		CurrentPrice:       currentPrice,
		SuitablePrice:      suitable,
		PEGRatio:           peg,
		PriceDiffRatioPct:  diffPct,
		Verdict:            classifyVerdict(currentPrice, suitable, diffPct),
		IndustryComparison: compareIndustry(per, industryPER),
	}, nil
}

// classifyVerdict は乖離率と価格の上下関係から判定を返します。判定順序は固定です。
func classifyVerdict(currentPrice, suitable, diffPct float64) entity.Verdict {
	switch {
	case diffPct <= fairBandPct:
		return entity.VerdictFair
	case currentPrice > suitable && diffPct > strongBandPct:
		return entity.VerdictStronglyOvervalued
	case currentPrice > suitable:
		return entity.VerdictOvervalued
	case diffPct > strongBandPct:
		return entity.VerdictStronglyUndervalued
	default:
		return entity.VerdictUndervalued
	}
}

// compareIndustry はPERを業種平均PERと比較します。industryPERが0以下ならnilを返します。
func compareIndustry(per, industryPER float64) *entity.IndustryComparison {
	if !(industryPER > 0) {
		return nil
	}
	ratio := per / industryPER

	var level entity.IndustryLevel
	switch {
	case ratio > 1.5:
		level = entity.IndustryVeryOvervalued
	case ratio > 1.2:
		level = entity.IndustrySomewhatOvervalued
	case ratio > 0.8:
		level = entity.IndustryInLine
	default:
		level = entity.IndustryUndervalued
	}
	return &entity.IndustryComparison{IndustryPER: industryPER, Ratio: ratio, Level: level}
}
