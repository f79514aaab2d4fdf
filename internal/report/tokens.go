// Package report maps classification tiers to presentation tokens for the console renderer.
package report

import (
	"fmt"

	"github.com/temirov/projctl/internal/divergence"
	"github.com/temirov/projctl/internal/manifest"
)

const (
	counterTemplateConstant          = "%04d"
	cleanSymbolConstant              = "    "
	queryFailedSymbolConstant        = "FAIL"
	unspecifiedEditionSymbolConstant = "----"
	compliantSymbolConstant          = "R"
	profileMismatchedSymbolConstant  = "R-"
	profileMissingSymbolConstant     = "R!"
)

// ColorClass is the semantic color of a token; the renderer chooses concrete colors.
type ColorClass int

const (
	ColorNeutral ColorClass = iota
	ColorPositive
	ColorWarning
	ColorNegative
)

func (class ColorClass) String() string {
	switch class {
	case ColorPositive:
		return "positive"
	case ColorWarning:
		return "warning"
	case ColorNegative:
		return "negative"
	default:
		return "neutral"
	}
}

// Token is a symbol with its color class.
type Token struct {
	Symbol string
	Color  ColorClass
}

// ActionOutcome is the result of a maintenance action run in a project directory.
type ActionOutcome int

const (
	ActionNotRun ActionOutcome = iota
	ActionSucceeded
	ActionFailed
)

// ComplianceToken renders the release marker column.
func ComplianceToken(tier manifest.ComplianceTier) Token {
	switch tier {
	case manifest.ComplianceCompliant:
		return Token{Symbol: compliantSymbolConstant, Color: ColorPositive}
	case manifest.ComplianceProfileMismatched:
		return Token{Symbol: profileMismatchedSymbolConstant, Color: ColorNegative}
	case manifest.ComplianceProfileMissing:
		return Token{Symbol: profileMissingSymbolConstant, Color: ColorWarning}
	default:
		return Token{Color: ColorNeutral}
	}
}

// EditionToken renders the edition column. A nil edition always renders as unspecified.
func EditionToken(tier manifest.EditionTier, edition *string) Token {
	if edition == nil {
		return Token{Symbol: unspecifiedEditionSymbolConstant, Color: ColorWarning}
	}
	switch tier {
	case manifest.EditionCurrent:
		return Token{Symbol: *edition, Color: ColorNeutral}
	case manifest.EditionOutdated:
		return Token{Symbol: *edition, Color: ColorWarning}
	default:
		return Token{Symbol: unspecifiedEditionSymbolConstant, Color: ColorWarning}
	}
}

// DivergenceToken renders the status column of a repository line.
func DivergenceToken(divergenceReport divergence.Report) Token {
	switch divergenceReport.Tier {
	case divergence.TierDiverged:
		return Token{Symbol: fmt.Sprintf(counterTemplateConstant, divergenceReport.ChangeCount), Color: ColorWarning}
	case divergence.TierQueryFailed:
		return Token{Symbol: queryFailedSymbolConstant, Color: ColorNegative}
	default:
		return Token{Symbol: cleanSymbolConstant, Color: ColorPositive}
	}
}

// ActionToken renders the 1-based project position, colored by the outcome of the action run for it.
func ActionToken(position int, outcome ActionOutcome) Token {
	color := ColorNeutral
	if outcome == ActionFailed {
		color = ColorNegative
	}
	return Token{Symbol: fmt.Sprintf(counterTemplateConstant, position), Color: color}
}
