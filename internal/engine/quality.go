package engine

import "github.com/ericogr/technonomicon/internal/game"

// Quality thresholds for roll + modifier. A total equal to a threshold
// belongs to the higher tier.
const (
	thresholdCritical = 18
	thresholdHigh     = 14
	thresholdMedium   = 10
)

// ResolveQuality maps a raw d20 roll and a situational modifier to a tier.
func ResolveQuality(raw, modifier int) game.QualityTier {
	total := raw + modifier
	switch {
	case total >= thresholdCritical:
		return game.QualityCritical
	case total >= thresholdHigh:
		return game.QualityHigh
	case total >= thresholdMedium:
		return game.QualityMedium
	default:
		return game.QualityLow
	}
}
