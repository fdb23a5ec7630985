package game

import (
	"fmt"
	"strings"
)

// QualityTier is the discrete band an attempt's roll falls into. The zero
// value means "no tier" and is only used for optional roll floors.
type QualityTier int

const (
	QualityNone QualityTier = iota
	QualityLow
	QualityMedium
	QualityHigh
	QualityCritical
)

func (q QualityTier) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	case QualityCritical:
		return "critical"
	default:
		return ""
	}
}

// ParseQualityTier accepts the tier names plus the "god" and "supreme"
// aliases used by epic catalog entries, both of which mean critical.
func ParseQualityTier(s string) (QualityTier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return QualityNone, nil
	case "low":
		return QualityLow, nil
	case "medium":
		return QualityMedium, nil
	case "high":
		return QualityHigh, nil
	case "critical", "god", "supreme":
		return QualityCritical, nil
	}
	return QualityNone, fmt.Errorf("unknown quality tier %q", s)
}

func (q QualityTier) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

func (q *QualityTier) UnmarshalText(b []byte) error {
	v, err := ParseQualityTier(string(b))
	if err != nil {
		return err
	}
	*q = v
	return nil
}
