package domain

// Tier classifies replacement progress for display. Tiers are ordered from
// worst to best so they compare naturally.
type Tier int

const (
	TierCritical Tier = iota
	TierPoor
	TierFair
	TierGood
	TierExcellent
)

// ProgressTier maps a replacement percentage to its display tier. Each
// threshold is inclusive on the lower bound of its tier.
func ProgressTier(percent float64) Tier {
	switch {
	case percent >= 75:
		return TierExcellent
	case percent >= 50:
		return TierGood
	case percent >= 25:
		return TierFair
	case percent >= 10:
		return TierPoor
	default:
		return TierCritical
	}
}

// String returns the user-facing tier label.
func (t Tier) String() string {
	switch t {
	case TierExcellent:
		return "Excellent"
	case TierGood:
		return "Good"
	case TierFair:
		return "Fair"
	case TierPoor:
		return "Poor"
	default:
		return "Critical"
	}
}

// Color returns the tier's display color as a hex string. The palette is part
// of the tier contract: every view color-codes progress the same way.
func (t Tier) Color() string {
	switch t {
	case TierExcellent:
		return "#4CAF50"
	case TierGood:
		return "#8BC34A"
	case TierFair:
		return "#FFC107"
	case TierPoor:
		return "#FF9800"
	default:
		return "#F44336"
	}
}
