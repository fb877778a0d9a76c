package model

// LimitConfidence states how much history backed an auto-limit suggestion.
type LimitConfidence string

// Limit confidence constants.
const (
	ConfidenceLow    LimitConfidence = "low"
	ConfidenceMedium LimitConfidence = "medium"
	ConfidenceHigh   LimitConfidence = "high"
)

// BehavioralLimits are habit-level caps derived for discretionary categories.
type BehavioralLimits struct {
	MaxDeliveriesPerWeek     int
	MaxLargePurchasesPerWeek int
	MaxSingleTransaction     float64
	NightPurchaseBan         bool
}

// AutoLimit is a suggested spending ceiling for one category, derived from a
// trailing three-month window.
type AutoLimit struct {
	Behavioral    *BehavioralLimits // Only set for discretionary categories
	Category      Category
	MonthlyLimit  float64
	WeeklyLimit   float64
	DailyLimit    float64 // Only set for the single largest non-protected driver
	Confidence    LimitConfidence
	HasDailyLimit bool
	IsProtected   bool // Essential categories are never suggested for cuts
}
