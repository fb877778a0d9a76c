package model

import "time"

// ForecastResult projects the running balance to the end of the current
// calendar month using a linear run-rate model. Values are approximate and
// consumers must label them as such.
type ForecastResult struct {
	CrossingDate      time.Time // When the balance is expected to go negative
	ProjectedBalance  float64
	DaysUntilCrossing int
	WillGoNegative    bool
}

// MonthlyMetrics is the month-to-date aggregate view of a transaction set.
// It is recomputed on demand and never stored.
type MonthlyMetrics struct {
	Forecast         ForecastResult
	CurrentBalance   float64
	BalanceAtStart   float64 // Balance at the first day of the current month
	MonthIncome      float64
	MonthExpenses    float64
	BurnRate         float64 // Month-to-date expenses / days elapsed
	WeeklyBurnRate   float64 // Trailing-7-day expenses / days in window
	BleedingRate     float64 // BurnRate - MonthIncome/30
	DaysElapsed      int
	DaysRemaining    int
}

// CategoryStatus grades a category's month-to-date spend against its goal.
type CategoryStatus string

// Category status constants.
const (
	StatusOK       CategoryStatus = "ok"
	StatusRisk     CategoryStatus = "risk"
	StatusCritical CategoryStatus = "critical"
)

// CategoryMetrics is the per-category month-to-date view.
type CategoryMetrics struct {
	Category        Category
	Status          CategoryStatus
	TotalSpent      float64
	Goal            float64
	PercentOfSalary float64
}
