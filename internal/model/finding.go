package model

import "time"

// Severity ranks detector findings and alerts.
type Severity string

// Severity constants, weakest first.
const (
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank returns a sortable weight for the severity; higher is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	}
	return 0
}

// FindingKind identifies which detector produced a finding.
type FindingKind string

// Finding kind constants.
const (
	FindingLargePurchase    FindingKind = "large_purchase"
	FindingUnusualRecipient FindingKind = "unusual_recipient"
	FindingDuplicateCharge  FindingKind = "duplicate_charge"
	FindingUnexpectedFee    FindingKind = "unexpected_fee"
	FindingEmotionalSpend   FindingKind = "emotional_spending"
	FindingHiddenRecurring  FindingKind = "hidden_recurring"
)

// Finding is a single detector observation over the transaction set.
type Finding struct {
	Date          time.Time
	Kind          FindingKind
	Severity      Severity
	Message       string
	TransactionID string
	Category      Category
	Amount        float64
	Confidence    float64 // 0..1, meaning depends on the detector
}

// AlertKind identifies the class of a synthesized alert.
type AlertKind string

// Alert kind constants.
const (
	AlertForecastNegative  AlertKind = "forecast_negative"
	AlertEmotionalSpending AlertKind = "emotional_spending"
	AlertCategoryCritical  AlertKind = "category_critical"
	AlertDangerousBehavior AlertKind = "dangerous_behavior"
	AlertFalseIncome       AlertKind = "false_income"
)

// Alert is a ranked, severity-tagged message synthesized from detector
// findings and monthly metrics.
type Alert struct {
	Kind        AlertKind
	Severity    Severity
	Title       string
	Message     string
	Category    Category
	Dismissible bool
}
