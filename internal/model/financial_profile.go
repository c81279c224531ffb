package model

import (
	"time"

	"github.com/google/uuid"
)

// FinancialProfile is the one-to-one financial snapshot for a user. The three
// derived totals are supplied by the submitting client and stored as-is; the
// store does not recompute them.
type FinancialProfile struct {
	ID     int64
	UserID uuid.UUID

	EmploymentStatus     string
	MonthlyIncome        float64
	AdditionalIncomeType *string
	AdditionalIncome     float64

	HousingCost    float64
	Utilities      float64
	Transportation float64
	Groceries      float64
	OtherExpenses  float64

	TotalDebt          float64
	MonthlyDebtPayment float64
	CurrentSavings     float64
	EmergencyFund      float64

	Goals         []string
	SavingsGoal   float64
	TimeHorizon   string
	RiskTolerance string

	TotalIncome   float64
	TotalExpenses float64
	NetIncome     float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
