package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Poojabhadane4112/MumbaiHacks/internal/model"
	"github.com/Poojabhadane4112/MumbaiHacks/internal/repository"
)

// Recommendation thresholds. Fixed constants of the design.
const (
	emergencyFundMonths = 3
	debtIncomeMonths    = 12
)

var ErrProfileNotFound = errors.New("financial profile not found")

// ProfileSummary is returned after a profile submission.
type ProfileSummary struct {
	TotalIncome   float64
	TotalExpenses float64
	NetIncome     float64
	SavingsRate   string
}

// AISummary reshapes a stored profile into grouped views with recommendation
// tags appended.
type AISummary struct {
	Income          IncomeGroup
	Expenses        ExpensesGroup
	Health          HealthGroup
	Goals           GoalsGroup
	Recommendations []string
}

type IncomeGroup struct {
	EmploymentStatus     string
	MonthlyIncome        float64
	AdditionalIncomeType *string
	AdditionalIncome     float64
	TotalIncome          float64
}

type ExpensesGroup struct {
	HousingCost    float64
	Utilities      float64
	Transportation float64
	Groceries      float64
	OtherExpenses  float64
	TotalExpenses  float64
}

type HealthGroup struct {
	NetIncome          float64
	SavingsRate        string
	CurrentSavings     float64
	EmergencyFund      float64
	TotalDebt          float64
	MonthlyDebtPayment float64
}

type GoalsGroup struct {
	Goals         []string
	SavingsGoal   float64
	TimeHorizon   string
	RiskTolerance string
}

// ProfileUsecase defines the financial profile intake operations.
type ProfileUsecase interface {
	// Submit upserts the profile for the user, overwriting all fields on
	// resubmission, and returns a summary of the stored totals.
	Submit(ctx context.Context, userID uuid.UUID, profile *model.FinancialProfile) (*ProfileSummary, error)

	// Get returns the stored profile or ErrProfileNotFound.
	Get(ctx context.Context, userID uuid.UUID) (*model.FinancialProfile, error)

	// AISummary returns the grouped view with recommendation tags, or
	// ErrProfileNotFound.
	AISummary(ctx context.Context, userID uuid.UUID) (*AISummary, error)
}

type profileUsecase struct {
	profileRepo repository.FinancialProfileRepository
}

// NewProfileUsecase creates a new instance of ProfileUsecase.
func NewProfileUsecase(profileRepo repository.FinancialProfileRepository) ProfileUsecase {
	return &profileUsecase{profileRepo: profileRepo}
}

func (u *profileUsecase) Submit(ctx context.Context, userID uuid.UUID, profile *model.FinancialProfile) (*ProfileSummary, error) {
	profile.UserID = userID

	stored, err := u.profileRepo.UpsertProfile(ctx, profile)
	if err != nil {
		return nil, err
	}

	return &ProfileSummary{
		TotalIncome:   stored.TotalIncome,
		TotalExpenses: stored.TotalExpenses,
		NetIncome:     stored.NetIncome,
		SavingsRate:   savingsRate(stored.NetIncome, stored.TotalIncome),
	}, nil
}

func (u *profileUsecase) Get(ctx context.Context, userID uuid.UUID) (*model.FinancialProfile, error) {
	profile, err := u.profileRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	return profile, nil
}

func (u *profileUsecase) AISummary(ctx context.Context, userID uuid.UUID) (*AISummary, error) {
	p, err := u.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &AISummary{
		Income: IncomeGroup{
			EmploymentStatus:     p.EmploymentStatus,
			MonthlyIncome:        p.MonthlyIncome,
			AdditionalIncomeType: p.AdditionalIncomeType,
			AdditionalIncome:     p.AdditionalIncome,
			TotalIncome:          p.TotalIncome,
		},
		Expenses: ExpensesGroup{
			HousingCost:    p.HousingCost,
			Utilities:      p.Utilities,
			Transportation: p.Transportation,
			Groceries:      p.Groceries,
			OtherExpenses:  p.OtherExpenses,
			TotalExpenses:  p.TotalExpenses,
		},
		Health: HealthGroup{
			NetIncome:          p.NetIncome,
			SavingsRate:        savingsRate(p.NetIncome, p.TotalIncome),
			CurrentSavings:     p.CurrentSavings,
			EmergencyFund:      p.EmergencyFund,
			TotalDebt:          p.TotalDebt,
			MonthlyDebtPayment: p.MonthlyDebtPayment,
		},
		Goals: GoalsGroup{
			Goals:         p.Goals,
			SavingsGoal:   p.SavingsGoal,
			TimeHorizon:   p.TimeHorizon,
			RiskTolerance: p.RiskTolerance,
		},
		Recommendations: recommendations(p),
	}

	return summary, nil
}

func recommendations(p *model.FinancialProfile) []string {
	tags := []string{}

	if p.EmergencyFund < emergencyFundMonths*p.TotalExpenses {
		tags = append(tags, "emergency_fund")
	}
	if p.NetIncome < 0 {
		tags = append(tags, "expense_reduction")
	}
	if p.TotalDebt > debtIncomeMonths*p.MonthlyIncome {
		tags = append(tags, "debt_management")
	}

	return tags
}

// savingsRate formats net/total income as a percentage with two decimals,
// guarded to "0.00" when total income is zero.
func savingsRate(netIncome, totalIncome float64) string {
	if totalIncome == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", netIncome/totalIncome*100)
}
