package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Poojabhadane4112/MumbaiHacks/internal/model"
)

// FinancialProfileRepository defines the interface for financial profile
// persistence. One row per user; a resubmission overwrites every field.
type FinancialProfileRepository interface {
	UpsertProfile(ctx context.Context, profile *model.FinancialProfile) (*model.FinancialProfile, error)
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*model.FinancialProfile, error)
}

type financialProfilePostgresRepository struct {
	db DBTX
}

// NewFinancialProfilePostgresRepository creates a new PostgreSQL repository
// for financial profiles.
func NewFinancialProfilePostgresRepository(db DBTX) FinancialProfileRepository {
	return &financialProfilePostgresRepository{db: db}
}

func (r *financialProfilePostgresRepository) UpsertProfile(ctx context.Context, profile *model.FinancialProfile) (*model.FinancialProfile, error) {
	goals, err := json.Marshal(profile.Goals)
	if err != nil {
		return nil, fmt.Errorf("failed to encode goals: %w", err)
	}

	query := `
		INSERT INTO financial_profiles (
			user_id, employment_status, monthly_income, additional_income_type, additional_income,
			housing_cost, utilities, transportation, groceries, other_expenses,
			total_debt, monthly_debt_payment, current_savings, emergency_fund,
			goals, savings_goal, time_horizon, risk_tolerance,
			total_income, total_expenses, net_income
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		ON CONFLICT (user_id) DO UPDATE SET
			employment_status = EXCLUDED.employment_status,
			monthly_income = EXCLUDED.monthly_income,
			additional_income_type = EXCLUDED.additional_income_type,
			additional_income = EXCLUDED.additional_income,
			housing_cost = EXCLUDED.housing_cost,
			utilities = EXCLUDED.utilities,
			transportation = EXCLUDED.transportation,
			groceries = EXCLUDED.groceries,
			other_expenses = EXCLUDED.other_expenses,
			total_debt = EXCLUDED.total_debt,
			monthly_debt_payment = EXCLUDED.monthly_debt_payment,
			current_savings = EXCLUDED.current_savings,
			emergency_fund = EXCLUDED.emergency_fund,
			goals = EXCLUDED.goals,
			savings_goal = EXCLUDED.savings_goal,
			time_horizon = EXCLUDED.time_horizon,
			risk_tolerance = EXCLUDED.risk_tolerance,
			total_income = EXCLUDED.total_income,
			total_expenses = EXCLUDED.total_expenses,
			net_income = EXCLUDED.net_income,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRowContext(ctx, query,
		profile.UserID, profile.EmploymentStatus, profile.MonthlyIncome,
		profile.AdditionalIncomeType, profile.AdditionalIncome,
		profile.HousingCost, profile.Utilities, profile.Transportation,
		profile.Groceries, profile.OtherExpenses,
		profile.TotalDebt, profile.MonthlyDebtPayment, profile.CurrentSavings, profile.EmergencyFund,
		goals, profile.SavingsGoal, profile.TimeHorizon, profile.RiskTolerance,
		profile.TotalIncome, profile.TotalExpenses, profile.NetIncome,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return profile, nil
}

func (r *financialProfilePostgresRepository) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*model.FinancialProfile, error) {
	query := `
		SELECT id, user_id, employment_status, monthly_income, additional_income_type, additional_income,
			housing_cost, utilities, transportation, groceries, other_expenses,
			total_debt, monthly_debt_payment, current_savings, emergency_fund,
			goals, savings_goal, time_horizon, risk_tolerance,
			total_income, total_expenses, net_income,
			created_at, updated_at
		FROM financial_profiles
		WHERE user_id = $1
	`

	profile := &model.FinancialProfile{}
	var goals []byte

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.EmploymentStatus, &profile.MonthlyIncome,
		&profile.AdditionalIncomeType, &profile.AdditionalIncome,
		&profile.HousingCost, &profile.Utilities, &profile.Transportation,
		&profile.Groceries, &profile.OtherExpenses,
		&profile.TotalDebt, &profile.MonthlyDebtPayment, &profile.CurrentSavings, &profile.EmergencyFund,
		&goals, &profile.SavingsGoal, &profile.TimeHorizon, &profile.RiskTolerance,
		&profile.TotalIncome, &profile.TotalExpenses, &profile.NetIncome,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(goals, &profile.Goals); err != nil {
		return nil, fmt.Errorf("failed to decode goals: %w", err)
	}

	return profile, nil
}
