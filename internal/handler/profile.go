package handler

import (
	"errors"
	"net/http"

	"github.com/Poojabhadane4112/MumbaiHacks/internal/model"
	"github.com/Poojabhadane4112/MumbaiHacks/internal/usecase"
)

func (h *Handler) SubmitFinancialProfile(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "not authorized", nil)
		return
	}

	var req FinancialProfileRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	summary, err := h.profileUsecase.Submit(r.Context(), account.ID, profileFromRequest(&req))
	if err != nil {
		h.writeInternalError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, ProfileSummaryResponse{
		Success:       true,
		Message:       "financial profile saved",
		TotalIncome:   summary.TotalIncome,
		TotalExpenses: summary.TotalExpenses,
		NetIncome:     summary.NetIncome,
		SavingsRate:   summary.SavingsRate,
	})
}

func (h *Handler) GetFinancialProfile(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "not authorized", nil)
		return
	}

	profile, err := h.profileUsecase.Get(r.Context(), account.ID)
	if err != nil {
		if errors.Is(err, usecase.ErrProfileNotFound) {
			h.writeError(w, http.StatusNotFound, "financial profile not found", nil)
			return
		}
		h.writeInternalError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, FinancialProfileResponse{
		Success: true,
		Profile: profileView(profile),
	})
}

func (h *Handler) GetAISummary(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "not authorized", nil)
		return
	}

	summary, err := h.profileUsecase.AISummary(r.Context(), account.ID)
	if err != nil {
		if errors.Is(err, usecase.ErrProfileNotFound) {
			h.writeError(w, http.StatusNotFound, "financial profile not found", nil)
			return
		}
		h.writeInternalError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, AISummaryResponse{
		Success: true,
		Income: IncomeGroupView{
			EmploymentStatus:     summary.Income.EmploymentStatus,
			MonthlyIncome:        summary.Income.MonthlyIncome,
			AdditionalIncomeType: summary.Income.AdditionalIncomeType,
			AdditionalIncome:     summary.Income.AdditionalIncome,
			TotalIncome:          summary.Income.TotalIncome,
		},
		Expenses: ExpensesGroupView{
			HousingCost:    summary.Expenses.HousingCost,
			Utilities:      summary.Expenses.Utilities,
			Transportation: summary.Expenses.Transportation,
			Groceries:      summary.Expenses.Groceries,
			OtherExpenses:  summary.Expenses.OtherExpenses,
			TotalExpenses:  summary.Expenses.TotalExpenses,
		},
		Health: HealthGroupView{
			NetIncome:          summary.Health.NetIncome,
			SavingsRate:        summary.Health.SavingsRate,
			CurrentSavings:     summary.Health.CurrentSavings,
			EmergencyFund:      summary.Health.EmergencyFund,
			TotalDebt:          summary.Health.TotalDebt,
			MonthlyDebtPayment: summary.Health.MonthlyDebtPayment,
		},
		Goals: GoalsGroupView{
			Goals:         summary.Goals.Goals,
			SavingsGoal:   summary.Goals.SavingsGoal,
			TimeHorizon:   summary.Goals.TimeHorizon,
			RiskTolerance: summary.Goals.RiskTolerance,
		},
		Recommendations: summary.Recommendations,
	})
}

func profileFromRequest(req *FinancialProfileRequest) *model.FinancialProfile {
	return &model.FinancialProfile{
		EmploymentStatus:     req.EmploymentStatus,
		MonthlyIncome:        req.MonthlyIncome,
		AdditionalIncomeType: req.AdditionalIncomeType,
		AdditionalIncome:     req.AdditionalIncome,
		HousingCost:          req.HousingCost,
		Utilities:            req.Utilities,
		Transportation:       req.Transportation,
		Groceries:            req.Groceries,
		OtherExpenses:        req.OtherExpenses,
		TotalDebt:            req.TotalDebt,
		MonthlyDebtPayment:   req.MonthlyDebtPayment,
		CurrentSavings:       req.CurrentSavings,
		EmergencyFund:        req.EmergencyFund,
		Goals:                req.Goals,
		SavingsGoal:          req.SavingsGoal,
		TimeHorizon:          req.TimeHorizon,
		RiskTolerance:        req.RiskTolerance,
		TotalIncome:          req.TotalIncome,
		TotalExpenses:        req.TotalExpenses,
		NetIncome:            req.NetIncome,
	}
}

func profileView(p *model.FinancialProfile) *FinancialProfileView {
	return &FinancialProfileView{
		EmploymentStatus:     p.EmploymentStatus,
		MonthlyIncome:        p.MonthlyIncome,
		AdditionalIncomeType: p.AdditionalIncomeType,
		AdditionalIncome:     p.AdditionalIncome,
		HousingCost:          p.HousingCost,
		Utilities:            p.Utilities,
		Transportation:       p.Transportation,
		Groceries:            p.Groceries,
		OtherExpenses:        p.OtherExpenses,
		TotalDebt:            p.TotalDebt,
		MonthlyDebtPayment:   p.MonthlyDebtPayment,
		CurrentSavings:       p.CurrentSavings,
		EmergencyFund:        p.EmergencyFund,
		Goals:                p.Goals,
		SavingsGoal:          p.SavingsGoal,
		TimeHorizon:          p.TimeHorizon,
		RiskTolerance:        p.RiskTolerance,
		TotalIncome:          p.TotalIncome,
		TotalExpenses:        p.TotalExpenses,
		NetIncome:            p.NetIncome,
	}
}
