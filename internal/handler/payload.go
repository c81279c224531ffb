package handler

// Request and response payloads for the onboarding API.

type SignupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Mobile   string `json:"mobile"   validate:"omitempty,min=10"`
	Password string `json:"password" validate:"required,min=8"`
	Passkey  string `json:"passkey"  validate:"omitempty,min=8"`
}

type SignupResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId"`
	Token   string `json:"token"`
}

type SigninRequest struct {
	Email      string `json:"email"    validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

type SigninResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Token   string `json:"token"`
}

type AccountResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

type ForgotPasswordRequest struct {
	Mobile string `json:"mobile" validate:"required,min=10"`
}

type ForgotPasswordEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type OTPChallengeResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	OTPToken  string `json:"otpToken"`
	ExpiresIn int    `json:"expiresIn"`
}

type VerifyOTPRequest struct {
	Mobile   string `json:"mobile"   validate:"omitempty,min=10"`
	Email    string `json:"email"    validate:"omitempty,email"`
	OTP      string `json:"otp"      validate:"required,len=6,numeric"`
	OTPToken string `json:"otpToken" validate:"required"`
}

type VerifyOTPResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	Code              string `json:"code"`
	RemainingAttempts *int   `json:"remainingAttempts,omitempty"`
}

type VerifyPasskeyRequest struct {
	Email   string `json:"email"   validate:"required,email"`
	Passkey string `json:"passkey" validate:"required"`
}

type VerifyPasskeyResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	PasskeyToken string `json:"passkeyToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

type ResetPasswordRequest struct {
	Mobile       string `json:"mobile"       validate:"omitempty,min=10"`
	Email        string `json:"email"        validate:"omitempty,email"`
	NewPassword  string `json:"newPassword"  validate:"required,min=8"`
	OTPToken     string `json:"otpToken"     validate:"omitempty"`
	PasskeyToken string `json:"passkeyToken" validate:"omitempty"`
}

type SetPasskeyRequest struct {
	Email   string `json:"email"   validate:"required,email"`
	Passkey string `json:"passkey" validate:"required,min=8"`
}

type FinancialProfileRequest struct {
	EmploymentStatus     string  `json:"employmentStatus"     validate:"required"`
	MonthlyIncome        float64 `json:"monthlyIncome"        validate:"gte=0"`
	AdditionalIncomeType *string `json:"additionalIncomeType"`
	AdditionalIncome     float64 `json:"additionalIncome"     validate:"gte=0"`

	HousingCost    float64 `json:"housingCost"    validate:"gte=0"`
	Utilities      float64 `json:"utilities"      validate:"gte=0"`
	Transportation float64 `json:"transportation" validate:"gte=0"`
	Groceries      float64 `json:"groceries"      validate:"gte=0"`
	OtherExpenses  float64 `json:"otherExpenses"  validate:"gte=0"`

	TotalDebt          float64 `json:"totalDebt"          validate:"gte=0"`
	MonthlyDebtPayment float64 `json:"monthlyDebtPayment" validate:"gte=0"`
	CurrentSavings     float64 `json:"currentSavings"     validate:"gte=0"`
	EmergencyFund      float64 `json:"emergencyFund"      validate:"gte=0"`

	Goals         []string `json:"goals"`
	SavingsGoal   float64  `json:"savingsGoal"   validate:"gte=0"`
	TimeHorizon   string   `json:"timeHorizon"`
	RiskTolerance string   `json:"riskTolerance"`

	// Derived totals are computed by the submitting client and stored as-is.
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetIncome     float64 `json:"netIncome"`
}

type ProfileSummaryResponse struct {
	Success       bool    `json:"success"`
	Message       string  `json:"message"`
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetIncome     float64 `json:"netIncome"`
	SavingsRate   string  `json:"savingsRate"`
}

type FinancialProfileResponse struct {
	Success bool                  `json:"success"`
	Profile *FinancialProfileView `json:"profile"`
}

type FinancialProfileView struct {
	EmploymentStatus     string   `json:"employmentStatus"`
	MonthlyIncome        float64  `json:"monthlyIncome"`
	AdditionalIncomeType *string  `json:"additionalIncomeType"`
	AdditionalIncome     float64  `json:"additionalIncome"`
	HousingCost          float64  `json:"housingCost"`
	Utilities            float64  `json:"utilities"`
	Transportation       float64  `json:"transportation"`
	Groceries            float64  `json:"groceries"`
	OtherExpenses        float64  `json:"otherExpenses"`
	TotalDebt            float64  `json:"totalDebt"`
	MonthlyDebtPayment   float64  `json:"monthlyDebtPayment"`
	CurrentSavings       float64  `json:"currentSavings"`
	EmergencyFund        float64  `json:"emergencyFund"`
	Goals                []string `json:"goals"`
	SavingsGoal          float64  `json:"savingsGoal"`
	TimeHorizon          string   `json:"timeHorizon"`
	RiskTolerance        string   `json:"riskTolerance"`
	TotalIncome          float64  `json:"totalIncome"`
	TotalExpenses        float64  `json:"totalExpenses"`
	NetIncome            float64  `json:"netIncome"`
}

type AISummaryResponse struct {
	Success         bool              `json:"success"`
	Income          IncomeGroupView   `json:"income"`
	Expenses        ExpensesGroupView `json:"expenses"`
	Health          HealthGroupView   `json:"health"`
	Goals           GoalsGroupView    `json:"goals"`
	Recommendations []string          `json:"recommendations"`
}

type IncomeGroupView struct {
	EmploymentStatus     string  `json:"employmentStatus"`
	MonthlyIncome        float64 `json:"monthlyIncome"`
	AdditionalIncomeType *string `json:"additionalIncomeType"`
	AdditionalIncome     float64 `json:"additionalIncome"`
	TotalIncome          float64 `json:"totalIncome"`
}

type ExpensesGroupView struct {
	HousingCost    float64 `json:"housingCost"`
	Utilities      float64 `json:"utilities"`
	Transportation float64 `json:"transportation"`
	Groceries      float64 `json:"groceries"`
	OtherExpenses  float64 `json:"otherExpenses"`
	TotalExpenses  float64 `json:"totalExpenses"`
}

type HealthGroupView struct {
	NetIncome          float64 `json:"netIncome"`
	SavingsRate        string  `json:"savingsRate"`
	CurrentSavings     float64 `json:"currentSavings"`
	EmergencyFund      float64 `json:"emergencyFund"`
	TotalDebt          float64 `json:"totalDebt"`
	MonthlyDebtPayment float64 `json:"monthlyDebtPayment"`
}

type GoalsGroupView struct {
	Goals         []string `json:"goals"`
	SavingsGoal   float64  `json:"savingsGoal"`
	TimeHorizon   string   `json:"timeHorizon"`
	RiskTolerance string   `json:"riskTolerance"`
}
