package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	PlanFree       = "FREE"
	PlanStarter    = "STARTER"
	PlanPro        = "PRO"
	PlanEnterprise = "ENTERPRISE"
	PlanPayAsYouGo = "PAY_AS_YOU_GO"
)

const (
	UsageTypeAnalysis         = "ANALYSIS"
	UsageTypeAPICall          = "API_CALL"
	UsageTypeFileUpload       = "FILE_UPLOAD"
	UsageTypeReportDownload   = "REPORT_DOWNLOAD"
	UsageTypeTokenTransaction = "TOKEN_TRANSACTION"
)

// MicroPerToken is the scale factor for PAYG billing: 1 token = 1,000,000
// micro-units, kept integral to avoid floating-point billing errors.
const MicroPerToken = 1_000_000

type PlanLimits struct {
	AnalysesPerDay    int64
	APICallsPerMonth  int64
	MaxFileSizeBytes  int64
	UnlimitedAnalyses bool
	UnlimitedAPICalls bool
}

// planLimits is the authoritative quota table per tier. Unknown tiers fall
// back to FREE, the most restrictive set.
var planLimits = map[string]PlanLimits{
	PlanFree: {
		AnalysesPerDay:   5,
		APICallsPerMonth: 100,
		MaxFileSizeBytes: 1 * 1024 * 1024,
	},
	PlanStarter: {
		AnalysesPerDay:   50,
		APICallsPerMonth: 1_000,
		MaxFileSizeBytes: 10 * 1024 * 1024,
	},
	PlanPro: {
		AnalysesPerDay:   500,
		APICallsPerMonth: 10_000,
		MaxFileSizeBytes: 100 * 1024 * 1024,
	},
	PlanEnterprise: {
		MaxFileSizeBytes:  500 * 1024 * 1024,
		UnlimitedAnalyses: true,
		UnlimitedAPICalls: true,
	},
	PlanPayAsYouGo: {
		// PAYG is metered by token balance, not fixed quotas.
		MaxFileSizeBytes:  100 * 1024 * 1024,
		UnlimitedAnalyses: true,
		UnlimitedAPICalls: true,
	},
}

// PlanPrices maps fixed subscription tiers to their monthly USD price.
var PlanPrices = map[string]decimal.Decimal{
	PlanStarter:    decimal.NewFromInt(39),
	PlanPro:        decimal.NewFromInt(99),
	PlanEnterprise: decimal.NewFromInt(299),
}

type TokenPackage struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	TokensMicro int64           `json:"tokens_micro"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
}

var TokenPackages = map[string]TokenPackage{
	"payg-10": {
		ID:          "payg-10",
		Name:        "10 tokens",
		TokensMicro: 10 * MicroPerToken,
		Price:       decimal.NewFromInt(10),
		Currency:    "USD",
	},
	"payg-50": {
		ID:          "payg-50",
		Name:        "50 tokens",
		TokensMicro: 50 * MicroPerToken,
		Price:       decimal.NewFromInt(45),
		Currency:    "USD",
	},
	"payg-200": {
		ID:          "payg-200",
		Name:        "200 tokens",
		TokensMicro: 200 * MicroPerToken,
		Price:       decimal.NewFromInt(160),
		Currency:    "USD",
	},
}

// GetPlanLimits resolves a plan string case-insensitively, defaulting to
// FREE limits for unrecognized plans.
func GetPlanLimits(plan string) PlanLimits {
	if limits, ok := planLimits[strings.ToUpper(plan)]; ok {
		return limits
	}
	return planLimits[PlanFree]
}

// GetMaxFileSize returns the upload ceiling in bytes for the given plan.
func GetMaxFileSize(plan string) int64 {
	return GetPlanLimits(plan).MaxFileSizeBytes
}

type (
	UsageCheckResult struct {
		Allowed   bool      `json:"allowed"`
		Used      int64     `json:"used"`
		Remaining int64     `json:"remaining"`
		Limit     int64     `json:"limit"` // -1 when unlimited
		Unlimited bool      `json:"unlimited"`
		ResetDate time.Time `json:"reset_date"`
	}

	UsageLimitsResponse struct {
		Plan     string           `json:"plan"`
		Analysis UsageCheckResult `json:"analysis"`
		APICall  UsageCheckResult `json:"api_call"`
	}
)

var (
	MessageSuccessGetUsageLimits = "usage limits retrieved successfully"
	MessageFailedGetUsageLimits  = "failed to retrieve usage limits"
)
