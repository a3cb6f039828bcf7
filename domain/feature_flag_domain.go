package domain

import "errors"

var (
	MessageSuccessGetFlags   = "feature flags retrieved successfully"
	MessageSuccessUpsertFlag = "feature flag saved successfully"
	MessageFailedGetFlags    = "failed to retrieve feature flags"
	MessageFailedUpsertFlag  = "failed to save feature flag"

	ErrFlagNotFound = errors.New("feature flag not found")
)

type (
	UpsertFeatureFlagRequest struct {
		Name        string   `json:"name" validate:"required"`
		Description string   `json:"description"`
		Enabled     bool     `json:"enabled"`
		Beta        bool     `json:"beta"`
		Plans       []string `json:"plans" validate:"dive,oneof=FREE STARTER PRO ENTERPRISE PAY_AS_YOU_GO"`
		Category    string   `json:"category"`
	}

	FeatureFlagResponse struct {
		Key         string   `json:"key"`
		Name        string   `json:"name"`
		Description string   `json:"description,omitempty"`
		Enabled     bool     `json:"enabled"`
		Beta        bool     `json:"beta"`
		Plans       []string `json:"plans"`
		Category    string   `json:"category,omitempty"`
	}
)
