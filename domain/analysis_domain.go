package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	AnalysisStatusProcessing = "PROCESSING"
	AnalysisStatusCompleted  = "COMPLETED"
	AnalysisStatusFailed     = "FAILED"
)

var (
	MessageSuccessCreateAnalysis   = "analysis submitted successfully"
	MessageSuccessGetAnalyses      = "analyses retrieved successfully"
	MessageSuccessGetAnalysis      = "analysis retrieved successfully"
	MessageSuccessCompleteAnalysis = "analysis result recorded successfully"
	MessageFailedCreateAnalysis    = "failed to submit analysis"
	MessageFailedGetAnalyses       = "failed to retrieve analyses"
	MessageFailedGetAnalysis       = "failed to retrieve analysis"
	MessageFailedCompleteAnalysis  = "failed to record analysis result"

	ErrAnalysisNotFound     = errors.New("analysis not found")
	ErrAnalysisCompleted    = errors.New("analysis already completed")
	ErrFileTooLarge         = errors.New("file exceeds plan upload limit")
	ErrDailyLimitReached    = errors.New("daily analysis limit reached")
	ErrUnauthorizedAccess   = errors.New("unauthorized access")
	ErrDetectionUnavailable = errors.New("detection service unavailable")
)

type (
	CreateAnalysisRequest struct {
		File *multipart.FileHeader `validate:"required"`
	}

	CompleteAnalysisRequest struct {
		Status         string  `json:"status" validate:"required,oneof=COMPLETED FAILED"`
		AnomaliesFound int     `json:"anomalies_found" validate:"min=0"`
		Accuracy       float64 `json:"accuracy" validate:"min=0,max=1"`
		Results        string  `json:"results"`
	}

	AnalysisResponse struct {
		ID             string     `json:"id"`
		Status         string     `json:"status"`
		FileName       string     `json:"file_name"`
		FileSize       int64      `json:"file_size"`
		FileURL        string     `json:"file_url,omitempty"`
		AnomaliesFound int        `json:"anomalies_found"`
		Accuracy       float64    `json:"accuracy"`
		Results        string     `json:"results,omitempty"`
		CompletedAt    *time.Time `json:"completed_at,omitempty"`
		CreatedAt      time.Time  `json:"created_at"`
	}
)
