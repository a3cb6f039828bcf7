package analysis

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/entities"
	"EchoForge-Backend/internal/utils"
	"EchoForge-Backend/internal/utils/storage"
	"EchoForge-Backend/pkg/plan"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	AnalysisService interface {
		CreateAnalysis(ctx context.Context, req domain.CreateAnalysisRequest, userID, userPlan string) (*domain.AnalysisResponse, error)
		CompleteAnalysis(ctx context.Context, id string, req domain.CompleteAnalysisRequest) error
		GetUserAnalyses(ctx context.Context, userID string, page, limit int) ([]*domain.AnalysisResponse, int64, error)
		GetAnalysisByID(ctx context.Context, id, userID string) (*domain.AnalysisResponse, error)
	}

	analysisService struct {
		analysisRepository AnalysisRepository
		planService        plan.PlanService
		s3                 storage.AwsS3
	}
)

func NewAnalysisService(analysisRepository AnalysisRepository, planService plan.PlanService, s3 storage.AwsS3) AnalysisService {
	return &analysisService{
		analysisRepository: analysisRepository,
		planService:        planService,
		s3:                 s3,
	}
}

func (s *analysisService) CreateAnalysis(ctx context.Context, req domain.CreateAnalysisRequest, userID, userPlan string) (*domain.AnalysisResponse, error) {
	if req.File.Size > domain.GetMaxFileSize(userPlan) {
		return nil, domain.ErrFileTooLarge
	}

	check, err := s.planService.CheckUsageLimit(ctx, userID, userPlan, domain.UsageTypeAnalysis)
	if err != nil {
		return nil, err
	}
	if !check.Allowed {
		return nil, domain.ErrDailyLimitReached
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	analysisID := uuid.New()
	objectKey, err := s.s3.UploadFile(
		fmt.Sprintf("analysis-%s", analysisID.String()),
		req.File,
		"analyses",
		storage.AllowDocument...,
	)
	if err != nil {
		return nil, err
	}
	fileURL := s.s3.GetPublicLinkKey(objectKey)

	now := time.Now()
	row := &entities.Analysis{
		ID:       analysisID,
		UserID:   userUUID,
		Status:   domain.AnalysisStatusProcessing,
		FileName: req.File.Filename,
		FileSize: req.File.Size,
		FileURL:  fileURL,
		Timestamp: entities.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := s.analysisRepository.CreateAnalysis(ctx, row); err != nil {
		return nil, err
	}

	if err := s.submitDetection(analysisID.String(), fileURL); err != nil {
		// The row stays PROCESSING; the detection service retries via the
		// completion callback once reachable again.
		log.Errorf("detection submission failed for analysis %s: %v", analysisID, err)
	}

	if err := s.analysisRepository.IncrementAnalysesCount(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.planService.RecordUsage(ctx, userID, domain.UsageTypeAnalysis, 1, ""); err != nil {
		return nil, err
	}

	return toAnalysisResponse(row), nil
}

// submitDetection hands the uploaded file to the external anomaly detection
// API. The API is opaque: request out, completion callback in.
func (s *analysisService) submitDetection(analysisID, fileURL string) error {
	baseURL := utils.GetConfig("ECHOFORGE_API_URL")
	if baseURL == "" {
		return domain.ErrDetectionUnavailable
	}

	payload, err := json.Marshal(map[string]string{
		"analysis_id": analysisID,
		"file_url":    fileURL,
	})
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequest(http.MethodPost, baseURL+"/v1/detect", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-API-Key", utils.GetConfig("ECHOFORGE_API_KEY"))

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("detection API returned status %d", resp.StatusCode)
	}
	return nil
}

func (s *analysisService) CompleteAnalysis(ctx context.Context, id string, req domain.CompleteAnalysisRequest) error {
	row, err := s.analysisRepository.GetAnalysisByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrAnalysisNotFound
		}
		return err
	}

	if row.Status != domain.AnalysisStatusProcessing {
		return domain.ErrAnalysisCompleted
	}

	now := time.Now()
	row.Status = req.Status
	row.AnomaliesFound = req.AnomaliesFound
	row.Accuracy = req.Accuracy
	row.Results = req.Results
	row.CompletedAt = &now
	row.UpdatedAt = now

	return s.analysisRepository.UpdateAnalysis(ctx, row)
}

func (s *analysisService) GetUserAnalyses(ctx context.Context, userID string, page, limit int) ([]*domain.AnalysisResponse, int64, error) {
	rows, count, err := s.analysisRepository.GetUserAnalyses(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.AnalysisResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, toAnalysisResponse(row))
	}
	return result, count, nil
}

func (s *analysisService) GetAnalysisByID(ctx context.Context, id, userID string) (*domain.AnalysisResponse, error) {
	row, err := s.analysisRepository.GetAnalysisByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, err
	}

	if row.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}

	return toAnalysisResponse(row), nil
}

func toAnalysisResponse(row *entities.Analysis) *domain.AnalysisResponse {
	return &domain.AnalysisResponse{
		ID:             row.ID.String(),
		Status:         row.Status,
		FileName:       row.FileName,
		FileSize:       row.FileSize,
		FileURL:        row.FileURL,
		AnomaliesFound: row.AnomaliesFound,
		Accuracy:       row.Accuracy,
		Results:        row.Results,
		CompletedAt:    row.CompletedAt,
		CreatedAt:      row.CreatedAt,
	}
}
