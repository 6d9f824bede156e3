package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/application/common"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/application/common/slogger"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/application/dto"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/config"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/entity"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/valueobject"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/port/outbound"
)

// SessionService creates an ADAMO session together with its results in a
// single transaction. This is the one write path requiring atomicity:
// results without their session are meaningless, so any failure rolls the
// whole group back and surfaces as a single failure.
type SessionService struct {
	adamo    outbound.Resolution[outbound.AdamoPorts]
	features config.FeatureConfig
}

// NewSessionService creates a SessionService.
func NewSessionService(adamo outbound.Resolution[outbound.AdamoPorts], features config.FeatureConfig) *SessionService {
	return &SessionService{adamo: adamo, features: features}
}

// CreateSessionWithResults validates the request, then creates the
// MAP_SESSION and every MAP_RESULT inside one transaction.
func (s *SessionService) CreateSessionWithResults(
	ctx context.Context,
	request dto.CreateSessionWithResultsRequest,
) (*dto.CreateSessionWithResultsResponse, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if !s.features.EnableDatabaseWrites {
		return &dto.CreateSessionWithResultsResponse{
			Status:  dto.SyncStatusDisabled,
			Message: common.ErrWritesDisabled.Error(),
		}, nil
	}

	adamo, ok := s.adamo.Get()
	if !ok {
		return &dto.CreateSessionWithResultsResponse{
			Status:  dto.SyncStatusNotConfigured,
			Message: s.adamo.Reason(),
		}, nil
	}

	session := sessionFromRequest(request.Session)

	err := adamo.UnitOfWork.WithinTransaction(ctx, func(sessions outbound.MapSessionRepository, results outbound.MapResultRepository) error {
		if err := sessions.Insert(ctx, &session); err != nil {
			return common.WrapServiceError(common.OpInsertSession, err)
		}
		for i, item := range request.Results {
			result, err := resultFromItem(item, session.SessionID, request.Session.CreatedBy)
			if err != nil {
				return fmt.Errorf("results[%d]: %w", i, err)
			}
			if err := results.Insert(ctx, &result); err != nil {
				return common.WrapServiceError(common.OpInsertResult, err)
			}
		}
		return nil
	})
	if err != nil {
		slogger.ErrorWithError(ctx, err, "Session with results creation rolled back", nil)
		return &dto.CreateSessionWithResultsResponse{
			Status:  dto.SyncStatusFail,
			Message: fmt.Sprintf("Transaction rolled back: %v", err),
		}, nil
	}

	slogger.Info(ctx, "Created session with results", slogger.Fields2(
		"session_id", session.SessionID, "results", len(request.Results)))

	return &dto.CreateSessionWithResultsResponse{
		Status:         dto.SyncStatusSuccess,
		SessionID:      session.SessionID,
		ResultsCreated: len(request.Results),
		Message:        fmt.Sprintf("Created session %d with %d results", session.SessionID, len(request.Results)),
	}, nil
}

func sessionFromRequest(req dto.CreateSessionRequest) entity.MapSession {
	now := time.Now()
	show := req.ShowInTaskList
	if show == "" {
		show = "N"
	}

	session := entity.MapSession{
		EvaluationDate: req.EvaluationDate,
		ShowInTaskList: show,
		SubStage:       req.SubStage,
		CreationDate:   &now,
	}
	setIfNotEmpty(&session.Stage, req.Stage)
	setIfNotEmpty(&session.Region, req.Region)
	setIfNotEmpty(&session.Segment, req.Segment)
	setIfNotEmpty(&session.Participants, req.Participants)
	setIfNotEmpty(&session.Category, req.Category)
	setIfNotEmpty(&session.CreatedBy, req.CreatedBy)
	return session
}

func resultFromItem(item dto.ResultItem, sessionID int64, createdBy string) (entity.MapResult, error) {
	grNumber, err := valueobject.NewGRNumber(item.GrNumber)
	if err != nil {
		return entity.MapResult{}, err
	}

	now := time.Now()
	result := entity.MapResult{
		SessionID:    sessionID,
		GrNumber:     grNumber,
		Result:       item.Result,
		CreationDate: &now,
	}
	setIfNotEmpty(&result.Odor, item.Odor)
	setIfNotEmpty(&result.BenchmarkComments, item.BenchmarkComments)
	setIfNotEmpty(&result.Dilution, item.Dilution)
	setIfNotEmpty(&result.Sponsor, item.Sponsor)
	setIfNotEmpty(&result.CreatedBy, createdBy)
	return result, nil
}

func setIfNotEmpty(target **string, value string) {
	if value != "" {
		v := value
		*target = &v
	}
}
