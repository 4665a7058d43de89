package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vinixspb/vnxChooseApple-bot/internal/constant"
	"github.com/vinixspb/vnxChooseApple-bot/internal/dto"
	"github.com/vinixspb/vnxChooseApple-bot/internal/pkg/logger"
	"github.com/vinixspb/vnxChooseApple-bot/internal/repository/memory"
	"github.com/vinixspb/vnxChooseApple-bot/pkg/catalog"
)

// ISelectionService drives the narrowing dialogue for the transport
// adapter: one live session per chat user, advanced one stage per call.
type ISelectionService interface {
	Start(ctx context.Context, req *dto.StartSelectionRequest) (*dto.StageOptionsResponse, error)
	Options(ctx context.Context, userID string) (*dto.StageOptionsResponse, error)
	Choose(ctx context.Context, req *dto.ChooseRequest) (*dto.ChooseResponse, error)
	Reset(ctx context.Context, userID string) error
}

type selectionService struct {
	catalogService ICatalogService
	sessionRepo    *memory.SessionRepository
	leadPublisher  IPublisherService
	schema         catalog.Schema
	logger         logger.ILogger
}

func NewSelectionService(
	catalogService ICatalogService,
	sessionRepo *memory.SessionRepository,
	leadPublisher IPublisherService,
	schema catalog.Schema,
	log logger.ILogger,
) ISelectionService {
	return &selectionService{
		catalogService: catalogService,
		sessionRepo:    sessionRepo,
		leadPublisher:  leadPublisher,
		schema:         schema,
		logger:         log,
	}
}

// Start opens a fresh session at stage 0, implicitly discarding any prior
// incomplete session for the same user.
func (s *selectionService) Start(ctx context.Context, req *dto.StartSelectionRequest) (*dto.StageOptionsResponse, error) {
	records, err := s.catalogService.Load(ctx, req.Source)
	if err != nil {
		return nil, err
	}

	session := catalog.NewSession(req.UserId, req.Source, s.schema)
	session.Start()

	options, err := session.Options(records)
	if err != nil {
		// Zero options at stage 0: nothing to render, do not keep the
		// session around.
		s.sessionRepo.Delete(req.UserId)
		return nil, err
	}

	s.sessionRepo.Save(session)
	return stageResponse(session, options), nil
}

// Options re-presents the active stage, e.g. after a rejected choice.
func (s *selectionService) Options(ctx context.Context, userID string) (*dto.StageOptionsResponse, error) {
	session, found := s.sessionRepo.Get(userID)
	if !found || session.State != catalog.StateActive {
		return nil, catalog.ErrNoSession
	}

	records, err := s.catalogService.Load(ctx, session.Source)
	if err != nil {
		return nil, err
	}

	options, err := session.Options(records)
	if err != nil {
		return nil, err
	}
	return stageResponse(session, options), nil
}

func (s *selectionService) Choose(ctx context.Context, req *dto.ChooseRequest) (*dto.ChooseResponse, error) {
	session, found := s.sessionRepo.Get(req.UserId)
	if !found || session.State != catalog.StateActive {
		return nil, catalog.ErrNoSession
	}

	records, err := s.catalogService.Load(ctx, session.Source)
	if err != nil {
		return nil, err
	}

	item, err := session.Choose(records, req.Value)
	switch {
	case errors.Is(err, catalog.ErrInvalidChoice):
		// Stale or replayed callback; session stays put, the caller
		// re-presents the same stage.
		return nil, err

	case errors.Is(err, catalog.ErrNotFound):
		s.logger.Warn("SelectionService", "Completed filter matched no record", map[string]interface{}{
			"user_id": req.UserId,
			"filter":  session.Filter,
		})
		s.sessionRepo.Delete(req.UserId)
		return &dto.ChooseResponse{Status: constant.SelectionNotFound}, nil

	case err != nil:
		return nil, err
	}

	if item != nil {
		return s.complete(ctx, session, req, item)
	}

	// Advanced to the next stage.
	s.sessionRepo.Save(session)

	options, err := session.Options(records)
	if errors.Is(err, catalog.ErrNoOptions) {
		s.logger.Warn("SelectionService", "Stage has zero options, aborting flow", map[string]interface{}{
			"user_id": req.UserId,
			"stage":   session.Stage,
			"filter":  session.Filter,
		})
		s.sessionRepo.Delete(req.UserId)
		return &dto.ChooseResponse{Status: constant.SelectionNoOptions}, nil
	}
	if err != nil {
		return nil, err
	}

	return &dto.ChooseResponse{
		Status: constant.SelectionInProgress,
		Next:   stageResponse(session, options),
	}, nil
}

// Reset clears the user's session. Safe to call with no session at all.
func (s *selectionService) Reset(_ context.Context, userID string) error {
	if session, found := s.sessionRepo.Get(userID); found {
		session.Reset()
	}
	s.sessionRepo.Delete(userID)
	return nil
}

func (s *selectionService) complete(ctx context.Context, session *catalog.Session, req *dto.ChooseRequest, item *catalog.ResolvedItem) (*dto.ChooseResponse, error) {
	if item.Matches > 1 {
		// The schema is supposed to identify items uniquely; surface
		// dirty catalog data without failing the user flow.
		s.logger.Warn("SelectionService", "Completed filter matched multiple records", map[string]interface{}{
			"source":  session.Source,
			"filter":  item.Filter,
			"matches": item.Matches,
		})
	}

	lead := dto.LeadMessage{
		ChatUserId:   session.UserID,
		Username:     req.Username,
		FullName:     req.FullName,
		Source:       session.Source,
		Selection:    map[string]string(item.Filter),
		Price:        item.Price,
		Availability: item.Availability,
	}

	payload, err := json.Marshal(lead)
	if err != nil {
		return nil, fmt.Errorf("marshaling lead: %w", err)
	}
	if err := s.leadPublisher.Publish(ctx, payload); err != nil {
		// The user already got their confirmation path; log and move on,
		// losing the handoff would otherwise kill the whole dialogue.
		s.logger.Error("SelectionService", "Failed to publish lead", map[string]interface{}{
			"user_id": session.UserID,
			"error":   err.Error(),
		})
	}

	s.logger.Info("SelectionService", "Selection complete", map[string]interface{}{
		"user_id": session.UserID,
		"source":  session.Source,
		"price":   item.Price,
	})

	s.sessionRepo.Delete(session.UserID)

	return &dto.ChooseResponse{
		Status: constant.SelectionComplete,
		Item:   itemResponse(item),
	}, nil
}

func stageResponse(session *catalog.Session, options []string) *dto.StageOptionsResponse {
	attr, _ := session.CurrentAttribute()
	return &dto.StageOptionsResponse{
		Source:      session.Source,
		Stage:       session.Stage,
		TotalStages: len(session.Schema),
		Attribute:   attr,
		Options:     options,
		Filter:      map[string]string(session.Filter),
	}
}

func itemResponse(item *catalog.ResolvedItem) *dto.ResolvedItemResponse {
	return &dto.ResolvedItemResponse{
		Selection:    map[string]string(item.Filter),
		Price:        item.Price,
		Availability: item.Availability,
		Record:       map[string]string(item.Record),
	}
}
