package service

import (
	"context"
	"fmt"
	"time"

	"github.com/PsySom/ready-set-prompt/internal/models"
	"github.com/PsySom/ready-set-prompt/internal/repository"
)

type journalService struct {
	journalRepo repository.JournalRepository
	now         func() time.Time
}

// NewJournalService creates a new journal service
func NewJournalService(journalRepo repository.JournalRepository) JournalService {
	return &journalService{
		journalRepo: journalRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *journalService) StartSession(ctx context.Context, userID string, req *models.StartJournalSessionRequest) (*models.JournalSession, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("invalid session type %q", string(req.Type))
	}

	session := &models.JournalSession{
		UserID:    userID,
		Type:      req.Type,
		StartedAt: s.now(),
	}
	return s.journalRepo.CreateSession(ctx, session)
}

func (s *journalService) GetSession(ctx context.Context, userID, sessionID string) (*models.JournalSession, error) {
	session, err := s.journalRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, fmt.Errorf("journal session not found")
	}
	return session, nil
}

func (s *journalService) GetSessions(ctx context.Context, userID string, since time.Time) ([]models.JournalSession, error) {
	return s.journalRepo.GetSessionsByUserIDSince(ctx, userID, since)
}

func (s *journalService) AppendMessage(ctx context.Context, userID, sessionID string, req *models.AppendJournalMessageRequest) (*models.JournalMessage, error) {
	session, err := s.GetSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.EndedAt != nil {
		return nil, fmt.Errorf("journal session already ended")
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("invalid message type %q", string(req.Type))
	}

	msg := &models.JournalMessage{
		SessionID: sessionID,
		Type:      req.Type,
		Content:   req.Content,
	}
	return s.journalRepo.AppendMessage(ctx, msg)
}

func (s *journalService) EndSession(ctx context.Context, userID, sessionID string) (*models.JournalSession, error) {
	session, err := s.GetSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.EndedAt != nil {
		return nil, fmt.Errorf("journal session already ended")
	}
	return s.journalRepo.EndSession(ctx, sessionID, s.now())
}
