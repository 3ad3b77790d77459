package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/PsySom/ready-set-prompt/internal/models"
	"github.com/PsySom/ready-set-prompt/pkg/supabase"
)

type journalRepository struct {
	client *supabase.Client
}

// NewJournalRepository creates a new journal repository
func NewJournalRepository(client *supabase.Client) JournalRepository {
	return &journalRepository{client: client}
}

func (r *journalRepository) CreateSession(ctx context.Context, session *models.JournalSession) (*models.JournalSession, error) {
	data := map[string]interface{}{
		"user_id":      session.UserID,
		"session_type": session.Type,
		"started_at":   session.StartedAt.Format(time.RFC3339),
	}

	body, err := r.client.Insert("journal_sessions", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create journal session: %w", err)
	}

	var sessions []models.JournalSession
	if err := json.Unmarshal(body, &sessions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(sessions) == 0 {
		return nil, fmt.Errorf("no journal session returned")
	}

	return &sessions[0], nil
}

func (r *journalRepository) GetSessionByID(ctx context.Context, id string) (*models.JournalSession, error) {
	query := map[string]interface{}{
		"id":     fmt.Sprintf("eq.%s", id),
		"select": "*,journal_messages(*)",
	}

	body, err := r.client.Query("journal_sessions", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get journal session: %w", err)
	}

	var sessions []models.JournalSession
	if err := json.Unmarshal(body, &sessions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(sessions) == 0 {
		return nil, fmt.Errorf("journal session not found")
	}

	return &sessions[0], nil
}

func (r *journalRepository) GetSessionsByUserIDSince(ctx context.Context, userID string, since time.Time) ([]models.JournalSession, error) {
	query := map[string]interface{}{
		"user_id":    fmt.Sprintf("eq.%s", userID),
		"started_at": fmt.Sprintf("gte.%s", since.Format(time.RFC3339)),
		"select":     "*,journal_messages(*)",
		"order":      "started_at.desc",
	}

	body, err := r.client.Query("journal_sessions", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get journal sessions: %w", err)
	}

	var sessions []models.JournalSession
	if err := json.Unmarshal(body, &sessions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return sessions, nil
}

func (r *journalRepository) AppendMessage(ctx context.Context, msg *models.JournalMessage) (*models.JournalMessage, error) {
	data := map[string]interface{}{
		"session_id":   msg.SessionID,
		"message_type": msg.Type,
		"content":      msg.Content,
	}

	body, err := r.client.Insert("journal_messages", data)
	if err != nil {
		return nil, fmt.Errorf("failed to append journal message: %w", err)
	}

	var messages []models.JournalMessage
	if err := json.Unmarshal(body, &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(messages) == 0 {
		return nil, fmt.Errorf("no journal message returned")
	}

	return &messages[0], nil
}

func (r *journalRepository) EndSession(ctx context.Context, id string, endedAt time.Time) (*models.JournalSession, error) {
	data := map[string]interface{}{
		"ended_at": endedAt.Format(time.RFC3339),
	}

	body, err := r.client.Update("journal_sessions", id, data)
	if err != nil {
		return nil, fmt.Errorf("failed to end journal session: %w", err)
	}

	var sessions []models.JournalSession
	if err := json.Unmarshal(body, &sessions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(sessions) == 0 {
		return nil, fmt.Errorf("journal session not found")
	}

	return &sessions[0], nil
}
