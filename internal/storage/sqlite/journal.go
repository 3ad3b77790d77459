package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/PsySom/ready-set-prompt/internal/models"
)

// --- Journal sessions ---

func (s *Store) CreateSession(ctx context.Context, session *models.JournalSession) (*models.JournalSession, error) {
	created := *session
	created.ID = newID()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO journal_sessions (id, user_id, session_type, started_at)
		 VALUES (?,?,?,?)`,
		created.ID, session.UserID, session.Type, session.StartedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create journal session: %w", err)
	}
	return &created, nil
}

func (s *Store) GetSessionByID(ctx context.Context, id string) (*models.JournalSession, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, session_type, started_at, ended_at
		 FROM journal_sessions WHERE id = ?`, id)

	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("journal session not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get journal session: %w", err)
	}

	if err := s.attachMessages(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Store) GetSessionsByUserIDSince(ctx context.Context, userID string, since time.Time) ([]models.JournalSession, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, session_type, started_at, ended_at
		 FROM journal_sessions
		 WHERE user_id = ? AND started_at >= ?
		 ORDER BY started_at DESC`,
		userID, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to get journal sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]models.JournalSession, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal session: %w", err)
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sessions {
		if err := s.attachMessages(ctx, &sessions[i]); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

func (s *Store) AppendMessage(ctx context.Context, msg *models.JournalMessage) (*models.JournalMessage, error) {
	created := *msg
	created.ID = newID()
	created.CreatedAt = s.now()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO journal_messages (id, session_id, message_type, content, created_at)
		 VALUES (?,?,?,?,?)`,
		created.ID, msg.SessionID, msg.Type, msg.Content, created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append journal message: %w", err)
	}
	return &created, nil
}

func (s *Store) EndSession(ctx context.Context, id string, endedAt time.Time) (*models.JournalSession, error) {
	_, err := s.db.ExecContext(ctx,
		`UPDATE journal_sessions SET ended_at = ? WHERE id = ?`, endedAt.UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to end journal session: %w", err)
	}
	return s.GetSessionByID(ctx, id)
}

func (s *Store) attachMessages(ctx context.Context, session *models.JournalSession) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, message_type, content, created_at
		 FROM journal_messages WHERE session_id = ? ORDER BY created_at ASC`, session.ID)
	if err != nil {
		return fmt.Errorf("failed to get journal messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.JournalMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Type, &m.Content, &m.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan journal message: %w", err)
		}
		session.Messages = append(session.Messages, m)
	}
	return rows.Err()
}

func scanSession(row rowScanner) (*models.JournalSession, error) {
	var (
		session models.JournalSession
		endedAt sql.NullTime
	)
	err := row.Scan(&session.ID, &session.UserID, &session.Type, &session.StartedAt, &endedAt)
	if err != nil {
		return nil, err
	}
	if endedAt.Valid {
		t := endedAt.Time
		session.EndedAt = &t
	}
	return &session, nil
}

// --- Activity templates ---

func (s *Store) GetTemplateByID(ctx context.Context, id string) (*models.ActivityTemplate, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, emoji, description, category, impact_type,
			default_duration_minutes, is_system, created_at
		 FROM activity_templates WHERE id = ?`, id)

	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("activity template not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity template: %w", err)
	}
	return t, nil
}

func (s *Store) ListTemplates(ctx context.Context) ([]models.ActivityTemplate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, emoji, description, category, impact_type,
			default_duration_minutes, is_system, created_at
		 FROM activity_templates ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity templates: %w", err)
	}
	defer rows.Close()

	templates := make([]models.ActivityTemplate, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity template: %w", err)
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

func scanTemplate(row rowScanner) (*models.ActivityTemplate, error) {
	var (
		t        models.ActivityTemplate
		isSystem int
	)
	err := row.Scan(&t.ID, &t.Name, &t.Emoji, &t.Description, &t.Category,
		&t.ImpactType, &t.DefaultDurationMinutes, &isSystem, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.IsSystem = isSystem != 0
	return &t, nil
}
