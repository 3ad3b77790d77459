package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/PsySom/ready-set-prompt/internal/models"
)

// Store implements every repository interface against one SQLite database.
type Store struct {
	db *sql.DB

	// now is swapped in tests for deterministic timestamps.
	now func() time.Time
}

// NewStore opens the database file, applies the schema and seeds the system
// templates and default rules.
func NewStore(path string) (*Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewStoreWithDB(db)
}

// NewStoreWithDB wires a store onto an existing connection (used by tests).
func NewStoreWithDB(db *sql.DB) (*Store, error) {
	if err := Migrate(db); err != nil {
		return nil, err
	}
	s := &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
	if err := s.Seed(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// HealthCheck pings the database.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func newID() string { return uuid.New().String() }

// --- Tracker entries ---

func (s *Store) CreateEntry(ctx context.Context, entry *models.TrackerEntry) (*models.TrackerEntry, error) {
	created := *entry
	created.ID = newID()
	created.CreatedAt = s.now()

	var entryTime interface{}
	if entry.EntryTime != nil {
		entryTime = entry.EntryTime.String()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tracker_entries
			(id, user_id, entry_date, entry_time, mood_score, stress_level,
			 anxiety_level, energy_level, process_satisfaction, result_satisfaction, created_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		created.ID, entry.UserID, entry.EntryDate.String(), entryTime,
		entry.MoodScore, entry.StressLevel, entry.AnxietyLevel, entry.EnergyLevel,
		entry.ProcessSatisfaction, entry.ResultSatisfaction, created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracker entry: %w", err)
	}
	created.Emotions = nil
	return &created, nil
}

func (s *Store) AddEmotions(ctx context.Context, entryID string, emotions []models.Emotion) ([]models.Emotion, error) {
	created := make([]models.Emotion, 0, len(emotions))
	for _, e := range emotions {
		e.ID = newID()
		e.EntryID = entryID
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO tracker_emotions (id, entry_id, label, intensity, category)
			 VALUES (?,?,?,?,?)`,
			e.ID, e.EntryID, e.Label, e.Intensity, e.Category,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to add emotion: %w", err)
		}
		created = append(created, e)
	}
	return created, nil
}

func (s *Store) GetEntryByID(ctx context.Context, id string) (*models.TrackerEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, entry_date, entry_time, mood_score, stress_level,
			anxiety_level, energy_level, process_satisfaction, result_satisfaction, created_at
		 FROM tracker_entries WHERE id = ?`, id)

	entry, err := scanTrackerEntry(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tracker entry not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tracker entry: %w", err)
	}

	if err := s.attachEmotions(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Store) GetEntriesByUserIDAndDateRange(ctx context.Context, userID string, from, to models.Date) ([]models.TrackerEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, entry_date, entry_time, mood_score, stress_level,
			anxiety_level, energy_level, process_satisfaction, result_satisfaction, created_at
		 FROM tracker_entries
		 WHERE user_id = ? AND entry_date >= ? AND entry_date <= ?
		 ORDER BY entry_date ASC`,
		userID, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get tracker entries: %w", err)
	}
	defer rows.Close()

	entries := make([]models.TrackerEntry, 0)
	for rows.Next() {
		entry, err := scanTrackerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tracker entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		if err := s.attachEmotions(ctx, &entries[i]); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tracker_entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete tracker entry: %w", err)
	}
	return nil
}

func (s *Store) attachEmotions(ctx context.Context, entry *models.TrackerEntry) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, entry_id, label, intensity, category
		 FROM tracker_emotions WHERE entry_id = ?`, entry.ID)
	if err != nil {
		return fmt.Errorf("failed to get emotions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.Emotion
		if err := rows.Scan(&e.ID, &e.EntryID, &e.Label, &e.Intensity, &e.Category); err != nil {
			return fmt.Errorf("failed to scan emotion: %w", err)
		}
		entry.Emotions = append(entry.Emotions, e)
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrackerEntry(row rowScanner) (*models.TrackerEntry, error) {
	var (
		e         models.TrackerEntry
		entryDate string
		entryTime sql.NullString
	)
	err := row.Scan(&e.ID, &e.UserID, &entryDate, &entryTime, &e.MoodScore,
		&e.StressLevel, &e.AnxietyLevel, &e.EnergyLevel,
		&e.ProcessSatisfaction, &e.ResultSatisfaction, &e.CreatedAt)
	if err != nil {
		return nil, err
	}

	d, err := models.ParseDate(entryDate)
	if err != nil {
		return nil, fmt.Errorf("bad entry_date %q: %w", entryDate, err)
	}
	e.EntryDate = d

	if entryTime.Valid {
		t, err := models.ParseTimeOfDay(entryTime.String)
		if err != nil {
			return nil, fmt.Errorf("bad entry_time %q: %w", entryTime.String, err)
		}
		e.EntryTime = &t
	}
	return &e, nil
}

// --- Activities ---

func (s *Store) CreateActivity(ctx context.Context, activity *models.Activity) (*models.Activity, error) {
	created := *activity
	created.ID = newID()
	created.CreatedAt = s.now()
	created.UpdatedAt = created.CreatedAt

	var startTime interface{}
	if activity.StartTime != nil {
		startTime = activity.StartTime.String()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activities
			(id, user_id, title, date, start_time, duration_minutes, category,
			 impact_type, status, template_id, recommendation_id, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		created.ID, activity.UserID, activity.Title, activity.Date.String(), startTime,
		activity.DurationMinutes, activity.Category, activity.ImpactType, activity.Status,
		activity.TemplateID, activity.RecommendationID, created.CreatedAt, created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	return &created, nil
}

func (s *Store) GetActivityByID(ctx context.Context, id string) (*models.Activity, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, date, start_time, duration_minutes, category,
			impact_type, status, template_id, recommendation_id, created_at, updated_at
		 FROM activities WHERE id = ?`, id)

	activity, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("activity not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return activity, nil
}

func (s *Store) GetActivitiesByUserIDAndDateRange(ctx context.Context, userID string, from, to models.Date) ([]models.Activity, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, date, start_time, duration_minutes, category,
			impact_type, status, template_id, recommendation_id, created_at, updated_at
		 FROM activities
		 WHERE user_id = ? AND date >= ? AND date <= ?
		 ORDER BY date ASC, start_time ASC`,
		userID, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get activities: %w", err)
	}
	defer rows.Close()

	activities := make([]models.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

func (s *Store) UpdateActivity(ctx context.Context, id string, req *models.UpdateActivityRequest) (*models.Activity, error) {
	sets := make([]string, 0, 8)
	args := make([]interface{}, 0, 9)

	add := func(col string, v interface{}) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}

	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Date != nil {
		add("date", req.Date.String())
	}
	if req.StartTime.Set {
		if req.StartTime.Valid {
			add("start_time", req.StartTime.Value)
		} else {
			add("start_time", nil)
		}
	}
	if req.DurationMinutes != nil {
		add("duration_minutes", *req.DurationMinutes)
	}
	if req.Category != nil {
		add("category", *req.Category)
	}
	if req.ImpactType != nil {
		add("impact_type", *req.ImpactType)
	}
	if req.Status != nil {
		add("status", *req.Status)
	}

	if len(sets) > 0 {
		add("updated_at", s.now())
		query := "UPDATE activities SET "
		for i, set := range sets {
			if i > 0 {
				query += ", "
			}
			query += set
		}
		query += " WHERE id = ?"
		args = append(args, id)

		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("failed to update activity: %w", err)
		}
	}

	return s.GetActivityByID(ctx, id)
}

func (s *Store) DeleteActivity(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil
}

func scanActivity(row rowScanner) (*models.Activity, error) {
	var (
		a         models.Activity
		date      string
		startTime sql.NullString
	)
	err := row.Scan(&a.ID, &a.UserID, &a.Title, &date, &startTime, &a.DurationMinutes,
		&a.Category, &a.ImpactType, &a.Status, &a.TemplateID, &a.RecommendationID,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}

	d, err := models.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("bad date %q: %w", date, err)
	}
	a.Date = d

	if startTime.Valid {
		t, err := models.ParseTimeOfDay(startTime.String)
		if err != nil {
			return nil, fmt.Errorf("bad start_time %q: %w", startTime.String, err)
		}
		a.StartTime = &t
	}
	return &a, nil
}
