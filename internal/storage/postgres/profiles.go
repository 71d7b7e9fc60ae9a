package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/journeyline/internal/constants"
	"github.com/julianstephens/journeyline/internal/models"
)

func (s *Store) LoadProfile(userID string) (models.UserProfile, bool, error) {
	var (
		p     models.UserProfile
		role  string
		start sql.NullTime
	)
	err := s.db.QueryRow(`
		SELECT role, jurisdiction, counterpart_jurisdiction, name, stage, start_date
		FROM profiles WHERE user_id = $1`, userID,
	).Scan(&role, &p.Jurisdiction, &p.Counterpart, &p.Name, &p.Stage, &start)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserProfile{}, false, nil
	}
	if err != nil {
		return models.UserProfile{}, false, fmt.Errorf("failed to load profile: %w", err)
	}
	p.Role = constants.Role(role)
	if start.Valid {
		t := start.Time.UTC()
		p.StartDate = &t
	}

	if p.Tasks, err = s.loadTasks(userID); err != nil {
		return models.UserProfile{}, false, err
	}
	if p.Moods, err = s.loadMoods(userID); err != nil {
		return models.UserProfile{}, false, err
	}
	if p.Journal, err = s.loadJournal(userID); err != nil {
		return models.UserProfile{}, false, err
	}
	return p, true, nil
}

func (s *Store) loadTasks(userID string) (map[string][]models.Task, error) {
	rows, err := s.db.Query(`
		SELECT stage_id, task_id, text, done FROM profile_tasks
		WHERE user_id = $1 ORDER BY stage_id, task_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	defer rows.Close()

	var tasks map[string][]models.Task
	for rows.Next() {
		var (
			stageID string
			t       models.Task
		)
		if err := rows.Scan(&stageID, &t.ID, &t.Text, &t.Done); err != nil {
			return nil, err
		}
		if tasks == nil {
			tasks = make(map[string][]models.Task)
		}
		tasks[stageID] = append(tasks[stageID], t)
	}
	return tasks, rows.Err()
}

func (s *Store) loadMoods(userID string) ([]models.MoodEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, mood, logged_at FROM mood_entries
		WHERE user_id = $1 ORDER BY seq`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load moods: %w", err)
	}
	defer rows.Close()

	var moods []models.MoodEntry
	for rows.Next() {
		var (
			m    models.MoodEntry
			mood string
		)
		if err := rows.Scan(&m.ID, &mood, &m.At); err != nil {
			return nil, err
		}
		m.Mood = constants.Mood(mood)
		m.At = m.At.UTC()
		moods = append(moods, m)
	}
	return moods, rows.Err()
}

func (s *Store) loadJournal(userID string) ([]models.JournalEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, text, written_at FROM journal_entries
		WHERE user_id = $1 ORDER BY seq`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}
	defer rows.Close()

	var journal []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(&e.ID, &e.Text, &e.At); err != nil {
			return nil, err
		}
		e.At = e.At.UTC()
		journal = append(journal, e)
	}
	return journal, rows.Err()
}

func (s *Store) SaveProfile(userID string, p models.UserProfile) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var start sql.NullTime
	if p.StartDate != nil {
		start = sql.NullTime{Time: *p.StartDate, Valid: true}
	}

	_, err = tx.Exec(`
		INSERT INTO profiles (user_id, role, jurisdiction, counterpart_jurisdiction, name, stage, start_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			role = EXCLUDED.role,
			jurisdiction = EXCLUDED.jurisdiction,
			counterpart_jurisdiction = EXCLUDED.counterpart_jurisdiction,
			name = EXCLUDED.name,
			stage = EXCLUDED.stage,
			start_date = EXCLUDED.start_date,
			updated_at = EXCLUDED.updated_at`,
		userID, string(p.Role), p.Jurisdiction, p.Counterpart, p.Name, p.Stage, start, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	if err := deleteChildren(tx, userID); err != nil {
		return err
	}

	for stageID, tasks := range p.Tasks {
		for _, t := range tasks {
			if _, err := tx.Exec(
				"INSERT INTO profile_tasks (user_id, stage_id, task_id, text, done) VALUES ($1, $2, $3, $4, $5)",
				userID, stageID, t.ID, t.Text, t.Done,
			); err != nil {
				return fmt.Errorf("failed to save task %s/%d: %w", stageID, t.ID, err)
			}
		}
	}
	for i, m := range p.Moods {
		if _, err := tx.Exec(
			"INSERT INTO mood_entries (id, user_id, mood, logged_at, seq) VALUES ($1, $2, $3, $4, $5)",
			m.ID, userID, string(m.Mood), m.At, i,
		); err != nil {
			return fmt.Errorf("failed to save mood %s: %w", m.ID, err)
		}
	}
	for i, e := range p.Journal {
		if _, err := tx.Exec(
			"INSERT INTO journal_entries (id, user_id, text, written_at, seq) VALUES ($1, $2, $3, $4, $5)",
			e.ID, userID, e.Text, e.At, i,
		); err != nil {
			return fmt.Errorf("failed to save journal entry %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

func (s *Store) DeleteProfile(userID string) error {
	// Child rows go with the profile via ON DELETE CASCADE
	if _, err := s.db.Exec("DELETE FROM profiles WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

func (s *Store) ListProfiles() ([]string, error) {
	rows, err := s.db.Query("SELECT user_id FROM profiles ORDER BY user_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func deleteChildren(tx *sql.Tx, userID string) error {
	for _, table := range []string{"profile_tasks", "mood_entries", "journal_entries"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE user_id = $1", userID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}
