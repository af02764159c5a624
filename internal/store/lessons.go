package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/typetutor/internal/model"
)

const lessonColumns = `id, title, content, difficulty, category, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLesson(row rowScanner) (model.Lesson, error) {
	var l model.Lesson
	var difficulty, createdAt string
	if err := row.Scan(&l.ID, &l.Title, &l.Content, &difficulty, &l.Category, &createdAt); err != nil {
		return model.Lesson{}, err
	}
	l.Difficulty = model.Difficulty(difficulty)
	parsed, err := parseTime(createdAt)
	if err != nil {
		return model.Lesson{}, err
	}
	l.CreatedAt = parsed
	return l, nil
}

// ListLessons returns every lesson, oldest first.
func (s *Store) ListLessons(ctx context.Context) ([]model.Lesson, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+lessonColumns+` FROM lessons ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var lessons []model.Lesson
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lessons, nil
}

// CountLessons returns the number of stored lessons.
func (s *Store) CountLessons(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lessons`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// GetLesson returns the lesson with the given id or ErrNotFound.
func (s *Store) GetLesson(ctx context.Context, id string) (model.Lesson, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+lessonColumns+` FROM lessons WHERE id = ?`, id)
	l, err := scanLesson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Lesson{}, fmt.Errorf("lesson %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Lesson{}, err
	}
	return l, nil
}

// InsertLesson stores a new lesson.
func (s *Store) InsertLesson(ctx context.Context, l model.Lesson) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lessons (`+lessonColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, l.Title, l.Content, string(l.Difficulty), l.Category, formatTime(l.CreatedAt))
	return err
}

// UpdateLesson overwrites the editable fields of an existing lesson.
func (s *Store) UpdateLesson(ctx context.Context, l model.Lesson) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE lessons SET title = ?, content = ?, difficulty = ?, category = ? WHERE id = ?`,
		l.Title, l.Content, string(l.Difficulty), l.Category, l.ID)
	if err != nil {
		return err
	}
	return expectAffected(res, l.ID)
}

// DeleteLesson removes a lesson. Stat records keep their copied title.
func (s *Store) DeleteLesson(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lessons WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectAffected(res, id)
}

func expectAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("lesson %s: %w", id, ErrNotFound)
	}
	return nil
}

// SeedLessons inserts lessons once. The marker key is written in the same
// transaction; if it already exists nothing is inserted, even when the
// lessons table has since been emptied.
func (s *Store) SeedLessons(ctx context.Context, marker string, lessons []model.Lesson) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	// Best-effort rollback; a no-op after commit.
	defer func() { _ = tx.Rollback() }()

	var seen int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv WHERE key = ?`, marker).Scan(&seen); err != nil {
		return false, err
	}
	if seen > 0 {
		return false, nil
	}
	for _, l := range lessons {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO lessons (`+lessonColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
			l.ID, l.Title, l.Content, string(l.Difficulty), l.Category, formatTime(l.CreatedAt)); err != nil {
			return false, err
		}
	}
	now := formatTime(time.Now())
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)`,
		marker, []byte(now), now); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
