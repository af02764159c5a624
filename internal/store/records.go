package store

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/verte-zerg/typetutor/internal/model"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// InsertRecord appends a stat record and returns its id.
func (s *Store) InsertRecord(ctx context.Context, rec model.StatRecord) (int64, error) {
	query, args, err := sqlBuilder.Insert("stat_records").
		Columns("wpm", "accuracy", "duration_seconds", "completed_at", "lesson_id", "lesson_title").
		Values(rec.WPM, rec.Accuracy, rec.DurationSeconds, formatTime(rec.CompletedAt), rec.LessonID, rec.LessonTitle).
		ToSql()
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Record implements session.Recorder.
func (s *Store) Record(ctx context.Context, rec model.StatRecord) error {
	_, err := s.InsertRecord(ctx, rec)
	return err
}

// ListRecords returns matching records ordered oldest first.
func (s *Store) ListRecords(ctx context.Context, filter model.StatsFilter) ([]model.StatRecord, error) {
	query := sqlBuilder.
		Select("id", "wpm", "accuracy", "duration_seconds", "completed_at", "lesson_id", "lesson_title").
		From("stat_records")
	if filter.LessonID != "" {
		query = query.Where(squirrel.Eq{"lesson_id": filter.LessonID})
	}
	if filter.Since != nil {
		query = query.Where(squirrel.GtOrEq{"completed_at": formatTime(*filter.Since)})
	}
	newestFirst := filter.Last > 0
	if newestFirst {
		query = query.OrderBy("completed_at DESC", "id DESC").Limit(uint64(filter.Last))
	} else {
		query = query.OrderBy("completed_at ASC", "id ASC")
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var records []model.StatRecord
	for rows.Next() {
		var rec model.StatRecord
		var completedAt string
		if err := rows.Scan(&rec.ID, &rec.WPM, &rec.Accuracy, &rec.DurationSeconds, &completedAt, &rec.LessonID, &rec.LessonTitle); err != nil {
			return nil, err
		}
		parsed, err := parseTime(completedAt)
		if err != nil {
			return nil, err
		}
		rec.CompletedAt = parsed
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if newestFirst {
		for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
			records[i], records[j] = records[j], records[i]
		}
	}
	return records, nil
}

// ClearRecords deletes the whole record log and reports how many rows went.
func (s *Store) ClearRecords(ctx context.Context) (int64, error) {
	query, args, err := sqlBuilder.Delete("stat_records").ToSql()
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
