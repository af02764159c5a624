// Package lessons manages the practice lesson catalog.
package lessons

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verte-zerg/typetutor/internal/model"
)

// ErrInvalid marks a lesson that failed validation.
var ErrInvalid = errors.New("invalid lesson")

// Repository is the persistence the service needs.
type Repository interface {
	ListLessons(ctx context.Context) ([]model.Lesson, error)
	GetLesson(ctx context.Context, id string) (model.Lesson, error)
	InsertLesson(ctx context.Context, l model.Lesson) error
	UpdateLesson(ctx context.Context, l model.Lesson) error
	DeleteLesson(ctx context.Context, id string) error
	SeedLessons(ctx context.Context, marker string, lessons []model.Lesson) (bool, error)
}

// SeededKey marks that the built-in lessons were stored once.
const SeededKey = "lessons.seeded"

// Draft holds the user-supplied fields of a new lesson.
type Draft struct {
	Title      string
	Content    string
	Difficulty string
	Category   string
}

// Patch lists the fields to change on an existing lesson. Nil means keep.
type Patch struct {
	Title      *string
	Content    *string
	Difficulty *string
	Category   *string
}

// Service validates and stores lessons.
type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() string
	log   *zap.Logger
}

// NewService returns a Service backed by repo.
func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
		log:   log.Named("lessons"),
	}
}

// List returns all lessons, oldest first.
func (s *Service) List(ctx context.Context) ([]model.Lesson, error) {
	lessons, err := s.repo.ListLessons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	return lessons, nil
}

// Get returns one lesson.
func (s *Service) Get(ctx context.Context, id string) (model.Lesson, error) {
	l, err := s.repo.GetLesson(ctx, id)
	if err != nil {
		return model.Lesson{}, fmt.Errorf("failed to load lesson: %w", err)
	}
	return l, nil
}

// Create validates the draft and stores it under a fresh id.
func (s *Service) Create(ctx context.Context, d Draft) (model.Lesson, error) {
	return s.create(ctx, d, s.now())
}

func (s *Service) create(ctx context.Context, d Draft, at time.Time) (model.Lesson, error) {
	l, err := s.fromDraft(d, at)
	if err != nil {
		return model.Lesson{}, err
	}
	if err := s.repo.InsertLesson(ctx, l); err != nil {
		return model.Lesson{}, fmt.Errorf("failed to save lesson: %w", err)
	}
	s.log.Info("lesson created", zap.String("id", l.ID), zap.String("title", l.Title))
	return l, nil
}

// Update applies the patch to an existing lesson.
func (s *Service) Update(ctx context.Context, id string, p Patch) (model.Lesson, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return model.Lesson{}, err
	}
	if p.Title != nil {
		l.Title = strings.TrimSpace(*p.Title)
	}
	if p.Content != nil {
		l.Content = *p.Content
	}
	if p.Category != nil {
		l.Category = strings.TrimSpace(*p.Category)
	}
	if p.Difficulty != nil {
		d, err := model.ParseDifficulty(*p.Difficulty)
		if err != nil {
			return model.Lesson{}, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		l.Difficulty = d
	}
	if err := validate(l); err != nil {
		return model.Lesson{}, err
	}
	if err := s.repo.UpdateLesson(ctx, l); err != nil {
		return model.Lesson{}, fmt.Errorf("failed to update lesson: %w", err)
	}
	s.log.Info("lesson updated", zap.String("id", l.ID))
	return l, nil
}

// Delete removes a lesson.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteLesson(ctx, id); err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}
	s.log.Info("lesson deleted", zap.String("id", id))
	return nil
}

// Seed stores the built-in lessons on first use. Once done it never runs
// again, so a catalog the user emptied stays empty.
func (s *Service) Seed(ctx context.Context) (int, error) {
	// Spread creation times so the catalog keeps its built-in order.
	base := s.now()
	defaults := make([]model.Lesson, 0, len(defaultDrafts))
	for i, d := range defaultDrafts {
		l, err := s.fromDraft(d, base.Add(time.Duration(i)*time.Millisecond))
		if err != nil {
			return 0, err
		}
		defaults = append(defaults, l)
	}
	seeded, err := s.repo.SeedLessons(ctx, SeededKey, defaults)
	if err != nil {
		return 0, fmt.Errorf("failed to seed lessons: %w", err)
	}
	if !seeded {
		return 0, nil
	}
	return len(defaults), nil
}

func (s *Service) fromDraft(d Draft, at time.Time) (model.Lesson, error) {
	difficulty := model.Beginner
	if strings.TrimSpace(d.Difficulty) != "" {
		parsed, err := model.ParseDifficulty(d.Difficulty)
		if err != nil {
			return model.Lesson{}, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		difficulty = parsed
	}
	l := model.Lesson{
		ID:         s.newID(),
		Title:      strings.TrimSpace(d.Title),
		Content:    d.Content,
		Difficulty: difficulty,
		Category:   strings.TrimSpace(d.Category),
		CreatedAt:  at,
	}
	if err := validate(l); err != nil {
		return model.Lesson{}, err
	}
	return l, nil
}

func validate(l model.Lesson) error {
	if l.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if strings.TrimSpace(l.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrInvalid)
	}
	return nil
}
