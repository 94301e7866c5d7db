package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/coursify/coursify/internal/catalog"
)

// CourseSource is the remote read the loader depends on.
type CourseSource interface {
	Courses(ctx context.Context) ([]catalog.Course, error)
}

// CatalogState is what the page renders from. Loaded stays false until the
// first fetch resolves either way.
type CatalogState struct {
	Courses   []catalog.Course
	LoadError bool
	Loaded    bool
}

// CatalogLoader owns the course list for the lifetime of the page.
type CatalogLoader struct {
	Source CourseSource
	Logger *slog.Logger

	mu    sync.RWMutex
	state CatalogState
}

// Load fetches the catalog and replaces the current list. On failure the list
// is emptied, LoadError is set and the returned error wraps ErrCatalogLoad.
// Load never retries.
func (l *CatalogLoader) Load(ctx context.Context) (CatalogState, error) {
	courses, err := l.Source.Courses(ctx)
	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.logger().Warn("catalog load failed", "error", err)
		l.state = CatalogState{Courses: []catalog.Course{}, LoadError: true, Loaded: true}
		return l.snapshot(), fmt.Errorf("%w: %w", ErrCatalogLoad, err)
	}
	l.state = CatalogState{Courses: slices.Clone(courses), Loaded: true}
	if l.state.Courses == nil {
		l.state.Courses = []catalog.Course{}
	}
	l.logger().Info("catalog loaded", "courses", len(courses))
	return l.snapshot(), nil
}

// State returns a copy of the current catalog.
func (l *CatalogLoader) State() CatalogState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshot()
}

func (l *CatalogLoader) snapshot() CatalogState {
	s := l.state
	s.Courses = slices.Clone(l.state.Courses)
	return s
}

func (l *CatalogLoader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l.Logger
}
