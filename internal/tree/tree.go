// Package tree assembles a course, its sections and their lessons into an
// immutable three-level tree with per-node session lengths.
package tree

import (
	"context"
	"fmt"

	"github.com/klytics/coursegrid/internal/estimate"
	"github.com/klytics/coursegrid/internal/stepik"
)

// Fetcher loads single records from the course API.
type Fetcher interface {
	Course(ctx context.Context, id int) (*stepik.Course, error)
	Section(ctx context.Context, id int) (*stepik.Section, error)
	Unit(ctx context.Context, id int) (*stepik.Unit, error)
	Lesson(ctx context.Context, id int) (*stepik.Lesson, error)
}

// Course is the root of the tree.
type Course struct {
	ID               int       `json:"id" yaml:"id"`
	Name             string    `json:"name" yaml:"name"`
	Sections         []Section `json:"sections" yaml:"sections"`
	TotalLength      int       `json:"totalLength" yaml:"total_length"`
	MaxSectionLength int       `json:"maxSectionLength" yaml:"max_section_length"`
}

// Section groups consecutive lessons. Length is the sum of its lessons' DaysToPass.
type Section struct {
	ID      int      `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Lessons []Lesson `json:"lessons" yaml:"lessons"`
	Length  int      `json:"length" yaml:"length"`
}

// Lesson is a leaf. Index is its 1-based position within the section.
type Lesson struct {
	ID             int    `json:"id" yaml:"id"`
	Index          int    `json:"index" yaml:"index"`
	Name           string `json:"name" yaml:"name"`
	TimeToComplete int    `json:"timeToComplete" yaml:"time_to_complete"`
	Minutes        int    `json:"minutes" yaml:"minutes"`
	DaysToPass     int    `json:"daysToPass" yaml:"days_to_pass"`
}

// LessonCount returns the number of lessons across all sections.
func (c *Course) LessonCount() int {
	n := 0
	for _, s := range c.Sections {
		n += len(s.Lessons)
	}
	return n
}

// Option configures Build.
type Option func(*builder)

// WithProgress registers a callback invoked after each lesson is fetched,
// with the 0-based section index and 1-based lesson index.
func WithProgress(fn func(section, lesson int)) Option {
	return func(b *builder) {
		b.onLesson = fn
	}
}

type builder struct {
	fetch    Fetcher
	limits   estimate.SessionLimits
	onLesson func(section, lesson int)
}

// Build fetches the course and everything under it, in API order.
// The first fetch error aborts the build.
func Build(ctx context.Context, f Fetcher, courseID int, limits estimate.SessionLimits, opts ...Option) (*Course, error) {
	b := &builder{fetch: f, limits: limits}
	for _, opt := range opts {
		opt(b)
	}

	raw, err := f.Course(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("course %d: %w", courseID, err)
	}

	course := &Course{
		ID:       raw.ID,
		Name:     raw.Title,
		Sections: make([]Section, 0, len(raw.Sections)),
	}
	if course.ID == 0 {
		course.ID = courseID
	}

	for i, sectionID := range raw.Sections {
		section, err := b.section(ctx, i, sectionID)
		if err != nil {
			return nil, err
		}
		course.Sections = append(course.Sections, *section)
		course.TotalLength += section.Length
		if section.Length > course.MaxSectionLength {
			course.MaxSectionLength = section.Length
		}
	}

	return course, nil
}

func (b *builder) section(ctx context.Context, pos, id int) (*Section, error) {
	raw, err := b.fetch.Section(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("section %d: %w", id, err)
	}

	section := &Section{
		ID:      id,
		Name:    raw.Title,
		Lessons: make([]Lesson, 0, len(raw.Units)),
	}

	for i, unitID := range raw.Units {
		lesson, err := b.lesson(ctx, unitID)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", id, err)
		}
		lesson.Index = i + 1
		section.Lessons = append(section.Lessons, *lesson)
		section.Length += lesson.DaysToPass

		if b.onLesson != nil {
			b.onLesson(pos, lesson.Index)
		}
	}

	return section, nil
}

func (b *builder) lesson(ctx context.Context, unitID int) (*Lesson, error) {
	unit, err := b.fetch.Unit(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("unit %d: %w", unitID, err)
	}

	raw, err := b.fetch.Lesson(ctx, unit.Lesson)
	if err != nil {
		return nil, fmt.Errorf("lesson %d: %w", unit.Lesson, err)
	}

	return &Lesson{
		ID:             unit.Lesson,
		Name:           raw.Title,
		TimeToComplete: raw.TimeToComplete,
		Minutes:        estimate.Minutes(raw.TimeToComplete),
		DaysToPass:     estimate.DaysToPass(raw.TimeToComplete, b.limits),
	}, nil
}
