// Package gradebook aggregates fetched gradebook entries into filtered views,
// per-student point totals and CSV exports.
package gradebook

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/mind-engage/mindengage-classroom/internal/lms"
)

// AllValue is the filter value meaning "no filter".
const AllValue = "all"

// Filter narrows entries by assignment and/or student. A nil field matches
// everything.
type Filter struct {
	AssignmentID *int64
	StudentID    *int64
}

// ParseIDFilter turns a menu value ("all", "" or a numeric id) into a filter field.
func ParseIDFilter(v string) (*int64, error) {
	v = strings.TrimSpace(v)
	if v == "" || v == AllValue {
		return nil, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, errors.Errorf("invalid filter value %q", v)
	}
	return &id, nil
}

func (f Filter) Match(e lms.GradebookEntry) bool {
	if f.AssignmentID != nil && e.AssignmentID != *f.AssignmentID {
		return false
	}
	if f.StudentID != nil && e.StudentID != *f.StudentID {
		return false
	}
	return true
}

// Apply returns the entries matching f, preserving order.
func Apply(entries []lms.GradebookEntry, f Filter) []lms.GradebookEntry {
	out := make([]lms.GradebookEntry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

type StudentSummary struct {
	StudentID       int64
	StudentUsername string
	TotalEarned     float64
	TotalMax        float64
	Percent         *float64 // nil when TotalMax is 0
}

// Summarize totals graded entries per student. Ungraded entries are skipped.
// The result is ordered by username (byte-wise); ties keep first-seen order.
func Summarize(entries []lms.GradebookEntry) []StudentSummary {
	var order []int64
	byStudent := make(map[int64]*StudentSummary)
	for _, e := range entries {
		if e.Grade == nil {
			continue
		}
		s, ok := byStudent[e.StudentID]
		if !ok {
			s = &StudentSummary{StudentID: e.StudentID, StudentUsername: e.StudentUsername}
			byStudent[e.StudentID] = s
			order = append(order, e.StudentID)
		}
		s.TotalEarned += *e.Grade
		s.TotalMax += e.MaxPoints
	}

	out := make([]StudentSummary, 0, len(order))
	for _, id := range order {
		s := byStudent[id]
		s.Percent = Percent(s.TotalEarned, s.TotalMax)
		out = append(out, *s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StudentUsername < out[j].StudentUsername
	})
	return out
}

// Percent is earned/max as a percentage rounded half-up to one decimal, or
// nil when max is not positive.
func Percent(earned, max float64) *float64 {
	if max <= 0 {
		return nil
	}
	p := math.Floor(earned/max*1000+0.5) / 10
	return &p
}

// Option is one entry of a filter menu.
type Option struct {
	ID    int64
	Label string
}

// AssignmentOptions lists the distinct assignments of entries in first-seen order.
func AssignmentOptions(entries []lms.GradebookEntry) []Option {
	return distinct(entries, func(e lms.GradebookEntry) Option {
		return Option{ID: e.AssignmentID, Label: e.AssignmentTitle}
	})
}

// StudentOptions lists the distinct students of entries in first-seen order.
func StudentOptions(entries []lms.GradebookEntry) []Option {
	return distinct(entries, func(e lms.GradebookEntry) Option {
		return Option{ID: e.StudentID, Label: e.StudentUsername}
	})
}

// distinct keeps the first position of each id and the last label seen for it.
func distinct(entries []lms.GradebookEntry, key func(lms.GradebookEntry) Option) []Option {
	idx := make(map[int64]int)
	var out []Option
	for _, e := range entries {
		o := key(e)
		if i, ok := idx[o.ID]; ok {
			out[i].Label = o.Label
			continue
		}
		idx[o.ID] = len(out)
		out = append(out, o)
	}
	return out
}
