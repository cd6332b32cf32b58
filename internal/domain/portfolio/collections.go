package portfolio

import (
	"cmp"
	"slices"
)

// Ordered is implemented by records that carry a display order
type Ordered interface {
	Order() int
}

// Keyed is implemented by records persisted under a numeric id
type Keyed interface {
	Key() int64
}

// Highlightable is implemented by records with a featured flag
type Highlightable interface {
	Featured() bool
}

// SortByDisplayOrder returns a copy of items ordered by display order.
// The sort is stable so equal orders keep the backend order.
func SortByDisplayOrder[T Ordered](items []T) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		return cmp.Compare(a.Order(), b.Order())
	})
	return out
}

// FeaturedOnly returns the featured items, preserving order
func FeaturedOnly[T Highlightable](items []T) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.Featured() {
			out = append(out, it)
		}
	}
	return out
}

// SortAchievementsByIssueDate returns a copy sorted by issue date, newest
// first. Undated achievements go last.
func SortAchievementsByIssueDate(items []Achievement) []Achievement {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b Achievement) int {
		return newestFirst(a.IssueDate, b.IssueDate)
	})
	return out
}

// SortExperiences orders by display order, then newest start date first
func SortExperiences(items []Experience) []Experience {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b Experience) int {
		if c := cmp.Compare(a.DisplayOrder, b.DisplayOrder); c != 0 {
			return c
		}
		return newestFirst(a.StartDate, b.StartDate)
	})
	return out
}

// FilterProjectsByStatus keeps the projects whose resolved status equals
// status
func FilterProjectsByStatus(projects []Project, status Status) []Project {
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if p.ResolvedStatus() == status {
			out = append(out, p)
		}
	}
	return out
}

// SearchProjects keeps the projects matching query
func SearchProjects(projects []Project, query string) []Project {
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if p.Matches(query) {
			out = append(out, p)
		}
	}
	return out
}
