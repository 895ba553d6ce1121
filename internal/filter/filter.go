// Package filter implements the job listing filter: the selection state held
// across the four filter categories and the pure predicate that decides
// whether a job matches the current selection.
package filter

import "fmt"

// Category names one of the four independent selection axes.
type Category string

const (
	CategoryEmploymentTypes Category = "employmentTypes"
	CategorySkills          Category = "skills"
	CategoryJobLevels       Category = "jobLevels"
	CategorySalaryRanges    Category = "salaryRanges"
)

// Categories lists every filter category.
var Categories = []Category{
	CategoryEmploymentTypes,
	CategorySkills,
	CategoryJobLevels,
	CategorySalaryRanges,
}

// ParseCategory converts a raw string to a Category, returning an error for
// unknown values.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	switch c {
	case CategoryEmploymentTypes, CategorySkills, CategoryJobLevels, CategorySalaryRanges:
		return c, nil
	}
	return "", fmt.Errorf("unknown filter category %q", s)
}

// State holds the active selections per category. An empty category places no
// constraint: every job passes that category's check.
//
// JobLevels is carried in the state and accepted over the API for
// compatibility with the filter sidebar, but matching is driven by
// EmploymentTypes; JobLevels selections have no effect on results.
type State struct {
	EmploymentTypes []string `json:"employmentTypes"`
	Skills          []string `json:"skills"`
	JobLevels       []string `json:"jobLevels"`
	SalaryRanges    []string `json:"salaryRanges"`
}

// Empty reports whether no category holds any selection.
func (s State) Empty() bool {
	return len(s.EmploymentTypes) == 0 && len(s.Skills) == 0 &&
		len(s.JobLevels) == 0 && len(s.SalaryRanges) == 0
}

// Values returns the selection set for the given category.
func (s State) Values(c Category) []string {
	switch c {
	case CategoryEmploymentTypes:
		return s.EmploymentTypes
	case CategorySkills:
		return s.Skills
	case CategoryJobLevels:
		return s.JobLevels
	case CategorySalaryRanges:
		return s.SalaryRanges
	}
	return nil
}

// SetValue returns a new State with value added to (included=true) or removed
// from (included=false) the given category. The receiver is never mutated;
// every mutation produces a fresh State so callers can hold old snapshots
// safely. Adding a value that is already selected is a no-op, as is removing
// one that is not.
func (s State) SetValue(c Category, value string, included bool) State {
	out := s.clone()
	switch c {
	case CategoryEmploymentTypes:
		out.EmploymentTypes = setMembership(out.EmploymentTypes, value, included)
	case CategorySkills:
		out.Skills = setMembership(out.Skills, value, included)
	case CategoryJobLevels:
		out.JobLevels = setMembership(out.JobLevels, value, included)
	case CategorySalaryRanges:
		out.SalaryRanges = setMembership(out.SalaryRanges, value, included)
	}
	return out
}

// Clear returns a State with every category empty.
func Clear() State {
	return State{
		EmploymentTypes: []string{},
		Skills:          []string{},
		JobLevels:       []string{},
		SalaryRanges:    []string{},
	}
}

func (s State) clone() State {
	return State{
		EmploymentTypes: append([]string(nil), s.EmploymentTypes...),
		Skills:          append([]string(nil), s.Skills...),
		JobLevels:       append([]string(nil), s.JobLevels...),
		SalaryRanges:    append([]string(nil), s.SalaryRanges...),
	}
}

// setMembership adds or removes value, preserving the order of the remaining
// selections and never introducing duplicates.
func setMembership(set []string, value string, included bool) []string {
	idx := -1
	for i, v := range set {
		if v == value {
			idx = i
			break
		}
	}
	if included {
		if idx >= 0 {
			return set
		}
		return append(set, value)
	}
	if idx < 0 {
		return set
	}
	return append(set[:idx], set[idx+1:]...)
}
