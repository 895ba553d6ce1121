package filter

import (
	"math"

	"jobboard/listing-service/internal/model"
)

// Salaries are stored in VND; the salary-range bands are stated in USD.
// Conversion uses a fixed approximate rate.
const vndPerUSD = 24000

// band is an inclusive salary interval in USD. An upper bound of +Inf means
// "or above".
type band struct {
	min, max float64
}

// salaryBands maps each salary-range option to its USD band. Both ends are
// inclusive for every bounded band.
var salaryBands = map[string]band{
	"$700 - $1000":   {700, 1000},
	"$100 - $1500":   {100, 1500},
	"$1500 - $2000":  {1500, 2000},
	"$3000 or above": {3000, math.Inf(1)},
}

// SalaryRangeNames lists the salary-range filter options in display order.
var SalaryRangeNames = []string{"$700 - $1000", "$100 - $1500", "$1500 - $2000", "$3000 or above"}

// Match reports whether job passes every active category of state. A category
// with no selections is vacuously satisfied; all categories are AND-combined.
// Pure: no side effects, identical inputs always yield identical results.
//
// Jobs with a missing level or a zero salary fail any non-empty constraint in
// that category rather than raising an error, so incomplete records are simply
// excluded from filtered views.
func Match(job *model.Job, state State) bool {
	if len(state.EmploymentTypes) > 0 {
		if !contains(state.EmploymentTypes, job.Level) {
			return false
		}
	}

	if len(state.Skills) > 0 {
		if !anySkillSelected(job, state.Skills) {
			return false
		}
	}

	if len(state.SalaryRanges) > 0 {
		if !salaryInAnyBand(job.Salary, state.SalaryRanges) {
			return false
		}
	}

	// JobLevels is intentionally not consulted (see State).
	return true
}

// Apply returns the jobs matching state, preserving their relative order.
// With an empty state the input is returned unchanged.
func Apply(jobs []model.Job, state State) []model.Job {
	if state.Empty() {
		return jobs
	}
	out := make([]model.Job, 0, len(jobs))
	for i := range jobs {
		if Match(&jobs[i], state) {
			out = append(out, jobs[i])
		}
	}
	return out
}

// anySkillSelected reports whether at least one of the job's skill names is
// in selected (any-match, not all-match).
func anySkillSelected(job *model.Job, selected []string) bool {
	for _, s := range job.Skills {
		if contains(selected, s.Name) {
			return true
		}
	}
	return false
}

// salaryInAnyBand converts salaryVND to USD and reports whether it falls in
// at least one of the selected bands. Unknown band names never match.
func salaryInAnyBand(salaryVND float64, selected []string) bool {
	if salaryVND <= 0 {
		return false
	}
	usd := salaryVND / vndPerUSD
	for _, name := range selected {
		b, ok := salaryBands[name]
		if !ok {
			continue
		}
		if usd >= b.min && usd <= b.max {
			return true
		}
	}
	return false
}

func contains(set []string, v string) bool {
	if v == "" {
		return false
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
