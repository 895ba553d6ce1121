package filter_test

import (
	"reflect"
	"testing"

	"jobboard/listing-service/internal/filter"
)

// ── ParseCategory ──────────────────────────────────────────────────────────

func TestParseCategory_ValidValues(t *testing.T) {
	valid := []string{"employmentTypes", "skills", "jobLevels", "salaryRanges"}
	for _, s := range valid {
		got, err := filter.ParseCategory(s)
		if err != nil {
			t.Errorf("ParseCategory(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseCategory(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseCategory_InvalidValue(t *testing.T) {
	for _, s := range []string{"", "salary", "EMPLOYMENTTYPES"} {
		if _, err := filter.ParseCategory(s); err == nil {
			t.Errorf("ParseCategory(%q) expected error, got nil", s)
		}
	}
}

// ── SetValue ───────────────────────────────────────────────────────────────

func TestSetValue_AddAndRemove(t *testing.T) {
	s := filter.Clear()

	s = s.SetValue(filter.CategorySkills, "Go", true)
	s = s.SetValue(filter.CategorySkills, "Rust", true)
	if want := []string{"Go", "Rust"}; !reflect.DeepEqual(s.Skills, want) {
		t.Fatalf("Skills = %v, want %v", s.Skills, want)
	}

	s = s.SetValue(filter.CategorySkills, "Go", false)
	if want := []string{"Rust"}; !reflect.DeepEqual(s.Skills, want) {
		t.Fatalf("Skills after remove = %v, want %v", s.Skills, want)
	}
}

func TestSetValue_NoDuplicates(t *testing.T) {
	s := filter.Clear()
	s = s.SetValue(filter.CategoryEmploymentTypes, "SENIOR", true)
	s = s.SetValue(filter.CategoryEmploymentTypes, "SENIOR", true)
	if len(s.EmploymentTypes) != 1 {
		t.Errorf("EmploymentTypes = %v, want a single entry", s.EmploymentTypes)
	}
}

func TestSetValue_RemoveAbsentIsNoop(t *testing.T) {
	s := filter.Clear().SetValue(filter.CategorySalaryRanges, "$700 - $1000", true)
	s = s.SetValue(filter.CategorySalaryRanges, "$3000 or above", false)
	if want := []string{"$700 - $1000"}; !reflect.DeepEqual(s.SalaryRanges, want) {
		t.Errorf("SalaryRanges = %v, want %v", s.SalaryRanges, want)
	}
}

func TestSetValue_DoesNotMutateReceiver(t *testing.T) {
	old := filter.Clear().SetValue(filter.CategorySkills, "Go", true)
	_ = old.SetValue(filter.CategorySkills, "Java", true)
	_ = old.SetValue(filter.CategorySkills, "Go", false)

	if want := []string{"Go"}; !reflect.DeepEqual(old.Skills, want) {
		t.Errorf("original state mutated: Skills = %v, want %v", old.Skills, want)
	}
}

func TestSetValue_TouchesOnlyItsCategory(t *testing.T) {
	s := filter.Clear().
		SetValue(filter.CategoryEmploymentTypes, "JUNIOR", true).
		SetValue(filter.CategoryJobLevels, "Mid Level", true)

	if want := []string{"JUNIOR"}; !reflect.DeepEqual(s.EmploymentTypes, want) {
		t.Errorf("EmploymentTypes = %v, want %v", s.EmploymentTypes, want)
	}
	if want := []string{"Mid Level"}; !reflect.DeepEqual(s.JobLevels, want) {
		t.Errorf("JobLevels = %v, want %v", s.JobLevels, want)
	}
	if len(s.Skills) != 0 || len(s.SalaryRanges) != 0 {
		t.Errorf("unrelated categories changed: %+v", s)
	}
}

// ── Clear / Empty ──────────────────────────────────────────────────────────

func TestClear(t *testing.T) {
	s := filter.Clear().
		SetValue(filter.CategorySkills, "Go", true).
		SetValue(filter.CategorySalaryRanges, "$3000 or above", true)
	if s.Empty() {
		t.Fatal("state with selections reported Empty")
	}

	s = filter.Clear()
	if !s.Empty() {
		t.Errorf("Clear() not empty: %+v", s)
	}
}

// ── Values ─────────────────────────────────────────────────────────────────

func TestValues(t *testing.T) {
	s := filter.Clear().SetValue(filter.CategorySkills, "Go", true)

	if got := s.Values(filter.CategorySkills); !reflect.DeepEqual(got, []string{"Go"}) {
		t.Errorf("Values(skills) = %v, want [Go]", got)
	}
	if got := s.Values(filter.CategoryJobLevels); len(got) != 0 {
		t.Errorf("Values(jobLevels) = %v, want empty", got)
	}
}
