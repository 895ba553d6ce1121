package listing_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"jobboard/listing-service/internal/filter"
	"jobboard/listing-service/internal/listing"
	"jobboard/listing-service/internal/model"
)

func fixed[T any](items []T) listing.Source[T] {
	return func(context.Context) ([]T, error) { return items, nil }
}

func failing[T any](msg string) listing.Source[T] {
	return func(context.Context) ([]T, error) { return nil, errors.New(msg) }
}

func seniorJobs(total, seniors int) []model.Job {
	jobs := make([]model.Job, 0, total)
	for i := 0; i < total; i++ {
		level := "JUNIOR"
		if i < seniors {
			level = "SENIOR"
		}
		jobs = append(jobs, model.Job{ID: i + 1, Name: fmt.Sprintf("job-%d", i+1), Level: level})
	}
	return jobs
}

// ── Load: phase transitions ────────────────────────────────────────────────

func TestLoad_Success(t *testing.T) {
	c := listing.New("jobs", 6, fixed(seniorJobs(8, 3)), filter.Match)

	if got := c.View().Phase; got != listing.PhaseIdle {
		t.Errorf("initial phase = %s, want IDLE", got)
	}

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load returned unexpected error: %v", err)
	}

	v := c.View()
	if v.Phase != listing.PhaseReady {
		t.Errorf("phase = %s, want READY", v.Phase)
	}
	if v.RawTotal != 8 {
		t.Errorf("RawTotal = %d, want 8", v.RawTotal)
	}
	if v.Page.Number != 1 {
		t.Errorf("page = %d, want 1 after load", v.Page.Number)
	}
}

func TestLoad_ColdFailure(t *testing.T) {
	c := listing.New("jobs", 6, failing[model.Job]("connection refused"), filter.Match)

	if err := c.Load(context.Background()); err == nil {
		t.Fatal("Load expected error, got nil")
	}

	v := c.View()
	if v.Phase != listing.PhaseError {
		t.Errorf("phase = %s, want ERROR", v.Phase)
	}
	if v.Err == "" {
		t.Error("error phase should carry a message")
	}
	if v.RawTotal != 0 {
		t.Errorf("RawTotal = %d, want 0 (no collection on cold failure)", v.RawTotal)
	}
}

func TestLoad_FallbackOnColdFailure(t *testing.T) {
	c := listing.New("jobs", 6, failing[model.Job]("backend down"), filter.Match)
	c.UseFallback(fixed(seniorJobs(4, 0)))

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load with working fallback returned error: %v", err)
	}

	v := c.View()
	if v.Phase != listing.PhaseReady {
		t.Errorf("phase = %s, want READY via fallback", v.Phase)
	}
	if v.RawTotal != 4 {
		t.Errorf("RawTotal = %d, want 4 from fallback", v.RawTotal)
	}
}

func TestLoad_RefreshFailureKeepsCollection(t *testing.T) {
	calls := 0
	src := func(context.Context) ([]model.Job, error) {
		calls++
		if calls == 1 {
			return seniorJobs(5, 2), nil
		}
		return nil, errors.New("backend down")
	}
	c := listing.New("jobs", 6, src, filter.Match)

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	if err := c.Load(context.Background()); err == nil {
		t.Fatal("refresh expected error, got nil")
	}

	v := c.View()
	if v.Phase != listing.PhaseReady {
		t.Errorf("phase = %s, want READY after failed refresh", v.Phase)
	}
	if v.RawTotal != 5 {
		t.Errorf("RawTotal = %d, want 5 (previous collection kept)", v.RawTotal)
	}
	if v.LastError == "" {
		t.Error("failed refresh should be recorded in LastError")
	}
}

// ── Stale fetch results are discarded ──────────────────────────────────────

func TestLoad_StaleFetchDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	calls := 0
	src := func(context.Context) ([]model.Job, error) {
		calls++
		if calls == 1 {
			close(started)
			<-release
			return seniorJobs(2, 0), nil // stale result
		}
		return seniorJobs(7, 0), nil
	}
	c := listing.New("jobs", 6, src, filter.Match)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.Load(context.Background()) // generation 1, blocks in source
	}()
	<-started

	if err := c.Load(context.Background()); err != nil { // generation 2
		t.Fatalf("second load failed: %v", err)
	}
	close(release)
	<-done

	if got := c.View().RawTotal; got != 7 {
		t.Errorf("RawTotal = %d, want 7 — stale first fetch must not overwrite the newer one", got)
	}
}

// ── Filter and page state ──────────────────────────────────────────────────

func TestFilterMutationResetsPage(t *testing.T) {
	c := listing.New("jobs", 6, fixed(seniorJobs(13, 13)), filter.Match)
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := c.SetPage(3); err != nil {
		t.Fatalf("SetPage(3): %v", err)
	}
	if got := c.View().Page.Number; got != 3 {
		t.Fatalf("page = %d, want 3", got)
	}

	c.SetFilterValue(filter.CategoryEmploymentTypes, "SENIOR", true)
	if got := c.View().Page.Number; got != 1 {
		t.Errorf("page after filter mutation = %d, want 1", got)
	}

	if err := c.SetPage(2); err != nil {
		t.Fatal(err)
	}
	c.ClearFilters()
	if got := c.View().Page.Number; got != 1 {
		t.Errorf("page after ClearFilters = %d, want 1", got)
	}

	if err := c.SetPage(2); err != nil {
		t.Fatal(err)
	}
	c.ReplaceFilters(filter.Clear().SetValue(filter.CategorySkills, "Go", true))
	if got := c.View().Page.Number; got != 1 {
		t.Errorf("page after ReplaceFilters = %d, want 1", got)
	}
}

func TestSetPage_Bounds(t *testing.T) {
	c := listing.New("jobs", 6, fixed(seniorJobs(13, 13)), filter.Match)
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	// 13 items at page size 6 → pages 1..3
	for _, page := range []int{1, 2, 3} {
		if err := c.SetPage(page); err != nil {
			t.Errorf("SetPage(%d) unexpected error: %v", page, err)
		}
	}
	for _, page := range []int{0, -1, 4} {
		if err := c.SetPage(page); err == nil {
			t.Errorf("SetPage(%d) expected error, got nil", page)
		}
	}
}

func TestSetPage_BoundsFollowFilteredCount(t *testing.T) {
	c := listing.New("jobs", 6, fixed(seniorJobs(13, 3)), filter.Match)
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	c.SetFilterValue(filter.CategoryEmploymentTypes, "SENIOR", true)
	// 3 filtered items → a single page
	if err := c.SetPage(2); err == nil {
		t.Error("SetPage(2) should fail when the filtered collection has one page")
	}
}

// ── End to end: filter + paginate ──────────────────────────────────────────

func TestSeniorFilterScenario(t *testing.T) {
	c := listing.New("jobs", 6, fixed(seniorJobs(8, 3)), filter.Match)
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	c.SetFilterValue(filter.CategoryEmploymentTypes, "SENIOR", true)

	v := c.View()
	if v.Page.Total != 3 {
		t.Errorf("filtered count = %d, want 3", v.Page.Total)
	}
	if v.Page.TotalPages != 1 {
		t.Errorf("totalPages = %d, want 1", v.Page.TotalPages)
	}
	if v.RawTotal != 8 {
		t.Errorf("RawTotal = %d, want 8 (raw collection untouched)", v.RawTotal)
	}
	for i, wantID := range []int{1, 2, 3} {
		if v.Page.Items[i].ID != wantID {
			t.Errorf("Items[%d].ID = %d, want %d (original relative order)", i, v.Page.Items[i].ID, wantID)
		}
	}

	c.SetFilterValue(filter.CategoryEmploymentTypes, "SENIOR", false)
	if got := c.View().Page.Total; got != 8 {
		t.Errorf("filtered count after deselect = %d, want 8", got)
	}
}

func TestView_EmptyFilteredResult(t *testing.T) {
	c := listing.New("jobs", 6, fixed(seniorJobs(5, 0)), filter.Match)
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	c.SetFilterValue(filter.CategoryEmploymentTypes, "SENIOR", true)
	v := c.View()
	if v.Page.TotalPages != 1 {
		t.Errorf("totalPages = %d, want 1 for an empty filtered result", v.Page.TotalPages)
	}
	if len(v.Page.Items) != 0 {
		t.Errorf("Items = %v, want empty", v.Page.Items)
	}
}

// ── Unfiltered listings ────────────────────────────────────────────────────

func TestNilPredicateListsEverything(t *testing.T) {
	companies := make([]model.Company, 13)
	for i := range companies {
		companies[i] = model.Company{ID: i + 1}
	}
	c := listing.New[model.Company]("companies", 6, fixed(companies), nil)
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	v := c.View()
	if v.Page.Total != 13 || v.Page.TotalPages != 3 {
		t.Errorf("total = %d pages = %d, want 13 and 3", v.Page.Total, v.Page.TotalPages)
	}
}

// ── Subscribers ────────────────────────────────────────────────────────────

func TestSubscribe(t *testing.T) {
	c := listing.New("jobs", 6, fixed(seniorJobs(8, 3)), filter.Match)

	notified := 0
	unsubscribe := c.Subscribe(func() { notified++ })

	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if notified != 1 {
		t.Errorf("notifications after load = %d, want 1", notified)
	}

	c.SetFilterValue(filter.CategorySkills, "Go", true)
	if notified != 2 {
		t.Errorf("notifications after filter mutation = %d, want 2", notified)
	}

	unsubscribe()
	c.ClearFilters()
	if notified != 2 {
		t.Errorf("notifications after unsubscribe = %d, want 2", notified)
	}
}
