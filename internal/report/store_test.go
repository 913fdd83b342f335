package report

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRunLifecycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run := Run{
		ID:        "run-1",
		StartedAt: time.Now().UTC(),
		Direction: "vf_to_vostfr",
		BaseDir:   "/media/vostfr",
		DonorDir:  "/media/vf",
		OutputDir: "/media/multi",
		Planned:   2,
	}
	if err := store.BeginRun(ctx, run); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	results := []Result{
		{RunID: "run-1", EpisodeKey: "E01", BaseFile: "a.mkv", DonorFile: "b.mkv", OutputFile: "out.mkv", Status: "success", OffsetMs: 250, Speedfix: true, DurationMs: 1200},
		{RunID: "run-1", EpisodeKey: "E02", BaseFile: "c.mkv", DonorFile: "d.mkv", Status: "failed", Detail: "ffmpeg exited 1"},
	}
	for _, result := range results {
		if err := store.RecordResult(ctx, result); err != nil {
			t.Fatalf("RecordResult: %v", err)
		}
	}

	if err := store.FinishRun(ctx, "run-1", 1, 1, 0); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.ID != "run-1" || got.Planned != 2 || got.Succeeded != 1 || got.Failed != 1 {
		t.Errorf("unexpected run row: %+v", got)
	}
	if got.FinishedAt == nil {
		t.Error("finished_at not recorded")
	}

	stored, err := store.RunResults(ctx, "run-1")
	if err != nil {
		t.Fatalf("RunResults: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 results, got %d", len(stored))
	}
	if stored[0].EpisodeKey != "E01" || !stored[0].Speedfix || stored[0].OffsetMs != 250 {
		t.Errorf("unexpected first result: %+v", stored[0])
	}
	if stored[1].Status != "failed" || stored[1].Detail != "ffmpeg exited 1" {
		t.Errorf("unexpected second result: %+v", stored[1])
	}
	if stored[1].OutputFile != "" {
		t.Errorf("failed job should have empty output, got %q", stored[1].OutputFile)
	}
}

func TestRecentRunsOrderAndLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		run := Run{
			ID:        string(rune('a' + i)),
			StartedAt: base.Add(time.Duration(i) * time.Hour),
			Direction: "vf_to_vostfr",
			BaseDir:   "/x", DonorDir: "/y", OutputDir: "/z",
		}
		if err := store.BeginRun(ctx, run); err != nil {
			t.Fatalf("BeginRun: %v", err)
		}
	}

	runs, err := store.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "c" || runs[1].ID != "b" {
		t.Errorf("runs not newest-first: %q, %q", runs[0].ID, runs[1].ID)
	}
}

func TestReopenExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.BeginRun(context.Background(), Run{ID: "r", StartedAt: time.Now(), Direction: "vf_to_vostfr", BaseDir: "/a", DonorDir: "/b", OutputDir: "/c"}); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	runs, err := reopened.RecentRuns(context.Background(), 5)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected persisted run after reopen, got %d", len(runs))
	}
}
