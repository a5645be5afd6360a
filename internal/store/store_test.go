package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/spigell/resume-analyzer/internal/analyzer"
	"github.com/spigell/resume-analyzer/internal/classify"
)

func openTemp(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "nested", "analyses.db"), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndList(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	first, err := s.Save(ctx, Record{
		Name:              "Jane Doe",
		Email:             "jane@example.com",
		Score:             80,
		PageCount:         2,
		Domain:            string(classify.DataScience),
		Tier:              string(classify.Intermediate),
		Skills:            []string{"Python", "SQL"},
		RecommendedSkills: []string{"Data Mining"},
		SourceFile:        "jane.pdf",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if first.ID == uuid.Nil || !first.CreatedAt.Equal(base) {
		t.Fatalf("expected id and timestamp to be assigned: %+v", first)
	}

	fixedID := uuid.New()
	second, err := s.Save(ctx, Record{ID: fixedID, Name: "John Roe", CreatedAt: base.Add(time.Hour)})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if second.ID != fixedID {
		t.Fatalf("expected provided id to be kept, got %s", second.ID)
	}

	records, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	if !reflect.DeepEqual(records[0], first) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", records[0], first)
	}
	if records[1].Name != "John Roe" || records[1].Skills == nil || len(records[1].Skills) != 0 {
		t.Fatalf("unexpected second record: %+v", records[1])
	}
}

func TestDuplicateIDRejected(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	rec, err := s.Save(ctx, Record{Name: "Jane Doe"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := s.Save(ctx, rec); err == nil {
		t.Fatal("expected primary key violation")
	}
}

func TestInMemory(t *testing.T) {
	s, err := Open(memoryPath, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if _, err := s.Save(context.Background(), Record{Name: "Jane Doe"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	records, err := s.List(context.Background())
	if err != nil || len(records) != 1 {
		t.Fatalf("expected one record, got %d (%v)", len(records), err)
	}
}

func TestRecordFromResult(t *testing.T) {
	t.Parallel()

	rec := RecordFromResult(&analyzer.Result{
		Source: "cv.pdf",
		Profile: analyzer.Profile{
			Name:      "Jane Doe",
			Email:     "jane@example.com",
			Phone:     "+91 98765 43210",
			Skills:    []string{"React"},
			PageCount: 1,
		},
		Prediction: classify.Prediction{
			Domain:            classify.WebDev,
			RecommendedSkills: []string{"PHP"},
			ExperienceTier:    classify.Fresher,
		},
		Score: classify.ScoreReport{Total: 40},
	})

	want := Record{
		Name:              "Jane Doe",
		Email:             "jane@example.com",
		Phone:             "+91 98765 43210",
		Score:             40,
		PageCount:         1,
		Domain:            "Web Development",
		Tier:              "Fresher",
		Skills:            []string{"React"},
		RecommendedSkills: []string{"PHP"},
		SourceFile:        "cv.pdf",
	}
	if !reflect.DeepEqual(rec, want) {
		t.Fatalf("unexpected record:\n got %+v\nwant %+v", rec, want)
	}
}
