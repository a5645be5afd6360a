package analyzer

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-analyzer/internal/classify"
	"github.com/spigell/resume-analyzer/internal/document"
	"github.com/spigell/resume-analyzer/internal/document/documenttest"
	"github.com/spigell/resume-analyzer/internal/names"
)

func TestAnalyzeDocument(t *testing.T) {
	t.Parallel()

	doc := &documenttest.Doc{Pages: []*document.Page{
		{Lines: []document.Line{
			{Spans: []document.Span{{Text: "JANE DOE", FontSize: 24, Top: 60}}},
			{Spans: []document.Span{{Text: "Data Scientist", FontSize: 14, Top: 90}}},
			{Spans: []document.Span{{Text: "jane.doe@example.com | +91 98765 43210", FontSize: 10, Top: 110}}},
			{Spans: []document.Span{{Text: "Objective", FontSize: 12, Top: 140}}},
		}},
		documenttest.Lines(11, "Experience: Python, TensorFlow, SQL", "Projects"),
	}}

	result, err := New(nil, Config{}, nil).AnalyzeDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profile := result.Profile
	if profile.Name != "JANE DOE" || profile.NameSource != names.SourceLayout {
		t.Fatalf("unexpected name: %q (%s)", profile.Name, profile.NameSource)
	}
	if profile.Email != "jane.doe@example.com" {
		t.Fatalf("unexpected email: %q", profile.Email)
	}
	if profile.Phone != "+91 98765 43210" {
		t.Fatalf("unexpected phone: %q", profile.Phone)
	}
	if !reflect.DeepEqual(profile.Skills, []string{"Python", "SQL", "TensorFlow"}) {
		t.Fatalf("unexpected skills: %v", profile.Skills)
	}
	if profile.PageCount != 2 || profile.RawText == "" {
		t.Fatalf("unexpected page count %d or empty text", profile.PageCount)
	}

	if result.Prediction.Domain != classify.DataScience || result.Prediction.ExperienceTier != classify.Intermediate {
		t.Fatalf("unexpected prediction: %+v", result.Prediction)
	}
	if result.Score.Total != 60 {
		t.Fatalf("unexpected score: %+v", result.Score)
	}
	if doc.Closed {
		t.Fatal("AnalyzeDocument must not close a caller-owned document")
	}
}

func TestAnalyzeDocumentWithoutPages(t *testing.T) {
	t.Parallel()

	result, err := New(nil, Config{}, nil).AnalyzeDocument(context.Background(), &documenttest.Doc{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Profile.Name != names.NotFound || result.Profile.PageCount != 0 {
		t.Fatalf("unexpected profile: %+v", result.Profile)
	}
	if result.Profile.Email != "" || result.Profile.Phone != "" || len(result.Profile.Skills) != 0 {
		t.Fatalf("expected empty contact details: %+v", result.Profile)
	}
	if result.Prediction.Domain != classify.Unclassified || result.Prediction.ExperienceTier != classify.Unknown {
		t.Fatalf("unexpected prediction: %+v", result.Prediction)
	}
	if result.Score.Total != 0 {
		t.Fatalf("unexpected score: %d", result.Score.Total)
	}
}

func TestAnalyzeDocumentUnreadable(t *testing.T) {
	t.Parallel()

	doc := &documenttest.Doc{Pages: []*document.Page{{}}, PageErr: document.ErrUnreadable}
	if _, err := New(nil, Config{}, nil).AnalyzeDocument(context.Background(), doc); !errors.Is(err, document.ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
}

func TestAnalyzeRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := New(nil, Config{}, nil).Analyze(context.Background(), "notes.txt", []byte("plain text, not a paged document"))
	if !errors.Is(err, document.ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
}

func TestAnalyzePDF(t *testing.T) {
	t.Parallel()

	raw := documenttest.PDF([]documenttest.Text{
		{Value: "Jane Doe", Size: 24, X: 72, Y: 720, Bold: true},
		{Value: "Objective", Size: 12, X: 72, Y: 690},
		{Value: "Built Django and React apps", Size: 12, X: 72, Y: 670},
	})

	core, observed := observer.New(zapcore.InfoLevel)
	analyzer := New(nil, Config{Skills: []string{"Django", "React", "Kubernetes"}}, zap.New(core))

	result, err := analyzer.Analyze(context.Background(), "cv.pdf", raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Source != "cv.pdf" || result.Profile.Name != "Jane Doe" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !reflect.DeepEqual(result.Profile.Skills, []string{"Django", "React"}) {
		t.Fatalf("unexpected skills: %v", result.Profile.Skills)
	}
	if result.Prediction.Domain != classify.WebDev || result.Prediction.ExperienceTier != classify.Fresher {
		t.Fatalf("unexpected prediction: %+v", result.Prediction)
	}
	if result.Score.Total != 20 {
		t.Fatalf("unexpected score: %d", result.Score.Total)
	}

	entries := observed.FilterMessage("analyzed document").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry per document, got %d", len(entries))
	}
	if ctx := entries[0].ContextMap(); ctx["document"] != "cv.pdf" || ctx["domain"] != string(classify.WebDev) {
		t.Fatalf("unexpected log fields: %v", ctx)
	}
}
