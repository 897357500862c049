package assistant

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProject(t *testing.T) {
	metadata := json.RawMessage(`{
		"corrected_code": "x = 1",
		"explanation": "fixed assignment",
		"visualization_html": "<div>viz</div>",
		"suggestions": ["rename x"],
		"warnings": ["unused variable"]
	}`)

	messages := []Message{
		{ID: "1", Content: "hi", IsUser: true},
		{ID: "2", Content: "hello", IsUser: false},
		{ID: "3", Content: "analyze this", IsUser: true},
		{ID: "4", Content: "done", IsUser: false, Metadata: metadata},
	}

	want := AnalysisView{
		Code:              "x = 1",
		Explanation:       "fixed assignment",
		VisualizationHTML: "<div>viz</div>",
		Suggestions:       []string{"rename x"},
		Warnings:          []string{"unused variable"},
	}
	if diff := cmp.Diff(want, Project(messages)); diff != "" {
		t.Errorf("Project() mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectPicksNewest(t *testing.T) {
	messages := []Message{
		{ID: "1", IsUser: false, Metadata: json.RawMessage(`{"corrected_code":"old"}`)},
		{ID: "2", IsUser: false, Metadata: json.RawMessage(`{"corrected_code":"new"}`)},
	}
	if got := Project(messages).Code; got != "new" {
		t.Errorf("Project().Code = %q, want the newest metadata", got)
	}
}

func TestProjectSkipsUserAndNullMetadata(t *testing.T) {
	messages := []Message{
		{ID: "1", IsUser: false, Metadata: json.RawMessage(`{"corrected_code":"keep"}`)},
		{ID: "2", IsUser: false, Metadata: json.RawMessage(`null`)},
		{ID: "3", IsUser: true, Metadata: json.RawMessage(`{"corrected_code":"user"}`)},
		{ID: "4", IsUser: false},
	}
	if got := Project(messages).Code; got != "keep" {
		t.Errorf("Project().Code = %q, want %q", got, "keep")
	}
}

func TestProjectEmpty(t *testing.T) {
	if !Project(nil).IsZero() {
		t.Error("Project(nil) must be the zero view")
	}
	messages := []Message{
		{ID: "1", IsUser: true, Content: "hi"},
		{ID: "2", IsUser: false, Content: "hello"},
	}
	if !Project(messages).IsZero() {
		t.Error("Project() of a metadata-free transcript must be the zero view")
	}
}

func TestProjectPartialMetadata(t *testing.T) {
	messages := []Message{
		{ID: "1", IsUser: false, Metadata: json.RawMessage(`{"explanation":"only words"}`)},
	}
	view := Project(messages)
	if view.Explanation != "only words" {
		t.Errorf("Explanation = %q", view.Explanation)
	}
	if view.Code != "" || len(view.Suggestions) != 0 || len(view.Warnings) != 0 {
		t.Errorf("absent fields must project as zero values, got %+v", view)
	}
}

func TestProjectIdempotent(t *testing.T) {
	messages := []Message{
		{ID: "1", IsUser: false, Metadata: json.RawMessage(`{"corrected_code":"x"}`)},
	}
	first := Project(messages)
	second := Project(messages)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Project() is not stable (-first +second):\n%s", diff)
	}
}
