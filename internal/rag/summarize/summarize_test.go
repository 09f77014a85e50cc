package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/SHoar/Wedding-AI/internal/rag/llm"
)

type fakeProvider struct {
	got     llm.Request
	content llm.Content
	err     error
}

func (f *fakeProvider) Complete(ctx context.Context, req llm.Request) (llm.Content, error) {
	f.got = req
	return f.content, f.err
}

func (f *fakeProvider) Model() string { return "fake" }

func TestSummarize(t *testing.T) {
	p := &fakeProvider{content: llm.Text("  - Ceremony at 4pm\n")}

	got, err := New(p).Summarize(context.Background(), "Wedding: A & B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "- Ceremony at 4pm" {
		t.Errorf("summary should be trimmed, got %q", got)
	}
	if !strings.HasSuffix(p.got.User, "\n\nWedding: A & B") {
		t.Errorf("context should follow the instruction, got %q", p.got.User)
	}
	if !strings.Contains(p.got.System, "Keep facts, remove fluff.") {
		t.Errorf("unexpected system prompt %q", p.got.System)
	}
	if p.got.Temperature == nil || *p.got.Temperature != 0 {
		t.Error("summaries should request temperature 0")
	}
}

func TestSummarize_Parts(t *testing.T) {
	p := &fakeProvider{content: llm.Parts(llm.TextPart("guests:"), llm.TextPart("12"))}

	got, err := New(p).Summarize(context.Background(), "ctx")
	if err != nil || got != "guests: 12" {
		t.Errorf("got %q, %v", got, err)
	}
}

func TestSummarize_Absent(t *testing.T) {
	got, err := New(&fakeProvider{content: llm.Absent()}).Summarize(context.Background(), "ctx")
	if err != nil || got != "" {
		t.Errorf("absent content should give an empty summary, got %q, %v", got, err)
	}
}

func TestSummarize_Error(t *testing.T) {
	upstream := errors.New("rate limited")
	_, err := New(&fakeProvider{err: upstream}).Summarize(context.Background(), "ctx")
	if !errors.Is(err, upstream) {
		t.Errorf("expected upstream error, got %v", err)
	}
	if err.Error() != upstream.Error() {
		t.Errorf("upstream message should pass through unprefixed, got %q", err.Error())
	}
}
