package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SHoar/Wedding-AI/internal/domain/commonModels"
)

// --- Mocks for BatchIngest ---

type mockEmbedder struct {
	batchFunc func(ctx context.Context, chunks []string) ([][]float32, error)
}

func (m *mockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	return nil, nil
}
func (m *mockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	return m.batchFunc(ctx, chunks)
}

type mockCollection struct {
	addFunc func(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error
}

func (m *mockCollection) Count(ctx context.Context) (int, error) { return 0, nil }
func (m *mockCollection) Add(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error {
	return m.addFunc(ctx, chunks, vectors)
}
func (m *mockCollection) Query(ctx context.Context, v []float32, k int) ([]commonModels.DocChunk, error) {
	return nil, nil
}
func (m *mockCollection) Reset(ctx context.Context) error { return nil }
func (m *mockCollection) Close() error                    { return nil }

// --- Unit Tests ---

func TestGetDocType(t *testing.T) {
	tests := []struct {
		path     string
		expected commonModels.DocType
	}{
		{"guide.md", commonModels.MD},
		{"test.pdf", commonModels.PDF},
		{"DOC.DOCX", commonModels.DOCX},
		{"notes.txt", commonModels.TXT},
		{"image.png", commonModels.ERR},
	}

	for _, tt := range tests {
		if got := getDocType(tt.path); got != tt.expected {
			t.Errorf("getDocType(%s) = %v; want %v", tt.path, got, tt.expected)
		}
	}
}

func TestSplitSections(t *testing.T) {
	content := "# Wedding Guide\nIntro text.\n## Catering\nVegan options.\n## \n\n## Music\nDJ until 11pm."

	chunks := SplitSections(content, "guide.md", commonModels.MD, 0)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks (blank section dropped), got %d: %+v", len(chunks), chunks)
	}

	if chunks[0].Heading != "Wedding Guide" || chunks[0].Text != "# Wedding Guide\nIntro text." {
		t.Errorf("first chunk should keep its own text: %+v", chunks[0])
	}
	if chunks[1].Heading != "Catering" || chunks[1].Text != "## Catering\nVegan options." {
		t.Errorf("later chunks should be re-prefixed: %+v", chunks[1])
	}
	if chunks[2].Heading != "Music" || chunks[2].ChunkOrder != 2 {
		t.Errorf("unexpected third chunk: %+v", chunks[2])
	}
	for _, c := range chunks {
		if c.Source != "guide.md" || c.ChunkId == "" {
			t.Errorf("chunk missing metadata: %+v", c)
		}
	}
}

func TestSplitSections_BlankDocument(t *testing.T) {
	if chunks := SplitSections("  \n\n ", "empty.md", commonModels.MD, 0); len(chunks) != 0 {
		t.Errorf("expected no chunks, got %+v", chunks)
	}
}

func TestSplitSections_Truncates(t *testing.T) {
	long := "## Long\n" + strings.Repeat("x", 2000)
	chunks := SplitSections("intro\n"+long, "long.md", commonModels.MD, 0)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	text := chunks[1].Text
	if !strings.HasSuffix(text, "\n...") {
		t.Errorf("truncated chunk should end with marker")
	}
	if len([]rune(strings.TrimSuffix(text, "\n..."))) != 1200 {
		t.Errorf("truncated body should be 1200 characters, got %d", len(text)-4)
	}
}

func TestSplitSections_TruncatesByRune(t *testing.T) {
	text := strings.Repeat("é", 1200)
	chunks := SplitSections(text, "accents.md", commonModels.MD, 0)
	if chunks[0].Text != text {
		t.Error("1200 multi-byte characters should not be truncated")
	}
}

func TestChunkID_Stable(t *testing.T) {
	if chunkID("a.md", 1) != chunkID("a.md", 1) {
		t.Error("chunk ids should be deterministic")
	}
	if chunkID("a.md", 1) == chunkID("a.md", 2) || chunkID("a.md", 1) == chunkID("b.md", 1) {
		t.Error("chunk ids should differ by source and order")
	}
}

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("b.md", "# B\n## Two\nsecond")
	write("a.md", "# A\nfirst")
	write("notes.txt", "plain notes")
	write("ignored.json", "{}")

	chunks, err := LoadDocuments(dir, false)
	if err != nil {
		t.Fatalf("LoadDocuments failed: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 markdown chunks, got %d", len(chunks))
	}
	if chunks[0].Source != "a.md" || chunks[1].Source != "b.md" || chunks[2].Heading != "Two" {
		t.Errorf("chunks should follow sorted file order: %+v", chunks)
	}

	withExtra, err := LoadDocuments(dir, true)
	if err != nil {
		t.Fatalf("LoadDocuments with extra formats failed: %v", err)
	}
	if len(withExtra) != 4 || withExtra[3].Source != "notes.txt" || withExtra[3].DocType != commonModels.TXT {
		t.Errorf("expected text file to be loaded last: %+v", withExtra)
	}
}

func TestLoadDocuments_ExtraFormatsIgnoreExtensionCase(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"guide.md":  "# Guide\nhello",
		"Vows.TXT":  "we promise",
		"menu.Txt":  "dinner at eight",
		"README.MD": "# Upper\nmarkdown stays case sensitive",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	chunks, err := LoadDocuments(dir, true)
	if err != nil {
		t.Fatalf("LoadDocuments failed: %v", err)
	}
	sources := map[string]commonModels.DocType{}
	for _, c := range chunks {
		sources[c.Source] = c.DocType
	}
	if sources["Vows.TXT"] != commonModels.TXT || sources["menu.Txt"] != commonModels.TXT {
		t.Errorf("upper-case extensions should be loaded as text: %v", sources)
	}
	if _, ok := sources["guide.md"]; !ok || len(sources) != 3 {
		t.Errorf("expected guide.md plus the two text files, got %v", sources)
	}
}

func TestLoadDocuments_MissingDir(t *testing.T) {
	chunks, err := LoadDocuments(filepath.Join(t.TempDir(), "nope"), false)
	if err != nil || len(chunks) != 0 {
		t.Errorf("missing dir should give no chunks and no error, got %v, %v", chunks, err)
	}
}

func TestBatchIngest(t *testing.T) {
	ctx := context.Background()
	chunks := make([]commonModels.DocChunk, 150) // two embedding batches (100 + 50)
	for i := range chunks {
		chunks[i] = commonModels.DocChunk{Text: "test content"}
	}

	var addSizes []int
	coll := &mockCollection{
		addFunc: func(ctx context.Context, c []commonModels.DocChunk, v [][]float32) error {
			addSizes = append(addSizes, len(c))
			if len(c) != len(v) {
				t.Errorf("Add got %d chunks and %d vectors", len(c), len(v))
			}
			return nil
		},
	}

	var embedSizes []int
	emb := &mockEmbedder{
		batchFunc: func(ctx context.Context, ch []string) ([][]float32, error) {
			embedSizes = append(embedSizes, len(ch))
			return make([][]float32, len(ch)), nil
		},
	}

	if err := BatchIngest(ctx, chunks, coll, emb); err != nil {
		t.Fatalf("BatchIngest failed: %v", err)
	}

	if len(embedSizes) != 2 || embedSizes[0] != 100 || embedSizes[1] != 50 {
		t.Errorf("Expected embedding batches of 100 and 50, got %v", embedSizes)
	}
	if len(addSizes) != 1 || addSizes[0] != 150 {
		t.Errorf("Expected a single Add of 150 chunks, got %v", addSizes)
	}
}

func TestBatchIngest_LaterBatchFailureWritesNothing(t *testing.T) {
	chunks := make([]commonModels.DocChunk, 151)
	for i := range chunks {
		chunks[i] = commonModels.DocChunk{Text: "section"}
	}

	added := 0
	coll := &mockCollection{
		addFunc: func(ctx context.Context, c []commonModels.DocChunk, v [][]float32) error {
			added += len(c)
			return nil
		},
	}
	calls := 0
	emb := &mockEmbedder{
		batchFunc: func(ctx context.Context, ch []string) ([][]float32, error) {
			calls++
			if calls == 2 {
				return nil, errors.New("rate limited")
			}
			return make([][]float32, len(ch)), nil
		},
	}

	err := BatchIngest(context.Background(), chunks, coll, emb)
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected the second batch error, got %v", err)
	}
	if added != 0 {
		t.Errorf("no chunk should be written when a batch fails, got %d", added)
	}
}

func TestBatchIngest_ShortBatch(t *testing.T) {
	coll := &mockCollection{
		addFunc: func(ctx context.Context, c []commonModels.DocChunk, v [][]float32) error {
			t.Error("Add should not be called")
			return nil
		},
	}
	emb := &mockEmbedder{
		batchFunc: func(ctx context.Context, ch []string) ([][]float32, error) {
			return make([][]float32, len(ch)-1), nil
		},
	}
	err := BatchIngest(context.Background(), []commonModels.DocChunk{{Text: "a"}, {Text: "b"}}, coll, emb)
	if err == nil {
		t.Error("expected an error for a short embedding batch")
	}
}

func TestBatchIngest_Error(t *testing.T) {
	tests := []struct {
		name     string
		embedErr error
		addErr   error
	}{
		{"embedding fails", errors.New("quota"), nil},
		{"add fails", nil, errors.New("disk full")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coll := &mockCollection{
				addFunc: func(ctx context.Context, c []commonModels.DocChunk, v [][]float32) error {
					return tt.addErr
				},
			}
			emb := &mockEmbedder{
				batchFunc: func(ctx context.Context, ch []string) ([][]float32, error) {
					return make([][]float32, len(ch)), tt.embedErr
				},
			}

			err := BatchIngest(context.Background(), []commonModels.DocChunk{{Text: "hi"}}, coll, emb)
			if err == nil {
				t.Error("Expected error from BatchIngest, got nil")
			}
		})
	}
}
