package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/SHoar/Wedding-AI/internal/config"
	"github.com/SHoar/Wedding-AI/internal/domain/commonModels"
	"github.com/SHoar/Wedding-AI/internal/rag/embedding"
	"github.com/SHoar/Wedding-AI/internal/rag/vectorDB"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
)

const sectionSeparator = "\n## "

type rawPage struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

// SplitSections cuts markdown at level-two headings. Blank sections are dropped and long ones truncated.
func SplitSections(content string, source string, docType commonModels.DocType, firstOrder int) []commonModels.DocChunk {
	sections := strings.Split(content, sectionSeparator)
	chunks := make([]commonModels.DocChunk, 0, len(sections))
	order := firstOrder

	for i, section := range sections {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		firstLine, _, _ := strings.Cut(section, "\n")
		heading := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(firstLine), "#"))

		text := section
		if i > 0 {
			text = "## " + section
		}

		chunks = append(chunks, commonModels.DocChunk{
			ChunkId:    chunkID(source, order),
			Source:     source,
			Heading:    heading,
			Text:       truncate(text),
			ChunkOrder: order,
			DocType:    docType,
		})
		order++
	}
	return chunks
}

// truncate counts characters, not bytes, so multi-byte text is never split mid-rune.
func truncate(text string) string {
	if len(text) <= config.MaxChunkChars {
		return text
	}
	runes := []rune(text)
	if len(runes) <= config.MaxChunkChars {
		return text
	}
	return string(runes[:config.MaxChunkChars]) + config.ChunkTruncateMark
}

// chunkID is stable for a given source and position so rebuilds overwrite instead of duplicating.
func chunkID(source string, order int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(config.CollectionName+"/"+source+"#"+strconv.Itoa(order))).String()
}

// LoadDocuments reads every markdown file directly under dir in name order and chunks it.
// With extraFormats, text, office and pdf files are loaded too. Unreadable files are skipped.
func LoadDocuments(dir string, extraFormats bool) ([]commonModels.DocChunk, error) {
	logger := logger_i.NewLogger("Document Loader")

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		logger.Warn("Docs directory missing, index will be empty", "dir", dir)
		return []commonModels.DocChunk{}, nil
	}

	fsys := os.DirFS(dir)
	names, err := doublestar.Glob(fsys, config.DocsGlob)
	if err != nil {
		return nil, fmt.Errorf("glob docs: %w", err)
	}
	if extraFormats {
		// extension case varies with the tool that exported the file
		extra, err := doublestar.Glob(fsys, config.ExtraDocsGlob, doublestar.WithCaseInsensitive(), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob extra docs: %w", err)
		}
		names = append(names, extra...)
	}
	sort.Strings(names)

	var all []commonModels.DocChunk
	for _, name := range names {
		path := filepath.Join(dir, name)
		docType := getDocType(path)

		pages, err := extractText(path, docType)
		if err != nil {
			logger.Warn("Skipping unreadable document", "file", name, "error", err)
			continue
		}

		order := 0
		for _, page := range pages {
			chunks := SplitSections(page.Content, name, docType, order)
			order += len(chunks)
			all = append(all, chunks...)
		}
		logger.Debug("Loaded document", "file", name, "chunks", order)
	}
	logger.Info("Documents loaded", "files", len(names), "chunks", len(all))
	return all, nil
}

func getDocType(docPath string) commonModels.DocType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".md":
		return commonModels.MD
	case ".pdf":
		return commonModels.PDF
	case ".docx", ".rtf", ".odt":
		return commonModels.DOCX
	case ".txt":
		return commonModels.TXT
	default:
		return commonModels.ERR
	}
}

func extractText(path string, contentType commonModels.DocType) ([]rawPage, error) {
	switch contentType {
	case commonModels.MD:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return []rawPage{{Number: 1, Content: string(data)}}, nil
	case commonModels.PDF:
		return extractPDF(path)
	case commonModels.DOCX, commonModels.TXT:
		return extractPlainDocument(path)
	default:
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}
}

// BatchIngest embeds every chunk in fixed-size batches, then writes them with a single Add.
// Nothing reaches the collection unless every batch embedded.
func BatchIngest(ctx context.Context, chunks []commonModels.DocChunk, collection vectorDB.Collection, embedder embedding.Embedder) error {
	logger := logger_i.NewLogger("Batch Ingestion").WithTrace(ctx)
	batchSize := config.EmbeddingBatchSize

	vectors := make([][]float32, 0, len(chunks))
	for i := 0; i < len(chunks); i += batchSize {
		end := min(i+batchSize, len(chunks))

		texts := make([]string, 0, end-i)
		for _, c := range chunks[i:end] {
			texts = append(texts, c.Text)
		}

		logger.Debug("Starting embedding call", "batch start", i, "batch length", len(texts))
		batch, err := embedder.BatchEmbedding(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding batch failed: %w", err)
		}
		if len(batch) != len(texts) {
			return fmt.Errorf("embedding batch returned %d vectors for %d chunks", len(batch), len(texts))
		}
		vectors = append(vectors, batch...)
	}

	if err := collection.Add(ctx, chunks, vectors); err != nil {
		return fmt.Errorf("adding chunks to collection failed: %w", err)
	}
	return nil
}
