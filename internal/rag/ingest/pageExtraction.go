package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/SHoar/Wedding-AI/internal/config"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

// extractPDF returns one rawPage per non-empty page. Pages that fail or stall are skipped.
func extractPDF(path string) ([]rawPage, error) {
	reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	log := logger_i.NewLogger("Page Extraction").With("file", path)
	total := reader.NumPage()
	log.Debug("Extracting pdf", "pages", total)

	pages := make([]rawPage, 0, total)
	skipped := 0
	for n := 1; n <= total; n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			skipped++
			continue
		}
		text, err := pageText(page)
		if err != nil {
			log.Warn("Skipping pdf page", "page", n, "error", err)
			skipped++
			continue
		}
		if text = strings.TrimSpace(text); text == "" {
			skipped++
			continue
		}
		pages = append(pages, rawPage{Number: n, Content: text})
	}
	if skipped > 0 {
		log.Debug("Pdf pages skipped", "skipped", skipped, "kept", len(pages))
	}
	return pages, nil
}

// extractPlainDocument covers .docx, .odt, .rtf and .txt, which have no page structure.
func extractPlainDocument(path string) ([]rawPage, error) {
	text, err := cat.File(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return []rawPage{{Number: 1, Content: text}}, nil
}

// pageText bounds GetPlainText, which can loop forever on malformed content streams.
// The stalled goroutine is abandoned.
func pageText(page pdf.Page) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), config.PdfPageTimeout)
	defer cancel()

	type extracted struct {
		text string
		err  error
	}
	out := make(chan extracted, 1)
	go func() {
		text, err := page.GetPlainText(nil)
		out <- extracted{text, err}
	}()

	select {
	case r := <-out:
		return r.text, r.err
	case <-ctx.Done():
		return "", fmt.Errorf("page extraction: %w", ctx.Err())
	}
}
