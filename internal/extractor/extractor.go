package extractor

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	apperrors "github.com/SAP-F-2025/quiz-generation-service/internal/errors"
	"github.com/SAP-F-2025/quiz-generation-service/internal/storage"
	"github.com/SAP-F-2025/quiz-generation-service/internal/utils"
	"github.com/ledongthuc/pdf"
)

// MinTextLength is the shortest normalized text accepted from an upload.
const MinTextLength = 10

// Document is the normalized text layer of a PDF.
type Document struct {
	Text      string `json:"text"`
	PageCount int    `json:"page_count"`
}

type Extractor struct {
	logger utils.Logger
}

func New(logger utils.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// ExtractFile extracts text from a staged upload and removes the staged copy
// on every exit path.
func (e *Extractor) ExtractFile(ctx context.Context, file *storage.StagedFile) (*Document, error) {
	defer func() {
		if err := file.Remove(); err != nil {
			e.logger.Warn("Failed to remove staged upload", "file", file.Name, "error", err)
		}
	}()

	doc, err := e.Extract(ctx, file, file.Size)
	if err != nil {
		e.logger.Warn("Text extraction failed", "file", file.Name, "error", err)
		return nil, err
	}

	e.logger.Info("Extracted PDF text",
		"file", file.Name,
		"pages", doc.PageCount,
		"chars", utf8.RuneCountInString(doc.Text))
	return doc, nil
}

// Extract reads every page's text layer in page order and normalizes
// whitespace. Parser panics on malformed input surface as ExtractionError.
func (e *Extractor) Extract(ctx context.Context, src io.ReaderAt, size int64) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = apperrors.NewExtractionError("the file could not be parsed as a PDF", fmt.Errorf("%v", r))
		}
	}()

	reader, err := pdf.NewReader(src, size)
	if err != nil {
		return nil, apperrors.NewExtractionError("the file is not a valid PDF", err)
	}

	pageCount := reader.NumPage()
	fonts := make(map[string]*pdf.Font)

	var raw strings.Builder
	for i := 1; i <= pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				f := page.Font(name)
				fonts[name] = &f
			}
		}

		text, err := page.GetPlainText(fonts)
		if err != nil {
			return nil, apperrors.NewExtractionError(fmt.Sprintf("page %d could not be read", i), err)
		}
		raw.WriteString(text)
		raw.WriteByte(' ')
	}

	text := Normalize(raw.String())
	if utf8.RuneCountInString(text) < MinTextLength {
		return nil, apperrors.NewExtractionError("no readable text found in the PDF", nil)
	}

	return &Document{Text: text, PageCount: pageCount}, nil
}

// Normalize collapses every whitespace run to a single space and trims the ends.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
