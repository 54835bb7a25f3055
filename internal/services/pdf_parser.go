package services

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFParserService interface {
	ExtractText(r io.ReaderAt, size int64) (*PDFContent, error)
	ExtractFile(filePath string) (*PDFContent, error)
}

type PDFContent struct {
	Text       string
	PageCount  int
	EmptyPages int
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractText concatenates the plain text of every page in order. Pages that
// are null or fail to extract contribute nothing; only an unreadable document is an error.
func (p *pdfParserService) ExtractText(r io.ReaderAt, size int64) (content *PDFContent, err error) {
	// ledongthuc/pdf panics on some malformed inputs
	defer func() {
		if rec := recover(); rec != nil {
			content = nil
			err = extractionError(fmt.Errorf("failed to read PDF: %v", rec))
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, extractionError(fmt.Errorf("failed to open PDF: %w", err))
	}

	totalPage := reader.NumPage()
	text, empty := collectPages(totalPage, func(pageIndex int) (string, error) {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			return "", nil
		}
		return page.GetPlainText(nil)
	})

	return &PDFContent{
		Text:       text,
		PageCount:  totalPage,
		EmptyPages: empty,
	}, nil
}

func (p *pdfParserService) ExtractFile(filePath string) (*PDFContent, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, extractionError(fmt.Errorf("failed to open file: %w", err))
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, extractionError(fmt.Errorf("failed to stat file: %w", err))
	}

	return p.ExtractText(f, info.Size())
}

// collectPages joins the text of pages 1..total with no separator and counts pages that yielded nothing.
func collectPages(total int, pageText func(pageIndex int) (string, error)) (string, int) {
	var textBuilder strings.Builder
	empty := 0

	for pageIndex := 1; pageIndex <= total; pageIndex++ {
		text, err := pageText(pageIndex)
		if err != nil || strings.TrimSpace(text) == "" {
			empty++
		}
		if err != nil {
			continue
		}
		textBuilder.WriteString(text)
	}

	return textBuilder.String(), empty
}
