package export

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"resume-builder/internal/resume"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
)

const (
	// rasterScale matches a 2x device pixel ratio.
	rasterScale          = 2.0
	defaultExportTimeout = 60 * time.Second
)

var (
	ErrExportInProgress = errors.New("an export is already in progress")
	ErrExportFailed     = errors.New("pdf export failed")
)

// FailureNotice is the message shown to users when an export fails.
const FailureNotice = "Failed to export PDF. Please try again."

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_", `"`, "", "\n", " ", "\r", " ")

// Result is a finished export.
type Result struct {
	FileName string
	PDF      []byte
	Pages    int
}

// Service produces paginated PDFs from documents. At most one export runs
// at a time.
type Service struct {
	Renderer *Renderer
	Browser  Browser
	Timeout  time.Duration
	Now      func() time.Time

	countPages func([]byte) (int, error)
	inFlight   atomic.Bool
}

// NewService constructs a Service.
func NewService(renderer *Renderer, browser Browser, timeout time.Duration) *Service {
	return &Service{Renderer: renderer, Browser: browser, Timeout: timeout}
}

// Busy reports whether an export is running.
func (s *Service) Busy() bool {
	return s.inFlight.Load()
}

// Export renders doc and returns the PDF. Failures are logged with their
// cause and returned wrapped in ErrExportFailed.
func (s *Service) Export(ctx context.Context, doc resume.Document) (Result, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return Result{}, ErrExportInProgress
	}
	defer s.inFlight.Store(false)

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultExportTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	metrics.IncExportStarted()
	started := time.Now()
	name := FileName(doc, s.now())

	data, pages, err := s.run(ctx, doc)
	metrics.ObserveExportDurationMs(float64(time.Since(started).Milliseconds()))
	if err != nil {
		metrics.IncExportFailed()
		telemetry.Error("pdf export failed", map[string]any{
			"file":  name,
			"error": err.Error(),
		})
		return Result{}, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	metrics.IncExportCompleted()
	telemetry.Info("pdf export completed", map[string]any{
		"file":        name,
		"pages":       pages,
		"bytes":       len(data),
		"duration_ms": time.Since(started).Milliseconds(),
	})
	return Result{FileName: name, PDF: data, Pages: pages}, nil
}

func (s *Service) run(ctx context.Context, doc resume.Document) ([]byte, int, error) {
	html, err := s.Renderer.Render(doc)
	if err != nil {
		return nil, 0, err
	}
	raster, err := s.Browser.Screenshot(ctx, html, PageWidthPx, rasterScale)
	if err != nil {
		return nil, 0, err
	}
	images, err := SliceImage(raster)
	if err != nil {
		return nil, 0, err
	}
	printable, err := pagesHTML(images)
	if err != nil {
		return nil, 0, err
	}
	data, err := s.Browser.PrintPDF(ctx, printable)
	if err != nil {
		return nil, 0, err
	}
	count := s.countPages
	if count == nil {
		count = countPages
	}
	pages, err := count(data)
	if err != nil {
		return nil, 0, err
	}
	if pages != len(images) {
		return nil, 0, fmt.Errorf("pdf has %d pages, expected %d", pages, len(images))
	}
	return data, pages, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// FileName builds "<first>_<last>_YYYY-MM-DD.pdf" with the UTC date, falling
// back to "Resume" and "Builder" for blank names.
func FileName(doc resume.Document, now time.Time) string {
	first := strings.TrimSpace(doc.Personal.FirstName)
	if first == "" {
		first = "Resume"
	}
	last := strings.TrimSpace(doc.Personal.LastName)
	if last == "" {
		last = "Builder"
	}
	return fileNameReplacer.Replace(first+"_"+last+"_"+now.UTC().Format("2006-01-02")) + ".pdf"
}
