package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Browser renders HTML with a real layout engine.
type Browser interface {
	// Screenshot returns a PNG of the whole page laid out at widthPx CSS
	// pixels and captured at scale device pixels per CSS pixel.
	Screenshot(ctx context.Context, html string, widthPx int, scale float64) ([]byte, error)
	// PrintPDF prints the page on A4 paper without margins.
	PrintPDF(ctx context.Context, html string) ([]byte, error)
}

// Chrome drives a headless Chrome through chromedp. Each call starts its own
// browser process.
type Chrome struct {
	ExecPath string
}

// NewChrome constructs a Chrome using the binary at execPath, or the
// chromedp lookup when empty.
func NewChrome(execPath string) *Chrome {
	return &Chrome{ExecPath: execPath}
}

func (c *Chrome) Screenshot(ctx context.Context, html string, widthPx int, scale float64) ([]byte, error) {
	var buf []byte
	err := c.run(ctx, html,
		chromedp.EmulateViewport(int64(widthPx), 1123, chromedp.EmulateScale(scale)),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return buf, nil
}

func (c *Chrome) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	var buf []byte
	err := c.run(ctx, html, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		// A4: 210mm x 297mm -> inches: 8.27 x 11.69
		buf, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(8.27).
			WithPaperHeight(11.69).
			WithMarginTop(0).
			WithMarginBottom(0).
			WithMarginLeft(0).
			WithMarginRight(0).
			WithPreferCSSPageSize(true).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}
	return buf, nil
}

func (c *Chrome) run(ctx context.Context, html string, actions ...chromedp.Action) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	tmpDir, err := os.MkdirTemp("", "resume-export-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		return err
	}

	tasks := chromedp.Tasks{
		chromedp.Navigate("file://" + htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	for _, a := range actions {
		tasks = append(tasks, a)
	}
	return chromedp.Run(browserCtx, tasks)
}

var _ Browser = (*Chrome)(nil)
