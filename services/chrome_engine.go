// services/chrome_engine.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// A4 with 10mm top and 15mm side/bottom margins, in inches as Chrome
// expects them.
const (
	paperWidthIn   = 8.27
	paperHeightIn  = 11.69
	marginTopIn    = 0.39
	marginRightIn  = 0.59
	marginBottomIn = 0.59
	marginLeftIn   = 0.59
)

// ChromePDFEngine drives a headless Chrome instance scoped to a single
// render call. Launch, content load and export failures are reported
// distinctly; the browser is released exactly once on every exit path.
type ChromePDFEngine struct {
	Timeout  time.Duration // whole render, default 30s
	ExecPath string        // optional Chrome binary override

	// replaced in tests to render without a browser
	newBrowser func(ctx context.Context) (context.Context, context.CancelFunc)
	run        func(ctx context.Context, actions ...chromedp.Action) error
}

// launchChrome builds the allocator and browser contexts; the returned
// release tears both down.
func (e *ChromePDFEngine) launchChrome(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("disable-setuid-sandbox", true),
	)
	if e.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(e.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	return browserCtx, func() {
		cancelBrowser()
		cancelAlloc()
	}
}

func (e *ChromePDFEngine) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	newBrowser := e.newBrowser
	if newBrowser == nil {
		newBrowser = e.launchChrome
	}
	run := e.run
	if run == nil {
		run = chromedp.Run
	}

	browserCtx, release := newBrowser(ctx)
	defer release()

	if err := run(browserCtx); err != nil {
		return nil, fmt.Errorf("lancement du navigateur: %w", err)
	}

	if err := run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
	); err != nil {
		return nil, fmt.Errorf("chargement du document: %w", err)
	}

	var pdf []byte
	if err := run(browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		buf, _, err := page.PrintToPDF().
			WithPaperWidth(paperWidthIn).
			WithPaperHeight(paperHeightIn).
			WithMarginTop(marginTopIn).
			WithMarginRight(marginRightIn).
			WithMarginBottom(marginBottomIn).
			WithMarginLeft(marginLeftIn).
			WithPrintBackground(true).
			Do(ctx)
		if err != nil {
			return err
		}
		pdf = buf
		return nil
	})); err != nil {
		return nil, fmt.Errorf("export PDF: %w", err)
	}

	return pdf, nil
}
