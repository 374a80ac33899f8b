package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the shortest posting text accepted from a plain HTTP fetch.
// Shorter text usually means the page renders its content with JavaScript.
const MinContentLength = 500

// NeedsBrowser reports whether text is too short to be a rendered posting.
func NeedsBrowser(text string) bool {
	return len(strings.TrimSpace(text)) < MinContentLength
}

// Renderer returns the HTML of a page after scripts have run.
type Renderer func(ctx context.Context, url string) (string, error)

// PostingOptions configures JobPosting.
type PostingOptions struct {
	HTTP *Options
	// Render is used for short pages when set.
	Render  Renderer
	Verbose bool
}

// JobPosting downloads the posting at rawURL and returns its main text.
func JobPosting(ctx context.Context, rawURL string, opts PostingOptions) (string, error) {
	board := DetectBoard(rawURL)
	if opts.Verbose {
		log.Printf("[fetch] %s detected as %s", rawURL, board)
	}

	page, err := Get(ctx, rawURL, opts.HTTP)
	if err != nil {
		return "", err
	}

	text, err := MainText(page.HTML, ContentSelectors(board), NoiseSelectors(board)...)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "failed to extract text", Cause: err}
	}

	if NeedsBrowser(text) && opts.Render != nil {
		if opts.Verbose {
			log.Printf("[fetch] only %d chars extracted, rendering in browser", len(text))
		}
		html, err := opts.Render(ctx, rawURL)
		if err != nil {
			log.Printf("[fetch] browser rendering failed, keeping HTTP text: %v", err)
		} else if rendered, err := MainText(html, ContentSelectors(board), NoiseSelectors(board)...); err == nil && len(rendered) > len(text) {
			text = rendered
		}
	}

	if strings.TrimSpace(text) == "" {
		return "", &Error{URL: rawURL, Message: "no posting text found"}
	}
	return text, nil
}

// Headless returns a Renderer backed by a local Chrome or Chromium.
func Headless(timeout time.Duration) Renderer {
	return func(ctx context.Context, url string) (string, error) {
		allocCtx, cancel := chromedp.NewExecAllocator(ctx,
			append(chromedp.DefaultExecAllocatorOptions[:],
				chromedp.Flag("headless", true),
				chromedp.Flag("disable-gpu", true),
				chromedp.Flag("no-sandbox", true),
				chromedp.Flag("disable-dev-shm-usage", true),
			)...,
		)
		defer cancel()

		browserCtx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
		defer cancel()

		var html string
		err := chromedp.Run(browserCtx,
			chromedp.Navigate(url),
			chromedp.WaitReady("body"),
			// Give client-side rendering time to populate the posting.
			chromedp.Sleep(3*time.Second),
			chromedp.OuterHTML("html", &html),
		)
		if err != nil {
			return "", fmt.Errorf("browser rendering failed: %w", err)
		}
		return html, nil
	}
}
