package browser

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// textSelector matches every rendered element under body. Elements whose
// content is never painted are excluded so that text embedded in inline
// scripts (hydration payloads, JSON) cannot satisfy a wait.
const textSelector = "body *:not(script):not(style):not(noscript):not(template)"

// idleExcludedTypes are ignored while waiting for network idle; lazy images
// and media streams would otherwise keep the page busy indefinitely.
var idleExcludedTypes = []proto.NetworkResourceType{
	proto.NetworkResourceTypeImage,
	proto.NetworkResourceTypeMedia,
}

// Page is a single browser tab.
type Page struct {
	page *rod.Page
}

// Navigate loads url and waits for the load event. The timeout covers both.
func (p *Page) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	page := p.page.Context(ctx).Timeout(timeout)
	defer page.CancelTimeout()

	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("failed to wait for page load: %w", err)
	}
	return nil
}

// WaitNetworkIdle blocks until no request has been in flight for quiet, or
// until timeout elapses, in which case context.DeadlineExceeded is returned.
func (p *Page) WaitNetworkIdle(ctx context.Context, quiet, timeout time.Duration) error {
	page := p.page.Context(ctx).Timeout(timeout)
	defer page.CancelTimeout()

	wait := page.WaitRequestIdle(quiet, nil, nil, idleExcludedTypes)
	wait()

	if err := page.GetContext().Err(); err != nil {
		return fmt.Errorf("network still busy after %s: %w", timeout, err)
	}
	return nil
}

// WaitText blocks until a visible element's rendered text contains text.
func (p *Page) WaitText(ctx context.Context, text string, timeout time.Duration) error {
	page := p.page.Context(ctx).Timeout(timeout)
	defer page.CancelTimeout()

	el, err := page.ElementR(textSelector, regexp.QuoteMeta(text))
	if err != nil {
		return fmt.Errorf("text %q not found: %w", text, err)
	}
	if err := el.WaitVisible(); err != nil {
		return fmt.Errorf("text %q never became visible: %w", text, err)
	}
	return nil
}

// Screenshot captures the whole page as PNG.
func (p *Page) Screenshot(ctx context.Context) ([]byte, error) {
	data, err := p.page.Context(ctx).Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to take screenshot: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("failed to take screenshot: empty image")
	}
	return data, nil
}

// HTML returns the current document's outer HTML.
func (p *Page) HTML(ctx context.Context) (string, error) {
	page := p.page.Context(ctx).Timeout(10 * time.Second)
	defer page.CancelTimeout()

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get page HTML: %w", err)
	}
	return html, nil
}
