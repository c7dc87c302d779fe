package browser

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// NavigationTiming holds the timing measurements of one navigation.
type NavigationTiming struct {
	// Load is the wall-clock duration from navigation start until the
	// page settled (load event fired and the document body is ready).
	Load time.Duration

	// DOMContentLoaded is the time until the first DOMContentLoaded
	// event. The listener is registered before navigation, but if the
	// event fires before the listener attaches the value stays zero.
	// Advisory only; never treat zero as "instant".
	DOMContentLoaded time.Duration
}

// Options configures a new Engine.
type Options struct {
	// Headless runs Chrome without a visible window. Disable for
	// debugging capture problems locally.
	Headless bool

	// ReduceMotion emulates the prefers-reduced-motion media feature so
	// CSS animations settle into their final state before capture.
	ReduceMotion bool

	// Logger receives engine-level log records. Defaults to slog.Default().
	Logger *slog.Logger
}

// Engine is a chromedp-backed browser automation engine.
//
// Design decision: We start one Chrome process and one browsing context in
// New and reuse them for every navigation, rather than allocating a fresh
// context per page. Viewport emulation is stateful on the context, so the
// screenshot crawler can set a viewport once and amortize it over all pages,
// and timing measurements are not polluted by browser startup.
type Engine struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	logger        *slog.Logger
}

// New starts a headless Chrome instance and opens its browsing context.
// The caller must Close the engine to release the browser process.
func New(ctx context.Context, opts Options) (*Engine, error) {
	execOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, execOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	e := &Engine{
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		logger:        opts.Logger,
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}

	// Start the browser eagerly so startup failures surface here instead
	// of on the first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	if opts.ReduceMotion {
		err := chromedp.Run(browserCtx,
			emulation.SetEmulatedMedia().WithFeatures([]*emulation.MediaFeature{
				{Name: "prefers-reduced-motion", Value: "reduce"},
			}),
		)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("failed to disable animations: %w", err)
		}
	}

	return e, nil
}

// Close shuts down the browsing context and the Chrome process.
func (e *Engine) Close() error {
	e.browserCancel()
	e.allocCancel()
	return nil
}

// run executes chromedp actions on the engine's browsing context, bounded
// by the caller's context. The long-lived browser context must not be
// cancelled per action, so cancellation is bridged onto a derived context.
func (e *Engine) run(ctx context.Context, actions ...chromedp.Action) error {
	tctx, cancel := context.WithCancel(e.browserCtx)
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(tctx, actions...); err != nil {
		// Prefer the caller's error so timeouts surface as such.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

// Navigate loads the given URL and waits for it to settle: the load event
// has fired and the document body is ready. It returns the measured timings.
func (e *Engine) Navigate(ctx context.Context, url string) (NavigationTiming, error) {
	var timing NavigationTiming

	// Register the DOMContentLoaded listener before navigating so the
	// event is caught when it fires during the load. Fast cached loads
	// can still fire before attachment completes; the zero value then
	// remains, which is why the measurement is advisory.
	var dclNanos atomic.Int64
	start := time.Now()
	lctx, lcancel := context.WithCancel(e.browserCtx)
	defer lcancel()
	chromedp.ListenTarget(lctx, func(ev any) {
		if _, ok := ev.(*page.EventDomContentEventFired); ok {
			dclNanos.CompareAndSwap(0, time.Since(start).Nanoseconds())
		}
	})

	err := e.run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return timing, fmt.Errorf("navigation to %s failed: %w", url, err)
	}

	timing.Load = time.Since(start)
	timing.DOMContentLoaded = time.Duration(dclNanos.Load())
	return timing, nil
}

// SetViewport emulates the given viewport size on the browsing context.
// The setting is sticky: it applies to every subsequent navigation until
// changed again.
func (e *Engine) SetViewport(ctx context.Context, width, height int64) error {
	if err := e.run(ctx, chromedp.EmulateViewport(width, height)); err != nil {
		return fmt.Errorf("failed to set viewport %dx%d: %w", width, height, err)
	}
	return nil
}

// CaptureFullPage writes a PNG of the current page to path.
// When fullPage is true the entire scrollable page is captured; otherwise
// only the viewport-sized region.
func (e *Engine) CaptureFullPage(ctx context.Context, path string, fullPage bool) error {
	var buf []byte
	action := chromedp.CaptureScreenshot(&buf)
	if fullPage {
		// Quality 100 selects lossless PNG in chromedp.
		action = chromedp.FullScreenshot(&buf, 100)
	}

	if err := e.run(ctx, action); err != nil {
		return fmt.Errorf("screenshot capture failed: %w", err)
	}
	if err := os.WriteFile(path, buf, 0600); err != nil {
		return fmt.Errorf("failed to write screenshot %s: %w", path, err)
	}
	return nil
}

// HTML returns the outer HTML of the current document after rendering.
func (e *Engine) HTML(ctx context.Context) (string, error) {
	var html string
	if err := e.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to read document HTML: %w", err)
	}
	return html, nil
}

// Evaluate runs a JavaScript expression in the current page and decodes
// its (possibly promise-wrapped) result into out. Pass nil to discard the
// result.
func (e *Engine) Evaluate(ctx context.Context, script string, out any) error {
	action := chromedp.Evaluate(script, out, chromedp.EvalAsValue, awaitPromise)
	if err := e.run(ctx, action); err != nil {
		return fmt.Errorf("script evaluation failed: %w", err)
	}
	return nil
}
