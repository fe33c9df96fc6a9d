package content

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/go-pkgz/lgr"
)

// NavigatorParams defines headless browser settings
type NavigatorParams struct {
	ExecPath        string // chrome binary, empty for auto-detection
	UserAgent       string
	Headful         bool
	NavigateTimeout time.Duration // hard cutoff for loading the page
	IdleTimeout     time.Duration // soft wait for the page to settle, failure ignored
}

// ChromeNavigator follows redirect and tracking links in a headless browser.
// One browser is started lazily and kept for the navigator lifetime, each navigation
// uses its own tab.
type ChromeNavigator struct {
	NavigatorParams

	mu            sync.Mutex
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// NewChromeNavigator makes a navigator, the browser is not started until the first Navigate
func NewChromeNavigator(params NavigatorParams) *ChromeNavigator {
	if params.NavigateTimeout <= 0 {
		params.NavigateTimeout = 7 * time.Second
	}
	if params.IdleTimeout <= 0 {
		params.IdleTimeout = 5 * time.Second
	}
	return &ChromeNavigator{NavigatorParams: params}
}

// Navigate loads the link and returns the final url after redirects. It waits for the
// main document DOM with the navigate timeout, then for network quiescence with the idle
// timeout, ignoring the latter expiring, and reads window.location of whatever document
// the tab ended up on.
func (n *ChromeNavigator) Navigate(ctx context.Context, link string) (string, error) {
	if link == "" {
		return "", errors.New("empty link")
	}
	browserCtx, err := n.browser()
	if err != nil {
		return "", err
	}

	tabCtx, tabCancel := chromedp.NewContext(browserCtx)
	defer tabCancel()
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	// the first run opens the tab, it must not carry a timeout or the tab closes with it
	var frameID cdp.FrameID
	err = chromedp.Run(tabCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		if err := page.SetLifecycleEventsEnabled(true).Do(ctx); err != nil {
			return fmt.Errorf("enable lifecycle events: %w", err)
		}
		tree, err := page.GetFrameTree().Do(ctx)
		if err != nil {
			return err
		}
		frameID = tree.Frame.ID
		return nil
	}))
	if err != nil {
		return "", fmt.Errorf("open tab: %w", err)
	}

	watch := newLoadWatch(frameID)
	chromedp.ListenTarget(tabCtx, watch.onEvent)

	navCtx, navCancel := context.WithTimeout(tabCtx, n.NavigateTimeout)
	err = chromedp.Run(navCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		watch.arm()
		_, _, errText, _, err := page.Navigate(link).Do(ctx)
		if err != nil {
			return err
		}
		if errText != "" {
			return fmt.Errorf("navigation failed (%s)", errText)
		}
		return watch.wait(ctx, watch.domReady)
	}))
	navCancel()
	if err != nil {
		return "", fmt.Errorf("navigate to %s: %w", link, err)
	}

	idleCtx, idleCancel := context.WithTimeout(tabCtx, n.IdleTimeout)
	if err := watch.wait(idleCtx, watch.networkIdle); err != nil {
		lgr.Printf("[DEBUG] page %s did not reach network idle: %v", link, err)
	}
	idleCancel()

	var final string
	locCtx, locCancel := context.WithTimeout(tabCtx, n.IdleTimeout)
	defer locCancel()
	if err := chromedp.Run(locCtx, chromedp.Evaluate(`window.location.href`, &final)); err != nil {
		return "", fmt.Errorf("read location of %s: %w", link, err)
	}
	if final == "" {
		return "", errors.New("empty location")
	}
	return final, nil
}

// loadWatch follows lifecycle events of the tab main frame. Every new document of the
// frame, a redirect made by script included, resets the state, so both flags always
// refer to the document currently shown.
type loadWatch struct {
	mu      sync.Mutex
	frameID cdp.FrameID
	armed   bool         // navigation started, earlier events belong to about:blank
	loader  cdp.LoaderID // current document of the main frame
	dom     bool
	idle    bool
	changed chan struct{}
}

func newLoadWatch(frameID cdp.FrameID) *loadWatch {
	return &loadWatch{frameID: frameID, changed: make(chan struct{}, 1)}
}

func (w *loadWatch) arm() {
	w.mu.Lock()
	w.armed = true
	w.mu.Unlock()
}

// onEvent is called from the chromedp event loop and must not block
func (w *loadWatch) onEvent(ev any) {
	w.mu.Lock()
	if !w.armed {
		w.mu.Unlock()
		return
	}
	if e, ok := ev.(*page.EventLifecycleEvent); ok && e.FrameID == w.frameID {
		switch e.Name {
		case "init":
			w.loader, w.dom, w.idle = e.LoaderID, false, false
		case "DOMContentLoaded":
			if w.loader != "" && e.LoaderID == w.loader {
				w.dom = true
			}
		case "networkIdle":
			if w.loader != "" && e.LoaderID == w.loader {
				w.idle = true
			}
		}
	}
	w.mu.Unlock()

	select {
	case w.changed <- struct{}{}:
	default:
	}
}

func (w *loadWatch) domReady() bool    { return w.dom }
func (w *loadWatch) networkIdle() bool { return w.idle }

// wait blocks until cond holds or ctx is done, cond is checked under the lock
func (w *loadWatch) wait(ctx context.Context, cond func() bool) error {
	for {
		w.mu.Lock()
		ok := cond()
		w.mu.Unlock()
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.changed:
		}
	}
}

// browser starts the browser on first use
func (n *ChromeNavigator) browser() (context.Context, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.browserCtx != nil {
		return n.browserCtx, nil
	}

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.Flag("headless", !n.Headful))
	if n.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(n.UserAgent))
	}
	if n.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(n.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("start browser: %w", err)
	}
	n.allocCancel, n.browserCtx, n.browserCancel = allocCancel, browserCtx, browserCancel
	lgr.Printf("[DEBUG] headless browser started")
	return browserCtx, nil
}

// Close stops the browser if it was started
func (n *ChromeNavigator) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.browserCtx == nil {
		return
	}
	n.browserCancel()
	n.allocCancel()
	n.browserCtx, n.browserCancel, n.allocCancel = nil, nil, nil
}
