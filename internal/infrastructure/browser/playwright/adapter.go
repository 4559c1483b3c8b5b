// Package playwright runs sessions on the chromium, firefox and webkit
// engines driven by Playwright.
package playwright

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"shopcheck/internal/application/port/output"
	"shopcheck/internal/domain/entity"

	pw "github.com/playwright-community/playwright-go"
)

const (
	defaultWaitMs     = 30_000
	screenshotQuality = 80
)

var (
	_ output.SessionFactory = (*Factory)(nil)
	_ output.SessionPort    = (*Session)(nil)
	_ output.ElementPort    = (*element)(nil)
)

var ErrUnsupportedEngine = errors.New("unsupported playwright engine")

type Config struct {
	Engine   entity.Engine
	Headless bool
	SlowMo   time.Duration
	// Install downloads the browser binaries before the first launch.
	Install bool
}

// Factory owns one Playwright driver and browser; every session gets its own
// browser context.
type Factory struct {
	cfg Config

	mu      sync.Mutex
	driver  *pw.Playwright
	browser pw.Browser
}

func NewFactory(cfg Config) (*Factory, error) {
	switch cfg.Engine {
	case entity.EngineChromium, entity.EngineFirefox, entity.EngineWebKit:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEngine, cfg.Engine)
	}
	return &Factory{cfg: cfg}, nil
}

func (f *Factory) Engine() entity.Engine {
	return f.cfg.Engine
}

func (f *Factory) NewSession(ctx context.Context) (output.SessionPort, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	browser, err := f.connect()
	if err != nil {
		return nil, err
	}

	bctx, err := browser.NewContext()
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return &Session{context: bctx, page: page}, nil
}

func (f *Factory) connect() (pw.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser != nil {
		return f.browser, nil
	}

	name := string(f.cfg.Engine)
	if f.cfg.Install {
		if err := pw.Install(&pw.RunOptions{Browsers: []string{name}}); err != nil {
			return nil, fmt.Errorf("failed to install %s: %w", name, err)
		}
	}

	driver, err := pw.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	var browserType pw.BrowserType
	switch f.cfg.Engine {
	case entity.EngineFirefox:
		browserType = driver.Firefox
	case entity.EngineWebKit:
		browserType = driver.WebKit
	default:
		browserType = driver.Chromium
	}

	browser, err := browserType.Launch(pw.BrowserTypeLaunchOptions{
		Headless: pw.Bool(f.cfg.Headless),
		SlowMo:   pw.Float(float64(f.cfg.SlowMo.Milliseconds())),
	})
	if err != nil {
		_ = driver.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", name, err)
	}

	f.driver = driver
	f.browser = browser
	return browser, nil
}

func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var errs []error
	if f.browser != nil {
		errs = append(errs, f.browser.Close())
		f.browser = nil
	}
	if f.driver != nil {
		errs = append(errs, f.driver.Stop())
		f.driver = nil
	}
	return errors.Join(errs...)
}

type Session struct {
	context pw.BrowserContext
	page    pw.Page
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	if _, err := s.page.Goto(url, pw.PageGotoOptions{
		Timeout:   waitMs(ctx),
		WaitUntil: pw.WaitUntilStateLoad,
	}); err != nil {
		return classify("navigate", err)
	}
	return nil
}

func (s *Session) WaitVisible(ctx context.Context, selector string) (output.ElementPort, error) {
	loc := s.page.Locator(selector).First()
	if err := loc.WaitFor(pw.LocatorWaitForOptions{
		State:   pw.WaitForSelectorStateVisible,
		Timeout: waitMs(ctx),
	}); err != nil {
		return nil, classify("wait visible "+selector, err)
	}
	return &element{loc: loc}, nil
}

func (s *Session) Find(ctx context.Context, selector string) (output.ElementPort, error) {
	return attached(ctx, s.page.Locator(selector).First(), selector)
}

func (s *Session) FindAll(ctx context.Context, selector string) ([]output.ElementPort, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	locs, err := s.page.Locator(selector).All()
	if err != nil {
		return nil, classify("find all "+selector, err)
	}
	result := make([]output.ElementPort, len(locs))
	for i, loc := range locs {
		result[i] = &element{loc: loc}
	}
	return result, nil
}

func (s *Session) IsVisible(ctx context.Context, selector string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	visible, err := s.page.Locator(selector).First().IsVisible()
	if err != nil {
		return false, classify("visible "+selector, err)
	}
	return visible, nil
}

func (s *Session) Snapshot(ctx context.Context) (*entity.PageSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	html, err := s.page.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to get HTML: %w", err)
	}
	title, _ := s.page.Title()

	snap := &entity.PageSnapshot{URL: s.page.URL(), Title: title, HTML: html}

	img, err := s.page.Screenshot(pw.PageScreenshotOptions{
		FullPage: pw.Bool(true),
		Type:     pw.ScreenshotTypeJpeg,
		Quality:  pw.Int(screenshotQuality),
	})
	if err == nil {
		snap.Screenshot = &entity.Screenshot{Data: img, Format: "jpeg"}
	}
	return snap, nil
}

func (s *Session) CurrentURL() string {
	return s.page.URL()
}

func (s *Session) Close() error {
	return s.context.Close()
}

type element struct {
	loc pw.Locator
}

func (e *element) Text(ctx context.Context) (string, error) {
	text, err := e.loc.TextContent(pw.LocatorTextContentOptions{Timeout: waitMs(ctx)})
	if err != nil {
		return "", classify("text", err)
	}
	return text, nil
}

func (e *element) Visible(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	visible, err := e.loc.IsVisible()
	if err != nil {
		return false, classify("visible", err)
	}
	return visible, nil
}

func (e *element) Fill(ctx context.Context, text string) error {
	if err := e.loc.Fill(text, pw.LocatorFillOptions{Timeout: waitMs(ctx)}); err != nil {
		return classify("fill", err)
	}
	return nil
}

func (e *element) Click(ctx context.Context) error {
	if err := e.loc.Click(pw.LocatorClickOptions{Timeout: waitMs(ctx)}); err != nil {
		return classify("click", err)
	}
	return nil
}

func (e *element) Select(ctx context.Context, value string) error {
	if _, err := e.loc.SelectOption(pw.SelectOptionValues{Values: &[]string{value}}, pw.LocatorSelectOptionOptions{
		Timeout: waitMs(ctx),
	}); err != nil {
		return classify("select "+value, err)
	}
	return nil
}

func (e *element) Find(ctx context.Context, selector string) (output.ElementPort, error) {
	return attached(ctx, e.loc.Locator(selector).First(), selector)
}

func attached(ctx context.Context, loc pw.Locator, selector string) (output.ElementPort, error) {
	if err := loc.WaitFor(pw.LocatorWaitForOptions{
		State:   pw.WaitForSelectorStateAttached,
		Timeout: waitMs(ctx),
	}); err != nil {
		return nil, classify("find "+selector, err)
	}
	return &element{loc: loc}, nil
}

// waitMs converts the context deadline into a Playwright timeout.
func waitMs(ctx context.Context) *float64 {
	deadline, ok := ctx.Deadline()
	if !ok {
		return pw.Float(defaultWaitMs)
	}
	ms := time.Until(deadline).Milliseconds()
	if ms < 1 {
		ms = 1
	}
	return pw.Float(float64(ms))
}

// classify maps Playwright timeouts onto context.DeadlineExceeded and marks
// detached-node races as transient.
func classify(op string, err error) error {
	if errors.Is(err, pw.ErrTimeout) {
		return fmt.Errorf("%s: %w: %v", op, context.DeadlineExceeded, err)
	}
	msg := err.Error()
	if strings.Contains(msg, "not attached to the DOM") || strings.Contains(msg, "detached") {
		return entity.Transient(op, err)
	}
	return fmt.Errorf("%s failed: %w", op, err)
}
