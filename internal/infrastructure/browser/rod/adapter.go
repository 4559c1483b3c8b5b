package rod

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"shopcheck/internal/application/port/output"
	"shopcheck/internal/domain/entity"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

const (
	defaultSettle     = 2 * time.Second
	screenshotQuality = 80
)

var (
	_ output.SessionFactory = (*Factory)(nil)
	_ output.SessionPort    = (*Session)(nil)
	_ output.ElementPort    = (*element)(nil)
)

type BrowserConfig struct {
	Headless   bool
	SlowMotion time.Duration
	NoSandbox  bool
	DevTools   bool
	// ControlURL connects to a running browser instead of launching one.
	ControlURL string
	// Settle bounds the wait for network idle after a click.
	Settle time.Duration
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:  true,
		NoSandbox: true,
		Settle:    defaultSettle,
	}
}

// Factory owns one browser process and opens an incognito context per session.
type Factory struct {
	cfg BrowserConfig

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
}

func NewFactory(cfg BrowserConfig) *Factory {
	if cfg.Settle <= 0 {
		cfg.Settle = defaultSettle
	}
	return &Factory{cfg: cfg}
}

func (f *Factory) Engine() entity.Engine {
	return entity.EngineRod
}

func (f *Factory) NewSession(ctx context.Context) (output.SessionPort, error) {
	browser, err := f.connect()
	if err != nil {
		return nil, err
	}

	incognito, err := browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("failed to open incognito context: %w", err)
	}

	page, err := incognito.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = incognito.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &Session{
		browser: incognito,
		page:    page,
		settle:  f.cfg.Settle,
	}, nil
}

// connect launches the browser on first use.
func (f *Factory) connect() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser != nil {
		return f.browser, nil
	}

	url := f.cfg.ControlURL
	if url == "" {
		l := launcher.New().
			Headless(f.cfg.Headless).
			Devtools(f.cfg.DevTools).
			NoSandbox(f.cfg.NoSandbox).
			Delete("use-mock-keychain")

		launched, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("failed to launch browser: %w", err)
		}
		url = launched
		f.launcher = l
	}

	browser := rod.New().
		ControlURL(url).
		SlowMotion(f.cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		f.killLauncher()
		return nil, fmt.Errorf("failed to connect browser: %w", err)
	}

	f.browser = browser
	return browser, nil
}

func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	f.killLauncher()
	return err
}

func (f *Factory) killLauncher() {
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher.Cleanup()
		f.launcher = nil
	}
}

// Session is one incognito browser context with a single tab.
type Session struct {
	browser *rod.Browser
	page    *rod.Page
	settle  time.Duration
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	p := s.page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("wait load: %w", err)
	}
	return nil
}

func (s *Session) WaitVisible(ctx context.Context, selector string) (output.ElementPort, error) {
	el, err := s.page.Context(ctx).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("element not found: %s: %w", selector, err)
	}
	if err := el.Context(ctx).WaitVisible(); err != nil {
		return nil, fmt.Errorf("element not visible: %s: %w", selector, err)
	}
	return s.wrap(el), nil
}

func (s *Session) Find(ctx context.Context, selector string) (output.ElementPort, error) {
	el, err := s.page.Context(ctx).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("element not found: %s: %w", selector, err)
	}
	return s.wrap(el), nil
}

func (s *Session) FindAll(ctx context.Context, selector string) ([]output.ElementPort, error) {
	els, err := s.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, classify("find all "+selector, err)
	}
	result := make([]output.ElementPort, len(els))
	for i, el := range els {
		result[i] = s.wrap(el)
	}
	return result, nil
}

func (s *Session) IsVisible(ctx context.Context, selector string) (bool, error) {
	has, el, err := s.page.Context(ctx).Has(selector)
	if err != nil {
		return false, classify("has "+selector, err)
	}
	if !has {
		return false, nil
	}
	visible, err := el.Context(ctx).Visible()
	if err != nil {
		return false, classify("visible "+selector, err)
	}
	return visible, nil
}

func (s *Session) Snapshot(ctx context.Context) (*entity.PageSnapshot, error) {
	p := s.page.Context(ctx)

	info, err := p.Info()
	if err != nil {
		return nil, fmt.Errorf("page info: %w", err)
	}
	html, err := p.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to get HTML: %w", err)
	}

	snap := &entity.PageSnapshot{URL: info.URL, Title: info.Title, HTML: html}

	img, err := p.Screenshot(true, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(screenshotQuality),
	})
	if err == nil {
		snap.Screenshot = &entity.Screenshot{Data: img, Format: "jpeg"}
	}
	return snap, nil
}

func (s *Session) CurrentURL() string {
	info, err := s.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// Close disposes the incognito context together with its pages.
func (s *Session) Close() error {
	return s.browser.Close()
}

func (s *Session) wrap(el *rod.Element) *element {
	return &element{el: el, page: s.page, settle: s.settle}
}

type element struct {
	el     *rod.Element
	page   *rod.Page
	settle time.Duration
}

func (e *element) Text(ctx context.Context) (string, error) {
	text, err := e.el.Context(ctx).Text()
	if err != nil {
		return "", classify("text", err)
	}
	return text, nil
}

func (e *element) Visible(ctx context.Context) (bool, error) {
	visible, err := e.el.Context(ctx).Visible()
	if err != nil {
		return false, classify("visible", err)
	}
	return visible, nil
}

func (e *element) Fill(ctx context.Context, text string) error {
	el := e.el.Context(ctx)
	if err := el.SelectAllText(); err == nil {
		_ = el.Input("")
	}
	if err := el.Input(text); err != nil {
		return classify("input", err)
	}
	return nil
}

func (e *element) Click(ctx context.Context) error {
	if err := e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1); err != nil {
		return classify("click", err)
	}
	_ = e.page.Context(ctx).WaitIdle(e.settle)
	return nil
}

func (e *element) Select(ctx context.Context, value string) error {
	option := fmt.Sprintf(`[value=%q]`, value)
	if err := e.el.Context(ctx).Select([]string{option}, true, rod.SelectorTypeCSSSector); err != nil {
		return classify("select "+value, err)
	}
	return nil
}

func (e *element) Find(ctx context.Context, selector string) (output.ElementPort, error) {
	child, err := e.el.Context(ctx).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("element not found: %s: %w", selector, err)
	}
	return &element{el: child, page: e.page, settle: e.settle}, nil
}

// classify marks errors caused by the page re-rendering under an action.
func classify(op string, err error) error {
	var (
		covered        *rod.CoveredError
		notInteractive *rod.NotInteractableError
		invisible      *rod.InvisibleShapeError
		detached       *rod.ObjectNotFoundError
	)
	switch {
	case errors.As(err, &covered),
		errors.As(err, &notInteractive),
		errors.As(err, &invisible),
		errors.As(err, &detached):
		return entity.Transient(op, err)
	}
	return fmt.Errorf("%s failed: %w", op, err)
}
