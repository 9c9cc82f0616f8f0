package html2pdf

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// PageRenderer turns a normalized URL or data URI plus a rendering
// configuration into a PDF byte buffer. Implementations own the browser
// surface for the duration of one call; callers never run renders in
// parallel.
type PageRenderer interface {
	Render(ctx context.Context, url string, cfg *Config) ([]byte, error)
	Close() error
}

// Compile-time interface check
var _ PageRenderer = (*rodRenderer)(nil)

// Bounds for best-effort waits inside a render.
const (
	windowStatusPollInterval = 500 * time.Millisecond
	windowStatusWaitCeiling  = 30 * time.Second
	runScriptTimeout         = 10 * time.Second
)

// Chrome rejects print scale factors outside this range.
const (
	minPrintScale = 0.1
	maxPrintScale = 2.0
)

// rodRenderer implements PageRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
// The browser is launched lazily and shared across sequential renders.
type rodRenderer struct {
	browser *rod.Browser
	proxy   string // proxy the current browser was launched with
	timeout time.Duration
	warnf   func(format string, args ...any)
}

// newRodRenderer creates a rodRenderer with the given page-load timeout.
func newRodRenderer(timeout time.Duration, warnf func(string, ...any)) *rodRenderer {
	if warnf == nil {
		warnf = func(string, ...any) {}
	}
	return &rodRenderer{timeout: timeout, warnf: warnf}
}

// ensureBrowser lazily connects to the browser. A proxy change relaunches,
// since the proxy is fixed at launch time.
func (r *rodRenderer) ensureBrowser(proxy string) error {
	if r.browser != nil && r.proxy == proxy {
		return nil
	}
	if r.browser != nil {
		_ = r.browser.Close()
		r.browser = nil
	}

	// Configure launcher
	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}

	if proxy != "" {
		l = l.Proxy(proxy)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.proxy = proxy
	return nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// Render opens the target in headless Chrome and prints it to PDF.
// Returns explicit errors instead of panicking when browser operations fail.
func (r *rodRenderer) Render(ctx context.Context, target string, cfg *Config) ([]byte, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(cfg.Proxy); err != nil {
		return nil, err
	}

	// Start from a blank page so headers, cookies, and emulation settings
	// are in place before navigation.
	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	if err := r.preparePage(page, target, cfg); err != nil {
		return nil, err
	}

	// Wait for page to load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Navigate(target); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := r.settlePage(ctx, page, cfg); err != nil {
		return nil, err
	}

	// Check context after page load and settling
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Generate PDF
	reader, err := page.PDF(r.buildPrintOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// preparePage applies pre-navigation configuration: headers, cookies,
// viewport, media emulation, and the script-execution toggle.
func (r *rodRenderer) preparePage(page *rod.Page, target string, cfg *Config) error {
	if len(cfg.Headers) > 0 {
		hdrs := proto.NetworkHeaders{}
		for _, h := range cfg.Headers {
			hdrs[h.Name] = gson.New(h.Value)
		}
		if err := (proto.NetworkSetExtraHTTPHeaders{Headers: hdrs}).Call(page); err != nil {
			return fmt.Errorf("%w: setting headers: %v", ErrPageCreate, err)
		}
	}

	if len(cfg.Cookies) > 0 {
		params := make([]*proto.NetworkCookieParam, len(cfg.Cookies))
		for i, c := range cfg.Cookies {
			params[i] = &proto.NetworkCookieParam{Name: c.Name, Value: c.Value, URL: target}
		}
		if err := page.SetCookies(params); err != nil {
			return fmt.Errorf("%w: setting cookies: %v", ErrPageCreate, err)
		}
	}

	if cfg.Viewport.Width > 0 && cfg.Viewport.Height > 0 {
		err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:  cfg.Viewport.Width,
			Height: cfg.Viewport.Height,
		})
		if err != nil {
			return fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
		}
	}

	if cfg.PrintMediaType {
		if err := (proto.EmulationSetEmulatedMedia{Media: "print"}).Call(page); err != nil {
			return fmt.Errorf("%w: emulating print media: %v", ErrPageCreate, err)
		}
	}

	if !cfg.JavaScript {
		if err := (proto.EmulationSetScriptExecutionDisabled{Value: true}).Call(page); err != nil {
			return fmt.Errorf("%w: disabling scripts: %v", ErrPageCreate, err)
		}
	}

	return nil
}

// settlePage runs post-load steps: the JavaScript delay, stylesheet and
// script injection, and the optional window.status wait.
func (r *rodRenderer) settlePage(ctx context.Context, page *rod.Page, cfg *Config) error {
	if cfg.JavaScriptDelay > 0 {
		select {
		case <-time.After(cfg.JavaScriptDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if cfg.UserStylesheet != "" {
		if err := r.injectStylesheet(page, cfg.UserStylesheet); err != nil {
			return err
		}
	}

	if cfg.Grayscale {
		if err := r.injectInlineCSS(page, grayscaleCSS); err != nil {
			return err
		}
	}

	for _, script := range cfg.RunScripts {
		if err := r.runScript(page, script); err != nil {
			return err
		}
	}

	if cfg.WindowStatus != "" {
		r.waitWindowStatus(ctx, page, cfg.WindowStatus)
	}

	return nil
}

// injectStylesheet adds user CSS to the page. A URL becomes a <link> the
// page fetches itself; a local path is read and inlined.
func (r *rodRenderer) injectStylesheet(page *rod.Page, src string) error {
	if fileutil.IsURL(src) {
		_, err := page.Eval(`(href) => {
			const l = document.createElement("link");
			l.rel = "stylesheet";
			l.href = href;
			document.head.appendChild(l);
		}`, src)
		if err != nil {
			return fmt.Errorf("%w: injecting stylesheet link: %v", ErrPageLoad, err)
		}
		return nil
	}

	css, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return r.injectInlineCSS(page, string(css))
}

// grayscaleCSS desaturates the whole document before printing. The PDF is
// not re-encoded; color channels stay in place but render gray.
const grayscaleCSS = `html { filter: grayscale(100%); -webkit-filter: grayscale(100%); }`

func (r *rodRenderer) injectInlineCSS(page *rod.Page, css string) error {
	_, err := page.Eval(`(css) => {
		const s = document.createElement("style");
		s.textContent = css;
		document.head.appendChild(s);
	}`, css)
	if err != nil {
		return fmt.Errorf("%w: injecting stylesheet: %v", ErrPageLoad, err)
	}
	return nil
}

// runScript evaluates one injected script with a bounded timeout. A script
// that never yields gets a best-effort stop directive and a warning, not an
// error; a script that throws fails the render.
func (r *rodRenderer) runScript(page *rod.Page, script string) error {
	_, err := page.Timeout(runScriptTimeout).Eval(fmt.Sprintf("() => { %s }", script))
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		_ = proto.PageStopLoading{}.Call(page)
		r.warnf("script did not finish within %s, continuing", runScriptTimeout)
		return nil
	}
	return fmt.Errorf("%w: running script: %v", ErrPageLoad, err)
}

// waitWindowStatus polls window.status at a fixed interval until it equals
// want or the ceiling elapses. A timeout proceeds with a warning; the wait
// is best effort, never an error.
func (r *rodRenderer) waitWindowStatus(ctx context.Context, page *rod.Page, want string) {
	deadline := time.Now().Add(windowStatusWaitCeiling)
	for time.Now().Before(deadline) {
		obj, err := page.Eval("() => window.status")
		if err == nil && obj.Value.Str() == want {
			return
		}
		select {
		case <-time.After(windowStatusPollInterval):
		case <-ctx.Done():
			return
		}
	}
	r.warnf("window.status never reached %q within %s, continuing", want, windowStatusWaitCeiling)
}

// buildPrintOptions constructs proto.PagePrintToPDF from the configuration.
// Landscape output is expressed by swapping paper dimensions, so intrinsic
// page proportions match the legacy converter's.
func (r *rodRenderer) buildPrintOptions(cfg *Config) *proto.PagePrintToPDF {
	p := cfg.paper()

	opts := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(p.width),
		PaperHeight:     floatPtr(p.height),
		MarginTop:       floatPtr(cfg.MarginTop),
		MarginBottom:    floatPtr(cfg.MarginBottom),
		MarginLeft:      floatPtr(cfg.MarginLeft),
		MarginRight:     floatPtr(cfg.MarginRight),
		PrintBackground: cfg.Background,
	}

	if cfg.Zoom != 0 && cfg.Zoom != 1.0 {
		scale := cfg.Zoom
		if scale < minPrintScale {
			r.warnf("zoom %.2f below Chrome's minimum, clamping to %.1f", scale, minPrintScale)
			scale = minPrintScale
		}
		if scale > maxPrintScale {
			r.warnf("zoom %.2f above Chrome's maximum, clamping to %.1f", scale, maxPrintScale)
			scale = maxPrintScale
		}
		opts.Scale = floatPtr(scale)
	}

	return opts
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// htmlDataURI wraps an HTML fragment as a self-contained data URI, the form
// the renderer receives inline documents in. An empty charset means UTF-8.
func htmlDataURI(html, charset string) string {
	if charset == "" {
		charset = "utf-8"
	}
	return "data:text/html;charset=" + charset + ";base64," + base64.StdEncoding.EncodeToString([]byte(html))
}
