package html2pdf

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// defaultTimeout bounds a single page load when no timeout is specified.
const defaultTimeout = 30 * time.Second

// Service orchestrates the render-merge pipeline for one job at a time.
type Service struct {
	cfg         serviceConfig
	renderer    PageRenderer
	transformer StylesheetTransformer
	assembler   documentAssembler
	stdin       io.Reader
	stdout      io.Writer
	warnf       func(format string, args ...any)
}

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout  time.Duration
	cacheDir string
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout sets the per-page-load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("html2pdf: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithCacheDir sets the directory for compiled stylesheet artifacts.
func WithCacheDir(dir string) Option {
	return func(s *Service) {
		s.cfg.cacheDir = dir
	}
}

// WithRenderer injects a PageRenderer (e.g., by tests).
func WithRenderer(r PageRenderer) Option {
	return func(s *Service) {
		s.renderer = r
	}
}

// WithTransformer injects a StylesheetTransformer.
func WithTransformer(t StylesheetTransformer) Option {
	return func(s *Service) {
		s.transformer = t
	}
}

// WithWarnings directs non-fatal diagnostics (wait timeouts, clamped
// values) to f instead of stderr.
func WithWarnings(f func(format string, args ...any)) Option {
	return func(s *Service) {
		s.warnf = f
	}
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout).
func New(opts ...Option) *Service {
	s := &Service{
		cfg:    serviceConfig{timeout: defaultTimeout},
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.warnf == nil {
		s.warnf = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
		}
	}
	if s.cfg.cacheDir == "" {
		s.cfg.cacheDir = defaultCacheDir()
	}

	// Create collaborators if not injected (e.g., by tests)
	if s.renderer == nil {
		s.renderer = newRodRenderer(s.cfg.timeout, s.warnf)
	}
	if s.transformer == nil {
		s.transformer = newXSLTTransformer(s.cfg.cacheDir)
	}
	if s.assembler == nil {
		s.assembler = newPDFAssembler()
	}

	return s
}

// Run executes one job: normalize inputs, render each sequentially, merge,
// prefix the TOC if requested, set title metadata, and write the output.
// Any failure aborts the whole job; no partially merged state is accepted.
func (s *Service) Run(ctx context.Context, job Job) error {
	if err := job.Validate(); err != nil {
		return err
	}

	links := make([]string, len(job.Inputs))
	for i, in := range job.Inputs {
		u, err := s.normalizeInput(in, job.Config.Encoding)
		if err != nil {
			return err
		}
		links[i] = u
	}

	// Sequential renders: each owns an exclusive browser surface, and the
	// merged page order must match input order.
	buffers := make([][]byte, len(links))
	counts := make([]int, len(links))
	for i, link := range links {
		buf, err := s.renderer.Render(ctx, link, &job.Config)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", job.Inputs[i], err)
		}
		n, err := s.assembler.PageCount(buf)
		if err != nil {
			return fmt.Errorf("inspecting render of %s: %w", job.Inputs[i], err)
		}
		buffers[i] = buf
		counts[i] = n
	}

	merged, err := s.assembler.Merge(buffers)
	if err != nil {
		return err
	}

	if job.Config.TOC {
		p := &tocPaginator{renderer: s.renderer, transformer: s.transformer, assembler: s.assembler}
		tocBuf, _, err := p.paginate(ctx, &job, links, counts)
		if err != nil {
			return fmt.Errorf("building table of contents: %w", err)
		}
		merged, err = s.assembler.Merge([][]byte{tocBuf, merged})
		if err != nil {
			return err
		}
	}

	if job.Config.Title != "" {
		merged, err = s.assembler.SetTitle(merged, job.Config.Title)
		if err != nil {
			return err
		}
	}

	return s.writeOutput(job.Output, merged)
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.renderer != nil {
		return s.renderer.Close()
	}
	return nil
}

// normalizeInput turns an input descriptor into a navigable URL. Absolute
// URLs pass through unchanged; "-" reads HTML from stdin; anything else is
// resolved as a file URL against the current working directory.
func (s *Service) normalizeInput(in, encoding string) (string, error) {
	if in == "-" {
		html, err := io.ReadAll(s.stdin)
		if err != nil {
			return "", fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
		}
		return htmlDataURI(string(html), encoding), nil
	}

	if hasURIScheme(in) {
		return in, nil
	}

	abs, err := filepath.Abs(in)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrReadInput, in, err)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

// hasURIScheme reports whether s starts with a URI scheme. A single letter
// before ":" is treated as a Windows drive, not a scheme.
func hasURIScheme(s string) bool {
	i := strings.Index(s, ":")
	if i < 2 {
		return false
	}
	for _, r := range s[:i] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.') {
			return false
		}
	}
	return true
}

// writeOutput writes the merged document, creating parent directories as
// needed. "-" streams to stdout.
func (s *Service) writeOutput(dest string, buf []byte) error {
	if dest == "-" {
		if _, err := s.stdout.Write(buf); err != nil {
			return fmt.Errorf("%w: stdout: %v", ErrWriteOutput, err)
		}
		return nil
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := fileutil.EnsureDir(dir); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}

	// #nosec G306 -- PDF output files are intended to be readable
	if err := os.WriteFile(dest, buf, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// defaultCacheDir resolves the stylesheet cache location, preferring the
// user cache directory and falling back to the system temp directory.
func defaultCacheDir() string {
	if base, err := os.UserCacheDir(); err == nil {
		return filepath.Join(base, "html2pdf")
	}
	return filepath.Join(os.TempDir(), "html2pdf")
}
