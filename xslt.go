package html2pdf

import (
	"bytes"
	"context"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// defaultTOCStylesheet renders the outline vocabulary into the classic
// dotted-leader contents page. Used when no custom stylesheet is given.
//
//go:embed assets/default-toc.xsl
var defaultTOCStylesheet string

// StylesheetTransformer compiles an XSL stylesheet once per unique content
// and applies it to an outline XML document, producing serialized HTML.
type StylesheetTransformer interface {
	// Compile materializes the stylesheet as a cached on-disk artifact and
	// returns a handle for Transform. Compilation failure is job-fatal.
	Compile(ctx context.Context, stylesheet string) (artifact string, err error)
	// Transform applies a compiled artifact to sourceXML.
	Transform(ctx context.Context, artifact string, sourceXML []byte) (string, error)
}

// CommandRunner abstracts command execution to enable testing without real
// subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// execRunner implements CommandRunner using os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Compile-time interface checks
var (
	_ StylesheetTransformer = (*xsltTransformer)(nil)
	_ CommandRunner         = execRunner{}
)

// xsltTransformer implements StylesheetTransformer by shelling out to
// xsltproc. Stylesheets are cached whole-file under a content-hash key;
// an entry, once written, is immutable and reused without revalidation.
type xsltTransformer struct {
	cacheDir string
	runner   CommandRunner
}

// newXSLTTransformer creates a transformer caching compiled stylesheets
// under cacheDir.
func newXSLTTransformer(cacheDir string) *xsltTransformer {
	return &xsltTransformer{cacheDir: cacheDir, runner: execRunner{}}
}

// Compile checks the stylesheet for XML well-formedness and writes it to
// the cache keyed by its content hash. A pre-existing entry is served as is:
// the hash is strong enough that revalidation would buy nothing.
func (t *xsltTransformer) Compile(ctx context.Context, stylesheet string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	sum := sha256.Sum256([]byte(stylesheet))
	path := filepath.Join(t.cacheDir, hex.EncodeToString(sum[:])+".xsl")

	if fileutil.FileExists(path) {
		return path, nil
	}

	if err := checkWellFormed(stylesheet); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStylesheetCompile, err)
	}

	if err := fileutil.EnsureDir(t.cacheDir); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStylesheetCompile, err)
	}

	// Whole-file write via rename: concurrent processes racing on the same
	// key may duplicate work but never observe a partial entry.
	tmp, err := os.CreateTemp(t.cacheDir, "compile-*.xsl")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStylesheetCompile, err)
	}
	if _, err := tmp.WriteString(stylesheet); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: %v", ErrStylesheetCompile, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: %v", ErrStylesheetCompile, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: %v", ErrStylesheetCompile, err)
	}

	return path, nil
}

// Transform runs xsltproc with the compiled artifact against sourceXML.
func (t *xsltTransformer) Transform(ctx context.Context, artifact string, sourceXML []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	srcPath, cleanup, err := fileutil.WriteTempFile(string(sourceXML), "xml")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransform, err)
	}
	defer cleanup()

	stdout, stderr, err := t.runner.Run(ctx, "xsltproc", artifact, srcPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTransform, strings.TrimSpace(stderr), err)
	}

	return stdout, nil
}

// checkWellFormed decodes the document to the end, rejecting stylesheets
// that are not valid XML. Deeper XSLT errors still surface on first use,
// from the processor itself.
func checkWellFormed(doc string) error {
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
