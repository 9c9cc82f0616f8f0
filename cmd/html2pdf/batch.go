package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	html2pdf "github.com/alnah/go-html2pdf"
)

// Sentinel errors for batch operations.
var (
	ErrBatchLineFailed = errors.New("batch lines failed")
	ErrNestedBatch     = errors.New("--read-args-from-stdin not allowed inside a batch line")
	ErrBatchConfig     = errors.New("--config not allowed inside a batch line")
)

// maxControlLine bounds one control-stream line (1MB).
const maxControlLine = 1 << 20

// jobRunner abstracts job execution to enable testing without a browser.
type jobRunner interface {
	Run(ctx context.Context, job html2pdf.Job) error
}

// Compile-time interface implementation check.
var _ jobRunner = (*html2pdf.Service)(nil)

// runBatch reads the control stream one line at a time and runs one job per
// non-blank line. A line's overrides layer onto the base invocation's
// configuration. Failures are isolated per line: a failed render reports
// and moves on, and only structural errors (nested batch directives, an
// unreadable stream) abort early.
func runBatch(ctx context.Context, svc jobRunner, inv *invocation, base html2pdf.Config, stdin io.Reader, stderr io.Writer) error {
	// The base for every line includes the outer invocation's own flags.
	lineBase := inv.overrides.Apply(base)

	sc := bufio.NewScanner(stdin)
	sc.Buffer(make([]byte, 0, 64*1024), maxControlLine)

	lineNo := 0
	failed := 0
	total := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		total++

		if err := runBatchLine(ctx, svc, lineBase, line); err != nil {
			if errors.Is(err, ErrNestedBatch) || errors.Is(err, ErrBatchConfig) {
				return fmt.Errorf("%w: line %d: %w", ErrUsage, lineNo, err)
			}
			failed++
			fmt.Fprintf(stderr, "line %d: %v\n", lineNo, err)
			continue
		}

		if !inv.quiet {
			fmt.Fprintf(stderr, "line %d: done\n", lineNo)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: reading control stream: %v", html2pdf.ErrReadInput, err)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrBatchLineFailed, failed, total)
	}
	return nil
}

// runBatchLine tokenizes, parses, and executes a single control line.
func runBatchLine(ctx context.Context, svc jobRunner, base html2pdf.Config, line string) error {
	tokens, err := tokenize(line)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	lineInv, err := parseArgs(tokens)
	if err != nil {
		return err
	}
	if lineInv.readStdin {
		return ErrNestedBatch
	}
	if lineInv.configPath != "" {
		return ErrBatchConfig
	}

	job, err := buildJob(lineInv, base)
	if err != nil {
		return err
	}

	return svc.Run(ctx, job)
}

// tokenize splits a control line into arguments, shell-like but simplified:
// double or single quotes suppress whitespace splitting, and a backslash
// escapes the next character.
func tokenize(line string) ([]string, error) {
	var (
		tokens  []string
		cur     strings.Builder
		inTok   bool
		quote   byte
		escaped bool
	)

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case escaped:
			cur.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
			inTok = true
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				cur.WriteByte(c)
			}
		case c == '"' || c == '\'':
			quote = c
			inTok = true
		case c == ' ' || c == '\t':
			if inTok {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inTok = false
			}
		default:
			cur.WriteByte(c)
			inTok = true
		}
	}

	if escaped {
		return nil, errors.New("trailing backslash")
	}
	if quote != 0 {
		return nil, errors.New("unterminated quote")
	}
	if inTok {
		tokens = append(tokens, cur.String())
	}

	return tokens, nil
}
