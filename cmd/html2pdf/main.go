package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
	"github.com/alnah/go-html2pdf/internal/hints"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	inv, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "Try 'html2pdf --help' for more information.")
		os.Exit(ExitUsage)
	}

	if inv.showHelp {
		printUsage(os.Stdout)
		os.Exit(ExitSuccess)
	}
	if inv.showVersion {
		fmt.Printf("html2pdf %s\n", Version)
		os.Exit(ExitSuccess)
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, inv, os.Stdin, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, withHints(err))
		os.Exit(exitCodeFor(err))
	}
}

// run wires the service together and executes either a single job or the
// batch control stream.
func run(ctx context.Context, inv *invocation, stdin io.Reader, stderr io.Writer) error {
	warnIgnored(inv, stderr)

	base := html2pdf.Default()
	if inv.configPath != "" {
		f, err := config.Load(inv.configPath)
		if err != nil {
			return err
		}
		o, err := f.Overrides()
		if err != nil {
			return err
		}
		base = o.Apply(base)
	}

	var opts []html2pdf.Option
	if inv.cacheDir != "" {
		opts = append(opts, html2pdf.WithCacheDir(inv.cacheDir))
	}
	if inv.quiet {
		opts = append(opts, html2pdf.WithWarnings(func(string, ...any) {}))
	}

	svc := html2pdf.New(opts...)
	defer svc.Close()

	if inv.readStdin {
		return runBatch(ctx, svc, inv, base, stdin, stderr)
	}

	job, err := buildJob(inv, base)
	if err != nil {
		return err
	}

	if err := svc.Run(ctx, job); err != nil {
		return err
	}

	if !inv.quiet && job.Output != "-" {
		fmt.Fprintf(stderr, "Created %s\n", job.Output)
	}
	return nil
}

// warnIgnored reports legacy flags that were accepted but have no effect.
func warnIgnored(inv *invocation, stderr io.Writer) {
	if inv.quiet {
		return
	}
	for _, f := range inv.ignored {
		fmt.Fprintf(stderr, "warning: %s has no effect and was ignored\n", f)
	}
}

// withHints appends environment-specific hints to well-known failures.
func withHints(err error) string {
	msg := err.Error()
	if errors.Is(err, html2pdf.ErrBrowserConnect) {
		msg += hints.ForBrowserConnect()
	}
	if errors.Is(err, html2pdf.ErrTransform) {
		msg += hints.ForTransform()
	}
	return msg
}
