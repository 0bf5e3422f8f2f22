// Command relmap validates relational mapping model documents.
//
//	relmap [-config relmap.yaml] [-warnings warnings.yaml] [-format text|json] [-watch] [-v] model.yaml...
//
// Every document is loaded and validated, concurrently, and one line is
// printed per document. The exit status is 1 if any document failed and 2 on
// usage errors. With -watch, documents are validated again each time they
// are written, until the command is interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return 0
	case err != nil:
		fmt.Fprintf(stderr, "relmap: %v\n", err)
		return 2
	}
	a, err := newApp(cfg, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "relmap: %v\n", err)
		return 2
	}
	results, err := a.validateAll(ctx, cfg.Models)
	if err != nil {
		fmt.Fprintf(stderr, "relmap: %v\n", err)
		return 1
	}
	failed := false
	for _, res := range results {
		if err := a.out.report(res); err != nil {
			fmt.Fprintf(stderr, "relmap: %v\n", err)
			return 1
		}
		failed = failed || res.failed()
	}
	if cfg.Watch {
		if err := a.watch(ctx, cfg.Models); err != nil {
			fmt.Fprintf(stderr, "relmap: watch: %v\n", err)
			return 1
		}
		return 0
	}
	if failed {
		return 1
	}
	return 0
}
