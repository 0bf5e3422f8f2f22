package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/relmap"
	"github.com/syssam/relmap/diagnostics"
	"github.com/syssam/relmap/load"
	"github.com/syssam/relmap/validator"
)

// Document statuses.
const (
	statusOK      = "ok"
	statusInvalid = "invalid model"
	statusWarning = "warning as error"
	statusLoad    = "load error"
	statusError   = "error"
)

type app struct {
	validator *validator.Validator
	warnings  diagnostics.WarningsConfig
	log       *slog.Logger
	out       *reporter
}

func newApp(cfg *Config, stdout, stderr io.Writer) (*app, error) {
	log := slog.New(slog.DiscardHandler)
	if cfg.Verbose {
		log = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	a := &app{
		log: log,
		out: &reporter{w: stdout, format: cfg.Format, title: cases.Title(language.English)},
	}
	if cfg.Warnings != "" {
		w, err := diagnostics.ReadWarningsConfig(cfg.Warnings)
		if err != nil {
			return nil, err
		}
		a.warnings = w
	}
	v, err := validator.New(validator.WithSlog(log))
	if err != nil {
		return nil, err
	}
	a.validator = v
	return a, nil
}

// result is the outcome of validating one document.
type result struct {
	Path     string    `json:"path"`
	Status   string    `json:"status"`
	Code     string    `json:"code,omitempty"`
	Error    string    `json:"error,omitempty"`
	Warnings []warning `json:"warnings,omitempty"`
}

type warning struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

func (r result) failed() bool { return r.Status != statusOK }

func statusOf(err error) (status, code string) {
	switch {
	case err == nil:
		return statusOK, ""
	case errors.Is(err, relmap.ErrInvalidModel):
		c, _ := relmap.CodeOf(err)
		return statusInvalid, string(c)
	case errors.Is(err, relmap.ErrWarningAsError):
		var we *relmap.WarningError
		if errors.As(err, &we) {
			return statusWarning, we.Event
		}
		return statusWarning, ""
	case errors.Is(err, relmap.ErrLoad):
		return statusLoad, ""
	}
	return statusError, ""
}

// validate loads and validates one document. Warnings raised on the way are
// recorded in the result.
func (a *app) validate(path string) result {
	res := result{Path: path}
	m, err := load.Load(path)
	if err == nil {
		logger := diagnostics.NewLogger(
			diagnostics.WithWarnings(a.warnings),
			diagnostics.WithSlogger(a.log),
			diagnostics.WithSink(func(e diagnostics.Event) {
				res.Warnings = append(res.Warnings, warning{Event: string(e.ID), Message: e.Message})
			}),
		)
		err = a.validator.ValidateWith(m, logger)
	}
	res.Status, res.Code = statusOf(err)
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

// validateAll validates the documents concurrently. Results keep the order
// of paths.
func (a *app) validateAll(ctx context.Context, paths []string) ([]result, error) {
	results := make([]result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = a.validate(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// reporter prints results. A reporter is used from one goroutine at a time.
type reporter struct {
	w      io.Writer
	format string
	title  cases.Caser
}

func (r *reporter) report(res result) error {
	if r.format == formatJSON {
		return json.NewEncoder(r.w).Encode(res)
	}
	line := res.Path + ": " + r.title.String(res.Status)
	if res.Error != "" {
		line += ": " + res.Error
	}
	if _, err := fmt.Fprintln(r.w, line); err != nil {
		return err
	}
	for _, w := range res.Warnings {
		if _, err := fmt.Fprintf(r.w, "  warning %s: %s\n", w.Event, w.Message); err != nil {
			return err
		}
	}
	return nil
}
