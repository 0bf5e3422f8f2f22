package validator

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/syssam/relmap"
	"github.com/syssam/relmap/diagnostics"
	"github.com/syssam/relmap/metadata"
)

// Validator checks that a model maps onto relational store objects
// consistently. It holds no per-call state and is safe for concurrent use.
type Validator struct {
	logger *diagnostics.Logger
	log    *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator) error

// WithLogger sets the logger warnings are raised through.
func WithLogger(l *diagnostics.Logger) Option {
	return func(v *Validator) error {
		if l == nil {
			return errors.New("validator: nil diagnostics logger")
		}
		v.logger = l
		return nil
	}
}

// WithSlog sets the logger used for debug tracing of validation runs.
func WithSlog(l *slog.Logger) Option {
	return func(v *Validator) error {
		if l == nil {
			return errors.New("validator: nil slog logger")
		}
		v.log = l
		return nil
	}
}

// New returns a Validator. Options are applied in order; the first failing
// option aborts construction.
func New(opts ...Option) (*Validator, error) {
	v := &Validator{log: slog.Default()}
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}
	if v.logger == nil {
		v.logger = diagnostics.NewLogger(diagnostics.WithSlogger(v.log))
	}
	return v, nil
}

// Logger returns the diagnostics logger used by Validate.
func (v *Validator) Logger() *diagnostics.Logger { return v.logger }

// Validate checks m and returns the first violation found, a
// *relmap.ValidationError, or the *relmap.WarningError of a warning
// configured to throw. Validate does not modify m.
func (v *Validator) Validate(m *metadata.Model) error {
	return v.ValidateWith(m, v.logger)
}

// ValidateWith is like Validate but raises warnings through logger.
func (v *Validator) ValidateWith(m *metadata.Model, logger *diagnostics.Logger) error {
	if m == nil {
		return errors.New("validator: nil model")
	}
	id := uuid.NewString()
	start := time.Now()
	v.log.Debug("model validation started",
		slog.String("validation_id", id),
		slog.Int("entity_types", len(m.EntityTypes())),
	)
	err := v.run(m, logger)
	v.log.Debug("model validation finished",
		slog.String("validation_id", id),
		slog.Duration("elapsed", time.Since(start)),
		slog.Bool("valid", err == nil),
	)
	return err
}

func (v *Validator) run(m *metadata.Model, logger *diagnostics.Logger) error {
	checks := []func(*metadata.Model, *diagnostics.Logger) error{
		v.ValidateModelIntegrity,
		v.ValidateInheritanceMapping,
		v.ValidateTpcValueGeneration,
		v.ValidateTriggerPlacement,
		v.ValidateStoreGeneration,
		v.ValidateMappingFragments,
		v.ValidatePropertyOverrides,
		v.ValidateSQLQueries,
		v.ValidateDbFunctions,
		v.ValidateStoredProcedures,
		v.ValidateSharedTableCompatibility,
		v.ValidateSharedViewCompatibility,
		v.ValidateDefaultValuesOnKeys,
		v.ValidateBoolsWithDefaults,
		v.ValidateIndexProperties,
		v.ValidateJSONEntities,
		v.ValidateTriggers,
		v.ValidateSequences,
	}
	for _, check := range checks {
		if err := check(m, logger); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks m with a default Validator.
func Validate(m *metadata.Model) error {
	v, err := New()
	if err != nil {
		return err
	}
	return v.Validate(m)
}

func fail(code relmap.Code, format string, args ...any) error {
	return relmap.NewValidationError(code, fmt.Sprintf(format, args...))
}
