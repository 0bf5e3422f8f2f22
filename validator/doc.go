// Package validator checks that a metadata model maps consistently onto
// relational store objects before anything is generated from it.
//
// Validate runs the checks in a fixed order and returns the first hard
// violation as a *relmap.ValidationError carrying a stable code:
//
//	v, err := validator.New(validator.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	if err := v.Validate(model); relmap.HasCode(err, relmap.IncompatibleTableKeyNameMismatch) {
//		// ...
//	}
//
// Softer problems are raised as warnings through the diagnostics.Logger;
// its configuration decides whether they are logged, ignored or returned as
// errors. Every check is also exported on its own so that callers can run
// a subset.
package validator
