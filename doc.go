// Package relmap validates that an entity metadata model maps consistently
// onto relational store objects: tables, views, functions, SQL queries,
// stored procedures and JSON columns.
//
// The root package holds the errors shared by the subpackages:
//
//   - metadata describes the model and resolves its store mappings.
//   - validator checks a model and returns a *ValidationError with a stable Code.
//   - diagnostics raises warnings and decides whether they are logged,
//     ignored or returned as a *WarningError.
//   - load reads model documents (YAML, JSON or msgpack) into a model.
//   - relmodel projects a validated model onto an atlas schema realm.
//
// The relmap command wraps load and validator for use in build pipelines.
package relmap
