// Package diagnostics raises the named warnings of model validation.
//
// Every warning has an EventID. A WarningsConfig, usually read from YAML,
// maps events to a Behavior: logged through log/slog (the default),
// ignored, or thrown as a *relmap.WarningError that stops validation.
package diagnostics
