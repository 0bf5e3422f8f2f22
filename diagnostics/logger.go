package diagnostics

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/syssam/relmap"
	"github.com/syssam/relmap/metadata"
)

// Event is a raised warning as delivered to a sink.
type Event struct {
	ID       EventID
	Message  string
	Behavior Behavior
	Attrs    []slog.Attr
}

// Logger raises validation warnings. Depending on its WarningsConfig a
// warning is dropped, logged through slog, or returned as a
// *relmap.WarningError. A nil *Logger drops everything.
type Logger struct {
	log      *slog.Logger
	warnings WarningsConfig
	sink     func(Event)
}

// Option configures a Logger.
type Option func(*Logger)

// WithWarnings sets the warnings configuration.
func WithWarnings(c WarningsConfig) Option {
	return func(l *Logger) { l.warnings = c }
}

// WithSink registers a function receiving every warning that is not ignored.
func WithSink(f func(Event)) Option {
	return func(l *Logger) { l.sink = f }
}

// WithSlogger sets the slog logger warnings are written to.
func WithSlogger(log *slog.Logger) Option {
	return func(l *Logger) { l.log = log }
}

// NewLogger returns a Logger writing to slog.Default unless configured
// otherwise.
func NewLogger(opts ...Option) *Logger {
	l := &Logger{log: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Warnings returns the warnings configuration.
func (l *Logger) Warnings() WarningsConfig {
	if l == nil {
		return WarningsConfig{Default: Ignore}
	}
	return l.warnings
}

func (l *Logger) raise(id EventID, msg string, attrs ...slog.Attr) error {
	if l == nil {
		return nil
	}
	b := l.warnings.Behavior(id)
	if b == Ignore {
		return nil
	}
	if l.sink != nil {
		l.sink(Event{ID: id, Message: msg, Behavior: b, Attrs: attrs})
	}
	if b == Throw {
		return relmap.NewWarningError(string(id), msg)
	}
	if l.log != nil {
		attrs = append([]slog.Attr{slog.String("event_id", string(id))}, attrs...)
		l.log.LogAttrs(context.Background(), slog.LevelWarn, msg, attrs...)
	}
	return nil
}

// OptionalDependentWithoutIdentifyingPropertyWarning is raised for an
// optional table-sharing dependent whose existence cannot be told from its
// columns.
func (l *Logger) OptionalDependentWithoutIdentifyingPropertyWarning(e *metadata.EntityType) error {
	return l.raise(OptionalDependentWithoutIdentifyingPropertyWarning,
		fmt.Sprintf("The entity type '%s' is an optional dependent using table sharing without any required non shared property that could be used to identify whether the entity exists. If all nullable properties contain a null value in database then an object instance won't be created in the query. Add a required property to create instances with null values for other properties or mark the incoming navigation as required to always create an instance.", e.DisplayName()),
		slog.String("entity_type", e.DisplayName()),
	)
}

// DuplicateColumnOrders is raised when columns of a table share an order.
func (l *Logger) DuplicateColumnOrders(table metadata.StoreObjectIdentifier, columns []string) error {
	return l.raise(DuplicateColumnOrders,
		fmt.Sprintf("The columns %s of table '%s' are configured with the same column order. The order of these columns is undefined.",
			metadata.FormatColumns(columns), table.DisplayName()),
		slog.String("table", table.DisplayName()),
		slog.Any("columns", columns),
	)
}

// TpcStoreGeneratedIdentityWarning is raised for a store generated key of a
// TPC hierarchy.
func (l *Logger) TpcStoreGeneratedIdentityWarning(p *metadata.Property) error {
	return l.raise(TpcStoreGeneratedIdentityWarning,
		fmt.Sprintf("The property '%s' on entity type '%s' is configured with a database-generated default, however the entity type is mapped to the database using table per concrete class strategy. Make sure that the generated values are unique across all the tables, duplicated values could result in errors or data corruption.",
			p.Name, p.DeclaringType.DisplayName()),
		slog.String("entity_type", p.DeclaringType.DisplayName()),
		slog.String("property", p.Name),
	)
}

// StoredProcedureConcurrencyTokenNotMapped is raised when a concurrency
// token has no original value parameter.
func (l *Logger) StoredProcedureConcurrencyTokenNotMapped(e *metadata.EntityType, token *metadata.Property, sproc string) error {
	return l.raise(StoredProcedureConcurrencyTokenNotMapped,
		fmt.Sprintf("The entity type '%s' is mapped to the stored procedure '%s', however the concurrency token '%s' is not mapped to any original value parameter.",
			e.DisplayName(), sproc, token.Name),
		slog.String("entity_type", e.DisplayName()),
		slog.String("property", token.Name),
		slog.String("stored_procedure", sproc),
	)
}

// TriggerOnNonRootTphEntity is raised for triggers declared on derived
// types of a TPH hierarchy.
func (l *Logger) TriggerOnNonRootTphEntity(e *metadata.EntityType) error {
	root := e.RootType().DisplayName()
	return l.raise(TriggerOnNonRootTphEntity,
		fmt.Sprintf("Can't configure a trigger on entity type '%s', which is in a TPH hierarchy and isn't the root. Configure the trigger on the TPH root entity type '%s' instead.",
			e.DisplayName(), root),
		slog.String("entity_type", e.DisplayName()),
		slog.String("root_entity_type", root),
	)
}

// BoolWithDefaultWarning is raised for a bool column with a store default
// other than false.
func (l *Logger) BoolWithDefaultWarning(p *metadata.Property) error {
	return l.raise(BoolWithDefaultWarning,
		fmt.Sprintf("The 'bool' property '%s' on entity type '%s' is configured with a database-generated default. This default will always be used for inserts when the property has the value 'false', since this is the default value of the type.",
			p.Name, p.DeclaringType.DisplayName()),
		slog.String("entity_type", p.DeclaringType.DisplayName()),
		slog.String("property", p.Name),
	)
}

// ModelValidationKeyDefaultValueWarning is raised for key properties with a
// constant default value.
func (l *Logger) ModelValidationKeyDefaultValueWarning(p *metadata.Property) error {
	return l.raise(ModelValidationKeyDefaultValueWarning,
		fmt.Sprintf("The property '%s' on entity type '%s' is part of a primary or alternate key, but has a constant default value set. Constant default values are not useful for primary or alternate keys since these properties must always have non-null unique values.",
			p.Name, p.DeclaringType.DisplayName()),
		slog.String("entity_type", p.DeclaringType.DisplayName()),
		slog.String("property", p.Name),
	)
}

// AllIndexPropertiesNotToMappedToAnyTable is raised for an index none of
// whose properties has a column.
func (l *Logger) AllIndexPropertiesNotToMappedToAnyTable(e *metadata.EntityType, ix *metadata.Index) error {
	return l.raise(AllIndexPropertiesNotToMappedToAnyTable,
		fmt.Sprintf("%s on entity type '%s' specifies properties %s. None of these properties are mapped to a column in any table. This index will not be created in the database.",
			indexName(ix), e.DisplayName(), metadata.FormatProperties(ix.Properties)),
		slog.String("entity_type", e.DisplayName()),
		slog.String("index", ix.DisplayName()),
	)
}

// IndexPropertiesBothMappedAndNotMappedToTable is raised for an index with
// some properties lacking a column.
func (l *Logger) IndexPropertiesBothMappedAndNotMappedToTable(e *metadata.EntityType, ix *metadata.Index, unmapped string) error {
	return l.raise(IndexPropertiesBothMappedAndNotMappedToTable,
		fmt.Sprintf("%s on entity type '%s' specifies properties %s. Some properties are mapped to a column in a table, but the property '%s' is not. All index properties must map to at least one column in any table, for the index to be created.",
			indexName(ix), e.DisplayName(), metadata.FormatProperties(ix.Properties), unmapped),
		slog.String("entity_type", e.DisplayName()),
		slog.String("index", ix.DisplayName()),
		slog.String("property", unmapped),
	)
}

// IndexPropertiesMappedToNonOverlappingTables is raised for an index whose
// properties have no table in common.
func (l *Logger) IndexPropertiesMappedToNonOverlappingTables(e *metadata.EntityType, ix *metadata.Index,
	prop1 string, tables1 []metadata.StoreObjectIdentifier, prop2 string, tables2 []metadata.StoreObjectIdentifier) error {
	return l.raise(IndexPropertiesMappedToNonOverlappingTables,
		fmt.Sprintf("%s on entity type '%s' specifies properties %s. The property '%s' is mapped to table(s) %s, whereas the property '%s' is mapped to table(s) %s. All index properties must map to at least one common table.",
			indexName(ix), e.DisplayName(), metadata.FormatProperties(ix.Properties),
			prop1, tableList(tables1), prop2, tableList(tables2)),
		slog.String("entity_type", e.DisplayName()),
		slog.String("index", ix.DisplayName()),
	)
}

func indexName(ix *metadata.Index) string {
	if ix.Name != "" {
		return "The index '" + ix.Name + "'"
	}
	return "The unnamed index"
}

func tableList(ids []metadata.StoreObjectIdentifier) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = "'" + id.DisplayName() + "'"
	}
	return "{" + strings.Join(names, ", ") + "}"
}
