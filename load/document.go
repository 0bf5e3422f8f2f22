package load

import "github.com/syssam/relmap/metadata"

// Document is the serialized form of a model. Its members mirror the
// metadata.Builder API; Build turns a document into a model.
type Document struct {
	DefaultSchema       string      `json:"default_schema,omitempty" yaml:"default_schema,omitempty"`
	MaxIdentifierLength int         `json:"max_identifier_length,omitempty" yaml:"max_identifier_length,omitempty"`
	PluralizeTableNames bool        `json:"pluralize_table_names,omitempty" yaml:"pluralize_table_names,omitempty"`
	Entities            []*Entity   `json:"entities,omitempty" yaml:"entities,omitempty"`
	Functions           []*Function `json:"functions,omitempty" yaml:"functions,omitempty"`
	Sequences           []*Sequence `json:"sequences,omitempty" yaml:"sequences,omitempty"`

	// path the document was read from, used in errors.
	path string
}

// Path returns the file the document was read from, or "" if it was parsed
// from memory.
func (d *Document) Path() string { return d.path }

// Entity describes an entity type.
type Entity struct {
	Name                  string               `json:"name" yaml:"name"`
	Base                  string               `json:"base,omitempty" yaml:"base,omitempty"`
	Abstract              bool                 `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Strategy              string               `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	Discriminator         string               `json:"discriminator,omitempty" yaml:"discriminator,omitempty"`
	DiscriminatorValue    any                  `json:"discriminator_value,omitempty" yaml:"discriminator_value,omitempty"`
	Table                 *metadata.ObjectName `json:"table,omitempty" yaml:"table,omitempty"`
	View                  *metadata.ObjectName `json:"view,omitempty" yaml:"view,omitempty"`
	Function              string               `json:"function,omitempty" yaml:"function,omitempty"`
	SQLQuery              string               `json:"sql_query,omitempty" yaml:"sql_query,omitempty"`
	Comment               string               `json:"comment,omitempty" yaml:"comment,omitempty"`
	ExcludeFromMigrations bool                 `json:"exclude_from_migrations,omitempty" yaml:"exclude_from_migrations,omitempty"`
	Properties            []*Property          `json:"properties,omitempty" yaml:"properties,omitempty"`
	Key                   *Key                 `json:"key,omitempty" yaml:"key,omitempty"`
	AlternateKeys         []*Key               `json:"alternate_keys,omitempty" yaml:"alternate_keys,omitempty"`
	ForeignKeys           []*ForeignKey        `json:"foreign_keys,omitempty" yaml:"foreign_keys,omitempty"`
	Indexes               []*Index             `json:"indexes,omitempty" yaml:"indexes,omitempty"`
	Checks                []*Check             `json:"checks,omitempty" yaml:"checks,omitempty"`
	Triggers              []*Trigger           `json:"triggers,omitempty" yaml:"triggers,omitempty"`
	Fragments             []*Fragment          `json:"fragments,omitempty" yaml:"fragments,omitempty"`
	InsertProcedure       *Procedure           `json:"insert_procedure,omitempty" yaml:"insert_procedure,omitempty"`
	UpdateProcedure       *Procedure           `json:"update_procedure,omitempty" yaml:"update_procedure,omitempty"`
	DeleteProcedure       *Procedure           `json:"delete_procedure,omitempty" yaml:"delete_procedure,omitempty"`
	Owns                  []*Owned             `json:"owns,omitempty" yaml:"owns,omitempty"`
}

// Owned describes an owned type reached from its owner through Navigation.
// The embedded entity's Name is the owned type name and defaults to the
// navigation name.
type Owned struct {
	Navigation       string `json:"navigation" yaml:"navigation"`
	Many             bool   `json:"many,omitempty" yaml:"many,omitempty"`
	JSONColumn       string `json:"json_column,omitempty" yaml:"json_column,omitempty"`
	JSONPropertyName string `json:"json_property_name,omitempty" yaml:"json_property_name,omitempty"`
	Entity           `yaml:",inline"`
}

// TypeName returns the name of the owned type.
func (o *Owned) TypeName() string {
	if o.Name != "" {
		return o.Name
	}
	return o.Navigation
}

// Property describes a scalar property.
type Property struct {
	Name             string        `json:"name" yaml:"name"`
	Type             metadata.Type `json:"type" yaml:"type"`
	Nullable         bool          `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	ProviderType     metadata.Type `json:"provider_type,omitempty" yaml:"provider_type,omitempty"`
	MaxLength        *int          `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	Precision        *int          `json:"precision,omitempty" yaml:"precision,omitempty"`
	Scale            *int          `json:"scale,omitempty" yaml:"scale,omitempty"`
	Unicode          *bool         `json:"unicode,omitempty" yaml:"unicode,omitempty"`
	FixedLength      *bool         `json:"fixed_length,omitempty" yaml:"fixed_length,omitempty"`
	Column           string        `json:"column,omitempty" yaml:"column,omitempty"`
	ColumnType       string        `json:"column_type,omitempty" yaml:"column_type,omitempty"`
	ColumnOrder      *int          `json:"column_order,omitempty" yaml:"column_order,omitempty"`
	Comment          string        `json:"comment,omitempty" yaml:"comment,omitempty"`
	Collation        string        `json:"collation,omitempty" yaml:"collation,omitempty"`
	Default          any           `json:"default,omitempty" yaml:"default,omitempty"`
	DefaultSQL       string        `json:"default_sql,omitempty" yaml:"default_sql,omitempty"`
	ComputedSQL      string        `json:"computed_sql,omitempty" yaml:"computed_sql,omitempty"`
	Stored           *bool         `json:"stored,omitempty" yaml:"stored,omitempty"`
	ValueGenerated   string        `json:"value_generated,omitempty" yaml:"value_generated,omitempty"`
	BeforeSave       string        `json:"before_save,omitempty" yaml:"before_save,omitempty"`
	AfterSave        string        `json:"after_save,omitempty" yaml:"after_save,omitempty"`
	ConcurrencyToken bool          `json:"concurrency_token,omitempty" yaml:"concurrency_token,omitempty"`
	JSONPropertyName string        `json:"json_property_name,omitempty" yaml:"json_property_name,omitempty"`
	Overrides        []*Override   `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

// Override renames the column of a property in one table or view.
type Override struct {
	Table  string `json:"table,omitempty" yaml:"table,omitempty"`
	View   string `json:"view,omitempty" yaml:"view,omitempty"`
	Schema string `json:"schema,omitempty" yaml:"schema,omitempty"`
	Column string `json:"column" yaml:"column"`
}

// Key describes a primary or alternate key.
type Key struct {
	Name       string   `json:"name,omitempty" yaml:"name,omitempty"`
	Properties []string `json:"properties" yaml:"properties"`
}

// ForeignKey describes a relationship from the declaring entity to Principal.
type ForeignKey struct {
	Principal         string   `json:"principal" yaml:"principal"`
	Properties        []string `json:"properties" yaml:"properties"`
	PrincipalKey      []string `json:"principal_key,omitempty" yaml:"principal_key,omitempty"`
	Name              string   `json:"name,omitempty" yaml:"name,omitempty"`
	Unique            bool     `json:"unique,omitempty" yaml:"unique,omitempty"`
	Required          bool     `json:"required,omitempty" yaml:"required,omitempty"`
	RequiredDependent bool     `json:"required_dependent,omitempty" yaml:"required_dependent,omitempty"`
	OnDelete          string   `json:"on_delete,omitempty" yaml:"on_delete,omitempty"`
	Navigation        string   `json:"navigation,omitempty" yaml:"navigation,omitempty"`
	Inverse           string   `json:"inverse,omitempty" yaml:"inverse,omitempty"`
}

// Index describes an index.
type Index struct {
	Name         string   `json:"name,omitempty" yaml:"name,omitempty"`
	DatabaseName string   `json:"database_name,omitempty" yaml:"database_name,omitempty"`
	Properties   []string `json:"properties" yaml:"properties"`
	Unique       bool     `json:"unique,omitempty" yaml:"unique,omitempty"`
	Filter       string   `json:"filter,omitempty" yaml:"filter,omitempty"`
	Descending   []bool   `json:"descending,omitempty" yaml:"descending,omitempty"`
}

// Check describes a check constraint.
type Check struct {
	Name      string `json:"name" yaml:"name"`
	StoreName string `json:"store_name,omitempty" yaml:"store_name,omitempty"`
	SQL       string `json:"sql" yaml:"sql"`
}

// Trigger describes a trigger. A nil Table means the entity's own table.
type Trigger struct {
	Name      string               `json:"name" yaml:"name"`
	StoreName string               `json:"store_name,omitempty" yaml:"store_name,omitempty"`
	Table     *metadata.ObjectName `json:"table,omitempty" yaml:"table,omitempty"`
}

// Fragment maps some properties of an entity to a second table or view.
type Fragment struct {
	Table      string   `json:"table,omitempty" yaml:"table,omitempty"`
	View       string   `json:"view,omitempty" yaml:"view,omitempty"`
	Schema     string   `json:"schema,omitempty" yaml:"schema,omitempty"`
	Properties []string `json:"properties" yaml:"properties"`
}

// Procedure describes a stored procedure mapping. An empty name uses the
// default name derived from the entity's table.
type Procedure struct {
	Name                 string          `json:"name,omitempty" yaml:"name,omitempty"`
	Schema               string          `json:"schema,omitempty" yaml:"schema,omitempty"`
	Parameters           []*Parameter    `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	ResultColumns        []*ResultColumn `json:"result_columns,omitempty" yaml:"result_columns,omitempty"`
	RowsAffectedReturned bool            `json:"rows_affected_returned,omitempty" yaml:"rows_affected_returned,omitempty"`
}

// Parameter is a stored procedure parameter. Name overrides the default
// parameter name.
type Parameter struct {
	Name          string `json:"name,omitempty" yaml:"name,omitempty"`
	Property      string `json:"property,omitempty" yaml:"property,omitempty"`
	Direction     string `json:"direction,omitempty" yaml:"direction,omitempty"`
	OriginalValue bool   `json:"original_value,omitempty" yaml:"original_value,omitempty"`
	RowsAffected  bool   `json:"rows_affected,omitempty" yaml:"rows_affected,omitempty"`
}

// ResultColumn is a stored procedure result column.
type ResultColumn struct {
	Property     string `json:"property,omitempty" yaml:"property,omitempty"`
	RowsAffected bool   `json:"rows_affected,omitempty" yaml:"rows_affected,omitempty"`
}

// Function describes a store function.
type Function struct {
	Name            string               `json:"name" yaml:"name"`
	Schema          string               `json:"schema,omitempty" yaml:"schema,omitempty"`
	Scalar          bool                 `json:"scalar,omitempty" yaml:"scalar,omitempty"`
	ReturnStoreType string               `json:"return_store_type,omitempty" yaml:"return_store_type,omitempty"`
	ReturnEntity    string               `json:"return_entity,omitempty" yaml:"return_entity,omitempty"`
	Parameters      []*FunctionParameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// FunctionParameter is a parameter of a store function.
type FunctionParameter struct {
	Name      string        `json:"name" yaml:"name"`
	Type      metadata.Type `json:"type,omitempty" yaml:"type,omitempty"`
	StoreType string        `json:"store_type,omitempty" yaml:"store_type,omitempty"`
}

// Sequence describes a store sequence. Start and IncrementBy default to 1
// and Type to int64.
type Sequence struct {
	Name        string        `json:"name" yaml:"name"`
	Schema      string        `json:"schema,omitempty" yaml:"schema,omitempty"`
	Type        metadata.Type `json:"type,omitempty" yaml:"type,omitempty"`
	Start       *int64        `json:"start,omitempty" yaml:"start,omitempty"`
	IncrementBy *int64        `json:"increment_by,omitempty" yaml:"increment_by,omitempty"`
	Min         *int64        `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *int64        `json:"max,omitempty" yaml:"max,omitempty"`
	Cyclic      bool          `json:"cyclic,omitempty" yaml:"cyclic,omitempty"`
}
