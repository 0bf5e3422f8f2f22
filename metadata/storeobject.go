package metadata

import "fmt"

// StoreObjectType is the kind of a store object. The set is closed; switches
// over it list every constant.
type StoreObjectType uint8

// Store object kinds.
const (
	Table StoreObjectType = iota + 1
	View
	Function
	SQLQuery
	InsertStoredProcedure
	DeleteStoredProcedure
	UpdateStoredProcedure
)

// StoreObjectTypes lists every store object kind in declaration order.
var StoreObjectTypes = []StoreObjectType{
	Table, View, Function, SQLQuery,
	InsertStoredProcedure, DeleteStoredProcedure, UpdateStoredProcedure,
}

// StoredProcedureTypes lists the stored procedure kinds.
var StoredProcedureTypes = []StoreObjectType{
	InsertStoredProcedure, DeleteStoredProcedure, UpdateStoredProcedure,
}

func (t StoreObjectType) String() string {
	switch t {
	case Table:
		return "Table"
	case View:
		return "View"
	case Function:
		return "Function"
	case SQLQuery:
		return "SqlQuery"
	case InsertStoredProcedure:
		return "InsertStoredProcedure"
	case DeleteStoredProcedure:
		return "DeleteStoredProcedure"
	case UpdateStoredProcedure:
		return "UpdateStoredProcedure"
	}
	return fmt.Sprintf("StoreObjectType(%d)", uint8(t))
}

// IsStoredProcedure reports whether t is one of the stored procedure kinds.
func (t StoreObjectType) IsStoredProcedure() bool {
	switch t {
	case InsertStoredProcedure, DeleteStoredProcedure, UpdateStoredProcedure:
		return true
	case Table, View, Function, SQLQuery:
		return false
	}
	return false
}

// ObjectName is a possibly schema-qualified store object name. An ObjectName
// with an empty Name explicitly unmaps the entity type from that kind.
type ObjectName struct {
	Name   string `json:"name" yaml:"name" msgpack:"name"`
	Schema string `json:"schema,omitempty" yaml:"schema,omitempty" msgpack:"schema,omitempty"`
}

// StoreObjectIdentifier identifies a table, view, function, SQL query or
// stored procedure. It is comparable and used as a grouping key.
type StoreObjectIdentifier struct {
	Name   string
	Schema string
	Type   StoreObjectType
}

// TableID returns the identifier of a table.
func TableID(name, schema string) StoreObjectIdentifier {
	return StoreObjectIdentifier{Name: name, Schema: schema, Type: Table}
}

// ViewID returns the identifier of a view.
func ViewID(name, schema string) StoreObjectIdentifier {
	return StoreObjectIdentifier{Name: name, Schema: schema, Type: View}
}

// FunctionID returns the identifier of a function.
func FunctionID(name string) StoreObjectIdentifier {
	return StoreObjectIdentifier{Name: name, Type: Function}
}

// SQLQueryID returns the identifier of the SQL query mapped to an entity type.
func SQLQueryID(name string) StoreObjectIdentifier {
	return StoreObjectIdentifier{Name: name, Type: SQLQuery}
}

// StoredProcedureID returns the identifier of a stored procedure.
func StoredProcedureID(name, schema string, kind StoreObjectType) StoreObjectIdentifier {
	return StoreObjectIdentifier{Name: name, Schema: schema, Type: kind}
}

// DisplayName returns the schema-qualified name.
func (id StoreObjectIdentifier) DisplayName() string {
	return QualifiedName(id.Name, id.Schema)
}

func (id StoreObjectIdentifier) String() string {
	return id.Type.String() + " " + id.DisplayName()
}

// QualifiedName joins schema and name with a dot when a schema is set.
func QualifiedName(name, schema string) string {
	if schema == "" {
		return name
	}
	return schema + "." + name
}
