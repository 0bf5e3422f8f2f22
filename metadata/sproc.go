package metadata

// StoredProcedure saves an entity type instead of direct DML.
type StoredProcedure struct {
	// Name and Schema are the configured name; an empty Name uses the
	// default "<table>_<Kind>" name when the entity type has a table.
	Name       string
	Schema     string
	Kind       StoreObjectType
	EntityType *EntityType

	Parameters    []*StoredProcedureParameter
	ResultColumns []*StoredProcedureResultColumn
	// RowsAffectedReturned means the return value carries the number of
	// affected rows.
	RowsAffectedReturned bool
}

// StoredProcedureParameter binds a parameter to a property value or to the
// number of affected rows.
type StoredProcedureParameter struct {
	Name             string
	PropertyName     string
	ForOriginalValue bool
	ForRowsAffected  bool
	Direction        ParameterDirection
}

// StoredProcedureResultColumn binds a result set column to a property value
// or to the number of affected rows.
type StoredProcedureResultColumn struct {
	Name            string
	PropertyName    string
	ForRowsAffected bool
}

// GetName returns the configured or default name; "" if it has none.
func (sp *StoredProcedure) GetName() string {
	if sp.Name != "" {
		return sp.Name
	}
	table := sp.EntityType.GetTableName()
	if table == "" {
		return ""
	}
	suffix := "_Insert"
	switch sp.Kind {
	case UpdateStoredProcedure:
		suffix = "_Update"
	case DeleteStoredProcedure:
		suffix = "_Delete"
	case InsertStoredProcedure, Table, View, Function, SQLQuery:
	}
	return truncate(table+suffix, sp.EntityType.Model.MaxIdentifierLength)
}

// GetSchema returns the configured schema or the entity type's table schema.
func (sp *StoredProcedure) GetSchema() string {
	if sp.Schema != "" {
		return sp.Schema
	}
	if sp.EntityType.GetTableName() != "" {
		return sp.EntityType.GetSchema()
	}
	return sp.EntityType.Model.DefaultSchema
}

// StoreObject returns the identifier of the procedure, if it has a name.
func (sp *StoredProcedure) StoreObject() (StoreObjectIdentifier, bool) {
	name := sp.GetName()
	if name == "" {
		return StoreObjectIdentifier{}, false
	}
	return StoredProcedureID(name, sp.GetSchema(), sp.Kind), true
}

// FindParameter returns the parameter with the given name, or nil.
func (sp *StoredProcedure) FindParameter(name string) *StoredProcedureParameter {
	for _, p := range sp.Parameters {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// MappingFragment maps part of an entity type's properties to a store
// object other than its main one.
type MappingFragment struct {
	EntityType  *EntityType
	StoreObject StoreObjectIdentifier
}
