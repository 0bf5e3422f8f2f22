package metadata

// Model is the root of the metadata graph.
type Model struct {
	// DefaultSchema applies to store objects configured without a schema.
	DefaultSchema string
	// MaxIdentifierLength truncates generated names. Zero means unlimited.
	MaxIdentifierLength int
	// PluralizeTableNames makes default table names the plural of the
	// entity type's short name.
	PluralizeTableNames bool

	entities  []*EntityType
	byName    map[string]*EntityType
	functions []*DbFunction
	sequences []*Sequence
}

// EntityTypes returns all entity types in the order they were added.
func (m *Model) EntityTypes() []*EntityType { return m.entities }

// FindEntityType returns the entity type with the given name, or nil.
func (m *Model) FindEntityType(name string) *EntityType { return m.byName[name] }

// RootEntityTypes returns the entity types without a base type.
func (m *Model) RootEntityTypes() []*EntityType {
	var roots []*EntityType
	for _, e := range m.entities {
		if e.Base == nil {
			roots = append(roots, e)
		}
	}
	return roots
}

// DbFunctions returns the functions declared on the model.
func (m *Model) DbFunctions() []*DbFunction { return m.functions }

// FindDbFunction returns the function with the given name, or nil.
func (m *Model) FindDbFunction(name string) *DbFunction {
	for _, f := range m.functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Sequences returns the sequences declared on the model.
func (m *Model) Sequences() []*Sequence { return m.sequences }

// DbFunction is a store function known to the model. Table-valued functions
// return rows of ReturnEntity; scalar functions return ReturnStoreType.
type DbFunction struct {
	Name            string
	Schema          string
	Scalar          bool
	ReturnStoreType string
	ReturnEntity    string
	Parameters      []*DbFunctionParameter
}

// DisplayName returns the schema-qualified function name.
func (f *DbFunction) DisplayName() string { return QualifiedName(f.Name, f.Schema) }

// DbFunctionParameter is a parameter of a DbFunction.
type DbFunctionParameter struct {
	Name      string
	Type      Type
	StoreType string
}

// HasTypeMapping reports whether the parameter can be sent to the store.
func (p *DbFunctionParameter) HasTypeMapping() bool {
	return p.StoreType != "" || p.Type.Valid()
}

// Sequence is a store sequence.
type Sequence struct {
	Name        string
	Schema      string
	Type        Type
	StartValue  int64
	IncrementBy int64
	Min         *int64
	Max         *int64
	Cyclic      bool
}

// DisplayName returns the schema-qualified sequence name.
func (s *Sequence) DisplayName() string { return QualifiedName(s.Name, s.Schema) }
