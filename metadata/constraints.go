package metadata

import "slices"

// Key is a primary or alternate key.
type Key struct {
	// Name is the configured constraint name; empty uses the default.
	Name          string
	DeclaringType *EntityType
	Properties    []*Property
}

// IsPrimaryKey reports whether k is the primary key of its declaring type.
func (k *Key) IsPrimaryKey() bool { return k.DeclaringType.PrimaryKey == k }

// Contains reports whether p is one of k's properties.
func (k *Key) Contains(p *Property) bool { return slices.Contains(k.Properties, p) }

// ForeignKey references a principal key from a set of dependent properties.
type ForeignKey struct {
	// Name is the configured constraint name; empty uses the default.
	Name          string
	DeclaringType *EntityType
	Properties    []*Property
	PrincipalType *EntityType
	PrincipalKey  *Key

	Unique bool
	// Required means every dependent must have a principal.
	Required bool
	// RequiredDependent means every principal of a unique relationship has a
	// dependent.
	RequiredDependent bool
	DeleteBehavior    DeleteBehavior
	Ownership         bool

	// DependentToPrincipal and PrincipalToDependent are navigation names.
	DependentToPrincipal string
	PrincipalToDependent string
}

// IsRequiredDependent reports whether every principal has a dependent.
func (fk *ForeignKey) IsRequiredDependent() bool { return fk.Unique && fk.RequiredDependent }

// Navigation is a reference or collection navigation declared on an entity
// type.
type Navigation struct {
	Name          string
	DeclaringType *EntityType
	ForeignKey    *ForeignKey
	// OnDependent is true when the navigation points from the dependent to
	// the principal.
	OnDependent bool
	Collection  bool
}

// TargetType returns the entity type the navigation points to.
func (n *Navigation) TargetType() *EntityType {
	if n.OnDependent {
		return n.ForeignKey.PrincipalType
	}
	return n.ForeignKey.DeclaringType
}

// Index is a database index over an ordered property list.
type Index struct {
	// Name is the model name of a named index, empty for unnamed ones.
	Name string
	// DatabaseName is the configured store name; empty uses Name or the default.
	DatabaseName  string
	DeclaringType *EntityType
	Properties    []*Property
	Unique        bool
	// Descending holds per column sort orders; nil means all ascending.
	Descending []bool
	Filter     string
}

// DisplayName returns the index name or its property list.
func (ix *Index) DisplayName() string {
	if ix.Name != "" {
		return "'" + ix.Name + "'"
	}
	return FormatProperties(ix.Properties)
}

// IsDescending reports whether column i is sorted descending.
func (ix *Index) IsDescending(i int) bool {
	if ix.Descending == nil {
		return false
	}
	if len(ix.Descending) == 0 {
		return true
	}
	return i < len(ix.Descending) && ix.Descending[i]
}

// CheckConstraint is a named SQL check declared on an entity type.
type CheckConstraint struct {
	ModelName string
	// Name is the configured store name; empty uses the default.
	Name          string
	SQL           string
	DeclaringType *EntityType
}

// Trigger is a store trigger declared on an entity type.
type Trigger struct {
	ModelName string
	// Name is the configured store name; empty uses ModelName.
	Name          string
	DeclaringType *EntityType
	// Table is the table the trigger is defined on; nil means the
	// declaring type's table.
	Table *ObjectName
}

// GetTableName returns the name and schema of the trigger's table.
func (t *Trigger) GetTableName() (string, string) {
	if t.Table != nil {
		schema := t.Table.Schema
		if schema == "" {
			schema = t.DeclaringType.Model.DefaultSchema
		}
		return t.Table.Name, schema
	}
	return t.DeclaringType.GetTableName(), t.DeclaringType.GetSchema()
}
