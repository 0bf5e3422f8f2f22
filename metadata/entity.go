package metadata

import (
	"slices"
	"strings"
)

// EntityType is a mapped type. Entity types form single-inheritance trees
// through Base; the derived lists are maintained by the Builder.
type EntityType struct {
	Name     string
	Model    *Model
	Base     *EntityType
	Abstract bool

	// Strategy is the mapping strategy configured on this type. Only root
	// types should carry one.
	Strategy MappingStrategy
	// Discriminator is the discriminator property of a TPH root.
	Discriminator *Property
	// DiscriminatorValue is the explicitly configured value; nil means the
	// short name is used when the hierarchy has a discriminator.
	DiscriminatorValue any

	Table    *ObjectName
	View     *ObjectName
	Function *ObjectName
	SQLQuery string

	InsertSproc *StoredProcedure
	UpdateSproc *StoredProcedure
	DeleteSproc *StoredProcedure

	Fragments []*MappingFragment

	// ContainerColumn is the JSON column of an owned JSON root.
	ContainerColumn string
	// JSONPropertyName names the owned type inside its owner's JSON document.
	JSONPropertyName string

	Comment                string
	ExcludedFromMigrations bool

	Properties       []*Property
	Keys             []*Key
	PrimaryKey       *Key
	ForeignKeys      []*ForeignKey
	Navigations      []*Navigation
	Indexes          []*Index
	CheckConstraints []*CheckConstraint
	Triggers         []*Trigger

	derived []*EntityType
}

// DisplayName returns the name used in diagnostics.
func (e *EntityType) DisplayName() string { return e.Name }

// ShortName returns the name without namespace or owner prefix.
func (e *EntityType) ShortName() string {
	name := e.Name
	if i := strings.LastIndexByte(name, '#'); i >= 0 {
		return name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// RootType returns the root of e's hierarchy.
func (e *EntityType) RootType() *EntityType {
	root := e
	for root.Base != nil {
		root = root.Base
	}
	return root
}

// DirectlyDerivedTypes returns the types whose base is e.
func (e *EntityType) DirectlyDerivedTypes() []*EntityType { return e.derived }

// DerivedTypes returns all types derived from e, breadth first.
func (e *EntityType) DerivedTypes() []*EntityType {
	var (
		all   []*EntityType
		queue = append([]*EntityType(nil), e.derived...)
	)
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		all = append(all, t)
		queue = append(queue, t.derived...)
	}
	return all
}

// DerivedTypesInclusive returns e followed by DerivedTypes.
func (e *EntityType) DerivedTypesInclusive() []*EntityType {
	return append([]*EntityType{e}, e.DerivedTypes()...)
}

// AllBaseTypes returns e's ancestors, nearest first.
func (e *EntityType) AllBaseTypes() []*EntityType {
	var bases []*EntityType
	for b := e.Base; b != nil; b = b.Base {
		bases = append(bases, b)
	}
	return bases
}

// IsAssignableFrom reports whether other is e or derives from e.
func (e *EntityType) IsAssignableFrom(other *EntityType) bool {
	for t := other; t != nil; t = t.Base {
		if t == e {
			return true
		}
	}
	return false
}

// IsAbstract reports whether instances of e cannot be created.
func (e *EntityType) IsAbstract() bool { return e.Abstract }

// GetProperties returns inherited then declared properties.
func (e *EntityType) GetProperties() []*Property {
	if e.Base == nil {
		return e.Properties
	}
	return slices.Concat(e.Base.GetProperties(), e.Properties)
}

// DerivedProperties returns the properties declared on derived types.
func (e *EntityType) DerivedProperties() []*Property {
	var props []*Property
	for _, d := range e.DerivedTypes() {
		props = append(props, d.Properties...)
	}
	return props
}

// FindDeclaredProperty returns the property declared on e with the name.
func (e *EntityType) FindDeclaredProperty(name string) *Property {
	for _, p := range e.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// FindProperty returns the property with the name declared on e or a base.
func (e *EntityType) FindProperty(name string) *Property {
	for t := e; t != nil; t = t.Base {
		if p := t.FindDeclaredProperty(name); p != nil {
			return p
		}
	}
	return nil
}

// FindPrimaryKey returns the primary key of the hierarchy, or nil.
func (e *EntityType) FindPrimaryKey() *Key { return e.RootType().PrimaryKey }

// GetKeys returns inherited then declared keys.
func (e *EntityType) GetKeys() []*Key {
	if e.Base == nil {
		return e.Keys
	}
	return slices.Concat(e.Base.GetKeys(), e.Keys)
}

// GetForeignKeys returns inherited then declared foreign keys.
func (e *EntityType) GetForeignKeys() []*ForeignKey {
	if e.Base == nil {
		return e.ForeignKeys
	}
	return slices.Concat(e.Base.GetForeignKeys(), e.ForeignKeys)
}

// FindForeignKeys returns the foreign keys of e over exactly props.
func (e *EntityType) FindForeignKeys(props []*Property) []*ForeignKey {
	var fks []*ForeignKey
	for _, fk := range e.GetForeignKeys() {
		if sameProperties(fk.Properties, props) {
			fks = append(fks, fk)
		}
	}
	return fks
}

// GetReferencingForeignKeys returns the foreign keys of the model whose
// principal is e or one of its base types.
func (e *EntityType) GetReferencingForeignKeys() []*ForeignKey {
	var fks []*ForeignKey
	for _, t := range e.Model.entities {
		for _, fk := range t.ForeignKeys {
			if fk.PrincipalType.IsAssignableFrom(e) {
				fks = append(fks, fk)
			}
		}
	}
	return fks
}

// GetNavigations returns inherited then declared navigations.
func (e *EntityType) GetNavigations() []*Navigation {
	if e.Base == nil {
		return e.Navigations
	}
	return slices.Concat(e.Base.GetNavigations(), e.Navigations)
}

// FindOwnership returns the ownership foreign key if e is owned.
func (e *EntityType) FindOwnership() *ForeignKey {
	for _, fk := range e.GetForeignKeys() {
		if fk.Ownership {
			return fk
		}
	}
	return nil
}

// IsOwned reports whether e is owned by another entity type.
func (e *EntityType) IsOwned() bool { return e.FindOwnership() != nil }

// IsInOwnershipPath reports whether target owns e, directly or transitively.
func (e *EntityType) IsInOwnershipPath(target *EntityType) bool {
	seen := map[*EntityType]bool{e: true}
	for o := e.FindOwnership(); o != nil; o = o.PrincipalType.FindOwnership() {
		if o.PrincipalType == target {
			return true
		}
		if seen[o.PrincipalType] {
			return false
		}
		seen[o.PrincipalType] = true
	}
	return false
}

// FindDiscriminatorProperty returns the discriminator of e's hierarchy.
func (e *EntityType) FindDiscriminatorProperty() *Property { return e.RootType().Discriminator }

// GetDiscriminatorValue returns the discriminator value of e and whether it
// was configured explicitly. Hierarchies without a discriminator have none.
func (e *EntityType) GetDiscriminatorValue() (any, bool) {
	if e.DiscriminatorValue != nil {
		return e.DiscriminatorValue, true
	}
	if e.FindDiscriminatorProperty() == nil {
		return nil, false
	}
	return e.ShortName(), false
}

// GetMappingStrategy returns the effective strategy of e's hierarchy. An
// unset strategy is TPH, unless the hierarchy has no discriminator and a
// derived type is explicitly mapped to a table of its own, which is TPT.
func (e *EntityType) GetMappingStrategy() MappingStrategy {
	root := e.RootType()
	if root.Strategy != "" {
		return root.Strategy
	}
	if root.Discriminator == nil {
		for _, d := range root.DerivedTypes() {
			if d.Table != nil && d.Table.Name != "" && (root.Table == nil || *d.Table != *root.Table) {
				return TPT
			}
		}
	}
	return TPH
}

// GetDeclaredStoredProcedure returns the stored procedure of the given kind
// declared on e.
func (e *EntityType) GetDeclaredStoredProcedure(kind StoreObjectType) *StoredProcedure {
	switch kind {
	case InsertStoredProcedure:
		return e.InsertSproc
	case UpdateStoredProcedure:
		return e.UpdateSproc
	case DeleteStoredProcedure:
		return e.DeleteSproc
	case Table, View, Function, SQLQuery:
	}
	return nil
}

// GetStoredProcedure returns the stored procedure used to save e: its own,
// or under TPH the one of the nearest base type declaring one.
func (e *EntityType) GetStoredProcedure(kind StoreObjectType) *StoredProcedure {
	if sp := e.GetDeclaredStoredProcedure(kind); sp != nil {
		return sp
	}
	if e.Base != nil && e.GetMappingStrategy() == TPH {
		return e.Base.GetStoredProcedure(kind)
	}
	return nil
}

// GetMappingFragments returns e's fragments of the given kind.
func (e *EntityType) GetMappingFragments(kind StoreObjectType) []*MappingFragment {
	var fs []*MappingFragment
	for _, f := range e.Fragments {
		if f.StoreObject.Type == kind {
			fs = append(fs, f)
		}
	}
	return fs
}

// FindMappingFragment returns e's fragment for so, or nil.
func (e *EntityType) FindMappingFragment(so StoreObjectIdentifier) *MappingFragment {
	for _, f := range e.Fragments {
		if f.StoreObject == so {
			return f
		}
	}
	return nil
}

// GetContainerColumnName returns the JSON column e is stored in, inherited
// from the owner for nested JSON types.
func (e *EntityType) GetContainerColumnName() string {
	seen := map[*EntityType]bool{}
	for t := e; t != nil && !seen[t]; {
		seen[t] = true
		if t.ContainerColumn != "" {
			return t.ContainerColumn
		}
		o := t.FindOwnership()
		if o == nil {
			return ""
		}
		t = o.PrincipalType
	}
	return ""
}

// IsMappedToJSON reports whether e is stored in a JSON column.
func (e *EntityType) IsMappedToJSON() bool { return e.GetContainerColumnName() != "" }

// GetJSONPropertyName returns the name of e inside its owner's JSON document.
func (e *EntityType) GetJSONPropertyName() string {
	if e.JSONPropertyName != "" {
		return e.JSONPropertyName
	}
	if o := e.FindOwnership(); o != nil && o.PrincipalToDependent != "" {
		return o.PrincipalToDependent
	}
	return ""
}

func sameProperties(a, b []*Property) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
