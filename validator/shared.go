package validator

import (
	"slices"

	"github.com/syssam/relmap"
	"github.com/syssam/relmap/diagnostics"
	"github.com/syssam/relmap/metadata"
)

// groups collects values by key, keeping keys in insertion order.
type groups[K comparable, V any] struct {
	keys   []K
	values map[K][]V
}

func newGroups[K comparable, V any]() *groups[K, V] {
	return &groups[K, V]{values: map[K][]V{}}
}

func (g *groups[K, V]) add(k K, v V) {
	vs, ok := g.values[k]
	if !ok {
		g.keys = append(g.keys, k)
	}
	g.values[k] = append(vs, v)
}

// mappedTypes groups the entity types by the store objects of kind they are
// mapped to, fragments included. JSON mapped types are left out; they share
// their owner's columns.
func mappedTypes(m *metadata.Model, kind metadata.StoreObjectType) *groups[metadata.StoreObjectIdentifier, *metadata.EntityType] {
	g := newGroups[metadata.StoreObjectIdentifier, *metadata.EntityType]()
	for _, e := range m.EntityTypes() {
		if e.IsMappedToJSON() {
			continue
		}
		if so, ok := e.StoreObject(kind); ok {
			g.add(so, e)
		}
		for _, f := range e.GetMappingFragments(kind) {
			if !slices.Contains(g.values[f.StoreObject], e) {
				g.add(f.StoreObject, e)
			}
		}
	}
	return g
}

// ValidateSharedTableCompatibility checks every table shared by several
// entity types: the types must form one graph linked by inheritance or by
// foreign keys between primary keys, and their columns, keys, foreign keys,
// indexes, check constraints and triggers must agree.
func (v *Validator) ValidateSharedTableCompatibility(m *metadata.Model, logger *diagnostics.Logger) error {
	tables := mappedTypes(m, metadata.Table)
	for _, table := range tables.keys {
		types := tables.values[table]
		for _, check := range []func([]*metadata.EntityType, metadata.StoreObjectIdentifier, *diagnostics.Logger) error{
			v.validateSharedTable,
			v.ValidateSharedColumnsCompatibility,
			v.ValidateSharedKeysCompatibility,
			v.ValidateSharedForeignKeysCompatibility,
			v.ValidateSharedIndexesCompatibility,
			v.ValidateSharedCheckConstraintCompatibility,
			v.ValidateSharedTriggerCompatibility,
		} {
			if err := check(types, table, logger); err != nil {
				return err
			}
		}
		if len(types) > 1 {
			if err := validateOptionalDependents(types, table, logger); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v *Validator) validateSharedTable(types []*metadata.EntityType, table metadata.StoreObjectIdentifier, _ *diagnostics.Logger) error {
	if len(types) == 1 {
		return nil
	}
	root, unvalidated, err := sharingRoot(types, table, relmap.IncompatibleTableNoRelationship, relmap.IncompatibleTableDerivedRelationship)
	if err != nil {
		return err
	}
	comments := map[*metadata.EntityType]string{}
	return walkSharingGraph(root, unvalidated, func(e, next *metadata.EntityType) error {
		if key := e.FindPrimaryKey(); key != nil {
			other := next.FindPrimaryKey()
			name, otherName := key.GetName(table), other.GetName(table)
			if name != otherName {
				return fail(relmap.IncompatibleTableKeyNameMismatch,
					"Cannot use table '%s' for entity type '%s' since it is being used for entity type '%s' and the name '%s' of the primary key %s does not match the name '%s' of the primary key %s.",
					table.DisplayName(), e.DisplayName(), next.DisplayName(),
					name, metadata.FormatProperties(key.Properties), otherName, metadata.FormatProperties(other.Properties))
			}
		}
		comment, seen := comments[e]
		if !seen {
			comment = e.Comment
		}
		switch {
		case comment == "":
			comments[e] = next.Comment
		case next.Comment != "" && next.Comment != comment:
			return fail(relmap.IncompatibleTableCommentMismatch,
				"Cannot use table '%s' for entity type '%s' since it is being used for entity type '%s' and the comment '%s' does not match the comment '%s'.",
				table.DisplayName(), e.DisplayName(), next.DisplayName(), comment, next.Comment)
		default:
			comments[e] = comment
		}
		if e.IsTableExcludedFromMigrations() != next.IsTableExcludedFromMigrations() {
			return fail(relmap.IncompatibleTableExcludedMismatch,
				"Cannot use table '%s' for entity type '%s' since it is being used for entity type '%s' and it is excluded from migrations for one of them. Exclude the table from migrations in all entity type configurations mapped to the table.",
				table.DisplayName(), e.DisplayName(), next.DisplayName())
		}
		return nil
	}, func(left, root *metadata.EntityType) error {
		return fail(relmap.IncompatibleTableNoRelationship,
			"Cannot use table '%s' for entity type '%s' since it is being used for entity type '%s' and there is no relationship between their primary keys.",
			table.DisplayName(), left.DisplayName(), root.DisplayName())
	})
}

// ValidateSharedViewCompatibility checks every view shared by several entity
// types for a single sharing graph and compatible columns.
func (v *Validator) ValidateSharedViewCompatibility(m *metadata.Model, logger *diagnostics.Logger) error {
	views := mappedTypes(m, metadata.View)
	for _, view := range views.keys {
		types := views.values[view]
		if len(types) > 1 {
			root, unvalidated, err := sharingRoot(types, view, relmap.IncompatibleViewNoRelationship, relmap.IncompatibleViewDerivedRelationship)
			if err != nil {
				return err
			}
			err = walkSharingGraph(root, unvalidated, nil, func(left, root *metadata.EntityType) error {
				return fail(relmap.IncompatibleViewNoRelationship,
					"Cannot use view '%s' for entity type '%s' since it is being used for entity type '%s' and there is no relationship between their primary keys.",
					view.DisplayName(), left.DisplayName(), root.DisplayName())
			})
			if err != nil {
				return err
			}
		}
		if err := v.ValidateSharedColumnsCompatibility(types, view, logger); err != nil {
			return err
		}
	}
	return nil
}

// sharingRoot finds the single type of a shared store object that is neither
// derived from nor linked to another type of the group. It returns the
// remaining types in group order.
func sharingRoot(types []*metadata.EntityType, so metadata.StoreObjectIdentifier, noRelationship, derivedRelationship relmap.Code) (*metadata.EntityType, []*metadata.EntityType, error) {
	kind := "table"
	if so.Type == metadata.View {
		kind = "view"
	}
	var root *metadata.EntityType
	for _, e := range types {
		if e.Base != nil && slices.Contains(types, e.Base) {
			continue
		}
		if pk := e.FindPrimaryKey(); pk != nil {
			var link *metadata.ForeignKey
			for _, fk := range e.FindForeignKeys(pk.Properties) {
				if fk.PrincipalKey.IsPrimaryKey() && slices.Contains(types, fk.PrincipalType) {
					link = fk
					break
				}
			}
			if link != nil {
				if e.Base != nil {
					return nil, nil, fail(derivedRelationship,
						"Cannot use %s '%s' for entity type '%s' since it is a derived type with a relationship between its primary key and '%s'. Configure the relationship on the base type '%s' or map '%s' to a different %s.",
						kind, so.DisplayName(), e.DisplayName(), link.PrincipalType.DisplayName(),
						e.Base.DisplayName(), e.DisplayName(), kind)
				}
				continue
			}
		}
		if root != nil {
			return nil, nil, fail(noRelationship,
				"Cannot use %s '%s' for entity type '%s' since it is being used for entity type '%s' and there is no relationship between their primary keys.",
				kind, so.DisplayName(), e.DisplayName(), root.DisplayName())
		}
		root = e
	}
	if root == nil {
		// Every type links to another one: a cycle of identifying foreign keys.
		root = types[0]
	}
	var rest []*metadata.EntityType
	for _, e := range types {
		if e != root {
			rest = append(rest, e)
		}
	}
	return root, rest, nil
}

// walkSharingGraph visits the types reachable from root breadth first over
// inheritance and identifying foreign key edges, calling edge for every
// traversed pair. Types left unreached are reported through unreachable.
func walkSharingGraph(root *metadata.EntityType, unvalidated []*metadata.EntityType,
	edge func(e, next *metadata.EntityType) error, unreachable func(left, root *metadata.EntityType) error) error {
	queue := []*metadata.EntityType{root}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		var rest []*metadata.EntityType
		for _, next := range unvalidated {
			if !e.IsAssignableFrom(next) && !isIdentifyingPrincipal(next, e) {
				rest = append(rest, next)
				continue
			}
			if edge != nil {
				if err := edge(e, next); err != nil {
					return err
				}
			}
			queue = append(queue, next)
		}
		unvalidated = rest
	}
	if len(unvalidated) > 0 {
		return unreachable(unvalidated[0], root)
	}
	return nil
}

func isIdentifyingPrincipal(dependent, principal *metadata.EntityType) bool {
	pk := dependent.FindPrimaryKey()
	if pk == nil {
		return false
	}
	for _, fk := range dependent.FindForeignKeys(pk.Properties) {
		if fk.PrincipalKey.IsPrimaryKey() && fk.PrincipalType == principal {
			return true
		}
	}
	return false
}

// validateOptionalDependents finds optional dependents whose rows cannot be
// told apart from a missing dependent: all their non-key columns are
// nullable or shared with a principal. Such a dependent is only reported as
// a warning unless another type of the table depends on it.
func validateOptionalDependents(types []*metadata.EntityType, table metadata.StoreObjectIdentifier, logger *diagnostics.Logger) error {
	type principals struct {
		types    []*metadata.EntityType
		optional bool
	}
	memo := map[*metadata.EntityType]principals{}
	var principalsOf func(e *metadata.EntityType) principals
	principalsOf = func(e *metadata.EntityType) principals {
		if p, ok := memo[e]; ok {
			return p
		}
		// Guards identifying foreign key cycles.
		memo[e] = principals{}
		var p principals
		if pk := e.FindPrimaryKey(); pk != nil {
			for _, fk := range e.FindForeignKeys(pk.Properties) {
				pt := fk.PrincipalType
				if !fk.PrincipalKey.IsPrimaryKey() || pt.IsAssignableFrom(fk.DeclaringType) || !slices.Contains(types, pt) {
					continue
				}
				inner := principalsOf(pt.RootType())
				p.types = append(p.types, pt)
				p.types = append(p.types, inner.types...)
				p.optional = p.optional || !fk.IsRequiredDependent() || inner.optional
			}
		}
		memo[e] = p
		return p
	}

	for _, e := range types {
		if e.Base != nil || e.FindPrimaryKey() == nil {
			continue
		}
		p := principalsOf(e)
		if !p.optional {
			continue
		}
		var principalColumns []string
		for _, pt := range p.types {
			for _, prop := range pt.GetProperties() {
				if c := prop.GetColumnName(table); c != "" {
					principalColumns = append(principalColumns, c)
				}
			}
		}
		identified := false
		for _, prop := range e.GetProperties() {
			if prop.IsPrimaryKey() || prop.Nullable {
				continue
			}
			if c := prop.GetColumnName(table); c != "" && !slices.Contains(principalColumns, c) {
				identified = true
				break
			}
		}
		if identified {
			continue
		}
		for _, fk := range e.GetReferencingForeignKeys() {
			if slices.Contains(types, fk.DeclaringType) {
				return fail(relmap.OptionalDependentWithDependentWithoutIdentifyingProperty,
					"The entity type '%s' is an optional dependent using table sharing and containing other dependents without any required non shared property to identify whether the entity exists. If all nullable properties contain a null value in database then an object instance won't be created in the query causing nested dependent's values to be lost. Add a required property to create instances with null values for other properties or mark the incoming navigation as required to always create an instance.",
					e.DisplayName())
			}
		}
		if err := logger.OptionalDependentWithoutIdentifyingPropertyWarning(e); err != nil {
			return err
		}
	}
	return nil
}
