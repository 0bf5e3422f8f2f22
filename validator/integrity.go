package validator

import (
	"github.com/syssam/relmap"
	"github.com/syssam/relmap/diagnostics"
	"github.com/syssam/relmap/metadata"
)

// ValidateModelIntegrity checks the model graph itself: property types are
// known, keys, foreign keys and indexes use properties of their own
// hierarchy, and foreign keys match the arity of their principal key.
func (v *Validator) ValidateModelIntegrity(m *metadata.Model, _ *diagnostics.Logger) error {
	for _, e := range m.EntityTypes() {
		for _, p := range e.Properties {
			if !p.Type.Valid() {
				return fail(relmap.InvalidPropertyType,
					"The property '%s' has type '%s', which is not a supported property type.", p.DisplayName(), p.Type)
			}
			if p.ProviderType != "" && !p.ProviderType.Valid() {
				return fail(relmap.InvalidPropertyType,
					"The property '%s' has provider type '%s', which is not a supported property type.", p.DisplayName(), p.ProviderType)
			}
		}
		if e.Base != nil && e.PrimaryKey != nil {
			return fail(relmap.PrimaryKeyOnDerivedType,
				"A key cannot be configured on '%s' because it is a derived type. The key must be configured on the root type '%s'.",
				e.DisplayName(), e.RootType().DisplayName())
		}
		for _, k := range e.Keys {
			if p := foreignProperty(e, k.Properties); p != nil {
				return fail(relmap.KeyPropertyNotInHierarchy,
					"The key %s on '%s' uses the property '%s', which is not declared in the hierarchy of '%s'.",
					metadata.FormatProperties(k.Properties), e.DisplayName(), p.DisplayName(), e.DisplayName())
			}
		}
		for _, fk := range e.ForeignKeys {
			if p := foreignProperty(e, fk.Properties); p != nil {
				return fail(relmap.ForeignKeyPropertyMismatch,
					"The foreign key %s on '%s' uses the property '%s', which is not declared in the hierarchy of '%s'.",
					metadata.FormatProperties(fk.Properties), e.DisplayName(), p.DisplayName(), e.DisplayName())
			}
			if len(fk.Properties) != len(fk.PrincipalKey.Properties) {
				return fail(relmap.ForeignKeyPropertyMismatch,
					"The number of properties specified for the foreign key %s on entity type '%s' does not match the number of properties in the principal key %s on entity type '%s'.",
					metadata.FormatProperties(fk.Properties), e.DisplayName(),
					metadata.FormatProperties(fk.PrincipalKey.Properties), fk.PrincipalType.DisplayName())
			}
		}
		for _, ix := range e.Indexes {
			if p := foreignProperty(e, ix.Properties); p != nil {
				return fail(relmap.IndexPropertyNotInHierarchy,
					"The index %s on '%s' uses the property '%s', which is not declared in the hierarchy of '%s'.",
					ix.DisplayName(), e.DisplayName(), p.DisplayName(), e.DisplayName())
			}
		}
	}
	return nil
}

// foreignProperty returns the first of props not declared on e or one of its
// base types.
func foreignProperty(e *metadata.EntityType, props []*metadata.Property) *metadata.Property {
	for _, p := range props {
		if !p.DeclaringType.IsAssignableFrom(e) {
			return p
		}
	}
	return nil
}

// ValidateStoreGeneration checks that no property combines more than one
// way of generating its value in the store.
func (v *Validator) ValidateStoreGeneration(m *metadata.Model, _ *diagnostics.Logger) error {
	for _, e := range m.EntityTypes() {
		for _, p := range e.Properties {
			switch {
			case p.HasDefaultValue && p.DefaultValueSQL != "":
				return conflictingGeneration(p, "DefaultValue", "DefaultValueSql")
			case p.HasDefaultValue && p.ComputedSQL != "":
				return conflictingGeneration(p, "DefaultValue", "ComputedColumnSql")
			case p.DefaultValueSQL != "" && p.ComputedSQL != "":
				return conflictingGeneration(p, "DefaultValueSql", "ComputedColumnSql")
			}
		}
	}
	return nil
}

func conflictingGeneration(p *metadata.Property, first, second string) error {
	return fail(relmap.ConflictingColumnServerGeneration,
		"Both the %s and %s have been set for property '%s'. Configure only one of these.", first, second, p.DisplayName())
}
