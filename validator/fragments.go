package validator

import (
	"slices"

	"github.com/syssam/relmap"
	"github.com/syssam/relmap/diagnostics"
	"github.com/syssam/relmap/metadata"
)

// ValidateMappingFragments checks entity splitting. A split entity type is
// not part of a hierarchy, every fragment lies beside a mapped main store
// object of the same kind, and every store object receives at least one
// non-key column.
func (v *Validator) ValidateMappingFragments(m *metadata.Model, _ *diagnostics.Logger) error {
	for _, e := range m.EntityTypes() {
		if len(e.Fragments) == 0 {
			continue
		}
		if e.Base != nil || len(e.DirectlyDerivedTypes()) > 0 {
			return fail(relmap.EntitySplittingHierarchy,
				"The entity type '%s' is mapped to '%s' using entity splitting, but it is part of a hierarchy. Entity splitting is not supported for entity types in a hierarchy.",
				e.DisplayName(), e.Fragments[0].StoreObject.DisplayName())
		}
		var mains []metadata.StoreObjectIdentifier
		for _, f := range e.Fragments {
			kind := f.StoreObject.Type
			main, ok := e.StoreObject(kind)
			if !ok {
				return fail(relmap.EntitySplittingUnmappedMainFragment,
					"The entity type '%s' has a split mapping for '%s', but it is not mapped to a %s. Map the entity type to a main %s in addition to the split fragments.",
					e.DisplayName(), f.StoreObject.DisplayName(), kindName(kind), kindName(kind))
			}
			if main == f.StoreObject {
				return fail(relmap.EntitySplittingConflictingMainFragment,
					"The entity type '%s' has a split mapping for '%s', but it is also mapped to the same object. Split mappings should not duplicate the main mapping.",
					e.DisplayName(), f.StoreObject.DisplayName())
			}
			if err := validateSplitPrincipals(e, f.StoreObject, main); err != nil {
				return err
			}
			if !hasNonKeyColumn(e, f.StoreObject) {
				return fail(relmap.EntitySplittingMissingProperties,
					"The entity type '%s' is mapped to '%s' using entity splitting, but it does not include any properties mapped to that object. Map at least one non-key property to a column in '%s'.",
					e.DisplayName(), f.StoreObject.DisplayName(), f.StoreObject.DisplayName())
			}
			if !slices.Contains(mains, main) {
				mains = append(mains, main)
			}
		}
		for _, main := range mains {
			if err := validateMainFragment(e, main); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateSplitPrincipals checks that every principal sharing fragment so
// with e has its main mapping in main as well.
func validateSplitPrincipals(e *metadata.EntityType, so, main metadata.StoreObjectIdentifier) error {
	for _, fk := range e.FindRowInternalForeignKeys(so) {
		principalMain, ok := fk.PrincipalType.StoreObject(so.Type)
		if ok && principalMain == main {
			continue
		}
		return fail(relmap.EntitySplittingUnmatchedMainTableSplitting,
			"The entity type '%s' is mapped to '%s' using entity splitting and table sharing with '%s', whose main mapping is '%s'. Map both entity types to the same main %s.",
			e.DisplayName(), so.DisplayName(), fk.PrincipalType.DisplayName(), principalMain.DisplayName(), kindName(so.Type))
	}
	return nil
}

func validateMainFragment(e *metadata.EntityType, main metadata.StoreObjectIdentifier) error {
	if err := validateSplitPrincipals(e, main, main); err != nil {
		return err
	}
	if !hasNonKeyColumn(e, main) {
		return fail(relmap.EntitySplittingMissingPropertiesMainFragment,
			"The entity type '%s' is mapped to '%s' using entity splitting, but no non-key property is left in its main mapping. Keep at least one non-key property mapped to '%s'.",
			e.DisplayName(), main.DisplayName(), main.DisplayName())
	}
	if !e.IsOptionalSharingDependent(main) {
		return nil
	}
	for _, f := range e.GetMappingFragments(main.Type) {
		if !hasRequiredNonKeyColumn(e, f.StoreObject) {
			return fail(relmap.EntitySplittingMissingRequiredPropertiesOptionalDependent,
				"The entity type '%s' is an optional dependent mapped to '%s' using entity splitting, but the fragment has no required non-key property. Every fragment of an optional dependent must contain a required non-key property to identify whether the entity exists.",
				e.DisplayName(), f.StoreObject.DisplayName())
		}
	}
	return nil
}

func hasNonKeyColumn(e *metadata.EntityType, so metadata.StoreObjectIdentifier) bool {
	for _, p := range e.GetProperties() {
		if !p.IsPrimaryKey() && p.GetColumnName(so) != "" {
			return true
		}
	}
	return false
}

func hasRequiredNonKeyColumn(e *metadata.EntityType, so metadata.StoreObjectIdentifier) bool {
	for _, p := range e.GetProperties() {
		if !p.IsPrimaryKey() && !p.Nullable && p.GetColumnName(so) != "" {
			return true
		}
	}
	return false
}
