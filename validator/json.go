package validator

import (
	"slices"

	"github.com/syssam/relmap"
	"github.com/syssam/relmap/diagnostics"
	"github.com/syssam/relmap/metadata"
)

// ValidateJSONEntities checks owned types stored in JSON columns. Every table
// or view holding JSON documents must have a single owning hierarchy mapped
// with TPH, each JSON column holds one document root, and the documents
// themselves have well formed keys and property names.
func (v *Validator) ValidateJSONEntities(m *metadata.Model, _ *diagnostics.Logger) error {
	for _, kind := range []metadata.StoreObjectType{metadata.Table, metadata.View} {
		if err := validateJSONOwnerObjects(m, kind); err != nil {
			return err
		}
		objects := newGroups[metadata.StoreObjectIdentifier, *metadata.EntityType]()
		for _, e := range m.EntityTypes() {
			if so, ok := e.StoreObject(kind); ok {
				objects.add(so, e)
			}
		}
		for _, so := range objects.keys {
			if err := validateJSONObject(so, objects.values[so]); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateJSONOwnerObjects checks that every entity mapped to JSON shares the
// table or view of its nearest owner outside JSON.
func validateJSONOwnerObjects(m *metadata.Model, kind metadata.StoreObjectType) error {
	for _, e := range m.EntityTypes() {
		if !e.IsMappedToJSON() {
			continue
		}
		so, ok := e.StoreObject(kind)
		if !ok {
			continue
		}
		owner, seen := e, map[*metadata.EntityType]bool{}
		for owner.IsMappedToJSON() && !seen[owner] {
			seen[owner] = true
			ownership := owner.FindOwnership()
			if ownership == nil {
				break
			}
			owner = ownership.PrincipalType
		}
		if owner.IsMappedToJSON() {
			continue
		}
		if ownerSO, ok := owner.StoreObject(kind); !ok || ownerSO != so {
			return fail(relmap.JsonEntityMappedToDifferentTableOrViewThanOwner,
				"Entity '%s' is mapped to JSON and also to a table or view '%s', but its owner '%s' is mapped to a different table or view '%s'. Every entity mapped to JSON must also map to the same table or view as its owner.",
				e.DisplayName(), so.DisplayName(), owner.DisplayName(), ownerSO.DisplayName())
		}
	}
	return nil
}

func validateJSONObject(so metadata.StoreObjectIdentifier, types []*metadata.EntityType) error {
	if !slices.ContainsFunc(types, (*metadata.EntityType).IsMappedToJSON) {
		return nil
	}
	var roots []*metadata.EntityType
	for _, e := range types {
		if e.IsOwned() {
			continue
		}
		if root := e.RootType(); !slices.Contains(roots, root) {
			roots = append(roots, root)
		}
	}
	if len(roots) == 0 {
		i := slices.IndexFunc(types, func(e *metadata.EntityType) bool { return !e.IsMappedToJSON() })
		owner := types[0]
		if i >= 0 {
			owner = types[i]
		}
		return fail(relmap.JsonEntityOwnedByNonJsonOwnedType,
			"The owned entity type '%s' is mapped to '%s' and contains JSON columns. This is currently not supported. All owned types containing a JSON column must be mapped to a JSON column themselves.",
			owner.DisplayName(), so.DisplayName())
	}
	if len(roots) > 1 {
		return fail(relmap.JsonEntityWithTableSplittingIsNotSupported,
			"Table splitting is not supported for entities containing entities mapped to JSON: '%s' and '%s' share '%s'.",
			roots[0].DisplayName(), roots[1].DisplayName(), so.DisplayName())
	}
	if err := validateJSONRoot(so, roots[0], types); err != nil {
		return err
	}
	for _, e := range types {
		if !e.IsMappedToJSON() {
			continue
		}
		for _, check := range []func(metadata.StoreObjectIdentifier, *metadata.EntityType) error{
			validateJSONNavigations,
			validateJSONKey,
			validateJSONProperties,
		} {
			if err := check(so, e); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateJSONRoot(so metadata.StoreObjectIdentifier, root *metadata.EntityType, types []*metadata.EntityType) error {
	if s := root.Strategy; s != "" && s != metadata.TPH {
		return fail(relmap.JsonEntityWithNonTphInheritanceOnOwner,
			"Entity type '%s' references entities mapped to JSON but is not using the TPH inheritance. Only TPH is supported for owners of JSON entities.",
			root.DisplayName())
	}
	columns := map[string]*metadata.EntityType{}
	for _, e := range types {
		if e.ContainerColumn == "" {
			continue
		}
		if other, ok := columns[e.ContainerColumn]; ok {
			return fail(relmap.JsonEntityMultipleRootsMappedToTheSameJsonColumn,
				"Multiple owned root entities are mapped to the same JSON column '%s' in table '%s' ('%s' and '%s'). Each owned root entity must map to a different column.",
				e.ContainerColumn, so.DisplayName(), other.DisplayName(), e.DisplayName())
		}
		columns[e.ContainerColumn] = e
	}
	return nil
}

func validateJSONNavigations(so metadata.StoreObjectIdentifier, e *metadata.EntityType) error {
	ownership := e.FindOwnership()
	if ownership == nil {
		return nil
	}
	if owner := ownership.PrincipalType; owner.IsOwned() && !owner.IsMappedToJSON() {
		return fail(relmap.JsonEntityOwnedByNonJsonOwnedType,
			"The owned entity type '%s' is mapped to '%s' and contains JSON columns. This is currently not supported. All owned types containing a JSON column must be mapped to a JSON column themselves.",
			owner.DisplayName(), so.DisplayName())
	}
	for _, nav := range e.Navigations {
		if !nav.ForeignKey.Ownership {
			return fail(relmap.JsonEntityReferencingRegularEntity,
				"Entity type '%s' is mapped to JSON and has a navigation '%s' to a regular entity which is not the owner.",
				e.DisplayName(), nav.Name)
		}
	}
	for _, fk := range e.ForeignKeys {
		if !fk.Ownership {
			return fail(relmap.JsonEntityReferencingRegularEntity,
				"Entity type '%s' is mapped to JSON and has a foreign key %s to a regular entity '%s' which is not the owner.",
				e.DisplayName(), metadata.FormatProperties(fk.Properties), fk.PrincipalType.DisplayName())
		}
	}
	return nil
}

func validateJSONKey(_ metadata.StoreObjectIdentifier, e *metadata.EntityType) error {
	ownership := e.FindOwnership()
	pk := e.FindPrimaryKey()
	if ownership == nil || pk == nil {
		return nil
	}
	for _, p := range pk.Properties {
		if p.JSONPropertyName != "" {
			return fail(relmap.JsonEntityWithExplicitlyConfiguredJsonPropertyNameOnKey,
				"Key property '%s' on JSON-mapped entity '%s' should not have its JSON property name configured explicitly.",
				p.Name, e.DisplayName())
		}
	}
	if !ownership.Unique && !pk.Properties[len(pk.Properties)-1].OrdinalKey {
		return fail(relmap.JsonEntityWithExplicitlyConfiguredOrdinalKey,
			"Entity type '%s' is part of a collection mapped to JSON and has its ordinal key defined explicitly. Only implicitly defined ordinal keys are supported.",
			e.DisplayName())
	}
	expected := len(ownership.PrincipalKey.Properties)
	if !ownership.Unique {
		expected++
	}
	if len(pk.Properties) != expected {
		return fail(relmap.JsonEntityWithIncorrectNumberOfKeyProperties,
			"Entity type '%s' is mapped to JSON and has an incorrect number of key properties. Expected %d key properties, but found %d.",
			e.DisplayName(), expected, len(pk.Properties))
	}
	return nil
}

func validateJSONProperties(_ metadata.StoreObjectIdentifier, e *metadata.EntityType) error {
	seen := map[string]bool{}
	for _, p := range e.Properties {
		name := p.GetJSONPropertyName()
		if name == "" {
			continue
		}
		if p.HasDefaultValue {
			return fail(relmap.JsonEntityWithDefaultValueSetOnItsProperty,
				"Setting default value on properties of an entity mapped to JSON is not supported. Entity: '%s', property: '%s'.",
				e.DisplayName(), p.Name)
		}
		if seen[name] {
			return fail(relmap.JsonEntityWithMultiplePropertiesMappedToSameJsonProperty,
				"Entity '%s' is mapped to JSON and it contains multiple properties or navigations which are mapped to the same JSON property '%s'. Each property should map to a unique JSON property.",
				e.DisplayName(), name)
		}
		seen[name] = true
	}
	for _, nav := range e.Navigations {
		target := nav.TargetType()
		if nav.OnDependent || !target.IsMappedToJSON() {
			continue
		}
		name := target.GetJSONPropertyName()
		if seen[name] {
			return fail(relmap.JsonEntityWithMultiplePropertiesMappedToSameJsonProperty,
				"Entity '%s' is mapped to JSON and it contains multiple properties or navigations which are mapped to the same JSON property '%s'. Each property should map to a unique JSON property.",
				e.DisplayName(), name)
		}
		seen[name] = true
	}
	return nil
}
