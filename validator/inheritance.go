package validator

import (
	"github.com/syssam/relmap"
	"github.com/syssam/relmap/diagnostics"
	"github.com/syssam/relmap/metadata"
)

// hierarchyKinds are the store object kinds a hierarchy is mapped to type by
// type. SQL queries are checked by ValidateSQLQueries.
var hierarchyKinds = []metadata.StoreObjectType{
	metadata.Table,
	metadata.View,
	metadata.Function,
	metadata.InsertStoredProcedure,
	metadata.DeleteStoredProcedure,
	metadata.UpdateStoredProcedure,
}

// ValidateInheritanceMapping checks every hierarchy against its mapping
// strategy. TPH hierarchies must map all types to the root's store objects
// and carry distinct discriminator values; TPT and TPC hierarchies must map
// every type to store objects of its own.
func (v *Validator) ValidateInheritanceMapping(m *metadata.Model, _ *diagnostics.Logger) error {
	for _, root := range m.RootEntityTypes() {
		if err := validateMappingStrategy(root); err != nil {
			return err
		}
		tph := root.GetMappingStrategy() == metadata.TPH
		if root.FindDiscriminatorProperty() == nil && (!tph || len(root.DirectlyDerivedTypes()) == 0) {
			for _, kind := range hierarchyKinds {
				if err := validateNonTphMapping(root, kind); err != nil {
					return err
				}
			}
			continue
		}
		if !tph {
			return fail(relmap.NonTphMappingStrategy,
				"The mapping strategy '%s' specified on '%s' is not supported for entity types with a discriminator.",
				root.GetMappingStrategy(), root.DisplayName())
		}
		for _, kind := range hierarchyKinds {
			if err := validateTphMapping(root, kind); err != nil {
				return err
			}
		}
		if err := validateDiscriminatorValues(root); err != nil {
			return err
		}
	}
	return nil
}

func validateMappingStrategy(root *metadata.EntityType) error {
	if s := root.Strategy; s != "" && !s.Valid() {
		return fail(relmap.InvalidMappingStrategy,
			"The mapping strategy '%s' used for '%s' is not supported. Supported mapping strategies are 'TPH', 'TPT' and 'TPC'.",
			s, root.DisplayName())
	}
	for _, d := range root.DerivedTypes() {
		if d.Strategy != "" && d.Strategy != root.Strategy {
			return fail(relmap.DerivedStrategy,
				"The derived entity type '%s' was configured with the '%s' mapping strategy. Only the root entity type should be configured with a mapping strategy.",
				d.DisplayName(), d.Strategy)
		}
	}
	if root.GetMappingStrategy() != metadata.TPC {
		return nil
	}
	for _, e := range root.DerivedTypesInclusive() {
		if !e.IsAbstract() {
			continue
		}
		for _, kind := range []metadata.StoreObjectType{metadata.Table, metadata.View, metadata.Function} {
			if so, ok := e.StoreObject(kind); ok {
				return fail(relmap.AbstractTpc,
					"The entity type '%s' cannot be instantiated, but it was mapped to '%s' using the 'TPC' mapping strategy. Only instantiable types should be mapped.",
					e.DisplayName(), so.DisplayName())
			}
		}
	}
	return nil
}

func validateTphMapping(root *metadata.EntityType, kind metadata.StoreObjectType) error {
	rootID, rootOK := root.StoreObject(kind)
	for _, d := range root.DerivedTypes() {
		id, ok := d.StoreObject(kind)
		if !ok || (rootOK && id == rootID) {
			continue
		}
		var code relmap.Code
		switch kind {
		case metadata.Table:
			code = relmap.TphTableMismatch
		case metadata.View:
			code = relmap.TphViewMismatch
		case metadata.Function:
			code = relmap.TphFunctionMismatch
		case metadata.InsertStoredProcedure, metadata.DeleteStoredProcedure, metadata.UpdateStoredProcedure:
			code = relmap.TphStoredProcedureMismatch
		case metadata.SQLQuery:
			continue
		}
		return fail(code,
			"'%s' is mapped to the %s '%s' while '%s' is mapped to the %s '%s'. Map all the entity types in the hierarchy to the same %s, or remove the discriminator and map them all to different %ss.",
			d.DisplayName(), kindName(kind), id.DisplayName(),
			root.DisplayName(), kindName(kind), rootID.DisplayName(), kindName(kind), kindName(kind))
	}
	return nil
}

func validateDiscriminatorValues(root *metadata.EntityType) error {
	disc := root.FindDiscriminatorProperty()
	if disc == nil {
		return fail(relmap.NoDiscriminatorProperty,
			"The entity type '%s' is part of a hierarchy, but does not have a discriminator property configured.",
			root.DisplayName())
	}
	type claim struct {
		e        *metadata.EntityType
		value    any
		explicit bool
	}
	var claims []claim
	for _, e := range root.DerivedTypesInclusive() {
		if e.IsAbstract() {
			continue
		}
		value, explicit := e.GetDiscriminatorValue()
		if value == nil {
			return fail(relmap.NoDiscriminatorValue,
				"The entity type '%s' is part of a hierarchy, but does not have a discriminator value configured.",
				e.DisplayName())
		}
		if !disc.Type.Accepts(value) {
			return fail(relmap.DiscriminatorValueIncompatible,
				"The discriminator value '%v' for the entity type '%s' is not assignable to the discriminator property of type '%s'.",
				value, e.DisplayName(), disc.Type)
		}
		for _, c := range claims {
			if !metadata.ValuesEqual(c.value, value) {
				continue
			}
			if !explicit && !c.explicit {
				return fail(relmap.EntityShortNameNotUnique,
					"The short name for '%s' is '%v' which is the same for '%s'. Every concrete entity type in the hierarchy must have a unique short name. Either rename one of the types or configure a discriminator value for it.",
					e.DisplayName(), value, c.e.DisplayName())
			}
			return fail(relmap.DuplicateDiscriminatorValue,
				"The discriminator value for '%s' is '%v' which is the same for '%s'. Every concrete entity type in the hierarchy must have a unique discriminator value.",
				e.DisplayName(), value, c.e.DisplayName())
		}
		claims = append(claims, claim{e: e, value: value, explicit: explicit})
	}
	return nil
}

func validateNonTphMapping(root *metadata.EntityType, kind metadata.StoreObjectType) error {
	tpc := root.GetMappingStrategy() == metadata.TPC
	claimed := map[metadata.StoreObjectIdentifier]*metadata.EntityType{}
	for _, e := range root.DerivedTypesInclusive() {
		so, ok := e.StoreObject(kind)
		if !ok {
			continue
		}
		if other, ok := claimed[so]; ok {
			var code relmap.Code
			switch kind {
			case metadata.Table:
				code = relmap.NonTphTableClash
			case metadata.View:
				code = relmap.NonTphViewClash
			case metadata.Function:
				code = relmap.NonTphFunctionClash
			case metadata.InsertStoredProcedure, metadata.DeleteStoredProcedure, metadata.UpdateStoredProcedure:
				code = relmap.NonTphStoredProcedureClash
			case metadata.SQLQuery:
				continue
			}
			return fail(code,
				"'%s' is mapped to the %s '%s' which is also mapped to '%s'. A %s cannot be shared between entity types of a TPT or TPC hierarchy; map them to different %ss or use a discriminator.",
				e.DisplayName(), kindName(kind), so.DisplayName(), other.DisplayName(), kindName(kind), kindName(kind))
		}
		claimed[so] = e
		if !tpc || len(e.DirectlyDerivedTypes()) == 0 {
			continue
		}
		if fks := e.FindRowInternalForeignKeys(so); len(fks) > 0 {
			return fail(relmap.TpcTableSharingDependent,
				"The entity type '%s' is mapped to '%s' which it shares with its principal '%s'. Types with derived types mapped using the 'TPC' mapping strategy cannot share a %s.",
				e.DisplayName(), so.DisplayName(), fks[0].PrincipalType.DisplayName(), kindName(kind))
		}
		for _, fk := range e.GetReferencingForeignKeys() {
			for _, internal := range fk.DeclaringType.FindRowInternalForeignKeys(so) {
				if internal == fk {
					return fail(relmap.TpcTableSharing,
						"The entity type '%s' is mapped to '%s'. However, the principal entity type '%s' is also mapped to '%s' and it is using the 'TPC' mapping strategy. Only leaf entity types in a TPC hierarchy can use table sharing.",
						fk.DeclaringType.DisplayName(), so.DisplayName(), e.DisplayName(), so.DisplayName())
				}
			}
		}
	}
	return nil
}

// ValidateTpcValueGeneration warns about primary key values generated by the
// store in TPC hierarchies: every table generates its own sequence of values,
// so keys can collide across the hierarchy.
func (v *Validator) ValidateTpcValueGeneration(m *metadata.Model, logger *diagnostics.Logger) error {
	for _, root := range m.RootEntityTypes() {
		if root.GetMappingStrategy() != metadata.TPC || len(root.DirectlyDerivedTypes()) == 0 {
			continue
		}
		pk := root.FindPrimaryKey()
		if pk == nil {
			continue
		}
		for _, p := range pk.Properties {
			if !p.GetValueGenerated().Has(metadata.OnAdd) || p.DefaultValueSQL != "" || p.ComputedSQL != "" || p.HasDefaultValue {
				continue
			}
			if err := logger.TpcStoreGeneratedIdentityWarning(p); err != nil {
				return err
			}
		}
	}
	return nil
}

func kindName(kind metadata.StoreObjectType) string {
	switch kind {
	case metadata.Table:
		return "table"
	case metadata.View:
		return "view"
	case metadata.Function:
		return "function"
	case metadata.SQLQuery:
		return "SQL query"
	case metadata.InsertStoredProcedure, metadata.DeleteStoredProcedure, metadata.UpdateStoredProcedure:
		return "stored procedure"
	}
	return kind.String()
}
