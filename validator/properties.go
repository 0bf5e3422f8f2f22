package validator

import (
	"slices"

	"github.com/syssam/relmap"
	"github.com/syssam/relmap/diagnostics"
	"github.com/syssam/relmap/metadata"
)

// ValidatePropertyOverrides checks that configuration specific to a store
// object targets one the property is actually mapped to.
func (v *Validator) ValidatePropertyOverrides(m *metadata.Model, _ *diagnostics.Logger) error {
	for _, e := range m.EntityTypes() {
		for _, p := range e.Properties {
			for _, o := range p.Overrides {
				so := o.StoreObject
				if so.Type.IsStoredProcedure() || p.GetColumnName(so) != "" {
					continue
				}
				var code relmap.Code
				switch so.Type {
				case metadata.Table:
					code = relmap.TableOverrideMismatch
				case metadata.View:
					code = relmap.ViewOverrideMismatch
				case metadata.Function:
					code = relmap.FunctionOverrideMismatch
				case metadata.SQLQuery:
					code = relmap.SqlQueryOverrideMismatch
				case metadata.InsertStoredProcedure, metadata.DeleteStoredProcedure, metadata.UpdateStoredProcedure:
					continue
				}
				return fail(code,
					"The property '%s' has specific configuration for the %s '%s', but isn't mapped to a column on that %s. Remove the specific configuration, or map an entity type that contains this property to '%s'.",
					p.DisplayName(), kindName(so.Type), so.DisplayName(), kindName(so.Type), so.DisplayName())
			}
		}
	}
	return nil
}

// ValidateDefaultValuesOnKeys warns about key properties with a default
// value: the default is used whenever the key is left unset, so only one
// row can ever rely on it.
func (v *Validator) ValidateDefaultValuesOnKeys(m *metadata.Model, logger *diagnostics.Logger) error {
	for _, e := range m.EntityTypes() {
		var warned []*metadata.Property
		for _, k := range e.Keys {
			for _, p := range k.Properties {
				if !p.HasDefaultValue || p.DefaultValue == nil || slices.Contains(warned, p) {
					continue
				}
				warned = append(warned, p)
				if err := logger.ModelValidationKeyDefaultValueWarning(p); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// ValidateBoolsWithDefaults warns about non-nullable bool columns whose
// store default is not false. An explicit false is indistinguishable from an
// unset value, so the store default is always used instead.
func (v *Validator) ValidateBoolsWithDefaults(m *metadata.Model, logger *diagnostics.Logger) error {
	for _, e := range m.EntityTypes() {
		for _, p := range e.Properties {
			if p.Type != metadata.TypeBool || p.Nullable || p.GetValueGenerated() == metadata.Never {
				continue
			}
			trueDefault := p.HasDefaultValue && p.DefaultValue != nil && p.DefaultValue != false
			if !trueDefault && p.DefaultValueSQL == "" {
				continue
			}
			if err := logger.BoolWithDefaultWarning(p); err != nil {
				return err
			}
		}
	}
	return nil
}

// ValidateIndexProperties warns about indexes that cannot be created in any
// table: some or all of their properties have no column, or the properties
// have no table in common.
func (v *Validator) ValidateIndexProperties(m *metadata.Model, logger *diagnostics.Logger) error {
	for _, e := range m.EntityTypes() {
		if e.IsMappedToJSON() {
			continue
		}
		for _, ix := range e.Indexes {
			if err := validateIndexTables(e, ix, logger); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateIndexTables(e *metadata.EntityType, ix *metadata.Index, logger *diagnostics.Logger) error {
	var (
		unmapped        *metadata.Property
		first, last     *metadata.Property
		firstT, lastT   []metadata.StoreObjectIdentifier
		overlapping     []metadata.StoreObjectIdentifier
		overlapComputed bool
	)
	for _, p := range ix.Properties {
		tables := p.GetMappedTables()
		if len(tables) == 0 {
			if unmapped == nil {
				unmapped = p
			}
			continue
		}
		if first == nil {
			first, firstT = p, tables
		} else {
			last, lastT = p, tables
		}
		if !overlapComputed {
			overlapping, overlapComputed = slices.Clone(tables), true
			continue
		}
		overlapping = slices.DeleteFunc(overlapping, func(t metadata.StoreObjectIdentifier) bool {
			return !slices.Contains(tables, t)
		})
		if len(overlapping) == 0 {
			break
		}
	}
	switch {
	case unmapped != nil && first == nil:
		return logger.AllIndexPropertiesNotToMappedToAnyTable(e, ix)
	case unmapped != nil:
		return logger.IndexPropertiesBothMappedAndNotMappedToTable(e, ix, unmapped.Name)
	case overlapComputed && len(overlapping) == 0:
		return logger.IndexPropertiesMappedToNonOverlappingTables(e, ix, first.Name, firstT, last.Name, lastT)
	}
	return nil
}
