package validator

import (
	"slices"

	"github.com/syssam/relmap"
	"github.com/syssam/relmap/diagnostics"
	"github.com/syssam/relmap/metadata"
)

// ValidateSharedKeysCompatibility checks that keys of types sharing so with
// the same constraint name cover the same columns.
func (v *Validator) ValidateSharedKeysCompatibility(types []*metadata.EntityType, so metadata.StoreObjectIdentifier, _ *diagnostics.Logger) error {
	seen := map[string]*metadata.Key{}
	for _, e := range types {
		for _, k := range e.Keys {
			name := k.GetName(so)
			if name == "" {
				continue
			}
			dup, ok := seen[name]
			if !ok {
				seen[name] = k
				continue
			}
			if err := keysCompatible(k, dup, name, so); err != nil {
				return err
			}
		}
	}
	return nil
}

func keysCompatible(k, dup *metadata.Key, name string, so metadata.StoreObjectIdentifier) error {
	columns, dupColumns := metadata.ColumnNames(k.Properties, so), metadata.ColumnNames(dup.Properties, so)
	if columns == nil || dupColumns == nil {
		return fail(relmap.DuplicateKeyTableMismatch,
			"The keys %s on '%s' and %s on '%s' are both mapped to '%s', but on different tables ('%s' and '%s').",
			metadata.FormatProperties(k.Properties), k.DeclaringType.DisplayName(),
			metadata.FormatProperties(dup.Properties), dup.DeclaringType.DisplayName(), name,
			k.DeclaringType.GetSchemaQualifiedTableName(), dup.DeclaringType.GetSchemaQualifiedTableName())
	}
	if !slices.Equal(columns, dupColumns) {
		return fail(relmap.DuplicateKeyColumnMismatch,
			"The keys %s on '%s' and %s on '%s' are both mapped to '%s.%s', but with different columns (%s and %s).",
			metadata.FormatProperties(k.Properties), k.DeclaringType.DisplayName(),
			metadata.FormatProperties(dup.Properties), dup.DeclaringType.DisplayName(),
			so.DisplayName(), name, metadata.FormatColumns(columns), metadata.FormatColumns(dupColumns))
	}
	return nil
}

// ValidateSharedForeignKeysCompatibility checks that foreign keys of types
// sharing table so with the same constraint name are the same constraint.
func (v *Validator) ValidateSharedForeignKeysCompatibility(types []*metadata.EntityType, so metadata.StoreObjectIdentifier, _ *diagnostics.Logger) error {
	if so.Type != metadata.Table {
		return nil
	}
	seen := map[string]*metadata.ForeignKey{}
	for _, e := range types {
		for _, fk := range e.ForeignKeys {
			principal, ok := fk.GetPrincipalTable()
			if !ok {
				continue
			}
			name := fk.GetConstraintName(so, principal)
			if name == "" {
				continue
			}
			dup, ok := seen[name]
			if !ok {
				seen[name] = fk
				continue
			}
			if err := foreignKeysCompatible(fk, dup, name, so); err != nil {
				return err
			}
		}
	}
	return nil
}

func foreignKeysCompatible(fk, dup *metadata.ForeignKey, name string, so metadata.StoreObjectIdentifier) error {
	props := metadata.FormatProperties(fk.Properties)
	dupProps := metadata.FormatProperties(dup.Properties)
	e, de := fk.DeclaringType.DisplayName(), dup.DeclaringType.DisplayName()

	columns, dupColumns := metadata.ColumnNames(fk.Properties, so), metadata.ColumnNames(dup.Properties, so)
	if columns == nil || dupColumns == nil {
		return fail(relmap.DuplicateForeignKeyTableMismatch,
			"The foreign keys %s on '%s' and %s on '%s' are both mapped to '%s', but on different tables ('%s' and '%s').",
			props, e, dupProps, de, name,
			fk.DeclaringType.GetSchemaQualifiedTableName(), dup.DeclaringType.GetSchemaQualifiedTableName())
	}
	principal, ok := fk.GetPrincipalTable()
	dupPrincipal, dupOK := dup.GetPrincipalTable()
	var principalColumns, dupPrincipalColumns []string
	if ok && dupOK {
		principalColumns = metadata.ColumnNames(fk.PrincipalKey.Properties, principal)
		dupPrincipalColumns = metadata.ColumnNames(dup.PrincipalKey.Properties, dupPrincipal)
	}
	if principal != dupPrincipal || principalColumns == nil || dupPrincipalColumns == nil {
		return fail(relmap.DuplicateForeignKeyPrincipalTableMismatch,
			"The foreign keys %s on '%s' and %s on '%s' are both mapped to '%s.%s', but referencing different principal tables ('%s' and '%s').",
			props, e, dupProps, de, so.DisplayName(), name,
			principal.DisplayName(), dupPrincipal.DisplayName())
	}
	if !slices.Equal(columns, dupColumns) {
		return fail(relmap.DuplicateForeignKeyColumnMismatch,
			"The foreign keys %s on '%s' and %s on '%s' are both mapped to '%s.%s', but use different columns (%s and %s).",
			props, e, dupProps, de, so.DisplayName(), name,
			metadata.FormatColumns(columns), metadata.FormatColumns(dupColumns))
	}
	if !slices.Equal(principalColumns, dupPrincipalColumns) {
		return fail(relmap.DuplicateForeignKeyPrincipalColumnMismatch,
			"The foreign keys %s on '%s' and %s on '%s' are both mapped to '%s.%s', but referencing different principal columns (%s and %s).",
			props, e, dupProps, de, so.DisplayName(), name,
			metadata.FormatColumns(principalColumns), metadata.FormatColumns(dupPrincipalColumns))
	}
	if fk.Unique != dup.Unique {
		return fail(relmap.DuplicateForeignKeyUniquenessMismatch,
			"The foreign keys %s on '%s' and %s on '%s' are both mapped to '%s.%s', but with different uniqueness configurations.",
			props, e, dupProps, de, so.DisplayName(), name)
	}
	if fk.DeleteBehavior.ReferentialAction() != dup.DeleteBehavior.ReferentialAction() {
		return fail(relmap.DuplicateForeignKeyDeleteBehaviorMismatch,
			"The foreign keys %s on '%s' and %s on '%s' are both mapped to '%s.%s', but with different delete behavior ('%s' and '%s').",
			props, e, dupProps, de, so.DisplayName(), name, fk.DeleteBehavior, dup.DeleteBehavior)
	}
	return nil
}

// ValidateSharedIndexesCompatibility checks that indexes of types sharing
// so with the same name are the same index.
func (v *Validator) ValidateSharedIndexesCompatibility(types []*metadata.EntityType, so metadata.StoreObjectIdentifier, _ *diagnostics.Logger) error {
	seen := map[string]*metadata.Index{}
	for _, e := range types {
		for _, ix := range e.Indexes {
			name := ix.GetDatabaseName(so)
			if name == "" {
				continue
			}
			dup, ok := seen[name]
			if !ok {
				seen[name] = ix
				continue
			}
			if err := indexesCompatible(ix, dup, name, so); err != nil {
				return err
			}
		}
	}
	return nil
}

func indexesCompatible(ix, dup *metadata.Index, name string, so metadata.StoreObjectIdentifier) error {
	e, de := ix.DeclaringType.DisplayName(), dup.DeclaringType.DisplayName()
	columns, dupColumns := metadata.ColumnNames(ix.Properties, so), metadata.ColumnNames(dup.Properties, so)
	if columns == nil || dupColumns == nil {
		return fail(relmap.DuplicateIndexTableMismatch,
			"The indexes %s on '%s' and %s on '%s' are both mapped to '%s', but on different tables ('%s' and '%s').",
			ix.DisplayName(), e, dup.DisplayName(), de, name,
			ix.DeclaringType.GetSchemaQualifiedTableName(), dup.DeclaringType.GetSchemaQualifiedTableName())
	}
	if !slices.Equal(columns, dupColumns) {
		return fail(relmap.DuplicateIndexColumnMismatch,
			"The indexes %s on '%s' and %s on '%s' are both mapped to '%s.%s', but with different columns (%s and %s).",
			ix.DisplayName(), e, dup.DisplayName(), de, so.DisplayName(), name,
			metadata.FormatColumns(columns), metadata.FormatColumns(dupColumns))
	}
	if ix.Unique != dup.Unique {
		return fail(relmap.DuplicateIndexUniquenessMismatch,
			"The indexes %s on '%s' and %s on '%s' are both mapped to '%s.%s', but with different uniqueness configurations.",
			ix.DisplayName(), e, dup.DisplayName(), de, so.DisplayName(), name)
	}
	for i := range columns {
		if ix.IsDescending(i) != dup.IsDescending(i) {
			return fail(relmap.DuplicateIndexSortOrdersMismatch,
				"The indexes %s on '%s' and %s on '%s' are both mapped to '%s.%s', but with different sort orders.",
				ix.DisplayName(), e, dup.DisplayName(), de, so.DisplayName(), name)
		}
	}
	if f1, f2 := ix.GetFilter(so), dup.GetFilter(so); f1 != f2 {
		return fail(relmap.DuplicateIndexFiltersMismatch,
			"The indexes %s on '%s' and %s on '%s' are both mapped to '%s.%s', but with different filters ('%s' and '%s').",
			ix.DisplayName(), e, dup.DisplayName(), de, so.DisplayName(), name, f1, f2)
	}
	return nil
}

// ValidateSharedCheckConstraintCompatibility checks that check constraints
// of types sharing so with the same name have the same SQL.
func (v *Validator) ValidateSharedCheckConstraintCompatibility(types []*metadata.EntityType, so metadata.StoreObjectIdentifier, _ *diagnostics.Logger) error {
	seen := map[string]*metadata.CheckConstraint{}
	for _, e := range types {
		for _, c := range e.CheckConstraints {
			name := c.GetName(so)
			if name == "" {
				continue
			}
			dup, ok := seen[name]
			if !ok {
				seen[name] = c
				continue
			}
			if c.SQL != dup.SQL {
				return fail(relmap.DuplicateCheckConstraintSqlMismatch,
					"The check constraints '%s' on '%s' and '%s' on '%s' are both mapped to '%s', but with different defining SQL.",
					c.ModelName, c.DeclaringType.DisplayName(), dup.ModelName, dup.DeclaringType.DisplayName(), name)
			}
		}
	}
	return nil
}

// ValidateSharedTriggerCompatibility groups the triggers of types sharing so
// by name. Triggers with the same name on the same table are the same
// trigger, so no configuration can conflict.
func (v *Validator) ValidateSharedTriggerCompatibility(types []*metadata.EntityType, so metadata.StoreObjectIdentifier, _ *diagnostics.Logger) error {
	seen := map[string]*metadata.Trigger{}
	for _, e := range types {
		for _, t := range e.Triggers {
			if name := t.GetDatabaseName(so); name != "" {
				if _, ok := seen[name]; !ok {
					seen[name] = t
				}
			}
		}
	}
	return nil
}
