package validator

import (
	"fmt"
	"slices"
	"sort"

	"golang.org/x/text/cases"

	"github.com/syssam/relmap"
	"github.com/syssam/relmap/diagnostics"
	"github.com/syssam/relmap/metadata"
)

// ValidateSharedColumnsCompatibility checks that properties of different
// entity types mapped to the same column of so agree on its configuration,
// and that every type of a shared table maps the concurrency token columns
// updated by the others.
func (v *Validator) ValidateSharedColumnsCompatibility(types []*metadata.EntityType, so metadata.StoreObjectIdentifier, logger *diagnostics.Logger) error {
	var tokens *groups[string, *metadata.Property]
	if so.Type == metadata.Table {
		tokens = concurrencyTokens(types, so)
	}
	var (
		claimed = map[string]*metadata.Property{}
		order   []string
	)
	for _, e := range types {
		var missing []string
		if tokens != nil {
			for _, column := range tokens.keys {
				if isConcurrencyTokenMissing(tokens.values[column], e) {
					missing = append(missing, column)
				}
			}
		}
		for _, p := range e.Properties {
			column := p.GetColumnName(so)
			if column == "" {
				continue
			}
			missing = slices.DeleteFunc(missing, func(c string) bool { return c == column })
			dup, ok := claimed[column]
			if !ok {
				claimed[column] = p
				order = append(order, column)
				continue
			}
			if err := v.ValidateCompatible(p, dup, column, so); err != nil {
				return err
			}
		}
		for _, column := range missing {
			if !mapsColumnInBase(e, column, so) {
				return fail(relmap.MissingConcurrencyColumn,
					"Entity type '%s' doesn't contain a property mapped to the store-generated concurrency token column '%s' which is used by another entity type sharing the table '%s'. Add a store-generated property to '%s' which is mapped to the same column; it may be in shadow state.",
					e.DisplayName(), column, so.DisplayName(), e.DisplayName())
			}
		}
	}

	byOrder := map[int][]string{}
	for _, column := range order {
		if o := claimed[column].ColumnOrder; o != nil {
			byOrder[*o] = append(byOrder[*o], column)
		}
	}
	var duplicates []int
	for o, columns := range byOrder {
		if len(columns) > 1 {
			duplicates = append(duplicates, o)
		}
	}
	if len(duplicates) == 0 {
		return nil
	}
	sort.Ints(duplicates)
	var columns []string
	for _, o := range duplicates {
		columns = append(columns, byOrder[o]...)
	}
	return logger.DuplicateColumnOrders(so, columns)
}

// concurrencyTokens maps the columns of store generated concurrency tokens
// to their properties. It returns nil unless at least two types of
// different hierarchies share the table.
func concurrencyTokens(types []*metadata.EntityType, so metadata.StoreObjectIdentifier) *groups[string, *metadata.Property] {
	if len(types) < 2 {
		return nil
	}
	var (
		g     = newGroups[string, *metadata.Property]()
		roots int
	)
	for _, e := range types {
		if e.Base == nil || !slices.Contains(types, e.Base) {
			roots++
		}
		for _, p := range e.Properties {
			if !p.ConcurrencyToken || !p.GetValueGenerated().Has(metadata.OnUpdate) {
				continue
			}
			if column := p.GetColumnName(so); column != "" {
				g.add(column, p)
			}
		}
	}
	if roots < 2 || len(g.keys) == 0 {
		return nil
	}
	return g
}

// isConcurrencyTokenMissing reports whether e needs its own property for a
// token column: none of the token's properties is in e's hierarchy or
// ownership path.
func isConcurrencyTokenMissing(props []*metadata.Property, e *metadata.EntityType) bool {
	if e.FindPrimaryKey() == nil {
		return false
	}
	for _, p := range props {
		d := p.DeclaringType
		if d.IsAssignableFrom(e) || e.IsAssignableFrom(d) || d.IsInOwnershipPath(e) || e.IsInOwnershipPath(d) {
			return false
		}
	}
	return true
}

func mapsColumnInBase(e *metadata.EntityType, column string, so metadata.StoreObjectIdentifier) bool {
	for _, b := range e.AllBaseTypes() {
		for _, p := range b.Properties {
			if p.GetColumnName(so) == column {
				return true
			}
		}
	}
	return false
}

// ValidateCompatible checks that p can share column with dup, the property
// that claimed it first.
func (v *Validator) ValidateCompatible(p, dup *metadata.Property, column string, so metadata.StoreObjectIdentifier) error {
	d1, d2 := dup.DeclaringType, p.DeclaringType
	if d1.IsAssignableFrom(d2) || d2.IsAssignableFrom(d1) {
		return fail(relmap.DuplicateColumnNameSameHierarchy,
			"Both '%s' and '%s' are mapped to column '%s' in '%s', but the properties are contained within the same hierarchy. All properties on an entity type must be mapped to unique different columns.",
			dup.DisplayName(), p.DisplayName(), column, so.DisplayName())
	}
	both := fmt.Sprintf("'%s' and '%s' are both mapped to column '%s' in '%s', but",
		dup.DisplayName(), p.DisplayName(), column, so.DisplayName())

	if p.IsColumnNullable(so) != dup.IsColumnNullable(so) {
		return fail(relmap.DuplicateColumnNameNullabilityMismatch,
			"%s are configured with different column nullability settings.", both)
	}
	if !equalPtr(p.MaxLength, dup.MaxLength) {
		return fail(relmap.DuplicateColumnNameMaxLengthMismatch,
			"%s are configured to use different maximum lengths ('%s' and '%s').", both, fmtPtr(dup.MaxLength), fmtPtr(p.MaxLength))
	}
	if !equalPtr(p.Unicode, dup.Unicode) {
		return fail(relmap.DuplicateColumnNameUnicodenessMismatch,
			"%s are configured with different Unicode settings.", both)
	}
	if !equalPtr(p.FixedLength, dup.FixedLength) {
		return fail(relmap.DuplicateColumnNameFixedLengthMismatch,
			"%s are configured with different fixed length settings.", both)
	}
	if !equalPtr(p.Precision, dup.Precision) {
		return fail(relmap.DuplicateColumnNamePrecisionMismatch,
			"%s are configured to use different precisions ('%s' and '%s').", both, fmtPtr(dup.Precision), fmtPtr(p.Precision))
	}
	if !equalPtr(p.Scale, dup.Scale) {
		return fail(relmap.DuplicateColumnNameScaleMismatch,
			"%s are configured to use different scales ('%s' and '%s').", both, fmtPtr(dup.Scale), fmtPtr(p.Scale))
	}
	if p.ConcurrencyToken != dup.ConcurrencyToken {
		return fail(relmap.DuplicateColumnNameConcurrencyTokenMismatch,
			"%s have different concurrency token configurations.", both)
	}
	// A Caser is stateful and cannot be shared between concurrent runs.
	fold := cases.Fold()
	if t1, t2 := dup.GetColumnType(), p.GetColumnType(); fold.String(t1) != fold.String(t2) {
		return fail(relmap.DuplicateColumnNameDataTypeMismatch,
			"%s are configured to use differing data types ('%s' and '%s').", both, t1, t2)
	}
	if t1, t2 := dup.GetProviderType(), p.GetProviderType(); t1 != t2 && (keyLike(p) || keyLike(dup)) {
		return fail(relmap.DuplicateColumnNameProviderTypeMismatch,
			"%s are configured to use differing provider types ('%s' and '%s').", both, t1, t2)
	}
	if p.ComputedSQL != dup.ComputedSQL {
		return fail(relmap.DuplicateColumnNameComputedSqlMismatch,
			"%s are configured to use different computed values ('%s' and '%s').", both, dup.ComputedSQL, p.ComputedSQL)
	}
	if !equalPtr(p.Stored, dup.Stored) {
		return fail(relmap.DuplicateColumnNameIsStoredMismatch,
			"%s are configured to use different stored computed column settings ('%s' and '%s').", both, fmtPtr(dup.Stored), fmtPtr(p.Stored))
	}
	if (p.HasDefaultValue || dup.HasDefaultValue) && !metadata.ValuesEqual(defaultValue(p), defaultValue(dup)) {
		return fail(relmap.DuplicateColumnNameDefaultSqlMismatch,
			"%s are configured to use different default values ('%v' and '%v').", both, defaultValue(dup), defaultValue(p))
	}
	if p.DefaultValueSQL != dup.DefaultValueSQL {
		return fail(relmap.DuplicateColumnNameDefaultSqlMismatch,
			"%s are configured to use different default values ('%s' and '%s').", both, dup.DefaultValueSQL, p.DefaultValueSQL)
	}
	if p.Comment != dup.Comment {
		return fail(relmap.DuplicateColumnNameCommentMismatch,
			"%s are configured with different comments ('%s' and '%s').", both, dup.Comment, p.Comment)
	}
	if p.Collation != dup.Collation {
		return fail(relmap.DuplicateColumnNameCollationMismatch,
			"%s are configured to use different collations ('%s' and '%s').", both, dup.Collation, p.Collation)
	}
	if !equalPtr(p.ColumnOrder, dup.ColumnOrder) {
		return fail(relmap.DuplicateColumnNameOrderMismatch,
			"%s are configured to use different column orders ('%s' and '%s').", both, fmtPtr(dup.ColumnOrder), fmtPtr(p.ColumnOrder))
	}
	return nil
}

// keyLike reports whether the provider type of p matters for comparisons
// in the store.
func keyLike(p *metadata.Property) bool {
	return p.IsKey() || p.IsForeignKey() || p.IsInUniqueIndex()
}

func defaultValue(p *metadata.Property) any {
	if !p.HasDefaultValue {
		return nil
	}
	return p.DefaultValue
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func fmtPtr[T any](p *T) string {
	if p == nil {
		return ""
	}
	return fmt.Sprint(*p)
}
