package metadata

import (
	"slices"
)

// GetTableName returns the table e is mapped to, or "" if none.
func (e *EntityType) GetTableName() string {
	if e.Table != nil {
		return e.Table.Name
	}
	if e.IsMappedToJSON() {
		if o := e.FindOwnership(); o != nil {
			return o.PrincipalType.GetTableName()
		}
	}
	if e.Base != nil && e.GetMappingStrategy() == TPH {
		return e.RootType().GetTableName()
	}
	if (e.View != nil && e.View.Name != "") || (e.Function != nil && e.Function.Name != "") || e.SQLQuery != "" {
		return ""
	}
	return e.GetDefaultTableName()
}

// GetSchema returns the schema of e's table.
func (e *EntityType) GetSchema() string {
	if e.Table != nil {
		if e.Table.Schema != "" {
			return e.Table.Schema
		}
		return e.Model.DefaultSchema
	}
	if o := e.FindOwnership(); o != nil && (o.Unique || e.IsMappedToJSON()) {
		return o.PrincipalType.GetSchema()
	}
	if e.Base != nil && e.GetMappingStrategy() == TPH {
		return e.RootType().GetSchema()
	}
	return e.Model.DefaultSchema
}

// GetSchemaQualifiedTableName returns "schema.table", "table" or "".
func (e *EntityType) GetSchemaQualifiedTableName() string {
	name := e.GetTableName()
	if name == "" {
		return ""
	}
	return QualifiedName(name, e.GetSchema())
}

// GetViewName returns the view e is mapped to, or "" if none.
func (e *EntityType) GetViewName() string {
	if e.View != nil {
		return e.View.Name
	}
	if o := e.FindOwnership(); o != nil && (o.Unique || e.IsMappedToJSON()) {
		return o.PrincipalType.GetViewName()
	}
	if e.Base != nil && e.GetMappingStrategy() == TPH {
		return e.RootType().GetViewName()
	}
	return ""
}

// GetViewSchema returns the schema of e's view.
func (e *EntityType) GetViewSchema() string {
	if e.View != nil {
		if e.View.Schema != "" {
			return e.View.Schema
		}
		return e.Model.DefaultSchema
	}
	if o := e.FindOwnership(); o != nil && (o.Unique || e.IsMappedToJSON()) {
		return o.PrincipalType.GetViewSchema()
	}
	if e.Base != nil && e.GetMappingStrategy() == TPH {
		return e.RootType().GetViewSchema()
	}
	return e.Model.DefaultSchema
}

// GetSchemaQualifiedViewName returns "schema.view", "view" or "".
func (e *EntityType) GetSchemaQualifiedViewName() string {
	name := e.GetViewName()
	if name == "" {
		return ""
	}
	return QualifiedName(name, e.GetViewSchema())
}

// GetFunctionName returns the function e is mapped to, or "" if none.
func (e *EntityType) GetFunctionName() string {
	if e.Function != nil {
		return e.Function.Name
	}
	if e.Base != nil && e.GetMappingStrategy() == TPH {
		return e.RootType().GetFunctionName()
	}
	return ""
}

// GetSQLQuery returns the SQL query e is mapped to, or "" if none.
func (e *EntityType) GetSQLQuery() string {
	if e.SQLQuery != "" {
		return e.SQLQuery
	}
	if e.Base != nil && e.GetMappingStrategy() == TPH {
		return e.RootType().GetSQLQuery()
	}
	return ""
}

// StoreObject resolves the store object of the given kind e is mapped to.
func (e *EntityType) StoreObject(kind StoreObjectType) (StoreObjectIdentifier, bool) {
	switch kind {
	case Table:
		if name := e.GetTableName(); name != "" {
			return TableID(name, e.GetSchema()), true
		}
	case View:
		if name := e.GetViewName(); name != "" {
			return ViewID(name, e.GetViewSchema()), true
		}
	case Function:
		if name := e.GetFunctionName(); name != "" {
			return FunctionID(name), true
		}
	case SQLQuery:
		if e.GetSQLQuery() != "" {
			return SQLQueryID(e.RootType().Name + ".SqlQuery"), true
		}
	case InsertStoredProcedure, DeleteStoredProcedure, UpdateStoredProcedure:
		if sp := e.GetStoredProcedure(kind); sp != nil {
			return sp.StoreObject()
		}
	}
	return StoreObjectIdentifier{}, false
}

// IsMappedTo reports whether e's main mapping or one of its fragments is so.
func (e *EntityType) IsMappedTo(so StoreObjectIdentifier) bool {
	if id, ok := e.StoreObject(so.Type); ok && id == so {
		return true
	}
	return e.FindMappingFragment(so) != nil
}

// FindRowInternalForeignKeys returns the foreign keys linking e's primary key
// to the primary key of another type sharing so. Inheritance links are not
// row-internal foreign keys.
func (e *EntityType) FindRowInternalForeignKeys(so StoreObjectIdentifier) []*ForeignKey {
	pk := e.FindPrimaryKey()
	if pk == nil {
		return nil
	}
	var fks []*ForeignKey
	for _, fk := range e.GetForeignKeys() {
		if !fk.PrincipalKey.IsPrimaryKey() ||
			fk.PrincipalType.IsAssignableFrom(fk.DeclaringType) ||
			!sameProperties(fk.Properties, pk.Properties) {
			continue
		}
		if !fk.DeclaringType.IsMappedTo(so) || !fk.PrincipalType.IsMappedTo(so) {
			continue
		}
		fks = append(fks, fk)
	}
	return fks
}

// IsOptionalSharingDependent reports whether e shares so with a principal
// that may exist without e.
func (e *EntityType) IsOptionalSharingDependent(so StoreObjectIdentifier) bool {
	seen := map[*EntityType]bool{}
	var optional func(*EntityType) bool
	optional = func(t *EntityType) bool {
		if seen[t] {
			return false
		}
		seen[t] = true
		for _, fk := range t.FindRowInternalForeignKeys(so) {
			if !fk.IsRequiredDependent() || optional(fk.PrincipalType) {
				return true
			}
		}
		return false
	}
	return optional(e)
}

// GetColumnName returns the column p is mapped to in so, or "" if p has no
// column there.
func (p *Property) GetColumnName(so StoreObjectIdentifier) string {
	if so.Type.IsStoredProcedure() || p.DeclaringType.IsMappedToJSON() || !p.isMappedTo(so) {
		return ""
	}
	if o := p.FindOverride(so); o != nil && o.ColumnName != "" {
		return o.ColumnName
	}
	if p.ColumnName != "" {
		return p.ColumnName
	}
	return p.defaultColumnName(so)
}

func (p *Property) isMappedTo(so StoreObjectIdentifier) bool {
	d := p.DeclaringType
	pk := p.IsPrimaryKey()
	for _, t := range d.DerivedTypesInclusive() {
		if t.FindMappingFragment(so) != nil {
			if pk || p.FindOverride(so) != nil {
				return true
			}
			continue
		}
		id, ok := t.StoreObject(so.Type)
		if !ok || id != so {
			continue
		}
		if t != d && !pk && d.GetMappingStrategy() == TPT {
			continue
		}
		if !pk && p.isMovedToFragment(t, so.Type) {
			continue
		}
		return true
	}
	return false
}

func (p *Property) isMovedToFragment(t *EntityType, kind StoreObjectType) bool {
	for _, f := range t.GetMappingFragments(kind) {
		if p.FindOverride(f.StoreObject) != nil {
			return true
		}
	}
	return false
}

// defaultColumnName names key columns after the principal's key column when
// the row is shared, and prefixes owned reference columns with the ownership
// navigation names.
func (p *Property) defaultColumnName(so StoreObjectIdentifier) string {
	d := p.DeclaringType
	max := d.Model.MaxIdentifierLength
	if p.IsPrimaryKey() {
		current := p
		seen := map[*EntityType]bool{}
		for {
			t := current.DeclaringType
			if seen[t] {
				break
			}
			seen[t] = true
			fks := t.FindRowInternalForeignKeys(so)
			if len(fks) == 0 {
				break
			}
			i := slices.Index(fks[0].Properties, current)
			if i < 0 {
				break
			}
			principal := fks[0].PrincipalKey.Properties[i]
			if o := principal.FindOverride(so); o != nil && o.ColumnName != "" {
				return o.ColumnName
			}
			if principal.ColumnName != "" {
				return principal.ColumnName
			}
			current = principal
		}
		return truncate(current.Name, max)
	}
	name := p.Name
	seen := map[*EntityType]bool{}
	for t := d; !seen[t]; {
		seen[t] = true
		o := t.FindOwnership()
		if o == nil || !o.Unique || o.PrincipalToDependent == "" || !o.PrincipalType.IsMappedTo(so) {
			break
		}
		name = o.PrincipalToDependent + "_" + name
		t = o.PrincipalType
	}
	return truncate(name, max)
}

// IsColumnNullable reports whether the column of p in so allows nulls.
// Columns of TPH derived types and of optional table-sharing dependents
// are nullable regardless of the property.
func (p *Property) IsColumnNullable(so StoreObjectIdentifier) bool {
	if p.IsPrimaryKey() {
		return false
	}
	if p.Nullable {
		return true
	}
	if so.Type == Function || so.Type == SQLQuery {
		return false
	}
	d := p.DeclaringType
	if d.Base != nil && d.GetMappingStrategy() == TPH {
		return true
	}
	return d.IsOptionalSharingDependent(so)
}

// GetMappedStoreObjects returns every store object of the given kind p has
// a column in.
func (p *Property) GetMappedStoreObjects(kind StoreObjectType) []StoreObjectIdentifier {
	var ids []StoreObjectIdentifier
	add := func(id StoreObjectIdentifier) {
		if !slices.Contains(ids, id) && p.GetColumnName(id) != "" {
			ids = append(ids, id)
		}
	}
	for _, t := range p.DeclaringType.DerivedTypesInclusive() {
		if id, ok := t.StoreObject(kind); ok {
			add(id)
		}
		for _, f := range t.GetMappingFragments(kind) {
			add(f.StoreObject)
		}
	}
	return ids
}

// GetMappedTables returns the tables p has a column in.
func (p *Property) GetMappedTables() []StoreObjectIdentifier {
	return p.GetMappedStoreObjects(Table)
}

// ColumnNames returns the columns of props in so, or nil if any of them has
// no column there.
func ColumnNames(props []*Property, so StoreObjectIdentifier) []string {
	names := make([]string, 0, len(props))
	for _, p := range props {
		name := p.GetColumnName(so)
		if name == "" {
			return nil
		}
		names = append(names, name)
	}
	return names
}

// GetName returns the constraint name of k in so, or "" if k has none there.
func (k *Key) GetName(so StoreObjectIdentifier) string {
	if so.Type != Table {
		return ""
	}
	for _, t := range k.DeclaringType.DerivedTypesInclusive() {
		if id, ok := t.StoreObject(Table); ok && id == so {
			if k.Name != "" {
				return k.Name
			}
			break
		}
	}
	return k.GetDefaultName(so)
}

// GetDefaultName returns the conventional constraint name of k in so. Keys
// of table-sharing dependents take the name of the matching key of the root
// principal.
func (k *Key) GetDefaultName(so StoreObjectIdentifier) string {
	if so.Type != Table {
		return ""
	}
	max := k.DeclaringType.Model.MaxIdentifierLength
	var columns []string
	if !k.IsPrimaryKey() {
		if columns = ColumnNames(k.Properties, so); columns == nil {
			return ""
		}
	}
	root := k
	seen := map[*Key]bool{k: true}
	for {
		fks := root.DeclaringType.FindRowInternalForeignKeys(so)
		if len(fks) == 0 {
			break
		}
		var next *Key
		if k.IsPrimaryKey() {
			next = fks[0].PrincipalType.FindPrimaryKey()
		} else {
			for _, candidate := range fks[0].PrincipalType.GetKeys() {
				if slices.Equal(ColumnNames(candidate.Properties, so), columns) {
					next = candidate
					break
				}
			}
		}
		if next == nil {
			break
		}
		if seen[next] {
			root = k
			break
		}
		seen[next] = true
		root = next
	}
	if root != k {
		return root.GetName(so)
	}
	return defaultKeyName(so, k.IsPrimaryKey(), columns, max)
}

// GetDatabaseName returns the store name of ix in so, or "" if ix is not
// mapped to so.
func (ix *Index) GetDatabaseName(so StoreObjectIdentifier) string {
	if so.Type != Table {
		return ""
	}
	columns := ColumnNames(ix.Properties, so)
	if columns == nil {
		return ""
	}
	root := ix
	seen := map[*Index]bool{ix: true}
	for {
		fks := root.DeclaringType.FindRowInternalForeignKeys(so)
		if len(fks) == 0 {
			break
		}
		var next *Index
		for _, t := range fks[0].PrincipalType.DerivedTypesInclusive() {
			for _, candidate := range t.Indexes {
				if slices.Equal(ColumnNames(candidate.Properties, so), columns) {
					next = candidate
					break
				}
			}
			if next != nil {
				break
			}
		}
		if next == nil || seen[next] {
			break
		}
		seen[next] = true
		root = next
	}
	if root != ix && ix.DatabaseName == "" && ix.Name == "" {
		return root.GetDatabaseName(so)
	}
	switch {
	case ix.DatabaseName != "":
		return ix.DatabaseName
	case ix.Name != "":
		return ix.Name
	}
	return defaultIndexName(so, columns, ix.DeclaringType.Model.MaxIdentifierLength)
}

// GetFilter returns the index filter in so.
func (ix *Index) GetFilter(so StoreObjectIdentifier) string {
	if so.Type != Table {
		return ""
	}
	return ix.Filter
}

// GetPrincipalTable returns the table holding the principal key of fk.
func (fk *ForeignKey) GetPrincipalTable() (StoreObjectIdentifier, bool) {
	if fk.PrincipalKey.IsPrimaryKey() {
		return fk.PrincipalType.StoreObject(Table)
	}
	return fk.PrincipalKey.DeclaringType.StoreObject(Table)
}

// GetConstraintName returns the constraint name of fk from so to principal,
// or "" when fk produces no constraint there. Foreign keys linking rows of
// the same table produce none.
func (fk *ForeignKey) GetConstraintName(so, principal StoreObjectIdentifier) string {
	if so.Type != Table || principal.Type != Table {
		return ""
	}
	columns := ColumnNames(fk.Properties, so)
	if columns == nil {
		return ""
	}
	if so == principal && fk.PrincipalKey.IsPrimaryKey() {
		if pk := fk.DeclaringType.FindPrimaryKey(); pk != nil && sameProperties(pk.Properties, fk.Properties) {
			return ""
		}
	}
	if ColumnNames(fk.PrincipalKey.Properties, principal) == nil {
		return ""
	}
	if fk.Name != "" {
		return fk.Name
	}
	return defaultForeignKeyName(so, principal, columns, fk.DeclaringType.Model.MaxIdentifierLength)
}

// GetName returns the store name of c in so, or "" if c is not mapped to so.
func (c *CheckConstraint) GetName(so StoreObjectIdentifier) string {
	if so.Type != Table {
		return ""
	}
	for _, t := range c.DeclaringType.DerivedTypesInclusive() {
		if id, ok := t.StoreObject(Table); ok && id == so {
			if c.Name != "" {
				return c.Name
			}
			return defaultCheckName(so, c.ModelName, c.DeclaringType.Model.MaxIdentifierLength)
		}
	}
	return ""
}

// GetDatabaseName returns the store name of t in so, or "" if t is defined
// on another table.
func (t *Trigger) GetDatabaseName(so StoreObjectIdentifier) string {
	if so.Type != Table {
		return ""
	}
	name, schema := t.GetTableName()
	if name == "" || TableID(name, schema) != so {
		return ""
	}
	if t.Name != "" {
		return t.Name
	}
	return t.ModelName
}

// IsTableExcludedFromMigrations reports whether e's table is managed outside
// migrations. Types sharing the table of their TPH root or owner inherit the
// setting.
func (e *EntityType) IsTableExcludedFromMigrations() bool {
	if e.ExcludedFromMigrations {
		return true
	}
	if e.Table != nil {
		return false
	}
	if e.Base != nil && e.GetMappingStrategy() == TPH {
		return e.RootType().IsTableExcludedFromMigrations()
	}
	if o := e.FindOwnership(); o != nil && (o.Unique || e.IsMappedToJSON()) {
		return o.PrincipalType.IsTableExcludedFromMigrations()
	}
	return false
}
