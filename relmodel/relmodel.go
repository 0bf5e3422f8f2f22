// Package relmodel projects a validated metadata model onto the relational
// schema representation of ariga.io/atlas, for diffing and migration
// planning.
package relmodel

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"ariga.io/atlas/sql/schema"

	"github.com/syssam/relmap/metadata"
)

// IndexFilter is the filter predicate of a partial index.
type IndexFilter struct {
	schema.Attr
	P string
}

// Build returns one realm schema per store schema, holding a table for every
// table the entity types are mapped to, fragments included. Tables excluded
// from migrations are left out. The model is expected to be valid; Build does
// not repeat the validator's checks.
func Build(m *metadata.Model) (*schema.Realm, error) {
	if m == nil {
		return nil, errors.New("relmodel: nil model")
	}
	b := &builder{
		model:   m,
		realm:   &schema.Realm{},
		schemas: make(map[string]*schema.Schema),
		tables:  make(map[metadata.StoreObjectIdentifier]*schema.Table),
	}
	mapped := mappedTables(m)
	for _, so := range mapped.keys {
		b.table(so, mapped.values[so])
	}
	b.containers()
	for _, so := range mapped.keys {
		if err := b.foreignKeys(so, mapped.values[so]); err != nil {
			return nil, err
		}
	}
	return b.realm, nil
}

type builder struct {
	model   *metadata.Model
	realm   *schema.Realm
	schemas map[string]*schema.Schema
	tables  map[metadata.StoreObjectIdentifier]*schema.Table
}

type tableGroups struct {
	keys   []metadata.StoreObjectIdentifier
	values map[metadata.StoreObjectIdentifier][]*metadata.EntityType
}

// mappedTables groups the entity types by table, in declaration order.
func mappedTables(m *metadata.Model) *tableGroups {
	g := &tableGroups{values: make(map[metadata.StoreObjectIdentifier][]*metadata.EntityType)}
	add := func(so metadata.StoreObjectIdentifier, e *metadata.EntityType) {
		types, ok := g.values[so]
		if !ok {
			g.keys = append(g.keys, so)
		}
		if !slices.Contains(types, e) {
			g.values[so] = append(types, e)
		}
	}
	for _, e := range m.EntityTypes() {
		if e.IsMappedToJSON() || e.IsTableExcludedFromMigrations() {
			continue
		}
		if so, ok := e.StoreObject(metadata.Table); ok {
			add(so, e)
		}
		for _, f := range e.GetMappingFragments(metadata.Table) {
			add(f.StoreObject, e)
		}
	}
	return g
}

func (b *builder) schemaOf(name string) *schema.Schema {
	if s, ok := b.schemas[name]; ok {
		return s
	}
	s := &schema.Schema{Name: name, Realm: b.realm}
	b.schemas[name] = s
	b.realm.Schemas = append(b.realm.Schemas, s)
	return s
}

func (b *builder) table(so metadata.StoreObjectIdentifier, types []*metadata.EntityType) {
	s := b.schemaOf(so.Schema)
	t := &schema.Table{Name: so.Name, Schema: s}
	s.Tables = append(s.Tables, t)
	b.tables[so] = t
	for _, e := range types {
		if main, ok := e.StoreObject(metadata.Table); ok && main == so && e.Comment != "" {
			t.Attrs = append(t.Attrs, &schema.Comment{Text: e.Comment})
			break
		}
	}
	columns(t, so, types)
	keys(t, so, types)
	indexes(t, so, types)
	checks(t, so, types)
}

// columns adds a column for every mapped property. Properties sharing a
// column were checked for compatibility; the first one defines it.
func columns(t *schema.Table, so metadata.StoreObjectIdentifier, types []*metadata.EntityType) {
	order := make(map[*schema.Column]int)
	for _, e := range types {
		for _, p := range e.GetProperties() {
			name := p.GetColumnName(so)
			if name == "" {
				continue
			}
			if _, ok := t.Column(name); ok {
				continue
			}
			c := column(name, p, so)
			if p.ColumnOrder != nil {
				order[c] = *p.ColumnOrder
			}
			t.Columns = append(t.Columns, c)
		}
	}
	// Ordered columns come first.
	slices.SortStableFunc(t.Columns, func(a, b *schema.Column) int {
		oa, aok := order[a]
		ob, bok := order[b]
		switch {
		case aok && bok:
			return oa - ob
		case aok:
			return -1
		case bok:
			return 1
		}
		return 0
	})
}

func column(name string, p *metadata.Property, so metadata.StoreObjectIdentifier) *schema.Column {
	raw := p.GetColumnType()
	c := &schema.Column{
		Name: name,
		Type: &schema.ColumnType{
			Type: columnType(p, raw),
			Raw:  raw,
			Null: p.IsColumnNullable(so),
		},
	}
	switch {
	case p.HasDefaultValue:
		c.Default = &schema.Literal{V: literal(p.DefaultValue)}
	case p.DefaultValueSQL != "":
		c.Default = &schema.RawExpr{X: p.DefaultValueSQL}
	}
	if p.ComputedSQL != "" {
		x := &schema.GeneratedExpr{Expr: p.ComputedSQL, Type: "VIRTUAL"}
		if p.Stored != nil && *p.Stored {
			x.Type = "STORED"
		}
		c.Attrs = append(c.Attrs, x)
	}
	if p.Comment != "" {
		c.Attrs = append(c.Attrs, &schema.Comment{Text: p.Comment})
	}
	if p.Collation != "" {
		c.Attrs = append(c.Attrs, &schema.Collation{V: p.Collation})
	}
	return c
}

func columnType(p *metadata.Property, raw string) schema.Type {
	switch p.GetProviderType() {
	case metadata.TypeString:
		t := &schema.StringType{T: raw}
		if p.MaxLength != nil {
			t.Size = *p.MaxLength
		}
		return t
	case metadata.TypeBool:
		return &schema.BoolType{T: raw}
	case metadata.TypeInt16, metadata.TypeInt32, metadata.TypeInt64:
		return &schema.IntegerType{T: raw}
	case metadata.TypeFloat64:
		return &schema.FloatType{T: raw}
	case metadata.TypeDecimal:
		t := &schema.DecimalType{T: raw, Precision: 18, Scale: 2}
		if p.Precision != nil {
			t.Precision = *p.Precision
		}
		if p.Scale != nil {
			t.Scale = *p.Scale
		}
		return t
	case metadata.TypeTime:
		return &schema.TimeType{T: raw}
	case metadata.TypeUUID:
		return &schema.UUIDType{T: raw}
	case metadata.TypeBytes:
		return &schema.BinaryType{T: raw, Size: p.MaxLength}
	case metadata.TypeJSON:
		return &schema.JSONType{T: raw}
	}
	return &schema.UnsupportedType{T: raw}
}

func literal(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if v {
			return "1"
		}
		return "0"
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case []byte:
		return fmt.Sprintf("0x%X", v)
	}
	return fmt.Sprint(v)
}

// containers adds the JSON columns holding owned JSON documents to the
// tables of their owners.
func (b *builder) containers() {
	for _, e := range b.model.EntityTypes() {
		if e.ContainerColumn == "" {
			continue
		}
		fk := e.FindOwnership()
		if fk == nil || fk.PrincipalType.IsMappedToJSON() {
			continue
		}
		so, ok := fk.PrincipalType.StoreObject(metadata.Table)
		if !ok {
			continue
		}
		t, ok := b.tables[so]
		if !ok {
			continue
		}
		if _, ok := t.Column(e.ContainerColumn); ok {
			continue
		}
		t.Columns = append(t.Columns, &schema.Column{
			Name: e.ContainerColumn,
			Type: &schema.ColumnType{
				Type: &schema.JSONType{T: metadata.TypeJSON.StoreType(nil, nil, nil, nil, nil)},
				Raw:  metadata.TypeJSON.StoreType(nil, nil, nil, nil, nil),
				Null: !fk.IsRequiredDependent(),
			},
		})
	}
}

// parts returns the index parts over the named columns, or nil if any of
// them is missing.
func parts(t *schema.Table, names []string, desc func(int) bool) []*schema.IndexPart {
	if len(names) == 0 {
		return nil
	}
	ps := make([]*schema.IndexPart, 0, len(names))
	for i, name := range names {
		c, ok := t.Column(name)
		if !ok {
			return nil
		}
		ps = append(ps, &schema.IndexPart{SeqNo: i, C: c, Desc: desc != nil && desc(i)})
	}
	return ps
}

func index(t *schema.Table, name string, unique bool, ps []*schema.IndexPart) *schema.Index {
	idx := &schema.Index{Name: name, Unique: unique, Table: t, Parts: ps}
	for _, p := range ps {
		p.C.Indexes = append(p.C.Indexes, idx)
	}
	return idx
}

// keys sets the primary key and adds unique indexes for alternate keys.
func keys(t *schema.Table, so metadata.StoreObjectIdentifier, types []*metadata.EntityType) {
	seen := make(map[string]bool)
	for _, e := range types {
		for _, k := range e.GetKeys() {
			name := k.GetName(so)
			if name == "" || seen[name] {
				continue
			}
			columns := metadata.ColumnNames(k.Properties, so)
			ps := parts(t, columns, nil)
			if ps == nil {
				continue
			}
			seen[name] = true
			if k.IsPrimaryKey() {
				if t.PrimaryKey == nil {
					t.PrimaryKey = index(t, name, true, ps)
				}
				continue
			}
			t.Indexes = append(t.Indexes, index(t, name, true, ps))
		}
	}
}

func indexes(t *schema.Table, so metadata.StoreObjectIdentifier, types []*metadata.EntityType) {
	seen := make(map[string]bool)
	for _, e := range types {
		for d := e; d != nil; d = d.Base {
			for _, ix := range d.Indexes {
				name := ix.GetDatabaseName(so)
				if name == "" || seen[name] {
					continue
				}
				ps := parts(t, metadata.ColumnNames(ix.Properties, so), ix.IsDescending)
				if ps == nil {
					continue
				}
				seen[name] = true
				idx := index(t, name, ix.Unique, ps)
				if f := ix.GetFilter(so); f != "" {
					idx.Attrs = append(idx.Attrs, &IndexFilter{P: f})
				}
				t.Indexes = append(t.Indexes, idx)
			}
		}
	}
}

func checks(t *schema.Table, so metadata.StoreObjectIdentifier, types []*metadata.EntityType) {
	seen := make(map[string]bool)
	for _, e := range types {
		for _, c := range e.CheckConstraints {
			name := c.GetName(so)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			t.Attrs = append(t.Attrs, &schema.Check{Name: name, Expr: c.SQL})
		}
	}
}

// foreignKeys adds the constraints of the foreign keys declared by types.
// Foreign keys linking rows of one table have no constraint.
func (b *builder) foreignKeys(so metadata.StoreObjectIdentifier, types []*metadata.EntityType) error {
	t := b.tables[so]
	seen := make(map[string]bool)
	for _, e := range types {
		for _, fk := range e.GetForeignKeys() {
			principal, ok := fk.GetPrincipalTable()
			if !ok {
				continue
			}
			name := fk.GetConstraintName(so, principal)
			if name == "" || seen[name] {
				continue
			}
			ref, ok := b.tables[principal]
			if !ok {
				// The principal table is excluded from migrations.
				continue
			}
			cols := parts(t, metadata.ColumnNames(fk.Properties, so), nil)
			refs := parts(ref, metadata.ColumnNames(fk.PrincipalKey.Properties, principal), nil)
			if cols == nil || refs == nil {
				return fmt.Errorf("relmodel: foreign key %q of %s: missing columns", name, e.DisplayName())
			}
			seen[name] = true
			f := &schema.ForeignKey{
				Symbol:   name,
				Table:    t,
				RefTable: ref,
				OnUpdate: schema.NoAction,
				OnDelete: schema.ReferenceOption(fk.DeleteBehavior.ReferentialAction()),
			}
			for i := range cols {
				f.Columns = append(f.Columns, cols[i].C)
				f.RefColumns = append(f.RefColumns, refs[i].C)
				cols[i].C.ForeignKeys = append(cols[i].C.ForeignKeys, f)
			}
			t.ForeignKeys = append(t.ForeignKeys, f)
		}
	}
	return nil
}
