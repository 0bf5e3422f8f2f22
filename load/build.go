package load

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/syssam/relmap"
	"github.com/syssam/relmap/metadata"
)

// Enumerations are spelled in snake case in documents, e.g. on_add_or_update.
var (
	valueGenerated = enum(metadata.ValueGenerated.String,
		metadata.Never, metadata.OnAdd, metadata.OnUpdate, metadata.OnAddOrUpdate)
	saveBehaviors = enum(metadata.SaveBehavior.String,
		metadata.Save, metadata.Ignore, metadata.Throw)
	deleteBehaviors = enum(func(b metadata.DeleteBehavior) string { return string(b) },
		metadata.ClientSetNull, metadata.Restrict, metadata.SetNull, metadata.Cascade,
		metadata.ClientCascade, metadata.NoAction, metadata.ClientNoAction)
	directions = enum(metadata.ParameterDirection.String,
		metadata.Input, metadata.Output, metadata.InputOutput)
)

func enum[T any](name func(T) string, values ...T) map[string]T {
	m := make(map[string]T, len(values))
	for _, v := range values {
		m[inflect.Underscore(name(v))] = v
	}
	return m
}

func lookup[T any](m map[string]T, s string) (T, error) {
	var zero T
	if s == "" {
		return zero, nil
	}
	v, ok := m[s]
	if !ok {
		return zero, fmt.Errorf("unknown value %q", s)
	}
	return v, nil
}

// Build checks the document references and builds its model. All document
// errors are reported together as *relmap.LoadError values.
func (d *Document) Build() (*metadata.Model, error) {
	c := newChecker(d)
	if err := c.check(); err != nil {
		return nil, err
	}
	b := metadata.NewBuilder()
	if d.DefaultSchema != "" {
		b.DefaultSchema(d.DefaultSchema)
	}
	if d.MaxIdentifierLength > 0 {
		b.MaxIdentifierLength(d.MaxIdentifierLength)
	}
	if d.PluralizeTableNames {
		b.PluralizeTableNames()
	}
	for _, e := range d.Entities {
		configure(b.Entity(e.Name), e)
	}
	for _, f := range d.Functions {
		b.DbFunction(function(f))
	}
	for _, s := range d.Sequences {
		b.Sequence(sequence(s))
	}
	m, err := b.Build()
	if err != nil {
		return nil, relmap.NewLoadError(d.path, "", "", err)
	}
	return m, nil
}

// configure applies an entity description to its builder. Values were
// checked before, so lookup errors are ignored.
func configure(eb *metadata.EntityBuilder, e *Entity) {
	if e.Base != "" {
		eb.HasBase(e.Base)
	}
	if e.Abstract {
		eb.Abstract()
	}
	if e.Strategy != "" {
		eb.UseStrategy(metadata.MappingStrategy(e.Strategy))
	}
	if e.Discriminator != "" {
		eb.HasDiscriminator(e.Discriminator)
	}
	if e.DiscriminatorValue != nil {
		eb.HasDiscriminatorValue(e.DiscriminatorValue)
	}
	if e.Table != nil {
		eb.ToTable(e.Table.Name, e.Table.Schema)
	}
	if e.View != nil {
		eb.ToView(e.View.Name, e.View.Schema)
	}
	if e.Function != "" {
		eb.ToFunction(e.Function)
	}
	if e.SQLQuery != "" {
		eb.ToSQLQuery(e.SQLQuery)
	}
	if e.Comment != "" {
		eb.Comment(e.Comment)
	}
	if e.ExcludeFromMigrations {
		eb.ExcludeFromMigrations()
	}
	for _, p := range e.Properties {
		property(eb.Property(p.Name, p.Type), p)
	}
	if e.Key != nil {
		k := eb.HasKey(e.Key.Properties...)
		if e.Key.Name != "" {
			k.HasName(e.Key.Name)
		}
	}
	for _, ak := range e.AlternateKeys {
		k := eb.HasAlternateKey(ak.Properties...)
		if ak.Name != "" {
			k.HasName(ak.Name)
		}
	}
	for _, fk := range e.ForeignKeys {
		foreignKey(eb.HasForeignKey(fk.Principal, fk.Properties...), fk)
	}
	for _, ix := range e.Indexes {
		index(eb.HasIndex(ix.Properties...), ix)
	}
	for _, ck := range e.Checks {
		eb.HasCheckConstraint(ck.Name, ck.SQL).Name = ck.StoreName
	}
	for _, tr := range e.Triggers {
		t := eb.HasTrigger(tr.Name)
		t.Name, t.Table = tr.StoreName, tr.Table
	}
	for _, f := range e.Fragments {
		if f.Table != "" {
			eb.SplitToTable(f.Table, f.Schema, f.Properties...)
		} else {
			eb.SplitToView(f.View, f.Schema, f.Properties...)
		}
	}
	if p := e.InsertProcedure; p != nil {
		procedure(eb.InsertUsingStoredProcedure(p.Name), p)
	}
	if p := e.UpdateProcedure; p != nil {
		procedure(eb.UpdateUsingStoredProcedure(p.Name), p)
	}
	if p := e.DeleteProcedure; p != nil {
		procedure(eb.DeleteUsingStoredProcedure(p.Name), p)
	}
	for _, o := range e.Owns {
		var ob *metadata.EntityBuilder
		if o.Many {
			ob = eb.OwnsMany(o.Navigation, o.TypeName())
		} else {
			ob = eb.OwnsOne(o.Navigation, o.TypeName())
		}
		if o.JSONColumn != "" {
			ob.ToJSON(o.JSONColumn)
		}
		if o.JSONPropertyName != "" {
			ob.HasJSONPropertyName(o.JSONPropertyName)
		}
		configure(ob, &o.Entity)
	}
}

func property(pb *metadata.PropertyBuilder, p *Property) {
	if p.Nullable {
		pb.Nullable()
	}
	if p.ProviderType != "" {
		pb.ProviderType(p.ProviderType)
	}
	if p.MaxLength != nil {
		pb.MaxLength(*p.MaxLength)
	}
	md := pb.Metadata()
	md.Precision, md.Scale = p.Precision, p.Scale
	if p.Unicode != nil {
		pb.Unicode(*p.Unicode)
	}
	if p.FixedLength != nil {
		pb.FixedLength(*p.FixedLength)
	}
	if p.Column != "" {
		pb.HasColumnName(p.Column)
	}
	if p.ColumnType != "" {
		pb.HasColumnType(p.ColumnType)
	}
	if p.ColumnOrder != nil {
		pb.HasColumnOrder(*p.ColumnOrder)
	}
	if p.Comment != "" {
		pb.Comment(p.Comment)
	}
	if p.Collation != "" {
		pb.Collation(p.Collation)
	}
	if p.Default != nil {
		pb.HasDefaultValue(p.Default)
	}
	if p.DefaultSQL != "" {
		pb.HasDefaultValueSQL(p.DefaultSQL)
	}
	if p.ComputedSQL != "" {
		pb.HasComputedColumnSQL(p.ComputedSQL, p.Stored)
	}
	if vg, _ := lookup(valueGenerated, p.ValueGenerated); vg != metadata.Never {
		pb.ValueGenerated(vg)
	}
	before, _ := lookup(saveBehaviors, p.BeforeSave)
	after, _ := lookup(saveBehaviors, p.AfterSave)
	if before != metadata.SaveBehaviorUnset || after != metadata.SaveBehaviorUnset {
		pb.SaveBehavior(before, after)
	}
	if p.ConcurrencyToken {
		pb.ConcurrencyToken()
	}
	if p.JSONPropertyName != "" {
		pb.HasJSONPropertyName(p.JSONPropertyName)
	}
	for _, o := range p.Overrides {
		pb.HasColumnNameIn(o.storeObject(), o.Column)
	}
}

func (o *Override) storeObject() metadata.StoreObjectIdentifier {
	if o.Table != "" {
		return metadata.TableID(o.Table, o.Schema)
	}
	return metadata.ViewID(o.View, o.Schema)
}

func foreignKey(fb *metadata.ForeignKeyBuilder, fk *ForeignKey) {
	if len(fk.PrincipalKey) > 0 {
		fb.HasPrincipalKey(fk.PrincipalKey...)
	}
	if fk.Name != "" {
		fb.HasName(fk.Name)
	}
	if fk.Unique {
		fb.Unique()
	}
	if fk.Required {
		fb.Required()
	}
	if fk.RequiredDependent {
		fb.RequiredDependent()
	}
	if d, _ := lookup(deleteBehaviors, fk.OnDelete); d != "" {
		fb.OnDelete(d)
	}
	if fk.Navigation != "" || fk.Inverse != "" {
		fb.WithNavigations(fk.Navigation, fk.Inverse)
	}
}

func index(ib *metadata.IndexBuilder, ix *Index) {
	if ix.Name != "" {
		ib.HasName(ix.Name)
	}
	if ix.DatabaseName != "" {
		ib.HasDatabaseName(ix.DatabaseName)
	}
	if ix.Unique {
		ib.Unique()
	}
	if ix.Filter != "" {
		ib.HasFilter(ix.Filter)
	}
	if ix.Descending != nil {
		ib.Descending(ix.Descending...)
	}
}

func procedure(sb *metadata.StoredProcedureBuilder, p *Procedure) {
	if p.Schema != "" {
		sb.HasSchema(p.Schema)
	}
	for _, pa := range p.Parameters {
		dir, _ := lookup(directions, pa.Direction)
		switch {
		case pa.RowsAffected:
			sb.HasRowsAffectedParameter()
		case pa.OriginalValue:
			sb.HasOriginalValueParameter(pa.Property)
		case dir == metadata.Output:
			sb.HasOutputParameter(pa.Property)
		default:
			sb.HasParameter(pa.Property)
		}
		params := sb.Metadata().Parameters
		last := params[len(params)-1]
		if pa.Name != "" {
			last.Name = pa.Name
		}
		if dir == metadata.InputOutput {
			last.Direction = dir
		}
	}
	for _, rc := range p.ResultColumns {
		if rc.RowsAffected {
			sb.HasRowsAffectedResultColumn()
		} else {
			sb.HasResultColumn(rc.Property)
		}
	}
	if p.RowsAffectedReturned {
		sb.HasRowsAffectedReturnValue()
	}
}

func function(f *Function) *metadata.DbFunction {
	fn := &metadata.DbFunction{
		Name:            f.Name,
		Schema:          f.Schema,
		Scalar:          f.Scalar,
		ReturnStoreType: f.ReturnStoreType,
		ReturnEntity:    f.ReturnEntity,
	}
	for _, p := range f.Parameters {
		fn.Parameters = append(fn.Parameters, &metadata.DbFunctionParameter{
			Name: p.Name, Type: p.Type, StoreType: p.StoreType,
		})
	}
	return fn
}

func sequence(s *Sequence) *metadata.Sequence {
	seq := &metadata.Sequence{
		Name:        s.Name,
		Schema:      s.Schema,
		Type:        s.Type,
		StartValue:  1,
		IncrementBy: 1,
		Min:         s.Min,
		Max:         s.Max,
		Cyclic:      s.Cyclic,
	}
	if seq.Type == "" {
		seq.Type = metadata.TypeInt64
	}
	if s.Start != nil {
		seq.StartValue = *s.Start
	}
	if s.IncrementBy != nil {
		seq.IncrementBy = *s.IncrementBy
	}
	return seq
}

// node is an entity of the document, owned types included, indexed by its
// model name.
type node struct {
	*Entity
	name  string
	owner *node
	many  bool
}

// checker resolves the references of a document before it reaches the
// builder, so that errors name the entity and member they occur in.
type checker struct {
	doc   *Document
	nodes map[string]*node
	order []*node
	errs  []error
}

func newChecker(d *Document) *checker {
	return &checker{doc: d, nodes: make(map[string]*node)}
}

func (c *checker) fail(entity, member string, format string, args ...any) {
	c.errs = append(c.errs, relmap.NewLoadError(c.doc.path, entity, member, fmt.Errorf(format, args...)))
}

func (c *checker) add(n *node) {
	switch {
	case n.name == "" || strings.HasSuffix(n.name, "#"):
		c.fail("", "", "entity without a name")
		return
	case c.nodes[n.name] != nil:
		c.fail(n.name, "", "entity declared twice")
		return
	}
	c.nodes[n.name] = n
	c.order = append(c.order, n)
	for _, o := range n.Owns {
		if o.Navigation == "" {
			c.fail(n.name, "", "owned type %q without a navigation", o.TypeName())
			continue
		}
		c.add(&node{
			Entity: &o.Entity,
			name:   n.name + "." + o.Navigation + "#" + o.TypeName(),
			owner:  n,
			many:   o.Many,
		})
	}
}

func (c *checker) check() error {
	for _, e := range c.doc.Entities {
		c.add(&node{Entity: e, name: e.Name})
	}
	for _, n := range c.order {
		c.entity(n)
	}
	for _, f := range c.doc.Functions {
		if f.Name == "" {
			c.fail("", "", "function without a name")
		}
	}
	for _, s := range c.doc.Sequences {
		if s.Name == "" {
			c.fail("", "", "sequence without a name")
		}
	}
	return errors.Join(c.errs...)
}

func (c *checker) entity(n *node) {
	if n.Base != "" {
		if n.owner != nil {
			c.fail(n.name, "", "owned types cannot have a base type")
		} else if c.nodes[n.Base] == nil {
			c.fail(n.name, "", "unknown base type %q", n.Base)
		} else if c.cyclic(n) {
			c.fail(n.name, "", "base type %q creates an inheritance cycle", n.Base)
			return
		}
	}
	seen := make(map[string]bool, len(n.Properties))
	for _, p := range n.Properties {
		switch {
		case p.Name == "":
			c.fail(n.name, "", "property without a name")
		case seen[p.Name]:
			c.fail(n.name, p.Name, "property declared twice")
		}
		seen[p.Name] = true
		if _, err := lookup(valueGenerated, p.ValueGenerated); err != nil {
			c.fail(n.name, p.Name, "value_generated: %v", err)
		}
		if _, err := lookup(saveBehaviors, p.BeforeSave); err != nil {
			c.fail(n.name, p.Name, "before_save: %v", err)
		}
		if _, err := lookup(saveBehaviors, p.AfterSave); err != nil {
			c.fail(n.name, p.Name, "after_save: %v", err)
		}
		for _, o := range p.Overrides {
			if (o.Table == "") == (o.View == "") {
				c.fail(n.name, p.Name, "override needs exactly one of table or view")
			}
		}
	}
	if n.Discriminator != "" && !seen[n.Discriminator] {
		c.fail(n.name, n.Discriminator, "unknown discriminator property")
	}
	if n.Key != nil {
		c.properties(n, "key", n.Key.Properties)
	}
	for _, k := range n.AlternateKeys {
		c.properties(n, "alternate key", k.Properties)
	}
	for _, fk := range n.ForeignKeys {
		member := "foreign key " + fk.Principal
		principal := c.nodes[fk.Principal]
		if principal == nil {
			c.fail(n.name, member, "unknown principal type %q", fk.Principal)
		} else if len(fk.PrincipalKey) > 0 {
			c.properties(principal, member, fk.PrincipalKey)
		}
		c.properties(n, member, fk.Properties)
		if _, err := lookup(deleteBehaviors, fk.OnDelete); err != nil {
			c.fail(n.name, member, "on_delete: %v", err)
		}
	}
	for _, ix := range n.Indexes {
		c.properties(n, "index", ix.Properties)
	}
	for _, f := range n.Fragments {
		if (f.Table == "") == (f.View == "") {
			c.fail(n.name, "fragment", "fragment needs exactly one of table or view")
			continue
		}
		c.properties(n, "fragment", f.Properties)
	}
	for _, p := range []*Procedure{n.InsertProcedure, n.UpdateProcedure, n.DeleteProcedure} {
		if p == nil {
			continue
		}
		for _, pa := range p.Parameters {
			if _, err := lookup(directions, pa.Direction); err != nil {
				c.fail(n.name, pa.Property, "direction: %v", err)
			}
		}
	}
}

// properties reports every name that is not a property of n or its bases.
func (c *checker) properties(n *node, member string, names []string) {
	if len(names) == 0 {
		c.fail(n.name, member, "empty property list")
		return
	}
	for _, name := range names {
		if !c.hasProperty(n, name) {
			c.fail(n.name, member, "unknown property %q", name)
		}
	}
}

func (c *checker) hasProperty(n *node, name string) bool {
	for t, i := n, 0; t != nil && i <= len(c.order); t, i = c.nodes[t.Base], i+1 {
		for _, p := range t.Properties {
			if p.Name == name {
				return true
			}
		}
		if t.Base == "" {
			break
		}
	}
	if n.owner == nil {
		return false
	}
	for _, kp := range c.keyOf(n.owner, 0) {
		if shortName(n.owner.name)+kp == name {
			return true
		}
	}
	return n.many && name == "Id"
}

// keyOf returns the primary key property names of n, synthesized for owned
// types the way the builder does.
func (c *checker) keyOf(n *node, depth int) []string {
	if depth > len(c.order) {
		return nil
	}
	root := n
	for i := 0; root.Base != "" && c.nodes[root.Base] != nil && i <= len(c.order); i++ {
		root = c.nodes[root.Base]
	}
	if root.Key != nil {
		return root.Key.Properties
	}
	if root.owner == nil {
		return nil
	}
	var key []string
	for _, kp := range c.keyOf(root.owner, depth+1) {
		key = append(key, shortName(root.owner.name)+kp)
	}
	if root.many {
		key = append(key, "Id")
	}
	return key
}

func (c *checker) cyclic(n *node) bool {
	for t, i := c.nodes[n.Base], 0; t != nil; t, i = c.nodes[t.Base], i+1 {
		if t == n || i > len(c.order) {
			return true
		}
	}
	return false
}

func shortName(name string) string {
	if i := strings.LastIndexByte(name, '#'); i >= 0 {
		return name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
