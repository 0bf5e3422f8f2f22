package metadata

import (
	"errors"
	"fmt"
)

// Builder assembles a Model. Member references are resolved by name when
// Build is called, so entity types may be declared in any order.
//
//	b := metadata.NewBuilder()
//	order := b.Entity("Order").ToTable("Orders", "")
//	order.Property("Id", metadata.TypeInt32).ValueGenerated(metadata.OnAdd)
//	order.HasKey("Id")
//	m, err := b.Build()
type Builder struct {
	model    *Model
	entities []*EntityBuilder
	built    bool
}

// build phases; actions of a phase run after all actions of earlier phases.
const (
	phaseHierarchy = iota
	phaseKeys
	phaseOwnership
	phaseRelationships
	phaseMembers
	phaseCount
)

// NewBuilder returns an empty model builder.
func NewBuilder() *Builder {
	return &Builder{model: &Model{byName: map[string]*EntityType{}}}
}

// DefaultSchema sets the schema of store objects configured without one.
func (b *Builder) DefaultSchema(schema string) *Builder {
	b.model.DefaultSchema = schema
	return b
}

// MaxIdentifierLength truncates generated names to n characters.
func (b *Builder) MaxIdentifierLength(n int) *Builder {
	b.model.MaxIdentifierLength = n
	return b
}

// PluralizeTableNames makes default table names plural.
func (b *Builder) PluralizeTableNames() *Builder {
	b.model.PluralizeTableNames = true
	return b
}

// Entity returns the builder of the named entity type, adding it on first use.
func (b *Builder) Entity(name string) *EntityBuilder {
	if e := b.find(name); e != nil {
		return e
	}
	e := &EntityBuilder{
		b:      b,
		entity: &EntityType{Name: name, Model: b.model},
	}
	b.entities = append(b.entities, e)
	return e
}

// DbFunction adds a function to the model.
func (b *Builder) DbFunction(f *DbFunction) *Builder {
	b.model.functions = append(b.model.functions, f)
	return b
}

// Sequence adds a sequence to the model.
func (b *Builder) Sequence(s *Sequence) *Builder {
	b.model.sequences = append(b.model.sequences, s)
	return b
}

func (b *Builder) find(name string) *EntityBuilder {
	for _, e := range b.entities {
		if e.entity.Name == name {
			return e
		}
	}
	return nil
}

// Build resolves all references and returns the model. All resolution
// errors are reported together.
func (b *Builder) Build() (*Model, error) {
	if b.built {
		return nil, errors.New("metadata: builder already built")
	}
	b.built = true
	var errs []error
	for _, e := range b.entities {
		if _, dup := b.model.byName[e.entity.Name]; dup {
			errs = append(errs, fmt.Errorf("metadata: entity type %q declared twice", e.entity.Name))
			continue
		}
		b.model.byName[e.entity.Name] = e.entity
		b.model.entities = append(b.model.entities, e.entity)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	for phase := 0; phase < phaseCount; phase++ {
		for _, e := range b.entities {
			for _, a := range e.actions[phase] {
				if err := a(); err != nil {
					errs = append(errs, fmt.Errorf("metadata: entity type %q: %w", e.entity.Name, err))
				}
			}
		}
		// Later phases assume a sound hierarchy and keys.
		if len(errs) > 0 {
			return nil, errors.Join(errs...)
		}
	}
	return b.model, nil
}

// EntityBuilder configures one entity type.
type EntityBuilder struct {
	b         *Builder
	entity    *EntityType
	ownership *ForeignKeyBuilder
	actions   [phaseCount][]func() error
}

func (e *EntityBuilder) later(phase int, f func() error) {
	e.actions[phase] = append(e.actions[phase], f)
}

// Metadata returns the entity type being built. Its references are only
// complete after Build.
func (e *EntityBuilder) Metadata() *EntityType { return e.entity }

// HasBase sets the base type.
func (e *EntityBuilder) HasBase(name string) *EntityBuilder {
	e.later(phaseHierarchy, func() error {
		base := e.b.model.FindEntityType(name)
		if base == nil {
			return fmt.Errorf("unknown base type %q", name)
		}
		for t := base; t != nil; t = t.Base {
			if t == e.entity {
				return fmt.Errorf("base type %q creates an inheritance cycle", name)
			}
		}
		e.entity.Base = base
		base.derived = append(base.derived, e.entity)
		return nil
	})
	return e
}

// Abstract marks the type as not instantiable.
func (e *EntityBuilder) Abstract() *EntityBuilder {
	e.entity.Abstract = true
	return e
}

// UseStrategy sets the inheritance mapping strategy.
func (e *EntityBuilder) UseStrategy(s MappingStrategy) *EntityBuilder {
	e.entity.Strategy = s
	return e
}

// HasDiscriminator makes the named property of this root type the
// discriminator.
func (e *EntityBuilder) HasDiscriminator(property string) *EntityBuilder {
	e.later(phaseMembers, func() error {
		p := e.entity.FindDeclaredProperty(property)
		if p == nil {
			return fmt.Errorf("unknown discriminator property %q", property)
		}
		e.entity.Discriminator = p
		return nil
	})
	return e
}

// HasDiscriminatorValue sets the discriminator value of this type.
func (e *EntityBuilder) HasDiscriminatorValue(v any) *EntityBuilder {
	e.entity.DiscriminatorValue = v
	return e
}

// ToTable maps the type to a table. An empty name unmaps it.
func (e *EntityBuilder) ToTable(name, schema string) *EntityBuilder {
	e.entity.Table = &ObjectName{Name: name, Schema: schema}
	return e
}

// ToView maps the type to a view.
func (e *EntityBuilder) ToView(name, schema string) *EntityBuilder {
	e.entity.View = &ObjectName{Name: name, Schema: schema}
	return e
}

// ToFunction maps the type to a table-valued function.
func (e *EntityBuilder) ToFunction(name string) *EntityBuilder {
	e.entity.Function = &ObjectName{Name: name}
	return e
}

// ToSQLQuery maps the type to a SQL query.
func (e *EntityBuilder) ToSQLQuery(sql string) *EntityBuilder {
	e.entity.SQLQuery = sql
	return e
}

// ToJSON stores this owned type in the given JSON column of its owner.
func (e *EntityBuilder) ToJSON(column string) *EntityBuilder {
	e.entity.ContainerColumn = column
	return e
}

// HasJSONPropertyName names this owned type inside its owner's JSON document.
func (e *EntityBuilder) HasJSONPropertyName(name string) *EntityBuilder {
	e.entity.JSONPropertyName = name
	return e
}

// Comment sets the table comment.
func (e *EntityBuilder) Comment(c string) *EntityBuilder {
	e.entity.Comment = c
	return e
}

// ExcludeFromMigrations marks the table as managed outside migrations.
func (e *EntityBuilder) ExcludeFromMigrations() *EntityBuilder {
	e.entity.ExcludedFromMigrations = true
	return e
}

// SplitToTable maps the listed properties to a table fragment.
func (e *EntityBuilder) SplitToTable(name, schema string, properties ...string) *EntityBuilder {
	return e.split(TableID(name, schema), properties)
}

// SplitToView maps the listed properties to a view fragment.
func (e *EntityBuilder) SplitToView(name, schema string, properties ...string) *EntityBuilder {
	return e.split(ViewID(name, schema), properties)
}

func (e *EntityBuilder) split(so StoreObjectIdentifier, properties []string) *EntityBuilder {
	f := &MappingFragment{EntityType: e.entity, StoreObject: so}
	e.entity.Fragments = append(e.entity.Fragments, f)
	e.later(phaseMembers, func() error {
		if so.Schema == "" {
			so.Schema = e.b.model.DefaultSchema
			f.StoreObject = so
		}
		for _, name := range properties {
			p := e.entity.FindProperty(name)
			if p == nil {
				return fmt.Errorf("unknown property %q in fragment %s", name, so.DisplayName())
			}
			if p.FindOverride(so) == nil {
				p.Overrides = append(p.Overrides, &PropertyOverride{StoreObject: so})
			}
		}
		return nil
	})
	return e
}

// Property returns the builder of the named property, declaring it on first use.
func (e *EntityBuilder) Property(name string, t Type) *PropertyBuilder {
	if p := e.entity.FindDeclaredProperty(name); p != nil {
		return &PropertyBuilder{e: e, p: p}
	}
	p := &Property{Name: name, Type: t, DeclaringType: e.entity}
	e.entity.Properties = append(e.entity.Properties, p)
	e.later(phaseHierarchy, func() error {
		for _, b := range e.entity.AllBaseTypes() {
			if b.FindDeclaredProperty(name) != nil {
				return fmt.Errorf("property %q is already declared on base type %q", name, b.Name)
			}
		}
		return nil
	})
	return &PropertyBuilder{e: e, p: p}
}

// HasKey sets the primary key.
func (e *EntityBuilder) HasKey(properties ...string) *KeyBuilder {
	k := &Key{DeclaringType: e.entity}
	e.later(phaseKeys, func() error {
		if e.entity.Base != nil {
			return errors.New("a primary key can only be declared on the root type")
		}
		props, err := e.resolve(properties)
		if err != nil {
			return err
		}
		k.Properties = props
		e.entity.Keys = append([]*Key{k}, e.entity.Keys...)
		e.entity.PrimaryKey = k
		return nil
	})
	return &KeyBuilder{k: k}
}

// HasAlternateKey adds an alternate key.
func (e *EntityBuilder) HasAlternateKey(properties ...string) *KeyBuilder {
	k := &Key{DeclaringType: e.entity}
	e.later(phaseKeys, func() error {
		props, err := e.resolve(properties)
		if err != nil {
			return err
		}
		k.Properties = props
		e.entity.Keys = append(e.entity.Keys, k)
		return nil
	})
	return &KeyBuilder{k: k}
}

// HasForeignKey adds a foreign key over the listed properties referencing
// the primary key of principal.
func (e *EntityBuilder) HasForeignKey(principal string, properties ...string) *ForeignKeyBuilder {
	fk := &ForeignKey{DeclaringType: e.entity, DeleteBehavior: ClientSetNull}
	fb := &ForeignKeyBuilder{fk: fk}
	e.later(phaseRelationships, func() error {
		return e.addForeignKey(fb, principal, properties)
	})
	return fb
}

func (e *EntityBuilder) addForeignKey(fb *ForeignKeyBuilder, principal string, properties []string) error {
	fk := fb.fk
	pt := e.b.model.FindEntityType(principal)
	if pt == nil {
		return fmt.Errorf("unknown principal type %q", principal)
	}
	props, err := e.resolve(properties)
	if err != nil {
		return err
	}
	fk.PrincipalType = pt
	fk.Properties = props
	if fb.principalKey != nil {
		pk, err := (&EntityBuilder{b: e.b, entity: pt}).resolve(fb.principalKey)
		if err != nil {
			return err
		}
		for _, k := range pt.GetKeys() {
			if sameProperties(k.Properties, pk) {
				fk.PrincipalKey = k
			}
		}
		if fk.PrincipalKey == nil {
			return fmt.Errorf("principal key %v is not a key of %q", fb.principalKey, principal)
		}
	} else if fk.PrincipalKey = pt.FindPrimaryKey(); fk.PrincipalKey == nil {
		return fmt.Errorf("principal type %q has no primary key", principal)
	}
	if len(fk.PrincipalKey.Properties) != len(props) {
		return fmt.Errorf("foreign key %v has %d properties, principal key has %d",
			properties, len(props), len(fk.PrincipalKey.Properties))
	}
	e.entity.ForeignKeys = append(e.entity.ForeignKeys, fk)
	if fk.DependentToPrincipal != "" {
		e.entity.Navigations = append(e.entity.Navigations, &Navigation{
			Name: fk.DependentToPrincipal, DeclaringType: e.entity, ForeignKey: fk, OnDependent: true,
		})
	}
	if fk.PrincipalToDependent != "" {
		pt.Navigations = append(pt.Navigations, &Navigation{
			Name: fk.PrincipalToDependent, DeclaringType: pt, ForeignKey: fk, Collection: !fk.Unique,
		})
	}
	return nil
}

// OwnsOne declares an owned reference stored with this type and returns
// its builder. The owned type is named "<Owner>.<navigation>#<type>".
func (e *EntityBuilder) OwnsOne(navigation, typeName string) *EntityBuilder {
	return e.owns(navigation, typeName, true)
}

// OwnsMany declares an owned collection and returns its builder.
func (e *EntityBuilder) OwnsMany(navigation, typeName string) *EntityBuilder {
	return e.owns(navigation, typeName, false)
}

func (e *EntityBuilder) owns(navigation, typeName string, unique bool) *EntityBuilder {
	owned := e.b.Entity(e.entity.Name + "." + navigation + "#" + typeName)
	fk := &ForeignKey{
		DeclaringType:        owned.entity,
		Unique:               unique,
		Required:             true,
		Ownership:            true,
		DeleteBehavior:       Cascade,
		PrincipalToDependent: navigation,
	}
	owned.ownership = &ForeignKeyBuilder{fk: fk}
	owned.later(phaseOwnership, func() error {
		return owned.applyOwnership(e.entity)
	})
	return owned
}

// Ownership returns the ownership foreign key builder of an owned type, or
// nil for types that are not owned.
func (e *EntityBuilder) Ownership() *ForeignKeyBuilder { return e.ownership }

// applyOwnership synthesizes the key and ownership foreign key of an owned
// type: the owner's key properties, plus an ordinal "Id" for collections.
func (e *EntityBuilder) applyOwnership(owner *EntityType) error {
	fk := e.ownership.fk
	ownerKey := owner.FindPrimaryKey()
	if ownerKey == nil {
		return fmt.Errorf("owner %q has no primary key", owner.Name)
	}
	props := make([]*Property, len(ownerKey.Properties))
	for i, kp := range ownerKey.Properties {
		name := owner.ShortName() + kp.Name
		p := e.entity.FindDeclaredProperty(name)
		if p == nil {
			p = &Property{Name: name, Type: kp.Type, DeclaringType: e.entity}
			e.entity.Properties = append(e.entity.Properties, p)
		}
		props[i] = p
	}
	fk.PrincipalType = owner
	fk.PrincipalKey = ownerKey
	fk.Properties = props
	e.entity.ForeignKeys = append(e.entity.ForeignKeys, fk)
	owner.Navigations = append(owner.Navigations, &Navigation{
		Name: fk.PrincipalToDependent, DeclaringType: owner, ForeignKey: fk, Collection: !fk.Unique,
	})
	if e.entity.PrimaryKey != nil {
		return nil
	}
	keyProps := append([]*Property(nil), props...)
	if !fk.Unique {
		ordinal := e.entity.FindDeclaredProperty("Id")
		if ordinal == nil {
			ordinal = &Property{
				Name: "Id", Type: TypeInt32, DeclaringType: e.entity,
				ValueGenerated: OnAdd, OrdinalKey: true,
			}
			e.entity.Properties = append(e.entity.Properties, ordinal)
		}
		keyProps = append(keyProps, ordinal)
	}
	k := &Key{DeclaringType: e.entity, Properties: keyProps}
	e.entity.Keys = append([]*Key{k}, e.entity.Keys...)
	e.entity.PrimaryKey = k
	return nil
}

// HasIndex adds an index over the listed properties.
func (e *EntityBuilder) HasIndex(properties ...string) *IndexBuilder {
	ix := &Index{DeclaringType: e.entity}
	e.later(phaseMembers, func() error {
		props, err := e.resolve(properties)
		if err != nil {
			return err
		}
		ix.Properties = props
		e.entity.Indexes = append(e.entity.Indexes, ix)
		return nil
	})
	return &IndexBuilder{ix: ix}
}

// HasCheckConstraint adds a check constraint and returns it for further
// configuration.
func (e *EntityBuilder) HasCheckConstraint(modelName, sql string) *CheckConstraint {
	c := &CheckConstraint{ModelName: modelName, SQL: sql, DeclaringType: e.entity}
	e.entity.CheckConstraints = append(e.entity.CheckConstraints, c)
	return c
}

// HasTrigger adds a trigger and returns it for further configuration.
func (e *EntityBuilder) HasTrigger(modelName string) *Trigger {
	t := &Trigger{ModelName: modelName, DeclaringType: e.entity}
	e.entity.Triggers = append(e.entity.Triggers, t)
	return t
}

// InsertUsingStoredProcedure saves new entities through a stored procedure.
func (e *EntityBuilder) InsertUsingStoredProcedure(name string) *StoredProcedureBuilder {
	e.entity.InsertSproc = &StoredProcedure{Name: name, Kind: InsertStoredProcedure, EntityType: e.entity}
	return &StoredProcedureBuilder{sp: e.entity.InsertSproc}
}

// UpdateUsingStoredProcedure saves modified entities through a stored procedure.
func (e *EntityBuilder) UpdateUsingStoredProcedure(name string) *StoredProcedureBuilder {
	e.entity.UpdateSproc = &StoredProcedure{Name: name, Kind: UpdateStoredProcedure, EntityType: e.entity}
	return &StoredProcedureBuilder{sp: e.entity.UpdateSproc}
}

// DeleteUsingStoredProcedure deletes entities through a stored procedure.
func (e *EntityBuilder) DeleteUsingStoredProcedure(name string) *StoredProcedureBuilder {
	e.entity.DeleteSproc = &StoredProcedure{Name: name, Kind: DeleteStoredProcedure, EntityType: e.entity}
	return &StoredProcedureBuilder{sp: e.entity.DeleteSproc}
}

func (e *EntityBuilder) resolve(names []string) ([]*Property, error) {
	if len(names) == 0 {
		return nil, errors.New("empty property list")
	}
	props := make([]*Property, len(names))
	for i, n := range names {
		p := e.entity.FindProperty(n)
		if p == nil {
			return nil, fmt.Errorf("unknown property %q", n)
		}
		props[i] = p
	}
	return props, nil
}

// PropertyBuilder configures one property.
type PropertyBuilder struct {
	e *EntityBuilder
	p *Property
}

// Metadata returns the property being built.
func (b *PropertyBuilder) Metadata() *Property { return b.p }

// Nullable allows null values.
func (b *PropertyBuilder) Nullable() *PropertyBuilder { b.p.Nullable = true; return b }

// ProviderType stores the value converted to t.
func (b *PropertyBuilder) ProviderType(t Type) *PropertyBuilder { b.p.ProviderType = t; return b }

// MaxLength sets the maximum length.
func (b *PropertyBuilder) MaxLength(n int) *PropertyBuilder { b.p.MaxLength = &n; return b }

// Precision sets precision and scale.
func (b *PropertyBuilder) Precision(precision, scale int) *PropertyBuilder {
	b.p.Precision, b.p.Scale = &precision, &scale
	return b
}

// Unicode sets whether the column stores unicode text.
func (b *PropertyBuilder) Unicode(v bool) *PropertyBuilder { b.p.Unicode = &v; return b }

// FixedLength sets whether the column has a fixed length.
func (b *PropertyBuilder) FixedLength(v bool) *PropertyBuilder { b.p.FixedLength = &v; return b }

// HasColumnName sets the column name.
func (b *PropertyBuilder) HasColumnName(name string) *PropertyBuilder { b.p.ColumnName = name; return b }

// HasColumnNameIn sets the column name used in one table or view only.
func (b *PropertyBuilder) HasColumnNameIn(so StoreObjectIdentifier, name string) *PropertyBuilder {
	if o := b.p.FindOverride(so); o != nil {
		o.ColumnName = name
		return b
	}
	b.p.Overrides = append(b.p.Overrides, &PropertyOverride{StoreObject: so, ColumnName: name})
	return b
}

// HasColumnType sets the store type.
func (b *PropertyBuilder) HasColumnType(t string) *PropertyBuilder { b.p.ColumnType = t; return b }

// HasColumnOrder sets the column position.
func (b *PropertyBuilder) HasColumnOrder(n int) *PropertyBuilder { b.p.ColumnOrder = &n; return b }

// Comment sets the column comment.
func (b *PropertyBuilder) Comment(c string) *PropertyBuilder { b.p.Comment = c; return b }

// Collation sets the column collation.
func (b *PropertyBuilder) Collation(c string) *PropertyBuilder { b.p.Collation = c; return b }

// HasDefaultValue sets the column default value.
func (b *PropertyBuilder) HasDefaultValue(v any) *PropertyBuilder {
	b.p.HasDefaultValue, b.p.DefaultValue = true, v
	return b
}

// HasDefaultValueSQL sets the column default expression.
func (b *PropertyBuilder) HasDefaultValueSQL(sql string) *PropertyBuilder {
	b.p.DefaultValueSQL = sql
	return b
}

// HasComputedColumnSQL makes the column computed; stored may be nil.
func (b *PropertyBuilder) HasComputedColumnSQL(sql string, stored *bool) *PropertyBuilder {
	b.p.ComputedSQL, b.p.Stored = sql, stored
	return b
}

// ValueGenerated sets when the store generates values.
func (b *PropertyBuilder) ValueGenerated(v ValueGenerated) *PropertyBuilder {
	b.p.ValueGenerated = v
	return b
}

// SaveBehavior sets the before and after save behaviors.
func (b *PropertyBuilder) SaveBehavior(before, after SaveBehavior) *PropertyBuilder {
	b.p.BeforeSave, b.p.AfterSave = before, after
	return b
}

// ConcurrencyToken marks the property as a concurrency token.
func (b *PropertyBuilder) ConcurrencyToken() *PropertyBuilder { b.p.ConcurrencyToken = true; return b }

// HasJSONPropertyName sets the name used inside JSON documents.
func (b *PropertyBuilder) HasJSONPropertyName(name string) *PropertyBuilder {
	b.p.JSONPropertyName = name
	return b
}

// KeyBuilder configures a key.
type KeyBuilder struct{ k *Key }

// HasName sets the constraint name.
func (b *KeyBuilder) HasName(name string) *KeyBuilder { b.k.Name = name; return b }

// ForeignKeyBuilder configures a foreign key.
type ForeignKeyBuilder struct {
	fk           *ForeignKey
	principalKey []string
}

// Metadata returns the foreign key being built.
func (b *ForeignKeyBuilder) Metadata() *ForeignKey { return b.fk }

// HasPrincipalKey references the principal key over the listed properties
// instead of the primary key.
func (b *ForeignKeyBuilder) HasPrincipalKey(properties ...string) *ForeignKeyBuilder {
	b.principalKey = properties
	return b
}

// HasName sets the constraint name.
func (b *ForeignKeyBuilder) HasName(name string) *ForeignKeyBuilder { b.fk.Name = name; return b }

// Unique makes the relationship one-to-one.
func (b *ForeignKeyBuilder) Unique() *ForeignKeyBuilder { b.fk.Unique = true; return b }

// Required makes the principal mandatory for every dependent.
func (b *ForeignKeyBuilder) Required() *ForeignKeyBuilder { b.fk.Required = true; return b }

// RequiredDependent makes the dependent mandatory for every principal of a
// one-to-one relationship.
func (b *ForeignKeyBuilder) RequiredDependent() *ForeignKeyBuilder {
	b.fk.RequiredDependent = true
	return b
}

// OnDelete sets the delete behavior.
func (b *ForeignKeyBuilder) OnDelete(d DeleteBehavior) *ForeignKeyBuilder {
	b.fk.DeleteBehavior = d
	return b
}

// WithNavigations names the navigations on both ends; empty names are skipped.
func (b *ForeignKeyBuilder) WithNavigations(toPrincipal, toDependent string) *ForeignKeyBuilder {
	b.fk.DependentToPrincipal, b.fk.PrincipalToDependent = toPrincipal, toDependent
	return b
}

// IndexBuilder configures an index.
type IndexBuilder struct{ ix *Index }

// HasName sets the model name.
func (b *IndexBuilder) HasName(name string) *IndexBuilder { b.ix.Name = name; return b }

// HasDatabaseName sets the store name.
func (b *IndexBuilder) HasDatabaseName(name string) *IndexBuilder { b.ix.DatabaseName = name; return b }

// Unique makes the index unique.
func (b *IndexBuilder) Unique() *IndexBuilder { b.ix.Unique = true; return b }

// HasFilter sets the filter predicate.
func (b *IndexBuilder) HasFilter(sql string) *IndexBuilder { b.ix.Filter = sql; return b }

// Descending sets per column sort orders; no arguments sorts every column
// descending.
func (b *IndexBuilder) Descending(desc ...bool) *IndexBuilder {
	if desc == nil {
		desc = []bool{}
	}
	b.ix.Descending = desc
	return b
}

// StoredProcedureBuilder configures a stored procedure mapping. Property
// names are checked by validation, not here.
type StoredProcedureBuilder struct{ sp *StoredProcedure }

// Metadata returns the stored procedure being built.
func (b *StoredProcedureBuilder) Metadata() *StoredProcedure { return b.sp }

// HasSchema sets the schema.
func (b *StoredProcedureBuilder) HasSchema(schema string) *StoredProcedureBuilder {
	b.sp.Schema = schema
	return b
}

// HasParameter adds an input parameter bound to the current value.
func (b *StoredProcedureBuilder) HasParameter(property string) *StoredProcedureBuilder {
	return b.param(&StoredProcedureParameter{Name: property, PropertyName: property})
}

// HasOutputParameter adds an output parameter bound to the current value.
func (b *StoredProcedureBuilder) HasOutputParameter(property string) *StoredProcedureBuilder {
	return b.param(&StoredProcedureParameter{Name: property, PropertyName: property, Direction: Output})
}

// HasOriginalValueParameter adds an input parameter bound to the original value.
func (b *StoredProcedureBuilder) HasOriginalValueParameter(property string) *StoredProcedureBuilder {
	return b.param(&StoredProcedureParameter{
		Name: property + "_Original", PropertyName: property, ForOriginalValue: true,
	})
}

// HasRowsAffectedParameter adds an output parameter for the affected row count.
func (b *StoredProcedureBuilder) HasRowsAffectedParameter() *StoredProcedureBuilder {
	return b.param(&StoredProcedureParameter{Name: "RowsAffected", ForRowsAffected: true, Direction: Output})
}

// HasResultColumn adds a result column bound to the property.
func (b *StoredProcedureBuilder) HasResultColumn(property string) *StoredProcedureBuilder {
	b.sp.ResultColumns = append(b.sp.ResultColumns, &StoredProcedureResultColumn{Name: property, PropertyName: property})
	return b
}

// HasRowsAffectedResultColumn adds a result column for the affected row count.
func (b *StoredProcedureBuilder) HasRowsAffectedResultColumn() *StoredProcedureBuilder {
	b.sp.ResultColumns = append(b.sp.ResultColumns, &StoredProcedureResultColumn{Name: "RowsAffected", ForRowsAffected: true})
	return b
}

// HasRowsAffectedReturnValue reports the affected row count as return value.
func (b *StoredProcedureBuilder) HasRowsAffectedReturnValue() *StoredProcedureBuilder {
	b.sp.RowsAffectedReturned = true
	return b
}

func (b *StoredProcedureBuilder) param(p *StoredProcedureParameter) *StoredProcedureBuilder {
	b.sp.Parameters = append(b.sp.Parameters, p)
	return b
}
