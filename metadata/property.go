package metadata

// Property is a scalar member of an entity type.
type Property struct {
	Name          string
	DeclaringType *EntityType
	Type          Type
	// ProviderType is the type the value converter stores; empty when no
	// converter is configured.
	ProviderType Type
	Nullable     bool

	// ValueGenerated is the explicitly configured generation; Never defers
	// to the store generation conventions.
	ValueGenerated ValueGenerated
	BeforeSave     SaveBehavior
	AfterSave      SaveBehavior

	MaxLength   *int
	Precision   *int
	Scale       *int
	Unicode     *bool
	FixedLength *bool

	ColumnName  string
	ColumnType  string
	ColumnOrder *int
	Comment     string
	Collation   string

	HasDefaultValue bool
	DefaultValue    any
	DefaultValueSQL string
	ComputedSQL     string
	Stored          *bool

	ConcurrencyToken bool
	JSONPropertyName string
	// OrdinalKey marks the synthesized key property of an owned JSON
	// collection element.
	OrdinalKey bool

	// Overrides holds per store object configuration; a non-key property
	// overridden for a fragment of its type is mapped to that fragment only.
	Overrides []*PropertyOverride
}

// DisplayName returns "Entity.Property".
func (p *Property) DisplayName() string { return p.DeclaringType.DisplayName() + "." + p.Name }

// IsPrimaryKey reports whether p is part of the hierarchy's primary key.
func (p *Property) IsPrimaryKey() bool {
	pk := p.DeclaringType.FindPrimaryKey()
	return pk != nil && pk.Contains(p)
}

// IsKey reports whether p is part of any key.
func (p *Property) IsKey() bool { return len(p.GetContainingKeys()) > 0 }

// GetContainingKeys returns the keys p participates in.
func (p *Property) GetContainingKeys() []*Key {
	var keys []*Key
	for _, t := range p.DeclaringType.DerivedTypesInclusive() {
		for _, k := range t.Keys {
			if k.Contains(p) {
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// IsForeignKey reports whether p is part of a foreign key.
func (p *Property) IsForeignKey() bool { return len(p.GetContainingForeignKeys()) > 0 }

// GetContainingForeignKeys returns the foreign keys p participates in.
func (p *Property) GetContainingForeignKeys() []*ForeignKey {
	var fks []*ForeignKey
	for _, t := range p.DeclaringType.DerivedTypesInclusive() {
		for _, fk := range t.ForeignKeys {
			if containsProperty(fk.Properties, p) {
				fks = append(fks, fk)
			}
		}
	}
	return fks
}

// GetContainingIndexes returns the indexes p participates in.
func (p *Property) GetContainingIndexes() []*Index {
	var idx []*Index
	for _, t := range p.DeclaringType.DerivedTypesInclusive() {
		for _, ix := range t.Indexes {
			if containsProperty(ix.Properties, p) {
				idx = append(idx, ix)
			}
		}
	}
	return idx
}

// IsInUniqueIndex reports whether p is part of a unique index.
func (p *Property) IsInUniqueIndex() bool {
	for _, ix := range p.GetContainingIndexes() {
		if ix.Unique {
			return true
		}
	}
	return false
}

// GetValueGenerated returns the effective value generation: the configured
// one, or the one implied by computed SQL and default values.
func (p *Property) GetValueGenerated() ValueGenerated {
	switch {
	case p.ValueGenerated != Never:
		return p.ValueGenerated
	case p.ComputedSQL != "":
		return OnAddOrUpdate
	case p.HasDefaultValue || p.DefaultValueSQL != "":
		return OnAdd
	}
	return Never
}

// GetBeforeSaveBehavior returns whether the value is sent on insert.
func (p *Property) GetBeforeSaveBehavior() SaveBehavior {
	if p.BeforeSave != SaveBehaviorUnset {
		return p.BeforeSave
	}
	if p.GetValueGenerated() == OnAddOrUpdate {
		return Ignore
	}
	return Save
}

// GetAfterSaveBehavior returns whether the value is sent on update.
func (p *Property) GetAfterSaveBehavior() SaveBehavior {
	if p.AfterSave != SaveBehaviorUnset {
		return p.AfterSave
	}
	if p.IsKey() {
		return Throw
	}
	if p.GetValueGenerated().Has(OnUpdate) {
		return Ignore
	}
	return Save
}

// GetProviderType returns the type stored in the column.
func (p *Property) GetProviderType() Type {
	if p.ProviderType != "" {
		return p.ProviderType
	}
	return p.Type
}

// GetColumnType returns the configured column type or the generic store
// type derived from the facets.
func (p *Property) GetColumnType() string {
	if p.ColumnType != "" {
		return p.ColumnType
	}
	return p.GetProviderType().StoreType(p.MaxLength, p.Precision, p.Scale, p.Unicode, p.FixedLength)
}

// GetJSONPropertyName returns the name of p inside a JSON document. Key
// properties of JSON types are not stored and return "" unless configured.
func (p *Property) GetJSONPropertyName() string {
	if p.JSONPropertyName != "" {
		return p.JSONPropertyName
	}
	if !p.DeclaringType.IsMappedToJSON() || p.IsKey() {
		return ""
	}
	for _, fk := range p.GetContainingForeignKeys() {
		if fk.Ownership {
			return ""
		}
	}
	return p.Name
}

// FindOverride returns the override configured for so, or nil.
func (p *Property) FindOverride(so StoreObjectIdentifier) *PropertyOverride {
	for _, o := range p.Overrides {
		if o.StoreObject == so {
			return o
		}
	}
	return nil
}

// PropertyOverride is configuration of a property specific to one store object.
type PropertyOverride struct {
	StoreObject StoreObjectIdentifier
	ColumnName  string
}

func containsProperty(props []*Property, p *Property) bool {
	for _, q := range props {
		if q == p {
			return true
		}
	}
	return false
}
