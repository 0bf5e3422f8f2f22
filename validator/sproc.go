package validator

import (
	"slices"

	"github.com/syssam/relmap"
	"github.com/syssam/relmap/diagnostics"
	"github.com/syssam/relmap/metadata"
)

// ValidateStoredProcedures checks the insert, update and delete stored
// procedures of every entity type: each has a name, is used by a single
// hierarchy, and binds every property it must send or receive exactly once.
func (v *Validator) ValidateStoredProcedures(m *metadata.Model, logger *diagnostics.Logger) error {
	sprocs := newGroups[metadata.StoreObjectIdentifier, *metadata.EntityType]()
	for _, e := range m.EntityTypes() {
		count := 0
		for _, kind := range []metadata.StoreObjectType{
			metadata.DeleteStoredProcedure,
			metadata.InsertStoredProcedure,
			metadata.UpdateStoredProcedure,
		} {
			sp := e.GetDeclaredStoredProcedure(kind)
			if sp == nil {
				continue
			}
			count++
			so, ok := sp.StoreObject()
			if !ok {
				return fail(relmap.StoredProcedureNoName,
					"The entity type '%s' was configured to use '%s', but the store name was not specified. Configure the stored procedure name explicitly.",
					e.DisplayName(), kind)
			}
			sprocs.add(so, e)
			if err := validateSproc(sp, so, logger); err != nil {
				return err
			}
		}
		if count > 0 && count < 3 && e.GetTableName() == "" {
			return fail(relmap.StoredProcedureUnmapped,
				"The entity type '%s' was configured to use some stored procedures and is not mapped to any table. An entity type that isn't mapped to a table must be mapped to insert, update and delete stored procedures.",
				e.DisplayName())
		}
	}
	for _, so := range sprocs.keys {
		types := sprocs.values[so]
		for _, e := range types[1:] {
			if e.RootType() != types[0].RootType() {
				return fail(relmap.StoredProcedureTableSharing,
					"Entity types '%s' and '%s' were configured to use '%s', stored procedure sharing is not supported. Specify different stored procedures for these types.",
					types[0].DisplayName(), e.DisplayName(), so.DisplayName())
			}
		}
	}
	return nil
}

// sprocProperties holds the properties a stored procedure may bind, in
// declaration order.
type sprocProperties struct {
	list   []*metadata.Property
	byName map[string]*metadata.Property
}

func (s *sprocProperties) add(p *metadata.Property) {
	if _, ok := s.byName[p.Name]; ok {
		return
	}
	s.byName[p.Name] = p
	s.list = append(s.list, p)
}

// mappableProperties returns the properties the stored procedure of e must
// cover under the hierarchy's mapping strategy.
func mappableProperties(e *metadata.EntityType, kind metadata.StoreObjectType) *sprocProperties {
	props := &sprocProperties{byName: map[string]*metadata.Property{}}
	switch e.GetMappingStrategy() {
	case metadata.TPH:
		for _, p := range e.GetProperties() {
			props.add(p)
		}
		for _, p := range e.DerivedProperties() {
			props.add(p)
		}
	case metadata.TPC:
		for _, p := range e.GetProperties() {
			props.add(p)
		}
	case metadata.TPT:
		for _, p := range e.Properties {
			props.add(p)
		}
		// Abstract bases without their own procedure are saved through e.
		for b := e.Base; b != nil && b.IsAbstract(); b = b.Base {
			if _, ok := b.StoreObject(kind); ok {
				break
			}
			for _, p := range b.Properties {
				props.add(p)
			}
		}
		if pk := e.FindPrimaryKey(); pk != nil {
			for _, p := range pk.Properties {
				props.add(p)
			}
		}
	}
	return props
}

func validateSproc(sp *metadata.StoredProcedure, so metadata.StoreObjectIdentifier, logger *diagnostics.Logger) error {
	e := sp.EntityType
	name := so.DisplayName()
	if e.FindPrimaryKey() == nil {
		return fail(relmap.StoredProcedureKeyless,
			"The keyless entity type '%s' was configured to use '%s'. An entity type requires a primary key to be able to be mapped to a stored procedure.",
			e.DisplayName(), name)
	}
	if err := validateRowsAffected(sp, so); err != nil {
		return err
	}

	props := mappableProperties(e, so.Type)
	var generatedFlag metadata.ValueGenerated
	switch so.Type {
	case metadata.InsertStoredProcedure:
		generatedFlag = metadata.OnAdd
	case metadata.UpdateStoredProcedure:
		generatedFlag = metadata.OnUpdate
	case metadata.DeleteStoredProcedure, metadata.Table, metadata.View, metadata.Function, metadata.SQLQuery:
	}
	isGenerated := func(p *metadata.Property) bool {
		return generatedFlag != 0 && p.GetValueGenerated().Has(generatedFlag)
	}
	var generated []*metadata.Property
	for _, p := range props.list {
		if isGenerated(p) {
			generated = append(generated, p)
		}
	}

	resultColumns := map[string]bool{}
	resultProperties := map[string]bool{}
	for _, c := range sp.ResultColumns {
		if c.ForRowsAffected {
			continue
		}
		p, ok := props.byName[c.PropertyName]
		if !ok {
			return fail(relmap.StoredProcedureResultColumnNotFound,
				"The property '%s' was configured as a result column of '%s', but it is not mapped to the entity type '%s'.",
				c.PropertyName, name, e.DisplayName())
		}
		switch so.Type {
		case metadata.DeleteStoredProcedure:
			return fail(relmap.StoredProcedureResultColumnDelete,
				"The property '%s.%s' is mapped to a result column of the stored procedure '%s', but result columns are not supported for delete stored procedures.",
				e.DisplayName(), c.PropertyName, name)
		case metadata.InsertStoredProcedure, metadata.UpdateStoredProcedure:
			if !isGenerated(p) {
				return fail(relmap.StoredProcedureResultColumnNotGenerated,
					"The property '%s.%s' is mapped to a result column of the stored procedure '%s', but it is not configured as store-generated.",
					e.DisplayName(), c.PropertyName, name)
			}
		case metadata.Table, metadata.View, metadata.Function, metadata.SQLQuery:
		}
		if resultColumns[c.Name] {
			return fail(relmap.StoredProcedureDuplicateResultColumnName,
				"The result column '%s' cannot be added to the stored procedure '%s' mapped to '%s' because another result column with this name already exists.",
				c.Name, name, e.DisplayName())
		}
		resultColumns[c.Name] = true
		resultProperties[p.Name] = true
		generated = slices.DeleteFunc(generated, func(g *metadata.Property) bool { return g == p })
	}

	var (
		paramNames = map[string]bool{}
		current    = slices.Clone(props.list)
		original   = slices.Clone(props.list)
	)
	for _, param := range sp.Parameters {
		if paramNames[param.Name] {
			return fail(relmap.StoredProcedureDuplicateParameterName,
				"The parameter '%s' cannot be added to the stored procedure '%s' because another parameter with this name already exists.",
				param.Name, name)
		}
		paramNames[param.Name] = true
		if param.ForRowsAffected {
			continue
		}
		p, ok := props.byName[param.PropertyName]
		if !ok {
			return fail(relmap.StoredProcedureParameterNotFound,
				"The property '%s' was configured as a parameter of '%s', but it is not mapped to the entity type '%s'.",
				param.PropertyName, name, e.DisplayName())
		}
		if param.ForOriginalValue {
			if so.Type == metadata.InsertStoredProcedure {
				return fail(relmap.StoredProcedureOriginalValueParameterOnInsert,
					"The parameter '%s' of the stored procedure '%s' is bound to an original value, but insert stored procedures cannot use original values.",
					param.Name, name)
			}
			if !slices.Contains(original, p) {
				return fail(relmap.StoredProcedureDuplicateOriginalValueParameter,
					"The original value parameter for the property '%s' cannot be added to the stored procedure '%s' because another original value parameter already exists for this property.",
					p.Name, name)
			}
			original = slices.DeleteFunc(original, func(o *metadata.Property) bool { return o == p })
		} else {
			if so.Type == metadata.DeleteStoredProcedure {
				return fail(relmap.StoredProcedureCurrentValueParameterOnDelete,
					"The parameter '%s' of the stored procedure '%s' is bound to a current value, but delete stored procedures can only use original values.",
					param.Name, name)
			}
			if param.Direction.IsInput() {
				if so.Type == metadata.InsertStoredProcedure && p.GetBeforeSaveBehavior() != metadata.Save {
					return fail(relmap.StoredProcedureInputParameterForInsertNonSave,
						"The input parameter '%s' of the insert stored procedure '%s' is mapped to the property '%s' of the entity type '%s', but that property is configured with BeforeSaveBehavior '%s'.",
						param.Name, name, p.Name, e.DisplayName(), p.GetBeforeSaveBehavior())
				}
				if so.Type == metadata.UpdateStoredProcedure && !p.IsPrimaryKey() && p.GetAfterSaveBehavior() != metadata.Save {
					return fail(relmap.StoredProcedureInputParameterForUpdateNonSave,
						"The input parameter '%s' of the update stored procedure '%s' is mapped to the property '%s' of the entity type '%s', but that property is configured with AfterSaveBehavior '%s'.",
						param.Name, name, p.Name, e.DisplayName(), p.GetAfterSaveBehavior())
				}
			}
			if !slices.Contains(current, p) {
				return fail(relmap.StoredProcedureDuplicateParameter,
					"The parameter for the property '%s' cannot be added to the stored procedure '%s' because another parameter already exists for this property.",
					p.Name, name)
			}
			current = slices.DeleteFunc(current, func(c *metadata.Property) bool { return c == p })
		}
		if param.Direction.IsOutput() {
			if !isGenerated(p) {
				return fail(relmap.StoredProcedureOutputParameterNotGenerated,
					"The output parameter '%s' of the stored procedure '%s' is mapped to the property '%s.%s', which is not configured as store-generated.",
					param.Name, name, e.DisplayName(), p.Name)
			}
			if resultProperties[p.Name] {
				return fail(relmap.StoredProcedureOutputParameterConflict,
					"The property '%s.%s' is mapped to an output parameter of the stored procedure '%s', but it is also mapped to a result column. A store-generated property can only be mapped to one of them.",
					e.DisplayName(), p.Name, name)
			}
			generated = slices.DeleteFunc(generated, func(g *metadata.Property) bool { return g == p })
		}
	}

	if len(generated) > 0 {
		return fail(relmap.StoredProcedureGeneratedPropertiesNotMapped,
			"The entity type '%s' is mapped to the stored procedure '%s', but the store-generated properties %s are not mapped to any output parameter or result column.",
			e.DisplayName(), name, metadata.FormatProperties(generated))
	}
	if missing := missingSprocProperties(so.Type, current, original, resultProperties); len(missing) > 0 {
		return fail(relmap.StoredProcedurePropertiesNotMapped,
			"The entity type '%s' is mapped to the stored procedure '%s', but the properties %s are not mapped to any parameter or result column.",
			e.DisplayName(), name, metadata.FormatProperties(missing))
	}
	// Concurrency tokens without an original value are only reported for
	// procedures that report rows affected.
	if so.Type == metadata.InsertStoredProcedure || !hasRowsAffected(sp) {
		return nil
	}
	for _, p := range original {
		if !p.ConcurrencyToken {
			continue
		}
		if err := logger.StoredProcedureConcurrencyTokenNotMapped(e, p, name); err != nil {
			return err
		}
	}
	return nil
}

// missingSprocProperties returns the properties that must be bound but are
// not. Inserts send every saved property; updates send every saved property
// and locate the row by its key; deletes only locate the row.
func missingSprocProperties(kind metadata.StoreObjectType, current, original []*metadata.Property, results map[string]bool) []*metadata.Property {
	var missing []*metadata.Property
	switch kind {
	case metadata.InsertStoredProcedure:
		for _, p := range current {
			if p.GetBeforeSaveBehavior() == metadata.Save && !results[p.Name] {
				missing = append(missing, p)
			}
		}
	case metadata.UpdateStoredProcedure:
		for _, p := range current {
			if p.IsPrimaryKey() {
				if slices.Contains(original, p) {
					missing = append(missing, p)
				}
				continue
			}
			if p.GetAfterSaveBehavior() == metadata.Save && !results[p.Name] {
				missing = append(missing, p)
			}
		}
	case metadata.DeleteStoredProcedure:
		for _, p := range original {
			if p.IsPrimaryKey() {
				missing = append(missing, p)
			}
		}
	case metadata.Table, metadata.View, metadata.Function, metadata.SQLQuery:
	}
	return missing
}

func hasRowsAffected(sp *metadata.StoredProcedure) bool {
	if sp.RowsAffectedReturned {
		return true
	}
	for _, p := range sp.Parameters {
		if p.ForRowsAffected {
			return true
		}
	}
	for _, c := range sp.ResultColumns {
		if c.ForRowsAffected {
			return true
		}
	}
	return false
}

func validateRowsAffected(sp *metadata.StoredProcedure, so metadata.StoreObjectIdentifier) error {
	uses := 0
	if sp.RowsAffectedReturned {
		uses++
	}
	for _, p := range sp.Parameters {
		if p.ForRowsAffected {
			uses++
		}
	}
	for _, c := range sp.ResultColumns {
		if c.ForRowsAffected {
			uses++
		}
	}
	switch {
	case uses == 0:
		return nil
	case so.Type == metadata.InsertStoredProcedure:
		return fail(relmap.StoredProcedureRowsAffectedForInsert,
			"A rows affected parameter, result column or return value cannot be configured on the stored procedure '%s' because it is used for insertion. Rows affected values are only allowed on stored procedures performing updates or deletions.",
			so.DisplayName())
	case uses > 1:
		return fail(relmap.StoredProcedureRowsAffectedReturnConflicting,
			"The stored procedure '%s' reports the number of affected rows more than once. Use only one of a rows affected parameter, result column or return value.",
			so.DisplayName())
	}
	return nil
}
