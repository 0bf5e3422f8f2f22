package validator

import (
	"strings"

	"github.com/syssam/relmap"
	"github.com/syssam/relmap/diagnostics"
	"github.com/syssam/relmap/metadata"
)

// ValidateSQLQueries checks that derived types only use the SQL query of
// their base type, and only in TPH hierarchies.
func (v *Validator) ValidateSQLQueries(m *metadata.Model, _ *diagnostics.Logger) error {
	for _, e := range m.EntityTypes() {
		query := e.GetSQLQuery()
		if query == "" || e.Base == nil {
			continue
		}
		if e.FindDiscriminatorProperty() == nil || query != e.Base.GetSQLQuery() {
			return fail(relmap.InvalidMappedSqlQueryDerivedType,
				"The entity type '%s' cannot be mapped to a SQL query because it is derived from '%s'. Only base entity types can be mapped to a SQL query.",
				e.DisplayName(), e.Base.DisplayName())
		}
	}
	return nil
}

// ValidateDbFunctions checks the functions declared on the model and the
// entity types mapped to table-valued functions.
func (v *Validator) ValidateDbFunctions(m *metadata.Model, _ *diagnostics.Logger) error {
	for _, f := range m.DbFunctions() {
		if f.Scalar {
			if f.ReturnStoreType == "" {
				return fail(relmap.DbFunctionInvalidReturnType,
					"The function '%s' has no store return type. Scalar functions must return a type that can be mapped to a store type.",
					f.DisplayName())
			}
		} else {
			e := m.FindEntityType(f.ReturnEntity)
			if e == nil || e.IsOwned() {
				return fail(relmap.DbFunctionInvalidReturnEntityType,
					"The function '%s' returns '%s', but '%s' is not a mapped entity type. Table-valued functions must return rows of a non-owned entity type.",
					f.DisplayName(), f.ReturnEntity, f.ReturnEntity)
			}
			if (e.Base != nil || len(e.DirectlyDerivedTypes()) > 0) && e.FindDiscriminatorProperty() == nil {
				return fail(relmap.TableValuedFunctionNonTph,
					"The element type of the result of '%s' is mapped to '%s'. This is not supported since '%s' is part of a hierarchy and does not contain a discriminator property.",
					f.DisplayName(), e.DisplayName(), e.DisplayName())
			}
		}
		for _, p := range f.Parameters {
			if !p.HasTypeMapping() {
				return fail(relmap.DbFunctionInvalidParameterType,
					"The parameter '%s' of the function '%s' has type '%s', which cannot be mapped to a store type.",
					p.Name, f.DisplayName(), p.Type)
			}
		}
	}
	for _, e := range m.EntityTypes() {
		name := e.GetFunctionName()
		if name == "" {
			continue
		}
		f := m.FindDbFunction(name)
		if f == nil {
			return fail(relmap.MappedFunctionNotFound,
				"The entity type '%s' is mapped to the function '%s', but no function with that name was found in the model. Ensure that the function is declared on the model.",
				e.DisplayName(), name)
		}
		if ret := m.FindEntityType(f.ReturnEntity); f.Scalar || ret == nil || !ret.IsAssignableFrom(e) {
			returns := f.ReturnStoreType
			if !f.Scalar {
				returns = f.ReturnEntity
			}
			return fail(relmap.InvalidMappedFunctionUnmatchedReturn,
				"The entity type '%s' is mapped to the function '%s' which returns '%s'. Ensure that the mapped function returns rows of '%s'.",
				e.DisplayName(), f.DisplayName(), returns, e.DisplayName())
		}
		if len(f.Parameters) > 0 {
			names := make([]string, len(f.Parameters))
			for i, p := range f.Parameters {
				names[i] = p.Name
			}
			return fail(relmap.InvalidMappedFunctionWithParameters,
				"The entity type '%s' is mapped to the function '%s' with parameters {%s}. Ensure that the mapped function is parameterless.",
				e.DisplayName(), f.DisplayName(), strings.Join(names, ", "))
		}
	}
	return nil
}
