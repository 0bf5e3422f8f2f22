package diagnostics

// EventID names a validation warning.
type EventID string

// Validation warnings.
const (
	OptionalDependentWithoutIdentifyingPropertyWarning EventID = "OptionalDependentWithoutIdentifyingPropertyWarning"
	DuplicateColumnOrders                              EventID = "DuplicateColumnOrders"
	TpcStoreGeneratedIdentityWarning                   EventID = "TpcStoreGeneratedIdentityWarning"
	StoredProcedureConcurrencyTokenNotMapped           EventID = "StoredProcedureConcurrencyTokenNotMapped"
	TriggerOnNonRootTphEntity                          EventID = "TriggerOnNonRootTphEntity"
	BoolWithDefaultWarning                             EventID = "BoolWithDefaultWarning"
	ModelValidationKeyDefaultValueWarning              EventID = "ModelValidationKeyDefaultValueWarning"
	AllIndexPropertiesNotToMappedToAnyTable            EventID = "AllIndexPropertiesNotToMappedToAnyTable"
	IndexPropertiesBothMappedAndNotMappedToTable       EventID = "IndexPropertiesBothMappedAndNotMappedToTable"
	IndexPropertiesMappedToNonOverlappingTables        EventID = "IndexPropertiesMappedToNonOverlappingTables"
)

// Events lists every warning in a stable order.
var Events = []EventID{
	OptionalDependentWithoutIdentifyingPropertyWarning,
	DuplicateColumnOrders,
	TpcStoreGeneratedIdentityWarning,
	StoredProcedureConcurrencyTokenNotMapped,
	TriggerOnNonRootTphEntity,
	BoolWithDefaultWarning,
	ModelValidationKeyDefaultValueWarning,
	AllIndexPropertiesNotToMappedToAnyTable,
	IndexPropertiesBothMappedAndNotMappedToTable,
	IndexPropertiesMappedToNonOverlappingTables,
}

// Valid reports whether id is a known warning.
func (id EventID) Valid() bool {
	for _, e := range Events {
		if e == id {
			return true
		}
	}
	return false
}
