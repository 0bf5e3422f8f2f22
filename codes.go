package relmap

// Model integrity.
const (
	InvalidPropertyType               Code = "InvalidPropertyType"
	KeyPropertyNotInHierarchy         Code = "KeyPropertyNotInHierarchy"
	ForeignKeyPropertyMismatch        Code = "ForeignKeyPropertyMismatch"
	IndexPropertyNotInHierarchy       Code = "IndexPropertyNotInHierarchy"
	PrimaryKeyOnDerivedType           Code = "PrimaryKeyOnDerivedType"
	ConflictingColumnServerGeneration Code = "ConflictingColumnServerGeneration"
)

// Table and view sharing.
const (
	IncompatibleTableNoRelationship      Code = "IncompatibleTableNoRelationship"
	IncompatibleTableDerivedRelationship Code = "IncompatibleTableDerivedRelationship"
	IncompatibleTableKeyNameMismatch     Code = "IncompatibleTableKeyNameMismatch"
	IncompatibleTableCommentMismatch     Code = "IncompatibleTableCommentMismatch"
	IncompatibleTableExcludedMismatch    Code = "IncompatibleTableExcludedMismatch"
	IncompatibleViewNoRelationship       Code = "IncompatibleViewNoRelationship"
	IncompatibleViewDerivedRelationship  Code = "IncompatibleViewDerivedRelationship"

	OptionalDependentWithDependentWithoutIdentifyingProperty Code = "OptionalDependentWithDependentWithoutIdentifyingProperty"
	MissingConcurrencyColumn                                 Code = "MissingConcurrencyColumn"
)

// Columns shared by several properties.
const (
	DuplicateColumnNameSameHierarchy            Code = "DuplicateColumnNameSameHierarchy"
	DuplicateColumnNameNullabilityMismatch      Code = "DuplicateColumnNameNullabilityMismatch"
	DuplicateColumnNameMaxLengthMismatch        Code = "DuplicateColumnNameMaxLengthMismatch"
	DuplicateColumnNameUnicodenessMismatch      Code = "DuplicateColumnNameUnicodenessMismatch"
	DuplicateColumnNameFixedLengthMismatch      Code = "DuplicateColumnNameFixedLengthMismatch"
	DuplicateColumnNamePrecisionMismatch        Code = "DuplicateColumnNamePrecisionMismatch"
	DuplicateColumnNameScaleMismatch            Code = "DuplicateColumnNameScaleMismatch"
	DuplicateColumnNameConcurrencyTokenMismatch Code = "DuplicateColumnNameConcurrencyTokenMismatch"
	DuplicateColumnNameDataTypeMismatch         Code = "DuplicateColumnNameDataTypeMismatch"
	DuplicateColumnNameProviderTypeMismatch     Code = "DuplicateColumnNameProviderTypeMismatch"
	DuplicateColumnNameComputedSqlMismatch      Code = "DuplicateColumnNameComputedSqlMismatch"
	DuplicateColumnNameIsStoredMismatch         Code = "DuplicateColumnNameIsStoredMismatch"
	DuplicateColumnNameDefaultSqlMismatch       Code = "DuplicateColumnNameDefaultSqlMismatch"
	DuplicateColumnNameCommentMismatch          Code = "DuplicateColumnNameCommentMismatch"
	DuplicateColumnNameCollationMismatch        Code = "DuplicateColumnNameCollationMismatch"
	DuplicateColumnNameOrderMismatch            Code = "DuplicateColumnNameOrderMismatch"
)

// Named constraints shared by several entity types.
const (
	DuplicateKeyTableMismatch                  Code = "DuplicateKeyTableMismatch"
	DuplicateKeyColumnMismatch                 Code = "DuplicateKeyColumnMismatch"
	DuplicateIndexTableMismatch                Code = "DuplicateIndexTableMismatch"
	DuplicateIndexColumnMismatch               Code = "DuplicateIndexColumnMismatch"
	DuplicateIndexUniquenessMismatch           Code = "DuplicateIndexUniquenessMismatch"
	DuplicateIndexSortOrdersMismatch           Code = "DuplicateIndexSortOrdersMismatch"
	DuplicateIndexFiltersMismatch              Code = "DuplicateIndexFiltersMismatch"
	DuplicateForeignKeyTableMismatch           Code = "DuplicateForeignKeyTableMismatch"
	DuplicateForeignKeyPrincipalTableMismatch  Code = "DuplicateForeignKeyPrincipalTableMismatch"
	DuplicateForeignKeyColumnMismatch          Code = "DuplicateForeignKeyColumnMismatch"
	DuplicateForeignKeyPrincipalColumnMismatch Code = "DuplicateForeignKeyPrincipalColumnMismatch"
	DuplicateForeignKeyUniquenessMismatch      Code = "DuplicateForeignKeyUniquenessMismatch"
	DuplicateForeignKeyDeleteBehaviorMismatch  Code = "DuplicateForeignKeyDeleteBehaviorMismatch"
	DuplicateCheckConstraintSqlMismatch        Code = "DuplicateCheckConstraintSqlMismatch"
)

// Inheritance mapping.
const (
	DerivedStrategy                Code = "DerivedStrategy"
	InvalidMappingStrategy         Code = "InvalidMappingStrategy"
	NonTphMappingStrategy          Code = "NonTphMappingStrategy"
	TphTableMismatch               Code = "TphTableMismatch"
	TphViewMismatch                Code = "TphViewMismatch"
	TphFunctionMismatch            Code = "TphFunctionMismatch"
	TphStoredProcedureMismatch     Code = "TphStoredProcedureMismatch"
	NoDiscriminatorProperty        Code = "NoDiscriminatorProperty"
	NoDiscriminatorValue           Code = "NoDiscriminatorValue"
	DiscriminatorValueIncompatible Code = "DiscriminatorValueIncompatible"
	EntityShortNameNotUnique       Code = "EntityShortNameNotUnique"
	DuplicateDiscriminatorValue    Code = "DuplicateDiscriminatorValue"
	NonTphTableClash               Code = "NonTphTableClash"
	NonTphViewClash                Code = "NonTphViewClash"
	NonTphFunctionClash            Code = "NonTphFunctionClash"
	NonTphStoredProcedureClash     Code = "NonTphStoredProcedureClash"
	TpcTableSharing                Code = "TpcTableSharing"
	TpcTableSharingDependent       Code = "TpcTableSharingDependent"
	AbstractTpc                    Code = "AbstractTpc"
)

// Stored procedure mapping.
const (
	StoredProcedureNoName                          Code = "StoredProcedureNoName"
	StoredProcedureTableSharing                    Code = "StoredProcedureTableSharing"
	StoredProcedureUnmapped                        Code = "StoredProcedureUnmapped"
	StoredProcedureKeyless                         Code = "StoredProcedureKeyless"
	StoredProcedureResultColumnNotFound            Code = "StoredProcedureResultColumnNotFound"
	StoredProcedureResultColumnNotGenerated        Code = "StoredProcedureResultColumnNotGenerated"
	StoredProcedureResultColumnDelete              Code = "StoredProcedureResultColumnDelete"
	StoredProcedureDuplicateResultColumnName       Code = "StoredProcedureDuplicateResultColumnName"
	StoredProcedureRowsAffectedForInsert           Code = "StoredProcedureRowsAffectedForInsert"
	StoredProcedureRowsAffectedReturnConflicting   Code = "StoredProcedureRowsAffectedReturnConflictingParameter"
	StoredProcedureDuplicateParameterName          Code = "StoredProcedureDuplicateParameterName"
	StoredProcedureParameterNotFound               Code = "StoredProcedureParameterNotFound"
	StoredProcedureOriginalValueParameterOnInsert  Code = "StoredProcedureOriginalValueParameterOnInsert"
	StoredProcedureCurrentValueParameterOnDelete   Code = "StoredProcedureCurrentValueParameterOnDelete"
	StoredProcedureDuplicateOriginalValueParameter Code = "StoredProcedureDuplicateOriginalValueParameter"
	StoredProcedureDuplicateParameter              Code = "StoredProcedureDuplicateParameter"
	StoredProcedureOutputParameterNotGenerated     Code = "StoredProcedureOutputParameterNotGenerated"
	StoredProcedureOutputParameterConflict         Code = "StoredProcedureOutputParameterConflict"
	StoredProcedureInputParameterForInsertNonSave  Code = "StoredProcedureInputParameterForInsertNonSave"
	StoredProcedureInputParameterForUpdateNonSave  Code = "StoredProcedureInputParameterForUpdateNonSave"
	StoredProcedureGeneratedPropertiesNotMapped    Code = "StoredProcedureGeneratedPropertiesNotMapped"
	StoredProcedurePropertiesNotMapped             Code = "StoredProcedurePropertiesNotMapped"
)

// JSON mapped entity types.
const (
	JsonEntityMappedToDifferentTableOrViewThanOwner          Code = "JsonEntityMappedToDifferentTableOrViewThanOwner"
	JsonEntityOwnedByNonJsonOwnedType                        Code = "JsonEntityOwnedByNonJsonOwnedType"
	JsonEntityWithTableSplittingIsNotSupported               Code = "JsonEntityWithTableSplittingIsNotSupported"
	JsonEntityMultipleRootsMappedToTheSameJsonColumn         Code = "JsonEntityMultipleRootsMappedToTheSameJsonColumn"
	JsonEntityWithNonTphInheritanceOnOwner                   Code = "JsonEntityWithNonTphInheritanceOnOwner"
	JsonEntityReferencingRegularEntity                       Code = "JsonEntityReferencingRegularEntity"
	JsonEntityWithExplicitlyConfiguredJsonPropertyNameOnKey  Code = "JsonEntityWithExplicitlyConfiguredJsonPropertyNameOnKey"
	JsonEntityWithExplicitlyConfiguredOrdinalKey             Code = "JsonEntityWithExplicitlyConfiguredOrdinalKey"
	JsonEntityWithIncorrectNumberOfKeyProperties             Code = "JsonEntityWithIncorrectNumberOfKeyProperties"
	JsonEntityWithDefaultValueSetOnItsProperty               Code = "JsonEntityWithDefaultValueSetOnItsProperty"
	JsonEntityWithMultiplePropertiesMappedToSameJsonProperty Code = "JsonEntityWithMultiplePropertiesMappedToSameJsonProperty"
)

// Entity splitting, overrides, queries, functions, triggers and sequences.
const (
	EntitySplittingHierarchy                                  Code = "EntitySplittingHierarchy"
	EntitySplittingUnmappedMainFragment                       Code = "EntitySplittingUnmappedMainFragment"
	EntitySplittingConflictingMainFragment                    Code = "EntitySplittingConflictingMainFragment"
	EntitySplittingUnmatchedMainTableSplitting                Code = "EntitySplittingUnmatchedMainTableSplitting"
	EntitySplittingMissingProperties                          Code = "EntitySplittingMissingProperties"
	EntitySplittingMissingPropertiesMainFragment              Code = "EntitySplittingMissingPropertiesMainFragment"
	EntitySplittingMissingRequiredPropertiesOptionalDependent Code = "EntitySplittingMissingRequiredPropertiesOptionalDependent"

	TableOverrideMismatch    Code = "TableOverrideMismatch"
	ViewOverrideMismatch     Code = "ViewOverrideMismatch"
	FunctionOverrideMismatch Code = "FunctionOverrideMismatch"
	SqlQueryOverrideMismatch Code = "SqlQueryOverrideMismatch"

	InvalidMappedSqlQueryDerivedType Code = "InvalidMappedSqlQueryDerivedType"

	DbFunctionInvalidReturnType          Code = "DbFunctionInvalidReturnType"
	DbFunctionInvalidReturnEntityType    Code = "DbFunctionInvalidReturnEntityType"
	DbFunctionInvalidParameterType       Code = "DbFunctionInvalidParameterType"
	TableValuedFunctionNonTph            Code = "TableValuedFunctionNonTph"
	MappedFunctionNotFound               Code = "MappedFunctionNotFound"
	InvalidMappedFunctionUnmatchedReturn Code = "InvalidMappedFunctionUnmatchedReturn"
	InvalidMappedFunctionWithParameters  Code = "InvalidMappedFunctionWithParameters"

	TriggerOnUnmappedEntityType Code = "TriggerOnUnmappedEntityType"
	TriggerWithMismatchedTable  Code = "TriggerWithMismatchedTable"

	SequenceIncrementZero     Code = "SequenceIncrementZero"
	SequenceMinGreaterThanMax Code = "SequenceMinGreaterThanMax"
	SequenceStartOutOfRange   Code = "SequenceStartOutOfRange"
)
