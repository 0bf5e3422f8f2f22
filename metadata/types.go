package metadata

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// MappingStrategy is the inheritance mapping strategy of a hierarchy.
type MappingStrategy string

// Mapping strategies.
const (
	TPH MappingStrategy = "TPH"
	TPT MappingStrategy = "TPT"
	TPC MappingStrategy = "TPC"
)

// Valid reports whether s is one of the known strategies.
func (s MappingStrategy) Valid() bool {
	switch s {
	case TPH, TPT, TPC:
		return true
	}
	return false
}

// ValueGenerated describes when the store generates a property value.
type ValueGenerated uint8

// Value generation flags.
const (
	Never         ValueGenerated = 0
	OnAdd         ValueGenerated = 1
	OnUpdate      ValueGenerated = 2
	OnAddOrUpdate                = OnAdd | OnUpdate
)

// Has reports whether all flags of f are set on v.
func (v ValueGenerated) Has(f ValueGenerated) bool { return v&f == f && f != 0 }

func (v ValueGenerated) String() string {
	switch v {
	case Never:
		return "Never"
	case OnAdd:
		return "OnAdd"
	case OnUpdate:
		return "OnUpdate"
	case OnAddOrUpdate:
		return "OnAddOrUpdate"
	}
	return fmt.Sprintf("ValueGenerated(%d)", uint8(v))
}

// SaveBehavior controls whether a property value is sent to the store
// before (insert) or after (update) the entity is first saved.
type SaveBehavior uint8

// Save behaviors. The zero value defers to the property's conventions.
const (
	SaveBehaviorUnset SaveBehavior = iota
	Save
	Ignore
	Throw
)

func (b SaveBehavior) String() string {
	switch b {
	case Save:
		return "Save"
	case Ignore:
		return "Ignore"
	case Throw:
		return "Throw"
	}
	return "Unset"
}

// DeleteBehavior is the delete behavior of a foreign key.
type DeleteBehavior string

// Delete behaviors.
const (
	ClientSetNull  DeleteBehavior = "ClientSetNull"
	Restrict       DeleteBehavior = "Restrict"
	SetNull        DeleteBehavior = "SetNull"
	Cascade        DeleteBehavior = "Cascade"
	ClientCascade  DeleteBehavior = "ClientCascade"
	NoAction       DeleteBehavior = "NoAction"
	ClientNoAction DeleteBehavior = "ClientNoAction"
)

// ReferentialAction is the action a delete behavior produces in the store.
type ReferentialAction string

// Referential actions.
const (
	ActionNoAction ReferentialAction = "NO ACTION"
	ActionRestrict ReferentialAction = "RESTRICT"
	ActionCascade  ReferentialAction = "CASCADE"
	ActionSetNull  ReferentialAction = "SET NULL"
)

// ReferentialAction maps the delete behavior to its store action. Client side
// behaviors have no store counterpart and map to NO ACTION.
func (b DeleteBehavior) ReferentialAction() ReferentialAction {
	switch b {
	case Cascade:
		return ActionCascade
	case SetNull:
		return ActionSetNull
	case Restrict:
		return ActionRestrict
	}
	return ActionNoAction
}

// ParameterDirection is the direction of a stored procedure parameter.
type ParameterDirection uint8

// Parameter directions.
const (
	Input ParameterDirection = iota
	Output
	InputOutput
)

// IsInput reports whether the parameter carries a value into the procedure.
func (d ParameterDirection) IsInput() bool { return d == Input || d == InputOutput }

// IsOutput reports whether the parameter carries a value out of the procedure.
func (d ParameterDirection) IsOutput() bool { return d == Output || d == InputOutput }

func (d ParameterDirection) String() string {
	switch d {
	case Output:
		return "Output"
	case InputOutput:
		return "InputOutput"
	}
	return "Input"
}

// Type is the application-side type of a property.
type Type string

// Property types.
const (
	TypeString  Type = "string"
	TypeBool    Type = "bool"
	TypeInt16   Type = "int16"
	TypeInt32   Type = "int32"
	TypeInt64   Type = "int64"
	TypeFloat64 Type = "float64"
	TypeDecimal Type = "decimal"
	TypeTime    Type = "time"
	TypeUUID    Type = "uuid"
	TypeBytes   Type = "bytes"
	TypeJSON    Type = "json"
)

var knownTypes = map[Type]struct{}{
	TypeString: {}, TypeBool: {}, TypeInt16: {}, TypeInt32: {}, TypeInt64: {},
	TypeFloat64: {}, TypeDecimal: {}, TypeTime: {}, TypeUUID: {}, TypeBytes: {}, TypeJSON: {},
}

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	_, ok := knownTypes[t]
	return ok
}

// Numeric reports whether t holds numbers.
func (t Type) Numeric() bool {
	switch t {
	case TypeInt16, TypeInt32, TypeInt64, TypeFloat64, TypeDecimal:
		return true
	}
	return false
}

// Zero returns the zero value of t as it would appear in a model document.
func (t Type) Zero() any {
	switch t {
	case TypeString:
		return ""
	case TypeBool:
		return false
	case TypeInt16, TypeInt32, TypeInt64, TypeFloat64, TypeDecimal:
		return 0
	case TypeUUID:
		return "00000000-0000-0000-0000-000000000000"
	}
	return nil
}

// Accepts reports whether v is a valid value for a property of type t.
func (t Type) Accepts(v any) bool {
	switch t {
	case TypeString, TypeUUID, TypeTime, TypeJSON:
		_, ok := v.(string)
		return ok
	case TypeBool:
		_, ok := v.(bool)
		return ok
	case TypeInt16, TypeInt32, TypeInt64, TypeFloat64, TypeDecimal:
		_, ok := toDecimal(v)
		return ok
	case TypeBytes:
		switch v.(type) {
		case []byte, string:
			return true
		}
	}
	return false
}

// StoreType returns the generic store type used when a property has no
// explicit column type.
func (t Type) StoreType(maxLength, precision, scale *int, unicode, fixedLength *bool) string {
	switch t {
	case TypeString:
		name := "varchar"
		if unicode == nil || *unicode {
			name = "nvarchar"
		}
		if fixedLength != nil && *fixedLength {
			name = strings.TrimSuffix(name, "varchar") + "char"
		}
		if maxLength != nil {
			return fmt.Sprintf("%s(%d)", name, *maxLength)
		}
		return name + "(max)"
	case TypeBytes:
		if maxLength != nil {
			return fmt.Sprintf("varbinary(%d)", *maxLength)
		}
		return "varbinary(max)"
	case TypeBool:
		return "bit"
	case TypeInt16:
		return "smallint"
	case TypeInt32:
		return "int"
	case TypeInt64:
		return "bigint"
	case TypeFloat64:
		return "float"
	case TypeDecimal:
		p, s := 18, 2
		if precision != nil {
			p = *precision
		}
		if scale != nil {
			s = *scale
		}
		return fmt.Sprintf("decimal(%d,%d)", p, s)
	case TypeTime:
		return "datetime2"
	case TypeUUID:
		return "uniqueidentifier"
	case TypeJSON:
		return "nvarchar(max)"
	}
	return string(t)
}

// ValuesEqual reports whether two configured values are the same store
// value. Numbers compare by magnitude, so 1, 1.0 and "1.00" for a decimal
// are equal.
func ValuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	da, aok := toDecimal(a)
	db, bok := toDecimal(b)
	if aok && bok {
		return da.Equal(db)
	}
	if aok != bok {
		return false
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// IsZeroValue reports whether v equals the zero value of t.
func IsZeroValue(t Type, v any) bool {
	if v == nil {
		return false
	}
	return ValuesEqual(t.Zero(), v)
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int8:
		return decimal.NewFromInt(int64(n)), true
	case int16:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case uint:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(n)), 0), true
	case uint8:
		return decimal.NewFromInt(int64(n)), true
	case uint16:
		return decimal.NewFromInt(int64(n)), true
	case uint32:
		return decimal.NewFromInt(int64(n)), true
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(n), 0), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case float64:
		return decimal.NewFromFloat(n), true
	case decimal.Decimal:
		return n, true
	}
	return decimal.Decimal{}, false
}
