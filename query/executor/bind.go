package executor

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrBindValue marks a value that cannot be coerced to its bind kind.
var ErrBindValue = errors.New("value cannot be bound")

// BindKind is the typed channel a value travels through when bound to a
// prepared statement.
type BindKind int

const (
	BindNull BindKind = iota
	BindInteger
	BindFloat
	BindBlob
	BindText
)

func (k BindKind) String() string {
	switch k {
	case BindNull:
		return "NULL"
	case BindInteger:
		return "INTEGER"
	case BindFloat:
		return "FLOAT"
	case BindBlob:
		return "BLOB"
	default:
		return "TEXT"
	}
}

// KindFor decides the bind kind for a value destined for a column with the
// given declared type. A nil value is NULL regardless of the declaration.
// INTEGER, REAL and BLOB declarations map to their kinds; any other
// declaration, including a column missing from the catalog (empty declared
// string), binds as TEXT. Decided per value at bind time, never cached.
func KindFor(declared string, value any) BindKind {
	if value == nil {
		return BindNull
	}
	switch declared {
	case "INTEGER":
		return BindInteger
	case "REAL":
		return BindFloat
	case "BLOB":
		return BindBlob
	default:
		return BindText
	}
}

// Coerce converts value to the Go representation of kind. A value that does
// not fit the kind is a bind failure; the executor then abandons the whole
// statement.
func Coerce(value any, kind BindKind) (any, error) {
	switch kind {
	case BindNull:
		return nil, nil
	case BindInteger:
		return coerceInteger(value)
	case BindFloat:
		return coerceFloat(value)
	case BindBlob:
		return coerceBlob(value)
	default:
		return coerceText(value)
	}
}

func coerceInteger(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > 1<<63-1 {
			return nil, fmt.Errorf("%w: %d overflows INTEGER", ErrBindValue, v)
		}
		return int64(v), nil
	case bool:
		if v {
			return int64(1), nil
		}
		return int64(0), nil
	case float32:
		return integralFloat(float64(v))
	case float64:
		// JSON decoding delivers all numbers as float64.
		return integralFloat(v)
	default:
		return nil, fmt.Errorf("%w: %T as INTEGER", ErrBindValue, value)
	}
}

func integralFloat(f float64) (any, error) {
	n := int64(f)
	if float64(n) != f {
		return nil, fmt.Errorf("%w: %v has a fractional part", ErrBindValue, f)
	}
	return n, nil
}

func coerceFloat(value any) (any, error) {
	switch v := value.(type) {
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	default:
		return nil, fmt.Errorf("%w: %T as FLOAT", ErrBindValue, value)
	}
}

func coerceBlob(value any) (any, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("%w: %T as BLOB", ErrBindValue, value)
	}
}

func coerceText(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	default:
		return nil, fmt.Errorf("%w: %T as TEXT", ErrBindValue, value)
	}
}
