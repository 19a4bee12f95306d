package model

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"
)

type CellKind int

const (
	CellNull CellKind = iota
	CellBool
	CellNumber
	CellString
	CellTime
	CellArray
	CellObject
)

// CellValue is a tagged union over the value kinds a backend row can carry.
// It replaces runtime type probing with an exhaustive, total representation:
// formatting never panics regardless of what the driver hands back.
type CellValue struct {
	Kind CellKind
	Str  string
	Num  float64
	Bool bool
	Time time.Time
	Arr  []CellValue
	Obj  map[string]CellValue
}

// Cell converts an arbitrary driver value into a CellValue. Unknown types
// fall back to their JSON representation rather than failing.
func Cell(v any) CellValue {
	switch t := v.(type) {
	case nil:
		return CellValue{Kind: CellNull}
	case bool:
		return CellValue{Kind: CellBool, Bool: t}
	case int:
		return CellValue{Kind: CellNumber, Num: float64(t)}
	case int16:
		return CellValue{Kind: CellNumber, Num: float64(t)}
	case int32:
		return CellValue{Kind: CellNumber, Num: float64(t)}
	case int64:
		return CellValue{Kind: CellNumber, Num: float64(t)}
	case float32:
		return CellValue{Kind: CellNumber, Num: float64(t)}
	case float64:
		return CellValue{Kind: CellNumber, Num: t}
	case string:
		return CellValue{Kind: CellString, Str: t}
	case []byte:
		return CellValue{Kind: CellString, Str: string(t)}
	case time.Time:
		return CellValue{Kind: CellTime, Time: t}
	case []any:
		arr := make([]CellValue, 0, len(t))
		for _, e := range t {
			arr = append(arr, Cell(e))
		}
		return CellValue{Kind: CellArray, Arr: arr}
	case map[string]any:
		obj := make(map[string]CellValue, len(t))
		for k, e := range t {
			obj[k] = Cell(e)
		}
		return CellValue{Kind: CellObject, Obj: obj}
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return CellValue{Kind: CellNull}
		}
		var generic any
		if err := json.Unmarshal(b, &generic); err != nil {
			return CellValue{Kind: CellString, Str: string(b)}
		}
		if _, again := generic.(map[string]any); !again {
			if _, arr := generic.([]any); !arr {
				return CellValue{Kind: CellString, Str: string(b)}
			}
		}
		return Cell(generic)
	}
}

// Display renders a stable string form of the value for table cells and
// client-side search. Null renders empty, nested values render as JSON.
func (c CellValue) Display() string {
	switch c.Kind {
	case CellNull:
		return ""
	case CellBool:
		return strconv.FormatBool(c.Bool)
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case CellString:
		return c.Str
	case CellTime:
		return c.Time.UTC().Format(time.RFC3339)
	case CellArray, CellObject:
		b, err := json.Marshal(c)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return ""
	}
}

// MarshalJSON emits the underlying value, not the union wrapper, so a Record
// serializes as a flat column-to-value mapping.
func (c CellValue) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CellNull:
		return []byte("null"), nil
	case CellBool:
		return json.Marshal(c.Bool)
	case CellNumber:
		return json.Marshal(c.Num)
	case CellString:
		return json.Marshal(c.Str)
	case CellTime:
		return json.Marshal(c.Time.UTC().Format(time.RFC3339))
	case CellArray:
		if c.Arr == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(c.Arr)
	case CellObject:
		if c.Obj == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(c.Obj)
	default:
		return []byte("null"), nil
	}
}

// Record is one backend row: a flat mapping from column name to value.
// The "id" key is always present and always a string.
type Record map[string]CellValue

// ID returns the row identifier, empty if the record was built without one.
func (r Record) ID() string {
	return r["id"].Display()
}

// Columns returns the record's column names in ascending order.
func (r Record) Columns() []string {
	cols := make([]string, 0, len(r))
	for k := range r {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// Matches reports whether any column's display form contains the query,
// case-insensitively. An empty query matches everything.
func (r Record) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, v := range r {
		if strings.Contains(strings.ToLower(v.Display()), q) {
			return true
		}
	}
	return false
}

// TableDescriptor is a table name plus the rows of one bounded fetch.
// Replaced wholesale on every refresh; never merged or cached.
type TableDescriptor struct {
	Name string
	Rows []Record
}
