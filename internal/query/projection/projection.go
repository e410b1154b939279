// Package projection maps declared storage types to display and comparison semantics.
//
// Display categories follow SQLite's type affinity rules
// (https://sqlite.org/datatype3.html):
//  1. type contains "INT" -> integer
//  2. type contains "CHAR", "CLOB" or "TEXT" -> text
//  3. type contains "BLOB" or is empty -> blob
//  4. type contains "REAL", "FLOA" or "DOUB" -> real
//  5. otherwise -> numeric
//
// Comparison is a binary split: text columns match a case-insensitive
// substring, everything else matches by equality.
package projection

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mesabjorn/anything-db/internal/domain/schema"
)

// Category is the display/parse category of a column
type Category string

const (
	CategoryInteger Category = "INTEGER"
	CategoryReal    Category = "REAL"
	CategoryNumeric Category = "NUMERIC"
	CategoryText    Category = "TEXT"
	CategoryBlob    Category = "BLOB"
)

// Strategy selects the comparison operator used by search
type Strategy int

const (
	// Exact compares with "= ?"
	Exact Strategy = iota
	// Substring compares with "LIKE ? COLLATE NOCASE" and a %value% pattern
	Substring
)

func (s Strategy) String() string {
	if s == Substring {
		return "substring"
	}
	return "exact"
}

// Projection is the display and comparison semantics of one storage type
type Projection struct {
	Category Category
	Strategy Strategy
}

// Project maps a declared storage type (case-insensitive) to its projection
func Project(storageType string) Projection {
	c := categorize(storageType)
	p := Projection{Category: c, Strategy: Exact}
	if c == CategoryText {
		p.Strategy = Substring
	}
	return p
}

// ForColumn is a shorthand for Project(c.Type)
func ForColumn(c schema.Column) Projection {
	return Project(c.Type)
}

func categorize(storageType string) Category {
	upper := strings.ToUpper(strings.TrimSpace(storageType))
	switch {
	case upper == "":
		return CategoryBlob
	case strings.Contains(upper, "INT"):
		return CategoryInteger
	case strings.Contains(upper, "CHAR"),
		strings.Contains(upper, "CLOB"),
		strings.Contains(upper, "TEXT"):
		return CategoryText
	case strings.Contains(upper, "BLOB"):
		return CategoryBlob
	case strings.Contains(upper, "REAL"),
		strings.Contains(upper, "FLOA"),
		strings.Contains(upper, "DOUB"):
		return CategoryReal
	default:
		return CategoryNumeric
	}
}

// Pattern returns the search parameter for value under this strategy
func (s Strategy) Pattern(value string) string {
	if s == Substring {
		return "%" + value + "%"
	}
	return value
}

// Coerce converts operator text into the parameter bound for comparisons.
// Values that do not parse stay text; storage decides what to keep.
func (p Projection) Coerce(v schema.RawValue) any {
	s := strings.TrimSpace(v.String())
	switch p.Category {
	case CategoryInteger:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	case CategoryNumeric:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	case CategoryReal:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return v.String()
}

// Format renders a driver value for tabular output
func (p Projection) Format(value any) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case int64:
		if p.Category == CategoryReal {
			return strconv.FormatFloat(float64(v), 'f', 1, 64)
		}
		return strconv.FormatInt(v, 10)
	case float64:
		if p.Category == CategoryInteger && v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	case []byte:
		if p.Category == CategoryBlob {
			return "x'" + hex.EncodeToString(v) + "'"
		}
		return string(v)
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.UTC().Format(schema.TimestampLayout)
	default:
		return fmt.Sprintf("%v", v)
	}
}
