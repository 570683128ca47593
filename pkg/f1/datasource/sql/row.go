package sql

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Row is one database row: column names in the order the database returned them, mapped to scalar
// values (string, int64, float64, bool, time.Time or nil).
type Row struct {
	columns []string
	values  []any
}

// NewRow builds a Row from parallel column/value slices. Extra values are dropped.
func NewRow(columns []string, values []any) Row {
	r := Row{columns: append([]string(nil), columns...), values: make([]any, len(columns))}
	copy(r.values, values)

	return r
}

// Columns returns the column names in database order.
func (r Row) Columns() []string { return append([]string(nil), r.columns...) }

// Len is the number of columns.
func (r Row) Len() int { return len(r.columns) }

// Get returns the value for column. The lookup is case-sensitive, like the keys of the row.
func (r Row) Get(column string) (any, bool) {
	for i, c := range r.columns {
		if c == column {
			return r.values[i], true
		}
	}

	return nil, false
}

// Value returns the value for column or nil.
func (r Row) Value(column string) any {
	v, _ := r.Get(column)
	return v
}

// String formats the value for column for display. NULL renders as "".
func (r Row) String(column string) string {
	switch v := r.Value(column).(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			return v.Format(time.DateOnly)
		}

		return v.Format(time.DateTime)
	default:
		b, _ := json.Marshal(v)
		return strings.Trim(string(b), `"`)
	}
}

// Float returns the numeric value for column. Non-numeric and NULL values report false.
func (r Row) Float(column string) (float64, bool) {
	switch v := r.Value(column).(type) {
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// With returns a copy of r with column prepended.
func (r Row) With(column string, value any) Row {
	return Row{
		columns: append([]string{column}, r.columns...),
		values:  append([]any{value}, r.values...),
	}
}

// MarshalJSON writes the row as an object whose keys keep the column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, c := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}

		k, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}

		v, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}

		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// ResultSet is the ordered sequence of rows produced by one query or procedure call.
type ResultSet []Row

// Columns returns the columns of the first row, or nil for an empty set.
func (rs ResultSet) Columns() []string {
	if len(rs) == 0 {
		return nil
	}

	return rs[0].Columns()
}

// MutationResult reports the outcome of ExecuteMutation.
type MutationResult struct {
	RowsAffected int64 `json:"rowsAffected"`
	LastInsertID int64 `json:"lastInsertId"`
}

// scanAll reads every remaining row of the current result set.
func scanAll(rows *sql.Rows) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	typeNames := make([]string, len(columns))

	// column types are a best-effort hint; drivers that cannot report them leave values untouched
	if types, err := rows.ColumnTypes(); err == nil {
		for i, ct := range types {
			if i < len(typeNames) && ct != nil {
				typeNames[i] = strings.ToUpper(ct.DatabaseTypeName())
			}
		}
	}

	var out []Row

	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))

		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		for i, v := range values {
			values[i] = normalizeValue(v, typeNames[i])
		}

		out = append(out, Row{columns: columns, values: values})
	}

	return out, rows.Err()
}

// normalizeValue turns driver bytes into the scalar the column type describes.
func normalizeValue(v any, typeName string) any {
	switch val := v.(type) {
	case []byte:
		s := string(val)

		switch typeName {
		case "DECIMAL", "NUMERIC", "FLOAT", "DOUBLE", "REAL", "FLOAT4", "FLOAT8":
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f
			}
		case "INT", "INTEGER", "BIGINT", "SMALLINT", "TINYINT", "MEDIUMINT", "INT2", "INT4", "INT8",
			"UNSIGNED INT", "UNSIGNED BIGINT", "UNSIGNED SMALLINT", "UNSIGNED TINYINT":
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return n
			}
		}

		return s
	case int:
		return int64(val)
	case int32:
		return int64(val)
	case uint64:
		return int64(val) //nolint:gosec // counts and ids stay far below MaxInt64
	case float32:
		return float64(val)
	default:
		return v
	}
}
