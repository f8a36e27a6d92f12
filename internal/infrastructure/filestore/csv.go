package filestore

import (
	"encoding/csv"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"
)

// writeCSVFile renders rows as CSV with a header derived from the row
// struct's json tags, assembling the full file in a pooled buffer before a
// single write.
func writeCSVFile[T any](path string, rows []T) error {
	var zero T
	rowType := reflect.TypeOf(zero)
	if rowType.Kind() != reflect.Struct {
		return fmt.Errorf("csv output requires a struct row type, got %s", rowType.Kind())
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader(rowType)); err != nil {
		return fmt.Errorf("write csv header %s: %w", path, err)
	}
	for i := range rows {
		if err := w.Write(csvRecord(reflect.ValueOf(rows[i]))); err != nil {
			return fmt.Errorf("write csv record %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv %s: %w", path, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func csvHeader(rowType reflect.Type) []string {
	out := make([]string, rowType.NumField())
	for i := 0; i < rowType.NumField(); i++ {
		field := rowType.Field(i)
		name := strings.Split(field.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			name = field.Name
		}
		out[i] = name
	}
	return out
}

func csvRecord(row reflect.Value) []string {
	out := make([]string, row.NumField())
	for i := 0; i < row.NumField(); i++ {
		out[i] = formatCSVValue(row.Field(i))
	}
	return out
}

// formatCSVValue renders one field; nil pointers become empty cells.
func formatCSVValue(v reflect.Value) string {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	if ts, ok := v.Interface().(time.Time); ok {
		return ts.Format(time.RFC3339)
	}

	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	default:
		return fmt.Sprint(v.Interface())
	}
}
