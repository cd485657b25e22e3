// Package schema is the validation gate: every entity declares a static field
// schema and one routine checks incoming records against it before anything is
// written to the store.
package schema

import (
	"fmt"
	"strings"
)

// FieldType is the JSON shape a field must have.
type FieldType string

const (
	String  FieldType = "string"
	Integer FieldType = "integer"
	Decimal FieldType = "decimal"
	Date    FieldType = "date"
)

// Field describes one mandatory field. Lower and Upper bound the string length
// for String fields and the value for numeric fields. String lengths count
// characters unless Bytes is set, in which case Upper bounds the UTF-8 size.
type Field struct {
	Name   string
	Type   FieldType
	Lower  *float64
	Upper  *float64
	Format string
	Bytes  bool
}

// Str declares a string field.
func Str(name string) Field { return Field{Name: name, Type: String} }

// Int declares an integral number field.
func Int(name string) Field { return Field{Name: name, Type: Integer} }

// Dec declares a decimal field stored with two fraction digits.
func Dec(name string) Field { return Field{Name: name, Type: Decimal} }

// DateField declares a date or date/time field.
func DateField(name string) Field { return Field{Name: name, Type: Date} }

// AtLeast sets the lower bound.
func (f Field) AtLeast(v float64) Field {
	f.Lower = &v
	return f
}

// AtMost sets the upper bound.
func (f Field) AtMost(v float64) Field {
	f.Upper = &v
	return f
}

// InBytes makes the upper bound of a string field count bytes.
func (f Field) InBytes() Field {
	f.Bytes = true
	return f
}

// Email requires a string field to hold an email address.
func (f Field) Email() Field {
	f.Format = "email"
	return f
}

// Schema is the full field set of one entity payload.
type Schema struct {
	Name   string
	Fields []Field
}

// New builds a schema.
func New(name string, fields ...Field) Schema {
	return Schema{Name: name, Fields: fields}
}

// FieldNames returns the declared field names in declaration order.
func (s Schema) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

// FieldError is a single field violation.
type FieldError struct {
	Type    string      `json:"type"`
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Actual  interface{} `json:"actual,omitempty"`
}

// ValidationError carries every violation found in one record.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}
	return fmt.Sprintf("%s validation failed: %s", e.Schema, strings.Join(msgs, "; "))
}
