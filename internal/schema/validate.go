package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

var validate = validator.New()

// Record is a decoded request body keyed by JSON field name.
type Record map[string]interface{}

// Validate checks record against s. On success it returns a normalized copy
// holding only the declared fields: strings trimmed, integers as int64,
// decimals rounded to two fraction digits and dates as time.Time.
// It never touches the store.
func Validate(record Record, s Schema) (Record, error) {
	out := make(Record, len(s.Fields))
	var errs []FieldError

	for _, f := range s.Fields {
		raw, present := record[f.Name]
		if !present || raw == nil {
			errs = append(errs, FieldError{
				Type:    "required",
				Field:   f.Name,
				Message: fmt.Sprintf("The '%s' field is required.", f.Name),
			})
			continue
		}

		var (
			v  interface{}
			fe *FieldError
		)
		switch f.Type {
		case String:
			v, fe = checkString(f, raw)
		case Integer, Decimal:
			v, fe = checkNumber(f, raw)
		case Date:
			v, fe = checkDate(f, raw)
		default:
			fe = &FieldError{Type: "unknown", Field: f.Name, Message: fmt.Sprintf("The '%s' field has an unknown type.", f.Name)}
		}
		if fe != nil {
			errs = append(errs, *fe)
			continue
		}
		out[f.Name] = v
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Schema: s.Name, Errors: errs}
	}
	return out, nil
}

func checkString(f Field, raw interface{}) (interface{}, *FieldError) {
	str, ok := raw.(string)
	if !ok {
		return nil, &FieldError{Type: "string", Field: f.Name, Actual: raw,
			Message: fmt.Sprintf("The '%s' field must be a string.", f.Name)}
	}
	str = strings.TrimSpace(str)
	if str == "" {
		return nil, &FieldError{Type: "required", Field: f.Name, Actual: raw,
			Message: fmt.Sprintf("The '%s' field is required.", f.Name)}
	}

	var rules []string
	if f.Lower != nil {
		rules = append(rules, "min="+formatBound(*f.Lower))
	}
	if f.Upper != nil && !f.Bytes {
		rules = append(rules, "max="+formatBound(*f.Upper))
	}
	if f.Format == "email" {
		rules = append(rules, "email")
	}
	if len(rules) > 0 {
		if err := validate.Var(str, strings.Join(rules, ",")); err != nil {
			return nil, stringViolation(f, str, err)
		}
	}

	if f.Bytes && f.Upper != nil && float64(len(str)) > *f.Upper {
		return nil, &FieldError{Type: "stringMax", Field: f.Name, Actual: str,
			Message: fmt.Sprintf("The '%s' field must be at most %s bytes long.", f.Name, formatBound(*f.Upper))}
	}
	return str, nil
}

func stringViolation(f Field, str string, err error) *FieldError {
	fe := &FieldError{Field: f.Name, Actual: str}
	tag := firstTag(err)
	switch tag {
	case "min":
		fe.Type = "stringMin"
		fe.Message = fmt.Sprintf("The '%s' field length must be greater than or equal to %s characters long.", f.Name, formatBound(*f.Lower))
	case "max":
		fe.Type = "stringMax"
		fe.Message = fmt.Sprintf("The '%s' field length must be less than or equal to %s characters long.", f.Name, formatBound(*f.Upper))
	case "email":
		fe.Type = "email"
		fe.Message = fmt.Sprintf("The '%s' field must be a valid e-mail.", f.Name)
	default:
		fe.Type = tag
		fe.Message = fmt.Sprintf("The '%s' field is invalid.", f.Name)
	}
	return fe
}

func checkNumber(f Field, raw interface{}) (interface{}, *FieldError) {
	switch raw.(type) {
	case json.Number, float64, float32, int, int32, int64:
	default:
		return nil, &FieldError{Type: "number", Field: f.Name, Actual: raw,
			Message: fmt.Sprintf("The '%s' field must be a number.", f.Name)}
	}
	num, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
		return nil, &FieldError{Type: "number", Field: f.Name, Actual: raw,
			Message: fmt.Sprintf("The '%s' field must be a number.", f.Name)}
	}
	var whole int64
	if f.Type == Integer {
		if num != math.Trunc(num) {
			return nil, &FieldError{Type: "numberInteger", Field: f.Name, Actual: num,
				Message: fmt.Sprintf("The '%s' field must be an integer.", f.Name)}
		}
		var ok bool
		if whole, ok = exactInt(raw, num); !ok {
			fe := &FieldError{Type: "numberMax", Field: f.Name, Actual: raw,
				Message: fmt.Sprintf("The '%s' field must be less than or equal to %d.", f.Name, maxExactInt)}
			if num < 0 {
				fe.Type = "numberMin"
				fe.Message = fmt.Sprintf("The '%s' field must be greater than or equal to %d.", f.Name, -maxExactInt)
			}
			return nil, fe
		}
	}

	var rules []string
	if f.Lower != nil {
		rules = append(rules, "gte="+formatBound(*f.Lower))
	}
	if f.Upper != nil {
		rules = append(rules, "lte="+formatBound(*f.Upper))
	}
	if len(rules) > 0 {
		if err := validate.Var(num, strings.Join(rules, ",")); err != nil {
			fe := &FieldError{Field: f.Name, Actual: num}
			if firstTag(err) == "gte" {
				fe.Type = "numberMin"
				fe.Message = fmt.Sprintf("The '%s' field must be greater than or equal to %s.", f.Name, formatBound(*f.Lower))
			} else {
				fe.Type = "numberMax"
				fe.Message = fmt.Sprintf("The '%s' field must be less than or equal to %s.", f.Name, formatBound(*f.Upper))
			}
			return nil, fe
		}
	}

	if f.Type == Integer {
		return whole, nil
	}
	return math.Round(num*100) / 100, nil
}

// maxExactInt is the largest integer every float64 below it represents exactly.
const maxExactInt = 1<<53 - 1

// exactInt returns raw as an int64 when it can be read without loss: integer
// literals within the int64 range, or floats within ±maxExactInt.
func exactInt(raw interface{}, num float64) (int64, bool) {
	switch v := raw.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	}
	if math.Abs(num) > maxExactInt {
		return 0, false
	}
	return int64(num), true
}

func checkDate(f Field, raw interface{}) (interface{}, *FieldError) {
	str, ok := raw.(string)
	if ok {
		if t, err := dateparse.ParseIn(strings.TrimSpace(str), time.UTC); err == nil {
			return t, nil
		}
	}
	return nil, &FieldError{Type: "date", Field: f.Name, Actual: raw,
		Message: fmt.Sprintf("The '%s' field must be a Date.", f.Name)}
}

func firstTag(err error) string {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		return verrs[0].Tag()
	}
	return ""
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
