package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError is one itemized validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors is a list of field errors returned as a single error value.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return strings.Join(parts, "; ")
}

// Field builds an Errors with a single entry.
func Field(field, message string) Errors {
	return Errors{{Field: field, Message: message}}
}

var registerOnce sync.Once

// RegisterTagNames makes gin's validator report json/uri/form names instead of Go field names.
func RegisterTagNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "uri", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	})
}

// Collect converts any validation-class error into field errors.
// It reports false for errors that are not caused by client input.
func Collect(err error) (Errors, bool) {
	if err == nil {
		return nil, false
	}

	var fieldErrs Errors
	if errors.As(err, &fieldErrs) {
		return fieldErrs, true
	}
	if details, ok := FromOzzo(err); ok {
		return details, true
	}
	return FromBinding(err)
}

// FromOzzo flattens ozzo validation.Errors, sorted by field for stable output.
func FromOzzo(err error) (Errors, bool) {
	var internal ozzo.InternalError
	if errors.As(err, &internal) {
		return nil, false
	}

	var verrs ozzo.Errors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	out := Errors{}
	flattenOzzo("", verrs, &out)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out, true
}

func flattenOzzo(prefix string, verrs ozzo.Errors, out *Errors) {
	for field, err := range verrs {
		name := field
		if prefix != "" {
			name = prefix + "." + field
		}
		var nested ozzo.Errors
		if errors.As(err, &nested) {
			flattenOzzo(name, nested, out)
			continue
		}
		*out = append(*out, FieldError{Field: name, Message: err.Error()})
	}
}

// FromBinding converts errors produced by gin binding (validator, strconv, json decoding).
func FromBinding(err error) (Errors, bool) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(Errors, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{Field: fe.Field(), Message: tagMessage(fe)})
		}
		return out, true
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return Field("id", "must be an integer"), true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return Field(typeErr.Field, fmt.Sprintf("must be of type %s", typeErr.Type.String())), true
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return Field("body", "must be valid JSON"), true
	}
	if errors.Is(err, io.EOF) {
		return Field("body", "is required"), true
	}

	return nil, false
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "numeric", "number":
		return "must be a number"
	default:
		return "is invalid"
	}
}

type idURI struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// BindID parses the :id path parameter as a positive integer.
func BindID(c *gin.Context) (int64, error) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		if details, ok := FromBinding(err); ok {
			return 0, details
		}
		return 0, Field("id", "must be an integer")
	}
	return uri.ID, nil
}
