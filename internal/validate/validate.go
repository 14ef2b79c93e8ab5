// Package validate wraps go-playground/validator with English messages
// keyed by the json (or csv) name of each field.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator validates structs and translates failures into per-field messages.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New creates a Validator with English translations registered. It
// panics if the translations cannot be registered, since every message
// would otherwise fall back to the raw validator error.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	uni := ut.New(english, english)
	trans, found := uni.GetTranslator("en")
	if !found {
		panic("validate: english translator not found")
	}
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		panic(fmt.Sprintf("validate: register translations: %v", err))
	}

	v.RegisterTagNameFunc(fieldName)

	return &Validator{validate: v, trans: trans}
}

// fieldName reports a field by its json tag, falling back to its csv tag.
func fieldName(fld reflect.StructField) string {
	for _, key := range []string{"json", "csv"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// Struct validates s. Validation failures are returned as *FieldsError;
// any other problem (e.g. s is not a struct) is returned unchanged.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[e.Field()] = e.Translate(v.trans)
	}
	return &FieldsError{Fields: fields}
}

// FieldsError maps field names to human-readable validation messages.
type FieldsError struct {
	Fields map[string]string
}

func (f *FieldsError) Error() string {
	keys := make([]string, 0, len(f.Fields))
	for k := range f.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = f.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
