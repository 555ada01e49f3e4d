package form

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	gerr "github.com/jekabolt/salesboard/internal/errors"
)

// ValidateStruct runs each rule on its own so every failing field is reported,
// not only the first one. The result wraps gerr.ErrValidation.
func ValidateStruct(structField interface{}, rules ...*validation.FieldRules) error {
	var msgs []string

	for _, rule := range rules {
		err := validation.ValidateStruct(structField, rule)
		if err == nil {
			continue
		}
		var ve validation.Errors
		if !errors.As(err, &ve) {
			// internal error from a rule, not a user mistake
			return err
		}
		msgs = append(msgs, flatten("", ve)...)
	}
	if len(msgs) == 0 {
		return nil
	}
	sort.Strings(msgs)
	return fmt.Errorf("%w: %s", gerr.ErrValidation, strings.Join(msgs, " "))
}

// flatten turns nested field errors (items.0.target) into readable sentences.
func flatten(prefix string, ve validation.Errors) []string {
	var out []string
	for key, err := range ve {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		var nested validation.Errors
		if errors.As(err, &nested) {
			out = append(out, flatten(name, nested)...)
			continue
		}
		out = append(out, formatErrMsg(name+": "+err.Error()))
	}
	return out
}

func formatErrMsg(s string) string {
	return ucfirst(strings.Trim(s, " .")) + "."
}

func ucfirst(str string) string {
	for i, v := range str {
		return string(unicode.ToUpper(v)) + str[i+len(string(v)):]
	}
	return ""
}
