// Package form defines the forms submitted to Anitya and the rules that
// validate and normalize them.
//
// Each form is a struct bound from the request (form-encoded or JSON) and
// implements validation.Validatable. Static rules live in `validate` tags;
// rules that depend on construction-time data, such as the backend and
// version-scheme choice lists of ProjectForm, are checked in Validate.
package form

import (
	"bytes"
	"encoding/json"
	"net/http"
	"slices"
	"strings"
)

// Choice is one option of a single-choice field.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Choices is the ordered option list of a single-choice field.
type Choices []Choice

// NewChoices builds a choice list from names: sorted, duplicates dropped,
// each option's value equal to its label. Empty names are skipped.
func NewChoices(names []string) Choices {
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	choices := make(Choices, 0, len(sorted))
	for _, name := range sorted {
		if name == "" {
			continue
		}
		choices = append(choices, Choice{Value: name, Label: name})
	}
	return choices
}

// Values returns the option values in order.
func (c Choices) Values() []string {
	values := make([]string, len(c))
	for i, choice := range c {
		values[i] = choice.Value
	}
	return values
}

// Checkbox is a boolean field with HTML checkbox semantics: "", "false",
// "off" and "0" are false, any other submitted value is true. An absent
// checkbox is false.
type Checkbox bool

// UnmarshalParam implements echo.BindUnmarshaler for form-encoded bodies.
func (b *Checkbox) UnmarshalParam(param string) error {
	*b = Checkbox(parseCheckbox(param))
	return nil
}

// UnmarshalJSON accepts both JSON booleans and strings.
func (b *Checkbox) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*b = false
		return nil
	}

	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = Checkbox(v)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*b = Checkbox(parseCheckbox(s))
	return nil
}

// Bool returns the checkbox state.
func (b Checkbox) Bool() bool { return bool(b) }

func parseCheckbox(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false", "off", "0":
		return false
	default:
		return true
	}
}

// IsSubmitted reports whether r carries a form submission.
func IsSubmitted(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

// trim strips surrounding whitespace in place, so an optional field holding
// only blanks normalizes to empty and a required one is reported missing.
func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
