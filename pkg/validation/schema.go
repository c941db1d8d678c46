// Package validation describes form constraints as data. A Schema lists fields and
// their rules; renderers can walk the same Schema to place messages next to inputs.
package validation

import (
	"fmt"
	"sort"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type Kind int

const (
	Required Kind = iota
	MinLength
	Email
	MustBeTrue
	MatchesField
)

func (k Kind) String() string {
	switch k {
	case Required:
		return "required"
	case MinLength:
		return "minLength"
	case Email:
		return "email"
	case MustBeTrue:
		return "mustBeTrue"
	case MatchesField:
		return "matchesField"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type Rule struct {
	Kind    Kind
	Min     int
	Field   string
	Message string
}

type Field struct {
	Name string
	// Optional fields skip their rules while empty.
	Optional bool
	Rules    []Rule
}

type Schema struct {
	Name   string
	Fields []Field
}

// Values is the flattened form input a schema is checked against.
type Values map[string]any

type Form interface {
	Values() Values
}

type FieldErrors map[string][]string

// Error carries the failed schema and its field-level messages.
type Error struct {
	Schema string
	Fields FieldErrors
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.Fields[name], ", "))
	}
	return fmt.Sprintf("%s form is invalid: %s", e.Schema, strings.Join(parts, "; "))
}

// Check returns the field errors for values; a nil result means the input is valid.
// Every rule of a field is evaluated so a field can carry several messages.
func (s Schema) Check(values Values) FieldErrors {
	var result FieldErrors
	for _, field := range s.Fields {
		value := values[field.Name]
		if field.Optional && isEmpty(value) {
			continue
		}
		for _, rule := range field.Rules {
			if err := ozzo.Validate(rule.subject(value), rule.ozzoRules(values)...); err == nil {
				continue
			}
			if result == nil {
				result = FieldErrors{}
			}
			result[field.Name] = append(result[field.Name], rule.Message)
		}
	}
	return result
}

// Validate checks the form and wraps failures into *Error.
func (s Schema) Validate(form Form) error {
	if fields := s.Check(form.Values()); fields != nil {
		return &Error{Schema: s.Name, Fields: fields}
	}
	return nil
}

// Field looks up a field definition by name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// subject is the value the rule sees; Required ignores surrounding blanks.
func (r Rule) subject(value any) any {
	if r.Kind == Required {
		return trimmed(value)
	}
	return value
}

// ozzoRules expands the rule into its ozzo-validation chain. Length and format
// rules in ozzo accept empty input, so each chain starts with Required.
func (r Rule) ozzoRules(values Values) []ozzo.Rule {
	switch r.Kind {
	case Required:
		return []ozzo.Rule{ozzo.Required.Error(r.Message)}
	case MinLength:
		return []ozzo.Rule{ozzo.Required.Error(r.Message), ozzo.RuneLength(r.Min, 0).Error(r.Message)}
	case Email:
		return []ozzo.Rule{ozzo.Required.Error(r.Message), is.EmailFormat.Error(r.Message)}
	case MustBeTrue:
		return []ozzo.Rule{ozzo.Required.Error(r.Message), ozzo.In(true).Error(r.Message)}
	case MatchesField:
		other := values[r.Field]
		return []ozzo.Rule{ozzo.By(func(value interface{}) error {
			if value != other {
				return ozzo.NewError("validation_matches_field", r.Message)
			}
			return nil
		})}
	default:
		return []ozzo.Rule{ozzo.By(func(interface{}) error {
			return ozzo.NewError("validation_unknown_rule", r.Kind.String())
		})}
	}
}

func trimmed(value any) any {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return value
}

func isEmpty(value any) bool {
	return ozzo.IsEmpty(trimmed(value))
}
