// Package forms implements the declarative validation and sanitization
// pipeline applied to HTML form submissions before any store mutation.
//
// A Pipeline is an ordered list of per-field rule chains. Running it checks
// every field and collects one failure per failing field, so the caller can
// re-render the form with the complete list.
// Sanitization (trim + HTML escape, plus integer/date coercion through the
// typed getters) is applied whether or not validation passed, so re-rendered
// forms always reflect the sanitized input back to the user.
package forms

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Failure is a single validation failure for one field.
type Failure struct {
	Field   string
	Message string
}

type check struct {
	ok  func(value string) bool
	msg string
}

// Field is a rule chain for one form field.
type Field struct {
	name     string
	optional bool // empty value skips the checks instead of failing them
	checks   []check
}

// NewField starts a rule chain for the named field.
func NewField(name string) *Field {
	return &Field{name: name}
}

// Optional marks the field with checkFalsy semantics: an empty or absent
// value skips the remaining checks rather than failing them.
func (f *Field) Optional() *Field {
	f.optional = true
	return f
}

// Required fails with msg unless the trimmed value is non-empty.
func (f *Field) Required(msg string) *Field {
	f.checks = append(f.checks, check{func(v string) bool { return len(v) >= 1 }, msg})
	return f
}

// Length fails with msg unless the trimmed value length is within [min, max].
func (f *Field) Length(min, max int, msg string) *Field {
	f.checks = append(f.checks, check{func(v string) bool { return len(v) >= min && len(v) <= max }, msg})
	return f
}

var (
	alphanumericRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	numericRe      = regexp.MustCompile(`^[0-9]+$`)
)

// Alphanumeric fails with msg unless the value contains only letters and digits.
func (f *Field) Alphanumeric(msg string) *Field {
	f.checks = append(f.checks, check{alphanumericRe.MatchString, msg})
	return f
}

// Numeric fails with msg unless the value contains only digits.
func (f *Field) Numeric(msg string) *Field {
	f.checks = append(f.checks, check{numericRe.MatchString, msg})
	return f
}

// Integer fails with msg unless the value parses as a base-10 integer.
func (f *Field) Integer(msg string) *Field {
	f.checks = append(f.checks, check{func(v string) bool {
		_, err := strconv.Atoi(v)
		return err == nil
	}, msg})
	return f
}

// ISODate fails with msg unless the value parses as an ISO-8601 calendar date.
func (f *Field) ISODate(msg string) *Field {
	f.checks = append(f.checks, check{func(v string) bool {
		_, err := time.Parse("2006-01-02", v)
		return err == nil
	}, msg})
	return f
}

// Pipeline is an ordered set of field rule chains.
type Pipeline []*Field

// Run evaluates every rule against the raw form values and returns the
// sanitized values together with the ordered list of failures. An empty
// failure slice means the submission is valid.
func (p Pipeline) Run(get func(name string) string) (Values, []Failure) {
	values := Values{raw: make(map[string]string, len(p))}
	var failures []Failure

	for _, f := range p {
		trimmed := strings.TrimSpace(get(f.name))
		values.raw[f.name] = trimmed

		if f.optional && trimmed == "" {
			continue
		}
		for _, c := range f.checks {
			if !c.ok(trimmed) {
				// One failure per field: later checks on the same field would
				// only repeat the news. Other fields are still checked.
				failures = append(failures, Failure{Field: f.name, Message: c.msg})
				break
			}
		}
	}
	return values, failures
}

// Values holds the sanitized form values keyed by field name.
type Values struct {
	raw map[string]string
}

// String returns the trimmed, HTML-escaped value of the field.
func (v Values) String(name string) string {
	return html.EscapeString(v.raw[name])
}

// Int returns the field coerced to an integer, zero when it does not parse.
func (v Values) Int(name string) int {
	n, _ := strconv.Atoi(v.raw[name])
	return n
}

// Date returns the field coerced to a date, nil when empty or unparsable.
func (v Values) Date(name string) *time.Time {
	t, err := time.Parse("2006-01-02", v.raw[name])
	if err != nil {
		return nil
	}
	return &t
}
