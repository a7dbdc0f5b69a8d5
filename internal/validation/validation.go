// Package validation checks form fields against declarative rules and marks
// each field valid or invalid as a side effect.
package validation

import (
	"regexp"
	"unicode"
)

// Field is a form input. Invalid mirrors the "is-invalid" marker a renderer
// shows next to the input.
type Field struct {
	Name    string
	Value   string
	Invalid bool
}

// Matcher reports whether a value has the expected shape. *regexp.Regexp
// satisfies it.
type Matcher interface {
	MatchString(s string) bool
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(string) bool

func (f MatcherFunc) MatchString(s string) bool { return f(s) }

// Rule validates one field. Without Pattern or CompareTo the field only has
// to be non-empty. Pattern takes precedence over CompareTo.
type Rule struct {
	Field     *Field
	Pattern   Matcher
	CompareTo *Field
}

var (
	// Email is the address shape accepted by the signup and login forms.
	Email = regexp.MustCompile(`^\w+([-+.']\w+)*@\w+([-.]\w+)*\.\w+([-.]\w+)*$`)

	// Name is a capitalized Cyrillic word, optionally followed by spaces.
	Name = regexp.MustCompile(`^[А-Я][а-я]+\s*$`)

	// Password needs at least eight latin letters or digits, with at least
	// one digit, one lowercase and one uppercase letter.
	Password = MatcherFunc(strongPassword)

	passwordCharset = regexp.MustCompile(`^[0-9a-zA-Z]{8,}$`)
)

func strongPassword(s string) bool {
	if !passwordCharset.MatchString(s) {
		return false
	}
	var digit, lower, upper bool
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		}
	}
	return digit && lower && upper
}

// ValidateForm evaluates every rule, so every field ends up marked, and
// reports whether all of them passed.
func ValidateForm(rules []Rule) bool {
	valid := true
	for _, r := range rules {
		if !ValidateField(r) {
			valid = false
		}
	}
	return valid
}

// ValidateField checks a single rule and updates the field's marker. The
// comparison field is read at call time.
func ValidateField(r Rule) bool {
	v := r.Field.Value
	ok := v != ""
	switch {
	case r.Pattern != nil:
		ok = ok && r.Pattern.MatchString(v)
	case r.CompareTo != nil:
		ok = ok && v == r.CompareTo.Value
	}
	r.Field.Invalid = !ok
	return ok
}

// Required returns a rule that only checks the field is non-empty.
func Required(f *Field) Rule {
	return Rule{Field: f}
}
