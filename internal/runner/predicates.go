package runner

import (
	"fmt"
	"reflect"
	"regexp"
	"time"
)

// Predicate is a pure function mapping an actual value to a boolean outcome
// plus two human-readable messages: the one shown when the expectation
// fails and the one shown when it holds. Concrete comparison predicates are
// external collaborators of the engine; the ones below cover the common
// cases and the examples.
type Predicate func(actual interface{}) (ok bool, failureMessage, successMessage string)

// Not wraps a predicate: it runs the predicate, flips its boolean outcome
// and swaps the two message fields, so not(equals(x)) reads naturally in
// failure output.
func Not(p Predicate) Predicate {
	return func(actual interface{}) (bool, string, string) {
		ok, failureMessage, successMessage := p(actual)
		return !ok, successMessage, failureMessage
	}
}

// Equals matches values that are deeply equal to expected.
func Equals(expected interface{}) Predicate {
	return func(actual interface{}) (bool, string, string) {
		return reflect.DeepEqual(actual, expected),
			fmt.Sprintf("should equal %#v, got %#v", expected, actual),
			fmt.Sprintf("should not equal %#v", expected)
	}
}

// IsNil matches nil values, including typed nil pointers and slices.
func IsNil() Predicate {
	return func(actual interface{}) (bool, string, string) {
		return isNil(actual),
			fmt.Sprintf("should be nil, got %#v", actual),
			"should not be nil"
	}
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}

// Matches matches strings against a regular expression. A malformed pattern
// or a non-string subject never holds.
func Matches(pattern string) Predicate {
	re, compileErr := regexp.Compile(pattern)

	return func(actual interface{}) (bool, string, string) {
		text, isString := actual.(string)

		switch {
		case compileErr != nil:
			return false,
				fmt.Sprintf("should match %q (bad pattern: %v)", pattern, compileErr),
				fmt.Sprintf("should not match %q", pattern)
		case !isString:
			return false,
				fmt.Sprintf("should match %q, got non-string %#v", pattern, actual),
				fmt.Sprintf("should not match %q", pattern)
		}

		return re.MatchString(text),
			fmt.Sprintf("should match %q, got %q", pattern, text),
			fmt.Sprintf("should not match %q, got %q", pattern, text)
	}
}

// IsOfKind matches values whose reflect.Kind equals kind.
func IsOfKind(kind reflect.Kind) Predicate {
	return func(actual interface{}) (bool, string, string) {
		actualKind := reflect.Invalid
		if actual != nil {
			actualKind = reflect.ValueOf(actual).Kind()
		}

		return actualKind == kind,
			fmt.Sprintf("should be of kind %s, got %s", kind, actualKind),
			fmt.Sprintf("should not be of kind %s", kind)
	}
}

// CompletesWithin matches func() subjects whose execution finishes within
// limit. This is a timing comparison, not a hard timeout: the subject runs
// to completion either way.
func CompletesWithin(limit time.Duration) Predicate {
	return func(actual interface{}) (bool, string, string) {
		fn, ok := actual.(func())
		if !ok {
			return false,
				fmt.Sprintf("should complete within %s, got non-func subject %#v", limit, actual),
				fmt.Sprintf("should not complete within %s", limit)
		}

		start := time.Now()
		fn()
		elapsed := time.Since(start)

		return elapsed <= limit,
			fmt.Sprintf("should complete within %s, took %s", limit, elapsed),
			fmt.Sprintf("should not complete within %s, took %s", limit, elapsed)
	}
}
