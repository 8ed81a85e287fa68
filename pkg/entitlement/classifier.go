package entitlement

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/Sudhikumaran/ripple-ai/pkg/metadata"
)

// Partition names reported in Field.Partition.
const (
	PartitionPrivate = "private"
	PartitionPublic  = "public"
)

// Field is one top-level metadata entry examined by predicates.
type Field struct {
	Partition string
	Name      string
	Value     any
}

// Predicate reports whether a field marks the account as premium.
type Predicate func(Field) bool

// Classifier decides premium versus free from account metadata. It is
// permissive: any matching predicate on any field of either partition wins.
type Classifier struct {
	predicates []Predicate
}

// NewClassifier builds a classifier from predicates. With no predicates
// every account is free.
func NewClassifier(predicates ...Predicate) *Classifier {
	return &Classifier{predicates: predicates}
}

// DefaultClassifier uses DefaultRules.
func DefaultClassifier() *Classifier {
	return DefaultRules().Classifier()
}

// Classify reports whether the account is premium.
func (c *Classifier) Classify(a metadata.Account) bool {
	return c.scan(PartitionPrivate, a.Private) || c.scan(PartitionPublic, a.Public)
}

func (c *Classifier) scan(partition string, bag map[string]any) bool {
	for name, value := range bag {
		f := Field{Partition: partition, Name: name, Value: value}
		for _, p := range c.predicates {
			if p(f) {
				return true
			}
		}
	}
	return false
}

// FlagPredicate matches a field with one of the given names holding the
// boolean true. String values such as "true" do not match.
func FlagPredicate(names ...string) Predicate {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return func(f Field) bool {
		if _, ok := set[f.Name]; !ok {
			return false
		}
		b, ok := f.Value.(bool)
		return ok && b
	}
}

// NamedFieldPredicate matches a field whose name is in fields and whose value
// contains one of the keywords. Field names compare case-insensitively.
func NamedFieldPredicate(fields, keywords []string) Predicate {
	set := make(map[string]struct{}, len(fields))
	for _, n := range fields {
		set[fold(n)] = struct{}{}
	}
	match := KeywordMatcher(keywords)
	return func(f Field) bool {
		if _, ok := set[fold(f.Name)]; !ok {
			return false
		}
		return match(f.Value)
	}
}

// AnyValuePredicate matches any field whose value contains one of the keywords.
func AnyValuePredicate(keywords []string) Predicate {
	match := KeywordMatcher(keywords)
	return func(f Field) bool {
		return match(f.Value)
	}
}

// KeywordMatcher returns a value test that is true for a string containing any
// keyword after Unicode case folding, or for a list with such a string element.
// Other value types never match.
func KeywordMatcher(keywords []string) func(any) bool {
	folded := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = fold(k); k != "" {
			folded = append(folded, k)
		}
	}
	var match func(any) bool
	match = func(v any) bool {
		switch val := v.(type) {
		case string:
			s := fold(val)
			for _, k := range folded {
				if strings.Contains(s, k) {
					return true
				}
			}
		case []string:
			for _, item := range val {
				if match(item) {
					return true
				}
			}
		case []any:
			for _, item := range val {
				if s, ok := item.(string); ok && match(s) {
					return true
				}
			}
		}
		return false
	}
	return match
}

// fold creates a Caser per call: cases.Caser is stateful and not safe for
// concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}
