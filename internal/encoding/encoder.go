package encoding

import (
	"fmt"
	"sort"
)

// LabelEncoder maps a fixed, ordered set of labels to integer codes. The code
// of a label is its index in Classes, matching how the encoders were fit.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

// NewLabelEncoder builds an encoder from classes in their fitted order.
func NewLabelEncoder(classes []string) (*LabelEncoder, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("encoder has no classes")
	}
	idx := make(map[string]int, len(classes))
	for i, c := range classes {
		if _, dup := idx[c]; dup {
			return nil, fmt.Errorf("duplicate class %q", c)
		}
		idx[c] = i
	}
	return &LabelEncoder{classes: append([]string(nil), classes...), index: idx}, nil
}

// Classes returns a copy of the known labels in encoder order.
func (e *LabelEncoder) Classes() []string {
	return append([]string(nil), e.classes...)
}

// Has reports whether label is a known class.
func (e *LabelEncoder) Has(label string) bool {
	_, ok := e.index[label]
	return ok
}

// Transform returns the code for label.
func (e *LabelEncoder) Transform(label string) (int, error) {
	code, ok := e.index[label]
	if !ok {
		return 0, fmt.Errorf("unknown label %q", label)
	}
	return code, nil
}

// Inverse returns the label for code.
func (e *LabelEncoder) Inverse(code int) (string, error) {
	if code < 0 || code >= len(e.classes) {
		return "", fmt.Errorf("code %d out of range [0,%d)", code, len(e.classes))
	}
	return e.classes[code], nil
}

// Set holds one encoder per categorical field. It is read-only once built.
type Set struct {
	encoders map[string]*LabelEncoder
}

// NewSet builds a Set from field -> classes.
func NewSet(classes map[string][]string) (*Set, error) {
	s := &Set{encoders: make(map[string]*LabelEncoder, len(classes))}
	for field, cls := range classes {
		enc, err := NewLabelEncoder(cls)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		s.encoders[field] = enc
	}
	return s, nil
}

// Encoder returns the encoder for field, if any.
func (s *Set) Encoder(field string) (*LabelEncoder, bool) {
	if s == nil {
		return nil, false
	}
	e, ok := s.encoders[field]
	return e, ok
}

// Fields returns the encoded field names, sorted.
func (s *Set) Fields() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.encoders))
	for f := range s.encoders {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Options returns the valid labels for field: the encoder's classes in encoder
// order when an encoder exists, otherwise fallback unchanged.
func (s *Set) Options(field string, fallback []string) []string {
	if e, ok := s.Encoder(field); ok {
		return e.Classes()
	}
	return fallback
}
