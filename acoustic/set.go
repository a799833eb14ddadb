package acoustic

import "fmt"

// TemplateSet is an ordered collection of class templates. The order is the
// class enumeration order used to break classification ties.
type TemplateSet struct {
	templates []*Template
	byLabel   map[string]*Template
}

// NewTemplateSet builds a set in argument order. Labels must be unique and
// all templates must share one shape.
func NewTemplateSet(templates ...*Template) (*TemplateSet, error) {
	s := &TemplateSet{byLabel: make(map[string]*Template, len(templates))}
	for _, t := range templates {
		if t == nil {
			return nil, fmt.Errorf("acoustic: nil template")
		}
		if _, dup := s.byLabel[t.Label()]; dup {
			return nil, fmt.Errorf("acoustic: duplicate template label %q", t.Label())
		}
		if len(s.templates) > 0 {
			first := s.templates[0]
			if t.NumFrames() != first.NumFrames() || t.Dim() != first.Dim() {
				return nil, fmt.Errorf("template %q is %dx%d, %q is %dx%d: %w",
					t.Label(), t.NumFrames(), t.Dim(), first.Label(), first.NumFrames(), first.Dim(), ErrShapeMismatch)
			}
		}
		s.templates = append(s.templates, t)
		s.byLabel[t.Label()] = t
	}
	return s, nil
}

// Len returns the number of templates.
func (s *TemplateSet) Len() int { return len(s.templates) }

// Labels returns the labels in enumeration order.
func (s *TemplateSet) Labels() []string {
	labels := make([]string, len(s.templates))
	for i, t := range s.templates {
		labels[i] = t.Label()
	}
	return labels
}

// Get returns the template for label.
func (s *TemplateSet) Get(label string) (*Template, bool) {
	t, ok := s.byLabel[label]
	return t, ok
}

// All returns the templates in enumeration order.
func (s *TemplateSet) All() []*Template {
	out := make([]*Template, len(s.templates))
	copy(out, s.templates)
	return out
}
