package templates

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DuplicateKeyError reports a key repeated within one YAML mapping, with the
// positions of both occurrences.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// document is one YAML document of a template table.
type document struct {
	Resources []Resource `yaml:"resources"`
	Templates []Template `yaml:"templates"`
}

// Load reads a multi-document YAML stream. Each document may carry
// "resources" and "templates" lists; templates keep their order across
// documents. Duplicate or unknown keys are errors.
//
//	resources:
//	  - uri: docs://readme
//	    name: Project README
//	templates:
//	  - name: Document
//	    uri_template: file:///documents/{name}
func Load(r io.Reader, opts ...Option) (*Set, error) {
	s := NewSet(opts...)
	dec := yaml.NewDecoder(r)
	for n := 0; ; n++ {
		var root yaml.Node
		if err := dec.Decode(&root); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("templates: document %d: %w", n, err)
		}
		if len(root.Content) == 0 {
			continue
		}
		if err := checkMapping(root.Content[0], true); err != nil {
			return nil, fmt.Errorf("templates: document %d: %w", n, err)
		}
		var doc document
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("templates: document %d: %w", n, err)
		}
		for _, res := range doc.Resources {
			if err := s.AddResource(res); err != nil {
				return nil, fmt.Errorf("document %d: %w", n, err)
			}
		}
		for _, t := range doc.Templates {
			if err := s.AddTemplate(t); err != nil {
				return nil, fmt.Errorf("document %d: %w", n, err)
			}
		}
	}
	return s, nil
}

// LoadFile is Load on the file at path.
func LoadFile(path string, opts ...Option) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}
	defer f.Close()
	return Load(f, opts...)
}

var knownTopLevel = map[string]bool{"resources": true, "templates": true}

// checkMapping walks n and rejects duplicate keys. At the top level it also
// rejects keys other than "resources" and "templates".
func checkMapping(n *yaml.Node, top bool) error {
	switch n.Kind {
	case yaml.MappingNode:
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if pos, dup := first[k.Value]; dup {
				return &DuplicateKeyError{Key: k.Value, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			}
			first[k.Value] = [2]int{k.Line, k.Column}
			if top && !knownTopLevel[k.Value] {
				return fmt.Errorf("unknown key %q at %d:%d", k.Value, k.Line, k.Column)
			}
			if err := checkMapping(n.Content[i+1], false); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for _, c := range n.Content {
			if err := checkMapping(c, false); err != nil {
				return err
			}
		}
	case yaml.ScalarNode:
		if top && n.Tag != "!!null" {
			return fmt.Errorf("expected a mapping at %d:%d", n.Line, n.Column)
		}
	}
	return nil
}
