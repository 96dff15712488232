// Package templates keeps an ordered table of URI templates and static
// resources and resolves concrete URIs against it with pathex.
//
// Templates are tried in declaration order. A template whose segment count
// or literals do not fit the URI is skipped; the first one that matches
// wins. A Set is safe for concurrent use.
package templates

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/reoring/pathex"
	"github.com/reoring/pathex/i18n"
)

// CodeNotFound is reported when no resource or template matches a URI.
const CodeNotFound = "not_found"

// ErrNotFound is wrapped by every lookup miss.
var ErrNotFound = errors.New(CodeNotFound)

// Template is a parameterized URI such as "file:///documents/{name}".
type Template struct {
	Name        string `yaml:"name" json:"name"`
	URITemplate string `yaml:"uri_template" json:"uriTemplate"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	MIMEType    string `yaml:"mime_type,omitempty" json:"mimeType,omitempty"`
	// Text is the body returned by Read. "{name}" references are replaced
	// with the raw text of the matching parameter.
	Text string `yaml:"text,omitempty" json:"text,omitempty"`
	// Types pins placeholders to a scalar kind ("integer", "float",
	// "boolean" or "text"). A URI whose value coerces to another kind does
	// not match this template.
	Types map[string]string `yaml:"types,omitempty" json:"types,omitempty"`

	// Parsed once in AddTemplate and only read afterwards.
	pattern pathex.Pattern
	kinds   map[string]pathex.Kind
}

// Pattern returns a copy of the parsed URI template.
func (t Template) Pattern() pathex.Pattern {
	return pathex.Pattern{Segments: append([]pathex.Segment(nil), t.pattern.Segments...)}
}

// Resource is a static entry addressed by its exact URI.
type Resource struct {
	URI         string `yaml:"uri" json:"uri"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	MIMEType    string `yaml:"mime_type,omitempty" json:"mimeType,omitempty"`
	Text        string `yaml:"text,omitempty" json:"text,omitempty"`
}

// Match is the outcome of Resolve.
type Match struct {
	Template Template
	Params   pathex.ParameterSet
}

// Content is what Read returns for a URI.
type Content struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType,omitempty"`
	Text     string `json:"text"`
}

// Option configures a Set.
type Option func(*Set)

// WithLogger sets the logger used for resolution traces. Default: zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(s *Set) {
		if l != nil {
			s.logger = l
		}
	}
}

// Set is an ordered template table plus static resources.
type Set struct {
	mu        sync.RWMutex
	resources []Resource
	templates []Template
	names     map[string]struct{}
	logger    *zap.Logger
}

// NewSet returns an empty Set.
func NewSet(opts ...Option) *Set {
	s := &Set{names: map[string]struct{}{}, logger: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// AddResource registers a static resource. The URI and name must be
// non-empty and the name unused.
func (s *Set) AddResource(r Resource) error {
	if r.URI == "" {
		return fmt.Errorf("templates: resource %q: empty uri", r.Name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.claimName(r.Name); err != nil {
		return err
	}
	s.resources = append(s.resources, r)
	return nil
}

// AddTemplate appends a template after the ones already registered.
func (s *Set) AddTemplate(t Template) error {
	if t.URITemplate == "" {
		return fmt.Errorf("templates: template %q: empty uri_template", t.Name)
	}
	t.pattern = pathex.ParsePattern(t.URITemplate)
	kinds, err := parseTypes(t)
	if err != nil {
		return err
	}
	t.kinds = kinds
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.claimName(t.Name); err != nil {
		return err
	}
	s.templates = append(s.templates, t)
	return nil
}

var kindNames = map[string]pathex.Kind{
	pathex.KindInteger.String(): pathex.KindInteger,
	pathex.KindFloat.String():   pathex.KindFloat,
	pathex.KindBoolean.String(): pathex.KindBoolean,
	pathex.KindText.String():    pathex.KindText,
}

func parseTypes(t Template) (map[string]pathex.Kind, error) {
	if len(t.Types) == 0 {
		return nil, nil
	}
	placeholders := map[string]bool{}
	for _, p := range t.pattern.Placeholders() {
		placeholders[p] = true
	}
	kinds := make(map[string]pathex.Kind, len(t.Types))
	for name, kind := range t.Types {
		if !placeholders[name] {
			return nil, fmt.Errorf("templates: template %q: type for unknown placeholder %q", t.Name, name)
		}
		k, ok := kindNames[kind]
		if !ok {
			return nil, fmt.Errorf("templates: template %q: unknown type %q for %q", t.Name, kind, name)
		}
		kinds[name] = k
	}
	return kinds, nil
}

// mistyped returns the first placeholder (by name) whose value has the
// wrong kind.
func (t Template) mistyped(ps pathex.ParameterSet) (string, bool) {
	for _, name := range ps.Keys() {
		want, ok := t.kinds[name]
		if !ok {
			continue
		}
		if v, _ := ps.Get(name); v.Kind() != want {
			return name, true
		}
	}
	return "", false
}

func (s *Set) claimName(name string) error {
	if name == "" {
		return errors.New("templates: empty name")
	}
	if _, dup := s.names[name]; dup {
		return fmt.Errorf("templates: duplicate name %q", name)
	}
	s.names[name] = struct{}{}
	return nil
}

// Resources returns a copy of the static resources in registration order.
func (s *Set) Resources() []Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Resource(nil), s.resources...)
}

// Templates returns a copy of the templates in declaration order.
func (s *Set) Templates() []Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Template(nil), s.templates...)
}

// Resolve returns the first template that structurally matches uri and
// whose typed placeholders have the declared kinds. Misses wrap ErrNotFound.
func (s *Set) Resolve(uri string) (Match, error) {
	candidate := pathex.Split(uri)
	for _, t := range s.Templates() {
		ps, err := pathex.Match(candidate, t.pattern)
		if err == nil {
			if name, ok := t.mistyped(ps); ok {
				s.logger.Debug("template skipped",
					zap.String("uri", uri),
					zap.String("template", t.Name),
					zap.String("mistyped", name))
				continue
			}
			s.logger.Debug("template matched",
				zap.String("uri", uri),
				zap.String("template", t.Name),
				zap.Strings("params", ps.Keys()))
			return Match{Template: t, Params: ps}, nil
		}
		if errors.Is(err, pathex.ErrMissingParams) || errors.Is(err, pathex.ErrInvalidFormat) {
			s.logger.Debug("template skipped",
				zap.String("uri", uri),
				zap.String("template", t.Name),
				zap.Error(err))
			continue
		}
		return Match{}, fmt.Errorf("templates: resolve %q with %q: %w", uri, t.Name, err)
	}
	return Match{}, notFound(uri)
}

// ResolveInto resolves uri and decodes the parameters with shape.
func ResolveInto[T any](s *Set, uri string, shape pathex.Shape[T]) (T, error) {
	var zero T
	m, err := s.Resolve(uri)
	if err != nil {
		return zero, err
	}
	v, err := pathex.Decode(m.Params, shape)
	if err != nil {
		return zero, fmt.Errorf("templates: decode %q with %q: %w", uri, m.Template.Name, err)
	}
	return v, nil
}

// Read returns the content for uri. Static resources are matched by exact
// URI before any template is tried. A template without Text renders its
// parameters as a JSON object.
func (s *Set) Read(uri string) (Content, error) {
	s.mu.RLock()
	for _, r := range s.resources {
		if r.URI == uri {
			s.mu.RUnlock()
			return Content{URI: uri, MIMEType: r.MIMEType, Text: r.Text}, nil
		}
	}
	s.mu.RUnlock()

	m, err := s.Resolve(uri)
	if err != nil {
		return Content{}, err
	}
	text, err := render(m.Template.Text, m.Params)
	if err != nil {
		return Content{}, fmt.Errorf("templates: render %q: %w", m.Template.Name, err)
	}
	return Content{URI: uri, MIMEType: m.Template.MIMEType, Text: text}, nil
}

func render(body string, ps pathex.ParameterSet) (string, error) {
	if body == "" {
		b, err := json.Marshal(ps)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	keys := ps.Keys()
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		v, _ := ps.Get(k)
		pairs = append(pairs, "{"+k+"}", v.Raw())
	}
	return strings.NewReplacer(pairs...).Replace(body), nil
}

func notFound(uri string) error {
	return fmt.Errorf("%w: %s (uri=%q)", ErrNotFound, i18n.T(CodeNotFound, nil), uri)
}
