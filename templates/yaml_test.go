package templates_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/pathex/templates"
)

const table = `
resources:
  - uri: docs://readme
    name: Project README
    mime_type: text/markdown
    text: "# readme"
templates:
  - name: Dynamic Resource
    uri_template: test://dynamic/resource/{id}
    text: "resource {id}"
    types:
      id: integer
---
templates:
  - name: Document
    uri_template: file:///documents/{name}
    mime_type: text/plain
`

func TestLoad_MultiDocument(t *testing.T) {
	s, err := templates.Load(strings.NewReader(table))
	require.NoError(t, err)

	names := []string{}
	for _, tpl := range s.Templates() {
		names = append(names, tpl.Name)
	}
	assert.Equal(t, []string{"Dynamic Resource", "Document"}, names)
	require.Len(t, s.Resources(), 1)
	assert.Equal(t, []string{"id"}, s.Templates()[0].Pattern().Placeholders())

	c, err := s.Read("docs://readme")
	require.NoError(t, err)
	assert.Equal(t, "# readme", c.Text)

	_, err = s.Resolve("test://dynamic/resource/abc")
	require.ErrorIs(t, err, templates.ErrNotFound)

	m, err := s.Resolve("file:///documents/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "Document", m.Template.Name)
}

func TestLoad_DuplicateKey(t *testing.T) {
	_, err := templates.Load(strings.NewReader("templates:\n  - name: a\n    name: b\n    uri_template: /x\n"))
	var de *templates.DuplicateKeyError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "name", de.Key)
	assert.Equal(t, 2, de.FirstLine)
	assert.Equal(t, 3, de.Line)
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown top-level key":  "routes: []\n",
		"scalar document":        "hello\n",
		"duplicate across docs":  "templates:\n  - {name: a, uri_template: /a}\n---\ntemplates:\n  - {name: a, uri_template: /b}\n",
		"missing uri_template":   "templates:\n  - name: a\n",
		"malformed yaml":         "templates: [\n",
		"resource without a uri": "resources:\n  - name: r\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := templates.Load(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(table), 0o600))

	s, err := templates.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, s.Templates(), 2)

	_, err = templates.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
