package benchmarks_test

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/reoring/pathex"
	"github.com/reoring/pathex/codec"
	"github.com/reoring/pathex/templates"
)

// ---- Helpers ----

type resource struct {
	ID   int64  `path:"id" json:"id"`
	Name string `path:"name" json:"name"`
}

const (
	candidate = "/dynamic/resource/42/axum"
	pattern   = "/dynamic/resource/{id}/{name}"
)

// wideTemplate returns a template with n placeholders and a matching path.
func wideTemplate(n int) (string, string) {
	var tpl, path strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&tpl, "/p%d/{k%03d}", i, i)
		fmt.Fprintf(&path, "/p%d/%d", i, i)
	}
	return path.String(), tpl.String()
}

// tableOf builds a Set whose only matching template is the last one.
func tableOf(tb testing.TB, n int) *templates.Set {
	tb.Helper()
	s := templates.NewSet()
	for i := 0; i < n; i++ {
		t := templates.Template{Name: "t" + strconv.Itoa(i), URITemplate: "/miss" + strconv.Itoa(i) + "/{id}/{name}"}
		if err := s.AddTemplate(t); err != nil {
			tb.Fatalf("add: %v", err)
		}
	}
	if err := s.AddTemplate(templates.Template{Name: "hit", URITemplate: pattern}); err != nil {
		tb.Fatalf("add: %v", err)
	}
	return s
}

// ---- Benchmarks ----

func BenchmarkExtractParams(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := pathex.ExtractParams(candidate, pattern); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExtract_Into(b *testing.B) {
	shape := pathex.Into[resource]()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := pathex.Extract(candidate, pattern, shape); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExtract_JSONBridge(b *testing.B) {
	shape := codec.JSON[resource]()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := pathex.Extract(candidate, pattern, shape); err != nil {
			b.Fatal(err)
		}
	}
}

// The record phase fails for tuple types, so this measures the fallback.
func BenchmarkExtract_TupleFallback(b *testing.B) {
	shape := pathex.Into[pathex.Tuple2[int64, string]]()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := pathex.Extract(candidate, pattern, shape); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExtractParams_Wide(b *testing.B) {
	for _, n := range []int{4, 16, 64} {
		path, tpl := wideTemplate(n)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := pathex.ExtractParams(path, tpl); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkResolve_Table(b *testing.B) {
	for _, n := range []int{1, 10, 100} {
		s := tableOf(b, n)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := s.Resolve(candidate); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
