package pathex_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/pathex"
	"github.com/reoring/pathex/i18n"
)

type resource struct {
	ID   int64  `path:"id"`
	Name string `path:"name"`
}

type swappedResource struct {
	ID   string `path:"id"`
	Name int64  `path:"name"`
}

type flag struct {
	On bool `path:"on"`
}

func TestExtract_RecordShape(t *testing.T) {
	got, err := pathex.ExtractInto[resource]("/dynamic/resource/42/axum", "/dynamic/resource/{id}/{name}")
	if err != nil {
		t.Fatalf("extract err: %v", err)
	}
	if diff := cmp.Diff(resource{ID: 42, Name: "axum"}, got); diff != "" {
		t.Fatalf("unexpected value (-want +got):\n%s", diff)
	}
}

func TestExtract_TupleShape_SortedKeysAlignWithDeclaredOrder(t *testing.T) {
	got, err := pathex.ExtractInto[pathex.Tuple2[int64, string]]("/dynamic/resource/42/axum", "/dynamic/resource/{id}/{name}")
	if err != nil {
		t.Fatalf("extract err: %v", err)
	}
	if got.V0 != 42 || got.V1 != "axum" {
		t.Fatalf("unexpected tuple: %+v", got)
	}
}

func TestExtract_SegmentCountMismatch(t *testing.T) {
	_, err := pathex.ExtractInto[resource]("/a/b", "/a/b/c")
	if !errors.Is(err, pathex.ErrMissingParams) {
		t.Fatalf("expected missing params, got %v", err)
	}
	want := "missing_params: missing URL parameters (expected=3, got=2)"
	if err.Error() != want {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestExtract_LiteralMismatch(t *testing.T) {
	_, err := pathex.ExtractInto[resource]("/x/42", "/y/{id}")
	if !errors.Is(err, pathex.ErrInvalidFormat) {
		t.Fatalf("expected invalid format, got %v", err)
	}
	e, ok := pathex.AsError(err)
	if !ok {
		t.Fatalf("expected *pathex.Error, got %T", err)
	}
	if e.Index != 0 {
		t.Fatalf("expected segment index 0, got %d", e.Index)
	}
	want := `invalid_format at segment 0: invalid URL parameter format (expected="y", got="x")`
	if err.Error() != want {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestExtract_BooleanRecord(t *testing.T) {
	got, err := pathex.ExtractInto[flag]("/flag/true", "/flag/{on}")
	if err != nil {
		t.Fatalf("extract err: %v", err)
	}
	if !got.On {
		t.Fatalf("expected on=true")
	}
}

func TestExtract_TypeSwappedRecord_Unsupported(t *testing.T) {
	_, err := pathex.ExtractInto[swappedResource]("/dynamic/resource/42/axum", "/dynamic/resource/{id}/{name}")
	if !errors.Is(err, pathex.ErrUnsupportedType) {
		t.Fatalf("expected unsupported type, got %v", err)
	}
	var de *pathex.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected a DecodeError in the cause chain, got %v", err)
	}
	if de.Phase != pathex.PhaseRecord || de.Path != "/id" {
		t.Fatalf("unexpected first phase error: %+v", de)
	}
}

func TestExtract_ErrorsDoNotMatchOtherSentinels(t *testing.T) {
	_, err := pathex.ExtractInto[resource]("/a", "/b")
	if errors.Is(err, pathex.ErrMissingParams) || errors.Is(err, pathex.ErrUnsupportedType) {
		t.Fatalf("invalid format must not match other sentinels: %v", err)
	}
	if _, ok := pathex.AsError(nil); ok {
		t.Fatalf("AsError(nil) must report false")
	}
}

func TestExtract_SegmentCountGateIgnoresContent(t *testing.T) {
	cases := []struct {
		candidate string
		pattern   string
	}{
		{"/", "/{id}"},
		{"/a", "/{a}/{b}"},
		{"/a/b/c", "/{x}"},
		{"test://dynamic/resource/1/extra", "test://dynamic/resource/{id}"},
		{"//a//", "/a/b"},
	}
	for _, tc := range cases {
		_, err := pathex.ExtractParams(tc.candidate, tc.pattern)
		if !errors.Is(err, pathex.ErrMissingParams) {
			t.Fatalf("%q vs %q: expected missing params, got %v", tc.candidate, tc.pattern, err)
		}
	}
}

func TestExtract_Idempotent(t *testing.T) {
	first, err1 := pathex.ExtractParams("/dynamic/resource/3.5/axum", "/dynamic/resource/{id}/{name}")
	second, err2 := pathex.ExtractParams("/dynamic/resource/3.5/axum", "/dynamic/resource/{id}/{name}")
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("results differ (-first +second):\n%s", diff)
	}

	_, e1 := pathex.ExtractInto[swappedResource]("/dynamic/resource/42/axum", "/dynamic/resource/{id}/{name}")
	_, e2 := pathex.ExtractInto[swappedResource]("/dynamic/resource/42/axum", "/dynamic/resource/{id}/{name}")
	if e1.Error() != e2.Error() {
		t.Fatalf("errors differ: %q vs %q", e1, e2)
	}
}

func TestExtract_ConcurrentCalls(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := pathex.ExtractInto[resource]("/dynamic/resource/42/axum", "/dynamic/resource/{id}/{name}")
			if err != nil {
				errs <- err
				return
			}
			if r.ID != 42 || r.Name != "axum" {
				errs <- errors.New("unexpected value")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent extract: %v", err)
	}
}

func TestExtract_SchemeStyleTemplates(t *testing.T) {
	got, err := pathex.ExtractInto[pathex.Tuple1[int32]]("test://dynamic/resource/7", "test://dynamic/resource/{id}")
	if err != nil {
		t.Fatalf("extract err: %v", err)
	}
	if got.V0 != 7 {
		t.Fatalf("unexpected id: %d", got.V0)
	}

	// "{name}.text" is not delimited by braces at both ends, so it is a literal.
	_, err = pathex.ExtractParams("file:///documents/report.text", "file:///documents/{name}.text")
	if !errors.Is(err, pathex.ErrInvalidFormat) {
		t.Fatalf("expected invalid format for partial placeholder, got %v", err)
	}
}

func TestExtract_ConcurrentWithLanguageSwitch(t *testing.T) {
	defer i18n.SetLanguage("en")
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			if i%2 == 0 {
				i18n.SetLanguage("ja")
			} else {
				i18n.SetLanguage("en")
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			_, err := pathex.ExtractParams("/a", "/a/b")
			e, ok := pathex.AsError(err)
			if !ok || e.Code != pathex.CodeMissingParams {
				t.Errorf("unexpected error: %v", err)
				return
			}
		}
	}()
	wg.Wait()
}
