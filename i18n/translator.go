package i18n

import (
	"strings"
	"sync/atomic"
)

// Translator retrieves localized messages for error codes.
// data provides optional metadata to embed in the message (for example,
// "segment" or "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "missing_params":
			msg = "セグメント数がパターンと一致しません"
		case "invalid_format":
			msg = "リテラルセグメントが一致しません"
		case "unsupported_type":
			msg = "パラメータを対象の型に変換できません"
		case "not_found":
			msg = "一致するテンプレートがありません"
		}
	default: // "en"
		switch code {
		case "missing_params":
			msg = "missing URL parameters"
		case "invalid_format":
			msg = "invalid URL parameter format"
		case "unsupported_type":
			msg = "unsupported target type"
		case "not_found":
			msg = "no template matches"
		}
	}
	if msg == "" {
		return code
	}
	return withDetail(msg, data)
}

// withDetail appends "expected"/"got" style details in a stable order.
func withDetail(msg string, data map[string]string) string {
	if len(data) == 0 {
		return msg
	}
	var parts []string
	for _, k := range []string{"segment", "expected", "got"} {
		if v, ok := data[k]; ok {
			parts = append(parts, k+"="+v)
		}
	}
	if len(parts) == 0 {
		return msg
	}
	return msg + " (" + strings.Join(parts, ", ") + ")"
}

var current atomic.Pointer[Translator]

func init() { store(dictTranslator{lang: "en"}) }

func store(tr Translator) { current.Store(&tr) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
// Safe to call while other goroutines build messages.
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	store(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	store(tr)
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return (*current.Load()).Message(code, data) }
