package pathex

import (
	"reflect"
	"strings"
)

// ResolveFieldKey applies the repository-wide rule to resolve the parameter
// name bound to a struct field.
// Priority: path:"name" > json tag name > field name; "-" disables the field.
// The path tag option "optional" lets the parameter be absent.
func ResolveFieldKey(sf reflect.StructField) (key string, optional bool) {
	if pt, ok := sf.Tag.Lookup("path"); ok {
		parts := strings.Split(pt, ",")
		for _, p := range parts[1:] {
			if strings.TrimSpace(p) == "optional" {
				optional = true
			}
		}
		if name := strings.TrimSpace(parts[0]); name != "" {
			return name, optional
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-", optional
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			jt = jt[:i]
		}
		if jt != "" {
			return jt, optional
		}
	}
	return sf.Name, optional
}

type fieldInfo struct {
	index    int
	key      string
	optional bool
}

// bindableFields lists exported, non-skipped fields in declaration order.
func bindableFields(rt reflect.Type) []fieldInfo {
	fields := make([]fieldInfo, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		key, optional := ResolveFieldKey(sf)
		if key == "-" {
			continue
		}
		fields = append(fields, fieldInfo{index: i, key: key, optional: optional})
	}
	return fields
}
