package namespace

import (
	"fmt"
	"strconv"
	"strings"
)

// builtins are the references a table may use without any namespace being
// registered: small, dependency-free helpers addressed by bare name.
var builtins = map[string]any{
	"repr":  func(v any) string { return fmt.Sprintf("%#v", v) },
	"str":   func(v any) string { return fmt.Sprint(v) },
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"title": strings.ToTitle,
	"trim":  strings.TrimSpace,
	"quote": strconv.Quote,
	"len": func(v string) int {
		return len(v)
	},
	"contains": strings.Contains,
	"replace":  strings.ReplaceAll,
	"join":     strings.Join,
	"split":    strings.Split,
}
