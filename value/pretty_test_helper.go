package value

import "github.com/kr/pretty"

// DiffString renders a human-readable diff between two values for test
// failure messages, via kr/pretty rather than reflect.DeepEqual's opaque
// boolean or fmt's single-line %+v, since Value's Unknown/ReferenceSet
// variants have unexported fields that are otherwise unreadable in a
// failure message.
func DiffString(got, want Value) string {
	diffs := pretty.Diff(got, want)
	if len(diffs) == 0 {
		return ""
	}
	out := "values differ:\n"
	for _, d := range diffs {
		out += "  " + d + "\n"
	}
	return out
}
