package nightshift

import "net/url"

const (
	LogKindKey = "kind"
	LogMaskVal = "xxxxxx"
)

const (
	AppLogKind  = "app"
	HTTPLogKind = "http"
	NavLogKind  = "nav"
)

// Mask replaces every value under key in vals with a single LogMaskVal,
// hiding sensitive data from log messages.
func Mask(vals url.Values, key string) {
	if _, ok := vals[key]; !ok {
		return
	}

	vals[key] = []string{LogMaskVal}
}
