package dbserver

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	addressSegment = regexp.MustCompile(`0x[a-fA-F0-9]+`)
	routeSeparator = regexp.MustCompile(`[/\-_]+`)
)

const maxTraceRouteLen = 20

// TraceID builds <method>-<route>-<address suffix>-<random>, e.g. get-jobsuser-abcdef-a1b2c3d4.
// The route loses its api/ prefix, addresses and separators; an empty address becomes 000000.
func TraceID(method, route, userAddress string) string {
	r := strings.TrimLeft(route, "/")
	r = strings.TrimPrefix(r, "api/")
	r = addressSegment.ReplaceAllString(r, "")
	r = strings.ToLower(routeSeparator.ReplaceAllString(r, ""))
	if len(r) > maxTraceRouteLen {
		r = r[:maxTraceRouteLen]
	}

	suffix := "000000"
	if userAddress != "" {
		a := strings.ToLower(userAddress)
		if len(a) > 6 {
			a = a[len(a)-6:]
		}
		suffix = a
	}

	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return strings.ToLower(method) + "-" + r + "-" + suffix + "-" + random
}
