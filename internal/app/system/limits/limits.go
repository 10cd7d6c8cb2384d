// Package limits centralizes request body size limits and plan-based caps.
package limits

// Request body size limits. These prevent memory exhaustion from
// oversized requests.
const (
	// MaxJSONBody is the maximum size for ordinary JSON request bodies.
	MaxJSONBody = 64 << 10 // 64 KB

	// MaxNoteBody is the maximum size for note/comment submissions,
	// which carry user HTML.
	MaxNoteBody = 1 << 20 // 1 MB
)

// Default plan caps for owned spaces. Overridable via config.
const (
	DefaultFreeSpaceLimit = 5
	DefaultProSpaceLimit  = 500
)

// SpaceLimits holds the per-plan owned-space caps, loaded from config
// at startup and injected into the spaces feature.
type SpaceLimits struct {
	Free int
	Pro  int
}

// ForPlan returns the owned-space cap for the given plan tag.
func (l SpaceLimits) ForPlan(plan string) int {
	if plan == "pro" {
		return l.Pro
	}
	return l.Free
}
