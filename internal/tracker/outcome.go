package tracker

// Outcome reports whether a mutation found its target. Operations on an
// unknown identifier never change state and never error; callers that
// care can still tell the two cases apart.
type Outcome int

const (
	// Applied means the mutation took effect.
	Applied Outcome = iota

	// NotFound means no entity matched the identifier and nothing
	// changed.
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case NotFound:
		return "not found"
	default:
		return "unknown"
	}
}
