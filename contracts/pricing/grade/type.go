package grade

// Type is an enumeration for crop quality grades.
type Type int

// Quality tiers in descending order. The pricing contract evaluates grade
// thresholds as a priority cascade, so every report gets exactly one of
// these.
const (
	_ Type = iota

	// A stands for lots satisfying the strictest threshold set.
	A

	// B stands for lots that missed A but satisfy the B threshold set.
	B

	// C is the catch-all tier with no threshold requirements.
	C
)
