package speedfix

import "math"

const (
	// TargetFPS is the NTSC film rate the base video is expected to carry.
	TargetFPS = 24000.0 / 1001.0
	// PALFPS is the donor frame rate that triggers the correction.
	PALFPS = 25.0
	// Tolerance absorbs rounding noise in probed frame rates.
	Tolerance = 0.02
	// Tempo is the fixed 25.0 -> 23.976 atempo factor. It is a constant of
	// the PAL/film conversion, never recomputed from measured rates.
	Tempo = 0.95904
)

// Decision is the outcome of the speedfix policy for one episode pair. It
// is computed once per pair and never renegotiated mid-job.
type Decision struct {
	Apply bool
	Tempo float64
}

// Decide returns the speedfix decision for a base/donor fps pairing. The
// correction applies only when enabled, both rates are measurable, the base
// runs at ~23.976 and the donor at ~25. An audio-only donor has no
// measurable rate, so the mismatch cannot be established and the fix is
// never applied.
func Decide(baseFPS, donorFPS *float64, enabled bool) Decision {
	decision := Decision{Tempo: Tempo}
	if !enabled || baseFPS == nil || donorFPS == nil {
		return decision
	}
	if approxEqual(*baseFPS, TargetFPS, Tolerance) && approxEqual(*donorFPS, PALFPS, Tolerance) {
		decision.Apply = true
	}
	return decision
}

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
