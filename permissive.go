package splitkb

// permissiveHold implements the arbiter from spec §4.4: for a position q
// whose *base-layer* action is ModTap or TapDance, permissive hold fires
// this tick if any other position — same side or the other half,
// excluding q itself — registered a rising edge (down this tick, up
// last tick). FlipSet.Any excludes q from q's own side and, since a
// Position's Side field distinguishes it from anything on the other
// half, the same exclusion never matches on the other side; one Any
// call per side therefore gives exactly
// "flips[same_side]\{q} ∪ flips[other_side]".
func permissiveHold(k *Keymap, q Position, flips *FlipSet) bool {
	a, ok := k.baseAction(q)
	if !ok || (a.Kind != ActionModTap && a.Kind != ActionTapDance) {
		return false
	}
	return flips.Any(Left, q) || flips.Any(Right, q)
}
