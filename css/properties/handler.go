package properties

import (
	"cssc/css/compat"
	"cssc/css/values"
)

// slotState is the accumulated "last known value + prefix set" of one
// longhand slot between flushes.
type slotState struct {
	set    bool
	values []values.Value
	prefix compat.VendorPrefix
}

// AnimationHandler is the stateful single-pass consumer of a declaration
// stream. It merges animation longhands and shorthands into the most
// compact form that keeps per-prefix effective values identical, and
// flushes whenever source-order override semantics would otherwise be
// lost. One handler serves one declaration block; it is not shared.
type AnimationHandler struct {
	targets compat.Browsers
	slots   [animationSlotCount]slotState
	hasAny  bool
}

// NewAnimationHandler returns a handler expanding unprefixed output
// against the given browser targets. Empty targets disable expansion.
func NewAnimationHandler(targets compat.Browsers) *AnimationHandler {
	return &AnimationHandler{targets: targets}
}

// Handle consumes one declaration in source order. It reports false when
// the property is outside the animation family, in which case the caller
// must pass the declaration through unchanged.
func (h *AnimationHandler) Handle(prop Property, dest *DeclarationList) bool {
	switch v := prop.(type) {
	case LonghandProperty:
		idx, ok := slotIndexByID[v.ID]
		if !ok {
			return false
		}
		h.maybeFlush(idx, v.Values, v.Prefix, dest)
		h.update(idx, v.Values, v.Prefix)

	case AnimationProperty:
		// Decompose per slot, run every conflict check before any
		// update. This makes mixed longhand/shorthand input emit the
		// same output as either pure form.
		var cols [animationSlotCount][]values.Value
		for idx := range cols {
			cols[idx] = slotColumn(v.List, idx)
			h.maybeFlush(idx, cols[idx], v.Prefix, dest)
		}
		for idx := range cols {
			h.update(idx, cols[idx], v.Prefix)
		}

	case UnparsedProperty:
		if !v.ID.IsAnimationFamily() {
			return false
		}
		// Never merged: flush accumulated state, then pass the raw
		// declaration through with prefixes expanded for the targets.
		h.flush(dest)
		out := v
		out.Prefix = h.expand(v.Prefix)
		dest.Push(out)

	default:
		return false
	}
	return true
}

// Finalize flushes remaining state at the end of the block. Exactly one
// call per block.
func (h *AnimationHandler) Finalize(dest *DeclarationList) {
	h.flush(dest)
}

// maybeFlush emits accumulated state when the incoming declaration would
// overwrite a different value under a prefix the slot has not claimed
// yet: a later declaration with a new value for an overlapping prefix
// must not be absorbed into an earlier merge window.
func (h *AnimationHandler) maybeFlush(idx int, vals []values.Value, vp compat.VendorPrefix, dest *DeclarationList) {
	st := &h.slots[idx]
	if st.set && !values.ListEqual(st.values, vals) && !st.prefix.Contains(vp) {
		h.flush(dest)
	}
}

func (h *AnimationHandler) update(idx int, vals []values.Value, vp compat.VendorPrefix) {
	st := &h.slots[idx]
	st.values = vals
	st.prefix = st.prefix.Or(vp)
	st.set = true
	h.hasAny = true
}

// expand re-expands a prefix set containing the unprefixed bit to the
// concrete prefixes the configured targets require.
func (h *AnimationHandler) expand(vp compat.VendorPrefix) compat.VendorPrefix {
	if vp.Contains(compat.PrefixNone) && !h.targets.IsEmpty() {
		return compat.FeatureAnimation.PrefixesFor(h.targets)
	}
	return vp
}

// flush emits the merge window and clears all slot state.
//
// When every slot is set, every slot agrees on the instance count and
// the slots share at least one prefix, one shorthand declaration is
// emitted for the common core; whatever prefixes remain on individual
// slots are emitted as standalone longhands in canonical slot order.
// Splitting at prefix boundaries is what keeps the output correct:
// engines ignore declarations whose prefix they do not recognize.
func (h *AnimationHandler) flush(dest *DeclarationList) {
	if !h.hasAny {
		return
	}
	h.hasAny = false

	slots := h.slots
	h.slots = [animationSlotCount]slotState{}

	allSet := true
	for i := range slots {
		if !slots[i].set {
			allSet = false
			break
		}
	}

	if allSet {
		length := len(slots[0].values)
		sameLength := true
		intersection := slots[0].prefix
		for i := 1; i < len(slots); i++ {
			if len(slots[i].values) != length {
				sameLength = false
			}
			intersection = intersection.And(slots[i].prefix)
		}
		// Unequal instance counts make the shorthand unrepresentable;
		// fall back to per-slot emission, never an error.
		if sameLength && !intersection.IsEmpty() {
			list := make([]Animation, length)
			for i := 0; i < length; i++ {
				for idx := range slots {
					list[i].Slots[idx] = slots[idx].values[i]
				}
			}
			dest.Push(AnimationProperty{Prefix: h.expand(intersection), List: list})
			for idx := range slots {
				slots[idx].prefix = slots[idx].prefix.Remove(intersection)
			}
		}
	}

	for idx := range slots {
		st := slots[idx]
		if !st.set || st.prefix.IsEmpty() {
			continue
		}
		dest.Push(LonghandProperty{
			ID:     animationSlots[idx].id,
			Prefix: h.expand(st.prefix),
			Values: st.values,
		})
	}
}
