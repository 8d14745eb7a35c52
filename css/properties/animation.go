package properties

import (
	"strings"

	"cssc/css/printer"
	"cssc/css/values"
)

// Slot indices of the animation group in canonical order. The order
// defines per-slot emission during flush and the print order of the
// shorthand tail.
const (
	slotName = iota
	slotDuration
	slotTimingFunction
	slotIterationCount
	slotDirection
	slotPlayState
	slotDelay
	slotFillMode
	animationSlotCount
)

// slotDef statically describes one longhand slot of the group: its
// property identity, value grammar, default, and the collision predicate
// guarding default elision against the identifier slot's literal text.
// A nil collides means the slot never participates in collision guards.
type slotDef struct {
	id       PropertyID
	name     string
	parse    func(*values.TokenStream) (values.Value, error)
	def      func() values.Value
	collides func(ident string) bool
}

func wrap[T values.Value](parse func(*values.TokenStream) (T, error)) func(*values.TokenStream) (values.Value, error) {
	return func(s *values.TokenStream) (values.Value, error) {
		v, err := parse(s)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

var animationSlots = [animationSlotCount]slotDef{
	slotName: {
		id:    PropAnimationName,
		name:  "animation-name",
		parse: wrap(values.ParseAnimationName),
		def:   func() values.Value { return values.AnimationName{Kind: values.AnimationNameNone} },
	},
	slotDuration: {
		id:    PropAnimationDuration,
		name:  "animation-duration",
		parse: wrap(values.ParseTime),
		def:   func() values.Value { return values.Time{} },
	},
	slotTimingFunction: {
		id:       PropAnimationTimingFunction,
		name:     "animation-timing-function",
		parse:    wrap(values.ParseEasingFunction),
		def:      func() values.Value { return values.Ease() },
		collides: values.IsEasingIdent,
	},
	slotIterationCount: {
		id:       PropAnimationIterationCount,
		name:     "animation-iteration-count",
		parse:    wrap(values.ParseAnimationIterationCount),
		def:      func() values.Value { return values.OneIteration() },
		collides: func(ident string) bool { return strings.EqualFold(ident, "infinite") },
	},
	slotDirection: {
		id:       PropAnimationDirection,
		name:     "animation-direction",
		parse:    wrap(values.ParseAnimationDirection),
		def:      func() values.Value { return values.Keyword("normal") },
		collides: values.IsDirectionIdent,
	},
	slotPlayState: {
		id:       PropAnimationPlayState,
		name:     "animation-play-state",
		parse:    wrap(values.ParseAnimationPlayState),
		def:      func() values.Value { return values.Keyword("running") },
		collides: values.IsPlayStateIdent,
	},
	slotDelay: {
		id:    PropAnimationDelay,
		name:  "animation-delay",
		parse: wrap(values.ParseTime),
		def:   func() values.Value { return values.Time{} },
	},
	slotFillMode: {
		id:       PropAnimationFillMode,
		name:     "animation-fill-mode",
		parse:    wrap(values.ParseAnimationFillMode),
		def:      func() values.Value { return values.Keyword("none") },
		collides: values.IsFillModeIdent,
	},
}

// parsePriority is the order slot grammars get to claim tokens during
// shorthand parsing. Narrowly typed grammars come first; the free-form
// name grammar goes last so it cannot swallow keyword tokens.
var parsePriority = [animationSlotCount]int{
	slotDuration,
	slotTimingFunction,
	slotDelay,
	slotIterationCount,
	slotDirection,
	slotFillMode,
	slotPlayState,
	slotName,
}

var slotIndexByID = func() map[PropertyID]int {
	m := make(map[PropertyID]int, animationSlotCount)
	for i, def := range animationSlots {
		m[def.id] = i
	}
	return m
}()

// Animation is one packed instance of the shorthand: a value per slot in
// canonical slot order.
type Animation struct {
	Slots [animationSlotCount]values.Value
}

// parseAnimation parses one space-separated shorthand instance. Slots
// may appear in any order in the source; each grammar is attempted in
// priority order against the next token run and the first match wins,
// with no backtracking across slot assignment. Unfilled slots take their
// defaults.
func parseAnimation(s *values.TokenStream) (Animation, error) {
	var a Animation
	for !s.Done() {
		matched := false
		for _, idx := range parsePriority {
			if a.Slots[idx] != nil {
				continue
			}
			if v, ok := values.TryParse(s, animationSlots[idx].parse); ok {
				a.Slots[idx] = v
				matched = true
				break
			}
		}
		if !matched {
			break
		}
	}
	for i := range a.Slots {
		if a.Slots[i] == nil {
			a.Slots[i] = animationSlots[i].def()
		}
	}
	return a, nil
}

func (a Animation) name() values.AnimationName {
	return a.Slots[slotName].(values.AnimationName)
}

func (a Animation) duration() values.Time {
	return a.Slots[slotDuration].(values.Time)
}

func (a Animation) delay() values.Time {
	return a.Slots[slotDelay].(values.Time)
}

// ToCSS prints the shorthand instance: identifier slot first, then the
// remaining slots in canonical order, each omitted at its default unless
// the identifier's literal text would re-parse as a legal value for that
// slot's grammar. Each guard is evaluated independently, so a name
// colliding with several keyword grammars force-prints all of them.
func (a Animation) ToCSS(p *printer.Printer) error {
	name := a.name()
	if err := name.ToCSS(p); err != nil {
		return err
	}
	if name.IsNone() {
		return nil
	}
	ident := name.Text()

	writeSlot := func(idx int) error {
		if err := p.WriteByte(' '); err != nil {
			return err
		}
		return a.Slots[idx].ToCSS(p)
	}

	duration, delay := a.duration(), a.delay()
	if !duration.IsZero() || !delay.IsZero() {
		if err := writeSlot(slotDuration); err != nil {
			return err
		}
	}

	timing := a.Slots[slotTimingFunction].(values.EasingFunction)
	if !timing.IsEase() || animationSlots[slotTimingFunction].collides(ident) {
		if err := writeSlot(slotTimingFunction); err != nil {
			return err
		}
	}

	if !delay.IsZero() {
		if err := writeSlot(slotDelay); err != nil {
			return err
		}
	}

	for _, idx := range [...]int{slotIterationCount, slotDirection, slotFillMode, slotPlayState} {
		def := animationSlots[idx]
		if !a.Slots[idx].Equal(def.def()) || def.collides(ident) {
			if err := writeSlot(idx); err != nil {
				return err
			}
		}
	}
	return nil
}

// slotColumn extracts one slot's values across all instances of a
// shorthand list, preserving instance order.
func slotColumn(list []Animation, idx int) []values.Value {
	col := make([]values.Value, len(list))
	for i, a := range list {
		col[i] = a.Slots[idx]
	}
	return col
}
