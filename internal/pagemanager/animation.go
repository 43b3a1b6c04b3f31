package pagemanager

import (
	"fmt"
	"strings"
	"time"
)

// Animation is a screen-load effect understood by the renderer.
type Animation int

const (
	AnimNone Animation = iota
	AnimOverLeft
	AnimOverRight
	AnimOverTop
	AnimOverBottom
	AnimMoveLeft
	AnimMoveRight
	AnimMoveTop
	AnimMoveBottom
	AnimFadeIn
	AnimFadeOut
	AnimOutLeft
	AnimOutRight
	AnimOutTop
	AnimOutBottom
)

// DefaultDuration is the transition time used when none is configured.
const DefaultDuration = 50 * time.Millisecond

// Engine defaults: next slides the new page in from the right, previous from
// the left, and an explicit show cuts without animation.
const (
	DefaultNextAnimation     = AnimOverLeft
	DefaultPreviousAnimation = AnimOverRight
	DefaultShowAnimation     = AnimNone
)

var animationNames = [...]string{
	AnimNone:       "NONE",
	AnimOverLeft:   "OVER_LEFT",
	AnimOverRight:  "OVER_RIGHT",
	AnimOverTop:    "OVER_TOP",
	AnimOverBottom: "OVER_BOTTOM",
	AnimMoveLeft:   "MOVE_LEFT",
	AnimMoveRight:  "MOVE_RIGHT",
	AnimMoveTop:    "MOVE_TOP",
	AnimMoveBottom: "MOVE_BOTTOM",
	AnimFadeIn:     "FADE_IN",
	AnimFadeOut:    "FADE_OUT",
	AnimOutLeft:    "OUT_LEFT",
	AnimOutRight:   "OUT_RIGHT",
	AnimOutTop:     "OUT_TOP",
	AnimOutBottom:  "OUT_BOTTOM",
}

func (a Animation) String() string {
	if a < 0 || int(a) >= len(animationNames) {
		return fmt.Sprintf("Animation(%d)", int(a))
	}
	return animationNames[a]
}

// Animations returns every supported animation in declaration order.
func Animations() []Animation {
	out := make([]Animation, len(animationNames))
	for i := range animationNames {
		out[i] = Animation(i)
	}
	return out
}

// ParseAnimation resolves an animation name case-insensitively.
// FADE_ON is accepted as an alias of FADE_IN.
func ParseAnimation(s string) (Animation, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "FADE_ON" {
		return AnimFadeIn, nil
	}
	for i, n := range animationNames {
		if n == name {
			return Animation(i), nil
		}
	}
	return AnimNone, fmt.Errorf("%w: unknown animation %q", ErrInvalidConfig, s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Animation) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Animation) UnmarshalText(text []byte) error {
	parsed, err := ParseAnimation(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
