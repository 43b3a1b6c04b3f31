package pagemanager

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAnimation(t *testing.T) {
	tests := []struct {
		in   string
		want Animation
	}{
		{"NONE", AnimNone},
		{"over_left", AnimOverLeft},
		{"Over_Right", AnimOverRight},
		{"MOVE_BOTTOM", AnimMoveBottom},
		{"FADE_IN", AnimFadeIn},
		{"FADE_ON", AnimFadeIn},
		{"fade_out", AnimFadeOut},
		{" OUT_TOP ", AnimOutTop},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAnimation(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseAnimation_Unknown(t *testing.T) {
	_, err := ParseAnimation("SPIN")
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.Contains(t, err.Error(), `"SPIN"`)
}

func TestAnimations_RoundTripNames(t *testing.T) {
	all := Animations()
	require.Len(t, all, 15)
	for _, a := range all {
		got, err := ParseAnimation(a.String())
		require.NoError(t, err)
		require.Equal(t, a, got)
	}
	require.Equal(t, "Animation(99)", Animation(99).String())
}

func TestAnimation_TextMarshaling(t *testing.T) {
	text, err := AnimOverRight.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "OVER_RIGHT", string(text))

	var a Animation
	require.NoError(t, a.UnmarshalText([]byte("move_left")))
	require.Equal(t, AnimMoveLeft, a)

	require.Error(t, a.UnmarshalText([]byte("bogus")))
	require.Equal(t, AnimMoveLeft, a, "failed unmarshal leaves value unchanged")
}

func TestEngineDefaults(t *testing.T) {
	require.Equal(t, AnimOverLeft, DefaultNextAnimation)
	require.Equal(t, AnimOverRight, DefaultPreviousAnimation)
	require.Equal(t, AnimNone, DefaultShowAnimation)
	require.Equal(t, "50ms", DefaultDuration.String())
}
