package display

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/pagedeck/internal/pagemanager"
)

func TestFit(t *testing.T) {
	require.Equal(t, []string{"ab  ", "cdef", "    "}, Fit("ab\ncdefgh\n", 4, 3))
	require.Equal(t, []string{"  ", "  "}, Fit("", 2, 2))
}

func TestCompose_Horizontal(t *testing.T) {
	from := []string{"abcd", "abcd"}
	to := []string{"wxyz", "wxyz"}

	tests := []struct {
		anim pagemanager.Animation
		want string
	}{
		{pagemanager.AnimOverLeft, "abwx"},
		{pagemanager.AnimOverRight, "yzcd"},
		{pagemanager.AnimMoveLeft, "cdwx"},
		{pagemanager.AnimMoveRight, "yzab"},
		{pagemanager.AnimOutLeft, "cdyz"},
		{pagemanager.AnimOutRight, "wxab"},
	}
	for _, tt := range tests {
		t.Run(tt.anim.String(), func(t *testing.T) {
			got := Compose(from, to, tt.anim, 0.5, 4, 2)
			require.Equal(t, []string{tt.want, tt.want}, got)
		})
	}
}

func TestCompose_Vertical(t *testing.T) {
	from := []string{"o0", "o1", "o2", "o3"}
	to := []string{"n0", "n1", "n2", "n3"}

	tests := []struct {
		anim pagemanager.Animation
		want []string
	}{
		{pagemanager.AnimOverTop, []string{"o0", "o1", "n0", "n1"}},
		{pagemanager.AnimOverBottom, []string{"n2", "n3", "o2", "o3"}},
		{pagemanager.AnimMoveTop, []string{"o2", "o3", "n0", "n1"}},
		{pagemanager.AnimMoveBottom, []string{"n2", "n3", "o0", "o1"}},
		{pagemanager.AnimOutTop, []string{"o2", "o3", "n2", "n3"}},
		{pagemanager.AnimOutBottom, []string{"n0", "n1", "o0", "o1"}},
	}
	for _, tt := range tests {
		t.Run(tt.anim.String(), func(t *testing.T) {
			require.Equal(t, tt.want, Compose(from, to, tt.anim, 0.5, 2, 4))
		})
	}
}

func TestCompose_Endpoints(t *testing.T) {
	from := []string{"aaaa"}
	to := []string{"bbbb"}

	for _, anim := range pagemanager.Animations() {
		require.Equal(t, to, Compose(from, to, anim, 1, 4, 1), anim.String())
	}
	require.Equal(t, to, Compose(nil, to, pagemanager.AnimOverLeft, 0, 4, 1), "first load has nothing to animate from")
	require.Equal(t, []string{"aaaa"}, Compose(from, to, pagemanager.AnimMoveLeft, 0, 4, 1))
	require.Equal(t, []string{"aaaa"}, Compose(from, to, pagemanager.AnimOverLeft, -1, 4, 1))
}

func TestCompose_Fade(t *testing.T) {
	from := []string{"aaaa"}
	to := []string{"bbbb"}

	require.Equal(t, from, Compose(from, to, pagemanager.AnimFadeIn, 0.25, 4, 1))
	require.Equal(t, to, Compose(from, to, pagemanager.AnimFadeIn, 0.75, 4, 1))
	require.Equal(t, from, Compose(from, to, pagemanager.AnimFadeOut, 0.25, 4, 1))
	require.Equal(t, to, Compose(from, to, pagemanager.AnimFadeOut, 0.75, 4, 1))
}
