package automation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/pagedeck/internal/pagemanager"
)

type page string

func (p page) ID() string { return string(p) }

// newManager builds Home, Settings, About with a recording renderer.
func newManager(t *testing.T, opts ...pagemanager.Option) (*pagemanager.Manager, *[]pagemanager.Animation) {
	t.Helper()
	reg := pagemanager.NewRegistry()
	require.NoError(t, reg.Register("Home", 0, page("home_page")))
	require.NoError(t, reg.Register("Settings", 1, page("settings_page")))
	require.NoError(t, reg.Register("About", 2, page("about_page")))

	var anims []pagemanager.Animation
	opts = append(opts, pagemanager.WithRenderer(pagemanager.RendererFunc(
		func(_ pagemanager.Page, a pagemanager.Animation, _ time.Duration) { anims = append(anims, a) },
	)))
	m, err := pagemanager.New(reg, opts...)
	require.NoError(t, err)
	return m, &anims
}

type mockNavigator struct {
	mock.Mock
}

func (m *mockNavigator) ID() string { return m.Called().String(0) }

func (m *mockNavigator) GoNext(ctx context.Context, anim pagemanager.Animation, d time.Duration) {
	m.Called(ctx, anim, d)
}

func (m *mockNavigator) GoPrevious(ctx context.Context, anim pagemanager.Animation, d time.Duration) {
	m.Called(ctx, anim, d)
}

func (m *mockNavigator) GoTo(ctx context.Context, label string, anim pagemanager.Animation, d time.Duration) error {
	return m.Called(ctx, label, anim, d).Error(0)
}
