package button

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/pagedeck/internal/pagemanager"
)

type mockNavigator struct {
	mock.Mock
}

func (m *mockNavigator) Next(ctx context.Context)     { m.Called(ctx) }
func (m *mockNavigator) Previous(ctx context.Context) { m.Called(ctx) }

func TestButton_PressWithoutHandler(t *testing.T) {
	b := New("Next Page")
	b.Press(context.Background())

	require.Equal(t, "Next Page", b.Name())
	require.Equal(t, uint64(1), b.Presses())
}

func TestButton_OnPressReplacesHandler(t *testing.T) {
	b := New("btn")
	var first, second int
	b.OnPress(func(context.Context) { first++ })
	b.OnPress(func(context.Context) { second++ })

	b.Press(context.Background())
	b.Press(context.Background())

	require.Zero(t, first)
	require.Equal(t, 2, second)
}

func TestBindNext(t *testing.T) {
	nav := &mockNavigator{}
	nav.On("Next", mock.Anything).Twice()

	b := New("Next Page")
	BindNext(b, nav)
	b.Press(context.Background())
	b.Press(context.Background())

	nav.AssertExpectations(t)
	nav.AssertNotCalled(t, "Previous", mock.Anything)
}

func TestBindPrev(t *testing.T) {
	nav := &mockNavigator{}
	nav.On("Previous", mock.Anything).Once()

	b := New("Previous Page")
	BindPrev(b, nav)
	b.Press(context.Background())

	nav.AssertExpectations(t)
	nav.AssertNotCalled(t, "Next", mock.Anything)
}

func TestBinding_NilNavigatorIsNoOp(t *testing.T) {
	b := New("Next Page")
	nb := BindNext(b, nil)
	require.NotPanics(t, func() { b.Press(context.Background()) })

	nav := &mockNavigator{}
	nav.On("Next", mock.Anything).Once()
	nb.SetManager(nav)
	b.Press(context.Background())
	nav.AssertExpectations(t)

	nb.SetManager(nil)
	require.NotPanics(t, func() { b.Press(context.Background()) })
}

type page string

func (p page) ID() string { return string(p) }

func TestButtons_DriveManager(t *testing.T) {
	reg := pagemanager.NewRegistry()
	require.NoError(t, reg.Register("Home", 0, page("home_page")))
	require.NoError(t, reg.Register("Settings", 1, page("settings_page")))

	m, err := pagemanager.New(reg, pagemanager.WithDefaultPage("Home"))
	require.NoError(t, err)

	next, prev := New("Next Page"), New("Previous Page")
	BindNext(next, m)
	BindPrev(prev, m)
	ctx := context.Background()

	next.Press(ctx)
	require.Equal(t, 1, m.CurrentIndex())
	next.Press(ctx)
	require.Equal(t, 0, m.CurrentIndex())
	prev.Press(ctx)
	require.Equal(t, 1, m.CurrentIndex())
}
