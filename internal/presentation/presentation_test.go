package presentation

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/pagedeck/internal/pagemanager"
)

type page string

func (p page) ID() string { return string(p) }

func newManager(t *testing.T, opts ...pagemanager.Option) *pagemanager.Manager {
	t.Helper()
	reg := pagemanager.NewRegistry()
	require.NoError(t, reg.Register("Settings", 2, page("settings_page")))
	require.NoError(t, reg.Register("Home", 1, page("home_page")))
	m, err := pagemanager.New(reg, opts...)
	require.NoError(t, err)
	return m
}

func TestFromManager(t *testing.T) {
	m := newManager(t, pagemanager.WithDefaultPage("Settings"), pagemanager.WithID("deck"))

	dto := FromManager(m)

	require.Equal(t, "deck", dto.ManagerID)
	require.Equal(t, "by_order", dto.Sort)
	require.Equal(t, "Settings", dto.DefaultPage)
	require.Equal(t, []PageDTO{
		{Index: 0, Page: "home_page", FriendlyName: "Home", Order: 1},
		{Index: 1, Page: "settings_page", FriendlyName: "Settings", Order: 2, Default: true},
	}, dto.Pages)
}

func TestFromManager_DefaultByID(t *testing.T) {
	dto := FromManager(newManager(t, pagemanager.WithDefaultPage("home_page")))

	require.True(t, dto.Pages[0].Default)
	require.False(t, dto.Pages[1].Default)
}

func TestFromTransition(t *testing.T) {
	m := newManager(t)
	events := m.Subscribe(context.Background())

	m.GoNext(context.Background(), pagemanager.AnimMoveTop, 120*time.Millisecond)
	ev := <-events

	dto := FromTransition(ev.Payload)
	require.Equal(t, "next", dto.Kind)
	require.Equal(t, -1, dto.From)
	require.Equal(t, 0, dto.To)
	require.Equal(t, "home_page", dto.Page)
	require.Equal(t, "Home", dto.FriendlyName)
	require.Equal(t, "MOVE_TOP", dto.Animation)
	require.Equal(t, int64(120), dto.DurationMS)
	require.NotEmpty(t, dto.ID)
}

func TestFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	require.NoError(t, f.FormatTransition(TransitionDTO{ID: "t1", Kind: "show", Animation: "NONE"}))
	require.NoError(t, f.FormatRunResult(RunResultDTO{Script: "tour", Transitions: 3, Page: "Home"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2, "one JSON document per line")

	var tr TransitionDTO
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &tr))
	require.Equal(t, "t1", tr.ID)
	require.JSONEq(t, `{"script":"tour","transitions":3,"page":"Home"}`, lines[1])

	buf.Reset()
	require.NoError(t, f.FormatRegistry(RegistryDTO{ManagerID: "page_manager", Sort: "by_name", Pages: []PageDTO{}}))
	require.Contains(t, buf.String(), "\n  \"manager_id\": \"page_manager\"")
}
