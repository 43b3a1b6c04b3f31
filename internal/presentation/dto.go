package presentation

import (
	"time"

	"github.com/zjrosen/pagedeck/internal/pagemanager"
)

// RegistryDTO represents the frozen page registry for presentation
type RegistryDTO struct {
	ManagerID   string    `json:"manager_id"`
	Sort        string    `json:"sort"`
	DefaultPage string    `json:"default_page,omitempty"`
	Pages       []PageDTO `json:"pages"`
}

// PageDTO represents one registered page in registry order
type PageDTO struct {
	Index        int    `json:"index"`
	Page         string `json:"page"`
	FriendlyName string `json:"friendly_name"`
	Order        int    `json:"order"`
	Default      bool   `json:"default,omitempty"`
}

// TransitionDTO represents a completed page transition
type TransitionDTO struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	From         int       `json:"from"`
	To           int       `json:"to"`
	Page         string    `json:"page"`
	FriendlyName string    `json:"friendly_name"`
	Animation    string    `json:"animation"`
	DurationMS   int64     `json:"duration_ms"`
	At           time.Time `json:"at"`
}

// RunResultDTO summarizes a headless script run
type RunResultDTO struct {
	Script      string `json:"script"`
	Transitions int    `json:"transitions"`
	Page        string `json:"page,omitempty"` // friendly name active at the end
	Error       string `json:"error,omitempty"`
}

// FromManager converts a manager's registry to a DTO
func FromManager(m *pagemanager.Manager) RegistryDTO {
	reg := m.Registry()
	entries := reg.Entries()

	defaultIdx := -1
	if name := m.DefaultPage(); name != "" {
		if i, ok := reg.IndexOfLabel(name); ok {
			defaultIdx = i
		} else if i, ok := reg.IndexOfID(name); ok {
			defaultIdx = i
		}
	}

	pages := make([]PageDTO, len(entries))
	for i, e := range entries {
		pages[i] = PageDTO{
			Index:        i,
			Page:         e.Page.ID(),
			FriendlyName: e.Label,
			Order:        e.Order,
			Default:      i == defaultIdx,
		}
	}

	return RegistryDTO{
		ManagerID:   m.ID(),
		Sort:        reg.SortMode().String(),
		DefaultPage: m.DefaultPage(),
		Pages:       pages,
	}
}

// FromTransition converts a transition to a DTO
func FromTransition(tr pagemanager.Transition) TransitionDTO {
	var page string
	if tr.Page != nil {
		page = tr.Page.ID()
	}
	return TransitionDTO{
		ID:           tr.ID,
		Kind:         string(tr.Kind),
		From:         tr.From,
		To:           tr.To,
		Page:         page,
		FriendlyName: tr.Label,
		Animation:    tr.Animation.String(),
		DurationMS:   tr.Duration.Milliseconds(),
		At:           tr.At,
	}
}
