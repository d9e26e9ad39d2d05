package menu

import (
	"sort"
	"strconv"
	"strings"
)

// RootID names the menu opened on the desktop.
const RootID = "root"

// Registry exposes lookup utilities for menu definitions.
type Registry struct {
	nodes map[string]*Menu
}

// NewRegistry builds a registry holding the supplied menus.
func NewRegistry(menus ...*Menu) *Registry {
	r := &Registry{nodes: make(map[string]*Menu, len(menus))}
	for _, m := range menus {
		r.Add(m)
	}
	return r
}

// Add registers m, replacing any menu already stored under the same ID.
func (r *Registry) Add(m *Menu) {
	if m == nil {
		return
	}
	r.nodes[m.ID] = m
}

// Root returns the registry root menu.
func (r *Registry) Root() *Menu {
	return r.nodes[RootID]
}

// Find locates a menu by ID.
func (r *Registry) Find(id string) (*Menu, bool) {
	m, ok := r.nodes[id]
	return m, ok
}

// IDs lists the registered menu IDs in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.nodes))
	for id := range r.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Replace swaps in a freshly loaded set of menus. Menus that already exist
// keep their pointer identity and have their title and entries overwritten,
// so frames bound to them can be re-synchronised. Submenu entries are
// repointed at the registry's copy of their target. The returned IDs are the
// pre-existing menus whose content changed, sorted.
func (r *Registry) Replace(menus []*Menu) []string {
	incoming := make(map[string]*Menu, len(menus))
	for _, m := range menus {
		if m != nil {
			incoming[m.ID] = m
		}
	}

	// Signatures read submenu titles through shared nodes, so all of them are
	// taken before any node is updated in place.
	before := make(map[string]string, len(incoming))
	for id := range incoming {
		if old, ok := r.nodes[id]; ok {
			before[id] = signature(old)
		}
	}

	var changed []string
	next := make(map[string]*Menu, len(incoming))
	for id, m := range incoming {
		old, ok := r.nodes[id]
		if !ok {
			next[id] = m
			continue
		}
		if before[id] != signature(m) {
			changed = append(changed, id)
		}
		old.Title = m.Title
		old.Entries = m.Entries
		next[id] = old
	}
	r.nodes = next

	for _, m := range r.nodes {
		for _, e := range m.Entries {
			sub, ok := e.(*SubmenuEntry)
			if !ok || sub.Submenu == nil {
				continue
			}
			if canonical, ok := r.nodes[sub.Submenu.ID]; ok {
				sub.Submenu = canonical
			}
		}
	}

	sort.Strings(changed)
	return changed
}

func signature(m *Menu) string {
	var b strings.Builder
	b.WriteString(m.Title)
	for _, e := range m.Entries {
		b.WriteByte('|')
		b.WriteString(KindOf(e).String())
		b.WriteByte(':')
		b.WriteString(e.EntryID())
		b.WriteByte(':')
		b.WriteString(Text(e))
		b.WriteByte(':')
		b.WriteString(strconv.FormatBool(e.Enabled()))
	}
	return b.String()
}
