package menu

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind enumerates the entry variants a menu can hold.
type Kind int

const (
	KindNormal Kind = iota
	KindSubmenu
	KindSeparator
)

func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindSubmenu:
		return "submenu"
	case KindSeparator:
		return "separator"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Client is the window a menu was opened for. It is nil when the menu was
// opened on the desktop.
type Client interface {
	ClientID() string
}

// Action is bound to a normal entry and invoked with the client context when
// the entry is activated.
type Action func(Client) error

// Menu is an ordered list of entries with an optional title.
type Menu struct {
	ID      string
	Title   string
	Entries []Entry
}

// Entry is one logical menu item. The concrete types are *NormalEntry,
// *SubmenuEntry and *SeparatorEntry.
type Entry interface {
	EntryID() string
	Enabled() bool
	kind() Kind
}

// NormalEntry runs its actions when activated.
type NormalEntry struct {
	ID       string
	Label    string
	Actions  []Action
	Disabled bool
}

// SubmenuEntry opens another menu. Its text is the submenu's title.
type SubmenuEntry struct {
	ID       string
	Submenu  *Menu
	Disabled bool
}

// SeparatorEntry draws a divider and is never selectable.
type SeparatorEntry struct {
	ID string
}

func (e *NormalEntry) EntryID() string { return e.ID }
func (e *NormalEntry) Enabled() bool { return !e.Disabled }
func (e *NormalEntry) kind() Kind { return KindNormal }
func (e *SubmenuEntry) EntryID() string { return e.ID }
func (e *SubmenuEntry) Enabled() bool { return !e.Disabled }
func (e *SubmenuEntry) kind() Kind { return KindSubmenu }

func (e *SeparatorEntry) EntryID() string { return e.ID }
func (e *SeparatorEntry) Enabled() bool { return true }
func (e *SeparatorEntry) kind() Kind { return KindSeparator }

// KindOf reports the variant of e.
func KindOf(e Entry) Kind {
	return e.kind()
}

// Text returns the string an entry displays: the label of a normal entry, the
// title of a submenu entry's target, and nothing for separators.
func Text(e Entry) string {
	switch v := e.(type) {
	case *NormalEntry:
		return v.Label
	case *SubmenuEntry:
		if v.Submenu == nil {
			return ""
		}
		return v.Submenu.Title
	case *SeparatorEntry:
		return ""
	}
	panic(fmt.Sprintf("menu: unknown entry type %T", e))
}

// Normal builds a normal entry whose ID is derived from the label.
func Normal(label string, actions ...Action) *NormalEntry {
	return &NormalEntry{ID: slug(label), Label: label, Actions: actions}
}

// Sub builds a submenu entry pointing at m.
func Sub(m *Menu) *SubmenuEntry {
	return &SubmenuEntry{ID: m.ID, Submenu: m}
}

// Separator builds a separator entry.
func Separator() *SeparatorEntry {
	return &SeparatorEntry{}
}

func slug(label string) string {
	if label == "" {
		return label
	}
	parts := strings.FieldsFunc(label, func(r rune) bool {
		return unicode.IsSpace(r) || r == '_' || r == '/'
	})
	for i, part := range parts {
		parts[i] = strings.ToLower(part)
	}
	return strings.Join(parts, "-")
}
