package theme

import "github.com/charmbracelet/lipgloss"

// DefaultSeparatorHeight is the row height given to separator entries when a
// theme does not set one.
const DefaultSeparatorHeight = 5

// Color is a terminal colour understood by lipgloss.
type Color = lipgloss.Color

// Theme groups the appearances and metrics menus are drawn with.
type Theme struct {
	BorderWidth     int
	BorderColor     Color
	MenuOverlap     int
	SeparatorHeight int

	MenuTitle        *Appearance
	Menu             *Appearance
	MenuItem         *Appearance
	MenuDisabled     *Appearance
	MenuHilite       *Appearance
	MenuTextItem     *Appearance
	MenuTextDisabled *Appearance
	MenuTextHilite   *Appearance
	MenuBullet       *Appearance
	ClearTexture     *Appearance
}

// SeparatorRows returns the configured separator height, falling back
// to DefaultSeparatorHeight.
func (t *Theme) SeparatorRows() int {
	if t.SeparatorHeight > 0 {
		return t.SeparatorHeight
	}
	return DefaultSeparatorHeight
}

var (
	colorBorder   = lipgloss.Color("238")
	colorBody     = lipgloss.Color("235")
	colorText     = lipgloss.Color("249")
	colorDisabled = lipgloss.Color("241")
	colorHilite   = lipgloss.Color("33")
	colorHiText   = lipgloss.Color("255")
	colorTitle    = lipgloss.Color("24")
)

// Default returns the terminal theme. Each call returns an independent copy so
// callers may adjust metrics without affecting other users.
func Default() *Theme {
	body := lipgloss.NewStyle().Background(colorBody)
	return &Theme{
		BorderWidth:     1,
		BorderColor:     colorBorder,
		MenuOverlap:     0,
		SeparatorHeight: 1,

		MenuTitle: NewAppearance("menu.title",
			lipgloss.NewStyle().Background(colorTitle).Foreground(colorHiText).Bold(true).Padding(0, 1),
			TextureText),
		Menu:         NewAppearance("menu", body, TextureNone),
		MenuItem:     NewAppearance("menu.item", body, TextureNone),
		MenuDisabled: NewAppearance("menu.disabled", body, TextureNone),
		MenuHilite:   NewAppearance("menu.hilite", lipgloss.NewStyle().Background(colorHilite), TextureNone),

		MenuTextItem: NewAppearance("menu.text.item",
			body.Foreground(colorText).Padding(0, 1),
			TextureText),
		MenuTextDisabled: NewAppearance("menu.text.disabled",
			body.Foreground(colorDisabled).Italic(true).Padding(0, 1),
			TextureText),
		MenuTextHilite: NewAppearance("menu.text.hilite",
			lipgloss.NewStyle().Background(colorHilite).Foreground(colorHiText).Bold(true).Padding(0, 1),
			TextureText),

		MenuBullet:   NewAppearance("menu.bullet", lipgloss.NewStyle().Foreground(colorText), TextureMask),
		ClearTexture: NewAppearance("clear", lipgloss.NewStyle(), TextureNone),
	}
}
