package theme

import "github.com/charmbracelet/lipgloss"

// TextureKind selects what an appearance draws on top of its background.
type TextureKind int

const (
	TextureNone TextureKind = iota
	TextureText
	TextureMask
	TextureRGBA
)

type Justify int

const (
	JustifyLeft Justify = iota
	JustifyCenter
	JustifyRight
)

// Texture is the foreground content of an appearance.
type Texture struct {
	Kind    TextureKind
	Text    string
	Justify Justify
}

// Surface links an appearance to the one painted beneath it, so a renderer
// can inherit the parent's background at the given offset.
type Surface struct {
	Parent  *Appearance
	ParentX int
	ParentY int
}

// Appearance describes how a surface is painted. Frames hold private copies
// and mutate the texture text and surface linkage before every paint.
type Appearance struct {
	Name    string
	Style   lipgloss.Style
	Texture Texture
	Surface Surface
}

// NewAppearance builds an appearance with the given style and texture kind.
func NewAppearance(name string, style lipgloss.Style, kind TextureKind) *Appearance {
	return &Appearance{Name: name, Style: style, Texture: Texture{Kind: kind}}
}

// Copy returns an independent appearance. The parent link is not copied.
func (a *Appearance) Copy() *Appearance {
	if a == nil {
		return nil
	}
	dup := *a
	dup.Surface = Surface{}
	return &dup
}

// SetText stores s as the text texture.
func (a *Appearance) SetText(s string) {
	a.Texture.Text = s
}

// SetParent links the appearance to parent at offset (x, y).
func (a *Appearance) SetParent(parent *Appearance, x, y int) {
	a.Surface = Surface{Parent: parent, ParentX: x, ParentY: y}
}
