package theme

import "testing"

func TestCopyIsIndependent(t *testing.T) {
	base := Default().MenuTextItem
	dup := base.Copy()
	dup.SetText("changed")
	dup.Texture.Kind = TextureMask
	if base.Texture.Text != "" {
		t.Fatalf("expected original text untouched, got %q", base.Texture.Text)
	}
	if base.Texture.Kind != TextureText {
		t.Fatalf("expected original texture kind untouched")
	}
}

func TestCopyDropsParentLink(t *testing.T) {
	th := Default()
	a := th.MenuItem.Copy()
	a.SetParent(th.Menu, 3, 4)
	dup := a.Copy()
	if dup.Surface.Parent != nil {
		t.Fatalf("expected copy to drop parent link")
	}
	if a.Surface.Parent != th.Menu || a.Surface.ParentX != 3 || a.Surface.ParentY != 4 {
		t.Fatalf("unexpected surface %+v", a.Surface)
	}
}

func TestSeparatorRowsFallback(t *testing.T) {
	th := Default()
	if got := th.SeparatorRows(); got != 1 {
		t.Fatalf("expected terminal theme separator height 1, got %d", got)
	}
	th.SeparatorHeight = 0
	if got := th.SeparatorRows(); got != DefaultSeparatorHeight {
		t.Fatalf("expected fallback %d, got %d", DefaultSeparatorHeight, got)
	}
}

func TestDefaultReturnsFreshTheme(t *testing.T) {
	a := Default()
	a.BorderWidth = 9
	if Default().BorderWidth == 9 {
		t.Fatalf("expected Default to return an independent theme")
	}
}

func TestCopyNil(t *testing.T) {
	var a *Appearance
	if a.Copy() != nil {
		t.Fatalf("expected nil copy of nil appearance")
	}
}
