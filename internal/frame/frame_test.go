package frame_test

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/atomicstack/cascade-menu/internal/frame"
	"github.com/atomicstack/cascade-menu/internal/geom"
	"github.com/atomicstack/cascade-menu/internal/logging"
	"github.com/atomicstack/cascade-menu/internal/menu"
	"github.com/atomicstack/cascade-menu/internal/testutil"
)

type testClient string

func (c testClient) ClientID() string { return string(c) }

// sampleMenus returns a titled menu "a" with two normal entries and a
// submenu entry pointing at the untitled-in-frame submenu "b".
func sampleMenus() (*menu.Menu, *menu.Menu) {
	b := &menu.Menu{ID: "b", Title: "Bee", Entries: []menu.Entry{menu.Normal("x")}}
	a := &menu.Menu{ID: "a", Title: "A", Entries: []menu.Entry{
		menu.Normal("one"),
		menu.Normal("two"),
		menu.Sub(b),
	}}
	return a, b
}

func assertVisible(t *testing.T, mgr *frame.Manager, want ...*frame.MenuFrame) {
	t.Helper()
	got := mgr.Visible()
	if len(got) != len(want) {
		t.Fatalf("expected %d visible frames, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("visible[%d] mismatch: got menu %q, want menu %q", i, got[i].Menu().ID, want[i].Menu().ID)
		}
	}
}

func TestEndToEndSubmenuScenario(t *testing.T) {
	env := testutil.NewEnv()
	mgr := env.Manager
	ma, mb := sampleMenus()

	a := mgr.NewFrame(ma, nil)
	a.Show(nil)
	assertVisible(t, mgr, a)
	if env.Grabber.Grabs != 1 {
		t.Fatalf("expected one grab, got %d", env.Grabber.Grabs)
	}
	if area := a.Area(); area.Width < 10 && area.Height < 3 {
		t.Fatalf("expected non-degenerate area, got %+v", area)
	}
	if len(a.Entries()) != 3 {
		t.Fatalf("expected 3 entry frames, got %d", len(a.Entries()))
	}

	a.Select(a.Entries()[2])
	b := a.Child()
	if b == nil {
		t.Fatalf("expected submenu frame after selecting submenu entry")
	}
	if b.Menu() != mb {
		t.Fatalf("expected child bound to submenu b")
	}
	if b.Parent() != a {
		t.Fatalf("expected child parent to be a")
	}
	assertVisible(t, mgr, b, a)

	b.Hide()
	assertVisible(t, mgr, a)
	if a.Child() != nil {
		t.Fatalf("expected a.child cleared after hiding b")
	}
	if !b.Destroyed() {
		t.Fatalf("expected hidden frame to be destroyed")
	}

	a.Hide()
	assertVisible(t, mgr)
	if env.Grabber.Grabs != 1 || env.Grabber.Ungrabs != 1 {
		t.Fatalf("expected 1 grab and 1 ungrab, got %d/%d", env.Grabber.Grabs, env.Grabber.Ungrabs)
	}
	if env.Display.Live() != 0 {
		t.Fatalf("expected every surface destroyed, %d remain", env.Display.Live())
	}
}

func TestRenderLayout(t *testing.T) {
	env := testutil.NewEnv()
	ma, _ := sampleMenus()
	a := env.Manager.NewFrame(ma, nil)
	a.Show(nil)

	// Title "A" is 1 wide and 1 tall, plus the 1 unit border below it.
	if a.TitleHeight() != 2 {
		t.Fatalf("expected title height 2, got %d", a.TitleHeight())
	}
	if a.ItemHeight() != 1 {
		t.Fatalf("expected item height 1, got %d", a.ItemHeight())
	}
	// Widest label is 3; the bullet column adds one item height.
	if a.InnerWidth() != 4 {
		t.Fatalf("expected inner width 4, got %d", a.InnerWidth())
	}
	if x, w := a.TextColumn(); x != 0 || w != 3 {
		t.Fatalf("expected text column (0, 3), got (%d, %d)", x, w)
	}
	want := geom.NewRect(0, 0, 6, 7)
	if a.Area() != want {
		t.Fatalf("expected area %+v, got %+v", want, a.Area())
	}
	for i, e := range a.Entries() {
		wantArea := geom.NewRect(0, i, 4, 1)
		if e.Area() != wantArea {
			t.Fatalf("entry %d: expected area %+v, got %+v", i, wantArea, e.Area())
		}
	}

	win := env.Display.Windows[a.Window()]
	if win.Width != 4 || win.Height != 5 || win.BorderWidth != 1 || !win.Mapped {
		t.Fatalf("unexpected main window state %+v", win)
	}
}

func TestRenderEmptyMenuUsesFloors(t *testing.T) {
	env := testutil.NewEnv()
	f := env.Manager.NewFrame(&menu.Menu{ID: "empty"}, nil)
	f.Show(nil)
	if f.InnerWidth() != 10 {
		t.Fatalf("expected floor width 10, got %d", f.InnerWidth())
	}
	want := geom.NewRect(0, 0, 12, 5)
	if f.Area() != want {
		t.Fatalf("expected area %+v, got %+v", want, f.Area())
	}
	if f.ItemHeight() != 0 {
		t.Fatalf("expected zero item height for empty menu, got %d", f.ItemHeight())
	}
}

func TestSubmenuHasNoTitleBand(t *testing.T) {
	env := testutil.NewEnv()
	ma, _ := sampleMenus()
	a := env.Manager.NewFrame(ma, nil)
	a.Show(nil)
	a.Select(a.Entries()[2])
	b := a.Child()

	if b.TitleHeight() != 0 {
		t.Fatalf("expected submenu without title band, got %d", b.TitleHeight())
	}
	// Positioned right of a, level with the entry plus a's title band.
	want := geom.NewRect(6, 4, 3, 3)
	if b.Area() != want {
		t.Fatalf("expected submenu area %+v, got %+v", want, b.Area())
	}
}

func TestSubmenuOverlap(t *testing.T) {
	env := testutil.NewEnv()
	env.Theme.MenuOverlap = 2
	ma, _ := sampleMenus()
	a := env.Manager.NewFrame(ma, nil)
	a.Move(10, 10)
	a.Show(nil)
	a.Select(a.Entries()[2])
	if got := a.Child().Area().X; got != 10+6-2 {
		t.Fatalf("expected submenu x %d, got %d", 10+6-2, got)
	}
}

func TestSeparatorLayoutAndText(t *testing.T) {
	env := testutil.NewEnv()
	env.Theme.SeparatorHeight = 2
	m := &menu.Menu{ID: "m", Entries: []menu.Entry{
		menu.Normal("ab"),
		menu.Separator(),
		menu.Normal("c"),
	}}
	f := env.Manager.NewFrame(m, nil)
	f.Show(nil)

	entries := f.Entries()
	if got := entries[1].Area(); got != geom.NewRect(0, 1, 2, 2) {
		t.Fatalf("unexpected separator area %+v", got)
	}
	if got := entries[2].Area(); got != geom.NewRect(0, 3, 2, 1) {
		t.Fatalf("unexpected trailing entry area %+v", got)
	}
	if f.Area().Height != 4+2 {
		t.Fatalf("expected total height 6, got %d", f.Area().Height)
	}

	// Separators never paint text.
	for _, p := range env.Renderer.Paints {
		if strings.HasPrefix(p.Appearance, "menu.text") && p.Text == "" && p.Width > 0 {
			t.Fatalf("unexpected empty text paint %+v", p)
		}
	}
}

func TestEntryTextAndBulletPaint(t *testing.T) {
	env := testutil.NewEnv()
	ma, _ := sampleMenus()
	a := env.Manager.NewFrame(ma, nil)
	a.Show(nil)

	var texts []string
	bullets := 0
	for _, p := range env.Renderer.Paints {
		switch {
		case strings.HasPrefix(p.Appearance, "menu.text"):
			texts = append(texts, p.Text)
		case p.Appearance == "menu.bullet":
			bullets++
		}
	}
	if got := strings.Join(texts, ","); got != "one,two,Bee" {
		t.Fatalf("expected painted texts one,two,Bee, got %s", got)
	}
	if bullets != 1 {
		t.Fatalf("expected one bullet paint, got %d", bullets)
	}
}

func TestSelectedEntryUsesHiliteAppearance(t *testing.T) {
	env := testutil.NewEnv()
	ma, _ := sampleMenus()
	a := env.Manager.NewFrame(ma, nil)
	a.Show(nil)
	env.Renderer.Paints = nil

	a.Select(a.Entries()[1])
	names := make([]string, 0, len(env.Renderer.Paints))
	for _, p := range env.Renderer.Paints {
		names = append(names, p.Appearance)
	}
	if got := strings.Join(names, ","); got != "menu.hilite,menu.text.hilite" {
		t.Fatalf("unexpected paints on select: %s", got)
	}

	env.Renderer.Paints = nil
	a.Select(nil)
	names = names[:0]
	for _, p := range env.Renderer.Paints {
		names = append(names, p.Appearance)
	}
	if got := strings.Join(names, ","); got != "menu.item,menu.text.item" {
		t.Fatalf("unexpected paints on deselect: %s", got)
	}
}

func TestDisabledEntryUsesDisabledAppearance(t *testing.T) {
	env := testutil.NewEnv()
	m := &menu.Menu{ID: "m", Entries: []menu.Entry{
		&menu.NormalEntry{ID: "off", Label: "off", Disabled: true},
	}}
	f := env.Manager.NewFrame(m, nil)
	f.Show(nil)
	env.Renderer.Paints = nil

	f.Select(f.Entries()[0])
	if f.Selected() != f.Entries()[0] {
		t.Fatalf("expected disabled entry to be selectable")
	}
	for _, p := range env.Renderer.Paints {
		if !strings.Contains(p.Appearance, "disabled") {
			t.Fatalf("expected disabled appearances only, got %s", p.Appearance)
		}
	}
}

func TestSelectIgnoresSeparatorsAndRepeats(t *testing.T) {
	env := testutil.NewEnv()
	m := &menu.Menu{ID: "m", Entries: []menu.Entry{
		menu.Normal("one"),
		menu.Separator(),
		menu.Normal("two"),
	}}
	f := env.Manager.NewFrame(m, nil)
	f.Show(nil)
	entries := f.Entries()

	f.Select(entries[0])
	if f.Selected() != entries[0] {
		t.Fatalf("expected first entry selected")
	}
	paints := len(env.Renderer.Paints)
	f.Select(entries[0])
	if len(env.Renderer.Paints) != paints {
		t.Fatalf("expected reselecting the same entry to be a no-op")
	}

	f.Select(entries[1])
	if f.Selected() != nil {
		t.Fatalf("expected separator selection to clear, got %v", f.Selected())
	}

	f.Select(nil)
	if f.Selected() != nil {
		t.Fatalf("expected nil selection to stay nil")
	}
}

func TestSelectOffSubmenuClosesIt(t *testing.T) {
	env := testutil.NewEnv()
	ma, _ := sampleMenus()
	a := env.Manager.NewFrame(ma, nil)
	a.Show(nil)
	entries := a.Entries()

	a.Select(entries[2])
	b := a.Child()
	if b == nil {
		t.Fatalf("expected submenu open")
	}
	a.Select(entries[0])
	if a.Child() != nil {
		t.Fatalf("expected submenu closed after moving selection")
	}
	if b.Visible() || !b.Destroyed() {
		t.Fatalf("expected old submenu hidden and destroyed")
	}
	assertVisible(t, env.Manager, a)
}

func TestSelectNextSkipsSeparatorsAndWraps(t *testing.T) {
	env := testutil.NewEnv()
	m := &menu.Menu{ID: "m", Entries: []menu.Entry{
		menu.Separator(),
		menu.Normal("one"),
		menu.Separator(),
		menu.Normal("two"),
	}}
	f := env.Manager.NewFrame(m, nil)
	f.Show(nil)
	entries := f.Entries()

	f.SelectNext()
	if f.Selected() != entries[1] {
		t.Fatalf("expected first selectable entry, got index %d", f.IndexOf(f.Selected()))
	}
	f.SelectNext()
	if f.Selected() != entries[3] {
		t.Fatalf("expected separator skipped, got index %d", f.IndexOf(f.Selected()))
	}
	f.SelectNext()
	if f.Selected() != entries[1] {
		t.Fatalf("expected wrap to first selectable, got index %d", f.IndexOf(f.Selected()))
	}
	f.SelectPrev()
	if f.Selected() != entries[3] {
		t.Fatalf("expected wrap backwards, got index %d", f.IndexOf(f.Selected()))
	}

	only := env.Manager.NewFrame(&menu.Menu{ID: "sep", Entries: []menu.Entry{menu.Separator()}}, nil)
	only.Show(nil)
	only.SelectNext()
	if only.Selected() != nil {
		t.Fatalf("expected nothing selectable in separator-only menu")
	}
}

func TestShowWithParentReplacesExistingChild(t *testing.T) {
	env := testutil.NewEnv()
	mgr := env.Manager
	s1 := &menu.Menu{ID: "s1", Title: "S1", Entries: []menu.Entry{menu.Normal("x")}}
	s2 := &menu.Menu{ID: "s2", Title: "S2", Entries: []menu.Entry{menu.Normal("y")}}
	root := &menu.Menu{ID: "root", Entries: []menu.Entry{menu.Sub(s1), menu.Sub(s2)}}

	a := mgr.NewFrame(root, nil)
	a.Show(nil)
	a.Select(a.Entries()[0])
	old := a.Child()

	c := mgr.NewFrame(s2, nil)
	c.Show(a)
	if a.Child() != c || c.Parent() != a {
		t.Fatalf("expected c linked as a's child")
	}
	if old.Visible() {
		t.Fatalf("expected previous child hidden")
	}
	assertVisible(t, mgr, c, a)
}

func TestShowIsIdempotent(t *testing.T) {
	env := testutil.NewEnv()
	ma, _ := sampleMenus()
	a := env.Manager.NewFrame(ma, nil)
	a.Show(nil)
	a.Select(a.Entries()[1])
	entries := a.Entries()
	creates := countPrefix(env.Display.Calls, "create:")

	a.Show(nil)
	if len(a.Entries()) != len(entries) {
		t.Fatalf("expected entry count unchanged, got %d", len(a.Entries()))
	}
	for i, e := range a.Entries() {
		if e != entries[i] {
			t.Fatalf("expected entry frame %d reused", i)
		}
	}
	if a.Selected() != entries[1] {
		t.Fatalf("expected selection preserved across re-show")
	}
	if got := countPrefix(env.Display.Calls, "create:"); got != creates {
		t.Fatalf("expected no new surfaces, created %d more", got-creates)
	}
	if env.Grabber.Grabs != 1 {
		t.Fatalf("expected a single grab, got %d", env.Grabber.Grabs)
	}
	assertVisible(t, env.Manager, a)
}

func TestGrabPrecedesFirstMapAndUngrabPrecedesUnmap(t *testing.T) {
	env := testutil.NewEnv()
	ma, _ := sampleMenus()
	a := env.Manager.NewFrame(ma, nil)
	env.Display.Calls = env.Display.Calls[:0]

	a.Show(nil)
	grabAt := indexOf(env.Display.Calls, "grab")
	mapAt := lastIndexOf(env.Display.Calls, mapCall(a))
	if grabAt < 0 || mapAt < 0 || grabAt > mapAt {
		t.Fatalf("expected grab before mapping frame window, calls %v", env.Display.Calls)
	}

	win := a.Window()
	a.Hide()
	ungrabAt := indexOf(env.Display.Calls, "ungrab")
	unmapAt := indexOf(env.Display.Calls, "unmap:"+strconv.Itoa(int(win)))
	if ungrabAt < 0 || unmapAt < 0 || ungrabAt > unmapAt {
		t.Fatalf("expected ungrab before unmapping frame window, calls %v", env.Display.Calls)
	}
}

func TestGrabCountsBalanceAcrossSequences(t *testing.T) {
	env := testutil.NewEnv()
	mgr := env.Manager
	ma, _ := sampleMenus()
	for i := 0; i < 4; i++ {
		a := mgr.NewFrame(ma, nil)
		a.Show(nil)
		a.Select(a.Entries()[2])
		other := mgr.NewFrame(&menu.Menu{ID: "other"}, nil)
		other.Show(nil)
		if mgr.Top() != other {
			t.Fatalf("expected most recent frame on top")
		}
		other.Hide()
		a.Hide()
	}
	if env.Grabber.Grabs != 4 || env.Grabber.Ungrabs != 4 {
		t.Fatalf("expected 4 grabs and 4 ungrabs, got %d/%d", env.Grabber.Grabs, env.Grabber.Ungrabs)
	}
	if env.Grabber.Active {
		t.Fatalf("expected grab released")
	}
}

func TestHideOfUnshownFrameDoesNotUngrab(t *testing.T) {
	env := testutil.NewEnv()
	f := env.Manager.NewFrame(&menu.Menu{ID: "m"}, nil)
	f.Hide()
	if env.Grabber.Ungrabs != 0 {
		t.Fatalf("expected no ungrab for a frame that was never shown")
	}
	if env.Display.Live() != 0 {
		t.Fatalf("expected surfaces released")
	}
	f.Hide()
}

func nestedMenus(depth int) *menu.Menu {
	leaf := &menu.Menu{ID: "level-" + strconv.Itoa(depth), Title: "leaf", Entries: []menu.Entry{menu.Normal("leaf")}}
	current := leaf
	for i := depth - 1; i >= 0; i-- {
		current = &menu.Menu{ID: "level-" + strconv.Itoa(i), Title: "level", Entries: []menu.Entry{menu.Sub(current)}}
	}
	return current
}

func TestHideAllTerminatesForNestedDepths(t *testing.T) {
	for _, depth := range []int{0, 1, 5} {
		env := testutil.NewEnv()
		mgr := env.Manager
		root := mgr.NewFrame(nestedMenus(depth), nil)
		root.Show(nil)
		for f := root; ; {
			if first := f.Entries()[0]; first.Kind() == menu.KindSubmenu {
				f.Select(first)
				f = f.Child()
				continue
			}
			break
		}
		if got := len(mgr.Visible()); got != depth+1 {
			t.Fatalf("depth %d: expected %d visible frames, got %d", depth, depth+1, got)
		}

		mgr.HideAll()
		if mgr.Open() {
			t.Fatalf("depth %d: expected registry empty", depth)
		}
		if env.Grabber.Grabs != 1 || env.Grabber.Ungrabs != 1 {
			t.Fatalf("depth %d: expected 1/1 grabs, got %d/%d", depth, env.Grabber.Grabs, env.Grabber.Ungrabs)
		}
		if env.Display.Live() != 0 {
			t.Fatalf("depth %d: expected all surfaces destroyed, %d remain", depth, env.Display.Live())
		}
	}
}

func TestHideParentTearsDownChain(t *testing.T) {
	env := testutil.NewEnv()
	root := env.Manager.NewFrame(nestedMenus(3), nil)
	root.Show(nil)
	f := root
	for i := 0; i < 3; i++ {
		f.Select(f.Entries()[0])
		f = f.Child()
	}
	mid := root.Child()
	mid.Hide()
	assertVisible(t, env.Manager, root)
	if root.Child() != nil {
		t.Fatalf("expected root child cleared")
	}
	if env.Grabber.Ungrabs != 0 {
		t.Fatalf("expected grab kept while root is visible")
	}
}

func TestExecuteRunsActionsInOrderAndClosesMenus(t *testing.T) {
	var logBuf bytes.Buffer
	logging.SetOutput(&logBuf)
	t.Cleanup(func() { logging.SetOutput(nil) })

	env := testutil.NewEnv()
	var calls []string
	record := func(name string, err error) menu.Action {
		return func(c menu.Client) error {
			calls = append(calls, name+"@"+c.ClientID())
			return err
		}
	}
	leaf := &menu.Menu{ID: "leaf", Entries: []menu.Entry{
		menu.Normal("run", record("first", errors.New("first failed")), record("second", nil)),
	}}
	root := &menu.Menu{ID: "root", Entries: []menu.Entry{menu.Sub(leaf)}}

	a := env.Manager.NewFrame(root, testClient("xterm"))
	a.Show(nil)
	a.Select(a.Entries()[0])
	child := a.Child()
	if child.Client() != testClient("xterm") {
		t.Fatalf("expected submenu to inherit the client")
	}

	child.Entries()[0].Execute()
	if got := strings.Join(calls, ","); got != "first@xterm,second@xterm" {
		t.Fatalf("unexpected action calls %s", got)
	}
	if env.Manager.Open() {
		t.Fatalf("expected every menu closed after execute")
	}
	if env.Grabber.Ungrabs != 1 {
		t.Fatalf("expected grab released once, got %d", env.Grabber.Ungrabs)
	}
	if !strings.Contains(logBuf.String(), "first failed") {
		t.Fatalf("expected action error logged, got %q", logBuf.String())
	}
}

func TestExecuteIgnoresNonNormalEntries(t *testing.T) {
	env := testutil.NewEnv()
	ran := false
	act := func(menu.Client) error { ran = true; return nil }
	sub := &menu.Menu{ID: "sub", Entries: []menu.Entry{menu.Normal("x")}}
	m := &menu.Menu{ID: "m", Entries: []menu.Entry{
		&menu.NormalEntry{ID: "off", Label: "off", Actions: []menu.Action{act}, Disabled: true},
		menu.Separator(),
		menu.Sub(sub),
	}}
	f := env.Manager.NewFrame(m, nil)
	f.Show(nil)
	entries := f.Entries()
	entries[1].Execute()
	entries[2].Execute()
	if ran || !f.Visible() {
		t.Fatalf("expected separator and submenu entries to do nothing")
	}

	entries[0].Execute()
	if !ran {
		t.Fatalf("expected a normal entry to run regardless of its enabled flag")
	}
	if env.Manager.Open() {
		t.Fatalf("expected menus closed after execute")
	}
}

func TestHideRootWithOpenSubmenuUngrabsOnce(t *testing.T) {
	env := testutil.NewEnv()
	ma, _ := sampleMenus()
	root := env.Manager.NewFrame(ma, nil)
	root.Show(nil)
	root.Select(root.Entries()[2])
	if root.Child() == nil {
		t.Fatalf("expected submenu open")
	}

	root.Hide()
	if env.Manager.Open() {
		t.Fatalf("expected nothing visible")
	}
	if env.Grabber.Grabs != 1 || env.Grabber.Ungrabs != 1 {
		t.Fatalf("expected 1/1 grabs, got %d/%d", env.Grabber.Grabs, env.Grabber.Ungrabs)
	}

	again := env.Manager.NewFrame(ma, nil)
	again.Show(nil)
	again.Hide()
	if env.Grabber.Grabs != 2 || env.Grabber.Ungrabs != 2 {
		t.Fatalf("expected 2/2 grabs after a second cycle, got %d/%d", env.Grabber.Grabs, env.Grabber.Ungrabs)
	}
}

func countPrefix(calls []string, prefix string) int {
	n := 0
	for _, c := range calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func indexOf(calls []string, want string) int {
	for i, c := range calls {
		if c == want {
			return i
		}
	}
	return -1
}

func lastIndexOf(calls []string, want string) int {
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i] == want {
			return i
		}
	}
	return -1
}

func mapCall(f *frame.MenuFrame) string {
	return "map:" + strconv.Itoa(int(f.Window()))
}
