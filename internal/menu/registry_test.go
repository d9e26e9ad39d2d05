package menu

import (
	"reflect"
	"testing"
)

func TestRegistryFindAndIDs(t *testing.T) {
	root := &Menu{ID: RootID, Title: "Root"}
	apps := &Menu{ID: "apps"}
	reg := NewRegistry(root, apps, nil)

	if reg.Root() != root {
		t.Fatalf("expected root menu")
	}
	if m, ok := reg.Find("apps"); !ok || m != apps {
		t.Fatalf("expected apps menu")
	}
	if _, ok := reg.Find("missing"); ok {
		t.Fatalf("expected missing menu to be absent")
	}
	if got := reg.IDs(); !reflect.DeepEqual(got, []string{"apps", RootID}) {
		t.Fatalf("unexpected ids %v", got)
	}
}

func TestRegistryReplaceKeepsIdentity(t *testing.T) {
	apps := &Menu{ID: "apps", Title: "Apps", Entries: []Entry{Normal("Terminal")}}
	root := &Menu{ID: RootID, Title: "Root", Entries: []Entry{Sub(apps)}}
	gone := &Menu{ID: "gone"}
	reg := NewRegistry(root, apps, gone)

	newApps := &Menu{ID: "apps", Title: "Apps", Entries: []Entry{Normal("Terminal"), Normal("Browser")}}
	newRoot := &Menu{ID: RootID, Title: "Root", Entries: []Entry{Sub(newApps)}}
	extra := &Menu{ID: "extra", Title: "Extra"}

	changed := reg.Replace([]*Menu{newRoot, newApps, extra})
	if !reflect.DeepEqual(changed, []string{"apps"}) {
		t.Fatalf("expected only apps reported as changed, got %v", changed)
	}

	if reg.Root() != root {
		t.Fatalf("expected root pointer preserved")
	}
	got, _ := reg.Find("apps")
	if got != apps {
		t.Fatalf("expected apps pointer preserved")
	}
	if len(apps.Entries) != 2 {
		t.Fatalf("expected apps entries updated, got %d", len(apps.Entries))
	}
	sub := root.Entries[0].(*SubmenuEntry)
	if sub.Submenu != apps {
		t.Fatalf("expected submenu entry repointed at the registered menu")
	}
	if _, ok := reg.Find("gone"); ok {
		t.Fatalf("expected dropped menu removed")
	}
	if m, ok := reg.Find("extra"); !ok || m != extra {
		t.Fatalf("expected new menu added")
	}
}

func TestRegistryReplaceDetectsTitleAndStateChanges(t *testing.T) {
	root := &Menu{ID: RootID, Title: "Root", Entries: []Entry{Normal("Run")}}
	reg := NewRegistry(root)

	if changed := reg.Replace([]*Menu{{ID: RootID, Title: "Root", Entries: []Entry{Normal("Run")}}}); len(changed) != 0 {
		t.Fatalf("expected identical reload to report nothing, got %v", changed)
	}
	if changed := reg.Replace([]*Menu{{ID: RootID, Title: "Main", Entries: []Entry{Normal("Run")}}}); len(changed) != 1 {
		t.Fatalf("expected title change reported, got %v", changed)
	}
	disabled := &NormalEntry{ID: "run", Label: "Run", Disabled: true}
	if changed := reg.Replace([]*Menu{{ID: RootID, Title: "Main", Entries: []Entry{disabled}}}); len(changed) != 1 {
		t.Fatalf("expected enabled change reported, got %v", changed)
	}
}

func TestRegistryReplaceReportsParentOfRetitledSubmenu(t *testing.T) {
	// Map iteration order varies between runs, so repeat to cover both orders.
	for i := 0; i < 50; i++ {
		sub := &Menu{ID: "sub", Title: "Old", Entries: []Entry{Normal("x")}}
		root := &Menu{ID: RootID, Title: "Root", Entries: []Entry{Sub(sub)}}
		reg := NewRegistry(root, sub)

		newSub := &Menu{ID: "sub", Title: "New", Entries: []Entry{Normal("x")}}
		newRoot := &Menu{ID: RootID, Title: "Root", Entries: []Entry{Sub(newSub)}}
		changed := reg.Replace([]*Menu{newRoot, newSub})
		if !reflect.DeepEqual(changed, []string{RootID, "sub"}) {
			t.Fatalf("iteration %d: expected root and sub changed, got %v", i, changed)
		}
	}
}
