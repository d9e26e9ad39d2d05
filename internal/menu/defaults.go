package menu

// DefaultRegistry returns the menus shown when no menu file is configured.
func DefaultRegistry() *Registry {
	logTo := func(message string) Action {
		act, _ := buildLogAction(map[string]string{"message": message})
		return act
	}

	editors := &Menu{ID: "editors", Title: "Editors", Entries: []Entry{
		Normal("Vim", logTo("launch vim")),
		Normal("Emacs", logTo("launch emacs")),
		&NormalEntry{ID: "ed", Label: "ed", Disabled: true},
	}}
	apps := &Menu{ID: "apps", Title: "Applications", Entries: []Entry{
		Normal("Terminal", logTo("launch terminal")),
		Normal("Browser", logTo("launch browser")),
		Separator(),
		Sub(editors),
	}}
	workspaces := &Menu{ID: "workspaces", Title: "Workspaces", Entries: []Entry{
		Normal("One", logTo("switch workspace 1")),
		Normal("Two", logTo("switch workspace 2")),
		Normal("Three", logTo("switch workspace 3")),
	}}
	root := &Menu{ID: RootID, Title: "Cascade", Entries: []Entry{
		Sub(apps),
		Sub(workspaces),
		Separator(),
		Normal("Reconfigure", logTo("reconfigure")),
		&NormalEntry{ID: "restart", Label: "Restart", Disabled: true},
	}}
	return NewRegistry(root, apps, editors, workspaces)
}
