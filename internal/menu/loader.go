package menu

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type fileDef struct {
	Menus []*menuDef `yaml:"menus" toml:"menus"`
}

type menuDef struct {
	ID      string      `yaml:"id" toml:"id"`
	Title   string      `yaml:"title" toml:"title"`
	Entries []*entryDef `yaml:"entries" toml:"entries"`
}

type entryDef struct {
	ID        string              `yaml:"id" toml:"id"`
	Label     string              `yaml:"label" toml:"label"`
	Actions   []map[string]string `yaml:"actions" toml:"actions"`
	Separator bool                `yaml:"separator" toml:"separator"`
	Menu      string              `yaml:"menu" toml:"menu"`
	Submenu   *menuDef            `yaml:"submenu" toml:"submenu"`
	Enabled   *bool               `yaml:"enabled" toml:"enabled"`
}

// Loader reads menu definitions from YAML documents.
type Loader struct {
	Actions ActionSet
}

// NewLoader returns a loader resolving actions through set. A nil set falls
// back to DefaultActions.
func NewLoader(set ActionSet) *Loader {
	if set == nil {
		set = DefaultActions()
	}
	return &Loader{Actions: set}
}

// LoadFile parses the menu file at path. Files ending in .toml are read as
// TOML, anything else as YAML.
func (l *Loader) LoadFile(path string) ([]*Menu, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open menu file: %w", err)
	}
	defer f.Close()
	load := l.Load
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		load = l.LoadTOML
	}
	menus, err := load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return menus, nil
}

// Load parses a menu document. The first top-level menu without an ID
// becomes the root menu. Submenu references by ID are resolved once every
// menu, inline ones included, has been collected.
func (l *Loader) Load(r io.Reader) ([]*Menu, error) {
	var doc fileDef
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("menu file is empty")
		}
		return nil, fmt.Errorf("decode menus: %w", err)
	}
	return l.build(&doc)
}

// LoadTOML parses a menu document written in TOML. The layout matches the
// YAML form: a menus array of tables, each with an entries array.
func (l *Loader) LoadTOML(r io.Reader) ([]*Menu, error) {
	var doc fileDef
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode menus: %w", err)
	}
	return l.build(&doc)
}

func (l *Loader) build(doc *fileDef) ([]*Menu, error) {
	if len(doc.Menus) == 0 {
		return nil, errors.New("menu file defines no menus")
	}
	if doc.Menus[0].ID == "" {
		doc.Menus[0].ID = RootID
	}

	b := &builder{actions: l.Actions, byID: make(map[string]*Menu)}
	for _, def := range doc.Menus {
		if _, err := b.menu(def); err != nil {
			return nil, err
		}
	}
	if err := b.resolve(); err != nil {
		return nil, err
	}
	if _, ok := b.byID[RootID]; !ok {
		return nil, fmt.Errorf("no menu with id %q", RootID)
	}
	return b.order, nil
}

type pendingRef struct {
	entry  *SubmenuEntry
	target string
	owner  string
}

type builder struct {
	actions ActionSet
	byID    map[string]*Menu
	order   []*Menu
	refs    []pendingRef
}

func (b *builder) menu(def *menuDef) (*Menu, error) {
	if def == nil {
		return nil, errors.New("empty menu definition")
	}
	if def.ID == "" {
		return nil, fmt.Errorf("menu %q has no id", def.Title)
	}
	if _, dup := b.byID[def.ID]; dup {
		return nil, fmt.Errorf("duplicate menu id %q", def.ID)
	}
	m := &Menu{ID: def.ID, Title: def.Title}
	b.byID[m.ID] = m
	b.order = append(b.order, m)
	for i, ed := range def.Entries {
		e, err := b.entry(m, ed)
		if err != nil {
			return nil, fmt.Errorf("menu %q entry %d: %w", m.ID, i, err)
		}
		m.Entries = append(m.Entries, e)
	}
	return m, nil
}

func (b *builder) entry(owner *Menu, def *entryDef) (Entry, error) {
	if def == nil {
		return nil, errors.New("empty entry")
	}
	forms := 0
	for _, set := range []bool{def.Label != "", def.Separator, def.Menu != "", def.Submenu != nil} {
		if set {
			forms++
		}
	}
	if forms != 1 {
		return nil, errors.New("entry must set exactly one of label, separator, menu or submenu")
	}
	disabled := def.Enabled != nil && !*def.Enabled

	switch {
	case def.Separator:
		return &SeparatorEntry{ID: def.ID}, nil
	case def.Menu != "":
		sub := &SubmenuEntry{ID: firstNonEmpty(def.ID, def.Menu), Disabled: disabled}
		b.refs = append(b.refs, pendingRef{entry: sub, target: def.Menu, owner: owner.ID})
		return sub, nil
	case def.Submenu != nil:
		target, err := b.menu(def.Submenu)
		if err != nil {
			return nil, err
		}
		return &SubmenuEntry{ID: firstNonEmpty(def.ID, target.ID), Submenu: target, Disabled: disabled}, nil
	}

	e := &NormalEntry{ID: firstNonEmpty(def.ID, slug(def.Label)), Label: def.Label, Disabled: disabled}
	for i, args := range def.Actions {
		name := args["name"]
		if name == "" {
			return nil, fmt.Errorf("action %d has no name", i)
		}
		params := make(map[string]string, len(args))
		for k, v := range args {
			if k != "name" {
				params[k] = v
			}
		}
		act, err := b.actions.Build(name, params)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		e.Actions = append(e.Actions, act)
	}
	return e, nil
}

func (b *builder) resolve() error {
	for _, ref := range b.refs {
		target, ok := b.byID[ref.target]
		if !ok {
			return fmt.Errorf("menu %q references unknown menu %q", ref.owner, ref.target)
		}
		ref.entry.Submenu = target
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// LoadRegistry loads path into a registry. An empty path yields the built-in
// menus.
func LoadRegistry(path string, set ActionSet) (*Registry, error) {
	if path == "" {
		return DefaultRegistry(), nil
	}
	menus, err := NewLoader(set).LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewRegistry(menus...), nil
}
