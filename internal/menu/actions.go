package menu

import (
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/atomicstack/cascade-menu/internal/logging/events"
)

// ActionBuilder turns the arguments of an action definition into an Action.
type ActionBuilder func(args map[string]string) (Action, error)

// ActionSet maps action names used in menu files to their builders.
type ActionSet map[string]ActionBuilder

// DefaultActions returns the built-in action builders.
func DefaultActions() ActionSet {
	return ActionSet{
		"exec": buildExecAction,
		"log":  buildLogAction,
	}
}

// With returns a copy of s with name bound to builder.
func (s ActionSet) With(name string, builder ActionBuilder) ActionSet {
	dup := make(ActionSet, len(s)+1)
	for k, v := range s {
		dup[k] = v
	}
	dup[name] = builder
	return dup
}

// Names lists the registered action names in sorted order.
func (s ActionSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build resolves a named action.
func (s ActionSet) Build(name string, args map[string]string) (Action, error) {
	builder, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("unknown action %q (known: %s)", name, strings.Join(s.Names(), ", "))
	}
	return builder(args)
}

// runCommand starts a command without waiting for it to finish. Tests swap it
// out to avoid spawning processes.
var runCommand = func(command string, client Client) error {
	cmd := exec.Command("sh", "-c", command)
	if client != nil {
		cmd.Env = append(cmd.Environ(), "CASCADE_MENU_CLIENT="+client.ClientID())
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %q: %w", command, err)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func buildExecAction(args map[string]string) (Action, error) {
	command := strings.TrimSpace(args["command"])
	if command == "" {
		return nil, fmt.Errorf("exec action requires a command")
	}
	return func(client Client) error {
		return runCommand(command, client)
	}, nil
}

func buildLogAction(args map[string]string) (Action, error) {
	message := args["message"]
	return func(client Client) error {
		clientID := ""
		if client != nil {
			clientID = client.ClientID()
		}
		events.Action.Message(message, clientID)
		return nil
	}, nil
}
