package menu

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/atomicstack/cascade-menu/internal/logging"
)

func withStub[T any](restore *T, value T) func() {
	original := *restore
	*restore = value
	return func() { *restore = original }
}

type stubClient string

func (c stubClient) ClientID() string { return string(c) }

func TestExecActionRunsCommandForClient(t *testing.T) {
	var gotCommand, gotClient string
	defer withStub(&runCommand, func(command string, client Client) error {
		gotCommand = command
		if client != nil {
			gotClient = client.ClientID()
		}
		return nil
	})()

	act, err := DefaultActions().Build("exec", map[string]string{"command": "  xterm -e top "})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if err := act(stubClient("0x1a")); err != nil {
		t.Fatalf("action returned error: %v", err)
	}
	if gotCommand != "xterm -e top" || gotClient != "0x1a" {
		t.Fatalf("unexpected invocation %q for %q", gotCommand, gotClient)
	}
}

func TestExecActionPropagatesStartError(t *testing.T) {
	defer withStub(&runCommand, func(string, Client) error {
		return errors.New("no shell")
	})()
	act, err := DefaultActions().Build("exec", map[string]string{"command": "true"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if err := act(nil); err == nil || err.Error() != "no shell" {
		t.Fatalf("expected start error, got %v", err)
	}
}

func TestLogActionTraces(t *testing.T) {
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	logging.SetTraceEnabled(true)
	t.Cleanup(func() {
		logging.SetOutput(nil)
		logging.SetTraceEnabled(false)
	})

	act, err := DefaultActions().Build("log", map[string]string{"message": "hello"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if err := act(stubClient("term")); err != nil {
		t.Fatalf("action returned error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "term") {
		t.Fatalf("expected message and client traced, got %q", out)
	}
}

func TestActionSetWithAndNames(t *testing.T) {
	base := DefaultActions()
	ext := base.With("noop", func(map[string]string) (Action, error) {
		return func(Client) error { return nil }, nil
	})
	if _, ok := base["noop"]; ok {
		t.Fatalf("expected With to leave the original set untouched")
	}
	if got := ext.Names(); !reflect.DeepEqual(got, []string{"exec", "log", "noop"}) {
		t.Fatalf("unexpected names %v", got)
	}
	if _, err := ext.Build("missing", nil); err == nil || !strings.Contains(err.Error(), "exec, log, noop") {
		t.Fatalf("expected unknown action error listing names, got %v", err)
	}
}
