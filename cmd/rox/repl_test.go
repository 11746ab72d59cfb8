package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgomes/rox/internal/config"
)

func newTestREPL() replModel {
	return newREPLModel(config.Default().REPL)
}

func submit(t *testing.T, m replModel, input string) (replModel, tea.Cmd) {
	t.Helper()
	m.textInput.SetValue(input)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return rm, cmd
}

func TestUpdateQuitCommandReturnsQuit(t *testing.T) {
	rm, cmd := submit(t, newTestREPL(), ":quit")

	if !rm.quitting {
		t.Fatalf("quitting flag not set")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after quit command")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg, got %T", msg)
		}
	}
}

func TestUpdateNonQuitCommandDoesNotReturnCmd(t *testing.T) {
	rm, cmd := submit(t, newTestREPL(), ":help")

	if cmd != nil {
		t.Fatalf("expected no command for non-quit input")
	}
	if rm.quitting {
		t.Fatalf("quitting should remain false")
	}
	if !rm.showHelp {
		t.Fatalf("help toggle should be enabled")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after command")
	}
}

func TestUnknownCommandIsRecordedAsError(t *testing.T) {
	rm, _ := submit(t, newTestREPL(), ":frobnicate")
	if len(rm.history) != 1 || !rm.history[0].isErr {
		t.Fatalf("expected one error entry, got %+v", rm.history)
	}
	if !strings.Contains(rm.history[0].output, ":frobnicate") {
		t.Fatalf("unexpected output %q", rm.history[0].output)
	}
}

func TestEvaluatePrintsTree(t *testing.T) {
	entry := newTestREPL().evaluate("1 + 2 * 3")
	if entry.isErr {
		t.Fatalf("unexpected error: %s", entry.output)
	}
	if entry.output != "(+ 1 (* 2 3))" {
		t.Fatalf("unexpected output %q", entry.output)
	}
	if entry.tokens != "NUMBER PLUS NUMBER STAR NUMBER EOF" {
		t.Fatalf("unexpected tokens %q", entry.tokens)
	}
}

func TestEvaluateReportsErrors(t *testing.T) {
	entry := newTestREPL().evaluate("(1 +")
	if !entry.isErr {
		t.Fatalf("expected error entry, got %q", entry.output)
	}
	if !strings.Contains(entry.output, "expected expression") {
		t.Fatalf("unexpected error output %q", entry.output)
	}
}

func TestEnterRecordsHistoryAndRecallsWithArrows(t *testing.T) {
	m := newTestREPL()
	m, _ = submit(t, m, "1")
	m, _ = submit(t, m, "2")

	if len(m.history) != 2 || len(m.cmdHistory) != 2 {
		t.Fatalf("expected two entries, got %d/%d", len(m.history), len(m.cmdHistory))
	}

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = model.(replModel)
	if m.textInput.Value() != "2" {
		t.Fatalf("expected most recent input, got %q", m.textInput.Value())
	}
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = model.(replModel)
	if m.textInput.Value() != "1" {
		t.Fatalf("expected older input, got %q", m.textInput.Value())
	}
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(replModel)
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(replModel)
	if m.textInput.Value() != "" || m.historyIdx != -1 {
		t.Fatalf("expected to return to an empty prompt, got %q (%d)", m.textInput.Value(), m.historyIdx)
	}
}

func TestHistoryIsCapped(t *testing.T) {
	cfg := config.Default().REPL
	cfg.History = 2
	m := newREPLModel(cfg)
	for _, input := range []string{"1", "2", "3"} {
		m, _ = submit(t, m, input)
	}
	if len(m.history) != 2 || m.history[0].input != "2" {
		t.Fatalf("expected the last two entries, got %+v", m.history)
	}
	if len(m.cmdHistory) != 2 || m.cmdHistory[0] != "2" {
		t.Fatalf("expected the last two inputs, got %v", m.cmdHistory)
	}
}

func TestTokensToggle(t *testing.T) {
	m := newTestREPL()
	if m.showTokens {
		t.Fatalf("tokens should be hidden by default")
	}
	m, _ = submit(t, m, ":tokens")
	if !m.showTokens {
		t.Fatalf(":tokens should enable token display")
	}

	cfg := config.Default().REPL
	cfg.ShowTokens = true
	if !newREPLModel(cfg).showTokens {
		t.Fatalf("show_tokens config should be honored")
	}
}

func TestTabCompletesKeyword(t *testing.T) {
	m := newTestREPL()
	m.textInput.SetValue("1 == fal")
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = model.(replModel)
	if m.textInput.Value() != "1 == false" {
		t.Fatalf("expected completion, got %q", m.textInput.Value())
	}
}

func TestViewRendersHistory(t *testing.T) {
	m := newTestREPL()
	if m.View() != "Loading..." {
		t.Fatalf("expected loading view before the first resize")
	}

	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = model.(replModel)
	m, _ = submit(t, m, "!true")
	view := m.View()
	if !strings.Contains(view, "!true") || !strings.Contains(view, "(! true)") {
		t.Fatalf("expected input and tree in view, got:\n%s", view)
	}
}
