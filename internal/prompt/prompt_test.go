package prompt

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeText(t *testing.T, current model, text string) model {
	t.Helper()
	updated, _ := current.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return updated.(model)
}

func pressKey(t *testing.T, current model, keyType tea.KeyType) (model, tea.Cmd) {
	t.Helper()
	updated, command := current.Update(tea.KeyMsg{Type: keyType})
	return updated.(model), command
}

func pressRune(t *testing.T, current model, key rune) model {
	t.Helper()
	updated, _ := current.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{key}})
	return updated.(model)
}

func isQuit(command tea.Cmd) bool {
	if command == nil {
		return false
	}
	_, quits := command().(tea.QuitMsg)
	return quits
}

func TestPromptRejectsEmptyPath(t *testing.T) {
	current, command := pressKey(t, newModel(), tea.KeyEnter)
	if current.currentStep != stepPath {
		t.Fatalf("expected to stay on path step, got %v", current.currentStep)
	}
	if current.validationError != emptyPathMessage {
		t.Fatalf("expected validation message, got %q", current.validationError)
	}
	if command != nil {
		t.Fatalf("expected no command on rejected input")
	}
	if !strings.Contains(current.View(), emptyPathMessage) {
		t.Fatalf("expected view to show validation message: %s", current.View())
	}
}

func TestPromptCollectsPathAndExtension(t *testing.T) {
	testCases := []struct {
		name              string
		moves             []rune
		expectedExtension string
	}{
		{name: "default_all", expectedExtension: "all"},
		{name: "down_twice", moves: []rune{'j', 'j'}, expectedExtension: ".docx"},
		{name: "down_then_up", moves: []rune{'j', 'j', 'k'}, expectedExtension: ".doc"},
		{name: "up_at_top_stays", moves: []rune{'k'}, expectedExtension: "all"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			current := typeText(t, newModel(), " ./docs ")
			current, _ = pressKey(t, current, tea.KeyEnter)
			if current.currentStep != stepExtension {
				t.Fatalf("expected extension step, got %v", current.currentStep)
			}
			if current.answers.DirectoryPath != "./docs" {
				t.Fatalf("expected trimmed path, got %q", current.answers.DirectoryPath)
			}
			for _, move := range testCase.moves {
				current = pressRune(t, current, move)
			}
			current, command := pressKey(t, current, tea.KeyEnter)
			if !isQuit(command) {
				t.Fatalf("expected quit command after selection")
			}
			if current.currentStep != stepDone || current.answers.Extension != testCase.expectedExtension {
				t.Fatalf("expected %s, got step %v answers %+v", testCase.expectedExtension, current.currentStep, current.answers)
			}
		})
	}
}

func TestPromptArrowKeysStopAtBottom(t *testing.T) {
	current := typeText(t, newModel(), "src")
	current, _ = pressKey(t, current, tea.KeyEnter)
	for iteration := 0; iteration < len(ExtensionChoices)+3; iteration++ {
		current, _ = pressKey(t, current, tea.KeyDown)
	}
	if current.cursor != len(ExtensionChoices)-1 {
		t.Fatalf("expected cursor at last choice, got %d", current.cursor)
	}
	current, _ = pressKey(t, current, tea.KeyUp)
	if ExtensionChoices[current.cursor] != ".html" {
		t.Fatalf("expected .html after moving up, got %s", ExtensionChoices[current.cursor])
	}
}

func TestPromptAbort(t *testing.T) {
	testCases := []struct {
		name    string
		keyType tea.KeyType
		onPath  bool
	}{
		{name: "escape_on_path", keyType: tea.KeyEsc, onPath: true},
		{name: "ctrl_c_on_extension", keyType: tea.KeyCtrlC, onPath: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			current := newModel()
			if !testCase.onPath {
				current = typeText(t, current, "src")
				current, _ = pressKey(t, current, tea.KeyEnter)
			}
			current, command := pressKey(t, current, testCase.keyType)
			if !current.aborted || !isQuit(command) {
				t.Fatalf("expected aborted model with quit command")
			}
		})
	}
}

func TestPromptViewListsChoices(t *testing.T) {
	current := typeText(t, newModel(), "src")
	current, _ = pressKey(t, current, tea.KeyEnter)
	view := current.View()
	for _, choice := range ExtensionChoices {
		if !strings.Contains(view, choice) {
			t.Fatalf("expected view to list %s", choice)
		}
	}
}
