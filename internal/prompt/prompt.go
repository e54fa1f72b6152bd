// Package prompt asks interactively for the directory to scan and the extension filter.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/temirov/dirscan/internal/types"
)

const (
	pathQuestion       = "Enter the directory path to scan:"
	extensionQuestion  = "Select the file extension to filter by:"
	emptyPathMessage   = "Please enter a valid directory path"
	pathPlaceholder    = "."
	inputPromptMarker  = "> "
	selectedMarker     = "> "
	unselectedMarker   = "  "
	helpLine           = "↑/↓ or k/j to move, enter to confirm, esc to cancel"
	unexpectedModelMsg = "unexpected prompt model %T"
)

// ExtensionChoices lists the filters offered by the prompt, in display order.
var ExtensionChoices = []string{
	types.ExtensionAll,
	".doc", ".docx", ".pdf", ".ppt", ".pptx", ".xls", ".xlsx", ".zip",
	".txt", ".ts", ".tsx", ".js", ".html", ".jsx",
}

// ErrAborted is returned when the user cancels the prompt.
var ErrAborted = errors.New("prompt aborted")

// Answers holds the values collected by the prompt.
type Answers struct {
	DirectoryPath string
	Extension     string
}

type step int

const (
	stepPath step = iota
	stepExtension
	stepDone
)

var (
	questionStyle = lipgloss.NewStyle().Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

type model struct {
	pathInput       textinput.Model
	currentStep     step
	cursor          int
	validationError string
	aborted         bool
	answers         Answers
}

func newModel() model {
	pathInput := textinput.New()
	pathInput.Placeholder = pathPlaceholder
	pathInput.Prompt = inputPromptMarker
	pathInput.CharLimit = 0
	pathInput.Focus()
	return model{pathInput: pathInput}
}

// Run drives the prompt over input and output and returns the collected answers.
func Run(input io.Reader, output io.Writer) (Answers, error) {
	program := tea.NewProgram(newModel(), tea.WithInput(input), tea.WithOutput(output))
	finalModel, runError := program.Run()
	if runError != nil {
		return Answers{}, runError
	}
	finalState, ok := finalModel.(model)
	if !ok {
		return Answers{}, fmt.Errorf(unexpectedModelMsg, finalModel)
	}
	if finalState.aborted || finalState.currentStep != stepDone {
		return Answers{}, ErrAborted
	}
	return finalState.answers, nil
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMessage, isKey := msg.(tea.KeyMsg)
	if isKey {
		switch keyMessage.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}

	switch m.currentStep {
	case stepPath:
		if isKey && keyMessage.String() == "enter" {
			directoryPath := strings.TrimSpace(m.pathInput.Value())
			if directoryPath == "" {
				m.validationError = emptyPathMessage
				return m, nil
			}
			m.validationError = ""
			m.answers.DirectoryPath = directoryPath
			m.pathInput.Blur()
			m.currentStep = stepExtension
			return m, nil
		}
		var inputCommand tea.Cmd
		m.pathInput, inputCommand = m.pathInput.Update(msg)
		return m, inputCommand
	case stepExtension:
		if !isKey {
			return m, nil
		}
		switch keyMessage.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(ExtensionChoices)-1 {
				m.cursor++
			}
		case "enter":
			m.answers.Extension = ExtensionChoices[m.cursor]
			m.currentStep = stepDone
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	var builder strings.Builder
	switch m.currentStep {
	case stepPath:
		builder.WriteString(questionStyle.Render(pathQuestion))
		builder.WriteString("\n")
		builder.WriteString(m.pathInput.View())
		builder.WriteString("\n")
		if m.validationError != "" {
			builder.WriteString(errorStyle.Render(m.validationError))
			builder.WriteString("\n")
		}
	case stepExtension:
		builder.WriteString(questionStyle.Render(extensionQuestion))
		builder.WriteString("\n")
		for index, choice := range ExtensionChoices {
			if index == m.cursor {
				builder.WriteString(selectedStyle.Render(selectedMarker + choice))
			} else {
				builder.WriteString(unselectedMarker + choice)
			}
			builder.WriteString("\n")
		}
		builder.WriteString(helpStyle.Render(helpLine))
		builder.WriteString("\n")
	}
	return builder.String()
}
