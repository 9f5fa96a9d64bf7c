package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// WizardResult holds answers collected by the setup wizard.
type WizardResult struct {
	Network     string
	RPCStrategy string
	RPCURL      string // optional override, empty to keep the preset URLs
	WalletName  string // optional, a key is imported under this name
	Aborted     bool
}

// --- Bubble Tea model ---

type wizardStep int

const (
	stepNetwork wizardStep = iota
	stepStrategy
	stepRPC
	stepWallet
	stepDone
)

type wizardModel struct {
	step      wizardStep
	result    WizardResult
	cursor    int
	choices   []string
	input     string
	inputMode bool
}

var strategies = []string{"fastest", "failover"}

func initialWizard(networks []string) wizardModel {
	return wizardModel{
		step:    stepNetwork,
		choices: networks,
	}
}

func (m wizardModel) Init() tea.Cmd { return nil }

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.result.Aborted = true
		return m, tea.Quit

	case "enter":
		if m.inputMode {
			m.applyInput()
		} else {
			m.applyChoice()
		}
		m.cursor = 0
		m.advance()

	case "backspace":
		if m.inputMode && len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}

	default:
		if m.inputMode {
			if key.Type == tea.KeyRunes {
				m.input += string(key.Runes)
			}
			break
		}
		switch key.String() {
		case "q":
			m.result.Aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		}
	}

	if m.step == stepDone {
		return m, tea.Quit
	}
	return m, nil
}

func (m *wizardModel) advance() {
	m.step++
	m.input = ""
	switch m.step {
	case stepStrategy:
		m.choices = strategies
		m.inputMode = false
	case stepRPC, stepWallet:
		m.choices = nil
		m.inputMode = true
	default:
		m.inputMode = false
	}
}

func (m *wizardModel) applyChoice() {
	if m.cursor >= len(m.choices) {
		return
	}
	switch m.step {
	case stepNetwork:
		m.result.Network = m.choices[m.cursor]
	case stepStrategy:
		m.result.RPCStrategy = m.choices[m.cursor]
	}
}

func (m *wizardModel) applyInput() {
	// Strip whitespace and accidental brackets or quotes from paste.
	v := strings.Trim(strings.TrimSpace(m.input), `[]"'`)
	switch m.step {
	case stepRPC:
		m.result.RPCURL = v
	case stepWallet:
		m.result.WalletName = v
	}
}

func (m wizardModel) View() string {
	var s string

	switch m.step {
	case stepNetwork:
		s = renderMenu("Select network:", m.choices, m.cursor)
	case stepStrategy:
		s = renderMenu("Select RPC strategy:", m.choices, m.cursor)
	case stepRPC:
		s = renderInput("Custom RPC URL (optional)", "Enter an RPC URL, or press Enter to use the network defaults:", m.input)
	case stepWallet:
		s = renderInput("Import a signing wallet (optional)", "Enter a wallet name, or press Enter to skip:", m.input)
	case stepDone:
		s = Success("Setup complete!") + "\n"
	}

	return StyleBorder.Render(s) + "\n"
}

func renderMenu(title string, items []string, cursor int) string {
	s := StyleTitle.Render(title) + "\n\n"
	for i, item := range items {
		icon := "  "
		style := lipgloss.NewStyle().Foreground(ColorValue)
		if i == cursor {
			icon = "▸ "
			style = StyleSelected
		}
		s += icon + style.Render(item) + "\n"
	}
	s += "\n" + StyleMeta.Render("↑/↓ navigate · Enter select · q quit")
	return s
}

func renderInput(title, prompt, input string) string {
	s := StyleTitle.Render(title) + "\n\n"
	s += StyleMeta.Render(prompt) + "\n"
	s += "> " + StyleAddress.Render(input) + "█\n"
	return s
}

// RunWizard launches the interactive setup wizard over the given network
// names and returns the answers.
func RunWizard(networks []string) (*WizardResult, error) {
	if len(networks) == 0 {
		return nil, fmt.Errorf("wizard error: no networks to choose from")
	}
	p := tea.NewProgram(initialWizard(networks))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("wizard error: %w", err)
	}
	result := final.(wizardModel).result
	return &result, nil
}
