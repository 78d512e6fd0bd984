package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type stage int

const (
	stageProjectName stage = iota
	stageLanguage
	stageSummary
)

type model struct {
	stage   stage
	project textinput.Model
	choices []string
	cursor  int
	done    bool
}

func initialModel() model {
	projectName := textinput.New()
	projectName.Placeholder = "Enter project directory name"
	projectName.Focus()
	projectName.Width = 20

	return model{
		stage:   stageProjectName,
		project: projectName,
		choices: []string{
			"TypeScript",
			"JavaScript",
		},
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.stage == stageLanguage && m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.stage == stageLanguage && m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case "enter":
			switch m.stage {
			case stageProjectName:
				if m.project.Value() == "" {
					return m, tea.Quit
				}
				m.project.Blur()
				m.stage = stageLanguage
			case stageLanguage:
				m.stage = stageSummary
			case stageSummary:
				m.done = true
				return m, tea.Quit
			}
		}

		if m.stage == stageProjectName {
			m.project, cmd = m.project.Update(msg)
		}
	}

	return m, cmd
}

func (m model) View() string {
	switch m.stage {
	case stageProjectName:
		return fmt.Sprintf("Project directory\n\n%s\n\n(enter to continue, esc to quit)\n", m.project.View())
	case stageLanguage:
		s := "Entry point language\n\n"
		for i, choice := range m.choices {
			cursor := " "
			if m.cursor == i {
				cursor = ">"
			}
			s += fmt.Sprintf("%s %s\n", cursor, choice)
		}
		return s + "\n(enter to continue, esc to quit)\n"
	case stageSummary:
		return fmt.Sprintf(
			"Create %s with a %s entry point?\n\n(enter to confirm, esc to quit)\n",
			m.project.Value(), m.choices[m.cursor],
		)
	}
	return ""
}

const gitignoreTemplate = `/public/build
/public/hot
node_modules
`

// scaffold lays out the directories and files the plugin expects: an entry
// point under src/, the public web root, and ignore rules covering the build
// directory and the hot file.
func scaffold(m model) error {
	root := m.project.Value()

	ext := ".ts"
	if m.choices[m.cursor] == "JavaScript" {
		ext = ".js"
	}

	for _, dir := range []string{
		filepath.Join(root, "src"),
		filepath.Join(root, "public"),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	entry := filepath.Join(root, "src", "app"+ext)
	if err := os.WriteFile(entry, []byte("console.log(\"ready\");\n"), 0644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte(gitignoreTemplate), 0644); err != nil {
		return err
	}

	fmt.Printf("Created %s (entry point %s)\n", root, entry)
	return nil
}
