package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"fconst/internal/diag"
	"fconst/internal/fold"
	"fconst/internal/numeric"
	"fconst/internal/source"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively fold s-expression constant expressions",
	Long: `repl opens a line editor: type an expression, press enter, and see its
folded value and diagnostics immediately. Every line folds against its own
fold.Context, so state from one line never leaks into the next.`,
	RunE: runRepl,
}

var (
	replPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	replValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	replErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	replWarnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	replDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func runRepl(cmd *cobra.Command, args []string) error {
	roundingStr, err := cmd.Root().PersistentFlags().GetString("rounding")
	if err != nil {
		return fmt.Errorf("failed to get rounding flag: %w", err)
	}
	flushSubnormals, err := cmd.Root().PersistentFlags().GetBool("flush-subnormals")
	if err != nil {
		return fmt.Errorf("failed to get flush-subnormals flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	rounding, err := parseRoundingMode(roundingStr)
	if err != nil {
		return err
	}
	cfg, err := loadFoldConfig(".")
	if err != nil {
		return err
	}

	model := newReplModel(rounding, flushSubnormals, maxDiagnostics, cfg)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, err = program.Run()
	return err
}

// replLine is one evaluated history entry shown in the transcript viewport.
type replLine struct {
	input  string
	value  string
	diags  []diag.Diagnostic
	parsed bool
}

type replModel struct {
	input  textinput.Model
	view   viewport.Model
	lines  []replLine
	fs     *source.FileSet
	nextID int

	rounding        numeric.RoundingMode
	flushSubnormals bool
	maxDiagnostics  int
	cfg             foldConfig

	width, height int
}

func newReplModel(rounding numeric.RoundingMode, flushSubnormals bool, maxDiagnostics int, cfg foldConfig) *replModel {
	ti := textinput.New()
	ti.Placeholder = `(+ 2 3)`
	ti.Focus()
	ti.Prompt = "foldcheck> "
	ti.PromptStyle = replPromptStyle

	return &replModel{
		input:           ti,
		view:            viewport.New(80, 20),
		fs:              source.NewFileSet(),
		rounding:        rounding,
		flushSubnormals: flushSubnormals,
		maxDiagnostics:  maxDiagnostics,
		cfg:             cfg,
		width:           80,
		height:          20,
	}
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.view.Width = msg.Width
		m.view.Height = msg.Height - 4
		m.input.Width = msg.Width - len(m.input.Prompt)
		m.refreshTranscript()
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text != "" {
				if strings.EqualFold(text, "quit") || strings.EqualFold(text, "exit") {
					return m, tea.Quit
				}
				m.evalLine(text)
				m.refreshTranscript()
			}
			m.input.SetValue("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *replModel) View() string {
	hint := replDimStyle.Render("enter an expression, or 'quit' to leave")
	return m.view.View() + "\n" + m.input.View() + "\n" + hint
}

// evalLine parses and folds one line, appending the outcome to the
// transcript. Parse failures surface as a line with no value, like a
// diagnostic with no location.
func (m *replModel) evalLine(text string) {
	m.nextID++
	name := fmt.Sprintf("<repl %d>", m.nextID)
	e, err := ParseExprText(m.fs, name, text)
	if err != nil {
		m.lines = append(m.lines, replLine{input: text, value: err.Error(), parsed: false})
		return
	}

	bag := diag.NewBag(m.maxDiagnostics)
	fctx := fold.NewContext(diag.BagReporter{Bag: bag}, hostHandleFor(m.cfg.Fold.HostMath), nil)
	fctx.Rounding = m.rounding
	fctx.FlushSubnormal = m.flushSubnormals

	folded := fold.Rewrite(fctx, e)
	m.lines = append(m.lines, replLine{input: text, value: renderExpr(folded), diags: bag.Items(), parsed: true})
}

func (m *replModel) refreshTranscript() {
	var b strings.Builder
	for _, l := range m.lines {
		fmt.Fprintf(&b, "%s %s\n", replPromptStyle.Render("foldcheck>"), l.input)
		if !l.parsed {
			fmt.Fprintf(&b, "  %s\n", replErrorStyle.Render(l.value))
			continue
		}
		fmt.Fprintf(&b, "  %s\n", replValueStyle.Render(l.value))
		for _, d := range l.diags {
			style := replWarnStyle
			if d.Severity == diag.SevError {
				style = replErrorStyle
			}
			fmt.Fprintf(&b, "  %s\n", style.Render(fmt.Sprintf("%s %s: %s", d.Severity, d.Code, d.Message)))
		}
	}
	m.view.SetContent(b.String())
	m.view.GotoBottom()
}
