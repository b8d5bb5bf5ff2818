package controller

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/gild/internal/model"
)

// verdictDelegate renders one verdict row in the results list.
type verdictDelegate struct{}

func (d verdictDelegate) Height() int  { return 1 }
func (d verdictDelegate) Spacing() int { return 0 }
func (d verdictDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d verdictDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	vi, ok := item.(verdictItem)
	if !ok {
		return
	}

	kind := vi.verdict.Kind.String()
	kindStyle := lipgloss.NewStyle().Bold(true).Width(9).Foreground(verdictColor(vi.verdict.Kind))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	if index == lm.Index() {
		kindStyle = kindStyle.Background(lipgloss.Color("6")).Foreground(lipgloss.Color("0"))
		keyStyle = keyStyle.Background(lipgloss.Color("6")).Foreground(lipgloss.Color("0"))
	}

	line := fmt.Sprintf("%s %s", kindStyle.Render(kind), keyStyle.Render(vi.verdict.Execution.Key()))
	if vi.verdict.Reason != "" {
		line += "  " + lipgloss.NewStyle().Faint(true).Render(vi.verdict.Reason)
	}

	_, _ = fmt.Fprint(w, line)
}

func verdictColor(kind m.VerdictKind) lipgloss.Color {
	switch kind {
	case m.VerdictPass:
		return lipgloss.Color("2")
	case m.VerdictFail:
		return lipgloss.Color("1")
	case m.VerdictBlessed:
		return lipgloss.Color("4")
	case m.VerdictError:
		return lipgloss.Color("3")
	}

	return lipgloss.Color("8")
}

// runModel handles the TUI display during a harness run.
type runModel struct {
	width  int
	height int

	progressBar progress.Model
	resultsList list.Model

	total     int
	completed int
	workers   int
	summary   m.RunSummary
	finished  bool

	showDiff bool
}

func newRunModel() runModel {
	prog := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	resultsList := list.New([]list.Item{}, verdictDelegate{}, 80, 20)
	resultsList.SetShowPagination(false)
	resultsList.SetShowFilter(true)
	resultsList.SetShowHelp(false)
	resultsList.SetShowTitle(false)
	resultsList.SetShowStatusBar(false)
	resultsList.FilterInput.Placeholder = "Filter results…"

	return runModel{
		progressBar: prog,
		resultsList: resultsList,
	}
}

func (mo runModel) Init() tea.Cmd {
	return nil
}

func (mo runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		mo.width = msg.Width
		mo.height = msg.Height
		mo.resultsList.SetSize(msg.Width, max(msg.Height-6, 4))

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return mo, tea.Quit
		case "enter":
			mo.showDiff = !mo.showDiff
		default:
			mo.resultsList, cmd = mo.resultsList.Update(msg)
		}

	case runStartedMsg:
		mo.total = msg.total
		mo.workers = msg.workers
		mo.completed = 0

	case verdictMsg:
		mo.completed++
		mo.summary.Add(msg.verdict)
		cmd = mo.resultsList.InsertItem(len(mo.resultsList.Items()), verdictItem{verdict: msg.verdict})

	case runCompletedMsg:
		mo.finished = true
		mo.summary = msg.summary
	}

	return mo, cmd
}

func (mo runModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Render("gild")
	b.WriteString(title + "\n\n")

	percent := 0.0
	if mo.total > 0 {
		percent = float64(mo.completed) / float64(mo.total)
	}

	b.WriteString(mo.progressBar.ViewAs(percent))
	b.WriteString(fmt.Sprintf("  %d/%d  (%d workers)\n\n", mo.completed, mo.total, mo.workers))

	if mo.showDiff {
		b.WriteString(mo.viewSelectedDiff())
	} else {
		b.WriteString(mo.resultsList.View())
	}

	b.WriteString("\n" + mo.statusLine())

	return b.String()
}

func (mo runModel) viewSelectedDiff() string {
	item, ok := mo.resultsList.SelectedItem().(verdictItem)
	if !ok {
		return "nothing selected\n"
	}

	v := item.verdict

	switch {
	case v.Diff != "":
		return v.Diff
	case v.Output != "":
		return v.Output
	case v.Reason != "":
		return v.Reason + "\n"
	}

	return "no diff for " + v.Execution.Key() + "\n"
}

func (mo runModel) statusLine() string {
	hint := "enter: diff  q: quit"

	if !mo.finished {
		return lipgloss.NewStyle().Faint(true).Render("running…  " + hint)
	}

	status := fmt.Sprintf("%d pass, %d fail, %d blessed, %d error",
		mo.summary.Passed, mo.summary.Failed, mo.summary.Blessed, mo.summary.Errored)

	color := lipgloss.Color("2")
	if mo.summary.ExitCode() != 0 {
		color = lipgloss.Color("1")
	}

	return lipgloss.NewStyle().Foreground(color).Render(status) +
		"  " + lipgloss.NewStyle().Faint(true).Render(hint)
}
