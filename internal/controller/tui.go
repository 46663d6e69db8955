package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "ctorfield.dev/pkg/ctorfield/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	footerStyle  = lipgloss.NewStyle().Faint(true)
	appliedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// TUI implements UI for interactive terminals. Progress is printed as it
// happens; listings, diffs and reports are collected and shown in a pager
// when they do not fit on screen.
type TUI struct {
	output io.Writer
	mu     sync.Mutex
	mode   StartMode
	lines  []string
	width  int
	height int
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start resets the collected content and reads the terminal size.
func (p *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.mode = applyStartOptions(options).mode
	p.lines = nil

	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			p.width = width
			p.height = height
		}
	}

	return nil
}

// Close finalizes the UI.
func (p *TUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.mu.Lock()
	p.lines = nil
	p.mu.Unlock()
}

// Wait shows the collected content, paging it when it exceeds the terminal.
func (p *TUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.mu.Lock()
	model := newPagerModel(p.title(), p.lines, p.width, p.height)
	p.lines = nil
	p.mu.Unlock()

	if len(model.lines) == 0 {
		return
	}

	if !model.needsPagination() {
		_, _ = fmt.Fprint(p.output, model.View())
		return
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		_, _ = fmt.Fprint(p.output, strings.Join(model.lines, "\n")+"\n")
	}
}

// DisplayDiagnostics collects the diagnostics table for Wait.
func (p *TUI) DisplayDiagnostics(ctx context.Context, diagnostics []m.Diagnostic, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if len(diagnostics) == 0 {
		p.collect(mutedStyle.Render("no diagnostics found"))
	} else {
		p.collect(renderDiagnosticsTable(diagnostics))
	}

	if err != nil {
		p.collect(failedStyle.Render(fmt.Sprintf("error: %v", err)))
		return err
	}

	return nil
}

// DisplayConcurrencyInfo prints the worker and document counts.
func (p *TUI) DisplayConcurrencyInfo(ctx context.Context, threads int, documents int) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.println(titleStyle.Render(fmt.Sprintf("ctorfield: %d document(s), %d worker(s)", documents, threads)))
}

// DisplayCompletedFix prints one styled line per finished fix.
func (p *TUI) DisplayCompletedFix(ctx context.Context, report m.FixReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	if p.mode == ModeDiff {
		return
	}

	p.println(fmt.Sprintf("%s %s", styleStatus(report.Status), formatFix(report)))
}

// DisplayDiff collects a styled diff for Wait.
func (p *TUI) DisplayDiff(ctx context.Context, path m.Path, diff string) {
	if err := ctx.Err(); err != nil {
		return
	}

	if diff == "" {
		return
	}

	var b strings.Builder

	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			b.WriteString(lipgloss.NewStyle().Bold(true).Render(line))
		case strings.HasPrefix(line, "@@"):
			b.WriteString(hunkStyle.Render(line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(addedStyle.Render(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(removedStyle.Render(line))
		default:
			b.WriteString(line)
		}

		b.WriteString("\n")
	}

	p.collect(b.String())
}

// DisplayRunReport collects a saved run report for Wait.
func (p *TUI) DisplayRunReport(ctx context.Context, report m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.collect(titleStyle.Render(formatReportHeader(report)) + "\n")

	if len(report.Reports) == 0 {
		p.collect(mutedStyle.Render("no fixes recorded"))
	} else {
		p.collect(renderReportTable(report))
	}

	p.collect(formatSummary(summaryOf(report)))

	return nil
}

// DisplaySummary prints the totals of a fix run.
func (p *TUI) DisplaySummary(ctx context.Context, summary m.Summary) {
	if err := ctx.Err(); err != nil {
		return
	}

	style := appliedStyle
	if summary.Failed > 0 {
		style = failedStyle
	}

	p.println("\n" + style.Render(formatSummary(summary)))
}

func (p *TUI) title() string {
	switch p.mode {
	case ModeList:
		return "ctorfield: diagnostics"
	case ModeDiff:
		return "ctorfield: pending changes"
	case ModeView:
		return "ctorfield: last run"
	case ModeFix:
		return "ctorfield: fixes"
	}

	return "ctorfield"
}

func (p *TUI) collect(block string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lines = append(p.lines, strings.Split(strings.TrimSuffix(block, "\n"), "\n")...)
}

func (p *TUI) println(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, _ = fmt.Fprintln(p.output, line)
}

func styleStatus(status m.FixStatus) string {
	label := fmt.Sprintf("[%s]", strings.ToUpper(status.String()))

	switch status {
	case m.Applied:
		return appliedStyle.Render(label)
	case m.Skipped:
		return skippedStyle.Render(label)
	case m.Failed:
		return failedStyle.Render(label)
	case m.Canceled:
		return mutedStyle.Render(label)
	}

	return label
}

// pagerModel is the Bubble Tea model that scrolls through collected lines.
type pagerModel struct {
	title    string
	lines    []string
	height   int
	width    int
	viewport viewport.Model
	quitting bool
}

func newPagerModel(title string, lines []string, width, height int) pagerModel {
	copied := make([]string, len(lines))
	copy(copied, lines)

	pm := pagerModel{
		title:  title,
		lines:  copied,
		width:  width,
		height: height,
	}

	pm.viewport = viewport.New(width, pm.linesPerPage())
	pm.viewport.SetContent(strings.Join(copied, "\n"))

	return pm
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.height = msg.Height
		pm.width = msg.Width
		pm.viewport.Width = msg.Width
		pm.viewport.Height = pm.linesPerPage()

		if pm.offset() > pm.maxOffset() {
			pm.viewport.SetYOffset(pm.maxOffset())
		}

		return pm, nil

	case tea.KeyMsg:
		return pm.handleKeyPress(msg)
	}

	var cmd tea.Cmd

	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

//nolint:cyclop,exhaustive // Key handling requires multiple cases for UI navigation
func (pm pagerModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		pm.quitting = true
		return pm, tea.Quit
	default:
	}

	switch msg.String() {
	case "q":
		pm.quitting = true
		return pm, tea.Quit

	case "down", "j":
		pm.scroll(1)

	case "up", "k":
		pm.scroll(-1)

	case "g", "home":
		pm.viewport.GotoTop()

	case "G", "end":
		pm.viewport.SetYOffset(pm.maxOffset())

	case "d", "pgdown", " ":
		pm.scroll(pm.linesPerPage())

	case "u", "pgup":
		pm.scroll(-pm.linesPerPage())
	}

	return pm, nil
}

func (pm *pagerModel) scroll(delta int) {
	offset := pm.offset() + delta

	if offset > pm.maxOffset() {
		offset = pm.maxOffset()
	}

	if offset < 0 {
		offset = 0
	}

	pm.viewport.SetYOffset(offset)
}

func (pm pagerModel) offset() int {
	return pm.viewport.YOffset
}

// linesPerPage reserves three lines for the title and two for the footer.
func (pm pagerModel) linesPerPage() int {
	if pm.height == 0 {
		return 20
	}

	available := pm.height - 5
	if available < 1 {
		return 1
	}

	return available
}

func (pm pagerModel) maxOffset() int {
	maxOff := len(pm.lines) - pm.linesPerPage()
	if maxOff < 0 {
		return 0
	}

	return maxOff
}

func (pm pagerModel) needsPagination() bool {
	return pm.height > 0 && len(pm.lines) > pm.linesPerPage()
}

func (pm pagerModel) View() string {
	if pm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(pm.title))
	b.WriteString("\n\n")

	if !pm.needsPagination() {
		for _, line := range pm.lines {
			b.WriteString(line)
			b.WriteString("\n")
		}

		return b.String()
	}

	start := pm.offset()
	end := min(start+pm.linesPerPage(), len(pm.lines))

	b.WriteString(pm.viewport.View())
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf(
		"lines %d-%d of %d | j/k: scroll | d/u: page | g/G: top/bottom | q: quit",
		start+1, end, len(pm.lines))))
	b.WriteString("\n")

	return b.String()
}
