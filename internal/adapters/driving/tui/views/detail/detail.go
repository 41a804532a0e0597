// Package detail provides the record detail view component for the TUI.
package detail

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arara-labs/gradsearch/internal/adapters/driving/tui/messages"
	"github.com/arara-labs/gradsearch/internal/adapters/driving/tui/styles"
	"github.com/arara-labs/gradsearch/internal/core/domain"
)

// View shows one full catalog record: a discipline with its
// prerequisite groups and dependents, or a degree program with its
// curriculum trees.
type View struct {
	styles *styles.Styles

	discipline *domain.Discipline
	course     *domain.Course
	requiredBy domain.CodeSet

	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
}

// NewView creates a new record detail view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
	}
}

// SetDetail installs a loaded record.
func (v *View) SetDetail(msg messages.DetailLoaded) {
	v.discipline = msg.Discipline
	v.course = msg.Course
	v.requiredBy = msg.RequiredBy
	v.err = msg.Err
	v.scrollOffset = 0
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSearch}
		}
	}

	return v, nil
}

// visibleLines returns the number of lines that can be displayed.
func (v *View) visibleLines() int {
	// Reserve lines for title, separator, help, and padding
	reserved := 6
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	maxOffset := len(v.buildContent()) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// buildContent builds the content lines for display.
func (v *View) buildContent() []string {
	switch {
	case v.discipline != nil:
		return v.disciplineContent()
	case v.course != nil:
		return v.courseContent()
	default:
		return nil
	}
}

// disciplineContent renders a subject record.
func (v *View) disciplineContent() []string {
	d := v.discipline

	lines := []string{
		v.formatField("Code", d.Code),
		v.formatField("Name", d.Name),
		"",
		"Prerequisites:",
	}

	if len(d.Reqs) == 0 {
		lines = append(lines, "  None")
	}
	for i, group := range d.Reqs {
		prefix := "  "
		if i > 0 {
			prefix = "  or "
		}
		lines = append(lines, prefix+formatGroup(group))
	}

	if v.requiredBy.Len() > 0 {
		lines = append(lines, "", "Required by:",
			"  "+strings.Join(v.requiredBy.Values(), ", "))
	}

	return lines
}

// courseContent renders a degree program record.
func (v *View) courseContent() []string {
	c := v.course

	lines := []string{
		v.formatField("Code", c.Code),
		v.formatField("Name", c.Name),
		v.formatField("Semesters", fmt.Sprintf("%d", c.Semesters())),
	}

	if len(c.Variants) > 0 {
		for _, variant := range c.Variants {
			lines = append(lines, "", variant.Name+":")
			lines = appendTree(lines, variant.Tree)
		}
		return lines
	}

	lines = append(lines, "", "Curriculum:")
	lines = appendTree(lines, c.Tree)
	return lines
}

// appendTree adds one line per semester.
func appendTree(lines []string, tree []domain.CodeSet) []string {
	for i, semester := range tree {
		lines = append(lines, fmt.Sprintf("  Semester %d: %s",
			i+1, strings.Join(semester.Values(), ", ")))
	}
	return lines
}

// formatGroup renders one conjunction of prerequisites. Partial
// attendance keeps the catalog's '*' prefix; codes missing from the
// catalog are flagged special.
func formatGroup(group domain.RequirementGroup) string {
	parts := make([]string, len(group))
	for i, req := range group {
		code := req.Code
		if req.Partial {
			code = "*" + code
		}
		if req.Special {
			code += " (special)"
		}
		parts[i] = code
	}
	return strings.Join(parts, " + ")
}

// formatField formats a field for display.
func (v *View) formatField(label, value string) string {
	return fmt.Sprintf("%-12s %s", label+":", value)
}

// View renders the detail view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.title()))
	b.WriteString("\n")

	sepWidth := minInt(v.width-4, 60)
	if sepWidth < 1 {
		sepWidth = 1
	}
	b.WriteString(strings.Repeat("─", sepWidth))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	lines := v.buildContent()
	if len(lines) == 0 {
		b.WriteString(v.styles.Muted.Render("No record loaded"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visibleLines := v.visibleLines()
	for i := v.scrollOffset; i < len(lines) && i < v.scrollOffset+visibleLines; i++ {
		b.WriteString(v.renderLine(lines[i]))
		b.WriteString("\n")
	}

	if len(lines) > visibleLines {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [Line %d-%d of %d]",
			v.scrollOffset+1,
			minInt(v.scrollOffset+visibleLines, len(lines)),
			len(lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderLine styles one content line by shape: section headings,
// indented members, and labelled fields.
func (v *View) renderLine(line string) string {
	switch {
	case strings.HasPrefix(line, "  "):
		return v.styles.Normal.Render(line)
	case strings.HasSuffix(line, ":"):
		return v.styles.Subtitle.Render(line)
	case strings.Contains(line, ":"):
		parts := strings.SplitN(line, ":", 2)
		return v.styles.Subtitle.Render(parts[0]+":") + v.styles.Normal.Render(parts[1])
	default:
		return v.styles.Normal.Render(line)
	}
}

// title names the record kind being shown.
func (v *View) title() string {
	if v.course != nil {
		return "Degree Program"
	}
	return "Discipline"
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] scroll  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Discipline returns the loaded subject record, if any.
func (v *View) Discipline() *domain.Discipline {
	return v.discipline
}

// Course returns the loaded program record, if any.
func (v *View) Course() *domain.Course {
	return v.course
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
