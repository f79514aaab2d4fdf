// Package console writes project tables and repository status lines to a terminal.
package console

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/temirov/projctl/internal/report"
)

const (
	pathHeaderConstant            = "Path"
	projectsHeaderConstant        = "Projects"
	rootBannerTemplateConstant    = "===[ %s ]="
	projectRowTemplateConstant    = "%s %s%s%s%s"
	divergenceRowTemplateConstant = "%s %s"
	branchSuffixTemplateConstant  = "  [%s]"
	editionColumnTemplateConstant = "%-5s"
	releaseColumnTemplateConstant = "%-4s"
	nameColumnTemplateConstant    = "%-24s"
	statusColumnTemplateConstant  = "%s"
	headerTableWidthConstant      = 80
)

var (
	positiveColor = lipgloss.Color("10")
	warningColor  = lipgloss.Color("11")
	negativeColor = lipgloss.Color("9")
	neutralColor  = lipgloss.Color("15")
	mutedColor    = lipgloss.Color("8")
	bannerColor   = lipgloss.Color("1")
	countColor    = lipgloss.Color("3")
	headingColor  = lipgloss.Color("2")
)

// Renderer formats report rows with lipgloss styles. Color output depends on the writer:
// writers that are not terminals receive plain text.
type Renderer struct {
	writer      io.Writer
	classStyles map[report.ColorClass]lipgloss.Style
	indexStyle  lipgloss.Style
	bannerStyle lipgloss.Style
	borderStyle lipgloss.Style
	headerStyle lipgloss.Style
	pathStyle   lipgloss.Style
	countStyle  lipgloss.Style
}

// NewRenderer constructs a Renderer bound to writer.
func NewRenderer(writer io.Writer) *Renderer {
	styleRenderer := lipgloss.NewRenderer(writer)
	return &Renderer{
		writer: writer,
		classStyles: map[report.ColorClass]lipgloss.Style{
			report.ColorPositive: styleRenderer.NewStyle().Foreground(positiveColor),
			report.ColorWarning:  styleRenderer.NewStyle().Foreground(warningColor),
			report.ColorNegative: styleRenderer.NewStyle().Foreground(negativeColor),
			report.ColorNeutral:  styleRenderer.NewStyle().Foreground(neutralColor),
		},
		indexStyle:  styleRenderer.NewStyle().Foreground(mutedColor),
		bannerStyle: styleRenderer.NewStyle().Foreground(bannerColor),
		borderStyle: styleRenderer.NewStyle().Foreground(mutedColor),
		headerStyle: styleRenderer.NewStyle().Bold(true).Padding(0, 1),
		pathStyle:   styleRenderer.NewStyle().Bold(true).Foreground(neutralColor).Padding(0, 1),
		countStyle:  styleRenderer.NewStyle().Foreground(countColor).Padding(0, 1),
	}
}

// RenderProjectHeader writes the bordered root summary shown above a project table.
func (renderer *Renderer) RenderProjectHeader(root string, total int) {
	headerTable := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(renderer.borderStyle).
		Width(headerTableWidthConstant).
		Headers(pathHeaderConstant, projectsHeaderConstant).
		Row(root, strconv.Itoa(total)).
		StyleFunc(func(row int, column int) lipgloss.Style {
			switch {
			case row == table.HeaderRow && column == 1:
				return renderer.headerStyle.Foreground(headingColor)
			case row == table.HeaderRow:
				return renderer.headerStyle
			case column == 1:
				return renderer.countStyle
			default:
				return renderer.pathStyle
			}
		})

	fmt.Fprintln(renderer.writer, headerTable.Render())
}

// RenderProjectRow writes one project line: index, edition, release marker, name and location.
func (renderer *Renderer) RenderProjectRow(row report.ProjectRow) {
	indexStyle := renderer.indexStyle
	if row.Index.Color != report.ColorNeutral {
		indexStyle = renderer.classStyles[row.Index.Color]
	}

	fmt.Fprintf(
		renderer.writer,
		projectRowTemplateConstant+"\n",
		indexStyle.Render(row.Index.Symbol),
		renderer.render(row.Edition, editionColumnTemplateConstant),
		renderer.render(row.Release, releaseColumnTemplateConstant),
		fmt.Sprintf(nameColumnTemplateConstant, row.Name),
		row.DisplayName,
	)
}

// RenderRootBanner writes the line that opens the repository listing of a root.
func (renderer *Renderer) RenderRootBanner(root string) {
	fmt.Fprintln(renderer.writer, renderer.bannerStyle.Render(fmt.Sprintf(rootBannerTemplateConstant, root)))
}

// RenderDivergenceRow writes one repository status line.
func (renderer *Renderer) RenderDivergenceRow(row report.DivergenceRow) {
	line := fmt.Sprintf(divergenceRowTemplateConstant, renderer.render(row.Status, statusColumnTemplateConstant), row.DisplayName)
	if len(row.Branch) > 0 {
		line += fmt.Sprintf(branchSuffixTemplateConstant, row.Branch)
	}
	fmt.Fprintln(renderer.writer, line)
}

func (renderer *Renderer) render(token report.Token, columnTemplate string) string {
	return renderer.classStyles[token.Color].Render(fmt.Sprintf(columnTemplate, token.Symbol))
}
