package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha, as used by the dump.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorLavender lipgloss.Color = "#b4befe"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorPeach    lipgloss.Color = "#fab387"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorSurface1 lipgloss.Color = "#45475a"
)

type styles struct {
	title    lipgloss.Style
	meta     lipgloss.Style
	header   lipgloss.Style
	cell     lipgloss.Style
	exported lipgloss.Style
	selected lipgloss.Style
	detail   lipgloss.Style
	label    lipgloss.Style
	status   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:    r.NewStyle().Bold(true).Foreground(colorPink),
		meta:     r.NewStyle().Foreground(colorSubtext0),
		header:   r.NewStyle().Bold(true).Foreground(colorLavender),
		cell:     r.NewStyle(),
		exported: r.NewStyle().Foreground(colorGreen),
		selected: r.NewStyle().Bold(true).Foreground(colorPeach),
		detail:   r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1).Padding(0, 1),
		label:    r.NewStyle().Foreground(colorLavender).Width(10),
		status:   r.NewStyle().Foreground(colorSubtext0).Italic(true),
	}
}

// Column widths of the item table.
var columns = []struct {
	title string
	width int
}{
	{"TYPE", 12},
	{"ID", 10},
	{"NAME", 24},
	{"SIZE", 11},
	{"FILE", 0},
}

func (st styles) row(cells ...string) string {
	var b strings.Builder
	for i, c := range cells {
		s := st.cell
		if w := columns[i].width; w > 0 {
			s = s.Width(w).MaxWidth(w)
		}
		b.WriteString(s.Render(c))
	}
	return strings.TrimRight(b.String(), " ")
}

func sizeText(e entry) string {
	if e.Width == 0 && e.Height == 0 {
		return "-"
	}
	return fmt.Sprintf("%dx%d", e.Width, e.Height)
}

func nameText(e entry) string {
	if e.Exported {
		return e.Name + "*"
	}
	return e.Name
}

// renderPackage formats one package header and its filtered item table.
func renderPackage(st styles, info packageInfo, f typeFilter) string {
	var b strings.Builder
	b.WriteString(st.title.Render(fmt.Sprintf("%s (%s)", info.Name, info.ID)))
	b.WriteString(st.meta.Render(fmt.Sprintf("  v%d, %d items", info.Version, len(info.Entries))))
	b.WriteByte('\n')
	if len(info.Deps) > 0 {
		b.WriteString(st.meta.Render("depends on: " + strings.Join(info.Deps, ", ")))
		b.WriteByte('\n')
	}
	if len(info.Branches) > 0 {
		b.WriteString(st.meta.Render("branches: " + strings.Join(info.Branches, ", ")))
		b.WriteByte('\n')
	}

	titles := make([]string, len(columns))
	for i, c := range columns {
		titles[i] = st.header.Render(c.title)
	}
	b.WriteString(st.row(titles...))
	b.WriteByte('\n')
	for _, e := range f.apply(info.Entries) {
		name := nameText(e)
		if e.Exported {
			name = st.exported.Render(name)
		}
		b.WriteString(st.row(e.Type.String(), e.ID, name, sizeText(e), e.File))
		b.WriteByte('\n')
	}
	return b.String()
}

// renderCatalog writes every package, separated by blank lines.
func renderCatalog(w io.Writer, st styles, infos []packageInfo, f typeFilter) error {
	for i, info := range infos {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, renderPackage(st, info, f)); err != nil {
			return err
		}
	}
	return nil
}

// renderDetail formats every known field of e.
func renderDetail(st styles, e entry) string {
	lines := []string{
		st.label.Render("type") + e.Type.String(),
		st.label.Render("name") + e.Name,
		st.label.Render("id") + e.ID,
		st.label.Render("url") + e.URL,
		st.label.Render("package") + e.Pkg,
		st.label.Render("size") + sizeText(e),
	}
	if e.File != "" {
		lines = append(lines, st.label.Render("file")+e.File)
	}
	if e.Exported {
		lines = append(lines, st.label.Render("exported")+"yes")
	}
	if e.Scale9 != nil {
		g := e.Scale9
		lines = append(lines, st.label.Render("scale9")+fmt.Sprintf("%g,%g %gx%g", g.X, g.Y, g.Width, g.Height))
	}
	if e.Tiled {
		lines = append(lines, st.label.Render("tiled")+"yes")
	}
	if len(e.Branches) > 0 {
		lines = append(lines, st.label.Render("branches")+strings.Join(e.Branches, ", "))
	}
	return st.detail.Render(strings.Join(lines, "\n"))
}
