package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// listWidth is the width of the item column in the browser.
const listWidth = 40

// browser is the interactive catalog: an item list on the left and the
// selected item's details on the right. "/" starts a name filter.
type browser struct {
	st      styles
	all     []entry
	visible []entry

	cursor int
	offset int
	height int
	width  int

	query     string
	filtering bool
}

func newBrowser(st styles, infos []packageInfo, f typeFilter) browser {
	b := browser{st: st, height: 20, width: 100}
	for _, info := range infos {
		b.all = append(b.all, f.apply(info.Entries)...)
	}
	b.refilter()
	return b
}

func (b *browser) refilter() {
	b.visible = nil
	for _, e := range b.all {
		if e.matches(b.query) {
			b.visible = append(b.visible, e)
		}
	}
	b.cursor, b.offset = 0, 0
}

// selected returns the entry under the cursor.
func (b browser) selected() (entry, bool) {
	if b.cursor < 0 || b.cursor >= len(b.visible) {
		return entry{}, false
	}
	return b.visible[b.cursor], true
}

func (b browser) listRows() int {
	return max(1, b.height-2)
}

func (b *browser) move(delta int) {
	if len(b.visible) == 0 {
		return
	}
	b.cursor = max(0, min(len(b.visible)-1, b.cursor+delta))
	rows := b.listRows()
	if b.cursor < b.offset {
		b.offset = b.cursor
	}
	if b.cursor >= b.offset+rows {
		b.offset = b.cursor - rows + 1
	}
}

func (b browser) Init() tea.Cmd { return nil }

func (b browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		b.move(0)
	case tea.KeyMsg:
		if b.filtering {
			return b.updateFilter(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return b, tea.Quit
		case "up", "k":
			b.move(-1)
		case "down", "j":
			b.move(1)
		case "pgup":
			b.move(-b.listRows())
		case "pgdown":
			b.move(b.listRows())
		case "home", "g":
			b.move(-len(b.visible))
		case "end", "G":
			b.move(len(b.visible))
		case "/":
			b.filtering = true
		case "esc":
			if b.query != "" {
				b.query = ""
				b.refilter()
			}
		}
	}
	return b, nil
}

func (b browser) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return b, tea.Quit
	case tea.KeyEnter:
		b.filtering = false
	case tea.KeyEsc:
		b.filtering = false
		b.query = ""
		b.refilter()
	case tea.KeyBackspace:
		if r := []rune(b.query); len(r) > 0 {
			b.query = string(r[:len(r)-1])
			b.refilter()
		}
	case tea.KeyRunes, tea.KeySpace:
		b.query += string(msg.Runes)
		b.refilter()
	}
	return b, nil
}

func (b browser) View() string {
	var list strings.Builder
	rows := b.listRows()
	end := min(len(b.visible), b.offset+rows)
	for i := b.offset; i < end; i++ {
		e := b.visible[i]
		line := fmt.Sprintf("%-11s %s", e.Type, nameText(e))
		if r := []rune(line); len(r) > listWidth-2 {
			line = string(r[:listWidth-2])
		}
		if i == b.cursor {
			list.WriteString(b.st.selected.Render("> " + line))
		} else {
			list.WriteString("  " + line)
		}
		list.WriteByte('\n')
	}
	if len(b.visible) == 0 {
		list.WriteString(b.st.meta.Render("  no items"))
	}

	left := lipgloss.NewStyle().Width(listWidth).Render(list.String())
	right := ""
	if e, ok := b.selected(); ok {
		right = renderDetail(b.st, e)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := fmt.Sprintf("%d/%d items  / filter  q quit", len(b.visible), len(b.all))
	if b.filtering || b.query != "" {
		status = "filter: " + b.query
		if b.filtering {
			status += "_"
		}
	}
	return body + "\n" + b.st.status.Render(status)
}
