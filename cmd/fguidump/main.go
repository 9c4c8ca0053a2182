// Command fguidump lists the items of fgui packages, as a styled table or
// in an interactive browser.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phanxgames/fgui"
	"github.com/phanxgames/fgui/internal/pkgfiles"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "fguidump:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	s, err := parseSettings(args)
	if err != nil {
		return err
	}

	names := s.Packages
	if len(names) == 0 {
		if names, err = pkgfiles.Discover(s.Dir); err != nil {
			return err
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("no packages in %s", s.Dir)
	}
	files, err := pkgfiles.ReadAll(context.Background(), s.Dir, names)
	if err != nil {
		return err
	}
	store := fgui.NewPackageStore()
	store.SetBranch(s.Branch)
	pkgs, err := pkgfiles.AddAll(store, s.Dir, files)
	if err != nil {
		return err
	}
	infos := collect(pkgs)

	if s.Interactive {
		st := newStyles(lipgloss.DefaultRenderer())
		_, err := tea.NewProgram(newBrowser(st, infos, s.Types), tea.WithAltScreen()).Run()
		return err
	}
	st := newStyles(lipgloss.NewRenderer(os.Stdout))
	return renderCatalog(os.Stdout, st, infos, s.Types)
}
