// Command fguiview opens packages in a window and shows one component,
// optionally playing a UI script against it.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/fgui"
	"github.com/phanxgames/fgui/ebitenbackend"
	"github.com/phanxgames/fgui/internal/pkgfiles"
)

// settleFrames lets the last screenshot render before an --exit quit.
const settleFrames = 2

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "fguiview:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	s, err := parseSettings(args)
	if err != nil {
		return err
	}

	cfg, err := fgui.LoadConfigOptional(s.Dir)
	if err != nil {
		return err
	}
	cfg.Debug = cfg.Debug || s.Debug
	if s.Branch != "" {
		cfg.Branch = s.Branch
	}

	b := ebitenbackend.New(s.Width, s.Height)
	b.DebugBounds = s.Bounds
	for name, path := range s.Fonts {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("font %s: %w", name, err)
		}
		if err := b.RegisterFont(name, data); err != nil {
			return err
		}
	}

	rt := fgui.New(b, cfg)
	defer rt.Dispose()

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
	pkgs, err := pkgfiles.AddAll(rt.Packages, s.Dir, files)
	if err != nil {
		return err
	}

	view, err := createView(rt, s.Component, pkgs)
	if err != nil {
		return err
	}
	rt.Root().AddChild(view)

	game := ebitenbackend.NewGame(rt, b)
	game.ShowStats = s.Stats
	game.SetScreenshotDir(s.ScreenshotDir)
	game.OnScreenshot = func(path string) { log.Printf("fguiview: wrote %s", path) }

	if s.Script != "" {
		if err := attachScript(rt, game, s); err != nil {
			return err
		}
	}

	ebiten.SetWindowSize(s.Width, s.Height)
	ebiten.SetWindowTitle(s.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// createView builds the component named by ref, or the first exported
// component of the loaded packages when ref is empty.
func createView(rt *fgui.Runtime, ref string, pkgs []*fgui.Package) (*fgui.Object, error) {
	if ref == "" {
		pi := firstExportedComponent(pkgs)
		if pi == nil {
			return nil, errors.New("no exported component to show")
		}
		return rt.CreateObjectFromURL(pi.URL())
	}
	pkg, name, url := splitComponent(ref)
	if url != "" {
		return rt.CreateObjectFromURL(url)
	}
	if pkg == "" && len(pkgs) > 0 {
		pkg = pkgs[0].Name
	}
	o := rt.CreateObject(pkg, name)
	if o == nil {
		return nil, fmt.Errorf("component %s/%s: %w", pkg, name, fgui.ErrItemNotFound)
	}
	return o, nil
}

func firstExportedComponent(pkgs []*fgui.Package) *fgui.PackageItem {
	for _, p := range pkgs {
		for _, pi := range p.Items() {
			if pi.Type == fgui.ItemComponent && pi.Exported {
				return pi
			}
		}
	}
	return nil
}

func attachScript(rt *fgui.Runtime, game *ebitenbackend.Game, s settings) error {
	data, err := os.ReadFile(s.Script)
	if err != nil {
		return fmt.Errorf("script: %w", err)
	}
	runner, err := fgui.LoadScript(data)
	if err != nil {
		return err
	}
	runner.OnScreenshot = game.Screenshot
	rt.SetScript(runner)

	if s.ExitOnDone {
		settle := settleFrames
		game.OnUpdate = func(float32) error {
			if !runner.Done() {
				return nil
			}
			if settle--; settle <= 0 {
				return ebiten.Termination
			}
			return nil
		}
	}
	return nil
}
