package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/phanxgames/fgui/internal/cliconfig"
)

// settings is the resolved fguiview configuration.
type settings struct {
	Dir           string
	Packages      []string
	Component     string
	Branch        string
	Width         int
	Height        int
	Title         string
	Fonts         map[string]string
	Script        string
	ExitOnDone    bool
	ScreenshotDir string
	Stats         bool
	Bounds        bool
	Debug         bool
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("fguiview", pflag.ContinueOnError)
	fs.String("config", "", "config file (default fguiview.yaml)")
	fs.String("dir", ".", "directory holding the package files")
	fs.StringSlice("package", nil, "packages to load (default: every *_fui.bytes in dir)")
	fs.String("component", "", "component to show: pkg/name or ui:// URL (default: first exported component)")
	fs.String("branch", "", "package branch")
	fs.Int("window.width", 1136, "window width")
	fs.Int("window.height", 640, "window height")
	fs.String("window.title", "fguiview", "window title")
	fs.StringToString("font", nil, "font registrations name=path.ttf")
	fs.String("script", "", "UI script to play")
	fs.Bool("exit", false, "quit once the script is done")
	fs.String("screenshots", "screenshots", "screenshot directory")
	fs.Bool("stats", false, "show the frame rate overlay")
	fs.Bool("bounds", false, "outline every control")
	fs.Bool("debug", false, "runtime debug mode")
	return fs
}

func parseSettings(args []string) (settings, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return settings{}, err
	}
	v, err := cliconfig.Load("fguiview", fs)
	if err != nil {
		return settings{}, err
	}

	s := settings{
		Dir:           v.GetString("dir"),
		Packages:      v.GetStringSlice("package"),
		Component:     v.GetString("component"),
		Branch:        v.GetString("branch"),
		Width:         v.GetInt("window.width"),
		Height:        v.GetInt("window.height"),
		Title:         v.GetString("window.title"),
		Fonts:         v.GetStringMapString("font"),
		Script:        v.GetString("script"),
		ExitOnDone:    v.GetBool("exit"),
		ScreenshotDir: v.GetString("screenshots"),
		Stats:         v.GetBool("stats"),
		Bounds:        v.GetBool("bounds"),
		Debug:         v.GetBool("debug"),
	}
	// positional arguments name packages too
	s.Packages = append(s.Packages, fs.Args()...)

	if s.Width <= 0 || s.Height <= 0 {
		return s, fmt.Errorf("window size %dx%d must be positive", s.Width, s.Height)
	}
	if s.ExitOnDone && s.Script == "" {
		return s, fmt.Errorf("--exit needs --script")
	}
	return s, nil
}

// splitComponent parses a pkg/name component reference. A ui:// URL is
// returned whole in url.
func splitComponent(ref string) (pkg, name, url string) {
	if strings.HasPrefix(ref, "ui://") {
		return "", "", ref
	}
	pkg, name, ok := strings.Cut(ref, "/")
	if !ok {
		return "", ref, ""
	}
	return pkg, name, ""
}
