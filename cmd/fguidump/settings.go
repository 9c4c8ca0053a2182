package main

import (
	"github.com/spf13/pflag"

	"github.com/phanxgames/fgui/internal/cliconfig"
)

type settings struct {
	Dir         string
	Packages    []string
	Types       typeFilter
	Branch      string
	Interactive bool
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("fguidump", pflag.ContinueOnError)
	fs.String("config", "", "config file (default fguidump.yaml)")
	fs.String("dir", ".", "directory holding the package files")
	fs.StringSlice("type", nil, "only list these item types (image, component, ...)")
	fs.String("branch", "", "package branch")
	fs.BoolP("interactive", "i", false, "browse the catalog interactively")
	return fs
}

func parseSettings(args []string) (settings, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return settings{}, err
	}
	v, err := cliconfig.Load("fguidump", fs)
	if err != nil {
		return settings{}, err
	}
	types, err := parseTypes(v.GetStringSlice("type"))
	if err != nil {
		return settings{}, err
	}
	return settings{
		Dir:         v.GetString("dir"),
		Packages:    fs.Args(),
		Types:       types,
		Branch:      v.GetString("branch"),
		Interactive: v.GetBool("interactive"),
	}, nil
}
