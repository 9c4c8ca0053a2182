// Package cliconfig layers command-line flags, FGUI_* environment variables
// and an optional config file for the fgui tools.
package cliconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, so the key
// "window.width" is read from FGUI_WINDOW_WIDTH.
const EnvPrefix = "FGUI"

// Load builds a viper instance for tool. Precedence from highest: flags set
// on the command line, environment, the config file, flag defaults.
//
// The config file is the one named by --config when flags define it, then
// FGUI_CONFIG, then <tool>.yaml in the working directory or in
// $HOME/.config/fgui. A missing file is not an error.
func Load(tool string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	cfgPath := v.GetString("config")
	if cfgPath == "" {
		cfgPath = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.SetConfigName(tool)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "fgui"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}
