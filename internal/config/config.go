package config

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vidsqueeze/internal/dirs"
)

// Init wires Viper with config paths, env, defaults, and flag bindings.
// It is non-fatal: any errors are returned for optional handling by caller.
func Init(root *cobra.Command) error {
	// Ensure base directories exist
	_ = dirs.EnsureAll()

	// Setup config search path
	if cfgDir, err := dirs.ConfigDir(); err == nil {
		_ = dirs.Ensure(cfgDir)
		viper.AddConfigPath(cfgDir)
	}
	viper.SetConfigName("config") // supports config.{yaml|yml|json|toml}

	// Environment variables: VIDSQUEEZE_*
	viper.SetEnvPrefix("VIDSQUEEZE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Bind root persistent flags to Viper keys
	_ = viper.BindPFlag("output_dir", root.PersistentFlags().Lookup("output-dir"))
	_ = viper.BindPFlag("quality", root.PersistentFlags().Lookup("quality"))
	_ = viper.BindPFlag("codec", root.PersistentFlags().Lookup("codec"))
	_ = viper.BindPFlag("format", root.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("ffmpeg_path", root.PersistentFlags().Lookup("ffmpeg-path"))
	_ = viper.BindPFlag("ffprobe_path", root.PersistentFlags().Lookup("ffprobe-path"))

	// Read config file if present (ignore not found)
	_ = viper.ReadInConfig()

	return nil
}
