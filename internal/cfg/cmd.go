// Package cfg builds the cobra command tree and binds flags through viper.
package cfg

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vidgrab/internal/domain/keys"
	"vidgrab/internal/domain/paths"
	"vidgrab/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:           "vidgrab",
	Short:         "vidgrab downloads videos and playlists with yt-dlp",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := paths.InitProgFilesDirs(viper.GetString(keys.DataDir)); err != nil {
			return err
		}
		if err := logging.SetupLogging(paths.LogFilePath); err != nil {
			logging.W("Log file was not created: %v", err)
		}
		logging.Level = viper.GetInt(keys.DebugLevel)
		logging.D(1, "Program files in %q", paths.HomeDir)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.New("please specify a subcommand. Use --help to see available subcommands")
	},
}

// Execute runs the command tree with ctx as the cancellation root.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// InitCommands initializes all commands and their flags.
func InitCommands() {
	viper.SetEnvPrefix(keys.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	pf := rootCmd.PersistentFlags()
	pf.Int(keys.DebugLevel, 0, "Debug level (0-5)")
	pf.String(keys.DataDir, "", "Program data directory (default ~/.vidgrab)")
	pf.String(keys.YTDLPPath, "yt-dlp", "Path to the yt-dlp binary")
	pf.BoolP(keys.AssumeYes, "y", false, "Answer yes to confirmation prompts")
	pf.Bool(keys.ThumbsFetch, false, "Prefetch playlist thumbnails into the cache")

	for _, k := range []string{keys.DebugLevel, keys.DataDir, keys.YTDLPPath, keys.AssumeYes, keys.ThumbsFetch} {
		if err := viper.BindPFlag(k, pf.Lookup(k)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %q: %v", k, err))
		}
	}

	rootCmd.AddCommand(
		downloadCmd(),
		infoCmd(),
		initQueueCmds(),
		initHistoryCmds(),
		initSettingsCmds(),
		initCookieCmds(),
		statusCmd(),
	)
}
