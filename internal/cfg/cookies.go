package cfg

import (
	"errors"

	"vidgrab/internal/domain/paths"
	"vidgrab/internal/logging"
	"vidgrab/internal/models"
	"vidgrab/internal/scraper"

	"github.com/spf13/cobra"
)

// initCookieCmds is the entrypoint for initializing cookie commands.
func initCookieCmds() *cobra.Command {
	cookieCmd := &cobra.Command{
		Use:   "cookies",
		Short: "Cookie commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("please specify a subcommand. Use --help to see available subcommands")
		},
	}
	cookieCmd.AddCommand(importCookiesCmd())
	return cookieCmd
}

// importCookiesCmd copies browser cookies for a site into the program cookie file.
func importCookiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <url>",
		Short: "Import browser cookies for a site and use them for downloads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := scraper.ImportCookies(cmd.Context(), scraper.BrowserCookies, args[0], paths.CookieFilePath)
			if err != nil {
				return err
			}
			if n == 0 {
				logging.W("No browser cookies found, cookies_path left unchanged")
				return nil
			}

			if _, err := openStore().store.UpdateSettings(func(s *models.Settings) error {
				s.CookiesPath = paths.CookieFilePath
				return nil
			}); err != nil {
				return err
			}
			logging.S("Imported %d cookies into %q", n, paths.CookieFilePath)
			return nil
		},
	}
}
