package cfg

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"vidgrab/internal/logging"
	"vidgrab/internal/models"

	"github.com/spf13/cobra"
)

// initSettingsCmds is the entrypoint for initializing settings commands.
func initSettingsCmds() *cobra.Command {
	setCmd := &cobra.Command{
		Use:   "settings",
		Short: "Settings commands",
		Long:  "Show and change the persisted user settings.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("please specify a subcommand. Use --help to see available subcommands")
		},
	}

	setCmd.AddCommand(
		showSettingsCmd(),
		setSettingCmd(),
		resetSettingsCmd(),
	)
	return setCmd
}

func showSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := settingsMap(openStore().store.LoadSettings())
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				logging.P("%-20s %v", k, m[k])
			}
			return nil
		},
	}
}

func setSettingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting (keys as printed by 'settings show')",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := openStore().store.UpdateSettings(func(s *models.Settings) error {
				return setSetting(s, args[0], args[1])
			})
			if err != nil {
				return err
			}
			logging.S("Set %s = %s", args[0], args[1])
			return nil
		},
	}
}

func resetSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirm(cmd.Context(), "Reset all settings to defaults?")
			if err != nil || !ok {
				return err
			}
			if _, err := openStore().store.ResetSettings(); err != nil {
				return err
			}
			logging.S("Settings reset")
			return nil
		},
	}
}

// settingsMap returns the settings keyed by their document names.
func settingsMap(s models.Settings) (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	m := make(map[string]any)
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// setSetting sets the document key on s, parsing value by the key's current type.
func setSetting(s *models.Settings, key, value string) error {
	m, err := settingsMap(*s)
	if err != nil {
		return err
	}
	cur, ok := m[key]
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}

	switch cur.(type) {
	case bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("setting %q needs true or false, got %q", key, value)
		}
		m[key] = b
	default:
		m[key] = value
	}

	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, s)
}
