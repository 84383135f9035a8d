package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-times/internal/config"
	"github.com/smokyabdulrahman/prayer-times/internal/display"
	"github.com/smokyabdulrahman/prayer-times/internal/prayer"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the current configuration.",
		RunE:  runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nExamples:\n"+
			"  prayer-times config set latitude 21.4225\n"+
			"  prayer-times config set longitude 39.8262\n"+
			"  prayer-times config set timezone Asia/Riyadh\n"+
			"  prayer-times config set method makkah\n"+
			"  prayer-times config set adjustments 0,0,2,0,0,0\n"+
			"  prayer-times config set time_format 12h\n"+
			"  prayer-times config set prayers Fajr,Dhuhr,Asr,Maghrib,Isha",
			strings.Join(config.ValidKeys, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print a config value",
		Args:  cobra.ExactArgs(1),
		RunE:  runConfigGet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		RunE:  runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		RunE:  runConfigPath,
	})

	return cmd
}

// runConfigShow displays the configuration stored on disk.
func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Configuration (%s)\n\n", path)

	for _, key := range config.ValidKeys {
		val, _ := cfg.Get(key)
		shown := val
		switch {
		case val == "":
			shown = display.Gray("(not set)")
		case key == "method":
			shown = formatMethodValue(val)
		}
		fmt.Fprintf(out, "  %-20s %s\n", key, shown)
	}
	return nil
}

// runConfigSet sets a config key to the given value.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	stored, _ := cfg.Get(key)
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, stored)
	return nil
}

// runConfigGet prints one stored value. Unset keys print an empty line.
func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	val, err := cfg.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}

// runConfigReset deletes the config file.
func runConfigReset(cmd *cobra.Command, args []string) error {
	if err := config.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults.")
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// formatMethodValue adds the authority name to the method key.
func formatMethodValue(val string) string {
	m, err := prayer.ParseMethod(val)
	if err != nil {
		return val
	}
	return fmt.Sprintf("%s (%s)", val, m.Name())
}

// methodJSON describes one calculation method.
type methodJSON struct {
	Key          string  `json:"key"`
	Name         string  `json:"name"`
	FajrAngle    float64 `json:"fajr_angle"`
	IshaAngle    float64 `json:"isha_angle,omitempty"`
	IshaInterval int     `json:"isha_interval,omitempty"`
	Madhab       string  `json:"madhab"`
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List all calculation methods",
		Long:  "Print the table of supported calculation methods with their twilight angles.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if FlagJSON {
				list := make([]methodJSON, 0, len(prayer.Methods))
				for _, m := range prayer.Methods {
					p := m.Parameters()
					list = append(list, methodJSON{
						Key:          m.String(),
						Name:         m.Name(),
						FajrAngle:    p.FajrAngle,
						IshaAngle:    p.IshaAngle,
						IshaInterval: p.IshaInterval,
						Madhab:       p.Madhab.String(),
					})
				}
				return writeJSON(out, list)
			}
			printMethods(out)
			return nil
		},
	}
}

// printMethods renders the method table.
func printMethods(w io.Writer) {
	fmt.Fprintln(w, "Supported calculation methods:")
	fmt.Fprintln(w)

	tbl := display.NewTable([]string{"Key", "Name", "Fajr", "Isha"})
	for _, m := range prayer.Methods {
		p := m.Parameters()
		tbl.AddRow([]string{m.String(), m.Name(), formatAngle(p.FajrAngle), formatIsha(p)})
	}
	fmt.Fprint(w, tbl.Render())

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use --method <key> or 'config set method <key>' to select a method.")
	fmt.Fprintln(w, "The default is mwl. 'other' uses fajr_angle and isha_angle from the config.")
}

func formatAngle(a float64) string {
	if a == 0 {
		return "-"
	}
	return strconv.FormatFloat(a, 'f', -1, 64) + "°"
}

func formatIsha(p prayer.Parameters) string {
	if p.IshaInterval > 0 {
		return fmt.Sprintf("%d min", p.IshaInterval)
	}
	return formatAngle(p.IshaAngle)
}
