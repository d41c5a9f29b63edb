package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jsonstore/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage store settings",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a store setting.

Available keys:
  dir        - directory holding the JSON files
  extension  - extension appended to logical names (empty for none)
  indent     - pretty-print JSON (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	s, err := services()
	if err != nil {
		return err
	}

	settings, err := s.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("[store]")
	cmd.Printf("  dir:       %s\n", settings.DataDir)
	cmd.Printf("  extension: %s\n", displayExtension(settings.Extension))
	cmd.Printf("  indent:    %t\n", settings.Indent)
	cmd.Printf("  file_mode: %#o\n", settings.FileMode.Perm())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	s, err := services()
	if err != nil {
		return err
	}

	key, value := strings.ToLower(args[0]), args[1]
	switch key {
	case "dir":
		err = s.Settings.SetDataDir(value)
	case "extension":
		err = s.Settings.SetExtension(value)
	case "indent":
		var indent bool
		indent, err = strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: indent must be true or false", domain.ErrInvalidInput)
		}
		err = s.Settings.SetIndent(indent)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}

	cmd.Printf("%s updated\n", key)
	return nil
}

func displayExtension(ext string) string {
	if ext == "" {
		return "(none)"
	}
	return ext
}
