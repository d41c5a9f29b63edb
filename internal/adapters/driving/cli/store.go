package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jsonstore/internal/core/domain"
)

var getDefault string

var getCmd = &cobra.Command{
	Use:   "get [name]",
	Short: "Load a value and print it",
	Long: `Load the JSON file backing a logical name and print its value.

When the file is missing, empty or holds null, the --default value is
printed instead (null if no default is given).`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

var putCmd = &cobra.Command{
	Use:   "put [name] [json]",
	Short: "Write a JSON value",
	Long: `Write a JSON value to the file backing a logical name.

The value is read from standard input when no json argument is given.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPut,
}

var listValues bool

var listCmd = &cobra.Command{
	Use:   "list [names...]",
	Short: "Load several values and list them",
	Long: `Load the given names, or every file in the data directory when no
names are given, and print the loaded names.`,
	RunE: runList,
}

var watchCmd = &cobra.Command{
	Use:   "watch [names...]",
	Short: "Print values again whenever their files change",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

func init() {
	getCmd.Flags().StringVarP(&getDefault, "default", "d", "", "JSON value used when the file is missing or empty")
	listCmd.Flags().BoolVar(&listValues, "values", false, "print each value next to its name")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(putCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	s, err := services()
	if err != nil {
		return err
	}

	cfg := domain.FileConfig{File: args[0]}
	if getDefault != "" {
		cfg.Default, err = parseJSON(getDefault)
		if err != nil {
			return fmt.Errorf("invalid --default: %w", err)
		}
	}

	if _, err := s.Store.Init(cmd.Context(), cfg); err != nil {
		return fmt.Errorf("failed to load %s: %w", cfg.File, err)
	}
	value, err := s.Store.Get(cfg)
	if err != nil {
		return err
	}

	return printJSON(cmd, value, indentEnabled(s))
}

func runPut(cmd *cobra.Command, args []string) error {
	s, err := services()
	if err != nil {
		return err
	}

	var input string
	if len(args) == 2 {
		input = args[1]
	} else {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		input = string(raw)
	}
	if strings.TrimSpace(input) == "" {
		return errors.New("no JSON value given")
	}

	data, err := parseJSON(input)
	if err != nil {
		return err
	}

	written, err := s.Store.Put(cmd.Context(), domain.FileConfig{File: args[0]}, data)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", args[0], err)
	}

	return printJSON(cmd, written, indentEnabled(s))
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := services()
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names, err = s.Store.Names(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list files: %w", err)
		}
	}
	if len(names) == 0 {
		cmd.Println("No files found")
		return nil
	}

	cfgs := make([]domain.FileConfig, len(names))
	for i, name := range names {
		cfgs[i] = domain.FileConfig{File: name}
	}

	snapshot, err := s.Store.InitAll(cmd.Context(), cfgs...)
	if err != nil {
		return fmt.Errorf("failed to load files: %w", err)
	}

	for _, key := range s.Store.Keys() {
		if !listValues {
			cmd.Println(key)
			continue
		}
		line, err := compactJSON(snapshot[key])
		if err != nil {
			return err
		}
		cmd.Printf("%s\t%s\n", key, line)
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := services()
	if err != nil {
		return err
	}
	if s.Refresh == nil {
		return errors.New("watching is not available")
	}

	ctx := cmd.Context()
	for _, name := range args {
		cfg := domain.FileConfig{File: name}
		if _, err := s.Store.Init(ctx, cfg); err != nil {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
		value, err := s.Store.Get(cfg)
		if err != nil {
			return err
		}
		if err := printEntry(cmd, domain.Entry{File: name, Data: value}); err != nil {
			return err
		}
		s.Refresh.Track(cfg)
	}

	return s.Refresh.Run(ctx, func(e domain.Entry) {
		if err := printEntry(cmd, e); err != nil {
			cmd.PrintErrf("failed to print %s: %v\n", e.File, err)
		}
	})
}

func printEntry(cmd *cobra.Command, e domain.Entry) error {
	line, err := compactJSON(e.Data)
	if err != nil {
		return err
	}
	cmd.Printf("%s\t%s\n", e.File, line)
	return nil
}
