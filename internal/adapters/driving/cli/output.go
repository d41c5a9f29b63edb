package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/jsonstore/internal/core/domain"
)

// printJSON writes v as one JSON document. Output is indented only when
// indent is set and stdout is a terminal.
func printJSON(cmd *cobra.Command, v any, indent bool) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	if indent && isTerminal(cmd.OutOrStdout()) {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// compactJSON renders v on a single line.
func compactJSON(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// parseJSON decodes a JSON value given on the command line.
func parseJSON(s string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return v, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// indentEnabled reports the configured indent setting, defaulting to true.
func indentEnabled(s *Services) bool {
	if s.Settings == nil {
		return true
	}
	settings, err := s.Settings.Get()
	if err != nil {
		return true
	}
	return settings.Indent
}
