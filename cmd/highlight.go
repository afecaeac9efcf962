package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/overtype/internal/compose"
	"github.com/zjrosen/overtype/internal/config"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight [text...]",
	Short: "Highlight text on stdout using the configured matchers",
	Long:  `Run the configured matchers over the given text (or stdin when no arguments are given) and print the decorated result. Useful for testing a matcher set without the playground.`,
	RunE:  runHighlight,
}

func init() {
	rootCmd.AddCommand(highlightCmd)
}

func runHighlight(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = strings.TrimRight(string(data), "\n")
	}

	out, err := highlightText(cfg, text)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// highlightText composes the matcher decorations over one line of text.
func highlightText(cfg config.Config, text string) (string, error) {
	matchers, err := config.CompileMatchers(cfg.Matchers)
	if err != nil {
		return "", fmt.Errorf("compiling matchers: %w", err)
	}

	var b strings.Builder
	nodes := compose.Compose(text, matchers)
	for _, node := range nodes {
		b.WriteString(node.Content)
	}
	return b.String(), nil
}
