package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/yettinmoor/bard/internal/config"
)

var checkConfigPath string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a config file without a daemon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ResolveBarFile(checkConfigPath)
		if err != nil {
			return err
		}

		cfg, err := config.LoadBarConfig(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", styleSuccess.Render("ok"), styleValue.Render(path))
		fmt.Fprintf(out, "  %s %q  %s %q  %s %q  %s %s\n",
			styleLabel.Render("delim"), cfg.Delim,
			styleLabel.Render("prefix"), cfg.Prefix,
			styleLabel.Render("suffix"), cfg.Suffix,
			styleLabel.Render("publish"), cfg.Publish,
		)

		width := 0
		for _, b := range cfg.Blocks {
			if w := ansi.StringWidth(b.Name); w > width {
				width = w
			}
		}
		for _, b := range cfg.Blocks {
			name := b.Name + spaces(width-ansi.StringWidth(b.Name))
			prefix := ""
			if b.Prefix != "" {
				prefix = styleHint.Render(fmt.Sprintf("[%s] ", b.Prefix))
			}
			fmt.Fprintf(out, "  %s  %s%s\n", styleCommand.Render(name), prefix, b.Cmd)
		}
		if len(cfg.Blocks) == 0 {
			fmt.Fprintln(os.Stderr, styleWarning.Render("warning: no blocks defined, the bar will be empty"))
		}
		return nil
	},
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%*s", n, "")
}

func init() {
	checkCmd.Flags().StringVarP(&checkConfigPath, "config", "c", "", "Config file (default ~/.config/bard/bard.yaml)")
}
