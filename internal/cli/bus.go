package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/yettinmoor/bard/internal/client"
)

// connectDaemon opens a bus connection within the request timeout.
func connectDaemon() (*client.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return client.Dial(ctx)
}

// callCtx bounds a single request to the daemon.
func callCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// printReport writes a daemon report to stderr, one line per block.
func printReport(report string) {
	for _, line := range strings.Split(strings.TrimRight(report, "\n"), "\n") {
		if line == "" {
			continue
		}
		fmt.Fprintln(os.Stderr, formatReportLine(line))
	}
}

// formatReportLine dims the block tag and highlights failures.
func formatReportLine(line string) string {
	tag, rest, ok := strings.Cut(line, ": ")
	if !ok || !strings.HasPrefix(tag, "[") {
		return styleError.Render(line)
	}
	switch {
	case rest == "block not found":
		rest = styleWarning.Render(rest)
	case strings.HasPrefix(rest, "exit status 0"):
		rest = styleSuccess.Render(rest)
	case strings.HasPrefix(rest, "exit status"), strings.HasPrefix(rest, "signal"):
		rest = styleError.Render(rest)
	default:
		rest = styleValue.Render(rest)
	}
	return styleLabel.Render(tag+":") + " " + rest
}

// drawAndPrint asks for the bar and echoes it to stderr.
func drawAndPrint(c *client.Client) error {
	ctx, cancel := callCtx()
	defer cancel()
	bar, err := c.DrawBar(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, styleBrand.Render("bard:")+" `"+bar+"`")
	return nil
}
