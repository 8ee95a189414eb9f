// hif_cat dumps every statement of a hif session directory to stdout in a
// human-readable form. It exits non-zero on any session-level error.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hdlio/hif"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "hif_cat <directory>",
		Short:        "Print the statements of a hif session directory.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return catDirectory(args[0])
		},
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func catDirectory(dir string) error {
	rd, err := hif.Open(dir)
	if err != nil {
		return fmt.Errorf("could not open %s as HIF directory: %w", dir, err)
	}
	defer rd.Close()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	fmt.Fprintf(out, "HIF version:%s tool:%s version:%s\n",
		hif.FormatVersion, rd.Tool(), rd.ToolVersion())

	if err := rd.Each(func(stmt hif.Statement) {
		stmt.Dump(out)
	}); err != nil {
		return fmt.Errorf("decode %s: %w", dir, err)
	}

	return nil
}
