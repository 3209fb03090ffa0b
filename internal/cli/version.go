package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/gotest-ctrf/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print gotest-ctrf version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "gotest-ctrf %s\n", version.FullVersion())
		},
	}
}
