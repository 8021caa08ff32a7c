package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand 顯示版本資訊
func NewVersionCommand(root *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(root.out, "smarty-chef %s\n", cliVersion)
			fmt.Fprintf(root.out, "  Commit: %s\n", cliGitCommit)
			fmt.Fprintf(root.out, "  Built:  %s\n", cliBuildDate)
		},
	}
}
