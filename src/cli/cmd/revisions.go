package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sofmeright/toolstage/src/execute"
	"github.com/sofmeright/toolstage/src/workspace"
)

var revisionsWorkspace string

var revisionsCmd = &cobra.Command{
	Use:   "revisions <project>...",
	Short: "Report the checked-out revision of each project",
	Long: `Revisions inspects the named project checkouts under the workspace root
and prints the HEAD hash and commit title of each, the way a build log
records which sources went into the build.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := workspace.New(revisionsWorkspace, execute.NewRealExecutor())
		revs, err := ws.Revisions(cmd.Context(), args)
		if err != nil {
			return err
		}
		ws.PrintRevisions(revs)
		return nil
	},
}

func init() {
	revisionsCmd.Flags().StringVar(&revisionsWorkspace, "workspace", ".", "workspace root containing the project checkouts")
	rootCmd.AddCommand(revisionsCmd)
}
