package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sofmeright/toolstage/src/matrix"
	"github.com/sofmeright/toolstage/src/output"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix <file>",
	Short: "Validate a build-matrix file",
	Long: `Matrix loads a TOML build-matrix file, checks every configuration's
option string, and prints the configurations with their options in
application order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := matrix.Load(args[0])
		if err != nil {
			return err
		}

		sec := output.NewSection(os.Stdout, "Build matrix", output.UseColor())
		for i, c := range m.Configurations {
			if i > 0 {
				sec.Separator()
			}
			plan, err := c.Plan()
			if err != nil {
				return err
			}
			sec.Field("name", c.Name)
			sec.Field("node", c.Node)
			sec.Field("options", fmt.Sprintf("%v", plan.Tokens()))
		}
		sec.Close()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(matrixCmd)
}
