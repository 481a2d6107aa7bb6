package cmd

import (
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sofmeright/toolstage/src/config"
	"github.com/sofmeright/toolstage/src/output"
)

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "List configured build nodes",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := config.NewNodeDirectory(cfg)
		names := dir.NodeNames()
		sort.Strings(names)

		sec := output.NewSection(os.Stdout, "Build nodes", output.UseColor())
		if len(names) == 0 {
			sec.Row("no nodes configured, defaults apply everywhere")
		}
		for i, name := range names {
			if i > 0 {
				sec.Separator()
			}
			n, _ := dir.Node(name)
			sec.Field("node", name)
			sec.Field("parallelism", itoaNonZero(dir.DefaultParallelism(name)))
			sec.Field("subshell", n.EnvironmentSubshell)
			sec.Field("companion gcc", n.CompanionGCC)
			families := make([]string, 0, len(n.Compilers))
			for family := range n.Compilers {
				families = append(families, family)
			}
			sort.Strings(families)
			for _, family := range families {
				sec.Field(family, n.Compilers[family])
			}
		}
		sec.Close()
		return nil
	},
}

func itoaNonZero(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func init() {
	rootCmd.AddCommand(nodesCmd)
}
