package cmd

import (
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/sofmeright/toolstage/src/config"
	"github.com/sofmeright/toolstage/src/execute"
	"github.com/sofmeright/toolstage/src/options"
	"github.com/sofmeright/toolstage/src/output"
	"github.com/sofmeright/toolstage/src/shell"
	"github.com/sofmeright/toolstage/src/toolchain"
	"github.com/sofmeright/toolstage/src/workspace"
)

var (
	resolveNode      string
	resolveOS        string
	resolveWorkspace string
	resolveDryRun    bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [options...]",
	Short: "Resolve build options into a toolchain",
	Long: `Resolve applies build-option tokens (e.g. "gcc-7 cmake-3.10 tsan") against
this node's configuration and prints the compiler, CMake and environment
setup the build would run under.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, executor, err := resolveToolchain(args)
		if err != nil {
			return err
		}
		output.ResolveReport(executor.Console(), r, output.UseColor())
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveNode, "node", "", "build node name (default: hostname)")
	resolveCmd.Flags().StringVar(&resolveOS, "os", runtime.GOOS, "target operating system (linux, windows, macos)")
	resolveCmd.Flags().StringVar(&resolveWorkspace, "workspace", ".", "workspace root for log directories")
	resolveCmd.Flags().BoolVar(&resolveDryRun, "dry-run", false, "record side effects instead of performing them")
	rootCmd.AddCommand(resolveCmd)
}

// resolveToolchain runs the full option chain and returns the resolved
// read model together with the executor it ran against.
func resolveToolchain(tokens []string) (*toolchain.Resolver, execute.Executor, error) {
	plan, err := options.Parse(tokens)
	if err != nil {
		return nil, nil, err
	}

	system, err := toolchain.ParseSystem(resolveOS)
	if err != nil {
		return nil, nil, err
	}

	node := resolveNode
	if node == "" {
		node, err = os.Hostname()
		if err != nil {
			return nil, nil, err
		}
	}

	var executor execute.Executor
	if resolveDryRun {
		executor = execute.NewDryRunExecutor()
	} else {
		executor = execute.NewRealExecutor()
	}
	ws := workspace.New(resolveWorkspace, executor)

	r, err := toolchain.New(toolchain.Options{
		System:       system,
		Node:         node,
		Runner:       shell.NewLocalRunner(),
		Nodes:        config.NewNodeDirectory(cfg),
		Logs:         ws,
		CMakeBaseDir: cfg.Defaults.CMakeBaseDir,
	})
	if err != nil {
		return nil, nil, err
	}

	if err := plan.Apply(r); err != nil {
		return nil, nil, err
	}
	return r, executor, nil
}
