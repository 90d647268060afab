package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/procscope/internal/core"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Dispatch a single action without the menu",
	Long: `Run one diagnostic action against a process identified by pid and
print the tool output. Intended for scripting; the interactive menu is
the default when procscope is started without a subcommand.`,
	Args: cobra.NoArgs,
	RunE: runOnce,
}

var (
	runPID    int32
	runAction string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Int32Var(&runPID, "pid", 0, "Target process id")
	runCmd.Flags().StringVar(&runAction, "action", "", "Action name (jstack, jmap, pstack, get_be_vars)")
	_ = runCmd.MarkFlagRequired("pid")
	_ = runCmd.MarkFlagRequired("action")
}

func runOnce(_ *cobra.Command, _ []string) error {
	application, err := buildApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	spec, ok := application.registry.Lookup(runAction)
	if !ok {
		return core.ErrValidation(core.CodeActionUnknown,
			fmt.Sprintf("unknown action %q (available: %s)",
				runAction, strings.Join(application.registry.Names(), ", ")))
	}

	target, err := findProcess(ctx, application, runPID)
	if err != nil {
		return err
	}

	if !spec.AppliesTo(target.Category) {
		return core.ErrValidation(core.CodeActionMismatch,
			fmt.Sprintf("action %q targets %s processes; pid %d (%s) is %s",
				spec.Name, spec.Category, target.PID, target.Name, target.Category))
	}

	result, err := application.dispatcher.Run(ctx, target, spec)
	if err != nil {
		return err
	}

	fmt.Print(result.Stdout)
	if result.Stderr != "" {
		fmt.Fprint(os.Stderr, result.Stderr)
	}
	if result.ExitStatus != 0 {
		fmt.Fprintf(os.Stderr, "%s exited with status %d\n", spec.Name, result.ExitStatus)
	}
	return nil
}

// findProcess resolves a pid through a fresh scan so the action check
// sees the current classification.
func findProcess(ctx context.Context, application *app, pid int32) (core.ProcessInfo, error) {
	procs, err := application.source.List(ctx)
	if err != nil {
		return core.ProcessInfo{}, err
	}
	for _, p := range procs {
		if p.PID == pid {
			return p, nil
		}
	}
	return core.ProcessInfo{}, core.ErrProcessGone(pid)
}
