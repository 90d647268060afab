package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the scanned process table",
	Long: `Scan the process table once and print every visible process with
its pid, category, and command line. Useful for picking a pid to feed
into 'procscope run'.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listJSON bool

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Emit the table as JSON")
}

func runList(_ *cobra.Command, _ []string) error {
	application, err := buildApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	procs, err := application.source.List(ctx)
	if err != nil {
		return err
	}

	if listJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(procs)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PID\tCATEGORY\tNAME\tCOMMAND")
	for _, p := range procs {
		cmdline := p.Cmdline
		if cmdline == "" {
			cmdline = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.PID, p.Category, p.Name, cmdline)
	}
	return w.Flush()
}
