package cmd

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hugo-lorenzo-mato/procscope/internal/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check diagnostic tool availability",
	Long:  "Verify that the configured diagnostic tools are installed and the configuration is valid.",
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

func runDoctor(_ *cobra.Command, _ []string) error {
	loader := config.NewLoaderWithViper(viper.GetViper())
	if cfgFile != "" {
		loader = loader.WithConfigFile(cfgFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	checks := []struct {
		name     string
		binary   string
		required bool
	}{
		{"jstack", cfg.Tools.Jstack, false},
		{"jmap", cfg.Tools.Jmap, false},
		{"pstack", cfg.Tools.Pstack, false},
		{"gdb", "gdb", false},
	}

	fmt.Println("Checking diagnostic tools...")
	fmt.Println()

	missing := 0
	for _, check := range checks {
		icon := "✓"
		suffix := ""
		if _, err := exec.LookPath(check.binary); err != nil {
			missing++
			icon = "○"
			suffix = " (not found)"
		}
		if check.binary != check.name {
			suffix += fmt.Sprintf(" [%s]", check.binary)
		}
		fmt.Printf("  %s %s%s\n", icon, check.name, suffix)
	}

	fmt.Println()
	fmt.Println("Validating configuration...")
	fmt.Println()

	if err := config.NewValidator().Validate(cfg); err != nil {
		if verrs, ok := err.(config.ValidationErrors); ok {
			for _, verr := range verrs {
				fmt.Printf("  ✗ %s\n", verr.Error())
			}
		} else {
			fmt.Printf("  ✗ %s\n", err.Error())
		}
		fmt.Println()
		return fmt.Errorf("configuration check failed")
	}
	fmt.Println("  ✓ Configuration valid")
	fmt.Println()

	if effective, err := cfg.YAML(); err == nil {
		fmt.Println("Effective configuration:")
		fmt.Println()
		fmt.Printf("%s\n", indent(string(effective), "  "))
	}

	// Missing tools are reported but not fatal: dispatching an action
	// for an absent tool yields a spawn error with the same hint.
	if missing > 0 {
		fmt.Printf("%d tool(s) missing; the matching actions will fail at dispatch\n", missing)
	} else {
		fmt.Println("All diagnostic tools available")
	}

	return nil
}
