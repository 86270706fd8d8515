package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/k1LoW/exec"
	"github.com/k1LoW/marquee/config"
	"github.com/k1LoW/marquee/git"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check marquee environment and configuration",
	Long:  `Check marquee environment and configuration to ensure everything is set up correctly.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		green := color.New(color.FgGreen)
		red := color.New(color.FgRed)
		yellow := color.New(color.FgYellow)
		bold := color.New(color.Bold)

		allOK := true

		// 1. Check git binary
		cmd.Print("🔍 Checking git ... ")
		out, err := exec.CommandContext(ctx, "git", "version").Output()
		if err != nil {
			red.Println("✗ NOT FOUND")
			cmd.Printf("   git is required: %v\n", err)
			return nil
		}
		v := strings.TrimSpace(string(out))
		if !supportsInitialBranch(v) {
			red.Println("✗ TOO OLD")
			cmd.Printf("   %s, git 2.28 or later is required\n", v)
			allOK = false
		} else {
			green.Println("✓ OK")
			cmd.Printf("   %s\n", v)
		}

		// 2. Check commit identity
		cmd.Print("👤 Checking git identity ... ")
		var missing []string
		for _, key := range []string{"user.name", "user.email"} {
			if err := exec.CommandContext(ctx, "git", "config", key).Run(); err != nil {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			red.Println("✗ NOT SET")
			for _, key := range missing {
				cmd.Printf("   git config --global %s ...\n", key)
			}
			allOK = false
		} else {
			green.Println("✓ OK")
		}

		// 3. Check configuration file (optional)
		cmd.Print("🔧 Checking configuration file ... ")
		cfg, err := config.Load(profile)
		if err != nil {
			yellow.Println("⚠️ CONFIG ERROR")
			cmd.Printf("   Error loading config: %v\n", err)
			allOK = false
		} else {
			green.Println("✓ OK")
			if cfg.Host != "" {
				cmd.Printf("   Pushing to %s\n", cfg.Host)
			}
		}

		// 4. Check working directory
		cmd.Print("📁 Checking working directory ... ")
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		if git.IsRepositoryRoot(wd) {
			yellow.Println("⚠️ INSIDE A REPOSITORY")
			cmd.Println("   Run marquee from a directory that is not the root of a repo.")
			allOK = false
		} else {
			green.Println("✓ OK")
		}

		cmd.Println()
		if allOK {
			bold.Printf("🎉 ")
			green.Print("All checks passed! You are ready to use marquee")
			bold.Println(".")
			cmd.Println()
			cmd.Println("Try a preview first:")
			yellow.Println("  marquee --text hello --dry-run")
		} else {
			red.Println("⚠️  Setup is incomplete.")
			cmd.Println("\nPlease fix the issues above to use marquee properly.")
		}
		return nil
	},
}

// supportsInitialBranch reports whether the output of `git version`
// is 2.28 or later, the first release with init --initial-branch.
func supportsInitialBranch(version string) bool {
	var major, minor int
	if _, err := fmt.Sscanf(version, "git version %d.%d", &major, &minor); err != nil {
		return false
	}
	return major > 2 || (major == 2 && minor >= 28)
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
