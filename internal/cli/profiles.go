package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/evidentia/internal/profile"
)

// profilesCmd prints the calibration tables of one or all profiles
var profilesCmd = &cobra.Command{
	Use:   "profiles [name]",
	Short: "Show scoring profiles",
	Long: `Print the calibration tables of a scoring profile as YAML.

Without a name every profile is printed (strict, balanced, permissive).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		names := profile.Names()
		if len(args) == 1 {
			names = args
		}

		out := cmd.OutOrStdout()
		for i, name := range names {
			p, ok := profile.Lookup(name)
			if !ok {
				return fmt.Errorf("unknown profile %q (available: %s)", name, strings.Join(profile.Names(), ", "))
			}
			data, err := yaml.Marshal(p)
			if err != nil {
				return fmt.Errorf("marshal profile %s: %w", p.Name, err)
			}
			if i > 0 {
				fmt.Fprintln(out, "---")
			}
			fmt.Fprint(out, string(data))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}
