// Package completion implements the completion command.
package completion

import (
	"github.com/spf13/cobra"

	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

// NewCommand creates the completion command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate a shell completion script",
		Long: `To load completions:

Bash:

  $ source <(bit completion bash)

Zsh:

  $ bit completion zsh > "${fpath[1]}/_bit"

Fish:

  $ bit completion fish | source

PowerShell:

  PS> bit completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return errors.NewValidationError("shell", args[0], "unsupported shell")
		},
	}
}
