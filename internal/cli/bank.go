package cli

import (
	"fmt"

	"golden-brain/internal/bank"
	"golden-brain/internal/config"
	"github.com/spf13/cobra"
)

// NewBankCmd groups question bank tooling.
func NewBankCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Inspect question banks",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate [file]",
		Short: "Check a bank file (defaults to bank.file, then the built-in bank)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := config.Load(*configPath)
				if err != nil {
					return err
				}
				path = cfg.Bank.File
			}

			sets, err := bank.Load(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, set := range bank.Ordered(sets) {
				fmt.Fprintf(out, "%s: %d questions, max score %d\n", set.Category, len(set.Questions), set.MaxScore())
			}
			return nil
		},
	})
	return cmd
}
