package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmellea/moneylens/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new empty ledger database",
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	st, err := store.Create(flagDB)
	if err != nil {
		return err
	}
	defer st.Close()

	fmt.Printf("Created empty ledger at %s\n", st.Path())
	fmt.Println("Next: 'moneylens import <file.csv>' to load transactions.")
	return nil
}
