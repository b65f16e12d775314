package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetConfirm bool

// resetCmd drops every indexed directory.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the whole gallery index",
	Long: `Deletes every directory from the index, cascading to media, metadata files
and faces. Persons and saved searches are kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetConfirm {
			fmt.Print("This deletes the whole index. Continue? [y/N]: ")
			answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.gallery.ResetIndex(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Index reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetConfirm, "yes", false, "Skip the confirmation prompt")
	RootCmd.AddCommand(resetCmd)
}
