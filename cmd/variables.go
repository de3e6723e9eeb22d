package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var varsFilter string

var variablesCmd = &cobra.Command{
	Use:   "variables <file>",
	Short: "List the variables classified from a calibration log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		if err := s.Load(args[0], loadOptions()); err != nil {
			return err
		}
		s.FilterText = varsFilter

		visible := s.Filtered()
		if len(visible) == 0 {
			fmt.Println("No variables match the current filter")
			return nil
		}
		for _, v := range visible {
			sides := ""
			if v.HasError() {
				sides += " error"
			}
			if v.HasValue() {
				sides += " value"
			}
			fmt.Printf("- %s [%s]\n", v.Name, sides[1:])
		}
		fmt.Printf("Showing %d of %d variables\n", len(visible), s.Registry().Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(variablesCmd)
	variablesCmd.Flags().StringVarP(&varsFilter, "filter", "f", "", "comma-separated terms; a variable matches any term (case-insensitive contains)")
}
