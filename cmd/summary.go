package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <file>",
	Short: "Summarize convergence of a calibration log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		if err := s.Load(args[0], loadOptions()); err != nil {
			return err
		}
		ds := s.Dataset()
		reg := s.Registry()
		stats := s.Stats()

		nErr, nVal := 0, 0
		for _, v := range reg.Vars() {
			if v.HasError() {
				nErr++
			}
			if v.HasValue() {
				nVal++
			}
		}
		fmt.Printf("File: %s\n", ds.Name)
		fmt.Printf("Records: %d  Variables: %d (%d error, %d value)\n", len(ds.Records), reg.Len(), nErr, nVal)

		if len(stats.Ranking) > 0 {
			fmt.Println("\nFinal error ranking:")
			for i, re := range stats.Ranking {
				fmt.Printf("%3d. %-24s %.6g\n", i+1, re.Column, re.Magnitude)
			}
		}
		if n := len(stats.Trend); n > 0 {
			first, last := stats.Trend[0], stats.Trend[n-1]
			fmt.Printf("\nTotal error: %.6g (iteration %d) → %.6g (iteration %d)\n",
				first.Total, first.Iteration, last.Total, last.Iteration)
			fmt.Printf("Change: %s\n", stats.FormatPercentChange())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
