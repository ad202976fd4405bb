package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mailutil/header"
)

var dateCmd = &cobra.Command{
	Use:   "date [value]",
	Short: "Prints the current time, or the given date, as a Date field body",
	Args:  cobra.MaximumNArgs(1),
	RunE:  RunDate,
}

func init() {
	rootCmd.AddCommand(dateCmd)
}

func RunDate(cmd *cobra.Command, args []string) error {
	t := time.Now()
	if len(args) > 0 {
		var err error
		t, err = header.ParseTime(args[0])
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), header.FormatTime(t))
	return nil
}
