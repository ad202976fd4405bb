package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mailutil/address"
)

var (
	parseAddressesOnly bool
	parseValidate      bool
)

var parseCmd = &cobra.Command{
	Use:   "parse list",
	Short: "Splits an address list into one entry per line",
	Args:  cobra.ExactArgs(1),
	RunE:  RunParse,
}

var formatCmd = &cobra.Command{
	Use:   "format [name=]address...",
	Short: "Joins addresses into a single address list",
	Long: `Joins addresses into a single address list.

Each argument is an address, optionally preceded by a display name and an
equals sign. An empty name, as in "=bob@example.com", is written in angle
brackets.`,
	Args: cobra.MinimumNArgs(1),
	RunE: RunFormat,
}

func init() {
	parseCmd.Flags().BoolVarP(&parseAddressesOnly, "addresses", "a", false, "print only the addresses")
	parseCmd.Flags().BoolVar(&parseValidate, "validate", false, "fail unless every address is a valid RFC 5322 addr-spec")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(formatCmd)
}

func RunParse(cmd *cobra.Command, args []string) error {
	l, err := address.ParseList(args[0])
	if err != nil {
		return err
	}

	if parseValidate {
		if err := l.Validate(); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	for _, e := range l {
		if parseAddressesOnly {
			fmt.Fprintln(out, e.Address)
			continue
		}
		fmt.Fprintln(out, e.String())
	}

	return nil
}

func RunFormat(cmd *cobra.Command, args []string) error {
	l := make(address.List, 0, len(args))
	for _, arg := range args {
		name, addr, named := strings.Cut(arg, "=")
		if !named {
			l = append(l, address.New(arg))
			continue
		}
		l = append(l, address.NewNamed(name, addr))
	}

	fmt.Fprintln(cmd.OutOrStdout(), address.FormatList(l))
	return nil
}
