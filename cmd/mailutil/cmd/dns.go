package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mxCmd = &cobra.Command{
	Use:   "mx domain",
	Short: "Lists the mail exchangers of a domain in preference order",
	Args:  cobra.ExactArgs(1),
	RunE:  RunMX,
}

var fqdnCmd = &cobra.Command{
	Use:   "fqdn",
	Short: "Prints the fully qualified name of this host",
	Args:  cobra.NoArgs,
	RunE:  RunFQDN,
}

func init() {
	rootCmd.AddCommand(mxCmd)
	rootCmd.AddCommand(fqdnCmd)
}

func RunMX(cmd *cobra.Command, args []string) error {
	mxs, err := newResolver().LookupMX(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, mx := range mxs {
		fmt.Fprintf(out, "%d %s\n", mx.Pref, mx.Host)
	}

	return nil
}

func RunFQDN(cmd *cobra.Command, _ []string) error {
	name, err := newResolver().FQDN(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), name)
	return nil
}
