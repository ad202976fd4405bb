package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zostay/go-mailutil/msgid"
)

var (
	msgidBoundary bool
	msgidHost     string
)

var msgidCmd = &cobra.Command{
	Use:   "msgid",
	Short: "Generates a unique Message-ID or MIME boundary",
	Args:  cobra.NoArgs,
	RunE:  RunMsgID,
}

func init() {
	msgidCmd.Flags().BoolVarP(&msgidBoundary, "boundary", "b", false, "generate a multipart boundary instead")
	msgidCmd.Flags().StringVar(&msgidHost, "host", "", "domain for the message ID (default: the FQDN of this host)")

	rootCmd.AddCommand(msgidCmd)
}

func RunMsgID(cmd *cobra.Command, _ []string) error {
	g := msgid.New(msgidHost)

	var (
		v   string
		err error
	)
	if msgidBoundary {
		v, err = g.Boundary()
	} else {
		if g.Host == "" {
			g.Host = cfg.SMTP.Helo
		}
		if g.Host == "" {
			g.Host, err = newResolver().FQDN(cmd.Context())
			if err != nil {
				logger.Warn("unable to find host name, using default", zap.Error(err))
				g.Host = msgid.DefaultHost
			}
		}
		v, err = g.MessageID()
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}
