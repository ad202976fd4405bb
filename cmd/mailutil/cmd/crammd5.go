package cmd

import (
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mailutil/sasl"
)

var cramMD5Cmd = &cobra.Command{
	Use:   "cram-md5 username secret challenge",
	Short: "Answers a base64 CRAM-MD5 challenge",
	Args:  cobra.ExactArgs(3),
	RunE:  RunCRAMMD5,
}

func init() {
	rootCmd.AddCommand(cramMD5Cmd)
}

func RunCRAMMD5(cmd *cobra.Command, args []string) error {
	challenge, err := base64.StdEncoding.DecodeString(args[2])
	if err != nil {
		return fmt.Errorf("decoding challenge: %w", err)
	}

	c := sasl.NewCRAMMD5Client(args[0], args[1])
	if _, _, err := c.Start(); err != nil {
		return err
	}

	resp, err := c.Next(challenge)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), base64.StdEncoding.EncodeToString(resp))
	return nil
}
