package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zostay/go-mailutil/address"
	"github.com/zostay/go-mailutil/header"
	"github.com/zostay/go-mailutil/submit"
)

var (
	sendFrom    string
	sendTo      []string
	sendCc      []string
	sendBcc     []string
	sendSubject string
	sendMessage bool
)

const sendLong = `Sends the plain text message read from stdin.

Normally stdin holds only the body and the header is built from the flags.
With --message, stdin holds a complete message, header and body separated by a
blank line, and each flag given replaces the matching field of that header.`

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Sends the plain text message read from stdin",
	Long:  sendLong,
	Args:  cobra.NoArgs,
	RunE:  RunSend,
}

func init() {
	sendCmd.Flags().StringVarP(&sendFrom, "from", "f", "", "sender address list")
	sendCmd.Flags().StringArrayVarP(&sendTo, "to", "t", nil, "recipient address list (repeatable)")
	sendCmd.Flags().StringArrayVar(&sendCc, "cc", nil, "carbon copy address list (repeatable)")
	sendCmd.Flags().StringArrayVar(&sendBcc, "bcc", nil, "blind carbon copy address list (repeatable)")
	sendCmd.Flags().StringVarP(&sendSubject, "subject", "s", "", "subject line")
	sendCmd.Flags().BoolVarP(&sendMessage, "message", "m", false, "stdin holds a header and body rather than just a body")

	rootCmd.AddCommand(sendCmd)
}

// parseLists parses each value as an address list and joins the results.
func parseLists(name string, values []string) (address.List, error) {
	var all address.List
	for _, v := range values {
		l, err := address.ParseList(v)
		if err != nil {
			return nil, fmt.Errorf("parsing --%s: %w", name, err)
		}
		all = append(all, l...)
	}
	return all, nil
}

// crlf converts bare LF line endings to CRLF.
func crlf(b []byte) []byte {
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(b, []byte("\n"), []byte("\r\n"))
}

// readMessage reads the message from in. When whole is set, in holds a header
// block as well as the body.
func readMessage(in io.Reader, whole bool) (*header.Header, []byte, error) {
	raw, err := io.ReadAll(in)
	if err != nil {
		return nil, nil, fmt.Errorf("reading message: %w", err)
	}

	if !whole {
		return &header.Header{}, raw, nil
	}

	h, body, err := header.Split(raw)
	var bsErr *header.BadStartError
	if errors.As(err, &bsErr) {
		logger.Warn("skipping text before the first header field",
			zap.ByteString("skipped", bsErr.Skipped),
		)
	} else if err != nil {
		return nil, nil, err
	}

	h.SetBreak(header.CRLF)
	return h, body, nil
}

// applyFlags sets the header fields named on the command line.
func applyFlags(h *header.Header) error {
	for _, f := range []struct {
		flag   string
		values []string
		set    func(address.List)
	}{
		{"from", nonEmpty(sendFrom), h.SetFrom},
		{"to", sendTo, h.SetTo},
		{"cc", sendCc, h.SetCc},
		{"bcc", sendBcc, h.SetBcc},
	} {
		if len(f.values) == 0 {
			continue
		}

		l, err := parseLists(f.flag, f.values)
		if err != nil {
			return err
		}
		f.set(l)
	}

	if sendSubject != "" {
		h.SetSubject(sendSubject)
	}

	return nil
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

func RunSend(cmd *cobra.Command, _ []string) error {
	if !sendMessage && sendFrom == "" {
		return errors.New("--from is required unless --message is given")
	}

	h, body, err := readMessage(cmd.InOrStdin(), sendMessage)
	if err != nil {
		return err
	}

	if err := applyFlags(h); err != nil {
		return err
	}

	s := submit.New(cfg.Submit(), newResolver(), logger)
	return s.Send(cmd.Context(), &submit.Message{
		Header: h,
		Body:   crlf(body),
	})
}
