// Package submit hands a message to an SMTP server, either a configured relay
// or the mail exchangers of each recipient domain.
package submit

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/zostay/go-mailutil/address"
	"github.com/zostay/go-mailutil/header"
	"github.com/zostay/go-mailutil/msgid"
	"github.com/zostay/go-mailutil/sasl"
)

// Errors returned by Send.
var (
	// ErrNoSender is returned when the message has no From address.
	ErrNoSender = errors.New("message has no sender")

	// ErrNoRecipients is returned when the message has no To, Cc, or Bcc
	// addresses.
	ErrNoRecipients = errors.New("message has no recipients")
)

// DefaultPort is the SMTP port used for mail exchangers and for a relay given
// without a port.
const DefaultPort = 25

// DefaultDialTimeout bounds each connection attempt when Config.DialTimeout is
// zero.
const DefaultDialTimeout = 30 * time.Second

// Config describes how to reach the mail server.
type Config struct {
	// Relay is the host[:port] of a smart host. When empty, each recipient
	// domain is delivered to its own mail exchangers.
	Relay string

	// Port is used for mail exchangers and for a Relay without a port. Zero
	// means DefaultPort.
	Port int

	// DialTimeout bounds each connection attempt. Zero means
	// DefaultDialTimeout. The context passed to Send can cut it shorter.
	DialTimeout time.Duration

	// HeloName is sent in the EHLO greeting. When empty, the fully qualified
	// name of the local host is used.
	HeloName string

	// Username and Secret enable CRAM-MD5 authentication when Username is set.
	Username string
	Secret   string

	// StartTLS upgrades the connection before authenticating.
	StartTLS bool

	// TLSConfig is used for STARTTLS. When nil, the server name is taken from
	// the host being dialed.
	TLSConfig *tls.Config
}

// Resolver finds where to deliver mail. *dns.Resolver implements it.
type Resolver interface {
	MailHosts(ctx context.Context, domain string) ([]string, error)
	FQDN(ctx context.Context) (string, error)
}

// Message is a message ready to be sent. The Body must already use CRLF line
// endings.
type Message struct {
	Header *header.Header
	Body   []byte
}

// Submitter sends messages.
type Submitter struct {
	// Now returns the time used for a missing Date field. It defaults to
	// time.Now.
	Now func() time.Time

	cfg Config
	r   Resolver
	log *zap.Logger
}

// New returns a Submitter. The log may be nil.
func New(cfg Config, r Resolver, log *zap.Logger) *Submitter {
	if log == nil {
		log = zap.NewNop()
	}

	return &Submitter{
		cfg: cfg,
		r:   r,
		log: log.Named("submit"),
	}
}

func (s *Submitter) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Submitter) port() string {
	if s.cfg.Port != 0 {
		return strconv.Itoa(s.cfg.Port)
	}
	return strconv.Itoa(DefaultPort)
}

func (s *Submitter) dialTimeout() time.Duration {
	if s.cfg.DialTimeout != 0 {
		return s.cfg.DialTimeout
	}
	return DefaultDialTimeout
}

// envelope is one SMTP transaction.
type envelope struct {
	hosts []string // host:port, tried in order
	from  string
	to    []string
}

// Send delivers msg. The caller's header is not modified.
//
// A missing Date or Message-ID field is filled in. The envelope sender is the
// first From address and the recipients are every To, Cc, and Bcc address.
// The Bcc field is not transmitted.
func (s *Submitter) Send(ctx context.Context, msg *Message) error {
	if msg.Header == nil {
		return ErrNoSender
	}

	h := msg.Header.Clone()

	from, err := h.GetFrom()
	if errors.Is(err, header.ErrNoSuchField) {
		return ErrNoSender
	} else if err != nil {
		return fmt.Errorf("reading sender: %w", err)
	}

	rcpts, err := h.AllRecipients()
	if err != nil {
		return fmt.Errorf("reading recipients: %w", err)
	}
	if len(rcpts) == 0 {
		return ErrNoRecipients
	}

	helo, err := s.heloName(ctx)
	if err != nil {
		return err
	}

	if err := s.complete(h, helo); err != nil {
		return err
	}
	h.Delete(header.Bcc)

	var data bytes.Buffer
	if _, err := h.WriteTo(&data); err != nil {
		return err
	}
	data.Write(msg.Body)

	envs, err := s.route(ctx, from[0].Address, rcpts)
	if err != nil {
		return err
	}

	for _, env := range envs {
		if err := s.deliver(ctx, helo, env, data.Bytes()); err != nil {
			return err
		}
	}

	return nil
}

func (s *Submitter) heloName(ctx context.Context) (string, error) {
	if s.cfg.HeloName != "" {
		return s.cfg.HeloName, nil
	}

	name, err := s.r.FQDN(ctx)
	if err != nil {
		return "", fmt.Errorf("finding HELO name: %w", err)
	}
	return name, nil
}

// complete adds the Date and Message-ID fields when they are missing.
func (s *Submitter) complete(h *header.Header, host string) error {
	if _, err := h.Get(header.Date); errors.Is(err, header.ErrNoSuchField) {
		h.SetDate(s.now())
	}

	if _, err := h.Get(header.MessageID); errors.Is(err, header.ErrNoSuchField) {
		g := msgid.New(host)
		g.Now = s.now
		id, err := g.MessageID()
		if err != nil {
			return err
		}
		h.SetMessageID(id)
	}

	return nil
}

// route groups the recipients into SMTP transactions.
func (s *Submitter) route(ctx context.Context, from string, rcpts address.List) ([]envelope, error) {
	if s.cfg.Relay != "" {
		relay := s.cfg.Relay
		if _, _, err := net.SplitHostPort(relay); err != nil {
			relay = net.JoinHostPort(relay, s.port())
		}

		return []envelope{{
			hosts: []string{relay},
			from:  from,
			to:    rcpts.Addresses(),
		}}, nil
	}

	var (
		envs   []envelope
		byName = map[string]int{}
	)
	for _, a := range rcpts.Addresses() {
		at := strings.LastIndexByte(a, '@')
		if at < 0 {
			return nil, fmt.Errorf("%w: %q has no domain", address.ErrInvalidAddress, a)
		}
		domain := strings.ToLower(a[at+1:])

		if i, ok := byName[domain]; ok {
			envs[i].to = append(envs[i].to, a)
			continue
		}

		mxs, err := s.r.MailHosts(ctx, domain)
		if err != nil {
			return nil, err
		}

		hosts := make([]string, len(mxs))
		for i, mx := range mxs {
			hosts[i] = net.JoinHostPort(mx, s.port())
		}

		byName[domain] = len(envs)
		envs = append(envs, envelope{hosts: hosts, from: from, to: []string{a}})
	}

	return envs, nil
}

// deliver runs the transaction against the first host that accepts a
// connection.
func (s *Submitter) deliver(ctx context.Context, helo string, env envelope, data []byte) error {
	var lastErr error
	for _, host := range env.hosts {
		if err := ctx.Err(); err != nil {
			return err
		}

		d := net.Dialer{Timeout: s.dialTimeout()}
		conn, err := d.DialContext(ctx, "tcp", host)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			s.log.Warn("unable to connect to mail server",
				zap.String("host", host),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		return s.transact(ctx, smtp.NewClient(conn), host, helo, env, data)
	}

	return fmt.Errorf("connecting to mail server: %w", lastErr)
}

func (s *Submitter) transact(
	ctx context.Context,
	c *smtp.Client,
	host, helo string,
	env envelope,
	data []byte,
) (err error) {
	defer c.Close()

	// a closed connection is reported as the reason it was closed
	defer func() {
		if ctxErr := ctx.Err(); err != nil && ctxErr != nil {
			err = ctxErr
		}
	}()

	stop := context.AfterFunc(ctx, func() { _ = c.Close() })
	defer stop()

	log := s.log.With(zap.String("host", host))

	if err := c.Hello(helo); err != nil {
		return fmt.Errorf("greeting %s: %w", host, err)
	}

	if s.cfg.StartTLS {
		tc := s.cfg.TLSConfig
		if tc == nil {
			name, _, _ := net.SplitHostPort(host)
			tc = &tls.Config{ServerName: name}
		}
		if err := c.StartTLS(tc); err != nil {
			return fmt.Errorf("starting TLS with %s: %w", host, err)
		}
		log.Debug("started TLS")
	}

	if s.cfg.Username != "" {
		if err := c.Auth(sasl.NewCRAMMD5Client(s.cfg.Username, s.cfg.Secret)); err != nil {
			return fmt.Errorf("authenticating to %s: %w", host, err)
		}
		log.Debug("authenticated", zap.String("username", s.cfg.Username))
	}

	if err := c.Mail(env.from, nil); err != nil {
		return fmt.Errorf("sending MAIL FROM: %w", err)
	}

	for _, to := range env.to {
		if err := c.Rcpt(to, nil); err != nil {
			return fmt.Errorf("sending RCPT TO %s: %w", to, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("sending DATA: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("writing message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finishing message: %w", err)
	}

	log.Info("message sent",
		zap.String("from", env.from),
		zap.Strings("to", env.to),
	)

	return c.Quit()
}
