// Package dns finds the mail exchangers for a domain and the fully qualified
// name of the local host.
//
// All lookups go through a Resolver built from an explicit Config. There is no
// package-level resolver state.
package dns

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mjl-/adns"
	"go.uber.org/zap"
	"golang.org/x/net/idna"
)

// Errors returned by the Resolver.
var (
	// ErrNoMailHost is returned when a domain has neither MX records nor an
	// address to fall back on.
	ErrNoMailHost = errors.New("no mail host for domain")

	// ErrNullMX is returned when a domain publishes a null MX record, meaning
	// it does not accept mail (RFC 7505).
	ErrNullMX = errors.New("domain does not accept mail")
)

// DefaultTimeout bounds each lookup when Config.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Config holds the resolver settings.
type Config struct {
	// Timeout bounds each individual DNS lookup. Zero means DefaultTimeout.
	Timeout time.Duration

	// PreferGo selects the pure Go resolver over the system one.
	PreferGo bool

	// StrictErrors makes temporary errors fail the whole lookup rather than
	// returning partial results.
	StrictErrors bool
}

// Lookuper is the part of *adns.Resolver used here. Tests supply their own.
type Lookuper interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, adns.Result, error)
	LookupCNAME(ctx context.Context, host string) (string, adns.Result, error)
	LookupHost(ctx context.Context, host string) ([]string, adns.Result, error)
	LookupAddr(ctx context.Context, addr string) ([]string, adns.Result, error)
}

var _ Lookuper = (*adns.Resolver)(nil)

// MX is a mail exchanger for a domain.
type MX struct {
	Host string // without the trailing dot
	Pref uint16
}

// Resolver performs the lookups.
type Resolver struct {
	// Hostname returns the short host name of this machine. It defaults to
	// os.Hostname.
	Hostname func() (string, error)

	cfg Config
	l   Lookuper
	log *zap.Logger
}

// New returns a Resolver backed by an adns.Resolver configured from cfg. The
// log may be nil.
func New(cfg Config, log *zap.Logger) *Resolver {
	return NewWithLookuper(&adns.Resolver{
		PreferGo:     cfg.PreferGo,
		StrictErrors: cfg.StrictErrors,
	}, cfg, log)
}

// NewWithLookuper returns a Resolver that performs its lookups with l.
func NewWithLookuper(l Lookuper, cfg Config, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}

	return &Resolver{
		Hostname: os.Hostname,
		cfg:      cfg,
		l:        l,
		log:      log.Named("dns"),
	}
}

func (r *Resolver) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := r.cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// absName converts domain to an absolute ASCII DNS name with a trailing dot,
// so the search list is never applied.
func absName(domain string) (string, error) {
	name := strings.TrimSuffix(strings.TrimSpace(domain), ".")
	if name == "" {
		return "", fmt.Errorf("empty domain name")
	}

	ascii, err := idna.Lookup.ToASCII(name)
	if err != nil {
		return "", fmt.Errorf("converting domain %q to ascii: %w", domain, err)
	}

	return ascii + ".", nil
}

func isNotFound(err error) bool {
	var dnsErr *adns.DNSError
	return errors.As(err, &dnsErr) && dnsErr.IsNotFound
}

// LookupMX returns the mail exchangers for domain, most preferred first. Hosts
// with equal preference are ordered by name.
//
// When the domain has no MX records but does have an address, the domain
// itself is returned as the implicit MX with preference 0 (RFC 5321 section
// 5.1). It fails with ErrNullMX if the domain publishes a null MX and with
// ErrNoMailHost if there is nothing to deliver to.
func (r *Resolver) LookupMX(ctx context.Context, domain string) ([]MX, error) {
	name, err := absName(domain)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	records, _, err := r.l.LookupMX(ctx, name)
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("looking up MX for %s: %w", domain, err)
	}

	if len(records) == 0 {
		return r.implicitMX(ctx, domain, name)
	}

	if len(records) == 1 && (records[0].Host == "." || records[0].Host == "") {
		return nil, fmt.Errorf("%w: %s", ErrNullMX, domain)
	}

	mxs := make([]MX, 0, len(records))
	for _, rec := range records {
		host := strings.TrimSuffix(rec.Host, ".")
		if host == "" {
			continue
		}
		mxs = append(mxs, MX{Host: host, Pref: rec.Pref})
	}

	sort.SliceStable(mxs, func(i, j int) bool {
		if mxs[i].Pref != mxs[j].Pref {
			return mxs[i].Pref < mxs[j].Pref
		}
		return mxs[i].Host < mxs[j].Host
	})

	r.log.Debug("found mail exchangers",
		zap.String("domain", domain),
		zap.Int("count", len(mxs)),
	)

	return mxs, nil
}

// implicitMX falls back on the address records of the domain.
func (r *Resolver) implicitMX(ctx context.Context, domain, name string) ([]MX, error) {
	addrs, _, err := r.l.LookupHost(ctx, name)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoMailHost, domain)
		}
		return nil, fmt.Errorf("looking up address for %s: %w", domain, err)
	}

	if len(addrs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMailHost, domain)
	}

	r.log.Debug("using implicit MX", zap.String("domain", domain))

	return []MX{{Host: strings.TrimSuffix(name, "."), Pref: 0}}, nil
}

// MailHosts is LookupMX returning only the host names.
func (r *Resolver) MailHosts(ctx context.Context, domain string) ([]string, error) {
	mxs, err := r.LookupMX(ctx, domain)
	if err != nil {
		return nil, err
	}

	hosts := make([]string, len(mxs))
	for i, mx := range mxs {
		hosts[i] = mx.Host
	}
	return hosts, nil
}

// FQDN returns the fully qualified domain name of this host. If the host name
// is already qualified, it is returned as-is. Otherwise the canonical name is
// looked up, then the reverse name of the host's first address. If neither
// gives a qualified name, the short host name is returned.
func (r *Resolver) FQDN(ctx context.Context) (string, error) {
	hostname := r.Hostname
	if hostname == nil {
		hostname = os.Hostname
	}

	host, err := hostname()
	if err != nil {
		return "", fmt.Errorf("reading host name: %w", err)
	}

	if strings.Contains(strings.TrimSuffix(host, "."), ".") {
		return strings.TrimSuffix(host, "."), nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	// without a trailing dot, so the search list qualifies the name
	if cname, _, err := r.l.LookupCNAME(ctx, host); err == nil {
		if name := strings.TrimSuffix(cname, "."); strings.Contains(name, ".") {
			return name, nil
		}
	} else {
		r.log.Debug("canonical name lookup failed", zap.String("host", host), zap.Error(err))
	}

	addrs, _, err := r.l.LookupHost(ctx, host)
	if err == nil && len(addrs) > 0 {
		names, _, err := r.l.LookupAddr(ctx, addrs[0])
		if err == nil {
			for _, n := range names {
				if name := strings.TrimSuffix(n, "."); strings.Contains(name, ".") {
					return name, nil
				}
			}
		} else {
			r.log.Debug("reverse lookup failed", zap.String("addr", addrs[0]), zap.Error(err))
		}
	}

	r.log.Debug("using unqualified host name", zap.String("host", host))

	return host, nil
}
