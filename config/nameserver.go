package config

import (
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
)

const defaultDNSPort = 53

var validDomain = regexp.MustCompile(
	`^(([a-zA-Z0-9]|[a-zA-Z0-9][a-zA-Z0-9\-_]*[a-zA-Z0-9])\.)*([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9\-]*[A-Za-z0-9])\.?$`)

// Nameserver is the definition of the DNS server which is queried
type Nameserver struct {
	Host string
	Port uint16
}

// IsDefault returns true if n is the default value
func (n *Nameserver) IsDefault() bool {
	return *n == Nameserver{}
}

// IsIP returns true if the host is an IP literal
func (n *Nameserver) IsIP() bool {
	return net.ParseIP(n.Host) != nil
}

// String returns the string representation of n
func (n Nameserver) String() string {
	if n.IsDefault() {
		return "no nameserver"
	}

	if n.Port == defaultDNSPort && !strings.ContainsRune(n.Host, ':') {
		return n.Host
	}

	return net.JoinHostPort(n.Host, strconv.Itoa(int(n.Port)))
}

// UnmarshalText implements `encoding.TextUnmarshaler`.
func (n *Nameserver) UnmarshalText(data []byte) error {
	s := string(data)

	ns, err := ParseNameserver(s)
	if err != nil {
		return fmt.Errorf("can't convert nameserver '%s': %w", s, err)
	}

	*n = ns

	return nil
}

// ParseNameserver creates new Nameserver from passed string in format host[:port]
func ParseNameserver(s string) (Nameserver, error) {
	var port uint16

	s = strings.TrimSpace(s)

	host, portString, err := net.SplitHostPort(s)

	// string contains host:port
	if err == nil {
		p, err := ConvertPort(portString)
		if err != nil {
			return Nameserver{}, fmt.Errorf("can't convert port to number (1 - 65535) %w", err)
		}

		port = p
	} else {
		// only host, use default port
		host = s
		port = defaultDNSPort

		// trim any IPv6 brackets
		host = strings.TrimPrefix(host, "[")
		host = strings.TrimSuffix(host, "]")
	}

	if host == "" {
		return Nameserver{}, fmt.Errorf("host wasn't specified")
	}

	// validate hostname or ip
	if ip := net.ParseIP(host); ip == nil {
		if !validDomain.MatchString(host) {
			return Nameserver{}, fmt.Errorf("wrong host name '%s'", host)
		}
	}

	return Nameserver{
		Host: host,
		Port: port,
	}, nil
}

// ConvertPort converts string representation into a valid port (0 - 65535)
func ConvertPort(in string) (uint16, error) {
	const (
		base    = 10
		bitSize = 16
	)

	p, err := strconv.ParseUint(strings.TrimSpace(in), base, bitSize)
	if err != nil {
		return 0, err
	}

	return uint16(p), nil
}
