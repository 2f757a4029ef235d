package netutil

import (
	"fmt"
	"net/netip"
	"strings"
)

// ParseAddress parses a single IPv4 or IPv6 address.
// IPv4-mapped IPv6 addresses are unmapped so they compare equal to their
// IPv4 form.
func ParseAddress(s string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return netip.Addr{}, fmt.Errorf("invalid IP address %q: %w", s, err)
	}
	return addr.Unmap(), nil
}

// ParseRange parses a CIDR block. A bare address is accepted as a
// single-host range.
func ParseRange(s string) (netip.Prefix, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "/") {
		addr, err := ParseAddress(s)
		if err != nil {
			return netip.Prefix{}, err
		}
		return netip.PrefixFrom(addr, addr.BitLen()), nil
	}

	prefix, err := netip.ParsePrefix(s)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("invalid CIDR %q: %w", s, err)
	}
	return prefix.Masked(), nil
}

// Contains reports whether addr falls within the network/prefix bounds of cidr.
func Contains(cidr, addr string) (bool, error) {
	prefix, err := ParseRange(cidr)
	if err != nil {
		return false, err
	}
	ip, err := ParseAddress(addr)
	if err != nil {
		return false, err
	}
	return prefix.Contains(ip), nil
}

// RangeContains reports whether any of ranges contains addr.
// The first malformed range aborts the check with an error.
func RangeContains(ranges []string, addr string) (bool, error) {
	ip, err := ParseAddress(addr)
	if err != nil {
		return false, err
	}

	for _, r := range ranges {
		prefix, err := ParseRange(r)
		if err != nil {
			return false, err
		}
		if prefix.Contains(ip) {
			return true, nil
		}
	}
	return false, nil
}
