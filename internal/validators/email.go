package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid reports whether the domain part of email resolves
// to something that could receive mail. MX is the real answer; a bare
// A/AAAA record counts as the implicit MX of RFC 5321.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	host := email[at+1:]

	if mx, err := net.LookupMX(host); err == nil && len(mx) > 0 {
		return true
	}

	ips, err := net.LookupIP(host)
	return err == nil && len(ips) > 0
}
