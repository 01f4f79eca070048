package service

import (
	"strings"

	"github.com/xssnick/tonutils-go/address"
)

// NormalizeWallet returns addr in user-friendly form. Raw "wc:hex"
// addresses are converted; anything unparsable is returned as is with
// ok=false.
func NormalizeWallet(addr string) (normalized string, ok bool) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", false
	}

	if strings.Contains(addr, ":") {
		parsed, err := address.ParseRawAddr(addr)
		if err != nil {
			return addr, false
		}
		return parsed.String(), true
	}

	parsed, err := address.ParseAddr(addr)
	if err != nil {
		return addr, false
	}
	return parsed.String(), true
}
