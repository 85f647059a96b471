package components

import (
	"net"
	"strings"
)

func resourceID(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "/")
}

func parseNetwork(cidr string) (net.IPNet, bool) {
	_, network, err := net.ParseCIDR(strings.TrimSpace(cidr))
	if err != nil {
		return net.IPNet{}, false
	}
	return *network, true
}

func prefixBits(network net.IPNet) int {
	ones, _ := network.Mask.Size()
	return ones
}
