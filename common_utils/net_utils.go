package common_utils

import (
	"fmt"
	"net"
)

// GetIPAddr returns the first IPv4 address assigned to the named
// interface. With an empty name the first running non-loopback
// interface that has an IPv4 address is used.
func GetIPAddr(intf string) (string, error) {
	if intf != "" {
		iface, err := net.InterfaceByName(intf)
		if err != nil {
			return "", fmt.Errorf("interface %s: %w", intf, err)
		}
		return firstIPv4(iface)
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}
	for i := range ifaces {
		iface := &ifaces[i]
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}
		if addr, err := firstIPv4(iface); err == nil {
			return addr, nil
		}
	}
	return "", fmt.Errorf("no interface with an IPv4 address found")
}

func firstIPv4(iface *net.Interface) (string, error) {
	addrs, err := iface.Addrs()
	if err != nil {
		return "", err
	}
	for _, addr := range addrs {
		var ip net.IP
		switch v := addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}
		if ip == nil || ip.To4() == nil {
			continue
		}
		return ip.String(), nil
	}
	return "", fmt.Errorf("no IPv4 address on interface %s", iface.Name)
}
