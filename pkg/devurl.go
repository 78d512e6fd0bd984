package pkg

import (
	"fmt"
	"net"
)

// AddrInfo describes the socket address the dev server is bound to.
type AddrInfo struct {
	Address string
	Port    int
	IPv6    bool
}

// AddrInfoFromAddr extracts the bound address from a listener address. Only
// meaningful once the listening socket exists.
func AddrInfoFromAddr(addr net.Addr) AddrInfo {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok {
		host, port, err := net.SplitHostPort(addr.String())
		if err != nil {
			return AddrInfo{Address: addr.String()}
		}
		p, _ := net.LookupPort(addr.Network(), port)
		ip := net.ParseIP(host)
		return AddrInfo{Address: host, Port: p, IPv6: ip != nil && ip.To4() == nil}
	}
	return AddrInfo{
		Address: tcp.IP.String(),
		Port:    tcp.Port,
		IPv6:    tcp.IP.To4() == nil,
	}
}

// ResolveDevServerURL computes the externally reachable dev-server URL from
// the bound socket address and the merged server configuration. Pure; call it
// once per dev-server process, after the socket is listening.
func ResolveDevServerURL(addr AddrInfo, server ServerConfig) string {
	protocol := "http"
	switch {
	case server.HMR != nil && server.HMR.Protocol == "wss":
		protocol = "https"
	case server.HMR != nil && server.HMR.Protocol != "":
		protocol = "http"
	case server.HTTPS != nil:
		protocol = "https"
	}

	host := addr.Address
	if addr.IPv6 {
		host = "[" + host + "]"
	}
	if server.Host != "" {
		host = server.Host
	}
	if server.HMR != nil && server.HMR.Host != "" {
		host = server.HMR.Host
	}

	port := addr.Port
	if server.HMR != nil && server.HMR.ClientPort != 0 {
		port = server.HMR.ClientPort
	}

	return fmt.Sprintf("%s://%s:%d", protocol, host, port)
}
