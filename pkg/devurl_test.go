package pkg

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDevServerURLPlain(t *testing.T) {
	url := ResolveDevServerURL(AddrInfo{Address: "127.0.0.1", Port: 5173}, ServerConfig{})
	assert.Equal(t, "http://127.0.0.1:5173", url)
}

func TestResolveDevServerURLBracketsIPv6(t *testing.T) {
	url := ResolveDevServerURL(AddrInfo{Address: "::1", Port: 5173, IPv6: true}, ServerConfig{})
	assert.Equal(t, "http://[::1]:5173", url)
}

func TestResolveDevServerURLHMROverrides(t *testing.T) {
	url := ResolveDevServerURL(
		AddrInfo{Address: "127.0.0.1", Port: 5173},
		ServerConfig{HMR: &HMRConfig{Host: "example.test", ClientPort: 8080}},
	)
	assert.Equal(t, "http://example.test:8080", url)
}

func TestResolveDevServerURLProtocolPrecedence(t *testing.T) {
	addr := AddrInfo{Address: "127.0.0.1", Port: 5173}
	tls := &TLSKeyPair{Key: []byte("k"), Cert: []byte("c")}

	// Secure websocket protocol wins.
	url := ResolveDevServerURL(addr, ServerConfig{HMR: &HMRConfig{Protocol: "wss"}})
	assert.Equal(t, "https://127.0.0.1:5173", url)

	// Any other explicit HMR protocol forces plain http, even with TLS on.
	url = ResolveDevServerURL(addr, ServerConfig{HTTPS: tls, HMR: &HMRConfig{Protocol: "ws"}})
	assert.Equal(t, "http://127.0.0.1:5173", url)

	// No HMR protocol: server TLS decides.
	url = ResolveDevServerURL(addr, ServerConfig{HTTPS: tls})
	assert.Equal(t, "https://127.0.0.1:5173", url)
}

func TestResolveDevServerURLHostPrecedence(t *testing.T) {
	addr := AddrInfo{Address: "0.0.0.0", Port: 5173}

	url := ResolveDevServerURL(addr, ServerConfig{Host: "server.test"})
	assert.Equal(t, "http://server.test:5173", url)

	url = ResolveDevServerURL(addr, ServerConfig{Host: "server.test", HMR: &HMRConfig{Host: "hmr.test"}})
	assert.Equal(t, "http://hmr.test:5173", url)
}

func TestAddrInfoFromAddr(t *testing.T) {
	info := AddrInfoFromAddr(&net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 5173})
	assert.Equal(t, "127.0.0.1", info.Address)
	assert.Equal(t, 5173, info.Port)
	assert.False(t, info.IPv6)

	info = AddrInfoFromAddr(&net.TCPAddr{IP: net.ParseIP("::1"), Port: 5173})
	assert.Equal(t, "::1", info.Address)
	assert.True(t, info.IPv6)
}
