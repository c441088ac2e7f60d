package server

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionLimiter(t *testing.T) {
	l := NewConnectionLimiter(2)

	_, ok := l.acquire("10.0.0.1")
	assert.True(t, ok)
	current, ok := l.acquire("10.0.0.1")
	assert.True(t, ok)
	assert.Equal(t, 2, current)

	current, ok = l.acquire("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, 2, current)

	_, ok = l.acquire("10.0.0.2")
	assert.True(t, ok, "limits are per IP")

	l.release("10.0.0.1")
	_, ok = l.acquire("10.0.0.1")
	assert.True(t, ok)

	l.release("10.0.0.1")
	l.release("10.0.0.1")
	assert.Equal(t, 0, l.count("10.0.0.1"))
	assert.NotContains(t, l.ipCounter, "10.0.0.1")
}

func TestRemoteIP(t *testing.T) {
	assert.Equal(t, "192.168.1.5", remoteIP(&net.TCPAddr{IP: net.ParseIP("192.168.1.5"), Port: 5000}))
	assert.Equal(t, "::1", remoteIP(&net.UDPAddr{IP: net.ParseIP("::1"), Port: 22}))
}
