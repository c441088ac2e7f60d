package server

import (
	"fmt"
	"net"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
)

// ConnectionLimiter caps concurrent sessions per remote IP.
type ConnectionLimiter struct {
	maxPerIP int

	mu        sync.Mutex
	ipCounter map[string]int
}

func NewConnectionLimiter(maxPerIP int) *ConnectionLimiter {
	return &ConnectionLimiter{
		maxPerIP:  maxPerIP,
		ipCounter: make(map[string]int),
	}
}

func (l *ConnectionLimiter) acquire(ip string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ipCounter[ip] >= l.maxPerIP {
		return l.ipCounter[ip], false
	}
	l.ipCounter[ip]++
	return l.ipCounter[ip], true
}

func (l *ConnectionLimiter) release(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.ipCounter[ip]--
	if l.ipCounter[ip] <= 0 {
		delete(l.ipCounter, ip)
	}
}

func (l *ConnectionLimiter) count(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.ipCounter[ip]
}

// Middleware rejects a session when its IP already holds maxPerIP sessions.
func (l *ConnectionLimiter) Middleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := remoteIP(s.RemoteAddr())

		current, ok := l.acquire(ip)
		if !ok {
			log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", current+1, "current_limit", l.maxPerIP)
			wish.Fatalln(s, fmt.Sprintf("Too many active connections from your IP (%d/%d). Please try again later.", current+1, l.maxPerIP))
			return
		}
		defer func() {
			l.release(ip)
			log.Info("Connection closed", "ip", ip, "count_after", l.count(ip))
		}()

		log.Info("Connection accepted", "ip", ip, "current_count", current, "limit", l.maxPerIP)
		next(s)
	}
}

func remoteIP(addr net.Addr) string {
	if tcpAddr, ok := addr.(*net.TCPAddr); ok {
		return tcpAddr.IP.String()
	}
	if host, _, err := net.SplitHostPort(addr.String()); err == nil {
		return host
	}
	return addr.String()
}
