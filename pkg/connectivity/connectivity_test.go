package connectivity

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecker_Connected(t *testing.T) {
	t.Run("listening address", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()
		go func() {
			for {
				conn, err := ln.Accept()
				if err != nil {
					return
				}
				_ = conn.Close()
			}
		}()

		c := NewChecker(ln.Addr().String(), time.Second)
		assert.True(t, c.Connected(context.Background()))
	})

	t.Run("closed port", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := ln.Addr().String()
		require.NoError(t, ln.Close())

		c := NewChecker(addr, time.Second)
		assert.False(t, c.Connected(context.Background()))
	})

	t.Run("canceled context", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		c := NewChecker(ln.Addr().String(), time.Second)
		assert.False(t, c.Connected(ctx))
	})

	t.Run("default timeout", func(t *testing.T) {
		c := NewChecker("127.0.0.1:1", 0)
		assert.Equal(t, DefaultTimeout, c.timeout)
	})
}

func TestStatic(t *testing.T) {
	assert.True(t, Static(true).Connected(context.Background()))
	assert.False(t, Static(false).Connected(context.Background()))
}

func TestProbeFor(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"https default port", "https://content.guardianapis.com/search", "content.guardianapis.com:443"},
		{"http default port", "http://example.com/search", "example.com:80"},
		{"explicit port", "http://127.0.0.1:8080/search", "127.0.0.1:8080"},
		{"ipv6", "https://[::1]/search", "[::1]:443"},
		{"no host", "/search", ""},
		{"garbage", "://bad", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProbeFor(tt.in))
		})
	}
}
