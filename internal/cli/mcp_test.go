package cli

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCP_InvalidOptions(t *testing.T) {
	err := MCP(context.Background(), MCPOptions{ConfigPath: testConfig, Transport: "carrier-pigeon"})
	assert.ErrorContains(t, err, "unknown transport")

	err = MCP(context.Background(), MCPOptions{ConfigPath: "testdata/missing.yaml"})
	assert.Error(t, err)

	err = MCP(context.Background(), MCPOptions{ConfigPath: testConfig, Transport: TransportSSE, Addr: "no-port"})
	assert.ErrorContains(t, err, "invalid address")
}

func TestMCP_SSE(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	base := fmt.Sprintf("http://%s", ln.Addr().String())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- MCP(ctx, MCPOptions{
			ConfigPath: testConfig,
			GraphPath:  testGraph,
			Transport:  TransportSSE,
			Listener:   ln,
		})
	}()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(base + "/sse")
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The first event advertises where JSON-RPC messages are posted.
	scanner := bufio.NewScanner(resp.Body)
	endpoint := ""
	for scanner.Scan() {
		if data, ok := strings.CutPrefix(scanner.Text(), "data: "); ok {
			endpoint = data
			break
		}
	}
	resp.Body.Close()
	assert.True(t, strings.HasPrefix(endpoint, base+"/message"), endpoint)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
