package conn

import (
	"bufio"
	"net"
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/webserv/webserv/common"
	"github.com/webserv/webserv/internal/cookie"
	"github.com/webserv/webserv/internal/fsx"
	"github.com/webserv/webserv/internal/handlers"
	"github.com/webserv/webserv/internal/router"
	"github.com/webserv/webserv/pkg/logger"
)

func testPipeline(t *testing.T) (*Pipeline, *common.ServerConfig) {
	t.Helper()
	old := fsx.FS
	fsx.FS = afero.NewMemMapFs()
	t.Cleanup(func() { fsx.FS = old })

	dir, err := os.MkdirTemp("", "webserv-conn-test")
	if err != nil {
		t.Fatalf("mkdir temp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	svc, err := cookie.New([]byte("secret"), dir+"/cookies.txt", logger.NewNopLogger())
	if err != nil {
		t.Fatalf("cookie.New: %v", err)
	}
	h := handlers.New("webserv", svc, logger.NewNopLogger())
	server := &common.ServerConfig{
		HostName:        "webserv",
		Root:            "/site",
		ClientBodyLimit: 1024,
		Routes: []common.Route{
			{Alias: "/", Methods: []string{"GET"}, DefaultPage: "index.html"},
		},
	}
	return New(router.New(h), logger.NewNopLogger()), server
}

func TestHandleGetWithZeroContentLength(t *testing.T) {
	p, server := testPipeline(t)
	afero.WriteFile(fsx.FS, "/site/index.html", []byte("home"), 0644)

	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	done := make(chan struct{})
	go func() {
		p.Handle(serverConn, server, "127.0.0.1:8080")
		close(done)
	}()

	clientConn.Write([]byte("GET / HTTP/1.1\r\nContent-Length: 0\r\n\r\n"))

	reader := bufio.NewReader(clientConn)
	statusLine, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("read status line: %v", err)
	}
	if !strings.Contains(statusLine, "200") {
		t.Fatalf("expected 200 status line, got %q", statusLine)
	}
	<-done
}

func TestHandleMissingContentLengthIs400(t *testing.T) {
	p, server := testPipeline(t)

	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	done := make(chan struct{})
	go func() {
		p.Handle(serverConn, server, "127.0.0.1:8080")
		close(done)
	}()

	clientConn.Write([]byte("GET / HTTP/1.1\r\n\r\n"))

	reader := bufio.NewReader(clientConn)
	statusLine, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("read status line: %v", err)
	}
	if !strings.Contains(statusLine, "400") {
		t.Fatalf("expected 400 status line, got %q", statusLine)
	}
	<-done
}

func TestHandleContentLengthExceedsLimitIs413(t *testing.T) {
	p, server := testPipeline(t)

	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	done := make(chan struct{})
	go func() {
		p.Handle(serverConn, server, "127.0.0.1:8080")
		close(done)
	}()

	clientConn.Write([]byte("GET / HTTP/1.1\r\nContent-Length: 4096\r\n\r\n"))

	reader := bufio.NewReader(clientConn)
	statusLine, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("read status line: %v", err)
	}
	if !strings.Contains(statusLine, "413") {
		t.Fatalf("expected 413 status line, got %q", statusLine)
	}
	<-done
}

func TestHandleClosedBeforeRequestLineReturnsWithoutResponse(t *testing.T) {
	p, server := testPipeline(t)

	clientConn, serverConn := net.Pipe()
	clientConn.Close()

	done := make(chan struct{})
	go func() {
		p.Handle(serverConn, server, "127.0.0.1:8080")
		close(done)
	}()
	<-done
}
