// Package conn implements spec §4.G: the per-connection pipeline that
// reads one HTTP/1.x request off an accepted socket, dispatches it to
// the router, writes the response, and shuts the socket down.
package conn

import (
	"bufio"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/webserv/webserv/common"
	"github.com/webserv/webserv/internal/accesslog"
	"github.com/webserv/webserv/internal/httpmsg"
	"github.com/webserv/webserv/internal/router"
	"github.com/webserv/webserv/pkg/logger"
)

// Pipeline handles each accepted connection synchronously within one
// Handle call. The acceptor runs every Handle call in its own goroutine,
// so one Pipeline serves several connections concurrently.
type Pipeline struct {
	Router *router.Router
	Log    logger.Logger

	// AccessLog, if set, records one row per completed request. Nil
	// disables access logging entirely.
	AccessLog *accesslog.Sink
}

// New builds a Pipeline around a Router.
func New(r *router.Router, l logger.Logger) *Pipeline {
	return &Pipeline{Router: r, Log: l}
}

// Handle runs one request-response cycle over c, then shuts the socket
// down. addr is the "host:port" string the connection was accepted on.
// No request is ever processed twice on one connection, per spec §4.G.
func (p *Pipeline) Handle(c net.Conn, server *common.ServerConfig, addr string) {
	defer p.shutdown(c)

	deadline := time.Now().Add(common.ReadTimeoutSeconds * time.Second)
	c.SetReadDeadline(deadline)
	c.SetWriteDeadline(time.Now().Add(common.WriteTimeoutSeconds * time.Second))

	reader := bufio.NewReader(c)
	lines, err := readHeaderBlock(reader)
	if err != nil {
		if isTimeout(err) {
			p.write(c, httpmsg.NewStatus(server.HostName, "408"))
		}
		return
	}

	req := httpmsg.ParseHeaderBlock(lines)

	clStr, present := req.Headers["Content-Length"]
	if !present {
		p.write(c, p.Router.Handler.Error("400", server))
		return
	}
	length, err := strconv.ParseUint(strings.TrimSpace(clStr), 10, 64)
	if err != nil {
		p.write(c, p.Router.Handler.Error("400", server))
		return
	}
	if length > uint64(server.ClientBodyLimit) {
		p.write(c, p.Router.Handler.Error("413", server))
		return
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(reader, body); err != nil {
		if isTimeout(err) {
			p.write(c, p.Router.Handler.Error("408", server))
		} else {
			p.write(c, p.Router.Handler.Error("400", server))
		}
		return
	}
	req.MsgBody = string(body)
	req.RawBody = body

	resp := p.Router.Dispatch(req, server, addr)
	p.write(c, resp)
	p.record(c, req, resp)
}

// record persists an access-log row for the completed request, if an
// AccessLog sink is configured. A sink failure is logged, never fatal.
func (p *Pipeline) record(c net.Conn, req *common.Request, resp *common.Response) {
	if p.AccessLog == nil {
		return
	}
	if err := p.AccessLog.Record(c.RemoteAddr().String(), string(req.Method), req.Resource, resp.StatusCode); err != nil && p.Log != nil {
		p.Log.Error("access log: %v", err)
	}
}

func (p *Pipeline) write(c net.Conn, resp *common.Response) {
	if _, err := c.Write(httpmsg.Serialize(resp)); err != nil && p.Log != nil {
		p.Log.Error("write response: %v", err)
	}
}

// readHeaderBlock line-reads until a blank line, per spec §4.G step 2.
// EOF before a blank line is not an error unless no line was read at
// all (a bare timeout).
func readHeaderBlock(r *bufio.Reader) ([]string, error) {
	var lines []string
	for {
		line, err := r.ReadString('\n')
		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed != "" {
			lines = append(lines, trimmed)
		}
		if err != nil {
			if trimmed == "" && len(lines) == 0 {
				return nil, err
			}
			break
		}
		if trimmed == "" {
			break
		}
	}
	return lines, nil
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// shutdown closes both directions of c, ignoring "not connected" style
// errors a half-closed or already-closed socket produces, per spec
// §4.G step 6.
func (p *Pipeline) shutdown(c net.Conn) {
	if cr, ok := c.(interface{ CloseRead() error }); ok {
		if err := cr.CloseRead(); err != nil && !isNotConnected(err) && p.Log != nil {
			p.Log.Error("close read: %v", err)
		}
	}
	if cw, ok := c.(interface{ CloseWrite() error }); ok {
		if err := cw.CloseWrite(); err != nil && !isNotConnected(err) && p.Log != nil {
			p.Log.Error("close write: %v", err)
		}
	}
	c.Close()
}

func isNotConnected(err error) bool {
	return strings.Contains(err.Error(), "not connected") ||
		strings.Contains(err.Error(), "transport endpoint is not connected") ||
		errors.Is(err, net.ErrClosed)
}
