package httpmsg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/webserv/webserv/common"
)

// New builds a default 200 OK response with Content-Type: text/html and
// the Server header set from hostName, per spec §4.A.
func New(hostName string) *common.Response {
	return &common.Response{
		Version:    common.HTTP11,
		StatusCode: "200",
		StatusText: "OK",
		Headers: map[string]string{
			"Content-Type": "text/html",
			"Server":       hostName,
		},
	}
}

// NewStatus builds a response with the given status code, deriving
// StatusText from common.StatusTable.
func NewStatus(hostName, code string) *common.Response {
	text, _ := common.StatusFor(code)
	r := New(hostName)
	r.StatusCode = code
	r.StatusText = text
	return r
}

// LiteralRedirect builds the literal wire string spec §4.F mandates for
// router-level redirects (the upload success path and the missing-
// cookie login bounce): no Content-Length, no body, status text always
// "Found" regardless of code.
func LiteralRedirect(addr, path string) *common.Response {
	raw := fmt.Sprintf("HTTP/1.1 301 Found\r\nLocation: http://%s%s\r\n\r\n", addr, path)
	return &common.Response{Raw: []byte(raw)}
}

// Serialize renders a Response to wire bytes per spec §3/§4.A:
//
//	<version> SP <code> SP <text> CRLF
//	(<k>:<v> CRLF)*
//	Content-Length: <n> CRLF
//	CRLF
//	<body>
//
// A non-nil Raw bypasses all of the above and is returned verbatim, for
// the literal redirect strings spec §4.F mandates.
func Serialize(r *common.Response) []byte {
	if r.Raw != nil {
		return r.Raw
	}
	var b strings.Builder
	version := r.Version
	if version == "" {
		version = common.HTTP11
	}
	fmt.Fprintf(&b, "%s %s %s\r\n", version, r.StatusCode, r.StatusText)
	for k, v := range r.Headers {
		if strings.EqualFold(k, "Content-Length") {
			continue
		}
		fmt.Fprintf(&b, "%s:%s\r\n", k, v)
	}
	fmt.Fprintf(&b, "Content-Length: %s\r\n\r\n", strconv.Itoa(len(r.Body)))
	b.WriteString(r.Body)
	return []byte(b.String())
}
