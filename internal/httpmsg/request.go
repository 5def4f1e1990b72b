// Package httpmsg implements the request/response data model of spec §3 and
// §4.A: parsing a raw header block into a common.Request, and serializing a
// common.Response back to wire bytes.
package httpmsg

import (
	"strings"

	"github.com/webserv/webserv/common"
)

// ParseHeaderBlock parses a sequence of header-block lines (request line,
// headers, terminated by an already-stripped blank line) into a
// common.Request. It follows spec §4.A's line classification exactly: a
// line containing "HTTP" is the request line; a line containing ":" is a
// header; anything else is ignored.
func ParseHeaderBlock(lines []string) *common.Request {
	req := &common.Request{
		Method:   common.MethodUninitialized,
		Version:  common.VersionUninit,
		Headers:  make(map[string]string),
		Resource: "",
	}
	for _, line := range lines {
		switch {
		case strings.Contains(line, "HTTP"):
			method, path, version := parseRequestLine(line)
			req.Method = method
			req.Resource = path
			req.Version = version
		case strings.Contains(line, ":"):
			k, v := parseHeaderLine(line)
			req.Headers[k] = v
		}
	}
	return req
}

func parseRequestLine(line string) (common.Method, string, common.Version) {
	fields := strings.Fields(line)
	method := common.MethodUninitialized
	path := ""
	version := common.VersionUninit
	if len(fields) > 0 {
		switch fields[0] {
		case "GET":
			method = common.MethodGet
		case "POST":
			method = common.MethodPost
		case "DELETE":
			method = common.MethodDelete
		}
	}
	if len(fields) > 1 {
		path = fields[1]
	}
	if len(fields) > 2 {
		switch fields[2] {
		case "HTTP/1.1", "HTTP/1.0":
			version = common.HTTP11
		case "HTTP/2.0", "HTTP/2":
			version = common.HTTP20
		}
	}
	return method, path, version
}

// parseHeaderLine splits a header line at the first colon. The value keeps
// its surrounding whitespace; callers must trim before comparison, per
// spec §4.A.
func parseHeaderLine(line string) (key, value string) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return line, ""
	}
	return line[:idx], line[idx+1:]
}

// Header looks up a header by exact (case-sensitive) name, trimming the
// stored value.
func Header(req *common.Request, name string) (string, bool) {
	v, ok := req.Headers[name]
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}
