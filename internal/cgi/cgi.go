// Package cgi implements spec §4.E's handle_cgi_request: resolving a
// script by file extension, invoking it as a subprocess, and capturing
// its output. Deliberately sets no CGI environment and forwards no
// stdin, per spec §9's acknowledged "degenerate CGI implementation" note
// (see SPEC_FULL.md §9 for why this is preserved rather than fixed).
package cgi

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/webserv/webserv/common"
)

// Run resolves server.CGIExtensions[ext] (ext = text after the last "."
// in requestPath), executes the interpreter, and returns stdout on
// success or stderr on failure, both UTF-8 lossy-decoded, per spec §4.E.
// Returns ("", nil) if the script is not registered or does not exist on
// disk — callers map that to a 404, per spec.
func Run(server *common.ServerConfig, requestPath string) (string, error) {
	ext := extensionOf(requestPath)
	script, ok := server.CGIExtensions[ext]
	if !ok {
		return "", nil
	}
	absScript := filepath.Join(server.Root, script)
	if _, err := os.Stat(absScript); err != nil {
		return "", nil
	}

	cmd, unsupported := buildCommand(absScript)
	if unsupported {
		return "Unsupported CGI extension", nil
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stderr.String(), nil
	}
	return stdout.String(), nil
}

func extensionOf(path string) string {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		return ""
	}
	return path[idx+1:]
}

// buildCommand returns the subprocess for absScript, chosen by the
// resolved script's own suffix rather than the request extension that
// mapped to it — a "cgi" extension mapped to "run.php" still executes
// as PHP. unsupported is true when absScript ends in neither ".php" nor
// ".py" (spec §4.E step 3).
func buildCommand(absScript string) (cmd *exec.Cmd, unsupported bool) {
	switch {
	case strings.HasSuffix(absScript, ".php"):
		return exec.Command(absScript), false
	case strings.HasSuffix(absScript, ".py"):
		return exec.Command("python3", absScript), false
	default:
		return nil, true
	}
}
