package cgi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/webserv/webserv/common"
)

func TestRunMissingScriptReturnsEmpty(t *testing.T) {
	root := t.TempDir()
	server := &common.ServerConfig{
		Root:          root,
		CGIExtensions: map[string]string{"php": "cgi-bin/missing.php"},
	}
	out, err := Run(server, "/x/missing.php")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestRunUnregisteredExtensionReturnsEmpty(t *testing.T) {
	server := &common.ServerConfig{Root: t.TempDir(), CGIExtensions: map[string]string{}}
	out, err := Run(server, "/x/file.rb")
	if err != nil || out != "" {
		t.Fatalf("Run = %q, %v", out, err)
	}
}

func TestRunChoosesInterpreterByScriptSuffixNotRequestExtension(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "cgi-bin"), 0755); err != nil {
		t.Fatal(err)
	}
	scriptPath := filepath.Join(root, "cgi-bin", "run.php")
	if err := os.WriteFile(scriptPath, []byte("#!/bin/sh\necho hi\n"), 0755); err != nil {
		t.Fatal(err)
	}
	server := &common.ServerConfig{
		Root:          root,
		CGIExtensions: map[string]string{"cgi": "cgi-bin/run.php"},
	}
	out, err := Run(server, "/x/script.cgi")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out == "Unsupported CGI extension" {
		t.Fatalf("expected the .php script to run, got unsupported message")
	}
}

func TestRunUnsupportedExtensionMessage(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "cgi-bin"), 0755); err != nil {
		t.Fatal(err)
	}
	scriptPath := filepath.Join(root, "cgi-bin", "script.rb")
	if err := os.WriteFile(scriptPath, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	server := &common.ServerConfig{
		Root:          root,
		CGIExtensions: map[string]string{"rb": "cgi-bin/script.rb"},
	}
	out, err := Run(server, "/x/script.rb")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "Unsupported CGI extension" {
		t.Fatalf("out = %q", out)
	}
}
