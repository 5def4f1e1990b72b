package config

import (
	"testing"

	"github.com/webserv/webserv/common"
	"github.com/webserv/webserv/pkg/logger"
)

func TestValidateDropsDuplicatePorts(t *testing.T) {
	raw := &common.Config{Servers: []common.ServerConfig{
		{HostName: "bad", Ports: []int{80, 80}},
		{HostName: "good", Ports: []int{80, 81}},
	}}
	out := Validate(raw, logger.NewNopLogger())
	if len(out.Servers) != 1 || out.Servers[0].HostName != "good" {
		t.Fatalf("expected only 'good' kept, got %#v", out.Servers)
	}
}

func TestValidateDropsMultiEntryRedirect(t *testing.T) {
	raw := &common.Config{Servers: []common.ServerConfig{
		{HostName: "bad", Ports: []int{80}, Routes: []common.Route{
			{Redirect: map[string]string{"/a/": "b.html", "/c/": "d.html"}},
		}},
	}}
	out := Validate(raw, logger.NewNopLogger())
	if len(out.Servers) != 0 {
		t.Fatalf("expected server dropped, got %#v", out.Servers)
	}
}

func TestValidateKeepsValidConfig(t *testing.T) {
	raw := &common.Config{Servers: []common.ServerConfig{
		{HostName: "ok", Ports: []int{80}, Routes: []common.Route{
			{Redirect: map[string]string{"/a/": "b.html"}},
		}},
	}}
	out := Validate(raw, logger.NewNopLogger())
	if len(out.Servers) != 1 {
		t.Fatalf("expected server kept, got %#v", out.Servers)
	}
}

func TestValidateDropsConfiguredEmptyRedirect(t *testing.T) {
	raw := &common.Config{Servers: []common.ServerConfig{
		{HostName: "bad", Ports: []int{80}, Routes: []common.Route{
			{RedirectConfigured: true, Redirect: map[string]string{}},
		}},
	}}
	out := Validate(raw, logger.NewNopLogger())
	if len(out.Servers) != 0 {
		t.Fatalf("expected server dropped, got %#v", out.Servers)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load("/nonexistent/config.toml", logger.NewNopLogger())
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}
