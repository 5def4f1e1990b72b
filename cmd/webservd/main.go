// Command webservd runs the configurable multi-host HTTP/1.1 server:
// it loads config.toml, binds every configured (host, port), and serves
// requests until interrupted.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli"

	"github.com/webserv/webserv/common"
	"github.com/webserv/webserv/internal/accesslog"
	"github.com/webserv/webserv/internal/acceptor"
	"github.com/webserv/webserv/internal/config"
	"github.com/webserv/webserv/internal/conn"
	"github.com/webserv/webserv/internal/cookie"
	"github.com/webserv/webserv/internal/daemon"
	"github.com/webserv/webserv/internal/handlers"
	"github.com/webserv/webserv/internal/router"
	"github.com/webserv/webserv/pkg/logger"
)

const description = "Configurable multi-host HTTP/1.1 server serving static content, CGI scripts, and multipart uploads."

func main() {
	app := cli.App{
		Name:        "webservd",
		HelpName:    "webservd",
		Usage:       "serve one or more virtual hosts from config.toml",
		Description: description,
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "config, c",
				Usage: "path to config.toml",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "webservd: %s\n", err.Error())
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	l := logger.NewStandardLogger(log.Default())
	defer l.Close()

	cfgPath := ctx.String("config")
	if cfgPath == "" {
		cfgPath = config.ResolvePath()
	}
	cfg, err := config.Load(cfgPath, l)
	if err != nil {
		return err
	}
	if len(cfg.Servers) == 0 {
		return fmt.Errorf("no valid server configs in %s", cfgPath)
	}

	cookies, err := newCookieService(l)
	if err != nil {
		return fmt.Errorf("initialize cookie service: %w", err)
	}

	accessLog, err := accesslog.Open(accessLogPath())
	if err != nil {
		l.Warning("access log unavailable: %v", err)
	}

	h := handlers.New(cfg.Servers[0].HostName, cookies, l)
	pipeline := conn.New(router.New(h), l)
	pipeline.AccessLog = accessLog

	a := acceptor.New(cfg, pipeline, l)

	runner := daemon.New(&daemon.Config{
		ServiceName: daemon.DefaultServiceName,
		DisplayName: daemon.DefaultDisplayName,
	}, &daemon.Dependencies{
		Serve: a.Run,
		ShutdownFunc: func() error {
			if accessLog != nil {
				accessLog.Close()
			}
			return l.Close()
		},
	})

	shutdownCtx, cancel := setupShutdownHandler()
	defer cancel()

	go func() {
		<-shutdownCtx.Done()
		l.Info("shutting down")
		if err := runner.Shutdown(); err != nil {
			l.Error("shutdown: %v", err)
		}
	}()

	l.Info("starting webservd with %d server(s)", len(cfg.Servers))
	if err := runner.Start(shutdownCtx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// newCookieService derives the master secret from WEBSERV_COOKIE_SECRET
// if set, else the OS keyring with a file fallback under the working
// directory, per spec §4.B.
func newCookieService(l logger.Logger) (*cookie.Service, error) {
	var secret []byte
	if s := os.Getenv(common.CookieSecretEnv); s != "" {
		secret = []byte(s)
	} else {
		store := cookie.NewSecretStore(".", l)
		s, err := cookie.EnsureSecret(store)
		if err != nil {
			return nil, err
		}
		secret = s
	}
	return cookie.New(secret, common.CookiesFileName, l)
}

func accessLogPath() string {
	if p := os.Getenv(common.AccessLogPathEnv); p != "" {
		return p
	}
	return common.DefaultAccessLogPath
}
