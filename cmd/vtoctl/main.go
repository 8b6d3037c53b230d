package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/breml/rootcerts"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gosplash"
	"github.com/qdm12/log"
	"github.com/qdm12/vtoctl/internal/config"
	"github.com/qdm12/vtoctl/internal/credentials"
	"github.com/qdm12/vtoctl/internal/errors"
	"github.com/qdm12/vtoctl/internal/models"
	"github.com/qdm12/vtoctl/internal/prompt"
	"github.com/qdm12/vtoctl/internal/rpc"
	"github.com/qdm12/vtoctl/internal/session"
	"github.com/qdm12/vtoctl/internal/shoutrrr"
)

//nolint:gochecknoglobals
var (
	version = "unknown"
	commit  = "unknown"
	date    = "an unknown date"
)

const (
	exitOK = iota
	exitMissingInput
	exitLoginFailed
	exitNoSession
	exitFailure
)

func main() {
	buildInfo := models.BuildInformation{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
	logger := log.New(log.SetWriters(os.Stderr))

	reader := reader.New(reader.Settings{
		HandleDeprecatedKey: func(source, oldKey, newKey string) {
			logger.Warnf("%q key %s is deprecated, please use %q instead",
				source, oldKey, newKey)
		},
	})

	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	stdio := stdio{
		in:  os.Stdin,
		out: os.Stdout,
		err: os.Stderr,
	}

	errorCh := make(chan error)
	go func() {
		errorCh <- _main(ctx, reader, os.Args, stdio, logger, buildInfo)
	}()

	var err error
	select {
	case <-ctx.Done():
		stop()
		logger.Warn("Caught OS signal, shutting down")
		const shutdownGracePeriod = 5 * time.Second
		timer := time.NewTimer(shutdownGracePeriod)
		select {
		case err = <-errorCh:
			if !timer.Stop() {
				<-timer.C
			}
		case <-timer.C:
			logger.Warn("Shutdown timed out")
			os.Exit(exitFailure)
		}
	case err = <-errorCh:
		stop()
	}

	if err != nil {
		logger.Error(err.Error())
	}
	os.Exit(exitCode(err))
}

type stdio struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

var (
	ErrCommandUnknown = stderrors.New("command is unknown")
	ErrLoginFailed    = stderrors.New("login failed")
)

func _main(ctx context.Context, reader *reader.Reader, args []string, stdio stdio,
	logger log.LoggerInterface, buildInfo models.BuildInformation) (err error) {
	command := "login"
	if len(args) > 1 {
		command = args[1]
	}

	switch command {
	case "version", "-version", "--version":
		_, err = fmt.Fprintln(stdio.out, buildInfo.VersionString())
		return err
	case "login":
		printSplash(stdio.err, buildInfo)
	}

	config, err := readConfig(reader, logger)
	if err != nil {
		return err
	}

	shoutrrrSettings := shoutrrr.Settings{
		Addresses:    config.Shoutrrr.Addresses,
		DefaultTitle: config.Shoutrrr.DefaultTitle,
		Logger:       logger.New(log.SetComponent("shoutrrr")),
	}
	shoutrrrClient, err := shoutrrr.New(shoutrrrSettings)
	if err != nil {
		return fmt.Errorf("setting up Shoutrrr: %w", err)
	}

	client := &http.Client{Timeout: config.Client.Timeout}
	defer client.CloseIdleConnections()
	if *config.Logger.Level == log.LevelDebug {
		client = rpc.NewLoggingClient(client, logger.New(log.SetComponent("http")))
	}

	sessionLogger := logger.New(log.SetComponent("session"))
	cli := &commands{
		config:          config,
		client:          client,
		console:         prompt.New(stdio.in, stdio.err),
		stdout:          stdio.out,
		credentialsFile: credentials.NewFile(*config.Paths.CredentialsFile),
		sessionFile:     session.New(*config.Paths.SessionFile, sessionLogger),
		notifier:        shoutrrrClient,
		logger:          logger,
	}

	var commandArgs []string
	if len(args) > 2 { //nolint:gomnd
		commandArgs = args[2:]
	}
	return cli.run(ctx, command, commandArgs)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case stderrors.Is(err, errors.ErrNoSession):
		return exitNoSession
	case stderrors.Is(err, errors.ErrInput),
		stderrors.Is(err, errors.ErrNoCredentials):
		return exitMissingInput
	case stderrors.Is(err, ErrLoginFailed):
		return exitLoginFailed
	default:
		return exitFailure
	}
}

func printSplash(w io.Writer, buildInfo models.BuildInformation) {
	splashSettings := gosplash.Settings{
		User:       "qdm12",
		Repository: "vtoctl",
		Version:    buildInfo.Version,
		Commit:     buildInfo.Commit,
		BuildDate:  buildInfo.Date,
	}
	for _, line := range gosplash.MakeLines(splashSettings) {
		fmt.Fprintln(w, line)
	}
}

func readConfig(reader *reader.Reader, logger log.LoggerInterface) (
	config config.Config, err error) {
	err = config.Read(reader, logger)
	if err != nil {
		return config, fmt.Errorf("reading settings: %w", err)
	}
	config.SetDefaults()
	err = config.Validate()
	if err != nil {
		return config, fmt.Errorf("settings validation: %w", err)
	}

	logger.Patch(config.Logger.ToOptions()...)
	logger.Info(config.String())

	return config, nil
}
