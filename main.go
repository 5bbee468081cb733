package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/juju/gnuflag"
	"github.com/juju/loggo"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/hatem32/Conway-s-Game-of-Life/session"
)

var logger = loggo.GetLogger("gol")

var errInterrupted = errors.New("interrupted")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "gol: %v\n", err)
		os.Exit(1)
	}
}

// run starts an interactive session and blocks until the user exits, the
// input ends or the process is interrupted.
func run(args []string, stdin io.Reader, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if errors.Cause(err) == flag.ErrHelp {
		return nil
	}
	if err != nil {
		return err
	}

	config, err := buildConfig(opts)
	if err != nil {
		return err
	}
	if err := configureLogging(config); err != nil {
		return err
	}

	sess, err := session.New(config, stdin, stdout, newRandomSource(config.Seed))
	if err != nil {
		return err
	}
	if opts.patternPath != "" {
		if err := sess.LoadPattern(opts.patternPath); err != nil {
			return errors.Wrap(err, "[run] cannot load initial pattern")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eg, ctx := errgroup.WithContext(ctx)

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	eg.Go(func() error {
		select {
		case sig := <-sigChan:
			logger.Infof("received %v", sig)
			fmt.Fprintln(stdout, "\nShutting down gracefully...")
			return errInterrupted
		case <-ctx.Done():
			return nil
		}
	})
	eg.Go(func() error {
		defer cancel()
		return sess.Run(ctx)
	})

	err = eg.Wait()
	if errors.Is(err, errInterrupted) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
