// Command lmsctl is a terminal client for the LMS API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/golang/glog"

	"github.com/mind-engage/mindengage-classroom/internal/api"
	"github.com/mind-engage/mindengage-classroom/internal/config"
	"github.com/mind-engage/mindengage-classroom/internal/console"
	"github.com/mind-engage/mindengage-classroom/internal/db"
	"github.com/mind-engage/mindengage-classroom/internal/session"
	"github.com/mind-engage/mindengage-classroom/internal/storage"
)

func main() {
	flag.Parse()
	code := run()
	glog.Flush()
	os.Exit(code)
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	items, closeItems, err := openItems(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() {
		if err := closeItems(); err != nil {
			glog.Warningf("close storage: %v", err)
		}
	}()

	exports, err := storage.NewFSStore(cfg.ExportDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	sess := session.NewStore(items)
	sess.Restore(ctx)
	client := api.New(api.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.HTTPTimeout, Tokens: sess})
	cli := &commandLine{console: console.New(client, sess, exports), in: os.Stdin, out: os.Stdout}

	err = cli.run(ctx, append([]string{"lmsctl"}, flag.Args()...))
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errHelp):
		return 2
	case errors.Is(err, session.ErrLoginRequired):
		fmt.Fprintln(os.Stderr, "Please sign in first: lmsctl login -username NAME")
		return 1
	default:
		glog.V(1).Infof("command failed: %+v", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
}

// itemStore is where the session record is kept.
type itemStore interface {
	session.Storage
	storage.ItemStore
}

// openItems opens the configured session storage and returns its closer.
func openItems(ctx context.Context, cfg config.Config) (itemStore, func() error, error) {
	noop := func() error { return nil }
	switch cfg.StorageDriver {
	case config.StorageSQLite:
		if err := os.MkdirAll(cfg.StateDir, 0o700); err != nil {
			return nil, nil, err
		}
		h, err := db.Open(ctx, db.DriverSQLite, cfg.SQLiteDSN())
		if err != nil {
			return nil, nil, err
		}
		return storage.NewSQLStore(h, db.DriverSQLite), h.Close, nil
	case config.StoragePostgres:
		h, err := db.Open(ctx, db.DriverPostgres, cfg.StorageDSN)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewSQLStore(h, db.DriverPostgres), h.Close, nil
	default:
		fs, err := storage.NewFSStore(cfg.StateDir)
		if err != nil {
			return nil, nil, err
		}
		return fs, noop, nil
	}
}
