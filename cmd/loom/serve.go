package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/loom-ui/loom"
	"github.com/loom-ui/loom/el"
	"github.com/loom-ui/loom/internal/config"
	"github.com/loom-ui/loom/pkg/dom"
	"github.com/loom-ui/loom/pkg/push"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		address    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a demo application",
		Long: `Start a loom server with a demo counter UI.

The demo holds a counter per session on the server; clicks on the
increment button round-trip over the sync WebSocket and come back as
incremental change batches. Sessions snapshot to an in-memory store on
disconnect and resume when the client reconnects in time.

Examples:
  loom serve
  loom serve --address :8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath, address)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default: nearest loom.json)")
	cmd.Flags().StringVarP(&address, "address", "a", "", "Bind address (overrides config)")

	return cmd
}

func runServe(configPath, address string) error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return wdErr
		}
		cfg, err = config.Find(wd)
	}
	if err != nil {
		return err
	}
	if address != "" {
		cfg.Server.Address = address
	}

	app, err := loom.New(cfg, demoInit,
		loom.WithSnapshotStore(push.NewMemoryStore()),
		loom.WithResume(demoResume),
	)
	if err != nil {
		return err
	}

	printBanner()
	info("serving demo on http://%s", cfg.Server.Address)
	info("sync endpoint at %s", push.SyncPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.ListenAndServe(ctx); err != nil {
		return err
	}
	success("server stopped")
	return nil
}

// demoInit builds the counter UI for a fresh session.
func demoInit(s *loom.Session) error {
	var value, btn dom.Element
	card := el.Div(el.Class("counter"),
		el.H1(el.Text("loom counter")),
		el.Span(el.Ref(&value), el.ID("value"), el.Text("0")),
		el.Button(el.Ref(&btn), el.ID("increment"), el.Text("+1")),
	)
	if err := s.Document().AppendChild(card); err != nil {
		return err
	}
	return wireCounter(value, btn)
}

// demoResume re-registers the counter listener on a restored tree. The
// count survives in the span's text; only the listener needs rebuilding.
func demoResume(s *loom.Session) error {
	card, err := s.Document().Child(0)
	if err != nil {
		return err
	}
	value, err := card.Child(1)
	if err != nil {
		return err
	}
	btn, err := card.Child(2)
	if err != nil {
		return err
	}
	return wireCounter(value, btn)
}

func wireCounter(value, btn dom.Element) error {
	_, err := btn.AddEventListener("click", func(dom.Event) {
		n, _ := strconv.Atoi(value.Text())
		_ = value.SetText(strconv.Itoa(n + 1))
	})
	return err
}
