//go:build !js && !wasm

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Its-donkey/cloudhub-site/internal/config"
	"github.com/Its-donkey/cloudhub-site/internal/server"
	"github.com/Its-donkey/cloudhub-site/internal/storage"
	"github.com/Its-donkey/cloudhub-site/logging"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file (optional)")
	listen := flag.String("listen", "", "override the listen address")
	assets := flag.String("assets", "", "override the directory containing index.html and main.wasm")
	flag.Parse()

	if err := run(*configPath, *listen, *assets); err != nil {
		fmt.Fprintf(os.Stderr, "site-server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, listen, assets string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if listen != "" {
		cfg.Listen = listen
	}
	if assets != "" {
		cfg.Assets = assets
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := logging.ParseLevel(cfg.Log.Level)
	writers := []io.Writer{os.Stdout}
	if cfg.Log.Dir != "" {
		fileWriter, err := logging.NewFileWriter(cfg.Log.Dir, "site-server.log", cfg.Log.MaxSizeMB, cfg.Log.MaxFiles)
		if err != nil {
			return err
		}
		defer fileWriter.Close()
		writers = append(writers, fileWriter)
	}
	logger := logging.New("site-server", level, writers...)

	store, err := storage.NewJSONStore(cfg.InquiriesPath())
	if err != nil {
		return err
	}

	srv, err := server.New(server.Options{
		AssetsDir:       cfg.Assets,
		ContactEndpoint: cfg.ContactEndpoint(),
		AdminToken:      cfg.AdminToken,
		AllowedOrigins:  cfg.Contact.AllowedOrigins,
		Store:           store,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx, cfg.Listen)
}
