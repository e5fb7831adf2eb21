package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

type procConfig struct {
	Name string
	Args []string
	Env  []string
}

// Dev runner: builds the browser bundle into web/ and then serves the site.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	build := []procConfig{
		{
			Name: "build-site-wasm",
			Args: []string{"go", "build", "-o", "web/main.wasm", "./cmd/site-wasm"},
			Env:  []string{"GOOS=js", "GOARCH=wasm"},
		},
		{
			Name: "copy-wasm-exec",
			Args: []string{"sh", "-c", `cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" web/`},
		},
	}
	serve := []procConfig{
		{
			Name: "site-server",
			Args: []string{
				"go", "run", "./cmd/site-server",
				"-listen", "127.0.0.1:4173",
				"-assets", "web",
			},
		},
	}

	for _, cfg := range build {
		if err := runOne(ctx, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "cloudhub-site: %v\n", err)
			os.Exit(1)
		}
	}
	if err := runAll(ctx, serve); err != nil {
		fmt.Fprintf(os.Stderr, "cloudhub-site exited with error: %v\n", err)
		os.Exit(1)
	}
}

func command(ctx context.Context, cfg procConfig) *exec.Cmd {
	cmd := exec.CommandContext(ctx, cfg.Args[0], cfg.Args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if len(cfg.Env) > 0 {
		cmd.Env = append(append([]string{}, os.Environ()...), cfg.Env...)
	}
	return cmd
}

func runOne(ctx context.Context, cfg procConfig) error {
	if err := command(ctx, cfg).Run(); err != nil {
		return fmt.Errorf("%s: %w", cfg.Name, err)
	}
	return nil
}

func runAll(ctx context.Context, procs []procConfig) error {
	if len(procs) == 0 {
		return fmt.Errorf("no processes configured")
	}
	var wg sync.WaitGroup
	errCh := make(chan error, len(procs))

	for _, cfg := range procs {
		wg.Add(1)
		go func(cfg procConfig) {
			defer wg.Done()
			cmd := command(ctx, cfg)
			if err := cmd.Start(); err != nil {
				errCh <- fmt.Errorf("%s start: %w", cfg.Name, err)
				return
			}
			if err := cmd.Wait(); err != nil {
				// Interrupted runs exit non-zero.
				select {
				case <-ctx.Done():
					return
				default:
				}
				errCh <- fmt.Errorf("%s exited: %w", cfg.Name, err)
			}
		}(cfg)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	case err := <-errCh:
		return err
	case <-done:
	}
	return nil
}
