package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theirongolddev/budgetring/internal/server"
	"github.com/theirongolddev/budgetring/internal/source"

	"github.com/spf13/cobra"
)

var (
	flagServeAddr         string
	flagServeFile         string
	flagServeEventsBuffer int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a budget document over HTTP with live reload",
	RunE:  runServe,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of a running server",
	RunE:  runServeStatus,
}

func init() {
	serveCmd.PersistentFlags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().StringVarP(&flagServeFile, "file", "f", "", "Budget JSON file to serve (default: built-in sample)")
	serveCmd.Flags().IntVar(&flagServeEventsBuffer, "events-buffer", 200, "Max in-memory events retained")

	serveCmd.AddCommand(serveStatusCmd)
	rootCmd.AddCommand(serveCmd)
}

func serveAddr() string {
	if flagServeAddr != "" {
		return flagServeAddr
	}
	return loadConfig().Serve.Addr
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	addr := cfg.Serve.Addr
	if flagServeAddr != "" {
		addr = flagServeAddr
	}
	file := cfg.Serve.File
	if flagServeFile != "" {
		file = flagServeFile
	}

	level := slog.LevelInfo
	if flagQuiet {
		level = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	svc := server.New(server.Config{
		Addr:         addr,
		File:         file,
		EventsBuffer: flagServeEventsBuffer,
	})

	fmt.Printf("  budgetring serving on http://%s%s\n", addr, source.DefaultPath)
	if file != "" {
		fmt.Printf("  Watching %s for changes\n", file)
	} else {
		fmt.Println("  Serving the built-in sample budget (use --file to serve your own)")
	}
	fmt.Printf("  Status: budgetring serve status --addr %s\n", addr)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runServeStatus(_ *cobra.Command, _ []string) error {
	addr := serveAddr()
	fmt.Printf("  Address: http://%s\n", addr)

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/v1/status") //nolint:noctx // short status check
	if err != nil {
		fmt.Printf("  Server: unreachable (%v)\n", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("  Server: HTTP %d\n", resp.StatusCode)
		return nil
	}

	var st server.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		fmt.Printf("  Server: malformed response (%v)\n", err)
		return nil
	}

	fmt.Printf("  Instance: %s\n", st.InstanceID)
	fmt.Printf("  Started: %s\n", st.StartedAt.Local().Format(time.RFC3339))
	if st.File != "" {
		fmt.Printf("  File: %s\n", st.File)
	} else {
		fmt.Println("  File: built-in sample")
	}
	if st.LastLoadAt.IsZero() {
		fmt.Println("  Last load: pending")
	} else {
		fmt.Printf("  Last load: %s (%d loads)\n", st.LastLoadAt.Local().Format(time.RFC3339), st.LoadCount)
	}
	fmt.Printf("  Categories: %d\n", st.Categories)
	fmt.Printf("  Total: $%.2f\n", st.Total)
	fmt.Printf("  Events: %d  Subscribers: %d\n", st.EventCount, st.SubscriberCount)
	if st.LastError != "" {
		fmt.Printf("  Last error: %s\n", st.LastError)
	}
	return nil
}
