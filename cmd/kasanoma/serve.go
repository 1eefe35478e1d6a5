package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/michsethowusu/kasanoma/internal/audio"
	"github.com/michsethowusu/kasanoma/internal/config"
	"github.com/michsethowusu/kasanoma/internal/server/grpc"
	kasanomahttp "github.com/michsethowusu/kasanoma/internal/server/http"
	"github.com/michsethowusu/kasanoma/internal/voice"
	"github.com/michsethowusu/kasanoma/internal/xfs"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		httpPort int
		grpcPort int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and gRPC health servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load(true)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("http-port") {
				cfg.Server.HTTPPort = httpPort
			}
			if cmd.Flags().Changed("grpc-port") {
				cfg.Server.GRPCPort = grpcPort
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, root, cfg)
		},
	}

	cmd.Flags().IntVar(&httpPort, "http-port", 0, "HTTP port to listen on (default from config)")
	cmd.Flags().IntVar(&grpcPort, "grpc-port", 0, "gRPC port to listen on, 0 disables (default from config)")

	return cmd
}

func serve(ctx context.Context, root *rootOptions, cfg *config.Config) error {
	store, err := audio.NewStore(cfg.Output.Dir, cfg.Output.TTL)
	if err != nil {
		return err
	}
	go store.Start()
	defer store.Close()

	a, err := newApp(cfg, store)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, current := a.voices.Snapshot(); current.IsZero() {
		slog.Warn("No voice models found", "path", cfg.Voices.Dir)
	}

	if xfs.IsFile(root.configPath) {
		_, err := config.NewWatcher(ctx, root.configPath, root.schemaPath, func(next *config.Config, err error) {
			if err != nil {
				slog.Error("Failed to reload config", "error", err)
				return
			}

			if voiceOptions(next) != a.voices.Options() {
				if err := a.voices.Reconfigure(voiceOptions(next)); err != nil {
					slog.Error("Failed to apply voice settings", "error", err)
				}
			}
		})
		if err != nil {
			return err
		}
		slog.Info("Config loaded successfully", "config", root.configPath)
	}

	if cfg.Voices.Watch {
		if w, err := voice.NewWatcher(a.voices); err != nil {
			slog.Warn("Voice directory is not watched", "path", cfg.Voices.Dir, "error", err)
		} else {
			go w.Run(ctx)
		}
	}

	httpSrv := kasanomahttp.NewServer(kasanomahttp.Options{
		Host:             cfg.Server.Host,
		Port:             cfg.Server.HTTPPort,
		CORSOrigins:      cfg.Server.CORSOrigins,
		RateLimit:        cfg.Server.RateLimit,
		MaxUploadBytes:   cfg.Upload.MaxBytes,
		UploadExtensions: cfg.Upload.Extensions,
	}, a.tts, store)

	status := a.tts.Status()
	slog.Info("Starting Kasanoma TTS server",
		"system", status.System,
		"piper", status.PiperPath,
		"piper_exists", status.PiperExists,
		"voices", status.VoiceCount,
		"output", store.Dir(),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return httpSrv.ListenAndServe(ctx) })
	if cfg.Server.GRPCPort > 0 {
		grpcSrv := grpc.NewServer(cfg.Server.Host, cfg.Server.GRPCPort, a.voices)
		g.Go(func() error { return grpcSrv.ListenAndServe(ctx) })
	}

	return g.Wait()
}
