package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/rpg-raid/internal/catalog"
	"github.com/KirkDiggler/rpg-raid/internal/config"
	"github.com/KirkDiggler/rpg-raid/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-raid/internal/handlers/raid/v1alpha1"
	"github.com/KirkDiggler/rpg-raid/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-raid/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-raid/internal/pkg/roller"
)

var (
	grpcPort   int
	redisAddr    string
	redisCluster []string
	redisTLS     bool
	resultsDB    string
	catalogDir   string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the raid engine gRPC server with the raid and forge services.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (default from RPG_RAID_PORT)")
	serverCmd.Flags().StringVar(&redisAddr, "redis", "", "redis address; in-memory storage when empty")
	serverCmd.Flags().StringSliceVar(&redisCluster, "redis-cluster", nil, "redis cluster addresses, used instead of --redis")
	serverCmd.Flags().BoolVar(&redisTLS, "redis-tls", false, "connect to redis over TLS")
	serverCmd.Flags().StringVar(&resultsDB, "results-db", "", "sqlite file for raid results; in-memory when empty")
	serverCmd.Flags().StringVar(&catalogDir, "catalog", "", "catalog directory to load and watch instead of the embedded one")
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyServerFlags(cmd, cfg)

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	eng, err := newEngine(ctx, cfg, engineOptions{
		Clock:  clock.New(),
		Roller: roller.NewSeeded(uint64(time.Now().UnixNano())),
		IDs:    idgen.NewUUID("raid"),
	})
	if err != nil {
		return err
	}
	defer eng.Close()

	rpgtoolkit.SubscribeLogger(eng.bus, slog.Default())

	if cfg.CatalogDir != "" {
		watcher, err := catalog.NewWatcher(&catalog.WatcherConfig{
			Dir:   cfg.CatalogDir,
			Store: eng.store,
			OnReload: func(c *catalog.Catalog) {
				slog.Info("Catalog reloaded",
					"enchantments", len(c.Enchantments()),
					"bosses", len(c.Bosses()))
			},
		})
		if err != nil {
			return fmt.Errorf("failed to watch catalog: %w", err)
		}
		go func() {
			if err := watcher.Run(ctx); err != nil {
				log.Printf("Catalog watcher stopped: %v", err)
			}
		}()
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	raidHandler, err := v1alpha1.NewRaidHandler(&v1alpha1.RaidHandlerConfig{
		RaidService: eng.raid,
	})
	if err != nil {
		return fmt.Errorf("failed to create raid handler: %w", err)
	}

	forgeHandler, err := v1alpha1.NewForgeHandler(&v1alpha1.ForgeHandlerConfig{
		ForgeService: eng.forge,
	})
	if err != nil {
		return fmt.Errorf("failed to create forge handler: %w", err)
	}

	v1alpha1.RegisterRaidServiceServer(srv, raidHandler)
	v1alpha1.RegisterForgeServiceServer(srv, forgeHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.RaidServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ForgeServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("gRPC server starting on port %d...", cfg.Port)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down gRPC server...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			log.Println("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			log.Println("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

// applyServerFlags lets explicitly set flags win over the environment
func applyServerFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port = grpcPort
	}
	if flags.Changed("redis") {
		cfg.RedisAddr = redisAddr
		cfg.RedisClusterAddrs = nil
	}
	if flags.Changed("redis-cluster") {
		cfg.RedisClusterAddrs = redisCluster
		cfg.RedisAddr = ""
	}
	if flags.Changed("redis-tls") {
		cfg.RedisTLS = redisTLS
	}
	if flags.Changed("results-db") {
		cfg.ResultsDB = resultsDB
	}
	if flags.Changed("catalog") {
		cfg.CatalogDir = catalogDir
	}
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
