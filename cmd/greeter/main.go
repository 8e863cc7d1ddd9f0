package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/upb/greeting-app/app"
	"github.com/upb/greeting-app/config"
	"github.com/upb/greeting-app/internal/auth"
	"github.com/upb/greeting-app/internal/observability"
	"github.com/upb/greeting-app/routes"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdout)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "greeter",
		Short:         "Greeting app server",
		Long:          "Serves the greeting page and its mock JSON API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newRolesCmd(stdout))

	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newRolesCmd(stdout io.Writer) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Print the role to permission table",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printRoles(stdout, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")

	return cmd
}

func printRoles(w io.Writer, output string) error {
	switch output {
	case "json":
		table := make(map[auth.Role][]auth.Permission, len(auth.Roles()))
		for _, role := range auth.Roles() {
			table[role] = auth.PermissionsFor(role)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(table)
	case "table":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ROLE\tPERMISSIONS")
		for _, role := range auth.Roles() {
			perms := auth.PermissionsFor(role)
			names := make([]string, 0, len(perms))
			for _, p := range perms {
				names = append(names, string(p))
			}
			fmt.Fprintf(tw, "%s\t%s\n", role, strings.Join(names, ", "))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported output format %q: use 'table' or 'json'", output)
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := initLogger(cfg)
	if err != nil {
		return err
	}

	deps, err := app.NewDependencies(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize dependencies", zap.Error(err))
		return err
	}

	appLn, err := net.Listen("tcp", cfg.Server.Address())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Server.Address(), err)
	}

	var metricsLn net.Listener
	if cfg.Observability.MetricsEnabled {
		metricsLn, err = net.Listen("tcp", cfg.MetricsAddress())
		if err != nil {
			_ = appLn.Close()
			return fmt.Errorf("listen on %s: %w", cfg.MetricsAddress(), err)
		}
	}

	logger.Info(fmt.Sprintf("Server running on port %d in %s mode", cfg.Server.Port, cfg.Environment),
		zap.String("address", cfg.Server.Address()),
		zap.Bool("metrics_enabled", cfg.Observability.MetricsEnabled))

	return serve(ctx, deps, appLn, metricsLn)
}

func initLogger(cfg *config.Config) (*zap.Logger, error) {
	return observability.NewLogger(cfg.Observability.LogLevel, cfg.Observability.LogFormat)
}

// serve runs the app server and, when metricsLn is non-nil, the metrics
// server until ctx is cancelled or either server fails.
func serve(ctx context.Context, deps *app.Dependencies, appLn, metricsLn net.Listener) error {
	cfg := deps.Config
	logger := deps.Logger

	type server struct {
		name string
		srv  *http.Server
		ln   net.Listener
	}

	servers := []server{{
		name: "app",
		srv: &http.Server{
			Handler:           routes.SetupRoutes(deps),
			ReadTimeout:       cfg.Server.ReadTimeout,
			WriteTimeout:      cfg.Server.WriteTimeout,
			ReadHeaderTimeout: 5 * time.Second,
		},
		ln: appLn,
	}}

	if metricsLn != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", observability.Handler(deps.MetricsRegistry))
		servers = append(servers, server{
			name: "metrics",
			srv:  &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
			ln:   metricsLn,
		})
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, s := range servers {
		g.Go(func() error {
			logger.Info("listening", zap.String("server", s.name), zap.String("address", s.ln.Addr().String()))
			if err := s.srv.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("%s server: %w", s.name, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		var errs []error
		for _, s := range servers {
			if err := s.srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("%s server shutdown: %w", s.name, err))
			}
		}
		if err := deps.Close(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
