// Command snakesladders serves snakes-and-ladders board resolution.
//
// Commands:
//  1. "server" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "resolve" – resolves landed-on squares from the command line
//  4. "validate" – validates every board configuration in the config directory
//  5. "boards" – lists the available boards
//
// Flags control host/port, config directory, debug logging, version output,
// and optional ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/mcp-training/snakesladders/api"
	"github.com/wricardo/mcp-training/snakesladders/game/config"
	"github.com/wricardo/mcp-training/snakesladders/game/engine"
	"github.com/wricardo/mcp-training/snakesladders/game/service"
	"github.com/wricardo/mcp-training/snakesladders/transport/mcp"
	"github.com/wricardo/mcp-training/snakesladders/transport/websocket"
	"github.com/wricardo/mcp-training/snakesladders/validate"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Snakes and Ladders Board Server"
)

// settings is the merged view of environment variables and flags
type settings struct {
	Host         string
	Port         int
	ConfigDir    string
	NgrokEnabled bool
	NgrokAuth    string
	NgrokDomain  string
}

// main loads .env, then runs the command line application.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("Error loading .env file: %v", err)
		}
	} else {
		log.Debug("Loaded environment variables from .env file")
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp builds the command tree. Root flags are visible to every command.
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "snakesladders",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "HTTP server port"},
			&cli.StringFlag{Name: "host", Value: "localhost", Usage: "HTTP server host"},
			&cli.StringFlag{Name: "config-dir", Usage: "Directory containing board configurations (default: $CONFIG_DIR or configs)"},
			&cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
			&cli.BoolFlag{Name: "ngrok", Usage: "Enable ngrok tunnel"},
			&cli.StringFlag{Name: "ngrok-auth", Usage: "Ngrok auth token (or use NGROK_AUTHTOKEN env var)"},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "Custom ngrok domain (optional)"},
		},
		Action: serverAction,
		Commands: []*cli.Command{
			{
				Name:    "server",
				Aliases: []string{"http"},
				Usage:   "Run HTTP server with API, WebSocket, and MCP endpoint (default)",
				Action:  serverAction,
			},
			{
				Name:    "stdio-mcp",
				Aliases: []string{"mcp-stdio", "mcp"},
				Usage:   "Run MCP stdio server with internal HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					s, boardService, err := setup(cmd)
					if err != nil {
						return err
					}
					return runStdioMCPWithInternalServer(s, boardService)
				},
			},
			{
				Name:      "resolve",
				Usage:     "Resolve landed-on squares against a board",
				ArgsUsage: "SQUARE [SQUARE...]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "board", Usage: "Board config_id (default board if empty)"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					_, boardService, err := setup(cmd)
					if err != nil {
						return err
					}
					return runResolve(ctx, os.Stdout, boardService, cmd.String("board"), cmd.Args().Slice())
				},
			},
			{
				Name:  "validate",
				Usage: "Validate every board configuration in the config directory",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					s, err := loadSettings(cmd)
					if err != nil {
						return err
					}
					return runValidate(os.Stdout, s.ConfigDir)
				},
			},
			{
				Name:  "boards",
				Usage: "List available boards",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					_, boardService, err := setup(cmd)
					if err != nil {
						return err
					}
					return runBoards(ctx, os.Stdout, boardService)
				},
			},
		},
	}
}

// loadSettings merges environment variables with flags; flags win.
func loadSettings(cmd *cli.Command) (*settings, error) {
	env, err := config.LoadEnvironment()
	if err != nil {
		return nil, err
	}

	log.SetLevel(env.Level())
	if cmd.Bool("debug") {
		log.SetLevel(log.DebugLevel)
		log.SetReportCaller(true)
	}

	s := &settings{
		Host:         cmd.String("host"),
		Port:         int(cmd.Int("port")),
		ConfigDir:    env.ConfigDir,
		NgrokEnabled: env.NgrokEnabled || cmd.Bool("ngrok"),
		NgrokAuth:    env.NgrokToken(),
		NgrokDomain:  env.NgrokDomain,
	}
	if dir := cmd.String("config-dir"); dir != "" {
		s.ConfigDir = dir
	}
	if auth := cmd.String("ngrok-auth"); auth != "" {
		s.NgrokAuth = auth
	}
	if domain := cmd.String("ngrok-domain"); domain != "" {
		s.NgrokDomain = domain
	}
	return s, nil
}

// setup loads settings and initializes the board service
func setup(cmd *cli.Command) (*settings, service.BoardService, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}

	log.Infof("Starting %s v%s (command: %s)", AppName, Version, cmd.Name)

	boardService, err := initializeServices(s.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	return s, boardService, nil
}

// initializeServices wires the config manager and the board service.
func initializeServices(configDir string) (service.BoardService, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	return service.NewBoardService(configManager), nil
}

func serverAction(ctx context.Context, cmd *cli.Command) error {
	s, boardService, err := setup(cmd)
	if err != nil {
		return err
	}
	return runHTTPServer(ctx, s, boardService)
}

// mcpHandler serves MCP JSON-RPC messages posted to /mcp
func mcpHandler(mcpClient *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	}
}

// newRouter combines the REST API, WebSocket hub and the /mcp endpoint
func newRouter(boardService service.BoardService, hub *websocket.Hub, baseURL string) http.Handler {
	apiServer := api.NewServer(boardService, hub)
	mcpClient := mcp.NewClient(baseURL)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", mcpHandler(mcpClient))
	return mainRouter
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled (via flag or environment), it also provisions a public tunnel.
func runHTTPServer(ctx context.Context, s *settings, boardService service.BoardService) error {
	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Stop()

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	mainRouter := newRouter(boardService, hub, fmt.Sprintf("http://%s", addr))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	serveErr := make(chan error, 1)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Infof("HTTP server listening on %s", addr)
		log.Infof("REST API: http://%s/api", addr)
		log.Infof("WebSocket: ws://%s/ws?board=<config_id>", addr)
		log.Infof("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	if s.NgrokEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, s, mainRouter)
		}()
	}

	var runErr error
	select {
	case sig := <-stop:
		log.Infof("Received signal: %v. Shutting down...", sig)
	case runErr = <-serveErr:
	case <-ctx.Done():
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warnf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Info("Server stopped")
	return runErr
}

// runNgrokTunnel serves handler through an ngrok tunnel until ctx is done
func runNgrokTunnel(ctx context.Context, s *settings, handler http.Handler) {
	if s.NgrokAuth == "" {
		log.Warn("Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Info("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if s.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(s.NgrokDomain))
		log.Infof("Using custom ngrok domain: %s", s.NgrokDomain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx,
		tunnel,
		ngrok.WithAuthtoken(s.NgrokAuth),
	)
	if err != nil {
		log.Errorf("Failed to start ngrok tunnel: %v", err)
		return
	}
	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Warnf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Infof("🚀 Ngrok tunnel established: %s", ngrokURL)
	log.Infof("  REST API (ngrok): %s/api", ngrokURL)
	log.Infof("  WebSocket (ngrok): %s/ws?board=<config_id>", ngrokURL)
	log.Infof("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed && ctx.Err() == nil {
		log.Errorf("Ngrok server error: %v", err)
	}
	log.Info("Ngrok tunnel closed")
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It tries to reuse an external API on the configured port; if unavailable, it
// starts a minimal internal HTTP API bound to a random loopback port and targets that.
func runStdioMCPWithInternalServer(s *settings, boardService service.BoardService) error {
	externalURL := fmt.Sprintf("http://localhost:%d", s.Port)
	log.Infof("Checking for external API server at %s...", externalURL)

	baseURL := externalURL
	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/api/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Infof("External API server found at %s, using it for MCP", externalURL)
	} else {
		if resp != nil {
			resp.Body.Close()
		}
		log.Info("No external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		internalAddr := listener.Addr().String()
		log.Infof("Starting internal HTTP server on %s for MCP stdio", internalAddr)

		hub := websocket.NewHub()
		go hub.Run()
		defer hub.Stop()

		httpServer := &http.Server{
			Handler: api.NewServer(boardService, hub),
		}
		defer httpServer.Close()

		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Errorf("Internal HTTP server error: %v", err)
			}
		}()

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Infof("MCP stdio server ready (API at %s)", baseURL)

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// runResolve resolves each square argument and prints one line per square
func runResolve(ctx context.Context, w io.Writer, boardService service.BoardService, board string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("at least one square is required")
	}

	squares := make([]engine.Square, 0, len(args))
	for _, arg := range args {
		n, err := strconv.ParseUint(arg, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid square %q: must be an unsigned 32-bit integer", arg)
		}
		squares = append(squares, engine.Square(n))
	}

	for _, square := range squares {
		result, err := boardService.Resolve(ctx, board, square)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("%d -> %s", result.Landed, result.Action)
		if result.Portal != nil {
			line += fmt.Sprintf(" via %s to %d", result.Portal.Kind, result.Portal.Destination)
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

// runValidate validates every config file and fails when any is invalid
func runValidate(w io.Writer, configDir string) error {
	results, err := validate.Dir(configDir)
	if err != nil {
		return err
	}
	if !validate.Report(w, results) {
		return cli.Exit("", 1)
	}
	return nil
}

// runBoards prints one line per available board
func runBoards(ctx context.Context, w io.Writer, boardService service.BoardService) error {
	boards, err := boardService.ListBoards(ctx)
	if err != nil {
		return err
	}
	for _, b := range boards {
		fmt.Fprintf(w, "%-12s size=%-5d ladders=%-3d snakes=%-3d %s\n",
			b.ConfigID, b.BoardSize, b.Ladders, b.Snakes, b.Description)
	}
	return nil
}
