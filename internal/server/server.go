package server

import (
	"fmt"
	"net"
	"os/exec"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gensql-labs/gensql/internal/config"
	"github.com/gensql-labs/gensql/internal/llm"
)

// DefaultPort matches the port the original web UI served on.
const DefaultPort = 8501

const maxUploadBytes = 50 * 1024 * 1024

// Server exposes schema conversion, data generation and dataset analysis
// over HTTP. The LLM service may be nil when no API key is configured; the
// conversion endpoints then report that instead of failing at startup.
type Server struct {
	app *fiber.App
	cfg *config.Config
	llm *llm.Service
}

func New(cfg *config.Config, llmService *llm.Service) *Server {
	app := fiber.New(fiber.Config{
		AppName:   "GenSQL",
		BodyLimit: maxUploadBytes,
	})

	s := &Server{app: app, cfg: cfg, llm: llmService}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.app.Group("/api")

	api.Get("/health", s.handleHealth)
	api.Get("/models", s.handleModels)
	api.Get("/examples", s.handleExamples)

	api.Post("/schema/parse", s.handleParseSchema)
	api.Post("/schema/validate", s.handleValidateSchema)

	api.Post("/convert", s.handleConvert)
	api.Post("/suggestions", s.handleSuggestions)

	api.Post("/generate", s.handleGenerate)
	api.Post("/analyze", s.handleAnalyze)
	api.Post("/synthesize", s.handleSynthesize)
	api.Post("/download", s.handleDownload)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start listens on the given port, falling back to the next free one, and
// optionally opens the browser.
func (s *Server) Start(port int, openBrowser bool) error {
	available := findAvailablePort(port)
	if available != port {
		fmt.Printf("Port %d is in use, using port %d instead\n", port, available)
		port = available
	}

	url := fmt.Sprintf("http://localhost:%d", port)
	fmt.Printf("GenSQL API starting on %s\n", url)

	if openBrowser {
		go openURL(url)
	}

	return s.app.Listen(fmt.Sprintf(":%d", port))
}

func findAvailablePort(startPort int) int {
	for port := startPort; port < startPort+100; port++ {
		if isPortAvailable(port) {
			return port
		}
	}
	return startPort
}

func isPortAvailable(port int) bool {
	addr := fmt.Sprintf(":%d", port)

	ln, err := net.Listen("tcp4", addr)
	if err != nil {
		return false
	}
	ln.Close()

	time.Sleep(10 * time.Millisecond)

	conn, err := net.DialTimeout("tcp4", fmt.Sprintf("127.0.0.1:%d", port), 100*time.Millisecond)
	if err == nil {
		conn.Close()
		return false
	}

	return true
}

func openURL(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	case "darwin":
		cmd = "open"
		args = []string{url}
	default:
		cmd = "xdg-open"
		args = []string{url}
	}

	return exec.Command(cmd, args...).Start()
}
