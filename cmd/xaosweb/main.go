// Command xaosweb serves the zoomer to browsers. Each websocket
// connection gets its own surface and controller; the browser sends
// pointer and touch events as JSON and receives raw RGBA frames.
package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/coder/websocket"

	"github.com/joshvictor1024/go-xaos"
	"github.com/joshvictor1024/go-xaos/pkg/render"
)

//go:embed static
var static embed.FS

type config struct {
	addr     string
	session  sessionConfig
	logLevel slog.Level
}

func parseFlags() config {
	cfg := config{session: sessionConfig{mode: render.Approximation}}
	flag.StringVar(&cfg.addr, "addr", ":8080", "listen address")
	flag.StringVar(&cfg.session.surface, "surface", "image", "surface implementation: image or gg")
	flag.IntVar(&cfg.session.width, "width", 640, "initial surface width")
	flag.IntVar(&cfg.session.height, "height", 480, "initial surface height")
	flag.TextVar(&cfg.session.mode, "mode", render.Approximation, "render mode while zooming: approximation or high-fidelity")
	flag.IntVar(&cfg.session.maxIter, "maxiter", 512, "maximum iterations per pixel")
	flag.IntVar(&cfg.session.fps, "fps", 30, "frames per second sent to each client")
	flag.IntVar(&cfg.session.workers, "workers", runtime.GOMAXPROCS(0), "render goroutines per session")
	flag.TextVar(&cfg.logLevel, "log-level", slog.LevelInfo, "log level")
	flag.Parse()
	return cfg
}

func main() {
	if err := run(parseFlags()); err != nil {
		fmt.Fprintln(os.Stderr, "xaosweb:", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	xaos.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.logLevel})))
	log := xaos.Logger()

	switch cfg.session.surface {
	case "image", "gg":
	default:
		return fmt.Errorf("unknown surface %q", cfg.session.surface)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	handler, err := newMux(cfg.session)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              cfg.addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.addr, "surface", cfg.session.surface)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newMux(cfg sessionConfig) (*http.ServeMux, error) {
	root, err := fs.Sub(static, "static")
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(cfg))
	mux.Handle("/", http.FileServer(http.FS(root)))
	return mux, nil
}

// websocketHandler runs one session per connection until either side
// goes away.
func websocketHandler(cfg sessionConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			xaos.Logger().Warn("accept websocket", "err", err)
			return
		}
		defer c.CloseNow()

		sess, err := newSession(c, cfg)
		if err != nil {
			xaos.Logger().Warn("new session", "err", err)
			c.Close(websocket.StatusInternalError, "session setup failed")
			return
		}

		xaos.Logger().Info("session start", "remote", r.RemoteAddr)
		err = sess.run(r.Context())
		switch {
		case err == nil, errors.Is(err, context.Canceled), websocket.CloseStatus(err) != -1:
			c.Close(websocket.StatusNormalClosure, "")
		default:
			xaos.Logger().Warn("session", "remote", r.RemoteAddr, "err", err)
		}
		xaos.Logger().Info("session end", "remote", r.RemoteAddr)
	}
}
