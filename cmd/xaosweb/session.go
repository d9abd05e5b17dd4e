package main

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/joshvictor1024/go-xaos"
	"github.com/joshvictor1024/go-xaos/pkg/fractal"
	"github.com/joshvictor1024/go-xaos/pkg/frame"
	"github.com/joshvictor1024/go-xaos/pkg/input"
	"github.com/joshvictor1024/go-xaos/pkg/render"
	"github.com/joshvictor1024/go-xaos/pkg/surface/ggsurface"
	"github.com/joshvictor1024/go-xaos/pkg/surface/imagesurface"
	"github.com/joshvictor1024/go-xaos/pkg/types"
	"github.com/joshvictor1024/go-xaos/pkg/zoom"
)

// Sizes above this are refused; a browser asking for more is misbehaving.
const maxSurfaceSide = 4096

// message is one client-to-server websocket message. Input messages
// carry an input.Kind name in Type; "resize" and "mode" configure the
// session.
type message struct {
	Type   string        `json:"type"`
	Button int           `json:"button,omitempty"`
	X      float64       `json:"x,omitempty"`
	Y      float64       `json:"y,omitempty"`
	Points []types.Point `json:"points,omitempty"`
	Width  int           `json:"width,omitempty"`
	Height int           `json:"height,omitempty"`
	Mode   string        `json:"mode,omitempty"`
}

func isMove(m message) bool {
	return m.Type == "pointermove" || m.Type == "touchmove"
}

// webSurface is a surface whose pixels can be sent to the browser.
type webSurface interface {
	render.Surface
	Frames() uint64
}

func newSurface(kind string, w, h int) (webSurface, error) {
	switch kind {
	case "image":
		return imagesurface.New(w, h), nil
	case "gg":
		return ggsurface.New(w, h), nil
	default:
		return nil, fmt.Errorf("unknown surface %q", kind)
	}
}

// pixels returns the surface's RGBA bytes, row-major without padding.
func pixels(s webSurface) []byte {
	switch s := s.(type) {
	case *imagesurface.Surface:
		return s.Image().Pix
	case *ggsurface.Surface:
		return s.GG().ResizeTarget().Data()
	}
	return nil
}

type sessionConfig struct {
	surface       string
	width, height int
	mode          render.Mode
	maxIter       int
	fps           int
	workers       int
}

// session serves one websocket connection. Input arrives on the reader
// goroutine and is handed to the loop goroutine through queue; everything
// else runs on the loop goroutine.
type session struct {
	conn       *websocket.Conn
	surface    webSurface
	dispatcher input.Dispatcher
	loop       frame.Loop
	ctrl       *zoom.Controller
	queue      *types.ControlledQueue[message]
	interval   time.Duration
	sent       uint64
	buf        []byte
}

func newSession(conn *websocket.Conn, cfg sessionConfig) (*session, error) {
	s, err := newSurface(cfg.surface, cfg.width, cfg.height)
	if err != nil {
		return nil, err
	}
	fc := fractal.NewMandelbrot()
	fc.MaxIter = cfg.maxIter

	sess := &session{
		conn:     conn,
		surface:  s,
		queue:    types.NewControlledQueue[message](),
		interval: time.Second / time.Duration(max(1, cfg.fps)),
	}
	sess.ctrl, err = zoom.New(s, &sess.dispatcher, &sess.loop, fc,
		zoom.WithRenderMode(cfg.mode),
		zoom.WithEngineOptions(render.WithWorkers(cfg.workers)),
	)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *session) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.queue.Close()
	defer s.close()

	go s.read(ctx)

	start := time.Now()
	s.ctrl.Start()
	if err := s.flush(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case <-s.queue.Done():
			return nil
		case <-ticker.C:
		}

		for {
			canRecv, m, ok := s.queue.AttemptRecv(false)
			if !ok {
				return nil
			}
			if !canRecv {
				break
			}
			s.apply(m)
		}
		s.loop.Fire(time.Since(start))
		if err := s.flush(ctx); err != nil {
			return err
		}
	}
}

func (s *session) close() {
	s.ctrl.Dispose()
	if c, ok := s.surface.(io.Closer); ok {
		if err := c.Close(); err != nil {
			xaos.Logger().Warn("close surface", "err", err)
		}
	}
}

// read decodes messages until the connection fails, then closes the
// queue so the loop ends.
func (s *session) read(ctx context.Context) {
	defer s.queue.Close()
	for {
		var m message
		if err := wsjson.Read(ctx, s.conn, &m); err != nil {
			if websocket.CloseStatus(err) == -1 && !errors.Is(err, context.Canceled) {
				xaos.Logger().Debug("read message", "err", err)
			}
			return
		}
		if isMove(m) {
			s.queue.Coalesce(m, isMove)
		} else {
			s.queue.Send(m)
		}
	}
}

func (s *session) apply(m message) {
	switch m.Type {
	case "resize":
		if m.Width > maxSurfaceSide || m.Height > maxSurfaceSide {
			xaos.Logger().Debug("refusing resize", "width", m.Width, "height", m.Height)
			return
		}
		s.ctrl.Resize(m.Width, m.Height)
	case "mode":
		mode, err := render.ParseMode(m.Mode)
		if err != nil {
			xaos.Logger().Warn("ignoring mode", "err", err)
			return
		}
		if err := s.ctrl.SetRenderMode(mode); err != nil {
			xaos.Logger().Warn("set render mode", "err", err)
		}
	default:
		var kind input.Kind
		if err := kind.UnmarshalText([]byte(m.Type)); err != nil {
			xaos.Logger().Debug("ignoring message", "err", err)
			return
		}
		s.dispatcher.Dispatch(input.Event{Kind: kind, Button: m.Button, X: m.X, Y: m.Y, Points: m.Points})
	}
}

// flush sends the surface if it changed since the last send. A frame is
// an 8-byte header, big-endian width and height, followed by RGBA pixels.
func (s *session) flush(ctx context.Context) error {
	if s.surface.Frames() == s.sent {
		return nil
	}
	s.sent = s.surface.Frames()

	w, h := s.surface.Size()
	pix := pixels(s.surface)
	s.buf = append(s.buf[:0], make([]byte, 8)...)
	binary.BigEndian.PutUint32(s.buf[0:], uint32(w))
	binary.BigEndian.PutUint32(s.buf[4:], uint32(h))
	s.buf = append(s.buf, pix...)

	if err := s.conn.Write(ctx, websocket.MessageBinary, s.buf); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}
