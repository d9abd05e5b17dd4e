// Package xaos renders an escape-time fractal into a pixel surface and
// lets the user zoom and pan it continuously with the pointer.
//
// The pieces live in sub-packages:
//
//   - pkg/fractal: palette generation and the escape-time color formula
//   - pkg/viewport: mapping between surface pixels and the complex plane
//   - pkg/render: the adaptive-resolution render engine and surface contracts
//   - pkg/input: pointer and touch events and their dispatcher
//   - pkg/frame: frame callback scheduling
//   - pkg/zoom: the pointer-driven zoom controller and its frame loop
//   - pkg/surface/...: concrete surfaces (image.RGBA, gogpu/gg)
//
// Hosts wire these to a window system (cmd/xaos, SDL2) or to a browser
// over a websocket (cmd/xaosweb).
//
// By default nothing is logged. Call SetLogger to enable logging.
package xaos
