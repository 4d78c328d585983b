package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"math"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-diffuse-raytracer/pkg/backends"
	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
	"github.com/df07/go-diffuse-raytracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string                 `json:"scene"`   // Built-in scene name or scene file ID
	Width   int                    `json:"width"`   // Image width
	Height  int                    `json:"height"`  // Image height, 0 derives it from the camera aspect ratio
	Samples renderer.SamplingLevel `json:"samples"` // Samples per pixel
}

// ProgressUpdate is sent after every completed scanline
type ProgressUpdate struct {
	Progress float32 `json:"progress"`
	Row      int     `json:"row"`
}

// Stats represents render statistics sent with the completion event
type Stats struct {
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	TotalSamples int     `json:"totalSamples"`
	HitRatio     float64 `json:"hitRatio"`
	Workers      int     `json:"workers"`
	ElapsedMs    int64   `json:"elapsedMs"`
}

// handleRender renders a scene and streams progress, the image and completion via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.loadScene(req.Scene)
	if err != nil {
		s.sendSSEError(w, err.Error())
		return
	}

	if req.Height == 0 {
		req.Height = derivedHeight(sceneObj.Camera().AspectRatio(), req.Width)
	}
	target, err := renderer.NewFrameBuffer(req.Width, req.Height)
	if err != nil {
		s.sendSSEError(w, err.Error())
		return
	}

	progress := func(p float32) {
		update := ProgressUpdate{Progress: p, Row: int(math.Round(float64(p * float32(req.Height))))}
		if err := s.sendSSEJSON(w, "progress", update); err != nil {
			core.Logger().Debug("failed to send progress", "error", err)
		}
	}

	// The request context cancels the render when the client disconnects
	opts := renderer.RenderOptions{Sampling: req.Samples}
	stats, err := sceneObj.Render(r.Context(), target, opts, progress)
	if err != nil {
		core.Logger().Info("render stopped", "scene", req.Scene, "error", err)
		s.sendSSEError(w, fmt.Sprintf("Render error: %v", err))
		return
	}

	imageData, err := s.imageToBase64PNG(target)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("failed to encode image: %v", err))
		return
	}
	s.sendSSEEvent(w, "image", imageData)

	s.sendSSEJSON(w, "complete", Stats{
		Width:        req.Width,
		Height:       req.Height,
		TotalSamples: stats.TotalSamples,
		HitRatio:     stats.HitRatio,
		Workers:      stats.Workers,
		ElapsedMs:    stats.Elapsed.Milliseconds(),
	})
	core.Logger().Info("render served", "scene", req.Scene, "size", target.Size().String(), "elapsed", stats.Elapsed.Round(time.Millisecond))
}

// setSSEHeaders sets the headers required for server-sent events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, 0, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height == 1 {
		return nil, fmt.Errorf("height must be between %d and %d, got: 1", minImageSize, maxImageSize)
	}

	samples, err := parseIntParam(query, "samples", 1, 1, 16)
	if err != nil {
		return nil, err
	}
	if req.Samples, err = renderer.ParseSamplingLevel(samples); err != nil {
		return nil, err
	}
	return req, nil
}

// loadScene resolves built-in scenes, and JSON scenes only when they live in the scenes directory
func (s *Server) loadScene(name string) (*scene.Scene, error) {
	if !strings.EqualFold(filepath.Ext(name), ".json") {
		return scene.Load(name)
	}

	files, err := scene.ListSceneFiles(s.scenesDir)
	if err != nil {
		return nil, err
	}
	for _, info := range files {
		if info.ID == name {
			return scene.LoadFile(info.FilePath)
		}
	}
	return nil, fmt.Errorf("%w: %q", scene.ErrUnknownScene, name)
}

func derivedHeight(aspect float32, width int) int {
	height := int(math.Round(float64(float32(width) / aspect)))
	if height < minImageSize {
		return minImageSize
	}
	if height > maxImageSize {
		return maxImageSize
	}
	return height
}

// imageToBase64PNG converts a render target to base64-encoded PNG
func (s *Server) imageToBase64PNG(target renderer.RenderTarget) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, backends.ToRGBA(target)); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendSSEJSON sends a JSON payload as an SSE event
func (s *Server) sendSSEJSON(w http.ResponseWriter, event string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, event, string(data))
}

// sendSSEError sends an error via SSE as {"error": message}
func (s *Server) sendSSEError(w http.ResponseWriter, message string) error {
	return s.sendSSEJSON(w, "error", map[string]string{"error": message})
}

// sendSSEEvent sends a generic SSE event. data must not contain newlines.
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if flusher, ok := w.(http.Flusher); ok {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
		return nil
	}
	return fmt.Errorf("streaming not supported")
}
