package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/jotspot/inktex"
	"github.com/jotspot/inktex/config"
	"github.com/jotspot/inktex/encoding/ink"
	"github.com/jotspot/inktex/executor/remote"
	"github.com/jotspot/inktex/export"
	"github.com/jotspot/inktex/log"
	"github.com/jotspot/inktex/version"
)

type RecognitionServer struct {
	recognizer *inktex.Recognizer
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewRecognitionServer(ctx context.Context, configFile, serviceURL string) (*RecognitionServer, error) {
	cfg := config.Default()
	if configFile != "" {
		var err error
		cfg, err = config.LoadFromFile(configFile)
		if err != nil {
			return nil, err
		}
	}

	client, err := remote.NewClient(serviceURL)
	if err != nil {
		return nil, err
	}

	recognizer, err := inktex.New(ctx, client, cfg)
	if err != nil {
		return nil, err
	}

	return &RecognitionServer{recognizer: recognizer}, nil
}

func (s *RecognitionServer) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
}

func (s *RecognitionServer) writeSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{Data: data})
}

func decodeOptions(mode string, beamWidth, maxSteps int) []inktex.RecognizeOption {
	var opts []inktex.RecognizeOption
	if mode != "" {
		opts = append(opts, inktex.WithMode(inktex.Mode(mode)))
	}
	if beamWidth > 0 {
		opts = append(opts, inktex.WithBeamWidth(beamWidth))
	}
	if maxSteps > 0 {
		opts = append(opts, inktex.WithMaxSteps(maxSteps))
	}
	return opts
}

// POST /api/recognize
func (s *RecognitionServer) handleRecognize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Strokes   ink.Gesture `json:"strokes"`
		Mode      string      `json:"mode,omitempty"`
		BeamWidth int         `json:"beam_width,omitempty"`
		MaxSteps  int         `json:"max_steps,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if len(req.Strokes) == 0 {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("strokes are required"))
		return
	}

	res, err := s.recognizer.Recognize(r.Context(), req.Strokes, decodeOptions(req.Mode, req.BeamWidth, req.MaxSteps)...)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeSuccess(w, res)
}

// POST /api/recognize/batch
func (s *RecognitionServer) handleRecognizeBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Gestures  []ink.Gesture `json:"gestures"`
		Mode      string        `json:"mode,omitempty"`
		BeamWidth int           `json:"beam_width,omitempty"`
		MaxSteps  int           `json:"max_steps,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if len(req.Gestures) == 0 {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("gestures are required"))
		return
	}

	results, err := s.recognizer.RecognizeBatch(r.Context(), req.Gestures, decodeOptions(req.Mode, req.BeamWidth, req.MaxSteps)...)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeSuccess(w, results)
}

// Helper function to generate the PDF to a memory buffer
func generatePDFToBuffer(gesture ink.Gesture) (*bytes.Buffer, error) {
	tmpPDF, err := os.CreateTemp("", "inktex-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp PDF file: %v", err)
	}
	tmpPath := tmpPDF.Name()
	tmpPDF.Close()
	defer os.Remove(tmpPath)

	if err := export.GesturePDF(gesture, tmpPath); err != nil {
		return nil, fmt.Errorf("failed to render gesture: %v", err)
	}

	pdfData, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF file: %v", err)
	}

	return bytes.NewBuffer(pdfData), nil
}

// POST /api/export
func (s *RecognitionServer) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Strokes ink.Gesture `json:"strokes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if len(req.Strokes) == 0 {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("strokes are required"))
		return
	}

	buf, err := generatePDFToBuffer(req.Strokes)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"gesture.pdf\"")
	w.WriteHeader(http.StatusOK)
	io.Copy(w, buf)
}

// GET /api/version
func (s *RecognitionServer) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeSuccess(w, map[string]string{"version": version.Version})
}

func runServerMode(ctx context.Context, configFile, serviceURL, port string) {
	server, err := NewRecognitionServer(ctx, configFile, serviceURL)
	if err != nil {
		log.Error.Fatalf("Failed to initialize recognition server: %v", err)
	}

	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("/api/recognize", server.handleRecognize)
	mux.HandleFunc("/api/recognize/batch", server.handleRecognizeBatch)
	mux.HandleFunc("/api/export", server.handleExport)
	mux.HandleFunc("/api/version", server.handleVersion)

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Root endpoint with API documentation
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `
<!DOCTYPE html>
<html>
<head>
	<title>inktex REST API</title>
</head>
<body>
	<h1>inktex REST API</h1>
	<h2>Endpoints:</h2>
	<ul>
		<li>POST /api/recognize - Recognize a gesture as LaTeX</li>
		<li>POST /api/recognize/batch - Recognize several gestures</li>
		<li>POST /api/export - Render a gesture as PDF</li>
		<li>GET /api/version - Get version</li>
	</ul>
</body>
</html>
		`)
	})

	log.Info.Printf("Starting HTTP server on port %s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Error.Fatalf("Server failed: %v", err)
	}
}

func main() {
	configFile := flag.String("c", "", "config file")
	serviceURL := flag.String("s", "http://localhost:8475", "executor service url")
	port := flag.String("p", "8090", "listen port")
	flag.Parse()

	runServerMode(context.Background(), *configFile, *serviceURL, *port)
}
