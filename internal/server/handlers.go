package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/murzabaevb/levelplot/pkg/buildinfo"
	"github.com/murzabaevb/levelplot/pkg/errors"
	"github.com/murzabaevb/levelplot/pkg/observability"
	"github.com/murzabaevb/levelplot/pkg/pipeline"
)

// renderResponse is the body returned by POST /render.
// Artifacts are base64-encoded by encoding/json's []byte handling.
type renderResponse struct {
	DatasetHash string            `json:"dataset_hash"`
	Stats       renderStats       `json:"stats"`
	Cache       renderCacheInfo   `json:"cache"`
	Artifacts   map[string][]byte `json:"artifacts"`
}

type renderStats struct {
	RowCount   int    `json:"row_count"`
	ChartCount int    `json:"chart_count"`
	LoadTime   string `json:"load_time"`
	LayoutTime string `json:"layout_time"`
	RenderTime string `json:"render_time"`
}

type renderCacheInfo struct {
	DatasetHit bool `json:"dataset_hit"`
	LayoutHit  bool `json:"layout_hit"`
	RenderHit  bool `json:"render_hit"`
}

// inspectResponse is the body returned by POST /inspect.
type inspectResponse struct {
	Charts  []inspectChart    `json:"charts"`
	Legends []string          `json:"legends"`
	Colors  map[string]string `json:"colors"`
	XMin    float64           `json:"x_min"`
	XMax    float64           `json:"x_max"`
}

type inspectChart struct {
	ID       string `json:"id"`
	RowCount int    `json:"row_count"`
}

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"built":   buildinfo.Date,
	})
}

// handleRender runs the full pipeline for the posted options.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := decodeOptions(r, &opts); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, renderResponse{
		DatasetHash: result.DatasetHash,
		Stats: renderStats{
			RowCount:   result.Stats.RowCount,
			ChartCount: result.Stats.ChartCount,
			LoadTime:   result.Stats.LoadTime.Round(time.Microsecond).String(),
			LayoutTime: result.Stats.LayoutTime.Round(time.Microsecond).String(),
			RenderTime: result.Stats.RenderTime.Round(time.Microsecond).String(),
		},
		Cache: renderCacheInfo{
			DatasetHit: result.CacheInfo.DatasetHit,
			LayoutHit:  result.CacheInfo.LayoutHit,
			RenderHit:  result.CacheInfo.RenderHit,
		},
		Artifacts: result.Artifacts,
	})
}

// handleInspect parses the posted input and returns the dataset structure
// without rendering anything.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := decodeOptions(r, &opts); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Logger = s.logger

	ds, err := s.runner.Load(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	charts := make([]inspectChart, len(ds.Charts))
	for i, c := range ds.Charts {
		charts[i] = inspectChart{ID: c.ID, RowCount: len(c.Rows)}
	}
	xMin, xMax := ds.XExtent()

	writeJSON(w, http.StatusOK, inspectResponse{
		Charts:  charts,
		Legends: ds.Legends,
		Colors:  ds.Colors(),
		XMin:    xMin,
		XMax:    xMax,
	})
}

// decodeOptions parses the request body into pipeline options.
// Servers only accept raw input, never local file paths.
func decodeOptions(r *http.Request, opts *pipeline.Options) error {
	if err := json.NewDecoder(r.Body).Decode(opts); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse request body")
	}
	if opts.Source != "" {
		return errors.New(errors.ErrCodeInvalidInput, "source paths are not accepted; send raw input")
	}
	return nil
}

// writeError maps an error to an HTTP status and writes the JSON body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	writeJSON(w, statusFor(err), errorResponse{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidColumn, errors.ErrCodeInvalidRow,
		errors.ErrCodeInvalidRange, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle:
		return http.StatusBadRequest
	case errors.ErrCodeNoData:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
