package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/iwvelando/col-retirement/internal/config"
	"github.com/iwvelando/col-retirement/internal/costofliving"
	"github.com/iwvelando/col-retirement/internal/estimate"
	"github.com/iwvelando/col-retirement/internal/retirement"
	"github.com/iwvelando/col-retirement/pkg/constants"
	"github.com/iwvelando/col-retirement/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// RequestIDHeader carries the request ID on requests and responses.
const RequestIDHeader = "X-Request-ID"

// ReloadFunc reloads the cost-of-living dataset into the resolver.
type ReloadFunc func(ctx context.Context) error

type handler struct {
	logger        *zap.Logger
	resolver      *costofliving.Resolver
	estimator     *estimate.Estimator
	reload        ReloadFunc
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the cost-of-living and
// comparison API. reload may be nil, in which case reloads are refused.
func NewHandler(logger *zap.Logger, resolver *costofliving.Resolver, reload ReloadFunc, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		resolver:      resolver,
		estimator:     estimate.NewEstimator(logger, resolver),
		reload:        reload,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/status", h.handleStatus)
	mux.HandleFunc("GET /api/resolve", h.handleResolve)
	mux.HandleFunc("GET /api/regions", h.handleRegions)
	mux.HandleFunc("GET /api/regions/{code}", h.handleRegion)
	mux.HandleFunc("POST /api/compare", h.handleCompare)
	mux.HandleFunc("POST /api/compare/upload", h.handleCompareUpload)
	mux.HandleFunc("POST /api/dataset/reload", h.handleReload)
	mux.HandleFunc("GET /api/version", h.handleVersion)

	return h.withRequestID(mux)
}

type statusResponse struct {
	costofliving.Status
	Ready bool `json:"ready"`
}

type regionResponse struct {
	Region  string                `json:"region"`
	Records []costofliving.Record `json:"records"`
	Average costofliving.Record   `json:"average"`
}

type compareResponse struct {
	Report       *estimate.Report `json:"report"`
	CSV          string           `json:"csv"`
	Duration     string           `json:"duration"`
	ScenarioYAML string           `json:"scenarioYaml,omitempty"`
}

func (h *handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := h.resolver.Status()
	h.writeJSON(w, http.StatusOK, statusResponse{Status: status, Ready: status.Ready()})
}

func (h *handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleResolve"

	raw := r.URL.Query().Get("postalCode")
	if strings.TrimSpace(raw) == "" {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing postalCode query parameter", op)
		return
	}

	res := h.resolver.Resolve(raw)
	if !res.Found {
		h.respondNotReady(w, op)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

func (h *handler) handleRegions(w http.ResponseWriter, r *http.Request) {
	if !h.resolver.Status().Ready() {
		h.respondNotReady(w, "server.handleRegions")
		return
	}
	h.writeJSON(w, http.StatusOK, h.resolver.Regions())
}

func (h *handler) handleRegion(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleRegion"

	if !h.resolver.Status().Ready() {
		h.respondNotReady(w, op)
		return
	}

	region := strings.ToUpper(strings.TrimSpace(r.PathValue("code")))
	records := h.resolver.RecordsForRegion(region)
	average, ok := h.resolver.AverageForRegion(region)
	if len(records) == 0 || !ok {
		h.respondErrorWithOp(w, http.StatusNotFound, fmt.Sprintf("no records for region %s", region), op)
		return
	}

	h.writeJSON(w, http.StatusOK, regionResponse{Region: region, Records: records, Average: average})
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompare"

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	scenario := retirement.Scenario{
		Assumptions: retirement.Assumptions{
			WithdrawalRate:       constants.DefaultWithdrawalRate,
			InflationRate:        constants.DefaultInflationRate,
			ExpectedAnnualReturn: constants.DefaultExpectedAnnualReturn,
		},
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&scenario); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode scenario: %v", err), op)
		return
	}

	h.runComparison(w, scenario, nil, start, op)
}

func (h *handler) handleCompareUpload(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompareUpload"

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(&buf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.runComparison(w, cfg.Scenario.ToScenario(), cfg.ValidateConfiguration(), start, op)
}

func (h *handler) runComparison(w http.ResponseWriter, scenario retirement.Scenario, configWarnings []string, start time.Time, op string) {
	if err := config.ValidateScenario(scenario); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	report, err := h.estimator.Estimate(scenario)
	if err != nil {
		if errors.Is(err, estimate.ErrDataNotReady) {
			h.respondNotReady(w, op)
			return
		}
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to compute comparison: %v", err), op)
		return
	}
	report.Warnings = mergeWarnings(report.Warnings, configWarnings)

	response := compareResponse{
		Report: report.Masked(),
		CSV:    output.CsvString(report),
	}

	scenarioYAML, err := yaml.Marshal(config.FromScenario(report.Scenario))
	if err != nil {
		h.logger.Warn("failed to marshal scenario",
			zap.String("op", op),
			zap.Error(err),
		)
	} else {
		response.ScenarioYAML = string(scenarioYAML)
	}

	elapsed := time.Since(start)
	response.Duration = elapsed.String()

	h.logger.Info("comparison computed",
		zap.String("op", op),
		zap.String("reportId", report.ID),
		zap.String("current", report.Current.PostalCode),
		zap.String("target", report.Target.PostalCode),
		zap.Int("warnings", len(report.Warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleReload(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleReload"

	if h.reload == nil {
		h.respondErrorWithOp(w, http.StatusNotImplemented, "dataset reload is not configured", op)
		return
	}

	if err := h.reload(r.Context()); err != nil {
		h.respondErrorWithOp(w, http.StatusBadGateway, fmt.Sprintf("dataset reload failed: %v", err), op)
		return
	}

	status := h.resolver.Status()
	h.logger.Info("dataset reloaded",
		zap.String("op", op),
		zap.Int("records", status.Records),
	)
	h.writeJSON(w, http.StatusOK, statusResponse{Status: status, Ready: status.Ready()})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondNotReady(w http.ResponseWriter, op string) {
	status := h.resolver.Status()
	msg := estimate.ErrDataNotReady.Error()
	if status.State == costofliving.StateError && status.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, status.Message)
	}
	h.respondErrorWithOp(w, http.StatusServiceUnavailable, msg, op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// withRequestID tags every request with an ID, echoing a caller-supplied one,
// and logs the outcome.
func (h *handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		h.logger.Debug("request served",
			zap.String("op", "server.withRequestID"),
			zap.String("requestId", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func mergeWarnings(existing, extra []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, w := range existing {
		seen[w] = struct{}{}
	}
	for _, w := range extra {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		existing = append(existing, w)
	}
	return existing
}
