// Package chi is the inbound HTTP layer: request decoding, engine calls,
// and result-to-JSON shaping. All classification semantics live below it.
package chi

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/NathanielBerney/boiledegg/internal/domain"
	"github.com/NathanielBerney/boiledegg/internal/domain/compound"
	"github.com/NathanielBerney/boiledegg/internal/domain/property"
	batchuc "github.com/NathanielBerney/boiledegg/internal/usecase/batch"
	classifyuc "github.com/NathanielBerney/boiledegg/internal/usecase/classify"
	healthuc "github.com/NathanielBerney/boiledegg/internal/usecase/health"
)

// maxUploadBytes bounds multipart parsing memory for SMILES file uploads.
const maxUploadBytes = 10 << 20 // 10MB

// Upload rejection reasons.
var (
	errNotUTF8      = errors.New("file is not valid UTF-8")
	errFileTooLarge = errors.New("file exceeds the maximum upload size")
)

// Error response codes.
const (
	codeBadRequest            = "bad_request"
	codeEmptyInput            = "empty_input"
	codeParseError            = "parse_error"
	codeDescriptorUnavailable = "descriptor_unavailable"
	codeValidationFailed      = "validation_failed"
	codeInternalError         = "internal_error"
)

// Server holds the HTTP handlers for the classification API.
type Server struct {
	engine       *classifyuc.Service
	batch        *batchuc.Service
	health       *healthuc.Service
	maxBatchSize int
	logger       *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	engine *classifyuc.Service,
	batch *batchuc.Service,
	health *healthuc.Service,
	maxBatchSize int,
	logger *zap.Logger,
) *Server {
	return &Server{
		engine:       engine,
		batch:        batch,
		health:       health,
		maxBatchSize: maxBatchSize,
		logger:       logger,
	}
}

// Register mounts all routes on the given router.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Post("/api/v1/classify", s.Classify)
	r.Post("/api/v1/classify/batch", s.ClassifyBatch)
	r.Post("/api/v1/classify/upload", s.ClassifyUpload)
}

// --- Request/response schemas ---

type classifyRequest struct {
	SMILES     string   `json:"smiles"`
	Properties []string `json:"properties"`
}

type classifyBatchRequest struct {
	SMILES     []string `json:"smiles"`
	Properties []string `json:"properties"`
}

type propertyResultResponse struct {
	Property string   `json:"property"`
	Status   string   `json:"status"`
	Value    *float64 `json:"value"`
	Error    *string  `json:"error"`
}

type compoundResultResponse struct {
	SMILES  string                            `json:"smiles"`
	Status  string                            `json:"status"`
	Results map[string]propertyResultResponse `json:"results"`
	Error   *string                           `json:"error"`
}

type batchResponse struct {
	RequestedProperties []string                 `json:"requested_properties"`
	TotalSMILES         int                      `json:"total_smiles"`
	Succeeded           int                      `json:"succeeded"`
	Failed              int                      `json:"failed"`
	Results             []compoundResultResponse `json:"results"`
}

type uploadResponse struct {
	Filename string `json:"filename"`
	batchResponse
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// --- Handlers ---

// Classify handles POST /api/v1/classify.
func (s *Server) Classify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	res := s.engine.Classify(r.Context(), req.SMILES, propertyNames(req.Properties))
	if res.Status() == compound.StatusError {
		s.writeClassifyError(w, res)
		return
	}

	writeJSON(w, http.StatusOK, compoundToResponse(res))
}

// ClassifyBatch handles POST /api/v1/classify/batch. Per-item failures are
// reported inside the 200 response; only a malformed request is rejected.
func (s *Server) ClassifyBatch(w http.ResponseWriter, r *http.Request) {
	var req classifyBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.SMILES) == 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "smiles list must not be empty")
		return
	}
	if len(req.SMILES) > s.maxBatchSize {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			"smiles list exceeds the maximum batch size")
		return
	}

	props := propertyNames(req.Properties)
	results := s.batch.Classify(r.Context(), req.SMILES, props)

	writeJSON(w, http.StatusOK, batchToResponse(props, results))
}

// ClassifyUpload handles POST /api/v1/classify/upload: a multipart .smi
// file with one SMILES per line. Blank lines are skipped; line order is
// preserved in the results. Properties come from repeated "property"
// query parameters, defaulting to all supported.
func (s *Server) ClassifyUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := openUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	defer func() { _ = file.Close() }()

	smilesList, err := readSMILESLines(file)
	switch {
	case errors.Is(err, errFileTooLarge):
		writeError(w, http.StatusBadRequest, codeValidationFailed, "File exceeds the maximum upload size")
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, codeBadRequest, "File must be UTF-8 encoded text")
		return
	}
	if len(smilesList) == 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "File contains no SMILES strings")
		return
	}
	if len(smilesList) > s.maxBatchSize {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			"file exceeds the maximum batch size")
		return
	}

	props := propertyNames(r.URL.Query()["property"])
	results := s.batch.Classify(r.Context(), smilesList, props)

	writeJSON(w, http.StatusOK, uploadResponse{
		Filename:      header.Filename,
		batchResponse: batchToResponse(props, results),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": string(report.Status),
		"checks": checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// --- Helpers ---

// writeClassifyError maps a failed single-compound result onto an HTTP
// status: empty input is the client's fault, everything else the server's.
func (s *Server) writeClassifyError(w http.ResponseWriter, res compound.Result) {
	err := res.Err()
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		writeError(w, http.StatusBadRequest, codeEmptyInput, "SMILES string cannot be empty")
	case errors.Is(err, domain.ErrMoleculeParse):
		writeError(w, http.StatusInternalServerError, codeParseError, res.ErrorMessage())
	case errors.Is(err, domain.ErrDescriptorUnavailable):
		writeError(w, http.StatusBadGateway, codeDescriptorUnavailable, res.ErrorMessage())
	default:
		s.logger.Error("classification failed", zap.String("smiles", res.SMILES()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

// propertyNames converts raw names, defaulting to all supported when the
// client omits the list.
func propertyNames(raw []string) []property.Name {
	if len(raw) == 0 {
		return property.Supported()
	}
	names := make([]property.Name, len(raw))
	for i, p := range raw {
		names[i] = property.Name(p)
	}
	return names
}

func openUpload(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, errors.New("request must be multipart form data with a file field")
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, errors.New("missing file field")
	}
	if header.Filename == "" {
		_ = file.Close()
		return nil, nil, errors.New("file must have a name")
	}
	return file, header, nil
}

// readSMILESLines splits an uploaded file into trimmed non-blank lines.
// The file must be UTF-8 text and no larger than maxUploadBytes; truncating
// an oversized file would silently corrupt its last SMILES line.
func readSMILESLines(f io.Reader) ([]string, error) {
	raw, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > maxUploadBytes {
		return nil, errFileTooLarge
	}
	if !utf8.Valid(raw) {
		return nil, errNotUTF8
	}

	var out []string
	for _, line := range strings.Split(string(raw), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out, nil
}

func compoundToResponse(res compound.Result) compoundResultResponse {
	out := compoundResultResponse{
		SMILES:  res.SMILES(),
		Status:  string(res.Status()),
		Results: make(map[string]propertyResultResponse, len(res.Properties())),
	}
	if msg := res.ErrorMessage(); msg != "" {
		out.Error = &msg
	}
	for name, pr := range res.Properties() {
		out.Results[string(name)] = propertyToResponse(pr)
	}
	return out
}

func propertyToResponse(pr compound.PropertyResult) propertyResultResponse {
	out := propertyResultResponse{
		Property: string(pr.Name()),
		Status:   string(pr.Status()),
	}
	if pr.Status() == compound.StatusSuccess {
		v := pr.Value()
		out.Value = &v
	} else if msg := pr.Message(); msg != "" {
		out.Error = &msg
	}
	return out
}

func batchToResponse(props []property.Name, results []compound.Result) batchResponse {
	requested := make([]string, len(props))
	for i, p := range props {
		requested[i] = string(p)
	}

	succeeded, failed := 0, 0
	items := make([]compoundResultResponse, len(results))
	for i, res := range results {
		items[i] = compoundToResponse(res)
		if res.Status() == compound.StatusSuccess {
			succeeded++
		} else {
			failed++
		}
	}

	return batchResponse{
		RequestedProperties: requested,
		TotalSMILES:         len(results),
		Succeeded:           succeeded,
		Failed:              failed,
		Results:             items,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
