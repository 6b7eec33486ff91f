package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/antonkarev/doc-classifier/internal/core/domain"
)

// multipartOverhead leaves headroom for multipart framing on top of the
// configured file cap.
const multipartOverhead = 1 << 20

var errMissingFilePart = errors.New("multipart field 'file' is required")

func supportedFileTypes() []string {
	return domain.SupportedContentTypes
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	upload, err := rt.readUpload(w, r)
	if err != nil {
		rt.writeDomainError(w, r, err)
		return
	}

	res, err := rt.pipeline.Upload(r.Context(), upload)
	rt.metrics.RecordDocument(rt.opts.ServiceName, "upload", err)
	if err != nil {
		rt.writeDomainError(w, r, err)
		return
	}

	rt.metrics.RecordUploadSize(rt.opts.ServiceName, "upload", res.Info.FileSize)
	rt.metrics.RecordStage(rt.opts.ServiceName, "parse", res.ParseTime)

	writeJSON(w, http.StatusOK, assembleUploadResponse(res, time.Now()))
}

type classifyRequest struct {
	Text     string `json:"text"`
	Industry string `json:"industry"`
}

func (rt *Router) classifyText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "invalid json body")
		return
	}

	set := rt.catalog.Get(req.Industry)
	outcome, err := rt.pipeline.Classify(r.Context(), req.Text, set)
	rt.metrics.RecordDocument(rt.opts.ServiceName, "classify", err)
	if err != nil {
		rt.writeDomainError(w, r, err)
		return
	}

	rt.metrics.RecordStage(rt.opts.ServiceName, "classify", outcome.Elapsed)
	rt.metrics.RecordClassification(rt.opts.ServiceName, set.Industry, outcome.Classification.Category)
	rt.metrics.RecordWarnings(rt.opts.ServiceName, "classify", len(outcome.Warnings))

	writeJSON(w, http.StatusOK, assembleClassifyResponse(utf8.RuneCountInString(req.Text), outcome, time.Now()))
}

func (rt *Router) uploadAndClassify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	upload, err := rt.readUpload(w, r)
	if err != nil {
		rt.writeDomainError(w, r, err)
		return
	}

	set := rt.catalog.Get(r.FormValue("industry"))
	res, err := rt.pipeline.UploadAndClassify(r.Context(), upload, set)
	rt.metrics.RecordDocument(rt.opts.ServiceName, "upload-and-classify", err)
	if err != nil {
		rt.writeDomainError(w, r, err)
		return
	}

	rt.metrics.RecordUploadSize(rt.opts.ServiceName, "upload-and-classify", res.Info.FileSize)
	rt.metrics.RecordStage(rt.opts.ServiceName, "parse", res.ParseTime)
	rt.metrics.RecordStage(rt.opts.ServiceName, "classify", res.Outcome.Elapsed)
	rt.metrics.RecordStage(rt.opts.ServiceName, "total", res.Total)
	rt.metrics.RecordClassification(rt.opts.ServiceName, set.Industry, res.Outcome.Classification.Category)
	rt.metrics.RecordWarnings(rt.opts.ServiceName, "upload-and-classify", len(res.Outcome.Warnings))

	writeJSON(w, http.StatusOK, assembleEnvelope(res, time.Now()))
}

// validateClassification runs the full chain and reports whether the
// prediction matches the caller's expected category. Used for spot checks
// and by the evaluation tooling.
func (rt *Router) validateClassification(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	upload, err := rt.readUpload(w, r)
	if err != nil {
		rt.writeDomainError(w, r, err)
		return
	}

	expected := strings.TrimSpace(r.FormValue("expected_category"))
	set := rt.catalog.Get(r.FormValue("industry"))
	res, err := rt.pipeline.UploadAndClassify(r.Context(), upload, set)
	rt.metrics.RecordDocument(rt.opts.ServiceName, "validate", err)
	if err != nil {
		rt.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, assembleValidateResponse(res, expected, time.Now()))
}

// readUpload pulls the multipart file into memory. The body is bounded a
// little above the configured cap so oversized uploads fail here with a
// validation error instead of buffering without limit.
func (rt *Router) readUpload(w http.ResponseWriter, r *http.Request) (*domain.UploadedFile, error) {
	if rt.opts.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, rt.opts.MaxUploadBytes+multipartOverhead)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, domain.WrapError(domain.ErrValidation, "read upload", err)
		}
		return nil, domain.WrapError(domain.ErrValidation, "read upload", errMissingFilePart)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, domain.WrapError(domain.ErrValidation, "read upload", err)
	}

	return &domain.UploadedFile{
		FileInfo: domain.FileInfo{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
		},
		Data: data,
	}, nil
}
