package httpadapter

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/antonkarev/doc-classifier/internal/core/domain"
)

var errTestBoom = errors.New("boom")

func classifyJSONRequest(text string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/classify", strings.NewReader(`{"text": "`+text+`"}`))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func uploadPDFRequest(t *testing.T, handler http.Handler) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartBody(t, "doc.pdf", []byte("%PDF-1.4 fixture"), nil)
	req := httptest.NewRequest(http.MethodPost, "/upload-and-classify", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	return res
}

func TestExtractionTimeoutMapsTo504(t *testing.T) {
	extractor := &extractorFake{err: domain.WrapError(domain.ErrExtractionTimeout, "parse document", context.DeadlineExceeded)}
	handler := newTestRouter(t, extractor, &classifierFake{})

	res := uploadPDFRequest(t, handler)

	if res.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %d", res.Code)
	}
	payload := decodeBody(t, res)
	if payload["status"] != "error" {
		t.Fatalf("expected error status, got %v", payload["status"])
	}
	if payload["error_type"] != "timeout" {
		t.Fatalf("expected timeout error type, got %v", payload["error_type"])
	}
}

func TestUpstreamFailureMapsTo502(t *testing.T) {
	extractor := &extractorFake{err: domain.WrapError(domain.ErrUpstreamUnavailable, "parse document", errTestBoom)}
	handler := newTestRouter(t, extractor, &classifierFake{})

	res := uploadPDFRequest(t, handler)

	if res.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", res.Code)
	}
}

func TestEmptyDocumentMapsTo400(t *testing.T) {
	extractor := &extractorFake{err: domain.WrapError(domain.ErrEmptyDocument, "parse document", errTestBoom)}
	handler := newTestRouter(t, extractor, &classifierFake{})

	res := uploadPDFRequest(t, handler)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	payload := decodeBody(t, res)
	if payload["error_type"] != "extraction_failed" {
		t.Fatalf("expected extraction_failed, got %v", payload["error_type"])
	}
}

func TestMalformedClassificationMapsTo502(t *testing.T) {
	classifier := &classifierFake{clsErr: domain.WrapError(domain.ErrMalformedModelOutput, "classify document", errTestBoom)}
	handler := newTestRouter(t, &extractorFake{text: "some document text"}, classifier)

	res := uploadPDFRequest(t, handler)

	if res.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", res.Code)
	}
	payload := decodeBody(t, res)
	if payload["error_type"] != "classification_error" {
		t.Fatalf("expected classification_error, got %v", payload["error_type"])
	}
}

func TestClassifyInvalidJSONBodyMapsTo400(t *testing.T) {
	handler := newTestRouter(t, &extractorFake{}, &classifierFake{})

	req := httptest.NewRequest(http.MethodPost, "/classify", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestClassifyUpstreamFailurePropagates(t *testing.T) {
	classifier := &classifierFake{clsErr: domain.WrapError(domain.ErrUpstreamUnavailable, "classify document", errTestBoom)}
	handler := newTestRouter(t, &extractorFake{}, classifier)

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, classifyJSONRequest("a perfectly fine document"))

	if res.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", res.Code)
	}
}

func TestUploadMissingMultipartFieldMapsTo400(t *testing.T) {
	handler := newTestRouter(t, &extractorFake{}, &classifierFake{})

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("plain-text"))
	req.Header.Set("Content-Type", "text/plain")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	payload := decodeBody(t, res)
	if detail, _ := payload["detail"].(string); !strings.Contains(detail, "file") {
		t.Fatalf("expected the missing field named in the detail, got %v", payload["detail"])
	}
}
