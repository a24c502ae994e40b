package middleware

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

type fakeObjectStore struct {
	url      string
	err      error
	calls    int
	lastData []byte
	lastName string
}

func (f *fakeObjectStore) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	f.calls++
	f.lastName = filename
	f.lastData = data
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func multipartRequest(t *testing.T, fields map[string]string, fileField, fileName string, fileData []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}

	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(fileData); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/products", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadMiddlewareBuffersAndAttachesURL(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	store := &fakeObjectStore{url: "https://images.example.com/abc.png"}

	var gotURL string
	var gotOK bool
	handler := UploadMiddleware(store, "product_image", logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL, gotOK = GetImageURL(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	fileData := []byte("fake png bytes")
	req := multipartRequest(t, map[string]string{"name": "gouda"}, "product_image", "gouda.png", fileData)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !gotOK || gotURL != store.url {
		t.Errorf("expected url %q in context, got %q (ok=%v)", store.url, gotURL, gotOK)
	}
	if store.calls != 1 {
		t.Errorf("expected exactly one upload, got %d", store.calls)
	}
	if !bytes.Equal(store.lastData, fileData) {
		t.Error("uploaded bytes do not match the buffered file")
	}
	if store.lastName != "gouda.png" {
		t.Errorf("expected filename gouda.png, got %q", store.lastName)
	}
}

func TestUploadMiddlewareToleratesMissingFile(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	store := &fakeObjectStore{url: "https://images.example.com/unused.png"}

	var gotOK bool
	handler := UploadMiddleware(store, "product_image", logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotOK = GetImageURL(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := multipartRequest(t, map[string]string{"name": "gouda", "price": "4.20"}, "", "", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 without a file field, got %d", w.Code)
	}
	if gotOK {
		t.Error("no URL should be attached when the file field is absent")
	}
	if store.calls != 0 {
		t.Errorf("store must not be called without a file, got %d calls", store.calls)
	}
}

func TestUploadMiddlewareFailsRequestOnStoreError(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	store := &fakeObjectStore{err: errors.New("bucket unavailable")}

	reached := false
	handler := UploadMiddleware(store, "product_image", logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	req := multipartRequest(t, nil, "product_image", "gouda.png", []byte("data"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on store failure, got %d", w.Code)
	}
	if reached {
		t.Error("handler must not run when the upload fails")
	}
}

func TestUploadMiddlewareRejectsNonMultipartBody(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	store := &fakeObjectStore{}

	handler := UploadMiddleware(store, "product_image", logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/products", bytes.NewBufferString(`{"name":"gouda"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-multipart body, got %d", w.Code)
	}
}
