package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeUploader struct {
	url  string
	err  error
	name string
	data []byte
}

func (f *fakeUploader) Store(ctx context.Context, r io.Reader, suggestedName string) (string, error) {
	f.name = suggestedName
	b, _ := io.ReadAll(r)
	f.data = b
	return f.url, f.err
}

func uploadRouter(up Uploader, maxBytes int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(&stubGiftService{}, &stubStatsService{}, &stubTemplateService{}, up, maxBytes)
	r.POST("/uploads", h.UploadImage)
	return r
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestUploadImage_StoresAndReturnsURL(t *testing.T) {
	up := &fakeUploader{url: "http://gifts.test/uploads/abc.jpg"}
	r := uploadRouter(up, 1<<20)

	body, ctype := multipartBody(t, "file", "photo.jpg", []byte("jpeg-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp UploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.URL != "http://gifts.test/uploads/abc.jpg" {
		t.Fatalf("url = %q", resp.URL)
	}
	if up.name != "photo.jpg" || string(up.data) != "jpeg-bytes" {
		t.Fatalf("stored name/data = %q/%q", up.name, up.data)
	}
}

func TestUploadImage_MissingFile(t *testing.T) {
	r := uploadRouter(&fakeUploader{}, 1<<20)

	body, ctype := multipartBody(t, "wrong_field", "photo.jpg", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), ErrCodeBadRequest) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestUploadImage_RejectsOversizedFile(t *testing.T) {
	r := uploadRouter(&fakeUploader{url: "ignored"}, 64)

	body, ctype := multipartBody(t, "file", "big.jpg", bytes.Repeat([]byte("a"), 4096))
	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestUploadImage_StorageFailure(t *testing.T) {
	up := &fakeUploader{err: errors.New("disk full")}
	r := uploadRouter(up, 1<<20)

	body, ctype := multipartBody(t, "file", "photo.jpg", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), ErrCodeUploadFailed) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestUploadImage_NoStorageConfigured(t *testing.T) {
	r := uploadRouter(nil, 1<<20)

	body, ctype := multipartBody(t, "file", "photo.jpg", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
}
