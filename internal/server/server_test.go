package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/batch"
	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/export"
	"github.com/joseph-ayodele/resume-extractor/internal/extract"
	"github.com/joseph-ayodele/resume-extractor/internal/fields"
)

// fileText returns the uploaded bytes as the document text; "broken" fails.
type fileText struct{}

func (fileText) Extract(_ context.Context, path string) (extract.TextExtractionResult, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return extract.TextExtractionResult{}, common.ExtractionError(path, err)
	}
	if string(b) == "broken" {
		return extract.TextExtractionResult{}, common.ExtractionError(path, errors.New("corrupt document"))
	}
	return extract.TextExtractionResult{Text: string(b), Method: "stub"}, nil
}

func newTestServer(t *testing.T, health HealthFunc) (*Server, string) {
	t.Helper()
	out := t.TempDir()
	runner := batch.NewRunner(nil, fileText{}, fields.NewRegexExtractor(fields.Options{}))
	s := New(Config{OutputDir: out}, map[constants.Strategy]*batch.Runner{constants.StrategyRegex: runner}, export.NewService(nil), health, nil)
	return s, out
}

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("strategy", "regex"))
	if filename != "" {
		fw, err := mw.CreateFormFile("resume", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/extract/file", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func folderRequest(folder string) *http.Request {
	form := url.Values{"folder": {folder}}
	req := httptest.NewRequest(http.MethodPost, "/extract/folder", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestIndex(t *testing.T) {
	s, _ := newTestServer(t, nil)
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `action="/extract/file"`)
	assert.Contains(t, string(body), `<option value="regex" selected>regex</option>`)
}

func TestExtractFile(t *testing.T) {
	s, out := newTestServer(t, nil)
	req := uploadRequest(t, "jane.pdf", "Name: jane doe\nEmail: Jane@X.com\nLocation: nyc")
	req.Header.Set("Accept", "application/json")

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res PageResult
	decode(t, resp, &res)
	assert.Equal(t, "file", res.Mode)
	assert.Equal(t, []string{"Name", "Phone Number", "Email ID", "Location"}, res.Headers)
	assert.Equal(t, [][]string{{"Jane Doe", "Null", "jane@x.com", "Nyc"}}, res.Rows)
	assert.Equal(t, []string{"single_resume_output.xlsx", "single_resume_output.csv"}, res.Downloads)
	assert.FileExists(t, filepath.Join(out, "single_resume_output.xlsx"))
}

func TestExtractFile_InputErrors(t *testing.T) {
	s, _ := newTestServer(t, nil)
	for _, req := range []*http.Request{
		uploadRequest(t, "", ""),
		uploadRequest(t, "cv.txt", "Name: x"),
	} {
		req.Header.Set("Accept", "application/json")
		resp, err := s.App().Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body map[string]string
		decode(t, resp, &body)
		assert.Equal(t, common.CodeInput, body["code"])
	}
}

func TestExtractFile_TooLarge(t *testing.T) {
	runner := batch.NewRunner(nil, fileText{}, fields.NewRegexExtractor(fields.Options{}))
	s := New(Config{OutputDir: t.TempDir(), UploadMaxBytes: 10},
		map[constants.Strategy]*batch.Runner{constants.StrategyRegex: runner}, export.NewService(nil), nil, nil)

	req := uploadRequest(t, "big.pdf", "Name: someone with a long name")
	req.Header.Set("Accept", "application/json")
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]string
	decode(t, resp, &body)
	assert.Contains(t, body["message"], "limit is 10 B")
}

func TestExtractFile_ExtractionErrorRendersPage(t *testing.T) {
	s, _ := newTestServer(t, nil)
	resp, err := s.App().Test(uploadRequest(t, "cv.docx", "broken"), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "corrupt document")
}

func TestExtractFolder(t *testing.T) {
	s, out := newTestServer(t, nil)
	in := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "a.pdf"), []byte("Name: ann"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "b.docx"), []byte("broken"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "c.pdf"), []byte("Name: cy"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "d.txt"), []byte("Name: ignored"), 0o644))

	req := folderRequest(in)
	req.Header.Set("Accept", "application/json")
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res PageResult
	decode(t, resp, &res)
	assert.Equal(t, [][]string{{"Ann", "Null", "Null", "Null"}, {"Cy", "Null", "Null", "Null"}}, res.Rows)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "b.docx", res.Failures[0].Path)
	assert.Equal(t, []string{"(1/3) a.pdf OK", "(2/3) b.docx FAILED", "(3/3) c.pdf OK"}, res.Progress)
	assert.Equal(t, []string{"folder_resume_output.xlsx", "resumes_extracted_details.csv"}, res.Downloads)
	assert.FileExists(t, filepath.Join(out, "resumes_extracted_details.csv"))
}

func TestExtractFolder_Missing(t *testing.T) {
	s, _ := newTestServer(t, nil)
	resp, err := s.App().Test(folderRequest(filepath.Join(t.TempDir(), "nope")), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDownload(t *testing.T) {
	s, out := newTestServer(t, nil)
	require.NoError(t, os.WriteFile(filepath.Join(out, "single_resume_output.csv"), []byte("Name\nJane\n"), 0o644))

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/download/single_resume_output.csv", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Name\nJane\n", string(body))

	resp, err = s.App().Test(httptest.NewRequest(http.MethodGet, "/download/missing.csv", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = s.App().Test(httptest.NewRequest(http.MethodGet, "/download/..%2Fsecret", nil), -1)
	require.NoError(t, err)
	assert.NotEqual(t, http.StatusOK, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, func(context.Context) error { return errors.New("db down") })
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	s, _ = newTestServer(t, nil)
	resp, err = s.App().Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
