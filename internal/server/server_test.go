package server

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/relevance"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/server/ratelimit"
	"github.com/jonathan/resume-analyzer/internal/suggest"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const validJobDescription = `{
	"text": "We are hiring a backend developer to build Flask services on top of SQL databases.",
	"required_skills": ["python", "flask", "sql"],
	"preferred_skills": ["docker"]
}`

type fakeAnalyzer struct {
	calls  int
	text   string
	jd     *types.JobDescription
	result *types.ResumeAnalysis
	err    error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, text string, jd *types.JobDescription) (*types.ResumeAnalysis, error) {
	f.calls++
	f.text = text
	f.jd = jd
	return f.result, f.err
}

type failingClient struct{}

func (failingClient) Complete(context.Context, string, llm.Params) (string, error) {
	return "", errors.New("dial tcp: lookup api.together.xyz: no such host")
}
func (failingClient) Model() string { return "failing" }
func (failingClient) Close() error  { return nil }

func newTestServer(t *testing.T, a Analyzer) *Server {
	t.Helper()
	rl := ratelimit.DefaultConfig()
	rl.CleanupInterval = 0
	s := New(Config{Port: 0, AllowedOrigins: []string{"http://localhost:3000"}, RateLimit: rl}, a)
	t.Cleanup(s.Close)
	return s
}

// buildDocx assembles a minimal .docx archive with one paragraph per line.
func buildDocx(t *testing.T, paras ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paras {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	files := []struct{ name, content string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`},
		{"word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`},
		{"word/document.xml", `<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body.String() + `</w:body></w:document>`},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

type formPart struct {
	filename string
	data     []byte
	jobDesc  *string
}

func newAnalyzeRequest(t *testing.T, p formPart) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if p.filename != "" {
		fw, err := mw.CreateFormFile("resume", p.filename)
		require.NoError(t, err)
		_, err = fw.Write(p.data)
		require.NoError(t, err)
	}
	if p.jobDesc != nil {
		require.NoError(t, mw.WriteField("jobDescription", *p.jobDesc))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze-resume", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.RemoteAddr = "192.0.2.1:1234"
	return req
}

func ptr(s string) *string { return &s }

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &fakeAnalyzer{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestAnalyzeResume_Success(t *testing.T) {
	fa := &fakeAnalyzer{result: &types.ResumeAnalysis{
		MatchPercentage: 66.7,
		SkillScore:      66.7,
		MissingSkills:   []string{"sql"},
		MatchingSkills:  []string{"flask", "python"},
		Suggestions:     suggest.Fallback([]string{"sql"}),
	}}
	s := newTestServer(t, fa)

	docx := buildDocx(t, "Jane Doe", "Python developer with Flask experience")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, newAnalyzeRequest(t, formPart{filename: "resume.docx", data: docx, jobDesc: ptr(validJobDescription)}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "30", rec.Header().Get("X-RateLimit-Limit"))

	var got types.ResumeAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []string{"sql"}, got.MissingSkills)
	require.Len(t, got.Suggestions, 3)

	require.Equal(t, 1, fa.calls)
	assert.Contains(t, fa.text, "Python developer with Flask experience")
	assert.Equal(t, []string{"python", "flask", "sql"}, fa.jd.RequiredSkills())
	assert.Equal(t, []string{"docker"}, fa.jd.PreferredSkills())
}

func TestAnalyzeResume_RequestErrors(t *testing.T) {
	docx := []byte("not inspected")

	tests := []struct {
		name       string
		part       formPart
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing file",
			part:       formPart{jobDesc: ptr(validJobDescription)},
			wantStatus: http.StatusBadRequest,
			wantError:  "No resume file provided",
		},
		{
			name:       "missing job description",
			part:       formPart{filename: "resume.docx", data: docx},
			wantStatus: http.StatusBadRequest,
			wantError:  "No job description provided",
		},
		{
			name:       "malformed job description",
			part:       formPart{filename: "resume.docx", data: docx, jobDesc: ptr(`{"text": `)},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid job description format",
		},
		{
			name:       "unsupported extension",
			part:       formPart{filename: "resume.txt", data: []byte("Python developer"), jobDesc: ptr(validJobDescription)},
			wantStatus: http.StatusBadRequest,
			wantError:  "Unsupported file format",
		},
		{
			name:       "schema violation",
			part:       formPart{filename: "resume.docx", data: docx, jobDesc: ptr(`{"text": "short", "required_skills": []}`)},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid job description data: ",
		},
		{
			name:       "corrupt document",
			part:       formPart{filename: "resume.pdf", data: []byte("%PDF-garbage"), jobDesc: ptr(validJobDescription)},
			wantStatus: http.StatusBadRequest,
			wantError:  "Error processing PDF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fa := &fakeAnalyzer{}
			s := newTestServer(t, fa)

			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, newAnalyzeRequest(t, tt.part))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, decodeError(t, rec), tt.wantError)
			assert.Zero(t, fa.calls, "analysis must not run")
		})
	}
}

func TestAnalyzeResume_NotMultipart(t *testing.T) {
	s := newTestServer(t, &fakeAnalyzer{})
	req := httptest.NewRequest(http.MethodPost, "/analyze-resume", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No resume file provided", decodeError(t, rec))
}

func TestAnalyzeResume_TooLarge(t *testing.T) {
	rl := ratelimit.DefaultConfig()
	rl.CleanupInterval = 0
	s := New(Config{MaxUploadBytes: 1024, RateLimit: rl}, &fakeAnalyzer{})
	t.Cleanup(s.Close)

	big := bytes.Repeat([]byte("a"), 4096)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, newAnalyzeRequest(t, formPart{filename: "resume.docx", data: big, jobDesc: ptr(validJobDescription)}))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestAnalyzeResume_AnalysisFailure(t *testing.T) {
	fa := &fakeAnalyzer{err: &analysis.Error{Message: "boom"}}
	s := newTestServer(t, fa)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, newAnalyzeRequest(t, formPart{
		filename: "resume.docx",
		data:     buildDocx(t, "Python developer"),
		jobDesc:  ptr(validJobDescription),
	}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Analysis failed: failed to analyze resume: boom", decodeError(t, rec))
}

func TestAnalyzeResume_CompletionOutageStillSucceeds(t *testing.T) {
	a := analysis.New(nil,
		relevance.NewScorer(relevance.Static{Score: 0.5}),
		suggest.NewGenerator(failingClient{}))
	s := newTestServer(t, a)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, newAnalyzeRequest(t, formPart{
		filename: "resume.docx",
		data:     buildDocx(t, "Jane Doe", "Python developer with Flask experience"),
		jobDesc:  ptr(validJobDescription),
	}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got types.ResumeAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.InDelta(t, 66.7, got.SkillScore, 0.05)
	assert.Equal(t, []string{"sql"}, got.MissingSkills)
	require.Len(t, got.Suggestions, 3)
	assert.Equal(t, []string{"Build projects focusing on: sql"}, got.Suggestions[0].Items)
	assert.Equal(t, []string{"Highlight your experience with the required skills"}, got.Suggestions[1].Items)
	assert.Equal(t, []string{"Focus on learning: sql"}, got.Suggestions[2].Items)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, &fakeAnalyzer{})

	req := httptest.NewRequest(http.MethodOptions, "/analyze-resume", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDIsPropagated(t *testing.T) {
	s := newTestServer(t, &fakeAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, &fakeAnalyzer{})

	var last *httptest.ResponseRecorder
	for i := 0; i < 6; i++ {
		last = httptest.NewRecorder()
		s.Handler().ServeHTTP(last, newAnalyzeRequest(t, formPart{jobDesc: ptr(validJobDescription)}))
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.NotEmpty(t, last.Header().Get("Retry-After"))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&ErrJobDescription{Cause: errors.New("x")}))
	assert.Equal(t, http.StatusRequestEntityTooLarge, HTTPStatus(&ErrRequest{Status: http.StatusRequestEntityTooLarge}))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&schemas.DocumentError{Cause: errors.New("x")}))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&extraction.ExtractionError{Format: extraction.FormatPDF, Message: "x"}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(&analysis.Error{Message: "x"}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("unknown")))
}
