package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// multipartMemory is the part of the form kept in memory before spilling to disk.
const multipartMemory = 8 << 20

// handleAnalyzeResume handles POST /analyze-resume.
// The form carries the resume file in "resume" and the job description JSON in "jobDescription".
func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	jd, file, filename, err := s.parseAnalyzeRequest(r)
	if file != nil {
		defer func() { _ = file.Close() }()
	}
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), errorMessage(err))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgUnreadableInput)
		return
	}

	text, err := extraction.FromFile(filename, data)
	if err != nil {
		log.Printf("[server] extraction failed for %q: %v", filename, err)
		s.errorResponse(w, HTTPStatus(err), errorMessage(err))
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), text, jd)
	if err != nil {
		log.Printf("[server] analysis failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, msgAnalysisFailed+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// parseAnalyzeRequest validates the form in the order clients see errors: resume present,
// job description present, well-formed JSON, supported file type, then job description data.
func (s *Server) parseAnalyzeRequest(r *http.Request) (*types.JobDescription, multipart.File, string, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, "", &ErrRequest{Status: http.StatusRequestEntityTooLarge, Message: msgFileTooLarge}
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, "", &ErrRequest{Status: http.StatusBadRequest, Message: msgUnreadableInput}
		}
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		return nil, nil, "", &ErrRequest{Status: http.StatusBadRequest, Message: msgNoResume}
	}

	var values []string
	if r.MultipartForm != nil {
		values = r.MultipartForm.Value["jobDescription"]
	}
	if len(values) == 0 {
		return nil, file, "", &ErrRequest{Status: http.StatusBadRequest, Message: msgNoJobDesc}
	}
	raw := values[0]

	var probe any
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, file, "", &ErrRequest{Status: http.StatusBadRequest, Message: msgInvalidJobDesc}
	}

	if !extraction.IsSupported(header.Filename) {
		return nil, file, "", &extraction.UnsupportedFormatError{Filename: header.Filename}
	}

	jd, err := parseJobDescription(raw)
	if err != nil {
		return nil, file, "", err
	}
	return jd, file, header.Filename, nil
}

// parseJobDescription checks raw against the job description schema and builds the
// validated JobDescription.
func parseJobDescription(raw string) (*types.JobDescription, error) {
	if err := schemas.ValidateJobDescription(raw); err != nil {
		return nil, &ErrJobDescription{Cause: err}
	}

	var in types.JobDescriptionInput
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil, &ErrJobDescription{Cause: err}
	}

	jd, err := types.NewJobDescription(in)
	if err != nil {
		return nil, &ErrJobDescription{Cause: err}
	}
	return jd, nil
}
