package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/couchcryptid/quake-severity-service/internal/domain"
)

// maxBodyBytes caps form and JSON request bodies.
const maxBodyBytes = 64 << 10

// errBadInput marks form values that could not be parsed.
var errBadInput = errors.New("invalid input")

// formValues holds the submitted fields as typed, so the form can be
// re-rendered unchanged after a failure.
type formValues struct {
	Magnitude string
	Depth     string
	Latitude  string
	Longitude string
	Location  string
}

var defaultForm = formValues{
	Magnitude: "0.0",
	Depth:     "0.0",
	Latitude:  "0.00",
	Longitude: "0.00",
}

type resultView struct {
	Label     string
	Color     string
	PlaceName string
	Chart     chartView
}

type pageData struct {
	Form   formValues
	Result *resultView
	Error  string
}

func (s *Server) handleForm(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, pageData{Form: defaultForm})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, pageData{Form: defaultForm, Error: "The form could not be read. Please try again."})
		return
	}

	form := formValues{
		Magnitude: r.PostForm.Get("magnitude"),
		Depth:     r.PostForm.Get("depth"),
		Latitude:  r.PostForm.Get("latitude"),
		Longitude: r.PostForm.Get("longitude"),
		Location:  r.PostForm.Get("location"),
	}

	raw, err := form.record()
	if err == nil {
		var a domain.Assessment
		a, err = s.assessor.Assess(r.Context(), raw)
		if err == nil {
			s.render(w, http.StatusOK, pageData{Form: form, Result: newResultView(a)})
			return
		}
	}

	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("assessment request failed", "error", err)
	}
	s.render(w, status, pageData{Form: form, Error: userMessage(err)})
}

func (s *Server) handleAPIAssess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var raw domain.RawRecord
	if err := dec.Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body: " + err.Error()})
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body: unexpected data after the record"})
		return
	}

	a, err := s.assessor.Assess(r.Context(), raw)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("assessment request failed", "error", err)
		}
		writeJSON(w, status, map[string]string{"error": userMessage(err)})
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.page.Execute(w, data); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

// record parses the submitted values into a RawRecord.
func (f formValues) record() (domain.RawRecord, error) {
	var raw domain.RawRecord
	fields := []struct {
		name  string
		value string
		dst   *float64
	}{
		{"magnitude", f.Magnitude, &raw.Magnitude},
		{"depth", f.Depth, &raw.Depth},
		{"latitude", f.Latitude, &raw.Latitude},
		{"longitude", f.Longitude, &raw.Longitude},
	}
	for _, fld := range fields {
		s := strings.TrimSpace(fld.value)
		if s == "" {
			return domain.RawRecord{}, fmt.Errorf("%w: %s is required", errBadInput, fld.name)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return domain.RawRecord{}, fmt.Errorf("%w: %s must be a number", errBadInput, fld.name)
		}
		*fld.dst = v
	}
	raw.Location = f.Location
	return raw, nil
}

func newResultView(a domain.Assessment) *resultView {
	return &resultView{
		Label:     a.Result.Label,
		Color:     severityColor(a.Result.Label),
		PlaceName: a.FormattedAddress,
		Chart:     buildChart(a.Result),
	}
}

// statusFor maps an assessment error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadInput), errors.Is(err, domain.ErrOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrArtifactLoad):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// userMessage turns an assessment error into text shown in place of a prediction.
func userMessage(err error) string {
	switch {
	case errors.Is(err, errBadInput), errors.Is(err, domain.ErrOutOfRange):
		return "Please correct the input: " + err.Error()
	case errors.Is(err, domain.ErrArtifactLoad):
		return "The prediction model is not available. Please try again later."
	case errors.Is(err, domain.ErrShapeMismatch):
		return "The prediction model does not match its feature columns, so no prediction could be made."
	case errors.Is(err, domain.ErrInvalidDistribution):
		return "The prediction model returned an invalid result, so no prediction could be made."
	default:
		return "The prediction could not be completed."
	}
}
