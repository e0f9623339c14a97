package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/agrimitra/agrimitra/internal/flow"
	"github.com/agrimitra/agrimitra/internal/forms"
	"github.com/agrimitra/agrimitra/internal/models"
	"github.com/agrimitra/agrimitra/internal/render"
)

// WebHandler serves the dashboard and the feature form pages.
type WebHandler struct {
	flows     FlowRunner
	pages     *render.Renderer
	maxUpload int64
}

func NewWebHandler(flows FlowRunner, pages *render.Renderer, maxUpload int64) *WebHandler {
	return &WebHandler{flows: flows, pages: pages, maxUpload: maxUpload}
}

// Dashboard handles GET /
func (h *WebHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.write(w, http.StatusOK, render.Page{
		Forms:          forms.Forms(),
		ModelAvailable: h.flows.ModelAvailable(),
	})
}

// Form handles GET /features/{flow}
func (h *WebHandler) Form(w http.ResponseWriter, r *http.Request) {
	f, ok := forms.Lookup(chi.URLParam(r, "flow"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	h.write(w, http.StatusOK, render.Page{
		Title:          f.Heading,
		Form:           f,
		ModelAvailable: h.flows.ModelAvailable(),
	})
}

// Submit handles POST /features/{flow}
func (h *WebHandler) Submit(w http.ResponseWriter, r *http.Request) {
	f, ok := forms.Lookup(chi.URLParam(r, "flow"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	page := render.Page{
		Title:          f.Heading,
		Form:           f,
		ModelAvailable: h.flows.ModelAvailable(),
	}

	uploads, uploadErrs, err := h.readForm(w, r, f)
	if err != nil {
		log.Warn().Err(err).Str("flow", f.Flow).Msg("unreadable form submission")
		page.Errors = []models.FieldError{{Message: "The form could not be read. Please try again."}}
		h.write(w, http.StatusBadRequest, page)
		return
	}
	page.Values = submitted(r, f)
	if len(uploadErrs) > 0 {
		page.Errors = uploadErrs
		h.write(w, http.StatusBadRequest, page)
		return
	}

	raw, fieldErrs := f.Parse(r.PostForm, uploads)
	if len(fieldErrs) > 0 {
		page.Errors = fieldErrs
		h.write(w, http.StatusBadRequest, page)
		return
	}

	res, err := h.flows.Run(r.Context(), f.Flow, raw)
	if err != nil {
		code := StatusFor(err)
		if code == http.StatusBadRequest {
			page.Errors = flow.FieldErrors(err)
		} else {
			page.Notice = f.FailureMessage
		}
		h.write(w, code, page)
		return
	}

	page.ResultType = res.Type
	page.Result = res.Output
	h.write(w, http.StatusOK, page)
}

// readForm parses the body and reads any file fields. Oversized uploads are
// reported as field errors.
func (h *WebHandler) readForm(w http.ResponseWriter, r *http.Request, f *forms.Form) (map[string]*forms.Upload, []models.FieldError, error) {
	if !f.Multipart() {
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		return nil, nil, r.ParseForm()
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1<<20)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, []models.FieldError{h.tooLarge(f)}, nil
		}
		return nil, nil, err
	}

	uploads := make(map[string]*forms.Upload)
	var errs []models.FieldError
	for _, fd := range f.Fields {
		if fd.Kind != forms.KindFile {
			continue
		}
		file, header, err := r.FormFile(fd.Name)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		u, err := forms.ReadUpload(file, header, h.maxUpload)
		if errors.Is(err, forms.ErrTooLarge) {
			errs = append(errs, models.FieldError{Field: fd.Name, Message: h.tooLarge(f).Message})
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		uploads[fd.Name] = u
	}
	return uploads, errs, nil
}

func (h *WebHandler) tooLarge(f *forms.Form) models.FieldError {
	field := ""
	for _, fd := range f.Fields {
		if fd.Kind == forms.KindFile {
			field = fd.Name
			break
		}
	}
	return models.FieldError{
		Field:   field,
		Message: fmt.Sprintf("Image must be smaller than %.1f MB.", float64(h.maxUpload)/(1<<20)),
	}
}

func (h *WebHandler) write(w http.ResponseWriter, code int, page render.Page) {
	var buf bytes.Buffer
	if err := h.pages.Render(&buf, page); err != nil {
		log.Error().Err(err).Msg("render page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

func submitted(r *http.Request, f *forms.Form) map[string]string {
	values := make(map[string]string, len(f.Fields))
	for _, fd := range f.Fields {
		if fd.Kind != forms.KindFile {
			values[fd.Name] = r.PostForm.Get(fd.Name)
		}
	}
	return values
}
