package httpapi

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/message"

	"scored/internal/artifact"
	"scored/internal/encoding"
	"scored/internal/i18n"
	"scored/pkg/types"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

type selectField struct {
	ID, Name string
	Options  []string
	Selected string
}

type numberField struct {
	ID, Name       string
	Min, Max, Step string
	Value          string
}

type pageData struct {
	Lang, Title, Caption, Submit string
	Categorical                  []selectField
	Numeric                      []numberField
	Result                       string
	ErrorSummary, ErrorDetail    string
	// Halted hides the form: artifacts failed to load.
	Halted bool
}

// page serves the HTML prediction form.
type page struct {
	svc Service
}

func (p *page) show(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, nil, "", nil)
}

func (p *page) submit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		IncrementRejection("bad_body")
		p.render(w, r, http.StatusBadRequest, r.PostForm, "", err)
		return
	}
	req, err := requestFromForm(r.PostForm)
	if err != nil {
		IncrementRejection("validation")
		p.render(w, r, http.StatusUnprocessableEntity, r.PostForm, "", err)
		logPredictEnd(r, http.StatusUnprocessableEntity, start, "", err)
		return
	}
	resp, err := p.svc.Predict(r.Context(), req)
	if err != nil {
		IncrementRejection(rejectionReason(err))
		status := statusFor(err)
		p.render(w, r, status, r.PostForm, "", err)
		logPredictEnd(r, status, start, "", err)
		return
	}
	p.render(w, r, http.StatusOK, r.PostForm, resp.Formatted, nil)
	logPredictEnd(r, http.StatusOK, start, resp.ID, nil)
}

// render writes the page. form holds previously submitted values, if any.
func (p *page) render(w http.ResponseWriter, r *http.Request, status int, form map[string][]string, result string, perr error) {
	pr := messages.Printer(r.Header.Get("Accept-Language"))
	data := pageData{
		Lang:    messages.Tag(r.Header.Get("Accept-Language")).String(),
		Title:   pr.Sprintf(i18n.Title),
		Caption: pr.Sprintf(i18n.Caption),
		Submit:  pr.Sprintf(i18n.Submit),
	}
	opts, err := p.svc.Options(r.Context())
	if err != nil {
		// no form can be offered without artifacts
		data.Halted = true
		data.ErrorSummary, data.ErrorDetail = summarize(pr, err)
		if status == http.StatusOK {
			status = statusFor(err)
		}
		writePage(w, status, data)
		return
	}
	for i, fo := range opts.Categorical {
		sel := firstValue(form, fo.Field)
		if sel == "" && len(fo.Options) > 0 {
			sel = fo.Options[0]
		}
		data.Categorical = append(data.Categorical, selectField{
			ID:       "cat" + strconv.Itoa(i),
			Name:     fo.Field,
			Options:  fo.Options,
			Selected: sel,
		})
	}
	for i, nb := range opts.Numeric {
		val := firstValue(form, nb.Field)
		if val == "" {
			val = formatNumber(nb.Default)
		}
		data.Numeric = append(data.Numeric, numberField{
			ID:    "num" + strconv.Itoa(i),
			Name:  nb.Field,
			Min:   formatNumber(nb.Min),
			Max:   formatNumber(nb.Max),
			Step:  formatNumber(nb.Step),
			Value: val,
		})
	}
	if result != "" {
		data.Result = pr.Sprintf(i18n.Predicted, result)
	}
	if perr != nil {
		data.ErrorSummary, data.ErrorDetail = summarize(pr, perr)
	}
	writePage(w, status, data)
}

func writePage(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = indexTmpl.Execute(w, data)
}

// summarize returns a translated summary for err plus its full detail.
func summarize(pr *message.Printer, err error) (string, string) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return pr.Sprintf(i18n.ServiceNotReady), err.Error()
	case artifact.IsLoadError(err):
		return pr.Sprintf(i18n.LoadFailed), err.Error()
	case encoding.IsValidation(err):
		return pr.Sprintf(i18n.InvalidInput), err.Error()
	default:
		return pr.Sprintf(i18n.PredictFailed), err.Error()
	}
}

func requestFromForm(form map[string][]string) (types.PredictRequest, error) {
	req := types.PredictRequest{
		Gender:            firstValue(form, encoding.FieldGender),
		RaceEthnicity:     firstValue(form, encoding.FieldRaceEthnicity),
		ParentalEducation: firstValue(form, encoding.FieldParentalEducation),
		Lunch:             firstValue(form, encoding.FieldLunch),
		TestPreparation:   firstValue(form, encoding.FieldTestPreparation),
	}
	reading, err := parseScore(form, encoding.FieldReadingScore)
	if err != nil {
		return req, err
	}
	writing, err := parseScore(form, encoding.FieldWritingScore)
	if err != nil {
		return req, err
	}
	req.ReadingScore, req.WritingScore = &reading, &writing
	return req, nil
}

func parseScore(form map[string][]string, field string) (float64, error) {
	raw := strings.TrimSpace(firstValue(form, field))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		var ne *strconv.NumError
		reason := "expected a number"
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			reason = "number out of range"
		}
		return 0, &encoding.ValidationError{Field: field, Value: raw, Reason: reason}
	}
	return v, nil
}

func firstValue(form map[string][]string, key string) string {
	if vs := form[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
