package e2e

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"scored/internal/encoding"
	"scored/internal/predictor"
	"scored/pkg/types"
)

// TestE2E_PredictScenario submits a valid record and expects one score.
func TestE2E_PredictScenario(t *testing.T) {
	srv, svc, _, pub := newServer(t, fixtureModel, fixtureEncoders)

	resp, body := httpPostJSON(t, srv.URL+"/predict", scenarioJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/predict %d %s", resp.StatusCode, body)
	}
	var out types.PredictResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	if out.Formatted != "70.63" {
		t.Fatalf("formatted=%q want 70.63", out.Formatted)
	}
	if out.ID == "" {
		t.Fatalf("missing prediction id")
	}
	if !svc.Ready() {
		t.Fatalf("service should be ready after a prediction")
	}
	names := pub.Names()
	if len(names) < 2 || names[0] != predictor.EventArtifactsLoaded || names[len(names)-1] != predictor.EventPredicted {
		t.Fatalf("unexpected events: %v", names)
	}

	// the second identical request is served from the cache
	_, body = httpPostJSON(t, srv.URL+"/predict", scenarioJSON)
	var again types.PredictResponse
	if err := json.Unmarshal(body, &again); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !again.Cached || again.MathScore != out.MathScore {
		t.Fatalf("expected cached identical score, got %+v", again)
	}
}

// TestE2E_UnknownCategory rejects a value outside the encoder's classes.
func TestE2E_UnknownCategory(t *testing.T) {
	srv, _, _, pub := newServer(t, fixtureModel, fixtureEncoders)

	body := strings.Replace(scenarioJSON, `"gender":"female"`, `"gender":"other"`, 1)
	resp, b := httpPostJSON(t, srv.URL+"/predict", body)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d %s", resp.StatusCode, b)
	}
	var er types.ErrorResponse
	if err := json.Unmarshal(b, &er); err != nil {
		t.Fatalf("json: %v", err)
	}
	if er.Field != encoding.FieldGender || er.Value != "other" {
		t.Fatalf("unexpected error body: %+v", er)
	}
	if len(er.Accepted) != 2 || er.Accepted[0] != "female" || er.Accepted[1] != "male" {
		t.Fatalf("accepted=%v", er.Accepted)
	}
	if !strings.Contains(er.Error, `"gender"`) || !strings.Contains(er.Error, `"other"`) {
		t.Fatalf("message should name field and value: %q", er.Error)
	}
	names := pub.Names()
	if names[len(names)-1] != predictor.EventPredictionRejected {
		t.Fatalf("expected rejection event, got %v", names)
	}
}

// TestE2E_ScoreOutOfRange is refused by the numeric constraints.
func TestE2E_ScoreOutOfRange(t *testing.T) {
	srv, _, _, _ := newServer(t, fixtureModel, fixtureEncoders)
	body := strings.Replace(scenarioJSON, `"reading score":72`, `"reading score":140`, 1)
	resp, b := httpPostJSON(t, srv.URL+"/predict", body)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d %s", resp.StatusCode, b)
	}
	if !strings.Contains(string(b), encoding.FieldReadingScore) {
		t.Fatalf("error should name the field: %s", b)
	}
}

// TestE2E_MissingScore is refused with the missing field named.
func TestE2E_MissingScore(t *testing.T) {
	srv, _, _, _ := newServer(t, fixtureModel, fixtureEncoders)
	body := strings.Replace(scenarioJSON, `,"writing score":74`, "", 1)
	resp, b := httpPostJSON(t, srv.URL+"/predict", body)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d %s", resp.StatusCode, b)
	}
	var er types.ErrorResponse
	if err := json.Unmarshal(b, &er); err != nil {
		t.Fatalf("json: %v", err)
	}
	if er.Field != encoding.FieldWritingScore {
		t.Fatalf("error should name the field: %s", b)
	}
}

// TestE2E_MissingArtifacts halts prediction and reports the load failure.
func TestE2E_MissingArtifacts(t *testing.T) {
	dir := t.TempDir()
	srv, svc, loader, pub := newServer(t, filepath.Join(dir, "model.json"), filepath.Join(dir, "encoders.json"))

	resp, body := httpGet(t, srv.URL+"/")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("GET / expected 503, got %d", resp.StatusCode)
	}
	if strings.Contains(string(body), "<form") {
		t.Fatalf("form must not be offered without artifacts")
	}

	form := url.Values{encoding.FieldGender: {"female"}, encoding.FieldReadingScore: {"72"}, encoding.FieldWritingScore: {"74"}}
	presp, err := http.PostForm(srv.URL+"/", form)
	if err != nil {
		t.Fatalf("post form: %v", err)
	}
	presp.Body.Close()
	if presp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("POST / expected 503, got %d", presp.StatusCode)
	}

	resp, body = httpPostJSON(t, srv.URL+"/predict", scenarioJSON)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("/predict expected 503, got %d %s", resp.StatusCode, body)
	}

	resp, body = httpGet(t, srv.URL+"/readyz")
	if resp.StatusCode != http.StatusServiceUnavailable || !strings.HasPrefix(string(body), "error: ") {
		t.Fatalf("/readyz %d %q", resp.StatusCode, body)
	}
	if svc.Status().State != string(predictor.StateError) {
		t.Fatalf("state=%s", svc.Status().State)
	}
	if loader.Reads() != 1 {
		t.Fatalf("storage should be read once, got %d", loader.Reads())
	}
	if names := pub.Names(); len(names) != 1 || names[0] != predictor.EventLoadFailed {
		t.Fatalf("events=%v", names)
	}
}

// TestE2E_ConcurrentFirstRequests load the artifacts exactly once.
func TestE2E_ConcurrentFirstRequests(t *testing.T) {
	srv, _, loader, _ := newServer(t, fixtureModel, fixtureEncoders)

	var wg sync.WaitGroup
	codes := make(chan int, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Post(srv.URL+"/predict", "application/json", strings.NewReader(scenarioJSON))
			if err != nil {
				codes <- 0
				return
			}
			resp.Body.Close()
			codes <- resp.StatusCode
		}()
	}
	wg.Wait()
	close(codes)
	for c := range codes {
		if c != http.StatusOK {
			t.Fatalf("status=%d", c)
		}
	}
	if loader.Reads() != 1 {
		t.Fatalf("reads=%d want 1", loader.Reads())
	}
}

// TestE2E_OptionsFollowEncoders lists encoder classes in encoder order.
func TestE2E_OptionsFollowEncoders(t *testing.T) {
	srv, _, _, _ := newServer(t, fixtureModel, fixtureEncoders)
	resp, body := httpGet(t, srv.URL+"/options")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/options %d %s", resp.StatusCode, body)
	}
	var opts types.OptionsResponse
	if err := json.Unmarshal(body, &opts); err != nil {
		t.Fatalf("json: %v", err)
	}
	for _, fo := range opts.Categorical {
		if fo.Field == encoding.FieldLunch {
			if !fo.FromEncoder || len(fo.Options) != 2 || fo.Options[0] != "free/reduced" {
				t.Fatalf("lunch options=%+v", fo)
			}
			return
		}
	}
	t.Fatalf("lunch missing from %+v", opts.Categorical)
}

// TestE2E_PageSubmit renders the formatted prediction.
func TestE2E_PageSubmit(t *testing.T) {
	srv, _, _, _ := newServer(t, fixtureModel, fixtureEncoders)
	form := url.Values{
		encoding.FieldGender:            {"female"},
		encoding.FieldRaceEthnicity:     {"group B"},
		encoding.FieldParentalEducation: {"bachelor's degree"},
		encoding.FieldLunch:             {"standard"},
		encoding.FieldTestPreparation:   {"none"},
		encoding.FieldReadingScore:      {"72"},
		encoding.FieldWritingScore:      {"74"},
	}
	resp, err := http.PostForm(srv.URL+"/", form)
	if err != nil {
		t.Fatalf("post form: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "Predicted math score: 70.63") {
		t.Fatalf("status=%d body=%s", resp.StatusCode, body)
	}
}
