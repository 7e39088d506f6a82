package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"scored/internal/artifact"
	"scored/internal/httpapi"
	"scored/internal/predictor"
)

const (
	fixtureModel    = "../../testdata/model.json"
	fixtureEncoders = "../../testdata/encoders.json"
)

const scenarioJSON = `{"gender":"female","race/ethnicity":"group B","parental level of education":"bachelor's degree","lunch":"standard","test preparation course":"none","reading score":72,"writing score":74}`

// newServer wires the real loader and predictor behind the HTTP API.
func newServer(t *testing.T, modelPath, encodersPath string) (*httptest.Server, *predictor.Service, *artifact.Loader, *predictor.MemoryPublisher) {
	t.Helper()
	loader := artifact.NewLoader(modelPath, encodersPath)
	pub := predictor.NewMemoryPublisher()
	svc, err := predictor.New(predictor.Config{Loader: loader, Publisher: pub})
	if err != nil {
		t.Fatalf("new predictor: %v", err)
	}
	srv := httptest.NewServer(httpapi.NewMux(svc))
	t.Cleanup(srv.Close)
	return srv, svc, loader, pub
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}

func httpPostJSON(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}
