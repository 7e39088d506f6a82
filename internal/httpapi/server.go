package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"scored/internal/artifact"
	"scored/internal/encoding"
	"scored/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Predict(ctx context.Context, req types.PredictRequest) (types.PredictResponse, error)
	Options(ctx context.Context) (types.OptionsResponse, error)
	Status() types.StatusResponse
	Ready() bool
}

type api struct {
	svc Service
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	// Compression for JSON and HTML responses
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsOptions != nil {
		r.Use(cors.Handler(*corsOptions))
	}

	a := &api{svc: svc}
	p := &page{svc: svc}
	r.Get("/", p.show)
	r.Post("/", p.submit)
	r.Post("/predict", a.predict)
	r.Get("/options", a.options)
	r.Get("/status", a.status)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		if st := svc.Status(); st.LoadError != "" {
			w.Write([]byte("error: " + st.LoadError))
			return
		}
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// predict godoc
//
//	@Summary		Predict a math score
//	@Description	Encodes the categorical fields and scores one student record.
//	@Tags			predict
//	@Accept			json
//	@Produce		json
//	@Param			request	body		types.PredictRequest	true	"Student record"
//	@Success		200		{object}	types.PredictResponse
//	@Failure		400		{object}	types.ErrorResponse
//	@Failure		415		{object}	types.ErrorResponse
//	@Failure		422		{object}	types.ErrorResponse
//	@Failure		500		{object}	types.ErrorResponse
//	@Failure		503		{object}	types.ErrorResponse
//	@Router			/predict [post]
func (a *api) predict(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		IncrementRejection("media_type")
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	// Limit body size (configurable, default 1MiB)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var req types.PredictRequest
	if err := dec.Decode(&req); err != nil {
		IncrementRejection("bad_body")
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		logPredictEnd(r, http.StatusBadRequest, start, "", err)
		return
	}
	resp, err := a.svc.Predict(r.Context(), req)
	if err != nil {
		IncrementRejection(rejectionReason(err))
		status := writeServiceError(w, err)
		logPredictEnd(r, status, start, "", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	logPredictEnd(r, http.StatusOK, start, resp.ID, nil)
}

// options godoc
//
//	@Summary		List valid inputs
//	@Description	Categorical choices in encoder order and numeric bounds.
//	@Tags			predict
//	@Produce		json
//	@Success		200	{object}	types.OptionsResponse
//	@Failure		503	{object}	types.ErrorResponse
//	@Router			/options [get]
func (a *api) options(w http.ResponseWriter, r *http.Request) {
	opts, err := a.svc.Options(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(opts); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}

// status godoc
//
//	@Summary	Artifact state and counters
//	@Tags		ops
//	@Produce	json
//	@Success	200	{object}	types.StatusResponse
//	@Router		/status [get]
func (a *api) status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.svc.Status()); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}

func rejectionReason(err error) string {
	switch {
	case artifact.IsLoadError(err):
		return "load_error"
	case encoding.IsValidation(err):
		return "validation"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "prediction"
	}
}
