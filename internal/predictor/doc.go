// Package predictor turns one student record into one math score prediction.
// It is structured into small files by concern:
//
//   - service.go: Service type, constructor, Ready/Status/Options.
//   - config.go: Config and package defaults.
//   - predict.go: the validate -> encode -> assemble -> predict pipeline.
//   - errors.go: PredictionError and helpers.
//   - events.go: lifecycle events and publishers.
//   - metrics.go: Prometheus collectors for loads, predictions and the cache.
//
// Artifacts are loaded lazily through artifact.Loader on first use (or
// eagerly via Warm) and shared read-only by all requests.
package predictor
