package types

// PredictRequest is the payload accepted by POST /predict.
type PredictRequest struct {
	// Student gender.
	// example: female
	Gender string `json:"gender" example:"female"`
	// Race/ethnicity group.
	// example: group B
	RaceEthnicity string `json:"race/ethnicity" example:"group B"`
	// Highest education level of the parents.
	// example: bachelor's degree
	ParentalEducation string `json:"parental level of education" example:"bachelor's degree"`
	// Lunch plan.
	// example: standard
	Lunch string `json:"lunch" example:"standard"`
	// Test preparation course status.
	// example: none
	TestPreparation string `json:"test preparation course" example:"none"`
	// Reading score in [0, 100]. Required.
	// example: 72
	ReadingScore *float64 `json:"reading score" validate:"required" example:"72"`
	// Writing score in [0, 100]. Required.
	// example: 74
	WritingScore *float64 `json:"writing score" validate:"required" example:"74"`
}

// PredictResponse is returned by POST /predict on success.
type PredictResponse struct {
	// Unique id of this prediction, also present in server logs.
	// example: 5b0f3f1e-8d0c-4a53-9f7e-0f1f1c9e1c2a
	ID string `json:"prediction_id" example:"5b0f3f1e-8d0c-4a53-9f7e-0f1f1c9e1c2a"`
	// Raw model output.
	// example: 68.41733
	MathScore float64 `json:"math_score" example:"68.41733"`
	// Model output rounded to two decimals.
	// example: 68.42
	Formatted string `json:"formatted" example:"68.42"`
	// Whether the value was served from the prediction cache.
	// example: false
	Cached bool `json:"cached" example:"false"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
	// Field that failed validation, if any.
	// example: gender
	Field string `json:"field,omitempty" example:"gender"`
	// Rejected value, if any.
	// example: other
	Value any `json:"value,omitempty"`
	// Accepted values for the field, if it is categorical.
	// example: ["female","male"]
	Accepted []string `json:"accepted,omitempty"`
}

// FieldOptions lists the valid choices for one categorical field.
type FieldOptions struct {
	// Field name as sent in PredictRequest.
	// example: lunch
	Field string `json:"field" example:"lunch"`
	// Valid labels in encoder order.
	// example: ["free/reduced","standard"]
	Options []string `json:"options"`
	// True when the labels come from a loaded encoder rather than the fallback list.
	// example: true
	FromEncoder bool `json:"from_encoder" example:"true"`
}

// NumericBounds describes the accepted range of a numeric field.
type NumericBounds struct {
	// Field name as sent in PredictRequest.
	// example: reading score
	Field string `json:"field" example:"reading score"`
	// example: 0
	Min float64 `json:"min" example:"0"`
	// example: 100
	Max float64 `json:"max" example:"100"`
	// example: 70
	Default float64 `json:"default" example:"70"`
	// example: 1
	Step float64 `json:"step" example:"1"`
}

// OptionsResponse is returned by GET /options.
type OptionsResponse struct {
	Categorical []FieldOptions  `json:"categorical"`
	Numeric     []NumericBounds `json:"numeric"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Overall state (loading, ready, error).
	// example: ready
	State string `json:"state" example:"ready"`
	// Model artifact path.
	// example: /srv/scored/artifacts/model.json
	ModelPath string `json:"model_path" example:"/srv/scored/artifacts/model.json"`
	// Encoder artifact path.
	// example: /srv/scored/artifacts/encoders.json
	EncodersPath string `json:"encoders_path" example:"/srv/scored/artifacts/encoders.json"`
	// Model kind from the artifact.
	// example: random_forest
	ModelKind string `json:"model_kind,omitempty" example:"random_forest"`
	// Column order expected by the model.
	FeatureNames []string `json:"feature_names,omitempty"`
	// Categorical fields that have an encoder.
	EncodedFields []string `json:"encoded_fields,omitempty"`
	// Artifact load error, if loading failed.
	LoadError string `json:"load_error,omitempty"`
	// Number of cached predictions.
	// example: 12
	CacheEntries int `json:"cache_entries" example:"12"`
	// Total predictions served since start.
	// example: 40
	PredictionsTotal uint64 `json:"predictions_total" example:"40"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
