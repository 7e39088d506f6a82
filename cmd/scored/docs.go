package main

// General API documentation for swaggo. Run `make swagger-gen` to regenerate
// internal/apidocs.
//
// @title           scored API
// @version         1.0
// @description     Predicts a student's math score from profile fields and reading/writing scores.
//
// @contact.name   scored maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
