// Package config loads the service configuration.
//
// Values are resolved in three layers, later layers winning:
//
//	1. Default()
//	2. an optional YAML file (config.yaml, configs/config.yaml, or RESUMEN_CONFIG_FILE)
//	3. environment variables prefixed with RESUMEN_
//
// Environment variables follow the struct layout, for example:
//
//	RESUMEN_SERVER_PORT=8000
//	RESUMEN_SECURITY_ALLOWED_ORIGINS=https://a.example,https://b.example
//	RESUMEN_REPORT_VARIANT=B
//	RESUMEN_UPLOAD_MAX_BYTES=33554432
//
// The merged result is validated with go-playground/validator before use.
package config
