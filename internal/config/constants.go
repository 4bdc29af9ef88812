package config

import "resumenapi/pkg/contracts"

// Application identity, reported by /api/version and the CLI.
const (
	AppName    = "resumen"
	AppVersion = contracts.Version
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "RESUMEN"

// ConfigFileEnv names an explicit YAML file to load instead of the search list.
const ConfigFileEnv = "RESUMEN_CONFIG_FILE"

// DefaultAllowedOrigins are the browser front ends permitted to upload files.
var DefaultAllowedOrigins = []string{
	"https://excel-frontend.web.app",
	"https://deploy-fastapi-backend.onrender.com",
	"http://localhost:5173",
}

// configSearchPaths is checked in order when ConfigFileEnv is unset.
var configSearchPaths = []string{
	"config.yaml",
	"configs/config.yaml",
	"../configs/config.yaml",
}
