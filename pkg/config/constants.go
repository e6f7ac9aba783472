package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "GIGWORK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)
