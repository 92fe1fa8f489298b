// Package utils exposes reusable helpers consumed by multiple commands.
//
// It houses the Viper-backed ConfigurationLoader, the zap LoggerFactory with its optional
// rotating file sink, home directory expansion and the command context accessor.
package utils
