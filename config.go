package notionmd

import "github.com/goliatone/go-notionmd/internal/runtimeconfig"

var (
	ErrIndentSpacesInvalid      = runtimeconfig.ErrIndentSpacesInvalid
	ErrWorkersInvalid           = runtimeconfig.ErrWorkersInvalid
	ErrExportOutputDirRequired  = runtimeconfig.ErrExportOutputDirRequired
	ErrSlugStrategyUnknown      = runtimeconfig.ErrSlugStrategyUnknown
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
	ErrMetricsNamespaceRequired = runtimeconfig.ErrMetricsNamespaceRequired
)

type (
	Config               = runtimeconfig.Config
	ConversionConfig     = runtimeconfig.ConversionConfig
	Features             = runtimeconfig.Features
	LoggingConfig        = runtimeconfig.LoggingConfig
	ExportConfig         = runtimeconfig.ExportConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	MetricsConfig        = runtimeconfig.MetricsConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
