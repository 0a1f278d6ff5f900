package helpers

const (
	dirSuffix         = ".pandora"
	defaultHomeDir    = "/root"
	defaultConfigName = "pandora.toml"
)
