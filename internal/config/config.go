// Package config handles terrain tool configuration loading and management.
package config

// Config holds all tool settings.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Build    BuildConfig    `yaml:"build"`
	Export   ExportConfig   `yaml:"export"`
	Preview  PreviewConfig  `yaml:"preview"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PipelineConfig locates the pipeline document.
type PipelineConfig struct {
	Path string `yaml:"path"`
}

// BuildConfig holds build settings.
type BuildConfig struct {
	UpTo         int    `yaml:"up_to"`          // 1-based last stage; 0 builds everything
	RetrieveSeed bool   `yaml:"retrieve_seed"`  // write the used seed back to the document
	Seed         *int64 `yaml:"seed,omitempty"` // overrides the document seed when set
}

// ExportConfig holds output settings.
type ExportConfig struct {
	Dir string `yaml:"dir"`
	OBJ bool   `yaml:"obj"`
}

// PreviewConfig holds preview image settings.
type PreviewConfig struct {
	Enabled            bool    `yaml:"enabled"`
	Format             string  `yaml:"format"` // png, webp or tga
	Mode               string  `yaml:"mode"`   // wireframe, flat or smooth
	Size               int     `yaml:"size"`
	Supersample        int     `yaml:"supersample"`
	Yaw                float32 `yaml:"yaw"`
	Pitch              float32 `yaml:"pitch"`
	MaterialThreshold  float32 `yaml:"material_threshold"`
	MaterialSmoothness float32 `yaml:"material_smoothness"`
}

// ServerConfig holds websocket server settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			Path: "pipeline.yaml",
		},
		Build: BuildConfig{
			UpTo:         0,
			RetrieveSeed: false,
		},
		Export: ExportConfig{
			Dir: ".",
			OBJ: true,
		},
		Preview: PreviewConfig{
			Enabled:            true,
			Format:             "png",
			Mode:               "smooth",
			Size:               512,
			Supersample:        2,
			Yaw:                0.6,
			Pitch:              0.6,
			MaterialThreshold:  0.7,
			MaterialSmoothness: 0.1,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
