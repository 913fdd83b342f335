package config

// Default returns the built-in configuration. Directory paths are empty on
// purpose; they come from the config file or command-line flags.
func Default() Config {
	return Config{
		Paths: Paths{},
		Mux: Mux{
			Direction: "vf_to_vostfr",
			Workers:   0,
			Speedfix:  true,
		},
		Tools: Tools{
			FFmpeg:  "ffmpeg",
			FFprobe: "ffprobe",
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
		History: History{
			Enabled: true,
		},
	}
}
