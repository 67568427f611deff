package config

const configVersionV0 = "0"

// configV0 is the flat layout used before providers were configurable.
// The only backend then was OpenAI.
type configV0 struct {
	Version   string `json:"version"` // required by vconfig-go
	Model     string `json:"model,omitempty"`
	InputDir  string `json:"input_dir,omitempty"`
	OutputDir string `json:"output_dir,omitempty"`
}

// migrateV0 converts a v0 configuration into the current layout. Fields
// missing from v0 take their defaults.
func migrateV0(old *configV0) *configV1 {
	c := newConfigV1()
	c.Model = old.Model
	if old.InputDir != "" {
		c.TemplatesDir = old.InputDir
	}
	if old.OutputDir != "" {
		c.OutputDir = old.OutputDir
	}
	return c
}
