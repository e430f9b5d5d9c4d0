package study

// Config holds generation settings per action. Empty model names use the
// provider's configured model.
type Config struct {
	PlanModel     string
	PlanMaxTokens int

	DoubtModel       string
	DoubtTemperature float64
	DoubtTopP        float64
	DoubtTopK        int

	ResourceModel string
}

// DefaultConfig returns provider-neutral defaults.
func DefaultConfig() Config {
	return Config{
		PlanMaxTokens:    4096,
		DoubtTemperature: 0.1,
		DoubtTopP:        0.8,
		DoubtTopK:        40,
	}
}

// ConfigFor returns defaults tuned for a provider. Gemini plans use the
// pro model and everything else the flash model.
func ConfigFor(provider string) Config {
	cfg := DefaultConfig()
	if provider == "gemini" {
		cfg.PlanModel = "gemini-pro"
		cfg.DoubtModel = "gemini-flash"
		cfg.ResourceModel = "gemini-flash"
	}
	return cfg
}
