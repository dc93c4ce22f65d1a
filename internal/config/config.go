package config

import "os"

// Defaults mirror the HeyGen template deployment this service fronts.
const (
	defaultBaseURL       = "https://api.heygen.com"
	defaultTemplateID    = "52df47c0bd8e435c9729121e036d2e7f"
	defaultAvatarID      = "283a8bced1f841c7a9292a9212019165"
	defaultVoiceID       = "fc3a1b6d218246d39ff5199ab147d6ee"
	defaultBackgroundURL = "https://static.heygen.ai/tmp_resource/7fba946a-b927-4bc9-b754-84e28c5546da"
)

type Config struct {
	Port          string
	APIKey        string
	BaseURL       string
	TemplateID    string
	AvatarID      string
	VoiceID       string
	BackgroundURL string
	LogFile       string
}

func Load() Config {
	return Config{
		Port:          getenv("PORT", "8080"),
		APIKey:        os.Getenv("HEYGEN_API_KEY"),
		BaseURL:       getenv("HEYGEN_BASE_URL", defaultBaseURL),
		TemplateID:    getenv("TEMPLATE_ID", defaultTemplateID),
		AvatarID:      getenv("AVATAR_ID", defaultAvatarID),
		VoiceID:       getenv("VOICE_ID", defaultVoiceID),
		BackgroundURL: getenv("BACKGROUND_URL", defaultBackgroundURL),
		LogFile:       os.Getenv("LOG_FILE"),
	}
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
