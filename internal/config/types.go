// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	Voice    VoiceConfig    `mapstructure:"voice"`
	Matching MatchingConfig `mapstructure:"matching"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Type        string `mapstructure:"type"` // "sqlite" or "postgres"
	SQLitePath  string `mapstructure:"sqlite_path"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

// SessionConfig holds session-state persistence settings. The session store
// is a small key-value collaborator holding recent searches and saved notes.
type SessionConfig struct {
	Store    string      `mapstructure:"store"` // "file" or "redis"
	FilePath string      `mapstructure:"file_path"`
	Redis    RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds redis connection settings for the session store
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// VoiceConfig holds voice input configuration
type VoiceConfig struct {
	Enabled      bool   `mapstructure:"enabled"`       // Feature flag for speech-to-text
	LanguageCode string `mapstructure:"language_code"` // BCP-47 code, e.g. "en-US"
}

// MatchingConfig holds settings for the symptom matching engine
type MatchingConfig struct {
	MaxResults   int  `mapstructure:"max_results"`   // Result list cap for an analysis
	SpeakResults bool `mapstructure:"speak_results"` // Narrate the summary through the speaker
}

// SessionStores defines valid session store backends
const (
	SessionStoreFile  = "file"
	SessionStoreRedis = "redis"
)

// ValidSessionStores returns all valid session store values
func ValidSessionStores() []string {
	return []string{SessionStoreFile, SessionStoreRedis}
}

// IsValidSessionStore checks if a session store backend is valid
func IsValidSessionStore(store string) bool {
	for _, valid := range ValidSessionStores() {
		if store == valid {
			return true
		}
	}
	return false
}
