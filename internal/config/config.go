package config

import "github.com/spf13/viper"

// Config holds all configuration for the application, loaded from an env file
// and overridable through environment variables.
type Config struct {
	ServerAddress    string `mapstructure:"SERVER_ADDRESS"`
	DBPath           string `mapstructure:"DB_PATH"`
	AdminKey         string `mapstructure:"ADMIN_KEY"`
	NominatimBaseURL string `mapstructure:"NOMINATIM_BASE_URL"`
	TimeOffsetHours  int    `mapstructure:"TIME_OFFSET_HOURS"`
}

// LoadConfig reads configuration from app.env in the given directory, letting
// environment variables of the same name take precedence.
func LoadConfig(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return Config{}, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, err
	}

	return config, nil
}
