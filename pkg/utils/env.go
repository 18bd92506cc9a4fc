package utils

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// LoadConfig reads an optional .env file from the given path and makes every
// environment variable available through viper. Missing .env is not an error.
func LoadConfig(path string) {
	if err := godotenv.Load(path + "/.env"); err == nil {
		logrus.Debug("[CONFIG] loaded .env file")
	}

	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logrus.WithError(err).Debug("[CONFIG] .env not readable, using environment only")
		}
	}
}
