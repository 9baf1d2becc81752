package tmdb

import "os"

const BaseURL = "https://api.themoviedb.org/3"

type Config struct {
	APIKey string
}

func NewConfig() *Config {
	return &Config{
		APIKey: os.Getenv("TMDB_API_KEY"),
	}
}
