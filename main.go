package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/calegray/evil-hangman/internal/game"
	"github.com/calegray/evil-hangman/internal/httpserver"
	"github.com/calegray/evil-hangman/internal/store"
	"github.com/calegray/evil-hangman/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	index, err := words.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionary")
	}
	lengths, total := index.Stats()
	log.Info().Int("lengths", lengths).Int("words", total).Msg("dictionary loaded")

	db, err := openDB(getEnv("DB_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	eng := game.NewEngine(index, nil)
	mem := store.NewMemoryStore()
	srv := httpserver.New(eng, mem, db)
	port := getEnv("PORT", "5186")
	log.Info().Str("port", port).Msg("starting evil-hangman server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
