// Command seed loads a trainer config file, validates it and stores it for one
// accommodation, then prints an admin token and a sample scenario.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"reservodojo/config"
	"reservodojo/database"
	configRepo "reservodojo/database/repository/configs"
	"reservodojo/models"
	"reservodojo/services/scenario"
	"reservodojo/utils"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	file := pflag.String("file", "config.json", "trainer config file (JSON or YAML)")
	accommodation := pflag.String("accommodation", "", "accommodation id to store the config for")
	user := pflag.String("user", "seed-admin", "user id placed in the printed token")
	tokenTTL := pflag.Duration("token-ttl", 30*24*time.Hour, "lifetime of the printed token")
	sample := pflag.Bool("sample", true, "print one sample scenario")
	pflag.Parse()

	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if *accommodation == "" {
		fmt.Fprintln(os.Stderr, "--accommodation is required")
		os.Exit(2)
	}

	cfg, err := loadTrainerConfig(*file)
	if err != nil {
		logger.Fatal("Failed to read trainer config", zap.String("file", *file), zap.Error(err))
	}
	if problems := scenario.ValidateConfig(cfg); len(problems) > 0 {
		fmt.Fprintf(os.Stderr, "%s has %d problem(s):\n", *file, len(problems))
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "  - %s\n", p)
		}
		os.Exit(1)
	}

	var repo configRepo.ConfigRepository
	if config.UsesMemoryStore() {
		logger.Warn("STORE_DRIVER=memory, config is validated but not persisted")
		repo = configRepo.NewMemoryConfigRepo()
	} else {
		database.InitDB()
		repo = configRepo.NewMongoConfigRepo()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := repo.Upsert(ctx, *accommodation, cfg); err != nil {
		logger.Fatal("Failed to store trainer config", zap.Error(err))
	}
	logger.Info("Trainer config stored",
		zap.String("accommodationId", *accommodation),
		zap.Int("guests", len(cfg.Guests)),
		zap.Int("roomCategories", len(cfg.RoomCategories)),
	)

	token, err := utils.GenerateToken(utils.Identity{
		UserID:          *user,
		AccommodationID: *accommodation,
		Role:            utils.RoleAdmin,
	}, *tokenTTL)
	if err != nil {
		logger.Fatal("Failed to issue token", zap.Error(err))
	}
	fmt.Printf("Admin token:\n%s\n", token)

	if *sample {
		seed, err := utils.NewSeed()
		if err != nil {
			logger.Fatal("Failed to draw seed", zap.Error(err))
		}
		sc, err := scenario.GenerateScenario(rand.New(rand.NewSource(seed)), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Config is valid but cannot produce a scenario: %v\n", err)
			os.Exit(1)
		}
		out, _ := json.MarshalIndent(sc, "", "  ")
		fmt.Printf("\nSample scenario (seed %d):\n%s\n", seed, out)
	}

	if database.MongoClient != nil {
		_ = database.CloseDB(context.Background())
	}
}

// loadTrainerConfig reads a trainer config file through viper and normalizes it.
func loadTrainerConfig(path string) (models.TrainerConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return models.TrainerConfig{}, err
	}
	raw, err := scenario.DecodeRawConfig(v.AllSettings())
	if err != nil {
		return models.TrainerConfig{}, err
	}
	return scenario.NormalizeConfig(raw, time.Now()), nil
}
