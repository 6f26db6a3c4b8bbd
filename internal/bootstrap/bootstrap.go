// Package bootstrap wires the service components together at startup.
package bootstrap

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/complaintdesk/triage/internal/config"
	"github.com/complaintdesk/triage/internal/database"
	"github.com/complaintdesk/triage/internal/logging"
	"github.com/complaintdesk/triage/internal/ml"
)

// LoadConfig loads .env (if present) and the service configuration.
func LoadConfig() (*config.Config, error) {
	_ = godotenv.Load() // optional
	return config.Load(config.Path())
}

// CreateLogger creates a logger instance from configuration.
func CreateLogger(cfg *config.Config) (logging.Logger, error) {
	log, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logging.String("service", cfg.Service.Name)), nil
}

// DatabaseComponents holds the database connection and repositories.
type DatabaseComponents struct {
	DB            *sqlx.DB
	ComplaintRepo *database.ComplaintRepository
	UserRepo      *database.UserRepository
}

// SetupDatabase opens the sqlite database and builds the repositories.
func SetupDatabase(cfg *config.Config, log logging.Logger) (*DatabaseComponents, error) {
	log.Info("Opening database", logging.String("path", cfg.Database.Path))

	db, err := database.NewSQLiteConnection(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connected successfully")

	return &DatabaseComponents{
		DB:            db,
		ComplaintRepo: database.NewComplaintRepository(db),
		UserRepo:      database.NewUserRepository(db),
	}, nil
}

// LoadPredictor loads the classifier artifact. A missing or corrupt
// artifact is fatal: the caller must not start serving without one.
func LoadPredictor(cfg *config.Config, log logging.Logger) (*ml.Predictor, error) {
	artifact, err := ml.LoadArtifact(cfg.Model.ArtifactPath)
	if err != nil {
		return nil, err
	}

	predictor := ml.NewPredictor(artifact)
	log.Info("Classifier artifact loaded",
		logging.String("path", cfg.Model.ArtifactPath),
		logging.Int("vocabulary_size", artifact.Vocabulary.Size()),
		logging.Int("labels", len(artifact.Model.Labels)),
	)
	return predictor, nil
}
