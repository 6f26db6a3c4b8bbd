// Command trainer builds the classifier artifact from the training data
// file. It runs offline; the serving process only ever reads the artifact
// this writes.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/complaintdesk/triage/internal/bootstrap"
	"github.com/complaintdesk/triage/internal/logging"
	"github.com/complaintdesk/triage/internal/trainer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "trainer: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	dataPath := flag.String("data", cfg.Model.TrainingDataPath, "training data CSV (description,category)")
	artifactPath := flag.String("out", cfg.Model.ArtifactPath, "artifact output path")
	flag.Parse()

	log, err := bootstrap.CreateLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	examples, err := trainer.LoadOrSeed(*dataPath, log)
	if err != nil {
		return err
	}
	log.Info("training data loaded",
		logging.String("path", *dataPath),
		logging.Int("examples", len(examples)),
	)

	t := trainer.New(trainer.Config{}, log)
	artifact, err := t.Train(examples)
	if err != nil {
		return err
	}

	if err := artifact.Save(*artifactPath); err != nil {
		return err
	}
	log.Info("artifact written", logging.String("path", *artifactPath))
	return nil
}
