// SPDX-License-Identifier: MIT
//
// File: root.go
// Role: Root command, configuration file handling and the training run.

package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/splitter/core"
	"github.com/katalvlaran/splitter/ego"
	"github.com/katalvlaran/splitter/trainer"
	"github.com/katalvlaran/splitter/walker"
)

// config carries every knob of a run. Values come from three layers, each
// overriding the previous: built-in defaults, the optional YAML config file,
// and command-line flags that were explicitly set.
type config struct {
	Input string `yaml:"input"`

	// Embedding and loss.
	Dimensions      int     `yaml:"dimensions"`
	Lambda          float64 `yaml:"lambda"`
	WindowSize      int     `yaml:"window_size"`
	NegativeSamples int     `yaml:"negative_samples"`
	BatchSize       int     `yaml:"batch_size"`
	LearningRate    float64 `yaml:"learning_rate"`
	Epochs          int     `yaml:"epochs"`
	Workers         int     `yaml:"workers"`
	Seed            int64   `yaml:"seed"`

	// Walk simulation and base fit.
	NumWalks   int     `yaml:"num_walks"`
	WalkLength int     `yaml:"walk_length"`
	P          float64 `yaml:"p"`
	Q          float64 `yaml:"q"`

	// Output paths; empty paths are not written.
	BaseEmbedding    string `yaml:"base_embedding"`
	PersonaEmbedding string `yaml:"persona_embedding"`
	PersonaGraph     string `yaml:"persona_graph"`
	Mapping          string `yaml:"mapping"`

	Verbose bool `yaml:"verbose"`
}

// defaultConfig mirrors trainer.DefaultOptions plus the walker defaults.
func defaultConfig() config {
	opts := trainer.DefaultOptions()

	return config{
		Dimensions:       opts.Dimensions,
		Lambda:           opts.Lambda,
		WindowSize:       opts.WindowSize,
		NegativeSamples:  opts.NegativeSamples,
		BatchSize:        opts.BatchSize,
		LearningRate:     opts.LearningRate,
		Epochs:           opts.Epochs,
		Workers:          opts.Workers,
		NumWalks:         10,
		WalkLength:       80,
		P:                1,
		Q:                1,
		PersonaEmbedding: "persona_embedding.json",
	}
}

// loadConfig reads a YAML config file over base. Unknown keys are rejected so
// typos fail loudly instead of silently keeping a default.
func loadConfig(path string, base config) (config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return config{}, fmt.Errorf("reading config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(&base); err != nil {
		return config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return base, nil
}

func newRootCmd() *cobra.Command {
	cfg := defaultConfig()
	configPath := ""

	cmd := &cobra.Command{
		Use:   "splitter",
		Short: "Train persona embeddings over a graph",
		Long: `Splitter learns one embedding per persona of every graph node: a base
embedding is fitted over the input graph, the graph is split into personas,
and persona embeddings are trained to predict walk co-occurrence while being
regularized toward their node's base embedding.

The input graph is a line-oriented edge list, one "node node" pair per line;
lines starting with '#' are skipped.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			merged, err := mergeConfig(cmd, cfg, configPath)
			if err != nil {
				return err
			}

			return run(cmd, merged)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.Input, "input", "i", cfg.Input, "input edge-list file (required unless set in --config)")
	flags.StringVarP(&configPath, "config", "c", "", "YAML config file; flags override its values")

	flags.IntVar(&cfg.Dimensions, "dimensions", cfg.Dimensions, "embedding dimension")
	flags.Float64Var(&cfg.Lambda, "lambda", cfg.Lambda, "regularization weight toward the base embedding")
	flags.IntVar(&cfg.WindowSize, "window-size", cfg.WindowSize, "skip-gram window over persona walks")
	flags.IntVar(&cfg.NegativeSamples, "negative-samples", cfg.NegativeSamples, "negative samples per positive pair")
	flags.IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "walks per mini-batch")
	flags.Float64Var(&cfg.LearningRate, "learning-rate", cfg.LearningRate, "Adam learning rate")
	flags.IntVar(&cfg.Epochs, "epochs", cfg.Epochs, "passes over the persona walks")
	flags.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent batch builders (>1 is non-deterministic)")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed; 0 means clock-seeded")

	flags.IntVar(&cfg.NumWalks, "num-walks", cfg.NumWalks, "walks started per node per round")
	flags.IntVar(&cfg.WalkLength, "walk-length", cfg.WalkLength, "walk length in nodes")
	flags.Float64Var(&cfg.P, "p", cfg.P, "node2vec return parameter")
	flags.Float64Var(&cfg.Q, "q", cfg.Q, "node2vec in-out parameter")

	flags.StringVar(&cfg.BaseEmbedding, "base-embedding", cfg.BaseEmbedding, "output path for the base embedding (empty: skip)")
	flags.StringVar(&cfg.PersonaEmbedding, "persona-embedding", cfg.PersonaEmbedding, "output path for the persona embedding (empty: skip)")
	flags.StringVar(&cfg.PersonaGraph, "persona-graph", cfg.PersonaGraph, "output path for the persona edge list (empty: skip)")
	flags.StringVar(&cfg.Mapping, "mapping", cfg.Mapping, "output path for the persona->node mapping (empty: skip)")

	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "debug logging")

	return cmd
}

// mergeConfig layers the config file under explicitly set flags. Flag
// variables already hold flag values, so only unchanged flags fall back to
// the file.
func mergeConfig(cmd *cobra.Command, flagCfg config, configPath string) (config, error) {
	if configPath == "" {
		return flagCfg, nil
	}

	fileCfg, err := loadConfig(configPath, defaultConfig())
	if err != nil {
		return config{}, err
	}

	merged := fileCfg
	flags := cmd.Flags()
	if flags.Changed("input") {
		merged.Input = flagCfg.Input
	}
	if flags.Changed("dimensions") {
		merged.Dimensions = flagCfg.Dimensions
	}
	if flags.Changed("lambda") {
		merged.Lambda = flagCfg.Lambda
	}
	if flags.Changed("window-size") {
		merged.WindowSize = flagCfg.WindowSize
	}
	if flags.Changed("negative-samples") {
		merged.NegativeSamples = flagCfg.NegativeSamples
	}
	if flags.Changed("batch-size") {
		merged.BatchSize = flagCfg.BatchSize
	}
	if flags.Changed("learning-rate") {
		merged.LearningRate = flagCfg.LearningRate
	}
	if flags.Changed("epochs") {
		merged.Epochs = flagCfg.Epochs
	}
	if flags.Changed("workers") {
		merged.Workers = flagCfg.Workers
	}
	if flags.Changed("seed") {
		merged.Seed = flagCfg.Seed
	}
	if flags.Changed("num-walks") {
		merged.NumWalks = flagCfg.NumWalks
	}
	if flags.Changed("walk-length") {
		merged.WalkLength = flagCfg.WalkLength
	}
	if flags.Changed("p") {
		merged.P = flagCfg.P
	}
	if flags.Changed("q") {
		merged.Q = flagCfg.Q
	}
	if flags.Changed("base-embedding") {
		merged.BaseEmbedding = flagCfg.BaseEmbedding
	}
	if flags.Changed("persona-embedding") {
		merged.PersonaEmbedding = flagCfg.PersonaEmbedding
	}
	if flags.Changed("persona-graph") {
		merged.PersonaGraph = flagCfg.PersonaGraph
	}
	if flags.Changed("mapping") {
		merged.Mapping = flagCfg.Mapping
	}
	if flags.Changed("verbose") {
		merged.Verbose = flagCfg.Verbose
	}

	return merged, nil
}

// run executes one training run from a merged config.
func run(cmd *cobra.Command, cfg config) error {
	if cfg.Input == "" {
		return fmt.Errorf("no input edge list: pass --input or set input in --config")
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	f, err := os.Open(cfg.Input)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	g, err := core.ReadEdgeList(f)
	f.Close()
	if err != nil {
		return err
	}
	logger.Info("graph loaded",
		"vertices", g.VertexCount(), "edges", g.EdgeCount(), "input", cfg.Input)

	walkOpts := []walker.Option{
		walker.WithDimensions(cfg.Dimensions),
		walker.WithNumWalks(cfg.NumWalks),
		walker.WithWalkLength(cfg.WalkLength),
		walker.WithBias(cfg.P, cfg.Q),
		walker.WithWindowSize(cfg.WindowSize),
		walker.WithNegatives(cfg.NegativeSamples),
	}
	if cfg.Seed != 0 {
		walkOpts = append(walkOpts, walker.WithSeed(cfg.Seed))
	}
	w, err := walker.New(walkOpts...)
	if err != nil {
		return err
	}

	tr, err := trainer.New(g, w, ego.Identity{},
		trainer.WithDimensions(cfg.Dimensions),
		trainer.WithLambda(cfg.Lambda),
		trainer.WithWindowSize(cfg.WindowSize),
		trainer.WithNegativeSamples(cfg.NegativeSamples),
		trainer.WithBatchSize(cfg.BatchSize),
		trainer.WithLearningRate(cfg.LearningRate),
		trainer.WithEpochs(cfg.Epochs),
		trainer.WithWorkers(cfg.Workers),
		trainer.WithSeed(cfg.Seed),
		trainer.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	if err = tr.Fit(cmd.Context()); err != nil {
		return err
	}

	if cfg.PersonaEmbedding != "" {
		if err = tr.SavePersonaEmbedding(cfg.PersonaEmbedding); err != nil {
			return err
		}
		logger.Info("persona embedding written", "path", cfg.PersonaEmbedding)
	}
	if cfg.BaseEmbedding != "" {
		if err = tr.SaveBaseEmbedding(cfg.BaseEmbedding); err != nil {
			return err
		}
		logger.Info("base embedding written", "path", cfg.BaseEmbedding)
	}
	if cfg.PersonaGraph != "" {
		if err = tr.SavePersonaGraph(cfg.PersonaGraph); err != nil {
			return err
		}
		logger.Info("persona graph written", "path", cfg.PersonaGraph)
	}
	if cfg.Mapping != "" {
		if err = tr.SavePersonaGraphMapping(cfg.Mapping); err != nil {
			return err
		}
		logger.Info("persona mapping written", "path", cfg.Mapping)
	}

	return nil
}
