package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
)

// Config is the command configuration. It is read from the -config file,
// then overridden by flags and positional arguments.
type Config struct {
	Models   []string `yaml:"models"`
	Warnings string   `yaml:"warnings"`
	Format   string   `yaml:"format"`
	Watch    bool     `yaml:"watch"`
	Verbose  bool     `yaml:"verbose"`
}

// readConfig reads a YAML configuration file. Relative paths in the file are
// resolved against its directory.
func readConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	rel := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	for i, m := range cfg.Models {
		cfg.Models[i] = rel(m)
	}
	cfg.Warnings = rel(cfg.Warnings)
	return cfg, nil
}

func parseFlags(args []string, stderr io.Writer) (*Config, error) {
	fs := flag.NewFlagSet("relmap", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: relmap [flags] model.yaml...")
		fs.PrintDefaults()
	}
	var (
		configPath = fs.String("config", "", "configuration `file`")
		warnings   = fs.String("warnings", "", "warnings configuration `file`")
		format     = fs.String("format", "", "output format: text or json")
		watch      = fs.Bool("watch", false, "validate documents again when they are written")
		verbose    = fs.Bool("v", false, "log validation runs to stderr")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg := &Config{}
	if *configPath != "" {
		var err error
		if cfg, err = readConfig(*configPath); err != nil {
			return nil, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "warnings":
			cfg.Warnings = *warnings
		case "format":
			cfg.Format = *format
		case "watch":
			cfg.Watch = *watch
		case "v":
			cfg.Verbose = *verbose
		}
	})
	if fs.NArg() > 0 {
		cfg.Models = fs.Args()
	}
	if cfg.Format == "" {
		cfg.Format = formatText
	}
	if cfg.Format != formatText && cfg.Format != formatJSON {
		return nil, fmt.Errorf("unknown format %q", cfg.Format)
	}
	if len(cfg.Models) == 0 {
		return nil, errors.New("no model documents")
	}
	return cfg, nil
}
