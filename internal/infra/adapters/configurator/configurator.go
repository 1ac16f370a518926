// configurator is an adapter for loading and saving the run
// configuration of podarchiver. It implements the ports.ForConfiguring
// interface.
package configurator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/sa6mwa/podarchiver/internal/app/model"
	"github.com/sa6mwa/podarchiver/internal/app/ports"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/logger"
	"gopkg.in/yaml.v3"
)

const DefaultConfigFile string = "podarchiver.yaml"

// configurator.New returns a local file-based configurator that
// satisfies the ports.ForConfiguring port interface.
func New(configFilename string) ports.ForConfiguring {
	if configFilename == "" {
		configFilename = DefaultConfigFile
	}
	return &forConfiguring{
		configFile: configFilename,
	}
}

// Implements the ports.ForConfiguring interface.
type forConfiguring struct {
	configFile string
}

func (c *forConfiguring) Load(ctx context.Context) (*model.Config, error) {
	l := logger.FromContext(ctx)
	f, err := os.Open(c.configFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.Debug("No configuration file, using defaults", "file", c.configFile)
			return model.DefaultConfig(), nil
		}
		return nil, err
	}
	defer f.Close()
	var config model.Config
	if err := yaml.NewDecoder(f).Decode(&config); err != nil {
		// An empty file decodes to io.EOF.
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("unable to parse %s: %w", c.configFile, err)
		}
	}
	config.SetDefaults()
	l.Debug("Loaded configuration", "file", c.configFile)
	return &config, nil
}

func (c *forConfiguring) Save(ctx context.Context, config *model.Config) error {
	if config == nil {
		return errors.New("received nil pointer config")
	}
	f, err := os.Create(c.configFile)
	if err != nil {
		return fmt.Errorf("unable to write %s: %w", c.configFile, err)
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(config); err != nil {
		return fmt.Errorf("unable to marshal yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("Wrote configuration", "file", c.configFile)
	return nil
}
