package cli

import (
	"io"
	"os"
	"time"

	"github.com/Backland-Labs/wbpeek/internal/config"
	"github.com/Backland-Labs/wbpeek/internal/output"
	"github.com/Backland-Labs/wbpeek/internal/wandb"
	"github.com/spf13/viper"
)

// ConfigLoader interface for dependency injection in tests
type ConfigLoader interface {
	Load(v *viper.Viper) (*config.Config, error)
}

// ClientFactory creates the API client for a loaded configuration
type ClientFactory interface {
	NewClient(cfg *config.Config) (wandb.Client, error)
}

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// Real implementations for production use

// RealConfigLoader implements ConfigLoader using the real config package
type RealConfigLoader struct{}

func (r *RealConfigLoader) Load(v *viper.Viper) (*config.Config, error) {
	return config.Load(v)
}

// RealClientFactory implements ClientFactory with the W&B GraphQL client
type RealClientFactory struct{}

func (r *RealClientFactory) NewClient(cfg *config.Config) (wandb.Client, error) {
	return wandb.NewClient(cfg.API)
}

// RealClock implements Clock using the system clock
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// NewRealDependencies creates production dependencies
func NewRealDependencies() *Dependencies {
	return &Dependencies{
		ConfigLoader:  &RealConfigLoader{},
		ClientFactory: &RealClientFactory{},
		Clock:         RealClock{},
		Printer:       output.NewPrinter(),
		Stdin:         os.Stdin,
	}
}

// Dependencies struct for injection
type Dependencies struct {
	ConfigLoader  ConfigLoader
	ClientFactory ClientFactory
	Clock         Clock
	Printer       *output.Printer
	// Stdin is read for the delete confirmation
	Stdin io.Reader
}
