// Package commands implements the CLI command structure using Cobra.
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petal-labs/loupe/cli/config"
	"github.com/petal-labs/loupe/cli/keystore"
	"github.com/petal-labs/loupe/core"
)

// ConfigLoader loads CLI config from a path.
type ConfigLoader func(path string) (*config.Config, error)

// ClientFactory creates a service client for a host.
type ClientFactory func(host, apiKey string) *core.Client

// KeystoreFactory creates a keystore instance.
type KeystoreFactory func() (keystore.Keystore, error)

// AppOption customizes App dependencies.
type AppOption func(*App)

// App holds CLI state and runtime dependencies.
type App struct {
	root *cobra.Command

	loadConfig  ConfigLoader
	newClient   ClientFactory
	newKeystore KeystoreFactory
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	cfgFile     string
	host        string
	jsonOutput  bool
	verbose     bool
	cfg         *config.Config

	indexPrimaryKey string
	docsFile        string
	docsPrimaryKey  string
	docsFields      []string
	docsFilter      string
	docsAll         bool
	searchLimit     int64
	searchOffset    int64
	searchFilter    string
	taskWait        bool
	taskInterval    string
	taskTimeout     string
}

// WithConfigLoader injects a config loader dependency.
func WithConfigLoader(loader ConfigLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.loadConfig = loader
		}
	}
}

// WithClientFactory injects a client factory dependency.
func WithClientFactory(factory ClientFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newClient = factory
		}
	}
}

// WithKeystoreFactory injects a keystore factory dependency.
func WithKeystoreFactory(factory KeystoreFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newKeystore = factory
		}
	}
}

// WithIO injects process I/O streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) AppOption {
	return func(a *App) {
		if stdin != nil {
			a.stdin = stdin
		}
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
	}
}

// NewApp creates a new CLI app with default dependencies.
func NewApp(opts ...AppOption) *App {
	a := &App{
		loadConfig:  config.LoadConfig,
		newClient:   defaultClientFactory,
		newKeystore: keystore.NewKeystore,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.root = a.newRootCommand()
	return a
}

func defaultClientFactory(host, apiKey string) *core.Client {
	return core.New(host, apiKey)
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "loupe",
		Short: "Loupe - document search service CLI",
		Long: `Loupe is a command-line interface for a remote document-search service.

Use Loupe to manage indexes, add and delete documents, run searches,
and follow asynchronous tasks.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		SilenceUsage: true,
	}

	// Global flags available to all commands.
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.loupe/config.yaml)")
	root.PersistentFlags().StringVar(&a.host, "host", "", "host alias from config, or a service URL")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "emit JSON output")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "enable debug logging")

	root.AddCommand(a.newVersionCommand())
	root.AddCommand(a.newHealthCommand())
	root.AddCommand(a.newIndexCommand())
	root.AddCommand(a.newDocumentsCommand())
	root.AddCommand(a.newSearchCommand())
	root.AddCommand(a.newTaskCommand())
	root.AddCommand(a.newKeysCommand())

	return root
}

// Execute runs the root command.
func (a *App) Execute() error {
	return a.root.Execute()
}

func (a *App) initConfig() error {
	path := a.cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := a.loadConfig(path)
	if err != nil {
		return err
	}
	a.cfg = cfg

	return nil
}

// resolveClient turns the --host flag (or config defaults) into a live
// client. The flag may be a host alias from the config or a bare URL;
// without it the config's default_host applies, then localhost.
func (a *App) resolveClient() (*core.Client, error) {
	alias := a.host
	if alias == "" {
		alias = a.cfg.DefaultHost
	}

	hostURL := "http://localhost:7700"
	apiKeyRef := ""

	switch {
	case alias == "":
		// Bare localhost default.
	case strings.HasPrefix(alias, "http://") || strings.HasPrefix(alias, "https://"):
		hostURL = alias
	default:
		hc := a.cfg.GetHost(alias)
		if hc == nil {
			return nil, exitWithCode(ExitValidation, fmt.Errorf("unknown host alias %q: add it under hosts in the config file", alias))
		}
		hostURL = hc.URL
		apiKeyRef = hc.APIKeyRef
	}

	apiKey := os.Getenv("LOUPE_API_KEY")
	if apiKey == "" && apiKeyRef != "" {
		ks, err := a.newKeystore()
		if err != nil {
			return nil, exitWithCode(ExitValidation, fmt.Errorf("failed to open keystore: %w", err))
		}
		apiKey, err = ks.Get(apiKeyRef)
		if err != nil {
			if _, ok := err.(*keystore.ErrKeyNotFound); ok {
				return nil, exitWithCode(ExitValidation, fmt.Errorf("no key stored for %q: run 'loupe keys set %s' first", apiKeyRef, apiKeyRef))
			}
			return nil, exitWithCode(ExitValidation, fmt.Errorf("failed to get API key: %w", err))
		}
	}

	return a.newClient(hostURL, apiKey), nil
}

var defaultApp = NewApp()

// Execute runs the default app root command.
func Execute() error {
	return defaultApp.Execute()
}
