package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/application/common/slogger"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mapbridge",
	Short: "Middleware bridging the ADAMO and MAP Tool fragrance databases",
	Long: `mapbridge reconciles fragrance-evaluation records between the legacy
ADAMO database (Oracle, schema GIV_MAP) and the MAP Tool database
(PostgreSQL, schema map_adm).

It provides:
- Field-by-field record translation between the two schemas
- Incremental two-way sync with dry-run and skip-existing semantics
- A one-shot, dependency-ordered bulk migration of a populated ADAMO
  database into MAP Tool
- An HTTP API exposing sync, migration and direct ADAMO write operations`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./configs/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (json, text)")
}

func initConfig() {
	v := viper.New()

	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("MAPBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
		// Config file not found; defaults and environment apply.
	}

	if err := bindFlagOverrides(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding flags: %v\n", err)
	}

	loaded, err := config.Load(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded

	slogger.Configure(cfg.Log.Level, cfg.Log.Format)
}

func bindFlagOverrides(v *viper.Viper) error {
	if flag := rootCmd.PersistentFlags().Lookup("log-level"); flag != nil && flag.Changed {
		if err := v.BindPFlag("log.level", flag); err != nil {
			return err
		}
	}
	if flag := rootCmd.PersistentFlags().Lookup("log-format"); flag != nil && flag.Changed {
		if err := v.BindPFlag("log.format", flag); err != nil {
			return err
		}
	}
	return nil
}
