package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/use-go/camdrv"
	"github.com/use-go/camdrv/internal/config"
)

var (
	cfgFile    string
	jsonOutput bool

	cfg config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "camdb",
	Short: "Inspect the MATRIX camera database and the requests sent to each model",
	Long: `camdb lists the brands and models known to the camera driver, shows
their capabilities and previews the wire requests built for them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return err
		}
		log = cfg.Logger(os.Stderr)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output results as JSON")

	rootCmd.AddCommand(brandsCmd, modelsCmd, infoCmd, streamCmd, serveCmd)
}

// newDriver builds a driver from the loaded config
func newDriver(opts ...camdrv.Option) (*camdrv.Driver, error) {
	deps, err := cfg.Deps()
	if err != nil {
		return nil, err
	}
	opts = append([]camdrv.Option{camdrv.WithDeps(deps), camdrv.WithLogger(log)}, opts...)
	return camdrv.NewDriver(opts...), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
