package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironsheep/palette-mcp/internal/config"
)

// app carries the state shared by the subcommands of one invocation.
type app struct {
	v          *viper.Viper
	configFile string
	envFile    string
	cfg        *config.Config
}

// newRootCmd builds the command tree. Running the root command without a
// subcommand starts the MCP server.
func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "palette-mcp",
		Short: "MCP server and CLI for image color analysis",
		Long: `palette-mcp reports the most frequent exact colors and the dominant
palette colors of an image.

Without a subcommand it serves MCP over stdin/stdout. Configure it in your
MCP client (e.g., Claude Desktop).

Settings come from flags, PALETTE_MCP_* environment variables, a .env file
and $HOME/.palette-mcp.yaml, in that order of precedence.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.loadConfig,
		RunE:              a.runServe,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default is $HOME/.palette-mcp.yaml)")
	flags.StringVar(&a.envFile, "env-file", ".env", "file of KEY=VALUE pairs loaded into the environment")
	flags.Int("top", 0, "number of colors to report (default 5)")
	flags.String("quantizer", "", "palette quantizer: median-cut, kmeans, weighted or prominent")
	flags.String("resampler", "", "downsampling filter: box or nearest")
	flags.Int("max-dimension", 0, "longest side of the image after downsampling (default 100)")
	flags.Bool("dither", false, "use Floyd-Steinberg dithering when mapping pixels to the palette")
	flags.String("log-level", "", "log level: debug or info")

	for key, flag := range map[string]string{
		config.KeyTopColors:    "top",
		config.KeyQuantizer:    "quantizer",
		config.KeyResampler:    "resampler",
		config.KeyMaxDimension: "max-dimension",
		config.KeyDither:       "dither",
		config.KeyLogLevel:     "log-level",
	} {
		// Bound flags only take effect when set on the command line.
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(a.newServeCmd(), a.newAnalyzeCmd(), newVersionCmd())
	return rootCmd
}

// loadConfig resolves settings before any command runs.
func (a *app) loadConfig(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(a.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if cfg.Debug() {
		log.Printf("palette-mcp %s (built %s, commit %s)", Version, BuildTime, GitCommit)
		if used := a.v.ConfigFileUsed(); used != "" {
			log.Printf("using config file %s", used)
		}
	}
	return nil
}
