package cli

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/cicd-demo/calcd/internal/style"
)

var (
	// Global flags
	cfgFile      string
	logLevel     string
	outputFormat string
	quiet        bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "calcd",
	Short: "calcd - a small arithmetic HTTP service",
	Long: `calcd serves a JSON API with a welcome route, a health check and a
four-operation calculator (add, subtract, multiply, divide).

The same calculator is available offline through the calc subcommand.`,
	Version: getVersion(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return fang.Execute(context.Background(), rootCmd, fang.WithColorSchemeFunc(func(lightDark lipgloss.LightDarkFunc) fang.ColorScheme {
		return fang.ColorScheme{
			Base:           style.PrimaryTextColor,
			Title:          style.AccentColor,
			Description:    style.PrimaryTextColor,
			Codeblock:      style.CodeColor,
			Program:        style.AccentColor,
			DimmedArgument: style.MutedColor,
			Comment:        style.MutedColor,
			Flag:           style.InfoColor,
			FlagDefault:    style.MutedColor,
			Command:        style.SuccessColor,
			QuotedString:   style.WarningColor,
			Argument:       style.PrimaryTextColor,
			Help:           style.InfoColor,
			Dash:           style.MutedColor,
			ErrorHeader:    [2]color.Color{style.ErrorColor, style.ErrorBgColor},
			ErrorDetails:   style.ErrorColor,
		}
	}))
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.calcd/calcd.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error, disabled)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "text", "output format (text, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	bindRootConfig()
}

// bindRootConfig binds global flags to viper and registers defaults along
// with the plain environment names honoured next to the CALCD_ prefixed ones
func bindRootConfig() {
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))

	viper.SetDefault("host", "0.0.0.0")
	viper.SetDefault("port", 5000)
	viper.SetDefault("debug", false)
	viper.SetDefault("metrics", true)
	viper.SetDefault("cors", true)

	_ = viper.BindEnv("host", "CALCD_HOST")
	_ = viper.BindEnv("port", "CALCD_PORT", "PORT")
	_ = viper.BindEnv("debug", "CALCD_DEBUG", "DEBUG")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home + "/.calcd")
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("calcd")
	}

	// Environment variables
	viper.SetEnvPrefix("CALCD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		if !viper.GetBool("quiet") {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	}
}

// initLogging configures the global logger
func initLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(parseLogLevel(viper.GetString("log-level"), viper.GetBool("debug")))

	// Configure console output for better readability
	if viper.GetString("output") == "text" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// parseLogLevel maps a level name to a zerolog level. debug forces DebugLevel.
func parseLogLevel(level string, debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}

	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}

// getVersion returns the version information
func getVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, go: %s)", Version, Commit, Date, GoVersion)
}
