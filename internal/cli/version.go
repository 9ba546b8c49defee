package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cicd-demo/calcd/internal/server"
	"github.com/cicd-demo/calcd/internal/style"
)

// Build-time variables (set by goreleaser or build scripts)
var (
	Version   = "dev"
	Commit    = "unknown"
	Date      = "unknown"
	BuiltBy   = "unknown"
	GoVersion = runtime.Version()
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display version information for calcd, including build details and the HTTP API version.`,
	Example: `
  calcd version              # Show basic version info
  calcd version --output json # Show version info as JSON`,
	Run: func(cmd *cobra.Command, args []string) {
		showVersion(cmd)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// VersionInfo represents version information
type VersionInfo struct {
	Version    string `json:"version" yaml:"version"`
	APIVersion string `json:"api_version" yaml:"api_version"`
	Commit     string `json:"commit" yaml:"commit"`
	Date       string `json:"date" yaml:"date"`
	BuiltBy    string `json:"built_by" yaml:"built_by"`
	GoVersion  string `json:"go_version" yaml:"go_version"`
	Platform   string `json:"platform" yaml:"platform"`
}

func currentVersionInfo() VersionInfo {
	return VersionInfo{
		Version:    Version,
		APIVersion: server.APIVersion.String(),
		Commit:     Commit,
		Date:       Date,
		BuiltBy:    BuiltBy,
		GoVersion:  GoVersion,
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

func showVersion(cmd *cobra.Command) {
	versionInfo := currentVersionInfo()

	switch viper.GetString("output") {
	case "json":
		style.PrintJSON(cmd.OutOrStdout(), versionInfo)
	case "yaml":
		style.PrintYAML(cmd.OutOrStdout(), versionInfo)
	default:
		printText(cmd.OutOrStdout(), versionInfo)
	}
}

func printText(w io.Writer, info VersionInfo) {
	fmt.Fprintf(w, "%s (api %s)\n", info.Version, info.APIVersion)
}
