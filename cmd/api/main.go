// @title           Wedding AI API
// @version         1.0
// @description     Answers wedding planning questions from live planning data and indexed documentation.
// @termsOfService  http://swagger.io/terms/

// @contact.name    Wedding AI
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /
// @schemes   http https
package main

import (
	"fmt"
	"os"

	"github.com/SHoar/Wedding-AI/internal/config"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "wedding-ai",
	Short: "Wedding planning question answering service",
	Long: `wedding-ai answers wedding planning questions over HTTP.

Answers combine a summary of the caller's planning data with passages
retrieved from the markdown documentation index.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML settings file")
	rootCmd.Flags().StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
}

// loadSettings resolves configuration and initialises logging. Every command starts here.
func loadSettings() (config.Settings, error) {
	s, err := config.Load(configPath)
	if err != nil {
		return s, err
	}
	logger_i.Init(s.IsProd(), s.LogLevel)
	return s, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
