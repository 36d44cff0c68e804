/*
Package cmd implements the command-line interface for the worker
process. The bare command runs the stdio protocol loop, so the binary
can be spawned by an orchestrator without any arguments.
*/
package cmd

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

/*
Embed a mini filesystem into the binary to hold the default config file.
This will be written to the home directory of the user running the
worker, which allows a developer to easily override the config file.
*/
//go:embed cfg/*
var embedded embed.FS

var (
	projectName = "worker-go"
	cfgFile     string

	rootCmd = &cobra.Command{
		Use:   "worker-go",
		Short: "A line-delimited JSON-RPC 2.0 worker process",
		Long:  longRoot,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorker(cmd)
		},
	}
)

/*
Execute is the main entry point for the worker CLI. It initializes the
root command and executes it.
*/
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is $HOME/."+projectName+"/config.yml)",
	)
}

/*
initConfig loads the configuration. A worker is often spawned in an
environment without a usable home directory, so every failure here is
survivable: the built-in defaults keep the protocol loop working.
*/
func initConfig() {
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.caller", false)
	viper.SetDefault("logging.file", "")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if err := writeConfig(); err != nil {
			log.Warn("could not write default config", "error", err)
		}

		viper.SetConfigName("config")
		viper.SetConfigType("yml")

		home, _ := os.UserHomeDir()
		viper.AddConfigPath(home + "/." + projectName)
	}

	if err := viper.ReadInConfig(); err != nil {
		log.Warn("running on built-in defaults", "error", err)
	}
}

/*
writeConfig writes the default config file to the user's home directory
when none is there yet.
*/
func writeConfig() (err error) {
	var (
		home string
		fh   fs.File
		buf  bytes.Buffer
	)

	if home, err = os.UserHomeDir(); err != nil {
		return fmt.Errorf("no home directory: %w", err)
	}

	configDir := home + "/." + projectName

	if !checkFileExists(configDir) {
		if err = os.MkdirAll(configDir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	fullPath := configDir + "/config.yml"

	if checkFileExists(fullPath) {
		return nil
	}

	if fh, err = embedded.Open("cfg/config.yml"); err != nil {
		return fmt.Errorf("failed to open embedded config file: %w", err)
	}

	defer fh.Close()

	if _, err = io.Copy(&buf, fh); err != nil {
		return fmt.Errorf("failed to read embedded config file: %w", err)
	}

	if err = os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	log.Debug("wrote config file", "path", fullPath)

	return nil
}

func checkFileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !errors.Is(err, os.ErrNotExist)
}

/*
longRoot contains the detailed help text for the root command.
*/
var longRoot = `
worker-go is a line-delimited JSON-RPC 2.0 worker. It reads one message
per line from stdin, dispatches requests to its method table, and writes
responses and log notifications to stdout. It is meant to be spawned and
driven by a parent orchestrator.
`
