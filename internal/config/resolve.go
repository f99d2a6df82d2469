package config

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// Flag names shared by the commands.
const (
	FlagConfig       = "config"
	FlagWindowSize   = "window-size"
	FlagShape        = "shape"
	FlagSigma        = "sigma"
	FlagInnerRadius  = "inner-radius"
	FlagStrategy     = "strategy"
	FlagOutNoData    = "out-nodata"
	FlagZeroAsNoData = "zero-nodata"
	FlagStandardize  = "standardize"
	FlagCompress     = "compress"
	FlagLogLevel     = "log-level"
	FlagLogFormat    = "log-format"
)

// Environment variables consulted when the matching flag is not set.
const (
	EnvWindowSize = "TPI_WINDOW_SIZE"
	EnvShape      = "TPI_SHAPE"
	EnvStrategy   = "TPI_STRATEGY"
	EnvOutNoData  = "TPI_OUT_NODATA"
	EnvLogLevel   = "TPI_LOG_LEVEL"
	EnvLogFormat  = "TPI_LOG_FORMAT"
)

// Load resolves the configuration for cmd. Each setting is taken from the
// first source that provides it: an explicitly set flag, the environment,
// the --config file, the defaults.
func Load(cmd *cobra.Command) (Config, error) {
	cfg := Defaults()
	if path := getConfigString(cmd, FlagConfig, "", ""); path != "" {
		var err error
		if cfg, err = LoadFile(path, cfg); err != nil {
			return cfg, err
		}
	}

	cfg.WindowSize = getConfigInt(cmd, FlagWindowSize, EnvWindowSize, cfg.WindowSize)
	cfg.Shape = getConfigString(cmd, FlagShape, EnvShape, cfg.Shape)
	cfg.Sigma = getConfigFloat(cmd, FlagSigma, "", cfg.Sigma)
	cfg.InnerRadius = getConfigFloat(cmd, FlagInnerRadius, "", cfg.InnerRadius)
	cfg.Strategy = getConfigString(cmd, FlagStrategy, EnvStrategy, cfg.Strategy)
	cfg.OutNoData = getConfigFloat(cmd, FlagOutNoData, EnvOutNoData, cfg.OutNoData)
	cfg.ZeroAsNoData = getConfigBool(cmd, FlagZeroAsNoData, cfg.ZeroAsNoData)
	cfg.Standardize = getConfigBool(cmd, FlagStandardize, cfg.Standardize)
	cfg.Compress = getConfigString(cmd, FlagCompress, "", cfg.Compress)
	cfg.LogLevel = getConfigString(cmd, FlagLogLevel, EnvLogLevel, cfg.LogLevel)
	cfg.LogFormat = getConfigString(cmd, FlagLogFormat, EnvLogFormat, cfg.LogFormat)

	return cfg, cfg.Validate()
}

// getConfigString gets a string value from flag, then env, then default.
// An empty envName skips the environment.
func getConfigString(cmd *cobra.Command, flagName, envName, defaultValue string) string {
	if cmd.Flags().Changed(flagName) {
		val, _ := cmd.Flags().GetString(flagName)
		return val
	}
	if v := lookupEnv(envName); v != "" {
		return v
	}
	return defaultValue
}

// getConfigInt gets an int value from flag, then env, then default.
func getConfigInt(cmd *cobra.Command, flagName, envName string, defaultValue int) int {
	if cmd.Flags().Changed(flagName) {
		val, _ := cmd.Flags().GetInt(flagName)
		return val
	}
	if v := lookupEnv(envName); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

// getConfigFloat gets a float64 value from flag, then env, then default.
func getConfigFloat(cmd *cobra.Command, flagName, envName string, defaultValue float64) float64 {
	if cmd.Flags().Changed(flagName) {
		val, _ := cmd.Flags().GetFloat64(flagName)
		return val
	}
	if v := lookupEnv(envName); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getConfigBool gets a bool value from flag, then default.
func getConfigBool(cmd *cobra.Command, flagName string, defaultValue bool) bool {
	if cmd.Flags().Changed(flagName) {
		val, _ := cmd.Flags().GetBool(flagName)
		return val
	}
	return defaultValue
}

func lookupEnv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
