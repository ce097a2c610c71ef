package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/joshuapare/fitskit/fits"
	"github.com/joshuapare/fitskit/pkg/logging"
)

const envPrefix = "FITSCTL"

var (
	// Global flags
	verbose    bool
	quiet      bool
	headerOnly bool
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "fitsctl",
	Short: "Inspect FITS file headers",
	Long: `fitsctl prints, searches and exports the headers of FITS files.
Compressed files (.gz and .Z) are read directly. Headers can be written as
80-column cards, XFits or VOTable XML, tab separated values or Parquet.

Every flag can also be set through the environment (FITSCTL_<FLAG>, dashes
replaced by underscores) or a TOML file given with --config.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setAllConfig(viper.New(), cmd.Flags()); err != nil {
			return err
		}
		switch logFormat {
		case "json", "console":
		default:
			return fmt.Errorf("invalid --log-format %q (want json or console)", logFormat)
		}
		logging.Init(verbose, logFormat == "console")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().
		BoolVar(&headerOnly, "header-only", false, "Inputs hold headers only, do not skip data areas")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Configuration file to read from")
	rootCmd.PersistentFlags().
		StringVar(&logFormat, "log-format", "console", "Log output format (json, console)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setAllConfig applies configuration from flags, the environment and an
// optional TOML file, in that priority order. Environment variables are
// the upper-cased flag names with dashes replaced by underscores, prefixed
// with FITSCTL_. Unknown keys in the file are rejected.
func setAllConfig(v *viper.Viper, flags *pflag.FlagSet) error {
	if err := v.BindPFlags(flags); err != nil {
		return err
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	validTags := make(map[string]bool)
	flags.VisitAll(func(f *pflag.Flag) {
		validTags[f.Name] = true
	})

	if c := v.GetString("config"); c != "" {
		v.SetConfigFile(c)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading configuration file '%s': %v", c, err)
		}
		for _, key := range v.AllKeys() {
			if !validTags[key] {
				return fmt.Errorf("invalid option in configuration file: %v", key)
			}
		}
	}

	var flagErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if flagErr != nil || f.Changed {
			return
		}
		value := v.GetString(f.Name)
		if f.Value.Type() == "stringSlice" {
			value = strings.Join(v.GetStringSlice(f.Name), ",")
		}
		flagErr = f.Value.Set(value)
	})
	return flagErr
}

// fileOptions builds the scan options shared by all commands.
func fileOptions() fits.Options {
	opts := fits.DefaultOptions()
	opts.HeaderOnly = headerOnly
	if verbose {
		opts.Logger = logging.L()
	}
	return opts
}

// headerArg maps the --header/--all flags to a header number.
func headerArg(n int, all bool) int {
	if all {
		return fits.AllHeaders
	}
	return n
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// failures summarizes per-file errors after a multi-file command.
func failures(n int) error {
	if n == 0 {
		return nil
	}
	return fmt.Errorf("%d file(s) failed", n)
}
