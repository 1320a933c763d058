package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/liamg/ouilookup/lookup"
	"github.com/liamg/ouilookup/version"
	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var debug bool
var versionRequested bool
var configFile string
var macAddress string
var ipAddress string
var showTable bool

var rootCmd = &cobra.Command{
	Use:           "ouilookup",
	Short:         "ouilookup resolves network card vendors",
	Long:          `Resolve the vendor of a network card from its MAC address, from an IP address in the local ARP cache, or for the whole ARP table.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {

		if versionRequested {
			v := version.Version
			if v == "" {
				v = "development version"
			}
			fmt.Printf("ouilookup %s\n", v)
			return
		}

		if debug {
			log.SetLevel(log.DebugLevel)
		}

		s, err := loadSettings()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		reporter, err := createReporter(s)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		run(context.Background(), os.Stdout, reporter)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&macAddress, "mac", "", macAddress, "Look up the vendor of a MAC address")
	flags.StringVarP(&ipAddress, "ip", "", ipAddress, "Look up the vendor of an IP address found in the ARP cache")
	flags.BoolVarP(&showTable, "arp", "", showTable, "Show the ARP table with vendors")
	flags.BoolVarP(&debug, "verbose", "v", debug, "Enable verbose logging")
	flags.BoolVarP(&versionRequested, "version", "", versionRequested, "Output version information and exit")
	flags.StringVarP(&configFile, "config", "", configFile, "Config file (default is $HOME/.ouilookup.yaml)")
	flags.StringP("subnet", "", lookup.DefaultSubnetPrefix, "Only accept IP lookups whose address starts with this prefix")
	flags.StringP("source", "", "exec", "ARP table source. Must be one of exec, cache")
	flags.StringP("api-url", "", lookup.DefaultAPIURL, "Base URL of the MAC vendor lookup API")
	flags.IntP("timeout-ms", "t", 5000, "Vendor lookup timeout in MS")

	for _, key := range []string{"subnet", "source", "api-url", "timeout-ms"} {
		_ = viper.BindPFlag(key, flags.Lookup(key))
	}

	viper.SetEnvPrefix("ouilookup")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			log.Debugf("Cannot locate home directory: %s", err)
			return
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".ouilookup")
	}

	if err := viper.ReadInConfig(); err != nil {
		if configFile != "" {
			log.Warnf("Cannot read config file %s: %s", configFile, err)
		}
		return
	}
	log.Debugf("Using config file %s", viper.ConfigFileUsed())
}

type settings struct {
	subnet  string
	source  string
	apiURL  string
	timeout time.Duration
}

func loadSettings() (settings, error) {
	s := settings{
		subnet:  viper.GetString("subnet"),
		source:  strings.ToLower(viper.GetString("source")),
		apiURL:  viper.GetString("api-url"),
		timeout: time.Millisecond * time.Duration(viper.GetInt("timeout-ms")),
	}
	if s.timeout <= 0 {
		return s, fmt.Errorf("Invalid timeout: %s", s.timeout)
	}
	return s, nil
}

func createSource(sourceStr string) (lookup.Source, error) {
	switch sourceStr {
	case "exec", "command":
		return lookup.NewCommandSource(), nil
	case "cache":
		return lookup.NewCacheSource(), nil
	}

	return nil, fmt.Errorf("Unknown source type '%s'", sourceStr)
}

func createReporter(s settings) (*lookup.Reporter, error) {
	source, err := createSource(s.source)
	if err != nil {
		return nil, err
	}
	resolver := lookup.NewMacLookupResolver(s.apiURL, s.timeout)
	return lookup.NewReporter(source, resolver, s.subnet), nil
}

// run honours one mode per invocation: mac, then ip, then arp, else usage.
func run(ctx context.Context, w io.Writer, reporter *lookup.Reporter) {

	var lines []string

	switch {
	case macAddress != "":
		lines = reporter.MAC(ctx, macAddress)
	case ipAddress != "":
		lines = reporter.IP(ctx, ipAddress)
	case showTable:
		lines = reporter.Table(ctx)
	default:
		lines = []string{lookup.Usage}
	}

	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
