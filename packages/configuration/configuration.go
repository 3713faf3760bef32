package configuration

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Configuration resolves the parameters of a tool. A value is taken from the command line flag, the environment
// variable, the config file or the default (in this order).
type Configuration struct {
	viper      *viper.Viper
	flagSet    *pflag.FlagSet
	configFile *string
	parameters map[string]interface{}
}

// New returns a Configuration whose environment variables are prefixed with the given name.
func New(name string) (configuration *Configuration) {
	configuration = &Configuration{
		viper:      viper.New(),
		flagSet:    pflag.NewFlagSet(name, pflag.ContinueOnError),
		parameters: make(map[string]interface{}),
	}
	configuration.configFile = configuration.flagSet.StringP("config", "c", "", "path to the config file (.json, .toml, .yaml or .yml)")

	configuration.viper.SetEnvPrefix(name)
	configuration.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	configuration.viper.AutomaticEnv()

	return configuration
}

// Define registers the fields of the struct that parameters points to under the given prefix.
func (c *Configuration) Define(prefix string, parameters interface{}) {
	DefineParameters(c.flagSet, parameters, prefix)
	c.parameters[prefix] = parameters
}

// FlagSet returns the flags of the Configuration.
func (c *Configuration) FlagSet() *pflag.FlagSet {
	return c.flagSet
}

// Viper returns the viper instance that resolves the values.
func (c *Configuration) Viper() *viper.Viper {
	return c.viper
}

// Load parses the command line arguments, reads the config file (if one was given) and updates all defined parameters.
func (c *Configuration) Load(args []string) (err error) {
	if err = c.flagSet.Parse(args); err != nil {
		return errors.Errorf("failed to parse command line arguments: %w", err)
	}
	if err = c.viper.BindPFlags(c.flagSet); err != nil {
		return errors.Errorf("failed to bind flags: %w", err)
	}

	if *c.configFile != "" {
		c.viper.SetConfigFile(*c.configFile)
		if err = c.viper.ReadInConfig(); err != nil {
			return errors.Errorf("failed to read config file %s: %w", *c.configFile, err)
		}
	}

	for prefix, parameters := range c.parameters {
		UpdateParameters(c.viper, parameters, prefix)
	}

	return nil
}
