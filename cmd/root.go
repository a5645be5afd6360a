package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-analyzer/internal/contact"
	"github.com/spigell/resume-analyzer/internal/ner"
)

const (
	app       = "resume-analyzer"
	envPrefix = "RESUME_ANALYZER"
	dotEnv    = ".env"
)

type Config struct {
	NER        ner.Config        `mapstructure:"ner"`
	Phone      *PhoneConfig      `mapstructure:"phone"`
	Store      *StoreConfig      `mapstructure:"store"`
	Server     *ServerConfig     `mapstructure:"server"`
	Analyze    *AnalyzeConfig    `mapstructure:"analyze"`
	Vocabulary *VocabularyConfig `mapstructure:"vocabulary"`
}

type PhoneConfig struct {
	Region string `mapstructure:"region"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type AnalyzeConfig struct {
	Jobs   int    `mapstructure:"jobs"`
	Dir    string `mapstructure:"dir"`
	Output string `mapstructure:"output"`
}

type VocabularyConfig struct {
	ExtraSkills []string `mapstructure:"extra-skills"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-analyzer extracts a structured profile from résumé PDFs and rates them",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-analyzer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ner.provider", ner.ProviderProse)
	v.SetDefault("ner.gemini.api-key", "")
	v.SetDefault("ner.gemini.api-key-file", "")
	v.SetDefault("ner.gemini.model", "gemini-2.5-flash")
	v.SetDefault("ner.gemini.max-retries", 3)
	v.SetDefault("ner.gemini.max-log-length", 200)
	v.SetDefault("phone.region", contact.DefaultRegion)
	v.SetDefault("store.path", app+".db")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("analyze.jobs", 4)
	v.SetDefault("analyze.dir", ".")
	v.SetDefault("analyze.output", "json")
	v.SetDefault("vocabulary.extra-skills", []string{})
}

func initConfig() {
	// The version command needs no configuration.
	if versionCmd.CalledAs() != "" {
		return
	}

	if err := godotenv.Load(dotEnv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading %s: %v", dotEnv, err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// An explicit config file must parse; the default one is optional.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.AllSettings())
}

// decodeConfig maps settings onto Config. Environment variables arrive as
// strings, so lists are split on commas and numbers are parsed weakly.
func decodeConfig(settings map[string]any) (*Config, error) {
	var config *Config

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.StringToTimeDurationHookFunc(),
		),
		WeaklyTypedInput: true,
		Result:           &config,
	})
	if err != nil {
		return nil, fmt.Errorf("config decoder: %w", err)
	}

	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if config == nil {
		config = &Config{}
	}
	config.normalize()

	return config, nil
}

func (c *Config) normalize() {
	if c.Phone == nil {
		c.Phone = &PhoneConfig{}
	}
	if c.Store == nil {
		c.Store = &StoreConfig{}
	}
	if c.Server == nil {
		c.Server = &ServerConfig{}
	}
	if c.Analyze == nil {
		c.Analyze = &AnalyzeConfig{}
	}
	if c.Analyze.Jobs <= 0 {
		c.Analyze.Jobs = 1
	}
	if c.Vocabulary == nil {
		c.Vocabulary = &VocabularyConfig{}
	}
}
