package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "fitcheck"

	sourceShop  = "shop"
	sourceFiles = "files"
)

type Config struct {
	Source     string          `mapstructure:"source"`
	Shop       *ShopConfig     `mapstructure:"shop"`
	Files      *FilesConfig    `mapstructure:"files"`
	Language   string          `mapstructure:"language"`
	LocaleFile string          `mapstructure:"locale-file"`
	Wardrobe   *WardrobeConfig `mapstructure:"wardrobe"`
	AI         *AIConfig       `mapstructure:"ai"`
	// Body holds the shopper's body measurements in millimeters for the AI advisor.
	Body map[string]int `mapstructure:"body"`
}

type ShopConfig struct {
	URL       string `mapstructure:"url"`
	Token     string `mapstructure:"token"`
	TokenFile string `mapstructure:"token-file"`
	UserAgent string `mapstructure:"user-agent"`
}

type FilesConfig struct {
	Catalog     string `mapstructure:"catalog"`
	Product     string `mapstructure:"product"`
	Wardrobe    string `mapstructure:"wardrobe"`
	BodyProfile string `mapstructure:"body-profile"`
}

type WardrobeConfig struct {
	ExcludeFile    string `mapstructure:"exclude-file"`
	SkipUnmeasured bool   `mapstructure:"skip-unmeasured"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "fitcheck tells whether a garment will fit by comparing it with clothes you already own",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("shop.token-file", "FITCHECK_TOKEN_FILE"); err != nil {
		log.Fatalf("binding FITCHECK_TOKEN_FILE environment variable: %v", err)
	}

	viper.SetDefault("source", sourceShop)
	viper.SetDefault("language", "en")

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is fitcheck.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for check command now. If there is no config, we can skip initialization
	if checkCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}

	return config, nil
}
