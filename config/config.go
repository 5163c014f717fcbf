package config

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tcriess/lightspeed-frontdesk/globals"
)

const (
	defaultStaffLanguage        = "en-US"
	defaultGuestLanguage        = "hi-IN"
	defaultRoomCleanupDelay     = 5 * time.Minute
	defaultTranslationCacheSize = 1024
	defaultSampleRateHertz      = 16000
)

// Config is the global configuration object which is filled via the configuration file,
// environment variables (prefix LSFD_) and command-line flags.
type Config struct {
	LogLevel             string          `mapstructure:"log_level"`
	StaffLanguage        string          `mapstructure:"staff_language"`
	DefaultGuestLanguage string          `mapstructure:"default_guest_language"`
	RoomCleanupDelay     time.Duration   `mapstructure:"room_cleanup_delay"`
	BaseUrl              string          `mapstructure:"base_url"`
	GoogleConfig         GoogleConfig    `mapstructure:"google"`
	TranslateConfig      TranslateConfig `mapstructure:"translate"`
	SpeechConfig         SpeechConfig    `mapstructure:"speech"`
}

// GoogleConfig holds the credentials shared by the Google Cloud collaborators.
// If CredentialsFile is empty, application default credentials are used.
type GoogleConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
}

// TranslateConfig configures the translation collaborator.
type TranslateConfig struct {
	ProjectId string `mapstructure:"project_id"`
	CacheSize int    `mapstructure:"cache_size"`
}

// SpeechConfig configures the transcription collaborator. Audio arrives as raw
// LINEAR16 PCM from the clients.
type SpeechConfig struct {
	SampleRateHertz int32 `mapstructure:"sample_rate_hertz"`
}

func GetFlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("configuration", pflag.ContinueOnError)
	flagSet.String("staff-language", "", "canonical staff language tag")
	flagSet.String("default-guest-language", "", "fallback guest language tag")
	flagSet.String("base-url", "", "externally visible base URL (used in guest links)")
	return flagSet
}

// wordSepNormalizeFunc allows for normalization of the flag names (which use - as a separator)
func wordSepNormalizeFunc(f *pflag.FlagSet, name string) pflag.NormalizedName {
	from := "-"
	to := "_"
	name = strings.Replace(name, from, to, -1)
	return pflag.NormalizedName(name)
}

// ReadConfiguration reads and parses the configuration located at configPath, which can either point to a single TOML
// file or to a directory, in which case all *.toml files in this directory are concatenated. It returns a Config
// object.
func ReadConfiguration(configPath string, flagSet *pflag.FlagSet) (*Config, error) {
	cfg := Config{}
	flagSet.SetNormalizeFunc(wordSepNormalizeFunc)
	viper.SetDefault("log_level", "INFO")
	viper.SetDefault("staff_language", defaultStaffLanguage)
	viper.SetDefault("default_guest_language", defaultGuestLanguage)
	viper.SetDefault("room_cleanup_delay", defaultRoomCleanupDelay)
	viper.SetDefault("translate.cache_size", defaultTranslationCacheSize)
	viper.SetDefault("speech.sample_rate_hertz", defaultSampleRateHertz)
	err := viper.BindPFlags(flagSet)
	if err != nil {
		globals.AppLogger.Error("could not bind flags (ignored)", "error", err)
	}
	viper.SetEnvPrefix("LSFD")
	viper.AutomaticEnv()
	if configPath != "" {
		fi, err := os.Stat(configPath)
		if err != nil {
			return nil, err
		}
		contents := make([]byte, 0)
		files := []string{configPath}
		if fi.IsDir() {
			files, err = filepath.Glob(filepath.Join(configPath, "*.toml"))
			if err != nil {
				return nil, err
			}
		}
		for _, configFile := range files {
			fileContents, err := ioutil.ReadFile(configFile)
			if err != nil {
				return nil, err
			}
			contents = append(contents, fileContents...)
			contents = append(contents, '\n')
		}
		viper.SetConfigType("toml")
		err = viper.ReadConfig(bytes.NewBuffer(contents))
		if err != nil {
			globals.AppLogger.Error("could not read config:", "error", err)
		}
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		globals.AppLogger.Error("could not unmarshal config:", "error", err)
	}
	if cfg.RoomCleanupDelay <= 0 {
		cfg.RoomCleanupDelay = defaultRoomCleanupDelay
	}

	globals.AppLogger.Info("config", "cfg", cfg)
	return &cfg, nil
}
