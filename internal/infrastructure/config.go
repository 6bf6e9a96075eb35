package infra

import (
	"encoding/json"
	"fmt"
	"log"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix env prefix for viper
const EnvPrefix = "BONECOLE"

// EnvDevelopment development runtime environment
const EnvDevelopment = "development"

// EnvProduction production runtime environment
const EnvProduction = "production"

// AppConfig App option object
type AppConfig struct {
	AppID          string        `mapstructure:"app_id" json:"app_id" yaml:"app_id" validate:"required"`            // Application ID
	Host           string        `mapstructure:"host" json:"host" yaml:"host"`                                      // bind host address
	Port           int           `mapstructure:"port" json:"port" yaml:"port"`                                      // bind listen port
	Env            string        `mapstructure:"env" json:"env" yaml:"env" validate:"oneof=development production"` // runtime environment
	SessionTimeout time.Duration `mapstructure:"session_timeout" json:"session_timeout" yaml:"session_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" json:"request_timeout" yaml:"request_timeout"`
	Logging        struct {
		FilePath string `mapstructure:"file_path" json:"file_path" yaml:"file_path"`                            // log file path
		Level    string `mapstructure:"level" json:"level" yaml:"level" validate:"oneof=debug info warn error"` // global logging level
	} `mapstructure:"logging" json:"logging" yaml:"logging"`
	Security struct {
		IDLength  int    `mapstructure:"id_length" json:"id_length" yaml:"id_length"` // length of generated IDs
		JWTMethod string `mapstructure:"jwt_method" json:"jwt_method" yaml:"jwt_method" validate:"oneof=HS256 HS512 ES256"`
		JWTSecret string `mapstructure:"jwt_secret" json:"jwt_secret" yaml:"jwt_secret" validate:"required"`
		TokenName string `mapstructure:"token_name" json:"token_name" yaml:"token_name" validate:"required"` // jwt token name set in cookie
	} `mapstructure:"security" json:"security" yaml:"security"`
	KVStore struct {
		Driver   string `mapstructure:"driver" json:"driver" yaml:"driver" validate:"oneof=redis memory"` // redis or in-process memory store
		Host     string `mapstructure:"host" json:"host" yaml:"host"`                                     // redis host address
		Port     int    `mapstructure:"port" json:"port" yaml:"port"`                                     // redis port
		Password string `mapstructure:"password" json:"password" yaml:"password"`                         // redis password
	} `mapstructure:"kv" json:"kv" yaml:"kv"`
	Connectivity struct {
		SSIDKeywords            []string      `mapstructure:"ssid_keywords" json:"ssid_keywords" yaml:"ssid_keywords" validate:"min=1"` // kiosk access-point keywords, matched case-insensitively
		DebounceWindow          time.Duration `mapstructure:"debounce_window" json:"debounce_window" yaml:"debounce_window"`            // network event coalescing window
		DefaultSimulatorEnabled bool          `mapstructure:"default_simulator_enabled" json:"default_simulator_enabled" yaml:"default_simulator_enabled"`
		DefaultSimulatedState   bool          `mapstructure:"default_simulated_state" json:"default_simulated_state" yaml:"default_simulated_state"`
	} `mapstructure:"connectivity" json:"connectivity" yaml:"connectivity"`
	Notifications struct {
		InactivityDelay time.Duration `mapstructure:"inactivity_delay" json:"inactivity_delay" yaml:"inactivity_delay"` // inactivity reminder delay
		LessonDelay     time.Duration `mapstructure:"lesson_delay" json:"lesson_delay" yaml:"lesson_delay"`             // lesson continuation reminder delay
	} `mapstructure:"notifications" json:"notifications" yaml:"notifications"`
	Storage struct {
		DeviceCapacityGB  int `mapstructure:"device_capacity_gb" json:"device_capacity_gb" yaml:"device_capacity_gb" validate:"min=1"` // total device capacity used by the estimator
		AverageBookSizeMB int `mapstructure:"average_book_size_mb" json:"average_book_size_mb" yaml:"average_book_size_mb" validate:"min=1"`
	} `mapstructure:"storage" json:"storage" yaml:"storage"`
	Downloads struct {
		LessonDelay time.Duration `mapstructure:"lesson_delay" json:"lesson_delay" yaml:"lesson_delay"` // simulated single lesson download duration
		CourseDelay time.Duration `mapstructure:"course_delay" json:"course_delay" yaml:"course_delay"` // simulated whole course download duration
	} `mapstructure:"downloads" json:"downloads" yaml:"downloads"`
	DevOP struct {
		APM bool `mapstructure:"apm" json:"apm" yaml:"apm"`
	} `mapstructure:"devop" json:"devop" yaml:"devop"`
}

// InitConfig init app config using viper
func InitConfig() (*AppConfig, error) {
	// app
	pflag.String("host", "", "binding address")
	pflag.String("app_id", "", "application identifier (required)")
	pflag.String("env", "development", "runtime environment, can be 'development' or 'production'")
	pflag.Int("port", 8081, "listening port")
	pflag.Duration("session_timeout", 30*time.Minute, "JWT lifetime(m, s and h units are supported), eg.30m")
	pflag.Duration("request_timeout", 30*time.Second, "per request timeout")

	// logging
	pflag.String("logging.level", "info", "logging level")
	pflag.String("logging.file_path", "", "log to file")

	// security
	pflag.Int("security.id_length", 24, "set length of generated IDs")
	pflag.String("security.jwt_method", "HS256", "hash algorithm used for JWT session tokens")
	pflag.String("security.jwt_secret", "", "JWT secret (required)")
	pflag.String("security.token_name", "", "cookie name to store the token (required)")

	// kv storage
	pflag.String("kv.driver", "redis", "key-value store driver, 'redis' or 'memory'")
	pflag.String("kv.host", "127.0.0.1", "kv host")
	pflag.Int("kv.port", 6379, "kv server port")
	pflag.String("kv.password", "", "kv server password")

	// connectivity gate
	pflag.StringSlice("connectivity.ssid_keywords", []string{"ecole", "school", "kiosk"}, "access-point keywords identifying a kiosk network")
	pflag.Duration("connectivity.debounce_window", 300*time.Millisecond, "coalescing window for network change events")
	pflag.Bool("connectivity.default_simulator_enabled", true, `simulator flag used when no persisted value exists; the fail-open
default keeps the app usable without network hardware`)
	pflag.Bool("connectivity.default_simulated_state", true, "simulated connection state used when no persisted value exists")

	// notifications
	pflag.Duration("notifications.inactivity_delay", 48*time.Hour, "inactivity reminder delay")
	pflag.Duration("notifications.lesson_delay", 24*time.Hour, "lesson continuation reminder delay")

	// storage estimator
	pflag.Int("storage.device_capacity_gb", 32, "total device capacity the usage percentage is computed against")
	pflag.Int("storage.average_book_size_mb", 5, "flat per-book size estimate")

	// simulated downloads
	pflag.Duration("downloads.lesson_delay", 2*time.Second, "simulated single lesson download duration")
	pflag.Duration("downloads.course_delay", 3*time.Second, "simulated whole course download duration")

	// DevOp
	pflag.Bool("devop.apm", false, "enable apm metrics")

	pflag.Parse()
	viper.BindPFlags(pflag.CommandLine)
	viper.AutomaticEnv()
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var config = new(AppConfig)
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	if config.Logging.Level == "debug" {
		if configJSON, err := json.MarshalIndent(config, "", "  "); err == nil {
			log.Printf("App config: %s\n", string(configJSON))
		}
	}
	return config, nil
}

func validateConfig(config *AppConfig) error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "-" || name == "" {
			name = fld.Tag.Get("yaml")
			if name == "-" || name == "" {
				return ""
			}
		}
		return name
	})
	err := validate.Struct(config)
	if _, ok := err.(*validator.InvalidValidationError); ok {
		log.Fatalf("Failed to validate config: %s", err)
	}
	if err == nil {
		return nil
	}

	var msg []string
	for _, field := range err.(validator.ValidationErrors) {
		namespace := field.Namespace()
		fieldName := namespace[strings.IndexByte(namespace, '.')+1:] // trim top level namespace
		switch field.Tag() {
		case "required":
			msg = append(msg, fmt.Sprintf("%s is required", fieldName))
		case "oneof":
			msg = append(msg, fmt.Sprintf("%s must be one of (%s)", fieldName, field.Param()))
		case "min":
			msg = append(msg, fmt.Sprintf("%s must be at least %s", fieldName, field.Param()))
		}
	}
	if len(msg) > 0 {
		return fmt.Errorf("failed to validate config: \n%s", strings.Join(msg, "\n"))
	}
	return nil
}
