package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Redis holds the redis connection configuration.
	Redis RedisConfig `mapstructure:",squash"`

	// Hygraph holds the headless-CMS backend configuration.
	Hygraph HygraphConfig `mapstructure:",squash"`

	// Clerk holds the identity provider configuration.
	Clerk ClerkConfig `mapstructure:",squash"`

	// Pricing holds the order pricing constants.
	Pricing PricingConfig `mapstructure:",squash"`

	// WhatsApp holds the order notification channel configuration.
	WhatsApp WhatsAppConfig `mapstructure:",squash"`
}

// RedisConfig holds the redis connection details.
type RedisConfig struct {
	// URL is the redis connection string, e.g. redis://localhost:6379/0.
	URL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`
}

// HygraphConfig holds the Hygraph (headless CMS) connection details.
// All catalog content and cart rows live behind this endpoint.
type HygraphConfig struct {
	// Endpoint is the GraphQL content API URL of the project.
	Endpoint string `mapstructure:"HYGRAPH_ENDPOINT" required:"true"`
}

// ClerkConfig holds the Clerk identity provider credentials.
type ClerkConfig struct {
	// APIURL is the base URL of the Clerk API.
	APIURL string `mapstructure:"CLERK_API_URL" default:"https://api.clerk.com/v1"`
	// SecretKey is the backend key used to resolve session tokens into users.
	SecretKey string `mapstructure:"CLERK_SECRET_KEY" required:"true"`
}

// PricingConfig holds the constants the pricing engine is built from.
type PricingConfig struct {
	// TaxRate is the GST rate applied to the cart subtotal (0.12 = 12%).
	TaxRate float64 `mapstructure:"TAX_RATE" default:"0.12"`
	// DeliveryFee is the flat delivery charge for non-empty carts.
	DeliveryFee float64 `mapstructure:"DELIVERY_FEE" default:"30"`
}

// WhatsAppConfig holds the WhatsApp Cloud API credentials used to hand
// confirmed orders to the fulfillment contact.
type WhatsAppConfig struct {
	// APIURL is the base URL of the WhatsApp Cloud API.
	APIURL string `mapstructure:"WHATSAPP_API_URL" default:"https://graph.facebook.com/v17.0"`
	// PhoneNumberID is the sender phone number id registered with the API.
	PhoneNumberID string `mapstructure:"WHATSAPP_PHONE_NUMBER_ID" required:"true"`
	// AccessToken is the bearer token for the API.
	AccessToken string `mapstructure:"WHATSAPP_ACCESS_TOKEN" required:"true"`
	// Destination is the fulfillment contact that receives order summaries.
	Destination string `mapstructure:"WHATSAPP_DESTINATION" default:"918688605760"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
