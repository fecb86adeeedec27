package config

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v10"
)

// Config is the whole runtime configuration, read from the environment.
// A .env file is loaded by cmd/api before Load is called.
type Config struct {
	Port int `env:"PORT" envDefault:"8080"`

	AWS      AWS
	Tables   Tables
	Storage  Storage
	Auth     Auth
	Workflow Workflow
	Reports  Reports
	Payments Payments
}

// AWS holds credentials and endpoints. Local DynamoDB/S3 emulators do not
// validate credentials, but the SDK requires them.
type AWS struct {
	Region           string `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKeyID      string `env:"AWS_ACCESS_KEY_ID" envDefault:"local"`
	SecretAccessKey  string `env:"AWS_SECRET_ACCESS_KEY" envDefault:"local"`
	DynamoDBEndpoint string `env:"DYNAMODB_ENDPOINT"`
	S3Endpoint       string `env:"S3_ENDPOINT"`
}

type Tables struct {
	Clients       string `env:"CLIENTS_TABLE" envDefault:"clients"`
	ServiceOrders string `env:"SERVICE_ORDERS_TABLE" envDefault:"service_orders"`
	Materials     string `env:"MATERIALS_TABLE" envDefault:"materials"`
	Budgets       string `env:"BUDGETS_TABLE" envDefault:"budgets"`
	Users         string `env:"USERS_TABLE" envDefault:"users"`
	Payments      string `env:"PAYMENTS_TABLE" envDefault:"payments"`
}

type Storage struct {
	Bucket            string `env:"PHOTOS_BUCKET" envDefault:"service-order-photos"`
	PublicBaseURL     string `env:"PHOTOS_PUBLIC_BASE_URL"`
	UploadConcurrency int    `env:"PHOTO_UPLOAD_CONCURRENCY" envDefault:"4"`
	MaxPhotoBytes     int64  `env:"PHOTO_MAX_BYTES" envDefault:"10485760"`
	MaxRequestBytes   int64  `env:"PHOTO_MAX_REQUEST_BYTES" envDefault:"104857600"`
}

type Auth struct {
	TokenSecret string        `env:"AUTH_TOKEN_SECRET" envDefault:"dev-token-secret"`
	TokenTTL    time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"12h"`
}

type Workflow struct {
	StrictOrderStatus bool `env:"ORDER_WORKFLOW_STRICT" envDefault:"false"`
}

type Reports struct {
	Timezone string `env:"REPORT_TIMEZONE" envDefault:"America/Sao_Paulo"`
}

// Location resolves Timezone; months in reports are cut in this zone.
func (r Reports) Location() (*time.Location, error) {
	return time.LoadLocation(r.Timezone)
}

type Payments struct {
	MercadoPagoAccessToken string `env:"MERCADOPAGO_ACCESS_TOKEN"`
	Mock                   bool   `env:"PAYMENT_GATEWAY_MOCK" envDefault:"false"`
}

// Load parses the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.Storage.UploadConcurrency < 1 {
		return fmt.Errorf("PHOTO_UPLOAD_CONCURRENCY must be at least 1, got %d", c.Storage.UploadConcurrency)
	}
	if c.Storage.MaxPhotoBytes < 1 {
		return fmt.Errorf("PHOTO_MAX_BYTES must be positive, got %d", c.Storage.MaxPhotoBytes)
	}
	if c.Storage.MaxRequestBytes < c.Storage.MaxPhotoBytes {
		return fmt.Errorf("PHOTO_MAX_REQUEST_BYTES must be at least PHOTO_MAX_BYTES, got %d", c.Storage.MaxRequestBytes)
	}
	if c.Auth.TokenSecret == "" {
		return fmt.Errorf("AUTH_TOKEN_SECRET must not be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("AUTH_TOKEN_TTL must be positive, got %s", c.Auth.TokenTTL)
	}
	if _, err := c.Reports.Location(); err != nil {
		return fmt.Errorf("invalid REPORT_TIMEZONE %q: %w", c.Reports.Timezone, err)
	}
	return nil
}
