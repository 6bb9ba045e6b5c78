package infra

import (
	"fmt"
)

type PgConfig struct {
	ConnectionString   string
	Database           string
	Hostname           string
	Password           string
	Port               string
	User               string
	SslMode            string
	MaxPoolConnections int
}

func (config PgConfig) GetConnectionString() string {
	if config.ConnectionString != "" {
		return config.ConnectionString
	}

	if config.SslMode == "" {
		config.SslMode = "prefer"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s database=%s sslmode=%s",
		config.Hostname, config.Port, config.User, config.Password, config.Database, config.SslMode)
}

// ShopifyConfig carries the app credentials for the Shopify Admin API. The app
// secret doubles as the session-token signing key and the webhook HMAC key.
type ShopifyConfig struct {
	ApiKey     string
	ApiSecret  string
	AdminToken string
	ApiVersion string
	AppHost    string

	// Test marks created charges as test charges; set outside production.
	Test bool
}

func (config ShopifyConfig) Validate() error {
	if config.ApiSecret == "" {
		return fmt.Errorf("shopify config: api secret is required")
	}
	if config.AdminToken == "" {
		return fmt.Errorf("shopify config: admin token is required")
	}
	return nil
}

type OpenAiConfig struct {
	BaseUrl string
	ApiKey  string
}

func (config OpenAiConfig) IsConfigured() bool {
	return config.ApiKey != ""
}
