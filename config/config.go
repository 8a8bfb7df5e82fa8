package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type cart struct {
	MaxItemQuantity int           `mapstructure:"max_item_quantity"`
	SessionTTL      time.Duration `mapstructure:"session_ttl"`
}

type orderService struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	CartEventsTopic    string   `mapstructure:"cart_events_topic"`
}

type Config struct {
	LogLevel       slog.Level   `mapstructure:"log_level"`
	HTTPServerAddr string       `mapstructure:"http_server_addr"`
	CurrencyCode   string       `mapstructure:"currency_code"`
	SQLDB          string       `mapstructure:"sql_db"`
	SessionDB      string       `mapstructure:"session_db"`
	Cart           cart         `mapstructure:"cart"`
	OrderService   orderService `mapstructure:"order_service"`
	Broker         broker       `mapstructure:"broker"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	CurrencyCode=%q
	SQLDB=%q
	SessionDB=%q

	Cart:
	MaxItemQuantity=%d
	SessionTTL=%q

	OrderService:
	BaseURL=%q
	Timeout=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	CartEventsTopic=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.CurrencyCode,
		c.SQLDB,
		c.SessionDB,
		c.Cart.MaxItemQuantity,
		c.Cart.SessionTTL,
		c.OrderService.BaseURL,
		c.OrderService.Timeout,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.CartEventsTopic,
	)
}
