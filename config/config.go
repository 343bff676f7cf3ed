package config

import (
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	postgres_wrapper "github.com/Milo-Goodfellow-Work/matchbook/pkg/infra/postgres"
	redis_wrapper "github.com/Milo-Goodfellow-Work/matchbook/pkg/infra/redis"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/tradefeed"
)

type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	HTTPAddr   string `yaml:"http_addr"`
}

type KafkaConsumerConfig struct {
	Brokers  []string `yaml:"brokers"`
	Topic    string   `yaml:"topic"`
	GroupID  string   `yaml:"group_id"`
	DLQTopic string   `yaml:"dlq_topic"`
	Workers  int      `yaml:"workers"`
}

type FixConfig struct {
	SettingsFile string `yaml:"settings_file"`
}

type RiskConfig struct {
	PriceFloor uint32 `yaml:"price_floor"`
	PriceCeil  uint32 `yaml:"price_ceil"`
	MaxQty     uint32 `yaml:"max_qty"`
	TickFile   string `yaml:"tick_file"`
}

type AppConfig struct {
	ServiceName  string                           `yaml:"service_name"`
	LogLevel     string                           `yaml:"log_level"`
	Instrument   string                           `yaml:"instrument"`
	RecentTrades int                              `yaml:"recent_trades"`
	Server       *ServerConfig                    `yaml:"server"`
	TradesDB     *postgres_wrapper.PostgresConfig `yaml:"trades_db"`
	Redis        *redis_wrapper.RedisConfig       `yaml:"redis"`
	Kafka        *tradefeed.KafkaConfig           `yaml:"kafka"`
	Consumer     *KafkaConsumerConfig             `yaml:"consumer"`
	Fix          *FixConfig                       `yaml:"fix"`
	Risk         *RiskConfig                      `yaml:"risk"`
}

// Load load config from file and environment variables.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	fields := []interface{}{
		"func",
		"config.readFromFile",
		"filePath",
		filePath,
	}

	sugar := zap.S().With(fields...)

	sugar.Debug("Load config...")
	zap.S().Debugf("CONFIG_FILE=%v", filePath)

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("Failed to load config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := &AppConfig{}

	err = yaml.Unmarshal(configBytes, cfg)
	if err != nil {
		sugar.Error("Failed to parse config file")
		return nil, err
	}

	zap.S().Debugf("config: %+v", cfg)

	return cfg, nil
}
