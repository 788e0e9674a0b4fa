package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Astemirdum/rental-service/pkg/kafka"
	"github.com/Astemirdum/rental-service/pkg/logger"
	"github.com/Astemirdum/rental-service/pkg/postgres"
	"github.com/Astemirdum/rental-service/pkg/redis"
	"github.com/kelseyhightower/envconfig"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"AVAILABILITY_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"AVAILABILITY_HTTP_PORT" default:"8060"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE" default:"10s"`
}

type Maintenance struct {
	// RRule schedules the default maintenance window of every item.
	RRule          string        `envconfig:"MAINTENANCE_RRULE" default:"FREQ=MONTHLY;BYMONTHDAY=15"`
	WindowStart    time.Duration `envconfig:"MAINTENANCE_WINDOW_START" default:"9h"`
	WindowDuration time.Duration `envconfig:"MAINTENANCE_WINDOW_DURATION" default:"2h"`
	// Anchor is the YYYY-MM-DD day the rule is counted from.
	Anchor string `envconfig:"MAINTENANCE_ANCHOR" default:"2024-01-01"`
	// ICSPath is an optional iCalendar file with extra maintenance events.
	ICSPath string `envconfig:"MAINTENANCE_ICS_PATH"`
	// ICSReload is a cron spec for re-reading ICSPath.
	ICSReload string `envconfig:"MAINTENANCE_ICS_RELOAD" default:"@every 15m"`
}

type Booking struct {
	// DegradedDays is the length of the placeholder reservation used when
	// booking data cannot be read.
	DegradedDays int           `envconfig:"BOOKING_DEGRADED_DAYS" default:"7"`
	CatalogTTL   time.Duration `envconfig:"BOOKING_CATALOG_TTL" default:"1m"`
}

type Config struct {
	Server      HTTPServer  `yaml:"server"`
	Database    postgres.DB `yaml:"db"`
	Redis       redis.Config
	Kafka       kafka.Config
	Maintenance Maintenance
	Booking     Booking
	Log         logger.Log `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		if err := envconfig.Process("", &config); err != nil {
			log.Fatal("NewConfig ", err)
		}
		for _, op := range ops {
			op(&config)
		}
		cfg = &config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg *Config) {
	safe := *cfg
	safe.Database.Password = "***"
	safe.Redis.Password = "***"
	jscfg, _ := json.MarshalIndent(safe, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
