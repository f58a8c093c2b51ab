package config_test

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/config"
)

func TestLoadEnvDefaults(t *testing.T) {
	c := qt.New(t)

	cfg, err := config.LoadEnv()
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Storage.Driver, qt.Equals, config.StorageDriverPostgres)
	c.Assert(cfg.Server.HTTPPort, qt.Equals, ":8080")
	c.Assert(cfg.Kafka.Enabled, qt.IsFalse)
	c.Assert(cfg.Kafka.Brokers, qt.DeepEquals, []string{"localhost:9092"})
	c.Assert(cfg.Sync.JobTimeout, qt.Equals, 2*time.Minute)
	c.Assert(cfg.IsDevelopment(), qt.IsTrue)
}

func TestLoadEnvOverrides(t *testing.T) {
	c := qt.New(t)

	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SYNC_JOB_TIMEOUT", "30s")

	cfg, err := config.LoadEnv()
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Storage.Driver, qt.Equals, config.StorageDriverMemory)
	c.Assert(cfg.Kafka.Brokers, qt.DeepEquals, []string{"k1:9092", "k2:9092"})
	c.Assert(cfg.Sync.JobTimeout, qt.Equals, 30*time.Second)
	c.Assert(cfg.IsDevelopment(), qt.IsFalse)
}

func TestLoadEnvRejectsUnknownDriver(t *testing.T) {
	c := qt.New(t)

	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := config.LoadEnv()
	c.Assert(err, qt.ErrorMatches, `unsupported STORAGE_DRIVER "sqlite"`)
}
