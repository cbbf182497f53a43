package config

import (
	"fmt"

	dbutils "github.com/tendant/db-utils/db"
)

// DatabaseConfig holds PostgreSQL database configuration
type DatabaseConfig struct {
	Host     string `env:"BREADSAVER_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"BREADSAVER_PG_PORT" env-default:"5432"`
	Database string `env:"BREADSAVER_PG_DATABASE" env-default:"breadsaver_db"`
	User     string `env:"BREADSAVER_PG_USER" env-default:"breadsaver"`
	Password string `env:"BREADSAVER_PG_PASSWORD" env-default:"pwd"`
	Schema   string `env:"BREADSAVER_PG_SCHEMA" env-default:"public"`
}

// ToDatabaseURL converts the config to a PostgreSQL connection URL
func (d DatabaseConfig) ToDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable&search_path=%s,public",
		d.User, d.Password, d.Host, d.Port, d.Database, d.Schema)
}

// ToMigrateURL returns the URL understood by the golang-migrate pgx/v5 driver
func (d DatabaseConfig) ToMigrateURL() string {
	return fmt.Sprintf("pgx5://%s:%s@%s:%d/%s?sslmode=disable&search_path=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.Schema)
}

// ToDbConfig converts the config to a db-utils DbConfig
func (d DatabaseConfig) ToDbConfig() dbutils.DbConfig {
	return dbutils.DbConfig{
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Database,
		User:     d.User,
		Password: d.Password,
	}
}
