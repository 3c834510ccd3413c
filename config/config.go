package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "UNICONNECT"

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	Cloudinary   CloudinaryConfig   `mapstructure:"cloudinary"`
	Profile      ProfileConfig      `mapstructure:"profile"`
	RateLimit    RateLimitConfig    `mapstructure:"rate-limit"`
	APIRateLimit RateLimitConfig    `mapstructure:"api-rate-limit"`
	Registration RegistrationConfig `mapstructure:"registration"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Backup       BackupConfig       `mapstructure:"backup"`
	Maintenance  MaintenanceConfig  `mapstructure:"maintenance"`
	Admin        AdminConfig        `mapstructure:"admin"`
	Log          LogConfig          `mapstructure:"log"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	Env          string        `mapstructure:"env"`
	ReadTimeout  time.Duration `mapstructure:"read-timeout"`
	WriteTimeout time.Duration `mapstructure:"write-timeout"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // sqlite | mysql
	DSN             string        `mapstructure:"dsn"`
	MaxIdleConns    int           `mapstructure:"max-idle-conns"`
	MaxOpenConns    int           `mapstructure:"max-open-conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn-max-lifetime"`
	// QueryTimeout bounds every store call made by the services.
	QueryTimeout time.Duration `mapstructure:"query-timeout"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type CloudinaryConfig struct {
	CloudName string `mapstructure:"cloud-name"`
	APIKey    string `mapstructure:"api-key"`
	APISecret string `mapstructure:"api-secret"`
	Folder    string `mapstructure:"folder"`
}

// Enabled reports whether photo uploads can be served.
func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

type ProfileConfig struct {
	MinAge            int `mapstructure:"min-age"`
	MaxAge            int `mapstructure:"max-age"`
	MinNameLength     int `mapstructure:"min-name-length"`
	MaxNameLength     int `mapstructure:"max-name-length"`
	MinDeptLength     int `mapstructure:"min-department-length"`
	MaxDeptLength     int `mapstructure:"max-department-length"`
	MinBioLength      int `mapstructure:"min-bio-length"`
	MaxBioLength      int `mapstructure:"max-bio-length"`
	MaxPhotoRefLength int `mapstructure:"max-photo-ref-length"`
}

type RateLimitConfig struct {
	MaxRequests int           `mapstructure:"max-requests"`
	Window      time.Duration `mapstructure:"window"`
	Ban         time.Duration `mapstructure:"ban"`
}

type RegistrationConfig struct {
	Store      string        `mapstructure:"store"` // memory | redis
	SessionTTL time.Duration `mapstructure:"session-ttl"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key-prefix"`
}

type BackupConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Dir       string        `mapstructure:"dir"`
	Interval  time.Duration `mapstructure:"interval"`
	Retention time.Duration `mapstructure:"retention"`
}

type MaintenanceConfig struct {
	HealthInterval   time.Duration `mapstructure:"health-interval"`
	OptimizeInterval time.Duration `mapstructure:"optimize-interval"`
	RebuildInterval  time.Duration `mapstructure:"rebuild-interval"`
}

type AdminConfig struct {
	// SecretHash is a bcrypt hash checked before issuing admin tokens.
	SecretHash string `mapstructure:"secret-hash"`
}

type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8099")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.read-timeout", 10*time.Second)
	v.SetDefault("server.write-timeout", 10*time.Second)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "university_connect.db")
	v.SetDefault("database.max-idle-conns", 10)
	v.SetDefault("database.max-open-conns", 100)
	v.SetDefault("database.conn-max-lifetime", time.Hour)
	v.SetDefault("database.query-timeout", 5*time.Second)

	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.expiry", 720*time.Hour)
	v.SetDefault("jwt.issuer", "uniconnect")

	v.SetDefault("cloudinary.cloud-name", "")
	v.SetDefault("cloudinary.api-key", "")
	v.SetDefault("cloudinary.api-secret", "")
	v.SetDefault("cloudinary.folder", "uniconnect/profiles")

	v.SetDefault("profile.min-age", 16)
	v.SetDefault("profile.max-age", 100)
	v.SetDefault("profile.min-name-length", 2)
	v.SetDefault("profile.max-name-length", 50)
	v.SetDefault("profile.min-department-length", 2)
	v.SetDefault("profile.max-department-length", 100)
	v.SetDefault("profile.min-bio-length", 10)
	v.SetDefault("profile.max-bio-length", 500)
	v.SetDefault("profile.max-photo-ref-length", 512)

	v.SetDefault("rate-limit.max-requests", 10)
	v.SetDefault("rate-limit.window", 60*time.Second)
	v.SetDefault("rate-limit.ban", 300*time.Second)

	v.SetDefault("api-rate-limit.max-requests", 600)
	v.SetDefault("api-rate-limit.window", 60*time.Second)
	v.SetDefault("api-rate-limit.ban", time.Duration(0))

	v.SetDefault("registration.store", "memory")
	v.SetDefault("registration.session-ttl", 24*time.Hour)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key-prefix", "uniconnect:registration:")

	v.SetDefault("backup.enabled", true)
	v.SetDefault("backup.dir", "backups")
	v.SetDefault("backup.interval", 24*time.Hour)
	v.SetDefault("backup.retention", 7*24*time.Hour)

	v.SetDefault("maintenance.health-interval", time.Hour)
	v.SetDefault("maintenance.optimize-interval", 24*time.Hour)
	v.SetDefault("maintenance.rebuild-interval", 6*time.Hour)

	v.SetDefault("admin.secret-hash", "")

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// Load decodes v into a Config. Environment variables such as
// UNICONNECT_DATABASE_DSN override file values.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration with no file and no environment applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}
