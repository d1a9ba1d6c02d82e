package core

import (
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host               string
		Addr               string
		DebugAddr          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Host          string
		Port          string
		DisableTLS    bool
	}

	// AttendanceConfig drives the live check-in token lifecycle.
	AttendanceConfig struct {
		Window        time.Duration // nominal token validity
		GuardBand     time.Duration // extra validity absorbing clock skew
		LowWaterMark  time.Duration // remaining validity that triggers rediscovery
		Heartbeat     time.Duration // rediscovery check cadence
		PortalBaseURL string        // student portal serving /checkin
	}

	Config struct {
		Env      string
		Debug    bool
		TestMode bool
		Build    string

		AppName          string
		SecretKey        string
		DefaultFromEmail string
		FrontendBaseURL  string
		SendgridAPIKey   string
		RollbarToken     string

		Server     ServerConfig
		Database   DatabaseConfig
		Attendance AttendanceConfig
	}
)

func (c DatabaseConfig) Address() string {
	return c.Host + ":" + c.Port
}

// NewConfig loads configuration from the environment (and an optional per-env
// .env file) with defaults for local development. Configuration errors are
// fatal: a process started with a broken config must not limp along.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "Secretaria")
	v.SetDefault("secretKey", "x2m&1#iu+kzx3(17d=0u9p&5l@^9s-6g$0n_cd8p%*o4g!y7nq")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("sendgridAPIKey", "")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("serverDebugAddr", ":4000")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)

	v.SetDefault("databaseEngine", "postgres")
	v.SetDefault("databaseName", "secretaria")
	v.SetDefault("databaseUser", "")
	v.SetDefault("databasePassword", "")
	v.SetDefault("databaseAdminUser", "postgres")
	v.SetDefault("databaseAdminPassword", "")
	v.SetDefault("databaseHost", "localhost")
	v.SetDefault("databasePort", "5432")
	v.SetDefault("databaseDisableTLS", true)

	v.SetDefault("attendanceWindow", 2*time.Hour)
	v.SetDefault("attendanceGuardBand", 10*time.Second)
	v.SetDefault("attendanceLowWaterMark", 10*time.Second)
	v.SetDefault("attendanceHeartbeat", time.Minute)
	v.SetDefault("attendancePortalBaseURL", "http://localhost:3000")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	var testMode bool
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		testMode = true
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:      env,
		Debug:    v.GetBool("debug"),
		TestMode: testMode,
		Build:    v.GetString("build"),

		AppName:          v.GetString("appName"),
		SecretKey:        v.GetString("secretKey"),
		DefaultFromEmail: v.GetString("defaultFromEmail"),
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		SendgridAPIKey:   v.GetString("sendgridAPIKey"),
		RollbarToken:     v.GetString("rollbarToken"),

		Server: ServerConfig{
			Host:               v.GetString("serverHost"),
			Addr:               v.GetString("serverAddr"),
			DebugAddr:          v.GetString("serverDebugAddr"),
			ShutdownTimeout:    v.GetDuration("serverShutdownTimeout"),
			JWTExpirationDelta: v.GetDuration("jwtExpirationDelta"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("databaseEngine"),
			Name:          v.GetString("databaseName"),
			User:          v.GetString("databaseUser"),
			Password:      v.GetString("databasePassword"),
			AdminUser:     v.GetString("databaseAdminUser"),
			AdminPassword: v.GetString("databaseAdminPassword"),
			Host:          v.GetString("databaseHost"),
			Port:          v.GetString("databasePort"),
			DisableTLS:    v.GetBool("databaseDisableTLS"),
		},
		Attendance: AttendanceConfig{
			Window:        v.GetDuration("attendanceWindow"),
			GuardBand:     v.GetDuration("attendanceGuardBand"),
			LowWaterMark:  v.GetDuration("attendanceLowWaterMark"),
			Heartbeat:     v.GetDuration("attendanceHeartbeat"),
			PortalBaseURL: strings.TrimRight(v.GetString("attendancePortalBaseURL"), "/"),
		},
	}

	if err := conf.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	return conf
}

// Validate enforces the few cross-field rules the attendance protocol relies on.
func (c *Config) Validate() error {
	att := c.Attendance
	if att.Window <= 0 {
		return errors.New("attendanceWindow must be positive")
	}
	if att.GuardBand < 0 {
		return errors.New("attendanceGuardBand cannot be negative")
	}
	if att.LowWaterMark >= att.Window {
		return errors.New("attendanceLowWaterMark must be shorter than attendanceWindow")
	}
	if att.Heartbeat <= 0 {
		return errors.New("attendanceHeartbeat must be positive")
	}
	if u, err := url.ParseRequestURI(att.PortalBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("attendancePortalBaseURL is not a valid absolute URL")
	}
	return nil
}
