package core

import (
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host                      string
		Addr                      string
		DebugHost                 string
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
		ShutdownTimeout           time.Duration
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

	Config struct {
		Debug            bool
		TestMode         bool
		Env              string // dev|test|qa|prod
		Build            string
		AppName          string
		SecretKey        string
		FrontendBaseURL  string
		DefaultFromEmail mail.Address
		SendgridAPIKey   string
		RollbarToken     string

		// Storage selects the persistence variant: "inmem" is the seeded
		// demo store, "postgres" the persisted one.
		Storage string

		Server   ServerConfig
		Database DatabaseConfig
	}
)

func (dc DatabaseConfig) Address() string {
	return net.JoinHostPort(dc.Host, dc.Port)
}

// NewConfig loads the app configuration from the environment, with an
// optional `config/.env.<env>` file merged in first.
func NewConfig() *Config {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("build", "dev")
	conf.SetDefault("appName", "UniLog")
	conf.SetDefault("secretKey", "x#2u)1q_7mprt4n=f8&k!+ys5$vc(h3l*z6ed%9w^0gajbio")
	conf.SetDefault("frontendBaseURL", "http://localhost:3000")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("storage", "inmem")
	conf.SetDefault("server.host", "localhost")
	conf.SetDefault("server.addr", ":8000")
	conf.SetDefault("server.debugHost", "localhost:6060")
	conf.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("server.jwtRefreshExpirationDelta", 4*time.Hour)
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("database.engine", "postgres")
	conf.SetDefault("database.name", "unilog")
	conf.SetDefault("database.host", "localhost")
	conf.SetDefault("database.port", "5432")
	conf.SetDefault("database.disableTLS", true)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	if strings.EqualFold(env, "TEST") {
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Debug:           conf.GetBool("debug"),
		TestMode:        conf.GetBool("testMode"),
		Env:             strings.ToLower(env),
		Build:           conf.GetString("build"),
		AppName:         conf.GetString("appName"),
		SecretKey:       conf.GetString("secretKey"),
		FrontendBaseURL: conf.GetString("frontendBaseURL"),
		DefaultFromEmail: mail.Address{
			Name:    conf.GetString("appName"),
			Address: conf.GetString("defaultFromEmail"),
		},
		SendgridAPIKey: conf.GetString("sendgridApiKey"),
		RollbarToken:   conf.GetString("rollbarToken"),
		Storage:        strings.ToLower(conf.GetString("storage")),
		Server: ServerConfig{
			Host:                      conf.GetString("server.host"),
			Addr:                      conf.GetString("server.addr"),
			DebugHost:                 conf.GetString("server.debugHost"),
			JWTExpirationDelta:        conf.GetDuration("server.jwtExpirationDelta"),
			JWTRefreshExpirationDelta: conf.GetDuration("server.jwtRefreshExpirationDelta"),
			ShutdownTimeout:           conf.GetDuration("server.shutdownTimeout"),
		},
		Database: DatabaseConfig{
			Engine:        conf.GetString("database.engine"),
			Name:          conf.GetString("database.name"),
			User:          conf.GetString("database.user"),
			Password:      conf.GetString("database.password"),
			AdminUser:     conf.GetString("database.adminUser"),
			AdminPassword: conf.GetString("database.adminPassword"),
			Host:          conf.GetString("database.host"),
			Port:          conf.GetString("database.port"),
			DisableTLS:    conf.GetBool("database.disableTLS"),
		},
	}
}

// Getwd returns the project root when run from within it, falling back to
// the current working directory.
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	for dir := wd; dir != string(filepath.Separator); dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
	}
	return wd
}
