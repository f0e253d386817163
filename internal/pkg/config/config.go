package config

import (
	"os"
	"time"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const Namespace = "ATTENDANCE"

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

type Config struct {
	ConfigFile string `conf:"default:config.yaml" yaml:"-"`
	Web        Web    `yaml:"web"`
	DB         DB     `yaml:"db"`
	Redis      Redis  `yaml:"redis"`
	Auth       Auth   `yaml:"auth"`
	Seed       Seed   `yaml:"seed"`
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:3000" yaml:"address"`
	AllowedOrigins  []string      `conf:"default:http://localhost:3000" yaml:"allowed_origins"`
	ReadTimeout     time.Duration `conf:"default:10s" yaml:"read_timeout"`
	WriteTimeout    time.Duration `conf:"default:30s" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `conf:"default:10s" yaml:"shutdown_timeout"`
}

type DB struct {
	Driver     string `conf:"default:postgres" yaml:"driver"`
	User       string `conf:"default:postgres" yaml:"db_username"`
	Password   string `conf:"noprint" yaml:"db_password"`
	Host       string `conf:"default:localhost" yaml:"db_host"`
	Port       string `conf:"default:5432" yaml:"port"`
	Name       string `conf:"default:attendance" yaml:"db_name"`
	DisableTLS bool   `conf:"default:true" yaml:"disable_tls"`
	SQLitePath string `conf:"default:attendance.db" yaml:"sqlite_path"`
	Debug      bool   `yaml:"debug"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `conf:"noprint" yaml:"password"`
	DB       int    `yaml:"db"`
}

type Auth struct {
	JWTKey     string        `conf:"noprint" yaml:"jwt_key"`
	SessionTTL time.Duration `conf:"default:12h" yaml:"session_ttl"`
	CookieName string        `conf:"default:attendance_session" yaml:"cookie_name"`
}

type Seed struct {
	AdminUsername        string `conf:"default:admin" yaml:"admin_username"`
	AdminPassword        string `conf:"noprint" yaml:"admin_password"`
	DefaultStaffPassword string `conf:"default:sam123456,noprint" yaml:"default_staff_password"`
}

// NewConfig reads defaults, ATTENDANCE_* environment variables and flags,
// then overlays the yaml file when one exists.
func NewConfig(args []string) (*Config, error) {
	var c Config

	if err := conf.Parse(args, Namespace, &c); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			usage, err := conf.Usage(Namespace, &c)
			if err != nil {
				return nil, errors.Wrap(err, "generating config usage")
			}
			os.Stdout.WriteString(usage + "\n")
			return nil, ErrHelp
		}
		return nil, errors.Wrap(err, "parsing config")
	}

	if c.ConfigFile != "" {
		yamlFile, err := os.ReadFile(c.ConfigFile)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, errors.Wrap(err, "reading config file")
		default:
			if err := yaml.Unmarshal(yamlFile, &c); err != nil {
				return nil, errors.Wrap(err, "decoding config file")
			}
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate checks the fields each driver needs.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "postgres":
		if c.DB.User == "" || c.DB.Password == "" || c.DB.Host == "" || c.DB.Name == "" {
			return errors.New("missing required database configuration")
		}
	case "sqlite":
		if c.DB.SQLitePath == "" {
			return errors.New("missing sqlite path")
		}
	default:
		return errors.Errorf("unknown database driver %q", c.DB.Driver)
	}

	if c.Auth.JWTKey == "" {
		return errors.New("missing auth jwt key")
	}
	if c.Seed.AdminPassword == "" {
		return errors.New("missing seed admin password")
	}

	return nil
}

// String renders the configuration without secret fields.
func (c *Config) String() string {
	out, err := conf.String(c)
	if err != nil {
		return err.Error()
	}
	return out
}
