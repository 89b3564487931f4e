package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultConfigYAML 内置默认配置
//
//go:embed default.yaml
var DefaultConfigYAML []byte

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Admission AdmissionConfig `mapstructure:"admission"`
	Email     EmailConfig     `mapstructure:"email"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    string `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
	BaseURL string `mapstructure:"base_url"`
}

// AppConfig 业务配置
type AppConfig struct {
	// Timezone 判定"当月"所用的时区，如 Asia/Jakarta
	Timezone string         `mapstructure:"timezone"`
	Location *time.Location `mapstructure:"-"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// RedisConfig Redis 配置，仅在 admission.lock_backend=redis 时使用
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	ExpireHours int           `mapstructure:"expire_hours"`
	ExpireTime  time.Duration `mapstructure:"-"`
}

// AdminConfig 首个管理员账号，仅当 users 表为空时写入
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// AdmissionConfig 领取准入配置
type AdmissionConfig struct {
	// Mode: serialized（按员工串行化）或 check_then_act（先查后写，无互斥）
	Mode string `mapstructure:"mode"`
	// LockBackend: local（进程内）或 redis（多实例部署）
	LockBackend    string        `mapstructure:"lock_backend"`
	LockTTLSeconds int           `mapstructure:"lock_ttl_seconds"`
	LockTTL        time.Duration `mapstructure:"-"`
}

// EmailConfig 邮件配置
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	// NotifyTo 额度用尽通知的收件人，为空则不通知
	NotifyTo string `mapstructure:"notify_to"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig *Config
)

// LoadConfig 加载配置
// 优先级: 环境变量 > 外部配置文件 > 嵌入的默认配置
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("read embedded config: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			Logger().Warnf("cannot read config file %s: %v", configPath, err)
		} else {
			Logger().Infof("merged config file: %s", configPath)
		}
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/galon")
		externalViper.AddConfigPath("$HOME/.galon")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				Logger().Warnf("merge external config: %v", err)
			} else {
				Logger().Infof("merged config file: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	v.SetEnvPrefix("GALON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	GlobalConfig = &cfg
	ConfigureLogger(cfg.Log)

	return &cfg, nil
}

// normalize 填充派生字段并校验枚举值
func (cfg *Config) normalize() error {
	if cfg.JWT.ExpireHours <= 0 {
		cfg.JWT.ExpireHours = 24
	}
	cfg.JWT.ExpireTime = time.Duration(cfg.JWT.ExpireHours) * time.Hour

	if cfg.Admission.LockTTLSeconds <= 0 {
		cfg.Admission.LockTTLSeconds = 5
	}
	cfg.Admission.LockTTL = time.Duration(cfg.Admission.LockTTLSeconds) * time.Second

	switch cfg.Admission.Mode {
	case "":
		cfg.Admission.Mode = AdmissionModeSerialized
	case AdmissionModeSerialized, AdmissionModeCheckThenAct:
	default:
		return fmt.Errorf("unknown admission.mode %q", cfg.Admission.Mode)
	}
	switch cfg.Admission.LockBackend {
	case "":
		cfg.Admission.LockBackend = LockBackendLocal
	case LockBackendLocal:
	case LockBackendRedis:
		if !cfg.Redis.Enabled {
			return fmt.Errorf("admission.lock_backend=redis requires redis.enabled")
		}
	default:
		return fmt.Errorf("unknown admission.lock_backend %q", cfg.Admission.LockBackend)
	}

	loc := time.Local
	if cfg.App.Timezone != "" {
		l, err := time.LoadLocation(cfg.App.Timezone)
		if err != nil {
			return fmt.Errorf("load timezone %q: %w", cfg.App.Timezone, err)
		}
		loc = l
	}
	cfg.App.Location = loc
	return nil
}

const (
	AdmissionModeSerialized   = "serialized"
	AdmissionModeCheckThenAct = "check_then_act"

	LockBackendLocal = "local"
	LockBackendRedis = "redis"
)

// GetConfig 获取全局配置，未初始化时返回 nil
func GetConfig() *Config {
	return GlobalConfig
}

// PrintConfig 打印当前配置（隐藏敏感信息）
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	log := Logger()
	log.WithFields(map[string]interface{}{
		"port":         GlobalConfig.Server.Port,
		"mode":         GlobalConfig.Server.Mode,
		"timezone":     GlobalConfig.App.Location.String(),
		"database":     fmt.Sprintf("%s@%s:%s/%s", GlobalConfig.Database.Username, GlobalConfig.Database.Host, GlobalConfig.Database.Port, GlobalConfig.Database.DBName),
		"admission":    GlobalConfig.Admission.Mode,
		"lock_backend": GlobalConfig.Admission.LockBackend,
		"redis":        GlobalConfig.Redis.Enabled,
		"email":        GlobalConfig.Email.Enabled,
	}).Info("current config")
}
