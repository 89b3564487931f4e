package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeErrorMessage(t *testing.T) {
	fallback := "operation failed"
	testErr := errors.New("internal database error")

	// nil err 返回 fallback
	assert.Equal(t, fallback, SafeErrorMessage(nil, fallback))

	// release 模式不暴露错误详情
	GlobalConfig = &Config{Server: ServerConfig{Mode: "release"}}
	defer func() { GlobalConfig = nil }()
	assert.Equal(t, fallback, SafeErrorMessage(testErr, fallback))

	GlobalConfig = &Config{Server: ServerConfig{Mode: "debug"}}
	assert.Equal(t, "internal database error", SafeErrorMessage(testErr, fallback))

	// 未初始化视为开发环境
	GlobalConfig = nil
	assert.Equal(t, "internal database error", SafeErrorMessage(testErr, fallback))
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	path := filepath.Join(t.TempDir(), "missing.yaml")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, AdmissionModeSerialized, cfg.Admission.Mode)
	assert.Equal(t, LockBackendLocal, cfg.Admission.LockBackend)
	assert.Equal(t, 5*time.Second, cfg.Admission.LockTTL)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, "Asia/Jakarta", cfg.App.Location.String())
	assert.Same(t, cfg, GetConfig())
}

func TestLoadConfig_ExternalFileOverrides(t *testing.T) {
	defer func() { GlobalConfig = nil }()
	defer ConfigureLogger(LogConfig{Level: "info", Format: "json"})

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("server:\n  port: \":9090\"\nadmission:\n  mode: check_then_act\nlog:\n  level: debug\n  format: text\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, AdmissionModeCheckThenAct, cfg.Admission.Mode)
	assert.Equal(t, "galon", cfg.Database.DBName)
	assert.Equal(t, logrus.DebugLevel, Logger().GetLevel())
}

func TestNormalize_Rejects(t *testing.T) {
	cases := map[string]Config{
		"unknown mode":      {Admission: AdmissionConfig{Mode: "optimistic"}},
		"unknown backend":   {Admission: AdmissionConfig{LockBackend: "etcd"}},
		"redis not enabled": {Admission: AdmissionConfig{LockBackend: LockBackendRedis}},
		"bad timezone":      {App: AppConfig{Timezone: "Mars/Olympus"}},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			c := cfg
			assert.Error(t, c.normalize())
		})
	}
}

func TestNormalize_RedisBackend(t *testing.T) {
	cfg := Config{
		Redis:     RedisConfig{Enabled: true},
		Admission: AdmissionConfig{LockBackend: LockBackendRedis, LockTTLSeconds: 2},
	}
	require.NoError(t, cfg.normalize())
	assert.Equal(t, 2*time.Second, cfg.Admission.LockTTL)
	assert.Equal(t, time.Local, cfg.App.Location)
}
