package config

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var logg = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.InfoLevel)
	l.SetOutput(os.Stdout)
	return l
}

// Logger 全局 logrus 实例
func Logger() *logrus.Logger {
	return logg
}

// ConfigureLogger 按配置调整日志级别与格式，非法级别保持 info
func ConfigureLogger(cfg LogConfig) {
	if lvl, err := logrus.ParseLevel(cfg.Level); err == nil {
		logg.SetLevel(lvl)
	}
	if strings.EqualFold(cfg.Format, "text") {
		logg.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logg.SetFormatter(&logrus.JSONFormatter{})
	}
}

// LogError 带模块与函数上下文记录错误
func LogError(module, funcName, context string, data any, err error) {
	fields := logrus.Fields{
		"module":   module,
		"funcName": funcName,
		"context":  context,
	}
	if data != nil {
		fields["data"] = data
	}
	logg.WithFields(fields).Error(err.Error())
}
