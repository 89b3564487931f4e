package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"galon/config"
	"galon/database"
	"galon/middleware"
	"galon/router"
	"galon/service"

	"github.com/sirupsen/logrus"
)

// @title 桶装水领取额度 API
// @version 1.0
// @description 员工每月 10 桶的领取额度管理：扫码领取接口与后台员工管理
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const version = "1.0.0"

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 8080 或 :8080")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Printf("galon v%s\n", version)
		return
	}

	log := config.Logger()

	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.WithError(err).Fatal("加载配置失败")
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.WithField("port", port).Info("命令行指定端口")
	}

	config.PrintConfig()

	if err := database.Init(cfg); err != nil {
		log.WithError(err).Fatal("数据库初始化失败")
	}
	if err := database.InitRedis(cfg); err != nil {
		log.WithError(err).Fatal("Redis 初始化失败")
	}
	defer database.CloseRedis()

	middleware.InitJWT(cfg)

	admitter := service.NewAdmitter(service.NewGormRepository(database.DB), admissionOptions(cfg))
	r := router.SetupRouter(cfg, admitter)

	log.WithFields(logrus.Fields{
		"kiosk":   fmt.Sprintf("http://localhost%s/", cfg.Server.Port),
		"swagger": fmt.Sprintf("http://localhost%s/swagger/index.html", cfg.Server.Port),
		"version": version,
	}).Info("galon 服务已启动")

	if err := r.Run(cfg.Server.Port); err != nil {
		log.WithError(err).Error("服务器启动失败")
		os.Exit(1)
	}
}

// admissionOptions 按配置组装准入器：并发模式、锁后端、额度用尽通知与时区
func admissionOptions(cfg *config.Config) service.AdmissionOptions {
	opts := service.AdmissionOptions{
		Mode: service.AdmissionMode(cfg.Admission.Mode),
		Now: func() time.Time {
			return time.Now().In(cfg.App.Location)
		},
	}

	if cfg.Admission.LockBackend == config.LockBackendRedis && database.RDB != nil {
		opts.Locker = service.NewRedisLocker(database.RDB, cfg.Admission.LockTTL)
	} else {
		opts.Locker = service.NewKeyedMutex()
	}

	if cfg.Email.Enabled && cfg.Email.NotifyTo != "" {
		opts.Notifier = service.NewEmailService(&cfg.Email)
	}
	return opts
}
