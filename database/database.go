package database

import (
	"errors"
	"fmt"
	"net"
	"time"

	"galon/config"
	"galon/models"

	mysqldriver "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// DSN 生成连接串，loc 与 app.timezone 一致，DATE 列的读写都落在业务时区
func DSN(cfg *config.Config) string {
	loc := cfg.App.Location
	if loc == nil {
		loc = time.Local
	}

	dc := mysqldriver.NewConfig()
	dc.User = cfg.Database.Username
	dc.Passwd = cfg.Database.Password
	dc.Net = "tcp"
	dc.Addr = net.JoinHostPort(cfg.Database.Host, cfg.Database.Port)
	dc.DBName = cfg.Database.DBName
	dc.ParseTime = true
	dc.Loc = loc
	if cfg.Database.Charset != "" {
		dc.Params = map[string]string{"charset": cfg.Database.Charset}
	}
	return dc.FormatDSN()
}

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	dsn := DSN(cfg)

	logLevel := logger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	if err := Migrate(DB); err != nil {
		return err
	}

	if err := SeedAdmin(DB, cfg.Admin); err != nil {
		return err
	}

	config.Logger().Info("database initialized")
	return nil
}

// Migrate 自动迁移表结构，galon_transactions.employee_id 外键级联删除
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.GalonTransaction{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SeedAdmin users 表为空时按配置创建首个管理员
func SeedAdmin(db *gorm.DB, admin config.AdminConfig) error {
	if admin.Username == "" || admin.Password == "" {
		return nil
	}
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if err := db.Create(&models.User{Username: admin.Username, Password: string(hashed)}).Error; err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	config.Logger().WithField("username", admin.Username).Info("seeded admin user")
	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}

// ErrNotInitialized 数据库尚未初始化
var ErrNotInitialized = errors.New("database not initialized")

// Ping 健康检查
func Ping() error {
	if DB == nil {
		return ErrNotInitialized
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
