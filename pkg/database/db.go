package database

import (
	"Agora/config"
	"Agora/models"
	"Agora/pkg/log"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 初始化数据库连接
func NewDB(conf *config.Config) *gorm.DB {
	gormConf := &gorm.Config{}
	if !conf.Debug() {
		gormConf.Logger = logger.Default.LogMode(logger.Warn)
	}
	db, err := gorm.Open(mysql.Open(conf.MySQL.Dsn()), gormConf)
	if err != nil {
		log.L.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.L.Fatal("failed to get sql db", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.L.Info("connect database success")
	return db
}

// Migrate 建表。notes/topics 由内容服务维护，这里只为本地环境补齐
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Topic{},
		&models.Note{},
		&models.NoteTopic{},
		&models.TopicFollow{},
		&models.TopicActivity{},
		&models.TopicStats{},
	)
}
