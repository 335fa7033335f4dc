package db

import (
	"log"

	"vantage/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 连接 Postgres 并完成迁移，失败直接退出
func Init(dsn string) {
	var err error
	DB, err = Connect(dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")
}

// Connect 连接 Postgres，不做迁移
func Connect(dsn string) (*gorm.DB, error) {
	return Open(postgres.Open(dsn))
}

// Open 使用给定方言打开连接，测试中传入 sqlite
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

// Migrate 自动迁移全部表；ideas 由外部流程写入，这里只保证表结构存在
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(models.All()...)
}
