package database

import (
	"fmt"
	"log"

	"github.com/khan-masud/exam-station/internal/config"
	"github.com/khan-masud/exam-station/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Program{},
		&model.Enrollment{},
		&model.Exam{},
		&model.Question{},
		&model.QuestionOption{},
		&model.ExamAttempt{},
		&model.ExamAnswer{},
		&model.ExamResult{},
		&model.Notification{},
		&model.SystemSetting{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Seed default exam settings on first boot.
	var count int64
	db.Model(&model.SystemSetting{}).Count(&count)
	if count == 0 {
		defaults := []model.SystemSetting{
			{Key: model.SettingShuffleQuestions, Value: "false"},
			{Key: model.SettingShowResultsImmediately, Value: "true"},
		}
		for _, s := range defaults {
			db.Create(&s)
		}
	}

	return db, nil
}
