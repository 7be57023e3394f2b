package database

import (
	"fmt"
	"log"

	"skillmatrix_backend/internal/config"
	"skillmatrix_backend/internal/model"

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
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Team{},
		&model.Project{},
		&model.Component{},
		&model.Question{},
		&model.Assessment{},
		&model.AssessmentInvite{},
		&model.AssessmentAttempt{},
		&model.AttemptQuestion{},
		&model.AttemptAnswer{},
		&model.SkillLevel{},
		&model.TrajectoryEvent{},
	)
	if err != nil {
		return err
	}

	log.Println("Database migration completed")
	return nil
}
