package database

import (
	"fmt"
	"log"

	"github.com/Ravshan88/online-lesson/internal/config"
	"github.com/Ravshan88/online-lesson/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// Duplicate-key violations must surface as gorm.ErrDuplicatedKey so
		// the exam store can tell an idempotent retry from a conflict.
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// Release deployments only migrate when explicitly asked to.
	if cfg.Server.Mode == "release" && !cfg.ForceMigrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Section{},
		&model.Material{},
		&model.Attachment{},
		&model.Question{},
		&model.UserProgress{},
		&model.ExamSession{},
		&model.ExamAnswer{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Seed the default admin account on an empty users table.
	var userCount int64
	db.Model(&model.User{}).Count(&userCount)
	if userCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		admin := &model.User{
			Firstname: "Platform",
			Lastname:  "Admin",
			Username:  "admin",
			Password:  string(hashed),
			Role:      model.Admin,
		}
		db.Create(admin)
		log.Println("Seeded default admin user (username: admin)")
	}

	// Starter sections so a fresh deployment is browsable.
	var sectionCount int64
	db.Model(&model.Section{}).Count(&sectionCount)
	if sectionCount == 0 {
		defaultSections := []model.Section{
			{Name: "Kirish"},
			{Name: "Asosiy kurs"},
			{Name: "Yakuniy bosqich"},
		}
		for _, s := range defaultSections {
			db.Create(&s)
		}
	}

	return db, nil
}
