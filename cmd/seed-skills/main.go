package main

import (
	"errors"
	"log"
	"time"

	"github.com/fadilmartias/cv-reviewer/internal/config"
	"github.com/fadilmartias/cv-reviewer/internal/model"
	"github.com/fadilmartias/cv-reviewer/internal/repository"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Seeds the skills catalog used by /api/analyze-skills. Skills already present
// (by case-insensitive name) are left untouched, so the command can be rerun.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	dbConfig := config.LoadDBConfig()
	if !dbConfig.Enabled() {
		log.Fatal("DB_HOST and DB_NAME must be set to seed skills")
	}

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	if err := db.AutoMigrate(&model.Skill{}); err != nil {
		log.Fatal("migration failed: ", err)
	}

	repo := repository.NewSkillRepository(db)
	added, skipped := 0, 0
	for _, skill := range essentialSkills {
		if _, err := repo.FindSkillByName(skill.Name); err == nil {
			skipped++
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Could not check skill %s: %v", skill.Name, err)
		}

		skill.CreatedAt = time.Now()
		skill.UpdatedAt = time.Now()
		if err := repo.CreateSkill(&skill); err != nil {
			log.Fatalf("Could not add skill %s: %v", skill.Name, err)
		}
		added++
	}

	log.Printf("Seeded skills: %d added, %d already present", added, skipped)
}
