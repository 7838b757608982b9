// Seed creates the two teams' members and a handful of tasks so a dev
// instance has something on the board. Safe to re-run; existing
// usernames are skipped.
package main

import (
	"flag"
	"log"

	"daily-board/internal/calendar"
	"daily-board/internal/config"
	"daily-board/internal/logger"
	"daily-board/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	configFile := flag.String("config", "etc/config-dev.yaml", "config file")
	password := flag.String("password", "123456", "initial password for seeded members")
	flag.Parse()

	logger.Init(config.LogConfig{Level: "info", Console: true})

	cfg := config.Load(*configFile)
	db, err := cfg.OpenGormDB()
	if err != nil {
		log.Fatal(err)
	}
	if err := model.Migrate(db); err != nil {
		log.Fatal("migrate failed:", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	members := []model.Member{
		{Username: "admin", Name: "Admin", Role: "admin", Team: "dev"},
		{Username: "dana", Name: "Dana", Role: "member", Team: "dev"},
		{Username: "omar", Name: "Omar", Role: "member", Team: "dev"},
		{Username: "mia", Name: "Mia", Role: "member", Team: "design"},
	}
	for i := range members {
		members[i].Password = string(hash)
		if err := seedMember(db, &members[i]); err != nil {
			log.Fatal("seed member failed:", err)
		}
	}

	today := calendar.Today()
	tasks := []model.Task{
		{Title: "API pagination", AssigneeID: members[1].ID, DueDate: today.String(), Status: "in_progress", Team: "dev"},
		{Title: "Fix login redirect", AssigneeID: members[1].ID, DueDate: today.AddDays(-1).String(), Status: "todo", Team: "dev"},
		{Title: "Client onboarding deck", AssigneeID: members[3].ID, DueDate: today.String(), Status: "in_review", Team: "design"},
		{Title: "Landing page hero", AssigneeID: members[3].ID, DueDate: today.AddDays(1).String(), Status: "todo", Team: "design"},
	}
	if err := db.Create(&tasks).Error; err != nil {
		log.Fatal("seed tasks failed:", err)
	}

	logger.Info("seed done", "members", len(members), "tasks", len(tasks))
}

func seedMember(db *gorm.DB, m *model.Member) error {
	var existing model.Member
	err := db.Where("username = ?", m.Username).First(&existing).Error
	if err == nil {
		m.ID = existing.ID
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return db.Create(m).Error
}
