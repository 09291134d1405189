package db

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// InitStaff seeds the desk admin account from the environment on first run.
func InitStaff(database *Database) {
	adminUsername := os.Getenv("ADMIN_USERNAME")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminUsername == "" || adminPassword == "" {
		log.Println("ADMIN_USERNAME/ADMIN_PASSWORD not set, skipping staff bootstrap")
		return
	}

	var count int
	err := database.ExecQueryRow(context.Background(), "SELECT COUNT(*) FROM staff WHERE username = $1", adminUsername).Scan(&count)
	if err != nil {
		log.Fatal(err)
	}

	if count == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal(err)
		}
		_, err = database.Exec(context.Background(), "INSERT INTO staff (username, password) VALUES ($1, $2)", adminUsername, string(hashed))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("Staff admin account created successfully.")
	} else {
		fmt.Println("Staff admin account already exists.")
	}
}
