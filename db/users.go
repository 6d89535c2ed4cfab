// ABOUTME: User roster database operations
// ABOUTME: Handles user persistence ordered by creation time
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/yasunobu-co-ltd-coder/matip/models"
)

func CreateUser(db *sql.DB, user *models.User) error {
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()

	_, err := db.Exec(`
		INSERT INTO users (id, name, created_at)
		VALUES (?, ?, ?)
	`, user.ID, user.Name, user.CreatedAt)

	return err
}

func ListUsers(db *sql.DB) ([]models.User, error) {
	rows, err := db.Query(`
		SELECT id, name, created_at FROM users
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func DeleteUser(db *sql.DB, id string) (bool, error) {
	result, err := db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
