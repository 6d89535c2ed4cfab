// ABOUTME: Deal database operations
// ABOUTME: Handles deal persistence and the creation-descending listing order
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/yasunobu-co-ltd-coder/matip/models"
)

const dealColumns = `id, created_at, created_by, client_name, memo, due_date, importance, urgency, profit, assignment_type, assignee, status, image_url`

func CreateDeal(db *sql.DB, deal *models.Deal) error {
	deal.ID = uuid.New().String()
	deal.CreatedAt = time.Now()

	_, err := db.Exec(`
		INSERT INTO deals (`+dealColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, deal.ID, deal.CreatedAt, deal.CreatedBy, deal.ClientName, deal.Memo, deal.DueDate,
		string(deal.Importance), string(deal.Urgency), string(deal.Profit),
		string(deal.Assignment), deal.Assignee, string(deal.Status), deal.ImageURL)

	return err
}

func GetDeal(db *sql.DB, id string) (*models.Deal, error) {
	deal := &models.Deal{}
	err := db.QueryRow(`
		SELECT `+dealColumns+` FROM deals WHERE id = ?
	`, id).Scan(
		&deal.ID,
		&deal.CreatedAt,
		&deal.CreatedBy,
		&deal.ClientName,
		&deal.Memo,
		&deal.DueDate,
		&deal.Importance,
		&deal.Urgency,
		&deal.Profit,
		&deal.Assignment,
		&deal.Assignee,
		&deal.Status,
		&deal.ImageURL,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return deal, nil
}

func ListDeals(db *sql.DB) ([]models.Deal, error) {
	rows, err := db.Query(`
		SELECT ` + dealColumns + ` FROM deals
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deals []models.Deal
	for rows.Next() {
		var deal models.Deal
		if err := rows.Scan(
			&deal.ID,
			&deal.CreatedAt,
			&deal.CreatedBy,
			&deal.ClientName,
			&deal.Memo,
			&deal.DueDate,
			&deal.Importance,
			&deal.Urgency,
			&deal.Profit,
			&deal.Assignment,
			&deal.Assignee,
			&deal.Status,
			&deal.ImageURL,
		); err != nil {
			return nil, err
		}
		deals = append(deals, deal)
	}
	return deals, rows.Err()
}

func UpdateDeal(db *sql.DB, id string, patch models.DealPatch) (*models.Deal, error) {
	deal, err := GetDeal(db, id)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, nil
	}

	patch.Apply(deal)

	_, err = db.Exec(`
		UPDATE deals
		SET client_name = ?, memo = ?, due_date = ?, importance = ?, urgency = ?, profit = ?,
		    assignment_type = ?, assignee = ?, status = ?, image_url = ?
		WHERE id = ?
	`, deal.ClientName, deal.Memo, deal.DueDate,
		string(deal.Importance), string(deal.Urgency), string(deal.Profit),
		string(deal.Assignment), deal.Assignee, string(deal.Status), deal.ImageURL, id)
	if err != nil {
		return nil, err
	}
	return deal, nil
}

func DeleteDeal(db *sql.DB, id string) (bool, error) {
	result, err := db.Exec(`DELETE FROM deals WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
