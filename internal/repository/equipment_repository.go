package repository

import (
	"database/sql"
	"errors"

	"equiploan/internal/booking"
	"equiploan/internal/entity"
)

type EquipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) GetEquipment(id int) (entity.Equipment, error) {
	var e entity.Equipment

	err := r.db.QueryRow(`
		SELECT id, name, category, condition, quantity, available
		FROM equipment
		WHERE id = $1
	`, id).Scan(&e.ID, &e.Name, &e.Category, &e.Condition, &e.Quantity, &e.Available)

	if errors.Is(err, sql.ErrNoRows) {
		return entity.Equipment{}, booking.ErrNotExists
	}

	return e, err
}

func (r *EquipmentRepository) InsertEquipment(e entity.Equipment) (int, error) {
	var id int

	err := r.db.QueryRow(`
		INSERT INTO equipment (name, category, condition, quantity, available)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, e.Name, e.Category, e.Condition, e.Quantity, e.Available).Scan(&id)

	return id, err
}

func (r *EquipmentRepository) DeleteEquipment(id int) error {
	_, err := r.db.Exec(`
		DELETE FROM equipment WHERE id = $1
	`, id)

	return err
}

func (r *EquipmentRepository) ListEquipment() ([]entity.Equipment, error) {
	rows, err := r.db.Query(`
		SELECT id, name, category, condition, quantity, available
		FROM equipment
		ORDER BY id
	`)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	list := make([]entity.Equipment, 0)

	for rows.Next() {
		var e entity.Equipment

		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.Condition, &e.Quantity, &e.Available); err != nil {
			return list, err
		}

		list = append(list, e)
	}

	return list, rows.Err()
}
