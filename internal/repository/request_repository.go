package repository

import (
	"database/sql"
	"errors"

	"equiploan/internal/booking"
	"equiploan/internal/entity"
)

type RequestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) GetRequest(id int) (entity.BorrowRequest, error) {
	var req entity.BorrowRequest

	err := r.db.QueryRow(`
		SELECT id, user_id, equipment_id, start_date, end_date, status
		FROM requests
		WHERE id = $1
	`, id).Scan(&req.ID, &req.UserID, &req.EquipmentID, &req.StartDate, &req.EndDate, &req.Status)

	if errors.Is(err, sql.ErrNoRows) {
		return entity.BorrowRequest{}, booking.ErrNotExists
	}

	return req, err
}

func (r *RequestRepository) InsertRequest(req entity.BorrowRequest) (int, error) {
	var id int

	err := r.db.QueryRow(`
		INSERT INTO requests (user_id, equipment_id, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, req.UserID, req.EquipmentID, req.StartDate, req.EndDate, req.Status).Scan(&id)

	return id, err
}

// получить активные заявки по оборудованию
func (r *RequestRepository) ActiveRequests(equipmentID int) ([]entity.BorrowRequest, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, equipment_id, start_date, end_date, status
		FROM requests
		WHERE equipment_id = $1 AND status IN ('pending', 'approved')
	`, equipmentID)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var active []entity.BorrowRequest

	for rows.Next() {
		var req entity.BorrowRequest

		if err := rows.Scan(&req.ID, &req.UserID, &req.EquipmentID, &req.StartDate, &req.EndDate, &req.Status); err != nil {
			return active, err
		}

		active = append(active, req)
	}

	return active, rows.Err()
}

// Условная запись статуса: строка меняется только из ожидаемого статуса,
// по числу затронутых строк видно, прошла ли замена.
func (r *RequestRepository) UpdateRequestStatus(id int, from, to entity.Status) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE requests
		SET status = $1
		WHERE id = $2 AND status = $3
	`, to, id, from)

	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *RequestRepository) ListRequests() ([]entity.BorrowRequestInfo, error) {
	return r.listRequests(`
		SELECT r.id, r.user_id, r.equipment_id, r.start_date, r.end_date, r.status,
			e.name, u.email
		FROM requests r
		JOIN equipment e ON e.id = r.equipment_id
		JOIN users u ON u.id = r.user_id
		ORDER BY r.id DESC
	`)
}

func (r *RequestRepository) ListRequestsByUser(userID int) ([]entity.BorrowRequestInfo, error) {
	return r.listRequests(`
		SELECT r.id, r.user_id, r.equipment_id, r.start_date, r.end_date, r.status,
			e.name, u.email
		FROM requests r
		JOIN equipment e ON e.id = r.equipment_id
		JOIN users u ON u.id = r.user_id
		WHERE r.user_id = $1
		ORDER BY r.id DESC
	`, userID)
}

func (r *RequestRepository) listRequests(query string, args ...interface{}) ([]entity.BorrowRequestInfo, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	list := make([]entity.BorrowRequestInfo, 0)

	for rows.Next() {
		var info entity.BorrowRequestInfo

		if err := rows.Scan(
			&info.ID,
			&info.UserID,
			&info.EquipmentID,
			&info.StartDate,
			&info.EndDate,
			&info.Status,
			&info.EquipmentName,
			&info.Requester,
		); err != nil {
			return list, err
		}

		list = append(list, info)
	}

	return list, rows.Err()
}
