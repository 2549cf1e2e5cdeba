package booking

import (
	"errors"

	"equiploan/internal/entity"
)

// ErrNotExists возвращают реализации Store, когда записи нет.
// SQL-реализация мапит на нее sql.ErrNoRows.
var ErrNotExists = errors.New("row not exists")

// Store - точечные операции хранилища, которые нужны ядру.
// Интерфейс внедряется снаружи, чтобы конфликтный движок можно было
// гонять на памяти без настоящей базы.
type Store interface {
	GetEquipment(id int) (entity.Equipment, error)
	InsertEquipment(e entity.Equipment) (int, error)
	DeleteEquipment(id int) error
	ListEquipment() ([]entity.Equipment, error)

	GetRequest(id int) (entity.BorrowRequest, error)
	InsertRequest(r entity.BorrowRequest) (int, error)

	// ActiveRequests - все заявки по оборудованию со статусом pending
	// или approved.
	ActiveRequests(equipmentID int) ([]entity.BorrowRequest, error)

	// UpdateRequestStatus меняет статус, только если текущий равен from.
	// Возвращает false, если заявка уже в другом статусе.
	UpdateRequestStatus(id int, from, to entity.Status) (bool, error)

	ListRequests() ([]entity.BorrowRequestInfo, error)
	ListRequestsByUser(userID int) ([]entity.BorrowRequestInfo, error)
}
