package entity

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusReturned Status = "returned"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected || s == StatusReturned
}

// Active - заявка держит оборудование (участвует в проверке пересечений).
func (s Status) Active() bool {
	return s == StatusPending || s == StatusApproved
}

// BorrowRequest - заявка на выдачу оборудования. Даты календарные,
// формат YYYY-MM-DD, диапазон включительный с обеих сторон.
type BorrowRequest struct {
	ID          int    `json:"id"`
	UserID      int    `json:"userId"`
	EquipmentID int    `json:"equipmentId"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Status      Status `json:"status"`
}

func NewBorrowRequest(userID, equipmentID int, startDate, endDate string) BorrowRequest {
	return BorrowRequest{
		UserID:      userID,
		EquipmentID: equipmentID,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      StatusPending,
	}
}

// BorrowRequestInfo - строка для списка заявок: заявка плюс название
// оборудования и почта заявителя.
type BorrowRequestInfo struct {
	BorrowRequest
	EquipmentName string `json:"equipmentName"`
	Requester     string `json:"requester"`
}
