package booking

import (
	"errors"
	"strings"
	"sync"

	"equiploan/internal/entity"
)

// Допустимые переходы статусов. rejected и returned - терминальные,
// из них выхода нет.
var transitions = map[entity.Status][]entity.Status{
	entity.StatusPending:  {entity.StatusApproved, entity.StatusRejected},
	entity.StatusApproved: {entity.StatusReturned},
}

func canTransition(from, to entity.Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Service - движок бронирования: проверка пересечений при создании
// заявки и машина состояний заявки.
type Service struct {
	store Store

	// Проверка пересечения и вставка должны идти под одним замком,
	// иначе две одновременные заявки обе увидят "конфликта нет".
	// Замок свой на каждую единицу оборудования, разное оборудование
	// друг друга не блокирует.
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		locks: make(map[int]*sync.Mutex),
	}
}

func (s *Service) equipmentLock(equipmentID int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[equipmentID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[equipmentID] = lock
	}
	return lock
}

func (s *Service) CreateEquipment(p entity.Principal, name, category, condition string, quantity int) (int, error) {
	if !Allowed(p.Role, ActionCreateEquipment) {
		return 0, &AuthorizationError{Action: ActionCreateEquipment}
	}

	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	condition = strings.TrimSpace(condition)

	if name == "" || category == "" || condition == "" {
		return 0, &ValidationError{Message: "name, category and condition are required"}
	}
	if quantity <= 0 {
		return 0, &ValidationError{Message: "quantity must be positive"}
	}

	id, err := s.store.InsertEquipment(entity.NewEquipment(name, category, condition, quantity))
	if err != nil {
		return 0, &StorageError{Op: "insert equipment", Err: err}
	}

	return id, nil
}

func (s *Service) DeleteEquipment(p entity.Principal, id int) error {
	if !Allowed(p.Role, ActionDeleteEquipment) {
		return &AuthorizationError{Action: ActionDeleteEquipment}
	}

	if err := s.store.DeleteEquipment(id); err != nil {
		return &StorageError{Op: "delete equipment", Err: err}
	}

	return nil
}

func (s *Service) ListEquipment() ([]entity.Equipment, error) {
	list, err := s.store.ListEquipment()
	if err != nil {
		return nil, &StorageError{Op: "list equipment", Err: err}
	}
	return list, nil
}

// CreateRequest - единственный путь создания заявки, всегда в pending.
// Проверка пересечения и вставка сериализованы по оборудованию.
func (s *Service) CreateRequest(p entity.Principal, equipmentID int, startDate, endDate string) (int, error) {
	if !Allowed(p.Role, ActionCreateRequest) {
		return 0, &AuthorizationError{Action: ActionCreateRequest}
	}

	if !ValidDate(startDate) || !ValidDate(endDate) {
		return 0, &ValidationError{Message: "dates must be YYYY-MM-DD"}
	}
	if startDate > endDate {
		return 0, &ValidationError{Message: "startDate must not be after endDate"}
	}

	lock := s.equipmentLock(equipmentID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.store.GetEquipment(equipmentID); err != nil {
		if errors.Is(err, ErrNotExists) {
			return 0, &NotFoundError{What: "equipment", ID: equipmentID}
		}
		return 0, &StorageError{Op: "get equipment", Err: err}
	}

	conflict, err := HasConflict(s.store, equipmentID, startDate, endDate)
	if err != nil {
		return 0, err
	}
	if conflict {
		return 0, &ConflictError{Message: "overlapping booking exists"}
	}

	id, err := s.store.InsertRequest(entity.NewBorrowRequest(p.UserID, equipmentID, startDate, endDate))
	if err != nil {
		return 0, &StorageError{Op: "insert request", Err: err}
	}

	return id, nil
}

// SetRequestStatus переводит заявку в новый статус по машине состояний.
// Запись в хранилище условная (только из прочитанного статуса), так что
// гонка двух переводов одной заявки не даст второму пройти.
func (s *Service) SetRequestStatus(p entity.Principal, requestID int, target entity.Status) error {
	if !Allowed(p.Role, ActionSetStatus) {
		return &AuthorizationError{Action: ActionSetStatus}
	}

	if !target.Valid() || target == entity.StatusPending {
		return &ValidationError{Message: "unknown target status"}
	}

	req, err := s.store.GetRequest(requestID)
	if err != nil {
		if errors.Is(err, ErrNotExists) {
			return &NotFoundError{What: "request", ID: requestID}
		}
		return &StorageError{Op: "get request", Err: err}
	}

	if !canTransition(req.Status, target) {
		return &ConflictError{Message: "illegal transition " + string(req.Status) + " -> " + string(target)}
	}

	updated, err := s.store.UpdateRequestStatus(requestID, req.Status, target)
	if err != nil {
		return &StorageError{Op: "update request status", Err: err}
	}
	if !updated {
		// Кто-то успел перевести заявку между чтением и записью.
		return &ConflictError{Message: "request status changed concurrently"}
	}

	return nil
}

// ListRequests - staff и admin видят все заявки, студент только свои.
func (s *Service) ListRequests(p entity.Principal) ([]entity.BorrowRequestInfo, error) {
	var list []entity.BorrowRequestInfo
	var err error

	if Allowed(p.Role, ActionListRequests) {
		list, err = s.store.ListRequests()
	} else {
		list, err = s.store.ListRequestsByUser(p.UserID)
	}

	if err != nil {
		return nil, &StorageError{Op: "list requests", Err: err}
	}
	return list, nil
}
