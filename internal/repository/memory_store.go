package repository

import (
	"sort"
	"sync"

	"equiploan/internal/booking"
	"equiploan/internal/entity"
)

// MemoryStore - реализация booking.Store на картах. Нужна, чтобы гонять
// конфликтный движок в тестах без настоящей базы.
type MemoryStore struct {
	mu sync.RWMutex

	equipment map[int]entity.Equipment
	requests  map[int]entity.BorrowRequest
	users     map[int]entity.User

	nextEquipmentID int
	nextRequestID   int
	nextUserID      int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		equipment:       make(map[int]entity.Equipment),
		requests:        make(map[int]entity.BorrowRequest),
		users:           make(map[int]entity.User),
		nextEquipmentID: 1,
		nextRequestID:   1,
		nextUserID:      1,
	}
}

// AddUser - посадить пользователя напрямую, мимо регистрации.
func (m *MemoryStore) AddUser(u entity.User) entity.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	u.ID = m.nextUserID
	m.nextUserID++
	m.users[u.ID] = u
	return u
}

func (m *MemoryStore) GetEquipment(id int) (entity.Equipment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.equipment[id]
	if !ok {
		return entity.Equipment{}, booking.ErrNotExists
	}
	return e, nil
}

func (m *MemoryStore) InsertEquipment(e entity.Equipment) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.ID = m.nextEquipmentID
	m.nextEquipmentID++
	m.equipment[e.ID] = e
	return e.ID, nil
}

func (m *MemoryStore) DeleteEquipment(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.equipment, id)
	return nil
}

func (m *MemoryStore) ListEquipment() ([]entity.Equipment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]entity.Equipment, 0, len(m.equipment))
	for _, e := range m.equipment {
		list = append(list, e)
	}

	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (m *MemoryStore) GetRequest(id int) (entity.BorrowRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.requests[id]
	if !ok {
		return entity.BorrowRequest{}, booking.ErrNotExists
	}
	return r, nil
}

func (m *MemoryStore) InsertRequest(r entity.BorrowRequest) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r.ID = m.nextRequestID
	m.nextRequestID++
	m.requests[r.ID] = r
	return r.ID, nil
}

func (m *MemoryStore) ActiveRequests(equipmentID int) ([]entity.BorrowRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var active []entity.BorrowRequest
	for _, r := range m.requests {
		if r.EquipmentID == equipmentID && r.Status.Active() {
			active = append(active, r)
		}
	}
	return active, nil
}

func (m *MemoryStore) UpdateRequestStatus(id int, from, to entity.Status) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.requests[id]
	if !ok || r.Status != from {
		return false, nil
	}

	r.Status = to
	m.requests[id] = r
	return true, nil
}

func (m *MemoryStore) ListRequests() ([]entity.BorrowRequestInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]entity.BorrowRequestInfo, 0, len(m.requests))
	for _, r := range m.requests {
		list = append(list, m.describe(r))
	}

	// Как в выдаче списка через SQL: свежие заявки первыми.
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (m *MemoryStore) ListRequestsByUser(userID int) ([]entity.BorrowRequestInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]entity.BorrowRequestInfo, 0)
	for _, r := range m.requests {
		if r.UserID == userID {
			list = append(list, m.describe(r))
		}
	}

	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (m *MemoryStore) describe(r entity.BorrowRequest) entity.BorrowRequestInfo {
	info := entity.BorrowRequestInfo{BorrowRequest: r}
	if e, ok := m.equipment[r.EquipmentID]; ok {
		info.EquipmentName = e.Name
	}
	if u, ok := m.users[r.UserID]; ok {
		info.Requester = u.Email
	}
	return info
}
