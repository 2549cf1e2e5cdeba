package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equiploan/internal/booking"
	"equiploan/internal/entity"
)

func TestMemoryStoreImplementsStore(t *testing.T) {
	var _ booking.Store = NewMemoryStore()
	var _ booking.Store = (*Store)(nil)
}

func TestMemoryStoreNotExists(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.GetEquipment(1)
	require.ErrorIs(t, err, booking.ErrNotExists)

	_, err = store.GetRequest(1)
	require.ErrorIs(t, err, booking.ErrNotExists)
}

func TestMemoryStoreActiveRequestsFilter(t *testing.T) {
	store := NewMemoryStore()

	equipmentID, err := store.InsertEquipment(entity.NewEquipment("Camera", "electronics", "good", 1))
	require.NoError(t, err)

	insert := func(status entity.Status, start, end string) int {
		req := entity.NewBorrowRequest(1, equipmentID, start, end)
		req.Status = status
		id, err := store.InsertRequest(req)
		require.NoError(t, err)
		return id
	}

	pendingID := insert(entity.StatusPending, "2024-01-01", "2024-01-02")
	approvedID := insert(entity.StatusApproved, "2024-02-01", "2024-02-02")
	insert(entity.StatusRejected, "2024-03-01", "2024-03-02")
	insert(entity.StatusReturned, "2024-04-01", "2024-04-02")

	active, err := store.ActiveRequests(equipmentID)
	require.NoError(t, err)
	require.Len(t, active, 2)

	ids := []int{active[0].ID, active[1].ID}
	assert.Contains(t, ids, pendingID)
	assert.Contains(t, ids, approvedID)

	// Чужое оборудование - пусто
	active, err = store.ActiveRequests(equipmentID + 1)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestMemoryStoreUpdateStatusConditional(t *testing.T) {
	store := NewMemoryStore()

	id, err := store.InsertRequest(entity.NewBorrowRequest(1, 1, "2024-01-01", "2024-01-02"))
	require.NoError(t, err)

	// Из неожиданного статуса запись не проходит
	ok, err := store.UpdateRequestStatus(id, entity.StatusApproved, entity.StatusReturned)
	require.NoError(t, err)
	assert.False(t, ok)

	req, err := store.GetRequest(id)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, req.Status)

	// Из ожидаемого - проходит ровно один раз
	ok, err = store.UpdateRequestStatus(id, entity.StatusPending, entity.StatusApproved)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.UpdateRequestStatus(id, entity.StatusPending, entity.StatusRejected)
	require.NoError(t, err)
	assert.False(t, ok)

	// Несуществующая заявка
	ok, err = store.UpdateRequestStatus(404, entity.StatusPending, entity.StatusApproved)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreListRequestsOrderAndJoin(t *testing.T) {
	store := NewMemoryStore()

	user := store.AddUser(entity.User{Email: "student.unique@school.edu", Role: entity.RoleStudent})
	other := store.AddUser(entity.User{Email: "staff.unique@school.edu", Role: entity.RoleStaff})

	equipmentID, err := store.InsertEquipment(entity.NewEquipment("Projector", "electronics", "good", 2))
	require.NoError(t, err)

	firstID, err := store.InsertRequest(entity.NewBorrowRequest(user.ID, equipmentID, "2024-01-01", "2024-01-02"))
	require.NoError(t, err)
	secondID, err := store.InsertRequest(entity.NewBorrowRequest(other.ID, equipmentID, "2024-02-01", "2024-02-02"))
	require.NoError(t, err)

	list, err := store.ListRequests()
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Свежие заявки первыми
	assert.Equal(t, secondID, list[0].ID)
	assert.Equal(t, firstID, list[1].ID)

	assert.Equal(t, "Projector", list[0].EquipmentName)
	assert.Equal(t, "staff.unique@school.edu", list[0].Requester)
	assert.Equal(t, "student.unique@school.edu", list[1].Requester)

	own, err := store.ListRequestsByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, firstID, own[0].ID)
}
