package booking_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equiploan/internal/booking"
	"equiploan/internal/entity"
	"equiploan/internal/repository"
)

var (
	admin   = entity.Principal{UserID: 1, Role: entity.RoleAdmin}
	staff   = entity.Principal{UserID: 2, Role: entity.RoleStaff}
	student = entity.Principal{UserID: 3, Role: entity.RoleStudent}
)

func newService(t *testing.T) (*booking.Service, *repository.MemoryStore) {
	t.Helper()

	store := repository.NewMemoryStore()
	store.AddUser(entity.User{Email: "admin.unique@school.edu", Role: entity.RoleAdmin})
	store.AddUser(entity.User{Email: "staff.unique@school.edu", Role: entity.RoleStaff})
	store.AddUser(entity.User{Email: "student.unique@school.edu", Role: entity.RoleStudent})

	return booking.NewService(store), store
}

func addEquipment(t *testing.T, svc *booking.Service, name string, quantity int) int {
	t.Helper()

	id, err := svc.CreateEquipment(admin, name, "electronics", "good", quantity)
	require.NoError(t, err)
	return id
}

// Проверка сквозного инварианта: никакие две активные заявки на одно
// оборудование не пересекаются по датам.
func assertNoActiveOverlap(t *testing.T, store *repository.MemoryStore, equipmentID int) {
	t.Helper()

	active, err := store.ActiveRequests(equipmentID)
	require.NoError(t, err)

	for i := range active {
		for j := i + 1; j < len(active); j++ {
			assert.False(t,
				booking.Overlaps(active[i].StartDate, active[i].EndDate, active[j].StartDate, active[j].EndDate),
				"активные заявки %d и %d пересекаются", active[i].ID, active[j].ID,
			)
		}
	}
}

func TestCreateRequestBoundaryConflict(t *testing.T) {
	svc, store := newService(t)
	equipmentID := addEquipment(t, svc, "Camera", 1)

	_, err := svc.CreateRequest(student, equipmentID, "2024-01-01", "2024-01-05")
	require.NoError(t, err)

	// Граничный день общий - это конфликт
	_, err = svc.CreateRequest(staff, equipmentID, "2024-01-05", "2024-01-10")
	var conflict *booking.ConflictError
	require.ErrorAs(t, err, &conflict)

	// Со следующего дня - уже нет
	_, err = svc.CreateRequest(staff, equipmentID, "2024-01-06", "2024-01-10")
	require.NoError(t, err)

	assertNoActiveOverlap(t, store, equipmentID)
}

func TestCreateRequestSelfOverlapOnRetry(t *testing.T) {
	svc, _ := newService(t)
	equipmentID := addEquipment(t, svc, "Camera", 1)

	id, err := svc.CreateRequest(student, equipmentID, "2024-03-01", "2024-03-03")
	require.NoError(t, err)
	assert.NotZero(t, id)

	// Повтор с теми же аргументами натыкается на собственную заявку
	_, err = svc.CreateRequest(student, equipmentID, "2024-03-01", "2024-03-03")
	var conflict *booking.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestCreateRequestDifferentEquipmentNoConflict(t *testing.T) {
	svc, _ := newService(t)
	first := addEquipment(t, svc, "Camera", 1)
	second := addEquipment(t, svc, "Tripod", 1)

	_, err := svc.CreateRequest(student, first, "2024-01-01", "2024-01-05")
	require.NoError(t, err)

	_, err = svc.CreateRequest(student, second, "2024-01-01", "2024-01-05")
	require.NoError(t, err)
}

func TestCreateRequestValidation(t *testing.T) {
	svc, _ := newService(t)
	equipmentID := addEquipment(t, svc, "Camera", 1)

	tests := []struct {
		name       string
		start, end string
	}{
		{"inverted range", "2024-01-10", "2024-01-01"},
		{"bad start format", "01.01.2024", "2024-01-05"},
		{"bad end format", "2024-01-01", "January 5"},
		{"nonexistent day", "2023-02-29", "2023-03-01"},
		{"empty dates", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateRequest(student, equipmentID, tt.start, tt.end)
			var validation *booking.ValidationError
			require.ErrorAs(t, err, &validation)
		})
	}
}

func TestCreateRequestEquipmentMissing(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.CreateRequest(student, 99, "2024-01-01", "2024-01-05")
	var notFound *booking.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "equipment", notFound.What)
}

func TestCreateEquipmentValidation(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.CreateEquipment(admin, "", "electronics", "good", 1)
	var validation *booking.ValidationError
	require.ErrorAs(t, err, &validation)

	_, err = svc.CreateEquipment(admin, "Camera", "electronics", "good", 0)
	require.ErrorAs(t, err, &validation)

	_, err = svc.CreateEquipment(admin, "Camera", "electronics", "good", -5)
	require.ErrorAs(t, err, &validation)
}

func TestRoleEnforcement(t *testing.T) {
	svc, _ := newService(t)
	equipmentID := addEquipment(t, svc, "Camera", 1)

	requestID, err := svc.CreateRequest(student, equipmentID, "2024-01-01", "2024-01-05")
	require.NoError(t, err)

	var authorization *booking.AuthorizationError

	// Студент не управляет инвентарем
	_, err = svc.CreateEquipment(student, "Projector", "electronics", "good", 1)
	require.ErrorAs(t, err, &authorization)

	err = svc.DeleteEquipment(student, equipmentID)
	require.ErrorAs(t, err, &authorization)

	// И не может одобрить даже собственную заявку
	err = svc.SetRequestStatus(student, requestID, entity.StatusApproved)
	require.ErrorAs(t, err, &authorization)

	req, getErr := svc.ListRequests(staff)
	require.NoError(t, getErr)
	require.Len(t, req, 1)
	assert.Equal(t, entity.StatusPending, req[0].Status)

	// Неизвестная роль не проходит никуда
	nobody := entity.Principal{UserID: 42, Role: entity.Role("director")}
	_, err = svc.CreateRequest(nobody, equipmentID, "2024-02-01", "2024-02-02")
	require.ErrorAs(t, err, &authorization)
}

func TestSetRequestStatusTransitions(t *testing.T) {
	tests := []struct {
		name   string
		from   entity.Status
		to     entity.Status
		wantOK bool
	}{
		{"pending to approved", entity.StatusPending, entity.StatusApproved, true},
		{"pending to rejected", entity.StatusPending, entity.StatusRejected, true},
		{"pending to returned", entity.StatusPending, entity.StatusReturned, false},
		{"approved to returned", entity.StatusApproved, entity.StatusReturned, true},
		{"approved to rejected", entity.StatusApproved, entity.StatusRejected, false},
		{"approved to approved", entity.StatusApproved, entity.StatusApproved, false},
		{"rejected to approved", entity.StatusRejected, entity.StatusApproved, false},
		{"rejected to returned", entity.StatusRejected, entity.StatusReturned, false},
		{"returned to approved", entity.StatusReturned, entity.StatusApproved, false},
		{"returned to rejected", entity.StatusReturned, entity.StatusRejected, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newService(t)
			equipmentID := addEquipment(t, svc, "Camera", 1)

			requestID, err := svc.CreateRequest(student, equipmentID, "2024-01-01", "2024-01-05")
			require.NoError(t, err)

			// Подводим заявку к исходному статусу легальными переходами
			switch tt.from {
			case entity.StatusApproved:
				require.NoError(t, svc.SetRequestStatus(staff, requestID, entity.StatusApproved))
			case entity.StatusRejected:
				require.NoError(t, svc.SetRequestStatus(staff, requestID, entity.StatusRejected))
			case entity.StatusReturned:
				require.NoError(t, svc.SetRequestStatus(staff, requestID, entity.StatusApproved))
				require.NoError(t, svc.SetRequestStatus(staff, requestID, entity.StatusReturned))
			}

			err = svc.SetRequestStatus(staff, requestID, tt.to)

			if tt.wantOK {
				require.NoError(t, err)
				return
			}

			var conflict *booking.ConflictError
			require.ErrorAs(t, err, &conflict)

			// Статус не изменился
			req, getErr := store.GetRequest(requestID)
			require.NoError(t, getErr)
			assert.Equal(t, tt.from, req.Status)
		})
	}
}

func TestSetRequestStatusValidation(t *testing.T) {
	svc, _ := newService(t)
	equipmentID := addEquipment(t, svc, "Camera", 1)

	requestID, err := svc.CreateRequest(student, equipmentID, "2024-01-01", "2024-01-05")
	require.NoError(t, err)

	var validation *booking.ValidationError

	err = svc.SetRequestStatus(staff, requestID, entity.Status("done"))
	require.ErrorAs(t, err, &validation)

	// Вернуть заявку в pending нельзя
	err = svc.SetRequestStatus(staff, requestID, entity.StatusPending)
	require.ErrorAs(t, err, &validation)
}

func TestSetRequestStatusMissing(t *testing.T) {
	svc, _ := newService(t)

	err := svc.SetRequestStatus(staff, 404, entity.StatusApproved)
	var notFound *booking.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "request", notFound.What)
}

func TestListRequestsVisibility(t *testing.T) {
	svc, _ := newService(t)
	equipmentID := addEquipment(t, svc, "Camera", 1)

	_, err := svc.CreateRequest(student, equipmentID, "2024-01-01", "2024-01-05")
	require.NoError(t, err)
	_, err = svc.CreateRequest(staff, equipmentID, "2024-02-01", "2024-02-05")
	require.NoError(t, err)

	// Персонал видит все заявки
	all, err := svc.ListRequests(staff)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Студент - только свои
	own, err := svc.ListRequests(student)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, student.UserID, own[0].UserID)
}

// Сценарий из жизни: возвращенная заявка перестает держать даты.
func TestEndToEndProjectorScenario(t *testing.T) {
	svc, store := newService(t)

	equipmentID, err := svc.CreateEquipment(admin, "Projector", "electronics", "good", 2)
	require.NoError(t, err)

	// Студент A бронирует
	firstID, err := svc.CreateRequest(student, equipmentID, "2024-02-01", "2024-02-03")
	require.NoError(t, err)

	// Студент B пересекается и получает отказ
	studentB := entity.Principal{UserID: 4, Role: entity.RoleStudent}
	_, err = svc.CreateRequest(studentB, equipmentID, "2024-02-02", "2024-02-04")
	var conflict *booking.ConflictError
	require.ErrorAs(t, err, &conflict)

	// Персонал одобряет и потом принимает возврат
	require.NoError(t, svc.SetRequestStatus(staff, firstID, entity.StatusApproved))
	require.NoError(t, svc.SetRequestStatus(staff, firstID, entity.StatusReturned))

	// Возвращенная заявка больше не держит оборудование
	secondID, err := svc.CreateRequest(studentB, equipmentID, "2024-02-02", "2024-02-04")
	require.NoError(t, err)
	assert.NotEqual(t, firstID, secondID)

	assertNoActiveOverlap(t, store, equipmentID)
}

func TestConcurrentCreateSameEquipment(t *testing.T) {
	svc, store := newService(t)
	equipmentID := addEquipment(t, svc, "Camera", 1)

	const workers = 16

	var wg sync.WaitGroup
	errs := make([]error, workers)

	// Все ломятся за одним пересекающимся диапазоном
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateRequest(student, equipmentID, "2024-05-01", "2024-05-07")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var conflict *booking.ConflictError
		require.ErrorAs(t, err, &conflict)
	}

	assert.Equal(t, 1, succeeded)
	assertNoActiveOverlap(t, store, equipmentID)
}

func TestConcurrentSetStatusSingleWinner(t *testing.T) {
	svc, store := newService(t)
	equipmentID := addEquipment(t, svc, "Camera", 1)

	requestID, err := svc.CreateRequest(student, equipmentID, "2024-01-01", "2024-01-05")
	require.NoError(t, err)

	const workers = 8

	var wg sync.WaitGroup
	errs := make([]error, workers)

	// Половина одобряет, половина отклоняет - пройти должен ровно один
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			target := entity.StatusApproved
			if i%2 == 1 {
				target = entity.StatusRejected
			}
			errs[i] = svc.SetRequestStatus(staff, requestID, target)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)

	req, err := store.GetRequest(requestID)
	require.NoError(t, err)
	assert.Contains(t, []entity.Status{entity.StatusApproved, entity.StatusRejected}, req.Status)
}
