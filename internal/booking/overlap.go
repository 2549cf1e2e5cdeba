package booking

import "time"

const dateLayout = "2006-01-02"

// ValidDate - дата строго в формате YYYY-MM-DD и существует в календаре.
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil && len(s) == len(dateLayout)
}

// Overlaps - пересекаются ли два включительных диапазона дат.
// Совпадение по граничному дню тоже считается пересечением.
// Формат дат фиксированный, поэтому сравнение строк - это сравнение дат.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return !(aEnd < bStart || aStart > bEnd)
}

// HasConflict - есть ли среди активных (pending/approved) заявок на это
// оборудование пересечение с диапазоном [startDate, endDate].
// Линейный проход достаточен: активных заявок на единицу оборудования мало.
func HasConflict(store Store, equipmentID int, startDate, endDate string) (bool, error) {
	active, err := store.ActiveRequests(equipmentID)
	if err != nil {
		return false, &StorageError{Op: "active requests", Err: err}
	}

	for _, req := range active {
		if Overlaps(req.StartDate, req.EndDate, startDate, endDate) {
			return true, nil
		}
	}

	return false, nil
}
