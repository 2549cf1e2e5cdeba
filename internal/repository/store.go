package repository

import "database/sql"

// Store собирает SQL-репозитории в одну реализацию booking.Store.
type Store struct {
	*EquipmentRepository
	*RequestRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		EquipmentRepository: NewEquipmentRepository(db),
		RequestRepository:   NewRequestRepository(db),
	}
}
