package booking

// Ошибки ядра. Каждый вид - отдельный тип, чтобы граница (HTTP-слой)
// могла различить их через errors.As и отдать правильный статус.

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Message
}

type AuthorizationError struct {
	Action Action
}

func (e *AuthorizationError) Error() string {
	return "forbidden: " + string(e.Action)
}

type NotFoundError struct {
	What string
	ID   int
}

func (e *NotFoundError) Error() string {
	return e.What + " not found"
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Message
}

// StorageError - отказ хранилища. Наверх отдаем как есть, ядро
// ничего не ретраит.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage error: " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
