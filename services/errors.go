package services

import "errors"

// Ошибки ядра. Наружу они не выходят: на границе операций каждая
// превращается в структурированный результат со status/state кодом.
var (
	ErrPerevalNotFound = errors.New("Перевал не найден")
	ErrUserNotFound    = errors.New("Пользователь с таким email не найден")

	// Guard-отказы: запись в неподходящем статусе или попытка изменить
	// персональные данные. Это не ошибки валидации входа.
	ErrEditForbiddenStatus       = errors.New(`Редактирование запрещено: запись не в статусе "new"`)
	ErrEditForbiddenPersonalData = errors.New("Редактирование персональных данных запрещено")
)

// ValidationError указывает первое отсутствующее обязательное поле.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "Отсутствует обязательное поле: " + e.Field
}

// EmptyImagesError — отдельный случай валидации: список изображений
// присутствует, но пуст.
type EmptyImagesError struct{}

func (e *EmptyImagesError) Error() string {
	return "Список изображений не может быть пустым"
}
