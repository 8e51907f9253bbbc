package stopwatch

import "time"

// Record - сохраняемое представление одного секундомера
type Record struct {
	Hash      string     `json:"hash"`
	Name      string     `json:"name"`
	Time      int64      `json:"time"`
	Status    bool       `json:"status"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Store - адаптер key-value хранилища. Get никогда не возвращает ошибку:
// при сбое декодирования отдается пустой список. Set сообщает только об успехе.
type Store interface {
	Get(key string) []Record
	Set(key string, records []Record) bool
}
