package stopwatch

import (
	"sync"
)

// Repository хранит всю коллекцию под одним ключом. Каждая операция -
// чтение, изменение и запись всего списка; mu сериализует их внутри процесса.
type Repository struct {
	store Store
	key   string
	mu    sync.Mutex
}

func NewRepository(store Store, key string) *Repository {
	if key == "" {
		key = DefaultStorageKey
	}
	return &Repository{store: store, key: key}
}

func (r *Repository) Key() string {
	return r.key
}

// All возвращает коллекцию в порядке хранения
func (r *Repository) All() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.store.Get(r.key)
}

// Save заменяет запись с тем же hash на rec (новая запись добавляется в конец)
func (r *Repository) Save(rec Record) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := without(r.store.Get(r.key), rec.Hash)
	items = append(items, rec)

	return r.store.Set(r.key, items)
}

// Remove удаляет запись с указанным hash
func (r *Repository) Remove(hash string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.store.Set(r.key, without(r.store.Get(r.key), hash))
}

func without(records []Record, hash string) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.Hash != hash {
			out = append(out, rec)
		}
	}
	return out
}
