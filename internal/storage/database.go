package storage

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Database holds every definition of one category, indexed by name and by Id.
// It is built once and only read afterwards; it does no locking.
type Database[T Definition] struct {
	category Category
	byName   map[string]uint64
	byId     map[uint64]T

	nextId uint64
}

func NewDatabase[T Definition](category Category) *Database[T] {
	return &Database[T]{
		category: category,
		byName:   map[string]uint64{},
		byId:     map[uint64]T{},
	}
}

// DatabaseOf builds a database by inserting every def in order.
func DatabaseOf[T Definition](category Category, defs ...T) *Database[T] {
	db := NewDatabase[T](category)
	for _, def := range defs {
		db.Insert(def)
	}
	return db
}

func (db *Database[T]) Category() Category {
	return db.category
}

// Insert stores def under the next Id. If a definition with the same name is
// already present it is evicted and its Id is retired; the new one wins.
func (db *Database[T]) Insert(def T) Id[T] {
	db.nextId++
	name := def.DefName()

	if old, ok := db.byName[name]; ok {
		delete(db.byId, old)
	}

	db.byName[name] = db.nextId
	db.byId[db.nextId] = def

	return Id[T]{id: db.nextId}
}

// Replace overwrites the definition stored under def's name, keeping its Id.
// The name must already be present; anything else is a bug in the caller.
func (db *Database[T]) Replace(def T) {
	name := def.DefName()
	id, ok := db.byName[name]
	if !ok {
		panic(fmt.Sprintf("storage: replace of unknown %s %q", db.category, name))
	}
	db.byId[id] = def
}

// remove drops a definition during a build. Its Id is never handed out again.
func (db *Database[T]) remove(name string) {
	id, ok := db.byName[name]
	if !ok {
		return
	}
	delete(db.byName, name)
	delete(db.byId, id)
}

func (db *Database[T]) Get(id Id[T]) (T, bool) {
	def, ok := db.byId[id.id]
	return def, ok
}

func (db *Database[T]) GetId(name string) (Id[T], bool) {
	id, ok := db.byName[name]
	if !ok {
		return Id[T]{}, false
	}
	return Id[T]{id: id}, true
}

func (db *Database[T]) GetByName(name string) (T, bool) {
	id, ok := db.byName[name]
	if !ok {
		var zero T
		return zero, false
	}
	return db.Get(Id[T]{id: id})
}

// Name returns the name of the definition behind id, or "" if there is none.
func (db *Database[T]) Name(id Id[T]) string {
	def, ok := db.byId[id.id]
	if !ok {
		return ""
	}
	return def.DefName()
}

func (db *Database[T]) Len() int {
	return len(db.byId)
}

// All yields every definition in Id order.
func (db *Database[T]) All() iter.Seq2[Id[T], T] {
	return func(yield func(Id[T], T) bool) {
		for _, id := range slices.Sorted(maps.Keys(db.byId)) {
			if !yield(Id[T]{id: id}, db.byId[id]) {
				return
			}
		}
	}
}

// Names returns every stored name, sorted.
func (db *Database[T]) Names() []string {
	return slices.Sorted(maps.Keys(db.byName))
}
