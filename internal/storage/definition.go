package storage

import "fmt"

// Category names one kind of definition. The same values are used as the
// "type" tag in data files.
type Category string

func (c Category) String() string {
	return string(c)
}

// Definition is anything that can be stored in a Database.
type Definition interface {
	DefName() string
}

// Id is a handle to a definition stored in a Database[T]. Ids of different
// definition types are distinct Go types and cannot be mixed up. The zero
// value refers to nothing.
type Id[T Definition] struct {
	id uint64
}

func (i Id[T]) IsZero() bool {
	return i.id == 0
}

func (i Id[T]) Equal(o Id[T]) bool {
	return i.id == o.id
}

func (i Id[T]) String() string {
	var zero T
	return fmt.Sprintf("%T#%d", zero, i.id)
}
