package storage

import "fmt"

// LinkError reports a reference to a definition that does not exist.
type LinkError struct {
	Category Category `json:"category"` // category of the record holding the reference
	Record   string   `json:"record"`   // name of the record holding the reference
	Slot     string   `json:"slot"`     // field path of the reference, e.g. "spawn_locations[0].biome_def"
	Target   Category `json:"target"`   // category the reference points into
	Missing  string   `json:"missing"`  // the name that could not be found
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("%s %q: %s: %s %q not found", e.Category, e.Record, e.Slot, e.Target, e.Missing)
}

// Links collects the unresolved references of a single record while it is
// being linked.
type Links struct {
	category Category
	record   string
	errs     []*LinkError
}

func NewLinks(category Category, record string) *Links {
	return &Links{category: category, record: record}
}

func (l *Links) Failed() bool {
	return len(l.errs) > 0
}

func (l *Links) Errors() []*LinkError {
	return l.errs
}

// Resolve looks name up in db. A missing name is recorded against l and the
// zero Id is returned.
func Resolve[T Definition](l *Links, db *Database[T], slot string, name string) Id[T] {
	id, ok := db.GetId(name)
	if !ok {
		l.errs = append(l.errs, &LinkError{
			Category: l.category,
			Record:   l.record,
			Slot:     slot,
			Target:   db.Category(),
			Missing:  name,
		})
	}
	return id
}

// Build links every raw record in a single pass. Records with unresolved
// references are left out of the result; their errors are returned in input
// order.
func Build[R Definition, T Definition](category Category, raws []R, link func(R, *Links) T) (*Database[T], []*LinkError) {
	db := NewDatabase[T](category)

	var errs []*LinkError
	for _, raw := range raws {
		l := NewLinks(category, raw.DefName())
		def := link(raw, l)
		if l.Failed() {
			errs = append(errs, l.Errors()...)
			continue
		}
		db.Insert(def)
	}

	return db, errs
}

// BuildSelfReferencing builds a category whose records refer to each other.
// Every record is first inserted as a stub so that each name has an Id, then
// every record is linked against that database and replaces its stub.
//
// A record that fails to link is removed and the survivors are linked again,
// so nothing left in the database points at a dropped record. When several
// raws share a name only the last one is built.
func BuildSelfReferencing[R Definition, T Definition](
	category Category,
	raws []R,
	stub func(R) T,
	link func(R, *Links, *Database[T]) T,
) (*Database[T], []*LinkError) {
	raws = lastOfEachName(raws)

	db := NewDatabase[T](category)
	for _, raw := range raws {
		db.Insert(stub(raw))
	}

	var errs []*LinkError
	pending := raws
	for {
		var linked []R
		var failed []R
		for _, raw := range pending {
			l := NewLinks(category, raw.DefName())
			def := link(raw, l, db)
			if l.Failed() {
				errs = append(errs, l.Errors()...)
				failed = append(failed, raw)
				continue
			}
			db.Replace(def)
			linked = append(linked, raw)
		}

		if len(failed) == 0 {
			return db, errs
		}

		for _, raw := range failed {
			db.remove(raw.DefName())
		}
		pending = linked
	}
}

// lastOfEachName drops every raw that is shadowed by a later raw of the same
// name, keeping input order.
func lastOfEachName[R Definition](raws []R) []R {
	last := make(map[string]int, len(raws))
	for i, raw := range raws {
		last[raw.DefName()] = i
	}
	if len(last) == len(raws) {
		return raws
	}

	kept := make([]R, 0, len(last))
	for i, raw := range raws {
		if last[raw.DefName()] == i {
			kept = append(kept, raw)
		}
	}
	return kept
}
