package memory

import (
	"sort"
	"sync"
	"time"
)

// table colección en memoria protegida por mutex. Guarda copias: quien lee
// nunca comparte punteros con el almacén.
type table[T any] struct {
	mu      sync.RWMutex
	seq     int64
	rows    map[string]*record[T]
	clone   func(*T) *T
	created func(*T) time.Time
}

type record[T any] struct {
	seq int64
	v   *T
}

func newTable[T any](clone func(*T) *T, created func(*T) time.Time) *table[T] {
	return &table[T]{
		rows:    make(map[string]*record[T]),
		clone:   clone,
		created: created,
	}
}

// insertLocked requiere t.mu tomado en escritura.
func (t *table[T]) insertLocked(id string, v *T) {
	t.seq++
	t.rows[id] = &record[T]{seq: t.seq, v: t.clone(v)}
}

func (t *table[T]) insert(id string, v *T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.insertLocked(id, v)
}

func (t *table[T]) get(id string) *T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, ok := t.rows[id]
	if !ok {
		return nil
	}
	return t.clone(rec.v)
}

// replace sobrescribe un registro existente; false si no existe.
func (t *table[T]) replace(id string, v *T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.rows[id]
	if !ok {
		return false
	}
	rec.v = t.clone(v)
	return true
}

// mutate aplica fn bajo el candado de escritura. fn decide si el cambio procede;
// si devuelve false el registro queda intacto. Devuelve la copia resultante o nil.
func (t *table[T]) mutate(id string, fn func(v *T) bool) *T {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.rows[id]
	if !ok {
		return nil
	}
	next := t.clone(rec.v)
	if !fn(next) {
		return nil
	}
	rec.v = next
	return t.clone(next)
}

// mutateWhere aplica fn a todos los registros que cumplan match; devuelve cuántos cambiaron.
func (t *table[T]) mutateWhere(match func(v *T) bool, fn func(v *T)) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	var n int64
	for _, rec := range t.rows {
		if match(rec.v) {
			next := t.clone(rec.v)
			fn(next)
			rec.v = next
			n++
		}
	}
	return n
}

func (t *table[T]) delete(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

func (t *table[T]) deleteWhere(match func(v *T) bool) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	var n int64
	for id, rec := range t.rows {
		if match(rec.v) {
			delete(t.rows, id)
			n++
		}
	}
	return n
}

// list devuelve copias ordenadas por fecha de creación descendente.
// A igual fecha gana el último insertado.
func (t *table[T]) list(match func(v *T) bool) []*T {
	t.mu.RLock()
	recs := make([]*record[T], 0, len(t.rows))
	for _, rec := range t.rows {
		if match == nil || match(rec.v) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		ci, cj := t.created(recs[i].v), t.created(recs[j].v)
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return recs[i].seq > recs[j].seq
	})
	out := make([]*T, 0, len(recs))
	for _, rec := range recs {
		out = append(out, t.clone(rec.v))
	}
	t.mu.RUnlock()
	return out
}
