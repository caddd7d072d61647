// Package store implements kiba's typed in-memory key-value container: a
// shared namespace of keys to values, where each value is exactly one of
// String, List, Set, or Hash, with a tagged namespace enforcing that a key
// never silently crosses between those logical types.
package store

import (
	"container/list"
	"math"
	"strconv"
)

// kind tags which of the four disjoint maps currently owns a key.
type kind int

const (
	kindString kind = iota
	kindList
	kindSet
	kindHash
)

// Store is the single in-memory container. It is not safe for concurrent
// use by design — per §5/§9, exactly one goroutine (the executor) ever
// holds a *Store, and all mutation is linearized through a message channel
// ahead of it. No internal locking is added here; layering a mutex on top
// would contradict the single-writer model this type exists to serve.
type Store struct {
	types   map[string]kind
	strings map[string]string
	lists   map[string]*list.List
	sets    map[string]map[string]struct{}
	hashes  map[string]map[string]string
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		types:   make(map[string]kind),
		strings: make(map[string]string),
		lists:   make(map[string]*list.List),
		sets:    make(map[string]map[string]struct{}),
		hashes:  make(map[string]map[string]string),
	}
}

// checkType enforces the single-type-per-key invariant (§3/§9/F-3): if key
// is already claimed by a different kind, it returns the WRONGTYPE error. A
// previously unclaimed key is free for any operation to claim.
func (s *Store) checkType(key string, want kind) error {
	if have, ok := s.types[key]; ok && have != want {
		return wrongType()
	}
	return nil
}

func (s *Store) claim(key string, k kind) {
	s.types[key] = k
}

// --- String operations -----------------------------------------------------

// Get returns the string value at key, or ok=false if absent.
func (s *Store) Get(key string) (val string, ok bool, err error) {
	if err := s.checkType(key, kindString); err != nil {
		return "", false, err
	}
	v, ok := s.strings[key]
	return v, ok, nil
}

// Set stores val at key, returning the previous value if any.
func (s *Store) Set(key, val string) (prev string, hadPrev bool, err error) {
	if err := s.checkType(key, kindString); err != nil {
		return "", false, err
	}
	prev, hadPrev = s.strings[key]
	s.strings[key] = val
	s.claim(key, kindString)
	return prev, hadPrev, nil
}

// Incr is IncrBy(key, 1).
func (s *Store) Incr(key string) (int64, error) { return s.IncrBy(key, 1) }

// Decr is IncrBy(key, -1).
func (s *Store) Decr(key string) (int64, error) { return s.IncrBy(key, -1) }

// DecrBy is IncrBy(key, -delta). Key resolution (type check, existence,
// integer parse) happens before delta's negation is considered, so an
// absent or non-numeric key reports its own error even when delta is
// math.MinInt64, which cannot itself be negated without overflowing.
func (s *Store) DecrBy(key string, delta int64) (int64, error) {
	cur, err := s.resolveInt(key)
	if err != nil {
		return 0, err
	}
	if delta == math.MinInt64 {
		return 0, errOutOfBounds
	}
	return s.applyDelta(key, cur, -delta)
}

// IncrBy resolves the decimal integer stored at key, adds delta with
// checked (overflow-detecting) arithmetic, writes the decimal result back,
// and returns the new value. See §4.3 for the exact error taxonomy.
func (s *Store) IncrBy(key string, delta int64) (int64, error) {
	cur, err := s.resolveInt(key)
	if err != nil {
		return 0, err
	}
	return s.applyDelta(key, cur, delta)
}

// resolveInt checks key's type and returns its current integer value,
// per §4.3's error taxonomy: WRONGTYPE, then key-not-found, then
// not-an-integer.
func (s *Store) resolveInt(key string) (int64, error) {
	if err := s.checkType(key, kindString); err != nil {
		return 0, err
	}
	raw, ok := s.strings[key]
	if !ok {
		return 0, errKeyNotFound
	}
	cur, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errNotInteger
	}
	return cur, nil
}

// applyDelta adds delta to cur with checked arithmetic and writes the
// decimal result back to key.
func (s *Store) applyDelta(key string, cur, delta int64) (int64, error) {
	next, ok := addChecked(cur, delta)
	if !ok {
		return 0, errOutOfBounds
	}
	s.strings[key] = strconv.FormatInt(next, 10)
	s.claim(key, kindString)
	return next, nil
}

// addChecked adds a and b, reporting ok=false on signed 64-bit overflow.
func addChecked(a, b int64) (sum int64, ok bool) {
	sum = a + b
	// Overflow occurred iff the operands share a sign and the result's
	// sign differs from theirs.
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

// --- List operations --------------------------------------------------------

func (s *Store) listFor(key string) *list.List {
	l, ok := s.lists[key]
	if !ok {
		l = list.New()
		s.lists[key] = l
	}
	s.claim(key, kindList)
	return l
}

// LPush inserts val at the head of the list at key, auto-creating it, and
// returns the updated length.
func (s *Store) LPush(key, val string) (uint64, error) {
	if err := s.checkType(key, kindList); err != nil {
		return 0, err
	}
	l := s.listFor(key)
	l.PushFront(val)
	return uint64(l.Len()), nil
}

// RPush inserts val at the tail of the list at key, auto-creating it, and
// returns the updated length.
func (s *Store) RPush(key, val string) (uint64, error) {
	if err := s.checkType(key, kindList); err != nil {
		return 0, err
	}
	l := s.listFor(key)
	l.PushBack(val)
	return uint64(l.Len()), nil
}

// LPop removes and returns the head element of the list at key, or
// ok=false if the list is absent or empty.
func (s *Store) LPop(key string) (val string, ok bool, err error) {
	return s.popFrom(key, true)
}

// RPop removes and returns the tail element of the list at key, or
// ok=false if the list is absent or empty.
func (s *Store) RPop(key string) (val string, ok bool, err error) {
	return s.popFrom(key, false)
}

func (s *Store) popFrom(key string, fromHead bool) (string, bool, error) {
	if err := s.checkType(key, kindList); err != nil {
		return "", false, err
	}
	l, ok := s.lists[key]
	if !ok || l.Len() == 0 {
		return "", false, nil
	}
	var e *list.Element
	if fromHead {
		e = l.Front()
	} else {
		e = l.Back()
	}
	l.Remove(e)
	return e.Value.(string), true, nil
}

// --- Set operations ----------------------------------------------------------

// SAdd inserts val into the set at key, auto-creating it, and returns the
// updated cardinality.
func (s *Store) SAdd(key, val string) (uint64, error) {
	if err := s.checkType(key, kindSet); err != nil {
		return 0, err
	}
	set, ok := s.sets[key]
	if !ok {
		set = make(map[string]struct{})
		s.sets[key] = set
	}
	s.claim(key, kindSet)
	set[val] = struct{}{}
	return uint64(len(set)), nil
}

// SRem removes val from the set at key, returning the updated cardinality
// (not the number of elements removed — preserved source behavior, §9).
func (s *Store) SRem(key, val string) (uint64, error) {
	if err := s.checkType(key, kindSet); err != nil {
		return 0, err
	}
	set, ok := s.sets[key]
	if !ok {
		return 0, nil
	}
	delete(set, val)
	return uint64(len(set)), nil
}

// SIsMember reports whether val is a member of the set at key.
func (s *Store) SIsMember(key, val string) (bool, error) {
	if err := s.checkType(key, kindSet); err != nil {
		return false, err
	}
	set, ok := s.sets[key]
	if !ok {
		return false, nil
	}
	_, member := set[val]
	return member, nil
}

// SMembers returns all members of the set at key in unspecified order.
func (s *Store) SMembers(key string) ([]string, error) {
	if err := s.checkType(key, kindSet); err != nil {
		return nil, err
	}
	set, ok := s.sets[key]
	if !ok {
		return nil, nil
	}
	members := make([]string, 0, len(set))
	for m := range set {
		members = append(members, m)
	}
	return members, nil
}

// --- Hash operations ---------------------------------------------------------

// HGet returns the value of field in the hash at key, or ok=false if the
// key or field is absent.
func (s *Store) HGet(key, field string) (val string, ok bool, err error) {
	if err := s.checkType(key, kindHash); err != nil {
		return "", false, err
	}
	h, ok := s.hashes[key]
	if !ok {
		return "", false, nil
	}
	v, ok := h[field]
	return v, ok, nil
}

// HSet sets field to val in the hash at key, auto-creating it, and returns
// the previous value if the field already existed.
func (s *Store) HSet(key, field, val string) (prev string, hadPrev bool, err error) {
	if err := s.checkType(key, kindHash); err != nil {
		return "", false, err
	}
	h, ok := s.hashes[key]
	if !ok {
		h = make(map[string]string)
		s.hashes[key] = h
	}
	s.claim(key, kindHash)
	prev, hadPrev = h[field]
	h[field] = val
	return prev, hadPrev, nil
}

// HDel removes field from the hash at key, returning 1 if it existed and
// was removed, 0 otherwise (including when key itself is absent).
func (s *Store) HDel(key, field string) (uint64, error) {
	if err := s.checkType(key, kindHash); err != nil {
		return 0, err
	}
	h, ok := s.hashes[key]
	if !ok {
		return 0, nil
	}
	if _, ok := h[field]; !ok {
		return 0, nil
	}
	delete(h, field)
	return 1, nil
}
