package cdcl

// binaryWatch is a watch entry for a binary clause: the clause is encoded
// entirely inline, with the "other" literal carried alongside the key for
// cache locality.
type binaryWatch struct {
	other Literal
	key   ClauseKey
}

// longWatch is a watch entry for a long (size >= 3) clause: an index into
// the clause database plus an optional cached blocker literal used to skip
// loading the clause body when already satisfied.
type longWatch struct {
	key     ClauseKey
	blocker Literal
}

// watchLists holds, for every literal, the binary and long watches
// triggered when that literal becomes true, that is, when a clause's
// watched literal (its Opposite) becomes falsified, split into a
// binary-inline list and a long-indexed list.
type watchLists struct {
	binary [][]binaryWatch
	long   [][]longWatch
}

func newWatchLists() *watchLists {
	return &watchLists{}
}

func (w *watchLists) grow() {
	w.binary = append(w.binary, nil, nil)
	w.long = append(w.long, nil, nil)
}

func (w *watchLists) watchBinary(at Literal, other Literal, key ClauseKey) {
	w.binary[at] = append(w.binary[at], binaryWatch{other: other, key: key})
}

func (w *watchLists) watchLong(at Literal, key ClauseKey, blocker Literal) {
	w.long[at] = append(w.long[at], longWatch{key: key, blocker: blocker})
}

// unwatchBinary removes (swap-remove, order not observable) the binary
// watch for key from at's list.
func (w *watchLists) unwatchBinary(at Literal, key ClauseKey) {
	list := w.binary[at]
	for i, e := range list {
		if e.key == key {
			list[i] = list[len(list)-1]
			w.binary[at] = list[:len(list)-1]
			return
		}
	}
}

// unwatchLong removes (swap-remove) the long watch for key from at's list.
func (w *watchLists) unwatchLong(at Literal, key ClauseKey) {
	list := w.long[at]
	for i, e := range list {
		if e.key == key {
			list[i] = list[len(list)-1]
			w.long[at] = list[:len(list)-1]
			return
		}
	}
}
