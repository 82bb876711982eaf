package cdcl

// Propagate runs boolean constraint propagation to a fixpoint, starting
// from whatever is queued, and returns the key of a falsified clause on
// conflict or ok=false if propagation reached a fixpoint with no conflict.
// Binary watches never move (both clause literals are watched
// permanently), so they are scanned directly; long watches use a scratch
// buffer so the list can be safely mutated (swap-to-new-list) while being
// iterated.
func (c *Context) Propagate() (ClauseKey, bool) {
	for c.queue.Size() > 0 {
		e := c.queue.Pop()
		l := e.lit
		level := int32(c.decisionLevel())

		for _, w := range c.watch.binary[l] {
			switch c.val.value(w.other) {
			case LFalse:
				c.queue.Clear()
				return w.key, true
			case LUnset:
				c.enqueue(w.other, propagationSource(w.key), level, false)
			}
		}

		if key, ok := c.propagateLongWatches(l, level); ok {
			c.queue.Clear()
			return key, true
		}
	}
	return ClauseKey{}, false
}

// propagateLongWatches processes every long watch registered at l, which
// fires whenever l becomes true (i.e. the clause literal at l.Opposite()
// becomes false).
func (c *Context) propagateLongWatches(l Literal, level int32) (ClauseKey, bool) {
	list := c.watch.long[l]
	if len(list) == 0 {
		return ClauseKey{}, false
	}

	scratch := append([]longWatch(nil), list...)
	c.watch.long[l] = c.watch.long[l][:0]

	for i, w := range scratch {
		if c.val.value(w.blocker) == LTrue {
			c.watch.long[l] = append(c.watch.long[l], w)
			continue
		}

		cl, ok := c.GetLong(w.key)
		if !ok {
			continue // stale reference to a removed/reused slot
		}

		opp := l.Opposite()
		if cl.literals[0] == opp {
			cl.literals[0], cl.literals[1] = cl.literals[1], cl.literals[0]
		}

		if c.val.value(cl.literals[0]) == LTrue {
			c.watch.long[l] = append(c.watch.long[l], longWatch{key: w.key, blocker: cl.literals[0]})
			continue
		}

		replaced := false
		if cl.watchB >= len(cl.literals) {
			cl.watchB = 2
		}
		for scan := 0; scan < len(cl.literals)-2; scan++ {
			pos := 2 + (cl.watchB-2+scan)%(len(cl.literals)-2)
			if c.val.value(cl.literals[pos]) != LFalse {
				cl.watchB = pos
				cl.literals[1], cl.literals[pos] = cl.literals[pos], cl.literals[1]
				c.watch.watchLong(cl.literals[1].Opposite(), w.key, cl.literals[0])
				replaced = true
				break
			}
		}
		if replaced {
			continue
		}

		// No replacement: the clause is unit (or falsified) on literals[0].
		if c.val.value(cl.literals[0]) == LFalse {
			c.watch.long[l] = append(c.watch.long[l], longWatch{key: w.key, blocker: cl.literals[1]})
			for _, rest := range scratch[i+1:] {
				c.watch.long[l] = append(c.watch.long[l], rest)
			}
			return w.key, true
		}
		c.watch.long[l] = append(c.watch.long[l], longWatch{key: w.key, blocker: cl.literals[1]})
		c.enqueue(cl.literals[0], propagationSource(w.key), level, false)
	}

	return ClauseKey{}, false
}
