package htable

// Stats is a point-in-time summary of a table's shape.
type Stats struct {
	Count        int     `json:"count"`
	Capacity     int     `json:"capacity"`
	LoadFactor   float64 `json:"load_factor"`
	UsedBuckets  int     `json:"used_buckets"`
	LongestChain int     `json:"longest_chain"`
	Resizes      uint64  `json:"resizes"`
}

// Stats walks every chain. It costs O(Capacity + Count).
func (t *Table[K, V]) Stats() Stats {
	s := Stats{
		Count:      t.count,
		Capacity:   len(t.buckets),
		LoadFactor: t.LoadFactor(),
		Resizes:    t.resizes,
	}
	for _, head := range t.buckets {
		if head == nilRef {
			continue
		}
		s.UsedBuckets++
		n := 0
		for r := head; r != nilRef; r = t.at(r).next {
			n++
		}
		if n > s.LongestChain {
			s.LongestChain = n
		}
	}
	return s
}
