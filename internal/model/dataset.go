package model

// Dataset holds the records of every record table, keyed by table.
type Dataset map[TableType][]Record

// Len returns the total number of records.
func (d Dataset) Len() int {
	n := 0
	for _, recs := range d {
		n += len(recs)
	}
	return n
}

// Clone deep-copies every record.
func (d Dataset) Clone() Dataset {
	out := make(Dataset, len(d))
	for t, recs := range d {
		cp := make([]Record, len(recs))
		for i, r := range recs {
			cp[i] = r.Clone()
		}
		out[t] = cp
	}
	return out
}
