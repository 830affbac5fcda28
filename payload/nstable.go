package payload

// nsEntry is one row of an NsTable: a namespace id and the cumulative byte
// offset, into the ns_payloads blob, where that namespace's bytes end.
type nsEntry struct {
	ID        NamespaceId
	EndOffset uint32
}

// NsTable is the top-level directory of namespaces within a block: an
// ordered list of (namespace_id, end_offset) entries. end_offset is the
// cumulative byte length from the start of the concatenated ns_payloads
// blob (spec §3).
//
// A table built by NsTableBuilder satisfies the well-formedness invariants
// (distinct ids, strictly increasing offsets). A table produced by
// ParseNsTable carries the entries an untrusted sender sent, with its count
// clamped to the entries the bytes hold; its
// offsets are only clamped into shape at query time via NsRange, once the
// actual ns_payloads length is known (spec §4.3).
//
// cumEnds[i] caches the running maximum of entries[0..i].EndOffset — the
// part of NsRange's clamp that depends only on the table, not on totalLen
// — computed once so NsRange is O(1) per call instead of re-walking the
// table (spec's O(1) random-access requirement).
type NsTable struct {
	entries []nsEntry
	cumEnds []int
}

// cumulativeEnds precomputes, for each entry, the running maximum of
// declared end offsets seen so far. Combined with totalLen at query time
// (prevEnd_i = min(totalLen, cumEnds[i])), this reproduces the same
// left-to-right clamp-and-floor NsRange used to compute, without needing
// totalLen in advance: the floor at the previous clamped end offset and
// the ceiling at totalLen commute into a single running max because the
// ceiling is the same constant (totalLen) at every step.
func cumulativeEnds(entries []nsEntry) []int {
	cum := make([]int, len(entries))
	run := 0
	for i, e := range entries {
		if v := int(e.EndOffset); v > run {
			run = v
		}
		cum[i] = run
	}
	return cum
}

// NumNamespaces returns m, the number of namespace entries.
func (t NsTable) NumNamespaces() int {
	return len(t.entries)
}

// NsID returns the namespace id at index i, or ok=false if i is out of
// bounds.
func (t NsTable) NsID(i int) (NamespaceId, bool) {
	if i < 0 || i >= len(t.entries) {
		return NamespaceId{}, false
	}
	return t.entries[i].ID, true
}

// FindNsID returns the index of the first entry whose id equals id. On
// duplicate ids (only possible in a parsed, untrusted table) the first
// match wins.
func (t NsTable) FindNsID(id NamespaceId) (NsIndex, bool) {
	for i, e := range t.entries {
		if e.ID == id {
			return NsIndex(i), true
		}
	}
	return 0, false
}

// NsRange returns the byte range, into an ns_payloads blob of totalLen
// bytes, occupied by namespace i. It is the unique authority on where a
// namespace begins and ends: the range reproduces the same clamp a
// left-to-right table walk would produce — each declared end offset
// floored at the previous end offset and ceilinged at totalLen — but reads
// off the cumEnds cache in O(1) instead of re-walking the table per call
// (spec's O(1) random-access requirement, §4.3/§5).
//
// An out-of-bounds i yields an empty range at the cumulative end offset of
// all preceding entries; NsRange never panics.
func (t NsTable) NsRange(i int, totalLen int) (start, end int) {
	if totalLen < 0 {
		totalLen = 0
	}
	if i < 0 {
		return 0, 0
	}
	n := len(t.entries)
	prevRun := 0
	if i > 0 && n > 0 {
		k := i - 1
		if k >= n {
			k = n - 1
		}
		prevRun = t.cumEnds[k]
	}
	start = minInt(totalLen, prevRun)
	if i >= n {
		return start, start
	}
	end = minInt(totalLen, t.cumEnds[i])
	return start, end
}

// Encode serializes the table: count_m ‖ [ (ns_id, end_offset) ; m ].
func (t NsTable) Encode() []byte {
	buf := make([]byte, 0, OffsetWidth+len(t.entries)*nsTableEntryWidth)
	buf = appendLE32(buf, uint32(len(t.entries)))
	for _, e := range t.entries {
		buf = append(buf, e.ID[:]...)
		buf = appendLE32(buf, e.EndOffset)
	}
	return buf
}

// ParseNsTable decodes an NsTable from untrusted bytes. m is clamped to the
// number of entries the remaining bytes can hold; entry end offsets are
// stored as declared and only clamped into shape later, by NsRange, once a
// concrete ns_payloads length is available (spec §4.3).
func ParseNsTable(buf []byte) NsTable {
	declaredM := readLE32(buf, 0)
	maxM := 0
	if len(buf) >= OffsetWidth {
		maxM = (len(buf) - OffsetWidth) / nsTableEntryWidth
	}
	m := declaredM
	if uint64(m) > uint64(maxM) {
		m = uint32(maxM)
	}

	entries := make([]nsEntry, m)
	for i := uint32(0); i < m; i++ {
		off := OffsetWidth + int(i)*nsTableEntryWidth
		var id NamespaceId
		copy(id[:], buf[off:off+8])
		end := readLE32(buf, off+8)
		entries[i] = nsEntry{ID: id, EndOffset: end}
	}
	return NsTable{entries: entries, cumEnds: cumulativeEnds(entries)}
}

// nsTableFixedOverheadByteLen is the fixed cost of an (otherwise empty)
// NsTable: the W-byte namespace count.
const nsTableFixedOverheadByteLen = OffsetWidth

// nsOverheadByteLen is the marginal cost, in the NsTable, of adding one more
// namespace entry.
const nsOverheadByteLen = nsTableEntryWidth

// NsTableBuilder accumulates well-formed NsTable entries in namespace
// insertion order. Unlike ParseNsTable, entries appended here are assumed
// to already have strictly increasing cumulative offsets; that invariant is
// the caller's responsibility (PayloadBuilder maintains it).
type NsTableBuilder struct {
	entries []nsEntry
}

// Append records that namespace id's bytes end at cumulativeEnd within the
// ns_payloads blob being assembled.
func (b *NsTableBuilder) Append(id NamespaceId, cumulativeEnd int) {
	b.entries = append(b.entries, nsEntry{ID: id, EndOffset: uint32(cumulativeEnd)})
}

// Build finalizes the table.
func (b *NsTableBuilder) Build() NsTable {
	entries := append([]nsEntry(nil), b.entries...)
	return NsTable{entries: entries, cumEnds: cumulativeEnds(entries)}
}
