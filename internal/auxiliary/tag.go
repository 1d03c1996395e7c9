package auxiliary

//go:generate go tool stringer -type=Tag -linecomment -output=tag_string.go

// Tag identifies one auxiliary routine.
type Tag int

const (
	_ Tag = iota // skip zero value, it marks an invalid tag

	TagCopyN    // copy_n
	TagSwap     // swap
	TagScal     // scal
	TagAxpy     // axpy
	TagDot      // dot
	TagAsum     // asum
	TagIamax    // iamax
	TagNrm2     // nrm2
	TagFillN    // fill_n
	TagMMSparse // mm_sparse
	TagSq       // sq
	TagSign     // sign
	TagProject  // project
	TagTrans    // trans
	TagToMex    // to_mex
	TagFromMex  // from_mex

	// TagTotal is one past the last valid tag.
	TagTotal = int(iota)
)

// Prefix is prepended to every routine name in generated code.
const Prefix = "ng_"

// Routine returns the C symbol of the routine, e.g. "ng_copy_n".
func (t Tag) Routine() string {
	return Prefix + t.String()
}

// Valid reports whether t names a routine of the catalog.
func (t Tag) Valid() bool {
	return t > 0 && int(t) < TagTotal
}

// Tags returns all valid tags in declaration order.
func Tags() []Tag {
	tags := make([]Tag, 0, TagTotal-1)
	for t := Tag(1); int(t) < TagTotal; t++ {
		tags = append(tags, t)
	}

	return tags
}

// Parse maps a routine name such as "copy_n" back to its tag.
func Parse(name string) (Tag, bool) {
	for _, t := range Tags() {
		if t.String() == name {
			return t, true
		}
	}

	return 0, false
}
