package model

// Record is one (name, size) pair sourced from the input spreadsheet.
// Size is nil when the row's second column could not be parsed as a number;
// such records never participate in matching.
type Record struct {
	Size *float64
	Name string
}

// HasSize reports whether the record carries a usable size.
func (r Record) HasSize() bool {
	return r.Size != nil
}

// FolderEntry is a live view of one immediate subdirectory of the base
// directory. It is re-enumerated on every scan, never cached: classify mode
// moves folders, which invalidates any previous listing.
type FolderEntry struct {
	Name string
	Path string
}

// MatchResult pairs a record with the folder it matched and the similarity
// score that justified the pairing. Produced and consumed within one
// matching decision.
type MatchResult struct {
	Record Record
	Folder FolderEntry
	Score  float64
}
