package model

// ReportRow is one line of the non-mutating report: where a folder currently
// lives and where the best-matching record says it should live.
type ReportRow struct {
	FolderName     string
	MatchedProject string
	TargetCategory string
	ActualLocation string
	Score          float64
	Size           float64
}
