package ingest

// DirStats summarizes a directory scan.
type DirStats struct {
	Scanned  int
	Matched  int
	Enqueued int
	Failed   int
}
