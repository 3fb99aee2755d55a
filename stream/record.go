// Package stream defines the result record and the framed, optionally
// compressed on-disk form workers write it in.
//
// Each worker owns exactly one sink blob. Records are length-prefixed
// codec payloads with a running CRC-32C; a sidecar manifest carries the
// record count, the checksum and the set of roots the worker finished,
// so the merge step can prove a sink complete before surfacing any of
// its records.
package stream

// Record is one enumerated combination. Members are sorted vertex
// names; Percent is the subset weight as a percentage of the job
// target, rounded to three decimals at emission time. Records are
// immutable once written.
type Record struct {
	Size    int      `json:"size"`
	Sum     int64    `json:"sum"`
	Percent float64  `json:"percent"`
	Members []string `json:"members"`
}
