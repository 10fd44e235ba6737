// Package engine implements the multi-threaded streaming compression and
// decompression core: a fixed pool of workers that read chunks from a
// host-supplied callback, run them through a per-worker frame codec, and
// re-serialize the results to a host-supplied write callback in strict
// input order, even though workers finish compressing out of order.
//
// The three intrusive free/busy/done queues from the reference design are
// modeled as plain slices guarded by writeMu (see slot.go), not
// pointer-linked lists — Go has no use for the reference implementation's
// manual list splicing once slot ownership is tracked by queue membership
// instead of embedded pointers.
package engine
