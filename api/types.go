// Package api defines the wire types for the oblivious store's four
// operations and the JSON codec shared by server and client.
package api

// WireBlock carries one logical block over the wire. Value is the opaque
// fixed-size payload (base64 in JSON); Index is the logical block id.
type WireBlock struct {
	Index int64  `json:"index"`
	Value []byte `json:"value"`
}

// SetupRequest initializes the store: a tree of 2^num_layers - 1 buckets
// of bucket_size slots, with every id in block_ids registered and placed.
type SetupRequest struct {
	NumLayers  int     `json:"num_layers"`
	BucketSize int     `json:"bucket_size"`
	BlockSize  int     `json:"block_size,omitempty"`
	StashLimit int     `json:"stash_limit,omitempty"`
	BlockIDs   []int64 `json:"block_ids"`
}

// SetupResponse reports setup success.
type SetupResponse struct {
	Success bool `json:"success"`
}

// ReadBlockRequest asks for the listed logical blocks, each served by one
// independent oblivious access in request order.
type ReadBlockRequest struct {
	Indices []int64 `json:"indices"`
}

// ReadBlockResponse returns the requested blocks in request order, plus
// the stash condition after the batch.
type ReadBlockResponse struct {
	Blocks     []WireBlock `json:"blocks"`
	StashSize  int         `json:"stash_size"`
	StashAlarm bool        `json:"stash_alarm"`
}

// WriteBlockRequest writes blocks[i] to indices[i]. The two lists must be
// the same length.
type WriteBlockRequest struct {
	Indices []int64     `json:"indices"`
	Blocks  []WireBlock `json:"blocks"`
}

// WriteBlockResponse reports write success and the stash condition after
// the batch. StashAlarm is a degraded-success signal: the writes landed,
// but the stash exceeded its configured bound.
type WriteBlockResponse struct {
	Success    bool `json:"success"`
	StashSize  int  `json:"stash_size"`
	StashAlarm bool `json:"stash_alarm"`
}

// PrintResponse carries a rendered dump of tree, stash, and position map.
type PrintResponse struct {
	Success bool   `json:"success"`
	Dump    string `json:"dump"`
}

// ErrorResponse is the envelope for non-2xx replies.
type ErrorResponse struct {
	Error string `json:"error"`
}
