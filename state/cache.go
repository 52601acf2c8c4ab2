package state

import "gopkg.in/guregu/null.v3"

// CacheHitRatio - Blocks read from disk vs. served from shared_buffers,
// either for table heaps or for indexes
type CacheHitRatio struct {
	Kind     string     `json:"kind"`
	BlksRead null.Int   `json:"blks_read"`
	BlksHit  null.Int   `json:"blks_hit"`
	Ratio    null.Float `json:"ratio"`
}

type IndexUsage struct {
	RelationName     string     `json:"relation_name"`
	PercentIndexUsed null.Float `json:"percent_of_times_index_used"`
	RowsInTable      int64      `json:"rows_in_table"`
}
