package state

import "gopkg.in/guregu/null.v3"

type DatabaseSize struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	Size      string `json:"size"`
}

type RelationSize struct {
	SchemaName   string `json:"schema_name"`
	RelationName string `json:"relation_name"`
	TotalBytes   int64  `json:"total_bytes"`
	TotalSize    string `json:"total_size"`
	TableSize    string `json:"table_size"`
	IndexSize    string `json:"index_size"`
}

type UnusedIndex struct {
	SchemaName   string   `json:"schema_name"`
	RelationName string   `json:"relation_name"`
	IndexName    string   `json:"index_name"`
	Scans        null.Int `json:"scans"`
	Size         string   `json:"size"`
}
