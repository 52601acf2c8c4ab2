package state

import "gopkg.in/guregu/null.v3"

// Sequence - A single row of pg_sequences (10+)
type Sequence struct {
	SchemaName   string   `json:"schema_name"`
	SequenceName string   `json:"sequence_name"`
	DataType     string   `json:"data_type"`
	LastValue    null.Int `json:"last_value"`
	StartValue   int64    `json:"start_value"`
	IncrementBy  int64    `json:"increment_by"`
	MinValue     int64    `json:"min_value"`
	MaxValue     int64    `json:"max_value"`
	CacheSize    int64    `json:"cache_size"`
	IsCycled     bool     `json:"is_cycled"`
}

// SerialColumn - A column whose default draws from a sequence, together with
// how close the sequence is to the column type's maximum
type SerialColumn struct {
	SchemaName     string                `json:"schema_name"`
	RelationName   string                `json:"relation_name"`
	ColumnName     string                `json:"column_name"`
	DataType       string                `json:"data_type"`
	MaximumValue   null.Float            `json:"maximum_value"`
	SequenceName   null.String           `json:"sequence_name"`
	ForeignColumns []ForeignSerialColumn `json:"foreign_columns,omitempty"`
}

// ForeignSerialColumn - A column in another table that appears to reference a
// serial column (e.g. user_id for users.id), inferred by naming convention
type ForeignSerialColumn struct {
	SchemaName   string     `json:"schema_name"`
	RelationName string     `json:"relation_name"`
	ColumnName   string     `json:"column_name"`
	DataType     string     `json:"data_type"`
	MaximumValue null.Float `json:"maximum_value"`
	Inferred     bool       `json:"inferred"`
}

type SequenceReport struct {
	DatabaseName  string         `json:"database_name"`
	Sequences     []Sequence     `json:"sequences"`
	SerialColumns []SerialColumn `json:"serial_columns"`
}
