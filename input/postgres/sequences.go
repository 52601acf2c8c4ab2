package postgres

import (
	"database/sql"
	"fmt"

	"github.com/gedex/inflector"

	"github.com/pgtoolbelt/pgtoolbelt/state"
	"github.com/pgtoolbelt/pgtoolbelt/util"
)

// pg_sequences exists on 10+ and fills last_value with NULL when the
// sequence was never used
const sequenceListSQL = `
SELECT schemaname, sequencename, data_type::text, last_value,
       start_value, increment_by, min_value, max_value, cache_size, cycle
  FROM pg_sequences`

const serialColumnSQL = `
SELECT n.nspname,
       c.relname,
       a.attname,
       format_type(t.oid, a.atttypmod),
       (power(2, typlen * 8) / 2)::numeric,
       pg_get_serial_sequence(ad.adrelid::regclass::text, a.attname)
  FROM pg_attrdef ad
  JOIN pg_class c ON (c.oid = adrelid)
  JOIN pg_namespace n ON (c.relnamespace = n.oid)
  JOIN pg_attribute a ON (ad.adrelid = a.attrelid AND ad.adnum = a.attnum)
  JOIN pg_type t ON (a.atttypid = t.oid)
 WHERE pg_get_expr(adbin, adrelid) LIKE 'nextval%'
       AND relkind = 'r' AND NOT attisdropped`

const inferredForeignColumnSQL = `
SELECT n.nspname,
       c.relname,
       format_type(t.oid, a.atttypmod),
       (power(2, typlen * 8) / 2)::numeric
  FROM pg_attribute a
  JOIN pg_class c ON (c.oid = a.attrelid)
  JOIN pg_namespace n ON (c.relnamespace = n.oid)
  JOIN pg_type t ON (a.atttypid = t.oid)
 WHERE attname = $1 AND relkind = 'r'
       AND format_type(t.oid, a.atttypmod) IN ('bigint', 'integer')
       AND NOT attisdropped`

// GetSequenceReport - Lists all sequences plus every serial column, and
// infers columns in other tables that appear to hold the same ids (e.g.
// user_id for users.id), since those overflow at the same time
func GetSequenceReport(logger *util.Logger, db *sql.DB) (report state.SequenceReport, err error) {
	rows, err := db.Query(QueryMarkerSQL + sequenceListSQL)
	if err != nil {
		err = fmt.Errorf("SequenceReport/Query: %s", err)
		return
	}

	defer rows.Close()

	for rows.Next() {
		var seq state.Sequence

		err = rows.Scan(&seq.SchemaName, &seq.SequenceName, &seq.DataType, &seq.LastValue,
			&seq.StartValue, &seq.IncrementBy, &seq.MinValue, &seq.MaxValue,
			&seq.CacheSize, &seq.IsCycled)
		if err != nil {
			err = fmt.Errorf("SequenceReport/Scan: %s", err)
			return
		}

		report.Sequences = append(report.Sequences, seq)
	}

	columnRows, err := db.Query(QueryMarkerSQL + serialColumnSQL)
	if err != nil {
		err = fmt.Errorf("SequenceReport/Column/Query: %s", err)
		return
	}

	defer columnRows.Close()

	for columnRows.Next() {
		var col state.SerialColumn

		err = columnRows.Scan(&col.SchemaName, &col.RelationName, &col.ColumnName,
			&col.DataType, &col.MaximumValue, &col.SequenceName)
		if err != nil {
			err = fmt.Errorf("SequenceReport/Column/Scan: %s", err)
			return
		}

		report.SerialColumns = append(report.SerialColumns, col)
	}

	// Inferred foreign serial columns
	for idx, col := range report.SerialColumns {
		fColName := fmt.Sprintf("%s_%s", inflector.Singularize(col.RelationName), col.ColumnName)

		foreignRows, qErr := db.Query(QueryMarkerSQL+inferredForeignColumnSQL, fColName)
		if qErr != nil {
			err = fmt.Errorf("SequenceReport/InferForeign/Query: %s", qErr)
			return
		}

		defer foreignRows.Close()

		for foreignRows.Next() {
			fCol := state.ForeignSerialColumn{
				ColumnName: fColName,
				Inferred:   true,
			}

			qErr := foreignRows.Scan(&fCol.SchemaName, &fCol.RelationName,
				&fCol.DataType, &fCol.MaximumValue)
			if qErr != nil {
				err = fmt.Errorf("SequenceReport/InferForeign/Scan: %s", qErr)
				return
			}

			col.ForeignColumns = append(col.ForeignColumns, fCol)
		}

		report.SerialColumns[idx] = col
	}

	report.DatabaseName, err = CurrentDatabaseName(db)
	if err != nil {
		return
	}

	return
}
