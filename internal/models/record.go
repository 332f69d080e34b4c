package models

import (
	"bytes"
	"encoding/json"

	"github.com/elliotchance/orderedmap/v2"
)

// Record is one row: column name to scalar value, in result-set column order.
type Record struct {
	values *orderedmap.OrderedMap[string, any]
}

func NewRecord() *Record {
	return &Record{values: orderedmap.NewOrderedMap[string, any]()}
}

// RecordOf builds a record from alternating column/value pairs. Handy in tests.
func RecordOf(pairs ...any) *Record {
	r := NewRecord()
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i].(string), pairs[i+1])
	}
	return r
}

func (r *Record) Set(column string, value any) {
	r.values.Set(column, value)
}

func (r *Record) Get(column string) (any, bool) {
	return r.values.Get(column)
}

func (r *Record) Columns() []string {
	return r.values.Keys()
}

func (r *Record) Len() int {
	return r.values.Len()
}

func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for el := r.values.Front(); el != nil; el = el.Next() {
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := json.Marshal(el.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(el.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// RelatedRecords groups fetched neighbour rows by table, keeping both table
// and row order as discovered.
type RelatedRecords struct {
	buckets *orderedmap.OrderedMap[string, []*Record]
}

func NewRelatedRecords() *RelatedRecords {
	return &RelatedRecords{buckets: orderedmap.NewOrderedMap[string, []*Record]()}
}

// Append adds records to the table's bucket, creating it if needed. Rows are
// never deduplicated.
func (r *RelatedRecords) Append(table string, records ...*Record) {
	existing, _ := r.buckets.Get(table)
	if existing == nil {
		existing = make([]*Record, 0, len(records))
	}
	r.buckets.Set(table, append(existing, records...))
}

func (r *RelatedRecords) Get(table string) []*Record {
	recs, _ := r.buckets.Get(table)
	return recs
}

func (r *RelatedRecords) Tables() []string {
	return r.buckets.Keys()
}

// Total is the number of related records across all buckets.
func (r *RelatedRecords) Total() int {
	n := 0
	for el := r.buckets.Front(); el != nil; el = el.Next() {
		n += len(el.Value)
	}
	return n
}

func (r *RelatedRecords) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for el := r.buckets.Front(); el != nil; el = el.Next() {
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := json.Marshal(el.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(el.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
