package pcache

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/partition"
	"github.com/pierrec/lz4"
)

// cell kinds for the serialized partition representation
const (
	cellNull = iota
	cellInt
	cellFloat
	cellString
	cellBool
	cellTime
)

// cell is one serialized value. Cells carry a kind tag rather than an
// interface so gob round-trips nulls and concrete types exactly.
type cell struct {
	Kind  uint8
	Int   int64
	Float float64
	Str   string
	Bool  bool
	Time  time.Time
}

type serializedPartition struct {
	NumRows int
	Names   []string
	Columns [][]cell
}

func toCell(v interface{}) (cell, error) {
	switch n := v.(type) {
	case nil:
		return cell{Kind: cellNull}, nil
	case int64:
		return cell{Kind: cellInt, Int: n}, nil
	case int:
		return cell{Kind: cellInt, Int: int64(n)}, nil
	case float64:
		return cell{Kind: cellFloat, Float: n}, nil
	case string:
		return cell{Kind: cellString, Str: n}, nil
	case bool:
		return cell{Kind: cellBool, Bool: n}, nil
	case time.Time:
		return cell{Kind: cellTime, Time: n}, nil
	default:
		return cell{}, fmt.Errorf("unsupported cell type %T", v)
	}
}

func fromCell(c cell) interface{} {
	switch c.Kind {
	case cellInt:
		return c.Int
	case cellFloat:
		return c.Float
	case cellString:
		return c.Str
	case cellBool:
		return c.Bool
	case cellTime:
		return c.Time
	default:
		return nil
	}
}

// compressPartition serializes and lz4-compresses partition data
func compressPartition(s colops.Schema, part colops.Partition) ([]byte, error) {
	sp := serializedPartition{
		NumRows: part.NumRows(),
		Names:   s.ColumnNames(),
		Columns: make([][]cell, 0, s.NumColumns()),
	}
	for _, name := range sp.Names {
		values, err := part.Column(name)
		if err != nil {
			return nil, err
		}
		cells := make([]cell, len(values))
		for i, v := range values {
			cells[i], err = toCell(v)
			if err != nil {
				return nil, err
			}
		}
		sp.Columns = append(sp.Columns, cells)
	}
	var buff bytes.Buffer
	compressor := lz4.NewWriter(&buff)
	if err := gob.NewEncoder(compressor).Encode(&sp); err != nil {
		return nil, err
	}
	if err := compressor.Close(); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// decompressPartition decompresses and deserializes partition data,
// restoring the original partition ID
func decompressPartition(id string, s colops.Schema, data []byte) (colops.Partition, error) {
	decompressor := lz4.NewReader(bytes.NewReader(data))
	var sp serializedPartition
	if err := gob.NewDecoder(decompressor).Decode(&sp); err != nil {
		return nil, err
	}
	columns := make(map[string][]interface{}, len(sp.Names))
	for i, name := range sp.Names {
		values := make([]interface{}, len(sp.Columns[i]))
		for j, c := range sp.Columns[i] {
			values[j] = fromCell(c)
		}
		columns[name] = values
	}
	return partition.Restore(id, columns, sp.NumRows), nil
}
