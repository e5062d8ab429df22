package item

import (
	"encoding/json"
	"hash/fnv"
	"sort"
	"strconv"
)

// StackableHash computes the content hash two item stacks must share
// to be considered mergeable: item_id, metadata, and the canonical
// (key-sorted) JSON encoding of nbt are fed through FNV-1a, and the
// 64-bit result is rendered as a decimal string so it survives a round
// trip through JSON, which cannot represent full uint64 precision.
func StackableHash(itemID, metadata uint32, nbt json.RawMessage) string {
	h := fnv.New64a()

	var buf [4]byte
	putU32(buf[:], itemID)
	h.Write(buf[:])
	putU32(buf[:], metadata)
	h.Write(buf[:])
	h.Write(canonicalJSON(nbt))

	return strconv.FormatUint(h.Sum64(), 10)
}

func putU32(buf []byte, v uint32) {
	buf[0] = byte(v >> 24)
	buf[1] = byte(v >> 16)
	buf[2] = byte(v >> 8)
	buf[3] = byte(v)
}

// canonicalJSON re-encodes nbt with object keys sorted, so that
// semantically identical NBT producing differently-ordered JSON still
// hashes the same. Empty nbt is encoded as JSON null; nbt that isn't
// valid JSON falls back to the raw bytes.
func canonicalJSON(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte("null")
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return raw
	}

	out, err := json.Marshal(canonicalize(v))
	if err != nil {
		return raw
	}
	return out
}

// canonicalize recursively sorts map keys so json.Marshal emits them
// in a stable order (encoding/json already sorts map[string]any keys,
// but we do it explicitly so the rule doesn't depend on that detail
// holding across encoders).
func canonicalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(orderedMap, 0, len(t))
		for _, k := range keys {
			out = append(out, kv{k: k, v: canonicalize(t[k])})
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = canonicalize(e)
		}
		return out
	default:
		return t
	}
}

type kv struct {
	k string
	v any
}

// orderedMap marshals as a JSON object preserving insertion order,
// since Go's map[string]any would re-randomize key order on encode.
type orderedMap []kv

func (m orderedMap) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, pair := range m {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(pair.k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(pair.v)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	buf = append(buf, '}')
	return buf, nil
}
