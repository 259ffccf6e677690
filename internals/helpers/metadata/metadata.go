// Package metadata handles the free-form JSON metadata column carried
// by sessions, students and settings rows. Known sub-shapes are typed
// and validated at the boundary; everything else stays an open map.
package metadata

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Merge layers src over dst without clobbering: top-level keys present
// only in dst survive, and when both sides hold a map the maps are
// merged one level deep (src keys win inside). Neither input is
// mutated.
func Merge(dst, src map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, sv := range src {
		dv, exists := out[k]
		sm, sIsMap := sv.(map[string]interface{})
		dm, dIsMap := dv.(map[string]interface{})
		if exists && sIsMap && dIsMap {
			merged := make(map[string]interface{}, len(dm)+len(sm))
			for mk, mv := range dm {
				merged[mk] = mv
			}
			for mk, mv := range sm {
				merged[mk] = mv
			}
			out[k] = merged
			continue
		}
		out[k] = sv
	}
	return out
}

// Decode parses a JSON column into a map; nil or empty input yields an
// empty map, a scalar or array payload is discarded.
func Decode(raw datatypes.JSON) map[string]interface{} {
	if len(raw) == 0 {
		return map[string]interface{}{}
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return map[string]interface{}{}
	}
	return m
}

// Encode marshals a map back into a JSON column.
func Encode(m map[string]interface{}) datatypes.JSON {
	if m == nil {
		m = map[string]interface{}{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(b)
}

// MergeColumn merges a patch into an existing JSON column value.
func MergeColumn(existing datatypes.JSON, patch map[string]interface{}) datatypes.JSON {
	return Encode(Merge(Decode(existing), patch))
}
