// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package features

// DeepMerge overlays override on base and returns a new tree.
//
// An absent override (nil) keeps base, Null clears it, two maps merge key by
// key with base keys first and override-only keys appended, anything else is
// replaced by override. Sequences are never concatenated.
func DeepMerge(base, override *Value) *Value {
	if override == nil {
		return base.Clone()
	}

	if override.kind == KindNull {
		return Null()
	}

	if !base.IsMap() || !override.IsMap() {
		return override.Clone()
	}

	merged := NewMap()
	for _, k := range base.keys {
		merged.Set(k, DeepMerge(base.fields[k], override.fields[k]))
	}
	for _, k := range override.keys {
		if _, ok := base.fields[k]; ok {
			continue
		}
		merged.Set(k, override.fields[k].Clone())
	}

	return merged
}
