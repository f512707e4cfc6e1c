package model

import "encoding/json"

// ConsistencyAudit is the optional audit artifact describing citation
// references recovered after parsing
type ConsistencyAudit struct {
	Inconsistencies AuditInconsistencies `json:"inconsistencies"`
}

// AuditInconsistencies is the audit's summary block
type AuditInconsistencies struct {
	After            AuditAfter `json:"after"`
	RecoveredCount   int        `json:"recovered_count"`
	RecoveredIndices []int      `json:"recovered_indices"`
}

// AuditAfter lists what remained unresolved after recovery. Entries are kept
// raw; only their count matters.
type AuditAfter struct {
	MissingFootnotesForSeenIntext []json.RawMessage `json:"missing_footnotes_for_seen_intext"`
}

// RecoveredAll reports whether the audit recovered references and left none unresolved
func (a *ConsistencyAudit) RecoveredAll() bool {
	if a == nil {
		return false
	}
	return a.Inconsistencies.RecoveredCount > 0 && len(a.Inconsistencies.After.MissingFootnotesForSeenIntext) == 0
}

// RecoveredIndices returns the recovered footnote indices (empty without an audit)
func (a *ConsistencyAudit) RecoveredIndices() []int {
	if a == nil {
		return nil
	}
	return a.Inconsistencies.RecoveredIndices
}
