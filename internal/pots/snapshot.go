package pots

import "encoding/json"

// The persisted snapshot is the AccountState encoded as a flat keyed
// JSON record. Schema evolution is additive only: decoding starts from
// the default state so missing keys keep their defaults, and unknown
// keys are ignored.

// EncodeSnapshot serializes the snapshot for the persistence gateways.
func EncodeSnapshot(s AccountState) []byte {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return []byte("{}")
	}
	return data
}

// DecodeSnapshot parses a stored snapshot. Any unreadable payload yields
// the default state rather than an error, so a corrupt store can never
// take the engine down.
func DecodeSnapshot(data []byte) AccountState {
	if len(data) == 0 {
		return DefaultState()
	}
	st := DefaultState()
	if err := json.Unmarshal(data, &st); err != nil {
		return DefaultState()
	}
	if st.Pots == nil {
		st.Pots = []Pot{}
	}
	for i := range st.Pots {
		if st.Pots[i].History == nil {
			st.Pots[i].History = []HistoryEntry{}
		}
	}
	if st.MonthlyTransfer.Splits == nil {
		st.MonthlyTransfer.Splits = []SplitRule{}
	}
	if st.ScheduledWithdrawals == nil {
		st.ScheduledWithdrawals = []ScheduledWithdrawal{}
	}
	return st
}
