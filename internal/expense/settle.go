package expense

import "time"

// Settlement state per share is Owed -> Settled. There is no way back: an
// edit replaces the shares instead of reopening them.

// MarkSettled returns the share as settled at now. A share that is already
// settled is returned unchanged so its original timestamp survives.
func MarkSettled(s Share, now time.Time) Share {
	if s.Settled {
		return s
	}
	at := now
	s.Settled = true
	s.SettledAt = &at
	return s
}

// IsSettled reports whether every share of the expense is settled.
func (e Expense) IsSettled() bool {
	for _, s := range e.Shares {
		if !s.Settled {
			return false
		}
	}
	return true
}

// SettleParticipant settles one participant's share. It returns false, and the
// expense unchanged, when the participant has no share.
func SettleParticipant(e Expense, userID string, now time.Time) (Expense, bool) {
	out := e.Clone()
	for i, s := range out.Shares {
		if s.UserID == userID {
			out.Shares[i] = MarkSettled(s, now)
			return out, true
		}
	}
	return e, false
}

// SettleAll settles every share at once. The input is left untouched, so a
// caller that fails to persist the result has nothing to roll back.
func SettleAll(e Expense, now time.Time) Expense {
	out := e.Clone()
	for i, s := range out.Shares {
		out.Shares[i] = MarkSettled(s, now)
	}
	return out
}
