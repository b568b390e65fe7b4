package workflow

import (
	"fmt"
	"strings"
	"time"
)

/* =========================
   Transition table
========================= */

// rule adalah satu baris tabel transisi. anyOpen = berlaku dari semua
// status non-terminal (dipakai add_note).
type rule struct {
	from    Status
	anyOpen bool
	action  Action
	roles   []Role
	// target mengembalikan status tujuan; false = payload tidak dikenal.
	target func(cur Status, cmd Command) (Status, bool)
	apply  func(m *Mutation, actor Actor, cmd Command)
	note   func(actor Actor, cmd Command) string
}

var transitions = []rule{
	{
		from:   StatusBaru,
		action: ActionClaim,
		roles:  []Role{RoleCMO},
		target: fixed(StatusClaim),
		apply: func(m *Mutation, actor Actor, _ Command) {
			id := actor.ID
			at := m.UpdatedAt
			m.ClaimedBy = &id
			m.ClaimedAt = &at
		},
		note: func(actor Actor, cmd Command) string {
			return withNote(fmt.Sprintf("Order di-claim oleh %s", actor.Name), cmd.Note)
		},
	},
	{
		from:   StatusClaim,
		action: ActionSubmitSlik,
		roles:  []Role{RoleCMO},
		target: func(_ Status, cmd Command) (Status, bool) {
			switch cmd.SlikResult {
			case SlikClear:
				return StatusProses, true
			case SlikAdaCatatan:
				return StatusPertimbangkan, true
			case SlikTolak:
				return StatusReject, true
			}
			return "", false
		},
		apply: func(m *Mutation, _ Actor, cmd Command) {
			hasil := string(cmd.SlikResult)
			m.HasilSlik = &hasil
		},
		note: func(_ Actor, cmd Command) string {
			return withNote(fmt.Sprintf("Hasil SLIK: %s", cmd.SlikResult), cmd.Note)
		},
	},
	{
		from:   StatusCekSlik,
		action: ActionSurvey,
		roles:  []Role{RoleCMO},
		target: fixed(StatusProses),
		note: func(_ Actor, cmd Command) string {
			return withNote("Survey selesai", cmd.Note)
		},
	},
	{
		from:   StatusPertimbangkan,
		action: ActionDecide,
		roles:  []Role{RoleCMH},
		target: func(_ Status, cmd Command) (Status, bool) {
			switch cmd.Decision {
			case DecisionApprove:
				return StatusApprove, true
			case DecisionReject:
				return StatusReject, true
			}
			return "", false
		},
		apply: func(m *Mutation, _ Actor, cmd Command) {
			reason := strings.TrimSpace(cmd.Reason)
			m.DecisionReason = &reason
		},
		note: func(_ Actor, cmd Command) string {
			return withNote(fmt.Sprintf("Keputusan %s: %s", cmd.Decision, strings.TrimSpace(cmd.Reason)), cmd.Note)
		},
	},
	{
		anyOpen: true,
		action:  ActionAddNote,
		roles:   []Role{RoleCMO, RoleCMH},
		target: func(cur Status, _ Command) (Status, bool) {
			return cur, true
		},
		note: func(_ Actor, cmd Command) string {
			return strings.TrimSpace(cmd.Note)
		},
	},
}

func fixed(s Status) func(Status, Command) (Status, bool) {
	return func(Status, Command) (Status, bool) { return s, true }
}

func withNote(base, extra string) string {
	extra = strings.TrimSpace(extra)
	if extra == "" {
		return base
	}
	return base + " - " + extra
}

func (r rule) matches(cur Status, action Action) bool {
	if r.action != action {
		return false
	}
	if r.anyOpen {
		return !cur.Terminal()
	}
	return r.from == cur
}

func (r rule) allows(role Role) bool {
	for _, x := range r.roles {
		if x == role {
			return true
		}
	}
	return false
}

/* =========================
   Engine
========================= */

type Engine struct {
	now func() time.Time
}

type Option func(*Engine)

// WithClock mengganti sumber waktu (dipakai test). Jam hanya dipakai
// untuk stempel waktu, tidak untuk keputusan transisi.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Attempt memvalidasi transisi dan mengembalikan mutasi yang harus disimpan.
// Setiap kombinasi (status, role, aksi) di luar tabel menghasilkan
// *IllegalTransitionError tanpa mutasi apa pun.
func (e *Engine) Attempt(cur Status, actor Actor, cmd Command) (Mutation, error) {
	illegal := &IllegalTransitionError{From: cur, Role: actor.Role, Action: cmd.Action}

	if !cur.Valid() || !actor.Role.Valid() || !cmd.Action.Valid() {
		return Mutation{}, illegal
	}

	for _, r := range transitions {
		if !r.matches(cur, cmd.Action) {
			continue
		}
		if !r.allows(actor.Role) {
			return Mutation{}, illegal
		}
		to, ok := r.target(cur, cmd)
		if !ok {
			return Mutation{}, illegal
		}
		if err := validatePayload(cmd); err != nil {
			return Mutation{}, err
		}

		now := e.now().UTC()
		m := Mutation{
			From:          cur,
			To:            to,
			Action:        cmd.Action,
			StatusChanged: to != cur,
			UpdatedAt:     now,
		}
		if r.apply != nil {
			r.apply(&m, actor, cmd)
		}
		m.Note = NoteDraft{
			AuthorID:   actor.ID,
			AuthorName: actor.Name,
			AuthorRole: actor.Role,
			Note:       r.note(actor, cmd),
			Status:     to,
			CreatedAt:  now,
		}
		return m, nil
	}

	return Mutation{}, illegal
}

func validatePayload(cmd Command) error {
	switch cmd.Action {
	case ActionAddNote:
		if strings.TrimSpace(cmd.Note) == "" {
			return &CommandError{Field: "note", Reason: "catatan wajib diisi"}
		}
	case ActionDecide:
		if strings.TrimSpace(cmd.Reason) == "" {
			return &CommandError{Field: "reason", Reason: "alasan keputusan wajib diisi"}
		}
	}
	return nil
}

// AvailableActions mengembalikan aksi yang sah untuk role pada status tertentu.
func AvailableActions(cur Status, role Role) []Action {
	out := make([]Action, 0, 2)
	seen := map[Action]bool{}
	for _, r := range transitions {
		if seen[r.action] || !r.matches(cur, r.action) || !r.allows(role) {
			continue
		}
		seen[r.action] = true
		out = append(out, r.action)
	}
	return out
}
