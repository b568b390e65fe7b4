package workflow

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return NewEngine(WithClock(func() time.Time { return fixedNow }))
}

func actor(role Role) Actor {
	return Actor{ID: uuid.New(), Name: "Budi " + string(role), Role: role}
}

func TestAttempt_ClaimByCMO(t *testing.T) {
	cmo := actor(RoleCMO)
	m, err := newTestEngine().Attempt(StatusBaru, cmo, Command{Action: ActionClaim})
	require.NoError(t, err)

	assert.Equal(t, StatusBaru, m.From)
	assert.Equal(t, StatusClaim, m.To)
	assert.True(t, m.StatusChanged)
	require.NotNil(t, m.ClaimedBy)
	assert.Equal(t, cmo.ID, *m.ClaimedBy)
	require.NotNil(t, m.ClaimedAt)
	assert.Equal(t, fixedNow, *m.ClaimedAt)

	assert.Equal(t, StatusClaim, m.Note.Status)
	assert.Equal(t, cmo.ID, m.Note.AuthorID)
	assert.Equal(t, RoleCMO, m.Note.AuthorRole)
	assert.Contains(t, m.Note.Note, cmo.Name)
	assert.Equal(t, fixedNow, m.Note.CreatedAt)
}

func TestAttempt_ClaimByWrongRole(t *testing.T) {
	for _, role := range []Role{RoleSales, RoleCMH, RoleAdmin} {
		_, err := newTestEngine().Attempt(StatusBaru, actor(role), Command{Action: ActionClaim})
		require.Error(t, err, role)
		assert.True(t, errors.Is(err, ErrIllegalTransition))

		var ite *IllegalTransitionError
		require.True(t, errors.As(err, &ite))
		assert.Equal(t, StatusBaru, ite.From)
		assert.Equal(t, role, ite.Role)
		assert.Equal(t, ActionClaim, ite.Action)
	}
}

func TestAttempt_SubmitSlik(t *testing.T) {
	cases := []struct {
		result SlikResult
		want   Status
	}{
		{SlikClear, StatusProses},
		{SlikAdaCatatan, StatusPertimbangkan},
		{SlikTolak, StatusReject},
	}
	for _, c := range cases {
		t.Run(string(c.result), func(t *testing.T) {
			m, err := newTestEngine().Attempt(StatusClaim, actor(RoleCMO), Command{
				Action:     ActionSubmitSlik,
				SlikResult: c.result,
				Note:       "cek BI checking",
			})
			require.NoError(t, err)
			assert.Equal(t, c.want, m.To)
			require.NotNil(t, m.HasilSlik)
			assert.Equal(t, string(c.result), *m.HasilSlik)
			assert.Equal(t, c.want, m.Note.Status)
			assert.Contains(t, m.Note.Note, "cek BI checking")
			assert.Nil(t, m.ClaimedBy)
		})
	}
}

func TestAttempt_SubmitSlikUnknownResult(t *testing.T) {
	_, err := newTestEngine().Attempt(StatusClaim, actor(RoleCMO), Command{
		Action:     ActionSubmitSlik,
		SlikResult: "Lancar",
	})
	assert.True(t, errors.Is(err, ErrIllegalTransition))
}

func TestAttempt_SurveyFromCekSlik(t *testing.T) {
	m, err := newTestEngine().Attempt(StatusCekSlik, actor(RoleCMO), Command{Action: ActionSurvey})
	require.NoError(t, err)
	assert.Equal(t, StatusProses, m.To)
	assert.Equal(t, StatusProses, m.Note.Status)
}

func TestAttempt_DecideByCMH(t *testing.T) {
	cases := []struct {
		decision Decision
		want     Status
	}{
		{DecisionApprove, StatusApprove},
		{DecisionReject, StatusReject},
	}
	for _, c := range cases {
		m, err := newTestEngine().Attempt(StatusPertimbangkan, actor(RoleCMH), Command{
			Action:   ActionDecide,
			Decision: c.decision,
			Reason:   "  penghasilan cukup  ",
		})
		require.NoError(t, err)
		assert.Equal(t, c.want, m.To)
		require.NotNil(t, m.DecisionReason)
		assert.Equal(t, "penghasilan cukup", *m.DecisionReason)
		assert.Contains(t, m.Note.Note, "penghasilan cukup")
		assert.Equal(t, c.want, m.Note.Status)
	}
}

func TestAttempt_DecideRequiresReason(t *testing.T) {
	_, err := newTestEngine().Attempt(StatusPertimbangkan, actor(RoleCMH), Command{
		Action:   ActionDecide,
		Decision: DecisionApprove,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCommand))
	assert.False(t, errors.Is(err, ErrIllegalTransition))
}

func TestAttempt_DecideByCMOIsIllegal(t *testing.T) {
	_, err := newTestEngine().Attempt(StatusPertimbangkan, actor(RoleCMO), Command{
		Action:   ActionDecide,
		Decision: DecisionApprove,
		Reason:   "ok",
	})
	assert.True(t, errors.Is(err, ErrIllegalTransition))
}

func TestAttempt_AddNoteKeepsStatus(t *testing.T) {
	open := []Status{StatusBaru, StatusClaim, StatusCekSlik, StatusProses, StatusPertimbangkan, StatusMapIn}
	for _, st := range open {
		for _, role := range []Role{RoleCMO, RoleCMH} {
			m, err := newTestEngine().Attempt(st, actor(role), Command{Action: ActionAddNote, Note: "nasabah minta reschedule"})
			require.NoError(t, err, "%s/%s", st, role)
			assert.Equal(t, st, m.To)
			assert.False(t, m.StatusChanged)
			assert.Equal(t, st, m.Note.Status)
			assert.Equal(t, "nasabah minta reschedule", m.Note.Note)
		}
	}
}

func TestAttempt_AddNoteRequiresText(t *testing.T) {
	_, err := newTestEngine().Attempt(StatusProses, actor(RoleCMO), Command{Action: ActionAddNote, Note: "   "})
	assert.True(t, errors.Is(err, ErrInvalidCommand))
}

func TestAttempt_AddNoteBySalesIsIllegal(t *testing.T) {
	_, err := newTestEngine().Attempt(StatusProses, actor(RoleSales), Command{Action: ActionAddNote, Note: "x"})
	assert.True(t, errors.Is(err, ErrIllegalTransition))
}

func TestAttempt_TerminalStatesAreAbsorbing(t *testing.T) {
	cmds := []Command{
		{Action: ActionClaim},
		{Action: ActionSubmitSlik, SlikResult: SlikClear},
		{Action: ActionSurvey},
		{Action: ActionDecide, Decision: DecisionApprove, Reason: "r"},
		{Action: ActionAddNote, Note: "n"},
	}
	for _, st := range []Status{StatusApprove, StatusReject} {
		for _, role := range AllRoles {
			for _, cmd := range cmds {
				_, err := newTestEngine().Attempt(st, actor(role), cmd)
				assert.True(t, errors.Is(err, ErrIllegalTransition), "%s %s %s", st, role, cmd.Action)
			}
		}
	}
}

func TestAttempt_UnknownValuesAreIllegal(t *testing.T) {
	e := newTestEngine()

	_, err := e.Attempt("Selesai", actor(RoleCMO), Command{Action: ActionAddNote, Note: "x"})
	assert.True(t, errors.Is(err, ErrIllegalTransition))

	_, err = e.Attempt(StatusBaru, Actor{ID: uuid.New(), Role: "manager"}, Command{Action: ActionClaim})
	assert.True(t, errors.Is(err, ErrIllegalTransition))

	_, err = e.Attempt(StatusBaru, actor(RoleCMO), Command{Action: "approve"})
	assert.True(t, errors.Is(err, ErrIllegalTransition))
}

// Semua kombinasi di luar tabel harus ditolak; yang sukses selalu
// menghasilkan tepat satu catatan dengan status hasil.
func TestAttempt_ExhaustiveTable(t *testing.T) {
	type key struct {
		from   Status
		role   Role
		action Action
	}
	legal := map[key]bool{
		{StatusBaru, RoleCMO, ActionClaim}:           true,
		{StatusClaim, RoleCMO, ActionSubmitSlik}:     true,
		{StatusCekSlik, RoleCMO, ActionSurvey}:       true,
		{StatusPertimbangkan, RoleCMH, ActionDecide}: true,
	}
	for _, st := range AllStatuses {
		if st.Terminal() {
			continue
		}
		legal[key{st, RoleCMO, ActionAddNote}] = true
		legal[key{st, RoleCMH, ActionAddNote}] = true
	}

	e := newTestEngine()
	for _, st := range AllStatuses {
		for _, role := range AllRoles {
			for _, action := range AllActions {
				cmd := Command{
					Action:     action,
					SlikResult: SlikClear,
					Decision:   DecisionReject,
					Reason:     "alasan",
					Note:       "catatan",
				}
				m, err := e.Attempt(st, actor(role), cmd)
				if legal[key{st, role, action}] {
					require.NoError(t, err, "%s %s %s", st, role, action)
					assert.Equal(t, m.To, m.Note.Status)
					assert.Equal(t, m.To != st, m.StatusChanged)
				} else {
					assert.True(t, errors.Is(err, ErrIllegalTransition), "%s %s %s", st, role, action)
					assert.Equal(t, Mutation{}, m)
				}
			}
		}
	}
}

func TestAvailableActions(t *testing.T) {
	assert.Equal(t, []Action{ActionClaim, ActionAddNote}, AvailableActions(StatusBaru, RoleCMO))
	assert.Equal(t, []Action{ActionAddNote}, AvailableActions(StatusBaru, RoleCMH))
	assert.Equal(t, []Action{ActionDecide, ActionAddNote}, AvailableActions(StatusPertimbangkan, RoleCMH))
	assert.Empty(t, AvailableActions(StatusBaru, RoleSales))
	assert.Empty(t, AvailableActions(StatusApprove, RoleCMH))
}

func TestParseHelpers(t *testing.T) {
	s, err := ParseStatus(" Cek Slik ")
	require.NoError(t, err)
	assert.Equal(t, StatusCekSlik, s)

	_, err = ParseStatus("cek slik")
	assert.Error(t, err)

	r, err := ParseRole("CMO")
	require.NoError(t, err)
	assert.Equal(t, RoleCMO, r)

	a, err := ParseAction("Submit_Slik")
	require.NoError(t, err)
	assert.Equal(t, ActionSubmitSlik, a)
}
