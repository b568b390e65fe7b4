// Package workflow berisi state machine status order pembiayaan:
// status yang valid, aksi per role, dan mutasi yang harus dicatat
// setiap kali transisi berhasil. Tidak ada I/O di package ini.
package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

/* =========================
   Status
========================= */

type Status string

const (
	StatusBaru          Status = "Baru"
	StatusClaim         Status = "Claim"
	StatusCekSlik       Status = "Cek Slik"
	StatusProses        Status = "Proses"
	StatusPertimbangkan Status = "Pertimbangkan"
	StatusMapIn         Status = "Map In"
	StatusApprove       Status = "Approve"
	StatusReject        Status = "Reject"
)

// AllStatuses berurutan sesuai alur pipeline.
var AllStatuses = []Status{
	StatusBaru,
	StatusClaim,
	StatusCekSlik,
	StatusProses,
	StatusPertimbangkan,
	StatusMapIn,
	StatusApprove,
	StatusReject,
}

func (s Status) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusApprove || s == StatusReject
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.TrimSpace(raw))
	if !s.Valid() {
		return "", fmt.Errorf("status tidak dikenal: %q", raw)
	}
	return s, nil
}

/* =========================
   Role
========================= */

type Role string

const (
	RoleSales Role = "sales"
	RoleCMO   Role = "cmo"
	RoleCMH   Role = "cmh"
	RoleAdmin Role = "admin"
)

var AllRoles = []Role{RoleSales, RoleCMO, RoleCMH, RoleAdmin}

func (r Role) Valid() bool {
	switch r {
	case RoleSales, RoleCMO, RoleCMH, RoleAdmin:
		return true
	}
	return false
}

func ParseRole(raw string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	if !r.Valid() {
		return "", fmt.Errorf("role tidak dikenal: %q", raw)
	}
	return r, nil
}

/* =========================
   Action & payload enums
========================= */

type Action string

const (
	ActionClaim      Action = "claim"
	ActionSubmitSlik Action = "submit_slik"
	ActionSurvey     Action = "survey"
	ActionDecide     Action = "decide"
	ActionAddNote    Action = "add_note"
)

var AllActions = []Action{ActionClaim, ActionSubmitSlik, ActionSurvey, ActionDecide, ActionAddNote}

func (a Action) Valid() bool {
	for _, v := range AllActions {
		if a == v {
			return true
		}
	}
	return false
}

func ParseAction(raw string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(raw)))
	if !a.Valid() {
		return "", fmt.Errorf("aksi tidak dikenal: %q", raw)
	}
	return a, nil
}

type SlikResult string

const (
	SlikClear      SlikResult = "Clear"
	SlikAdaCatatan SlikResult = "Ada Catatan"
	SlikTolak      SlikResult = "Tolak"
)

type Decision string

const (
	DecisionApprove Decision = "Approve"
	DecisionReject  Decision = "Reject"
)

/* =========================
   Inputs & outputs
========================= */

// Actor adalah user yang memicu transisi. Dikirim eksplisit oleh pemanggil.
type Actor struct {
	ID   uuid.UUID
	Name string
	Role Role
}

type Command struct {
	Action     Action
	SlikResult SlikResult // untuk submit_slik
	Decision   Decision   // untuk decide
	Reason     string     // alasan keputusan (decide)
	Note       string
}

// NoteDraft adalah OrderNote yang harus di-append oleh pemanggil.
type NoteDraft struct {
	AuthorID   uuid.UUID
	AuthorName string
	AuthorRole Role
	Note       string
	Status     Status
	CreatedAt  time.Time
}

// Mutation adalah perubahan yang harus dipersist setelah transisi diterima.
// Field pointer nil berarti kolom tersebut tidak disentuh.
type Mutation struct {
	From          Status
	To            Status
	Action        Action
	StatusChanged bool
	Note          NoteDraft

	ClaimedBy      *uuid.UUID
	ClaimedAt      *time.Time
	HasilSlik      *string
	DecisionReason *string
	UpdatedAt      time.Time
}
