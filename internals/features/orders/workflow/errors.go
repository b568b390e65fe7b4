package workflow

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalTransition = errors.New("transisi status tidak diizinkan")
	ErrInvalidCommand    = errors.New("perintah transisi tidak lengkap")

	// ErrStaleOrder: expected_updated_at dari klien tidak sama dengan data di DB.
	ErrStaleOrder = errors.New("order sudah diubah user lain, muat ulang data")
)

type IllegalTransitionError struct {
	From   Status
	Role   Role
	Action Action
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("aksi %q oleh role %q tidak diizinkan dari status %q", e.Action, e.Role, e.From)
}

func (e *IllegalTransitionError) Is(target error) bool { return target == ErrIllegalTransition }

// CommandError: transisi sah tetapi payload wajib kosong (catatan/alasan).
type CommandError struct {
	Field  string
	Reason string
}

func (e *CommandError) Error() string { return e.Field + ": " + e.Reason }

func (e *CommandError) Is(target error) bool { return target == ErrInvalidCommand }
