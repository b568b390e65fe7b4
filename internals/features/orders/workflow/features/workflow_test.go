package features

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"kreditku_backend/internals/features/orders/workflow"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
)

type workflowTestContext struct {
	engine *workflow.Engine
	status workflow.Status
	actors map[string]workflow.Actor
	last   workflow.Mutation
	notes  []workflow.NoteDraft
	err    error
}

func (c *workflowTestContext) reset() {
	c.engine = workflow.NewEngine()
	c.status = ""
	c.actors = map[string]workflow.Actor{}
	c.last = workflow.Mutation{}
	c.notes = nil
	c.err = nil
}

func (c *workflowTestContext) actor(name, role string) (workflow.Actor, error) {
	if a, ok := c.actors[name]; ok {
		return a, nil
	}
	r, err := workflow.ParseRole(role)
	if err != nil {
		return workflow.Actor{}, err
	}
	a := workflow.Actor{ID: uuid.New(), Name: name, Role: r}
	c.actors[name] = a
	return a, nil
}

func (c *workflowTestContext) run(name, role string, cmd workflow.Command) error {
	// step berikutnya tidak dijalankan kalau transisi sebelumnya gagal
	if c.err != nil {
		return nil
	}
	a, err := c.actor(name, role)
	if err != nil {
		return err
	}
	m, err := c.engine.Attempt(c.status, a, cmd)
	c.err = err
	if err != nil {
		c.last = workflow.Mutation{}
		return nil
	}
	c.last = m
	c.status = m.To
	c.notes = append(c.notes, m.Note)
	return nil
}

func (c *workflowTestContext) anOrderWithStatus(status string) error {
	s, err := workflow.ParseStatus(status)
	if err != nil {
		return err
	}
	c.status = s
	return nil
}

func (c *workflowTestContext) userPerforms(name, role, action string) error {
	a, err := workflow.ParseAction(action)
	if err != nil {
		return err
	}
	return c.run(name, role, workflow.Command{Action: a})
}

func (c *workflowTestContext) userSubmitsSlik(name, role, hasil string) error {
	return c.run(name, role, workflow.Command{Action: workflow.ActionSubmitSlik, SlikResult: workflow.SlikResult(hasil)})
}

func (c *workflowTestContext) userDecides(name, role, decision, reason string) error {
	return c.run(name, role, workflow.Command{
		Action:   workflow.ActionDecide,
		Decision: workflow.Decision(decision),
		Reason:   reason,
	})
}

func (c *workflowTestContext) userAddsNote(name, role, note string) error {
	return c.run(name, role, workflow.Command{Action: workflow.ActionAddNote, Note: note})
}

func (c *workflowTestContext) theTransitionSucceeds() error {
	if c.err != nil {
		return fmt.Errorf("expected success, got %v", c.err)
	}
	return nil
}

func (c *workflowTestContext) theTransitionIsRejectedAsIllegal() error {
	if !errors.Is(c.err, workflow.ErrIllegalTransition) {
		return fmt.Errorf("expected illegal transition, got %v", c.err)
	}
	return nil
}

func (c *workflowTestContext) theCommandIsIncomplete() error {
	if !errors.Is(c.err, workflow.ErrInvalidCommand) {
		return fmt.Errorf("expected invalid command, got %v", c.err)
	}
	return nil
}

func (c *workflowTestContext) theOrderStatusIs(status string) error {
	if string(c.status) != status {
		return fmt.Errorf("expected status %q, got %q", status, c.status)
	}
	return nil
}

func (c *workflowTestContext) theOrderIsClaimedBy(name string) error {
	a, ok := c.actors[name]
	if !ok {
		return fmt.Errorf("unknown user %q", name)
	}
	if c.last.ClaimedBy == nil || *c.last.ClaimedBy != a.ID {
		return fmt.Errorf("expected claimed_by %s", a.ID)
	}
	if c.last.ClaimedAt == nil {
		return errors.New("claimed_at not set")
	}
	return nil
}

func (c *workflowTestContext) theNoteHasStatus(status string) error {
	if string(c.last.Note.Status) != status {
		return fmt.Errorf("expected note status %q, got %q", status, c.last.Note.Status)
	}
	return nil
}

func (c *workflowTestContext) theNoteContains(text string) error {
	if !strings.Contains(c.last.Note.Note, text) {
		return fmt.Errorf("expected note to contain %q, got %q", text, c.last.Note.Note)
	}
	return nil
}

func (c *workflowTestContext) noNoteIsProduced() error {
	if len(c.notes) != 0 {
		return fmt.Errorf("expected no notes, got %d", len(c.notes))
	}
	return nil
}

func (c *workflowTestContext) notesWereRecorded(n int) error {
	if len(c.notes) != n {
		return fmt.Errorf("expected %d notes, got %d", n, len(c.notes))
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &workflowTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given
	ctx.Step(`^an order with status "([^"]*)"$`, tc.anOrderWithStatus)

	// When
	ctx.Step(`^user "([^"]*)" with role "([^"]*)" performs "([^"]*)"$`, tc.userPerforms)
	ctx.Step(`^user "([^"]*)" with role "([^"]*)" submits SLIK result "([^"]*)"$`, tc.userSubmitsSlik)
	ctx.Step(`^user "([^"]*)" with role "([^"]*)" decides "([^"]*)" because "([^"]*)"$`, tc.userDecides)
	ctx.Step(`^user "([^"]*)" with role "([^"]*)" adds note "([^"]*)"$`, tc.userAddsNote)

	// Then
	ctx.Step(`^the transition succeeds$`, tc.theTransitionSucceeds)
	ctx.Step(`^the transition is rejected as illegal$`, tc.theTransitionIsRejectedAsIllegal)
	ctx.Step(`^the command is incomplete$`, tc.theCommandIsIncomplete)
	ctx.Step(`^the order status is "([^"]*)"$`, tc.theOrderStatusIs)
	ctx.Step(`^the order is claimed by "([^"]*)"$`, tc.theOrderIsClaimedBy)
	ctx.Step(`^the note has status "([^"]*)"$`, tc.theNoteHasStatus)
	ctx.Step(`^the note contains "([^"]*)"$`, tc.theNoteContains)
	ctx.Step(`^no note is produced$`, tc.noNoteIsProduced)
	ctx.Step(`^(\d+) notes were recorded$`, tc.notesWereRecorded)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"order_workflow.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
