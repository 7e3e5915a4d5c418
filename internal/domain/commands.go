package domain

import (
	"fmt"
	"slices"
	"strings"

	"seesharp.dev/pkg/seesharp/internal/adapter"
	m "seesharp.dev/pkg/seesharp/internal/model"
)

// ExecContext is the snapshot and configuration a command plans against.
type ExecContext struct {
	Document adapter.Document
	Settings m.Settings
}

// EditBatch is the outcome of planning a command: the insertions to apply and
// the fragments left out because the document already contains them.
type EditBatch struct {
	Edits   []m.TextEdit
	Skipped []string
}

// Handler plans the edits of one command from its untyped argument.
type Handler func(exec ExecContext, argument any) (EditBatch, error)

// CommandRegistry maps command identifiers to handlers. It is filled once at
// construction and only read afterwards.
type CommandRegistry struct {
	handlers map[m.CommandID]Handler
}

// NewCommandRegistry returns a registry holding the built-in commands.
func NewCommandRegistry() *CommandRegistry {
	registry := &CommandRegistry{handlers: make(map[m.CommandID]Handler)}

	Register(registry, m.CommandInitializeMemberFromCtor, planInitializeMember)
	Register(registry, m.CommandCtorFromProperties, planCtorFromProperties)

	return registry
}

// Register binds a typed handler to id.
func Register[T any](registry *CommandRegistry, id m.CommandID, fn func(exec ExecContext, argument T) (EditBatch, error)) {
	registry.handlers[id] = func(exec ExecContext, argument any) (EditBatch, error) {
		typed, ok := argument.(T)
		if !ok {
			var want T
			return EditBatch{}, fmt.Errorf("%w: %s expects %T, got %T", ErrInvalidArgument, id, want, argument)
		}

		return fn(exec, typed)
	}
}

// Commands lists the registered command identifiers in sorted order.
func (r *CommandRegistry) Commands() []m.CommandID {
	ids := make([]m.CommandID, 0, len(r.handlers))
	for id := range r.handlers {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids
}

// Plan runs the handler registered for the action's command.
func (r *CommandRegistry) Plan(exec ExecContext, action m.CodeAction) (EditBatch, error) {
	handler, ok := r.handlers[action.Command]
	if !ok {
		return EditBatch{}, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownCommand, action.Command, r.Commands())
	}

	return handler(exec, action.Argument)
}

// planInitializeMember inserts the declaration and the assignment, each only
// when its trimmed text is not already somewhere in the document. The check
// is document-wide, not scoped to the class.
func planInitializeMember(exec ExecContext, init *m.MemberInitialization) (EditBatch, error) {
	if init == nil {
		return EditBatch{}, fmt.Errorf("%w: nil member initialization", ErrInvalidArgument)
	}

	text := exec.Document.Text()

	var batch EditBatch

	insert := func(pos m.Position, fragment string) {
		if strings.Contains(text, strings.TrimSpace(fragment)) {
			batch.Skipped = append(batch.Skipped, strings.TrimSpace(fragment))
			return
		}

		batch.Edits = append(batch.Edits, m.Insert(pos, fragment))
	}

	insert(init.ConstructorStart, init.Plan.Declaration)
	insert(init.ConstructorBodyStart, init.Plan.Assignment)

	return batch, nil
}

func planCtorFromProperties(exec ExecContext, plan *m.ConstructorFromPropertiesPlan) (EditBatch, error) {
	if plan == nil || len(plan.Properties) == 0 {
		return EditBatch{}, fmt.Errorf("%w: constructor plan has no properties", ErrInvalidArgument)
	}

	line := exec.Document.LineAt(plan.InsertionLine)
	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	text := ConstructorText(plan, indent, exec.Settings, exec.Document.EOL())

	return EditBatch{
		Edits: []m.TextEdit{m.Insert(m.Position{Line: plan.InsertionLine}, text)},
	}, nil
}
