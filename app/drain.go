package app

import (
	"context"
	"fmt"
)

// Drain feeds msg and every follow-up back into Update until the chain
// reaches Noop or an error ends it. A chain longer than MaxChain is a bug in
// the transition table and panics.
func Drain(ctx context.Context, m *Model, msg Message) error {
	for steps := 0; !msg.IsNoop(); steps++ {
		if steps >= MaxChain {
			panic(fmt.Sprintf("app: message chain exceeded %d steps at %s", MaxChain, msg))
		}
		if m.trace != nil {
			m.trace(msg)
		}
		next, err := m.Update(ctx, msg)
		if err != nil {
			return err
		}
		msg = next
	}
	return nil
}
