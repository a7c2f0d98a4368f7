package did

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ParseAll decodes several identifiers concurrently. Parse is side-effect
// free, so the calls need no coordination beyond the group. The first
// failing identifier cancels the rest; results keep input order.
func ParseAll(ctx context.Context, identifiers []string, opts ...ParseOption) ([]*ParsedIdentifier, error) {
	out := make([]*ParsedIdentifier, len(identifiers))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range identifiers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parsed, err := Parse(id, opts...)
			if err != nil {
				return fmt.Errorf("identifier %d: %w", i, err)
			}
			out[i] = parsed
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
