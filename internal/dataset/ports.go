// Package dataset defines the ports for the session transaction store.
// A dataset lives exactly as long as the session: each upload replaces
// it wholesale and nothing updates single records.
package dataset

import (
	"context"

	"khata/internal/core"
)

type (
	// Replacer swaps the whole dataset for a fresh upload.
	Replacer interface {
		Replace(ctx context.Context, records []core.Record) error
	}

	// Lister returns the dataset in file order.
	Lister interface {
		Records(ctx context.Context) ([]core.Record, error)
	}

	// Store is the full session store surface.
	Store interface {
		Replacer
		Lister
	}
)
