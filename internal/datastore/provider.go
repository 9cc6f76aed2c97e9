package datastore

import (
	"context"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"evplan/internal/domain"
)

// Provider hydrates a Store from a snapshot directory and writes changes back.
type Provider struct {
	store *Store
	dir   string
}

func NewProvider(store *Store, dir string) *Provider {
	return &Provider{store: store, dir: dir}
}

// Store returns the backing store.
func (p *Provider) Store() *Store {
	return p.store
}

// Dir returns the snapshot directory.
func (p *Provider) Dir() string {
	return p.dir
}

// Hydrate loads all fixture files concurrently and replaces the store's dataset.
// Missing files are treated as empty collections.
func (p *Provider) Hydrate(ctx context.Context) error {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)

	load := func(name string, fn func() error) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(); err != nil {
				return err
			}
			log.Debug().Str("file", name).Msg("Hydrate: fixture loaded")
			return nil
		})
	}

	load(ItemsFile, func() (err error) {
		snap.Items, err = readJSONL[domain.InventoryItem](filepath.Join(p.dir, ItemsFile))
		return err
	})
	load(EventsFile, func() (err error) {
		snap.Events, err = readJSONL[domain.Event](filepath.Join(p.dir, EventsFile))
		return err
	})
	load(ActiveFile, func() (err error) {
		snap.ActiveEvents, err = readJSONL[domain.ActiveEvent](filepath.Join(p.dir, ActiveFile))
		return err
	})
	load(ArchiveFile, func() (err error) {
		snap.ArchivedEvents, err = readJSONL[domain.ArchivedEvent](filepath.Join(p.dir, ArchiveFile))
		return err
	})
	load(PaymentsFile, func() (err error) {
		snap.Payments, err = readJSONL[domain.PaymentMilestone](filepath.Join(p.dir, PaymentsFile))
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	p.store.Replace(snap)
	log.Info().Str("dir", p.dir).Interface("counts", p.store.Count()).Msg("Hydration complete")
	return nil
}

// Allocate runs the store's allocation and persists the dataset on success.
func (p *Provider) Allocate(ctx context.Context, itemID, eventID string, qty int) (domain.InventoryItem, error) {
	item, err := p.store.Allocate(ctx, itemID, eventID, qty)
	if err != nil {
		return item, err
	}
	p.persist("Allocate")
	return item, nil
}

// UpdatePaymentStatus runs the store's status transition and persists the dataset on success.
func (p *Provider) UpdatePaymentStatus(ctx context.Context, paymentID string, to domain.PaymentStatus, at time.Time) (domain.PaymentMilestone, error) {
	updated, err := p.store.UpdatePaymentStatus(ctx, paymentID, to, at)
	if err != nil {
		return updated, err
	}
	p.persist("UpdatePaymentStatus")
	return updated, nil
}

func (p *Provider) persist(op string) {
	if p.dir == "" {
		return
	}
	if err := p.store.Save(p.dir); err != nil {
		log.Warn().Err(err).Str("dir", p.dir).Str("op", op).Msg("Failed to persist snapshot")
	}
}
