// Package catalogd is the embedded SDK: it wires the storage layer, the
// feature services and the message bus into a single client for CLI and
// import tooling that runs in-process, without the HTTP server.
package catalogd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/opencatalogue/catalogd/internal/auth"
	"github.com/opencatalogue/catalogd/internal/bus"
	"github.com/opencatalogue/catalogd/internal/db"
	dbRedis "github.com/opencatalogue/catalogd/internal/db/redis"
	"github.com/opencatalogue/catalogd/internal/domain"
	domcat "github.com/opencatalogue/catalogd/internal/domain/catalog"
	domds "github.com/opencatalogue/catalogd/internal/domain/dataset"
	domorg "github.com/opencatalogue/catalogd/internal/domain/organization"
	"github.com/opencatalogue/catalogd/internal/domain/page"
	"github.com/opencatalogue/catalogd/internal/export"
	accountrepo "github.com/opencatalogue/catalogd/internal/repository/account"
	catalogrepo "github.com/opencatalogue/catalogd/internal/repository/catalog"
	dataformatrepo "github.com/opencatalogue/catalogd/internal/repository/dataformat"
	datasetrepo "github.com/opencatalogue/catalogd/internal/repository/dataset"
	organizationrepo "github.com/opencatalogue/catalogd/internal/repository/organization"
	tagrepo "github.com/opencatalogue/catalogd/internal/repository/tag"
	authuc "github.com/opencatalogue/catalogd/internal/usecase/auth"
	cataloguc "github.com/opencatalogue/catalogd/internal/usecase/catalog"
	dataformatuc "github.com/opencatalogue/catalogd/internal/usecase/dataformat"
	datasetuc "github.com/opencatalogue/catalogd/internal/usecase/dataset"
	extrafielduc "github.com/opencatalogue/catalogd/internal/usecase/extrafield"
	organizationuc "github.com/opencatalogue/catalogd/internal/usecase/organization"
	taguc "github.com/opencatalogue/catalogd/internal/usecase/tag"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the catalogd SDK entry point. Calls through the Client are
// trusted: no account is attached, so authorization checks pass.
type Client struct {
	store db.Store
	bus   *bus.Bus
}

// New creates a Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{clock: time.Now}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("catalogd: database address required (use WithRedis)")
	}
	if cfg.keyPrefix != "" {
		domain.KeyPrefix = cfg.keyPrefix
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("catalogd: create redis store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("catalogd: database not ready: %w", err)
	}

	return wireClient(store, cfg)
}

func wireClient(store db.Store, cfg *clientConfig) (*Client, error) {
	orgRepo := organizationrepo.New(store)
	catRepo := catalogrepo.New(store, orgRepo)
	dsRepo := datasetrepo.New(store)
	tagRepo := tagrepo.New(store)
	formatRepo := dataformatrepo.New(store)
	acctRepo := accountrepo.New(store)

	b, err := bus.New(
		organizationuc.NewModule(organizationuc.New(orgRepo)),
		cataloguc.NewModule(cataloguc.New(catRepo, orgRepo, dsRepo)),
		datasetuc.NewModule(datasetuc.New(dsRepo, catRepo, tagRepo, formatRepo, cfg.clock)),
		taguc.NewModule(taguc.New(tagRepo)),
		dataformatuc.NewModule(dataformatuc.New(formatRepo)),
		extrafielduc.NewModule(extrafielduc.New(catRepo)),
		authuc.NewModule(authuc.New(acctRepo, auth.NewPasswordEncoder(), auth.GenerateToken)),
	)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("catalogd: assemble bus: %w", err)
	}

	return &Client{store: store, bus: b}, nil
}

// Close releases the database connection.
func (c *Client) Close() {
	c.store.Close()
}

// Execute dispatches a command or query message on the bus.
func (c *Client) Execute(ctx context.Context, msg any) (any, error) {
	return c.bus.Execute(ctx, msg)
}

// CreateOrganization registers an organization.
func (c *Client) CreateOrganization(ctx context.Context, cmd organizationuc.CreateOrganization) (domorg.Organization, error) {
	return bus.Execute[domorg.Organization](ctx, c.bus, cmd)
}

// CreateCatalog creates an organization's catalog with its extra-field
// schema.
func (c *Client) CreateCatalog(ctx context.Context, cmd cataloguc.CreateCatalog) (domcat.Catalog, error) {
	return bus.Execute[domcat.Catalog](ctx, c.bus, cmd)
}

// CreateDataset publishes a dataset. Supply an ID for idempotent
// re-runs.
func (c *Client) CreateDataset(ctx context.Context, cmd datasetuc.CreateDataset) (domds.Dataset, error) {
	return bus.Execute[domds.Dataset](ctx, c.bus, cmd)
}

// FindDatasets lists datasets with filtering, search and pagination.
func (c *Client) FindDatasets(ctx context.Context, q datasetuc.GetAllDatasets) (page.Paginated[datasetuc.Hit], error) {
	return bus.Execute[page.Paginated[datasetuc.Hit]](ctx, c.bus, q)
}

// ExportCSV renders a catalog's unrestricted datasets as CSV.
func (c *Client) ExportCSV(ctx context.Context, siret string) (string, error) {
	payload, err := bus.Execute[cataloguc.Export](ctx, c.bus, cataloguc.GetCatalogExport{Siret: siret})
	if err != nil {
		return "", err
	}
	return export.ToCSV(payload.Catalog, payload.Datasets)
}
