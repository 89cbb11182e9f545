package http

import (
	"fmt"

	"github.com/supportdesk/supportdesk/internal/domain/ticket"
	"github.com/supportdesk/supportdesk/internal/infrastructure/database"
	"github.com/supportdesk/supportdesk/internal/infrastructure/repository"
	infrasession "github.com/supportdesk/supportdesk/internal/infrastructure/session"
	sharedConfig "github.com/supportdesk/supportdesk/internal/shared/config"
	"github.com/supportdesk/supportdesk/internal/shared/db"
)

// repositories holds the ticket store, its transaction manager and the
// session store.
type repositories struct {
	ticketRepo   ticket.TicketRepository
	txManager    db.TransactionManager
	sessionStore *infrasession.LRUStore
}

// newRepositories picks the ticket store named by store.driver.
func (c *Container) newRepositories() (*repositories, error) {
	repos := &repositories{
		sessionStore: infrasession.NewLRUStore(c.cfg.Session.MaxEntries, c.cfg.Session.TTL()),
	}

	switch c.cfg.Store.Driver {
	case sharedConfig.StoreDriverSQLite:
		if err := database.Init(); err != nil {
			return nil, fmt.Errorf("failed to open ticket store: %w", err)
		}
		c.db = database.Get()
		repos.ticketRepo = repository.NewTicketRepository(c.db)
		repos.txManager = db.NewGormTransactionManager(c.db)
	case sharedConfig.StoreDriverMemory, "":
		repos.ticketRepo = repository.NewMemoryTicketRepository()
		repos.txManager = db.NewLockingTransactionManager()
	default:
		return nil, fmt.Errorf("unknown store driver %q", c.cfg.Store.Driver)
	}

	c.log.Infow("ticket store ready", "driver", c.cfg.Store.Driver)
	return repos, nil
}
