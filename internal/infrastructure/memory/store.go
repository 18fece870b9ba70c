// Package memory implementa los repositorios sobre mapas en memoria.
// Se usa con DB_DRIVER=memory y en los tests de casos de uso y handlers.
// Emula las restricciones del esquema SQL (únicos, cascadas, SET NULL, RESTRICT).
package memory

import (
	"sync"

	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

// Store datos compartidos por todos los repositorios en memoria.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex // serializa RunMembership
	seq  int64

	users            map[string]*entity.User
	clientStatuses   map[string]*entity.ClientStatus
	subscriptions    map[string]*entity.Subscription
	discoverySources map[string]*entity.DiscoverySource
	customers        map[string]*entity.Customer
	contacts         map[string]*entity.CustomerContact
	statuses         map[string]*statusRow
}

type statusRow struct {
	entity.CustomerStatus
	seq int64
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{
		users:            make(map[string]*entity.User),
		clientStatuses:   make(map[string]*entity.ClientStatus),
		subscriptions:    make(map[string]*entity.Subscription),
		discoverySources: make(map[string]*entity.DiscoverySource),
		customers:        make(map[string]*entity.Customer),
		contacts:         make(map[string]*entity.CustomerContact),
		statuses:         make(map[string]*statusRow),
	}
}

// Repositories agrupa todos los repositorios sobre un mismo Store.
type Repositories struct {
	Users            *UserRepo
	ClientStatuses   *ClientStatusRepo
	Subscriptions    *SubscriptionRepo
	DiscoverySources *DiscoverySourceRepo
	Customers        *CustomerRepo
	Contacts         *ContactRepo
	Statuses         *StatusRepo
	Tx               *TxRunner
}

// NewRepositories construye el conjunto de repositorios sobre s.
func NewRepositories(s *Store) *Repositories {
	return &Repositories{
		Users:            NewUserRepo(s),
		ClientStatuses:   NewClientStatusRepo(s),
		Subscriptions:    NewSubscriptionRepo(s),
		DiscoverySources: NewDiscoverySourceRepo(s),
		Customers:        NewCustomerRepo(s),
		Contacts:         NewContactRepo(s),
		Statuses:         NewStatusRepo(s),
		Tx:               NewTxRunner(s),
	}
}

func cloneCustomer(c *entity.Customer) *entity.Customer {
	if c == nil {
		return nil
	}
	cp := *c
	if c.DiscoverySourceID != nil {
		v := *c.DiscoverySourceID
		cp.DiscoverySourceID = &v
	}
	if c.DiscoveryDetails != nil {
		v := *c.DiscoveryDetails
		cp.DiscoveryDetails = &v
	}
	cp.SubscriptionIDs = append([]string(nil), c.SubscriptionIDs...)
	return &cp
}
