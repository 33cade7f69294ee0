package test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/dispatch/internal/domain/errors"
	"github.com/polkiloo/dispatch/internal/domain/model"
	"github.com/polkiloo/dispatch/internal/domain/repository"
)

// Operation names accepted by MemoryStore.Fail.
const (
	OpCustomerCreate      = "customers.create"
	OpPhoneCreate         = "phones.create"
	OpAddressCreate       = "addresses.create"
	OpOrderCreate         = "orders.create"
	OpOrderUpdate         = "orders.update"
	OpOrderDelete         = "orders.delete"
	OpDeliveryCreate      = "deliveries.create"
	OpDeliveryUpdateCosts = "deliveries.update_costs"
	OpDeliveryDelete      = "deliveries.delete"
)

type memoryState struct {
	seq        int64
	customers  map[int64]model.Customer
	phones     map[int64]model.Phone
	addresses  map[int64]model.Address
	orders     map[int64]model.Order
	deliveries map[int64]model.Delivery
}

func newMemoryState() *memoryState {
	return &memoryState{
		customers:  make(map[int64]model.Customer),
		phones:     make(map[int64]model.Phone),
		addresses:  make(map[int64]model.Address),
		orders:     make(map[int64]model.Order),
		deliveries: make(map[int64]model.Delivery),
	}
}

func cloneMap[V any](src map[int64]V) map[int64]V {
	dst := make(map[int64]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (s *memoryState) clone() *memoryState {
	return &memoryState{
		seq:        s.seq,
		customers:  cloneMap(s.customers),
		phones:     cloneMap(s.phones),
		addresses:  cloneMap(s.addresses),
		orders:     cloneMap(s.orders),
		deliveries: cloneMap(s.deliveries),
	}
}

func (s *memoryState) next() int64 {
	s.seq++
	return s.seq
}

func sortedValues[V any](src map[int64]V, keep func(V) bool) []V {
	ids := make([]int64, 0, len(src))
	for id, v := range src {
		if keep == nil || keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]V, 0, len(ids))
	for _, id := range ids {
		out = append(out, src[id])
	}
	return out
}

// MemoryStore is an in-memory repository.Factory and repository.Transactor.
// A transaction works on a copy of the data that replaces the original on
// commit, so a failed unit of work leaves no trace.
type MemoryStore struct {
	mu       sync.Mutex
	state    *memoryState
	failures map[string]error

	Commits   int
	Rollbacks int
}

var (
	_ repository.Factory    = (*MemoryStore)(nil)
	_ repository.Transactor = (*MemoryStore)(nil)
)

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: newMemoryState(), failures: make(map[string]error)}
}

// Fail makes every later call of op return err. A nil err clears the failure.
func (s *MemoryStore) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// WithinTransaction runs fn against a private copy of the data.
func (s *MemoryStore) WithinTransaction(ctx context.Context, fn func(repository.Factory) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.state.clone()
	defer func() {
		if p := recover(); p != nil {
			s.Rollbacks++
			panic(p)
		}
		if err != nil {
			s.Rollbacks++
			return
		}
		s.state = draft
		s.Commits++
	}()

	return fn(memoryView{store: s, state: draft, inTx: true})
}

func (s *MemoryStore) view() memoryView { return memoryView{store: s} }

// Customers implements repository.Factory.
func (s *MemoryStore) Customers() repository.CustomerRepository { return memoryCustomers{s.view()} }

// Phones implements repository.Factory.
func (s *MemoryStore) Phones() repository.PhoneRepository { return memoryPhones{s.view()} }

// Addresses implements repository.Factory.
func (s *MemoryStore) Addresses() repository.AddressRepository { return memoryAddresses{s.view()} }

// Orders implements repository.Factory.
func (s *MemoryStore) Orders() repository.OrderRepository { return memoryOrders{s.view()} }

// Deliveries implements repository.Factory.
func (s *MemoryStore) Deliveries() repository.DeliveryRepository { return memoryDeliveries{s.view()} }

// SeedCustomer stores a customer outside any transaction and returns it.
func (s *MemoryStore) SeedCustomer(c model.Customer) model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.state.next()
	s.state.customers[c.ID] = c
	return c
}

// Snapshot counts stored rows per table.
func (s *MemoryStore) Snapshot() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]int{
		"customers":  len(s.state.customers),
		"phones":     len(s.state.phones),
		"addresses":  len(s.state.addresses),
		"orders":     len(s.state.orders),
		"deliveries": len(s.state.deliveries),
	}
}

// memoryView binds repositories either to the committed state or to a transaction draft.
type memoryView struct {
	store *MemoryStore
	state *memoryState
	inTx  bool
}

func (v memoryView) Customers() repository.CustomerRepository { return memoryCustomers{v} }
func (v memoryView) Phones() repository.PhoneRepository       { return memoryPhones{v} }
func (v memoryView) Addresses() repository.AddressRepository  { return memoryAddresses{v} }
func (v memoryView) Orders() repository.OrderRepository       { return memoryOrders{v} }
func (v memoryView) Deliveries() repository.DeliveryRepository {
	return memoryDeliveries{v}
}

func (v memoryView) do(op string, fn func(*memoryState) error) error {
	if !v.inTx {
		v.store.mu.Lock()
		defer v.store.mu.Unlock()
	}
	if err := v.store.failures[op]; err != nil {
		return err
	}
	state := v.state
	if state == nil {
		state = v.store.state
	}
	return fn(state)
}

func notFound(kind string, id any) error {
	return domainErrors.NotFoundf("%s %v not found", kind, id)
}

type memoryCustomers struct{ v memoryView }

func (r memoryCustomers) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	var out model.Customer
	err := r.v.do(OpCustomerCreate, func(st *memoryState) error {
		for _, existing := range st.customers {
			if existing.CPF == c.CPF {
				return domainErrors.Conflictf("cpf %s is already registered", c.CPF)
			}
		}
		out = *c
		out.ID = st.next()
		st.customers[out.ID] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r memoryCustomers) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	var out model.Customer
	err := r.v.do("customers.get", func(st *memoryState) error {
		c, ok := st.customers[id]
		if !ok {
			return notFound("customer", id)
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r memoryCustomers) GetByCPF(ctx context.Context, cpf string) (*model.Customer, error) {
	var out *model.Customer
	err := r.v.do("customers.get", func(st *memoryState) error {
		for _, c := range st.customers {
			if c.CPF == cpf {
				found := c
				out = &found
				return nil
			}
		}
		return notFound("customer with cpf", cpf)
	})
	return out, err
}

func (r memoryCustomers) List(ctx context.Context) ([]model.Customer, error) {
	var out []model.Customer
	err := r.v.do("customers.list", func(st *memoryState) error {
		out = sortedValues(st.customers, nil)
		return nil
	})
	return out, err
}

func (r memoryCustomers) Update(ctx context.Context, c *model.Customer) error {
	return r.v.do("customers.update", func(st *memoryState) error {
		if _, ok := st.customers[c.ID]; !ok {
			return notFound("customer", c.ID)
		}
		for _, existing := range st.customers {
			if existing.CPF == c.CPF && existing.ID != c.ID {
				return domainErrors.Conflictf("cpf %s is already registered", c.CPF)
			}
		}
		st.customers[c.ID] = *c
		return nil
	})
}

func (r memoryCustomers) Delete(ctx context.Context, id int64) (int64, error) {
	var rows int64
	err := r.v.do("customers.delete", func(st *memoryState) error {
		if _, ok := st.customers[id]; !ok {
			return nil
		}
		for orderID, o := range st.orders {
			if o.CustomerID != id {
				continue
			}
			for deliveryID, d := range st.deliveries {
				if d.OrderID == orderID {
					delete(st.deliveries, deliveryID)
				}
			}
			delete(st.orders, orderID)
		}
		for phoneID, p := range st.phones {
			if p.CustomerID == id {
				delete(st.phones, phoneID)
			}
		}
		for addressID, a := range st.addresses {
			if a.CustomerID == id {
				delete(st.addresses, addressID)
			}
		}
		delete(st.customers, id)
		rows = 1
		return nil
	})
	return rows, err
}

type memoryPhones struct{ v memoryView }

func (r memoryPhones) Create(ctx context.Context, p *model.Phone) (*model.Phone, error) {
	var out model.Phone
	err := r.v.do(OpPhoneCreate, func(st *memoryState) error {
		if _, ok := st.customers[p.CustomerID]; !ok {
			return notFound("customer", p.CustomerID)
		}
		out = *p
		out.ID = st.next()
		st.phones[out.ID] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r memoryPhones) GetByID(ctx context.Context, id int64) (*model.Phone, error) {
	var out model.Phone
	err := r.v.do("phones.get", func(st *memoryState) error {
		p, ok := st.phones[id]
		if !ok {
			return notFound("phone", id)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r memoryPhones) ListByCustomer(ctx context.Context, customerID int64) ([]model.Phone, error) {
	var out []model.Phone
	err := r.v.do("phones.list", func(st *memoryState) error {
		out = sortedValues(st.phones, func(p model.Phone) bool { return p.CustomerID == customerID })
		return nil
	})
	return out, err
}

func (r memoryPhones) Update(ctx context.Context, p *model.Phone) error {
	return r.v.do("phones.update", func(st *memoryState) error {
		if _, ok := st.phones[p.ID]; !ok {
			return notFound("phone", p.ID)
		}
		st.phones[p.ID] = *p
		return nil
	})
}

func (r memoryPhones) Delete(ctx context.Context, id int64) (int64, error) {
	var rows int64
	err := r.v.do("phones.delete", func(st *memoryState) error {
		if _, ok := st.phones[id]; ok {
			delete(st.phones, id)
			rows = 1
		}
		return nil
	})
	return rows, err
}

type memoryAddresses struct{ v memoryView }

func (r memoryAddresses) Create(ctx context.Context, a *model.Address) (*model.Address, error) {
	var out model.Address
	err := r.v.do(OpAddressCreate, func(st *memoryState) error {
		if _, ok := st.customers[a.CustomerID]; !ok {
			return notFound("customer", a.CustomerID)
		}
		out = *a
		out.ID = st.next()
		st.addresses[out.ID] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r memoryAddresses) GetByID(ctx context.Context, id int64) (*model.Address, error) {
	var out model.Address
	err := r.v.do("addresses.get", func(st *memoryState) error {
		a, ok := st.addresses[id]
		if !ok {
			return notFound("address", id)
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r memoryAddresses) ListByCustomer(ctx context.Context, customerID int64) ([]model.Address, error) {
	var out []model.Address
	err := r.v.do("addresses.list", func(st *memoryState) error {
		out = sortedValues(st.addresses, func(a model.Address) bool { return a.CustomerID == customerID })
		return nil
	})
	return out, err
}

func (r memoryAddresses) Update(ctx context.Context, a *model.Address) error {
	return r.v.do("addresses.update", func(st *memoryState) error {
		if _, ok := st.addresses[a.ID]; !ok {
			return notFound("address", a.ID)
		}
		st.addresses[a.ID] = *a
		return nil
	})
}

func (r memoryAddresses) Delete(ctx context.Context, id int64) (int64, error) {
	var rows int64
	err := r.v.do("addresses.delete", func(st *memoryState) error {
		if _, ok := st.addresses[id]; ok {
			delete(st.addresses, id)
			rows = 1
		}
		return nil
	})
	return rows, err
}

type memoryOrders struct{ v memoryView }

func (r memoryOrders) Create(ctx context.Context, o *model.Order) (*model.Order, error) {
	var out model.Order
	err := r.v.do(OpOrderCreate, func(st *memoryState) error {
		if _, ok := st.customers[o.CustomerID]; !ok {
			return notFound("customer", o.CustomerID)
		}
		out = *o
		out.ID = st.next()
		out.CreatedAt = time.Now().UTC()
		st.orders[out.ID] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r memoryOrders) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var out model.Order
	err := r.v.do("orders.get", func(st *memoryState) error {
		o, ok := st.orders[id]
		if !ok {
			return notFound("order", id)
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r memoryOrders) LockByID(ctx context.Context, id int64) (*model.Order, error) {
	return r.GetByID(ctx, id)
}

func (r memoryOrders) List(ctx context.Context) ([]model.Order, error) {
	var out []model.Order
	err := r.v.do("orders.list", func(st *memoryState) error {
		out = sortedValues(st.orders, nil)
		return nil
	})
	return out, err
}

func (r memoryOrders) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	var out []model.Order
	err := r.v.do("orders.list", func(st *memoryState) error {
		out = sortedValues(st.orders, func(o model.Order) bool { return o.CustomerID == customerID })
		return nil
	})
	return out, err
}

func (r memoryOrders) Update(ctx context.Context, o *model.Order) error {
	return r.v.do(OpOrderUpdate, func(st *memoryState) error {
		current, ok := st.orders[o.ID]
		if !ok {
			return notFound("order", o.ID)
		}
		updated := *o
		updated.CreatedAt = current.CreatedAt
		st.orders[o.ID] = updated
		return nil
	})
}

func (r memoryOrders) Delete(ctx context.Context, id int64) (int64, error) {
	var rows int64
	err := r.v.do(OpOrderDelete, func(st *memoryState) error {
		for _, d := range st.deliveries {
			if d.OrderID == id {
				return fmt.Errorf("%w: order %d still has a delivery", domainErrors.ErrPersistence, id)
			}
		}
		if _, ok := st.orders[id]; ok {
			delete(st.orders, id)
			rows = 1
		}
		return nil
	})
	return rows, err
}

type memoryDeliveries struct{ v memoryView }

func (r memoryDeliveries) Create(ctx context.Context, d *model.Delivery) (*model.Delivery, error) {
	var out model.Delivery
	err := r.v.do(OpDeliveryCreate, func(st *memoryState) error {
		if _, ok := st.orders[d.OrderID]; !ok {
			return notFound("order", d.OrderID)
		}
		for _, existing := range st.deliveries {
			if existing.OrderID == d.OrderID {
				return domainErrors.Conflictf("order %d already has a delivery", d.OrderID)
			}
		}
		out = *d
		out.ID = st.next()
		st.deliveries[out.ID] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r memoryDeliveries) GetByID(ctx context.Context, id int64) (*model.Delivery, error) {
	var out model.Delivery
	err := r.v.do("deliveries.get", func(st *memoryState) error {
		d, ok := st.deliveries[id]
		if !ok {
			return notFound("delivery", id)
		}
		out = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r memoryDeliveries) GetByOrderID(ctx context.Context, orderID int64) (*model.Delivery, error) {
	var out *model.Delivery
	err := r.v.do("deliveries.get", func(st *memoryState) error {
		for _, d := range st.deliveries {
			if d.OrderID == orderID {
				found := d
				out = &found
				return nil
			}
		}
		return notFound("delivery of order", orderID)
	})
	return out, err
}

func (r memoryDeliveries) List(ctx context.Context) ([]model.Delivery, error) {
	var out []model.Delivery
	err := r.v.do("deliveries.list", func(st *memoryState) error {
		out = sortedValues(st.deliveries, nil)
		return nil
	})
	return out, err
}

func (r memoryDeliveries) UpdateCosts(ctx context.Context, orderID int64, b model.Breakdown) (int64, error) {
	var rows int64
	err := r.v.do(OpDeliveryUpdateCosts, func(st *memoryState) error {
		for id, d := range st.deliveries {
			if d.OrderID == orderID {
				d.Breakdown = b
				st.deliveries[id] = d
				rows++
			}
		}
		return nil
	})
	return rows, err
}

func (r memoryDeliveries) UpdateStatus(ctx context.Context, id int64, status model.DeliveryStatus) (*model.Delivery, error) {
	var out model.Delivery
	err := r.v.do("deliveries.update_status", func(st *memoryState) error {
		d, ok := st.deliveries[id]
		if !ok {
			return notFound("delivery", id)
		}
		d.Status = status
		st.deliveries[id] = d
		out = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r memoryDeliveries) DeleteByOrderID(ctx context.Context, orderID int64) (int64, error) {
	var rows int64
	err := r.v.do(OpDeliveryDelete, func(st *memoryState) error {
		for id, d := range st.deliveries {
			if d.OrderID == orderID {
				delete(st.deliveries, id)
				rows++
			}
		}
		return nil
	})
	return rows, err
}
