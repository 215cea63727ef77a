// Package memstore implementa los puertos de repository en memoria para tests
// de casos de uso y handlers. RunSales se ejecuta de a una transacción a la vez
// y restaura el estado si fn falla.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

// Store estado en memoria compartido por todos los repos.
type Store struct {
	mu sync.Mutex
	tx sync.Mutex // serializa RunSales, como los FOR UPDATE en PostgreSQL
	st state

	// FailOn fuerza un error en la operación indicada (ej: "salesorders.create").
	FailOn map[string]error
}

type state struct {
	companies  map[string]entity.Company
	users      map[string]entity.User
	customers  map[string]entity.Customer
	products   map[string]entity.Product
	priceLists map[string]entity.PriceList
	quotations map[string]entity.Quotation
	orders     map[string]entity.SalesOrder
	jobOrders  map[string]entity.JobOrder
	shipments  []entity.Shipment
	payments   []entity.Payment
	sequences  map[string]int
}

// New store vacío.
func New() *Store {
	return &Store{st: state{
		companies:  map[string]entity.Company{},
		users:      map[string]entity.User{},
		customers:  map[string]entity.Customer{},
		products:   map[string]entity.Product{},
		priceLists: map[string]entity.PriceList{},
		quotations: map[string]entity.Quotation{},
		orders:     map[string]entity.SalesOrder{},
		jobOrders:  map[string]entity.JobOrder{},
		sequences:  map[string]int{},
	}}
}

func (s *Store) fail(op string) error {
	if s.FailOn == nil {
		return nil
	}
	return s.FailOn[op]
}

func (st state) clone() state {
	c := state{
		companies:  make(map[string]entity.Company, len(st.companies)),
		users:      make(map[string]entity.User, len(st.users)),
		customers:  make(map[string]entity.Customer, len(st.customers)),
		products:   make(map[string]entity.Product, len(st.products)),
		priceLists: make(map[string]entity.PriceList, len(st.priceLists)),
		quotations: make(map[string]entity.Quotation, len(st.quotations)),
		orders:     make(map[string]entity.SalesOrder, len(st.orders)),
		jobOrders:  make(map[string]entity.JobOrder, len(st.jobOrders)),
		shipments:  append([]entity.Shipment(nil), st.shipments...),
		payments:   append([]entity.Payment(nil), st.payments...),
		sequences:  make(map[string]int, len(st.sequences)),
	}
	for k, v := range st.companies {
		c.companies[k] = v
	}
	for k, v := range st.users {
		c.users[k] = v
	}
	for k, v := range st.customers {
		c.customers[k] = v
	}
	for k, v := range st.products {
		c.products[k] = v
	}
	for k, v := range st.priceLists {
		c.priceLists[k] = v
	}
	for k, v := range st.quotations {
		v.Items = append([]entity.DocumentItem(nil), v.Items...)
		c.quotations[k] = v
	}
	for k, v := range st.orders {
		v.Items = append([]entity.DocumentItem(nil), v.Items...)
		c.orders[k] = v
	}
	for k, v := range st.jobOrders {
		v.Items = append([]entity.JobOrderItem(nil), v.Items...)
		c.jobOrders[k] = v
	}
	for k, v := range st.sequences {
		c.sequences[k] = v
	}
	return c
}

// Repos accesores.
func (s *Store) Companies() repository.CompanyRepository { return companies{s} }
func (s *Store) Users() repository.UserRepository { return users{s} }
func (s *Store) Customers() repository.CustomerRepository { return customers{s} }
func (s *Store) Products() repository.ProductRepository { return products{s} }
func (s *Store) PriceLists() repository.PriceListRepository { return priceLists{s} }
func (s *Store) Quotations() repository.QuotationRepository { return quotations{s} }
func (s *Store) SalesOrders() repository.SalesOrderRepository { return salesOrders{s} }
func (s *Store) JobOrders() repository.JobOrderRepository { return jobOrders{s} }
func (s *Store) Sequences() repository.SequenceRepository { return sequences{s} }
func (s *Store) Analytics() repository.AnalyticsRepository { return analytics{s} }

// RunSales ejecuta fn; si devuelve error el estado vuelve al de antes.
func (s *Store) RunSales(ctx context.Context, fn func(
	quotations repository.QuotationRepository,
	salesOrders repository.SalesOrderRepository,
	jobOrders repository.JobOrderRepository,
	sequences repository.SequenceRepository,
) error) error {
	s.tx.Lock()
	defer s.tx.Unlock()

	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()

	if err := fn(s.Quotations(), s.SalesOrders(), s.JobOrders(), s.Sequences()); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// Payments pagos y reembolsos registrados, en orden de inserción.
func (s *Store) Payments() []entity.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Payment(nil), s.st.payments...)
}

// Shipments despachos registrados.
func (s *Store) Shipments() []entity.Shipment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Shipment(nil), s.st.shipments...)
}

// ── company / user ───────────────────────────────────────────────────────────

type companies struct{ s *Store }

func (r companies) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	r.s.st.companies[c.ID] = *c
	return nil
}

func (r companies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.st.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r companies) List(_ context.Context, limit, offset int) ([]*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Company, 0, len(r.s.st.companies))
	for _, c := range r.s.st.companies {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

type users struct{ s *Store }

func (r users) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.st.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.st.users[u.ID] = *u
	return nil
}

func (r users) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.st.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r users) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.st.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r users) UpdateRole(_ context.Context, companyID, id, role string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.st.users[id]
	if !ok || u.CompanyID != companyID {
		return domain.ErrNotFound
	}
	u.Role = role
	u.UpdatedAt = at
	r.s.st.users[id] = u
	return nil
}

// ── catálogo ─────────────────────────────────────────────────────────────────

type customers struct{ s *Store }

func (r customers) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	r.s.st.customers[c.ID] = *c
	return nil
}

func (r customers) GetByID(_ context.Context, companyID, id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.st.customers[id]
	if !ok || c.CompanyID != companyID {
		return nil, nil
	}
	return &c, nil
}

func (r customers) ListByCompany(_ context.Context, companyID, search string, limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	search = strings.ToLower(search)
	var out []*entity.Customer
	for _, c := range r.s.st.customers {
		if c.CompanyID != companyID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) && !strings.Contains(strings.ToLower(c.TaxID), search) {
			continue
		}
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

type products struct{ s *Store }

func (r products) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.st.products {
		if existing.CompanyID == p.CompanyID && existing.SKU == p.SKU {
			return fmt.Errorf("%w: SKU %s", domain.ErrDuplicate, p.SKU)
		}
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	r.s.st.products[p.ID] = *p
	return nil
}

func (r products) GetByID(_ context.Context, companyID, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.st.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	return &p, nil
}

func (r products) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.products[p.ID] = *p
	return nil
}

func (r products) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.st.products {
		if p.CompanyID == companyID {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return page(out, limit, offset), nil
}

type priceLists struct{ s *Store }

func (r priceLists) Create(_ context.Context, pl *entity.PriceList) error {
	if err := r.s.fail("pricelists.create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := pl.CompanyID + "/" + pl.Code
	if _, ok := r.s.st.priceLists[key]; ok {
		return fmt.Errorf("%w: lista %s", domain.ErrDuplicate, pl.Code)
	}
	r.s.st.priceLists[key] = *pl
	return nil
}

func (r priceLists) GetByCode(_ context.Context, companyID, code string) (*entity.PriceList, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	pl, ok := r.s.st.priceLists[companyID+"/"+code]
	if !ok {
		return nil, nil
	}
	return &pl, nil
}

func (r priceLists) ListByCompany(_ context.Context, companyID string) ([]*entity.PriceList, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.PriceList
	for _, pl := range r.s.st.priceLists {
		if pl.CompanyID == companyID {
			pl := pl
			out = append(out, &pl)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// ── documentos ───────────────────────────────────────────────────────────────

func setItemIDs(docID string, items []entity.DocumentItem) []entity.DocumentItem {
	out := append([]entity.DocumentItem(nil), items...)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.New().String()
		}
		out[i].DocumentID = docID
		out[i].Position = i + 1
	}
	return out
}

func matches(f repository.DocumentFilter, status, customerID string, createdAt time.Time) bool {
	if f.Status != "" && f.Status != status {
		return false
	}
	if f.CustomerID != "" && f.CustomerID != customerID {
		return false
	}
	if f.From != nil && createdAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !createdAt.Before(*f.To) {
		return false
	}
	return true
}

type quotations struct{ s *Store }

func (r quotations) Create(_ context.Context, q *entity.Quotation) error {
	if err := r.s.fail("quotations.create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q.Items = setItemIDs(q.ID, q.Items)
	r.s.st.quotations[q.ID] = *q
	return nil
}

func (r quotations) Update(_ context.Context, q *entity.Quotation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.quotations[q.ID]; !ok {
		return domain.ErrNotFound
	}
	q.Items = setItemIDs(q.ID, q.Items)
	r.s.st.quotations[q.ID] = *q
	return nil
}

func (r quotations) UpdateStatus(_ context.Context, companyID, id, status string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.st.quotations[id]
	if !ok || q.CompanyID != companyID {
		return domain.ErrNotFound
	}
	q.Status = status
	q.UpdatedAt = at
	r.s.st.quotations[id] = q
	return nil
}

func (r quotations) GetByID(_ context.Context, companyID, id string) (*entity.Quotation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.st.quotations[id]
	if !ok || q.CompanyID != companyID {
		return nil, nil
	}
	q.Items = append([]entity.DocumentItem(nil), q.Items...)
	return &q, nil
}

func (r quotations) GetByIDForUpdate(ctx context.Context, companyID, id string) (*entity.Quotation, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r quotations) List(_ context.Context, companyID string, f repository.DocumentFilter) ([]*entity.Quotation, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Quotation
	for _, q := range r.s.st.quotations {
		if q.CompanyID == companyID && matches(f, q.Status, q.CustomerID, q.CreatedAt) {
			q := q
			q.Items = nil
			out = append(out, &q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })
	return page(out, f.Limit, f.Offset), len(out), nil
}

type salesOrders struct{ s *Store }

func (r salesOrders) Create(_ context.Context, o *entity.SalesOrder) error {
	if err := r.s.fail("salesorders.create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o.QuotationID != nil {
		for _, existing := range r.s.st.orders {
			if existing.QuotationID != nil && *existing.QuotationID == *o.QuotationID {
				return fmt.Errorf("%w: cotización ya convertida", domain.ErrDuplicate)
			}
		}
	}
	o.Items = setItemIDs(o.ID, o.Items)
	r.s.st.orders[o.ID] = *o
	return nil
}

func (r salesOrders) UpdateStatus(_ context.Context, companyID, id, status string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.st.orders[id]
	if !ok || o.CompanyID != companyID {
		return domain.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = at
	r.s.st.orders[id] = o
	return nil
}

func (r salesOrders) GetByID(_ context.Context, companyID, id string) (*entity.SalesOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.st.orders[id]
	if !ok || o.CompanyID != companyID {
		return nil, nil
	}
	o.Items = append([]entity.DocumentItem(nil), o.Items...)
	return &o, nil
}

func (r salesOrders) GetByIDForUpdate(ctx context.Context, companyID, id string) (*entity.SalesOrder, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r salesOrders) GetByQuotation(_ context.Context, companyID, quotationID string) (*entity.SalesOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.st.orders {
		if o.CompanyID == companyID && o.QuotationID != nil && *o.QuotationID == quotationID {
			o := o
			return &o, nil
		}
	}
	return nil, nil
}

func (r salesOrders) List(_ context.Context, companyID string, f repository.DocumentFilter) ([]*entity.SalesOrder, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SalesOrder
	for _, o := range r.s.st.orders {
		if o.CompanyID == companyID && matches(f, o.Status, o.CustomerID, o.CreatedAt) {
			o := o
			o.Items = nil
			out = append(out, &o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })
	return page(out, f.Limit, f.Offset), len(out), nil
}

func (r salesOrders) UpdatePaidAmount(_ context.Context, companyID, id string, paid decimal.Decimal, status string, at time.Time) error {
	if err := r.s.fail("salesorders.paid"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.st.orders[id]
	if !ok || o.CompanyID != companyID {
		return domain.ErrNotFound
	}
	o.PaidAmount = paid
	o.Status = status
	o.UpdatedAt = at
	r.s.st.orders[id] = o
	return nil
}

func (r salesOrders) AddPayment(_ context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	r.s.st.payments = append(r.s.st.payments, *p)
	return nil
}

func (r salesOrders) ListPayments(_ context.Context, companyID, salesOrderID string) ([]*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	refunded := map[string]decimal.Decimal{}
	for _, p := range r.s.st.payments {
		if p.RefundOf != nil {
			refunded[*p.RefundOf] = refunded[*p.RefundOf].Add(p.Amount)
		}
	}
	var out []*entity.Payment
	for i := len(r.s.st.payments) - 1; i >= 0; i-- {
		p := r.s.st.payments[i]
		if p.CompanyID != companyID || p.SalesOrderID != salesOrderID {
			continue
		}
		p.Refunded = refunded[p.ID]
		out = append(out, &p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaidAt.After(out[j].PaidAt) })
	return out, nil
}

type jobOrders struct{ s *Store }

func (r jobOrders) Create(_ context.Context, j *entity.JobOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.st.jobOrders {
		if j.SalesOrderID != "" && existing.SalesOrderID == j.SalesOrderID {
			return fmt.Errorf("%w: la orden de venta ya tiene orden de producción", domain.ErrConflict)
		}
	}
	for i := range j.Items {
		if j.Items[i].ID == "" {
			j.Items[i].ID = uuid.New().String()
		}
		j.Items[i].JobOrderID = j.ID
		j.Items[i].Position = i + 1
	}
	cp := *j
	cp.Items = append([]entity.JobOrderItem(nil), j.Items...)
	r.s.st.jobOrders[j.ID] = cp
	return nil
}

func (r jobOrders) GetByID(_ context.Context, companyID, id string) (*entity.JobOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.st.jobOrders[id]
	if !ok || j.CompanyID != companyID {
		return nil, nil
	}
	j.Items = append([]entity.JobOrderItem(nil), j.Items...)
	return &j, nil
}

func (r jobOrders) GetByIDForUpdate(ctx context.Context, companyID, id string) (*entity.JobOrder, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r jobOrders) List(_ context.Context, companyID string, f repository.DocumentFilter) ([]*entity.JobOrder, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.JobOrder
	for _, j := range r.s.st.jobOrders {
		if j.CompanyID == companyID && matches(f, j.Status, j.CustomerID, j.CreatedAt) {
			j := j
			j.Items = append([]entity.JobOrderItem(nil), j.Items...)
			out = append(out, &j)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Number > out[k].Number })
	return page(out, f.Limit, f.Offset), len(out), nil
}

func (r jobOrders) AddShipment(_ context.Context, sh *entity.Shipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.st.jobOrders[sh.JobOrderID]
	if !ok {
		return domain.ErrNotFound
	}
	items := append([]entity.JobOrderItem(nil), j.Items...)
	for i := range items {
		if items[i].ID != sh.ItemID {
			continue
		}
		next := items[i].Shipped.Add(sh.Quantity)
		if next.GreaterThan(items[i].Quantity) {
			return fmt.Errorf("%w: el despacho supera la cantidad pendiente", domain.ErrInvalidInput)
		}
		items[i].Shipped = next
		j.Items = items
		r.s.st.jobOrders[j.ID] = j
		if sh.ID == "" {
			sh.ID = uuid.New().String()
		}
		r.s.st.shipments = append(r.s.st.shipments, *sh)
		return nil
	}
	return domain.ErrNotFound
}

func (r jobOrders) UpdateStatus(_ context.Context, companyID, id, status string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.st.jobOrders[id]
	if !ok || j.CompanyID != companyID {
		return domain.ErrNotFound
	}
	j.Status = status
	j.UpdatedAt = at
	r.s.st.jobOrders[id] = j
	return nil
}

type sequences struct{ s *Store }

func (r sequences) Next(_ context.Context, companyID, kind string, year int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := fmt.Sprintf("%s/%s/%d", companyID, kind, year)
	r.s.st.sequences[key]++
	return r.s.st.sequences[key], nil
}

// ── analytics ────────────────────────────────────────────────────────────────

type analytics struct{ s *Store }

func (r analytics) CountQuotations(_ context.Context, companyID string, from, to time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, q := range r.s.st.quotations {
		if q.CompanyID == companyID && inRange(q.CreatedAt, from, to) {
			n++
		}
	}
	return n, nil
}

func (r analytics) CountSalesOrders(_ context.Context, companyID string, from, to time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, o := range r.s.st.orders {
		if o.CompanyID == companyID && inRange(o.CreatedAt, from, to) {
			n++
		}
	}
	return n, nil
}

func (r analytics) SumSalesOrderTotals(_ context.Context, companyID string, from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, o := range r.s.st.orders {
		if o.CompanyID == companyID && o.Status != entity.SalesOrderCancelled && inRange(o.CreatedAt, from, to) {
			sum = sum.Add(o.Total)
		}
	}
	return sum, nil
}

func (r analytics) SumPayments(_ context.Context, companyID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	received, refunded := decimal.Zero, decimal.Zero
	for _, p := range r.s.st.payments {
		if p.CompanyID != companyID || !inRange(p.PaidAt, from, to) {
			continue
		}
		if p.Kind == entity.PaymentKindRefund {
			refunded = refunded.Add(p.Amount)
		} else {
			received = received.Add(p.Amount)
		}
	}
	return received, refunded, nil
}

func (r analytics) OpenJobOrders(_ context.Context, companyID string, limit int) ([]*entity.JobOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.JobOrder
	for _, j := range r.s.st.jobOrders {
		if j.CompanyID == companyID && j.Status != entity.JobOrderCompleted {
			j := j
			out = append(out, &j)
		}
	}
	sort.Slice(out, func(i, k int) bool {
		if !out[i].DueDate.Equal(out[k].DueDate) {
			return out[i].DueDate.Before(out[k].DueDate)
		}
		return out[i].Number < out[k].Number
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}
