package service

import (
	"sort"
	"sync"
	"time"

	"go-pos-cart/internal/model"

	"github.com/shopspring/decimal"
)

type PaymentMethodSales struct {
	Method       model.PaymentMethod `json:"payment_method"`
	Transactions int                 `json:"transactions"`
	Total        decimal.Decimal     `json:"total"`
}

type ItemSales struct {
	ItemID   string          `json:"item_id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type DashboardStats struct {
	Transactions    int                  `json:"transactions"`
	ItemsSold       int                  `json:"items_sold"`
	Subtotal        decimal.Decimal      `json:"subtotal"`
	Tax             decimal.Decimal      `json:"tax"`
	Revenue         decimal.Decimal      `json:"revenue"`
	AverageTicket   decimal.Decimal      `json:"average_ticket"`
	ByPaymentMethod []PaymentMethodSales `json:"by_payment_method"`
	TopItems        []ItemSales          `json:"top_items"`
	FirstSale       *time.Time           `json:"first_sale,omitempty"`
	LastSale        *time.Time           `json:"last_sale,omitempty"`
}

// DashboardService keeps the sales of the current session in memory.
type DashboardService interface {
	Record(tx *model.Transaction)
	GetDashboardStats(topItems int) DashboardStats
	GetTransactions() []*model.Transaction
	GetTransactionByID(id string) (*model.Transaction, bool)
}

type dashboardService struct {
	mu   sync.RWMutex
	txs  []*model.Transaction
	byID map[string]*model.Transaction
}

func NewDashboardService() DashboardService {
	return &dashboardService{byID: make(map[string]*model.Transaction)}
}

// Record stores tx once; recording the same transaction id again is ignored.
func (s *dashboardService) Record(tx *model.Transaction) {
	if tx == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[tx.ID()]; ok {
		return
	}
	s.txs = append(s.txs, tx)
	s.byID[tx.ID()] = tx
}

func (s *dashboardService) GetTransactions() []*model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Transaction, len(s.txs))
	copy(out, s.txs)
	return out
}

func (s *dashboardService) GetTransactionByID(id string) (*model.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tx, ok := s.byID[id]
	return tx, ok
}

// GetDashboardStats aggregates recorded sales. topItems <= 0 returns every item.
func (s *dashboardService) GetDashboardStats(topItems int) DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := DashboardStats{
		Subtotal:      decimal.Zero,
		Tax:           decimal.Zero,
		Revenue:       decimal.Zero,
		AverageTicket: decimal.Zero,
	}
	methods := make(map[model.PaymentMethod]*PaymentMethodSales)
	items := make(map[string]*ItemSales)

	for _, tx := range s.txs {
		stats.Transactions++
		stats.ItemsSold += tx.ItemCount()
		stats.Subtotal = stats.Subtotal.Add(tx.Subtotal())
		stats.Tax = stats.Tax.Add(tx.Tax())
		stats.Revenue = stats.Revenue.Add(tx.Total())
		at := tx.Timestamp()
		if stats.FirstSale == nil || at.Before(*stats.FirstSale) {
			stats.FirstSale = &at
		}
		if stats.LastSale == nil || at.After(*stats.LastSale) {
			last := at
			stats.LastSale = &last
		}

		m, ok := methods[tx.PaymentMethod()]
		if !ok {
			m = &PaymentMethodSales{Method: tx.PaymentMethod(), Total: decimal.Zero}
			methods[tx.PaymentMethod()] = m
		}
		m.Transactions++
		m.Total = m.Total.Add(tx.Total())

		for _, l := range tx.Lines() {
			it, ok := items[l.ItemID]
			if !ok {
				it = &ItemSales{ItemID: l.ItemID, Name: l.Name, Revenue: decimal.Zero}
				items[l.ItemID] = it
			}
			it.Quantity += l.Quantity
			it.Revenue = it.Revenue.Add(l.LineTotal())
		}
	}

	if stats.Transactions > 0 {
		stats.AverageTicket = stats.Revenue.Div(decimal.NewFromInt(int64(stats.Transactions))).Round(2)
	}

	stats.ByPaymentMethod = make([]PaymentMethodSales, 0, len(methods))
	for _, pm := range model.PaymentMethods {
		if m, ok := methods[pm]; ok {
			stats.ByPaymentMethod = append(stats.ByPaymentMethod, *m)
		}
	}

	stats.TopItems = make([]ItemSales, 0, len(items))
	for _, it := range items {
		stats.TopItems = append(stats.TopItems, *it)
	}
	sort.Slice(stats.TopItems, func(i, j int) bool {
		a, b := stats.TopItems[i], stats.TopItems[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ItemID < b.ItemID
	})
	if topItems > 0 && len(stats.TopItems) > topItems {
		stats.TopItems = stats.TopItems[:topItems]
	}
	return stats
}
