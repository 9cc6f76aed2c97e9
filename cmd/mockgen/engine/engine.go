package engine

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"evplan/internal/datastore"
	"evplan/internal/domain"
	"evplan/internal/stats"
)

type GeneratorConfig struct {
	Scenario string // "balanced", "tight" or "overbooked"
	Items    int
	Events   int
	Seed     uint64
	Now      time.Time
}

type catalogEntry struct {
	name     string
	category domain.Category
	price    string
}

var catalog = []catalogEntry{
	{"Chiavari Chair", domain.Furniture, "4.50"},
	{"Banquet Table", domain.Furniture, "12.00"},
	{"Cocktail Table", domain.Furniture, "9.00"},
	{"Lounge Sofa", domain.Furniture, "85.00"},
	{"Line Array Speaker", domain.AudioVisual, "120.00"},
	{"Wireless Microphone", domain.AudioVisual, "35.00"},
	{"LED Wall Panel", domain.AudioVisual, "210.00"},
	{"Projector 10k", domain.AudioVisual, "150.00"},
	{"Uplight", domain.Lighting, "18.00"},
	{"Moving Head", domain.Lighting, "65.00"},
	{"Fairy Light String", domain.Lighting, "6.00"},
	{"Floral Arch", domain.Decor, "140.00"},
	{"Centerpiece Vase", domain.Decor, "7.50"},
	{"Table Linen", domain.Tableware, "3.20"},
	{"Charger Plate", domain.Tableware, "1.80"},
	{"Glassware Rack", domain.Tableware, "22.00"},
	{"Stage Deck 2x1", domain.Staging, "45.00"},
	{"Truss Segment", domain.Staging, "30.00"},
}

var vendors = []string{"Oak & Co", "Harbor Rentals", "Brightside AV", "Lumen Works", "Petal House"}

var typeCodes = map[domain.EventType]string{
	domain.Wedding:    "WED",
	domain.Conference: "CON",
	domain.Meeting:    "MTG",
	domain.Incentive:  "INC",
	domain.Exhibition: "EXH",
}

var eventNames = map[domain.EventType][]string{
	domain.Wedding:    {"Garden Wedding", "Harbor Wedding", "Vineyard Reception"},
	domain.Conference: {"Tech Summit", "Sales Kickoff", "Product Forum"},
	domain.Meeting:    {"Board Offsite", "Quarterly Review", "Strategy Day"},
	domain.Incentive:  {"Top Performer Trip", "Partner Retreat"},
	domain.Exhibition: {"Design Expo", "Trade Fair", "Art Showcase"},
}

var clients = []string{"Rivera Family", "Acme Corp", "Northwind", "Globex", "Chen & Patel", "Initech", "Lindqvist"}

// milestone plan: name, share of revenue, days before the event it falls due
var milestones = []struct {
	name   string
	share  string
	offset int
}{
	{"Deposit", "0.30", -60},
	{"Interim", "0.40", -21},
	{"Final", "0.30", -3},
}

type generator struct {
	cfg    GeneratorConfig
	rng    *rand.Rand
	source *rand.ChaCha8
}

// Generate builds a consistent dataset: events spread from three months back to six months
// ahead, past events archived, upcoming ones active, allocations against non-cancelled events
// and three payment milestones per event. The same seed yields the same dataset.
func Generate(cfg GeneratorConfig) datastore.Snapshot {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	if cfg.Items <= 0 {
		cfg.Items = len(catalog)
	}
	if cfg.Events <= 0 {
		cfg.Events = 24
	}

	var seed [32]byte
	binary.LittleEndian.PutUint64(seed[:], cfg.Seed)
	source := rand.NewChaCha8(seed)
	g := &generator{cfg: cfg, rng: rand.New(source), source: source}

	var snap datastore.Snapshot
	snap.Items = g.items()

	counters := make(map[domain.EventType]int)
	for i := 0; i < cfg.Events; i++ {
		e := g.event(counters)
		snap.Events = append(snap.Events, e)

		status := g.status(e.Date)
		revenue := decimal.NewFromInt(int64(e.TotalSlots)).Mul(decimal.NewFromInt(int64(80 + g.rng.IntN(170))))
		client := clients[g.rng.IntN(len(clients))]
		code := fmt.Sprintf("%s-%03d", typeCodes[e.Type], counters[e.Type])

		if status.Archived() {
			a := domain.ArchivedEvent{Event: e, Code: code, ClientName: client, Status: status, Attendees: e.UsedSlots, Revenue: revenue}
			if status == domain.Completed {
				a.Rating = float64(30+g.rng.IntN(21)) / 10
			}
			snap.ArchivedEvents = append(snap.ArchivedEvents, a)
		} else {
			snap.ActiveEvents = append(snap.ActiveEvents, domain.ActiveEvent{
				Event: e, Code: code, ClientName: client, Status: status,
				Attendees: e.UsedSlots, Progress: g.progress(e.Date), Revenue: revenue,
				Milestones: []string{"Venue booked", "Catering confirmed", "Run sheet shared"}[:1+g.rng.IntN(3)],
			})
		}

		if status != domain.Cancelled {
			g.allocate(snap.Items, e.ID)
		}
		snap.Payments = append(snap.Payments, g.payments(e, client, revenue, status)...)
	}
	return snap
}

func (g *generator) id() string {
	id, err := uuid.NewRandomFromReader(g.source)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (g *generator) items() []domain.InventoryItem {
	items := make([]domain.InventoryItem, 0, g.cfg.Items)
	for i := 0; i < g.cfg.Items; i++ {
		entry := catalog[i%len(catalog)]
		name := entry.name
		if i >= len(catalog) {
			name = fmt.Sprintf("%s (set %d)", entry.name, i/len(catalog)+1)
		}
		items = append(items, domain.InventoryItem{
			ID:            g.id(),
			Name:          name,
			Category:      entry.category,
			Vendor:        vendors[g.rng.IntN(len(vendors))],
			TotalQuantity: 10 + g.rng.IntN(290),
			UnitPrice:     decimal.RequireFromString(entry.price),
		})
	}
	return items
}

func (g *generator) event(counters map[domain.EventType]int) domain.Event {
	types := domain.AllEventTypes()
	t := types[g.rng.IntN(len(types))]
	counters[t]++
	names := eventNames[t]

	date := stats.SnapToStart(g.cfg.Now, stats.BucketDay).AddDate(0, 0, -90+g.rng.IntN(270))
	slots := 20 + g.rng.IntN(480)
	return domain.Event{
		ID:         g.id(),
		Name:       names[g.rng.IntN(len(names))],
		Type:       t,
		Date:       date,
		Location:   []string{"Harbor Hall", "Grand Ballroom", "Rooftop Terrace", "Convention Center"}[g.rng.IntN(4)],
		TotalSlots: slots,
		UsedSlots:  g.rng.IntN(slots + 1),
	}
}

func (g *generator) status(date time.Time) domain.EventStatus {
	days := int(date.Sub(g.cfg.Now).Hours() / 24)
	switch {
	case days < -1:
		if g.rng.IntN(10) == 0 {
			return domain.Cancelled
		}
		return domain.Completed
	case days <= 1:
		return domain.InProgress
	case days <= 45:
		return domain.Confirmed
	default:
		return domain.Planning
	}
}

func (g *generator) progress(date time.Time) int {
	days := int(date.Sub(g.cfg.Now).Hours() / 24)
	p := 100 - days/2
	return min(max(p, 5), 100)
}

// allocate commits a share of a few random items to the event. Only the overbooked scenario
// is allowed to exceed an item's capacity.
func (g *generator) allocate(items []domain.InventoryItem, eventID string) {
	maxShare := 0.25
	switch g.cfg.Scenario {
	case "tight":
		maxShare = 0.45
	case "overbooked":
		maxShare = 0.6
	}

	picks := 2 + g.rng.IntN(4)
	for n := 0; n < picks; n++ {
		i := g.rng.IntN(len(items))
		qty := 1 + int(float64(items[i].TotalQuantity)*maxShare*g.rng.Float64())

		if g.cfg.Scenario == "overbooked" {
			items[i].Allocations = append(items[i].Allocations, domain.Allocation{EventID: eventID, ItemID: items[i].ID, Quantity: qty})
			continue
		}
		qty = min(qty, stats.Available(items[i]))
		if qty <= 0 {
			continue
		}
		if updated, err := stats.Allocate(items[i], eventID, qty); err == nil {
			items[i] = updated
		}
	}
}

func (g *generator) payments(e domain.Event, client string, revenue decimal.Decimal, status domain.EventStatus) []domain.PaymentMilestone {
	if status == domain.Cancelled {
		// only the deposit survives a cancellation
		revenue = revenue.Mul(decimal.RequireFromString("0.30"))
	}

	var out []domain.PaymentMilestone
	for i, m := range milestones {
		if status == domain.Cancelled && i > 0 {
			break
		}
		amount := revenue.Mul(decimal.RequireFromString(m.share)).Round(2)
		if status == domain.Cancelled {
			amount = revenue.Round(2)
		}
		due := e.Date.AddDate(0, 0, m.offset)

		p := domain.PaymentMilestone{
			ID:         g.id(),
			EventID:    e.ID,
			EventName:  e.Name,
			EventType:  e.Type,
			ClientName: client,
			Milestone:  m.name,
			Amount:     amount,
			DueDate:    due,
			InvoiceRef: "INV-" + g.id()[:8],
		}

		daysLeft := int(due.Sub(g.cfg.Now).Hours() / 24)
		switch {
		case daysLeft < 0 && g.rng.IntN(8) == 0:
			p.Status = domain.Overdue
		case daysLeft < 0:
			p.Status = domain.Released
			paid := due.AddDate(0, 0, -g.rng.IntN(5))
			p.PaidDate = &paid
		case daysLeft <= 14:
			p.Status = domain.Eligible
		default:
			p.Status = domain.Pending
		}
		out = append(out, p)
	}
	return out
}

// Save writes the dataset as JSONL fixtures readable by datastore.Provider.
func Save(outDir string, snap datastore.Snapshot) error {
	store := datastore.NewStore()
	store.Replace(snap)
	return store.Save(outDir)
}
