package tui

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"tickethub-cli/booking"
	"tickethub-cli/catalog"
	"tickethub-cli/contact"
	"tickethub-cli/model"
	"tickethub-cli/store"
)

type testItem struct {
	value string
}

func (t testItem) Title() string       { return t.value }
func (t testItem) Description() string { return "" }
func (t testItem) FilterValue() string { return strings.ToLower(t.value) }

type staticSource struct {
	events []model.Event
	err    error
}

func (s staticSource) Load(context.Context) ([]model.Event, error) {
	return s.events, s.err
}

var testEvents = []model.Event{
	{Id: 1, Title: "Rock Night", Date: "2026-05-01", Time: "20:00", Venue: "Main Hall", Price: 250, Category: "concert"},
	{Id: 2, Title: "Stand-up Special", Date: "2026-05-03", Time: "21:00", Venue: "Club", Price: 40, Category: "comedy"},
}

// flakyRepo fails the next Load once when failNext is set.
type flakyRepo struct {
	*store.Memory[model.Booking]
	failNext bool
}

func (f *flakyRepo) Load() ([]model.Booking, error) {
	if f.failNext {
		f.failNext = false
		return nil, errors.New("read failed")
	}
	return f.Memory.Load()
}

type fixture struct {
	model    appModel
	bookings *store.Memory[model.Booking]
	ledger   *booking.Ledger
	contacts *store.Memory[model.ContactSubmission]
}

func newFixture(t *testing.T, opts ...func(*Options)) *fixture {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	bookings := store.NewMemory[model.Booking]()
	contacts := store.NewMemory[model.ContactSubmission]()
	ledger := booking.NewLedger(bookings, booking.WithLogger(log))
	o := Options{
		Catalog:  staticSource{events: testEvents},
		Ledger:   ledger,
		Contacts: contact.NewBook(contacts, log),
		Handoff:  store.NewHandoff(t.TempDir()),
		Log:      log,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &fixture{
		model:    New(o).(appModel),
		bookings: bookings,
		ledger:   ledger,
		contacts: contacts,
	}
}

func (f *fixture) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := f.model.Update(msg)
	f.model = next.(appModel)
	return cmd
}

// run feeds a command's message back into the model, the way the program loop would.
func (f *fixture) run(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	f.send(t, cmd())
}

func (f *fixture) loadCatalog(t *testing.T) {
	t.Helper()
	f.send(t, f.model.loadCatalogCmd()())
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+b":
		return tea.KeyMsg{Type: tea.KeyCtrlB}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newFilterModel(t *testing.T, items []list.Item) *appModel {
	m := newFixture(t).model
	m.state = stateSelectEvent
	m.eventList = newList("Events")
	m.eventList.SetItems(items)
	return &m
}

func TestHandleFilterInput_AppendsRunes(t *testing.T) {
	m := newFilterModel(t, []list.Item{
		testItem{value: "Rock Night"},
		testItem{value: "Jazz Evening"},
	})

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}) {
		t.Fatal("expected filter input to be handled")
	}
	if got := m.eventList.FilterValue(); got != "r" {
		t.Fatalf("expected filter value to be %q, got %q", "r", got)
	}

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")}) {
		t.Fatal("expected filter input to be handled")
	}
	if got := m.eventList.FilterValue(); got != "ro" {
		t.Fatalf("expected filter value to be %q, got %q", "ro", got)
	}
}

func TestHandleFilterInput_Backspace(t *testing.T) {
	m := newFilterModel(t, []list.Item{
		testItem{value: "Rock Night"},
		testItem{value: "Jazz Evening"},
	})

	_ = m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	_ = m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyBackspace}) {
		t.Fatal("expected backspace to be handled")
	}
	if got := m.eventList.FilterValue(); got != "r" {
		t.Fatalf("expected filter value to be %q, got %q", "r", got)
	}

	_ = m.handleFilterInput(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.eventList.FilterValue(); got != "" {
		t.Fatalf("expected filter to be cleared, got %q", got)
	}
	if m.handleFilterInput(tea.KeyMsg{Type: tea.KeyBackspace}) {
		t.Fatal("expected backspace on empty filter to fall through")
	}
}

func TestHandleFilterInput_Space(t *testing.T) {
	m := newFilterModel(t, []list.Item{testItem{value: "Rock Night"}})

	_ = m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("rock")})
	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeySpace}) {
		t.Fatal("expected space to be handled")
	}
	if got := m.eventList.FilterValue(); got != "rock " {
		t.Fatalf("expected filter value to be %q, got %q", "rock ", got)
	}
}

func TestHandleFilterInput_IgnoredOnSeatMap(t *testing.T) {
	f := newFixture(t)
	f.model.state = stateShowSeatMap

	if f.model.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}) {
		t.Fatal("expected seat map keys to bypass the filter")
	}
}

func TestCatalogLoadShowsEvents(t *testing.T) {
	f := newFixture(t)
	f.loadCatalog(t)

	if f.model.state != stateSelectEvent {
		t.Fatalf("expected event listing, got state %v", f.model.state)
	}
	if got := len(f.model.eventList.Items()); got != len(testEvents) {
		t.Fatalf("expected %d events, got %d", len(testEvents), got)
	}
	if !strings.Contains(f.model.View(), "Bookings: 0") {
		t.Fatal("expected booking counter in header")
	}
}

func TestCatalogFailureLeavesEmptyListing(t *testing.T) {
	f := newFixture(t, func(o *Options) {
		o.Catalog = staticSource{err: errors.Mark(errors.New("connection refused"), catalog.ErrCatalogLoad)}
	})

	cmd := f.send(t, f.model.loadCatalogCmd()())
	f.run(t, cmd)

	if f.model.state != stateError {
		t.Fatalf("expected error state, got %v", f.model.state)
	}
	if !strings.Contains(f.model.View(), "Error loading events") {
		t.Fatalf("expected load error message, got:\n%s", f.model.View())
	}
	if len(f.model.eventList.Items()) != 0 {
		t.Fatal("expected empty listing after failed load")
	}

	f.send(t, key("esc"))
	if f.model.state != stateSelectEvent {
		t.Fatalf("expected to return to listing, got %v", f.model.state)
	}
}

func TestTabCyclesCategory(t *testing.T) {
	f := newFixture(t)
	f.loadCatalog(t)

	f.send(t, key("tab"))
	items := f.model.eventList.Items()
	if len(items) != 1 {
		t.Fatalf("expected one event in first category, got %d", len(items))
	}
	if got := items[0].(eventItem).event.Category; got != "comedy" {
		t.Fatalf("expected comedy events first, got %q", got)
	}
}

func TestBookingFlowCommitsSelectedSeats(t *testing.T) {
	f := newFixture(t)
	f.loadCatalog(t)

	f.send(t, key("enter"))
	if f.model.state != stateShowSeatMap {
		t.Fatalf("expected seat map, got %v", f.model.state)
	}
	if f.model.event.Id != 1 {
		t.Fatalf("expected event 1, got %d", f.model.event.Id)
	}

	f.send(t, key("space"))
	f.send(t, key("right"))
	f.send(t, key("x"))
	if got := f.model.selection.Seats(); len(got) != 2 || got[0] != "A1" || got[1] != "A2" {
		t.Fatalf("expected A1, A2 selected, got %v", got)
	}
	if !strings.Contains(f.model.View(), "$500") {
		t.Fatal("expected running total in summary")
	}

	f.send(t, key("enter"))
	if f.model.state != stateConfirmed {
		t.Fatalf("expected confirmation, got %v (notice %q)", f.model.state, f.model.notice)
	}
	if f.model.confirmed.TotalAmount != 500 || f.model.confirmed.Status != model.BookingConfirmed {
		t.Fatalf("unexpected booking %+v", f.model.confirmed)
	}
	if f.ledger.Count() != 1 || f.model.bookingCount != 1 {
		t.Fatalf("expected one stored booking, got %d", f.ledger.Count())
	}

	f.send(t, key("enter"))
	if f.model.state != stateMyBookings {
		t.Fatalf("expected my bookings, got %v", f.model.state)
	}
	if len(f.model.bookingList.Items()) != 1 {
		t.Fatal("expected the new booking in the list")
	}
}

func TestSeatMapMarksOccupiedSeats(t *testing.T) {
	f := newFixture(t)
	if _, err := f.ledger.Commit(testEvents[0], []model.SeatID{"A1"}); err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	f.loadCatalog(t)
	f.send(t, key("enter"))

	f.send(t, key("space"))
	if f.model.selection.Count() != 0 {
		t.Fatal("expected occupied seat to stay unselected")
	}
	if !strings.Contains(f.model.notice, "already booked") {
		t.Fatalf("expected occupied notice, got %q", f.model.notice)
	}
}

func TestSeatMapCapacityWarning(t *testing.T) {
	f := newFixture(t)
	f.loadCatalog(t)
	f.send(t, key("enter"))

	for i := 0; i < booking.MaxSeatsPerBooking; i++ {
		f.send(t, key("space"))
		f.send(t, key("right"))
	}
	f.send(t, key("space"))

	if f.model.selection.Count() != booking.MaxSeatsPerBooking {
		t.Fatalf("expected %d seats, got %d", booking.MaxSeatsPerBooking, f.model.selection.Count())
	}
	if !strings.Contains(f.model.notice, "maximum 8 seats") {
		t.Fatalf("expected capacity notice, got %q", f.model.notice)
	}
}

func TestConfirmWithoutSeatsWarns(t *testing.T) {
	f := newFixture(t)
	f.loadCatalog(t)
	f.send(t, key("enter"))

	f.send(t, key("enter"))

	if f.model.state != stateShowSeatMap {
		t.Fatalf("expected to stay on seat map, got %v", f.model.state)
	}
	if f.bookings.Saves() != 0 {
		t.Fatal("expected nothing to be stored")
	}
}

func TestConflictDropsTakenSeats(t *testing.T) {
	f := newFixture(t)
	f.loadCatalog(t)
	f.send(t, key("enter"))
	f.send(t, key("space"))
	f.send(t, key("right"))
	f.send(t, key("space"))

	if _, err := f.ledger.Commit(testEvents[0], []model.SeatID{"A1"}); err != nil {
		t.Fatalf("concurrent booking: %v", err)
	}
	f.send(t, key("enter"))

	if f.model.state != stateShowSeatMap {
		t.Fatalf("expected to stay on seat map, got %v", f.model.state)
	}
	if got := f.model.selection.Seats(); len(got) != 1 || got[0] != "A2" {
		t.Fatalf("expected only A2 to remain selected, got %v", got)
	}
	if !f.model.selection.IsOccupied("A1") {
		t.Fatal("expected A1 to be shown as booked")
	}
	if !strings.Contains(f.model.notice, "A1") {
		t.Fatalf("expected conflict notice naming A1, got %q", f.model.notice)
	}
}

func TestEscClearsSelection(t *testing.T) {
	f := newFixture(t)
	f.loadCatalog(t)
	f.send(t, key("enter"))
	f.send(t, key("space"))

	f.send(t, key("esc"))

	if f.model.state != stateSelectEvent {
		t.Fatalf("expected listing, got %v", f.model.state)
	}
	if f.model.selection != nil {
		t.Fatal("expected selection to be dropped")
	}
}

func TestStartEventOpensSeatMap(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.StartEventID = 2 })
	f.loadCatalog(t)

	if f.model.state != stateShowSeatMap || f.model.event.Id != 2 {
		t.Fatalf("expected seat map for event 2, got state %v event %d", f.model.state, f.model.event.Id)
	}
}

func TestUnknownStartEventStaysOnListing(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.StartEventID = 99 })
	f.loadCatalog(t)

	if f.model.state != stateSelectEvent {
		t.Fatalf("expected listing, got %v", f.model.state)
	}
	if !strings.Contains(f.model.notice, "99") {
		t.Fatalf("expected notice about event 99, got %q", f.model.notice)
	}
}

func TestDetailsWithoutHandoffReturnsToListing(t *testing.T) {
	f := newFixture(t)
	f.loadCatalog(t)

	f.model = f.model.enterEventDetails()

	if f.model.state != stateSelectEvent {
		t.Fatalf("expected listing, got %v", f.model.state)
	}
}

func TestContactsDeleteAndClear(t *testing.T) {
	f := newFixture(t)
	_ = f.contacts.Save([]model.ContactSubmission{
		{Name: "Ana", Email: "ana@example.com"},
		{Name: "Bo", Email: "bo@example.com"},
		{Name: "Cy", Email: "cy@example.com"},
	})
	f.loadCatalog(t)

	f.send(t, key("ctrl+o"))
	if f.model.state != stateContacts || len(f.model.contactList.Items()) != 3 {
		t.Fatalf("expected three submissions, got state %v", f.model.state)
	}

	f.send(t, key("d"))
	remaining, _ := f.contacts.Load()
	if len(remaining) != 2 || remaining[0].Name != "Bo" {
		t.Fatalf("expected first submission removed, got %+v", remaining)
	}

	f.send(t, key("ctrl+x"))
	if remaining, _ := f.contacts.Load(); len(remaining) != 2 {
		t.Fatal("expected first ctrl+x to ask for confirmation")
	}
	f.send(t, key("ctrl+x"))
	if remaining, _ := f.contacts.Load(); len(remaining) != 0 {
		t.Fatalf("expected all submissions cleared, got %+v", remaining)
	}
}

func TestEmptyBookingsView(t *testing.T) {
	f := newFixture(t)
	f.loadCatalog(t)

	f.send(t, key("ctrl+b"))

	if !strings.Contains(f.model.View(), "No Bookings Found") {
		t.Fatal("expected empty bookings message")
	}
}

func TestPadCell(t *testing.T) {
	if got := padCell("7", 3); got != " 7 " {
		t.Fatalf("expected centered cell, got %q", got)
	}
	if got := padCell("", 2); got != "  " {
		t.Fatalf("expected blank cell, got %q", got)
	}
}

func TestOpenBookingsKeepsCounterWhenListFails(t *testing.T) {
	repo := &flakyRepo{Memory: store.NewMemory(
		model.Booking{Id: "BK1", EventId: 1, Seats: []model.SeatID{"A1"}},
		model.Booking{Id: "BK2", EventId: 1, Seats: []model.SeatID{"A2"}},
	)}
	log := logrus.New()
	log.SetOutput(io.Discard)
	ledger := booking.NewLedger(repo, booking.WithLogger(log))
	f := newFixture(t, func(o *Options) { o.Ledger = ledger })
	f.loadCatalog(t)

	repo.failNext = true
	f.send(t, key("ctrl+b"))

	if f.model.state != stateMyBookings {
		t.Fatalf("expected my bookings, got %v", f.model.state)
	}
	if f.model.bookingCount != 2 {
		t.Fatalf("expected counter to stay at 2, got %d", f.model.bookingCount)
	}
}
