package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"tickethub-cli/booking"
	"tickethub-cli/catalog"
	"tickethub-cli/contact"
	"tickethub-cli/model"
)

type appState int

const (
	stateLoadingCatalog appState = iota
	stateSelectEvent
	stateShowSeatMap
	stateConfirmed
	stateMyBookings
	stateContacts
	stateError
)

// EventHandoff carries the chosen event from the listing to the seat map.
type EventHandoff interface {
	Put(event model.Event) error
	Take() (model.Event, bool, error)
}

type Options struct {
	Catalog  catalog.Source
	Ledger   *booking.Ledger
	Contacts *contact.Book
	Handoff  EventHandoff
	Log      logrus.FieldLogger

	// StartEventID opens that event's seat map once the catalog is loaded.
	StartEventID int
}

type appModel struct {
	source   catalog.Source
	ledger   *booking.Ledger
	contacts *contact.Book
	handoff  EventHandoff
	log      logrus.FieldLogger

	state     appState
	lastState appState
	err       error

	width  int
	height int

	events        []model.Event
	categories    []string
	categoryIndex int
	startEventID  int

	eventList   list.Model
	bookingList list.Model
	contactList list.Model

	event           model.Event
	selection       *booking.Selection
	cursorRow       int
	cursorCol       int
	showSeatNumbers bool

	confirmed    model.Booking
	bookingCount int

	notice       string
	noticeWarn   bool
	confirmClear bool

	spinner spinner.Model
}

type errMsg struct {
	err         error
	returnState appState
}

type catalogMsg struct {
	events []model.Event
	err    error
}

func New(opts Options) tea.Model {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	m := appModel{
		source:       opts.Catalog,
		ledger:       opts.Ledger,
		contacts:     opts.Contacts,
		handoff:      opts.Handoff,
		log:          log,
		state:        stateLoadingCatalog,
		startEventID: opts.StartEventID,
		categories:   []string{catalog.AllCategories},
		cursorRow:    1,
		cursorCol:    1,
	}

	m.eventList = newList("Events")
	m.bookingList = newList("My Bookings")
	m.contactList = newList("Contact Submissions")
	m.contactList.SetFilteringEnabled(false)

	m.showSeatNumbers = true
	m.bookingCount = m.ledger.Count()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loadCatalogCmd(), m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if m.handleFilterInput(msg) {
			return m, nil
		}
		var (
			cmd     tea.Cmd
			handled bool
		)
		m, cmd, handled = m.handleKey(msg)
		if handled {
			return m, cmd
		}
		// fallthrough to component update
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.state == stateLoadingCatalog {
			return m, cmd
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		m.lastState = msg.returnState
		m.state = stateError
		return m, nil

	case catalogMsg:
		if msg.err != nil {
			m.events = nil
			m.eventList.SetItems(nil)
			return m, errCmd(msg.err, stateSelectEvent)
		}
		m.events = msg.events
		m.categories = catalog.Categories(msg.events)
		m.categoryIndex = 0
		m.refreshEventList()
		m.state = stateSelectEvent
		if m.startEventID != 0 {
			id := m.startEventID
			m.startEventID = 0
			event, ok := catalog.Find(m.events, id)
			if !ok {
				m.setNotice(fmt.Sprintf("Event %d is not in the catalog.", id), true)
				return m, nil
			}
			return m.openEvent(event), nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateSelectEvent:
		m.eventList, cmd = m.eventList.Update(msg)
	case stateMyBookings:
		m.bookingList, cmd = m.bookingList.Update(msg)
	case stateContacts:
		m.contactList, cmd = m.contactList.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	body := ""
	switch m.state {
	case stateLoadingCatalog:
		body = m.loadingView()
	case stateSelectEvent:
		if len(m.events) == 0 {
			body = hint("No events to show.")
		} else {
			body = m.eventList.View()
		}
	case stateShowSeatMap:
		body = m.seatMapView()
	case stateConfirmed:
		body = m.confirmedView()
	case stateMyBookings:
		if len(m.bookingList.Items()) == 0 {
			body = emptyBookingsView()
		} else {
			body = m.bookingList.View()
		}
	case stateContacts:
		if len(m.contactList.Items()) == 0 {
			body = hint("No submissions yet.")
		} else {
			body = m.contactList.View()
		}
	case stateError:
		body = m.errorView()
	}
	if notice := m.noticeView(); notice != "" {
		body = notice + "\n\n" + body
	}
	return header + "\n\n" + body
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("TicketHub")
	sub := []string{fmt.Sprintf("Bookings: %d", m.bookingCount)}
	if m.state == stateSelectEvent && len(m.categories) > 1 {
		sub = append(sub, fmt.Sprintf("Category: %s", m.categories[m.categoryIndex]))
	}
	if m.state == stateShowSeatMap || m.state == stateConfirmed {
		sub = append(sub, fmt.Sprintf("Event: %s", m.event.Title))
		if m.event.Venue != "" {
			sub = append(sub, m.event.Venue)
		}
	}
	meta := "\n" + lipgloss.NewStyle().Faint(true).Render(strings.Join(sub, " • "))

	hints := "ctrl+c quit"
	switch m.state {
	case stateSelectEvent:
		hints = "ctrl+c quit • type to filter • enter book • tab category • ctrl+b my bookings • ctrl+o contacts"
	case stateShowSeatMap:
		hints = "ctrl+c quit • esc back • arrows/hjkl move • space toggle seat • enter confirm • n toggle numbers"
	case stateConfirmed:
		hints = "ctrl+c quit • enter my bookings • esc book more tickets"
	case stateMyBookings:
		hints = "ctrl+c quit • esc back • type to filter"
	case stateContacts:
		hints = "ctrl+c quit • esc back • d delete • ctrl+x clear all"
	case stateError:
		hints = "ctrl+c quit • esc back"
	}
	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	return title + meta + filterLine + "\n" + hint(hints)
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	key := msg.String()
	if key == "ctrl+c" || (key == "q" && m.activeList() == nil) {
		return m, tea.Quit, true
	}
	if key != "ctrl+x" {
		m.confirmClear = false
	}

	if key == "esc" {
		if listPtr := m.activeList(); listPtr != nil && (listPtr.SettingFilter() || listPtr.IsFiltered()) {
			listPtr.ResetFilter()
			return m, nil, true
		}
		return m.goBack(), nil, true
	}

	switch m.state {
	case stateSelectEvent:
		switch key {
		case "enter":
			item, ok := m.eventList.SelectedItem().(eventItem)
			if !ok {
				return m, nil, true
			}
			return m.openEvent(item.event), nil, true
		case "tab":
			m.cycleCategory()
			return m, nil, true
		case "ctrl+b":
			return m.openBookings(), nil, true
		case "ctrl+o":
			return m.openContacts(), nil, true
		}
	case stateShowSeatMap:
		return m.handleSeatMapKey(key)
	case stateConfirmed:
		if key == "enter" {
			return m.openBookings(), nil, true
		}
	case stateContacts:
		switch key {
		case "d", "delete":
			return m.deleteSelectedContact()
		case "ctrl+x":
			return m.clearContacts()
		}
	}
	return m, nil, false
}

func (m appModel) goBack() appModel {
	m.clearNotice()
	switch m.state {
	case stateShowSeatMap:
		m.leaveEvent()
		m.state = stateSelectEvent
	case stateConfirmed, stateMyBookings, stateContacts:
		m.state = stateSelectEvent
	case stateError:
		m.state = m.lastState
		m.err = nil
	}
	return m
}

// openEvent hands the event off and enters its seat map, the same path a
// `book --event` start takes.
func (m appModel) openEvent(event model.Event) appModel {
	if err := m.handoff.Put(event); err != nil {
		m.log.WithError(err).Warn("could not store selected event")
	}
	return m.enterEventDetails()
}

func (m appModel) enterEventDetails() appModel {
	m.clearNotice()
	event, ok, err := m.handoff.Take()
	if err != nil {
		m.log.WithError(err).Warn("could not read selected event")
	}
	if !ok {
		m.state = stateSelectEvent
		m.setNotice("Pick an event to see its seats.", true)
		return m
	}
	m.event = event
	m.selection = booking.NewSelection(event.Id, m.ledger.Availability().Occupied(event.Id))
	m.cursorRow, m.cursorCol = 1, 1
	m.state = stateShowSeatMap
	return m
}

func (m *appModel) leaveEvent() {
	if m.selection != nil {
		m.selection.Clear()
	}
	m.selection = nil
	m.event = model.Event{}
}

func (m appModel) openBookings() appModel {
	m.clearNotice()
	recent, err := m.ledger.Recent()
	if err != nil {
		m.log.WithError(err).Warn("could not load bookings")
	}
	m.bookingList.ResetFilter()
	m.bookingList.SetItems(buildBookingItems(recent))
	m.bookingCount = m.ledger.Count()
	m.state = stateMyBookings
	return m
}

func (m appModel) openContacts() appModel {
	m.clearNotice()
	m.refreshContacts()
	m.state = stateContacts
	return m
}

func (m *appModel) refreshContacts() {
	subs, err := m.contacts.List()
	if err != nil {
		m.log.WithError(err).Warn("could not load contact submissions")
	}
	m.contactList.SetItems(buildContactItems(subs))
}

func (m appModel) deleteSelectedContact() (appModel, tea.Cmd, bool) {
	if len(m.contactList.Items()) == 0 {
		return m, nil, true
	}
	index := m.contactList.Index()
	removed, err := m.contacts.DeleteAt(index)
	if err != nil {
		return m, errCmd(err, stateContacts), true
	}
	m.refreshContacts()
	if count := len(m.contactList.Items()); count > 0 {
		if index >= count {
			index = count - 1
		}
		m.contactList.Select(index)
	}
	if removed {
		m.setNotice("Deleted", false)
	}
	return m, nil, true
}

func (m appModel) clearContacts() (appModel, tea.Cmd, bool) {
	if !m.confirmClear {
		m.confirmClear = true
		m.setNotice("Clear all submissions? This cannot be undone. Press ctrl+x again to confirm.", true)
		return m, nil, true
	}
	m.confirmClear = false
	if err := m.contacts.ClearAll(); err != nil {
		return m, errCmd(err, stateContacts), true
	}
	m.refreshContacts()
	m.setNotice("All submissions removed.", false)
	return m, nil, true
}

func (m *appModel) cycleCategory() {
	if len(m.categories) == 0 {
		return
	}
	m.categoryIndex = (m.categoryIndex + 1) % len(m.categories)
	m.refreshEventList()
}

func (m *appModel) refreshEventList() {
	category := catalog.AllCategories
	if m.categoryIndex < len(m.categories) {
		category = m.categories[m.categoryIndex]
	}
	m.eventList.SetItems(buildEventItems(catalog.ByCategory(m.events, category)))
	m.eventList.Select(0)
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	if !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		m.appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		m.appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		m.popFilter(listPtr)
		return true
	default:
		return false
	}
}

func (m *appModel) appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	listPtr.SetFilterText(listPtr.FilterValue() + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := trimLastRune(listPtr.FilterValue())
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateSelectEvent:
		return &m.eventList
	case stateMyBookings:
		return &m.bookingList
	case stateContacts:
		return &m.contactList
	default:
		return nil
	}
}

func (m *appModel) setNotice(text string, warn bool) {
	m.notice = text
	m.noticeWarn = warn
}

func (m *appModel) clearNotice() {
	m.notice = ""
	m.noticeWarn = false
}

func (m appModel) noticeView() string {
	if m.notice == "" {
		return ""
	}
	color := lipgloss.Color("2")
	if m.noticeWarn {
		color = lipgloss.Color("214")
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(m.notice)
}

func (m appModel) loadingView() string {
	return fmt.Sprintf("%s Loading events\n\n%s", m.spinner.View(), hint("Reading catalog..."))
}

func (m appModel) errorView() string {
	text := "Something went wrong."
	if errors.Is(m.err, catalog.ErrCatalogLoad) {
		text = "Error loading events. Please try again later."
	}
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	detail := ""
	if m.err != nil {
		detail = "\n" + hint(m.err.Error())
	}
	return red.Render(text) + detail + "\n\n" + hint("Press esc to go back or ctrl+c to quit.")
}

func emptyBookingsView() string {
	title := lipgloss.NewStyle().Bold(true).Render("No Bookings Found")
	return title + "\n" + hint("You haven't made any bookings yet. Press esc to browse events.")
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 8
	if h < 6 {
		h = 6
	}
	m.eventList.SetSize(m.width, h)
	m.bookingList.SetSize(m.width, h)
	m.contactList.SetSize(m.width, h)
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func errCmd(err error, returnState appState) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err, returnState: returnState}
	}
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

func (m appModel) loadCatalogCmd() tea.Cmd {
	source := m.source
	log := m.log
	return func() tea.Msg {
		events, err := source.Load(context.Background())
		if err != nil {
			log.WithError(err).Error("catalog load failed")
			return catalogMsg{err: err}
		}
		log.WithField("events", len(events)).Info("catalog loaded")
		return catalogMsg{events: events}
	}
}
