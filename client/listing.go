package client

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// PageSize mirrors the server's listing page size; a shorter page marks
// the end of the results.
const PageSize = 20

const debounceDelay = 300 * time.Millisecond

// ListingSession is the paginated, cached product listing behind the
// menu view. Filter edits are debounced; page advances are suppressed
// while a fetch is in flight or once the last page was seen; a failed
// page is reported and never merged.
type ListingSession struct {
	api *Client

	// OnUpdate receives the full list after every applied page.
	// OnError receives fetch failures (the transient toast).
	OnUpdate func([]Product)
	OnError  func(error)

	mu       sync.Mutex
	hotelID  uint
	category string
	search   string
	page     int // last applied page
	items    []Product
	hasMore  bool
	inFlight bool
	gen      uint64 // bumped per refresh; responses from older filters are discarded
	cache    map[string][]Product
	timer    *time.Timer
	delay    time.Duration
	closed   bool
}

func NewListingSession(api *Client, hotelID uint) *ListingSession {
	return &ListingSession{
		api:     api,
		hotelID: hotelID,
		hasMore: true,
		cache:   make(map[string][]Product),
		delay:   debounceDelay,
	}
}

// SetFilters records new filter values and schedules a debounced
// refresh: typing three characters within the window issues one
// request, not three.
func (s *ListingSession) SetFilters(category, search string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.category, s.search = category, search
	s.schedule()
}

func (s *ListingSession) SetHotel(hotelID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hotelID = hotelID
	s.schedule()
}

func (s *ListingSession) schedule() {
	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.refresh)
}

func (s *ListingSession) refresh() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.gen++
	s.page = 0
	s.items = nil
	s.hasMore = true
	if s.inFlight {
		// the response still in flight is now stale; its arrival
		// triggers the fetch for the new filters
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.fetch(1)
}

// LoadMore requests the next page; the scroll sentinel calls it as it
// nears the viewport. Returns false when the advance was suppressed.
func (s *ListingSession) LoadMore() bool {
	s.mu.Lock()
	if s.closed || s.inFlight || !s.hasMore || s.page == 0 {
		s.mu.Unlock()
		return false
	}
	next := s.page + 1
	s.mu.Unlock()

	s.fetch(next)
	return true
}

func (s *ListingSession) fetch(page int) {
	s.mu.Lock()
	if s.closed || s.inFlight {
		s.mu.Unlock()
		return
	}
	if page != 1 && page != s.page+1 {
		// the list was reset between the page-advance decision and now
		s.mu.Unlock()
		return
	}
	gen := s.gen
	key := fmt.Sprintf("%s|%s|%d|%d", s.category, s.search, s.hotelID, page)
	if rows, ok := s.cache[key]; ok {
		// cache hit: serve without a network round-trip
		onUpdate, snapshot := s.apply(page, rows)
		s.mu.Unlock()
		if onUpdate != nil {
			onUpdate(snapshot)
		}
		return
	}
	q := ListingQuery{HotelID: s.hotelID, Category: s.category, Search: s.search, Page: page}
	s.inFlight = true
	s.mu.Unlock()

	rows, err := s.api.FoodItems(context.Background(), q)

	s.mu.Lock()
	s.inFlight = false
	if s.closed {
		s.mu.Unlock()
		return
	}
	if gen != s.gen {
		// filters changed mid-flight: the result belongs to the old
		// filters, so drop it here and fetch the current ones
		if err == nil {
			s.cache[key] = rows
		}
		s.mu.Unlock()
		s.fetch(1)
		return
	}
	if err != nil {
		onError := s.OnError
		s.mu.Unlock()
		if onError != nil {
			onError(err)
		}
		return
	}
	s.cache[key] = rows
	onUpdate, snapshot := s.apply(page, rows)
	s.mu.Unlock()
	if onUpdate != nil {
		onUpdate(snapshot)
	}
}

// apply merges a fetched page; callers hold mu and invoke the returned
// callback after unlocking.
func (s *ListingSession) apply(page int, rows []Product) (func([]Product), []Product) {
	if page == 1 {
		s.items = append([]Product(nil), rows...)
	} else {
		s.items = append(s.items, rows...)
	}
	s.page = page
	s.hasMore = len(rows) == PageSize

	snapshot := append([]Product(nil), s.items...)
	return s.OnUpdate, snapshot
}

func (s *ListingSession) Items() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Product(nil), s.items...)
}

func (s *ListingSession) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore
}

// Close cancels any pending debounce; the session issues no further
// requests once the owning view is gone.
func (s *ListingSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
}
