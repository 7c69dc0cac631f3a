package services

import (
	"errors"
	"testing"
	"time"

	"HotelPos/app/errs"
	"HotelPos/app/models"
)

func waitEvent(t *testing.T, d *Dispatcher) Event {
	t.Helper()
	select {
	case ev := <-d.Events():
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestDispatcherMutationDeliversFullRefetch(t *testing.T) {
	db, tickets, invoices := newTestServices(t)
	beer, _ := seedProducts(t, db)

	d := NewDispatcher(tickets, invoices)
	d.AddProduct(4, models.LocationBar, beer.ID)

	ev := waitEvent(t, d)
	if ev.Type != EventProductAdded {
		t.Errorf("event type = %v, want product_added", ev.Type)
	}
	if ev.Err != nil {
		t.Fatalf("event err: %v", ev.Err)
	}
	if len(ev.Tickets) != 1 || len(ev.Tickets[0].Items) != 1 {
		t.Fatalf("event did not carry the refreshed ticket set: %+v", ev.Tickets)
	}
}

func TestDispatcherFailedMutationStillRefetches(t *testing.T) {
	db, tickets, invoices := newTestServices(t)
	beer, _ := seedProducts(t, db)
	if err := tickets.AddProduct(4, models.LocationBar, beer.ID); err != nil {
		t.Fatalf("AddProduct: %v", err)
	}

	d := NewDispatcher(tickets, invoices)
	d.AddProduct(4, models.LocationBar, 9999)

	ev := waitEvent(t, d)
	if !errors.Is(ev.Err, errs.ErrNotFound) {
		t.Errorf("event err = %v, want ErrNotFound", ev.Err)
	}
	if len(ev.Tickets) != 1 {
		t.Errorf("failed mutation must still deliver current tickets, got %d", len(ev.Tickets))
	}
}

func TestDispatcherFetchTickets(t *testing.T) {
	_, tickets, invoices := newTestServices(t)
	d := NewDispatcher(tickets, invoices)
	d.FetchTickets()

	ev := waitEvent(t, d)
	if ev.Type != EventTicketsFetched || ev.Err != nil {
		t.Fatalf("event = %+v", ev)
	}
	if len(ev.Tickets) != 0 {
		t.Errorf("empty store delivered %d tickets", len(ev.Tickets))
	}
}
