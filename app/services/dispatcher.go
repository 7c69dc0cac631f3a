package services

import (
	"log"

	"HotelPos/app/models"
)

// EventType names which operation an Event reports on.
type EventType string

const (
	EventTicketsFetched  EventType = "tickets_fetched"
	EventProductAdded    EventType = "product_added"
	EventLineEdited      EventType = "line_edited"
	EventLineDeleted     EventType = "line_deleted"
	EventTicketUnlocked  EventType = "ticket_unlocked"
	EventTicketPaid      EventType = "ticket_paid"
)

// Event is the result of one dispatched operation. After any mutation
// Tickets carries a full re-fetch, so the receiver never has to patch
// state incrementally.
type Event struct {
	Type    EventType
	Err     error
	Tickets []models.TemporalTicket
}

// Dispatcher runs store operations on their own goroutines and delivers
// their outcomes on a single event channel. Operations are independent;
// no ordering is guaranteed between two in-flight calls.
type Dispatcher struct {
	tickets  *TicketService
	invoices *InvoiceService
	events   chan Event
}

func NewDispatcher(tickets *TicketService, invoices *InvoiceService) *Dispatcher {
	return &Dispatcher{
		tickets:  tickets,
		invoices: invoices,
		events:   make(chan Event, 64),
	}
}

// Events is the channel the receiver consumes dispatched outcomes from.
func (d *Dispatcher) Events() <-chan Event {
	return d.events
}

// FetchTickets re-reads all active tickets.
func (d *Dispatcher) FetchTickets() {
	go d.emit(EventTicketsFetched, nil)
}

// AddProduct appends a product to the ticket at (tableID, location).
func (d *Dispatcher) AddProduct(tableID int, location models.TicketLocation, productID uint) {
	go d.run(EventProductAdded, func() error {
		return d.tickets.AddProduct(tableID, location, productID)
	})
}

// EditLine persists a line's quantity and price.
func (d *Dispatcher) EditLine(itemID uint, quantity int, price float64) {
	go d.run(EventLineEdited, func() error {
		return d.tickets.EditLineItem(itemID, quantity, price)
	})
}

// DeleteLine removes a line, and its ticket when it was the last one.
func (d *Dispatcher) DeleteLine(itemID uint) {
	go d.run(EventLineDeleted, func() error {
		return d.tickets.DeleteLineItem(itemID)
	})
}

// Unlock reopens a locked ticket by deleting its invoice.
func (d *Dispatcher) Unlock(ticketID uint) {
	go d.run(EventTicketUnlocked, func() error {
		return d.invoices.Unlock(ticketID)
	})
}

// Pay settles a locked ticket's invoice and frees its table slot.
func (d *Dispatcher) Pay(ticketID uint, paymentMethodID uint) {
	go d.run(EventTicketPaid, func() error {
		return d.invoices.MarkAsPaid(ticketID, paymentMethodID)
	})
}

func (d *Dispatcher) run(eventType EventType, op func() error) {
	if err := op(); err != nil {
		log.Printf("dispatch %s: %v", eventType, err)
		d.emit(eventType, err)
		return
	}
	d.emit(eventType, nil)
}

// emit always re-fetches the full ticket set, even on failure, so the
// receiver's view converges on what the database actually holds.
func (d *Dispatcher) emit(eventType EventType, opErr error) {
	tickets, err := d.tickets.GetAll()
	if err != nil {
		log.Printf("refresh after %s: %v", eventType, err)
		if opErr == nil {
			opErr = err
		}
	}
	d.events <- Event{Type: eventType, Err: opErr, Tickets: tickets}
}
