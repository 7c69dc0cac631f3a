package services

import (
	"errors"
	"testing"

	"HotelPos/app/errs"
	"HotelPos/app/models"
)

func TestAddProductCreatesTicketWithFirstLine(t *testing.T) {
	db, tickets, _ := newTestServices(t)
	beer, _ := seedProducts(t, db)

	if err := tickets.AddProduct(3, models.LocationBar, beer.ID); err != nil {
		t.Fatalf("AddProduct: %v", err)
	}

	all, err := tickets.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 ticket, got %d", len(all))
	}
	ticket := all[0]
	if ticket.TableID != 3 || ticket.TicketLocation != models.LocationBar {
		t.Errorf("ticket bound to (%d, %v), want (3, bar)", ticket.TableID, ticket.TicketLocation)
	}
	if ticket.TicketStatus != models.TicketStatusPending {
		t.Errorf("new ticket status = %v, want pending", ticket.TicketStatus)
	}
	if len(ticket.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(ticket.Items))
	}
	line := ticket.Items[0]
	if line.Name != beer.Name || line.Quantity != 1 {
		t.Errorf("line = %q x%d, want %q x1", line.Name, line.Quantity, beer.Name)
	}
	if line.Price != beer.InsidePrice {
		t.Errorf("bar line price = %v, want inside price %v", line.Price, beer.InsidePrice)
	}
}

func TestAddProductUsesOutsidePriceAwayFromBar(t *testing.T) {
	db, tickets, _ := newTestServices(t)
	beer, _ := seedProducts(t, db)

	if err := tickets.AddProduct(1, models.LocationGarden, beer.ID); err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	all, _ := tickets.GetAll()
	if got := all[0].Items[0].Price; got != beer.OutsidePrice {
		t.Errorf("garden line price = %v, want outside price %v", got, beer.OutsidePrice)
	}
}

func TestAddProductReusesOpenTicketOnSameSlot(t *testing.T) {
	db, tickets, _ := newTestServices(t)
	beer, coffee := seedProducts(t, db)

	if err := tickets.AddProduct(5, models.LocationRestaurant, beer.ID); err != nil {
		t.Fatalf("first AddProduct: %v", err)
	}
	if err := tickets.AddProduct(5, models.LocationRestaurant, coffee.ID); err != nil {
		t.Fatalf("second AddProduct: %v", err)
	}

	all, _ := tickets.GetAll()
	if len(all) != 1 {
		t.Fatalf("expected a single ticket for the slot, got %d", len(all))
	}
	if len(all[0].Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(all[0].Items))
	}
	// items come back in insertion order
	if all[0].Items[0].Name != beer.Name || all[0].Items[1].Name != coffee.Name {
		t.Errorf("line order = [%q, %q], want [%q, %q]",
			all[0].Items[0].Name, all[0].Items[1].Name, beer.Name, coffee.Name)
	}
}

func TestAddProductSeparateSlotsSeparateTickets(t *testing.T) {
	db, tickets, _ := newTestServices(t)
	beer, _ := seedProducts(t, db)

	if err := tickets.AddProduct(2, models.LocationBar, beer.ID); err != nil {
		t.Fatalf("AddProduct bar: %v", err)
	}
	if err := tickets.AddProduct(2, models.LocationGarden, beer.ID); err != nil {
		t.Fatalf("AddProduct garden: %v", err)
	}
	all, _ := tickets.GetAll()
	if len(all) != 2 {
		t.Fatalf("same table at two locations should hold two tickets, got %d", len(all))
	}
}

func TestAddProductUnknownProduct(t *testing.T) {
	db, tickets, _ := newTestServices(t)
	seedProducts(t, db)

	err := tickets.AddProduct(1, models.LocationBar, 9999)
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	all, _ := tickets.GetAll()
	if len(all) != 0 {
		t.Errorf("unknown product must not create a ticket, got %d", len(all))
	}
}

func TestAddProductRejectedOnLockedTicket(t *testing.T) {
	db, tickets, invoices := newTestServices(t)
	beer, _ := seedProducts(t, db)

	if err := tickets.AddProduct(1, models.LocationBar, beer.ID); err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	all, _ := tickets.GetAll()
	if _, err := invoices.CreateFromTemporalTicket(all[0].ID); err != nil {
		t.Fatalf("CreateFromTemporalTicket: %v", err)
	}

	err := tickets.AddProduct(1, models.LocationBar, beer.ID)
	if !errors.Is(err, errs.ErrTicketLocked) {
		t.Fatalf("err = %v, want ErrTicketLocked", err)
	}
	all, _ = tickets.GetAll()
	if len(all[0].Items) != 1 {
		t.Errorf("locked ticket grew to %d lines", len(all[0].Items))
	}
}

func TestEditLineItem(t *testing.T) {
	db, tickets, _ := newTestServices(t)
	beer, _ := seedProducts(t, db)

	if err := tickets.AddProduct(1, models.LocationBar, beer.ID); err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	all, _ := tickets.GetAll()
	itemID := all[0].Items[0].ID

	if err := tickets.EditLineItem(itemID, 3, 1.75); err != nil {
		t.Fatalf("EditLineItem: %v", err)
	}
	all, _ = tickets.GetAll()
	line := all[0].Items[0]
	if line.Quantity != 3 || line.Price != 1.75 {
		t.Errorf("line = x%d @%v, want x3 @1.75", line.Quantity, line.Price)
	}
}

func TestEditLineItemRejectsNegativeValues(t *testing.T) {
	db, tickets, _ := newTestServices(t)
	beer, _ := seedProducts(t, db)

	if err := tickets.AddProduct(1, models.LocationBar, beer.ID); err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	all, _ := tickets.GetAll()
	itemID := all[0].Items[0].ID

	if err := tickets.EditLineItem(itemID, -1, 2.00); err == nil {
		t.Error("negative quantity accepted")
	}
	if err := tickets.EditLineItem(itemID, 1, -0.50); err == nil {
		t.Error("negative price accepted")
	}

	all, _ = tickets.GetAll()
	line := all[0].Items[0]
	if line.Quantity != 1 || line.Price != beer.InsidePrice {
		t.Errorf("rejected edit mutated the line: x%d @%v", line.Quantity, line.Price)
	}
}

func TestEditLineItemRejectedOnLockedTicket(t *testing.T) {
	db, tickets, invoices := newTestServices(t)
	beer, _ := seedProducts(t, db)

	if err := tickets.AddProduct(1, models.LocationBar, beer.ID); err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	all, _ := tickets.GetAll()
	itemID := all[0].Items[0].ID
	if _, err := invoices.CreateFromTemporalTicket(all[0].ID); err != nil {
		t.Fatalf("CreateFromTemporalTicket: %v", err)
	}

	if err := tickets.EditLineItem(itemID, 5, 9.99); !errors.Is(err, errs.ErrTicketLocked) {
		t.Fatalf("err = %v, want ErrTicketLocked", err)
	}
}

func TestDeleteLineItemKeepsTicketWhileLinesRemain(t *testing.T) {
	db, tickets, _ := newTestServices(t)
	beer, coffee := seedProducts(t, db)

	tickets.AddProduct(1, models.LocationBar, beer.ID)
	tickets.AddProduct(1, models.LocationBar, coffee.ID)
	all, _ := tickets.GetAll()

	if err := tickets.DeleteLineItem(all[0].Items[0].ID); err != nil {
		t.Fatalf("DeleteLineItem: %v", err)
	}
	all, _ = tickets.GetAll()
	if len(all) != 1 {
		t.Fatalf("ticket disappeared with a line still on it")
	}
	if len(all[0].Items) != 1 || all[0].Items[0].Name != coffee.Name {
		t.Errorf("wrong line survived: %+v", all[0].Items)
	}
}

func TestDeleteLastLineItemRemovesTicket(t *testing.T) {
	db, tickets, _ := newTestServices(t)
	beer, _ := seedProducts(t, db)

	tickets.AddProduct(1, models.LocationBar, beer.ID)
	all, _ := tickets.GetAll()

	if err := tickets.DeleteLineItem(all[0].Items[0].ID); err != nil {
		t.Fatalf("DeleteLineItem: %v", err)
	}
	all, _ = tickets.GetAll()
	if len(all) != 0 {
		t.Fatalf("empty ticket lingered: %+v", all)
	}

	// the slot is free again
	if err := tickets.AddProduct(1, models.LocationBar, beer.ID); err != nil {
		t.Fatalf("AddProduct on freed slot: %v", err)
	}
}

func TestDeleteLineItemNotFound(t *testing.T) {
	_, tickets, _ := newTestServices(t)
	if err := tickets.DeleteLineItem(1234); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
