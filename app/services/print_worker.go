package services

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"HotelPos/app/models"
	"HotelPos/app/printing"
)

// PrintJob asks the worker to print the receipt for one ticket.
type PrintJob struct {
	TicketID uint
}

// PrintResult reports the outcome of one job.
type PrintResult struct {
	JobLabel  string
	TicketID  uint
	InvoiceID uint
	Err       error
}

// PrintWorker owns receipt rendering and printer I/O on a dedicated
// goroutine, keeping layout computation and socket waits off the
// interactive path. Jobs run to completion; there is no cancellation.
type PrintWorker struct {
	invoices *InvoiceService
	catalog  Catalog
	meta     printing.Meta
	sink     printing.Sink

	jobs     chan PrintJob
	results  chan PrintResult
	stopChan chan bool
}

func NewPrintWorker(invoices *InvoiceService, catalog Catalog, meta printing.Meta, sink printing.Sink) *PrintWorker {
	return &PrintWorker{
		invoices: invoices,
		catalog:  catalog,
		meta:     meta,
		sink:     sink,
		jobs:     make(chan PrintJob, 16),
		results:  make(chan PrintResult, 16),
		stopChan: make(chan bool),
	}
}

// Start launches the worker loop.
func (w *PrintWorker) Start() {
	go w.run()
	log.Println("Print worker started")
}

// Stop shuts the worker down after the current job finishes.
func (w *PrintWorker) Stop() {
	w.stopChan <- true
}

// Enqueue submits a print job. Blocks only if the queue is full.
func (w *PrintWorker) Enqueue(job PrintJob) {
	w.jobs <- job
}

// Results delivers one PrintResult per job, in completion order.
func (w *PrintWorker) Results() <-chan PrintResult {
	return w.results
}

func (w *PrintWorker) run() {
	for {
		select {
		case job := <-w.jobs:
			w.results <- w.process(job)
		case <-w.stopChan:
			log.Println("Print worker stopped")
			return
		}
	}
}

// process converts the ticket if needed, renders the receipt and sends
// it to the sink. A ticket that already has an invoice is re-printed
// from the stored invoice, so printing is idempotent; once conversion
// commits, a sink failure leaves the ticket locked for manual retry.
func (w *PrintWorker) process(job PrintJob) PrintResult {
	label := "receipt-" + uuid.NewString()
	result := PrintResult{JobLabel: label, TicketID: job.TicketID}

	invoice, err := w.invoices.InvoiceForTicket(job.TicketID)
	if err != nil {
		result.Err = fmt.Errorf("resolve invoice for ticket %d: %w", job.TicketID, err)
		return result
	}
	result.InvoiceID = invoice.ID

	doc, err := w.render(invoice)
	if err != nil {
		result.Err = err
		return result
	}

	if err := w.sink.Print(doc, label); err != nil {
		result.Err = err
		return result
	}
	log.Printf("Printed invoice %d for ticket %d (%s)", invoice.ID, job.TicketID, label)
	return result
}

func (w *PrintWorker) render(invoice *models.SimpleInvoice) ([]byte, error) {
	lines, err := printing.LinesFromInvoice(invoice, w.catalog)
	if err != nil {
		return nil, err
	}
	meta := w.meta
	meta.InvoiceID = invoice.ID
	layout, err := printing.ComputeLayout(lines, meta)
	if err != nil {
		return nil, err
	}
	return printing.Render(layout)
}
