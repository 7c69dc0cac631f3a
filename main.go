package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"HotelPos/app/config"
	"HotelPos/app/database"
	"HotelPos/app/printing"
	"HotelPos/app/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close(db)

	if cfg.FirstRun {
		log.Println("First run detected, default configuration written")
		if err := config.MarkSetupComplete(); err != nil {
			log.Printf("Failed to mark setup complete: %v", err)
		}
	}

	products := services.NewProductService(db)
	tickets := services.NewTicketService(db, products)
	invoices := services.NewInvoiceService(db)
	dispatcher := services.NewDispatcher(tickets, invoices)

	meta := printing.Meta{
		BusinessName:    cfg.Business.Name,
		BusinessAddress: cfg.Business.Address,
	}
	worker := services.NewPrintWorker(invoices, products, meta, printerSink(cfg))
	worker.Start()
	defer worker.Stop()

	go func() {
		for ev := range dispatcher.Events() {
			if ev.Err != nil {
				log.Printf("Operation %s failed: %v", ev.Type, ev.Err)
			}
		}
	}()
	go func() {
		for res := range worker.Results() {
			if res.Err != nil {
				log.Printf("Print job %s failed: %v", res.JobLabel, res.Err)
			}
		}
	}()

	dispatcher.FetchTickets()
	log.Println("HotelPos service started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down")
}

func openDatabase(cfg *config.AppConfig) (*gorm.DB, error) {
	if cfg.Database.LocalPath != "" {
		return database.OpenLocal(cfg.Database.LocalPath)
	}
	return database.Open(cfg)
}

// printerSink picks the configured sink, falling back to a local spool
// directory so the service stays usable without a physical printer.
func printerSink(cfg *config.AppConfig) printing.Sink {
	if cfg.Printer.Type == "network" && cfg.Printer.Address != "" {
		return &printing.NetworkSink{Addr: cfg.Printer.Address}
	}
	dir := cfg.Printer.SpoolDir
	if dir == "" {
		dir = "./data/spool"
	}
	return &printing.FileSink{Dir: dir}
}
