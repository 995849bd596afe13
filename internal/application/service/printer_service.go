package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/pharmatill/terminal-api/internal/checkout"
	"github.com/pharmatill/terminal-api/internal/domain/entity"
	"github.com/pharmatill/terminal-api/pkg/apperror"
	"github.com/pharmatill/terminal-api/pkg/printer"
)

// WalkInLabel is printed when no customer is bound to the sale.
const WalkInLabel = "Walk-in customer"

// PrinterService renders committed sales as receipts: a plain-text
// preview for the browser's print flow and ESC/POS bytes for a
// configured thermal printer. It is read-only and never touches the
// session's editing state.
type PrinterService struct {
	printer     printer.Printer
	header      entity.ReceiptHeader
	printerType string
}

// NewPrinterService creates a printer service.
func NewPrinterService(p printer.Printer, header entity.ReceiptHeader, printerType string) *PrinterService {
	return &PrinterService{printer: p, header: header, printerType: printerType}
}

// PrinterStatus reports the thermal printer's availability.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// Status returns printer connection status.
func (s *PrinterService) Status() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// BuildReceipt composes the printable view of a committed sale. All
// prices are the historical values captured at sale time.
func (s *PrinterService) BuildReceipt(sale *entity.Sale) *entity.Receipt {
	r := &entity.Receipt{
		Header:        s.header,
		InvoiceNo:     sale.InvoiceNo,
		Date:          sale.SaleDate.Format("2006-01-02 15:04"),
		Counter:       sale.CounterName,
		Customer:      WalkInLabel,
		PaymentMethod: string(sale.PaymentMethod),
		SubTotal:      float64(sale.SubTotal) / 100,
		Discount:      float64(sale.Discount) / 100,
		Tax:           float64(sale.Tax) / 100,
		GrandTotal:    float64(sale.GrandTotal) / 100,
		Paid:          float64(sale.AmountPaid) / 100,
		Change:        float64(sale.ChangeDue) / 100,
		Due:           float64(sale.DueAmount) / 100,
	}
	if sale.Customer != nil {
		r.Customer = sale.Customer.Name
	}
	for _, it := range sale.Items {
		r.Items = append(r.Items, entity.ReceiptItem{
			Name:        it.MedicineName,
			BatchNumber: it.BatchNumber,
			Quantity:    it.Quantity,
			UnitPrice:   float64(it.UnitPrice) / 100,
			Total:       float64(it.Total) / 100,
		})
	}
	return r
}

// PrintInvoice renders the session's committed sale on the thermal
// printer. The receipt is returned either way so the terminal can fall
// back to browser printing when no hardware is attached.
func (s *PrinterService) PrintInvoice(sess *checkout.Session) (*entity.Receipt, error) {
	sale, ok := sess.Invoice()
	if !ok {
		return nil, apperror.NewBadRequestError("No committed sale to print")
	}
	receipt := s.BuildReceipt(sale)

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (invoice %s): %v", sale.InvoiceNo, err)
		return receipt, apperror.NewAppError(503, "Receipt could not be printed")
	}
	return receipt, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes for 58mm paper.
func FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(32)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.PharmacyName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-').
		KeyValue("Invoice", r.InvoiceNo).
		KeyValue("Date", r.Date)
	if r.Counter != "" {
		doc.KeyValue("Counter", r.Counter)
	}
	doc.KeyValue("Customer", r.Customer).
		Separator('-')

	for _, it := range r.Items {
		doc.ItemLine(it.Quantity, it.Name, money(it.Total))
		if it.BatchNumber != "" {
			doc.TextF("   batch %s @ %s", it.BatchNumber, money(it.UnitPrice))
		}
	}

	doc.Separator('-').
		KeyValue("Subtotal", money(r.SubTotal))
	if r.Discount > 0 {
		doc.KeyValue("Discount", "-"+money(r.Discount))
	}
	if r.Tax > 0 {
		doc.KeyValue("Tax", money(r.Tax))
	}
	doc.SetBold(true).
		KeyValue("TOTAL", money(r.GrandTotal)).
		SetBold(false).
		KeyValue("Paid ("+r.PaymentMethod+")", money(r.Paid))
	if r.Due > 0 {
		doc.KeyValue("Due", money(r.Due))
	} else {
		doc.KeyValue("Change", money(r.Change))
	}

	doc.Separator('-').
		SetAlign(printer.AlignCenter).
		Text("Thank you, get well soon!").
		Barcode(r.InvoiceNo).
		FeedLines(3).
		Cut()

	return doc.Bytes()
}

// RenderText builds the plain-text receipt used for the browser print
// preview. Same layout as the thermal output, minus control codes.
func RenderText(r *entity.Receipt) string {
	var b strings.Builder
	line := strings.Repeat("-", 32)

	center := func(s string) {
		if pad := (32 - len(s)) / 2; pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(s + "\n")
	}
	kv := func(k, v string) {
		gap := 32 - len(k) - len(v)
		if gap < 1 {
			gap = 1
		}
		b.WriteString(k + strings.Repeat(" ", gap) + v + "\n")
	}

	center(r.Header.PharmacyName)
	if r.Header.Address != "" {
		center(r.Header.Address)
	}
	if r.Header.Phone != "" {
		center(r.Header.Phone)
	}
	b.WriteString(line + "\n")
	kv("Invoice", r.InvoiceNo)
	kv("Date", r.Date)
	if r.Counter != "" {
		kv("Counter", r.Counter)
	}
	kv("Customer", r.Customer)
	b.WriteString(line + "\n")
	for _, it := range r.Items {
		kv(fmt.Sprintf("%dx %s", it.Quantity, it.Name), money(it.Total))
		if it.BatchNumber != "" {
			b.WriteString(fmt.Sprintf("   batch %s @ %s\n", it.BatchNumber, money(it.UnitPrice)))
		}
	}
	b.WriteString(line + "\n")
	kv("Subtotal", money(r.SubTotal))
	if r.Discount > 0 {
		kv("Discount", "-"+money(r.Discount))
	}
	if r.Tax > 0 {
		kv("Tax", money(r.Tax))
	}
	kv("TOTAL", money(r.GrandTotal))
	kv("Paid ("+r.PaymentMethod+")", money(r.Paid))
	if r.Due > 0 {
		kv("Due", money(r.Due))
	} else {
		kv("Change", money(r.Change))
	}
	return b.String()
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
