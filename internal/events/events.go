// Package events reads business events from YAML files.
//
// A file holds a single "events" list. Each item carries a "kind" tag
// (sale, sale_cost, purchase, expense, voucher, manual) and the fields of
// that kind. Amounts and rates are written as decimal strings or numbers
// and parsed exactly. Account references may be an account ID, code or
// name when a Resolver is supplied.
package events

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/ledgerkit/internal/model"
)

// ErrUnknownKind is returned for an item whose kind tag is not recognized.
var ErrUnknownKind = errors.New("unknown event kind")

const dateFormat = "2006-01-02"

// Resolver maps a free-form account reference to an account.
type Resolver interface {
	Resolve(ref string) (model.Account, error)
}

type file struct {
	Events []record `yaml:"events"`
}

type item struct {
	Product   string `yaml:"product"`
	Quantity  string `yaml:"quantity"`
	CostPrice string `yaml:"cost_price"`
}

// record is the union of every kind's fields.
type record struct {
	Kind          string `yaml:"kind"`
	Number        string `yaml:"number"`
	Date          string `yaml:"date"`
	Description   string `yaml:"description"`
	Currency      string `yaml:"currency"`
	ExchangeRate  string `yaml:"exchange_rate"`
	Subtotal      string `yaml:"subtotal"`
	Discount      string `yaml:"discount"`
	Tax           string `yaml:"tax"`
	PaymentMethod string `yaml:"payment_method"`
	Items         []item `yaml:"items"`
	Amount        string `yaml:"amount"`
	Account       string `yaml:"account"`
	Type          string `yaml:"type"`
	Party         string `yaml:"party"`
	PartyAccount  string `yaml:"party_account"`
	InvoiceRate   string `yaml:"invoice_exchange_rate"`
	DebitAccount  string `yaml:"debit_account"`
	CreditAccount string `yaml:"credit_account"`
}

// Load reads an events file from disk.
func Load(path string, res Resolver) ([]model.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening events: %w", err)
	}
	defer f.Close()

	evs, err := Decode(f, res)
	if err != nil {
		return nil, fmt.Errorf("reading events %s: %w", path, err)
	}
	return evs, nil
}

// Decode parses an events document. Unknown fields are rejected.
func Decode(r io.Reader, res Resolver) ([]model.Event, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing events YAML: %w", err)
	}

	out := make([]model.Event, 0, len(f.Events))
	for i, rec := range f.Events {
		p := parser{res: res}
		ev := p.event(rec)
		if p.err != nil {
			return nil, fmt.Errorf("event %d (%s): %w", i+1, rec.Kind, p.err)
		}
		out = append(out, ev)
	}
	return out, nil
}

// parser keeps the first error so field conversions can be chained.
type parser struct {
	res Resolver
	err error
}

func (p *parser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *parser) decimal(field, s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		p.fail(fmt.Errorf("parsing %s %q: %w", field, s, err))
	}
	return d
}

func (p *parser) date(s string) time.Time {
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		p.fail(fmt.Errorf("parsing date %q: %w", s, err))
	}
	return t
}

func (p *parser) account(field, ref string) model.Account {
	if ref == "" {
		return model.Account{}
	}
	if p.res == nil {
		return model.Account{ID: model.AccountID(ref)}
	}
	a, err := p.res.Resolve(ref)
	if err != nil {
		p.fail(fmt.Errorf("%s: %w", field, err))
	}
	return a
}

func (p *parser) required(field, v string) {
	if v == "" {
		p.fail(fmt.Errorf("missing %s", field))
	}
}

func (p *parser) paymentMethod(s string) model.PaymentMethod {
	m := model.PaymentMethod(s)
	if !m.Valid() {
		p.fail(fmt.Errorf("payment_method %q: %w", s, model.ErrUnknownPaymentMethod))
	}
	return m
}

func (p *parser) pricing(rec record) model.Pricing {
	return model.Pricing{
		Currency:     strings.ToUpper(rec.Currency),
		ExchangeRate: p.decimal("exchange_rate", rec.ExchangeRate),
	}
}

func (p *parser) event(rec record) model.Event {
	p.required("date", rec.Date)
	switch model.EventKind(rec.Kind) {
	case model.KindSale:
		return model.Sale{
			Pricing:       p.pricing(rec),
			InvoiceNumber: rec.Number,
			Date:          p.date(rec.Date),
			Subtotal:      p.decimal("subtotal", rec.Subtotal),
			Discount:      p.decimal("discount", rec.Discount),
			Tax:           p.decimal("tax", rec.Tax),
			PaymentMethod: p.paymentMethod(rec.PaymentMethod),
		}

	case model.KindPurchase:
		return model.Purchase{
			Pricing:       p.pricing(rec),
			InvoiceNumber: rec.Number,
			Date:          p.date(rec.Date),
			Subtotal:      p.decimal("subtotal", rec.Subtotal),
			Discount:      p.decimal("discount", rec.Discount),
			Tax:           p.decimal("tax", rec.Tax),
			PaymentMethod: p.paymentMethod(rec.PaymentMethod),
		}

	case model.KindSaleCost:
		items := make([]model.SaleItem, len(rec.Items))
		for i, it := range rec.Items {
			items[i] = model.SaleItem{
				ProductName: it.Product,
				Quantity:    p.decimal("quantity", it.Quantity),
				CostPrice:   p.decimal("cost_price", it.CostPrice),
			}
		}
		return model.SaleCost{InvoiceNumber: rec.Number, Date: p.date(rec.Date), Items: items}

	case model.KindExpense:
		p.required("amount", rec.Amount)
		return model.Expense{
			Pricing:       p.pricing(rec),
			ExpenseNumber: rec.Number,
			Date:          p.date(rec.Date),
			Description:   rec.Description,
			Amount:        p.decimal("amount", rec.Amount),
			AccountID:     p.account("account", rec.Account).ID,
		}

	case model.KindVoucher:
		p.required("amount", rec.Amount)
		p.required("party_account", rec.PartyAccount)
		typ := model.VoucherType(rec.Type)
		if typ != model.VoucherReceipt && typ != model.VoucherPayment {
			p.fail(fmt.Errorf("voucher type %q: want %s or %s", rec.Type, model.VoucherReceipt, model.VoucherPayment))
		}
		return model.Voucher{
			Pricing:             p.pricing(rec),
			VoucherNumber:       rec.Number,
			Date:                p.date(rec.Date),
			Type:                typ,
			Amount:              p.decimal("amount", rec.Amount),
			PartyName:           rec.Party,
			PartyAccountID:      p.account("party_account", rec.PartyAccount).ID,
			InvoiceExchangeRate: p.decimal("invoice_exchange_rate", rec.InvoiceRate),
		}

	case model.KindManual:
		p.required("amount", rec.Amount)
		p.required("debit_account", rec.DebitAccount)
		p.required("credit_account", rec.CreditAccount)
		debit := p.account("debit_account", rec.DebitAccount)
		credit := p.account("credit_account", rec.CreditAccount)
		return model.ManualTransaction{
			Pricing:       p.pricing(rec),
			Reference:     rec.Number,
			Date:          p.date(rec.Date),
			Description:   rec.Description,
			DebitAccount:  debit.ID,
			DebitCode:     debit.Code,
			CreditAccount: credit.ID,
			CreditCode:    credit.Code,
			Amount:        p.decimal("amount", rec.Amount),
		}

	default:
		p.fail(fmt.Errorf("%q: %w", rec.Kind, ErrUnknownKind))
		return nil
	}
}
