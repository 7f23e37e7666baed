// Package loanproduct loads the catalog of loan offers.
package loanproduct

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/currencypkg"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

//go:embed products.yaml
var defaultProducts []byte

type product struct {
	ID                    string `yaml:"id"`
	Name                  string `yaml:"name"`
	Recipient             string `yaml:"recipient"`
	TransactionType       string `yaml:"transaction_type"`
	NominalAmount         string `yaml:"nominal_amount"`
	Interest              string `yaml:"interest"`
	InstallmentAmount     string `yaml:"installment_amount"`
	InstallmentsNumber    int32  `yaml:"installments_number"`
	TotalAmountToBeRepaid string `yaml:"total_amount_to_be_repaid"`
	LoanCost              string `yaml:"loan_cost"`
	InterestType          string `yaml:"interest_type"`
	FrequencyDays         int32  `yaml:"frequency_days"`
	CurrencyCode          string `yaml:"currency_code"`
	Purpose               string `yaml:"purpose"`
}

type catalogFile struct {
	Products []product `yaml:"products"`
}

// Catalog holds the loan products in their declared order.
type Catalog struct {
	products []domain.LoanProduct
	byID     map[string]domain.LoanProduct
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Parse(defaultProducts)
}

// Load returns the catalog read from path, or the built-in catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", path, err)
	}

	return c, nil
}

// Parse builds a catalog from its YAML document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	c := &Catalog{
		products: make([]domain.LoanProduct, 0, len(f.Products)),
		byID:     make(map[string]domain.LoanProduct, len(f.Products)),
	}

	for i, p := range f.Products {
		lp, err := p.toDomain()
		if err != nil {
			return nil, fmt.Errorf("product at index %d: %w", i, err)
		}

		if _, ok := c.byID[lp.ID]; ok {
			return nil, fmt.Errorf("product at index %d: duplicate id %q", i, lp.ID)
		}

		c.products = append(c.products, lp)
		c.byID[lp.ID] = lp
	}

	return c, nil
}

func (p product) toDomain() (domain.LoanProduct, error) {
	if p.ID == "" {
		return domain.LoanProduct{}, fmt.Errorf("missing id")
	}

	units, err := currencypkg.MinorUnits(p.CurrencyCode)
	if err != nil {
		return domain.LoanProduct{}, err
	}

	switch domain.EntryType(p.TransactionType) {
	case domain.EntryTypeStandingOrder, domain.EntryTypeDirectDebit:
	default:
		return domain.LoanProduct{}, fmt.Errorf("unsupported transaction type %q", p.TransactionType)
	}

	if p.InstallmentsNumber <= 0 || p.FrequencyDays <= 0 {
		return domain.LoanProduct{}, fmt.Errorf("installments number and frequency days must be positive")
	}

	amounts := make([]decimal.Decimal, 4)

	for i, s := range []string{p.NominalAmount, p.InstallmentAmount, p.TotalAmountToBeRepaid, p.LoanCost} {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return domain.LoanProduct{}, fmt.Errorf("invalid amount %q: %w", s, err)
		}

		if d.IsNegative() {
			return domain.LoanProduct{}, fmt.Errorf("negative amount %q", s)
		}

		if d.Exponent() < -units {
			return domain.LoanProduct{}, fmt.Errorf("amount %q has more than %d decimal places", s, units)
		}

		amounts[i] = d
	}

	if !amounts[1].IsPositive() {
		return domain.LoanProduct{}, fmt.Errorf("installment amount must be positive")
	}

	return domain.LoanProduct{
		ID:                    p.ID,
		Name:                  p.Name,
		Recipient:             p.Recipient,
		TransactionType:       domain.EntryType(p.TransactionType),
		NominalAmount:         amounts[0],
		Interest:              p.Interest,
		InstallmentAmount:     amounts[1],
		InstallmentsNumber:    p.InstallmentsNumber,
		TotalAmountToBeRepaid: amounts[2],
		LoanCost:              amounts[3],
		InterestType:          p.InterestType,
		FrequencyDays:         p.FrequencyDays,
		CurrencyCode:          p.CurrencyCode,
		Purpose:               p.Purpose,
	}, nil
}

// List returns all products.
func (c *Catalog) List() []domain.LoanProduct {
	out := make([]domain.LoanProduct, len(c.products))
	copy(out, c.products)

	return out
}

// Get returns the product by id.
func (c *Catalog) Get(id string) (domain.LoanProduct, error) {
	p, ok := c.byID[id]
	if !ok {
		return domain.LoanProduct{}, domain.ErrLoanProductNotFound
	}

	return p, nil
}
