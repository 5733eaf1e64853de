package lena

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/etnz/lena/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidRecord is returned when a record cannot be written.
var ErrInvalidRecord = errors.New("invalid record")

// Unknown is displayed in place of a reference that cannot be resolved.
const Unknown = "(unknown)"

// NewID returns a new random record identifier.
func NewID() string { return uuid.NewString() }

// Property is a real-estate asset open to fractional investment.
type Property struct {
	ID        string
	Name      string
	Address   string
	Price     Money
	Rent      Money // monthly
	Expenses  Money // annual
	Photos    []string // data URLs
	UpdatedAt time.Time
}

// Currency returns the currency of the property's amounts.
func (p Property) Currency() string { return p.Price.Currency() }

// Validate checks that p can be written.
func (p Property) Validate() error {
	if err := ValidateCurrency(p.Currency()); err != nil {
		return fmt.Errorf("%w: property %q: %v", ErrInvalidRecord, p.Name, err)
	}
	for i, photo := range p.Photos {
		if !strings.HasPrefix(photo, "data:") {
			return fmt.Errorf("%w: property %q: photo #%d is not a data URL", ErrInvalidRecord, p.Name, i+1)
		}
	}
	return nil
}

func (p Property) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", p.ID)
	w.Append("name", p.Name)
	w.Optional("address", p.Address)
	w.Append("currency", p.Currency())
	w.Append("price", p.Price.value)
	w.Append("rent", p.Rent.value)
	w.Append("expenses", p.Expenses.value)
	w.Optional("photos", p.Photos)
	w.Optional("updatedAt", toMillis(p.UpdatedAt))
	return w.MarshalJSON()
}

func (p *Property) UnmarshalJSON(data []byte) error {
	var j struct {
		ID        string          `json:"id"`
		Name      string          `json:"name"`
		Address   string          `json:"address"`
		Currency  string          `json:"currency"`
		Price     decimal.Decimal `json:"price"`
		Rent      decimal.Decimal `json:"rent"`
		Expenses  decimal.Decimal `json:"expenses"`
		Photos    []string        `json:"photos"`
		UpdatedAt int64           `json:"updatedAt"`
	}
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*p = Property{
		ID:        j.ID,
		Name:      j.Name,
		Address:   j.Address,
		Price:     M(j.Price, j.Currency),
		Rent:      M(j.Rent, j.Currency),
		Expenses:  M(j.Expenses, j.Currency),
		Photos:    j.Photos,
		UpdatedAt: fromMillis(j.UpdatedAt),
	}
	return nil
}

// Investor is a person buying units.
type Investor struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

// Validate checks that i can be written.
func (i Investor) Validate() error {
	if i.Email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(i.Email); err != nil {
		return fmt.Errorf("%w: investor %q: invalid email %q", ErrInvalidRecord, i.Name, i.Email)
	}
	return nil
}

func (i Investor) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", i.ID)
	w.Append("name", i.Name)
	w.Optional("email", i.Email)
	w.Optional("createdAt", toMillis(i.CreatedAt))
	return w.MarshalJSON()
}

func (i *Investor) UnmarshalJSON(data []byte) error {
	var j struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		CreatedAt int64  `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*i = Investor{ID: j.ID, Name: j.Name, Email: j.Email, CreatedAt: fromMillis(j.CreatedAt)}
	return nil
}

// Purchase records units of a property bought by an investor. InvestorID and
// PropertyID are not checked: they may point to records that no longer exist.
type Purchase struct {
	ID         string
	InvestorID string
	PropertyID string
	Date       date.Date
	Units      Units
	Amount     Money
	CreatedAt  time.Time
}

// Validate checks that p can be written.
func (p Purchase) Validate() error {
	switch {
	case strings.TrimSpace(p.InvestorID) == "":
		return fmt.Errorf("%w: purchase without investor", ErrInvalidRecord)
	case strings.TrimSpace(p.PropertyID) == "":
		return fmt.Errorf("%w: purchase without property", ErrInvalidRecord)
	case p.Date.IsZero():
		return fmt.Errorf("%w: purchase without date", ErrInvalidRecord)
	case p.Units.IsNegative():
		return fmt.Errorf("%w: purchase of %s units", ErrInvalidRecord, p.Units)
	}
	if err := ValidateCurrency(p.Amount.Currency()); err != nil {
		return fmt.Errorf("%w: purchase: %v", ErrInvalidRecord, err)
	}
	return nil
}

func (p Purchase) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", p.ID)
	w.Append("investorId", p.InvestorID)
	w.Append("propertyId", p.PropertyID)
	w.Append("date", p.Date)
	w.Append("units", p.Units)
	w.Append("currency", p.Amount.Currency())
	w.Append("amount", p.Amount.value)
	w.Optional("createdAt", toMillis(p.CreatedAt))
	return w.MarshalJSON()
}

func (p *Purchase) UnmarshalJSON(data []byte) error {
	var j struct {
		ID         string          `json:"id"`
		InvestorID string          `json:"investorId"`
		PropertyID string          `json:"propertyId"`
		Date       date.Date       `json:"date"`
		Units      Units           `json:"units"`
		Currency   string          `json:"currency"`
		Amount     decimal.Decimal `json:"amount"`
		CreatedAt  int64           `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*p = Purchase{
		ID:         j.ID,
		InvestorID: j.InvestorID,
		PropertyID: j.PropertyID,
		Date:       j.Date,
		Units:      j.Units,
		Amount:     M(j.Amount, j.Currency),
		CreatedAt:  fromMillis(j.CreatedAt),
	}
	return nil
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
