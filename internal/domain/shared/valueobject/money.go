package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places kept for monetary amounts
const MoneyScale int32 = 2

// Money is an immutable monetary amount in the store currency.
// Amounts are rounded half-up to MoneyScale places on construction.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates Money from a decimal amount
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount.Round(MoneyScale)}
}

// NewMoneyFromString parses an amount such as "19.99"
func NewMoneyFromString(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return NewMoney(d), nil
}

// NewMoneyFromFloat creates Money from a float64 value
func NewMoneyFromFloat(amount float64) Money {
	return NewMoney(decimal.NewFromFloat(amount))
}

// NewMoneyFromCents creates Money from an integer number of cents
func NewMoneyFromCents(cents int64) Money {
	return Money{amount: decimal.New(cents, -MoneyScale)}
}

// Zero returns a zero amount
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive returns true if the amount is greater than zero
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative returns true if the amount is less than zero
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Add returns m + other
func (m Money) Add(other Money) Money {
	return NewMoney(m.amount.Add(other.amount))
}

// Subtract returns m - other
func (m Money) Subtract(other Money) Money {
	return NewMoney(m.amount.Sub(other.amount))
}

// MultiplyByInt returns m × factor
func (m Money) MultiplyByInt(factor int64) Money {
	return NewMoney(m.amount.Mul(decimal.NewFromInt(factor)))
}

// Equals compares two amounts
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// GreaterThan returns true if m > other
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// LessThan returns true if m < other
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// String formats the amount with two decimals
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}

// Float64 returns the amount as float64 (may lose precision)
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// Sum adds all amounts
func Sum(amounts ...Money) Money {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.amount)
	}
	return NewMoney(total)
}

// MarshalJSON encodes the amount as a fixed two-decimal string
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts either a JSON string or a JSON number
func (m *Money) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("invalid money value: %w", err)
		}
		s = n.String()
	}
	parsed, err := NewMoneyFromString(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value implements driver.Valuer
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan implements sql.Scanner
func (m *Money) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		m.amount = decimal.Zero
		return nil
	case string:
		return m.scanString(v)
	case []byte:
		return m.scanString(string(v))
	case float64:
		*m = NewMoneyFromFloat(v)
		return nil
	case int64:
		*m = NewMoney(decimal.NewFromInt(v))
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Money", value)
	}
}

func (m *Money) scanString(s string) error {
	parsed, err := NewMoneyFromString(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
