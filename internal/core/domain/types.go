package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CourseType is the access mode of a course. Stored as its integer value.
type CourseType int8

const (
	CourseFree CourseType = 0
	CourseBuy  CourseType = 1
	CourseRent CourseType = 2
)

var courseTypeNames = map[CourseType]string{
	CourseFree: "free",
	CourseBuy:  "buy",
	CourseRent: "rent",
}

// String returns the serialized name (free, buy, rent)
func (t CourseType) String() string {
	if name, ok := courseTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("CourseType(%d)", int8(t))
}

// Valid reports whether t is one of the known course types
func (t CourseType) Valid() bool {
	_, ok := courseTypeNames[t]
	return ok
}

// ParseCourseType maps a serialized name back to its CourseType
func ParseCourseType(name string) (CourseType, error) {
	for t, n := range courseTypeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCourseType, name)
}

func (t CourseType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCourseType, int8(t))
	}
	return []byte(t.String()), nil
}

func (t *CourseType) UnmarshalText(text []byte) error {
	parsed, err := ParseCourseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// UnmarshalJSON accepts the name ("rent") or the stored integer (2).
func (t *CourseType) UnmarshalJSON(data []byte) error {
	var n int8
	if err := json.Unmarshal(data, &n); err == nil {
		if !CourseType(n).Valid() {
			return fmt.Errorf("%w: %d", ErrUnknownCourseType, n)
		}
		*t = CourseType(n)
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownCourseType, string(data))
	}
	return t.UnmarshalText([]byte(name))
}

// TransactionType distinguishes balance debits from credits
type TransactionType int8

const (
	TxPayment TransactionType = 0
	TxDeposit TransactionType = 1
)

var transactionTypeNames = map[TransactionType]string{
	TxPayment: "payment",
	TxDeposit: "deposit",
}

func (t TransactionType) String() string {
	if name, ok := transactionTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TransactionType(%d)", int8(t))
}

// ParseTransactionType maps payment/deposit to its TransactionType
func ParseTransactionType(name string) (TransactionType, error) {
	for t, n := range transactionTypeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTxType, name)
}

func (t TransactionType) MarshalText() ([]byte, error) {
	if _, ok := transactionTypeNames[t]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTxType, int8(t))
	}
	return []byte(t.String()), nil
}

func (t *TransactionType) UnmarshalText(text []byte) error {
	parsed, err := ParseTransactionType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
