package handler

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexInt decodes a JSON number or a numeric string. Browser forms often
// submit select values as strings.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*f = FlexInt(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("expected integer, got %s", b)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("expected integer, got %q", s)
	}
	*f = FlexInt(n)
	return nil
}

// IntPtr returns the value as *int, keeping nil for an absent field
func (f *FlexInt) IntPtr() *int {
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

// QuizCategoryID is a FlexInt that also accepts "all", meaning every
// category (0)
type QuizCategoryID int

// UnmarshalJSON implements json.Unmarshaler
func (q *QuizCategoryID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil && strings.EqualFold(strings.TrimSpace(s), "all") {
		*q = 0
		return nil
	}

	var n FlexInt
	if err := n.UnmarshalJSON(b); err != nil {
		return err
	}
	*q = QuizCategoryID(n)
	return nil
}
