package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SaleStatus is the lifecycle state of a sale
type SaleStatus int

const (
	SaleStatusOpen   SaleStatus = 0
	SaleStatusClosed SaleStatus = 1
)

func (s SaleStatus) String() string {
	switch s {
	case SaleStatusOpen:
		return "OPEN"
	case SaleStatusClosed:
		return "CLOSED"
	}
	return fmt.Sprintf("SaleStatus(%d)", int(s))
}

func (s SaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SaleStatus(i)
		return nil
	}
	switch str {
	case "OPEN":
		*s = SaleStatusOpen
	case "CLOSED":
		*s = SaleStatusClosed
	default:
		return fmt.Errorf("unknown sale status %q", str)
	}
	return nil
}

func (s SaleStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SaleStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SaleStatusOpen
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SaleStatus(v)
	case int:
		*s = SaleStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into SaleStatus", value)
	}
	return nil
}
