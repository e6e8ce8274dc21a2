package gym

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Branch is the gym location kind. Every stock column, subscriber roster and
// transaction is keyed by it.
type Branch string

const (
	BranchMale   Branch = "male"
	BranchFemale Branch = "female"
)

func (b Branch) Valid() bool {
	return b == BranchMale || b == BranchFemale
}

// Settings is the free-form JSON object stored in gyms.settings.
type Settings map[string]interface{}

func (s Settings) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *Settings) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = Settings{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("gym settings: unsupported type %T", src)
	}
	if len(raw) == 0 {
		*s = Settings{}
		return nil
	}
	return json.Unmarshal(raw, (*map[string]interface{})(s))
}

type Gym struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Type      Branch    `db:"type" json:"type"`
	Logo      *string   `db:"logo" json:"logo,omitempty"`
	Settings  Settings  `db:"settings" json:"settings"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type UpdateGymRequest struct {
	Name     string   `json:"name" validate:"required,max=200"`
	Logo     *string  `json:"logo"`
	Settings Settings `json:"settings"`
}
