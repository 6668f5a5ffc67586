package comment

import (
	"encoding/json"
	"time"
)

// Comment is a free-text note attached to a book by value. The referenced
// book is never checked for existence.
type Comment struct {
	ID        string    `json:"_id"`
	BookID    string    `json:"bookId"`
	Text      string    `json:"text"`
	UserName  string    `json:"userName,omitempty"`
	UserEmail string    `json:"userEmail,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	// Extra holds any further top-level scalar fields the client sent. They
	// are stored and returned next to the named fields.
	Extra map[string]any `json:"-"`
}

// MarshalJSON flattens Extra into the object. Named fields win on a clash.
func (c Comment) MarshalJSON() ([]byte, error) {
	type plain Comment
	named, err := json.Marshal(plain(c))
	if err != nil || len(c.Extra) == 0 {
		return named, err
	}

	fields := make(map[string]json.RawMessage, len(c.Extra)+6)
	if err := json.Unmarshal(named, &fields); err != nil {
		return nil, err
	}
	for k, v := range c.Extra {
		if isReserved(k) {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		fields[k] = raw
	}
	return json.Marshal(fields)
}
