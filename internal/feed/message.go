package feed

import "encoding/json"

// Update sets the text of one display element on the page.
type Update struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Encode returns the JSON text frame for u.
func Encode(u Update) ([]byte, error) {
	return json.Marshal(u)
}

// Decode parses a JSON text frame.
func Decode(data []byte) (Update, error) {
	var u Update
	err := json.Unmarshal(data, &u)
	return u, err
}
