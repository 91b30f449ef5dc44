package identity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Wire field names of the flattened AuthnProperties encoding.
const (
	FieldAgentLabel   = "agent_label"
	FieldAccountLabel = "account_label"
	FieldAudience     = "audience"
)

// MarshalJSON encodes the account as its canonical string form.
func (a AccountID) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes the canonical string form via ParseAccountID.
func (a *AccountID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := ParseAccountID(s)
	if err != nil {
		return err
	}
	*a = id
	return nil
}

// MarshalJSON encodes the agent as its canonical string form.
func (a AgentID) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes the canonical string form via ParseAgentID.
func (a *AgentID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := ParseAgentID(s)
	if err != nil {
		return err
	}
	*a = id
	return nil
}

// MarshalJSON encodes the properties as three flat scalar fields, never as a
// nested object.
func (p AuthnProperties) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		AgentLabel   string `json:"agent_label"`
		AccountLabel string `json:"account_label"`
		Audience     string `json:"audience"`
	}{
		AgentLabel:   p.agentID.Label(),
		AccountLabel: p.AccountID().Label(),
		Audience:     p.AccountID().Audience(),
	})
}

// UnmarshalJSON reconstructs the properties from exactly the three flat
// fields. Any missing, repeated or unrecognized field is an error.
func (p *AuthnProperties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("authn properties: expected a JSON object")
	}

	values := make(map[string]string, 3)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)
		switch key {
		case FieldAgentLabel, FieldAccountLabel, FieldAudience:
			if _, dup := values[key]; dup {
				return &DuplicateFieldError{Field: key}
			}
			var v string
			if err := dec.Decode(&v); err != nil {
				return err
			}
			values[key] = v
		default:
			return &UnknownFieldError{Field: key}
		}
	}

	for _, key := range []string{FieldAgentLabel, FieldAccountLabel, FieldAudience} {
		if _, ok := values[key]; !ok {
			return &MissingFieldError{Field: key}
		}
	}

	account := NewAccountID(values[FieldAccountLabel], values[FieldAudience])
	p.agentID = NewAgentID(values[FieldAgentLabel], account)
	return nil
}
