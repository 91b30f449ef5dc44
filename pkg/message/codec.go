package message

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/agentmq/agentmq-go/pkg/identity"
)

// Wire field names shared by the role property shapes.
const (
	fieldType            = "type"
	fieldLabel           = "label"
	fieldMethod          = "method"
	fieldCorrelationData = "correlation_data"
	fieldResponseTopic   = "response_topic"
	fieldStatus          = "status"
)

func (e *OutgoingEnvelope) marshalProperties() (json.RawMessage, error) {
	switch e.role {
	case RoleEvent:
		return json.Marshal(struct {
			Type  Role   `json:"type"`
			Label string `json:"label"`
		}{Type: RoleEvent, Label: e.event.label})

	case RoleRequest:
		props := struct {
			Type            Role   `json:"type"`
			Method          string `json:"method"`
			CorrelationData string `json:"correlation_data"`
			ResponseTopic   string `json:"response_topic"`
			AgentLabel      string `json:"agent_label,omitempty"`
			AccountLabel    string `json:"account_label,omitempty"`
			Audience        string `json:"audience,omitempty"`
		}{
			Type:            RoleRequest,
			Method:          e.request.method,
			CorrelationData: e.request.correlationData,
			ResponseTopic:   e.request.responseTopic,
		}
		if authn := e.request.authn; authn != nil {
			props.AgentLabel = authn.AgentID().Label()
			props.AccountLabel = authn.AccountID().Label()
			props.Audience = authn.AccountID().Audience()
		}
		return json.Marshal(props)

	case RoleResponse:
		// The response topic override is routing state, never wire data.
		return json.Marshal(struct {
			Type            Role       `json:"type"`
			Status          StatusCode `json:"status"`
			CorrelationData string     `json:"correlation_data"`
		}{Type: RoleResponse, Status: e.response.status, CorrelationData: e.response.correlationData})

	default:
		return nil, fmt.Errorf("unknown envelope role %q", e.role)
	}
}

// UnmarshalJSON decodes incoming event properties strictly: the sender's
// flattened authentication fields are required, the label is optional.
func (p *IncomingEventProperties) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}
	if err := popRoleTag(fields, RoleEvent); err != nil {
		return err
	}
	label, err := popOptionalString(fields, fieldLabel)
	if err != nil {
		return err
	}
	authn, err := popAuthn(fields)
	if err != nil {
		return err
	}
	if err := rejectUnknown(fields); err != nil {
		return err
	}
	*p = IncomingEventProperties{label: label, authn: authn}
	return nil
}

// UnmarshalJSON decodes incoming request properties strictly: method,
// correlation data, response topic and the flattened authentication fields
// are all required.
func (p *IncomingRequestProperties) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}
	if err := popRoleTag(fields, RoleRequest); err != nil {
		return err
	}
	method, err := popString(fields, fieldMethod)
	if err != nil {
		return err
	}
	correlationData, err := popString(fields, fieldCorrelationData)
	if err != nil {
		return err
	}
	responseTopic, err := popString(fields, fieldResponseTopic)
	if err != nil {
		return err
	}
	authn, err := popAuthn(fields)
	if err != nil {
		return err
	}
	if err := rejectUnknown(fields); err != nil {
		return err
	}
	*p = IncomingRequestProperties{
		method:          method,
		correlationData: correlationData,
		responseTopic:   responseTopic,
		authn:           authn,
	}
	return nil
}

// UnmarshalJSON decodes incoming response properties strictly: status,
// correlation data and the flattened authentication fields are required.
func (p *IncomingResponseProperties) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}
	if err := popRoleTag(fields, RoleResponse); err != nil {
		return err
	}
	status, err := popStatus(fields)
	if err != nil {
		return err
	}
	correlationData, err := popString(fields, fieldCorrelationData)
	if err != nil {
		return err
	}
	authn, err := popAuthn(fields)
	if err != nil {
		return err
	}
	if err := rejectUnknown(fields); err != nil {
		return err
	}
	*p = IncomingResponseProperties{
		status:          status,
		correlationData: correlationData,
		authn:           authn,
	}
	return nil
}

// objectFields splits a JSON object into its raw fields, failing on
// duplicate keys.
func objectFields(data []byte) (map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("properties: expected a JSON object")
	}

	fields := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key := tok.(string)
		if _, dup := fields[key]; dup {
			return nil, &identity.DuplicateFieldError{Field: key}
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		fields[key] = raw
	}
	return fields, nil
}

// popRoleTag consumes the "type" field and verifies it matches the role
// being decoded.
func popRoleTag(fields map[string]json.RawMessage, want Role) error {
	raw, ok := fields[fieldType]
	if !ok {
		return &identity.MissingFieldError{Field: fieldType}
	}
	delete(fields, fieldType)

	var got Role
	if err := json.Unmarshal(raw, &got); err != nil {
		return fmt.Errorf("field %q: %w", fieldType, err)
	}
	if got != want {
		return &RoleMismatchError{Want: want, Got: got}
	}
	return nil
}

func popString(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return "", &identity.MissingFieldError{Field: key}
	}
	delete(fields, key)

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("field %q: %w", key, err)
	}
	return s, nil
}

func popOptionalString(fields map[string]json.RawMessage, key string) (string, error) {
	if _, ok := fields[key]; !ok {
		return "", nil
	}
	return popString(fields, key)
}

func popStatus(fields map[string]json.RawMessage) (StatusCode, error) {
	raw, ok := fields[fieldStatus]
	if !ok {
		return 0, &identity.MissingFieldError{Field: fieldStatus}
	}
	delete(fields, fieldStatus)

	var status StatusCode
	if err := json.Unmarshal(raw, &status); err != nil {
		return 0, fmt.Errorf("field %q: %w", fieldStatus, err)
	}
	return status, nil
}

// popAuthn consumes the three flattened authentication fields and rebuilds
// the sender's identity from exactly those.
func popAuthn(fields map[string]json.RawMessage) (identity.AuthnProperties, error) {
	agentLabel, err := popString(fields, identity.FieldAgentLabel)
	if err != nil {
		return identity.AuthnProperties{}, err
	}
	accountLabel, err := popString(fields, identity.FieldAccountLabel)
	if err != nil {
		return identity.AuthnProperties{}, err
	}
	audience, err := popString(fields, identity.FieldAudience)
	if err != nil {
		return identity.AuthnProperties{}, err
	}

	account := identity.NewAccountID(accountLabel, audience)
	return identity.NewAuthnProperties(identity.NewAgentID(agentLabel, account)), nil
}

func rejectUnknown(fields map[string]json.RawMessage) error {
	for key := range fields {
		return &identity.UnknownFieldError{Field: key}
	}
	return nil
}
