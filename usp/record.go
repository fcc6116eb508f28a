// Package usp defines the USP wire messages exchanged between Agents and
// Controllers: the outer Record envelope and the inner Msg, together with
// a deterministic binary codec for both.
package usp

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// PayloadSecurity selects how the Record payload is protected. Only
// PLAINTEXT records are produced or accepted by this agent.
type PayloadSecurity int32

const (
	SecurityPlaintext PayloadSecurity = 0
	SecurityTLS12     PayloadSecurity = 1
)

func (s PayloadSecurity) String() string {
	switch s {
	case SecurityPlaintext:
		return "PLAINTEXT"
	case SecurityTLS12:
		return "TLS12"
	}
	return "UNKNOWN"
}

// Record is the outer USP envelope. Exactly one of NoSessionContext or
// SessionContext is set; SessionContext is carried as raw bytes because
// session contexts are not supported and only presence matters.
type Record struct {
	Version         string
	ToID            string
	FromID          string
	PayloadSecurity PayloadSecurity
	MACSignature    []byte
	SenderCert      []byte

	NoSessionContext *NoSessionContextRecord
	SessionContext   []byte
}

// NoSessionContextRecord carries a single serialized Msg.
type NoSessionContextRecord struct {
	Payload []byte
}

// NewRecord wraps a Msg in the plaintext no-session-context envelope
// this agent speaks.
func NewRecord(fromID, toID string, msg *Msg) *Record {
	return &Record{
		Version:          "1.0",
		ToID:             toID,
		FromID:           fromID,
		PayloadSecurity:  SecurityPlaintext,
		NoSessionContext: &NoSessionContextRecord{Payload: msg.Marshal()},
	}
}

// Record field numbers.
const (
	recVersion          = 1
	recToID             = 2
	recFromID           = 3
	recPayloadSecurity  = 4
	recMACSignature     = 5
	recSenderCert       = 6
	recNoSessionContext = 7
	recSessionContext   = 8

	noSessionPayload = 2
)

// Marshal renders the Record in its deterministic binary form.
func (r *Record) Marshal() []byte {
	var b []byte
	b = appendString(b, recVersion, r.Version)
	b = appendString(b, recToID, r.ToID)
	b = appendString(b, recFromID, r.FromID)
	b = appendVarint(b, recPayloadSecurity, uint64(r.PayloadSecurity))
	b = appendBytes(b, recMACSignature, r.MACSignature)
	b = appendBytes(b, recSenderCert, r.SenderCert)
	if r.NoSessionContext != nil {
		var sub []byte
		sub = appendBytes(sub, noSessionPayload, r.NoSessionContext.Payload)
		b = appendMessage(b, recNoSessionContext, sub)
	}
	if r.SessionContext != nil {
		b = appendMessage(b, recSessionContext, r.SessionContext)
	}
	return b
}

// UnmarshalRecord parses a Record from its binary form. Unknown fields are
// skipped; malformed input is rejected.
func UnmarshalRecord(data []byte) (*Record, error) {
	r := &Record{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("Record", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == recVersion && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("Record.version", err)
			}
			r.Version, b = v, b[n:]
		case num == recToID && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("Record.to_id", err)
			}
			r.ToID, b = v, b[n:]
		case num == recFromID && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("Record.from_id", err)
			}
			r.FromID, b = v, b[n:]
		case num == recPayloadSecurity && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return nil, decodeErr("Record.payload_security", err)
			}
			r.PayloadSecurity, b = PayloadSecurity(v), b[n:]
		case num == recMACSignature && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("Record.mac_signature", err)
			}
			r.MACSignature, b = v, b[n:]
		case num == recSenderCert && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("Record.sender_cert", err)
			}
			r.SenderCert, b = v, b[n:]
		case num == recNoSessionContext && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("Record.no_session_context", err)
			}
			nsc, err := unmarshalNoSessionContext(v)
			if err != nil {
				return nil, err
			}
			r.NoSessionContext, b = nsc, b[n:]
		case num == recSessionContext && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("Record.session_context", err)
			}
			r.SessionContext, b = v, b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("Record", err)
			}
			b = b[n:]
		}
	}
	return r, nil
}

func unmarshalNoSessionContext(data []byte) (*NoSessionContextRecord, error) {
	nsc := &NoSessionContextRecord{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("NoSessionContextRecord", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == noSessionPayload && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("NoSessionContextRecord.payload", err)
			}
			nsc.Payload, b = v, b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("NoSessionContextRecord", err)
			}
			b = b[n:]
		}
	}
	return nsc, nil
}
