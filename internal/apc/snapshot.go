package apc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Flag decodes the loose truthiness the game backend uses for booleans:
// true/false, 0/1 (any non-zero number), strings and null are all accepted.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch string(trimmed) {
	case "", "null", "false":
		*f = false
		return nil
	case "true":
		*f = true
		return nil
	}
	var number float64
	if err := json.Unmarshal(trimmed, &number); err == nil {
		*f = number != 0
		return nil
	}
	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil {
		*f = text != ""
		return nil
	}
	return fmt.Errorf("apc: cannot decode %s as flag", trimmed)
}

// Code is a numeric status code from the backend. It keeps fractional values
// so comparisons behave like the backend's own, and anything that is not a
// number (null, strings) decodes to UnknownCode, which equals no other code.
type Code float64

// UnknownCode is the value of a code the backend did not send as a number.
func UnknownCode() Code { return Code(math.NaN()) }

func (c *Code) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*c = UnknownCode()
		return nil
	}
	var number float64
	if err := json.Unmarshal(trimmed, &number); err == nil {
		*c = Code(number)
		return nil
	}
	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil {
		*c = UnknownCode()
		return nil
	}
	return fmt.Errorf("apc: cannot decode %s as code", trimmed)
}

// Known reports whether the code carries a number.
func (c Code) Known() bool {
	return !math.IsNaN(float64(c))
}

// Int returns the code as a table key. Fractional and unknown codes have none.
func (c Code) Int() (int, bool) {
	value := float64(c)
	if math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) {
		return 0, false
	}
	return int(value), true
}

// TopicParams holds the opaque per-channel payloads the backend expects back
// with the channel action.
type TopicParams struct {
	Auto json.RawMessage `json:"auto"`
	On   json.RawMessage `json:"on"`
	Off  json.RawMessage `json:"off"`
}

// Channel is one power channel row as sent by the backend.
type Channel struct {
	Title       string      `json:"title"`
	Status      Code        `json:"status"`
	PowerLoad   float64     `json:"powerLoad"`
	TopicParams TopicParams `json:"topicParams"`
}

// Snapshot is the state payload pushed by the simulation for one render.
type Snapshot struct {
	Locked         Flag `json:"locked"`
	NormallyLocked Flag `json:"normallyLocked"`
	SiliconUser    Flag `json:"siliconUser"`
	Emagged        Flag `json:"emagged"`
	CoverLocked    Flag `json:"coverLocked"`

	ExternalPower   Code    `json:"externalPower"`
	ChargingStatus  Code    `json:"chargingStatus"`
	IsOperating     Flag    `json:"isOperating"`
	ChargeMode      Flag    `json:"chargeMode"`
	PowerCellStatus float64 `json:"powerCellStatus"`

	GridCheck Flag     `json:"gridCheck"`
	FailTime  *float64 `json:"failTime,omitempty"`

	PowerChannels []Channel `json:"powerChannels"`
	TotalLoad     float64   `json:"totalLoad"`
	TotalCharging float64   `json:"totalCharging"`

	// Channel state sentinels. A sentinel the backend leaves out stays
	// unknown after decoding and never selects a channel button.
	ChanOff     Code `json:"pChan_Off"`
	ChanOn      Code `json:"pChan_On"`
	ChanOffAuto Code `json:"pChan_Off_A"`
	ChanOnAuto  Code `json:"pChan_On_A"`
	ChanOffTemp Code `json:"pChan_Off_T"`

	MalfStatus Code `json:"malfStatus,omitempty"`
}

// DecodeSnapshot parses one snapshot payload. Flags and codes decode
// leniently; only structurally invalid JSON is rejected.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	snapshot := Snapshot{
		ChanOff:     UnknownCode(),
		ChanOn:      UnknownCode(),
		ChanOffAuto: UnknownCode(),
		ChanOnAuto:  UnknownCode(),
		ChanOffTemp: UnknownCode(),
	}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("decode apc snapshot: %w", err)
	}
	return snapshot, nil
}

// InterfaceLocked reports whether the viewer is locked out of the controls.
// Silicon users bypass the ID lock.
func (s Snapshot) InterfaceLocked() bool {
	return bool(s.Locked) && !bool(s.SiliconUser)
}

// Failing reports whether a failure countdown is running. A zero or missing
// timer means no failure, matching the backend's truthiness.
func (s Snapshot) Failing() bool {
	return s.FailTime != nil && *s.FailTime != 0
}
