package protocol

import (
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubecode"
)

// RotationEvent represents a single face rotation from the cube.
type RotationEvent struct {
	FaceCode          byte   // Raw face+direction code (0x00-0x0B)
	CenterOrientation byte   // Center piece orientation
	Clockwise         bool   // Direction of rotation
	Color             string // Color name of the turned face's center
}

// BatteryEvent represents a battery level notification.
type BatteryEvent struct {
	Level int // 0-100 percentage
}

// GoCube color indices as sent in rotation codes.
var colorNames = map[byte]string{
	0: "blue",
	1: "green",
	2: "white",
	3: "yellow",
	4: "red",
	5: "orange",
}

// DecodeRotation decodes a rotation message payload into rotation events.
// Rotation payloads contain pairs of bytes: [face_dir] [center_orientation]
func DecodeRotation(payload []byte) ([]RotationEvent, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("rotation payload must have even length, got %d", len(payload))
	}

	var events []RotationEvent
	for i := 0; i < len(payload); i += 2 {
		faceCode := payload[i]

		// Even codes are clockwise, odd codes counter-clockwise.
		colorName, ok := colorNames[faceCode/2]
		if !ok {
			return nil, fmt.Errorf("unknown color index %d from face code 0x%02X", faceCode/2, faceCode)
		}

		events = append(events, RotationEvent{
			FaceCode:          faceCode,
			CenterOrientation: payload[i+1],
			Clockwise:         faceCode%2 == 0,
			Color:             colorName,
		})
	}

	return events, nil
}

// Move converts the rotation to a face turn, using the face whose solved
// color matches the turned center.
func (r RotationEvent) Move(t time.Time) (cubecode.Move, error) {
	color, err := cubecode.ParseColor(r.Color)
	if err != nil {
		return cubecode.Move{}, err
	}
	turn := cubecode.CW
	if !r.Clockwise {
		turn = cubecode.CCW
	}
	return cubecode.Move{Face: color.Face(), Turn: turn, Time: t}, nil
}

// DecodeMoves decodes a rotation payload straight into moves.
func DecodeMoves(payload []byte, t time.Time) ([]cubecode.Move, error) {
	events, err := DecodeRotation(payload)
	if err != nil {
		return nil, err
	}
	moves := make([]cubecode.Move, 0, len(events))
	for _, ev := range events {
		m, err := ev.Move(t)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// DecodeBattery decodes a battery message payload.
func DecodeBattery(payload []byte) (*BatteryEvent, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("battery payload too short")
	}
	return &BatteryEvent{
		Level: int(payload[0]),
	}, nil
}
