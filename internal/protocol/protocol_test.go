package protocol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubecode"
)

func TestParseMessageRoundTrip(t *testing.T) {
	frame := BuildFrame(MsgTypeRotation, []byte{0x08, 0x00, 0x05, 0x03})
	msg, err := ParseMessage(frame)
	require.NoError(t, err)
	require.Equal(t, MsgTypeRotation, msg.Type)
	require.Equal(t, []byte{0x08, 0x00, 0x05, 0x03}, msg.Payload)
	require.NotEmpty(t, msg.RawBase64)
}

func TestParseMessageRejectsBadFrames(t *testing.T) {
	good := BuildFrame(MsgTypeBattery, []byte{80})

	_, err := ParseMessage(good[:3])
	require.ErrorIs(t, err, ErrMessageTooShort)

	bad := append([]byte(nil), good...)
	bad[0] = 0x00
	_, err = ParseMessage(bad)
	require.ErrorIs(t, err, ErrInvalidPrefix)

	bad = append([]byte(nil), good...)
	bad[len(bad)-3]++
	_, err = ParseMessage(bad)
	require.ErrorIs(t, err, ErrInvalidChecksum)

	bad = append([]byte(nil), good...)
	bad[len(bad)-1] = 0x00
	_, err = ParseMessage(bad)
	require.ErrorIs(t, err, ErrInvalidSuffix)

	_, err = ParseMessage(good[:len(good)-1])
	require.ErrorIs(t, err, ErrInvalidLength)
}

func TestBuildCommandChecksum(t *testing.T) {
	cmd := BuildCommand(CmdResetSolved)
	require.Equal(t, []byte{0x2A, 0x01, 0x35, 0x2A + 0x01 + 0x35, 0x0D, 0x0A}, cmd)
}

func TestDecodeMoves(t *testing.T) {
	now := time.Now()
	// 0x08 = red clockwise, 0x05 = white counter-clockwise
	moves, err := DecodeMoves([]byte{0x08, 0x00, 0x05, 0x03}, now)
	require.NoError(t, err)
	require.Len(t, moves, 2)
	require.Equal(t, cubecode.FaceR, moves[0].Face)
	require.Equal(t, cubecode.CW, moves[0].Turn)
	require.Equal(t, cubecode.FaceU, moves[1].Face)
	require.Equal(t, cubecode.CCW, moves[1].Turn)
	require.Equal(t, now, moves[0].Time)
}

func TestDecodeRotationErrors(t *testing.T) {
	_, err := DecodeRotation([]byte{0x01})
	require.Error(t, err)

	_, err = DecodeRotation([]byte{0x0C, 0x00})
	require.Error(t, err)
}

func TestDecodeBattery(t *testing.T) {
	ev, err := DecodeBattery([]byte{73})
	require.NoError(t, err)
	require.Equal(t, 73, ev.Level)

	_, err = DecodeBattery(nil)
	require.Error(t, err)
}
