package dostime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("KnownDate", func(t *testing.T) {
		// 2019-03-14 09:26:40, seconds truncated to even (40).
		raw := uint32(0)
		raw |= uint32(20) & 0x1f        // 40/2
		raw |= (uint32(26) & 0x3f) << 5 // minute
		raw |= (uint32(9) & 0x1f) << 11 // hour
		raw |= (uint32(14) & 0x1f) << 16
		raw |= (uint32(3) & 0x0f) << 21
		raw |= (uint32(2019-1980) & 0x7f) << 25

		dt, ok := Decode(raw)
		require.True(t, ok)
		require.Equal(t, 2019, dt.Year)
		require.Equal(t, 3, dt.Month)
		require.Equal(t, 14, dt.Day)
		require.Equal(t, 9, dt.Hour)
		require.Equal(t, 26, dt.Minute)
		require.Equal(t, 40, dt.Second)
	})

	t.Run("InvalidMonth", func(t *testing.T) {
		raw := uint32(0) | (uint32(13) << 21) // month=13
		_, ok := Decode(raw)
		require.False(t, ok)
	})
}

func TestString(t *testing.T) {
	dt := DateTime{Year: 2019, Month: 3, Day: 14, Hour: 9, Minute: 26, Second: 40}
	require.Equal(t, "2019-03-14 09:26:40", dt.String())
}

func TestTimeMatchesUnixEpochKnownDate(t *testing.T) {
	dt := DateTime{Year: 1970, Month: 1, Day: 1, Hour: 0, Minute: 0, Second: 0}
	require.Equal(t, int64(0), dt.Time().Unix())
}

func TestFormatInvalidReturnsEmpty(t *testing.T) {
	raw := uint32(0) | (uint32(0) << 21) // month=0, invalid
	require.Equal(t, "", Format(raw))
}

func TestDecodeConcreteFixture(t *testing.T) {
	dt, ok := Decode(0x4E8C2209)
	require.True(t, ok)
	require.Equal(t, "2019-04-12 04:16:18", dt.String())
	require.Equal(t, int64(1555042578), dt.Time().Unix())
}

func TestDecodeZeroIsInvalid(t *testing.T) {
	_, ok := Decode(0x00000000)
	require.False(t, ok)
}
