package wire

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-query/internal/dns/domain"
)

func TestEncodeName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    domain.Name
		wantErr error
	}{
		{
			name:  "google.com",
			input: "google.com",
			want:  domain.Name{6, 'g', 'o', 'o', 'g', 'l', 'e', 3, 'c', 'o', 'm', 0},
		},
		{
			name:  "trailing dot",
			input: "google.com.",
			want:  domain.Name{6, 'g', 'o', 'o', 'g', 'l', 'e', 3, 'c', 'o', 'm', 0},
		},
		{name: "empty", input: "", want: domain.Name{0}},
		{name: "root", input: ".", want: domain.Name{0}},
		{name: "single label", input: "localhost", want: append(domain.Name{9}, append([]byte("localhost"), 0)...)},
		{name: "case preserved", input: "ExAmple", want: append(domain.Name{7}, append([]byte("ExAmple"), 0)...)},
		{name: "63 byte label", input: strings.Repeat("a", 63), want: append(append(domain.Name{63}, strings.Repeat("a", 63)...), 0)},
		{name: "64 byte label", input: strings.Repeat("a", 64), wantErr: domain.ErrInvalidLabel},
		{name: "empty interior label", input: "a..b", wantErr: domain.ErrInvalidLabel},
		{name: "leading dot", input: ".example.com", wantErr: domain.ErrInvalidLabel},
		{name: "double trailing dot", input: "example.com..", wantErr: domain.ErrInvalidLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeName(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeName_TotalLength(t *testing.T) {
	label := strings.Repeat("a", 63)

	// 4 x 63-byte labels encode to 4*64+1 = 257 bytes
	_, err := EncodeName(strings.Join([]string{label, label, label, label}, "."))
	assert.ErrorIs(t, err, domain.ErrInvalidLabel)

	// 3 x 63 + one 61-byte label encodes to exactly 255 bytes
	name := strings.Join([]string{label, label, label, strings.Repeat("b", 61)}, ".")
	got, err := EncodeName(name)
	require.NoError(t, err)
	assert.Len(t, got, MaxNameLength)

	_, err = EncodeName(name + "b")
	assert.ErrorIs(t, err, domain.ErrInvalidLabel)
}

func TestEncodeName_LengthProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789-"

	for i := range 500 {
		var labels []string
		size := 1
		for {
			n := 1 + rng.IntN(MaxLabelLength)
			if size+n+1 > MaxNameLength {
				break
			}
			b := make([]byte, n)
			for j := range b {
				b[j] = alphabet[rng.IntN(len(alphabet))]
			}
			labels = append(labels, string(b))
			size += n + 1
			if rng.IntN(4) == 0 {
				break
			}
		}
		name := strings.Join(labels, ".")

		want := 1
		for _, l := range labels {
			want += len(l) + 1
		}

		got, err := EncodeName(name)
		require.NoError(t, err, "case %d: %q", i, name)
		assert.Len(t, got, want)
		assert.Equal(t, byte(0), got[len(got)-1])

		decoded, n, err := DecodeName(got)
		require.NoError(t, err)
		assert.Equal(t, len(got), n)
		assert.Equal(t, got, decoded)
		assert.Equal(t, labels, decoded.Labels())
	}
}

func TestDecodeName(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		want     domain.Name
		consumed int
		wantErr  error
	}{
		{
			name:     "with trailing data",
			input:    []byte{3, 'f', 'o', 'o', 0, 0xAA, 0xBB},
			want:     domain.Name{3, 'f', 'o', 'o', 0},
			consumed: 5,
		},
		{name: "root", input: []byte{0}, want: domain.Name{0}, consumed: 1},
		{name: "empty buffer", input: nil, wantErr: domain.ErrTruncatedMessage},
		{name: "label past end", input: []byte{5, 'a', 'b'}, wantErr: domain.ErrTruncatedMessage},
		{name: "missing terminator", input: []byte{1, 'a'}, wantErr: domain.ErrTruncatedMessage},
		{name: "compression pointer", input: []byte{0xC0, 0x0C}, wantErr: domain.ErrCompressedName},
		{name: "reserved label type", input: []byte{0x40, 'a', 0}, wantErr: domain.ErrInvalidLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n, err := DecodeName(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				assert.Zero(t, n)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.consumed, n)
		})
	}
}

func TestDecodeName_TooLong(t *testing.T) {
	var buf []byte
	for range 5 {
		buf = append(buf, 63)
		buf = append(buf, strings.Repeat("x", 63)...)
	}
	buf = append(buf, 0)

	_, _, err := DecodeName(buf)
	assert.ErrorIs(t, err, domain.ErrInvalidLabel)
}

func TestDecodeName_DoesNotAlias(t *testing.T) {
	buf := []byte{1, 'a', 0}
	name, _, err := DecodeName(buf)
	require.NoError(t, err)

	buf[1] = 'z'
	assert.Equal(t, "a.", name.String())
}
