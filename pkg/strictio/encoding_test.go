package strictio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupEncoding(t *testing.T) {
	tests := []struct {
		label    string
		expected string
		binary   bool
	}{
		{label: "binary", expected: "binary", binary: true},
		{label: "", expected: "binary", binary: true},
		{label: "UTF-8", expected: "utf-8"},
		{label: "utf8", expected: "utf-8"},
		{label: "utf-16le", expected: "utf-16le"},
		{label: "utf-16be", expected: "utf-16be"},
		{label: "iso-8859-1", expected: "iso-8859-1"},
		{label: "latin1", expected: "windows-1252"},
		{label: " Shift_JIS ", expected: "shift_jis"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			enc, err := LookupEncoding(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, enc.String())
			assert.Equal(t, tt.binary, enc.IsBinary())
		})
	}
}

func TestLookupEncoding_Unknown(t *testing.T) {
	_, err := LookupEncoding("klingon")

	assert.ErrorIs(t, err, ErrUnknownEncoding)
	assert.Contains(t, err.Error(), "klingon")
}

func TestEncoding_ZeroValueIsBinary(t *testing.T) {
	var enc Encoding

	assert.True(t, enc.IsBinary())
	assert.Equal(t, "binary", enc.String())
}

func TestEncoding_EncodeRejectsUnrepresentableText(t *testing.T) {
	_, err := Latin1.encode("snowman ☃")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "iso-8859-1")
}

func TestEncoding_Latin1Bytes(t *testing.T) {
	data, err := Latin1.encode("café")
	require.NoError(t, err)

	assert.Equal(t, []byte{'c', 'a', 'f', 0xe9}, data)
}
