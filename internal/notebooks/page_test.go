package notebooks

import (
	"testing"

	kerrors "github.com/PolarWolf314/agentg/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageName(t *testing.T) {
	tests := []struct {
		filename string
		wantID   string
		wantPage int
	}{
		{"Blue___Page007.txt", "Blue", 7},
		{"Blue___Page007.txt.enc", "Blue", 7},
		{"field_notes___Page12.txt.enc", "field_notes", 12},
		{"X___Page1234.txt", "X", 1234},
		{"a1___Page0.txt.enc", "a1", 0},
		{"Café___Page001.txt.enc", "Café", 1},
		{"Blé___Page1.txt.enc", "Blé", 1},
		{"Cafe\u0301___Page2.txt", "Cafe\u0301", 2},
		{"東京_日記___Page010.txt.enc", "東京_日記", 10},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			id, page, err := ParsePageName(tt.filename)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantPage, page)
		})
	}
}

func TestParsePageName_Rejects(t *testing.T) {
	for _, name := range []string{
		"not_a_valid_name.txt",
		"Blue__Page007.txt",
		"Blue___Page.txt",
		"Blue___Page7.md",
		"Blue___Page7.txt.gz",
		"Blue Book___Page7.txt",
		"___Page7.txt",
		"",
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := ParsePageName(name)
			assert.ErrorIs(t, err, kerrors.ErrInvalidPageName)
		})
	}
}

func TestPageFileName(t *testing.T) {
	name, err := PageFileName("Blue", 7)
	require.NoError(t, err)
	assert.Equal(t, "Blue___Page007.txt.enc", name)

	name, err = PageFileName("Café", 3)
	require.NoError(t, err)
	assert.Equal(t, "Café___Page003.txt.enc", name)

	name, err = PageFileName("Blue", 1234)
	require.NoError(t, err)
	assert.Equal(t, "Blue___Page1234.txt.enc", name)

	id, page, err := ParsePageName(name)
	require.NoError(t, err)
	assert.Equal(t, "Blue", id)
	assert.Equal(t, 1234, page)
}

func TestPageFileName_Rejects(t *testing.T) {
	_, err := PageFileName("Blue Book", 1)
	assert.ErrorIs(t, err, kerrors.ErrInvalidPageName)

	_, err = PageFileName("Café/../x", 1)
	assert.ErrorIs(t, err, kerrors.ErrInvalidPageName)

	_, err = PageFileName("", 1)
	assert.ErrorIs(t, err, kerrors.ErrInvalidPageName)

	_, err = PageFileName("Blue", -1)
	assert.ErrorIs(t, err, kerrors.ErrInvalidPageName)
}
