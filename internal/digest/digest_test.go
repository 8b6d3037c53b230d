package digest

import (
	"regexp"
	"testing"

	"github.com/qdm12/vtoctl/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func Test_Derive(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		username string
		password string
		realm    string
		random   string
		encoding string
		digest   string
		errWrap  error
	}{
		"ascii credentials": {
			username: "admin",
			password: "pass",
			realm:    "Login1",
			random:   "123456",
			encoding: Latin1,
			digest:   "5595A2CF84EBEEFE16CC5E1C595DF93A",
		},
		"ascii credentials same for utf-8": {
			username: "admin",
			password: "pass",
			realm:    "Login1",
			random:   "123456",
			encoding: UTF8,
			digest:   "5595A2CF84EBEEFE16CC5E1C595DF93A",
		},
		"extended character latin-1": {
			username: "admin",
			password: "pässword",
			realm:    "Login to 4M0123",
			random:   "987654321",
			encoding: Latin1,
			digest:   "6D5C9FCCDB5BC00D3EB5EC5E2364EEBB",
		},
		"extended character utf-8": {
			username: "admin",
			password: "pässword",
			realm:    "Login to 4M0123",
			random:   "987654321",
			encoding: UTF8,
			digest:   "43148133162220385352BF9C63D9A5BA",
		},
		"empty fields": {
			encoding: Latin1,
			digest:   "D2BC78FE939F5E871D16531CF588C960",
		},
		"rune outside latin-1": {
			username: "admin",
			password: "€uro",
			realm:    "Login1",
			random:   "123456",
			encoding: Latin1,
			errWrap:  errors.ErrEncodeCredentials,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			enc, err := Encoding(testCase.encoding)
			require.NoError(t, err)

			digest, err := Derive(testCase.username, testCase.password,
				testCase.realm, testCase.random, enc)

			assert.ErrorIs(t, err, testCase.errWrap)
			assert.Equal(t, testCase.digest, digest)
		})
	}
}

func Test_Derive_firstRound(t *testing.T) {
	t.Parallel()

	// MD5("admin:Login1:pass") = 5b8686dd3a72513dfb01470f55aef5c4
	first, err := hashUpper("admin:Login1:pass", charmap.ISO8859_1)
	require.NoError(t, err)
	assert.Equal(t, "5B8686DD3A72513DFB01470F55AEF5C4", first)

	second, err := hashUpper("admin:123456:"+first, charmap.ISO8859_1)
	require.NoError(t, err)
	assert.Equal(t, "5595A2CF84EBEEFE16CC5E1C595DF93A", second)
}

func Test_Derive_deterministic(t *testing.T) {
	t.Parallel()

	format := regexp.MustCompile(`^[0-9A-F]{32}$`)

	inputs := [][4]string{
		{"admin", "pass", "Login1", "123456"},
		{"user", "", "realm", ""},
		{"ünïcödé", "pässwörd", "Login to ABC", "42"},
		{"a:b", "c:d", "e:f", "g:h"},
	}

	for _, input := range inputs {
		first, err := Derive(input[0], input[1], input[2], input[3], charmap.ISO8859_1)
		require.NoError(t, err)
		second, err := Derive(input[0], input[1], input[2], input[3], charmap.ISO8859_1)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Regexp(t, format, first)
	}
}

func Test_Encoding(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		name       string
		isLatin1   bool
		isUTF8     bool
		errWrap    error
		errMessage string
	}{
		"latin-1": {
			name:     "latin-1",
			isLatin1: true,
		},
		"uppercase ISO-8859-1": {
			name:     "ISO-8859-1",
			isLatin1: true,
		},
		"utf8": {
			name:   "utf8",
			isUTF8: true,
		},
		"unknown": {
			name:       "cp1251",
			errWrap:    errors.ErrEncodingUnknown,
			errMessage: `encoding is unknown: "cp1251" must be one of latin-1 or utf-8`,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			enc, err := Encoding(testCase.name)

			assert.ErrorIs(t, err, testCase.errWrap)
			if testCase.errWrap != nil {
				assert.EqualError(t, err, testCase.errMessage)
				assert.Nil(t, enc)
				return
			}
			switch {
			case testCase.isLatin1:
				assert.Equal(t, charmap.ISO8859_1, enc)
			case testCase.isUTF8:
				assert.Equal(t, unicode.UTF8, enc)
			}
		})
	}
}
