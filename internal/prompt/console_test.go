package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Console_ReadLine(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		input      string
		line       string
		errWrap    error
		errMessage string
	}{
		"unix line": {
			input: "192.168.1.10\nnext\n",
			line:  "192.168.1.10",
		},
		"windows line": {
			input: " admin \r\n",
			line:  " admin ",
		},
		"last line without newline": {
			input: "last",
			line:  "last",
		},
		"empty line": {
			input: "\n",
		},
		"end of input": {
			errWrap:    ErrNoInput,
			errMessage: "no input: end of input reached",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			output := bytes.NewBuffer(nil)
			console := New(strings.NewReader(testCase.input), output)

			line, err := console.ReadLine("Device IP: ")

			assert.ErrorIs(t, err, testCase.errWrap)
			if testCase.errWrap != nil {
				assert.EqualError(t, err, testCase.errMessage)
			}
			assert.Equal(t, testCase.line, line)
			assert.Equal(t, "Device IP: ", output.String())
		})
	}
}

func Test_Console_ReadPassword_notTerminal(t *testing.T) {
	t.Parallel()

	output := bytes.NewBuffer(nil)
	console := New(strings.NewReader("s3cret\n"), output)

	password, err := console.ReadPassword("Password: ")

	require.NoError(t, err)
	assert.Equal(t, "s3cret", password)
	assert.Equal(t, "Password: ", output.String())
}

func Test_Console_Confirm(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		input      string
		defaultYes bool
		yes        bool
		output     string
		errWrap    error
	}{
		"empty defaults to yes": {
			input:      "\n",
			defaultYes: true,
			yes:        true,
			output:     "Use them? [Y/n] ",
		},
		"empty defaults to no": {
			input:  "\n",
			output: "Use them? [y/N] ",
		},
		"yes uppercase": {
			input:  "YES\n",
			yes:    true,
			output: "Use them? [y/N] ",
		},
		"no": {
			input:      " n \n",
			defaultYes: true,
			output:     "Use them? [Y/n] ",
		},
		"russian yes": {
			input:  "да\n",
			yes:    true,
			output: "Use them? [y/N] ",
		},
		"invalid then yes": {
			input:      "maybe\ny\n",
			defaultYes: true,
			yes:        true,
			output: "Use them? [Y/n] " +
				"Please answer with 'y' or 'n'.\n" +
				"Use them? [Y/n] ",
		},
		"invalid then end of input": {
			input:      "maybe\n",
			defaultYes: true,
			output: "Use them? [Y/n] " +
				"Please answer with 'y' or 'n'.\n" +
				"Use them? [Y/n] ",
			errWrap: ErrNoInput,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			output := bytes.NewBuffer(nil)
			console := New(strings.NewReader(testCase.input), output)

			yes, err := console.Confirm("Use them?", testCase.defaultYes)

			assert.ErrorIs(t, err, testCase.errWrap)
			assert.Equal(t, testCase.yes, yes)
			assert.Equal(t, testCase.output, output.String())
		})
	}
}
