package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"blank", "   \t ", nil},
		{"single word", "--verbose", []string{"--verbose"}},
		{"two words", "--foo bar", []string{"--foo", "bar"}},
		{"extra whitespace", "  --foo   bar\t baz ", []string{"--foo", "bar", "baz"}},
		{"double quoted span", `--msg "hello world"`, []string{"--msg", "hello world"}},
		{"single quoted span", `--msg 'hello world'`, []string{"--msg", "hello world"}},
		{"whole string quoted", `"--foo bar"`, []string{"--foo bar"}},
		{"joined spans", `--name="my job"`, []string{"--name=my job"}},
		{"adjacent quotes", `'it'"'"'s'`, []string{"it's"}},
		{"empty quoted argument", `a "" b`, []string{"a", "", "b"}},
		{"single quotes keep backslash", `'a\b'`, []string{`a\b`}},
		{"double quote escapes", `"say \"hi\" \$HOME \\ \n"`, []string{`say "hi" $HOME \ \n`}},
		{"escaped space", `my\ file.txt`, []string{"my file.txt"}},
		{"line continuation", "a\\\nb", []string{"ab"}},
		{"no expansion", `$HOME ~ *.go`, []string{"$HOME", "~", "*.go"}},
		{"unicode", `--city "Санкт Петербург"`, []string{"--city", "Санкт Петербург"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitArgs(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitArgs_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"unterminated single", `--msg 'oops`, errUnterminatedSingle},
		{"unterminated double", `--msg "oops`, errUnterminatedDouble},
		{"escaped closing double", `"oops\"`, errUnterminatedDouble},
		{"trailing backslash", `oops\`, errTrailingBackslash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SplitArgs(tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
