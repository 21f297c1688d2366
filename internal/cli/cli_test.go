package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/memschem/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantUsage bool
		want      options.Program
	}{
		{
			name: "positional arguments",
			args: []string{"prog", "memory.json", "out.schem"},
			want: options.Program{Input: "memory.json", Output: "out.schem"},
		},
		{
			name: "all flags",
			args: []string{"prog", "-strict", "-ram", "-verify", "-q", "-c", "layout.yaml", "memory.json", "out.schem"},
			want: options.Program{
				Input:    "memory.json",
				Output:   "out.schem",
				Layout:   "layout.yaml",
				Strict:   true,
				WriteRAM: true,
				Verify:   true,
				Quiet:    true,
			},
		},
		{
			name:      "no arguments",
			args:      []string{"prog"},
			wantUsage: true,
		},
		{
			name:      "missing output",
			args:      []string{"prog", "memory.json"},
			wantUsage: true,
		},
		{
			name:      "too many arguments",
			args:      []string{"prog", "a.json", "b.schem", "c.schem"},
			wantUsage: true,
		},
		{
			name:      "wrong output extension",
			args:      []string{"prog", "memory.json", "out.nbt"},
			wantUsage: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			opts, err := ParseFlags()
			if tt.wantUsage {
				assert.Error(t, err)
				var usageErr *UsageError
				assert.True(t, errors.As(err, &usageErr))
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, opts)
		})
	}
}
