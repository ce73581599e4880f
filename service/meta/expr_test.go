package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	testCases := []struct {
		name   string
		env    map[string]string
		input  string
		expect string
	}{
		{name: "no expressions", input: "capacity: 8", expect: "capacity: 8"},
		{name: "single", env: map[string]string{"RR_SLICE": "5ms"}, input: "timeslice: ${env.RR_SLICE}", expect: "timeslice: 5ms"},
		{name: "repeated", env: map[string]string{"RR_A": "1", "RR_B": "2"}, input: "${env.RR_A}-${env.RR_B}-${env.RR_A}", expect: "1-2-1"},
		{name: "unset", input: "x=${env.RR_NOT_SET}-end", expect: "x=-end"},
		{name: "missing brace", env: map[string]string{"RR_X": "x"}, input: "start ${env.RR_X and ${env.RR_Y} end", expect: "start ${env.RR_X and  end"},
		{name: "empty key", input: "oops ${env.} done", expect: "oops  done"},
		{name: "unterminated", input: "tail ${env.RR_X", expect: "tail ${env.RR_X"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tc.expect, expandEnv(tc.input))
		})
	}
}
